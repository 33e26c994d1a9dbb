// Copyright (c) 2026 Coursia. All rights reserved.
// Author: lam.vothanh.dev@gmail.com

/*
Package sheetsync implements [content.RemoteRepository] against the
spreadsheet bridge: a Google Apps Script web endpoint backed by a Google
Sheet.

# Contract

  - Read:  GET ?action=getChapters&courseId={id} → {success, chapters}
  - Write: GET carrying action=saveChapters, courseId, and the full
    serialized chapter list as one query field → {success, message}

The bridge transports the whole tree in the request URL, so payload size is
bounded by the URL-length ceiling of the Apps Script runtime (~7500
characters). Approaching that ceiling raises a warning on the result but
never blocks the write.

# Verification

After an acknowledged write the bridge is immediately read back and the
returned lesson count is compared against the pushed tree. A mismatch marks
the result unverified without failing it. The comparison is deliberately
shallow (counts, not content): a cheap corruption tripwire, not an
integrity proof.
*/
package sheetsync

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"

	"github.com/lamvothanh/coursia/internal/content"
	"github.com/lamvothanh/coursia/internal/platform/constants"
)

// wire shapes of the Apps Script bridge.
type (
	pullResponse struct {
		Success  bool                 `json:"success"`
		Chapters []content.RawChapter `json:"chapters"`
	}

	pushResponse struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
)

// Client is the sheet bridge sync adapter.
//
// # Concurrency
//
// Pushes are serialized per course: the bridge offers no transactional
// guarantee across two concurrent whole-tree writes, so a second push for
// the same course waits for the first to finish. Pushes for different
// courses proceed in parallel, and local authoring is never blocked by
// either.
type Client struct {
	http     *resty.Client
	endpoint string
	logger   *slog.Logger

	mu          sync.Mutex
	courseLocks map[string]*sync.Mutex
}

var _ content.RemoteRepository = (*Client)(nil)

// NewClient constructs a sync adapter for the given Apps Script endpoint.
//
// All requests carry a bounded timeout; a bridge that hangs is treated as a
// transport failure and the caller falls back to the local tree.
func NewClient(endpoint string, logger *slog.Logger) *Client {
	httpClient := resty.New().
		SetTimeout(constants.SheetSyncTimeout).
		SetHeader("Accept", "application/json")

	return &Client{
		http:        httpClient,
		endpoint:    endpoint,
		logger:      logger,
		courseLocks: make(map[string]*sync.Mutex),
	}
}

// courseLock returns the per-course push mutex, creating it on first use.
func (client *Client) courseLock(courseID string) *sync.Mutex {
	client.mu.Lock()
	defer client.mu.Unlock()

	lock, ok := client.courseLocks[courseID]
	if !ok {
		lock = &sync.Mutex{}
		client.courseLocks[courseID] = lock
	}
	return lock
}

// # Read Path

/*
Pull fetches the remote tree for a course.

Description: Never returns an error. Network failures, malformed bodies, and
success:false payloads all degrade to an empty tree — callers treat an empty
result as "nothing remote yet".

Parameters:
  - ctx: context.Context
  - courseID: string

Returns:
  - content.Tree: The normalized remote tree, possibly empty
*/
func (client *Client) Pull(ctx context.Context, courseID string) content.Tree {
	response, err := client.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"action":   "getChapters",
			"courseId": courseID,
		}).
		Get(client.endpoint)

	if err != nil {
		client.logger.Warn("sheetsync_pull_transport_failed",
			slog.String("course_id", courseID),
			slog.Any("error", err),
		)
		return content.Tree{}
	}

	if !isJSONResponse(response) {
		client.logger.Warn("sheetsync_pull_non_json_response",
			slog.String("course_id", courseID),
			slog.String("content_type", response.Header().Get("Content-Type")),
		)
		return content.Tree{}
	}

	var payload pullResponse
	if err := json.Unmarshal(response.Body(), &payload); err != nil || !payload.Success {
		client.logger.Warn("sheetsync_pull_malformed_payload",
			slog.String("course_id", courseID),
		)
		return content.Tree{}
	}

	return content.NormalizeChapters(payload.Chapters)
}

// # Write Path

/*
Push writes the full tree to the bridge and verifies it by read-back.

Description: Serializes the entire chapter list as a single payload field.
An oversized payload is warned about but still attempted. After an
acknowledged write, an immediate [Client.Pull] counts the remote lessons; a
count mismatch marks the result unverified while keeping it successful.

Parameters:
  - ctx: context.Context
  - courseID: string
  - tree: content.Tree

Returns:
  - content.PushResult: Success/Verified signals plus the read-back count
  - error: A [*content.SyncError] with reason transport or rejected
*/
func (client *Client) Push(ctx context.Context, courseID string, tree content.Tree) (content.PushResult, error) {
	lock := client.courseLock(courseID)
	lock.Lock()
	defer lock.Unlock()

	payload, err := json.Marshal(tree.Raw())
	if err != nil {
		return content.PushResult{}, &content.SyncError{
			Reason: content.SyncReasonTransport, Message: "encode chapters", Cause: err,
		}
	}

	result := content.PushResult{}

	// The bridge carries the payload in the URL; warn when the encoded
	// request approaches the runtime's URL-length ceiling.
	if requestLength := client.estimateRequestLength(courseID, payload); requestLength > constants.SheetSyncURLWarnLength {
		result.Warning = fmt.Sprintf(
			"payload is %d characters, near the %d-character URL limit of the sheet bridge",
			requestLength, constants.SheetSyncURLWarnLength,
		)
		client.logger.Warn("sheetsync_payload_near_url_limit",
			slog.String("course_id", courseID),
			slog.Int("request_length", requestLength),
		)
	}

	response, err := client.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"action":   "saveChapters",
			"courseId": courseID,
			"chapters": string(payload),
		}).
		Get(client.endpoint)

	if err != nil {
		return result, &content.SyncError{
			Reason: content.SyncReasonTransport, Message: "request failed", Cause: err,
		}
	}

	// Apps Script serves HTML error pages with status 200; content type is
	// the reliable transport-health signal, not the status code.
	if !isJSONResponse(response) {
		return result, &content.SyncError{
			Reason:  content.SyncReasonTransport,
			Message: "bridge returned " + response.Header().Get("Content-Type") + " instead of JSON",
		}
	}

	var ack pushResponse
	if err := json.Unmarshal(response.Body(), &ack); err != nil {
		return result, &content.SyncError{
			Reason: content.SyncReasonTransport, Message: "malformed acknowledgement", Cause: err,
		}
	}

	if !ack.Success {
		return result, &content.SyncError{
			Reason: content.SyncReasonRejected, Message: ack.Message,
		}
	}

	result.Success = true

	// Read-back verification. A pull failure here shows up as a zero count
	// and an unverified result, never as a push failure.
	remote := client.Pull(ctx, courseID)
	result.SavedLessonCount = remote.LessonCount()
	result.Verified = result.SavedLessonCount == tree.LessonCount()

	if !result.Verified {
		client.logger.Warn("sheetsync_verification_mismatch",
			slog.String("course_id", courseID),
			slog.Int("expected_lessons", tree.LessonCount()),
			slog.Int("remote_lessons", result.SavedLessonCount),
		)
	}

	return result, nil
}

// estimateRequestLength approximates the encoded URL length of a push.
func (client *Client) estimateRequestLength(courseID string, payload []byte) int {
	values := url.Values{}
	values.Set("action", "saveChapters")
	values.Set("courseId", courseID)
	values.Set("chapters", string(payload))
	return len(client.endpoint) + 1 + len(values.Encode())
}

// isJSONResponse reports whether the response carries structured data.
func isJSONResponse(response *resty.Response) bool {
	return strings.Contains(response.Header().Get("Content-Type"), "application/json")
}
