// Copyright (c) 2026 Coursia. All rights reserved.
// Author: lam.vothanh.dev@gmail.com

package content

import (
	"context"
	"fmt"
)

// # Remote Sync Contract
//
// The remote store mirrors each course's tree for cross-device and admin
// consistency. It is strictly best-effort: the local [TreeRepository] stays
// authoritative for the session, and a failed sync must never block
// authoring. The canonical implementation is the spreadsheet bridge in the
// sheetsync subpackage.

// SyncReason classifies why a remote push failed.
type SyncReason string

const (
	// SyncReasonTransport marks a broken transport: timeout, network error,
	// or a response that is not structured data (e.g. an HTML error page).
	SyncReasonTransport SyncReason = "transport"

	// SyncReasonRejected marks an application-level rejection: the remote
	// answered well-formed JSON with success:false.
	SyncReasonRejected SyncReason = "rejected"
)

// SyncError is the error type returned by [RemoteRepository.Push].
type SyncError struct {
	Reason  SyncReason
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *SyncError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("sync: %s: %s: %v", e.Reason, e.Message, e.Cause)
	}
	return fmt.Sprintf("sync: %s: %s", e.Reason, e.Message)
}

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *SyncError) Unwrap() error { return e.Cause }

// PushResult reports the outcome of a remote push.
//
// Success and Verified are independent signals: an acknowledged write whose
// read-back lesson count mismatches is successful but unverified. There is
// no rollback — verification failure is a soft tripwire only.
type PushResult struct {
	Success          bool   `json:"success"`
	Verified         bool   `json:"verified"`
	SavedLessonCount int    `json:"savedLessonsCount"`
	Warning          string `json:"warning,omitempty"`
}

// RemoteRepository defines the best-effort remote mirror for content trees.
type RemoteRepository interface {
	// Pull fetches the remote tree. It never errors: any failure degrades
	// to an empty tree, which callers read as "nothing remote yet".
	Pull(ctx context.Context, courseID string) Tree

	// Push writes the full tree as one payload and verifies it by an
	// immediate read-back. Pushes for the same course are serialized by the
	// implementation. Errors are [*SyncError].
	Push(ctx context.Context, courseID string, tree Tree) (PushResult, error)
}
