// Copyright (c) 2026 Coursia. All rights reserved.
// Author: lam.vothanh.dev@gmail.com

package sheetsync_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lamvothanh/coursia/internal/content"
	"github.com/lamvothanh/coursia/internal/content/sheetsync"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleTree(lessonCount int) content.Tree {
	lessons := make([]content.Lesson, 0, lessonCount)
	for i := 0; i < lessonCount; i++ {
		lessons = append(lessons, content.Lesson{
			ID:            fmt.Sprintf("ls-%d", i+1),
			Title:         fmt.Sprintf("Lesson %d", i+1),
			RequiredLevel: content.LevelFree,
			DirectPlayURL: "https://iframe.mediadelivery.net/embed/lib/v" + fmt.Sprint(i+1),
		})
	}
	return content.Tree{{ID: "ch-1", Title: "Basics", Lessons: lessons}}
}

// bridgeStub emulates the Apps Script endpoint: one GET route dispatching on
// the action query parameter, always answering HTTP 200.
type bridgeStub struct {
	saveBody     string
	getBody      string
	contentType  string
	saveRequests int
	lastChapters string
}

func (b *bridgeStub) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		contentType := b.contentType
		if contentType == "" {
			contentType = "application/json"
		}
		w.Header().Set("Content-Type", contentType)

		switch r.URL.Query().Get("action") {
		case "saveChapters":
			b.saveRequests++
			b.lastChapters = r.URL.Query().Get("chapters")
			io.WriteString(w, b.saveBody)
		case "getChapters":
			io.WriteString(w, b.getBody)
		default:
			io.WriteString(w, `{"success":false,"message":"unknown action"}`)
		}
	}
}

/*
TestClient_Pull verifies the happy path: a successful payload comes back
normalized, legacy video pairs included.
*/
func TestClient_Pull(t *testing.T) {
	stub := &bridgeStub{
		getBody: `{"success":true,"chapters":[
			{"id":"ch-1","title":"Basics","lessons":[
				{"id":"ls-1","title":"Intro","videoId":"vid-9","libraryId":"lib-3"}
			]}
		]}`,
	}
	server := httptest.NewServer(stub.handler())
	defer server.Close()

	client := sheetsync.NewClient(server.URL, testLogger())
	tree := client.Pull(context.Background(), "course-1")

	require.Len(t, tree, 1)
	require.Len(t, tree[0].Lessons, 1)
	assert.Equal(t, "https://iframe.mediadelivery.net/embed/lib-3/vid-9", tree[0].Lessons[0].DirectPlayURL)
}

/*
TestClient_Pull_Degrades verifies that every failure mode degrades to an
empty tree instead of erroring.
*/
func TestClient_Pull_Degrades(t *testing.T) {
	tests := []struct {
		name        string
		getBody     string
		contentType string
	}{
		{"html_error_page", "<html>Service invoked too many times</html>", "text/html"},
		{"malformed_json", `{"success":`, ""},
		{"success_false", `{"success":false,"chapters":[]}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &bridgeStub{getBody: tt.getBody, contentType: tt.contentType}
			server := httptest.NewServer(stub.handler())
			defer server.Close()

			client := sheetsync.NewClient(server.URL, testLogger())
			assert.Empty(t, client.Pull(context.Background(), "course-1"))
		})
	}

	t.Run("unreachable_endpoint", func(t *testing.T) {
		client := sheetsync.NewClient("http://127.0.0.1:1", testLogger())
		assert.Empty(t, client.Pull(context.Background(), "course-1"))
	})
}

/*
TestClient_Push_Verified covers the full write path: acknowledged save,
read-back with a matching lesson count, verified result.
*/
func TestClient_Push_Verified(t *testing.T) {
	tree := sampleTree(2)
	stub := &bridgeStub{
		saveBody: `{"success":true,"message":"saved"}`,
		getBody: `{"success":true,"chapters":[
			{"id":"ch-1","title":"Basics","lessons":[
				{"id":"ls-1","title":"Lesson 1","directPlayUrl":"https://iframe.mediadelivery.net/embed/lib/v1"},
				{"id":"ls-2","title":"Lesson 2","directPlayUrl":"https://iframe.mediadelivery.net/embed/lib/v2"}
			]}
		]}`,
	}
	server := httptest.NewServer(stub.handler())
	defer server.Close()

	client := sheetsync.NewClient(server.URL, testLogger())
	result, err := client.Push(context.Background(), "course-1", tree)

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.True(t, result.Verified)
	assert.Equal(t, 2, result.SavedLessonCount)
	assert.Empty(t, result.Warning)

	// The bridge received the whole serialized tree in one query field.
	assert.Equal(t, 1, stub.saveRequests)
	assert.Contains(t, stub.lastChapters, `"id":"ls-2"`)
	// Legacy fields never round-trip back out.
	assert.NotContains(t, stub.lastChapters, "videoId")
}

/*
TestClient_Push_CountMismatch verifies that a read-back count mismatch marks
the result unverified while keeping it successful.
*/
func TestClient_Push_CountMismatch(t *testing.T) {
	stub := &bridgeStub{
		saveBody: `{"success":true,"message":"saved"}`,
		getBody: `{"success":true,"chapters":[
			{"id":"ch-1","lessons":[{"id":"ls-1","title":"Lesson 1"}]}
		]}`,
	}
	server := httptest.NewServer(stub.handler())
	defer server.Close()

	client := sheetsync.NewClient(server.URL, testLogger())
	result, err := client.Push(context.Background(), "course-1", sampleTree(3))

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.False(t, result.Verified)
	assert.Equal(t, 1, result.SavedLessonCount)
}

/*
TestClient_Push_TransportFailure verifies that an HTML body — the Apps Script
runtime serves error pages with status 200 — is classified as a transport
failure by content type.
*/
func TestClient_Push_TransportFailure(t *testing.T) {
	stub := &bridgeStub{
		saveBody:    "<html>Authorization needed</html>",
		contentType: "text/html",
	}
	server := httptest.NewServer(stub.handler())
	defer server.Close()

	client := sheetsync.NewClient(server.URL, testLogger())
	result, err := client.Push(context.Background(), "course-1", sampleTree(1))

	require.Error(t, err)
	assert.False(t, result.Success)

	var syncErr *content.SyncError
	require.ErrorAs(t, err, &syncErr)
	assert.Equal(t, content.SyncReasonTransport, syncErr.Reason)
}

/*
TestClient_Push_Rejected verifies the application-level rejection: valid JSON
carrying success false.
*/
func TestClient_Push_Rejected(t *testing.T) {
	stub := &bridgeStub{
		saveBody: `{"success":false,"message":"sheet is read-only"}`,
	}
	server := httptest.NewServer(stub.handler())
	defer server.Close()

	client := sheetsync.NewClient(server.URL, testLogger())
	_, err := client.Push(context.Background(), "course-1", sampleTree(1))

	var syncErr *content.SyncError
	require.ErrorAs(t, err, &syncErr)
	assert.Equal(t, content.SyncReasonRejected, syncErr.Reason)
	assert.Contains(t, syncErr.Message, "read-only")
}

/*
TestClient_Push_URLLimitWarning verifies that an oversized payload raises a
warning on the result without blocking the write.
*/
func TestClient_Push_URLLimitWarning(t *testing.T) {
	// A long title pushes the encoded request past the URL ceiling.
	tree := sampleTree(1)
	tree[0].Lessons[0].Title = strings.Repeat("A very long lesson title ", 400)

	stub := &bridgeStub{
		saveBody: `{"success":true,"message":"saved"}`,
		getBody:  `{"success":true,"chapters":[]}`,
	}
	server := httptest.NewServer(stub.handler())
	defer server.Close()

	client := sheetsync.NewClient(server.URL, testLogger())
	result, err := client.Push(context.Background(), "course-1", tree)

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.NotEmpty(t, result.Warning)
	assert.Equal(t, 1, stub.saveRequests)
}
