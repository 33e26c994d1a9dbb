// Copyright (c) 2026 Coursia. All rights reserved.
// Author: lam.vothanh.dev@gmail.com

package content_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lamvothanh/coursia/internal/content"
	"github.com/lamvothanh/coursia/internal/platform/apperr"
)

// memoryTreeStore is an in-memory TreeRepository for service tests.
type memoryTreeStore struct {
	trees map[string]content.Tree
	saves int
}

func newMemoryTreeStore() *memoryTreeStore {
	return &memoryTreeStore{trees: make(map[string]content.Tree)}
}

func (s *memoryTreeStore) Load(_ context.Context, courseID string) content.Tree {
	return s.trees[courseID].Clone()
}

func (s *memoryTreeStore) Save(_ context.Context, courseID string, tree content.Tree) {
	s.trees[courseID] = tree.Clone()
	s.saves++
}

// stubRemote is a canned RemoteRepository.
type stubRemote struct {
	pullTree   content.Tree
	pushResult content.PushResult
	pushErr    error
	pushed     content.Tree
}

func (r *stubRemote) Pull(_ context.Context, _ string) content.Tree {
	return r.pullTree
}

func (r *stubRemote) Push(_ context.Context, _ string, tree content.Tree) (content.PushResult, error) {
	r.pushed = tree
	return r.pushResult, r.pushErr
}

func newTestService(t *testing.T) (*content.Service, *memoryTreeStore, *stubRemote) {
	t.Helper()
	store := newMemoryTreeStore()
	remote := &stubRemote{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return content.NewService(store, remote, logger), store, remote
}

/*
TestService_GetTree verifies that a course with no stored content yields an
empty tree rather than an error.
*/
func TestService_GetTree(t *testing.T) {
	service, store, _ := newTestService(t)
	ctx := context.Background()

	assert.Empty(t, service.GetTree(ctx, "course-1"))

	store.trees["course-1"] = seedTree()
	assert.Equal(t, 4, service.GetTree(ctx, "course-1").LessonCount())
}

/*
TestService_AddChapter verifies persistence of the new tree and title
validation.
*/
func TestService_AddChapter(t *testing.T) {
	service, store, _ := newTestService(t)
	ctx := context.Background()

	tree, err := service.AddChapter(ctx, "course-1", "Basics")
	require.NoError(t, err)
	require.Len(t, tree, 1)
	assert.Equal(t, "Basics", tree[0].Title)

	// Saved, not just returned.
	assert.Len(t, store.trees["course-1"], 1)

	_, err = service.AddChapter(ctx, "course-1", "  ")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

/*
TestService_RenameChapter verifies the not-found path surfaces as an error at
the service layer even though the transform itself is a silent no-op.
*/
func TestService_RenameChapter(t *testing.T) {
	service, store, _ := newTestService(t)
	ctx := context.Background()
	store.trees["course-1"] = seedTree()

	tree, err := service.RenameChapter(ctx, "course-1", "ch-1", "Foundations")
	require.NoError(t, err)
	assert.Equal(t, "Foundations", tree[0].Title)

	_, err = service.RenameChapter(ctx, "course-1", "ch-missing", "X")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

/*
TestService_DeleteChapter verifies the cascade persists and unknown chapters
report not found.
*/
func TestService_DeleteChapter(t *testing.T) {
	service, store, _ := newTestService(t)
	ctx := context.Background()
	store.trees["course-1"] = seedTree()

	tree, err := service.DeleteChapter(ctx, "course-1", "ch-1")
	require.NoError(t, err)
	assert.Equal(t, 1, tree.LessonCount())
	assert.Equal(t, 1, store.trees["course-1"].LessonCount())

	_, err = service.DeleteChapter(ctx, "course-1", "ch-1")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

/*
TestService_LessonAuthoring covers add, edit, and delete through the service
including their error paths.
*/
func TestService_LessonAuthoring(t *testing.T) {
	service, store, _ := newTestService(t)
	ctx := context.Background()
	store.trees["course-1"] = seedTree()

	tree, err := service.AddLesson(ctx, "course-1", "ch-2", content.LessonFields{Title: "Channels"})
	require.NoError(t, err)
	require.Len(t, tree[1].Lessons, 2)
	addedID := tree[1].Lessons[1].ID

	tree, err = service.EditLesson(ctx, "course-1", "ch-2", addedID, content.LessonFields{Title: "Go Channels"})
	require.NoError(t, err)
	assert.Equal(t, "Go Channels", tree[1].Lessons[1].Title)

	tree, err = service.DeleteLesson(ctx, "course-1", "ch-2", addedID)
	require.NoError(t, err)
	assert.Len(t, tree[1].Lessons, 1)

	_, err = service.AddLesson(ctx, "course-1", "ch-2", content.LessonFields{Title: ""})
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)

	_, err = service.AddLesson(ctx, "course-1", "ch-missing", content.LessonFields{Title: "X"})
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)

	_, err = service.EditLesson(ctx, "course-1", "ch-2", "ls-missing", content.LessonFields{Title: "X"})
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)

	_, err = service.DeleteLesson(ctx, "course-1", "ch-2", "ls-missing")
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

/*
TestService_ReorderLesson verifies index validation against the chapter's
bounds and the equal-indices rejection.
*/
func TestService_ReorderLesson(t *testing.T) {
	service, store, _ := newTestService(t)
	ctx := context.Background()
	store.trees["course-1"] = seedTree()

	tree, err := service.ReorderLesson(ctx, "course-1", "ch-1", 0, 2)
	require.NoError(t, err)
	assert.Equal(t, "ls-1", tree[0].Lessons[2].ID)

	_, err = service.ReorderLesson(ctx, "course-1", "ch-missing", 0, 1)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)

	_, err = service.ReorderLesson(ctx, "course-1", "ch-1", 0, 5)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)

	_, err = service.ReorderLesson(ctx, "course-1", "ch-1", 1, 1)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

/*
TestService_SyncPush verifies that the push carries the locally persisted
tree and that remote failures pass through as sync errors.
*/
func TestService_SyncPush(t *testing.T) {
	service, store, remote := newTestService(t)
	ctx := context.Background()
	store.trees["course-1"] = seedTree()

	remote.pushResult = content.PushResult{Success: true, Verified: true, SavedLessonCount: 4}

	result, err := service.SyncPush(ctx, "course-1")
	require.NoError(t, err)
	assert.True(t, result.Verified)
	assert.Equal(t, 4, remote.pushed.LessonCount())

	remote.pushErr = &content.SyncError{Reason: content.SyncReasonTransport, Message: "timeout"}
	_, err = service.SyncPush(ctx, "course-1")
	require.Error(t, err)

	var syncErr *content.SyncError
	require.ErrorAs(t, err, &syncErr)
	assert.Equal(t, content.SyncReasonTransport, syncErr.Reason)
}

/*
TestService_SyncPull verifies that an empty remote keeps the local tree
authoritative while a non-empty remote replaces it.
*/
func TestService_SyncPull(t *testing.T) {
	service, store, remote := newTestService(t)
	ctx := context.Background()
	store.trees["course-1"] = seedTree()

	// Empty remote: local copy untouched.
	tree := service.SyncPull(ctx, "course-1")
	assert.Equal(t, 4, tree.LessonCount())
	assert.Equal(t, 0, store.saves)

	// Non-empty remote: last write wins.
	remote.pullTree = content.Tree{
		{ID: "ch-9", Title: "Remote", Lessons: []content.Lesson{{ID: "ls-9", Title: "Only"}}},
	}
	tree = service.SyncPull(ctx, "course-1")
	assert.Equal(t, 1, tree.LessonCount())
	assert.Equal(t, "ch-9", store.trees["course-1"][0].ID)
}

/*
TestService_ResolvePlayer verifies the bundled player view.
*/
func TestService_ResolvePlayer(t *testing.T) {
	service, store, _ := newTestService(t)
	ctx := context.Background()
	store.trees["course-1"] = gatedTree()

	player := service.ResolvePlayer(ctx, "course-1", content.LevelFree)
	assert.Len(t, player.Chapters, 2)
	assert.Equal(t, "ls-3", player.Selection.LessonID)
	assert.True(t, player.Selection.Playable)
}

/*
TestService_Navigate verifies direction dispatch.
*/
func TestService_Navigate(t *testing.T) {
	service, store, _ := newTestService(t)
	ctx := context.Background()
	store.trees["course-1"] = gatedTree()

	next := service.Navigate(ctx, "course-1", "ls-2", content.LevelFree, true)
	assert.Equal(t, "ls-3", next.LessonID)

	prev := service.Navigate(ctx, "course-1", "ls-3", content.LevelVIP, false)
	assert.Equal(t, "ls-2", prev.LessonID)
}
