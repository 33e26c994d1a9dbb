// Copyright (c) 2026 Coursia. All rights reserved.
// Author: lam.vothanh.dev@gmail.com

package content

import (
	"context"
	"log/slog"

	"github.com/lamvothanh/coursia/internal/platform/apperr"
	"github.com/lamvothanh/coursia/internal/platform/validate"
)

const (
	FieldTitle     = "title"
	FieldChapterID = "chapter_id"
	FieldLessonID  = "lesson_id"
	FieldFromIndex = "from_index"
	FieldToIndex   = "to_index"
)

// # Service Layer

// Service orchestrates authoring, persistence, and playback resolution for
// course content trees.
//
// Every successful authoring call persists the full new tree to the local
// store before returning. Remote sync is a separate, explicitly triggered
// operation — it carries higher latency and failure risk than a local save
// and must never ride along with every keystroke.
type Service struct {
	local  TreeRepository
	remote RemoteRepository
	logger *slog.Logger
}

// NewService constructs a new [Service] with its required adapters.
func NewService(local TreeRepository, remote RemoteRepository, logger *slog.Logger) *Service {
	return &Service{
		local:  local,
		remote: remote,
		logger: logger,
	}
}

// # Tree Retrieval

// GetTree returns the locally persisted tree for a course. Always succeeds;
// a course with no stored content yields an empty tree.
func (service *Service) GetTree(ctx context.Context, courseID string) Tree {
	return service.local.Load(ctx, courseID)
}

// # Chapter Authoring

/*
AddChapter appends a new chapter to a course's tree.

Parameters:
  - ctx: context.Context
  - courseID: string
  - title: string (non-empty after trimming)

Returns:
  - Tree: The new tree including the appended chapter
  - error: Validation errors
*/
func (service *Service) AddChapter(ctx context.Context, courseID, title string) (Tree, error) {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, title)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	tree := service.local.Load(ctx, courseID)
	next := AddChapter(tree, title)
	service.local.Save(ctx, courseID, next)

	service.logger.Info("chapter_added",
		slog.String("course_id", courseID),
		slog.Int("chapter_count", len(next)),
	)

	return next, nil
}

/*
RenameChapter replaces a chapter's title.

Parameters:
  - ctx: context.Context
  - courseID: string
  - chapterID: string
  - title: string (non-empty after trimming)

Returns:
  - Tree: The updated tree
  - error: Validation errors, or [apperr.NotFound] for an unknown chapter
*/
func (service *Service) RenameChapter(ctx context.Context, courseID, chapterID, title string) (Tree, error) {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, title)
	validator.Required(FieldChapterID, chapterID)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	tree := service.local.Load(ctx, courseID)
	if tree.findChapter(chapterID) < 0 {
		return nil, apperr.NotFound("Chapter")
	}

	next := RenameChapter(tree, chapterID, title)
	service.local.Save(ctx, courseID, next)
	return next, nil
}

/*
DeleteChapter removes a chapter and all of its lessons.

Description: Irreversible — there is no undo and no soft-delete.

Parameters:
  - ctx: context.Context
  - courseID: string
  - chapterID: string

Returns:
  - Tree: The tree without the chapter
  - error: [apperr.NotFound] for an unknown chapter
*/
func (service *Service) DeleteChapter(ctx context.Context, courseID, chapterID string) (Tree, error) {
	tree := service.local.Load(ctx, courseID)
	if tree.findChapter(chapterID) < 0 {
		return nil, apperr.NotFound("Chapter")
	}

	next := DeleteChapter(tree, chapterID)
	service.local.Save(ctx, courseID, next)

	service.logger.Info("chapter_deleted",
		slog.String("course_id", courseID),
		slog.String("chapter_id", chapterID),
	)

	return next, nil
}

// # Lesson Authoring

/*
AddLesson appends a lesson to the end of a chapter's lesson list.

Parameters:
  - ctx: context.Context
  - courseID: string
  - chapterID: string
  - fields: LessonFields (title required)

Returns:
  - Tree: The updated tree
  - error: Validation errors, or [apperr.NotFound] for an unknown chapter
*/
func (service *Service) AddLesson(ctx context.Context, courseID, chapterID string, fields LessonFields) (Tree, error) {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, fields.Title)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	tree := service.local.Load(ctx, courseID)
	if tree.findChapter(chapterID) < 0 {
		return nil, apperr.NotFound("Chapter")
	}

	next := AddLesson(tree, chapterID, fields)
	service.local.Save(ctx, courseID, next)
	return next, nil
}

/*
EditLesson replaces the mutable fields of a lesson, preserving its ID and
position.

Parameters:
  - ctx: context.Context
  - courseID: string
  - chapterID: string
  - lessonID: string
  - fields: LessonFields (title required)

Returns:
  - Tree: The updated tree
  - error: Validation errors, or [apperr.NotFound] for an unknown lesson
*/
func (service *Service) EditLesson(ctx context.Context, courseID, chapterID, lessonID string, fields LessonFields) (Tree, error) {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, fields.Title)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	tree := service.local.Load(ctx, courseID)
	if chapterIndex, _ := tree.findLesson(chapterID, lessonID); chapterIndex < 0 {
		return nil, apperr.NotFound("Lesson")
	}

	next := EditLesson(tree, chapterID, lessonID, fields)
	service.local.Save(ctx, courseID, next)
	return next, nil
}

/*
DeleteLesson removes a single lesson from its chapter.

Parameters:
  - ctx: context.Context
  - courseID: string
  - chapterID: string
  - lessonID: string

Returns:
  - Tree: The updated tree
  - error: [apperr.NotFound] for an unknown lesson
*/
func (service *Service) DeleteLesson(ctx context.Context, courseID, chapterID, lessonID string) (Tree, error) {
	tree := service.local.Load(ctx, courseID)
	if chapterIndex, _ := tree.findLesson(chapterID, lessonID); chapterIndex < 0 {
		return nil, apperr.NotFound("Lesson")
	}

	next := DeleteLesson(tree, chapterID, lessonID)
	service.local.Save(ctx, courseID, next)
	return next, nil
}

/*
ReorderLesson moves a lesson within one chapter.

Description: Reordering never crosses chapters. The indices must both fall
inside the chapter's lesson list and differ from each other.

Parameters:
  - ctx: context.Context
  - courseID: string
  - chapterID: string
  - fromIndex: int
  - toIndex: int

Returns:
  - Tree: The updated tree
  - error: Validation errors, or [apperr.NotFound] for an unknown chapter
*/
func (service *Service) ReorderLesson(ctx context.Context, courseID, chapterID string, fromIndex, toIndex int) (Tree, error) {
	tree := service.local.Load(ctx, courseID)

	chapterIndex := tree.findChapter(chapterID)
	if chapterIndex < 0 {
		return nil, apperr.NotFound("Chapter")
	}

	lessonCount := len(tree[chapterIndex].Lessons)
	validator := &validate.Validator{}
	validator.Range(FieldFromIndex, fromIndex, 0, lessonCount-1)
	validator.Range(FieldToIndex, toIndex, 0, lessonCount-1)
	validator.Custom(FieldToIndex, fromIndex == toIndex, "Source and target positions are identical")
	if err := validator.Err(); err != nil {
		return nil, err
	}

	next := ReorderLesson(tree, chapterID, fromIndex, toIndex)
	service.local.Save(ctx, courseID, next)
	return next, nil
}

// # Remote Sync

/*
SyncPush propagates the locally persisted tree to the remote store.

Description: Best-effort and explicitly user-triggered. Failure leaves the
local tree untouched and authoritative; the caller surfaces a retry
affordance instead of blocking further edits.

Parameters:
  - ctx: context.Context
  - courseID: string

Returns:
  - PushResult: Success/Verified signals and the read-back lesson count
  - error: A [*SyncError] on transport failure or remote rejection
*/
func (service *Service) SyncPush(ctx context.Context, courseID string) (PushResult, error) {
	tree := service.local.Load(ctx, courseID)

	result, err := service.remote.Push(ctx, courseID, tree)
	if err != nil {
		return result, err
	}

	service.logger.Info("content_sync_pushed",
		slog.String("course_id", courseID),
		slog.Bool("verified", result.Verified),
		slog.Int("saved_lessons", result.SavedLessonCount),
	)

	return result, nil
}

/*
SyncPull refreshes the local tree from the remote store.

Description: An empty remote result means "nothing remote yet" and leaves
the local tree untouched; a non-empty result replaces the local copy
(last write wins — there is no merge or conflict detection).

Parameters:
  - ctx: context.Context
  - courseID: string

Returns:
  - Tree: The tree now persisted locally
*/
func (service *Service) SyncPull(ctx context.Context, courseID string) Tree {
	remote := service.remote.Pull(ctx, courseID)
	if len(remote) == 0 {
		return service.local.Load(ctx, courseID)
	}

	service.local.Save(ctx, courseID, remote)

	service.logger.Info("content_sync_pulled",
		slog.String("course_id", courseID),
		slog.Int("lessons", remote.LessonCount()),
	)

	return remote
}

// # Playback

// Player bundles everything the player surface needs for one course/viewer.
type Player struct {
	Chapters  Tree      `json:"chapters"`
	Selection Selection `json:"selection"`
}

/*
ResolvePlayer prepares the player view for a viewer's membership tier.

Parameters:
  - ctx: context.Context
  - courseID: string
  - viewer: AccessLevel

Returns:
  - Player: The tree plus the initially selected lesson
*/
func (service *Service) ResolvePlayer(ctx context.Context, courseID string, viewer AccessLevel) Player {
	tree := service.local.Load(ctx, courseID)
	return Player{
		Chapters:  tree,
		Selection: ResolveInitial(tree, viewer),
	}
}

/*
Navigate resolves a next/previous move from the current lesson.

Description: Moves onto a lesson above the viewer's tier are silently
rejected; the current selection comes back unchanged.

Parameters:
  - ctx: context.Context
  - courseID: string
  - currentID: string (the currently selected lesson)
  - viewer: AccessLevel
  - forward: bool (true = next, false = previous)

Returns:
  - Selection: The resulting selection
*/
func (service *Service) Navigate(ctx context.Context, courseID, currentID string, viewer AccessLevel, forward bool) Selection {
	tree := service.local.Load(ctx, courseID)
	if forward {
		return Next(tree, currentID, viewer)
	}
	return Prev(tree, currentID, viewer)
}
