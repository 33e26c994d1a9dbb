// Copyright (c) 2026 Coursia. All rights reserved.
// Author: lam.vothanh.dev@gmail.com

package learning_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lamvothanh/coursia/internal/catalog"
	"github.com/lamvothanh/coursia/internal/content"
	"github.com/lamvothanh/coursia/internal/learning"
	"github.com/lamvothanh/coursia/internal/platform/apperr"
)

const (
	testUserID   = "11111111-1111-7111-8111-111111111111"
	testCourseID = "22222222-2222-7222-8222-222222222222"
)

// stubCourses resolves canned catalog courses.
type stubCourses struct {
	courses map[string]*catalog.Course
}

func (s *stubCourses) GetCourse(_ context.Context, idOrSlug string) (*catalog.Course, error) {
	course, ok := s.courses[idOrSlug]
	if !ok {
		return nil, apperr.NotFound("Course")
	}
	return course, nil
}

// memoryEnrollmentStore is an in-memory EnrollmentRepository.
type memoryEnrollmentStore struct {
	enrollments []*learning.Enrollment
}

func (s *memoryEnrollmentStore) Create(_ context.Context, enrollment *learning.Enrollment) error {
	s.enrollments = append(s.enrollments, enrollment)
	return nil
}

func (s *memoryEnrollmentStore) FindByUserAndCourse(_ context.Context, userID, courseID string) (*learning.Enrollment, error) {
	for _, enrollment := range s.enrollments {
		if enrollment.UserID == userID && enrollment.CourseID == courseID {
			return enrollment, nil
		}
	}
	return nil, apperr.NotFound("Enrollment")
}

func (s *memoryEnrollmentStore) ListByUser(_ context.Context, userID string) ([]learning.Enrollment, error) {
	var result []learning.Enrollment
	for _, enrollment := range s.enrollments {
		if enrollment.UserID == userID {
			result = append(result, *enrollment)
		}
	}
	return result, nil
}

// memoryProgressStore is an in-memory ProgressRepository.
type memoryProgressStore struct {
	records map[string][]string // userID -> completed lesson IDs
}

func newMemoryProgressStore() *memoryProgressStore {
	return &memoryProgressStore{records: make(map[string][]string)}
}

func (s *memoryProgressStore) Upsert(_ context.Context, progress *learning.LessonProgress) error {
	for _, id := range s.records[progress.UserID] {
		if id == progress.LessonID {
			return nil
		}
	}
	s.records[progress.UserID] = append(s.records[progress.UserID], progress.LessonID)
	return nil
}

func (s *memoryProgressStore) Delete(_ context.Context, userID, lessonID string) error {
	kept := s.records[userID][:0]
	for _, id := range s.records[userID] {
		if id != lessonID {
			kept = append(kept, id)
		}
	}
	s.records[userID] = kept
	return nil
}

func (s *memoryProgressStore) ListLessonIDs(_ context.Context, userID, _ string) ([]string, error) {
	return s.records[userID], nil
}

// memoryTreeStore is an in-memory content.TreeRepository.
type memoryTreeStore struct {
	trees map[string]content.Tree
}

func (s *memoryTreeStore) Load(_ context.Context, courseID string) content.Tree {
	return s.trees[courseID]
}

func (s *memoryTreeStore) Save(_ context.Context, courseID string, tree content.Tree) {
	s.trees[courseID] = tree
}

type fixtures struct {
	service     *learning.Service
	enrollments *memoryEnrollmentStore
	progress    *memoryProgressStore
	trees       *memoryTreeStore
	course      *catalog.Course
}

// newFixtures wires the service around a published three-lesson course.
func newFixtures(t *testing.T) *fixtures {
	t.Helper()

	course := &catalog.Course{
		ID:          testCourseID,
		Title:       "Intro to Go",
		Slug:        "intro-to-go",
		IsPublished: true,
	}

	enrollments := &memoryEnrollmentStore{}
	progress := newMemoryProgressStore()
	trees := &memoryTreeStore{trees: map[string]content.Tree{
		testCourseID: {
			{
				ID: "ch-1",
				Lessons: []content.Lesson{
					{ID: "ls-1", Title: "Intro"},
					{ID: "ls-2", Title: "Setup"},
				},
			},
			{
				ID:      "ch-2",
				Lessons: []content.Lesson{{ID: "ls-3", Title: "Concurrency"}},
			},
		},
	}}

	courses := &stubCourses{courses: map[string]*catalog.Course{course.ID: course}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return &fixtures{
		service:     learning.NewService(enrollments, progress, courses, trees, logger),
		enrollments: enrollments,
		progress:    progress,
		trees:       trees,
		course:      course,
	}
}

/*
TestService_Enroll verifies enrollment preconditions and idempotency.
*/
func TestService_Enroll(t *testing.T) {
	fx := newFixtures(t)
	ctx := context.Background()

	first, err := fx.service.Enroll(ctx, testUserID, testCourseID)
	require.NoError(t, err)
	assert.Equal(t, testUserID, first.UserID)
	assert.NotEmpty(t, first.ID)

	t.Run("idempotent", func(t *testing.T) {
		again, err := fx.service.Enroll(ctx, testUserID, testCourseID)
		require.NoError(t, err)
		assert.Equal(t, first.ID, again.ID)
		assert.Len(t, fx.enrollments.enrollments, 1)
	})

	t.Run("unknown_course", func(t *testing.T) {
		_, err := fx.service.Enroll(ctx, testUserID, "33333333-3333-7333-8333-333333333333")
		assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
	})

	t.Run("unpublished_course_hidden", func(t *testing.T) {
		fx.course.IsPublished = false
		defer func() { fx.course.IsPublished = true }()

		_, err := fx.service.Enroll(ctx, testUserID, testCourseID)
		assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
	})
}

/*
TestService_ListEnrollments verifies per-user scoping.
*/
func TestService_ListEnrollments(t *testing.T) {
	fx := newFixtures(t)
	ctx := context.Background()

	_, err := fx.service.Enroll(ctx, testUserID, testCourseID)
	require.NoError(t, err)

	mine, err := fx.service.ListEnrollments(ctx, testUserID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	others, err := fx.service.ListEnrollments(ctx, "44444444-4444-7444-8444-444444444444")
	require.NoError(t, err)
	assert.Empty(t, others)
}

/*
TestService_MarkLessonComplete verifies the enrollment gate and the
live-lesson check.
*/
func TestService_MarkLessonComplete(t *testing.T) {
	fx := newFixtures(t)
	ctx := context.Background()

	t.Run("requires_enrollment", func(t *testing.T) {
		err := fx.service.MarkLessonComplete(ctx, testUserID, testCourseID, "ls-1")
		assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)
	})

	_, err := fx.service.Enroll(ctx, testUserID, testCourseID)
	require.NoError(t, err)

	t.Run("records_completion", func(t *testing.T) {
		require.NoError(t, fx.service.MarkLessonComplete(ctx, testUserID, testCourseID, "ls-1"))
		assert.Equal(t, []string{"ls-1"}, fx.progress.records[testUserID])
	})

	t.Run("stale_lesson_rejected", func(t *testing.T) {
		err := fx.service.MarkLessonComplete(ctx, testUserID, testCourseID, "ls-gone")
		assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
	})
}

/*
TestService_UnmarkLessonComplete verifies completion removal.
*/
func TestService_UnmarkLessonComplete(t *testing.T) {
	fx := newFixtures(t)
	ctx := context.Background()

	_, err := fx.service.Enroll(ctx, testUserID, testCourseID)
	require.NoError(t, err)
	require.NoError(t, fx.service.MarkLessonComplete(ctx, testUserID, testCourseID, "ls-1"))

	require.NoError(t, fx.service.UnmarkLessonComplete(ctx, testUserID, "ls-1"))
	assert.Empty(t, fx.progress.records[testUserID])
}

/*
TestService_GetCourseProgress verifies the percentage math and that
completions for restructured-away lessons are excluded.
*/
func TestService_GetCourseProgress(t *testing.T) {
	fx := newFixtures(t)
	ctx := context.Background()

	_, err := fx.service.Enroll(ctx, testUserID, testCourseID)
	require.NoError(t, err)

	require.NoError(t, fx.service.MarkLessonComplete(ctx, testUserID, testCourseID, "ls-1"))
	require.NoError(t, fx.service.MarkLessonComplete(ctx, testUserID, testCourseID, "ls-3"))

	progress, err := fx.service.GetCourseProgress(ctx, testUserID, testCourseID)
	require.NoError(t, err)
	assert.Equal(t, 2, progress.CompletedLessons)
	assert.Equal(t, 3, progress.TotalLessons)
	assert.InDelta(t, 66.67, progress.Percent, 0.01)

	t.Run("stale_completions_excluded", func(t *testing.T) {
		// The author deletes the chapter holding ls-3.
		tree := fx.trees.trees[testCourseID]
		fx.trees.trees[testCourseID] = content.DeleteChapter(tree, "ch-2")

		progress, err := fx.service.GetCourseProgress(ctx, testUserID, testCourseID)
		require.NoError(t, err)
		assert.Equal(t, 1, progress.CompletedLessons)
		assert.Equal(t, 2, progress.TotalLessons)
		assert.Equal(t, []string{"ls-1"}, progress.CompletedIDs)
		assert.InDelta(t, 50.0, progress.Percent, 0.01)
	})

	t.Run("requires_enrollment", func(t *testing.T) {
		_, err := fx.service.GetCourseProgress(ctx, "44444444-4444-7444-8444-444444444444", testCourseID)
		assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)
	})

	t.Run("empty_course_is_zero_percent", func(t *testing.T) {
		fx.trees.trees[testCourseID] = content.Tree{}
		progress, err := fx.service.GetCourseProgress(ctx, testUserID, testCourseID)
		require.NoError(t, err)
		assert.Equal(t, 0, progress.TotalLessons)
		assert.Zero(t, progress.Percent)
	})
}
