// Copyright (c) 2026 Coursia. All rights reserved.
// Author: lam.vothanh.dev@gmail.com

package learning

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lamvothanh/coursia/internal/catalog"
	"github.com/lamvothanh/coursia/internal/content"
	"github.com/lamvothanh/coursia/internal/platform/apperr"
	"github.com/lamvothanh/coursia/pkg/slice"
	"github.com/lamvothanh/coursia/pkg/uuid"
)

// # Contracts & Types

// CourseResolver looks up catalog courses without coupling this package to
// the full catalog service surface.
type CourseResolver interface {
	// GetCourse resolves a course by its ID or URL slug.
	GetCourse(context context.Context, idOrSlug string) (*catalog.Course, error)
}

// # Service Layer

// Service orchestrates enrollment and progress tracking.
type Service struct {
	enrollmentRepository EnrollmentRepository
	progressRepository   ProgressRepository
	courses              CourseResolver
	trees                content.TreeRepository
	logger               *slog.Logger
}

// NewService constructs a new learning [Service].
func NewService(
	enrollmentRepo EnrollmentRepository,
	progressRepo ProgressRepository,
	courses CourseResolver,
	trees content.TreeRepository,
	logger *slog.Logger,
) *Service {
	return &Service{
		enrollmentRepository: enrollmentRepo,
		progressRepository:   progressRepo,
		courses:              courses,
		trees:                trees,
		logger:               logger,
	}
}

// # Enrollment

/*
Enroll joins a learner into a course.

Description: The course must exist and be published. Enrolling in a course the
learner already joined is idempotent and returns the existing enrollment.

Parameters:
  - context: context.Context
  - userID: string
  - courseID: string

Returns:
  - *Enrollment: The (possibly pre-existing) enrollment
  - err: Not found, forbidden, or storage errors
*/
func (service *Service) Enroll(context context.Context, userID, courseID string) (*Enrollment, error) {

	course, err := service.courses.GetCourse(context, courseID)
	if err != nil {
		return nil, err
	}

	if !course.IsPublished {
		return nil, apperr.NotFound("Course")
	}

	// Idempotency: hand back the existing enrollment when present
	if existing, err := service.enrollmentRepository.FindByUserAndCourse(context, userID, course.ID); err == nil {
		return existing, nil
	}

	enrollment := &Enrollment{
		ID:         uuid.New(),
		UserID:     userID,
		CourseID:   course.ID,
		EnrolledAt: time.Now(),
	}

	if err := service.enrollmentRepository.Create(context, enrollment); err != nil {
		return nil, fmt.Errorf("learning_service_enroll_failed: %w", err)
	}

	service.logger.Info("learner_enrolled",
		slog.String("user_id", userID),
		slog.String("course_id", course.ID),
	)

	return enrollment, nil
}

/*
ListEnrollments returns every course the learner has joined, newest first.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - []Enrollment: All enrollments
  - err: Storage errors
*/
func (service *Service) ListEnrollments(context context.Context, userID string) ([]Enrollment, error) {
	enrollments, err := service.enrollmentRepository.ListByUser(context, userID)
	if err != nil {
		return nil, fmt.Errorf("learning_service_list_enrollments_failed: %w", err)
	}
	return enrollments, nil
}

// # Lesson Progress

/*
MarkLessonComplete records that the learner finished a lesson.

Description: Requires an active enrollment, and the lesson must exist in the
course's current content tree — stale lesson IDs from a restructured course
are rejected rather than silently stored.

Parameters:
  - context: context.Context
  - userID: string
  - courseID: string
  - lessonID: string

Returns:
  - err: Not found, forbidden, or storage errors
*/
func (service *Service) MarkLessonComplete(context context.Context, userID, courseID, lessonID string) error {

	if _, err := service.enrollmentRepository.FindByUserAndCourse(context, userID, courseID); err != nil {
		return apperr.Forbidden("Not enrolled in this course")
	}

	if !service.lessonExists(context, courseID, lessonID) {
		return apperr.NotFound("Lesson")
	}

	progress := &LessonProgress{
		UserID:      userID,
		CourseID:    courseID,
		LessonID:    lessonID,
		CompletedAt: time.Now(),
	}

	if err := service.progressRepository.Upsert(context, progress); err != nil {
		return fmt.Errorf("learning_service_mark_complete_failed: %w", err)
	}

	service.logger.Info("lesson_completed",
		slog.String("user_id", userID),
		slog.String("course_id", courseID),
		slog.String("lesson_id", lessonID),
	)

	return nil
}

/*
UnmarkLessonComplete removes a completion record.

Parameters:
  - context: context.Context
  - userID: string
  - lessonID: string

Returns:
  - err: Storage errors
*/
func (service *Service) UnmarkLessonComplete(context context.Context, userID, lessonID string) error {
	if err := service.progressRepository.Delete(context, userID, lessonID); err != nil {
		return fmt.Errorf("learning_service_unmark_complete_failed: %w", err)
	}
	return nil
}

/*
GetCourseProgress summarizes the learner's completion state for a course.

Description: The total lesson count comes from the live content tree, so
completion records for lessons that no longer exist are excluded from the
completed figure. An empty course reports zero percent.

Parameters:
  - context: context.Context
  - userID: string
  - courseID: string

Returns:
  - *CourseProgress: Completion summary
  - err: Forbidden or storage errors
*/
func (service *Service) GetCourseProgress(context context.Context, userID, courseID string) (*CourseProgress, error) {

	if _, err := service.enrollmentRepository.FindByUserAndCourse(context, userID, courseID); err != nil {
		return nil, apperr.Forbidden("Not enrolled in this course")
	}

	completedIDs, err := service.progressRepository.ListLessonIDs(context, userID, courseID)
	if err != nil {
		return nil, fmt.Errorf("learning_service_progress_failed: %w", err)
	}

	tree := service.trees.Load(context, courseID)

	// Count only completions that still map to a live lesson
	live := make(map[string]bool)
	for _, flat := range tree.Flatten() {
		live[flat.Lesson.ID] = true
	}

	stillValid := slice.Filter(completedIDs, func(id string) bool { return live[id] })

	total := tree.LessonCount()
	progress := &CourseProgress{
		CourseID:         courseID,
		CompletedLessons: len(stillValid),
		TotalLessons:     total,
		CompletedIDs:     stillValid,
	}

	if total > 0 {
		progress.Percent = float64(len(stillValid)) / float64(total) * 100
	}

	return progress, nil
}

// lessonExists reports whether the lesson is present in the course tree.
func (service *Service) lessonExists(context context.Context, courseID, lessonID string) bool {
	for _, flat := range service.trees.Load(context, courseID).Flatten() {
		if flat.Lesson.ID == lessonID {
			return true
		}
	}
	return false
}
