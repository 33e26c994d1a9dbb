// Copyright (c) 2026 Coursia. All rights reserved.
// Author: lam.vothanh.dev@gmail.com

/*
Package learning tracks the learner's relationship with courses.

It owns enrollments (which learner joined which course) and lesson progress
(which lessons they have completed). Progress percentages are computed against
the live content tree, so restructuring a course immediately reflects in every
learner's completion figures.

# Architecture

  - Entities: Enrollment, LessonProgress, CourseProgress (DTO).
  - Service: Enforces enrollment rules and progress integrity.
  - Repository: Abstracted interfaces implemented over PostgreSQL.
*/
package learning

import (
	"context"
	"time"
)

// # Domain Entities

// Enrollment records that a learner joined a course.
type Enrollment struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	CourseID   string    `json:"course_id"`
	EnrolledAt time.Time `json:"enrolled_at"`
}

// LessonProgress records the completion of a single lesson.
type LessonProgress struct {
	UserID      string    `json:"user_id"`
	CourseID    string    `json:"course_id"`
	LessonID    string    `json:"lesson_id"`
	CompletedAt time.Time `json:"completed_at"`
}

// CourseProgress summarizes a learner's completion state for one course.
type CourseProgress struct {
	CourseID         string   `json:"course_id"`
	CompletedLessons int      `json:"completed_lessons"`
	TotalLessons     int      `json:"total_lessons"`
	Percent          float64  `json:"percent"`
	CompletedIDs     []string `json:"completed_lesson_ids"`
}

// # Repository Contracts

// EnrollmentRepository defines the persistence contract for enrollments.
type EnrollmentRepository interface {
	/*
		Create persists a new enrollment. Duplicate (user, course) pairs are
		silently absorbed so enrolling twice is idempotent.

		Parameters:
		  - context: context.Context
		  - enrollment: *Enrollment

		Returns:
		  - error: Storage failures
	*/
	Create(context context.Context, enrollment *Enrollment) error

	/*
		FindByUserAndCourse returns the enrollment linking a user to a course.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - courseID: string

		Returns:
		  - *Enrollment: Hydrated entity
		  - error: apperr.NotFound or storage failures
	*/
	FindByUserAndCourse(context context.Context, userID, courseID string) (*Enrollment, error)

	/*
		ListByUser returns every enrollment of a user, newest first.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - []Enrollment: All enrollments
		  - error: Storage failures
	*/
	ListByUser(context context.Context, userID string) ([]Enrollment, error)
}

// ProgressRepository defines the persistence contract for lesson completion.
type ProgressRepository interface {
	/*
		Upsert records a lesson completion. Re-completing is idempotent and
		keeps the original completion timestamp.

		Parameters:
		  - context: context.Context
		  - progress: *LessonProgress

		Returns:
		  - error: Storage failures
	*/
	Upsert(context context.Context, progress *LessonProgress) error

	/*
		Delete removes a completion record, marking the lesson incomplete.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - lessonID: string

		Returns:
		  - error: Storage failures
	*/
	Delete(context context.Context, userID, lessonID string) error

	/*
		ListLessonIDs returns the IDs of every completed lesson of a course.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - courseID: string

		Returns:
		  - []string: Completed lesson IDs
		  - error: Storage failures
	*/
	ListLessonIDs(context context.Context, userID, courseID string) ([]string, error)
}
