// Copyright (c) 2026 Coursia. All rights reserved.
// Author: lam.vothanh.dev@gmail.com

// PostgreSQL implementations of the learning repositories.
//
// # Schema Table Mapping
//   - learning.enrollment: One row per (user, course) pair.
//   - learning.lessonprogress: One row per completed lesson.

package learning

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lamvothanh/coursia/internal/platform/apperr"
)

// # Enrollment Repository

// PostgresEnrollmentRepository implements [EnrollmentRepository] using pgx.
type PostgresEnrollmentRepository struct {
	pool *pgxpool.Pool
}

// NewEnrollmentRepository creates a new PostgreSQL implementation of EnrollmentRepository.
func NewEnrollmentRepository(pool *pgxpool.Pool) *PostgresEnrollmentRepository {
	return &PostgresEnrollmentRepository{pool: pool}
}

/*
Create persists a new enrollment row.

Description: The (userid, courseid) pair is unique; conflicts are absorbed so
repeat enrollments stay idempotent at the storage level too.

Parameters:
  - context: context.Context
  - enrollment: *Enrollment

Returns:
  - error: Storage failures
*/
func (repository *PostgresEnrollmentRepository) Create(context context.Context, enrollment *Enrollment) error {
	const query = `
		INSERT INTO learning.enrollment (id, userid, courseid, enrolledat)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (userid, courseid) DO NOTHING`

	_, err := repository.pool.Exec(context, query,
		enrollment.ID,
		enrollment.UserID,
		enrollment.CourseID,
		enrollment.EnrolledAt,
	)

	if err != nil {
		return fmt.Errorf("postgres_enrollment_repo_create_failed: %w", err)
	}

	return nil
}

/*
FindByUserAndCourse returns the enrollment linking a user to a course.

Parameters:
  - context: context.Context
  - userID: string
  - courseID: string

Returns:
  - *Enrollment: Hydrated entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresEnrollmentRepository) FindByUserAndCourse(context context.Context, userID, courseID string) (*Enrollment, error) {
	const query = `
		SELECT id, userid, courseid, enrolledat
		FROM learning.enrollment
		WHERE userid = $1 AND courseid = $2`

	enrollment := &Enrollment{}
	err := repository.pool.QueryRow(context, query, userID, courseID).Scan(
		&enrollment.ID,
		&enrollment.UserID,
		&enrollment.CourseID,
		&enrollment.EnrolledAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Enrollment")
		}
		return nil, fmt.Errorf("postgres_enrollment_repo_find_failed: %w", err)
	}

	return enrollment, nil
}

/*
ListByUser returns every enrollment of a user, newest first.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - []Enrollment: All enrollments
  - error: Database errors
*/
func (repository *PostgresEnrollmentRepository) ListByUser(context context.Context, userID string) ([]Enrollment, error) {
	const query = `
		SELECT id, userid, courseid, enrolledat
		FROM learning.enrollment
		WHERE userid = $1
		ORDER BY enrolledat DESC`

	rows, err := repository.pool.Query(context, query, userID)
	if err != nil {
		return nil, fmt.Errorf("postgres_enrollment_repo_list_failed: %w", err)
	}
	defer rows.Close()

	var enrollments []Enrollment
	for rows.Next() {
		var enrollment Enrollment
		if err := rows.Scan(&enrollment.ID, &enrollment.UserID, &enrollment.CourseID, &enrollment.EnrolledAt); err != nil {
			return nil, err
		}
		enrollments = append(enrollments, enrollment)
	}

	return enrollments, rows.Err()
}

// # Progress Repository

// PostgresProgressRepository implements [ProgressRepository] using pgx.
type PostgresProgressRepository struct {
	pool *pgxpool.Pool
}

// NewProgressRepository creates a new PostgreSQL implementation of ProgressRepository.
func NewProgressRepository(pool *pgxpool.Pool) *PostgresProgressRepository {
	return &PostgresProgressRepository{pool: pool}
}

/*
Upsert records a lesson completion, keeping the original timestamp on repeats.

Parameters:
  - context: context.Context
  - progress: *LessonProgress

Returns:
  - error: Storage failures
*/
func (repository *PostgresProgressRepository) Upsert(context context.Context, progress *LessonProgress) error {
	const query = `
		INSERT INTO learning.lessonprogress (userid, courseid, lessonid, completedat)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (userid, lessonid) DO NOTHING`

	_, err := repository.pool.Exec(context, query,
		progress.UserID,
		progress.CourseID,
		progress.LessonID,
		progress.CompletedAt,
	)

	if err != nil {
		return fmt.Errorf("postgres_progress_repo_upsert_failed: %w", err)
	}

	return nil
}

/*
Delete removes a completion record.

Parameters:
  - context: context.Context
  - userID: string
  - lessonID: string

Returns:
  - error: Deletion failures
*/
func (repository *PostgresProgressRepository) Delete(context context.Context, userID, lessonID string) error {
	const query = `DELETE FROM learning.lessonprogress WHERE userid = $1 AND lessonid = $2`
	_, err := repository.pool.Exec(context, query, userID, lessonID)
	if err != nil {
		return fmt.Errorf("postgres_progress_repo_delete_failed: %w", err)
	}
	return nil
}

/*
ListLessonIDs returns the IDs of every completed lesson of a course.

Parameters:
  - context: context.Context
  - userID: string
  - courseID: string

Returns:
  - []string: Completed lesson IDs
  - error: Database errors
*/
func (repository *PostgresProgressRepository) ListLessonIDs(context context.Context, userID, courseID string) ([]string, error) {
	const query = `
		SELECT lessonid
		FROM learning.lessonprogress
		WHERE userid = $1 AND courseid = $2`

	rows, err := repository.pool.Query(context, query, userID, courseID)
	if err != nil {
		return nil, fmt.Errorf("postgres_progress_repo_list_failed: %w", err)
	}
	defer rows.Close()

	var lessonIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		lessonIDs = append(lessonIDs, id)
	}

	return lessonIDs, rows.Err()
}
