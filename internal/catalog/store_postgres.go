// Copyright (c) 2026 Coursia. All rights reserved.
// Author: lam.vothanh.dev@gmail.com

// PostgreSQL implementations of the catalog repositories.
//
// # Schema Table Mapping
//   - catalog.course: Sellable course rows with pricing and publication state.
//   - catalog.category: Browsing categories.

package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lamvothanh/coursia/internal/platform/apperr"
	"github.com/lamvothanh/coursia/internal/platform/dberr"
	"github.com/lamvothanh/coursia/pkg/pagination"
	"github.com/lamvothanh/coursia/pkg/pointer"
)

// courseColumns is the shared projection for course queries.
const courseColumns = `id, title, slug, description, coverurl, categoryid,
       pricecents, requiredlevel, ispublished, createdat, updatedat`

// # Course Repository

// PostgresCourseRepository implements [CourseRepository] using pgx.
type PostgresCourseRepository struct {
	pool *pgxpool.Pool
}

// NewCourseRepository creates a new PostgreSQL implementation of CourseRepository.
func NewCourseRepository(pool *pgxpool.Pool) *PostgresCourseRepository {
	return &PostgresCourseRepository{pool: pool}
}

/*
Create persists a new course record into the catalog.course table.

Parameters:
  - context: context.Context
  - course: *Course

Returns:
  - error: Constraint violations or connectivity errors
*/
func (repository *PostgresCourseRepository) Create(context context.Context, course *Course) error {
	const query = `
		INSERT INTO catalog.course (
			id, title, slug, description, coverurl, categoryid,
			pricecents, requiredlevel, ispublished, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8, $9, $10, $11)`

	_, err := repository.pool.Exec(context, query,
		course.ID,
		course.Title,
		course.Slug,
		course.Description,
		course.CoverURL,
		course.CategoryID,
		course.PriceCents,
		course.RequiredLevel,
		course.IsPublished,
		course.CreatedAt,
		course.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "Course")
	}

	return nil
}

/*
FindByID retrieves a course by its primary key.

Parameters:
  - context: context.Context
  - id: string (UUID)

Returns:
  - *Course: Hydrated entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresCourseRepository) FindByID(context context.Context, id string) (*Course, error) {
	query := fmt.Sprintf(`SELECT %s FROM catalog.course WHERE id = $1`, courseColumns)
	return repository.findOne(context, query, id)
}

/*
FindBySlug retrieves a course by its URL slug.

Parameters:
  - context: context.Context
  - slug: string

Returns:
  - *Course: Hydrated entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresCourseRepository) FindBySlug(context context.Context, slug string) (*Course, error) {
	query := fmt.Sprintf(`SELECT %s FROM catalog.course WHERE slug = $1`, courseColumns)
	return repository.findOne(context, query, slug)
}

// findOne runs a single-row course query and maps pgx.ErrNoRows to NotFound.
func (repository *PostgresCourseRepository) findOne(context context.Context, query string, arg any) (*Course, error) {
	course := &Course{}
	var categoryID *string

	err := repository.pool.QueryRow(context, query, arg).Scan(
		&course.ID,
		&course.Title,
		&course.Slug,
		&course.Description,
		&course.CoverURL,
		&categoryID,
		&course.PriceCents,
		&course.RequiredLevel,
		&course.IsPublished,
		&course.CreatedAt,
		&course.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Course")
		}
		return nil, fmt.Errorf("postgres_course_repo_find_failed: %w", err)
	}

	course.CategoryID = pointer.Val(categoryID)

	return course, nil
}

/*
List returns a filtered, paginated page of courses plus the total count.

Description: Filters compose dynamically; the count query shares the same WHERE
clause so the pagination metadata always matches the page contents.

Parameters:
  - context: context.Context
  - filter: ListFilter
  - params: pagination.Params

Returns:
  - []Course: The requested page, newest first
  - int: Total matching rows
  - error: Database errors
*/
func (repository *PostgresCourseRepository) List(context context.Context, filter ListFilter, params pagination.Params) ([]Course, int, error) {

	where := "WHERE TRUE"
	args := []any{}

	if filter.PublishedOnly {
		where += " AND c.ispublished = TRUE"
	}

	if filter.CategorySlug != "" {
		args = append(args, filter.CategorySlug)
		where += fmt.Sprintf(" AND c.categoryid = (SELECT id FROM catalog.category WHERE slug = $%d)", len(args))
	}

	if len(filter.Levels) > 0 {
		args = append(args, filter.Levels)
		where += fmt.Sprintf(" AND c.requiredlevel = ANY($%d)", len(args))
	}

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		where += fmt.Sprintf(" AND c.title ILIKE $%d", len(args))
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM catalog.course c %s`, where)

	var total int
	if err := repository.pool.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_course_repo_count_failed: %w", err)
	}

	args = append(args, params.Limit, params.Offset())
	pageQuery := fmt.Sprintf(`
		SELECT c.id, c.title, c.slug, c.description, c.coverurl, c.categoryid,
		       c.pricecents, c.requiredlevel, c.ispublished, c.createdat, c.updatedat
		FROM catalog.course c
		%s
		ORDER BY c.createdat DESC
		LIMIT $%d OFFSET $%d`, where, len(args)-1, len(args))

	rows, err := repository.pool.Query(context, pageQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_course_repo_list_failed: %w", err)
	}
	defer rows.Close()

	var courses []Course
	for rows.Next() {
		var course Course
		var categoryID *string
		if err := rows.Scan(
			&course.ID,
			&course.Title,
			&course.Slug,
			&course.Description,
			&course.CoverURL,
			&categoryID,
			&course.PriceCents,
			&course.RequiredLevel,
			&course.IsPublished,
			&course.CreatedAt,
			&course.UpdatedAt,
		); err != nil {
			return nil, 0, err
		}
		course.CategoryID = pointer.Val(categoryID)
		courses = append(courses, course)
	}

	return courses, total, rows.Err()
}

/*
Update persists changes to a course's mutable fields.

Parameters:
  - context: context.Context
  - course: *Course

Returns:
  - error: Update failures
*/
func (repository *PostgresCourseRepository) Update(context context.Context, course *Course) error {
	const query = `
		UPDATE catalog.course
		SET title = $2, description = $3, coverurl = $4, categoryid = NULLIF($5, ''),
		    pricecents = $6, requiredlevel = $7, updatedat = $8
		WHERE id = $1`

	course.UpdatedAt = time.Now()
	_, err := repository.pool.Exec(context, query,
		course.ID,
		course.Title,
		course.Description,
		course.CoverURL,
		course.CategoryID,
		course.PriceCents,
		course.RequiredLevel,
		course.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("postgres_course_repo_update_failed: %w", err)
	}

	return nil
}

/*
SetPublished flips the publication flag of a course.

Parameters:
  - context: context.Context
  - id: string
  - published: bool

Returns:
  - error: Update failures
*/
func (repository *PostgresCourseRepository) SetPublished(context context.Context, id string, published bool) error {
	const query = `UPDATE catalog.course SET ispublished = $2, updatedat = $3 WHERE id = $1`
	_, err := repository.pool.Exec(context, query, id, published, time.Now())
	if err != nil {
		return fmt.Errorf("postgres_course_repo_set_published_failed: %w", err)
	}
	return nil
}

/*
Delete permanently removes a course row.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: Deletion failures
*/
func (repository *PostgresCourseRepository) Delete(context context.Context, id string) error {
	const query = `DELETE FROM catalog.course WHERE id = $1`
	_, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres_course_repo_delete_failed: %w", err)
	}
	return nil
}

// # Category Repository

// PostgresCategoryRepository implements [CategoryRepository] using pgx.
type PostgresCategoryRepository struct {
	pool *pgxpool.Pool
}

// NewCategoryRepository creates a new PostgreSQL implementation of CategoryRepository.
func NewCategoryRepository(pool *pgxpool.Pool) *PostgresCategoryRepository {
	return &PostgresCategoryRepository{pool: pool}
}

/*
Create persists a new category record.

Parameters:
  - context: context.Context
  - category: *Category

Returns:
  - error: Constraint violations or connectivity errors
*/
func (repository *PostgresCategoryRepository) Create(context context.Context, category *Category) error {
	const query = `
		INSERT INTO catalog.category (id, name, slug, createdat)
		VALUES ($1, $2, $3, $4)`

	_, err := repository.pool.Exec(context, query,
		category.ID,
		category.Name,
		category.Slug,
		category.CreatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "Category")
	}

	return nil
}

/*
List returns every category ordered by name.

Parameters:
  - context: context.Context

Returns:
  - []Category: All categories
  - error: Database errors
*/
func (repository *PostgresCategoryRepository) List(context context.Context) ([]Category, error) {
	const query = `SELECT id, name, slug, createdat FROM catalog.category ORDER BY name ASC`

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, fmt.Errorf("postgres_category_repo_list_failed: %w", err)
	}
	defer rows.Close()

	var categories []Category
	for rows.Next() {
		var category Category
		if err := rows.Scan(&category.ID, &category.Name, &category.Slug, &category.CreatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}

	return categories, rows.Err()
}
