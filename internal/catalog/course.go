// Copyright (c) 2026 Coursia. All rights reserved.
// Author: lam.vothanh.dev@gmail.com

/*
Package catalog implements the storefront course catalog.

It manages the sellable surface of the platform: courses, their categories,
pricing, and publication state. The catalog deliberately knows nothing about
chapters or lessons — the course content tree is owned by the content package
and is attached to a course only by its ID.

# Architecture

  - Entities: Course, Category.
  - Service: Orchestrates authoring workflows and publication rules.
  - Repository: Abstracted interfaces implemented over PostgreSQL.
*/
package catalog

import (
	"context"
	"time"

	"github.com/lamvothanh/coursia/internal/content"
	"github.com/lamvothanh/coursia/pkg/pagination"
)

// # Domain Entities

// Course represents a sellable course on the storefront.
type Course struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	CoverURL    string `json:"cover_url,omitempty"`
	CategoryID  string `json:"category_id,omitempty"`

	// PriceCents is the one-time purchase price. Zero means the course is
	// included with the membership tier in RequiredLevel.
	PriceCents int `json:"price_cents"`

	// RequiredLevel is the minimum membership tier that unlocks the course
	// as a whole. Individual lessons may demand a higher tier.
	RequiredLevel content.AccessLevel `json:"required_level"`

	IsPublished bool      `json:"is_published"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Category groups courses for storefront browsing.
type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}

// # Field Identifiers

const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldPriceCents  = "price_cents"
	FieldLevel       = "required_level"
	FieldName        = "name"
	FieldCategoryID  = "category_id"
)

// # Repository Contracts

// ListFilter narrows a course listing query.
type ListFilter struct {
	// PublishedOnly hides unpublished drafts. Always true for public browsing.
	PublishedOnly bool

	// CategorySlug restricts results to one category when non-empty.
	CategorySlug string

	// Levels restricts results to courses whose required tier is in the set.
	// Empty means every tier.
	Levels []string

	// Search matches against the course title when non-empty.
	Search string
}

// CourseRepository defines the persistence contract for courses.
type CourseRepository interface {
	/*
		Create persists a brand-new course.

		Parameters:
		  - context: context.Context
		  - course: *Course

		Returns:
		  - error: Constraint violations or storage failures
	*/
	Create(context context.Context, course *Course) error

	/*
		FindByID retrieves a course by its primary key.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)

		Returns:
		  - *Course: Hydrated entity
		  - error: apperr.NotFound or storage failures
	*/
	FindByID(context context.Context, id string) (*Course, error)

	/*
		FindBySlug retrieves a course by its URL slug.

		Parameters:
		  - context: context.Context
		  - slug: string

		Returns:
		  - *Course: Hydrated entity
		  - error: apperr.NotFound or storage failures
	*/
	FindBySlug(context context.Context, slug string) (*Course, error)

	/*
		List returns a filtered, paginated page of courses plus the total count.

		Parameters:
		  - context: context.Context
		  - filter: ListFilter
		  - params: pagination.Params

		Returns:
		  - []Course: The requested page
		  - int: Total matching rows across all pages
		  - error: Storage failures
	*/
	List(context context.Context, filter ListFilter, params pagination.Params) ([]Course, int, error)

	/*
		Update persists changes to a course's mutable fields.

		Parameters:
		  - context: context.Context
		  - course: *Course

		Returns:
		  - error: Storage failures
	*/
	Update(context context.Context, course *Course) error

	/*
		SetPublished flips the publication state of a course.

		Parameters:
		  - context: context.Context
		  - id: string
		  - published: bool

		Returns:
		  - error: Storage failures
	*/
	SetPublished(context context.Context, id string, published bool) error

	/*
		Delete permanently removes a course.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: Storage failures
	*/
	Delete(context context.Context, id string) error
}

// CategoryRepository defines the persistence contract for categories.
type CategoryRepository interface {
	/*
		Create persists a new category.

		Parameters:
		  - context: context.Context
		  - category: *Category

		Returns:
		  - error: Constraint violations or storage failures
	*/
	Create(context context.Context, category *Category) error

	/*
		List returns every category ordered by name.

		Parameters:
		  - context: context.Context

		Returns:
		  - []Category: All categories
		  - error: Storage failures
	*/
	List(context context.Context) ([]Category, error)
}
