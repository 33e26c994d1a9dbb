// Copyright (c) 2026 Coursia. All rights reserved.
// Author: lam.vothanh.dev@gmail.com

package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lamvothanh/coursia/internal/content"
	"github.com/lamvothanh/coursia/internal/platform/validate"
	"github.com/lamvothanh/coursia/pkg/pagination"
	"github.com/lamvothanh/coursia/pkg/slug"
	"github.com/lamvothanh/coursia/pkg/uuid"
)

// # Service Layer

// Service orchestrates business logic for the course catalog.
type Service struct {
	courseRepository   CourseRepository
	categoryRepository CategoryRepository
	logger             *slog.Logger
}

// NewService constructs a new catalog [Service].
func NewService(courseRepo CourseRepository, categoryRepo CategoryRepository, logger *slog.Logger) *Service {
	return &Service{
		courseRepository:   courseRepo,
		categoryRepository: categoryRepo,
		logger:             logger,
	}
}

// # Course Authoring

// CreateCourseInput holds the data required to list a new course.
type CreateCourseInput struct {
	Title         string
	Description   string
	CoverURL      string
	CategoryID    string
	PriceCents    int
	RequiredLevel string
}

/*
CreateCourse validates and persists a new course draft.

Description: New courses always start unpublished so the author can build the
content tree before the course appears on the storefront. The URL slug is
derived from the title at creation time and stays stable afterwards.

Parameters:
  - context: context.Context
  - input: CreateCourseInput

Returns:
  - *Course: Created entity
  - err: Validation or storage errors
*/
func (service *Service) CreateCourse(context context.Context, input CreateCourseInput) (*Course, error) {

	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title).
		MaxLen(FieldTitle, input.Title, 200).
		Custom(FieldPriceCents, input.PriceCents < 0, "Must not be negative")

	if input.RequiredLevel != "" {
		validator.OneOf(FieldLevel, input.RequiredLevel,
			string(content.LevelFree), string(content.LevelPremium), string(content.LevelVIP))
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}

	now := time.Now()
	course := &Course{
		ID:            uuid.New(),
		Title:         input.Title,
		Slug:          slug.From(input.Title),
		Description:   input.Description,
		CoverURL:      input.CoverURL,
		CategoryID:    input.CategoryID,
		PriceCents:    input.PriceCents,
		RequiredLevel: content.ParseAccessLevel(input.RequiredLevel),
		IsPublished:   false,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := service.courseRepository.Create(context, course); err != nil {
		return nil, fmt.Errorf("catalog_service_create_course_failed: %w", err)
	}

	service.logger.Info("course_created",
		slog.String("course_id", course.ID),
		slog.String("slug", course.Slug),
	)

	return course, nil
}

// UpdateCourseInput defines the mutable subset of course fields.
// Nil pointers leave the corresponding field unchanged.
type UpdateCourseInput struct {
	Title         *string
	Description   *string
	CoverURL      *string
	CategoryID    *string
	PriceCents    *int
	RequiredLevel *string
}

/*
UpdateCourse applies a partial set of changes to a course.

Parameters:
  - context: context.Context
  - courseID: string
  - input: UpdateCourseInput

Returns:
  - *Course: The updated entity
  - err: Not found, validation, or storage errors
*/
func (service *Service) UpdateCourse(context context.Context, courseID string, input UpdateCourseInput) (*Course, error) {

	course, err := service.courseRepository.FindByID(context, courseID)
	if err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	if input.Title != nil {
		validator.Required(FieldTitle, *input.Title).MaxLen(FieldTitle, *input.Title, 200)
	}
	if input.PriceCents != nil {
		validator.Custom(FieldPriceCents, *input.PriceCents < 0, "Must not be negative")
	}
	if input.RequiredLevel != nil {
		validator.OneOf(FieldLevel, *input.RequiredLevel,
			string(content.LevelFree), string(content.LevelPremium), string(content.LevelVIP))
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}

	// Apply delta updates. The slug never changes after creation so that
	// shared storefront links keep resolving.
	if input.Title != nil {
		course.Title = *input.Title
	}
	if input.Description != nil {
		course.Description = *input.Description
	}
	if input.CoverURL != nil {
		course.CoverURL = *input.CoverURL
	}
	if input.CategoryID != nil {
		course.CategoryID = *input.CategoryID
	}
	if input.PriceCents != nil {
		course.PriceCents = *input.PriceCents
	}
	if input.RequiredLevel != nil {
		course.RequiredLevel = content.ParseAccessLevel(*input.RequiredLevel)
	}

	if err := service.courseRepository.Update(context, course); err != nil {
		return nil, fmt.Errorf("catalog_service_update_course_failed: %w", err)
	}

	service.logger.Info("course_updated", slog.String("course_id", course.ID))

	return course, nil
}

/*
SetPublished publishes or unpublishes a course on the storefront.

Parameters:
  - context: context.Context
  - courseID: string
  - published: bool

Returns:
  - err: Not found or storage errors
*/
func (service *Service) SetPublished(context context.Context, courseID string, published bool) error {

	// Resolve first so a bad ID surfaces as NotFound instead of a silent no-op
	if _, err := service.courseRepository.FindByID(context, courseID); err != nil {
		return err
	}

	if err := service.courseRepository.SetPublished(context, courseID, published); err != nil {
		return fmt.Errorf("catalog_service_set_published_failed: %w", err)
	}

	service.logger.Info("course_publication_changed",
		slog.String("course_id", courseID),
		slog.Bool("published", published),
	)

	return nil
}

/*
DeleteCourse permanently removes a course from the catalog.

Description: The course's content tree and enrollments are not touched here;
they are cleaned up by their owning services.

Parameters:
  - context: context.Context
  - courseID: string

Returns:
  - err: Storage errors
*/
func (service *Service) DeleteCourse(context context.Context, courseID string) error {
	if err := service.courseRepository.Delete(context, courseID); err != nil {
		return fmt.Errorf("catalog_service_delete_course_failed: %w", err)
	}

	service.logger.Warn("course_deleted", slog.String("course_id", courseID))

	return nil
}

// # Storefront Browsing

/*
GetCourse resolves a course by its ID or URL slug.

Description: Storefront links use the slug while internal references use the
UUID; this accepts either so one detail endpoint serves both.

Parameters:
  - context: context.Context
  - idOrSlug: string

Returns:
  - *Course: Hydrated entity
  - err: Not found or storage errors
*/
func (service *Service) GetCourse(context context.Context, idOrSlug string) (*Course, error) {
	if uuid.IsValid(idOrSlug) {
		return service.courseRepository.FindByID(context, idOrSlug)
	}
	return service.courseRepository.FindBySlug(context, idOrSlug)
}

/*
BrowseCourses lists published courses for the storefront.

Parameters:
  - context: context.Context
  - filter: ListFilter (PublishedOnly is forced on)
  - params: pagination.Params

Returns:
  - []Course: The requested page
  - int: Total matching rows
  - err: Storage errors
*/
func (service *Service) BrowseCourses(context context.Context, filter ListFilter, params pagination.Params) ([]Course, int, error) {
	filter.PublishedOnly = true
	return service.courseRepository.List(context, filter, params)
}

/*
ListAllCourses lists every course including unpublished drafts. Admin only.

Parameters:
  - context: context.Context
  - filter: ListFilter
  - params: pagination.Params

Returns:
  - []Course: The requested page
  - int: Total matching rows
  - err: Storage errors
*/
func (service *Service) ListAllCourses(context context.Context, filter ListFilter, params pagination.Params) ([]Course, int, error) {
	return service.courseRepository.List(context, filter, params)
}

// # Categories

/*
CreateCategory persists a new browsing category.

Parameters:
  - context: context.Context
  - name: string

Returns:
  - *Category: Created entity
  - err: Validation or storage errors
*/
func (service *Service) CreateCategory(context context.Context, name string) (*Category, error) {

	validator := &validate.Validator{}
	validator.Required(FieldName, name).MaxLen(FieldName, name, 100)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	category := &Category{
		ID:        uuid.New(),
		Name:      name,
		Slug:      slug.From(name),
		CreatedAt: time.Now(),
	}

	if err := service.categoryRepository.Create(context, category); err != nil {
		return nil, fmt.Errorf("catalog_service_create_category_failed: %w", err)
	}

	service.logger.Info("category_created", slog.String("category_id", category.ID))

	return category, nil
}

/*
ListCategories returns every category for storefront navigation.

Parameters:
  - context: context.Context

Returns:
  - []Category: All categories
  - err: Storage errors
*/
func (service *Service) ListCategories(context context.Context) ([]Category, error) {
	return service.categoryRepository.List(context)
}
