// Copyright (c) 2026 Coursia. All rights reserved.
// Author: lam.vothanh.dev@gmail.com

package catalog_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lamvothanh/coursia/internal/catalog"
	"github.com/lamvothanh/coursia/internal/content"
	"github.com/lamvothanh/coursia/internal/platform/apperr"
	"github.com/lamvothanh/coursia/pkg/pagination"
	"github.com/lamvothanh/coursia/pkg/pointer"
)

// memoryCourseStore is an in-memory CourseRepository for service tests.
type memoryCourseStore struct {
	courses map[string]*catalog.Course

	lastFilter catalog.ListFilter
}

func newMemoryCourseStore() *memoryCourseStore {
	return &memoryCourseStore{courses: make(map[string]*catalog.Course)}
}

func (s *memoryCourseStore) Create(_ context.Context, course *catalog.Course) error {
	copied := *course
	s.courses[course.ID] = &copied
	return nil
}

func (s *memoryCourseStore) FindByID(_ context.Context, id string) (*catalog.Course, error) {
	course, ok := s.courses[id]
	if !ok {
		return nil, apperr.NotFound("Course")
	}
	copied := *course
	return &copied, nil
}

func (s *memoryCourseStore) FindBySlug(_ context.Context, slug string) (*catalog.Course, error) {
	for _, course := range s.courses {
		if course.Slug == slug {
			copied := *course
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("Course")
}

func (s *memoryCourseStore) List(_ context.Context, filter catalog.ListFilter, _ pagination.Params) ([]catalog.Course, int, error) {
	s.lastFilter = filter

	var page []catalog.Course
	for _, course := range s.courses {
		if filter.PublishedOnly && !course.IsPublished {
			continue
		}
		page = append(page, *course)
	}
	return page, len(page), nil
}

func (s *memoryCourseStore) Update(_ context.Context, course *catalog.Course) error {
	copied := *course
	s.courses[course.ID] = &copied
	return nil
}

func (s *memoryCourseStore) SetPublished(_ context.Context, id string, published bool) error {
	if course, ok := s.courses[id]; ok {
		course.IsPublished = published
	}
	return nil
}

func (s *memoryCourseStore) Delete(_ context.Context, id string) error {
	delete(s.courses, id)
	return nil
}

// memoryCategoryStore is an in-memory CategoryRepository.
type memoryCategoryStore struct {
	categories []catalog.Category
}

func (s *memoryCategoryStore) Create(_ context.Context, category *catalog.Category) error {
	s.categories = append(s.categories, *category)
	return nil
}

func (s *memoryCategoryStore) List(_ context.Context) ([]catalog.Category, error) {
	return s.categories, nil
}

func newTestService(t *testing.T) (*catalog.Service, *memoryCourseStore, *memoryCategoryStore) {
	t.Helper()
	courses := newMemoryCourseStore()
	categories := &memoryCategoryStore{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return catalog.NewService(courses, categories, logger), courses, categories
}

/*
TestService_CreateCourse verifies draft creation, slug derivation, and input
validation.
*/
func TestService_CreateCourse(t *testing.T) {
	service, store, _ := newTestService(t)
	ctx := context.Background()

	course, err := service.CreateCourse(ctx, catalog.CreateCourseInput{
		Title:         "Intro to Go!",
		Description:   "From zero to goroutines",
		PriceCents:    4900,
		RequiredLevel: "premium",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, course.ID)
	assert.Equal(t, "intro-to-go", course.Slug)
	assert.Equal(t, content.LevelPremium, course.RequiredLevel)
	// New courses always start as unpublished drafts.
	assert.False(t, course.IsPublished)
	assert.Contains(t, store.courses, course.ID)

	t.Run("validation", func(t *testing.T) {
		_, err := service.CreateCourse(ctx, catalog.CreateCourseInput{Title: ""})
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)

		_, err = service.CreateCourse(ctx, catalog.CreateCourseInput{Title: "X", PriceCents: -1})
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)

		_, err = service.CreateCourse(ctx, catalog.CreateCourseInput{Title: "X", RequiredLevel: "gold"})
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	})

	t.Run("empty_level_defaults_to_free", func(t *testing.T) {
		created, err := service.CreateCourse(ctx, catalog.CreateCourseInput{Title: "Free course"})
		require.NoError(t, err)
		assert.Equal(t, content.LevelFree, created.RequiredLevel)
	})
}

/*
TestService_UpdateCourse verifies partial updates and that the slug stays
stable after a retitle.
*/
func TestService_UpdateCourse(t *testing.T) {
	service, _, _ := newTestService(t)
	ctx := context.Background()

	course, err := service.CreateCourse(ctx, catalog.CreateCourseInput{Title: "Intro to Go"})
	require.NoError(t, err)

	updated, err := service.UpdateCourse(ctx, course.ID, catalog.UpdateCourseInput{
		Title:      pointer.To("Go from Scratch"),
		PriceCents: pointer.To(9900),
	})
	require.NoError(t, err)

	assert.Equal(t, "Go from Scratch", updated.Title)
	assert.Equal(t, 9900, updated.PriceCents)
	// Shared storefront links keep resolving: the slug never changes.
	assert.Equal(t, "intro-to-go", updated.Slug)
	// Untouched fields survive.
	assert.Equal(t, course.Description, updated.Description)

	t.Run("unknown_course", func(t *testing.T) {
		_, err := service.UpdateCourse(ctx, "b1e0c1de-0000-7000-8000-000000000000", catalog.UpdateCourseInput{})
		assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
	})

	t.Run("invalid_delta", func(t *testing.T) {
		_, err := service.UpdateCourse(ctx, course.ID, catalog.UpdateCourseInput{PriceCents: pointer.To(-5)})
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	})
}

/*
TestService_SetPublished verifies the publish toggle and the not-found
surfacing.
*/
func TestService_SetPublished(t *testing.T) {
	service, store, _ := newTestService(t)
	ctx := context.Background()

	course, err := service.CreateCourse(ctx, catalog.CreateCourseInput{Title: "Intro to Go"})
	require.NoError(t, err)

	require.NoError(t, service.SetPublished(ctx, course.ID, true))
	assert.True(t, store.courses[course.ID].IsPublished)

	require.NoError(t, service.SetPublished(ctx, course.ID, false))
	assert.False(t, store.courses[course.ID].IsPublished)

	err = service.SetPublished(ctx, "b1e0c1de-0000-7000-8000-000000000000", true)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

/*
TestService_GetCourse verifies UUID-versus-slug dispatch on the single
detail lookup.
*/
func TestService_GetCourse(t *testing.T) {
	service, _, _ := newTestService(t)
	ctx := context.Background()

	course, err := service.CreateCourse(ctx, catalog.CreateCourseInput{Title: "Intro to Go"})
	require.NoError(t, err)

	byID, err := service.GetCourse(ctx, course.ID)
	require.NoError(t, err)
	assert.Equal(t, course.ID, byID.ID)

	bySlug, err := service.GetCourse(ctx, "intro-to-go")
	require.NoError(t, err)
	assert.Equal(t, course.ID, bySlug.ID)

	_, err = service.GetCourse(ctx, "no-such-course")
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

/*
TestService_BrowseCourses verifies that public browsing always forces the
published-only filter while the admin listing does not.
*/
func TestService_BrowseCourses(t *testing.T) {
	service, store, _ := newTestService(t)
	ctx := context.Background()

	_, err := service.CreateCourse(ctx, catalog.CreateCourseInput{Title: "Draft"})
	require.NoError(t, err)
	published, err := service.CreateCourse(ctx, catalog.CreateCourseInput{Title: "Published"})
	require.NoError(t, err)
	require.NoError(t, service.SetPublished(ctx, published.ID, true))

	page, total, err := service.BrowseCourses(ctx, catalog.ListFilter{}, pagination.Params{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.True(t, store.lastFilter.PublishedOnly)
	assert.Equal(t, 1, total)
	require.Len(t, page, 1)
	assert.Equal(t, published.ID, page[0].ID)

	_, total, err = service.ListAllCourses(ctx, catalog.ListFilter{}, pagination.Params{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.False(t, store.lastFilter.PublishedOnly)
	assert.Equal(t, 2, total)
}

/*
TestService_Categories verifies category creation and listing.
*/
func TestService_Categories(t *testing.T) {
	service, _, _ := newTestService(t)
	ctx := context.Background()

	category, err := service.CreateCategory(ctx, "Web Development")
	require.NoError(t, err)
	assert.Equal(t, "web-development", category.Slug)

	_, err = service.CreateCategory(ctx, "")
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)

	categories, err := service.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, 1)
}
