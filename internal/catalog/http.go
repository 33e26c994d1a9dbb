// Copyright (c) 2026 Coursia. All rights reserved.
// Author: lam.vothanh.dev@gmail.com

/*
HTTP interface for the storefront course catalog.

# Routing Strategy

  - Public (v1): Browsing and course detail lookups are open to everyone;
    only published courses are visible.
  - Restricted (v1): Authoring, publication, and category management require
    the Admin role.
*/
package catalog

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lamvothanh/coursia/internal/platform/middleware"
	requestutil "github.com/lamvothanh/coursia/internal/platform/request"
	"github.com/lamvothanh/coursia/internal/platform/respond"
	"github.com/lamvothanh/coursia/internal/platform/sec"
	"github.com/lamvothanh/coursia/internal/platform/validate"
	"github.com/lamvothanh/coursia/pkg/pagination"
	"github.com/lamvothanh/coursia/pkg/query"
)

// Handler implements the HTTP layer for the course catalog.
type Handler struct {
	service *Service
}

// NewHandler constructs a new catalog [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes attaches catalog endpoints to the root API router.
func (handler *Handler) RegisterRoutes(api chi.Router) {
	// Storefront browsing
	api.Get("/courses", handler.Browse)
	api.Get("/courses/{courseID}", handler.GetCourse)
	api.Get("/categories", handler.ListCategories)

	// Catalog administration
	api.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireRole(sec.RoleAdmin))

		admin.Get("/admin/courses", handler.ListAll)
		admin.Post("/courses", handler.CreateCourse)
		admin.Patch("/courses/{courseID}", handler.UpdateCourse)
		admin.Delete("/courses/{courseID}", handler.DeleteCourse)
		admin.Post("/courses/{courseID}/publish", handler.SetPublished)

		admin.Post("/categories", handler.CreateCategory)
	})
}

// # Request Payloads

type createCourseRequest struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	CoverURL      string `json:"cover_url"`
	CategoryID    string `json:"category_id"`
	PriceCents    int    `json:"price_cents"`
	RequiredLevel string `json:"required_level"`
}

type updateCourseRequest struct {
	Title         *string `json:"title"`
	Description   *string `json:"description"`
	CoverURL      *string `json:"cover_url"`
	CategoryID    *string `json:"category_id"`
	PriceCents    *int    `json:"price_cents"`
	RequiredLevel *string `json:"required_level"`
}

type publishRequest struct {
	Published bool `json:"published"`
}

type createCategoryRequest struct {
	Name string `json:"name"`
}

// # Storefront Endpoints

/*
GET /api/v1/courses?page=&limit=&category=&level=&q=.

Description: Lists published courses for the storefront, newest first. The
level parameter accepts a comma-separated tier list (e.g. "free,premium").

Response:
  - 200: []Course + pagination metadata
*/
func (handler *Handler) Browse(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	filter := ListFilter{
		CategorySlug: request.URL.Query().Get("category"),
		Levels:       query.StringSlice(request.URL.Query().Get("level")),
		Search:       request.URL.Query().Get("q"),
	}

	courses, total, err := handler.service.BrowseCourses(request.Context(), filter, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, courses, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
GET /api/v1/courses/{courseID}.

Description: Retrieves a single course by its UUID or URL slug.

Response:
  - 200: Course: Hydrated entity
  - 404: ErrNotFound: Unknown course
*/
func (handler *Handler) GetCourse(writer http.ResponseWriter, request *http.Request) {
	idOrSlug := requestutil.ID(request, "courseID")

	course, err := handler.service.GetCourse(request.Context(), idOrSlug)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, course)
}

/*
GET /api/v1/categories.

Response:
  - 200: []Category: All browsing categories
*/
func (handler *Handler) ListCategories(writer http.ResponseWriter, request *http.Request) {
	categories, err := handler.service.ListCategories(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, categories)
}

// # Administration Endpoints

/*
GET /api/v1/admin/courses?page=&limit=&category=&level=&q=.

Description: Lists every course including unpublished drafts.

Response:
  - 200: []Course + pagination metadata
  - 403: ErrForbidden: Caller is not an admin
*/
func (handler *Handler) ListAll(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	filter := ListFilter{
		CategorySlug: request.URL.Query().Get("category"),
		Levels:       query.StringSlice(request.URL.Query().Get("level")),
		Search:       request.URL.Query().Get("q"),
	}

	courses, total, err := handler.service.ListAllCourses(request.Context(), filter, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, courses, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
POST /api/v1/courses.

Description: Creates a new unpublished course draft.

Response:
  - 201: Course: Created draft
  - 400: Validation: Missing title or negative price
*/
func (handler *Handler) CreateCourse(writer http.ResponseWriter, request *http.Request) {
	var input createCourseRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	course, err := handler.service.CreateCourse(request.Context(), CreateCourseInput{
		Title:         input.Title,
		Description:   input.Description,
		CoverURL:      input.CoverURL,
		CategoryID:    input.CategoryID,
		PriceCents:    input.PriceCents,
		RequiredLevel: input.RequiredLevel,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, course)
}

/*
PATCH /api/v1/courses/{courseID}.

Description: Applies partial updates to a course.

Response:
  - 200: Course: The updated entity
  - 400: Validation: Invalid field values
  - 404: ErrNotFound: Unknown course
*/
func (handler *Handler) UpdateCourse(writer http.ResponseWriter, request *http.Request) {
	courseID := requestutil.ID(request, "courseID")

	var input updateCourseRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	course, err := handler.service.UpdateCourse(request.Context(), courseID, UpdateCourseInput{
		Title:         input.Title,
		Description:   input.Description,
		CoverURL:      input.CoverURL,
		CategoryID:    input.CategoryID,
		PriceCents:    input.PriceCents,
		RequiredLevel: input.RequiredLevel,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, course)
}

/*
DELETE /api/v1/courses/{courseID}.

Response:
  - 204: No Content: Course removed
*/
func (handler *Handler) DeleteCourse(writer http.ResponseWriter, request *http.Request) {
	courseID := requestutil.ID(request, "courseID")

	if err := handler.service.DeleteCourse(request.Context(), courseID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
POST /api/v1/courses/{courseID}/publish.

Request:
  - body: publishRequest (Published: bool)

Response:
  - 204: No Content: Publication state applied
  - 404: ErrNotFound: Unknown course
*/
func (handler *Handler) SetPublished(writer http.ResponseWriter, request *http.Request) {
	courseID := requestutil.ID(request, "courseID")

	var input publishRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	if err := handler.service.SetPublished(request.Context(), courseID, input.Published); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
POST /api/v1/categories.

Response:
  - 201: Category: Created entity
  - 400: Validation: Missing name
*/
func (handler *Handler) CreateCategory(writer http.ResponseWriter, request *http.Request) {
	var input createCategoryRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	category, err := handler.service.CreateCategory(request.Context(), input.Name)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, category)
}
