// Copyright (c) 2026 Coursia. All rights reserved.
// Author: lam.vothanh.dev@gmail.com

/*
HTTP interface for enrollment and progress tracking.

# Security

Every endpoint operates on the authenticated learner's own data and therefore
sits behind RequireAuth.
*/
package learning

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lamvothanh/coursia/internal/platform/middleware"
	requestutil "github.com/lamvothanh/coursia/internal/platform/request"
	"github.com/lamvothanh/coursia/internal/platform/respond"
)

// Handler implements the HTTP layer for the learning domain.
type Handler struct {
	service *Service
}

// NewHandler constructs a new learning [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes attaches learning endpoints to the root API router.
func (handler *Handler) RegisterRoutes(api chi.Router) {
	api.Group(func(authed chi.Router) {
		authed.Use(middleware.RequireAuth)

		authed.Post("/courses/{courseID}/enroll", handler.Enroll)
		authed.Get("/me/enrollments", handler.ListEnrollments)

		authed.Get("/courses/{courseID}/progress", handler.GetProgress)
		authed.Post("/courses/{courseID}/lessons/{lessonID}/complete", handler.MarkComplete)
		authed.Delete("/courses/{courseID}/lessons/{lessonID}/complete", handler.UnmarkComplete)
	})
}

/*
POST /api/v1/courses/{courseID}/enroll.

Description: Joins the authenticated learner into a published course.
Re-enrolling is idempotent.

Response:
  - 201: Enrollment: The enrollment record
  - 401: ErrUnauthorized: Authentication required
  - 404: ErrNotFound: Course missing or unpublished
*/
func (handler *Handler) Enroll(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	courseID := requestutil.ID(request, "courseID")

	enrollment, err := handler.service.Enroll(request.Context(), userID, courseID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, enrollment)
}

/*
GET /api/v1/me/enrollments.

Response:
  - 200: []Enrollment: The learner's enrollments, newest first
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) ListEnrollments(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	enrollments, err := handler.service.ListEnrollments(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, enrollments)
}

/*
GET /api/v1/courses/{courseID}/progress.

Description: Summarizes the learner's completion state against the course's
live content tree.

Response:
  - 200: CourseProgress: Completion summary
  - 403: ErrForbidden: Not enrolled
*/
func (handler *Handler) GetProgress(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	courseID := requestutil.ID(request, "courseID")

	progress, err := handler.service.GetCourseProgress(request.Context(), userID, courseID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, progress)
}

/*
POST /api/v1/courses/{courseID}/lessons/{lessonID}/complete.

Response:
  - 204: No Content: Completion recorded
  - 403: ErrForbidden: Not enrolled
  - 404: ErrNotFound: Lesson not in the course tree
*/
func (handler *Handler) MarkComplete(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	courseID := requestutil.ID(request, "courseID")
	lessonID := requestutil.ID(request, "lessonID")

	if err := handler.service.MarkLessonComplete(request.Context(), userID, courseID, lessonID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
DELETE /api/v1/courses/{courseID}/lessons/{lessonID}/complete.

Response:
  - 204: No Content: Completion removed (idempotent)
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) UnmarkComplete(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	lessonID := requestutil.ID(request, "lessonID")

	if err := handler.service.UnmarkLessonComplete(request.Context(), userID, lessonID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
