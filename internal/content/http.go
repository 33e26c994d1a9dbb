// Copyright (c) 2026 Coursia. All rights reserved.
// Author: lam.vothanh.dev@gmail.com

/*
HTTP interface for course content authoring and playback.

# Routing Strategy

  - Restricted (v1): Authoring and sync endpoints require the Admin role.
  - Public (v1): The player endpoints are open; the viewer's membership tier
    (anonymous = free) drives lesson gating.

Validation rejections surface as 400s here, while the underlying transforms
stay silent no-ops — the engine is defensive even when a client skips
pre-validation.
*/
package content

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lamvothanh/coursia/internal/platform/apperr"
	"github.com/lamvothanh/coursia/internal/platform/middleware"
	requestutil "github.com/lamvothanh/coursia/internal/platform/request"
	"github.com/lamvothanh/coursia/internal/platform/respond"
	"github.com/lamvothanh/coursia/internal/platform/sec"
)

// # Handler Implementation

// Handler implements the HTTP layer for content authoring and playback.
type Handler struct {
	service *Service
}

// NewHandler constructs a new content [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes attaches content endpoints to the root API router.
// Endpoints span /courses/{courseID}/chapters and /courses/{courseID}/player.
func (handler *Handler) RegisterRoutes(api chi.Router) {
	// Player endpoints: open to all viewers, tier-gated per lesson.
	api.Get("/courses/{courseID}/player", handler.Player)
	api.Get("/courses/{courseID}/player/navigate", handler.Navigate)

	// Authoring endpoints
	api.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireRole(sec.RoleAdmin))

		admin.Get("/courses/{courseID}/chapters", handler.GetTree)
		admin.Post("/courses/{courseID}/chapters", handler.AddChapter)
		admin.Patch("/courses/{courseID}/chapters/{chapterID}", handler.RenameChapter)
		admin.Delete("/courses/{courseID}/chapters/{chapterID}", handler.DeleteChapter)

		admin.Post("/courses/{courseID}/chapters/{chapterID}/lessons", handler.AddLesson)
		admin.Patch("/courses/{courseID}/chapters/{chapterID}/lessons/{lessonID}", handler.EditLesson)
		admin.Delete("/courses/{courseID}/chapters/{chapterID}/lessons/{lessonID}", handler.DeleteLesson)
		admin.Post("/courses/{courseID}/chapters/{chapterID}/lessons/reorder", handler.ReorderLesson)

		admin.Post("/courses/{courseID}/content/sync", handler.SyncPush)
		admin.Post("/courses/{courseID}/content/refresh", handler.SyncPull)
	})
}

// # Authoring Endpoints

// chapterRequest is the inbound JSON schema for chapter create/rename.
type chapterRequest struct {
	Title string `json:"title"`
}

// lessonRequest is the inbound JSON schema for lesson create/edit.
type lessonRequest struct {
	Title         string `json:"title"`
	Duration      string `json:"duration"`
	RequiredLevel string `json:"requiredLevel"`
	DirectPlayURL string `json:"directPlayUrl"`
}

// reorderRequest is the inbound JSON schema for a lesson reorder.
type reorderRequest struct {
	FromIndex int `json:"fromIndex"`
	ToIndex   int `json:"toIndex"`
}

/*
GET /api/v1/courses/{courseID}/chapters.

Description: Returns the full content tree for authoring.

Response:
  - 200: Tree: The chapter list, possibly empty
*/
func (handler *Handler) GetTree(writer http.ResponseWriter, request *http.Request) {
	courseID := requestutil.ID(request, "courseID")
	respond.OK(writer, handler.service.GetTree(request.Context(), courseID))
}

/*
POST /api/v1/courses/{courseID}/chapters.

Response:
  - 201: Tree: The tree including the new chapter
  - 400: Validation: Empty title
*/
func (handler *Handler) AddChapter(writer http.ResponseWriter, request *http.Request) {
	courseID := requestutil.ID(request, "courseID")

	var input chapterRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	tree, err := handler.service.AddChapter(request.Context(), courseID, input.Title)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, tree)
}

/*
PATCH /api/v1/courses/{courseID}/chapters/{chapterID}.

Response:
  - 200: Tree: The updated tree
  - 400: Validation: Empty title
  - 404: NotFound: Unknown chapter
*/
func (handler *Handler) RenameChapter(writer http.ResponseWriter, request *http.Request) {
	courseID := requestutil.ID(request, "courseID")
	chapterID := requestutil.ID(request, "chapterID")

	var input chapterRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	tree, err := handler.service.RenameChapter(request.Context(), courseID, chapterID, input.Title)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, tree)
}

/*
DELETE /api/v1/courses/{courseID}/chapters/{chapterID}.

Description: Cascades to all lessons of the chapter. Irreversible.

Response:
  - 200: Tree: The tree without the chapter
  - 404: NotFound: Unknown chapter
*/
func (handler *Handler) DeleteChapter(writer http.ResponseWriter, request *http.Request) {
	courseID := requestutil.ID(request, "courseID")
	chapterID := requestutil.ID(request, "chapterID")

	tree, err := handler.service.DeleteChapter(request.Context(), courseID, chapterID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, tree)
}

/*
POST /api/v1/courses/{courseID}/chapters/{chapterID}/lessons.

Response:
  - 201: Tree: The updated tree
  - 400: Validation: Empty title
  - 404: NotFound: Unknown chapter
*/
func (handler *Handler) AddLesson(writer http.ResponseWriter, request *http.Request) {
	courseID := requestutil.ID(request, "courseID")
	chapterID := requestutil.ID(request, "chapterID")

	var input lessonRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	tree, err := handler.service.AddLesson(request.Context(), courseID, chapterID, LessonFields{
		Title:         input.Title,
		Duration:      input.Duration,
		RequiredLevel: ParseAccessLevel(input.RequiredLevel),
		DirectPlayURL: input.DirectPlayURL,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, tree)
}

/*
PATCH /api/v1/courses/{courseID}/chapters/{chapterID}/lessons/{lessonID}.

Response:
  - 200: Tree: The updated tree
  - 400: Validation: Empty title
  - 404: NotFound: Unknown lesson
*/
func (handler *Handler) EditLesson(writer http.ResponseWriter, request *http.Request) {
	courseID := requestutil.ID(request, "courseID")
	chapterID := requestutil.ID(request, "chapterID")
	lessonID := requestutil.ID(request, "lessonID")

	var input lessonRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	tree, err := handler.service.EditLesson(request.Context(), courseID, chapterID, lessonID, LessonFields{
		Title:         input.Title,
		Duration:      input.Duration,
		RequiredLevel: ParseAccessLevel(input.RequiredLevel),
		DirectPlayURL: input.DirectPlayURL,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, tree)
}

/*
DELETE /api/v1/courses/{courseID}/chapters/{chapterID}/lessons/{lessonID}.

Response:
  - 200: Tree: The updated tree
  - 404: NotFound: Unknown lesson
*/
func (handler *Handler) DeleteLesson(writer http.ResponseWriter, request *http.Request) {
	courseID := requestutil.ID(request, "courseID")
	chapterID := requestutil.ID(request, "chapterID")
	lessonID := requestutil.ID(request, "lessonID")

	tree, err := handler.service.DeleteLesson(request.Context(), courseID, chapterID, lessonID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, tree)
}

/*
POST /api/v1/courses/{courseID}/chapters/{chapterID}/lessons/reorder.

Description: Moves a lesson within its chapter. Cross-chapter moves are not
expressible on this route — the drag boundary is the chapter by design.

Response:
  - 200: Tree: The updated tree
  - 400: Validation: Out-of-range or identical indices
  - 404: NotFound: Unknown chapter
*/
func (handler *Handler) ReorderLesson(writer http.ResponseWriter, request *http.Request) {
	courseID := requestutil.ID(request, "courseID")
	chapterID := requestutil.ID(request, "chapterID")

	var input reorderRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	tree, err := handler.service.ReorderLesson(request.Context(), courseID, chapterID, input.FromIndex, input.ToIndex)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, tree)
}

// # Sync Endpoints

/*
POST /api/v1/courses/{courseID}/content/sync.

Description: Pushes the locally persisted tree to the spreadsheet bridge and
reports the verification outcome. Failure never affects the local tree; the
client offers a retry.

Response:
  - 200: PushResult: success/verified/savedLessonsCount (+ optional warning)
  - 502: SYNC_TRANSPORT_FAILED | SYNC_REJECTED
*/
func (handler *Handler) SyncPush(writer http.ResponseWriter, request *http.Request) {
	courseID := requestutil.ID(request, "courseID")

	result, err := handler.service.SyncPush(request.Context(), courseID)
	if err != nil {
		respond.Error(writer, request, syncErrorToAppError(err))
		return
	}

	respond.OK(writer, result)
}

/*
POST /api/v1/courses/{courseID}/content/refresh.

Description: Replaces the local tree with the remote copy when one exists.

Response:
  - 200: Tree: The tree now persisted locally
*/
func (handler *Handler) SyncPull(writer http.ResponseWriter, request *http.Request) {
	courseID := requestutil.ID(request, "courseID")
	respond.OK(writer, handler.service.SyncPull(request.Context(), courseID))
}

// # Player Endpoints

/*
GET /api/v1/courses/{courseID}/player.

Description: Returns the tree plus the initial lesson selection for the
viewer's membership tier. Anonymous viewers resolve as free tier.

Response:
  - 200: Player: Chapters and initial selection
*/
func (handler *Handler) Player(writer http.ResponseWriter, request *http.Request) {
	courseID := requestutil.ID(request, "courseID")
	respond.OK(writer, handler.service.ResolvePlayer(request.Context(), courseID, viewerLevel(request)))
}

/*
GET /api/v1/courses/{courseID}/player/navigate?current={lessonID}&dir={next|prev}.

Description: Resolves a navigation move. Locked targets are silently
rejected and the current selection comes back unchanged.

Response:
  - 200: Selection: The resulting selection
*/
func (handler *Handler) Navigate(writer http.ResponseWriter, request *http.Request) {
	courseID := requestutil.ID(request, "courseID")
	currentID := request.URL.Query().Get("current")
	forward := request.URL.Query().Get("dir") != "prev"

	respond.OK(writer, handler.service.Navigate(request.Context(), courseID, currentID, viewerLevel(request), forward))
}

// viewerLevel resolves the membership tier of the requesting viewer.
func viewerLevel(request *http.Request) AccessLevel {
	claims := requestutil.Claims(request)
	if claims == nil {
		return LevelFree
	}
	return ParseAccessLevel(claims.MembershipLevel)
}

// syncErrorToAppError maps the sync failure taxonomy onto the API error
// envelope. Both reasons are 502s — the bridge, not this service, is broken
// — but the codes stay distinct so clients can word the retry hint.
func syncErrorToAppError(err error) error {
	var syncErr *SyncError
	if !errors.As(err, &syncErr) {
		return err
	}

	code := "SYNC_TRANSPORT_FAILED"
	message := "The sheet bridge could not be reached. Local changes are safe; try again."
	if syncErr.Reason == SyncReasonRejected {
		code = "SYNC_REJECTED"
		message = "The sheet bridge rejected the update. Local changes are safe; try again."
	}

	return &apperr.AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: http.StatusBadGateway,
		Cause:      syncErr,
	}
}
