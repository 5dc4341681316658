// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.app

package book

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/inkwell-app/inkwell/internal/platform/middleware"
	requestutil "github.com/inkwell-app/inkwell/internal/platform/request"
	"github.com/inkwell-app/inkwell/internal/platform/respond"
	"github.com/inkwell-app/inkwell/internal/platform/sec"
	"github.com/inkwell-app/inkwell/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements catalog and reading HTTP endpoints.
type Handler struct {
	bookService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{bookService: service}
}

// Routes returns a [chi.Router] configured with catalog routes.
//
// # Endpoints
//   - POST   /                   : Publishes a title (admin).
//   - GET    /{bookID}           : Returns book metadata.
//   - PATCH  /{bookID}           : Updates a title (admin).
//   - DELETE /{bookID}           : Removes a title (admin).
//   - GET    /{bookID}/content   : Returns access-limited content.
//   - GET    /{bookID}/reviews   : Lists reviews.
//   - POST   /{bookID}/reviews   : Adds a review (authenticated).
//   - GET    /{bookID}/progress  : Returns the caller's position (authenticated).
//   - PUT    /{bookID}/progress  : Stores the caller's position (authenticated).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public endpoints. Content access is resolved from the caller's role,
	// anonymous readers get the preview slice.
	router.Get("/{bookID}", handler.getBook)
	router.Get("/{bookID}/content", handler.getContent)
	router.Get("/{bookID}/reviews", handler.listReviews)

	// Reader endpoints
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/{bookID}/reviews", handler.addReview)
		r.Get("/{bookID}/progress", handler.getProgress)
		r.Put("/{bookID}/progress", handler.updateProgress)
	})

	// Catalog management endpoints
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(sec.RoleAdmin))
		r.Post("/", handler.createBook)
		r.Patch("/{bookID}", handler.updateBook)
		r.Delete("/{bookID}", handler.deleteBook)
	})

	return router
}

// # Request Payloads

type chapterPayload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type permissionPayload struct {
	Role  string `json:"role"`
	Level string `json:"level"`
}

type createBookRequest struct {
	Title             string              `json:"title"`
	Author            string              `json:"author"`
	ISBN              string              `json:"isbn"`
	Description       string              `json:"description"`
	Price             float64             `json:"price"`
	CoverURL          string              `json:"cover_url"`
	Chapters          []chapterPayload    `json:"chapters"`
	FullText          string              `json:"full_text"`
	AccessPermissions []permissionPayload `json:"access_permissions"`
}

type updateBookRequest struct {
	Title             *string              `json:"title"`
	Author            *string              `json:"author"`
	Description       *string              `json:"description"`
	Price             *float64             `json:"price"`
	CoverURL          *string              `json:"cover_url"`
	Chapters          *[]chapterPayload    `json:"chapters"`
	FullText          *string              `json:"full_text"`
	AccessPermissions *[]permissionPayload `json:"access_permissions"`
}

type addReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

type updateProgressRequest struct {
	Percentage float64 `json:"percentage"`
	Chapter    int     `json:"chapter"`
}

// toChapters converts transport chapters into domain chapters.
func toChapters(chapters []chapterPayload) []Chapter {
	converted := make([]Chapter, 0, len(chapters))
	for _, chapter := range chapters {
		converted = append(converted, Chapter{Title: chapter.Title, Body: chapter.Body})
	}
	return converted
}

// toPermissions converts transport permission entries into the domain table.
func toPermissions(permissions []permissionPayload) []AccessPermission {
	converted := make([]AccessPermission, 0, len(permissions))
	for _, permission := range permissions {
		converted = append(converted, AccessPermission{Role: permission.Role, Level: AccessLevel(permission.Level)})
	}
	return converted
}

// validLevel reports whether a permission entry names a known access level.
func validLevel(level string) bool {
	switch AccessLevel(level) {
	case LevelFull, LevelPartial, LevelPreview:
		return true
	}
	return false
}

// validatePermissions rejects permission entries with a blank role or an
// unknown level before they reach storage.
func validatePermissions(v *validate.Validator, permissions []permissionPayload) {
	for _, permission := range permissions {
		v.Required("access_permissions.role", permission.Role).
			Custom("access_permissions.level", !validLevel(permission.Level), "Access level must be full, partial, or preview")
	}
}

/*
CreateBook publishes a new title to the catalog.

POST /api/v1/books

Request:
  - Body: createBookRequest

Response:
  - 201: Book: Created title
  - 400: ErrInvalidJSON: Validation failure
  - 403: ErrForbidden: Caller is not an admin
  - 409: ErrConflict: Duplicate ISBN or title
*/
func (handler *Handler) createBook(writer http.ResponseWriter, request *http.Request) {
	var input createBookRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	v := &validate.Validator{}
	v.Required("title", input.Title).
		MaxLen("title", input.Title, 300).
		Required("author", input.Author).
		Required("isbn", input.ISBN).
		Custom("price", input.Price < 0, "Price must not be negative")
	validatePermissions(v, input.AccessPermissions)

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.bookService.CreateBook(request.Context(), CreateBookInput{
		Title:             input.Title,
		Author:            input.Author,
		ISBN:              input.ISBN,
		Description:       input.Description,
		Price:             input.Price,
		CoverURL:          input.CoverURL,
		Content:           BookContent{Chapters: toChapters(input.Chapters), FullText: input.FullText},
		AccessPermissions: toPermissions(input.AccessPermissions),
	})

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, created)
}

/*
GetBook returns the metadata for a single title.

GET /api/v1/books/{bookID}

Response:
  - 200: Book: Title metadata (content excluded)
  - 404: ErrNotFound: Unknown book
*/
func (handler *Handler) getBook(writer http.ResponseWriter, request *http.Request) {
	bookID := requestutil.Param(request, "bookID")

	found, err := handler.bookService.GetBook(request.Context(), bookID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, found)
}

/*
UpdateBook applies partial updates to a title.

PATCH /api/v1/books/{bookID}

Response:
  - 200: Book: Updated title
  - 403: ErrForbidden: Caller is not an admin
  - 404: ErrNotFound: Unknown book
*/
func (handler *Handler) updateBook(writer http.ResponseWriter, request *http.Request) {
	bookID := requestutil.Param(request, "bookID")

	var input updateBookRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	v := &validate.Validator{}
	if input.Title != nil {
		v.Required("title", *input.Title).MaxLen("title", *input.Title, 300)
	}
	if input.Price != nil {
		v.Custom("price", *input.Price < 0, "Price must not be negative")
	}
	if input.AccessPermissions != nil {
		validatePermissions(v, *input.AccessPermissions)
	}

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	serviceInput := UpdateBookInput{
		Title:       input.Title,
		Author:      input.Author,
		Description: input.Description,
		Price:       input.Price,
		CoverURL:    input.CoverURL,
		FullText:    input.FullText,
	}
	if input.Chapters != nil {
		chapters := toChapters(*input.Chapters)
		serviceInput.Chapters = &chapters
	}
	if input.AccessPermissions != nil {
		permissions := toPermissions(*input.AccessPermissions)
		serviceInput.AccessPermissions = &permissions
	}

	updated, err := handler.bookService.UpdateBook(request.Context(), bookID, serviceInput)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, updated)
}

/*
DeleteBook removes a title from the catalog.

DELETE /api/v1/books/{bookID}

Response:
  - 204: No Content: Title removed
  - 403: ErrForbidden: Caller is not an admin
*/
func (handler *Handler) deleteBook(writer http.ResponseWriter, request *http.Request) {
	bookID := requestutil.Param(request, "bookID")

	if err := handler.bookService.DeleteBook(request.Context(), bookID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
GetContent returns the access-limited readable content of a title.

GET /api/v1/books/{bookID}/content

Description: The caller's role (from the optional bearer token) is resolved
against the book's own permission table to decide how many chapters and how
much of the full text are returned. Anonymous callers get the preview.

Response:
  - 200: ContentView: Access-limited chapters
  - 404: ErrNotFound: Unknown book
*/
func (handler *Handler) getContent(writer http.ResponseWriter, request *http.Request) {
	bookID := requestutil.Param(request, "bookID")

	// Anonymous readers carry no claims and resolve to the preview level
	role := ""
	if claims := requestutil.Claims(request); claims != nil {
		role = claims.Role
	}

	view, err := handler.bookService.GetContent(request.Context(), bookID, role)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, view)
}

/*
ListReviews lists all reviews for a title, newest first.

GET /api/v1/books/{bookID}/reviews

Response:
  - 200: []Review: Review list
*/
func (handler *Handler) listReviews(writer http.ResponseWriter, request *http.Request) {
	bookID := requestutil.Param(request, "bookID")

	reviews, err := handler.bookService.ListReviews(request.Context(), bookID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, reviews)
}

/*
AddReview records the caller's review of a title.

POST /api/v1/books/{bookID}/reviews

Request:
  - Body: addReviewRequest (Rating 1..5, Comment)

Response:
  - 201: Review: Created review
  - 400: ErrInvalidJSON: Rating out of range
  - 409: ErrConflict: Caller already reviewed this book
*/
func (handler *Handler) addReview(writer http.ResponseWriter, request *http.Request) {
	bookID := requestutil.Param(request, "bookID")

	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input addReviewRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	v := &validate.Validator{}
	v.Range("rating", input.Rating, 1, 5).
		MaxLen("comment", input.Comment, 2000)

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	review, err := handler.bookService.AddReview(request.Context(), AddReviewInput{
		BookID:  bookID,
		UserID:  userID,
		Rating:  input.Rating,
		Comment: input.Comment,
	})

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, review)
}

/*
GetProgress returns the caller's stored reading position.

GET /api/v1/books/{bookID}/progress

Response:
  - 200: ReadingProgress: Stored or zero-valued position
*/
func (handler *Handler) getProgress(writer http.ResponseWriter, request *http.Request) {
	bookID := requestutil.Param(request, "bookID")

	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	progress, err := handler.bookService.GetProgress(request.Context(), bookID, userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, progress)
}

/*
UpdateProgress stores the caller's reading position.

PUT /api/v1/books/{bookID}/progress

Request:
  - Body: updateProgressRequest (Percentage 0..100, Chapter)

Response:
  - 200: ReadingProgress: Stored position (after clamping)
  - 404: ErrNotFound: Unknown book
*/
func (handler *Handler) updateProgress(writer http.ResponseWriter, request *http.Request) {
	bookID := requestutil.Param(request, "bookID")

	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateProgressRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	progress, err := handler.bookService.UpdateProgress(request.Context(), UpdateProgressInput{
		BookID:     bookID,
		UserID:     userID,
		Percentage: input.Percentage,
		Chapter:    input.Chapter,
	})

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, progress)
}
