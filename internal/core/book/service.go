// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.app

package book

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/inkwell-app/inkwell/internal/platform/apperr"
	"github.com/inkwell-app/inkwell/internal/platform/ctxutil"
	"github.com/inkwell-app/inkwell/pkg/slug"
	"github.com/inkwell-app/inkwell/pkg/uuid"
)

// # Service Layer

// Service orchestrates catalog, review, and reading-progress use cases.
type Service struct {
	bookRepository     BookRepository
	reviewRepository   ReviewRepository
	progressRepository ProgressRepository
	cache              BookCache
}

// NewService constructs a new [Service] with its repository dependencies.
func NewService(
	bookRepo BookRepository,
	reviewRepo ReviewRepository,
	progressRepo ProgressRepository,
	cache BookCache,
) *Service {
	return &Service{
		bookRepository:     bookRepo,
		reviewRepository:   reviewRepo,
		progressRepository: progressRepo,
		cache:              cache,
	}
}

// # Catalog Management

// CreateBookInput holds the data required to publish a new title.
type CreateBookInput struct {
	Title             string
	Author            string
	ISBN              string
	Description       string
	Price             float64
	CoverURL          string
	Content           BookContent
	AccessPermissions []AccessPermission
}

/*
CreateBook publishes a new title to the catalog.

Description: Derives a URL-safe slug from the title and persists the book
with its content document. ISBN and slug collisions surface as conflicts.

Parameters:
  - context: context.Context
  - input: CreateBookInput

Returns:
  - *Book: Created entity
  - err: Conflict on duplicate ISBN, or storage errors
*/
func (service *Service) CreateBook(context context.Context, input CreateBookInput) (*Book, error) {
	now := time.Now()
	newBook := &Book{
		ID:                uuid.New(),
		Title:             input.Title,
		Slug:              slug.From(input.Title),
		Author:            input.Author,
		ISBN:              input.ISBN,
		Description:       input.Description,
		Price:             input.Price,
		CoverURL:          input.CoverURL,
		Content:           input.Content,
		AccessPermissions: input.AccessPermissions,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := service.bookRepository.Create(context, newBook); err != nil {
		return nil, err
	}

	return newBook, nil
}

/*
GetBook retrieves a title by ID, reading through the cache.

Description: Cache hits skip PostgreSQL entirely. Misses hydrate the cache
best-effort; a cache write failure never fails the read.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Book: Hydrated entity
  - err: apperr.NotFound or storage errors
*/
func (service *Service) GetBook(context context.Context, id string) (*Book, error) {

	// Cache first. A cache error degrades to a database read.
	cached, err := service.cache.Get(context, id)
	if err == nil && cached != nil {
		return cached, nil
	}
	if err != nil {
		ctxutil.GetLogger(context).WarnContext(context, "book_cache_read_failed",
			slog.String("book_id", id),
			slog.Any("error", err),
		)
	}

	found, err := service.bookRepository.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	// Hydrate the cache best-effort
	if err := service.cache.Set(context, found); err != nil {
		ctxutil.GetLogger(context).WarnContext(context, "book_cache_write_failed",
			slog.String("book_id", id),
			slog.Any("error", err),
		)
	}

	return found, nil
}

/*
GetBookBySlug retrieves a title by its URL-safe slug.

Parameters:
  - context: context.Context
  - bookSlug: string

Returns:
  - *Book: Hydrated entity
  - err: apperr.NotFound or storage errors
*/
func (service *Service) GetBookBySlug(context context.Context, bookSlug string) (*Book, error) {
	return service.bookRepository.FindBySlug(context, bookSlug)
}

// UpdateBookInput defines the mutable subset of book fields. Chapters and
// full text update independently so a text-only edit keeps the chapter list.
type UpdateBookInput struct {
	Title             *string
	Author            *string
	Description       *string
	Price             *float64
	CoverURL          *string
	Chapters          *[]Chapter
	FullText          *string
	AccessPermissions *[]AccessPermission
}

/*
UpdateBook applies a partial set of changes to a catalog title.

Description: Absent fields keep their current value. A title change also
regenerates the slug. The cache entry is invalidated after the write.

Parameters:
  - context: context.Context
  - id: string
  - input: UpdateBookInput

Returns:
  - *Book: Updated entity
  - err: apperr.NotFound or storage errors
*/
func (service *Service) UpdateBook(context context.Context, id string, input UpdateBookInput) (*Book, error) {
	existing, err := service.bookRepository.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	// Apply delta updates
	if input.Title != nil {
		existing.Title = *input.Title
		existing.Slug = slug.From(*input.Title)
	}
	if input.Author != nil {
		existing.Author = *input.Author
	}
	if input.Description != nil {
		existing.Description = *input.Description
	}
	if input.Price != nil {
		existing.Price = *input.Price
	}
	if input.CoverURL != nil {
		existing.CoverURL = *input.CoverURL
	}
	if input.Chapters != nil {
		existing.Content.Chapters = *input.Chapters
	}
	if input.FullText != nil {
		existing.Content.FullText = *input.FullText
	}
	if input.AccessPermissions != nil {
		existing.AccessPermissions = *input.AccessPermissions
	}

	if err := service.bookRepository.Update(context, existing); err != nil {
		return nil, err
	}

	service.invalidateCache(context, id)

	return existing, nil
}

/*
DeleteBook removes a title from the catalog (soft delete).

Parameters:
  - context: context.Context
  - id: string

Returns:
  - err: Storage errors
*/
func (service *Service) DeleteBook(context context.Context, id string) error {
	if err := service.bookRepository.SoftDelete(context, id); err != nil {
		return fmt.Errorf("book_service_delete_failed: %w", err)
	}

	service.invalidateCache(context, id)

	return nil
}

// # Content Access

/*
GetContent returns the book's readable content sliced for the given role.

Description: The role string comes straight from the caller's token (or is
empty for anonymous readers) and is resolved against the book's own
permission table. A role without an entry lands on the preview level,
never above it.

Parameters:
  - context: context.Context
  - bookID: string
  - role: string

Returns:
  - *ContentView: Access-limited chapter slice and text excerpt
  - err: apperr.NotFound or storage errors
*/
func (service *Service) GetContent(context context.Context, bookID, role string) (*ContentView, error) {
	found, err := service.GetBook(context, bookID)
	if err != nil {
		return nil, err
	}

	view := ResolveContent(found.Content, ResolveLevel(role, found.AccessPermissions))
	return &view, nil
}

// # Reviews

// AddReviewInput holds the data for a new reader review.
type AddReviewInput struct {
	BookID  string
	UserID  string
	Rating  int // 1..5
	Comment string
}

/*
AddReview records a reader's review and refreshes the rating aggregate.

Description: Enforces one review per user per book. The denormalized rating
on the book row is recomputed from storage after the insert so concurrent
reviews converge on the correct average.

Parameters:
  - context: context.Context
  - input: AddReviewInput

Returns:
  - *Review: Created entity
  - err: Conflict on duplicate review, apperr.NotFound, or storage errors
*/
func (service *Service) AddReview(context context.Context, input AddReviewInput) (*Review, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, apperr.ValidationError("Rating must be between 1 and 5")
	}

	// The book must exist before accepting a review for it
	if _, err := service.bookRepository.FindByID(context, input.BookID); err != nil {
		return nil, err
	}

	now := time.Now()
	review := &Review{
		ID:        uuid.New(),
		BookID:    input.BookID,
		UserID:    input.UserID,
		Rating:    input.Rating,
		Comment:   input.Comment,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := service.reviewRepository.Create(context, review); err != nil {
		return nil, err
	}

	// Recompute the aggregate from storage, then mirror it onto the book row
	average, count, err := service.reviewRepository.Aggregate(context, input.BookID)
	if err != nil {
		return nil, fmt.Errorf("book_service_review_aggregate_failed: %w", err)
	}
	if err := service.bookRepository.UpdateRating(context, input.BookID, average, count); err != nil {
		return nil, fmt.Errorf("book_service_rating_update_failed: %w", err)
	}

	service.invalidateCache(context, input.BookID)

	return review, nil
}

/*
ListReviews returns all reviews for a book, newest first.

Parameters:
  - context: context.Context
  - bookID: string

Returns:
  - []Review: Review list
  - err: Storage errors
*/
func (service *Service) ListReviews(context context.Context, bookID string) ([]Review, error) {
	reviews, err := service.reviewRepository.ListByBook(context, bookID)
	if err != nil {
		return nil, fmt.Errorf("book_service_list_reviews_failed: %w", err)
	}
	return reviews, nil
}

// # Reading Progress

// UpdateProgressInput holds a reader's position update.
type UpdateProgressInput struct {
	BookID     string
	UserID     string
	Percentage float64
	Chapter    int
}

/*
UpdateProgress upserts the reader's position in a book.

Description: Percentage is clamped to [0, 100] and the chapter index to the
book's actual chapter range, so a malformed client can never store an
out-of-range position.

Parameters:
  - context: context.Context
  - input: UpdateProgressInput

Returns:
  - *ReadingProgress: Stored entity
  - err: apperr.NotFound or storage errors
*/
func (service *Service) UpdateProgress(context context.Context, input UpdateProgressInput) (*ReadingProgress, error) {
	found, err := service.GetBook(context, input.BookID)
	if err != nil {
		return nil, err
	}

	// Clamp to sane bounds rather than rejecting
	percentage := math.Max(0, math.Min(100, input.Percentage))
	chapter := input.Chapter
	if chapter < 0 {
		chapter = 0
	}
	if maxChapter := len(found.Content.Chapters) - 1; maxChapter >= 0 && chapter > maxChapter {
		chapter = maxChapter
	}

	progress := &ReadingProgress{
		ID:         uuid.New(),
		BookID:     input.BookID,
		UserID:     input.UserID,
		Percentage: percentage,
		Chapter:    chapter,
		UpdatedAt:  time.Now(),
	}

	if err := service.progressRepository.Upsert(context, progress); err != nil {
		return nil, fmt.Errorf("book_service_progress_upsert_failed: %w", err)
	}

	return progress, nil
}

/*
GetProgress returns the reader's stored position, or a zero position if the
reader has not started the book.

Parameters:
  - context: context.Context
  - bookID: string
  - userID: string

Returns:
  - *ReadingProgress: Stored or zero-valued entity
  - err: Storage errors
*/
func (service *Service) GetProgress(context context.Context, bookID, userID string) (*ReadingProgress, error) {
	progress, err := service.progressRepository.Find(context, bookID, userID)
	if err != nil {
		// An unstarted book reads as zero progress, not an error
		if appError := apperr.As(err); appError != nil && appError.HTTPStatus == http.StatusNotFound {
			return &ReadingProgress{BookID: bookID, UserID: userID}, nil
		}
		return nil, fmt.Errorf("book_service_get_progress_failed: %w", err)
	}
	return progress, nil
}

// # Internal Helpers

// invalidateCache drops the cached document best-effort after a write.
func (service *Service) invalidateCache(context context.Context, bookID string) {
	if err := service.cache.Invalidate(context, bookID); err != nil {
		ctxutil.GetLogger(context).WarnContext(context, "book_cache_invalidate_failed",
			slog.String("book_id", bookID),
			slog.Any("error", err),
		)
	}
}
