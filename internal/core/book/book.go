// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.app

/*
Package book implements the catalog and reading domain.

It defines the Book entity with its embedded chapter content, reader reviews,
per-user reading progress, and the role-based content access rules that
decide how much of a book a given reader may see.

# Architecture

  - Entities: Book, Chapter, Review, ReadingProgress.
  - Access: Pure resolution logic (no I/O) in access.go.
  - Storage: PostgreSQL for truth, Redis as a read-through document cache.
*/
package book

import (
	"context"
	"time"
)

// # Domain Entities

// Book represents a published title in the Inkwell catalog.
type Book struct {
	ID                string             `json:"id"`
	Title             string             `json:"title"`
	Slug              string             `json:"slug"`
	Author            string             `json:"author"`
	ISBN              string             `json:"isbn"`
	Description       string             `json:"description,omitempty"`
	Price             float64            `json:"price"`
	CoverURL          string             `json:"cover_url,omitempty"`
	Content           BookContent        `json:"-"` // Served only through the access resolver.
	AccessPermissions []AccessPermission `json:"access_permissions"`
	Rating            float64            `json:"rating"`
	ReviewCount       int                `json:"review_count"`
	CreatedAt         time.Time          `json:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at"`
}

// AccessPermission maps one role to the access level this book grants it.
// Each title carries its own table, so the same role can read one book in
// full and only preview another.
type AccessPermission struct {
	Role  string      `json:"role"`
	Level AccessLevel `json:"level"`
}

// BookContent is the readable body of a book, stored as a JSONB document.
// FullText is the continuous reading text; chapters carry the structured form.
type BookContent struct {
	Chapters []Chapter `json:"chapters"`
	FullText string    `json:"full_text"`
}

// Chapter is a single readable unit of a book.
type Chapter struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Review is a reader's rating and comment on a book. One per user per book.
type Review struct {
	ID        string    `json:"id"`
	BookID    string    `json:"book_id"`
	UserID    string    `json:"user_id"`
	Rating    int       `json:"rating"` // 1..5
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ReadingProgress tracks how far a reader has gotten in a book.
type ReadingProgress struct {
	ID         string    `json:"id"`
	BookID     string    `json:"book_id"`
	UserID     string    `json:"user_id"`
	Percentage float64   `json:"percentage"` // 0..100
	Chapter    int       `json:"chapter"`    // zero-based index of the current chapter
	UpdatedAt  time.Time `json:"updated_at"`
}

// # Repository Contracts

// BookRepository defines the persistence contract for catalog titles.
type BookRepository interface {

	/*
		Create persists a new book with its content document.

		Parameters:
		  - context: context.Context
		  - book: *Book

		Returns:
		  - error: Conflict on duplicate ISBN/slug, or storage failures
	*/
	Create(context context.Context, book *Book) error

	/*
		FindByID retrieves a book including its content document.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *Book: Hydrated entity
		  - error: apperr.NotFound or storage failures
	*/
	FindByID(context context.Context, id string) (*Book, error)

	/*
		FindBySlug retrieves a book by its URL-safe slug.

		Parameters:
		  - context: context.Context
		  - slug: string

		Returns:
		  - *Book: Hydrated entity
		  - error: apperr.NotFound or storage failures
	*/
	FindBySlug(context context.Context, slug string) (*Book, error)

	/*
		Update persists changes to a book's metadata and content.

		Parameters:
		  - context: context.Context
		  - book: *Book

		Returns:
		  - error: Storage failures
	*/
	Update(context context.Context, book *Book) error

	/*
		UpdateRating overwrites the denormalized rating aggregate.

		Parameters:
		  - context: context.Context
		  - bookID: string
		  - rating: float64
		  - reviewCount: int

		Returns:
		  - error: Storage failures
	*/
	UpdateRating(context context.Context, bookID string, rating float64, reviewCount int) error

	/*
		SoftDelete marks the book as removed from the catalog.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: Storage failures
	*/
	SoftDelete(context context.Context, id string) error
}

// ReviewRepository defines the persistence contract for reader reviews.
type ReviewRepository interface {

	/*
		Create persists a new review. Fails on the (book, user) unique pair.

		Parameters:
		  - context: context.Context
		  - review: *Review

		Returns:
		  - error: Conflict if the user already reviewed this book
	*/
	Create(context context.Context, review *Review) error

	/*
		ListByBook returns all reviews for a book, newest first.

		Parameters:
		  - context: context.Context
		  - bookID: string

		Returns:
		  - []Review: Review list
		  - error: Storage failures
	*/
	ListByBook(context context.Context, bookID string) ([]Review, error)

	/*
		Aggregate computes the average rating and count for a book.

		Parameters:
		  - context: context.Context
		  - bookID: string

		Returns:
		  - float64: Average rating (0 when no reviews)
		  - int: Review count
		  - error: Storage failures
	*/
	Aggregate(context context.Context, bookID string) (float64, int, error)
}

// ProgressRepository defines the persistence contract for reading progress.
type ProgressRepository interface {

	/*
		Upsert creates or replaces the progress row for (book, user).

		Parameters:
		  - context: context.Context
		  - progress: *ReadingProgress

		Returns:
		  - error: Storage failures
	*/
	Upsert(context context.Context, progress *ReadingProgress) error

	/*
		Find returns the progress row for (book, user).

		Parameters:
		  - context: context.Context
		  - bookID: string
		  - userID: string

		Returns:
		  - *ReadingProgress: Hydrated entity
		  - error: apperr.NotFound or storage failures
	*/
	Find(context context.Context, bookID, userID string) (*ReadingProgress, error)
}

// BookCache defines the volatile read-through cache for book documents.
type BookCache interface {

	/*
		Get returns the cached book, or nil on a miss.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *Book: Cached entity, nil on miss
		  - error: Cache connectivity failures
	*/
	Get(context context.Context, id string) (*Book, error)

	/*
		Set stores the book document with a TTL.

		Parameters:
		  - context: context.Context
		  - book: *Book

		Returns:
		  - error: Cache connectivity failures
	*/
	Set(context context.Context, book *Book) error

	/*
		Invalidate drops the cached document after a write.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: Cache connectivity failures
	*/
	Invalidate(context context.Context, id string) error
}
