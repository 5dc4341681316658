// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.app

// PostgreSQL implementation of the book storage contracts.
//
// Book content is stored as a JSONB document on the book row: chapters are
// always read and written together with their book, and the access resolver
// needs the whole document anyway.
package book

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inkwell-app/inkwell/internal/platform/apperr"
	"github.com/inkwell-app/inkwell/internal/platform/dberr"
)

// # Book Repository

// PostgresBookRepository implements the BookRepository interface using pgx.
type PostgresBookRepository struct {
	pool *pgxpool.Pool
}

// NewBookRepository creates a new PostgreSQL implementation of BookRepository.
func NewBookRepository(pool *pgxpool.Pool) *PostgresBookRepository {
	return &PostgresBookRepository{pool: pool}
}

const bookColumns = `id, title, slug, author, isbn, description, price, coverurl, content, accesspermissions, rating, reviewcount, createdat, updatedat`

// scanBook hydrates a Book from a row using the bookColumns order.
// pgx maps the JSONB content and permission columns onto their Go types directly.
func scanBook(row pgx.Row) (*Book, error) {
	found := &Book{}
	err := row.Scan(
		&found.ID,
		&found.Title,
		&found.Slug,
		&found.Author,
		&found.ISBN,
		&found.Description,
		&found.Price,
		&found.CoverURL,
		&found.Content,
		&found.AccessPermissions,
		&found.Rating,
		&found.ReviewCount,
		&found.CreatedAt,
		&found.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return found, nil
}

/*
Create persists a new book with its content document.

Parameters:
  - context: context.Context
  - book: *Book

Returns:
  - error: apperr.Conflict on duplicate ISBN or slug, or storage failures
*/
func (repository *PostgresBookRepository) Create(context context.Context, book *Book) error {
	const query = `
		INSERT INTO core.book (
			id, title, slug, author, isbn, description, price, coverurl, content, accesspermissions, rating, reviewcount, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err := repository.pool.Exec(context, query,
		book.ID,
		book.Title,
		book.Slug,
		book.Author,
		book.ISBN,
		book.Description,
		book.Price,
		book.CoverURL,
		book.Content,
		book.AccessPermissions,
		book.Rating,
		book.ReviewCount,
		book.CreatedAt,
		book.UpdatedAt,
	)

	if err != nil {
		if dberr.IsUniqueViolation(err, "") {
			return apperr.Conflict("A book with this ISBN or title already exists")
		}
		return fmt.Errorf("postgres_book_repo_create_failed: %w", err)
	}

	return nil
}

/*
FindByID retrieves a book including its content document.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Book: Hydrated entity
  - error: apperr.NotFound or storage failures
*/
func (repository *PostgresBookRepository) FindByID(context context.Context, id string) (*Book, error) {
	query := `
		SELECT ` + bookColumns + `
		FROM core.book
		WHERE id = $1 AND deletedat IS NULL`

	found, err := scanBook(repository.pool.QueryRow(context, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Book")
		}
		return nil, fmt.Errorf("postgres_book_repo_find_by_id_failed: %w", err)
	}

	return found, nil
}

/*
FindBySlug retrieves a book by its URL-safe slug.

Parameters:
  - context: context.Context
  - slug: string

Returns:
  - *Book: Hydrated entity
  - error: apperr.NotFound or storage failures
*/
func (repository *PostgresBookRepository) FindBySlug(context context.Context, slug string) (*Book, error) {
	query := `
		SELECT ` + bookColumns + `
		FROM core.book
		WHERE slug = $1 AND deletedat IS NULL`

	found, err := scanBook(repository.pool.QueryRow(context, query, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Book")
		}
		return nil, fmt.Errorf("postgres_book_repo_find_by_slug_failed: %w", err)
	}

	return found, nil
}

/*
Update persists changes to a book's metadata and content.

Parameters:
  - context: context.Context
  - book: *Book

Returns:
  - error: Storage failures
*/
func (repository *PostgresBookRepository) Update(context context.Context, book *Book) error {
	const query = `
		UPDATE core.book
		SET title = $2, slug = $3, author = $4, description = $5, price = $6, coverurl = $7, content = $8, accesspermissions = $9, updatedat = $10
		WHERE id = $1 AND deletedat IS NULL`

	book.UpdatedAt = time.Now()
	_, err := repository.pool.Exec(context, query,
		book.ID,
		book.Title,
		book.Slug,
		book.Author,
		book.Description,
		book.Price,
		book.CoverURL,
		book.Content,
		book.AccessPermissions,
		book.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("postgres_book_repo_update_failed: %w", err)
	}

	return nil
}

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
func (repository *PostgresBookRepository) UpdateRating(context context.Context, bookID string, rating float64, reviewCount int) error {
	const query = `
		UPDATE core.book
		SET rating = $2, reviewcount = $3, updatedat = $4
		WHERE id = $1 AND deletedat IS NULL`

	_, err := repository.pool.Exec(context, query, bookID, rating, reviewCount, time.Now())
	if err != nil {
		return fmt.Errorf("postgres_book_repo_update_rating_failed: %w", err)
	}

	return nil
}

/*
SoftDelete marks the book as removed from the catalog.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: Storage failures
*/
func (repository *PostgresBookRepository) SoftDelete(context context.Context, id string) error {
	const query = "UPDATE core.book SET deletedat = $2 WHERE id = $1"
	_, err := repository.pool.Exec(context, query, id, time.Now())
	if err != nil {
		return fmt.Errorf("postgres_book_repo_soft_delete_failed: %w", err)
	}
	return nil
}

// # Review Repository

// PostgresReviewRepository implements the ReviewRepository interface using pgx.
type PostgresReviewRepository struct {
	pool *pgxpool.Pool
}

// NewReviewRepository creates a new PostgreSQL implementation of ReviewRepository.
func NewReviewRepository(pool *pgxpool.Pool) *PostgresReviewRepository {
	return &PostgresReviewRepository{pool: pool}
}

/*
Create persists a new review.

Description: The (bookid, userid) unique constraint enforces one review per
user per book at the database level.

Parameters:
  - context: context.Context
  - review: *Review

Returns:
  - error: apperr.Conflict on duplicate review, or storage failures
*/
func (repository *PostgresReviewRepository) Create(context context.Context, review *Review) error {
	const query = `
		INSERT INTO core.review (id, bookid, userid, rating, comment, createdat, updatedat)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := repository.pool.Exec(context, query,
		review.ID,
		review.BookID,
		review.UserID,
		review.Rating,
		review.Comment,
		review.CreatedAt,
		review.UpdatedAt,
	)

	if err != nil {
		if dberr.IsUniqueViolation(err, "") {
			return apperr.Conflict("You have already reviewed this book")
		}
		return fmt.Errorf("postgres_review_repo_create_failed: %w", err)
	}

	return nil
}

/*
ListByBook returns all reviews for a book, newest first.

Parameters:
  - context: context.Context
  - bookID: string

Returns:
  - []Review: Review list
  - error: Storage failures
*/
func (repository *PostgresReviewRepository) ListByBook(context context.Context, bookID string) ([]Review, error) {
	const query = `
		SELECT id, bookid, userid, rating, comment, createdat, updatedat
		FROM core.review
		WHERE bookid = $1
		ORDER BY createdat DESC`

	rows, err := repository.pool.Query(context, query, bookID)
	if err != nil {
		return nil, fmt.Errorf("postgres_review_repo_list_failed: %w", err)
	}
	defer rows.Close()

	reviews := []Review{}
	for rows.Next() {
		var review Review
		err := rows.Scan(
			&review.ID,
			&review.BookID,
			&review.UserID,
			&review.Rating,
			&review.Comment,
			&review.CreatedAt,
			&review.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres_review_repo_scan_failed: %w", err)
		}
		reviews = append(reviews, review)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_review_repo_rows_failed: %w", err)
	}

	return reviews, nil
}

/*
Aggregate computes the average rating and count for a book.

Parameters:
  - context: context.Context
  - bookID: string

Returns:
  - float64: Average rating, 0 when the book has no reviews
  - int: Review count
  - error: Storage failures
*/
func (repository *PostgresReviewRepository) Aggregate(context context.Context, bookID string) (float64, int, error) {
	const query = `
		SELECT COALESCE(AVG(rating), 0), COUNT(*)
		FROM core.review
		WHERE bookid = $1`

	var average float64
	var count int
	err := repository.pool.QueryRow(context, query, bookID).Scan(&average, &count)
	if err != nil {
		return 0, 0, fmt.Errorf("postgres_review_repo_aggregate_failed: %w", err)
	}

	return average, count, nil
}

// # Progress Repository

// PostgresProgressRepository implements the ProgressRepository interface using pgx.
type PostgresProgressRepository struct {
	pool *pgxpool.Pool
}

// NewProgressRepository creates a new PostgreSQL implementation of ProgressRepository.
func NewProgressRepository(pool *pgxpool.Pool) *PostgresProgressRepository {
	return &PostgresProgressRepository{pool: pool}
}

/*
Upsert creates or replaces the progress row for (book, user).

Description: ON CONFLICT keeps the original row ID so repeated updates from
the same reader do not accumulate rows.

Parameters:
  - context: context.Context
  - progress: *ReadingProgress

Returns:
  - error: Storage failures
*/
func (repository *PostgresProgressRepository) Upsert(context context.Context, progress *ReadingProgress) error {
	const query = `
		INSERT INTO core.readingprogress (id, bookid, userid, percentage, chapter, updatedat)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (bookid, userid)
		DO UPDATE SET percentage = EXCLUDED.percentage, chapter = EXCLUDED.chapter, updatedat = EXCLUDED.updatedat`

	_, err := repository.pool.Exec(context, query,
		progress.ID,
		progress.BookID,
		progress.UserID,
		progress.Percentage,
		progress.Chapter,
		progress.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("postgres_progress_repo_upsert_failed: %w", err)
	}

	return nil
}

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
func (repository *PostgresProgressRepository) Find(context context.Context, bookID, userID string) (*ReadingProgress, error) {
	const query = `
		SELECT id, bookid, userid, percentage, chapter, updatedat
		FROM core.readingprogress
		WHERE bookid = $1 AND userid = $2`

	progress := &ReadingProgress{}
	err := repository.pool.QueryRow(context, query, bookID, userID).Scan(
		&progress.ID,
		&progress.BookID,
		&progress.UserID,
		&progress.Percentage,
		&progress.Chapter,
		&progress.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Reading progress")
		}
		return nil, fmt.Errorf("postgres_progress_repo_find_failed: %w", err)
	}

	return progress, nil
}
