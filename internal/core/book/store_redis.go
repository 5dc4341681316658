// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.app

package book

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/inkwell-app/inkwell/internal/platform/constants"
)

// cacheTTL bounds how stale a cached book document can get if an
// invalidation is ever missed.
const cacheTTL = 10 * time.Minute

// # Book Cache

// RedisBookCache implements [BookCache] on top of Redis, storing whole book
// documents (metadata plus content) as JSON.
type RedisBookCache struct {
	client *redis.Client
}

// NewBookCache creates a Redis-backed [BookCache].
func NewBookCache(client *redis.Client) *RedisBookCache {
	return &RedisBookCache{client: client}
}

// cachedBook carries the content document alongside the public fields,
// since Book excludes Content from its JSON form.
type cachedBook struct {
	Book    Book        `json:"book"`
	Content BookContent `json:"content"`
}

/*
Get returns the cached book, or nil on a miss.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Book: Cached entity, nil on miss
  - error: Redis connectivity or decode failures
*/
func (cache *RedisBookCache) Get(context context.Context, id string) (*Book, error) {
	payload, err := cache.client.Get(context, constants.RedisPrefixBook+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis_book_cache_get_failed: %w", err)
	}

	var entry cachedBook
	if err := json.Unmarshal(payload, &entry); err != nil {
		return nil, fmt.Errorf("redis_book_cache_decode_failed: %w", err)
	}

	entry.Book.Content = entry.Content
	return &entry.Book, nil
}

/*
Set stores the book document with a TTL.

Parameters:
  - context: context.Context
  - book: *Book

Returns:
  - error: Redis connectivity or encode failures
*/
func (cache *RedisBookCache) Set(context context.Context, book *Book) error {
	payload, err := json.Marshal(cachedBook{Book: *book, Content: book.Content})
	if err != nil {
		return fmt.Errorf("redis_book_cache_encode_failed: %w", err)
	}

	if err := cache.client.Set(context, constants.RedisPrefixBook+book.ID, payload, cacheTTL).Err(); err != nil {
		return fmt.Errorf("redis_book_cache_set_failed: %w", err)
	}

	return nil
}

/*
Invalidate drops the cached document after a write.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: Redis connectivity failures
*/
func (cache *RedisBookCache) Invalidate(context context.Context, id string) error {
	if err := cache.client.Del(context, constants.RedisPrefixBook+id).Err(); err != nil {
		return fmt.Errorf("redis_book_cache_invalidate_failed: %w", err)
	}
	return nil
}
