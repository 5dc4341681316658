// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.app

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/inkwell-app/inkwell/internal/platform/constants"
)

// # Send Cooldown Repository

// RedisCooldownRepository throttles outbound code emails using Redis SET NX.
//
// The key expires on its own, so no cleanup job is needed. Redis being down
// surfaces as an error rather than silently disabling the throttle.
type RedisCooldownRepository struct {
	client *redis.Client
}

// NewCooldownRepository creates a Redis-backed [CooldownRepository].
func NewCooldownRepository(client *redis.Client) *RedisCooldownRepository {
	return &RedisCooldownRepository{client: client}
}

/*
Acquire attempts to claim the send slot for an email address.

Description: Atomic SET NX with TTL. The first caller within the window wins,
later callers are told the slot is taken.

Parameters:
  - context: context.Context
  - email: string
  - ttl: time.Duration

Returns:
  - bool: true if the slot was free and is now claimed
  - error: Redis connectivity failures
*/
func (repository *RedisCooldownRepository) Acquire(context context.Context, email string, ttl time.Duration) (bool, error) {
	key := constants.RedisPrefixSendCooldown + email

	acquired, err := repository.client.SetNX(context, key, "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis_cooldown_acquire_failed: %w", err)
	}

	return acquired, nil
}
