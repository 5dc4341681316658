// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.app

package auth

import (
	"context"
	"time"
)

// # User Data Access

// UserRepository defines the data access contract for user accounts.
type UserRepository interface {

	/*
		FindByID returns the account with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		FindByEmail returns the account with the given email.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		FindByUsername returns the account with the given username.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByUsername(context context.Context, username string) (*User, error)

	/*
		Create persists a brand-new user account to the storage.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, user *User) error

	/*
		SetVerificationCode overwrites the pending verification code pair.

		Each call replaces the previous code unconditionally, so the most
		recently issued code is the only one that verifies.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - code: string
		  - expiresAt: time.Time

		Returns:
		  - error: Persistence failures
	*/
	SetVerificationCode(context context.Context, userID, code string, expiresAt time.Time) error

	/*
		MarkVerified flips isverified to true and clears the verification
		code pair in a single statement, conditioned on the code still
		matching and unexpired. Exactly one of any set of racing attempts
		can consume a given code.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - code: string

		Returns:
		  - error: INVALID_CODE when the code was already consumed or
		    replaced, or persistence failures
	*/
	MarkVerified(context context.Context, userID, code string) error

	/*
		SetResetCode overwrites the pending password reset code pair.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - code: string
		  - expiresAt: time.Time

		Returns:
		  - error: Persistence failures
	*/
	SetResetCode(context context.Context, userID, code string, expiresAt time.Time) error

	/*
		ResetPassword replaces the password hash and clears the reset code
		pair in a single statement, making the code single-use.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - newHash: string

		Returns:
		  - error: Persistence failures
	*/
	ResetPassword(context context.Context, userID, newHash string) error

	/*
		UpdatePassword replaces only the user's password hash.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - newHash: string

		Returns:
		  - error: Persistence failures
	*/
	UpdatePassword(context context.Context, userID, newHash string) error

	/*
		UpdateLastLogin records the timestamp of a successful login.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - at: time.Time

		Returns:
		  - error: Persistence failures
	*/
	UpdateLastLogin(context context.Context, userID string, at time.Time) error

	/*
		SoftDelete marks the account as deleted without removing the row.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: Persistence failures
	*/
	SoftDelete(context context.Context, id string) error
}

// # Volatile Data Access

// CooldownRepository throttles outbound code emails per address.
type CooldownRepository interface {

	/*
		Acquire attempts to claim the send slot for an email address.

		Parameters:
		  - context: context.Context
		  - email: string
		  - ttl: time.Duration

		Returns:
		  - bool: true if the slot was free and is now claimed
		  - error: Storage failures
	*/
	Acquire(context context.Context, email string, ttl time.Duration) (bool, error)
}
