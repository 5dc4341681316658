// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.app

/*
Package auth implements the user identity and credential lifecycle layer.

It defines the core domain entity (User) and the logic for registration,
email verification, authentication, and password recovery.

# Architecture

This layer is the "Truth" of the system. Entities defined here have no external
dependencies and encapsulate all business rules related to user identity.
*/
package auth

import (
	"time"

	"github.com/inkwell-app/inkwell/internal/platform/sec"
)

// # Domain Entities

// User represents a registered member of the Inkwell platform.
//
// The verification and reset code pairs are nilable: a nil code means no
// flow is pending. Code and expiry are always written and cleared together.
type User struct {
	ID           string       `json:"id"`
	Username     string       `json:"username"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"` // Explicitly omitted from JSON for security.
	DisplayName  string       `json:"display_name"`
	AvatarURL    string       `json:"avatar_url,omitempty"`
	Bio          string       `json:"bio,omitempty"`
	Role         sec.UserRole `json:"role"`
	IsVerified   bool         `json:"is_verified"`

	// Pending email verification code, nil when none is outstanding.
	VerificationCode          *string    `json:"-"`
	VerificationCodeExpiresAt *time.Time `json:"-"`

	// Pending password reset code, nil when none is outstanding.
	ResetCode          *string    `json:"-"`
	ResetCodeExpiresAt *time.Time `json:"-"`

	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// HasValidVerificationCode reports whether the stored verification code
// matches and has not expired at the given instant.
func (user *User) HasValidVerificationCode(code string, now time.Time) bool {
	if user.VerificationCode == nil || user.VerificationCodeExpiresAt == nil {
		return false
	}
	return *user.VerificationCode == code && user.VerificationCodeExpiresAt.After(now)
}

// HasValidResetCode reports whether the stored password reset code matches
// and has not expired at the given instant.
func (user *User) HasValidResetCode(code string, now time.Time) bool {
	if user.ResetCode == nil || user.ResetCodeExpiresAt == nil {
		return false
	}
	return *user.ResetCode == code && user.ResetCodeExpiresAt.After(now)
}

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldUsername         = "username"
	FieldEmail            = "email"
	FieldPassword         = "password"
	FieldDisplayName      = "display_name"
	FieldLogin            = "login"
	FieldVerificationCode = "verificationCode"
	FieldResetCode        = "resetCode"
	FieldCurrentPassword  = "current_password"
	FieldNewPassword      = "new_password"
	FieldAccessToken      = "access_token"
	FieldTokenType        = "token_type"
	FieldExpiresIn        = "expires_in"
	FieldUser             = "user"
	FieldMessage          = "message"
)
