// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.app

/*
Package auth implements the core identity and access management (IAM) system.

It handles everything from user registration and secure password hashing to
email verification and password recovery via short-lived numeric codes.

Architecture:

  - Service: Orchestrates business logic (Register, VerifyEmail, Login, Reset).
  - Repository: Abstracted interfaces for Postgres (Users) and Redis (Cooldowns).
  - Security: Bcrypt hashing and HMAC-signed stateless JWTs.

The package ensures that identity data remains consistent and secure throughout
the platform's lifecycle.
*/
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/inkwell-app/inkwell/internal/platform/apperr"
	"github.com/inkwell-app/inkwell/internal/platform/ctxutil"
	"github.com/inkwell-app/inkwell/internal/platform/mail"
	"github.com/inkwell-app/inkwell/internal/platform/sec"
	"github.com/inkwell-app/inkwell/pkg/uuid"
)

// # Contracts & Types

// TokenProvider defines the contract for generating access tokens.
type TokenProvider interface {
	// Issue creates a signed JWT string for the given user.
	//
	// # Parameters
	//   - userID: The ID of the account.
	//   - username: The username of the account.
	//   - role: The role of the account.
	//
	// # Returns
	//   - A signed JWT string, or an err if signing fails.
	Issue(userID, username, role string) (string, error)
}

// CodeIssuer defines the contract for generating one-time numeric codes.
type CodeIssuer interface {
	// Generate returns a fresh 6-digit code and its expiry timestamp.
	Generate() (string, time.Time, error)

	// Window exposes the configured code lifetime.
	Window() time.Duration
}

// PasswordHasher defines the contract for hashing and verifying passwords.
type PasswordHasher interface {
	Hash(plainTextPassword string) (string, error)
	Compare(plainTextPassword, existingHash string) bool
}

// dummyBcryptHash is a valid bcrypt digest of a throwaway value. Login burns
// a comparison against it when the account does not exist, so a missing user
// costs the same wall-clock time as a wrong password.
const dummyBcryptHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// Service implements user authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, registration,
// or login logic must be reviewed by the security team.
type Service struct {
	userRepository     UserRepository
	cooldownRepository CooldownRepository
	hasher             PasswordHasher
	tokenProvider      TokenProvider
	verificationCodes  CodeIssuer
	resetCodes         CodeIssuer
	mailer             mail.Sender
	sendCooldown       time.Duration
	accessTokenTTL     time.Duration
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(
	userRepo UserRepository,
	cooldownRepo CooldownRepository,
	hasher PasswordHasher,
	tokenProv TokenProvider,
	verificationCodes CodeIssuer,
	resetCodes CodeIssuer,
	mailer mail.Sender,
	sendCooldown time.Duration,
	accessTokenTTL time.Duration,
) *Service {
	return &Service{
		userRepository:     userRepo,
		cooldownRepository: cooldownRepo,
		hasher:             hasher,
		tokenProvider:      tokenProv,
		verificationCodes:  verificationCodes,
		resetCodes:         resetCodes,
		mailer:             mailer,
		sendCooldown:       sendCooldown,
		accessTokenTTL:     accessTokenTTL,
	}
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new member.
type RegisterInput struct {
	Username    string
	Email       string
	Password    string
	DisplayName string
}

/*
Register validates, hashes, and persists a brand new user account.

Description: Deep-enrollment of a new member, handling password hashing and
initial verification code issuance. The account stays locked out of login
until the email is verified.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *User: Created entity
  - err: USER_EXISTS (if identity exists) or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*User, error) {

	// The account row and every later lookup must agree on the casing
	input.Email = normalizeEmail(input.Email)

	// Verify email uniqueness. Return a client-safe err.
	_, err := service.userRepository.FindByEmail(context, input.Email)
	if err == nil {
		return nil, apperr.Coded(http.StatusConflict, "USER_EXISTS", "An account with this email already exists")
	}

	// Verify username uniqueness. Return a client-safe err.
	_, err = service.userRepository.FindByUsername(context, input.Username)
	if err == nil {
		return nil, apperr.Coded(http.StatusConflict, "USER_EXISTS", "Username is already taken")
	}

	// Prevent storing plain-text passwords. The cost factor is configured at
	// startup to balance security and CPU utilization during registration spikes.
	hashedPassword, err := service.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	// Issue the first verification code before persisting, so the account row
	// is born with a pending code.
	code, expiresAt, err := service.verificationCodes.Generate()
	if err != nil {
		return nil, fmt.Errorf("auth_service_generate_verification_code_failed: %w", err)
	}

	// Construct the new User entity. Time-sortable ID to prevent PG index fragmentation.
	user := &User{
		ID:                        uuid.New(),
		Username:                  input.Username,
		Email:                     input.Email,
		PasswordHash:              hashedPassword,
		DisplayName:               input.DisplayName,
		Role:                      sec.RoleUser,
		IsVerified:                false,
		VerificationCode:          &code,
		VerificationCodeExpiresAt: &expiresAt,
	}

	// Persist the user to the database
	if err := service.userRepository.Create(context, user); err != nil {
		return nil, err
	}

	// Deliver the code. A mail failure must not roll back the registration,
	// the user can recover via resend.
	service.sendCode(context, user.Email, MailSubjectVerification, mailBodyVerification, code, service.verificationCodes.Window())

	return user, nil
}

// # Email Verification Flow

// AuthSession represents a successfully established stateless session.
type AuthSession struct {
	AccessToken string
	TokenType   string
	ExpiresIn   int64 // seconds
	User        *User
}

/*
VerifyEmail confirms email ownership using a 6-digit code and logs the user in.

Description: Validates the pending verification code, marks the account as
verified (clearing the code so it can never be replayed), and issues an
access token so the user lands in the app without a second login step.

Parameters:
  - context: context.Context
  - email: string
  - code: string

Returns:
  - *AuthSession: Auto-login credentials
  - err: USER_NOT_FOUND, INVALID_CODE, or storage errors
*/
func (service *Service) VerifyEmail(context context.Context, email, code string) (*AuthSession, error) {

	// Resolve the account
	user, err := service.userRepository.FindByEmail(context, normalizeEmail(email))
	if err != nil {
		return nil, err
	}

	// A verified account has no pending code, so a repeat verification
	// attempt falls through to INVALID_CODE below.
	if !user.HasValidVerificationCode(code, time.Now()) {
		return nil, apperr.Coded(http.StatusBadRequest, "INVALID_CODE", "Verification code is invalid or expired")
	}

	// Flip the verified flag and clear the code pair. Consumption is guarded
	// in storage, so of two racing attempts only one can succeed even though
	// the check above read a then-valid row.
	if err := service.userRepository.MarkVerified(context, user.ID, code); err != nil {
		return nil, err
	}

	user.IsVerified = true
	user.VerificationCode = nil
	user.VerificationCodeExpiresAt = nil

	// Welcome mail is best-effort, the account is already verified
	recipientName := user.DisplayName
	if recipientName == "" {
		recipientName = user.Username
	}
	if err := service.mailer.Send(context, user.Email, MailSubjectWelcome, fmt.Sprintf(mailBodyWelcome, recipientName)); err != nil {
		ctxutil.GetLogger(context).WarnContext(context, "auth_welcome_email_failed",
			slog.String("email", user.Email),
			slog.Any("error", err),
		)
	}

	// Auto-login: reward the successful verification with a session
	return service.establishSession(context, user)
}

/*
ResendVerification issues a fresh verification code to an unverified account.

Description: Regenerates the code (invalidating any previously issued one)
and re-sends the email, subject to a per-address cooldown.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - err: USER_NOT_FOUND, ALREADY_VERIFIED, RATE_LIMITED, or storage errors
*/
func (service *Service) ResendVerification(context context.Context, email string) error {

	// Resolve the account
	user, err := service.userRepository.FindByEmail(context, normalizeEmail(email))
	if err != nil {
		return err
	}

	// Nothing to verify for an already-verified account
	if user.IsVerified {
		return apperr.Coded(http.StatusBadRequest, "ALREADY_VERIFIED", "Email is already verified")
	}

	// Throttle outbound email per address
	if err := service.acquireSendSlot(context, user.Email); err != nil {
		return err
	}

	// Fresh code: the overwrite makes the previous code dead on arrival
	code, expiresAt, err := service.verificationCodes.Generate()
	if err != nil {
		return fmt.Errorf("auth_service_generate_verification_code_failed: %w", err)
	}

	if err := service.userRepository.SetVerificationCode(context, user.ID, code, expiresAt); err != nil {
		return err
	}

	service.sendCode(context, user.Email, MailSubjectVerification, mailBodyVerification, code, service.verificationCodes.Window())

	return nil
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Login    string // Can be Username or Email
	Password string
}

/*
Login validates user credentials and issues an access token.

Description: Verifies identity, performs constant-time password comparison,
and establishes a stateless session. Unknown accounts and wrong passwords
produce byte-identical responses to prevent user enumeration.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *AuthSession: Transport-ready session credentials
  - err: INVALID_CREDENTIALS, EMAIL_NOT_VERIFIED, or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*AuthSession, error) {
	var user *User
	var err error
	// Flexible login: look up by Email or Username
	user, err = service.userRepository.FindByEmail(context, normalizeEmail(input.Login))
	if err != nil {
		user, err = service.userRepository.FindByUsername(context, input.Login)
	}

	// If (err != nil) the user does not exist. Burn a bcrypt comparison so the
	// response time matches the wrong-password path, then return the same
	// generic message.
	if err != nil {
		service.hasher.Compare(input.Password, dummyBcryptHash)
		return nil, apperr.Coded(http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid login credentials")
	}

	// Verify password hash using constant-time comparison in bcrypt to prevent timing attacks
	if !service.hasher.Compare(input.Password, user.PasswordHash) {
		return nil, apperr.Coded(http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid login credentials")
	}

	// The password was right, so naming the real blocker is safe now
	if !user.IsVerified {
		return nil, apperr.Coded(http.StatusUnauthorized, "EMAIL_NOT_VERIFIED", "Email address has not been verified")
	}

	// Best-effort: login must not fail because the timestamp write did
	now := time.Now()
	if err := service.userRepository.UpdateLastLogin(context, user.ID, now); err == nil {
		user.LastLoginAt = &now
	}

	return service.establishSession(context, user)
}

// # Password Recovery

/*
RequestPasswordReset initiates the forgot-password flow.

Description: Generates a 6-digit reset code, stores it on the account row,
and emails it, subject to a per-address cooldown.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - err: USER_NOT_FOUND, RATE_LIMITED, or generation errors
*/
func (service *Service) RequestPasswordReset(context context.Context, email string) error {

	// Resolve the account
	user, err := service.userRepository.FindByEmail(context, normalizeEmail(email))
	if err != nil {
		return err
	}

	// Throttle outbound email per address
	if err := service.acquireSendSlot(context, user.Email); err != nil {
		return err
	}

	// Generate reset code
	code, expiresAt, err := service.resetCodes.Generate()
	if err != nil {
		return fmt.Errorf("auth_service_generate_reset_code_failed: %w", err)
	}

	// Save to the account row, overwriting any previous pending code
	if err := service.userRepository.SetResetCode(context, user.ID, code, expiresAt); err != nil {
		return err
	}

	service.sendCode(context, user.Email, MailSubjectPasswordReset, mailBodyPasswordReset, code, service.resetCodes.Window())

	return nil
}

/*
ResetPassword completes the forgot-password flow.

Description: Verifies the reset code, hashes the new password, and updates
the account. The code is cleared in the same statement, making it single-use.
No session is issued: the user must log in with the new password.

Parameters:
  - context: context.Context
  - email: string
  - code: string
  - newPassword: string

Returns:
  - err: USER_NOT_FOUND, INVALID_PIN, or update failures
*/
func (service *Service) ResetPassword(context context.Context, email, code, newPassword string) error {

	// Resolve the account
	user, err := service.userRepository.FindByEmail(context, normalizeEmail(email))
	if err != nil {
		return err
	}

	// Validate the pending reset code
	if !user.HasValidResetCode(code, time.Now()) {
		return apperr.Coded(http.StatusBadRequest, "INVALID_PIN", "Reset code is invalid or expired")
	}

	// Hash the new password securely
	hashedPassword, err := service.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("auth_service_reset_password_hash_failed: %w", err)
	}

	// Update the hash and clear the code pair atomically
	if err := service.userRepository.ResetPassword(context, user.ID, hashedPassword); err != nil {
		return err
	}

	return nil
}

/*
ChangePassword allows an authenticated user to update their credentials.

Description: Verifies the current password before applying the new one.

Parameters:
  - context: context.Context
  - userID: string
  - currentPassword: string
  - newPassword: string

Returns:
  - err: INVALID_CREDENTIALS or storage failures
*/
func (service *Service) ChangePassword(context context.Context, userID, currentPassword, newPassword string) error {

	// Fetch user by ID
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return err
	}

	// Verify the current password before allowing change
	if !service.hasher.Compare(currentPassword, user.PasswordHash) {
		return apperr.Coded(http.StatusUnauthorized, "INVALID_CREDENTIALS", "Current password is incorrect")
	}

	// Hash the brand new password
	hashedPassword, err := service.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("auth_service_change_password_hash_failed: %w", err)
	}

	// Update the database with the new hash
	if err := service.userRepository.UpdatePassword(context, userID, hashedPassword); err != nil {
		return fmt.Errorf("auth_service_change_password_update_failed: %w", err)
	}

	return nil
}

// # Internal Helpers

// normalizeEmail canonicalizes an address for storage and lookups. The unique
// index is case-insensitive, so every flow has to key on the same casing.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// establishSession issues a signed access token wrapped in an [AuthSession].
func (service *Service) establishSession(context context.Context, user *User) (*AuthSession, error) {
	accessToken, err := service.tokenProvider.Issue(user.ID, user.Username, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	return &AuthSession{
		AccessToken: accessToken,
		TokenType:   TokenType,
		ExpiresIn:   int64(service.accessTokenTTL / time.Second),
		User:        user,
	}, nil
}

// acquireSendSlot enforces the per-address outbound email cooldown.
func (service *Service) acquireSendSlot(context context.Context, email string) error {
	acquired, err := service.cooldownRepository.Acquire(context, email, service.sendCooldown)
	if err != nil {
		return fmt.Errorf("auth_service_cooldown_check_failed: %w", err)
	}
	if !acquired {
		return apperr.RateLimited(int(service.sendCooldown / time.Second))
	}
	return nil
}

// sendCode delivers a one-time code email. Failures are logged, never fatal:
// the user can always request a resend.
func (service *Service) sendCode(context context.Context, email, subject, bodyTemplate, code string, window time.Duration) {
	body := fmt.Sprintf(bodyTemplate, code, int(window/time.Minute))
	if err := service.mailer.Send(context, email, subject, body); err != nil {
		ctxutil.GetLogger(context).WarnContext(context, "auth_code_email_failed",
			slog.String("email", email),
			slog.String("subject", subject),
			slog.Any("error", err),
		)
	}
}
