// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.app

package auth_test

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-app/inkwell/internal/platform/apperr"
	"github.com/inkwell-app/inkwell/internal/platform/sec"
	"github.com/inkwell-app/inkwell/internal/users/auth"
)

// # Test Doubles

// fakeUserRepository is an in-memory UserRepository.
type fakeUserRepository struct {
	mu    sync.Mutex
	users map[string]*auth.User // keyed by ID
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: make(map[string]*auth.User)}
}

func (repo *fakeUserRepository) notFound() error {
	return apperr.Coded(http.StatusNotFound, "USER_NOT_FOUND", "User not found")
}

func (repo *fakeUserRepository) FindByID(_ context.Context, id string) (*auth.User, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if user, ok := repo.users[id]; ok {
		clone := *user
		return &clone, nil
	}
	return nil, repo.notFound()
}

func (repo *fakeUserRepository) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	for _, user := range repo.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, repo.notFound()
}

func (repo *fakeUserRepository) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	for _, user := range repo.users {
		if user.Username == username {
			clone := *user
			return &clone, nil
		}
	}
	return nil, repo.notFound()
}

func (repo *fakeUserRepository) Create(_ context.Context, user *auth.User) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	clone := *user
	repo.users[user.ID] = &clone
	return nil
}

func (repo *fakeUserRepository) SetVerificationCode(_ context.Context, userID, code string, expiresAt time.Time) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if user, ok := repo.users[userID]; ok {
		user.VerificationCode = &code
		user.VerificationCodeExpiresAt = &expiresAt
	}
	return nil
}

func (repo *fakeUserRepository) MarkVerified(_ context.Context, userID, code string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	// Consumption is conditional, mirroring the guarded UPDATE: only one of
	// any set of racing attempts finds the code still in place.
	user, ok := repo.users[userID]
	if !ok || user.IsVerified || user.VerificationCode == nil || *user.VerificationCode != code ||
		user.VerificationCodeExpiresAt == nil || !user.VerificationCodeExpiresAt.After(time.Now()) {
		return apperr.Coded(http.StatusBadRequest, "INVALID_CODE", "Verification code is invalid or expired")
	}
	user.IsVerified = true
	user.VerificationCode = nil
	user.VerificationCodeExpiresAt = nil
	return nil
}

func (repo *fakeUserRepository) SetResetCode(_ context.Context, userID, code string, expiresAt time.Time) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if user, ok := repo.users[userID]; ok {
		user.ResetCode = &code
		user.ResetCodeExpiresAt = &expiresAt
	}
	return nil
}

func (repo *fakeUserRepository) ResetPassword(_ context.Context, userID, newHash string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if user, ok := repo.users[userID]; ok {
		user.PasswordHash = newHash
		user.ResetCode = nil
		user.ResetCodeExpiresAt = nil
	}
	return nil
}

func (repo *fakeUserRepository) UpdatePassword(_ context.Context, userID, newHash string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if user, ok := repo.users[userID]; ok {
		user.PasswordHash = newHash
	}
	return nil
}

func (repo *fakeUserRepository) UpdateLastLogin(_ context.Context, userID string, at time.Time) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if user, ok := repo.users[userID]; ok {
		user.LastLoginAt = &at
	}
	return nil
}

func (repo *fakeUserRepository) SoftDelete(_ context.Context, id string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	delete(repo.users, id)
	return nil
}

// fakeCooldownRepository grants the slot unless told otherwise.
type fakeCooldownRepository struct {
	mu        sync.Mutex
	busy      map[string]bool
	unlimited bool // when set, every Acquire succeeds
}

func newFakeCooldownRepository() *fakeCooldownRepository {
	return &fakeCooldownRepository{busy: make(map[string]bool)}
}

func (repo *fakeCooldownRepository) Acquire(_ context.Context, email string, _ time.Duration) (bool, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if repo.unlimited {
		return true, nil
	}
	if repo.busy[email] {
		return false, nil
	}
	repo.busy[email] = true
	return true, nil
}

func (repo *fakeCooldownRepository) release(email string) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	delete(repo.busy, email)
}

// stubCodeIssuer hands out a scripted sequence of codes.
type stubCodeIssuer struct {
	mu     sync.Mutex
	codes  []string
	next   int
	window time.Duration
}

func (issuer *stubCodeIssuer) Generate() (string, time.Time, error) {
	issuer.mu.Lock()
	defer issuer.mu.Unlock()
	code := issuer.codes[issuer.next%len(issuer.codes)]
	issuer.next++
	return code, time.Now().Add(issuer.window), nil
}

func (issuer *stubCodeIssuer) Window() time.Duration {
	return issuer.window
}

// recordingMailer captures outbound messages instead of delivering them.
type recordingMailer struct {
	mu   sync.Mutex
	sent []sentMail
}

type sentMail struct {
	to      string
	subject string
	body    string
}

func (mailer *recordingMailer) Send(_ context.Context, to, subject, body string) error {
	mailer.mu.Lock()
	defer mailer.mu.Unlock()
	mailer.sent = append(mailer.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

func (mailer *recordingMailer) count() int {
	mailer.mu.Lock()
	defer mailer.mu.Unlock()
	return len(mailer.sent)
}

func (mailer *recordingMailer) last() sentMail {
	mailer.mu.Lock()
	defer mailer.mu.Unlock()
	return mailer.sent[len(mailer.sent)-1]
}

// # Fixture

type authFixture struct {
	service   *auth.Service
	users     *fakeUserRepository
	cooldowns *fakeCooldownRepository
	verifier  *sec.TokenService
	vCodes    *stubCodeIssuer
	rCodes    *stubCodeIssuer
	mailer    *recordingMailer
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	tokenService, err := sec.NewTokenService("test-secret-please-rotate", "inkwell.app", 24*time.Hour)
	require.NoError(t, err)

	users := newFakeUserRepository()
	cooldowns := newFakeCooldownRepository()
	vCodes := &stubCodeIssuer{codes: []string{"111111", "222222", "333333"}, window: 30 * time.Minute}
	rCodes := &stubCodeIssuer{codes: []string{"444444", "555555"}, window: 15 * time.Minute}
	mailer := &recordingMailer{}

	// Minimum bcrypt cost keeps the suite fast without changing behavior.
	service := auth.NewService(
		users,
		cooldowns,
		sec.NewHasher(4),
		tokenService,
		vCodes,
		rCodes,
		mailer,
		time.Minute,
		24*time.Hour,
	)

	return &authFixture{
		service:   service,
		users:     users,
		cooldowns: cooldowns,
		verifier:  tokenService,
		vCodes:    vCodes,
		rCodes:    rCodes,
		mailer:    mailer,
	}
}

func (fixture *authFixture) register(t *testing.T, email string) *auth.User {
	t.Helper()
	user, err := fixture.service.Register(context.Background(), auth.RegisterInput{
		Username:    "reader_" + email[:3],
		Email:       email,
		Password:    "correct horse",
		DisplayName: "Reader",
	})
	require.NoError(t, err)
	return user
}

// # Registration

/*
TestService_Register ensures a new account is stored hashed, unverified,
with a pending verification code and a delivered email.
*/
func TestService_Register(t *testing.T) {
	fixture := newAuthFixture(t)

	user := fixture.register(t, "ana@example.com")

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, sec.RoleUser, user.Role)
	assert.False(t, user.IsVerified)
	assert.NotEqual(t, "correct horse", user.PasswordHash, "password must never be stored in plain text")

	stored, err := fixture.users.FindByEmail(context.Background(), "ana@example.com")
	require.NoError(t, err)
	require.NotNil(t, stored.VerificationCode)
	assert.Equal(t, "111111", *stored.VerificationCode)
	assert.Equal(t, 1, fixture.mailer.count())
}

/*
TestService_Register_Duplicate verifies the USER_EXISTS taxonomy for both
email and username collisions.
*/
func TestService_Register_Duplicate(t *testing.T) {
	fixture := newAuthFixture(t)
	fixture.register(t, "ana@example.com")

	_, err := fixture.service.Register(context.Background(), auth.RegisterInput{
		Username: "someone_else",
		Email:    "ana@example.com",
		Password: "irrelevant",
	})
	require.Error(t, err)
	assert.True(t, apperr.HasCode(err, "USER_EXISTS"))

	_, err = fixture.service.Register(context.Background(), auth.RegisterInput{
		Username: "reader_ana",
		Email:    "other@example.com",
		Password: "irrelevant",
	})
	require.Error(t, err)
	assert.True(t, apperr.HasCode(err, "USER_EXISTS"))
}

/*
TestService_Register_EmailNormalized ensures the stored address is lowercase
and that every email-keyed flow accepts any casing of it. The unique index is
on LOWER(email), so a mixed-case row would be unreachable by exact lookup.
*/
func TestService_Register_EmailNormalized(t *testing.T) {
	fixture := newAuthFixture(t)

	user, err := fixture.service.Register(context.Background(), auth.RegisterInput{
		Username:    "mixedcase",
		Email:       " Ana@Example.COM ",
		Password:    "correct horse",
		DisplayName: "Ana",
	})
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", user.Email)

	// Verification with a differently-cased address must reach the same row
	session, err := fixture.service.VerifyEmail(context.Background(), "ANA@example.com", "111111")
	require.NoError(t, err)
	require.NotNil(t, session)

	// So must login
	_, err = fixture.service.Login(context.Background(), auth.LoginInput{
		Login:    "Ana@Example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)

	// A re-registration under different casing is still USER_EXISTS
	_, err = fixture.service.Register(context.Background(), auth.RegisterInput{
		Username: "someone_else",
		Email:    "aNa@eXaMpLe.CoM",
		Password: "irrelevant",
	})
	require.Error(t, err)
	assert.True(t, apperr.HasCode(err, "USER_EXISTS"))
}

// # Email Verification

/*
TestService_VerifyEmail covers the success path: verified flag flips,
the code is cleared, and an auto-login session is returned.
*/
func TestService_VerifyEmail(t *testing.T) {
	fixture := newAuthFixture(t)
	fixture.register(t, "ana@example.com")

	session, err := fixture.service.VerifyEmail(context.Background(), "ana@example.com", "111111")
	require.NoError(t, err)
	require.NotNil(t, session)

	// Auto-login: the token must verify and carry the user's identity
	claims, err := fixture.verifier.Verify(session.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, claims.UserID)

	stored, err := fixture.users.FindByEmail(context.Background(), "ana@example.com")
	require.NoError(t, err)
	assert.True(t, stored.IsVerified)
	assert.Nil(t, stored.VerificationCode, "code must be consumed on success")

	// Registration mail plus a welcome mail on success
	assert.Equal(t, 2, fixture.mailer.count())
	assert.Equal(t, auth.MailSubjectWelcome, fixture.mailer.last().subject)
}

/*
TestService_VerifyEmail_Failures covers the USER_NOT_FOUND and INVALID_CODE
branches, including expired codes and code replay.
*/
func TestService_VerifyEmail_Failures(t *testing.T) {
	fixture := newAuthFixture(t)
	fixture.register(t, "ana@example.com")

	t.Run("unknown_email", func(t *testing.T) {
		_, err := fixture.service.VerifyEmail(context.Background(), "ghost@example.com", "111111")
		require.Error(t, err)
		assert.True(t, apperr.HasCode(err, "USER_NOT_FOUND"))
	})

	t.Run("wrong_code", func(t *testing.T) {
		_, err := fixture.service.VerifyEmail(context.Background(), "ana@example.com", "999999")
		require.Error(t, err)
		assert.True(t, apperr.HasCode(err, "INVALID_CODE"))
	})

	t.Run("expired_code", func(t *testing.T) {
		expired := time.Now().Add(-time.Minute)
		stored, err := fixture.users.FindByEmail(context.Background(), "ana@example.com")
		require.NoError(t, err)
		require.NoError(t, fixture.users.SetVerificationCode(context.Background(), stored.ID, "111111", expired))

		_, err = fixture.service.VerifyEmail(context.Background(), "ana@example.com", "111111")
		require.Error(t, err)
		assert.True(t, apperr.HasCode(err, "INVALID_CODE"))
	})

	t.Run("replay_after_success", func(t *testing.T) {
		stored, err := fixture.users.FindByEmail(context.Background(), "ana@example.com")
		require.NoError(t, err)
		require.NoError(t, fixture.users.SetVerificationCode(context.Background(), stored.ID, "111111", time.Now().Add(time.Hour)))

		_, err = fixture.service.VerifyEmail(context.Background(), "ana@example.com", "111111")
		require.NoError(t, err)

		_, err = fixture.service.VerifyEmail(context.Background(), "ana@example.com", "111111")
		require.Error(t, err)
		assert.True(t, apperr.HasCode(err, "INVALID_CODE"), "a consumed code must not verify twice")
	})
}

/*
TestService_VerifyEmail_ConcurrentAttempts races two verifications of the
same code. Consumption is guarded in storage, so exactly one attempt wins a
session and the other sees INVALID_CODE, even though both read a then-valid
code before either consumed it.
*/
func TestService_VerifyEmail_ConcurrentAttempts(t *testing.T) {
	fixture := newAuthFixture(t)
	fixture.register(t, "ana@example.com")

	results := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func() {
			_, err := fixture.service.VerifyEmail(context.Background(), "ana@example.com", "111111")
			results <- err
		}()
	}

	failures := 0
	for i := 0; i < 2; i++ {
		if err := <-results; err != nil {
			assert.True(t, apperr.HasCode(err, "INVALID_CODE"))
			failures++
		}
	}
	assert.Equal(t, 1, failures, "exactly one attempt may consume the code")

	stored, err := fixture.users.FindByEmail(context.Background(), "ana@example.com")
	require.NoError(t, err)
	assert.True(t, stored.IsVerified)
	assert.Nil(t, stored.VerificationCode)
}

/*
TestService_ResendVerification checks code regeneration, the
ALREADY_VERIFIED guard, and the send cooldown.
*/
func TestService_ResendVerification(t *testing.T) {
	fixture := newAuthFixture(t)
	fixture.register(t, "ana@example.com")
	fixture.cooldowns.release("ana@example.com") // registration consumed no slot, but keep the fixture explicit

	t.Run("regenerates_and_invalidates_old_code", func(t *testing.T) {
		require.NoError(t, fixture.service.ResendVerification(context.Background(), "ana@example.com"))

		// The original code (111111) was replaced by the next scripted one
		_, err := fixture.service.VerifyEmail(context.Background(), "ana@example.com", "111111")
		require.Error(t, err)
		assert.True(t, apperr.HasCode(err, "INVALID_CODE"))

		_, err = fixture.service.VerifyEmail(context.Background(), "ana@example.com", "222222")
		require.NoError(t, err)
	})

	t.Run("already_verified", func(t *testing.T) {
		err := fixture.service.ResendVerification(context.Background(), "ana@example.com")
		require.Error(t, err)
		assert.True(t, apperr.HasCode(err, "ALREADY_VERIFIED"))
	})

	t.Run("unknown_email", func(t *testing.T) {
		err := fixture.service.ResendVerification(context.Background(), "ghost@example.com")
		require.Error(t, err)
		assert.True(t, apperr.HasCode(err, "USER_NOT_FOUND"))
	})
}

/*
TestService_ResendVerification_Cooldown asserts that a second resend inside
the cooldown window is rejected with RATE_LIMITED.
*/
func TestService_ResendVerification_Cooldown(t *testing.T) {
	fixture := newAuthFixture(t)
	fixture.register(t, "bob@example.com")

	require.NoError(t, fixture.service.ResendVerification(context.Background(), "bob@example.com"))

	err := fixture.service.ResendVerification(context.Background(), "bob@example.com")
	require.Error(t, err)
	assert.True(t, apperr.HasCode(err, "RATE_LIMITED"))
}

/*
TestService_ResendVerification_ConcurrentResends fires two resends at once.
The stored code is last-write-wins: whichever write landed last is the only
code that verifies, and the overwritten one is dead on arrival. That race is
harmless because each code is a single-use nonce, but the invariant that at
most one code is live must hold.
*/
func TestService_ResendVerification_ConcurrentResends(t *testing.T) {
	fixture := newAuthFixture(t)
	fixture.register(t, "ana@example.com")
	fixture.cooldowns.unlimited = true

	var group sync.WaitGroup
	for i := 0; i < 2; i++ {
		group.Add(1)
		go func() {
			defer group.Done()
			assert.NoError(t, fixture.service.ResendVerification(context.Background(), "ana@example.com"))
		}()
	}
	group.Wait()

	// Both scripted codes were issued; the stored one is whichever write won
	stored, err := fixture.users.FindByEmail(context.Background(), "ana@example.com")
	require.NoError(t, err)
	require.NotNil(t, stored.VerificationCode)
	winner := *stored.VerificationCode
	require.Contains(t, []string{"222222", "333333"}, winner)

	loser := "333333"
	if winner == "333333" {
		loser = "222222"
	}

	// The overwritten code no longer verifies
	_, err = fixture.service.VerifyEmail(context.Background(), "ana@example.com", loser)
	require.Error(t, err)
	assert.True(t, apperr.HasCode(err, "INVALID_CODE"))

	// The last write is the code that verifies
	_, err = fixture.service.VerifyEmail(context.Background(), "ana@example.com", winner)
	require.NoError(t, err)
}

// # Login

/*
TestService_Login covers credential verification, the verified-email gate,
and the enumeration-resistant error shape.
*/
func TestService_Login(t *testing.T) {
	fixture := newAuthFixture(t)
	fixture.register(t, "ana@example.com")

	t.Run("unverified_account_blocked", func(t *testing.T) {
		_, err := fixture.service.Login(context.Background(), auth.LoginInput{
			Login:    "ana@example.com",
			Password: "correct horse",
		})
		require.Error(t, err)
		assert.True(t, apperr.HasCode(err, "EMAIL_NOT_VERIFIED"))
	})

	_, err := fixture.service.VerifyEmail(context.Background(), "ana@example.com", "111111")
	require.NoError(t, err)

	t.Run("success_issues_verifiable_token", func(t *testing.T) {
		session, err := fixture.service.Login(context.Background(), auth.LoginInput{
			Login:    "ana@example.com",
			Password: "correct horse",
		})
		require.NoError(t, err)
		assert.Equal(t, auth.TokenType, session.TokenType)

		claims, err := fixture.verifier.Verify(session.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, session.User.ID, claims.UserID)
		assert.Equal(t, string(sec.RoleUser), claims.Role)
	})

	t.Run("login_by_username", func(t *testing.T) {
		_, err := fixture.service.Login(context.Background(), auth.LoginInput{
			Login:    "reader_ana",
			Password: "correct horse",
		})
		require.NoError(t, err)
	})

	t.Run("enumeration_resistant_errors", func(t *testing.T) {
		_, unknownUserErr := fixture.service.Login(context.Background(), auth.LoginInput{
			Login:    "ghost@example.com",
			Password: "whatever",
		})
		_, wrongPasswordErr := fixture.service.Login(context.Background(), auth.LoginInput{
			Login:    "ana@example.com",
			Password: "wrong password",
		})

		require.Error(t, unknownUserErr)
		require.Error(t, wrongPasswordErr)

		// Both failures must be byte-identical so a caller cannot tell
		// which part of the credential pair was wrong.
		unknownAE := apperr.As(unknownUserErr)
		wrongAE := apperr.As(wrongPasswordErr)
		require.NotNil(t, unknownAE)
		require.NotNil(t, wrongAE)
		assert.Equal(t, unknownAE.Code, wrongAE.Code)
		assert.Equal(t, unknownAE.Message, wrongAE.Message)
		assert.Equal(t, "INVALID_CREDENTIALS", unknownAE.Code)
	})
}

// # Password Recovery

/*
TestService_PasswordReset exercises the full forgot-password loop including
INVALID_PIN, single-use codes, and the absence of an auto-login.
*/
func TestService_PasswordReset(t *testing.T) {
	fixture := newAuthFixture(t)
	fixture.register(t, "ana@example.com")
	_, err := fixture.service.VerifyEmail(context.Background(), "ana@example.com", "111111")
	require.NoError(t, err)
	fixture.cooldowns.release("ana@example.com")

	t.Run("unknown_email", func(t *testing.T) {
		err := fixture.service.RequestPasswordReset(context.Background(), "ghost@example.com")
		require.Error(t, err)
		assert.True(t, apperr.HasCode(err, "USER_NOT_FOUND"))
	})

	require.NoError(t, fixture.service.RequestPasswordReset(context.Background(), "ana@example.com"))

	t.Run("wrong_code", func(t *testing.T) {
		err := fixture.service.ResetPassword(context.Background(), "ana@example.com", "000000", "new password!")
		require.Error(t, err)
		assert.True(t, apperr.HasCode(err, "INVALID_PIN"))
	})

	t.Run("success_and_single_use", func(t *testing.T) {
		require.NoError(t, fixture.service.ResetPassword(context.Background(), "ana@example.com", "444444", "new password!"))

		// Old password is dead, new one works
		_, err := fixture.service.Login(context.Background(), auth.LoginInput{Login: "ana@example.com", Password: "correct horse"})
		require.Error(t, err)
		assert.True(t, apperr.HasCode(err, "INVALID_CREDENTIALS"))

		_, err = fixture.service.Login(context.Background(), auth.LoginInput{Login: "ana@example.com", Password: "new password!"})
		require.NoError(t, err)

		// The consumed code must not reset again
		err = fixture.service.ResetPassword(context.Background(), "ana@example.com", "444444", "sneaky password")
		require.Error(t, err)
		assert.True(t, apperr.HasCode(err, "INVALID_PIN"))
	})
}

/*
TestService_ChangePassword verifies the current-password gate on
authenticated password changes.
*/
func TestService_ChangePassword(t *testing.T) {
	fixture := newAuthFixture(t)
	user := fixture.register(t, "ana@example.com")
	_, err := fixture.service.VerifyEmail(context.Background(), "ana@example.com", "111111")
	require.NoError(t, err)

	err = fixture.service.ChangePassword(context.Background(), user.ID, "not the password", "new password!")
	require.Error(t, err)
	assert.True(t, apperr.HasCode(err, "INVALID_CREDENTIALS"))

	require.NoError(t, fixture.service.ChangePassword(context.Background(), user.ID, "correct horse", "new password!"))

	_, err = fixture.service.Login(context.Background(), auth.LoginInput{Login: "ana@example.com", Password: "new password!"})
	require.NoError(t, err)
}

// # End-to-End

/*
TestService_RegistrationJourney walks the happy path a new reader takes:
register, verify with the emailed code, then log in.
*/
func TestService_RegistrationJourney(t *testing.T) {
	fixture := newAuthFixture(t)

	user, err := fixture.service.Register(context.Background(), auth.RegisterInput{
		Username:    "newreader",
		Email:       "new@example.com",
		Password:    "super secret 42",
		DisplayName: "New Reader",
	})
	require.NoError(t, err)
	assert.False(t, user.IsVerified)

	// Login before verification must fail
	_, err = fixture.service.Login(context.Background(), auth.LoginInput{Login: "new@example.com", Password: "super secret 42"})
	require.Error(t, err)
	assert.True(t, apperr.HasCode(err, "EMAIL_NOT_VERIFIED"))

	// Verify with the code that was "emailed"
	session, err := fixture.service.VerifyEmail(context.Background(), "new@example.com", "111111")
	require.NoError(t, err)
	assert.NotEmpty(t, session.AccessToken)

	// And a normal login now works
	_, err = fixture.service.Login(context.Background(), auth.LoginInput{Login: "new@example.com", Password: "super secret 42"})
	require.NoError(t, err)
}
