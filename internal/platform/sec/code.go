// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.app

package sec

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// codeSpan covers the 6-digit range [100000, 999999].
const (
	codeMin  = 100000
	codeSpan = 900000
)

// CodeGenerator produces short-lived numeric one-time codes for email
// verification and password reset flows.
//
// Codes are uniform over [100000, 999999] and drawn from crypto/rand, so
// they cannot be derived from user-visible data. They are nonce-like, not
// session-token grade: the expiry window and single-use consumption carry
// the security weight.
type CodeGenerator struct {
	window time.Duration
}

// NewCodeGenerator constructs a generator whose codes expire after window.
// Registration and password-reset flows use independently configured windows.
func NewCodeGenerator(window time.Duration) *CodeGenerator {
	return &CodeGenerator{window: window}
}

// Generate returns a fresh 6-digit code and its expiry timestamp.
func (generator *CodeGenerator) Generate() (string, time.Time, error) {
	offset, err := rand.Int(rand.Reader, big.NewInt(codeSpan))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sec: failed to generate code: %w", err)
	}

	code := fmt.Sprintf("%06d", codeMin+offset.Int64())
	return code, time.Now().Add(generator.window), nil
}

// Window exposes the configured code lifetime.
func (generator *CodeGenerator) Window() time.Duration {
	return generator.window
}
