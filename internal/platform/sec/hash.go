// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.app

package sec

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hasher hashes and verifies passwords using the bcrypt algorithm.
//
// The work factor is injected at startup so deployments can balance
// brute-force resistance against worst-case request latency.
type Hasher struct {
	cost int
}

// NewHasher constructs a [Hasher] with the given bcrypt cost.
// Costs outside bcrypt's supported range fall back to the library default (10).
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash hashes a plain-text password. The plaintext is never logged or stored.
func (h *Hasher) Hash(plainTextPassword string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plainTextPassword), h.cost)
	if err != nil {
		return "", fmt.Errorf("sec: failed to hash password: %w", err)
	}
	return string(hashedBytes), nil
}

// Compare compares a plain-text password with its hashed version.
// A malformed digest yields false rather than an error.
func (h *Hasher) Compare(plainTextPassword, existingHash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(existingHash), []byte(plainTextPassword))
	return err == nil
}
