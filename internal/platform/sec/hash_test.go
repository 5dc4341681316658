// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.app

package sec_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-app/inkwell/internal/platform/sec"
)

/*
TestHasher_RoundTrip verifies that a hashed password verifies against its
plaintext and nothing else.
*/
func TestHasher_RoundTrip(t *testing.T) {
	// Minimum cost keeps the test fast; the algorithm is identical.
	hasher := sec.NewHasher(4)

	digest, err := hasher.Hash("correct horse battery staple")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(digest, "$2a$"))

	assert.True(t, hasher.Compare("correct horse battery staple", digest))
	assert.False(t, hasher.Compare("correct horse battery stapl", digest))
	assert.False(t, hasher.Compare("", digest))
}

/*
TestHasher_UniqueSalt confirms that two hashes of the same password differ,
so a leaked digest reveals nothing about other accounts.
*/
func TestHasher_UniqueSalt(t *testing.T) {
	hasher := sec.NewHasher(4)

	first, err := hasher.Hash("same-password")
	require.NoError(t, err)
	second, err := hasher.Hash("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, hasher.Compare("same-password", first))
	assert.True(t, hasher.Compare("same-password", second))
}

/*
TestHasher_MalformedDigest checks that garbage in storage reads as a
mismatch, not a panic or an error path.
*/
func TestHasher_MalformedDigest(t *testing.T) {
	hasher := sec.NewHasher(4)

	assert.False(t, hasher.Compare("anything", "not-a-bcrypt-digest"))
	assert.False(t, hasher.Compare("anything", ""))
}

/*
TestNewHasher_CostFallback verifies that out-of-range costs fall back to the
bcrypt default instead of failing every Hash call.
*/
func TestNewHasher_CostFallback(t *testing.T) {
	for _, cost := range []int{-1, 0, 99} {
		hasher := sec.NewHasher(cost)

		digest, err := hasher.Hash("password123")
		require.NoError(t, err)
		assert.True(t, hasher.Compare("password123", digest))
	}
}
