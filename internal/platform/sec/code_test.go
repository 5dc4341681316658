// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.app

package sec_test

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-app/inkwell/internal/platform/sec"
)

/*
TestCodeGenerator_Range draws a batch of codes and checks every one is a
6-digit number in [100000, 999999]. The lower bound matters: a code can never
start with a zero, so clients may treat it as an integer safely.
*/
func TestCodeGenerator_Range(t *testing.T) {
	generator := sec.NewCodeGenerator(30 * time.Minute)

	for i := 0; i < 500; i++ {
		code, _, err := generator.Generate()
		require.NoError(t, err)
		require.Len(t, code, 6)

		value, err := strconv.Atoi(code)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, value, 100000)
		assert.LessOrEqual(t, value, 999999)
	}
}

/*
TestCodeGenerator_Expiry verifies the expiry timestamp respects the
configured window.
*/
func TestCodeGenerator_Expiry(t *testing.T) {
	generator := sec.NewCodeGenerator(15 * time.Minute)

	_, expiresAt, err := generator.Generate()
	require.NoError(t, err)

	assert.WithinDuration(t, time.Now().Add(15*time.Minute), expiresAt, 5*time.Second)
	assert.Equal(t, 15*time.Minute, generator.Window())
}

/*
TestCodeGenerator_Varies is a smoke check that consecutive codes are not
constant. With 900k possible values, 20 identical draws in a row would mean
the generator is broken, not unlucky.
*/
func TestCodeGenerator_Varies(t *testing.T) {
	generator := sec.NewCodeGenerator(time.Minute)

	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		code, _, err := generator.Generate()
		require.NoError(t, err)
		seen[code] = true
	}

	assert.Greater(t, len(seen), 1)
}
