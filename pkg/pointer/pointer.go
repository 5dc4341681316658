// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.app

// Package pointer provides small helpers for working with optional values.
//
// Pointer fields are the platform convention for partial-update payloads:
// nil means "leave unchanged", a non-nil pointer carries the new value.
package pointer

// To returns a pointer to the given value.
func To[T any](value T) *T {
	return &value
}

// ValueOr dereferences ptr, or returns fallback when ptr is nil.
func ValueOr[T any](ptr *T, fallback T) T {
	if ptr == nil {
		return fallback
	}
	return *ptr
}
