// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.app

package book

import (
	"github.com/inkwell-app/inkwell/internal/platform/sec"
)

// # Access Levels

// AccessLevel classifies how much of a book's content a reader may see.
type AccessLevel string

const (
	// LevelFull grants the entire book: every chapter and the whole text.
	LevelFull AccessLevel = "full"

	// LevelPartial grants a reading sample: the first chapters plus the
	// opening of the full text.
	LevelPartial AccessLevel = "partial"

	// LevelPreview grants the storefront teaser: the first chapter and a
	// short excerpt. This is the default for any role without an explicit
	// permission entry, so an unknown role can never over-grant.
	LevelPreview AccessLevel = "preview"
)

// accessLimits bounds what a level may read. A negative value means unlimited.
type accessLimits struct {
	maxChapters  int
	maxTextRunes int // applied to the full text, not to chapter bodies
}

var levelLimits = map[AccessLevel]accessLimits{
	LevelFull:    {maxChapters: -1, maxTextRunes: -1},
	LevelPartial: {maxChapters: 3, maxTextRunes: 1000},
	LevelPreview: {maxChapters: 1, maxTextRunes: 500},
}

// # Level Resolution

// LevelForRole maps an account role to a default content access level. It is
// the fallback for titles that declare no permission table of their own.
//
// Unmapped roles deliberately resolve to the most restrictive level.
func LevelForRole(role string) AccessLevel {
	switch sec.UserRole(role) {
	case sec.RoleAdmin:
		return LevelFull
	case sec.RoleUser:
		return LevelPartial
	default:
		return LevelPreview
	}
}

// ResolveLevel decides the access level a role gets on a specific title.
//
// The title's own permission table is authoritative: the first entry matching
// the role wins, and a role without an entry lands on preview no matter what
// it would get elsewhere. Only a title with no table at all falls back to the
// account-role tiers from [LevelForRole].
func ResolveLevel(role string, permissions []AccessPermission) AccessLevel {
	if len(permissions) == 0 {
		return LevelForRole(role)
	}

	for _, permission := range permissions {
		if permission.Role == role {
			return permission.Level
		}
	}

	return LevelPreview
}

// # Content Resolution

// ContentView is the reader-facing slice of a book's content after access
// rules have been applied.
type ContentView struct {
	AccessLevel   AccessLevel `json:"access_level"`
	Chapters      []Chapter   `json:"chapters"`
	FullText      string      `json:"full_text"`
	TotalChapters int         `json:"total_chapters"`
	Truncated     bool        `json:"truncated"`
}

// ResolveContent applies the access level's limits to the book content.
//
// Chapters are limited by count and returned with their bodies intact; the
// character budget applies to the full text only. Slicing is clamped: a book
// shorter than either budget returns whole. The text limit counts runes, so
// multibyte text is never cut mid-character.
func ResolveContent(content BookContent, level AccessLevel) ContentView {
	limits, ok := levelLimits[level]
	if !ok {
		limits = levelLimits[LevelPreview]
		level = LevelPreview
	}

	view := ContentView{
		AccessLevel:   level,
		TotalChapters: len(content.Chapters),
	}

	chapterCount := len(content.Chapters)
	if limits.maxChapters >= 0 && chapterCount > limits.maxChapters {
		chapterCount = limits.maxChapters
		view.Truncated = true
	}
	view.Chapters = append([]Chapter{}, content.Chapters[:chapterCount]...)

	text, cut := truncateRunes(content.FullText, limits.maxTextRunes)
	if cut {
		view.Truncated = true
	}
	view.FullText = text

	return view
}

// truncateRunes cuts s to at most max runes. A negative max means no limit.
func truncateRunes(s string, max int) (string, bool) {
	if max < 0 {
		return s, false
	}

	runes := []rune(s)
	if len(runes) <= max {
		return s, false
	}

	return string(runes[:max]), true
}
