package utils

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// ErrEmptySlug is returned when the display text normalizes to nothing.
	ErrEmptySlug = errors.New("display text normalizes to an empty slug")

	// ErrSlugSpaceExhausted is returned when the collision probe exceeds
	// its upper bound. Existing data must be corrupted for this to happen.
	ErrSlugSpaceExhausted = errors.New("could not find a free slug within the attempt limit")
)

// maxSlugAttempts bounds the collision probe so corrupted data cannot make
// it loop forever.
const maxSlugAttempts = 1000

var (
	nonSlugChars   = regexp.MustCompile(`[^a-z0-9]+`)
	stripDiacritic = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	// Letters that carry no combining mark and so survive NFD untouched.
	letterReplacer = strings.NewReplacer("đ", "d", "Đ", "D", "ł", "l", "Ł", "L", "ø", "o", "Ø", "O")
)

// Slugify normalizes a display string into a URL-safe slug: diacritics
// stripped, lower-cased, runs of anything outside [a-z0-9] collapsed to a
// single hyphen, leading/trailing hyphens trimmed. The result may be
// empty when the input carries no transliterable characters.
func Slugify(input string) string {
	ascii, _, err := transform.String(stripDiacritic, letterReplacer.Replace(input))
	if err != nil {
		ascii = input
	}

	lower := strings.ToLower(ascii)
	hyphenated := nonSlugChars.ReplaceAllString(lower, "-")
	return strings.Trim(hyphenated, "-")
}

// SlugExistsFunc reports whether a slug is already taken in a collection,
// ignoring the record with excludeID (0 means exclude nothing).
type SlugExistsFunc func(ctx context.Context, slug string, excludeID int64) (bool, error)

// UniqueSlug derives a slug from displayText that is unique within the
// collection represented by exists. Collisions are resolved by probing
// base-1, base-2, ... deterministically. When updating an existing record,
// pass its id as excludeID so it does not collide with itself.
//
// The check-then-insert is not atomic against concurrent creators; the
// storage layer's unique constraint is the authoritative backstop and
// surfaces as a conflict.
func UniqueSlug(ctx context.Context, displayText string, excludeID int64, exists SlugExistsFunc) (string, error) {
	base := Slugify(displayText)
	if base == "" {
		return "", ErrEmptySlug
	}

	candidate := base
	for suffix := 1; suffix <= maxSlugAttempts; suffix++ {
		taken, err := exists(ctx, candidate, excludeID)
		if err != nil {
			return "", fmt.Errorf("check slug %q: %w", candidate, err)
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, suffix)
	}

	return "", ErrSlugSpaceExhausted
}
