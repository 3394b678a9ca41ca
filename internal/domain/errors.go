package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrRecordNotFound is returned when an edit or delete targets an id the
	// ledger does not hold. Callers are expected to recover from it.
	ErrRecordNotFound = errors.New("record not found")

	// ErrInvalidInput marks arguments rejected before any state is touched.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnknownCategory is returned when a category is missing from the catalog.
	ErrUnknownCategory = fmt.Errorf("unknown category: %w", ErrInvalidInput)
)

// MaxSessionMinutes is the longest single session: one day.
const MaxSessionMinutes = 24 * 60

// ValidateMinutes rejects session lengths outside 1..MaxSessionMinutes.
func ValidateMinutes(minutes int) error {
	if minutes <= 0 || minutes > MaxSessionMinutes {
		return fmt.Errorf("minutes must be between 1 and %d, got %d: %w", MaxSessionMinutes, minutes, ErrInvalidInput)
	}
	return nil
}

// ValidateEarnedPoints rejects points no valid session could earn.
func ValidateEarnedPoints(p Points) error {
	if p < 0 || p > MaxSessionPoints {
		return fmt.Errorf("earned points must be between 0 and %s, got %s: %w", MaxSessionPoints, p, ErrInvalidInput)
	}
	return nil
}

// ValidateDifficulty rejects zero, negative and non-finite multipliers.
func ValidateDifficulty(difficulty float64) error {
	if !(difficulty > 0) || difficulty > maxDifficulty {
		return fmt.Errorf("difficulty must be in (0, %g], got %g: %w", float64(maxDifficulty), difficulty, ErrInvalidInput)
	}
	return nil
}

// ValidateCategory rejects blank category names.
func ValidateCategory(category string) error {
	if strings.TrimSpace(category) == "" {
		return fmt.Errorf("category is required: %w", ErrInvalidInput)
	}
	return nil
}
