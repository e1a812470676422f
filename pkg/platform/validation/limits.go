package validation

import (
	"fmt"

	dErrors "eyecandy/pkg/domain-errors"
)

// HTTP body limits
const (
	// MaxBodySize is the maximum allowed request body size (64 KB).
	MaxBodySize = 64 * 1024
)

// Per-performer collection limits
const (
	// MaxLocationRules is the maximum number of location rules a performer may author.
	MaxLocationRules = 500

	// MaxBlockedUsers is the maximum number of block entries per performer.
	MaxBlockedUsers = 10000
)

// String element length limits
const (
	// MaxLocationValueLength bounds a location matcher value (country code, city name, postal code).
	MaxLocationValueLength = 100

	// MaxBlockNotesLength bounds the performer-private notes on a block entry.
	MaxBlockNotesLength = 1000

	// MaxExpiryMessageLength bounds the viewer-facing teaser expiry message.
	MaxExpiryMessageLength = 280
)

// Teaser limits
const (
	// MaxTeaserDurationSeconds caps a teaser preview at one hour.
	MaxTeaserDurationSeconds = 3600
)

// CheckSliceCount validates that a collection does not exceed the maximum count.
func CheckSliceCount(fieldName string, count, max int) error {
	if count > max {
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("too many %s: max %d allowed", fieldName, max))
	}
	return nil
}

// CheckStringLength validates that a string does not exceed the maximum length.
func CheckStringLength(fieldName, value string, max int) error {
	if len(value) > max {
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("%s exceeds max length of %d", fieldName, max))
	}
	return nil
}

// CheckRange validates that n lies within [min, max].
func CheckRange(fieldName string, n, min, max int) error {
	if n < min || n > max {
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("%s must be between %d and %d", fieldName, min, max))
	}
	return nil
}
