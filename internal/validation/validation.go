package validation

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"
	"unicode/utf8"
)

// MaxNameLength is the longest accepted domain, niche, subniche or keyword part.
const MaxNameLength = 255

// MaxFullKeywordLength bounds the composed keyword text.
const MaxFullKeywordLength = 768

// MaxCounter is the largest link counter the INTEGER columns hold.
const MaxCounter = math.MaxInt32

// ErrValidation matches every *Error returned by this package.
var ErrValidation = errors.New("validation failed")

// Error describes an invalid field or payload.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// Is lets errors.Is(err, ErrValidation) match.
func (e *Error) Is(target error) bool {
	return target == ErrValidation
}

// Fieldf builds a validation error for a single field.
func Fieldf(field, format string, args ...any) error {
	return &Error{Field: field, Message: fmt.Sprintf(format, args...)}
}

// Errorf builds a validation error that is not tied to one field.
func Errorf(format string, args ...any) error {
	return &Error{Message: fmt.Sprintf(format, args...)}
}

var whitespace = regexp.MustCompile(`\s+`)

// NormalizeName trims a name and collapses inner runs of whitespace.
func NormalizeName(name string) string {
	return whitespace.ReplaceAllString(strings.TrimSpace(name), " ")
}

// ValidateName checks a normalized name is present and not too long.
func ValidateName(field, name string) error {
	if name == "" {
		return Fieldf(field, "is required")
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return Fieldf(field, "must be at most %d characters", MaxNameLength)
	}
	return nil
}

// ValidateOptionalName is ValidateName for fields that may be omitted.
func ValidateOptionalName(field string, name *string) error {
	if name == nil {
		return nil
	}
	*name = NormalizeName(*name)
	if *name == "" {
		return nil
	}
	return ValidateName(field, *name)
}

// ComposeKeyword joins the non-empty keyword parts with single spaces.
func ComposeKeyword(prefix *string, main string, suffix *string) string {
	parts := make([]string, 0, 3)
	if prefix != nil && *prefix != "" {
		parts = append(parts, *prefix)
	}
	if main != "" {
		parts = append(parts, main)
	}
	if suffix != nil && *suffix != "" {
		parts = append(parts, *suffix)
	}
	return NormalizeName(strings.Join(parts, " "))
}

// ValidateFullKeyword checks the keyword text itself.
func ValidateFullKeyword(text string) error {
	if text == "" {
		return Fieldf("full_keyword", "is required")
	}
	if utf8.RuneCountInString(text) > MaxFullKeywordLength {
		return Fieldf("full_keyword", "must be at most %d characters", MaxFullKeywordLength)
	}
	return nil
}

// ValidateOneOf checks value is one of allowed.
func ValidateOneOf(field, value string, allowed ...string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return Fieldf(field, "must be one of %s", strings.Join(allowed, ", "))
}

// ValidateCounter checks a link counter is within 0..MaxCounter.
func ValidateCounter(field string, n int) error {
	if n < 0 {
		return Fieldf(field, "must not be negative")
	}
	if n > MaxCounter {
		return Fieldf(field, "must be at most %d", MaxCounter)
	}
	return nil
}
