package datefield

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ErrRequired is returned by TextRules when a required value is blank.
var ErrRequired = errors.New("datefield: value is required")

// ErrTooLong is returned by TextRules when a value exceeds MaxLength.
var ErrTooLong = errors.New("datefield: value is too long")

// TextRules is a minimal generic text validator.
type TextRules struct {
	Required  bool
	MaxLength int
}

var _ Validator = TextRules{}

func (r TextRules) ValidateText(value string) error {
	if r.Required && strings.TrimSpace(value) == "" {
		return ErrRequired
	}
	if r.MaxLength > 0 {
		if n := utf8.RuneCountInString(value); n > r.MaxLength {
			return fmt.Errorf("%w: %d > %d", ErrTooLong, n, r.MaxLength)
		}
	}
	return nil
}
