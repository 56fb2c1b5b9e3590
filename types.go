package datefmt

import (
	"time"
)

// PartType tags a fragment emitted by a PartsFormatter
type PartType string

const (
	PartYear    PartType = "year"
	PartMonth   PartType = "month"
	PartDay     PartType = "day"
	PartWeekday PartType = "weekday"
	PartLiteral PartType = "literal"
)

// FieldStyle selects how a single date field is rendered.
type FieldStyle string

const (
	StyleNumeric  FieldStyle = "numeric"
	StyleTwoDigit FieldStyle = "2-digit"
	StyleLong     FieldStyle = "long"
)

// DatePart is one rendered fragment of a formatted date.
type DatePart struct {
	Type  PartType
	Value string
}

// FormatOptions lists the fields to render; an empty style omits the field.
type FormatOptions struct {
	Year    FieldStyle
	Month   FieldStyle
	Day     FieldStyle
	Weekday FieldStyle
}

func (o FormatOptions) numericDate() bool {
	return o.Year != "" || o.Day != "" || (o.Month != "" && o.Month != StyleLong)
}

// PartsFormatter formats a date into typed parts for a locale.
// Implementations fall back to a default locale when the tag is unknown.
type PartsFormatter interface {
	FormatParts(locale string, t time.Time, opts FormatOptions) []DatePart
}

// LocaleSupporter is implemented by formatters that can report whether they
// carry data for a locale without falling back.
type LocaleSupporter interface {
	Supports(locale string) bool
}

// ExactLocaleSupporter reports data for the locale itself, without walking
// parents or filling in a likely region. Chains prefer an exact match over an
// earlier formatter's parent match.
type ExactLocaleSupporter interface {
	SupportsExact(locale string) bool
}

// OffsetSource reports the minutes between local time and UTC for an instant,
// positive when local time is behind UTC.
type OffsetSource interface {
	OffsetMinutes(t time.Time) int
}

// DateParser interprets a free-form date-time string in a location.
type DateParser interface {
	Parse(value string, loc *time.Location) (time.Time, error)
}

// LocalizedNames holds month names January first and weekday names Monday first.
type LocalizedNames struct {
	Months   []string `json:"months" yaml:"months"`
	Weekdays []string `json:"weekdays" yaml:"weekdays"`
}

// Clone returns a deep copy
func (n LocalizedNames) Clone() LocalizedNames {
	return LocalizedNames{
		Months:   append([]string(nil), n.Months...),
		Weekdays: append([]string(nil), n.Weekdays...),
	}
}

// Localization is the configuration handed to the calendar UI.
type Localization struct {
	Locale          string         `json:"locale" yaml:"locale"`
	DatePattern     string         `json:"date_pattern" yaml:"date_pattern"`
	DateTimePattern string         `json:"datetime_pattern" yaml:"datetime_pattern"`
	Names           LocalizedNames `json:"names" yaml:"names"`
}
