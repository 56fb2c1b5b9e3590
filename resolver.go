package datefmt

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultTimeSuffix is appended to the date pattern to build the date-time
// pattern understood by the calendar UI (24-hour, zero padded).
const DefaultTimeSuffix = " H:i:s"

// Pattern tokens understood by the calendar UI.
const (
	TokenDay   = 'd'
	TokenMonth = 'm'
	TokenYear  = 'Y'
)

var (
	patternReferenceDate = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)
	// 2017-01-02 fell on a Monday
	weekdayAnchor    = time.Date(2017, time.January, 2, 0, 0, 0, 0, time.UTC)
	monthAnchorYear  = 2017
	numericDateStyle = FormatOptions{Year: StyleNumeric, Month: StyleTwoDigit, Day: StyleTwoDigit}
)

// Resolver derives calendar UI localization from a locale tag. It is
// immutable after construction and safe for concurrent use.
type Resolver struct {
	formatter     PartsFormatter
	defaultLocale string
	timeSuffix    string
	overrides     map[string]LocaleOverride
	fallbacks     FallbackResolver
	logger        zerolog.Logger
}

type ResolverOption func(*Resolver)

func WithResolverFormatter(formatter PartsFormatter) ResolverOption {
	return func(r *Resolver) {
		if formatter != nil {
			r.formatter = formatter
		}
	}
}

func WithResolverDefaultLocale(locale string) ResolverOption {
	return func(r *Resolver) {
		if normalized := normalizeLocale(locale); normalized != "" {
			r.defaultLocale = normalized
		}
	}
}

func WithResolverTimeSuffix(suffix string) ResolverOption {
	return func(r *Resolver) {
		r.timeSuffix = suffix
	}
}

// WithResolverOverrides installs per-locale overrides, keyed by locale tag.
func WithResolverOverrides(overrides map[string]LocaleOverride) ResolverOption {
	return func(r *Resolver) {
		if len(overrides) == 0 {
			return
		}
		if r.overrides == nil {
			r.overrides = make(map[string]LocaleOverride, len(overrides))
		}
		for locale, override := range overrides {
			if normalized := normalizeLocale(locale); normalized != "" {
				r.overrides[normalized] = override.clone()
			}
		}
	}
}

func WithResolverFallbacks(resolver FallbackResolver) ResolverOption {
	return func(r *Resolver) {
		r.fallbacks = resolver
	}
}

func WithResolverLogger(logger zerolog.Logger) ResolverOption {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// NewResolver builds a Resolver backed by DefaultFormatter unless another
// formatter is supplied.
func NewResolver(opts ...ResolverOption) *Resolver {
	r := &Resolver{
		defaultLocale: DefaultLocale,
		timeSuffix:    DefaultTimeSuffix,
		logger:        zerolog.Nop(),
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.formatter == nil {
		r.formatter = DefaultFormatter()
	}
	return r
}

// DefaultLocale returns the locale used when callers pass an empty tag.
func (r *Resolver) DefaultLocale() string {
	if r == nil {
		return DefaultLocale
	}
	return r.defaultLocale
}

// ResolvePattern maps the locale's numeric date rendering onto d, m and Y,
// keeping separators and order exactly as the formatter emitted them.
func (r *Resolver) ResolvePattern(locale string) string {
	if r == nil {
		return ""
	}
	locale = r.locale(locale)

	if override, ok := r.lookupOverride(locale, func(o LocaleOverride) bool { return o.Pattern != "" }); ok {
		return override.Pattern
	}

	return patternFromParts(r.formatter.FormatParts(locale, patternReferenceDate, numericDateStyle))
}

// ResolveDateTimePattern returns ResolvePattern plus the time suffix.
func (r *Resolver) ResolveDateTimePattern(locale string) string {
	if r == nil {
		return ""
	}
	return r.ResolvePattern(locale) + r.timeSuffix
}

// ResolveNames returns 12 month names January first and 7 weekday names
// Monday first, whatever order the locale starts its week in.
func (r *Resolver) ResolveNames(locale string) LocalizedNames {
	if r == nil {
		return LocalizedNames{}
	}
	locale = r.locale(locale)

	var names LocalizedNames

	if override, ok := r.lookupOverride(locale, func(o LocaleOverride) bool { return len(o.Months) > 0 }); ok {
		names.Months = append([]string(nil), override.Months...)
	} else {
		names.Months = make([]string, 0, 12)
		for month := time.January; month <= time.December; month++ {
			date := time.Date(monthAnchorYear, month, 1, 0, 0, 0, 0, time.UTC)
			parts := r.formatter.FormatParts(locale, date, FormatOptions{Month: StyleLong})
			names.Months = append(names.Months, partText(parts, PartMonth))
		}
	}

	if override, ok := r.lookupOverride(locale, func(o LocaleOverride) bool { return len(o.Weekdays) > 0 }); ok {
		names.Weekdays = append([]string(nil), override.Weekdays...)
	} else {
		names.Weekdays = make([]string, 0, 7)
		for i := 0; i < 7; i++ {
			date := weekdayAnchor.AddDate(0, 0, i)
			parts := r.formatter.FormatParts(locale, date, FormatOptions{Weekday: StyleLong})
			names.Weekdays = append(names.Weekdays, partText(parts, PartWeekday))
		}
	}

	return names
}

// Resolve computes the full localization bundle for the calendar UI.
func (r *Resolver) Resolve(locale string) Localization {
	if r == nil {
		return Localization{}
	}
	locale = r.locale(locale)
	pattern := r.ResolvePattern(locale)

	result := Localization{
		Locale:          locale,
		DatePattern:     pattern,
		DateTimePattern: pattern + r.timeSuffix,
		Names:           r.ResolveNames(locale),
	}

	r.logger.Debug().
		Str("locale", locale).
		Str("pattern", result.DatePattern).
		Msg("datefmt: resolved localization")

	return result
}

func (r *Resolver) locale(locale string) string {
	if normalized := normalizeLocale(locale); normalized != "" {
		return normalized
	}
	return r.defaultLocale
}

func (r *Resolver) lookupOverride(locale string, has func(LocaleOverride) bool) (LocaleOverride, bool) {
	if len(r.overrides) == 0 {
		return LocaleOverride{}, false
	}
	for _, candidate := range candidateLocales(locale, r.fallbacks) {
		if override, ok := r.overrides[candidate]; ok && has(override) {
			return override, true
		}
	}
	return LocaleOverride{}, false
}

func patternFromParts(parts []DatePart) string {
	var b strings.Builder
	for _, part := range parts {
		switch part.Type {
		case PartYear:
			b.WriteByte(TokenYear)
		case PartMonth:
			b.WriteByte(TokenMonth)
		case PartDay:
			b.WriteByte(TokenDay)
		default:
			b.WriteString(part.Value)
		}
	}
	return b.String()
}

// partText joins the values of parts of the wanted type, or of every part
// when the formatter emitted none of that type.
func partText(parts []DatePart, want PartType) string {
	var b strings.Builder
	for _, part := range parts {
		if part.Type == want {
			b.WriteString(part.Value)
		}
	}
	if b.Len() > 0 {
		return b.String()
	}
	for _, part := range parts {
		b.WriteString(part.Value)
	}
	return b.String()
}

// ValidatePattern checks that pattern carries exactly one d, m and Y token.
func ValidatePattern(pattern string) error {
	counts := map[rune]int{TokenDay: 0, TokenMonth: 0, TokenYear: 0}
	for _, r := range pattern {
		if _, ok := counts[r]; ok {
			counts[r]++
		}
	}
	for _, token := range []rune{TokenDay, TokenMonth, TokenYear} {
		if counts[token] != 1 {
			return fmt.Errorf("%w: %q has %d %q tokens", ErrInvalidPattern, pattern, counts[token], token)
		}
	}
	return nil
}
