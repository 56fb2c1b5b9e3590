package datefmt

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
)

// CLDRFormatter renders dates from the generated CLDR bundles. Unknown
// locales resolve through the parent chain first and then through a
// language matcher over the bundled tags, ending at DefaultLocale.
type CLDRFormatter struct {
	bundles  map[string]cldrDateBundle
	locales  []string
	matcher  language.Matcher
	fallback string
}

var (
	_ PartsFormatter       = &CLDRFormatter{}
	_ LocaleSupporter      = &CLDRFormatter{}
	_ ExactLocaleSupporter = &CLDRFormatter{}
)

// NewCLDRFormatter builds a formatter over every generated bundle.
func NewCLDRFormatter() *CLDRFormatter {
	return newCLDRFormatter(cldrBundles, DefaultLocale)
}

func newCLDRFormatter(bundles map[string]cldrDateBundle, fallback string) *CLDRFormatter {
	locales := make([]string, 0, len(bundles))
	if _, ok := bundles[fallback]; ok {
		// the matcher answers with the first supported tag when nothing matches
		locales = append(locales, fallback)
	}
	for _, locale := range generatedCLDRLocales {
		if locale == fallback {
			continue
		}
		if _, ok := bundles[locale]; ok {
			locales = append(locales, locale)
		}
	}
	for locale := range bundles {
		if !containsLocale(locales, locale) {
			locales = append(locales, locale)
		}
	}

	tags := make([]language.Tag, 0, len(locales))
	for _, locale := range locales {
		tags = append(tags, language.Make(locale))
	}

	return &CLDRFormatter{
		bundles:  bundles,
		locales:  locales,
		matcher:  language.NewMatcher(tags),
		fallback: fallback,
	}
}

// Supports reports whether the locale or one of its parents has a bundle.
func (f *CLDRFormatter) Supports(locale string) bool {
	if f == nil {
		return false
	}
	_, ok := f.lookup(locale)
	return ok
}

// SupportsExact reports whether a bundle exists for the locale itself.
func (f *CLDRFormatter) SupportsExact(locale string) bool {
	if f == nil {
		return false
	}
	_, ok := f.bundles[normalizeLocale(locale)]
	return ok
}

// Locale returns the bundle locale that serves the requested locale.
func (f *CLDRFormatter) Locale(locale string) string {
	if f == nil {
		return ""
	}
	resolved, _ := f.bundleFor(locale)
	return resolved
}

func (f *CLDRFormatter) FormatParts(locale string, t time.Time, opts FormatOptions) []DatePart {
	if f == nil {
		return nil
	}
	_, bundle := f.bundleFor(locale)

	if !opts.numericDate() {
		return namedParts(bundle.Months, bundle.Weekdays, t, opts)
	}

	var parts []DatePart
	if opts.Weekday != "" {
		parts = append(parts,
			DatePart{Type: PartWeekday, Value: weekdayName(bundle.Weekdays, t)},
			DatePart{Type: PartLiteral, Value: ", "},
		)
	}

	for _, token := range tokenizeCLDRPattern(bundle.DatePattern) {
		if token.field == 0 {
			parts = appendLiteral(parts, token.literal)
			continue
		}

		switch token.field {
		case 'y', 'Y', 'u':
			style := opts.Year
			if style == "" && token.width == 2 {
				style = StyleTwoDigit
			}
			parts = append(parts, DatePart{Type: PartYear, Value: renderNumber(t.Year(), style)})
		case 'M', 'L':
			style := opts.Month
			if style == "" {
				style = styleForWidth(token.width)
			}
			value := renderNumber(int(t.Month()), style)
			if style == StyleLong {
				value = monthName(bundle.Months, t)
			}
			parts = append(parts, DatePart{Type: PartMonth, Value: value})
		case 'd':
			style := opts.Day
			if style == "" {
				style = styleForWidth(token.width)
			}
			parts = append(parts, DatePart{Type: PartDay, Value: renderNumber(t.Day(), style)})
		case 'E', 'e', 'c':
			parts = append(parts, DatePart{Type: PartWeekday, Value: weekdayName(bundle.Weekdays, t)})
		default:
			parts = appendLiteral(parts, strings.Repeat(string(token.field), token.width))
		}
	}

	return parts
}

func (f *CLDRFormatter) lookup(locale string) (string, bool) {
	locale = normalizeLocale(locale)
	if locale == "" {
		return "", false
	}
	if _, ok := f.bundles[locale]; ok {
		return locale, true
	}
	for _, parent := range localeParentChain(locale) {
		if _, ok := f.bundles[parent]; ok {
			return parent, true
		}
	}
	return "", false
}

func (f *CLDRFormatter) bundleFor(locale string) (string, cldrDateBundle) {
	if resolved, ok := f.lookup(locale); ok {
		return resolved, f.bundles[resolved]
	}

	if normalized := normalizeLocale(locale); normalized != "" && len(f.locales) > 0 {
		_, idx, confidence := f.matcher.Match(language.Make(normalized))
		if confidence != language.No && idx >= 0 && idx < len(f.locales) {
			resolved := f.locales[idx]
			return resolved, f.bundles[resolved]
		}
	}

	if bundle, ok := f.bundles[f.fallback]; ok {
		return f.fallback, bundle
	}
	if len(f.locales) > 0 {
		return f.locales[0], f.bundles[f.locales[0]]
	}
	return "", cldrDateBundle{}
}

type patternToken struct {
	field   byte
	width   int
	literal string
}

// tokenizeCLDRPattern splits an LDML date pattern into field runs and
// literals. Quoted text is literal and '' is an escaped quote.
func tokenizeCLDRPattern(pattern string) []patternToken {
	var tokens []patternToken
	var literal strings.Builder

	flush := func() {
		if literal.Len() == 0 {
			return
		}
		tokens = append(tokens, patternToken{literal: literal.String()})
		literal.Reset()
	}

	for i := 0; i < len(pattern); {
		c := pattern[i]
		switch {
		case c == '\'':
			if i+1 < len(pattern) && pattern[i+1] == '\'' {
				literal.WriteByte('\'')
				i += 2
				continue
			}
			i++
			for i < len(pattern) {
				if pattern[i] == '\'' {
					if i+1 < len(pattern) && pattern[i+1] == '\'' {
						literal.WriteByte('\'')
						i += 2
						continue
					}
					i++
					break
				}
				literal.WriteByte(pattern[i])
				i++
			}
		case isASCIILetter(c):
			flush()
			width := 1
			for i+width < len(pattern) && pattern[i+width] == c {
				width++
			}
			tokens = append(tokens, patternToken{field: c, width: width})
			i += width
		default:
			literal.WriteByte(c)
			i++
		}
	}
	flush()

	return tokens
}

func namedParts(months, weekdays []string, t time.Time, opts FormatOptions) []DatePart {
	var parts []DatePart
	if opts.Weekday != "" {
		parts = append(parts, DatePart{Type: PartWeekday, Value: weekdayName(weekdays, t)})
	}
	if opts.Month != "" {
		if len(parts) > 0 {
			parts = append(parts, DatePart{Type: PartLiteral, Value: " "})
		}
		parts = append(parts, DatePart{Type: PartMonth, Value: monthName(months, t)})
	}
	return parts
}

func appendLiteral(parts []DatePart, value string) []DatePart {
	if value == "" {
		return parts
	}
	if n := len(parts); n > 0 && parts[n-1].Type == PartLiteral {
		parts[n-1].Value += value
		return parts
	}
	return append(parts, DatePart{Type: PartLiteral, Value: value})
}

func monthName(months []string, t time.Time) string {
	idx := int(t.Month()) - 1
	if idx < 0 || idx >= len(months) {
		return t.Month().String()
	}
	return months[idx]
}

func weekdayName(weekdays []string, t time.Time) string {
	idx := int(t.Weekday())
	if idx >= len(weekdays) {
		return t.Weekday().String()
	}
	return weekdays[idx]
}

func styleForWidth(width int) FieldStyle {
	switch {
	case width >= 3:
		return StyleLong
	case width == 2:
		return StyleTwoDigit
	default:
		return StyleNumeric
	}
}

func renderNumber(value int, style FieldStyle) string {
	if style == StyleTwoDigit {
		if value < 0 {
			value = -value
		}
		return fmt.Sprintf("%02d", value%100)
	}
	return strconv.Itoa(value)
}

func isASCIILetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
