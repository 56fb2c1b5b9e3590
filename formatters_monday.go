package datefmt

import (
	"strings"
	"time"

	"github.com/goodsign/monday"
	"golang.org/x/text/language"
)

// MondayFormatter renders dates with github.com/goodsign/monday. Numeric
// ordering comes from monday's short layouts and names from monday.Format.
// Locales monday names but has no short layout for take their ordering from
// the numeric fallback.
type MondayFormatter struct {
	fallback monday.Locale
	numeric  PartsFormatter
}

var (
	_ PartsFormatter       = MondayFormatter{}
	_ LocaleSupporter      = MondayFormatter{}
	_ ExactLocaleSupporter = MondayFormatter{}
)

// MondayOption configures a MondayFormatter.
type MondayOption func(*MondayFormatter)

// WithMondayNumericFallback sets the formatter consulted for numeric ordering
// when monday has no short layout for a locale.
func WithMondayNumericFallback(formatter PartsFormatter) MondayOption {
	return func(f *MondayFormatter) {
		f.numeric = formatter
	}
}

func NewMondayFormatter(opts ...MondayOption) MondayFormatter {
	f := MondayFormatter{fallback: monday.LocaleEnUS}
	for _, opt := range opts {
		if opt != nil {
			opt(&f)
		}
	}
	return f
}

func (f MondayFormatter) Supports(locale string) bool {
	_, ok := mondayLocale(locale)
	return ok
}

// SupportsExact reports whether the locale names a region monday carries.
// Likely regions are not filled in.
func (f MondayFormatter) SupportsExact(locale string) bool {
	tag, err := language.Parse(normalizeLocale(locale))
	if err != nil {
		return false
	}
	if _, confidence := tag.Region(); confidence != language.Exact {
		return false
	}
	_, ok := mondayLocale(locale)
	return ok
}

func (f MondayFormatter) FormatParts(locale string, t time.Time, opts FormatOptions) []DatePart {
	loc, ok := mondayLocale(locale)
	if !ok {
		loc = f.fallback
		if loc == "" {
			loc = monday.LocaleEnUS
		}
	}

	if !opts.numericDate() {
		var parts []DatePart
		if opts.Weekday != "" {
			parts = append(parts, DatePart{Type: PartWeekday, Value: monday.Format(t, "Monday", loc)})
		}
		if opts.Month != "" {
			if len(parts) > 0 {
				parts = append(parts, DatePart{Type: PartLiteral, Value: " "})
			}
			parts = append(parts, DatePart{Type: PartMonth, Value: monday.Format(t, "January", loc)})
		}
		return parts
	}

	layout, ok := monday.ShortFormatsByLocale[loc]
	if !ok {
		if f.numeric != nil {
			return f.localizedNames(f.numeric.FormatParts(locale, t, opts), t, opts, loc)
		}
		layout = monday.ShortFormatsByLocale[monday.LocaleEnUS]
	}

	var parts []DatePart
	if opts.Weekday != "" {
		parts = append(parts,
			DatePart{Type: PartWeekday, Value: monday.Format(t, "Monday", loc)},
			DatePart{Type: PartLiteral, Value: ", "},
		)
	}

	for _, token := range tokenizeGoLayout(layout) {
		switch token.part {
		case PartYear:
			style := opts.Year
			if style == "" {
				style = token.style
			}
			parts = append(parts, DatePart{Type: PartYear, Value: renderNumber(t.Year(), style)})
		case PartMonth:
			style := opts.Month
			if style == "" {
				style = token.style
			}
			value := renderNumber(int(t.Month()), style)
			if style == StyleLong {
				value = monday.Format(t, "January", loc)
			}
			parts = append(parts, DatePart{Type: PartMonth, Value: value})
		case PartDay:
			style := opts.Day
			if style == "" {
				style = token.style
			}
			parts = append(parts, DatePart{Type: PartDay, Value: renderNumber(t.Day(), style)})
		case PartWeekday:
			parts = append(parts, DatePart{Type: PartWeekday, Value: monday.Format(t, "Monday", loc)})
		default:
			parts = appendLiteral(parts, token.literal)
		}
	}

	return parts
}

// localizedNames swaps the name parts of a fallback rendering for monday's.
func (f MondayFormatter) localizedNames(parts []DatePart, t time.Time, opts FormatOptions, loc monday.Locale) []DatePart {
	for i, part := range parts {
		switch {
		case part.Type == PartWeekday:
			parts[i].Value = monday.Format(t, "Monday", loc)
		case part.Type == PartMonth && opts.Month == StyleLong:
			parts[i].Value = monday.Format(t, "January", loc)
		}
	}
	return parts
}

var mondayLocales = func() map[monday.Locale]struct{} {
	locales := make(map[monday.Locale]struct{})
	for _, locale := range monday.ListLocales() {
		locales[locale] = struct{}{}
	}
	return locales
}()

// mondayLocale maps a BCP-47 tag onto monday's language_REGION identifiers,
// filling in the likely region when the tag has none.
func mondayLocale(locale string) (monday.Locale, bool) {
	locale = normalizeLocale(locale)
	if locale == "" {
		return "", false
	}

	tag, err := language.Parse(locale)
	if err != nil {
		return "", false
	}
	base, _ := tag.Base()
	region, _ := tag.Region()

	candidate := monday.Locale(base.String() + "_" + region.String())
	if _, ok := mondayLocales[candidate]; ok {
		return candidate, true
	}
	return "", false
}

type layoutToken struct {
	part    PartType
	style   FieldStyle
	literal string
}

var layoutChunks = []struct {
	chunk string
	part  PartType
	style FieldStyle
}{
	{"January", PartMonth, StyleLong},
	{"Jan", PartMonth, StyleLong},
	{"Monday", PartWeekday, StyleLong},
	{"Mon", PartWeekday, StyleLong},
	{"2006", PartYear, StyleNumeric},
	{"01", PartMonth, StyleTwoDigit},
	{"02", PartDay, StyleTwoDigit},
	{"06", PartYear, StyleTwoDigit},
	{"_2", PartDay, StyleNumeric},
	{"1", PartMonth, StyleNumeric},
	{"2", PartDay, StyleNumeric},
}

// tokenizeGoLayout splits a time.Format layout into date fields and literals.
// Time-of-day chunks are not expected in short date layouts and stay literal.
func tokenizeGoLayout(layout string) []layoutToken {
	var tokens []layoutToken
	var literal strings.Builder

	flush := func() {
		if literal.Len() == 0 {
			return
		}
		tokens = append(tokens, layoutToken{part: PartLiteral, literal: literal.String()})
		literal.Reset()
	}

	for i := 0; i < len(layout); {
		matched := false
		for _, candidate := range layoutChunks {
			if strings.HasPrefix(layout[i:], candidate.chunk) {
				flush()
				tokens = append(tokens, layoutToken{part: candidate.part, style: candidate.style})
				i += len(candidate.chunk)
				matched = true
				break
			}
		}
		if matched {
			continue
		}
		literal.WriteByte(layout[i])
		i++
	}
	flush()

	return tokens
}
