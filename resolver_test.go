package datefmt

import (
	"errors"
	"strings"
	"testing"
	"time"
)

type stubFormatter struct {
	parts    []DatePart
	months   []string
	weekdays map[time.Weekday]string
}

func (s stubFormatter) FormatParts(_ string, t time.Time, opts FormatOptions) []DatePart {
	switch {
	case opts.Weekday != "":
		return []DatePart{{Type: PartWeekday, Value: s.weekdays[t.Weekday()]}}
	case opts.Month == StyleLong:
		return []DatePart{{Type: PartMonth, Value: s.months[t.Month()-1]}}
	default:
		return s.parts
	}
}

var englishMonths = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

var sundayFirstWeekdays = map[time.Weekday]string{
	time.Sunday:    "Sun",
	time.Monday:    "Mon",
	time.Tuesday:   "Tue",
	time.Wednesday: "Wed",
	time.Thursday:  "Thu",
	time.Friday:    "Fri",
	time.Saturday:  "Sat",
}

func TestResolver_ResolvePatternFromParts(t *testing.T) {
	tests := []struct {
		name     string
		parts    []DatePart
		expected string
	}{
		{
			name: "day_first_slash",
			parts: []DatePart{
				{Type: PartDay, Value: "15"},
				{Type: PartLiteral, Value: "/"},
				{Type: PartMonth, Value: "06"},
				{Type: PartLiteral, Value: "/"},
				{Type: PartYear, Value: "2024"},
			},
			expected: "d/m/Y",
		},
		{
			name: "iso_order",
			parts: []DatePart{
				{Type: PartYear, Value: "2024"},
				{Type: PartLiteral, Value: "-"},
				{Type: PartMonth, Value: "06"},
				{Type: PartLiteral, Value: "-"},
				{Type: PartDay, Value: "15"},
			},
			expected: "Y-m-d",
		},
		{
			name: "unpadded_month_first",
			parts: []DatePart{
				{Type: PartMonth, Value: "6"},
				{Type: PartLiteral, Value: "/"},
				{Type: PartDay, Value: "15"},
				{Type: PartLiteral, Value: "/"},
				{Type: PartYear, Value: "2024"},
			},
			expected: "m/d/Y",
		},
		{
			name: "trailing_literal",
			parts: []DatePart{
				{Type: PartYear, Value: "2024"},
				{Type: PartLiteral, Value: ". "},
				{Type: PartMonth, Value: "06"},
				{Type: PartLiteral, Value: ". "},
				{Type: PartDay, Value: "15"},
				{Type: PartLiteral, Value: "."},
			},
			expected: "Y. m. d.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := NewResolver(WithResolverFormatter(stubFormatter{parts: tt.parts}))
			got := resolver.ResolvePattern("xx")
			if got != tt.expected {
				t.Errorf("ResolvePattern() = %q; want %q", got, tt.expected)
			}
		})
	}
}

func TestResolver_ResolvePatternCLDR(t *testing.T) {
	resolver := NewResolver()

	tests := []struct {
		locale   string
		expected string
	}{
		{"en", "m/d/Y"},
		{"en-US", "m/d/Y"},
		{"en_US", "m/d/Y"},
		{"en-GB", "d/m/Y"},
		{"en-CA", "Y-m-d"},
		{"de", "d.m.Y"},
		{"de-AT", "d.m.Y"},
		{"fr-CA", "Y-m-d"},
		{"en-AU", "d/m/Y"},
		{"en-IN", "d/m/Y"},
		{"en-NZ", "d/m/Y"},
		{"en-IE", "d/m/Y"},
		{"pl", "d.m.Y"},
		{"pl-PL", "d.m.Y"},
		{"da-DK", "d/m/Y"},
		{"sv", "Y-m-d"},
		{"ja", "Y/m/d"},
		{"ko", "Y. m. d."},
		{"bg", "d.m.Y г."},
		{"nl", "d-m-Y"},
		{"zz", "m/d/Y"},
	}

	for _, tt := range tests {
		t.Run(tt.locale, func(t *testing.T) {
			got := resolver.ResolvePattern(tt.locale)
			if got != tt.expected {
				t.Errorf("ResolvePattern(%q) = %q; want %q", tt.locale, got, tt.expected)
			}
		})
	}
}

func TestResolver_PatternTokensForEveryBundle(t *testing.T) {
	resolver := NewResolver()
	for _, locale := range GeneratedCLDRLocales() {
		t.Run(locale, func(t *testing.T) {
			pattern := resolver.ResolvePattern(locale)
			if err := ValidatePattern(pattern); err != nil {
				t.Fatalf("ResolvePattern(%q) = %q: %v", locale, pattern, err)
			}
		})
	}
}

func TestResolver_ResolveNamesInvariants(t *testing.T) {
	resolver := NewResolver()
	for _, locale := range append(GeneratedCLDRLocales(), "en-US", "pt-BR", "zz") {
		t.Run(locale, func(t *testing.T) {
			names := resolver.ResolveNames(locale)
			if len(names.Months) != 12 {
				t.Fatalf("months = %d; want 12", len(names.Months))
			}
			if len(names.Weekdays) != 7 {
				t.Fatalf("weekdays = %d; want 7", len(names.Weekdays))
			}
			for i, name := range append(append([]string{}, names.Months...), names.Weekdays...) {
				if strings.TrimSpace(name) == "" {
					t.Fatalf("name %d is empty", i)
				}
			}
		})
	}
}

func TestResolver_ResolveNamesOrder(t *testing.T) {
	resolver := NewResolver()

	tests := []struct {
		locale       string
		firstMonth   string
		lastMonth    string
		firstWeekday string
		lastWeekday  string
	}{
		{"en", "January", "December", "Monday", "Sunday"},
		{"de", "Januar", "Dezember", "Montag", "Sonntag"},
		{"es-MX", "enero", "diciembre", "lunes", "domingo"},
		{"ja", "1月", "12月", "月曜日", "日曜日"},
		{"pl", "styczeń", "grudzień", "poniedziałek", "niedziela"},
		{"pl-PL", "Styczeń", "Grudzień", "Poniedziałek", "Niedziela"},
	}

	for _, tt := range tests {
		t.Run(tt.locale, func(t *testing.T) {
			names := resolver.ResolveNames(tt.locale)
			if names.Months[0] != tt.firstMonth || names.Months[11] != tt.lastMonth {
				t.Errorf("months = %v; want %q..%q", names.Months, tt.firstMonth, tt.lastMonth)
			}
			if names.Weekdays[0] != tt.firstWeekday || names.Weekdays[6] != tt.lastWeekday {
				t.Errorf("weekdays = %v; want %q..%q", names.Weekdays, tt.firstWeekday, tt.lastWeekday)
			}
		})
	}
}

func TestResolver_WeekdaysMondayFirstForSundayFirstFormatter(t *testing.T) {
	resolver := NewResolver(WithResolverFormatter(stubFormatter{
		months:   englishMonths,
		weekdays: sundayFirstWeekdays,
	}))

	names := resolver.ResolveNames("en-US")
	want := []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
	for i := range want {
		if names.Weekdays[i] != want[i] {
			t.Fatalf("Weekdays = %v; want %v", names.Weekdays, want)
		}
	}
	if names.Months[0] != "January" || names.Months[11] != "December" {
		t.Fatalf("Months = %v", names.Months)
	}
}

func TestResolver_DateTimePattern(t *testing.T) {
	resolver := NewResolver()
	if got := resolver.ResolveDateTimePattern("en-GB"); got != "d/m/Y H:i:s" {
		t.Fatalf("ResolveDateTimePattern = %q", got)
	}

	custom := NewResolver(WithResolverTimeSuffix(" H:i"))
	if got := custom.ResolveDateTimePattern("de"); got != "d.m.Y H:i" {
		t.Fatalf("ResolveDateTimePattern with suffix = %q", got)
	}
}

func TestResolver_EmptyLocaleUsesDefault(t *testing.T) {
	resolver := NewResolver(WithResolverDefaultLocale("de_DE"))

	if resolver.DefaultLocale() != "de-DE" {
		t.Fatalf("DefaultLocale = %q", resolver.DefaultLocale())
	}

	localization := resolver.Resolve("")
	if localization.Locale != "de-DE" {
		t.Fatalf("Locale = %q; want de-DE", localization.Locale)
	}
	if localization.DatePattern != "d.m.Y" {
		t.Fatalf("DatePattern = %q; want d.m.Y", localization.DatePattern)
	}
	if localization.DateTimePattern != "d.m.Y H:i:s" {
		t.Fatalf("DateTimePattern = %q", localization.DateTimePattern)
	}
	if localization.Names.Weekdays[0] != "Montag" {
		t.Fatalf("Weekdays[0] = %q", localization.Names.Weekdays[0])
	}
}

func TestResolver_Overrides(t *testing.T) {
	fallbacks := NewStaticFallbackResolver()
	fallbacks.Set("pt-BR", "es")

	resolver := NewResolver(
		WithResolverFallbacks(fallbacks),
		WithResolverOverrides(map[string]LocaleOverride{
			"en":    {Pattern: "Y-m-d"},
			"en_AU": {Weekdays: []string{"Mo", "Tu", "We", "Th", "Fr", "Sa", "Su"}},
			"es":    {Pattern: "d-m-Y"},
		}),
	)

	tests := []struct {
		name         string
		locale       string
		pattern      string
		firstWeekday string
	}{
		{name: "exact", locale: "en", pattern: "Y-m-d", firstWeekday: "Monday"},
		{name: "parent_pattern_own_weekdays", locale: "en-AU", pattern: "Y-m-d", firstWeekday: "Mo"},
		{name: "fallback_chain", locale: "pt-BR", pattern: "d-m-Y", firstWeekday: "segunda-feira"},
		{name: "no_override", locale: "de", pattern: "d.m.Y", firstWeekday: "Montag"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			localization := resolver.Resolve(tt.locale)
			if localization.DatePattern != tt.pattern {
				t.Errorf("DatePattern = %q; want %q", localization.DatePattern, tt.pattern)
			}
			if localization.Names.Weekdays[0] != tt.firstWeekday {
				t.Errorf("Weekdays[0] = %q; want %q", localization.Names.Weekdays[0], tt.firstWeekday)
			}
		})
	}
}

func TestValidatePattern(t *testing.T) {
	tests := []struct {
		pattern string
		wantErr bool
	}{
		{"d/m/Y", false},
		{"Y. m. d.", false},
		{"m/d/Y H:i:s", false},
		{"d/m", true},
		{"d/d/Y", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			err := ValidatePattern(tt.pattern)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidatePattern(%q) error = %v, wantErr %v", tt.pattern, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidPattern) {
				t.Fatalf("error %v does not wrap ErrInvalidPattern", err)
			}
		})
	}
}

func TestResolver_NilReceiver(t *testing.T) {
	var resolver *Resolver
	if got := resolver.ResolvePattern("en"); got != "" {
		t.Fatalf("nil ResolvePattern = %q", got)
	}
	if names := resolver.ResolveNames("en"); len(names.Months) != 0 {
		t.Fatalf("nil ResolveNames = %v", names)
	}
}
