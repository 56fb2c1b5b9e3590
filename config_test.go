package datefmt

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestNewConfigDefaults(t *testing.T) {
	t.Setenv("LC_ALL", "")
	t.Setenv("LC_TIME", "")
	t.Setenv("LANG", "")

	cfg, err := NewConfig()
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}

	if cfg.DefaultLocale != DefaultLocale {
		t.Fatalf("DefaultLocale = %q", cfg.DefaultLocale)
	}
	if cfg.Location != time.Local {
		t.Fatalf("Location = %v; want time.Local", cfg.Location)
	}
	if cfg.Formatter == nil {
		t.Fatal("expected default formatter")
	}
	if cfg.Resolver == nil {
		t.Fatal("expected fallback resolver")
	}
	if cfg.TimeSuffix != DefaultTimeSuffix {
		t.Fatalf("TimeSuffix = %q", cfg.TimeSuffix)
	}
	if cfg.Overrides() != nil {
		t.Fatalf("Overrides = %v; want nil", cfg.Overrides())
	}
}

func TestAmbientLocale(t *testing.T) {
	tests := []struct {
		name     string
		lcAll    string
		lcTime   string
		lang     string
		expected string
	}{
		{name: "lang_with_encoding", lang: "de_DE.UTF-8", expected: "de-DE"},
		{name: "lc_time_wins_over_lang", lcTime: "fr_CA", lang: "de_DE.UTF-8", expected: "fr-CA"},
		{name: "lc_all_wins", lcAll: "sv_SE@euro", lcTime: "fr_CA", expected: "sv-SE"},
		{name: "posix_skipped", lcAll: "C", lang: "ja_JP.UTF-8", expected: "ja-JP"},
		{name: "unset", expected: DefaultLocale},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("LC_ALL", tt.lcAll)
			t.Setenv("LC_TIME", tt.lcTime)
			t.Setenv("LANG", tt.lang)

			if got := AmbientLocale(); got != tt.expected {
				t.Fatalf("AmbientLocale() = %q; want %q", got, tt.expected)
			}
		})
	}
}

func TestConfigAmbientDefaultLocale(t *testing.T) {
	t.Setenv("LC_ALL", "")
	t.Setenv("LC_TIME", "")
	t.Setenv("LANG", "en_GB.UTF-8")

	cfg, err := NewConfig()
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}

	localization := cfg.BuildResolver().Resolve("")
	if localization.Locale != "en-GB" || localization.DatePattern != "d/m/Y" {
		t.Fatalf("Resolve(\"\") = %+v", localization)
	}
}

func TestConfigWithTimezone(t *testing.T) {
	cfg, err := NewConfig(WithDefaultLocale("en"), WithTimezone("Europe/Berlin"))
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}
	if cfg.Location.String() != "Europe/Berlin" {
		t.Fatalf("Location = %q", cfg.Location.String())
	}

	codec := cfg.BuildCodec("d.m.Y")
	if codec.Location() != cfg.Location {
		t.Fatal("codec should use the configured location")
	}
	if got := codec.TagWithOffset("2024-01-15 10:30:00"); got != "2024-01-15 10:30:00 GMT+0100" {
		t.Fatalf("TagWithOffset = %q", got)
	}
}

func TestConfigUnknownTimezone(t *testing.T) {
	_, err := NewConfig(WithTimezone("Nowhere/Special"))
	if !errors.Is(err, ErrUnknownTimezone) {
		t.Fatalf("NewConfig error = %v; want ErrUnknownTimezone", err)
	}
}

func TestConfigWithOverrides(t *testing.T) {
	cfg, err := NewConfig(
		WithDefaultLocale("en"),
		WithOverrides(filepath.Join("testdata", "overrides.yaml")),
		WithLocaleOverride("de", filepath.Join("testdata", "override_de.yaml")),
	)
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}

	overrides := cfg.Overrides()
	if overrides["de"].Pattern != "Y/m/d" {
		t.Fatalf("de override = %+v", overrides["de"])
	}

	resolver := cfg.BuildResolver()
	if resolver != cfg.BuildResolver() {
		t.Fatal("BuildResolver should return the cached instance")
	}

	tests := []struct {
		locale  string
		pattern string
	}{
		{"en", "Y-m-d"},
		{"en-US", "Y-m-d"},
		{"de", "Y/m/d"},
		{"de-AT", "Y/m/d"},
		{"fr", "d/m/Y"},
	}

	for _, tt := range tests {
		t.Run(tt.locale, func(t *testing.T) {
			if got := resolver.ResolvePattern(tt.locale); got != tt.pattern {
				t.Fatalf("ResolvePattern(%q) = %q; want %q", tt.locale, got, tt.pattern)
			}
		})
	}

	mx := resolver.ResolveNames("es-MX")
	if mx.Weekdays[0] != "lun" {
		t.Fatalf("es-MX names = %+v", mx)
	}
}

func TestConfigInvalidOverrides(t *testing.T) {
	_, err := NewConfig(WithOverrides(filepath.Join("testdata", "invalid_pattern.yaml")))
	if !errors.Is(err, ErrInvalidPattern) {
		t.Fatalf("NewConfig error = %v; want ErrInvalidPattern", err)
	}
}

func TestConfigWithFallbackOption(t *testing.T) {
	cfg, err := NewConfig(
		WithDefaultLocale("en"),
		WithOverrides(filepath.Join("testdata", "overrides.json")),
		WithFallback("ca", "fr"),
	)
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}

	chain := cfg.Resolver.Resolve("ca")
	if len(chain) != 1 || chain[0] != "fr" {
		t.Fatalf("fallback chain = %v", chain)
	}

	if got := cfg.BuildResolver().ResolvePattern("ca"); got != "d.m.Y" {
		t.Fatalf("ResolvePattern(ca) = %q; want fr override d.m.Y", got)
	}
}

type chainFunc func(locale string) []string

func (fn chainFunc) Resolve(locale string) []string { return fn(locale) }

func TestConfigWithFallbackAfterCustomResolver(t *testing.T) {
	custom := chainFunc(func(string) []string { return []string{"fr"} })

	_, err := NewConfig(
		WithFallbackResolver(custom),
		WithFallback("ca", "es"),
	)
	if err == nil || !strings.Contains(err.Error(), "StaticFallbackResolver") {
		t.Fatalf("NewConfig error = %v; want StaticFallbackResolver error", err)
	}

	cfg, err := NewConfig(
		WithFallbackResolver(NewStaticFallbackResolver()),
		WithFallback("ca", "es"),
	)
	if err != nil {
		t.Fatalf("NewConfig with static resolver: %v", err)
	}
	if chain := cfg.Resolver.Resolve("ca"); len(chain) != 1 || chain[0] != "es" {
		t.Fatalf("fallback chain = %v", chain)
	}
}

func TestConfigBuildResolverConcurrent(t *testing.T) {
	cfg, err := NewConfig(WithDefaultLocale("de"))
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}

	const workers = 16
	results := make([]*Resolver, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = cfg.BuildResolver()
		}(i)
	}
	wg.Wait()

	for i, resolver := range results {
		if resolver == nil || resolver != results[0] {
			t.Fatalf("BuildResolver result %d = %p; want shared %p", i, resolver, results[0])
		}
	}
}

func TestConfigWithTimeSuffix(t *testing.T) {
	cfg, err := NewConfig(WithDefaultLocale("de"), WithTimeSuffix(""))
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}
	if got := cfg.BuildResolver().ResolveDateTimePattern(""); got != "d.m.Y" {
		t.Fatalf("ResolveDateTimePattern = %q; want d.m.Y", got)
	}
}

func TestConfigLoggerReceivesResolution(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	cfg, err := NewConfig(WithDefaultLocale("sv"), WithLogger(logger))
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}
	cfg.BuildResolver().Resolve("")

	out := buf.String()
	if !strings.Contains(out, `"locale":"sv"`) || !strings.Contains(out, `"pattern":"Y-m-d"`) {
		t.Fatalf("log output = %s", out)
	}
}

func TestConfigNil(t *testing.T) {
	var cfg *Config
	if cfg.BuildResolver() == nil {
		t.Fatal("nil config should still build a resolver")
	}
	if cfg.BuildCodec("") == nil {
		t.Fatal("nil config should still build a codec")
	}
}
