package datefmt

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// LocaleOverride replaces formatter output for a locale. Empty fields keep
// the formatter's value. Weekdays are Monday first.
type LocaleOverride struct {
	Pattern  string   `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	Months   []string `json:"months,omitempty" yaml:"months,omitempty"`
	Weekdays []string `json:"weekdays,omitempty" yaml:"weekdays,omitempty"`
}

// Validate checks the pattern tokens and the name list lengths.
func (o LocaleOverride) Validate() error {
	if o.Pattern != "" {
		if err := ValidatePattern(o.Pattern); err != nil {
			return err
		}
	}
	if len(o.Months) > 0 && len(o.Months) != 12 {
		return fmt.Errorf("%w: expected 12 months, got %d", ErrInvalidNames, len(o.Months))
	}
	if len(o.Weekdays) > 0 && len(o.Weekdays) != 7 {
		return fmt.Errorf("%w: expected 7 weekdays, got %d", ErrInvalidNames, len(o.Weekdays))
	}
	for _, name := range append(append([]string(nil), o.Months...), o.Weekdays...) {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("%w: empty name", ErrInvalidNames)
		}
	}
	return nil
}

func (o LocaleOverride) clone() LocaleOverride {
	out := LocaleOverride{Pattern: o.Pattern}
	if len(o.Months) > 0 {
		out.Months = append([]string(nil), o.Months...)
	}
	if len(o.Weekdays) > 0 {
		out.Weekdays = append([]string(nil), o.Weekdays...)
	}
	return out
}

// OverrideData is the document shape of an overrides file.
type OverrideData struct {
	Locales map[string]LocaleOverride `json:"locales" yaml:"locales"`
}

// OverrideLoader reads override documents from JSON or YAML files
type OverrideLoader struct {
	defaultPath string
	overrides   map[string]string
}

func NewOverrideLoader(defaultPath string) *OverrideLoader {
	return &OverrideLoader{
		defaultPath: defaultPath,
		overrides:   make(map[string]string),
	}
}

// AddOverride registers a file holding a single LocaleOverride for locale.
func (l *OverrideLoader) AddOverride(locale, path string) {
	if l == nil {
		return
	}
	if l.overrides == nil {
		l.overrides = make(map[string]string)
	}
	l.overrides[normalizeLocale(locale)] = path
}

// Load merges the default file with per-locale files; per-locale files win.
// Every entry is validated before it is returned.
func (l *OverrideLoader) Load() (*OverrideData, error) {
	result := &OverrideData{Locales: make(map[string]LocaleOverride)}
	if l == nil {
		return result, nil
	}

	if l.defaultPath != "" {
		var data OverrideData
		if err := decodeOverrideFile(l.defaultPath, &data); err != nil {
			return nil, fmt.Errorf("datefmt: load overrides: %w", err)
		}
		for locale, override := range data.Locales {
			normalized := normalizeLocale(locale)
			if normalized == "" {
				return nil, fmt.Errorf("datefmt: empty locale in %s", l.defaultPath)
			}
			result.Locales[normalized] = override
		}
	}

	locales := make([]string, 0, len(l.overrides))
	for locale := range l.overrides {
		locales = append(locales, locale)
	}
	sort.Strings(locales)

	for _, locale := range locales {
		path := l.overrides[locale]
		var override LocaleOverride
		if err := decodeOverrideFile(path, &override); err != nil {
			return nil, fmt.Errorf("datefmt: load override for %q: %w", locale, err)
		}
		result.Locales[locale] = mergeOverride(result.Locales[locale], override)
	}

	for locale, override := range result.Locales {
		if err := override.Validate(); err != nil {
			return nil, fmt.Errorf("datefmt: override %q: %w", locale, err)
		}
	}

	return result, nil
}

func mergeOverride(base, source LocaleOverride) LocaleOverride {
	if source.Pattern != "" {
		base.Pattern = source.Pattern
	}
	if len(source.Months) > 0 {
		base.Months = source.Months
	}
	if len(source.Weekdays) > 0 {
		base.Weekdays = source.Weekdays
	}
	return base
}

func decodeOverrideFile(path string, target any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		if err := json.Unmarshal(data, target); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, target); err != nil {
			return fmt.Errorf("yaml parse error in %s: %w", path, err)
		}
	default:
		return fmt.Errorf("unsupported extension %s", ext)
	}
	return nil
}
