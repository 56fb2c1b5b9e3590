package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"go/format"
	"os"
	"path/filepath"
	"sort"
	"strings"

	cldr "golang.org/x/text/unicode/cldr"
)

type generatorConfig struct {
	pkg      string
	out      string
	cldrPath string
	skeleton string
	locales  []string
}

type bundlePayload struct {
	Locale      string
	DatePattern string
	Months      []string
	Weekdays    []string
}

var monthKeys = []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10", "11", "12"}

// CLDR day order, Sunday first
var dayKeys = []string{"sun", "mon", "tue", "wed", "thu", "fri", "sat"}

type localeFlag struct {
	items []string
}

func (f *localeFlag) String() string {
	return strings.Join(f.items, ",")
}

func (f *localeFlag) Set(value string) error {
	parts := strings.Split(value, ",")
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		f.items = append(f.items, part)
	}
	return nil
}

func main() {
	cfg, err := parseFlags()
	if err != nil {
		reportError(err)
	}

	if err := run(cfg); err != nil {
		reportError(err)
	}
}

func reportError(err error) {
	fmt.Fprintf(os.Stderr, "datefmt-cldr: %v\n", err)
	os.Exit(1)
}

func parseFlags() (generatorConfig, error) {
	var cfg generatorConfig
	var localeList localeFlag

	flag.StringVar(&cfg.pkg, "pkg", "datefmt", "package name for generated file")
	flag.StringVar(&cfg.out, "out", "formatters_cldr_data.go", "path to generated Go file")
	flag.StringVar(&cfg.cldrPath, "cldr", "", "path to CLDR core data directory (expects subdirectories like main/ and supplemental/)")
	flag.StringVar(&cfg.skeleton, "skeleton", "yMd", "availableFormats skeleton used for the numeric date pattern")
	flag.Var(&localeList, "locale", "locale to generate. Repeat flag or separate with commas to add more.")

	flag.Parse()

	if len(localeList.items) == 0 {
		return generatorConfig{}, errors.New("at least one -locale value is required")
	}

	for _, locale := range localeList.items {
		normalized := strings.ReplaceAll(strings.TrimSpace(locale), "_", "-")
		if normalized == "" {
			return generatorConfig{}, fmt.Errorf("invalid locale %q", locale)
		}
		cfg.locales = append(cfg.locales, normalized)
	}

	if cfg.cldrPath == "" {
		cfg.cldrPath = os.Getenv("CLDR_CORE_DIR")
	}

	if cfg.cldrPath == "" {
		return generatorConfig{}, errors.New("missing CLDR data directory (set -cldr or CLDR_CORE_DIR)")
	}

	return cfg, nil
}

func run(cfg generatorConfig) error {
	data, err := loadCLDR(cfg.cldrPath)
	if err != nil {
		return err
	}

	var bundles []bundlePayload
	for _, locale := range cfg.locales {
		payload, err := buildBundle(data, locale, cfg.skeleton)
		if err != nil {
			return fmt.Errorf("build bundle for %s: %w", locale, err)
		}
		bundles = append(bundles, payload)
	}

	sort.Slice(bundles, func(i, j int) bool {
		return bundles[i].Locale < bundles[j].Locale
	})

	source, err := renderSource(cfg.pkg, bundles)
	if err != nil {
		return err
	}

	if err := ensureDir(cfg.out); err != nil {
		return err
	}

	return os.WriteFile(cfg.out, source, 0o644)
}

func loadCLDR(path string) (*cldr.CLDR, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat CLDR directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("CLDR path %q is not a directory", path)
	}

	var decoder cldr.Decoder
	decoder.SetSectionFilter("main")

	data, err := decoder.DecodePath(path)
	if err != nil {
		return nil, fmt.Errorf("decode CLDR data: %w", err)
	}
	return data, nil
}

func buildBundle(data *cldr.CLDR, locale, skeleton string) (bundlePayload, error) {
	payload := bundlePayload{Locale: locale}

	name := findLocale(data, locale)
	if name == "" {
		return payload, errors.New("missing LDML data")
	}

	ldml, err := data.LDML(name)
	if err != nil {
		return payload, fmt.Errorf("resolve LDML %s: %w", name, err)
	}

	calendar := gregorianCalendar(ldml)
	if calendar == nil {
		return payload, errors.New("missing gregorian calendar")
	}

	payload.DatePattern = extractAvailableFormat(calendar, skeleton)
	if payload.DatePattern == "" {
		return payload, fmt.Errorf("missing %s skeleton", skeleton)
	}

	payload.Months = extractMonths(calendar)
	if len(payload.Months) != len(monthKeys) {
		return payload, fmt.Errorf("expected %d month names, got %d", len(monthKeys), len(payload.Months))
	}

	payload.Weekdays = extractWeekdays(calendar)
	if len(payload.Weekdays) != len(dayKeys) {
		return payload, fmt.Errorf("expected %d weekday names, got %d", len(dayKeys), len(payload.Weekdays))
	}

	return payload, nil
}

// findLocale walks up the underscore separated identifier until CLDR has
// a file for it.
func findLocale(data *cldr.CLDR, locale string) string {
	if data == nil {
		return ""
	}
	candidate := strings.ReplaceAll(locale, "-", "_")
	for candidate != "" {
		if ldml := data.RawLDML(candidate); ldml != nil {
			return candidate
		}
		idx := strings.LastIndex(candidate, "_")
		if idx < 0 {
			break
		}
		candidate = candidate[:idx]
	}
	return ""
}

func gregorianCalendar(ldml *cldr.LDML) *cldr.Calendar {
	if ldml == nil || ldml.Dates == nil || ldml.Dates.Calendars == nil {
		return nil
	}
	for _, calendar := range ldml.Dates.Calendars.Calendar {
		if calendar != nil && calendar.Type == "gregorian" {
			return calendar
		}
	}
	return nil
}

func extractAvailableFormat(calendar *cldr.Calendar, skeleton string) string {
	if calendar.DateTimeFormats == nil {
		return ""
	}
	for _, formats := range calendar.DateTimeFormats.AvailableFormats {
		if formats == nil {
			continue
		}
		for _, item := range formats.DateFormatItem {
			if item != nil && item.Id == skeleton {
				return item.Data()
			}
		}
	}
	return ""
}

// extractMonths prefers stand-alone wide names and falls back to format
// context names.
func extractMonths(calendar *cldr.Calendar) []string {
	if calendar.Months == nil {
		return nil
	}

	byContext := make(map[string]map[string]string, 2)
	for _, context := range calendar.Months.MonthContext {
		if context == nil {
			continue
		}
		for _, width := range context.MonthWidth {
			if width == nil || width.Type != "wide" {
				continue
			}
			names := make(map[string]string, len(monthKeys))
			for _, month := range width.Month {
				if month == nil || month.Yeartype != "" {
					continue
				}
				names[month.Type] = month.Data()
			}
			byContext[context.Type] = names
		}
	}

	return orderedNames(byContext, monthKeys)
}

func extractWeekdays(calendar *cldr.Calendar) []string {
	if calendar.Days == nil {
		return nil
	}

	byContext := make(map[string]map[string]string, 2)
	for _, context := range calendar.Days.DayContext {
		if context == nil {
			continue
		}
		for _, width := range context.DayWidth {
			if width == nil || width.Type != "wide" {
				continue
			}
			names := make(map[string]string, len(dayKeys))
			for _, day := range width.Day {
				if day == nil {
					continue
				}
				names[day.Type] = day.Data()
			}
			byContext[context.Type] = names
		}
	}

	return orderedNames(byContext, dayKeys)
}

func orderedNames(byContext map[string]map[string]string, keys []string) []string {
	result := make([]string, 0, len(keys))
	for _, key := range keys {
		name := byContext["stand-alone"][key]
		if name == "" {
			name = byContext["format"][key]
		}
		if name == "" {
			return nil
		}
		result = append(result, name)
	}
	return result
}

func renderSource(pkg string, bundles []bundlePayload) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("// Code generated by datefmt-cldr. DO NOT EDIT.\n\n")
	fmt.Fprintf(&buf, "package %s\n\n", pkg)

	buf.WriteString("type cldrDateBundle struct {\n")
	buf.WriteString("\tDatePattern string\n")
	buf.WriteString("\tMonths      []string\n")
	buf.WriteString("\tWeekdays    []string\n")
	buf.WriteString("}\n\n")

	buf.WriteString("var cldrBundles = map[string]cldrDateBundle{\n")
	for _, bundle := range bundles {
		fmt.Fprintf(&buf, "\t%q: {\n", bundle.Locale)
		fmt.Fprintf(&buf, "\t\tDatePattern: %q,\n", bundle.DatePattern)
		fmt.Fprintf(&buf, "\t\tMonths: %s,\n", stringSlice(bundle.Months))
		fmt.Fprintf(&buf, "\t\tWeekdays: %s,\n", stringSlice(bundle.Weekdays))
		buf.WriteString("\t},\n")
	}
	buf.WriteString("}\n\n")

	buf.WriteString("var generatedCLDRLocales = []string{\n")
	for _, bundle := range bundles {
		fmt.Fprintf(&buf, "\t%q,\n", bundle.Locale)
	}
	buf.WriteString("}\n\n")

	buf.WriteString("// GeneratedCLDRLocales lists the locales with embedded CLDR date bundles.\n")
	buf.WriteString("func GeneratedCLDRLocales() []string {\n")
	buf.WriteString("\treturn append([]string{}, generatedCLDRLocales...)\n")
	buf.WriteString("}\n")

	return format.Source(buf.Bytes())
}

func stringSlice(values []string) string {
	quoted := make([]string, len(values))
	for i, value := range values {
		quoted[i] = fmt.Sprintf("%q", value)
	}
	return "[]string{" + strings.Join(quoted, ", ") + "}"
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
