package datefmt

import (
	"os"
	"strings"

	"golang.org/x/text/language"
)

// DefaultLocale is used when neither the caller nor the environment names one.
const DefaultLocale = "en"

var ambientLocaleEnv = []string{"LC_ALL", "LC_TIME", "LANG"}

// AmbientLocale reads the process locale from LC_ALL, LC_TIME and LANG,
// stripping encoding and modifier suffixes ("de_DE.UTF-8@euro" -> "de-DE").
// It returns DefaultLocale when none is set or the value is "C"/"POSIX".
func AmbientLocale() string {
	for _, key := range ambientLocaleEnv {
		value := strings.TrimSpace(os.Getenv(key))
		if idx := strings.IndexAny(value, ".@"); idx >= 0 {
			value = value[:idx]
		}
		if value == "" || value == "C" || value == "POSIX" {
			continue
		}
		return normalizeLocale(value)
	}
	return DefaultLocale
}

func localeParentTag(locale string) string {
	if locale == "" {
		return ""
	}

	tag, err := language.Parse(locale)
	if err == nil {
		parent := tag.Parent()
		if parent == language.Und {
			return ""
		}
		value := parent.String()
		if value == "" || value == "und" {
			return ""
		}
		return value
	}

	if idx := strings.LastIndex(locale, "-"); idx > 0 {
		return locale[:idx]
	}

	return ""
}

func localeParentChain(locale string) []string {
	if locale == "" {
		return nil
	}

	var chain []string
	seen := make(map[string]struct{}, 4)

	if tag, err := language.Parse(locale); err == nil {
		for parent := tag.Parent(); parent != language.Und; parent = parent.Parent() {
			parentValue := parent.String()
			if parentValue == "" || parentValue == "und" {
				break
			}
			if _, exists := seen[parentValue]; exists {
				break
			}
			seen[parentValue] = struct{}{}
			chain = append(chain, parentValue)
		}
	}

	for current := localeParentTag(locale); current != ""; current = localeParentTag(current) {
		if _, exists := seen[current]; exists {
			continue
		}
		seen[current] = struct{}{}
		chain = append(chain, current)
	}

	return chain
}

// candidateLocales returns locale, its parents, then each configured fallback
// followed by that fallback's parents, without duplicates.
func candidateLocales(locale string, resolver FallbackResolver) []string {
	locale = normalizeLocale(locale)
	if locale == "" {
		return nil
	}

	seen := make(map[string]struct{}, 4)
	candidates := make([]string, 0, 4)

	appendLocale := func(value string) {
		if value == "" {
			return
		}
		if _, ok := seen[value]; ok {
			return
		}
		seen[value] = struct{}{}
		candidates = append(candidates, value)
	}

	appendLocale(locale)
	for _, parent := range localeParentChain(locale) {
		appendLocale(parent)
	}

	if resolver != nil {
		for _, fallback := range resolver.Resolve(locale) {
			appendLocale(fallback)
			for _, parent := range localeParentChain(fallback) {
				appendLocale(parent)
			}
		}
	}

	return candidates
}

// normalizeLocale normalizes a single locale identifier by replacing
// underscores with hyphens and trimming whitespace.
func normalizeLocale(locale string) string {
	return strings.ReplaceAll(strings.TrimSpace(locale), "_", "-")
}

func containsLocale(locales []string, target string) bool {
	for _, locale := range locales {
		if locale == target {
			return true
		}
	}
	return false
}
