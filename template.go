package datefmt

import "strings"

// DefaultLocaleKey is the template data key read when HelperConfig leaves
// LocaleKey empty.
const DefaultLocaleKey = "locale"

// HelperConfig configures template helper exports
type HelperConfig struct {
	LocaleKey string
}

// TemplateHelpers exposes the resolver and codec to go templates rendering
// calendar inputs. Locale-taking helpers accept either a locale string or the
// template data (map or LocaleProvider) carrying it under LocaleKey.
func TemplateHelpers(resolver *Resolver, codec *OffsetCodec, cfg HelperConfig) map[string]any {
	if resolver == nil {
		resolver = NewResolver()
	}
	if codec == nil {
		codec = NewOffsetCodec()
	}
	key := cfg.LocaleKey
	if key == "" {
		key = DefaultLocaleKey
	}

	localeOf := func(data any) string {
		return localeFromTemplateData(data, key, resolver.DefaultLocale())
	}

	return map[string]any{
		"current_locale": func(data any) string {
			return localeOf(data)
		},
		"date_pattern": func(data any) string {
			return resolver.ResolvePattern(localeOf(data))
		},
		"datetime_pattern": func(data any) string {
			return resolver.ResolveDateTimePattern(localeOf(data))
		},
		"month_names": func(data any) []string {
			return resolver.ResolveNames(localeOf(data)).Months
		},
		"weekday_names": func(data any) []string {
			return resolver.ResolveNames(localeOf(data)).Weekdays
		},
		"calendar_localization": func(data any) Localization {
			return resolver.Resolve(localeOf(data))
		},
		"tag_offset": func(value string) string {
			return codec.TagWithOffset(value)
		},
	}
}

// LocaleProvider is implemented by template data that knows its locale.
type LocaleProvider interface {
	Locale() string
}

func localeFromTemplateData(data any, key, fallback string) string {
	var locale string
	switch v := data.(type) {
	case string:
		locale = v
	case LocaleProvider:
		locale = v.Locale()
	case map[string]string:
		locale = v[key]
	case map[string]any:
		if value, ok := v[key].(string); ok {
			locale = value
		}
	}

	if locale = strings.TrimSpace(locale); locale == "" {
		return fallback
	}
	return normalizeLocale(locale)
}
