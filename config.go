package datefmt

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Config captures resolver and codec setup
type Config struct {
	DefaultLocale string
	Location      *time.Location
	Formatter     PartsFormatter
	Parser        DateParser
	Resolver      FallbackResolver
	TimeSuffix    string
	Logger        zerolog.Logger

	timeSuffixSet    bool
	overridesPath    string
	localeOverrides  map[string]string
	overrides        map[string]LocaleOverride
	resolverOnce     sync.Once
	resolverInstance *Resolver
}

// Option mutates Config during construction
type Option func(*Config) error

// NewConfig builds Config via supplied options. Override files are loaded
// and validated here so later lookups cannot fail.
func NewConfig(opts ...Option) (*Config, error) {
	cfg := &Config{
		Logger: zerolog.Nop(),
	}

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if cfg.DefaultLocale == "" {
		cfg.DefaultLocale = AmbientLocale()
	}
	cfg.DefaultLocale = normalizeLocale(cfg.DefaultLocale)

	if cfg.Location == nil {
		cfg.Location = time.Local
	}

	if cfg.Formatter == nil {
		cfg.Formatter = DefaultFormatter()
	}

	if cfg.Resolver == nil {
		cfg.Resolver = NewStaticFallbackResolver()
	}

	if !cfg.timeSuffixSet {
		cfg.TimeSuffix = DefaultTimeSuffix
	}

	if err := cfg.loadOverrides(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithDefaultLocale sets the locale used when callers pass an empty tag
func WithDefaultLocale(locale string) Option {
	return func(c *Config) error {
		c.DefaultLocale = locale
		return nil
	}
}

// WithTimezone loads an IANA timezone for parsing and offset tagging.
func WithTimezone(name string) Option {
	return func(c *Config) error {
		loc, err := LoadLocation(name)
		if err != nil {
			return err
		}
		c.Location = loc
		return nil
	}
}

func WithLocation(loc *time.Location) Option {
	return func(c *Config) error {
		c.Location = loc
		return nil
	}
}

func WithFormatter(formatter PartsFormatter) Option {
	return func(c *Config) error {
		c.Formatter = formatter
		return nil
	}
}

func WithParser(parser DateParser) Option {
	return func(c *Config) error {
		c.Parser = parser
		return nil
	}
}

func WithTimeSuffix(suffix string) Option {
	return func(c *Config) error {
		c.TimeSuffix = suffix
		c.timeSuffixSet = true
		return nil
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(c *Config) error {
		c.Logger = logger
		return nil
	}
}

func WithFallbackResolver(resolver FallbackResolver) Option {
	return func(c *Config) error {
		c.Resolver = resolver
		return nil
	}
}

// WithFallback sets the override lookup chain for locale. It fails when a
// FallbackResolver other than *StaticFallbackResolver was configured first.
func WithFallback(locale string, fallbacks ...string) Option {
	return func(c *Config) error {
		if locale == "" {
			return nil
		}
		resolver, ok := c.Resolver.(*StaticFallbackResolver)
		if !ok {
			if c.Resolver != nil {
				return fmt.Errorf("datefmt: WithFallback(%q) needs a *StaticFallbackResolver, got %T", locale, c.Resolver)
			}
			resolver = NewStaticFallbackResolver()
			c.Resolver = resolver
		}
		resolver.Set(locale, fallbacks...)
		return nil
	}
}

// WithOverrides loads a JSON or YAML overrides document.
func WithOverrides(path string) Option {
	return func(c *Config) error {
		c.overridesPath = path
		c.overrides = nil
		return nil
	}
}

// WithLocaleOverride loads a single-locale override file.
func WithLocaleOverride(locale, path string) Option {
	return func(c *Config) error {
		if c.localeOverrides == nil {
			c.localeOverrides = make(map[string]string)
		}
		c.localeOverrides[locale] = path
		c.overrides = nil
		return nil
	}
}

// Overrides returns a copy of the loaded overrides.
func (cfg *Config) Overrides() map[string]LocaleOverride {
	if cfg == nil || len(cfg.overrides) == 0 {
		return nil
	}
	out := make(map[string]LocaleOverride, len(cfg.overrides))
	for locale, override := range cfg.overrides {
		out[locale] = override.clone()
	}
	return out
}

// BuildResolver returns the Resolver described by the config. It is built on
// first use and shared by every later caller.
func (cfg *Config) BuildResolver() *Resolver {
	if cfg == nil {
		return NewResolver()
	}
	cfg.resolverOnce.Do(func() {
		cfg.resolverInstance = cfg.newResolver()
	})
	return cfg.resolverInstance
}

func (cfg *Config) newResolver() *Resolver {
	opts := []ResolverOption{
		WithResolverFormatter(cfg.Formatter),
		WithResolverDefaultLocale(cfg.DefaultLocale),
		WithResolverFallbacks(cfg.Resolver),
		WithResolverOverrides(cfg.overrides),
		WithResolverLogger(cfg.Logger),
	}
	if cfg.timeSuffixSet {
		opts = append(opts, WithResolverTimeSuffix(cfg.TimeSuffix))
	}

	return NewResolver(opts...)
}

// BuildCodec returns an OffsetCodec for the configured location. The
// optional date pattern orders ambiguous numeric dates.
func (cfg *Config) BuildCodec(pattern string) *OffsetCodec {
	if cfg == nil {
		return NewOffsetCodec(WithDatePattern(pattern))
	}
	opts := []CodecOption{
		WithCodecLocation(cfg.Location),
		WithDatePattern(pattern),
	}
	if cfg.Parser != nil {
		opts = append(opts, WithCodecParser(cfg.Parser))
	}
	return NewOffsetCodec(opts...)
}

func (cfg *Config) loadOverrides() error {
	if cfg.overridesPath == "" && len(cfg.localeOverrides) == 0 {
		return nil
	}

	loader := NewOverrideLoader(cfg.overridesPath)
	for locale, path := range cfg.localeOverrides {
		loader.AddOverride(locale, path)
	}

	data, err := loader.Load()
	if err != nil {
		return err
	}
	cfg.overrides = data.Locales
	return nil
}
