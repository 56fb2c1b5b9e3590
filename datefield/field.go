// Package datefield wraps a text field value with calendar picker
// localization and offset normalization on every commit.
package datefield

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	datefmt "github.com/goliatone/go-datefmt"
)

// Validator is the generic text validation the field delegates to.
type Validator interface {
	ValidateText(value string) error
}

// ValidatorFunc adapts a function to Validator
type ValidatorFunc func(value string) error

func (fn ValidatorFunc) ValidateText(value string) error {
	return fn(value)
}

// CalendarLoader loads the external calendar UI.
type CalendarLoader interface {
	Load(ctx context.Context) error
}

// CalendarLoaderFunc adapts a function to CalendarLoader
type CalendarLoaderFunc func(ctx context.Context) error

func (fn CalendarLoaderFunc) Load(ctx context.Context) error {
	return fn(ctx)
}

// CalendarConfig is handed to the calendar UI at initialization.
type CalendarConfig struct {
	Locale     string    `json:"locale" yaml:"locale"`
	DateFormat string    `json:"date_format" yaml:"date_format"`
	Months     []string  `json:"months" yaml:"months"`
	Weekdays   []string  `json:"weekdays" yaml:"weekdays"`
	FutureOnly bool      `json:"future_only" yaml:"future_only"`
	MinDate    time.Time `json:"min_date,omitzero" yaml:"min_date,omitempty"`
}

// Field holds the committed value of one date input.
type Field struct {
	name         string
	localization datefmt.Localization
	codec        *datefmt.OffsetCodec
	validator    Validator
	loader       CalendarLoader
	logger       zerolog.Logger
	clock        func() time.Time
	futureOnly   bool

	mu          sync.Mutex
	value       string
	subscribers []func(string)

	loadOnce  sync.Once
	loadMu    sync.Mutex
	loadDone  bool
	loadErr   error
	callbacks []func(error)
}

type Option func(*fieldConfig)

type fieldConfig struct {
	locale     string
	value      string
	validator  Validator
	loader     CalendarLoader
	logger     *zerolog.Logger
	clock      func() time.Time
	futureOnly bool
}

func WithLocale(locale string) Option {
	return func(c *fieldConfig) {
		c.locale = locale
	}
}

// WithValue sets the initial value, stored as given.
func WithValue(value string) Option {
	return func(c *fieldConfig) {
		c.value = value
	}
}

func WithValidator(validator Validator) Option {
	return func(c *fieldConfig) {
		c.validator = validator
	}
}

func WithCalendarLoader(loader CalendarLoader) Option {
	return func(c *fieldConfig) {
		c.loader = loader
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(c *fieldConfig) {
		c.logger = &logger
	}
}

func WithClock(clock func() time.Time) Option {
	return func(c *fieldConfig) {
		c.clock = clock
	}
}

// WithFutureOnly asks the calendar UI to disable dates before today.
func WithFutureOnly(enabled bool) Option {
	return func(c *fieldConfig) {
		c.futureOnly = enabled
	}
}

// New resolves the field localization once from cfg and builds a codec that
// reads dates in the resolved pattern order.
func New(name string, cfg *datefmt.Config, opts ...Option) *Field {
	fc := fieldConfig{clock: time.Now}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&fc)
	}

	logger := zerolog.Nop()
	if cfg != nil {
		logger = cfg.Logger
	}
	if fc.logger != nil {
		logger = *fc.logger
	}

	localization := cfg.BuildResolver().Resolve(fc.locale)

	return &Field{
		name:         name,
		localization: localization,
		codec:        cfg.BuildCodec(localization.DatePattern),
		validator:    fc.validator,
		loader:       fc.loader,
		logger:       logger.With().Str("field", name).Logger(),
		clock:        fc.clock,
		futureOnly:   fc.futureOnly,
		value:        fc.value,
	}
}

func (f *Field) Name() string {
	return f.name
}

// Localization returns the bundle resolved at construction.
func (f *Field) Localization() datefmt.Localization {
	out := f.localization
	out.Names = f.localization.Names.Clone()
	return out
}

// CalendarConfig builds the calendar UI configuration. MinDate is the start
// of the current day in the field's location when FutureOnly is set.
func (f *Field) CalendarConfig() CalendarConfig {
	cfg := CalendarConfig{
		Locale:     f.localization.Locale,
		DateFormat: f.localization.DateTimePattern,
		Months:     append([]string(nil), f.localization.Names.Months...),
		Weekdays:   append([]string(nil), f.localization.Names.Weekdays...),
		FutureOnly: f.futureOnly,
	}
	if f.futureOnly {
		now := f.clock().In(f.codec.Location())
		cfg.MinDate = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	}
	return cfg
}

func (f *Field) Value() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.value
}

// OnChange subscribes fn to committed values.
func (f *Field) OnChange(fn func(value string)) {
	if fn == nil {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subscribers = append(f.subscribers, fn)
}

// Commit normalizes value, stores it and notifies subscribers. Selection,
// close and clear events from the calendar UI all land here.
func (f *Field) Commit(value string) string {
	normalized := f.codec.TagWithOffset(value)

	f.mu.Lock()
	f.value = normalized
	subscribers := append([]func(string){}, f.subscribers...)
	f.mu.Unlock()

	for _, fn := range subscribers {
		fn(normalized)
	}
	return normalized
}

// Clear commits an empty value.
func (f *Field) Clear() {
	f.Commit("")
}

// Validate normalizes the stored value and passes it to the validator.
func (f *Field) Validate() error {
	f.mu.Lock()
	f.value = f.codec.TagWithOffset(f.value)
	value := f.value
	f.mu.Unlock()

	if f.validator == nil {
		return nil
	}
	return f.validator.ValidateText(value)
}

// ParsedValue parses the stored value in the zone carried by its tag.
func (f *Field) ParsedValue() (time.Time, error) {
	return f.codec.ParseTagged(f.Value())
}
