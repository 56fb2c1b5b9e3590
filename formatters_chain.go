package datefmt

import "time"

// ChainFormatter delegates to the first formatter that carries the exact
// locale, then to the first that supports it through a parent, and to the
// first formatter (with its own fallback) when none does.
type ChainFormatter struct {
	formatters []PartsFormatter
}

var (
	_ PartsFormatter       = &ChainFormatter{}
	_ LocaleSupporter      = &ChainFormatter{}
	_ ExactLocaleSupporter = &ChainFormatter{}
)

// NewChainFormatter flattens nested chains and skips nil entries.
func NewChainFormatter(formatters ...PartsFormatter) *ChainFormatter {
	flattened := make([]PartsFormatter, 0, len(formatters))
	for _, formatter := range formatters {
		if formatter == nil {
			continue
		}
		if chain, ok := formatter.(*ChainFormatter); ok {
			if chain != nil {
				flattened = append(flattened, chain.formatters...)
			}
			continue
		}
		flattened = append(flattened, formatter)
	}
	return &ChainFormatter{formatters: flattened}
}

// DefaultFormatter returns the CLDR bundles backed by monday for locales the
// bundles do not cover. Monday locales without a short layout take their
// numeric ordering from the CLDR bundles.
func DefaultFormatter() PartsFormatter {
	cldr := NewCLDRFormatter()
	return NewChainFormatter(cldr, NewMondayFormatter(WithMondayNumericFallback(cldr)))
}

func (c *ChainFormatter) Supports(locale string) bool {
	return c.pick(locale, false) != nil
}

func (c *ChainFormatter) SupportsExact(locale string) bool {
	return c.pickExact(locale) != nil
}

func (c *ChainFormatter) FormatParts(locale string, t time.Time, opts FormatOptions) []DatePart {
	formatter := c.pick(locale, true)
	if formatter == nil {
		return nil
	}
	return formatter.FormatParts(locale, t, opts)
}

func (c *ChainFormatter) pick(locale string, orFirst bool) PartsFormatter {
	if c == nil || len(c.formatters) == 0 {
		return nil
	}
	if formatter := c.pickExact(locale); formatter != nil {
		return formatter
	}
	for _, formatter := range c.formatters {
		supporter, ok := formatter.(LocaleSupporter)
		if !ok || supporter.Supports(locale) {
			return formatter
		}
	}
	if orFirst {
		return c.formatters[0]
	}
	return nil
}

func (c *ChainFormatter) pickExact(locale string) PartsFormatter {
	if c == nil {
		return nil
	}
	for _, formatter := range c.formatters {
		if exact, ok := formatter.(ExactLocaleSupporter); ok && exact.SupportsExact(locale) {
			return formatter
		}
	}
	return nil
}
