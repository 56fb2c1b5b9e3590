package datefmt

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// OffsetMarker flags a time string that already carries an offset tag.
const OffsetMarker = "GMT"

// OffsetCodec appends a GMT±HHMM tag to calendar UI time strings so a later
// parse restores the locally selected wall clock. Stateless per call and
// safe for concurrent use.
type OffsetCodec struct {
	parser   DateParser
	offsets  OffsetSource
	location *time.Location
	dayFirst bool
	layouts  []string
}

type CodecOption func(*OffsetCodec)

func WithCodecParser(parser DateParser) CodecOption {
	return func(c *OffsetCodec) {
		c.parser = parser
	}
}

func WithCodecOffsets(offsets OffsetSource) CodecOption {
	return func(c *OffsetCodec) {
		c.offsets = offsets
	}
}

// WithCodecLocation sets the location values are parsed in and whose
// offsets are used for tagging.
func WithCodecLocation(loc *time.Location) CodecOption {
	return func(c *OffsetCodec) {
		if loc != nil {
			c.location = loc
		}
	}
}

// WithDatePattern reads values in the pattern's layout first, with or
// without the time of day, and makes the fallback parser read ambiguous
// numeric dates in the pattern's order (day first when d precedes m).
func WithDatePattern(pattern string) CodecOption {
	return func(c *OffsetCodec) {
		day := strings.IndexRune(pattern, TokenDay)
		month := strings.IndexRune(pattern, TokenMonth)
		c.dayFirst = day >= 0 && month >= 0 && day < month
		c.layouts = nil
		if layout, ok := goLayoutForPattern(pattern); ok {
			c.layouts = []string{layout + " 15:04:05", layout + " 15:04", layout}
		}
	}
}

// goLayoutForPattern maps d, m and Y onto a time.Parse layout. Day and month
// use the single-digit forms, which also accept zero-padded input.
func goLayoutForPattern(pattern string) (string, bool) {
	if ValidatePattern(pattern) != nil {
		return "", false
	}
	var b strings.Builder
	for _, r := range pattern {
		switch r {
		case TokenDay:
			b.WriteString("2")
		case TokenMonth:
			b.WriteString("1")
		case TokenYear:
			b.WriteString("2006")
		default:
			if r >= '0' && r <= '9' {
				// digits would read as layout fields
				return "", false
			}
			b.WriteRune(r)
		}
	}
	return b.String(), true
}

func NewOffsetCodec(opts ...CodecOption) *OffsetCodec {
	c := &OffsetCodec{location: time.Local}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(c)
	}
	if c.parser == nil {
		c.parser = DateParseParser{PreferMonthFirst: !c.dayFirst}
	}
	if c.offsets == nil {
		c.offsets = LocationOffsets{Location: c.location}
	}
	return c
}

// Location returns the location values are interpreted in.
func (c *OffsetCodec) Location() *time.Location {
	if c == nil || c.location == nil {
		return time.Local
	}
	return c.location
}

// TagWithOffset appends " GMT±HHMM" to value. Empty, already tagged and
// unparsable values are returned unchanged, which makes the call idempotent.
func (c *OffsetCodec) TagWithOffset(value string) string {
	if c == nil || value == "" || strings.Contains(value, OffsetMarker) {
		return value
	}

	parsed, err := c.parse(value, c.Location())
	if err != nil {
		return value
	}

	return value + " " + FormatOffsetTag(c.offsets.OffsetMinutes(parsed))
}

// FormatOffsetTag renders an OffsetSource value as GMT±HHMM. The sign is '+'
// for negative offsets (local ahead of UTC) and '-' otherwise, so UTC is
// rendered as GMT-0000.
func FormatOffsetTag(offsetMinutes int) string {
	sign := "-"
	if offsetMinutes < 0 {
		sign = "+"
	}
	abs := offsetMinutes
	if abs < 0 {
		abs = -abs
	}
	return fmt.Sprintf("%s%s%02d%02d", OffsetMarker, sign, abs/60, abs%60)
}

// ParseTagged parses a value produced by TagWithOffset in the zone named by
// its tag. Untagged values are parsed in the codec location.
func (c *OffsetCodec) ParseTagged(value string) (time.Time, error) {
	if c == nil {
		return time.Time{}, ErrInvalidOffsetTag
	}
	value = strings.TrimSpace(value)

	idx := strings.LastIndex(value, " "+OffsetMarker)
	if idx < 0 {
		return c.parse(value, c.Location())
	}

	loc, err := parseOffsetTag(value[idx+1:])
	if err != nil {
		return time.Time{}, err
	}

	parsed, err := c.parse(strings.TrimSpace(value[:idx]), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("datefmt: parse %q: %w", value, err)
	}
	return parsed, nil
}

// parse tries the pattern layouts before handing value to the parser.
func (c *OffsetCodec) parse(value string, loc *time.Location) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	for _, layout := range c.layouts {
		if parsed, err := time.ParseInLocation(layout, trimmed, loc); err == nil {
			return parsed, nil
		}
	}
	return c.parser.Parse(value, loc)
}

func parseOffsetTag(tag string) (*time.Location, error) {
	rest, ok := strings.CutPrefix(tag, OffsetMarker)
	if !ok || len(rest) != 5 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidOffsetTag, tag)
	}

	sign := 1
	switch rest[0] {
	case '+':
	case '-':
		sign = -1
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidOffsetTag, tag)
	}

	if strings.Trim(rest[1:], "0123456789") != "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidOffsetTag, tag)
	}
	hours, errH := strconv.Atoi(rest[1:3])
	minutes, errM := strconv.Atoi(rest[3:5])
	if errH != nil || errM != nil || minutes >= 60 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidOffsetTag, tag)
	}

	return time.FixedZone(tag, sign*(hours*3600+minutes*60)), nil
}
