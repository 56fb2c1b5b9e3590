package datefmt

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"4d63.com/tz"
	"github.com/araddon/dateparse"
)

var errNoDigits = errors.New("datefmt: value has no digits")

// LocationOffsets reads offsets from a location's timezone rules, so the
// offset in effect at each instant (DST, historical changes) is used.
type LocationOffsets struct {
	Location *time.Location
}

var _ OffsetSource = LocationOffsets{}

// OffsetMinutes returns UTC minus local time in minutes: 300 for UTC-5,
// -120 for UTC+2.
func (o LocationOffsets) OffsetMinutes(t time.Time) int {
	loc := o.Location
	if loc == nil {
		loc = time.Local
	}
	_, seconds := t.In(loc).Zone()
	return -seconds / 60
}

// DateParseParser parses free-form date-time strings with
// github.com/araddon/dateparse. PreferMonthFirst decides ambiguous numeric
// dates such as 03/04/2024.
type DateParseParser struct {
	PreferMonthFirst bool
}

var _ DateParser = DateParseParser{}

func (p DateParseParser) Parse(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if !strings.ContainsAny(value, "0123456789") {
		return time.Time{}, errNoDigits
	}
	if loc == nil {
		loc = time.Local
	}
	return dateparse.ParseIn(value, loc,
		dateparse.PreferMonthFirst(p.PreferMonthFirst),
		dateparse.RetryAmbiguousDateWithSwap(true),
	)
}

// LoadLocation resolves an IANA timezone name with the embedded zoneinfo
// from 4d63.com/tz, so results do not depend on the host's tz database.
func LoadLocation(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return time.Local, nil
	}
	loc, err := tz.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrUnknownTimezone, name, err)
	}
	return loc, nil
}
