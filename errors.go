package datefmt

import "errors"

// ErrInvalidPattern indicates a date pattern without exactly one d, m and Y token.
var ErrInvalidPattern = errors.New("datefmt: invalid date pattern")

// ErrInvalidNames indicates month or weekday lists with the wrong length.
var ErrInvalidNames = errors.New("datefmt: invalid localized names")

// ErrInvalidOffsetTag marks a GMT suffix that does not match GMT±HHMM
var ErrInvalidOffsetTag = errors.New("datefmt: invalid offset tag")

// ErrUnknownTimezone is returned when a timezone name cannot be loaded
var ErrUnknownTimezone = errors.New("datefmt: unknown timezone")
