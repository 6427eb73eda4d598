// Package validate holds the date/time input checks shared by command
// handling, the record store and the list formatter. Pure functions, no I/O.
package validate

import (
	"regexp"
	"time"

	"github.com/WST-T/pweaseHiredMe/pkg/model"
)

// timeShape matches anything that looks like an HH:MM value, valid or not.
// Old deployments stored times in the type column; this is how we spot them.
var timeShape = regexp.MustCompile(`^\d{1,2}:\d{2}$`)

var dateShape = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ParseDate parses a strict YYYY-MM-DD date. The second return value is
// false for any other shape, including real-looking but impossible dates.
func ParseDate(s string) (time.Time, bool) {
	d, err := time.Parse(model.DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// ValidTime reports whether s is a strict HH:MM time, hour 0-23 (one or two
// digits), minute 00-59.
func ValidTime(s string) bool {
	if !timeShape.MatchString(s) {
		return false
	}
	_, err := time.Parse(model.TimeLayout, s)
	return err == nil
}

// TimeShaped reports whether s has the HH:MM shape, regardless of range.
func TimeShaped(s string) bool {
	return timeShape.MatchString(s)
}

// DateShaped reports whether s has the YYYY-MM-DD shape, regardless of
// whether it is a real calendar date.
func DateShaped(s string) bool {
	return dateShape.MatchString(s)
}
