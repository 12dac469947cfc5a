package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// All wall-clock input (booking dates, "HH:mm" start times) is interpreted
// in the complex timezone and converted to UTC exactly once, here.
const TimeZone = "America/Argentina/Buenos_Aires"

var location *time.Location

func init() {
	var err error
	location, err = time.LoadLocation(TimeZone)
	if err != nil {
		// Fixed offset fallback; Argentina does not observe DST.
		location = time.FixedZone("-03", -3*60*60)
	}
}

// Location returns the complex timezone.
func Location() *time.Location {
	return location
}

// ParseDate parses a "YYYY-MM-DD" day string into a UTC-midnight instant,
// which is how dates are persisted.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, errors.New("invalid date, expected YYYY-MM-DD")
	}
	return d, nil
}

// ParseClock parses an "HH:mm" string into minutes since midnight. The
// hour may be unpadded ("9:30"); anything beyond digits and the single
// colon is rejected.
func ParseClock(s string) (int, error) {
	errClock := errors.New("invalid time, expected HH:mm")

	hh, mm, ok := strings.Cut(s, ":")
	if !ok || len(hh) < 1 || len(hh) > 2 || len(mm) != 2 {
		return 0, errClock
	}
	for _, r := range hh + mm {
		if r < '0' || r > '9' {
			return 0, errClock
		}
	}
	h, _ := strconv.Atoi(hh)
	m, _ := strconv.Atoi(mm)
	if h > 23 || m > 59 {
		return 0, errClock
	}
	return h*60 + m, nil
}

// FormatClock renders minutes since midnight as "HH:mm".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// LocalInstant combines a persisted date (UTC midnight) and minutes since
// midnight into the UTC instant of that local wall-clock moment.
func LocalInstant(date time.Time, minutes int) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, minutes, 0, 0, location).UTC()
}

// Today returns the current day in the complex timezone as a UTC-midnight
// instant, comparable with persisted dates.
func Today() time.Time {
	now := time.Now().In(location)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// NowMinutes returns the current local wall-clock time as minutes since
// midnight.
func NowMinutes() int {
	now := time.Now().In(location)
	return now.Hour()*60 + now.Minute()
}

// IsPast reports whether the local wall-clock moment (date + start minutes)
// has already passed on the server clock.
func IsPast(date time.Time, minutes int) bool {
	return LocalInstant(date, minutes).Before(time.Now())
}
