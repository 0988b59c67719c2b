package timetable

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// minutesPerDay is the size of the canonical clock domain [0, 1440).
const minutesPerDay = 24 * 60

var clockPattern = regexp.MustCompile(`^(\d{1,2}):(\d{2})\s*([AaPp][Mm])$`)

// ParseClock converts a "H:MM AM|PM" string into minutes since midnight.
// Hour must be 1-12 and minutes 00-59; the meridiem is case-insensitive.
// Canonical sources (slot boundaries, saved events) always satisfy this
// format, so a failure here means manual or imported input.
func ParseClock(s string) (int, error) {
	m := clockPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}

	hour, err := strconv.Atoi(m[1])
	if err != nil || hour < 1 || hour > 12 {
		return 0, fmt.Errorf("%w: %q (hour out of range)", ErrInvalidTimeFormat, s)
	}
	minute, err := strconv.Atoi(m[2])
	if err != nil || minute > 59 {
		return 0, fmt.Errorf("%w: %q (minute out of range)", ErrInvalidTimeFormat, s)
	}

	if hour == 12 {
		hour = 0
	}
	total := hour*60 + minute
	if strings.EqualFold(m[3], "PM") {
		total += 12 * 60
	}
	return total, nil
}

// FormatClock renders minutes since midnight as "H:MM AM" / "H:MM PM".
// Any out-of-range value (including negatives) is wrapped into [0, 1440)
// first, so formatting never fails. It is the exact inverse of ParseClock
// on the canonical domain.
func FormatClock(minutes int) string {
	minutes = ((minutes % minutesPerDay) + minutesPerDay) % minutesPerDay

	hour := minutes / 60
	minute := minutes % 60

	meridiem := "AM"
	if hour >= 12 {
		meridiem = "PM"
	}
	hour = hour % 12
	if hour == 0 {
		hour = 12
	}
	return fmt.Sprintf("%d:%02d %s", hour, minute, meridiem)
}
