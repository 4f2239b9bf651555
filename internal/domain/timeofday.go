package domain

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// FallbackTime24 is returned by To24Hour when its input cannot be parsed.
	FallbackTime24 = "09:00"

	MinutesPerDay = 24 * 60
)

// MinutesOf24Hour parses a zero-padded or unpadded "HH:MM" 24-hour time into minutes since midnight.
func MinutesOf24Hour(time24 string) (int, bool) {
	h, m, ok := splitClock(strings.TrimSpace(time24))
	if !ok || h > 23 {
		return 0, false
	}
	return h*60 + m, true
}

// FormatMinutes renders minutes since midnight as "HH:MM", wrapping into a single day.
func FormatMinutes(total int) string {
	total = ((total % MinutesPerDay) + MinutesPerDay) % MinutesPerDay
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// To12Hour converts "HH:MM" to "HH:MM AM/PM" with hours in 01-12.
// Input that is not a valid 24-hour time is returned unchanged.
func To12Hour(time24 string) string {
	total, ok := MinutesOf24Hour(time24)
	if !ok {
		return time24
	}

	h, m := total/60, total%60
	period := "AM"
	if h >= 12 {
		period = "PM"
	}

	h %= 12
	if h == 0 {
		h = 12
	}

	return fmt.Sprintf("%02d:%02d %s", h, m, period)
}

// To24Hour converts "HH:MM AM/PM" to "HH:MM". Unrecognized input degrades to FallbackTime24.
func To24Hour(time12 string) string {
	fields := strings.Fields(time12)
	if len(fields) != 2 {
		return FallbackTime24
	}

	h, m, ok := splitClock(fields[0])
	if !ok || h < 1 || h > 12 {
		return FallbackTime24
	}

	switch strings.ToUpper(fields[1]) {
	case "AM":
		if h == 12 {
			h = 0
		}
	case "PM":
		if h != 12 {
			h += 12
		}
	default:
		return FallbackTime24
	}

	return FormatMinutes(h*60 + m)
}

// AddMinutes shifts a 24-hour time by delta minutes, wrapping at midnight in both directions.
func AddMinutes(time24 string, delta int) string {
	total, ok := MinutesOf24Hour(time24)
	if !ok {
		total, _ = MinutesOf24Hour(FallbackTime24)
	}
	return FormatMinutes(total + delta)
}

// MinutesOf12Hour returns minutes since midnight for a 12-hour display time,
// using the same degraded default as To24Hour.
func MinutesOf12Hour(time12 string) int {
	total, _ := MinutesOf24Hour(To24Hour(time12))
	return total
}

func splitClock(s string) (int, int, bool) {
	hs, ms, found := strings.Cut(s, ":")
	if !found || len(hs) == 0 || len(hs) > 2 || len(ms) != 2 {
		return 0, 0, false
	}
	if !isDigits(hs) || !isDigits(ms) {
		return 0, 0, false
	}

	h, err := strconv.Atoi(hs)
	if err != nil || h < 0 {
		return 0, 0, false
	}

	m, err := strconv.Atoi(ms)
	if err != nil || m < 0 || m > 59 {
		return 0, 0, false
	}

	return h, m, true
}

// isDigits reports whether s is non-empty and made of ASCII digits only (no sign).
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
