package usecase

import (
	"strconv"
	"strings"
	"time"
)

// Backup directory naming: one base snapshot directory per calendar date
// named YYYY-MM-DD, with incremental child directories named incrN, N >= 1.
// Parsing is strict; anything that does not match is skipped by scans.

const dateNameLayout = "2006-01-02"

const incrNamePrefix = "incr"

// ParseDateName parses a base snapshot directory name. It accepts exactly
// 4-digit year, 2-digit month and 2-digit day separated by hyphens, and only
// calendar-valid dates.
func ParseDateName(name string) (time.Time, bool) {
	if len(name) != len(dateNameLayout) {
		return time.Time{}, false
	}
	d, err := time.ParseInLocation(dateNameLayout, name, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// ParseIncrName parses an incremental directory name. It accepts the literal
// prefix "incr" followed by decimal digits without a leading zero, value >= 1.
func ParseIncrName(name string) (int, bool) {
	digits, found := strings.CutPrefix(name, incrNamePrefix)
	if !found || digits == "" {
		return 0, false
	}
	if digits[0] == '0' {
		return 0, false
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		// Out of int range.
		return 0, false
	}
	return n, true
}

// FormatDateName renders the base snapshot directory name for a date.
func FormatDateName(d time.Time) string {
	return d.Format(dateNameLayout)
}

// FormatIncrName renders the incremental directory name for a sequence number.
func FormatIncrName(seq int) string {
	return incrNamePrefix + strconv.Itoa(seq)
}

// civilDate truncates t to its calendar day in UTC so that dates parsed from
// directory names compare equal to dates derived from clock time.
func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
