package chrono

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	inPattern    = regexp.MustCompile(`^in (\d+) (minute|hour|day|week|month|year)s?$`)
	clockPattern = regexp.MustCompile(`^(\d{1,4})(?:[:.](\d{1,2}))?\s*(am|pm)$`)
)

// parseGrammar handles the fixed phrase shapes the suggestion rules construct:
//
//	in N <unit>
//	[today|tonight|tomorrow|[next] <weekday>|<month> <day>] [<clock>]
//	<clock>
//
// Clock forms: "8 am", "3:30 pm", and the compact "300 pm"/"1230 pm" produced
// by the tokenizer (trailing two digits are minutes).
// Input must already be lowercased and trimmed.
func parseGrammar(s string, now time.Time) (time.Time, bool) {
	if m := inPattern.FindStringSubmatch(s); m != nil {
		return parseInterval(m[1], m[2], now)
	}

	words := strings.Fields(s)

	// Peel a trailing clock: either the last two words ("300 pm", "8 am")
	// or the last word alone ("3:30pm").
	hour, minute := 0, 0
	hasClock := false
	if len(words) >= 2 {
		if h, m, ok := parseClock(words[len(words)-2] + " " + words[len(words)-1]); ok {
			hour, minute, hasClock = h, m, true
			words = words[:len(words)-2]
		}
	}
	if !hasClock && len(words) >= 1 {
		if h, m, ok := parseClock(words[len(words)-1]); ok {
			hour, minute, hasClock = h, m, true
			words = words[:len(words)-1]
		}
	}

	dateAt := func(t time.Time) time.Time {
		y, mo, d := t.Date()
		return time.Date(y, mo, d, hour, minute, 0, 0, now.Location())
	}

	// Bare clock means today.
	if len(words) == 0 {
		if !hasClock {
			return time.Time{}, false
		}
		return dateAt(now), true
	}

	next := false
	if words[0] == "next" {
		next = true
		words = words[1:]
		if len(words) == 0 {
			return time.Time{}, false
		}
	}

	if len(words) == 1 {
		switch words[0] {
		case "today":
			if next {
				return time.Time{}, false
			}
			return dateAt(now), true
		case "tonight":
			if next {
				return time.Time{}, false
			}
			if !hasClock {
				hour = 18
			}
			return dateAt(now), true
		case "tomorrow":
			if next {
				return time.Time{}, false
			}
			return dateAt(now.AddDate(0, 0, 1)), true
		}

		if wd, ok := parseWeekday(words[0]); ok {
			daysUntil := int(wd - now.Weekday())
			if daysUntil < 0 {
				daysUntil += 7
			}
			if next {
				// "next monday" on a Monday means the coming one, not 14 days out.
				if daysUntil == 0 {
					daysUntil = 7
				} else {
					daysUntil += 7
				}
			}
			return dateAt(now.AddDate(0, 0, daysUntil)), true
		}
	}

	if !next && len(words) <= 2 {
		if mo, ok := parseMonth(words[0]); ok {
			day := 1
			if len(words) == 2 {
				n, err := strconv.Atoi(words[1])
				if err != nil || n < 1 || n > 31 {
					return time.Time{}, false
				}
				day = n
			}
			return monthDay(mo, day, hour, minute, now)
		}
	}

	return time.Time{}, false
}

func parseInterval(digits, unit string, now time.Time) (time.Time, bool) {
	n, err := strconv.Atoi(digits)
	if err != nil {
		return time.Time{}, false
	}
	switch unit {
	case "minute":
		return now.Add(time.Duration(n) * time.Minute), true
	case "hour":
		return now.Add(time.Duration(n) * time.Hour), true
	case "day":
		return now.AddDate(0, 0, n), true
	case "week":
		return now.AddDate(0, 0, 7*n), true
	case "month":
		return now.AddDate(0, n, 0), true
	case "year":
		return now.AddDate(n, 0, 0), true
	}
	return time.Time{}, false
}

// parseClock parses a 12-hour clock with meridiem. For the compact form
// without a separator, trailing two digits beyond the hour are minutes.
func parseClock(s string) (hour, minute int, ok bool) {
	m := clockPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, false
	}

	digits := m[1]
	if m[2] != "" {
		hour, _ = strconv.Atoi(digits)
		minute, _ = strconv.Atoi(m[2])
	} else if len(digits) > 2 {
		hour, _ = strconv.Atoi(digits[:len(digits)-2])
		minute, _ = strconv.Atoi(digits[len(digits)-2:])
	} else {
		hour, _ = strconv.Atoi(digits)
	}

	if hour < 1 || hour > 12 || minute > 59 {
		return 0, 0, false
	}
	if m[3] == "pm" && hour != 12 {
		hour += 12
	}
	if m[3] == "am" && hour == 12 {
		hour = 0
	}
	return hour, minute, true
}

// monthDay resolves a month/day pair to its next occurrence: this year if the
// date has not passed yet (today counts as not passed), otherwise next year.
func monthDay(mo time.Month, day, hour, minute int, now time.Time) (time.Time, bool) {
	year := now.Year()
	t := time.Date(year, mo, day, hour, minute, 0, 0, now.Location())
	if t.Month() != mo || t.Day() != day {
		return time.Time{}, false // e.g. february 31
	}

	startOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if t.Before(startOfToday) {
		t = time.Date(year+1, mo, day, hour, minute, 0, 0, now.Location())
		if t.Month() != mo || t.Day() != day {
			return time.Time{}, false // february 29 in a non-leap year
		}
	}
	return t, true
}

func parseWeekday(s string) (time.Weekday, bool) {
	switch s {
	case "sunday", "sun":
		return time.Sunday, true
	case "monday", "mon":
		return time.Monday, true
	case "tuesday", "tue":
		return time.Tuesday, true
	case "wednesday", "wed":
		return time.Wednesday, true
	case "thursday", "thu":
		return time.Thursday, true
	case "friday", "fri":
		return time.Friday, true
	case "saturday", "sat":
		return time.Saturday, true
	}
	return 0, false
}

func parseMonth(s string) (time.Month, bool) {
	switch s {
	case "january", "jan":
		return time.January, true
	case "february", "feb":
		return time.February, true
	case "march", "mar":
		return time.March, true
	case "april", "apr":
		return time.April, true
	case "may":
		return time.May, true
	case "june", "jun":
		return time.June, true
	case "july", "jul":
		return time.July, true
	case "august", "aug":
		return time.August, true
	case "september", "sep":
		return time.September, true
	case "october", "oct":
		return time.October, true
	case "november", "nov":
		return time.November, true
	case "december", "dec":
		return time.December, true
	}
	return 0, false
}
