package suggest

import (
	"regexp"
	"strconv"
	"strings"
)

// tokenPattern matches a run of digits with an optional minute component
// (":" or "." separator) and an optional disambiguating suffix: a meridiem
// marker (am/pm, or a/p truncations) or an ordinal day-of-month marker.
var tokenPattern = regexp.MustCompile(`(\d+)(?:([:.])(\d+))?(am|pm|a|p|st|nd|rd|th)?`)

// connectivePattern strips a single connective "at" (or a truncated "a")
// left behind between the date word and a removed numeric token.
var connectivePattern = regexp.MustCompile(`\s+at?`)

// fields is the classified form of one input string.
type fields struct {
	// clock is the explicit time when a token carried a minute component or
	// meridiem suffix: hour digits, exactly two minute digits, " am"/" pm"
	// ("3pm" → "300 pm", "12:3" → "1230 pm"). Empty when absent.
	clock string

	// dayOfMonth is set by an ordinal suffix (st/nd/rd/th).
	dayOfMonth int
	hasDay     bool

	// digits holds unclassified numbers in order of appearance. The first is
	// the primary quantity; the second serves as a fallback hour for the
	// month-day rule. Later entries are never consulted.
	digits []int

	// word is the alphabetic residue after all tokens are removed.
	word string
}

// classify scans input, extracts and classifies every numeric token, and
// computes the residual word. It is a pure function of its input.
func classify(input string) fields {
	s := strings.ToLower(strings.TrimSpace(input))

	var f fields
	for _, m := range tokenPattern.FindAllStringSubmatch(s, -1) {
		digits, hasMinute, minute, suffix := m[1], m[2] != "", m[3], m[4]

		switch {
		case hasMinute || strings.HasPrefix(suffix, "a") || strings.HasPrefix(suffix, "p"):
			for len(minute) < 2 {
				minute += "0" // "12:3" means 12:30, not 12:03
			}
			meridiem := "pm"
			if strings.HasPrefix(suffix, "a") {
				meridiem = "am"
			}
			f.clock = digits + minute + " " + meridiem
		case suffix == "":
			if n, err := strconv.Atoi(digits); err == nil {
				f.digits = append(f.digits, n)
			}
		default: // ordinal suffix
			if n, err := strconv.Atoi(digits); err == nil {
				f.dayOfMonth = n
				f.hasDay = true
			}
		}
	}

	word := strings.TrimSpace(tokenPattern.ReplaceAllString(s, ""))
	if loc := connectivePattern.FindStringIndex(word); loc != nil {
		word = word[:loc[0]] + word[loc[1]:]
	}
	f.word = strings.TrimSpace(word)
	return f
}

// primary returns the first ambiguous digit, or 0 when none exists.
func (f fields) primary() int {
	if len(f.digits) > 0 {
		return f.digits[0]
	}
	return 0
}

// secondary returns the second ambiguous digit and whether it exists.
func (f fields) secondary() (int, bool) {
	if len(f.digits) > 1 {
		return f.digits[1], true
	}
	return 0, false
}

// stripNext removes a standalone leading "next" from the residual word,
// reporting whether it was present.
func stripNext(word string) (string, bool) {
	rest, found := strings.CutPrefix(word, "next")
	if !found {
		return word, false
	}
	if rest != "" && !strings.HasPrefix(rest, " ") {
		return word, false // "nex..." prefix of nothing, or part of another word
	}
	return strings.TrimSpace(rest), true
}
