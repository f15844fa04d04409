// Package suggest turns a short fuzzy phrase ("3pm", "next tue", "march 3",
// "in 5 days") into candidate future date/time interpretations for UI
// autocomplete. Input is classified once, then a fixed ordered list of
// independent rules each inspects the classification and contributes zero or
// more candidates; rules are not mutually exclusive, so a partial word like
// "t" surfaces today, tomorrow, and tonight completions at once.
package suggest

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/whenq/whenq/internal/chrono"
)

// Suggestion is one candidate interpretation of the input.
type Suggestion struct {
	// Natural is the short label echoing how the input was read
	// ("tomorrow, 3 pm", "next Tuesday at 8 am", "for 5 days").
	Natural string `json:"natural"`

	// Precise is the unambiguous label derived from Date in a final pass
	// ("Friday, March 20 at 3 pm").
	Precise string `json:"precise"`

	// Date is the resolved instant.
	Date time.Time `json:"date"`
}

// Generator evaluates the rule list against a calendar engine.
// The zero value is not usable; use NewGenerator or the package functions.
type Generator struct {
	Engine chrono.Resolver
}

// NewGenerator returns a Generator backed by the strict grammar resolver.
// Rule-constructed phrases have a fixed shape the grammar covers completely,
// so anything it rejects is an invalid candidate, never a parser gap.
func NewGenerator() Generator {
	return Generator{Engine: chrono.Grammar{}}
}

var std = NewGenerator()

// Suggest evaluates input against the current wall clock.
func Suggest(input string) []Suggestion {
	return std.SuggestFrom(input, time.Now())
}

// SuggestFrom evaluates input relative to an explicit reference time.
// It is total: malformed input yields an empty or partial list, never an
// error. Output order is rule-evaluation order, not confidence.
func SuggestFrom(input string, now time.Time) []Suggestion {
	return std.SuggestFrom(input, now)
}

// SuggestFrom evaluates input relative to now using g's engine.
func (g Generator) SuggestFrom(input string, now time.Time) []Suggestion {
	f := classify(input)

	var out []Suggestion
	out = append(out, g.bareQuantity(f, now)...)
	out = append(out, g.bareTime(f, now)...)
	out = append(out, g.interval(f, now)...)
	out = append(out, g.weekday(f, now)...)
	out = append(out, g.monthDay(f, now)...)
	out = append(out, g.today(f, now)...)
	out = append(out, g.tomorrow(f, now)...)
	out = append(out, g.tonight(f, now)...)

	for i := range out {
		out[i].Precise = Precise(out[i].Date)
	}
	return out
}

// resolve delegates a constructed phrase to the engine. A phrase the engine
// cannot parse silently drops that one candidate; other rules still run.
func (g Generator) resolve(phrase string, now time.Time) (time.Time, bool) {
	t, err := g.Engine.Resolve(phrase, now)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// guessTime picks a clock time for a bare hour with no meridiem. Hours below
// 8 are taken as afternoon; people rarely mean the small morning hours
// without saying so.
func guessTime(n int) string {
	switch {
	case n == 0:
		return "8 am"
	case n > 12:
		return strconv.Itoa(n-12) + " pm"
	case n < 8:
		return strconv.Itoa(n) + " pm"
	default:
		return strconv.Itoa(n) + " am"
	}
}

// bareQuantity: a number and nothing else reads as a span of hours or days.
func (g Generator) bareQuantity(f fields, now time.Time) []Suggestion {
	if f.word != "" || len(f.digits) == 0 || f.clock != "" {
		return nil
	}
	n := f.digits[0]

	var out []Suggestion
	if t, ok := g.resolve(fmt.Sprintf("in %d hours", n), now); ok {
		out = append(out, Suggestion{Natural: fmt.Sprintf("for %d %s", n, pluralize("hour", n)), Date: t})
	}
	if t, ok := g.resolve(fmt.Sprintf("in %d days", n), now); ok {
		out = append(out, Suggestion{Natural: fmt.Sprintf("for %d %s", n, pluralize("day", n)), Date: t})
	}
	return out
}

// bareTime: an explicit time, or a number that could be an hour, reads as a
// clock time today; if that already passed, tomorrow.
func (g Generator) bareTime(f fields, now time.Time) []Suggestion {
	if f.word != "" {
		return nil
	}
	if f.clock == "" && (len(f.digits) == 0 || f.digits[0] >= 24) {
		return nil
	}

	clock := f.clock
	if clock == "" {
		clock = guessTime(f.digits[0])
	}
	t, ok := g.resolve("today "+clock, now)
	if !ok {
		return nil
	}
	if chrono.IsPast(t, now) {
		t = chrono.AddHours(t, 24)
	}
	day := "today"
	if !chrono.SameDay(t, now) {
		day = "tomorrow"
	}
	return []Suggestion{{Natural: day + ", " + chrono.Clock(t), Date: t}}
}

var intervalUnits = []string{"minutes", "hours", "days", "weeks", "months", "years"}

// interval: a number plus the start of a unit name reads as a span of that
// unit. "5 m" suggests both minutes and months.
func (g Generator) interval(f fields, now time.Time) []Suggestion {
	if f.word == "" || len(f.digits) == 0 {
		return nil
	}
	n := f.digits[0]

	var out []Suggestion
	for _, unit := range intervalUnits {
		if !strings.HasPrefix(unit, f.word) {
			continue
		}
		t, ok := g.resolve(fmt.Sprintf("in %d %s", n, unit), now)
		if !ok {
			continue
		}
		label := unit
		if n == 1 {
			label = strings.TrimSuffix(unit, "s")
		}
		out = append(out, Suggestion{Natural: fmt.Sprintf("for %d %s", n, label), Date: t})
	}
	return out
}

var weekdays = []string{"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}

// weekday: the start of a weekday name reads as the next occurrence of that
// weekday, one week further out when "next" was typed.
func (g Generator) weekday(f fields, now time.Time) []Suggestion {
	word, next := stripNext(f.word)
	if word == "" {
		return nil
	}

	clock := f.clock
	if clock == "" {
		clock = guessTime(f.primary())
	}

	var out []Suggestion
	for _, wd := range weekdays {
		if !strings.HasPrefix(wd, word) {
			continue
		}
		t, ok := g.resolve(wd+" "+clock, now)
		if !ok {
			continue
		}
		if next {
			t = chrono.AddDays(t, 7)
		} else if chrono.IsPast(t, now) {
			// The nearest occurrence can be today with the time already gone.
			t = chrono.AddDays(t, 7)
		}
		conn := "on"
		if next {
			conn = "next"
		}
		out = append(out, Suggestion{
			Natural: fmt.Sprintf("%s %s at %s", conn, t.Weekday(), chrono.Clock(t)),
			Date:    t,
		})
	}
	return out
}

var months = []string{
	"january", "february", "march", "april", "may", "june",
	"july", "august", "september", "october", "november", "december",
}

// monthDay: the start of a month name reads as a day in that month. The day
// comes from an ordinal token, else the primary digit, else the 1st; the
// second digit, if any, serves as the hour.
func (g Generator) monthDay(f fields, now time.Time) []Suggestion {
	if f.word == "" {
		return nil
	}

	day := 1
	if f.hasDay {
		day = f.dayOfMonth
	} else if len(f.digits) > 0 {
		day = f.digits[0]
	}

	secondary, hasSecondary := f.secondary()
	timed := f.clock != "" || hasSecondary
	clock := f.clock
	if clock == "" {
		clock = guessTime(secondary)
	}

	var out []Suggestion
	for _, mo := range months {
		if !strings.HasPrefix(mo, f.word) {
			continue
		}
		t, ok := g.resolve(fmt.Sprintf("%s %d %s", mo, day, clock), now)
		if !ok {
			continue
		}
		natural := fmt.Sprintf("%s %s", t.Month(), chrono.Ordinal(day))
		if timed {
			natural += ", at " + chrono.Clock(t)
		}
		out = append(out, Suggestion{Natural: natural, Date: t})
	}
	return out
}

var (
	todayWords    = []string{"today", "tdy"}
	tomorrowWords = []string{"tomorrow", "tmrw", "tmr"}
	tonightWords  = []string{"tonight", "tonite"}
)

func matchesAny(word string, vocab []string) bool {
	if word == "" {
		return false
	}
	for _, v := range vocab {
		if strings.HasPrefix(v, word) {
			return true
		}
	}
	return false
}

// today: emit only when the time still lies ahead. A bare hour that already
// passed before noon gets bumped 12 hours once ("8" at 10am means 8pm);
// otherwise the rule stays silent.
func (g Generator) today(f fields, now time.Time) []Suggestion {
	if !matchesAny(f.word, todayWords) {
		return nil
	}

	clock := f.clock
	if clock == "" {
		clock = guessTime(f.primary())
	}
	t, ok := g.resolve("today "+clock, now)
	if !ok {
		return nil
	}

	switch {
	case chrono.IsFuture(t, now):
	case chrono.IsPast(t, now) && t.Hour() < 12 && f.clock == "":
		t = chrono.AddHours(t, 12)
	default:
		return nil
	}
	return []Suggestion{{Natural: "today at " + chrono.Clock(t), Date: t}}
}

// tomorrow: always valid, no rollover needed.
func (g Generator) tomorrow(f fields, now time.Time) []Suggestion {
	if !matchesAny(f.word, tomorrowWords) {
		return nil
	}

	clock := f.clock
	if clock == "" {
		clock = guessTime(f.primary())
	}
	t, ok := g.resolve("tomorrow "+clock, now)
	if !ok {
		return nil
	}
	return []Suggestion{{Natural: "tomorrow at " + chrono.Clock(t), Date: t}}
}

// tonight: defaults to 6 pm when no time or digit was given.
func (g Generator) tonight(f fields, now time.Time) []Suggestion {
	if !matchesAny(f.word, tonightWords) {
		return nil
	}

	clock := f.clock
	if clock == "" {
		if len(f.digits) > 0 {
			clock = guessTime(f.digits[0])
		} else {
			clock = "6 pm"
		}
	}
	t, ok := g.resolve("today "+clock, now)
	if !ok {
		return nil
	}
	return []Suggestion{{Natural: "tonight at " + chrono.Clock(t), Date: t}}
}

func pluralize(unit string, n int) string {
	if n == 1 {
		return unit
	}
	return unit + "s"
}
