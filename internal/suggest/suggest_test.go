package suggest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// noon is a fixed reference time: Wednesday, 2024-01-17 at 12:00 UTC.
var noon = time.Date(2024, 1, 17, 12, 0, 0, 0, time.UTC)

func naturals(out []Suggestion) []string {
	if len(out) == 0 {
		return nil
	}
	labels := make([]string, len(out))
	for i, s := range out {
		labels[i] = s.Natural
	}
	return labels
}

func TestSuggestFrom(t *testing.T) {
	tests := []struct {
		input    string
		now      time.Time
		expected []string
	}{
		// A bare number is a span of hours, a span of days, or an hour of the day.
		{"5", noon, []string{"for 5 hours", "for 5 days", "today, 5 pm"}},
		{"1", noon, []string{"for 1 hour", "for 1 day", "today, 1 pm"}},

		// A number too big to be an hour is only a span.
		{"90", noon, []string{"for 90 hours", "for 90 days"}},

		// An explicit time lands today, or tomorrow once it has passed.
		{"3pm", noon, []string{"today, 3 pm"}},
		{"3pm", noon.Add(4 * time.Hour), []string{"tomorrow, 3 pm"}},
		{"8:30am", noon, []string{"tomorrow, 8:30 am"}},

		// Number plus a unit prefix; "m" is minutes, months, Monday, March, May.
		{"5 h", noon, []string{"for 5 hours"}},
		{"5 d", noon, []string{"for 5 days", "December 5th"}},
		{"1 w", noon, []string{"for 1 week", "on Wednesday at 1 pm"}},
		{"5 m", noon, []string{
			"for 5 minutes", "for 5 months",
			"on Monday at 5 pm",
			"March 5th", "May 5th",
		}},

		// Weekday prefixes, with and without "next".
		{"fri", noon, []string{"on Friday at 8 am"}},
		{"fri 3", noon, []string{"on Friday at 3 pm"}},
		{"sat at 9am", noon, []string{"on Saturday at 9 am"}},
		{"next tue", noon, []string{"next Tuesday at 8 am"}},

		// Month and day. The hour comes from the second ambiguous digit; a
		// digit left over next to an ordinal day is not consulted.
		{"march 3rd", noon, []string{"March 3rd"}},
		{"march 3rd at 5", noon, []string{"March 3rd"}},
		{"march 3 5", noon, []string{"March 3rd, at 5 pm"}},
		{"dec 25", noon, []string{"December 25th"}},

		// Day-word vocabularies, including abbreviations.
		{"tmrw 8am", noon, []string{"tomorrow at 8 am"}},
		{"tmr", noon, []string{"tomorrow at 8 am"}},
		{"tonight", noon, []string{"tonight at 6 pm"}},
		{"tonite 9", noon, []string{"tonight at 9 am"}},
		{"today 3pm", noon, []string{"today at 3 pm"}},

		// A single letter fans out across every rule that claims it.
		{"t", noon, []string{
			"on Tuesday at 8 am", "on Thursday at 8 am",
			"today at 8 pm", "tomorrow at 8 am", "tonight at 6 pm",
		}},

		// Out-of-range times and days drop the candidate silently; no other
		// parser gets a chance to half-match the constructed phrase.
		{"13pm", noon, nil},
		{"25:70pm", noon, nil},
		{"35 d", noon, []string{"for 35 days"}}, // day 35 is invalid, the span is not
		{"feb 30", noon, nil},

		// Unparseable input yields nothing, never an error.
		{"", noon, nil},
		{"zzz", noon, nil},
		{"%%%", noon, nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			out := SuggestFrom(tt.input, tt.now)
			assert.Equal(t, tt.expected, naturals(out), "SuggestFrom(%q)", tt.input)
		})
	}
}

func TestSuggestFromDates(t *testing.T) {
	tests := []struct {
		input    string
		natural  string
		expected string
	}{
		{"5", "today, 5 pm", "2024-01-17 17:00"},
		{"3pm", "today, 3 pm", "2024-01-17 15:00"},
		{"fri 3", "on Friday at 3 pm", "2024-01-19 15:00"},
		{"next tue", "next Tuesday at 8 am", "2024-01-30 08:00"},
		{"march 3rd", "March 3rd", "2024-03-03 08:00"},
		{"tmrw 8am", "tomorrow at 8 am", "2024-01-18 08:00"},
		{"tonight", "tonight at 6 pm", "2024-01-17 18:00"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			out := SuggestFrom(tt.input, noon)
			for _, s := range out {
				if s.Natural == tt.natural {
					assert.Equal(t, tt.expected, s.Date.Format("2006-01-02 15:04"))
					return
				}
			}
			t.Fatalf("no suggestion labeled %q in %v", tt.natural, naturals(out))
		})
	}
}

func TestSuggestFromWeekdayNeverPast(t *testing.T) {
	// Wednesday at noon: "wed" means today, but the default 8 am has passed,
	// so the suggestion rolls a full week out rather than pointing backwards.
	out := SuggestFrom("wed", noon)
	require.Len(t, out, 1)
	assert.Equal(t, "on Wednesday at 8 am", out[0].Natural)
	assert.Equal(t, "2024-01-24 08:00", out[0].Date.Format("2006-01-02 15:04"))
}

func TestSuggestFromTodayRollover(t *testing.T) {
	// "today 8" at noon: 8 am has passed, but a bare morning hour flips to
	// evening instead of vanishing.
	out := SuggestFrom("today 8", noon)
	require.Len(t, out, 1)
	assert.Equal(t, "today at 8 pm", out[0].Natural)

	// With an explicit meridiem there is no flip: the rule stays silent.
	out = SuggestFrom("today 8am", noon)
	assert.Empty(t, out)

	// An explicit evening time that passed also stays silent.
	late := time.Date(2024, 1, 17, 22, 0, 0, 0, time.UTC)
	out = SuggestFrom("today 9pm", late)
	assert.Empty(t, out)
}

func TestGuessTime(t *testing.T) {
	tests := map[int]string{
		0:  "8 am",
		5:  "5 pm",
		7:  "7 pm",
		8:  "8 am",
		10: "10 am",
		12: "12 am",
		15: "3 pm",
		23: "11 pm",
	}

	for n, expected := range tests {
		assert.Equal(t, expected, guessTime(n), "guessTime(%d)", n)
	}
}

func TestSuggestFromRollsForward(t *testing.T) {
	// Bare times roll +24h and weekdays +7d when the naive resolution has
	// passed, so these inputs never point backwards no matter the hour.
	inputs := []string{"5", "3pm", "8am", "fri", "next tue", "sat at 9", "tmrw"}
	refs := []time.Time{
		noon,
		time.Date(2024, 1, 17, 23, 30, 0, 0, time.UTC),
		time.Date(2024, 12, 31, 6, 0, 0, 0, time.UTC),
	}

	for _, now := range refs {
		for _, input := range inputs {
			for _, s := range SuggestFrom(input, now) {
				assert.False(t, s.Date.Before(now), "SuggestFrom(%q, %s) produced past suggestion %q = %s",
					input, now, s.Natural, s.Date)
			}
		}
	}
}

func TestSuggestFromPrecise(t *testing.T) {
	out := SuggestFrom("next tue", noon)
	require.Len(t, out, 1)
	assert.Equal(t, "Tuesday, January 30 at 8 am", out[0].Precise)

	for _, s := range SuggestFrom("t", noon) {
		assert.NotEmpty(t, s.Precise)
		assert.Contains(t, s.Precise, s.Date.Weekday().String())
	}
}

func TestPrecise(t *testing.T) {
	assert.Equal(t, "Friday, March 20 at 3 pm",
		Precise(time.Date(2026, 3, 20, 15, 0, 0, 0, time.UTC)))
	assert.Equal(t, "Wednesday, January 17 at 12:30 pm",
		Precise(time.Date(2024, 1, 17, 12, 30, 0, 0, time.UTC)))
}
