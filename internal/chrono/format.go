package chrono

import (
	"fmt"
	"strconv"
	"time"
)

// Clock formats t as a concise 12-hour label: "3 pm", or "3:30 pm" when the
// minutes are nonzero.
func Clock(t time.Time) string {
	h := t.Hour() % 12
	if h == 0 {
		h = 12
	}
	meridiem := "am"
	if t.Hour() >= 12 {
		meridiem = "pm"
	}
	if t.Minute() == 0 {
		return fmt.Sprintf("%d %s", h, meridiem)
	}
	return fmt.Sprintf("%d:%02d %s", h, t.Minute(), meridiem)
}

// Ordinal formats a day of month as "1st", "2nd", "3rd", "4th", ...
func Ordinal(n int) string {
	suffix := "th"
	if n%100 < 11 || n%100 > 13 {
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return strconv.Itoa(n) + suffix
}
