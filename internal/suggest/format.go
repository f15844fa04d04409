package suggest

import (
	"fmt"
	"time"

	"github.com/whenq/whenq/internal/chrono"
)

// Precise formats the full unambiguous label stored on every suggestion:
// weekday, month, day, and concise clock time.
func Precise(t time.Time) string {
	return fmt.Sprintf("%s, %s %d at %s", t.Weekday(), t.Month(), t.Day(), chrono.Clock(t))
}
