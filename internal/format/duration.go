package format

import (
	"fmt"
	"time"
)

// FormatExecutionDuration formats a stage duration for display: microseconds
// below a millisecond, milliseconds below a second, and the duration rounded
// to the millisecond otherwise.
func FormatExecutionDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	default:
		return d.Round(time.Millisecond).String()
	}
}
