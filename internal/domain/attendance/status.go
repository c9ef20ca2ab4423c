package attendance

import (
	"fmt"
	"math"
	"strconv"
)

// Day status codes. Approved leave overlays replace these with the
// leave-type code in the month view.
const (
	StatusPresent = "P"
	StatusHalfDay = "HL"
	StatusAbsent  = "A"
)

// Thresholds classify a day's accumulated worked seconds. One canonical
// pair applies everywhere a status is derived.
type Thresholds struct {
	HalfDaySeconds int64
	FullDaySeconds int64
}

// DefaultThresholds is the upstream policy: 9h for a full day, 4h for a
// half day.
func DefaultThresholds() Thresholds {
	return Thresholds{
		HalfDaySeconds: 4 * 3600,
		FullDaySeconds: 9 * 3600,
	}
}

// Derive maps accumulated seconds to a status code.
func (t Thresholds) Derive(totalSeconds int64) string {
	switch {
	case totalSeconds >= t.FullDaySeconds:
		return StatusPresent
	case totalSeconds >= t.HalfDaySeconds:
		return StatusHalfDay
	default:
		return StatusAbsent
	}
}

// DeriveFromHours classifies a stored decimal-hours value.
func (t Thresholds) DeriveFromHours(hours float64) string {
	return t.Derive(int64(math.Round(hours * 3600)))
}

// SessionSeconds is the elapsed time of a single punch pair. Negative
// deltas (clock skew, bad input) clamp to zero rather than propagating.
func SessionSeconds(checkInTS, checkOutTS int64) int64 {
	if d := checkOutTS - checkInTS; d > 0 {
		return d
	}
	return 0
}

// DurationText renders seconds as "<H> hour(s) <M> minute(s)".
func DurationText(seconds int64) string {
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	return fmt.Sprintf("%d hour(s) %d minute(s)", hours, minutes)
}

// DurationHours converts seconds to decimal hours rounded to 2 places.
func DurationHours(seconds int64) float64 {
	return math.Round(float64(seconds)/3600*100) / 100
}

// ParseDurationHours reads a stored duration string. Malformed or empty
// values read as zero, never as an error.
func ParseDurationHours(s string) float64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
