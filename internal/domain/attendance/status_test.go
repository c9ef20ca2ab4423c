package attendance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDerive(t *testing.T) {
	th := DefaultThresholds()

	tests := []struct {
		name     string
		seconds  int64
		expected string
	}{
		{"zero is absent", 0, StatusAbsent},
		{"just under half day", 4*3600 - 1, StatusAbsent},
		{"exactly half day", 4 * 3600, StatusHalfDay},
		{"between thresholds", 6 * 3600, StatusHalfDay},
		{"just under full day", 9*3600 - 1, StatusHalfDay},
		{"exactly full day", 9 * 3600, StatusPresent},
		{"overtime", 12 * 3600, StatusPresent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, th.Derive(tt.seconds))
		})
	}
}

func TestDeriveFromHours(t *testing.T) {
	th := DefaultThresholds()

	assert.Equal(t, StatusPresent, th.DeriveFromHours(9.25))
	assert.Equal(t, StatusHalfDay, th.DeriveFromHours(4.0))
	assert.Equal(t, StatusAbsent, th.DeriveFromHours(3.99))
}

func TestSessionSeconds(t *testing.T) {
	// 09:00:00 to 18:15:00 on 2025-06-16 UTC.
	checkIn := int64(1750064400)
	checkOut := checkIn + 33300

	assert.Equal(t, int64(33300), SessionSeconds(checkIn, checkOut))

	// Clock skew clamps to zero rather than going negative.
	assert.Equal(t, int64(0), SessionSeconds(checkOut, checkIn))
	assert.Equal(t, int64(0), SessionSeconds(checkIn, checkIn))
}

func TestDurationText(t *testing.T) {
	assert.Equal(t, "9 hour(s) 15 minute(s)", DurationText(33300))
	assert.Equal(t, "0 hour(s) 0 minute(s)", DurationText(0))
	assert.Equal(t, "0 hour(s) 59 minute(s)", DurationText(59*60+59))
}

func TestDurationHours(t *testing.T) {
	assert.Equal(t, 9.25, DurationHours(33300))
	assert.Equal(t, 0.0, DurationHours(0))
	assert.Equal(t, 8.5, DurationHours(30600))
}

func TestFullWorkdayScenario(t *testing.T) {
	th := DefaultThresholds()
	seconds := int64(33300)

	assert.Equal(t, StatusPresent, th.Derive(seconds))
	assert.Equal(t, "9 hour(s) 15 minute(s)", DurationText(seconds))
	assert.Equal(t, 9.25, DurationHours(seconds))
}

func TestParseDurationHours(t *testing.T) {
	assert.Equal(t, 9.25, ParseDurationHours("9.25"))
	assert.Equal(t, 0.0, ParseDurationHours(""))
	assert.Equal(t, 0.0, ParseDurationHours("garbage"))
	assert.Equal(t, 0.0, ParseDurationHours("0"))
}
