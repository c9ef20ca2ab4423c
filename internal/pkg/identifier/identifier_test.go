package identifier

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^ATD-[A-Z0-9]{7}$`)

	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		id := New("ATD")
		assert.Regexp(t, pattern, id)
		seen[id] = struct{}{}
	}
	// Collisions in 100 draws from 36^7 would indicate a broken generator.
	assert.Len(t, seen, 100)
}

func TestNewPrefixes(t *testing.T) {
	assert.Regexp(t, `^LVE-[A-Z0-9]{7}$`, New("LVE"))
}

func TestClockSuffixDistinct(t *testing.T) {
	pattern := regexp.MustCompile(`^[A-Z0-9]{7}$`)

	a := clockSuffix(1750064400000000000)
	b := clockSuffix(1750064400000000001)
	assert.Regexp(t, pattern, a)
	assert.Regexp(t, pattern, b)
	assert.NotEqual(t, a, b)
}
