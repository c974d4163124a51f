package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsClock(t *testing.T) {
	assert.True(t, IsClock("09:00"))
	assert.True(t, IsClock("23:59"))
	assert.False(t, IsClock("9:00"))
	assert.False(t, IsClock("24:00"))
	assert.False(t, IsClock("09:60"))
	assert.False(t, IsClock(""))
}

func TestIsDate(t *testing.T) {
	assert.True(t, IsDate("2025-06-02"))
	assert.False(t, IsDate("2025-6-2"))
	assert.False(t, IsDate("02/06/2025"))
}

func TestClockBefore(t *testing.T) {
	assert.True(t, ClockBefore("09:00", "18:00"))
	assert.False(t, ClockBefore("18:00", "09:00"))
	assert.False(t, ClockBefore("09:00", "09:00"))
}
