package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProviderWeekdays(t *testing.T) {
	var p Provider

	t.Run("round trip", func(t *testing.T) {
		p.SetActiveWeekdays([]int{5, 1, 3})
		assert.Equal(t, "1,3,5", p.WorkingDays)

		days := p.ActiveWeekdays()
		assert.True(t, days[1])
		assert.True(t, days[3])
		assert.True(t, days[5])
		assert.False(t, days[2])
	})

	t.Run("out of range dropped", func(t *testing.T) {
		p.SetActiveWeekdays([]int{0, 2, 8})
		assert.Equal(t, "2", p.WorkingDays)
	})

	t.Run("empty set", func(t *testing.T) {
		p.SetActiveWeekdays(nil)
		assert.Empty(t, p.ActiveWeekdays())
	})

	t.Run("garbage tolerated on read", func(t *testing.T) {
		p.WorkingDays = "1,x,,9,3"
		days := p.ActiveWeekdays()
		assert.True(t, days[1])
		assert.True(t, days[3])
		assert.Len(t, days, 2)
	})
}

func TestBlockNormalize(t *testing.T) {
	t.Run("legacy with times becomes weekly_range", func(t *testing.T) {
		b := AvailabilityBlock{BlockType: BlockTypeLegacyWeeklyDay, StartTime: "12:00", EndTime: "14:00"}
		b.Normalize()
		assert.Equal(t, BlockTypeWeeklyRange, b.BlockType)
	})

	t.Run("legacy without times becomes full_day", func(t *testing.T) {
		b := AvailabilityBlock{BlockType: BlockTypeLegacyWeeklyDay}
		b.Normalize()
		assert.Equal(t, BlockTypeFullDay, b.BlockType)
	})

	t.Run("current types untouched", func(t *testing.T) {
		b := AvailabilityBlock{BlockType: BlockTypeFullDay, StartTime: "12:00"}
		b.Normalize()
		assert.Equal(t, BlockTypeFullDay, b.BlockType)
	})
}
