package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/holistia-mx/availability-engine/internal/httperr"
	"github.com/holistia-mx/availability-engine/internal/models"
)

func validWeeklyRange() *models.AvailabilityBlock {
	return &models.AvailabilityBlock{
		ProviderID: 1,
		Title:      "Lunch",
		BlockType:  models.BlockTypeWeeklyRange,
		StartDate:  "2025-06-02",
		EndDate:    "2025-06-06",
		StartTime:  "12:00",
		EndTime:    "14:00",
	}
}

func TestValidateBlock(t *testing.T) {
	t.Run("valid weekly_range passes", func(t *testing.T) {
		assert.NoError(t, ValidateBlock(validWeeklyRange()))
	})

	t.Run("empty title rejected", func(t *testing.T) {
		b := validWeeklyRange()
		b.Title = ""
		err := ValidateBlock(b)
		assert.True(t, httperr.IsValidation(err))
	})

	t.Run("end before start rejected", func(t *testing.T) {
		b := validWeeklyRange()
		b.StartDate = "2025-06-10"
		b.EndDate = "2025-06-02"
		assert.True(t, httperr.IsValidation(ValidateBlock(b)))
	})

	t.Run("weekly_range needs a time window", func(t *testing.T) {
		b := validWeeklyRange()
		b.StartTime = ""
		b.EndTime = ""
		assert.True(t, httperr.IsValidation(ValidateBlock(b)))
	})

	t.Run("weekly_range start must precede end", func(t *testing.T) {
		b := validWeeklyRange()
		b.StartTime = "14:00"
		b.EndTime = "12:00"
		assert.True(t, httperr.IsValidation(ValidateBlock(b)))
	})

	t.Run("full_day sheds clock times", func(t *testing.T) {
		b := validWeeklyRange()
		b.BlockType = models.BlockTypeFullDay
		assert.NoError(t, ValidateBlock(b))
		assert.Empty(t, b.StartTime)
		assert.Empty(t, b.EndTime)
	})

	t.Run("recurring block without end_date rejected", func(t *testing.T) {
		b := validWeeklyRange()
		b.IsRecurring = true
		b.EndDate = ""
		assert.True(t, httperr.IsValidation(ValidateBlock(b)))
	})

	t.Run("legacy weekly_day is normalized, not rejected", func(t *testing.T) {
		b := validWeeklyRange()
		b.BlockType = models.BlockTypeLegacyWeeklyDay
		assert.NoError(t, ValidateBlock(b))
		assert.Equal(t, models.BlockTypeWeeklyRange, b.BlockType)
	})

	t.Run("unknown type rejected", func(t *testing.T) {
		b := validWeeklyRange()
		b.BlockType = "fortnightly"
		assert.True(t, httperr.IsValidation(ValidateBlock(b)))
	})
}
