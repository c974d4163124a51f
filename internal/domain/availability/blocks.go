package availability

import (
	"time"

	"github.com/holistia-mx/availability-engine/internal/httperr"
	"github.com/holistia-mx/availability-engine/internal/models"
)

// ValidateBlock checks an incoming block before persistence and normalizes
// it: legacy weekly_day rows get the current type, full_day blocks never
// carry a clock window.
func ValidateBlock(b *models.AvailabilityBlock) error {
	b.Normalize()

	if b.Title == "" {
		return httperr.ErrValidation("title_required", "title")
	}

	if b.StartDate == "" {
		return httperr.ErrValidation("start_date_required", "start_date")
	}
	// end_date is the explicit termination rule for every block, recurring
	// included: a recurrence never extends past it.
	if b.EndDate == "" {
		return httperr.ErrValidation("end_date_required", "end_date")
	}

	start, err := time.Parse(DateLayout, b.StartDate)
	if err != nil {
		return httperr.ErrValidation("invalid_date", "start_date")
	}
	end, err := time.Parse(DateLayout, b.EndDate)
	if err != nil {
		return httperr.ErrValidation("invalid_date", "end_date")
	}
	if end.Before(start) {
		return httperr.ErrValidation("end_before_start", "end_date")
	}

	switch b.BlockType {
	case models.BlockTypeFullDay:
		b.StartTime = ""
		b.EndTime = ""

	case models.BlockTypeWeeklyRange:
		if b.StartTime == "" || b.EndTime == "" {
			return httperr.ErrValidation("time_window_required", "start_time")
		}
		if _, err := time.Parse("15:04", b.StartTime); err != nil {
			return httperr.ErrValidation("invalid_time", "start_time")
		}
		if _, err := time.Parse("15:04", b.EndTime); err != nil {
			return httperr.ErrValidation("invalid_time", "end_time")
		}
		if b.StartTime >= b.EndTime {
			return httperr.ErrValidation("start_not_before_end", "start_time")
		}

	default:
		return httperr.ErrValidation("invalid_block_type", "block_type")
	}

	return nil
}
