package block

import "github.com/holistia-mx/availability-engine/internal/models"

// Input carries the caller-editable fields of a block. ExternalEventID is
// deliberately absent: only the sync bridge creates tagged blocks.
type Input struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	BlockType   string `json:"block_type"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	IsRecurring bool   `json:"is_recurring"`
}

func (in *Input) apply(b *models.AvailabilityBlock) {
	b.Title = in.Title
	b.Description = in.Description
	b.BlockType = in.BlockType
	b.StartDate = in.StartDate
	b.EndDate = in.EndDate
	b.StartTime = in.StartTime
	b.EndTime = in.EndTime
	b.IsRecurring = in.IsRecurring
}
