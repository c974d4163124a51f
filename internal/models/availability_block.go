package models

import "time"

// ===============================
// Block Types
// ===============================

const (
	BlockTypeFullDay     = "full_day"
	BlockTypeWeeklyRange = "weekly_range"

	// Legacy rows written before the type split. Normalized on read.
	BlockTypeLegacyWeeklyDay = "weekly_day"
)

// AvailabilityBlock is a period during which no appointment may be booked.
// Dates are provider-local ISO strings (YYYY-MM-DD), clock times HH:MM.
// A block with ExternalEventID set mirrors an event from the provider's
// linked calendar and is owned by the sync bridge.
type AvailabilityBlock struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	ProviderID uint `gorm:"index" json:"provider_id"`

	Title       string `gorm:"size:150;not null" json:"title"`
	Description string `gorm:"size:500" json:"description"`

	BlockType string `gorm:"size:20;not null" json:"block_type"`

	StartDate string `gorm:"size:10;not null" json:"start_date"`
	EndDate   string `gorm:"size:10;not null" json:"end_date"`

	StartTime string `gorm:"size:5" json:"start_time,omitempty"`
	EndTime   string `gorm:"size:5" json:"end_time,omitempty"`

	IsRecurring bool `json:"is_recurring"`

	ExternalEventID *string `gorm:"size:255;index" json:"external_event_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *AvailabilityBlock) ExternalTagged() bool {
	return b.ExternalEventID != nil && *b.ExternalEventID != ""
}

// Normalize maps the legacy weekly_day type onto the current pair:
// rows carrying a clock window become weekly_range, the rest full_day.
func (b *AvailabilityBlock) Normalize() {
	if b.BlockType != BlockTypeLegacyWeeklyDay {
		return
	}
	if b.StartTime != "" && b.EndTime != "" {
		b.BlockType = BlockTypeWeeklyRange
	} else {
		b.BlockType = BlockTypeFullDay
	}
}
