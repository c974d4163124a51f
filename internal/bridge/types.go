package bridge

import (
	"context"
	"time"

	"github.com/holistia-mx/availability-engine/internal/models"
)

// CalendarEvent is the transient shape of an upstream event. Never persisted
// as-is, only mirrored into an AvailabilityBlock.
type CalendarEvent struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	AllDay      bool      `json:"all_day"`
	Transparent bool      `json:"transparent"`
}

// CalendarClient talks to the external calendar provider. Implementations
// must use bounded timeouts on every call.
type CalendarClient interface {
	Ping(
		ctx context.Context,
		conn *models.CalendarConnection,
	) error

	ListUpcomingEvents(
		ctx context.Context,
		conn *models.CalendarConnection,
		window time.Duration,
	) ([]CalendarEvent, error)

	CreateEvent(
		ctx context.Context,
		conn *models.CalendarConnection,
		ev CalendarEvent,
	) error
}

// ===============================
// Operation Results
// ===============================

type DiagnoseResult struct {
	Connected      bool                       `json:"connected"`
	TotalBlocks    int                        `json:"total_blocks"`
	ExternalTagged int                        `json:"external_tagged"`
	InternalOnly   int                        `json:"internal_only"`
	ExternalBlocks []models.AvailabilityBlock `json:"external_blocks"`
}

// SyncDiagnostics is the funnel that lets an operator see exactly why a sync
// produced zero changes.
type SyncDiagnostics struct {
	TotalFromCalendar      int `json:"total_from_calendar"`
	TransparentExcluded    int `json:"transparent_excluded"`
	OwnEventsExcluded      int `json:"own_events_excluded"`
	ExistingBlocksExcluded int `json:"existing_blocks_excluded"`
	AfterFiltering         int `json:"after_filtering"`
}

type SyncResult struct {
	Success     bool            `json:"success"`
	Reason      string          `json:"reason,omitempty"`
	Created     int             `json:"created"`
	Deleted     int             `json:"deleted"`
	Diagnostics SyncDiagnostics `json:"diagnostics"`
}

type DedupResult struct {
	DuplicatesRemoved int    `json:"duplicates_removed"`
	TotalBlocks       int    `json:"total_blocks"`
	UniqueBlocks      int    `json:"unique_blocks"`
	RemainingBlocks   int    `json:"remaining_blocks"`
	Message           string `json:"message"`
}
