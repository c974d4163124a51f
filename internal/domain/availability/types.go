package availability

// ===============================
// Slot Grid
// ===============================

type SlotStatus string

const (
	StatusAvailable  SlotStatus = "available"
	StatusOccupied   SlotStatus = "occupied"
	StatusBlocked    SlotStatus = "blocked"
	StatusNotOffered SlotStatus = "not_offered"
)

type TimeSlot struct {
	Time   string     `json:"time"`
	Status SlotStatus `json:"status"`
}

type DayData struct {
	Date        string     `json:"date"`
	Weekday     int        `json:"weekday"`
	WeekdayName string     `json:"weekday_name"`
	Slots       []TimeSlot `json:"slots"`
}

type SlotGrid struct {
	ProviderID uint      `json:"provider_id"`
	WeekStart  string    `json:"week_start"`
	Days       []DayData `json:"days"`
}

// IntegrityWarning reports a stored block skipped during computation
// because it is malformed for its declared type.
type IntegrityWarning struct {
	BlockID uint
	Reason  string
}
