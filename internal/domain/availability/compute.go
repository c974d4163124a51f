package availability

import (
	"time"

	"github.com/holistia-mx/availability-engine/internal/models"
)

// SlotInterval is the uniform slot granularity across the whole system.
const SlotInterval = 60 * time.Minute

// ComputeWeekGrid builds the 7-day slot grid for a provider week. Pure and
// deterministic: every input is passed in, nothing is read or written.
//
// Per slot, strict precedence: active appointment -> occupied, covering
// block -> blocked, otherwise available. Days outside the provider's active
// weekdays are entirely not_offered. Malformed stored blocks are skipped and
// reported; they never abort the rest of the week.
func ComputeWeekGrid(
	provider *models.Provider,
	blocks []models.AvailabilityBlock,
	appointments []models.Appointment,
	weekStart time.Time,
) (*SlotGrid, []IntegrityWarning) {

	weekStart = CanonicalWeekStart(weekStart)
	active := provider.ActiveWeekdays()

	usable, warnings := filterStoredBlocks(blocks)

	occupied := map[string]map[string]bool{}
	for _, ap := range appointments {
		if !ap.Active() {
			continue
		}
		if occupied[ap.Date] == nil {
			occupied[ap.Date] = map[string]bool{}
		}
		occupied[ap.Date][ap.Time] = true
	}

	slotTimes := slotTimesFor(provider.StartTime, provider.EndTime)

	grid := &SlotGrid{
		ProviderID: provider.ID,
		WeekStart:  weekStart.Format(DateLayout),
	}

	for i := 0; i < 7; i++ {
		date := weekStart.AddDate(0, 0, i)
		dateStr := date.Format(DateLayout)
		weekday := ISOWeekday(date)

		day := DayData{
			Date:        dateStr,
			Weekday:     weekday,
			WeekdayName: WeekdayName(weekday),
			Slots:       make([]TimeSlot, 0, len(slotTimes)),
		}

		for _, slot := range slotTimes {
			day.Slots = append(day.Slots, TimeSlot{
				Time:   slot,
				Status: slotStatus(active[weekday], dateStr, slot, occupied, usable),
			})
		}

		grid.Days = append(grid.Days, day)
	}

	return grid, warnings
}

func slotStatus(
	dayActive bool,
	date string,
	slot string,
	occupied map[string]map[string]bool,
	blocks []models.AvailabilityBlock,
) SlotStatus {

	if !dayActive {
		return StatusNotOffered
	}

	// Appointments win over blocks: a booked slot must never be hidden
	// by a later-declared block.
	if occupied[date][slot] {
		return StatusOccupied
	}

	for _, b := range blocks {
		if blockCovers(&b, date, slot) {
			return StatusBlocked
		}
	}

	return StatusAvailable
}

// blockCovers assumes the block already passed filterStoredBlocks.
// ISO date and zero-padded HH:MM strings compare correctly as strings.
func blockCovers(b *models.AvailabilityBlock, date, slot string) bool {
	if date < b.StartDate || date > b.EndDate {
		return false
	}
	if b.BlockType == models.BlockTypeFullDay {
		return true
	}
	return slot >= b.StartTime && slot < b.EndTime
}

func slotTimesFor(startHM, endHM string) []string {
	start, err1 := time.Parse("15:04", startHM)
	end, err2 := time.Parse("15:04", endHM)
	if err1 != nil || err2 != nil || !start.Before(end) {
		return nil
	}

	var slots []string
	for cur := start; cur.Add(SlotInterval).Before(end) || cur.Add(SlotInterval).Equal(end); cur = cur.Add(SlotInterval) {
		slots = append(slots, cur.Format("15:04"))
	}
	return slots
}

// filterStoredBlocks drops malformed rows so one bad block cannot take the
// whole week down with it.
func filterStoredBlocks(blocks []models.AvailabilityBlock) ([]models.AvailabilityBlock, []IntegrityWarning) {
	var usable []models.AvailabilityBlock
	var warnings []IntegrityWarning

	for _, b := range blocks {
		b.Normalize()

		if reason := storedBlockDefect(&b); reason != "" {
			warnings = append(warnings, IntegrityWarning{BlockID: b.ID, Reason: reason})
			continue
		}
		usable = append(usable, b)
	}

	return usable, warnings
}

func storedBlockDefect(b *models.AvailabilityBlock) string {
	if b.StartDate == "" || b.EndDate == "" {
		return "missing_dates"
	}
	if _, err := time.Parse(DateLayout, b.StartDate); err != nil {
		return "invalid_start_date"
	}
	if _, err := time.Parse(DateLayout, b.EndDate); err != nil {
		return "invalid_end_date"
	}

	switch b.BlockType {
	case models.BlockTypeFullDay:
		return ""
	case models.BlockTypeWeeklyRange:
		if b.StartTime == "" || b.EndTime == "" {
			return "missing_time_window"
		}
		if _, err := time.Parse("15:04", b.StartTime); err != nil {
			return "invalid_start_time"
		}
		if _, err := time.Parse("15:04", b.EndTime); err != nil {
			return "invalid_end_time"
		}
		if b.StartTime >= b.EndTime {
			return "inverted_time_window"
		}
		return ""
	default:
		return "unknown_block_type"
	}
}
