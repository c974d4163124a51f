package handlers

import (
	"time"

	"github.com/holistia-mx/availability-engine/internal/domain/availability"
)

// All times in the system are provider-local; handlers only parse wire
// strings, they never convert zones.

func parseDateParam(dateStr string) (time.Time, error) {
	return time.Parse(availability.DateLayout, dateStr)
}

// weekStartOrNow resolves the week_start query parameter, defaulting to the
// current week's canonical anchor.
func weekStartOrNow(dateStr string) (time.Time, error) {
	if dateStr == "" {
		return availability.CanonicalWeekStart(time.Now()), nil
	}

	d, err := parseDateParam(dateStr)
	if err != nil {
		return time.Time{}, err
	}
	return availability.CanonicalWeekStart(d), nil
}
