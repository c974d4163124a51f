package availability

import "time"

const DateLayout = "2006-01-02"

var weekdayNames = map[int]string{
	1: "Monday",
	2: "Tuesday",
	3: "Wednesday",
	4: "Thursday",
	5: "Friday",
	6: "Saturday",
	7: "Sunday",
}

// ISOWeekday maps time.Weekday onto 1=Monday .. 7=Sunday.
func ISOWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

func WeekdayName(d int) string {
	return weekdayNames[d]
}

// CanonicalWeekStart normalizes any date to the Monday of its week at
// midnight. Cache keys and grid requests must agree on this anchor.
func CanonicalWeekStart(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return day.AddDate(0, 0, -(ISOWeekday(day) - 1))
}
