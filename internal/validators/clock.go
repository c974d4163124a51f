package validators

import "time"

// IsClock accepts zero-padded 24h HH:MM.
func IsClock(hm string) bool {
	if len(hm) != 5 {
		return false
	}
	_, err := time.Parse("15:04", hm)
	return err == nil
}

// IsDate accepts ISO YYYY-MM-DD.
func IsDate(d string) bool {
	_, err := time.Parse("2006-01-02", d)
	return err == nil
}

// ClockBefore reports a < b for two valid HH:MM strings.
func ClockBefore(a, b string) bool {
	return a < b
}
