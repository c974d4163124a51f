package models

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

type Provider struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`

	// Weekly envelope: active ISO weekdays (1=Mon .. 7=Sun) as a comma
	// separated list, one start/end pair shared by every active day.
	WorkingDays string `gorm:"size:20" json:"working_days"`
	StartTime   string `gorm:"size:5" json:"start_time"`
	EndTime     string `gorm:"size:5" json:"end_time"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ActiveWeekdays parses WorkingDays into a weekday set.
func (p *Provider) ActiveWeekdays() map[int]bool {
	days := map[int]bool{}
	for _, part := range strings.Split(p.WorkingDays, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if d, err := strconv.Atoi(part); err == nil && d >= 1 && d <= 7 {
			days[d] = true
		}
	}
	return days
}

func (p *Provider) SetActiveWeekdays(days []int) {
	uniq := map[int]bool{}
	for _, d := range days {
		if d >= 1 && d <= 7 {
			uniq[d] = true
		}
	}

	var sorted []int
	for d := range uniq {
		sorted = append(sorted, d)
	}
	sort.Ints(sorted)

	var parts []string
	for _, d := range sorted {
		parts = append(parts, strconv.Itoa(d))
	}
	p.WorkingDays = strings.Join(parts, ",")
}
