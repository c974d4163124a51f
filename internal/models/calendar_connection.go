package models

import "time"

// CalendarConnection links a provider to an external calendar. A provider
// without an active connection is simply "not connected"; sync refuses to run.
type CalendarConnection struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	ProviderID uint `gorm:"uniqueIndex" json:"provider_id"`

	CalendarID  string `gorm:"size:255;not null" json:"calendar_id"`
	AccessToken string `gorm:"size:512" json:"-"`
	Active      bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
