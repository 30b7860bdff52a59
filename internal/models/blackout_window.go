package models

import "time"

type BlackoutWindow struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	ProviderID uint `gorm:"not null;index:idx_blackout_provider_date" json:"provider_id"`

	Date string `gorm:"size:10;not null;index:idx_blackout_provider_date" json:"date"`

	AllDay    bool   `json:"all_day"`
	StartTime string `gorm:"size:5" json:"start_time,omitempty"`
	EndTime   string `gorm:"size:5" json:"end_time,omitempty"`
	Reason    string `gorm:"size:255" json:"reason"`

	CreatedAt time.Time `json:"created_at"`
}
