package models

import "time"

type WeeklySchedule struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	ProviderID uint `gorm:"not null;uniqueIndex:idx_weekly_schedule_provider_weekday" json:"provider_id"`

	Weekday int `gorm:"not null;uniqueIndex:idx_weekly_schedule_provider_weekday" json:"weekday"`

	StartTime   string `gorm:"size:5" json:"start_time"`
	EndTime     string `gorm:"size:5" json:"end_time"`
	BreakStart  string `gorm:"size:5" json:"break_start"`
	BreakEnd    string `gorm:"size:5" json:"break_end"`
	IsAvailable bool   `json:"is_available"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (WeeklySchedule) TableName() string {
	return "weekly_schedules"
}
