package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Appointment struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	ProviderID uint     `gorm:"not null;index:idx_appointments_provider_date" json:"provider_id"`
	Provider   Provider `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`

	ServiceID *uint    `json:"service_id"`
	Service   *Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	Date        string `gorm:"size:10;not null;index:idx_appointments_provider_date" json:"date"`
	StartMinute int    `gorm:"not null" json:"start_minute"`
	EndMinute   int    `gorm:"not null" json:"end_minute"`

	Status string `gorm:"size:20;not null;default:'pending';index" json:"status"`

	ClientRef   string  `gorm:"size:64" json:"client_ref"`
	ClientName  string  `gorm:"size:100" json:"client_name"`
	ClientPhone string  `gorm:"size:20" json:"client_phone"`
	ClientEmail string  `gorm:"size:100" json:"client_email"`
	Price       float64 `json:"price"`
	Source      string  `gorm:"size:20" json:"source"`
	Notes       string  `gorm:"size:255" json:"notes"`

	ConfirmedAt *time.Time `json:"confirmed_at"`
	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return nil
}
