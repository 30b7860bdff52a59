package dto

import (
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// AppointmentDTO is the full view returned after a create or a status change.
type AppointmentDTO struct {
	AppointmentListDTO

	ServiceID   *uint      `json:"service_id,omitempty"`
	ClientEmail string     `json:"client_email,omitempty"`
	Notes       string     `json:"notes,omitempty"`
	ConfirmedAt *time.Time `json:"confirmed_at,omitempty"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

func NewAppointmentDTO(ap *models.Appointment) AppointmentDTO {
	return AppointmentDTO{
		AppointmentListDTO: NewAppointmentListDTO(*ap),
		ServiceID:          ap.ServiceID,
		ClientEmail:        ap.ClientEmail,
		Notes:              ap.Notes,
		ConfirmedAt:        ap.ConfirmedAt,
		CancelledAt:        ap.CancelledAt,
		CompletedAt:        ap.CompletedAt,
		CreatedAt:          ap.CreatedAt,
	}
}

type AvailabilityDTO struct {
	ProviderID uint     `json:"provider_id"`
	Date       string   `json:"date"`
	Duration   int      `json:"duration_minutes,omitempty"`
	Slots      []string `json:"slots"`
}
