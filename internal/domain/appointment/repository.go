package appointment

import (
	"context"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// ScheduleStore reads the recurring weekly working hours.
type ScheduleStore interface {
	// GetWorkingWindow returns nil when the provider does not work on weekday.
	GetWorkingWindow(
		ctx context.Context,
		providerID uint,
		weekday int,
	) (*WorkingWindow, error)
}

type BlackoutRegistry interface {
	GetBlackouts(
		ctx context.Context,
		providerID uint,
		date string,
	) ([]Blackout, error)
}

// Ledger is the shared appointment store. Reserve and ApplyTransition are the
// only mutating calls and each runs as one atomic read-modify-write.
type Ledger interface {
	// -------- Availability --------
	GetActiveAppointments(
		ctx context.Context,
		providerID uint,
		date string,
	) ([]Interval, error)

	// -------- Appointment (create / conflict) --------
	Reserve(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Appointment (state change) --------
	GetAppointment(
		ctx context.Context,
		appointmentID string,
	) (*models.Appointment, error)

	ApplyTransition(
		ctx context.Context,
		appointmentID string,
		providerID uint,
		apply func(ap *models.Appointment) error,
	) (*models.Appointment, error)

	// -------- Listings --------
	ListAppointmentsForDate(
		ctx context.Context,
		providerID uint,
		date string,
	) ([]models.Appointment, error)

	ListAppointmentsForPeriod(
		ctx context.Context,
		providerID uint,
		fromDate string,
		toDate string,
		statuses []string,
	) ([]models.Appointment, error)
}

type Catalog interface {
	GetService(
		ctx context.Context,
		serviceID uint,
	) (*models.Service, error)
}
