package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

func isPostgres(tx *gorm.DB) bool {
	return tx.Dialector.Name() == "postgres"
}

// forUpdate adds a row lock where the dialect supports one.
func forUpdate(tx *gorm.DB) *gorm.DB {
	if isPostgres(tx) {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

func dayLockKey(providerID uint, date string) string {
	return fmt.Sprintf("provider:%d:%s", providerID, date)
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *AppointmentGormRepository) GetActiveAppointments(
	ctx context.Context,
	providerID uint,
	date string,
) ([]domain.Interval, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Select("start_minute", "end_minute").
		Where(
			"provider_id = ? AND date = ? AND status IN ?",
			providerID, date, domain.ActiveStatuses(),
		).
		Order("start_minute ASC").
		Find(&apps).Error; err != nil {
		return nil, domain.Unavailable("get_active_appointments", err)
	}

	busy := make([]domain.Interval, 0, len(apps))
	for _, ap := range apps {
		busy = append(busy, domain.Interval{Start: ap.StartMinute, End: ap.EndMinute})
	}
	return busy, nil
}

// --------------------------------------------------
// Appointment (create / conflict)
// --------------------------------------------------

// Reserve inserts ap unless an active appointment of the same provider on the
// same date overlaps it. Check and insert share one transaction; on postgres a
// transaction-scoped advisory lock serialises writers of the provider/day.
func (r *AppointmentGormRepository) Reserve(
	ctx context.Context,
	ap *models.Appointment,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if isPostgres(tx) {
			if err := tx.Exec(
				"SELECT pg_advisory_xact_lock(hashtext(?))",
				dayLockKey(ap.ProviderID, ap.Date),
			).Error; err != nil {
				return err
			}
		}

		var clashing []string
		if err := forUpdate(tx).
			Model(&models.Appointment{}).
			Where(
				"provider_id = ? AND date = ? AND status IN ? AND start_minute < ? AND end_minute > ?",
				ap.ProviderID,
				ap.Date,
				domain.ActiveStatuses(),
				ap.EndMinute,
				ap.StartMinute,
			).
			Pluck("id", &clashing).Error; err != nil {
			return err
		}

		if len(clashing) > 0 {
			return domain.ErrSlotConflict
		}

		return tx.Create(ap).Error
	})

	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrSlotConflict), httperr.IsExclusionConflict(err):
		return domain.ErrSlotConflict
	default:
		return domain.Unavailable("reserve", err)
	}
}

// --------------------------------------------------
// Appointment (state change)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	appointmentID string,
) (*models.Appointment, error) {

	var ap models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Service").
		Where("id = ?", appointmentID).
		First(&ap).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrAppointmentNotFound
	}
	if err != nil {
		return nil, domain.Unavailable("get_appointment", err)
	}
	return &ap, nil
}

// ApplyTransition loads the provider's appointment under a row lock, lets
// apply mutate it and saves the result. Nothing is written when apply fails.
func (r *AppointmentGormRepository) ApplyTransition(
	ctx context.Context,
	appointmentID string,
	providerID uint,
	apply func(ap *models.Appointment) error,
) (*models.Appointment, error) {

	var ap models.Appointment

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := forUpdate(tx).
			Where("id = ? AND provider_id = ?", appointmentID, providerID).
			First(&ap).Error; err != nil {
			return err
		}

		if err := apply(&ap); err != nil {
			return err
		}

		return tx.Save(&ap).Error
	})

	switch {
	case err == nil:
		return &ap, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, domain.ErrAppointmentNotFound
	case httperr.BusinessCode(err) != "":
		return nil, err
	default:
		return nil, domain.Unavailable("apply_transition", err)
	}
}

// --------------------------------------------------
// Listings
// --------------------------------------------------

func (r *AppointmentGormRepository) ListAppointmentsForDate(
	ctx context.Context,
	providerID uint,
	date string,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Service").
		Where("provider_id = ? AND date = ?", providerID, date).
		Order("start_minute ASC").
		Find(&apps).Error; err != nil {
		return nil, domain.Unavailable("list_appointments_for_date", err)
	}
	return apps, nil
}

// ListAppointmentsForPeriod returns appointments dated fromDate..toDate
// inclusive. A nil statuses slice means any status.
func (r *AppointmentGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	providerID uint,
	fromDate string,
	toDate string,
	statuses []string,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("Service").
		Where(
			"provider_id = ? AND date >= ? AND date <= ?",
			providerID, fromDate, toDate,
		)

	if statuses != nil {
		q = q.Where("status IN ?", statuses)
	}

	var apps []models.Appointment
	if err := q.
		Order("date ASC").
		Order("start_minute ASC").
		Find(&apps).Error; err != nil {
		return nil, domain.Unavailable("list_appointments_for_period", err)
	}
	return apps, nil
}

// Compile-time check
var _ domain.Ledger = (*AppointmentGormRepository)(nil)
