package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type ScheduleGormRepository struct {
	db *gorm.DB
}

func NewScheduleGormRepository(db *gorm.DB) *ScheduleGormRepository {
	return &ScheduleGormRepository{db: db}
}

// GetWorkingWindow returns nil for days off and for rows whose times do not
// parse. With duplicate rows for a weekday the lowest id wins.
func (r *ScheduleGormRepository) GetWorkingWindow(
	ctx context.Context,
	providerID uint,
	weekday int,
) (*domain.WorkingWindow, error) {

	var ws models.WeeklySchedule
	err := r.db.WithContext(ctx).
		Where("provider_id = ? AND weekday = ? AND is_available = ?", providerID, weekday, true).
		Order("id ASC").
		First(&ws).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, domain.Unavailable("get_working_window", err)
	}

	return windowFromRow(ws), nil
}

func windowFromRow(ws models.WeeklySchedule) *domain.WorkingWindow {
	iv, err := domain.ParseInterval(ws.StartTime, ws.EndTime)
	if err != nil {
		return nil
	}

	w := &domain.WorkingWindow{Start: iv.Start, End: iv.End}

	if ws.BreakStart != "" && ws.BreakEnd != "" {
		if br, err := domain.ParseInterval(ws.BreakStart, ws.BreakEnd); err == nil {
			w.Break = &br
		}
	}
	return w
}

func (r *ScheduleGormRepository) ListWeek(
	ctx context.Context,
	providerID uint,
) ([]models.WeeklySchedule, error) {

	var rows []models.WeeklySchedule
	if err := r.db.WithContext(ctx).
		Where("provider_id = ?", providerID).
		Order("weekday ASC").
		Find(&rows).Error; err != nil {
		return nil, domain.Unavailable("list_week", err)
	}
	return rows, nil
}

// ReplaceWeek swaps the provider's whole weekly schedule in one transaction.
func (r *ScheduleGormRepository) ReplaceWeek(
	ctx context.Context,
	providerID uint,
	rows []models.WeeklySchedule,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("provider_id = ?", providerID).
			Delete(&models.WeeklySchedule{}).Error; err != nil {
			return err
		}

		for i := range rows {
			rows[i].ID = 0
			rows[i].ProviderID = providerID
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})

	return domain.Unavailable("replace_week", err)
}

var _ domain.ScheduleStore = (*ScheduleGormRepository)(nil)
