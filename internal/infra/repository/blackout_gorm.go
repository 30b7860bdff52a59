package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type BlackoutGormRepository struct {
	db *gorm.DB
}

func NewBlackoutGormRepository(db *gorm.DB) *BlackoutGormRepository {
	return &BlackoutGormRepository{db: db}
}

// GetBlackouts skips partial windows whose times do not parse.
func (r *BlackoutGormRepository) GetBlackouts(
	ctx context.Context,
	providerID uint,
	date string,
) ([]domain.Blackout, error) {

	var rows []models.BlackoutWindow
	if err := r.db.WithContext(ctx).
		Where("provider_id = ? AND date = ?", providerID, date).
		Find(&rows).Error; err != nil {
		return nil, domain.Unavailable("get_blackouts", err)
	}

	out := make([]domain.Blackout, 0, len(rows))
	for _, row := range rows {
		if row.AllDay {
			out = append(out, domain.Blackout{AllDay: true})
			continue
		}
		iv, err := domain.ParseInterval(row.StartTime, row.EndTime)
		if err != nil {
			continue
		}
		out = append(out, domain.Blackout{Start: iv.Start, End: iv.End})
	}
	return out, nil
}

func (r *BlackoutGormRepository) AddBlackout(
	ctx context.Context,
	b *models.BlackoutWindow,
) error {
	return domain.Unavailable("add_blackout", r.db.WithContext(ctx).Create(b).Error)
}

// ListBlackouts returns the provider's windows dated fromDate or later.
func (r *BlackoutGormRepository) ListBlackouts(
	ctx context.Context,
	providerID uint,
	fromDate string,
) ([]models.BlackoutWindow, error) {

	var rows []models.BlackoutWindow
	if err := r.db.WithContext(ctx).
		Where("provider_id = ? AND date >= ?", providerID, fromDate).
		Order("date ASC").
		Order("start_time ASC").
		Find(&rows).Error; err != nil {
		return nil, domain.Unavailable("list_blackouts", err)
	}
	return rows, nil
}

func (r *BlackoutGormRepository) DeleteBlackout(
	ctx context.Context,
	providerID uint,
	id uint,
) error {

	res := r.db.WithContext(ctx).
		Where("id = ? AND provider_id = ?", id, providerID).
		Delete(&models.BlackoutWindow{})

	if res.Error != nil {
		return domain.Unavailable("delete_blackout", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrBlackoutNotFound
	}
	return nil
}

var _ domain.BlackoutRegistry = (*BlackoutGormRepository)(nil)
