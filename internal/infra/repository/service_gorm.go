package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type ServiceGormRepository struct {
	db *gorm.DB
}

func NewServiceGormRepository(db *gorm.DB) *ServiceGormRepository {
	return &ServiceGormRepository{db: db}
}

// GetService returns only active services; anything else is not bookable.
func (r *ServiceGormRepository) GetService(
	ctx context.Context,
	serviceID uint,
) (*models.Service, error) {

	var s models.Service
	err := r.db.WithContext(ctx).
		Where("id = ? AND active = ?", serviceID, true).
		First(&s).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrServiceNotFound
	}
	if err != nil {
		return nil, domain.Unavailable("get_service", err)
	}
	return &s, nil
}

func (r *ServiceGormRepository) ListActive(ctx context.Context) ([]models.Service, error) {
	var list []models.Service
	if err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("sort_order ASC").
		Order("name ASC").
		Find(&list).Error; err != nil {
		return nil, domain.Unavailable("list_services", err)
	}
	return list, nil
}

var _ domain.Catalog = (*ServiceGormRepository)(nil)
