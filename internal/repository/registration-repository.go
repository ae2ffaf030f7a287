package repository

import (
	"context"

	"github.com/ieeespac/spac_site/internal/domain"
	"gorm.io/gorm"
)

type RegistrationRepository interface {
	Create(ctx context.Context, registration *domain.Registration) error
	FindByPublicID(ctx context.Context, publicID string) (*domain.Registration, error)
	List(ctx context.Context, limit, offset int) ([]domain.Registration, error)
	Count(ctx context.Context) (int64, error)
}

type registrationRepository struct {
	db *gorm.DB
}

func NewRegistrationRepository(db *gorm.DB) RegistrationRepository {
	return &registrationRepository{db: db}
}

func (r *registrationRepository) Create(ctx context.Context, registration *domain.Registration) error {
	return r.db.WithContext(ctx).Create(registration).Error
}

func (r *registrationRepository) FindByPublicID(ctx context.Context, publicID string) (*domain.Registration, error) {
	var registration domain.Registration
	if err := r.db.WithContext(ctx).Where("public_id = ?", publicID).First(&registration).Error; err != nil {
		return nil, err
	}
	return &registration, nil
}

func (r *registrationRepository) List(ctx context.Context, limit, offset int) ([]domain.Registration, error) {
	var registrations []domain.Registration

	err := r.db.WithContext(ctx).Order("created_at ASC").Order("id ASC").Limit(limit).Offset(offset).Find(&registrations).Error
	if err != nil {
		return nil, err
	}
	return registrations, nil
}

func (r *registrationRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&domain.Registration{}).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}
