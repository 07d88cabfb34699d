package repositories

import (
	"context"
	"errors"
	"strings"

	"github.com/amalbenali/glowshop/app/models"
	"gorm.io/gorm"
)

type ShippingRateRepository interface {
	FindActiveByCity(ctx context.Context, city string) (*models.ShippingRate, error)
	GetActive(ctx context.Context, search string) ([]models.ShippingRate, error)
	GetAll(ctx context.Context, search string) ([]models.ShippingRate, error)
	GetByID(ctx context.Context, id string) (*models.ShippingRate, error)
	Create(ctx context.Context, rate *models.ShippingRate) error
	Update(ctx context.Context, rate *models.ShippingRate) error
	Delete(ctx context.Context, id string) error
}

type gormShippingRateRepository struct {
	db *gorm.DB
}

func NewShippingRateRepository(db *gorm.DB) ShippingRateRepository {
	return &gormShippingRateRepository{db: db}
}

// FindActiveByCity does a case-insensitive exact match on the city name.
// Returns (nil, nil) when no active rate covers the city.
func (r *gormShippingRateRepository) FindActiveByCity(ctx context.Context, city string) (*models.ShippingRate, error) {
	var rate models.ShippingRate
	err := r.db.WithContext(ctx).
		Where("LOWER(city) = ? AND active = ?", strings.ToLower(strings.TrimSpace(city)), true).
		First(&rate).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rate, nil
}

func (r *gormShippingRateRepository) GetActive(ctx context.Context, search string) ([]models.ShippingRate, error) {
	return r.list(ctx, true, search)
}

func (r *gormShippingRateRepository) GetAll(ctx context.Context, search string) ([]models.ShippingRate, error) {
	return r.list(ctx, false, search)
}

func (r *gormShippingRateRepository) list(ctx context.Context, activeOnly bool, search string) ([]models.ShippingRate, error) {
	var rates []models.ShippingRate

	query := r.db.WithContext(ctx).Model(&models.ShippingRate{})
	if activeOnly {
		query = query.Where("active = ?", true)
	}
	if search != "" {
		query = query.Where("LOWER(city) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	if err := query.Order("city ASC").Find(&rates).Error; err != nil {
		return nil, err
	}
	return rates, nil
}

func (r *gormShippingRateRepository) GetByID(ctx context.Context, id string) (*models.ShippingRate, error) {
	var rate models.ShippingRate
	err := r.db.WithContext(ctx).First(&rate, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rate, nil
}

func (r *gormShippingRateRepository) Create(ctx context.Context, rate *models.ShippingRate) error {
	return r.db.WithContext(ctx).Create(rate).Error
}

func (r *gormShippingRateRepository) Update(ctx context.Context, rate *models.ShippingRate) error {
	return r.db.WithContext(ctx).Save(rate).Error
}

func (r *gormShippingRateRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.ShippingRate{}, "id = ?", id).Error
}
