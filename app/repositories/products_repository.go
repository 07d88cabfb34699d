package repositories

import (
	"context"
	"errors"
	"strings"

	"github.com/amalbenali/glowshop/app/models"
	"gorm.io/gorm"
)

type ProductFilters struct {
	Category string
	Brand    string
	Search   string
}

type ProductRepositoryImpl interface {
	GetProducts(ctx context.Context, filters ProductFilters) ([]models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	GetBySlug(ctx context.Context, slug string) (*models.Product, error)
	GetBrands(ctx context.Context) ([]string, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	ReplaceVariants(ctx context.Context, productID string, variants []models.ProductVariant) error
	Delete(ctx context.Context, id string) error
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepositoryImpl {
	return &productRepository{db}
}

func (p *productRepository) GetProducts(ctx context.Context, filters ProductFilters) ([]models.Product, error) {
	var products []models.Product

	query := p.db.WithContext(ctx).Model(&models.Product{}).Preload("Variants")

	if filters.Category != "" {
		query = query.Where("category = ?", strings.ToLower(strings.TrimSpace(filters.Category)))
	}
	if filters.Brand != "" {
		query = query.Where("LOWER(brand) = ?", strings.ToLower(filters.Brand))
	}
	if filters.Search != "" {
		keyword := "%" + strings.ToLower(filters.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", keyword, keyword)
	}

	if err := query.Order("created_at DESC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (p *productRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	err := p.db.WithContext(ctx).
		Preload("Variants", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		First(&product, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (p *productRepository) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var product models.Product
	err := p.db.WithContext(ctx).
		Preload("Variants", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		First(&product, "slug = ?", slug).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (p *productRepository) GetBrands(ctx context.Context) ([]string, error) {
	var brands []string
	err := p.db.WithContext(ctx).Model(&models.Product{}).
		Where("brand <> ''").
		Distinct("brand").
		Order("brand ASC").
		Pluck("brand", &brands).Error
	if err != nil {
		return nil, err
	}
	return brands, nil
}

func (p *productRepository) Create(ctx context.Context, product *models.Product) error {
	return p.db.WithContext(ctx).Create(product).Error
}

func (p *productRepository) Update(ctx context.Context, product *models.Product) error {
	return p.db.WithContext(ctx).Save(product).Error
}

// ReplaceVariants swaps a product's whole variant list in one transaction,
// mirroring how the admin form submits variants as a full set.
func (p *productRepository) ReplaceVariants(ctx context.Context, productID string, variants []models.ProductVariant) error {
	return p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", productID).Delete(&models.ProductVariant{}).Error; err != nil {
			return err
		}
		if len(variants) == 0 {
			return nil
		}
		for i := range variants {
			variants[i].ProductID = productID
		}
		return tx.Create(&variants).Error
	})
}

func (p *productRepository) Delete(ctx context.Context, id string) error {
	return p.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id).Error
}
