package fakers

import (
	"fmt"
	"math/rand"

	"github.com/amalbenali/glowshop/app/models"
	"github.com/go-faker/faker/v4"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var categories = []string{
	models.CategoryFace,
	models.CategoryLips,
	models.CategoryEyes,
	models.CategoryHair,
	models.CategoryBody,
	models.CategoryAcne,
	models.CategoryBrightening,
}

var brands = []string{"SkinGlow", "Marjane Beauty", "Atlas Derm", "Nectarine", "Oriane"}

func ProductFaker(db *gorm.DB) *models.Product {
	name := faker.Word() + " " + faker.Word()
	price := fakePrice(80, 600)

	product := &models.Product{
		ID:          uuid.New().String(),
		Name:        name,
		Slug:        slug.Make(name + "-" + uuid.NewString()[:6]),
		Description: faker.Paragraph(),
		Brand:       brands[rand.Intn(len(brands))],
		Category:    categories[rand.Intn(len(categories))],
		Price:       price,
		Stock:       rand.Intn(10) > 1,
	}

	// Roughly a third of the catalog runs a promotion.
	if rand.Intn(3) == 0 {
		promo := price.Mul(decimal.NewFromFloat(0.8)).Round(2)
		product.NewPrice = &promo
	}

	sizes := []int{50, 100, 250, 500}
	numVariants := rand.Intn(3) + 1
	for i := 0; i < numVariants && i < len(sizes); i++ {
		size := sizes[i]
		product.Variants = append(product.Variants, models.ProductVariant{
			Label:   fmt.Sprintf("%d ml", size),
			SizeML:  &size,
			Price:   price.Mul(decimal.NewFromInt(int64(i + 1))).Round(2),
			InStock: true,
			Sku:     slug.Make(fmt.Sprintf("%s-%d", name, size)),
		})
	}

	return product
}

func ShippingRateFaker(city string, price int64) *models.ShippingRate {
	return &models.ShippingRate{
		City:   city,
		Price:  decimal.NewFromInt(price),
		Active: true,
	}
}

func fakePrice(min, max int) decimal.Decimal {
	value := float64(min) + rand.Float64()*float64(max-min)
	return decimal.NewFromFloat(value).Round(2)
}
