package services

import (
	"sort"

	"github.com/amalbenali/glowshop/app/models"
	"github.com/amalbenali/glowshop/app/utils/calc"
	"github.com/shopspring/decimal"
)

// PromoResult describes which variant a product-level promotion lands on and
// what that variant costs after the discount.
type PromoResult struct {
	VariantID       string
	DiscountedPrice decimal.Decimal
}

// HasPromotion reports whether a product's promo price is set and strictly
// below its base price.
func HasPromotion(product *models.Product) bool {
	return product.NewPrice != nil && product.NewPrice.LessThan(product.Price)
}

// DiscountPercent is the product's advertised discount as a whole percent.
// Zero when no promotion is active.
func DiscountPercent(product *models.Product) int64 {
	if !HasPromotion(product) {
		return 0
	}
	return calc.DiscountPercent(product.Price, *product.NewPrice)
}

// ResolvePromotion picks the single variant a product promotion applies to:
// the one with the largest size, falling back to the highest-priced variant
// when no variant declares a size. Variants are enumerated ascending by ID
// and ties keep the first encountered, so the result is stable across calls.
// A promotion with no variants resolves to nothing.
func ResolvePromotion(product *models.Product, variants []models.ProductVariant) *PromoResult {
	if !HasPromotion(product) || len(variants) == 0 {
		return nil
	}

	ordered := make([]models.ProductVariant, len(variants))
	copy(ordered, variants)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].ID < ordered[j].ID
	})

	var best *models.ProductVariant
	for i := range ordered {
		v := &ordered[i]
		if v.SizeML == nil || *v.SizeML == 0 {
			continue
		}
		if best == nil || *v.SizeML > *best.SizeML {
			best = v
		}
	}
	if best == nil {
		for i := range ordered {
			v := &ordered[i]
			if best == nil || v.Price.GreaterThan(best.Price) {
				best = v
			}
		}
	}

	pct := calc.DiscountPercent(product.Price, *product.NewPrice)
	return &PromoResult{
		VariantID:       best.ID,
		DiscountedPrice: calc.ApplyPercentDiscount(best.Price, pct),
	}
}

// UnitPriceFor returns the checkout price of one unit. With a variant
// selected, only the promo variant gets the discounted price; everything
// else sells at its listed price. Without a variant, the product's promo
// price applies when active.
func UnitPriceFor(product *models.Product, variants []models.ProductVariant, variantID string) (decimal.Decimal, error) {
	if variantID == "" {
		if HasPromotion(product) {
			return *product.NewPrice, nil
		}
		return product.Price, nil
	}

	var variant *models.ProductVariant
	for i := range variants {
		if variants[i].ID == variantID {
			variant = &variants[i]
			break
		}
	}
	if variant == nil || variant.ProductID != product.ID {
		return decimal.Zero, ErrInvalidReference
	}

	if promo := ResolvePromotion(product, variants); promo != nil && promo.VariantID == variant.ID {
		return promo.DiscountedPrice, nil
	}
	return variant.Price, nil
}
