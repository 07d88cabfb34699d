package calc

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// DiscountPercent returns the promo discount as a whole percent,
// round((base-promo)/base*100). A non-positive base yields 0.
func DiscountPercent(base, promo decimal.Decimal) int64 {
	if base.Sign() <= 0 {
		return 0
	}
	return base.Sub(promo).Div(base).Mul(hundred).Round(0).IntPart()
}

// ApplyPercentDiscount reduces price by a whole percent and rounds half-up
// to two decimal places.
func ApplyPercentDiscount(price decimal.Decimal, percent int64) decimal.Decimal {
	pct := decimal.NewFromInt(percent).Div(hundred)
	return price.Mul(decimal.NewFromInt(1).Sub(pct)).Round(2)
}

// LineTotal is unit price times quantity, rounded to two decimal places.
func LineTotal(unitPrice decimal.Decimal, qty int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(qty))).Round(2)
}

func CalculateGrandTotal(itemsTotal, shippingPrice decimal.Decimal) decimal.Decimal {
	return itemsTotal.Add(shippingPrice).Round(2)
}
