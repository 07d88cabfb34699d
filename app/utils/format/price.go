package format

import (
	"github.com/leekchan/accounting"
	"github.com/shopspring/decimal"
)

var dirham = accounting.Accounting{
	Symbol:    "DH",
	Precision: 2,
	Thousand:  " ",
	Decimal:   ",",
	Format:    "%v %s",
}

// FormatDH renders an amount the way the storefront displays it, e.g.
// "1 299,90 DH".
func FormatDH(amount decimal.Decimal) string {
	return dirham.FormatMoneyDecimal(amount)
}
