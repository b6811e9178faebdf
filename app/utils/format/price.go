package format

import (
	"github.com/leekchan/accounting"
	"github.com/shopspring/decimal"
)

var ac = accounting.Accounting{Symbol: "Rp ", Thousand: "."}

// FormatPrice renders an opaque integer amount for display. The stored
// amount itself is never converted; formatting is cosmetic only.
func FormatPrice(amount int64) string {
	return ac.FormatMoneyDecimal(decimal.NewFromInt(amount))
}
