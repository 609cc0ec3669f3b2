package invoice

import (
	"invoicing-backend/internal/models"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// BillingTotal applies tax and then discount to a billing record's amount,
// both read as percentages on a 0-100 scale:
//
//	t = amount + amount*tax/100
//	t = t - t*discount/100
//
// This is not the purchase invoice formula (fixed 0.15 rate on a 0-1 scale).
func BillingTotal(b models.BillingDetails) decimal.Decimal {
	total := b.Amount.Add(b.Amount.Mul(b.Tax).Div(hundred))
	total = total.Sub(total.Mul(b.Discount).Div(hundred))
	return total.Round(2)
}
