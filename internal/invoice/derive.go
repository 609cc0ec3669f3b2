// Package invoice derives invoices from purchases and renders invoice
// documents as PDF.
package invoice

import (
	"strings"

	"invoicing-backend/internal/apperror"
	"invoicing-backend/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var taxRate = decimal.New(15, -2)

// TaxRate returns the fixed sales tax applied to every purchase, 0.15.
func TaxRate() decimal.Decimal { return taxRate }

type Amounts struct {
	SubTotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// Compute returns price × quantity, the tax on it rounded to cents, and
// their sum.
func Compute(price decimal.Decimal, quantity int) Amounts {
	sub := price.Mul(decimal.NewFromInt(int64(quantity)))
	tax := sub.Mul(taxRate).Round(2)
	return Amounts{SubTotal: sub, Tax: tax, Total: sub.Add(tax)}
}

// Derive builds the invoice for a stored purchase, snapshotting the
// customer's name and email as they are now.
func Derive(p models.Purchase, customer models.User) models.Invoice {
	a := Compute(p.Price, p.Quantity)
	return models.Invoice{
		Number:        NewNumber(),
		PurchaseID:    p.ID,
		SubTotal:      a.SubTotal,
		Tax:           a.Tax,
		Total:         a.Total,
		CustomerName:  customer.DisplayName(),
		CustomerEmail: customer.Email,
	}
}

// NewNumber returns a human-facing invoice number such as INV-3F2A9C1B7D04.
func NewNumber() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "INV-" + strings.ToUpper(id[:12])
}

// Checkout stores p and its invoice in one transaction. It fails with a
// not-found error when p.UserID does not name a user, and nothing is
// persisted unless both rows are.
func Checkout(db *gorm.DB, p *models.Purchase) (models.Invoice, error) {
	var inv models.Invoice
	err := db.Transaction(func(tx *gorm.DB) error {
		var customer models.User
		if err := tx.First(&customer, p.UserID).Error; err != nil {
			return apperror.FromDB(err, "user")
		}
		if err := tx.Omit(clause.Associations).Create(p).Error; err != nil {
			return apperror.FromDB(err, "purchase")
		}
		inv = Derive(*p, customer)
		if err := tx.Create(&inv).Error; err != nil {
			return apperror.FromDB(err, "invoice")
		}
		return nil
	})
	if err != nil {
		return models.Invoice{}, err
	}
	p.Invoice = &inv
	return inv, nil
}
