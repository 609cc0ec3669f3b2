package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Money goes over the wire as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Base carries the columns every table shares.
type Base struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BaseRecord exposes the shared columns so generic handlers can carry the
// identity of a stored row over to a replacement value.
func (b *Base) BaseRecord() *Base { return b }

type User struct {
	Base
	FirstName string `json:"firstName" gorm:"size:50;not null"`
	LastName  string `json:"lastName" gorm:"size:50;not null"`
	Mobile    string `json:"mobile" gorm:"size:20;uniqueIndex;not null"`
	Email     string `json:"email" gorm:"size:100;uniqueIndex;not null"`
	Posts     []Post `json:"posts,omitempty" gorm:"constraint:OnDelete:CASCADE"`
}

// DisplayName is the name printed on invoices.
func (u User) DisplayName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

type Post struct {
	Base
	Title   string `json:"title" gorm:"size:100;not null"`
	Content string `json:"content" gorm:"size:500"`
	UserID  uint   `json:"userId" gorm:"index;not null"`
}

type Purchase struct {
	Base
	Item     string          `json:"item" gorm:"size:100;not null"`
	Quantity int             `json:"quantity" gorm:"not null;check:quantity >= 0"`
	Price    decimal.Decimal `json:"price" gorm:"type:decimal(12,2);not null"`
	UserID   uint            `json:"userId" gorm:"index;not null"`
	User     *User           `json:"-"`
	Invoice  *Invoice        `json:"invoice,omitempty" gorm:"constraint:OnDelete:CASCADE"`
}

// Invoice is derived from a Purchase when it is created and never written by
// clients. CustomerName and CustomerEmail are a snapshot of the user at
// purchase time.
type Invoice struct {
	Base
	Number        string          `json:"number" gorm:"size:40;uniqueIndex;not null"`
	PurchaseID    uint            `json:"purchaseId" gorm:"uniqueIndex;not null"`
	SubTotal      decimal.Decimal `json:"subTotal" gorm:"type:decimal(12,2);not null"`
	Tax           decimal.Decimal `json:"tax" gorm:"type:decimal(12,2);not null"`
	Total         decimal.Decimal `json:"total" gorm:"type:decimal(12,2);not null"`
	CustomerName  string          `json:"customerName" gorm:"size:101"`
	CustomerEmail string          `json:"customerEmail" gorm:"size:100"`
}
