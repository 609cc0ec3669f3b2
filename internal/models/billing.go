package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	BillingInitiated  = "initiated"
	BillingAuthorized = "authorized"
	BillingFailed     = "failed"
	BillingPaid       = "paid"
	BillingCanceled   = "canceled"
	BillingRefunded   = "refunded"
)

// BillingDetails is a payment lifecycle record. Discount and Tax are
// percentages on a 0-100 scale.
type BillingDetails struct {
	Base
	UserID           uint            `json:"userId" gorm:"index"`
	Amount           decimal.Decimal `json:"amount" gorm:"type:decimal(12,2);not null"`
	Discount         decimal.Decimal `json:"discount" gorm:"type:decimal(5,2);not null;default:0"`
	Tax              decimal.Decimal `json:"tax" gorm:"type:decimal(5,2);not null;default:0"`
	TotalAmount      decimal.Decimal `json:"totalAmount" gorm:"type:decimal(12,2);not null"`
	Currency         string          `json:"currency" gorm:"size:3;not null"`
	Status           string          `json:"status" gorm:"size:20;index;not null"`
	OrderType        string          `json:"orderType" gorm:"size:50"`
	SubscriptionType string          `json:"subscriptionType" gorm:"size:50"`
	InitiatedAt      *time.Time      `json:"initiatedAt"`
	AuthorizedAt     *time.Time      `json:"authorizedAt"`
	FailedAt         *time.Time      `json:"failedAt"`
	PaidAt           *time.Time      `json:"paidAt"`
	CanceledAt       *time.Time      `json:"canceledAt"`
	RefundedAt       *time.Time      `json:"refundedAt"`
}

func (BillingDetails) TableName() string { return "billing_details" }

// TerminalStates lists which of paid, failed and canceled have a timestamp.
func (b BillingDetails) TerminalStates() []string {
	var set []string
	if b.PaidAt != nil {
		set = append(set, BillingPaid)
	}
	if b.FailedAt != nil {
		set = append(set, BillingFailed)
	}
	if b.CanceledAt != nil {
		set = append(set, BillingCanceled)
	}
	return set
}
