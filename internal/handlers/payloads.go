package handlers

import (
	"strings"
	"time"

	"invoicing-backend/internal/apperror"
	"invoicing-backend/internal/invoice"
	"invoicing-backend/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type userPayload struct {
	FirstName string `json:"firstName" binding:"required,max=50"`
	LastName  string `json:"lastName" binding:"required,max=50"`
	Mobile    string `json:"mobile" binding:"required,max=20"`
	Email     string `json:"email" binding:"required,email,max=100"`
}

func (p userPayload) toModel(*gorm.DB) (models.User, error) {
	return models.User{
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Mobile:    p.Mobile,
		Email:     p.Email,
	}, nil
}

type postPayload struct {
	Title   string `json:"title" binding:"required,max=100"`
	Content string `json:"content" binding:"required,max=500"`
	UserID  uint   `json:"userId" binding:"required"`
}

func (p postPayload) toModel(db *gorm.DB) (models.Post, error) {
	if err := userExists(db, p.UserID); err != nil {
		return models.Post{}, err
	}
	return models.Post{Title: p.Title, Content: p.Content, UserID: p.UserID}, nil
}

type purchasePayload struct {
	Item     string           `json:"item" binding:"required,max=100"`
	Quantity *int             `json:"quantity" binding:"required,gte=0"`
	Price    *decimal.Decimal `json:"price" binding:"required"`
	UserID   uint             `json:"userId" binding:"required"`
}

func (p purchasePayload) toModel(*gorm.DB) (models.Purchase, error) {
	if err := checkMoney("price", *p.Price); err != nil {
		return models.Purchase{}, err
	}
	return models.Purchase{Item: p.Item, Quantity: *p.Quantity, Price: *p.Price, UserID: p.UserID}, nil
}

type billingPayload struct {
	UserID           uint             `json:"userId"`
	Amount           *decimal.Decimal `json:"amount" binding:"required"`
	Discount         decimal.Decimal  `json:"discount"`
	Tax              decimal.Decimal  `json:"tax"`
	Currency         string           `json:"currency" binding:"required,len=3"`
	Status           string           `json:"status" binding:"required,oneof=initiated authorized failed paid canceled refunded"`
	OrderType        string           `json:"orderType" binding:"max=50"`
	SubscriptionType string           `json:"subscriptionType" binding:"max=50"`
	InitiatedAt      *time.Time       `json:"initiatedAt"`
	AuthorizedAt     *time.Time       `json:"authorizedAt"`
	FailedAt         *time.Time       `json:"failedAt"`
	PaidAt           *time.Time       `json:"paidAt"`
	CanceledAt       *time.Time       `json:"canceledAt"`
	RefundedAt       *time.Time       `json:"refundedAt"`
}

var hundred = decimal.NewFromInt(100)

func (p billingPayload) toModel(*gorm.DB) (models.BillingDetails, error) {
	if err := checkMoney("amount", *p.Amount); err != nil {
		return models.BillingDetails{}, err
	}
	if p.Discount.IsNegative() || p.Discount.GreaterThan(hundred) {
		return models.BillingDetails{}, apperror.Invalid("discount", "must be a percentage between 0 and 100")
	}
	if p.Tax.IsNegative() || p.Tax.GreaterThan(hundred) {
		return models.BillingDetails{}, apperror.Invalid("tax", "must be a percentage between 0 and 100")
	}

	b := models.BillingDetails{
		UserID:           p.UserID,
		Amount:           *p.Amount,
		Discount:         p.Discount,
		Tax:              p.Tax,
		Currency:         strings.ToUpper(p.Currency),
		Status:           p.Status,
		OrderType:        p.OrderType,
		SubscriptionType: p.SubscriptionType,
		InitiatedAt:      p.InitiatedAt,
		AuthorizedAt:     p.AuthorizedAt,
		FailedAt:         p.FailedAt,
		PaidAt:           p.PaidAt,
		CanceledAt:       p.CanceledAt,
		RefundedAt:       p.RefundedAt,
	}
	if terminal := b.TerminalStates(); len(terminal) > 1 {
		return models.BillingDetails{}, apperror.Invalid("status",
			"at most one of paidAt, failedAt, canceledAt may be set, got "+strings.Join(terminal, ", "))
	}
	b.TotalAmount = invoice.BillingTotal(b)
	return b, nil
}

type chargePayload struct {
	ChargeID    string                 `json:"chargeId" binding:"required,max=64"`
	Amount      *decimal.Decimal       `json:"amount" binding:"required"`
	Currency    string                 `json:"currency" binding:"required,len=3"`
	Status      string                 `json:"status" binding:"max=30"`
	Description string                 `json:"description" binding:"max=255"`
	Card        *models.ChargeCard     `json:"card"`
	Acquirer    *models.ChargeAcquirer `json:"acquirer"`
	Gateway     *models.ChargeGateway  `json:"gateway"`
	Customer    *models.ChargeCustomer `json:"customer"`
	Merchant    *models.ChargeMerchant `json:"merchant"`
	Metadata    map[string]interface{} `json:"metadata"`
}

func (p chargePayload) toModel(*gorm.DB) (models.Charge, error) {
	if err := checkMoney("amount", *p.Amount); err != nil {
		return models.Charge{}, err
	}
	return models.Charge{
		ChargeID:    p.ChargeID,
		Amount:      *p.Amount,
		Currency:    strings.ToUpper(p.Currency),
		Status:      p.Status,
		Description: p.Description,
		Card:        jsonOf(p.Card),
		Acquirer:    jsonOf(p.Acquirer),
		Gateway:     jsonOf(p.Gateway),
		Customer:    jsonOf(p.Customer),
		Merchant:    jsonOf(p.Merchant),
		Metadata:    datatypes.JSONMap(p.Metadata),
	}, nil
}

// checkMoney rejects negative amounts and fractions of a cent, which the
// decimal(12,2) columns would silently round.
func checkMoney(field string, d decimal.Decimal) error {
	if d.IsNegative() {
		return apperror.Invalid(field, "must not be negative")
	}
	if !d.Equal(d.Round(2)) {
		return apperror.Invalid(field, "must have at most 2 decimal places")
	}
	return nil
}

func jsonOf[T any](v *T) datatypes.JSONType[T] {
	if v == nil {
		var zero T
		return datatypes.NewJSONType(zero)
	}
	return datatypes.NewJSONType(*v)
}

func userExists(db *gorm.DB, id uint) error {
	var u models.User
	if err := db.Select("id").First(&u, id).Error; err != nil {
		return apperror.FromDB(err, "user")
	}
	return nil
}
