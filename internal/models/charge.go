package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type ChargeCard struct {
	Brand    string `json:"brand,omitempty"`
	Scheme   string `json:"scheme,omitempty"`
	FirstSix string `json:"firstSix,omitempty"`
	LastFour string `json:"lastFour,omitempty"`
	ExpMonth int    `json:"expMonth,omitempty"`
	ExpYear  int    `json:"expYear,omitempty"`
}

type ChargeAcquirer struct {
	ID              string `json:"id,omitempty"`
	ResponseCode    string `json:"responseCode,omitempty"`
	ResponseMessage string `json:"responseMessage,omitempty"`
}

type ChargeGateway struct {
	Name            string `json:"name,omitempty"`
	ResponseCode    string `json:"responseCode,omitempty"`
	ResponseMessage string `json:"responseMessage,omitempty"`
}

type ChargeCustomer struct {
	ID        string `json:"id,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

type ChargeMerchant struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

// Charge mirrors a payment provider's charge object. Nested provider blocks
// are stored as JSON columns.
type Charge struct {
	Base
	ChargeID    string                             `json:"chargeId" gorm:"size:64;uniqueIndex;not null"`
	Amount      decimal.Decimal                    `json:"amount" gorm:"type:decimal(12,2);not null"`
	Currency    string                             `json:"currency" gorm:"size:3;not null"`
	Status      string                             `json:"status" gorm:"size:30"`
	Description string                             `json:"description" gorm:"size:255"`
	Card        datatypes.JSONType[ChargeCard]     `json:"card"`
	Acquirer    datatypes.JSONType[ChargeAcquirer] `json:"acquirer"`
	Gateway     datatypes.JSONType[ChargeGateway]  `json:"gateway"`
	Customer    datatypes.JSONType[ChargeCustomer] `json:"customer"`
	Merchant    datatypes.JSONType[ChargeMerchant] `json:"merchant"`
	Metadata    datatypes.JSONMap                  `json:"metadata"`
}
