package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Monetary amounts go over the wire as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

type AccountType string

const (
	AccountCash       AccountType = "CASH"
	AccountBank       AccountType = "BANK"
	AccountCreditCard AccountType = "CREDIT_CARD"
)

type Account struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	UserID    uint            `gorm:"index;not null" json:"userId"`
	User      User            `gorm:"foreignKey:UserID" json:"-"`
	Name      string          `gorm:"size:120;not null" json:"name"`
	Type      AccountType     `gorm:"size:30;not null" json:"type"`
	Amount    decimal.Decimal `gorm:"type:numeric(14,2)" json:"amount"`
	IconKey   string          `gorm:"size:60" json:"iconKey"`
	CreatedAt time.Time       `json:"createdAt"`
}
