package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RepeatedTransaction is a recurring-transaction template. Clients reference
// the target account by display name; AccountID carries the resolved account
// when the caller owns one with that name, nil otherwise.
type RepeatedTransaction struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	UserID      uint            `gorm:"index;not null" json:"userId"`
	User        User            `gorm:"foreignKey:UserID" json:"-"`
	Name        string          `gorm:"size:120" json:"name"`
	AccountName string          `gorm:"size:120" json:"account"`
	AccountID   *uint           `json:"accountId"`
	Amount      decimal.Decimal `gorm:"type:numeric(14,2)" json:"amount"`
	Date        string          `gorm:"size:30" json:"date"`      // anchor, e.g. "25/12/2025"
	Frequency   string          `gorm:"size:60" json:"frequency"` // e.g. "monthly"
	CreatedAt   time.Time       `json:"createdAt"`
}
