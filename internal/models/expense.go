package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type EntryType string

const (
	EntryExpense EntryType = "EXPENSE"
	EntryIncome  EntryType = "INCOME"
)

// Expense is a single ledger entry, expense or income.
// OccurredAt is the canonical occurrence instant; date-only client input
// parses to midnight of that day.
type Expense struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	UserID        uint            `gorm:"index;not null" json:"userId"`
	User          User            `gorm:"foreignKey:UserID" json:"-"`
	Type          EntryType       `gorm:"size:20;not null" json:"type"`
	Category      string          `gorm:"size:100;not null" json:"category"`
	Amount        decimal.Decimal `gorm:"type:numeric(14,2)" json:"amount"`
	Note          string          `gorm:"size:255" json:"note"`
	Place         string          `gorm:"size:255" json:"place"`
	OccurredAt    time.Time       `gorm:"index;not null" json:"date"`
	PaymentMethod string          `gorm:"size:100" json:"paymentMethod"`
	IconKey       string          `gorm:"size:60" json:"iconKey"`
	CreatedAt     time.Time       `json:"createdAt"`
}
