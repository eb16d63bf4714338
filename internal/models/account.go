package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType mirrors domain.AccountType for persistence.
type AccountType string

// Account is the database representation of an account row.
type Account struct {
	ID            int64           `db:"account_id"`
	AccountName   string          `db:"account_name"`
	AccountNumber string          `db:"account_number"`
	AccountType   AccountType     `db:"account_type"`
	Balance       decimal.Decimal `db:"balance"`
	Currency      string          `db:"currency"`
	UserID        int64           `db:"user_id"`
	CreatedAt     time.Time       `db:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at"`
}
