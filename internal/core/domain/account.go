package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType classifies an account. The set is closed; types are always
// supplied explicitly, never inferred.
type AccountType string

const (
	Checking   AccountType = "CHECKING"
	Savings    AccountType = "SAVINGS"
	CreditCard AccountType = "CREDIT_CARD"
	Investment AccountType = "INVESTMENT"
)

// IsValid reports whether t is one of the known account types.
func (t AccountType) IsValid() bool {
	switch t {
	case Checking, Savings, CreditCard, Investment:
		return true
	}
	return false
}

// Account represents a financial account within the core domain.
// This is the primary representation used by services.
type Account struct {
	ID            int64           `json:"id"`            // Assigned by the store, monotonic, never reused
	AccountName   string          `json:"accountName"`   // User-defined display label
	AccountNumber string          `json:"accountNumber"` // Globally unique business key
	AccountType   AccountType     `json:"accountType"`   // CHECKING, SAVINGS, CREDIT_CARD, INVESTMENT
	Balance       decimal.Decimal `json:"balance"`       // Signed, two fractional digits
	Currency      string          `json:"currency"`      // 3-letter code, defaults to USD
	UserID        int64           `json:"userID"`        // Owning user; checked against the user directory at creation
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"` // Refreshed on every mutation
}

// DefaultCurrency is applied when an account is created without one.
const DefaultCurrency = "USD"
