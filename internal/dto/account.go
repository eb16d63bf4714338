package dto

import (
	"time"

	"github.com/financeapp/personal_finance_api/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a new account.
// Balance and Currency are optional; the service defaults them to zero and
// USD. Amount-style fields deliberately carry no "required" binding so the
// service layer owns the business validation.
type CreateAccountRequest struct {
	AccountName   string             `json:"accountName" binding:"required"`
	AccountNumber string             `json:"accountNumber" binding:"required"`
	AccountType   domain.AccountType `json:"accountType" binding:"required,accounttype"`
	Balance       *decimal.Decimal   `json:"balance"`  // Optional opening balance
	Currency      string             `json:"currency"` // Optional, defaults to USD
	UserID        int64              `json:"userID" binding:"required,gt=0"`
}

// UpdateAccountRequest defines the metadata fields allowed for updating an
// account. Use pointers to distinguish between zero-value updates and fields
// not provided. The balance is intentionally absent.
type UpdateAccountRequest struct {
	AccountName   *string             `json:"accountName"`
	AccountNumber *string             `json:"accountNumber"`
	AccountType   *domain.AccountType `json:"accountType" binding:"omitempty,accounttype"`
	Currency      *string             `json:"currency"`
}

// BalanceUpdateRequest carries the administrative balance override.
type BalanceUpdateRequest struct {
	NewBalance decimal.Decimal `json:"newBalance"`
}

// AmountRequest carries a credit or debit amount.
type AmountRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// TransferRequest moves an amount between two accounts.
type TransferRequest struct {
	FromAccountID int64           `json:"fromAccountID" binding:"required,gt=0"`
	ToAccountID   int64           `json:"toAccountID" binding:"required,gt=0"`
	Amount        decimal.Decimal `json:"amount"`
}

// AccountResponse defines the data returned for an account.
// Mirrors domain.Account.
type AccountResponse struct {
	ID            int64              `json:"id"`
	AccountName   string             `json:"accountName"`
	AccountNumber string             `json:"accountNumber"`
	AccountType   domain.AccountType `json:"accountType"`
	Balance       decimal.Decimal    `json:"balance"`
	Currency      string             `json:"currency"`
	UserID        int64              `json:"userID"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		ID:            acc.ID,
		AccountName:   acc.AccountName,
		AccountNumber: acc.AccountNumber,
		AccountType:   acc.AccountType,
		Balance:       acc.Balance,
		Currency:      acc.Currency,
		UserID:        acc.UserID,
		CreatedAt:     acc.CreatedAt,
		UpdatedAt:     acc.UpdatedAt,
	}
}

// ToListAccountResponse converts a slice of domain.Account to a slice of AccountResponse DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i, acc := range accounts {
		res[i] = ToAccountResponse(&acc)
	}
	return res
}

// TransferResponse acknowledges a completed transfer.
type TransferResponse struct {
	FromAccountID int64           `json:"fromAccountID"`
	ToAccountID   int64           `json:"toAccountID"`
	Amount        decimal.Decimal `json:"amount"`
	Status        string          `json:"status"`
}

// TotalBalanceResponse defines the data returned for a total balance query.
type TotalBalanceResponse struct {
	UserID       int64              `json:"userID"`
	AccountType  domain.AccountType `json:"accountType,omitempty"`
	TotalBalance decimal.Decimal    `json:"totalBalance"`
}

// SummaryResponse wraps the per-user balance statistics.
type SummaryResponse struct {
	UserID  int64                 `json:"userID"`
	Summary domain.AccountSummary `json:"summary"`
}

// StatsResponse reports store-wide account counts.
type StatsResponse struct {
	TotalAccounts int64            `json:"totalAccounts"`
	CountByType   map[string]int64 `json:"countByType"`
}

// UserAccountCountResponse reports how many accounts a user owns.
type UserAccountCountResponse struct {
	UserID       int64 `json:"userID"`
	AccountCount int64 `json:"accountCount"`
}
