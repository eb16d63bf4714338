package services

import (
	"context"

	"github.com/financeapp/personal_finance_api/internal/core/domain"
	"github.com/financeapp/personal_finance_api/internal/dto"
	"github.com/shopspring/decimal"
)

// LedgerReaderSvc defines read operations for account data
type LedgerReaderSvc interface {
	// GetAccountByID retrieves a specific account by its unique identifier.
	GetAccountByID(ctx context.Context, id int64) (*domain.Account, error)

	// GetAccountByNumber retrieves an account by its account number.
	GetAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error)

	// ListAccounts retrieves every account.
	ListAccounts(ctx context.Context) ([]domain.Account, error)

	// ListAccountsByUser retrieves all accounts owned by a user.
	ListAccountsByUser(ctx context.Context, userID int64) ([]domain.Account, error)

	// ListAccountsByType retrieves all accounts of the given type.
	ListAccountsByType(ctx context.Context, accountType domain.AccountType) ([]domain.Account, error)

	// ListAccountsByUserAndType retrieves a user's accounts of the given type.
	ListAccountsByUserAndType(ctx context.Context, userID int64, accountType domain.AccountType) ([]domain.Account, error)
}

// LedgerWriterSvc is the single authoritative mutation surface for accounts.
type LedgerWriterSvc interface {
	// CreateAccount validates and persists a new account.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error)

	// UpdateAccount edits account metadata (name, number, type, currency).
	// The balance is never touched here; balance changes go through
	// Credit/Debit/Transfer/ReplaceBalance so they stay auditable.
	UpdateAccount(ctx context.Context, id int64, req dto.UpdateAccountRequest) (*domain.Account, error)

	// ReplaceBalance unconditionally sets the balance (administrative override).
	ReplaceBalance(ctx context.Context, id int64, newBalance decimal.Decimal) (*domain.Account, error)

	// Credit adds a positive amount to the balance. A non-positive amount is
	// a no-op that returns the unchanged account.
	Credit(ctx context.Context, id int64, amount decimal.Decimal) (*domain.Account, error)

	// Debit subtracts a positive amount from the balance, failing when the
	// balance would go negative.
	Debit(ctx context.Context, id int64, amount decimal.Decimal) (*domain.Account, error)

	// Transfer atomically moves amount from one account to another.
	Transfer(ctx context.Context, fromID, toID int64, amount decimal.Decimal) error

	// DeleteAccount removes an account with zero balance. Returns false
	// without error when the id is absent.
	DeleteAccount(ctx context.Context, id int64) (bool, error)
}

// LedgerSvcFacade combines the ledger service interfaces.
type LedgerSvcFacade interface {
	LedgerReaderSvc
	LedgerWriterSvc
}
