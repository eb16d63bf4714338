package services

import (
	"context"

	"github.com/financeapp/personal_finance_api/internal/core/domain"
	"github.com/shopspring/decimal"
)

// QuerySvcFacade is the read-only aggregation surface over the account store.
// It never mutates anything.
type QuerySvcFacade interface {
	// TotalBalance returns the sum of balances across a user's accounts, zero when none.
	TotalBalance(ctx context.Context, userID int64) (decimal.Decimal, error)

	// TotalBalanceByType returns the sum filtered additionally by account type.
	TotalBalanceByType(ctx context.Context, userID int64, accountType domain.AccountType) (decimal.Decimal, error)

	// AccountsOrderedByBalance returns a user's accounts, highest balance first.
	AccountsOrderedByBalance(ctx context.Context, userID int64) ([]domain.Account, error)

	// LowBalance returns non-credit-card accounts with balance below threshold.
	LowBalance(ctx context.Context, threshold decimal.Decimal) ([]domain.Account, error)

	// Recent returns accounts created within the last N days.
	Recent(ctx context.Context, days int) ([]domain.Account, error)

	// Inactive returns accounts not mutated within the last N days.
	Inactive(ctx context.Context, days int) ([]domain.Account, error)

	// Summary returns balance statistics for a user's accounts, zero-safe.
	Summary(ctx context.Context, userID int64) (*domain.AccountSummary, error)

	// CountAccounts returns the total number of accounts.
	CountAccounts(ctx context.Context) (int64, error)

	// CountAccountsByUser returns the number of accounts owned by a user.
	CountAccountsByUser(ctx context.Context, userID int64) (int64, error)

	// CountByType returns the number of accounts per account type.
	CountByType(ctx context.Context) (map[domain.AccountType]int64, error)
}
