package repositories

import (
	"context"
	"time"

	"github.com/financeapp/personal_finance_api/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, id int64) (*domain.Account, error)

	// FindAccountByNumber retrieves an account by its globally unique account number.
	FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error)

	// ExistsByNumber reports whether an account with the given number exists.
	ExistsByNumber(ctx context.Context, accountNumber string) (bool, error)

	// ListAccounts retrieves every account in the store, in no particular order.
	ListAccounts(ctx context.Context) ([]domain.Account, error)

	// ListAccountsByUser retrieves all accounts owned by a user.
	ListAccountsByUser(ctx context.Context, userID int64) ([]domain.Account, error)

	// ListAccountsByType retrieves all accounts of the given type.
	ListAccountsByType(ctx context.Context, accountType domain.AccountType) ([]domain.Account, error)

	// ListAccountsByUserAndType retrieves a user's accounts of the given type.
	ListAccountsByUserAndType(ctx context.Context, userID int64, accountType domain.AccountType) ([]domain.Account, error)

	// CountAccounts returns the total number of accounts.
	CountAccounts(ctx context.Context) (int64, error)

	// CountAccountsByUser returns the number of accounts owned by a user.
	CountAccountsByUser(ctx context.Context, userID int64) (int64, error)
}

// AccountWriter defines write operations for account data. Every method is
// atomic with respect to concurrent callers: the uniqueness check inside
// SaveAccount, the read-modify-write inside the Update methods and the
// balance guard inside DeleteAccount each form a single critical section.
type AccountWriter interface {
	// SaveAccount persists a new account and assigns its ID from the store
	// sequence. Returns apperrors.ErrDuplicate when the account number is
	// already taken; the existence check and the insert are one atomic unit,
	// so at most one of two concurrent saves with the same number succeeds.
	SaveAccount(ctx context.Context, account *domain.Account) error

	// UpdateAccount applies fn to the current state of the account inside a
	// per-account critical section and persists the result. An error from fn
	// aborts the update with no visible write. Returns apperrors.ErrNotFound
	// when the account is absent and apperrors.ErrDuplicate when fn changed
	// the account number to one held by a different account.
	UpdateAccount(ctx context.Context, id int64, fn func(*domain.Account) error) (*domain.Account, error)

	// UpdateAccountPair applies fn to both accounts inside a critical section
	// spanning the two ids. Locks are always acquired in ascending-id order
	// regardless of argument order, so two concurrent calls on the same pair
	// cannot deadlock. Readers of either account never observe a state where
	// only one side of the pair has been written.
	UpdateAccountPair(ctx context.Context, firstID, secondID int64, fn func(first, second *domain.Account) error) error

	// DeleteAccount physically removes an account. Returns (false, nil) when
	// the id is absent and apperrors.ErrNonZeroBalance when the balance is
	// not exactly zero at deletion time.
	DeleteAccount(ctx context.Context, id int64) (bool, error)
}

// AccountAggregator defines the read-only aggregation queries backing the
// query service. Implementations must treat a user with no accounts as a
// valid input yielding zero-valued results, never an error.
type AccountAggregator interface {
	// SumBalanceByUser returns the sum of balances across a user's accounts.
	SumBalanceByUser(ctx context.Context, userID int64) (decimal.Decimal, error)

	// SumBalanceByUserAndType returns the sum filtered additionally by type.
	SumBalanceByUserAndType(ctx context.Context, userID int64, accountType domain.AccountType) (decimal.Decimal, error)

	// ListByUserOrderedByBalance returns a user's accounts in descending
	// balance order; ties broken by ascending id.
	ListByUserOrderedByBalance(ctx context.Context, userID int64) ([]domain.Account, error)

	// ListLowBalance returns accounts with balance below the threshold,
	// excluding CREDIT_CARD accounts.
	ListLowBalance(ctx context.Context, threshold decimal.Decimal) ([]domain.Account, error)

	// ListCreatedSince returns accounts created at or after the given instant.
	ListCreatedSince(ctx context.Context, since time.Time) ([]domain.Account, error)

	// ListUpdatedBefore returns accounts whose last mutation is older than the given instant.
	ListUpdatedBefore(ctx context.Context, before time.Time) ([]domain.Account, error)

	// SummarizeByUser returns count/sum/avg/max/min of a user's balances.
	SummarizeByUser(ctx context.Context, userID int64) (*domain.AccountSummary, error)

	// CountByType returns the number of accounts per account type.
	CountByType(ctx context.Context) (map[domain.AccountType]int64, error)
}

// AccountRepositoryFacade combines all account-related repository interfaces
// This is a facade for clients that need access to all operations
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountAggregator
}
