package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/financeapp/personal_finance_api/internal/apperrors"
	"github.com/financeapp/personal_finance_api/internal/core/domain"
	portsrepo "github.com/financeapp/personal_finance_api/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// AccountRepository is the in-memory implementation of the account store.
// It honors the same atomicity contract as the pgsql implementation:
//   - mu guards the maps and makes every write visible as one step,
//   - a per-account mutex serializes read-modify-write cycles on one id,
//   - pair updates take the two per-account mutexes in ascending-id order,
//     so opposite concurrent transfers cannot deadlock.
//
// Sequence numbers are assigned under mu, increase monotonically and are
// never reused after deletion.
type AccountRepository struct {
	mu       sync.RWMutex
	accounts map[int64]*domain.Account
	byNumber map[string]int64
	locks    map[int64]*sync.Mutex
	seq      int64
}

// NewAccountRepository creates an empty in-memory account store.
func NewAccountRepository() *AccountRepository {
	return &AccountRepository{
		accounts: make(map[int64]*domain.Account),
		byNumber: make(map[string]int64),
		locks:    make(map[int64]*sync.Mutex),
	}
}

// Ensure AccountRepository implements the full repository facade
var _ portsrepo.AccountRepositoryFacade = (*AccountRepository)(nil)

// SaveAccount assigns the next sequence id and inserts the account. The
// number-uniqueness check and the insert share one critical section, so two
// concurrent saves with the same number cannot both succeed.
func (r *AccountRepository) SaveAccount(_ context.Context, account *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byNumber[account.AccountNumber]; taken {
		return fmt.Errorf("%w: account number %s", apperrors.ErrDuplicate, account.AccountNumber)
	}

	r.seq++
	account.ID = r.seq

	stored := *account
	r.accounts[stored.ID] = &stored
	r.byNumber[stored.AccountNumber] = stored.ID
	r.locks[stored.ID] = &sync.Mutex{}
	return nil
}

func (r *AccountRepository) FindAccountByID(_ context.Context, id int64) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	acc, ok := r.accounts[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	out := *acc
	return &out, nil
}

func (r *AccountRepository) FindAccountByNumber(_ context.Context, accountNumber string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byNumber[accountNumber]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	out := *r.accounts[id]
	return &out, nil
}

func (r *AccountRepository) ExistsByNumber(_ context.Context, accountNumber string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.byNumber[accountNumber]
	return ok, nil
}

// UpdateAccount applies fn inside the account's critical section. An error
// from fn aborts with no visible write. A number change is re-indexed under
// the same uniqueness rule as SaveAccount.
func (r *AccountRepository) UpdateAccount(_ context.Context, id int64, fn func(*domain.Account) error) (*domain.Account, error) {
	lock := r.accountLock(id)
	if lock == nil {
		return nil, apperrors.ErrNotFound
	}
	lock.Lock()
	defer lock.Unlock()

	r.mu.RLock()
	stored, ok := r.accounts[id]
	if !ok {
		// Deleted while we waited on the account lock.
		r.mu.RUnlock()
		return nil, apperrors.ErrNotFound
	}
	updated := *stored
	oldNumber := stored.AccountNumber
	r.mu.RUnlock()

	if err := fn(&updated); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if updated.AccountNumber != oldNumber {
		if otherID, taken := r.byNumber[updated.AccountNumber]; taken && otherID != id {
			return nil, fmt.Errorf("%w: account number %s", apperrors.ErrDuplicate, updated.AccountNumber)
		}
		delete(r.byNumber, oldNumber)
		r.byNumber[updated.AccountNumber] = id
	}
	r.accounts[id] = &updated

	out := updated
	return &out, nil
}

// UpdateAccountPair applies fn with both per-account mutexes held, acquired
// in ascending-id order regardless of argument order. Both writes land under
// mu in one step, so readers never see a half-applied pair. fn must not
// change account numbers.
func (r *AccountRepository) UpdateAccountPair(_ context.Context, firstID, secondID int64, fn func(first, second *domain.Account) error) error {
	if firstID == secondID {
		return fmt.Errorf("%w: pair update requires two distinct accounts", apperrors.ErrValidation)
	}

	lowID, highID := firstID, secondID
	if highID < lowID {
		lowID, highID = highID, lowID
	}

	lowLock := r.accountLock(lowID)
	if lowLock == nil {
		return fmt.Errorf("%w: account %d", apperrors.ErrNotFound, lowID)
	}
	lowLock.Lock()
	defer lowLock.Unlock()

	highLock := r.accountLock(highID)
	if highLock == nil {
		return fmt.Errorf("%w: account %d", apperrors.ErrNotFound, highID)
	}
	highLock.Lock()
	defer highLock.Unlock()

	r.mu.RLock()
	storedFirst, okFirst := r.accounts[firstID]
	storedSecond, okSecond := r.accounts[secondID]
	if !okFirst || !okSecond {
		r.mu.RUnlock()
		missing := firstID
		if okFirst {
			missing = secondID
		}
		return fmt.Errorf("%w: account %d", apperrors.ErrNotFound, missing)
	}
	first := *storedFirst
	second := *storedSecond
	r.mu.RUnlock()

	if err := fn(&first, &second); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.accounts[firstID] = &first
	r.accounts[secondID] = &second
	return nil
}

// DeleteAccount removes the account when its balance is exactly zero.
func (r *AccountRepository) DeleteAccount(_ context.Context, id int64) (bool, error) {
	lock := r.accountLock(id)
	if lock == nil {
		return false, nil
	}
	lock.Lock()
	defer lock.Unlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	acc, ok := r.accounts[id]
	if !ok {
		return false, nil
	}
	if !acc.Balance.IsZero() {
		return false, fmt.Errorf("%w: account %d has balance %s", apperrors.ErrNonZeroBalance, id, acc.Balance.String())
	}

	delete(r.byNumber, acc.AccountNumber)
	delete(r.accounts, id)
	delete(r.locks, id)
	return true, nil
}

func (r *AccountRepository) ListAccounts(_ context.Context) ([]domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(*domain.Account) bool { return true }), nil
}

func (r *AccountRepository) ListAccountsByUser(_ context.Context, userID int64) ([]domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(a *domain.Account) bool { return a.UserID == userID }), nil
}

func (r *AccountRepository) ListAccountsByType(_ context.Context, accountType domain.AccountType) ([]domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(a *domain.Account) bool { return a.AccountType == accountType }), nil
}

func (r *AccountRepository) ListAccountsByUserAndType(_ context.Context, userID int64, accountType domain.AccountType) ([]domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(a *domain.Account) bool {
		return a.UserID == userID && a.AccountType == accountType
	}), nil
}

func (r *AccountRepository) CountAccounts(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.accounts)), nil
}

func (r *AccountRepository) CountAccountsByUser(_ context.Context, userID int64) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, acc := range r.accounts {
		if acc.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (r *AccountRepository) SumBalanceByUser(_ context.Context, userID int64) (decimal.Decimal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	total := decimal.Zero
	for _, acc := range r.accounts {
		if acc.UserID == userID {
			total = total.Add(acc.Balance)
		}
	}
	return total, nil
}

func (r *AccountRepository) SumBalanceByUserAndType(_ context.Context, userID int64, accountType domain.AccountType) (decimal.Decimal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	total := decimal.Zero
	for _, acc := range r.accounts {
		if acc.UserID == userID && acc.AccountType == accountType {
			total = total.Add(acc.Balance)
		}
	}
	return total, nil
}

func (r *AccountRepository) ListByUserOrderedByBalance(_ context.Context, userID int64) ([]domain.Account, error) {
	r.mu.RLock()
	accounts := r.collect(func(a *domain.Account) bool { return a.UserID == userID })
	r.mu.RUnlock()

	sort.Slice(accounts, func(i, j int) bool {
		if !accounts[i].Balance.Equal(accounts[j].Balance) {
			return accounts[i].Balance.GreaterThan(accounts[j].Balance)
		}
		return accounts[i].ID < accounts[j].ID
	})
	return accounts, nil
}

func (r *AccountRepository) ListLowBalance(_ context.Context, threshold decimal.Decimal) ([]domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(a *domain.Account) bool {
		return a.AccountType != domain.CreditCard && a.Balance.LessThan(threshold)
	}), nil
}

func (r *AccountRepository) ListCreatedSince(_ context.Context, since time.Time) ([]domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(a *domain.Account) bool {
		return !a.CreatedAt.Before(since)
	}), nil
}

func (r *AccountRepository) ListUpdatedBefore(_ context.Context, before time.Time) ([]domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(a *domain.Account) bool {
		return a.UpdatedAt.Before(before)
	}), nil
}

func (r *AccountRepository) SummarizeByUser(_ context.Context, userID int64) (*domain.AccountSummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	summary := domain.AccountSummary{
		TotalBalance:   decimal.Zero,
		AverageBalance: decimal.Zero,
		MaxBalance:     decimal.Zero,
		MinBalance:     decimal.Zero,
	}
	for _, acc := range r.accounts {
		if acc.UserID != userID {
			continue
		}
		if summary.AccountCount == 0 {
			summary.MaxBalance = acc.Balance
			summary.MinBalance = acc.Balance
		} else {
			if acc.Balance.GreaterThan(summary.MaxBalance) {
				summary.MaxBalance = acc.Balance
			}
			if acc.Balance.LessThan(summary.MinBalance) {
				summary.MinBalance = acc.Balance
			}
		}
		summary.AccountCount++
		summary.TotalBalance = summary.TotalBalance.Add(acc.Balance)
	}
	if summary.AccountCount > 0 {
		summary.AverageBalance = summary.TotalBalance.
			Div(decimal.NewFromInt(summary.AccountCount)).
			Round(2)
	}
	return &summary, nil
}

func (r *AccountRepository) CountByType(_ context.Context) (map[domain.AccountType]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make(map[domain.AccountType]int64)
	for _, acc := range r.accounts {
		counts[acc.AccountType]++
	}
	return counts, nil
}

// accountLock returns the per-account mutex, or nil when the id is unknown.
func (r *AccountRepository) accountLock(id int64) *sync.Mutex {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.locks[id]
}

// collect snapshots matching accounts; callers must hold mu.
func (r *AccountRepository) collect(match func(*domain.Account) bool) []domain.Account {
	out := []domain.Account{}
	for _, acc := range r.accounts {
		if match(acc) {
			out = append(out, *acc)
		}
	}
	return out
}
