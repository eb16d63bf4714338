package memory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/financeapp/personal_finance_api/internal/apperrors"
	"github.com/financeapp/personal_finance_api/internal/core/domain"
	"github.com/financeapp/personal_finance_api/internal/repositories/database/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAccount(number string, balance string, userID int64) *domain.Account {
	now := time.Now().UTC()
	return &domain.Account{
		AccountName:   "Account " + number,
		AccountNumber: number,
		AccountType:   domain.Checking,
		Balance:       decimal.RequireFromString(balance),
		Currency:      domain.DefaultCurrency,
		UserID:        userID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func TestSaveAccount_AssignsMonotonicIDs(t *testing.T) {
	repo := memory.NewAccountRepository()
	ctx := context.Background()

	first := newAccount("A-1", "0", 1)
	second := newAccount("A-2", "0", 1)
	require.NoError(t, repo.SaveAccount(ctx, first))
	require.NoError(t, repo.SaveAccount(ctx, second))
	assert.Greater(t, second.ID, first.ID)

	// Deleting never frees an id for reuse.
	deleted, err := repo.DeleteAccount(ctx, second.ID)
	require.NoError(t, err)
	require.True(t, deleted)

	third := newAccount("A-3", "0", 1)
	require.NoError(t, repo.SaveAccount(ctx, third))
	assert.Greater(t, third.ID, second.ID)
}

func TestSaveAccount_ConcurrentDuplicateNumberHasOneWinner(t *testing.T) {
	repo := memory.NewAccountRepository()
	ctx := context.Background()

	const attempts = 32
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = repo.SaveAccount(ctx, newAccount("DUP-1", "0", 1))
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
		} else {
			assert.ErrorIs(t, err, apperrors.ErrDuplicate)
		}
	}
	assert.Equal(t, 1, winners)

	count, err := repo.CountAccounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestUpdateAccount_SerializesReadModifyWrite(t *testing.T) {
	repo := memory.NewAccountRepository()
	ctx := context.Background()

	acc := newAccount("CHK-1", "0", 1)
	require.NoError(t, repo.SaveAccount(ctx, acc))

	const workers = 50
	one := decimal.NewFromInt(1)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.UpdateAccount(ctx, acc.ID, func(a *domain.Account) error {
				a.Balance = a.Balance.Add(one)
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	current, err := repo.FindAccountByID(ctx, acc.ID)
	require.NoError(t, err)
	assert.True(t, current.Balance.Equal(decimal.NewFromInt(workers)), "lost update: got %s", current.Balance)
}

func TestUpdateAccount_ErrorFromFnLeavesNoTrace(t *testing.T) {
	repo := memory.NewAccountRepository()
	ctx := context.Background()

	acc := newAccount("CHK-1", "100.00", 1)
	require.NoError(t, repo.SaveAccount(ctx, acc))

	_, err := repo.UpdateAccount(ctx, acc.ID, func(a *domain.Account) error {
		a.Balance = decimal.Zero
		return apperrors.ErrInsufficientFunds
	})
	require.ErrorIs(t, err, apperrors.ErrInsufficientFunds)

	current, err := repo.FindAccountByID(ctx, acc.ID)
	require.NoError(t, err)
	assert.True(t, current.Balance.Equal(decimal.RequireFromString("100.00")))
}

func TestUpdateAccountPair_OppositeTransfersDoNotDeadlock(t *testing.T) {
	repo := memory.NewAccountRepository()
	ctx := context.Background()

	a := newAccount("A", "1000", 1)
	b := newAccount("B", "1000", 1)
	require.NoError(t, repo.SaveAccount(ctx, a))
	require.NoError(t, repo.SaveAccount(ctx, b))

	one := decimal.NewFromInt(1)
	transfer := func(fromID, toID int64) error {
		return repo.UpdateAccountPair(ctx, fromID, toID, func(from, to *domain.Account) error {
			if from.Balance.LessThan(one) {
				return apperrors.ErrInsufficientFunds
			}
			from.Balance = from.Balance.Sub(one)
			to.Balance = to.Balance.Add(one)
			return nil
		})
	}

	const rounds = 200
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < rounds; i++ {
			assert.NoError(t, transfer(a.ID, b.ID))
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < rounds; i++ {
			assert.NoError(t, transfer(b.ID, a.ID))
		}
	}()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("opposite transfers deadlocked")
	}

	aAfter, err := repo.FindAccountByID(ctx, a.ID)
	require.NoError(t, err)
	bAfter, err := repo.FindAccountByID(ctx, b.ID)
	require.NoError(t, err)
	assert.True(t, aAfter.Balance.Add(bAfter.Balance).Equal(decimal.NewFromInt(2000)), "transfer leaked money")
	assert.False(t, aAfter.Balance.IsNegative())
	assert.False(t, bAfter.Balance.IsNegative())
}

func TestUpdateAccountPair_MissingAccounts(t *testing.T) {
	repo := memory.NewAccountRepository()
	ctx := context.Background()

	a := newAccount("A", "10", 1)
	require.NoError(t, repo.SaveAccount(ctx, a))

	noop := func(_, _ *domain.Account) error { return nil }
	assert.ErrorIs(t, repo.UpdateAccountPair(ctx, a.ID, 999, noop), apperrors.ErrNotFound)
	assert.ErrorIs(t, repo.UpdateAccountPair(ctx, 999, a.ID, noop), apperrors.ErrNotFound)
	assert.ErrorIs(t, repo.UpdateAccountPair(ctx, a.ID, a.ID, noop), apperrors.ErrValidation)
}

func TestConcurrentDebits_NeverOverdraw(t *testing.T) {
	repo := memory.NewAccountRepository()
	ctx := context.Background()

	acc := newAccount("CHK-1", "10", 1)
	require.NoError(t, repo.SaveAccount(ctx, acc))

	one := decimal.NewFromInt(1)
	const workers = 30
	var wg sync.WaitGroup
	succeeded := make([]bool, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := repo.UpdateAccount(ctx, acc.ID, func(a *domain.Account) error {
				if a.Balance.LessThan(one) {
					return apperrors.ErrInsufficientFunds
				}
				a.Balance = a.Balance.Sub(one)
				return nil
			})
			succeeded[i] = err == nil
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, ok := range succeeded {
		if ok {
			wins++
		}
	}
	assert.Equal(t, 10, wins, "exactly the available balance may be debited")

	current, err := repo.FindAccountByID(ctx, acc.ID)
	require.NoError(t, err)
	assert.True(t, current.Balance.IsZero())
}

func TestDeleteAccount_Semantics(t *testing.T) {
	repo := memory.NewAccountRepository()
	ctx := context.Background()

	// Absent id: no error, not deleted.
	deleted, err := repo.DeleteAccount(ctx, 12345)
	require.NoError(t, err)
	assert.False(t, deleted)

	acc := newAccount("CHK-1", "5.00", 1)
	require.NoError(t, repo.SaveAccount(ctx, acc))

	_, err = repo.DeleteAccount(ctx, acc.ID)
	assert.ErrorIs(t, err, apperrors.ErrNonZeroBalance)

	_, err = repo.UpdateAccount(ctx, acc.ID, func(a *domain.Account) error {
		a.Balance = decimal.Zero
		return nil
	})
	require.NoError(t, err)

	deleted, err = repo.DeleteAccount(ctx, acc.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	// Lookup by the released number now misses.
	_, err = repo.FindAccountByNumber(ctx, "CHK-1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	exists, err := repo.ExistsByNumber(ctx, "CHK-1")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestReadersSeeConsistentPairs(t *testing.T) {
	repo := memory.NewAccountRepository()
	ctx := context.Background()

	a := newAccount("A", "500", 1)
	b := newAccount("B", "500", 1)
	require.NoError(t, repo.SaveAccount(ctx, a))
	require.NoError(t, repo.SaveAccount(ctx, b))

	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		amount := decimal.NewFromInt(5)
		for {
			select {
			case <-stop:
				return
			default:
			}
			_ = repo.UpdateAccountPair(ctx, a.ID, b.ID, func(from, to *domain.Account) error {
				from.Balance = from.Balance.Sub(amount)
				to.Balance = to.Balance.Add(amount)
				return nil
			})
			_ = repo.UpdateAccountPair(ctx, b.ID, a.ID, func(from, to *domain.Account) error {
				from.Balance = from.Balance.Sub(amount)
				to.Balance = to.Balance.Add(amount)
				return nil
			})
		}
	}()

	total := decimal.NewFromInt(1000)
	for i := 0; i < 500; i++ {
		sum, err := repo.SumBalanceByUser(ctx, 1)
		require.NoError(t, err)
		assert.True(t, sum.Equal(total), "observed torn transfer: %s", sum)
	}
	close(stop)
	wg.Wait()
}
