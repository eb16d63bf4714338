package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/financeapp/personal_finance_api/internal/apperrors"
	"github.com/financeapp/personal_finance_api/internal/core/domain"
	portsrepo "github.com/financeapp/personal_finance_api/internal/core/ports/repositories"
	portssvc "github.com/financeapp/personal_finance_api/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// queryService answers read-only aggregate questions over the account store.
// Day-window arguments are resolved against the clock here so the store only
// ever sees absolute instants.
type queryService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
	now         func() time.Time
}

// NewQueryService creates the query service over the given store.
func NewQueryService(repo portsrepo.AccountRepositoryFacade) portssvc.QuerySvcFacade {
	return &queryService{
		accountRepo: repo,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Ensure queryService implements the QuerySvcFacade interface
var _ portssvc.QuerySvcFacade = (*queryService)(nil)

func (s *queryService) TotalBalance(ctx context.Context, userID int64) (decimal.Decimal, error) {
	total, err := s.accountRepo.SumBalanceByUser(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum balances", slog.Int64("user_id", userID))
		return decimal.Zero, fmt.Errorf("failed to total balances for user %d: %w", userID, err)
	}
	return total, nil
}

func (s *queryService) TotalBalanceByType(ctx context.Context, userID int64, accountType domain.AccountType) (decimal.Decimal, error) {
	if !accountType.IsValid() {
		return decimal.Zero, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, accountType)
	}
	total, err := s.accountRepo.SumBalanceByUserAndType(ctx, userID, accountType)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum balances by type",
			slog.Int64("user_id", userID), slog.String("account_type", string(accountType)))
		return decimal.Zero, fmt.Errorf("failed to total %s balances for user %d: %w", accountType, userID, err)
	}
	return total, nil
}

func (s *queryService) AccountsOrderedByBalance(ctx context.Context, userID int64) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListByUserOrderedByBalance(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts by balance", slog.Int64("user_id", userID))
		return nil, fmt.Errorf("failed to order accounts for user %d: %w", userID, err)
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}

func (s *queryService) LowBalance(ctx context.Context, threshold decimal.Decimal) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListLowBalance(ctx, threshold)
	if err != nil {
		s.LogError(ctx, err, "Failed to list low-balance accounts", slog.String("threshold", threshold.String()))
		return nil, fmt.Errorf("failed to list accounts below %s: %w", threshold.String(), err)
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}

func (s *queryService) Recent(ctx context.Context, days int) ([]domain.Account, error) {
	if days <= 0 {
		return nil, fmt.Errorf("%w: days must be positive", apperrors.ErrValidation)
	}
	since := s.now().AddDate(0, 0, -days)
	accounts, err := s.accountRepo.ListCreatedSince(ctx, since)
	if err != nil {
		s.LogError(ctx, err, "Failed to list recent accounts", slog.Int("days", days))
		return nil, fmt.Errorf("failed to list accounts created in last %d days: %w", days, err)
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}

func (s *queryService) Inactive(ctx context.Context, days int) ([]domain.Account, error) {
	if days <= 0 {
		return nil, fmt.Errorf("%w: days must be positive", apperrors.ErrValidation)
	}
	before := s.now().AddDate(0, 0, -days)
	accounts, err := s.accountRepo.ListUpdatedBefore(ctx, before)
	if err != nil {
		s.LogError(ctx, err, "Failed to list inactive accounts", slog.Int("days", days))
		return nil, fmt.Errorf("failed to list accounts inactive for %d days: %w", days, err)
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}

func (s *queryService) Summary(ctx context.Context, userID int64) (*domain.AccountSummary, error) {
	summary, err := s.accountRepo.SummarizeByUser(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to summarize accounts", slog.Int64("user_id", userID))
		return nil, fmt.Errorf("failed to summarize accounts for user %d: %w", userID, err)
	}
	return summary, nil
}

func (s *queryService) CountAccounts(ctx context.Context) (int64, error) {
	count, err := s.accountRepo.CountAccounts(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to count accounts")
		return 0, fmt.Errorf("failed to count accounts: %w", err)
	}
	return count, nil
}

func (s *queryService) CountAccountsByUser(ctx context.Context, userID int64) (int64, error) {
	count, err := s.accountRepo.CountAccountsByUser(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to count accounts by user", slog.Int64("user_id", userID))
		return 0, fmt.Errorf("failed to count accounts for user %d: %w", userID, err)
	}
	return count, nil
}

func (s *queryService) CountByType(ctx context.Context) (map[domain.AccountType]int64, error) {
	counts, err := s.accountRepo.CountByType(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to count accounts by type")
		return nil, fmt.Errorf("failed to count accounts by type: %w", err)
	}
	if counts == nil {
		return map[domain.AccountType]int64{}, nil
	}
	return counts, nil
}
