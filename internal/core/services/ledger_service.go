package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/financeapp/personal_finance_api/internal/apperrors"
	"github.com/financeapp/personal_finance_api/internal/core/domain"
	portsrepo "github.com/financeapp/personal_finance_api/internal/core/ports/repositories"
	portssvc "github.com/financeapp/personal_finance_api/internal/core/ports/services"
	"github.com/financeapp/personal_finance_api/internal/dto"
	"github.com/shopspring/decimal"
)

// ledgerService enforces the business rules around accounts and balance
// changes. All balance mutations funnel through the store's atomic update
// primitives; the service itself never does an unguarded read-check-write.
type ledgerService struct {
	BaseService
	accountRepo   portsrepo.AccountRepositoryFacade
	userDirectory portssvc.UserDirectorySvc
}

// NewLedgerService creates the ledger service with its store and the user
// directory collaborator.
func NewLedgerService(repo portsrepo.AccountRepositoryFacade, users portssvc.UserDirectorySvc) portssvc.LedgerSvcFacade {
	return &ledgerService{
		accountRepo:   repo,
		userDirectory: users,
	}
}

// Ensure ledgerService implements the LedgerSvcFacade interface
var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

func (s *ledgerService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error) {
	if err := validateCreateRequest(req); err != nil {
		s.LogWarn(ctx, "Account creation rejected by validation", slog.String("error", err.Error()))
		return nil, err
	}

	exists, err := s.userDirectory.UserExists(ctx, req.UserID)
	if err != nil {
		s.LogError(ctx, err, "Failed to check user existence", slog.Int64("user_id", req.UserID))
		return nil, fmt.Errorf("failed to check user %d: %w", req.UserID, err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: user %d", apperrors.ErrInvalidReference, req.UserID)
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountName:   strings.TrimSpace(req.AccountName),
		AccountNumber: strings.TrimSpace(req.AccountNumber),
		AccountType:   req.AccountType,
		Balance:       decimal.Zero,
		Currency:      domain.DefaultCurrency,
		UserID:        req.UserID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if req.Balance != nil {
		account.Balance = *req.Balance
	}
	if req.Currency != "" {
		account.Currency = req.Currency
	}

	// The store assigns the ID and performs the number-uniqueness check and
	// the insert as one atomic unit.
	if err := s.accountRepo.SaveAccount(ctx, &account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			s.LogWarn(ctx, "Account number already taken", slog.String("account_number", account.AccountNumber))
		} else {
			s.LogError(ctx, err, "Failed to save account", slog.String("account_number", account.AccountNumber))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Account created",
		slog.Int64("account_id", account.ID),
		slog.Int64("user_id", account.UserID),
		slog.String("account_type", string(account.AccountType)))
	return &account, nil
}

func (s *ledgerService) GetAccountByID(ctx context.Context, id int64) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, id)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by ID", slog.Int64("account_id", id))
		}
		return nil, err
	}
	return account, nil
}

func (s *ledgerService) GetAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByNumber(ctx, accountNumber)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by number", slog.String("account_number", accountNumber))
		}
		return nil, err
	}
	return account, nil
}

func (s *ledgerService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts")
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}

func (s *ledgerService) ListAccountsByUser(ctx context.Context, userID int64) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccountsByUser(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts by user", slog.Int64("user_id", userID))
		return nil, fmt.Errorf("failed to list accounts for user %d: %w", userID, err)
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}

func (s *ledgerService) ListAccountsByType(ctx context.Context, accountType domain.AccountType) ([]domain.Account, error) {
	if !accountType.IsValid() {
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, accountType)
	}
	accounts, err := s.accountRepo.ListAccountsByType(ctx, accountType)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts by type", slog.String("account_type", string(accountType)))
		return nil, fmt.Errorf("failed to list accounts of type %s: %w", accountType, err)
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}

func (s *ledgerService) ListAccountsByUserAndType(ctx context.Context, userID int64, accountType domain.AccountType) ([]domain.Account, error) {
	if !accountType.IsValid() {
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, accountType)
	}
	accounts, err := s.accountRepo.ListAccountsByUserAndType(ctx, userID, accountType)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts by user and type",
			slog.Int64("user_id", userID), slog.String("account_type", string(accountType)))
		return nil, fmt.Errorf("failed to list accounts for user %d and type %s: %w", userID, accountType, err)
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}

func (s *ledgerService) UpdateAccount(ctx context.Context, id int64, req dto.UpdateAccountRequest) (*domain.Account, error) {
	if req.AccountName != nil && strings.TrimSpace(*req.AccountName) == "" {
		return nil, fmt.Errorf("%w: account name must not be empty", apperrors.ErrValidation)
	}
	if req.AccountNumber != nil && strings.TrimSpace(*req.AccountNumber) == "" {
		return nil, fmt.Errorf("%w: account number must not be empty", apperrors.ErrValidation)
	}
	if req.AccountType != nil && !req.AccountType.IsValid() {
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, *req.AccountType)
	}

	now := time.Now().UTC()
	account, err := s.accountRepo.UpdateAccount(ctx, id, func(acc *domain.Account) error {
		if req.AccountName != nil {
			acc.AccountName = strings.TrimSpace(*req.AccountName)
		}
		if req.AccountNumber != nil {
			acc.AccountNumber = strings.TrimSpace(*req.AccountNumber)
		}
		if req.AccountType != nil {
			acc.AccountType = *req.AccountType
		}
		if req.Currency != nil {
			acc.Currency = *req.Currency
		}
		acc.UpdatedAt = now
		return nil
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			s.LogWarn(ctx, "Account number already taken on update", slog.Int64("account_id", id))
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to update account", slog.Int64("account_id", id))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Account updated", slog.Int64("account_id", id))
	return account, nil
}

func (s *ledgerService) ReplaceBalance(ctx context.Context, id int64, newBalance decimal.Decimal) (*domain.Account, error) {
	now := time.Now().UTC()
	account, err := s.accountRepo.UpdateAccount(ctx, id, func(acc *domain.Account) error {
		acc.Balance = newBalance
		acc.UpdatedAt = now
		return nil
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to replace balance", slog.Int64("account_id", id))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Balance replaced",
		slog.Int64("account_id", id),
		slog.String("new_balance", newBalance.String()))
	return account, nil
}

func (s *ledgerService) Credit(ctx context.Context, id int64, amount decimal.Decimal) (*domain.Account, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		// Non-positive credits are ignored rather than rejected; the account
		// is returned untouched, UpdatedAt included.
		s.LogDebug(ctx, "Ignoring non-positive credit",
			slog.Int64("account_id", id),
			slog.String("amount", amount.String()))
		return s.GetAccountByID(ctx, id)
	}

	now := time.Now().UTC()
	account, err := s.accountRepo.UpdateAccount(ctx, id, func(acc *domain.Account) error {
		acc.Balance = acc.Balance.Add(amount)
		acc.UpdatedAt = now
		return nil
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to credit account", slog.Int64("account_id", id))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Account credited",
		slog.Int64("account_id", id),
		slog.String("amount", amount.String()))
	return account, nil
}

func (s *ledgerService) Debit(ctx context.Context, id int64, amount decimal.Decimal) (*domain.Account, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: debit amount must be positive", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	account, err := s.accountRepo.UpdateAccount(ctx, id, func(acc *domain.Account) error {
		if acc.Balance.LessThan(amount) {
			return fmt.Errorf("%w: balance %s is less than debit amount %s",
				apperrors.ErrInsufficientFunds, acc.Balance.String(), amount.String())
		}
		acc.Balance = acc.Balance.Sub(amount)
		acc.UpdatedAt = now
		return nil
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrInsufficientFunds) {
			s.LogWarn(ctx, "Debit rejected, insufficient funds",
				slog.Int64("account_id", id),
				slog.String("amount", amount.String()))
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to debit account", slog.Int64("account_id", id))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Account debited",
		slog.Int64("account_id", id),
		slog.String("amount", amount.String()))
	return account, nil
}

func (s *ledgerService) Transfer(ctx context.Context, fromID, toID int64, amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: transfer amount must be positive", apperrors.ErrValidation)
	}
	if fromID == toID {
		return fmt.Errorf("%w: source and destination accounts must differ", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	// The store holds both per-account critical sections (ascending-id lock
	// order) for the duration of fn, so the debit and the credit land as a
	// single atomic step or not at all.
	err := s.accountRepo.UpdateAccountPair(ctx, fromID, toID, func(from, to *domain.Account) error {
		if from.Balance.LessThan(amount) {
			return fmt.Errorf("%w: source balance %s is less than transfer amount %s",
				apperrors.ErrInsufficientFunds, from.Balance.String(), amount.String())
		}
		from.Balance = from.Balance.Sub(amount)
		from.UpdatedAt = now
		to.Balance = to.Balance.Add(amount)
		to.UpdatedAt = now
		return nil
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrInsufficientFunds) {
			s.LogWarn(ctx, "Transfer rejected, insufficient funds",
				slog.Int64("from_account_id", fromID),
				slog.Int64("to_account_id", toID),
				slog.String("amount", amount.String()))
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to transfer between accounts",
				slog.Int64("from_account_id", fromID),
				slog.Int64("to_account_id", toID))
		}
		return err
	}

	s.LogInfo(ctx, "Transfer completed",
		slog.Int64("from_account_id", fromID),
		slog.Int64("to_account_id", toID),
		slog.String("amount", amount.String()))
	return nil
}

func (s *ledgerService) DeleteAccount(ctx context.Context, id int64) (bool, error) {
	deleted, err := s.accountRepo.DeleteAccount(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNonZeroBalance) {
			s.LogWarn(ctx, "Deletion rejected, balance not zero", slog.Int64("account_id", id))
		} else {
			s.LogError(ctx, err, "Failed to delete account", slog.Int64("account_id", id))
		}
		return false, err
	}
	if deleted {
		s.LogInfo(ctx, "Account deleted", slog.Int64("account_id", id))
	}
	return deleted, nil
}

func validateCreateRequest(req dto.CreateAccountRequest) error {
	if strings.TrimSpace(req.AccountName) == "" {
		return fmt.Errorf("%w: account name is required", apperrors.ErrValidation)
	}
	if strings.TrimSpace(req.AccountNumber) == "" {
		return fmt.Errorf("%w: account number is required", apperrors.ErrValidation)
	}
	if !req.AccountType.IsValid() {
		return fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, req.AccountType)
	}
	if req.UserID <= 0 {
		return fmt.Errorf("%w: user ID is required", apperrors.ErrValidation)
	}
	return nil
}
