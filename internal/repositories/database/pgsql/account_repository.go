package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/financeapp/personal_finance_api/internal/apperrors"
	"github.com/financeapp/personal_finance_api/internal/core/domain"
	portsrepo "github.com/financeapp/personal_finance_api/internal/core/ports/repositories"
	"github.com/financeapp/personal_finance_api/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const accountColumns = `account_id, account_name, account_number, account_type, balance, currency, user_id, created_at, updated_at`

// pgUniqueViolation is the PostgreSQL error code for unique constraint violations.
const pgUniqueViolation = "23505"

// PgxAccountRepository is the PostgreSQL implementation of the account
// store. Row locks (SELECT ... FOR UPDATE, ordered by account_id for pair
// updates) back the same atomicity contract as the in-memory store; the
// unique index on account_number closes the create/create race.
type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) *PgxAccountRepository {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAccountRepository implements the full repository facade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

// Helper to convert domain.Account to models.Account for DB storage
func toModelAccount(d domain.Account) models.Account {
	return models.Account{
		ID:            d.ID,
		AccountName:   d.AccountName,
		AccountNumber: d.AccountNumber,
		AccountType:   models.AccountType(d.AccountType),
		Balance:       d.Balance,
		Currency:      d.Currency,
		UserID:        d.UserID,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

// Helper to convert models.Account from DB to domain.Account
func toDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		ID:            m.ID,
		AccountName:   m.AccountName,
		AccountNumber: m.AccountNumber,
		AccountType:   domain.AccountType(m.AccountType),
		Balance:       m.Balance,
		Currency:      m.Currency,
		UserID:        m.UserID,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (models.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.ID,
		&m.AccountName,
		&m.AccountNumber,
		&m.AccountType,
		&m.Balance,
		&m.Currency,
		&m.UserID,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	return m, err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// SaveAccount inserts a new account; the database assigns the id from the
// accounts sequence and the unique index on account_number arbitrates
// concurrent saves with the same number.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account *domain.Account) error {
	modelAcc := toModelAccount(*account)

	query := `
		INSERT INTO accounts (account_name, account_number, account_type, balance, currency, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING account_id;
	`
	err := r.Pool.QueryRow(ctx, query,
		modelAcc.AccountName,
		modelAcc.AccountNumber,
		modelAcc.AccountType,
		modelAcc.Balance,
		modelAcc.Currency,
		modelAcc.UserID,
		modelAcc.CreatedAt,
		modelAcc.UpdatedAt,
	).Scan(&account.ID)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: account number %s", apperrors.ErrDuplicate, modelAcc.AccountNumber)
		}
		return fmt.Errorf("failed to save account %s: %w", modelAcc.AccountNumber, err)
	}
	return nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, id int64) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`

	modelAcc, err := scanAccount(r.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by ID %d: %w", id, err)
	}

	domainAcc := toDomainAccount(modelAcc)
	return &domainAcc, nil
}

// FindAccountByNumber retrieves an account by its unique account number.
func (r *PgxAccountRepository) FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_number = $1;`

	modelAcc, err := scanAccount(r.Pool.QueryRow(ctx, query, accountNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by number %s: %w", accountNumber, err)
	}

	domainAcc := toDomainAccount(modelAcc)
	return &domainAcc, nil
}

// ExistsByNumber reports whether an account number is taken.
func (r *PgxAccountRepository) ExistsByNumber(ctx context.Context, accountNumber string) (bool, error) {
	var exists bool
	err := r.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM accounts WHERE account_number = $1);`, accountNumber).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check account number %s: %w", accountNumber, err)
	}
	return exists, nil
}

// UpdateAccount locks the row, applies fn to the current state and writes the
// result back, all inside one transaction. An error from fn rolls back.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, id int64, fn func(*domain.Account) error) (*domain.Account, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction for account %d: %w", id, err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1 FOR UPDATE;`
	modelAcc, err := scanAccount(tx.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock account %d: %w", id, err)
	}

	domainAcc := toDomainAccount(modelAcc)
	if err := fn(&domainAcc); err != nil {
		return nil, err
	}

	updated := toModelAccount(domainAcc)
	updateQuery := `
		UPDATE accounts
		SET account_name = $2, account_number = $3, account_type = $4, balance = $5, currency = $6, updated_at = $7
		WHERE account_id = $1;
	`
	_, err = tx.Exec(ctx, updateQuery,
		updated.ID,
		updated.AccountName,
		updated.AccountNumber,
		updated.AccountType,
		updated.Balance,
		updated.Currency,
		updated.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: account number %s", apperrors.ErrDuplicate, updated.AccountNumber)
		}
		return nil, fmt.Errorf("failed to update account %d: %w", id, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit update for account %d: %w", id, err)
	}
	return &domainAcc, nil
}

// UpdateAccountPair locks both rows in ascending-id order (the ORDER BY in
// the locking select fixes the acquisition order), applies fn and writes
// both rows inside the same transaction. Readers see both writes or neither.
func (r *PgxAccountRepository) UpdateAccountPair(ctx context.Context, firstID, secondID int64, fn func(first, second *domain.Account) error) error {
	if firstID == secondID {
		return fmt.Errorf("%w: pair update requires two distinct accounts", apperrors.ErrValidation)
	}

	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction for accounts %d and %d: %w", firstID, secondID, err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE account_id = ANY($1)
		ORDER BY account_id
		FOR UPDATE;
	`
	rows, err := tx.Query(ctx, query, []int64{firstID, secondID})
	if err != nil {
		return fmt.Errorf("failed to lock accounts %d and %d: %w", firstID, secondID, err)
	}

	locked := make(map[int64]domain.Account, 2)
	for rows.Next() {
		modelAcc, err := scanAccount(rows)
		if err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan locked account row: %w", err)
		}
		locked[modelAcc.ID] = toDomainAccount(modelAcc)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating locked account rows: %w", err)
	}

	first, okFirst := locked[firstID]
	second, okSecond := locked[secondID]
	if !okFirst {
		return fmt.Errorf("%w: account %d", apperrors.ErrNotFound, firstID)
	}
	if !okSecond {
		return fmt.Errorf("%w: account %d", apperrors.ErrNotFound, secondID)
	}

	if err := fn(&first, &second); err != nil {
		return err
	}

	updateQuery := `UPDATE accounts SET balance = $2, updated_at = $3 WHERE account_id = $1;`
	for _, acc := range []domain.Account{first, second} {
		if _, err := tx.Exec(ctx, updateQuery, acc.ID, acc.Balance, acc.UpdatedAt); err != nil {
			return fmt.Errorf("failed to update account %d in pair: %w", acc.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit pair update for accounts %d and %d: %w", firstID, secondID, err)
	}
	return nil
}

// DeleteAccount removes the row only when the balance is exactly zero; the
// condition rides on the DELETE itself so the guard cannot race a
// concurrent balance change.
func (r *PgxAccountRepository) DeleteAccount(ctx context.Context, id int64) (bool, error) {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM accounts WHERE account_id = $1 AND balance = 0;`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete account %d: %w", id, err)
	}
	if cmdTag.RowsAffected() > 0 {
		return true, nil
	}

	// Nothing deleted: either the account is gone or its balance is not zero.
	var exists bool
	if err := r.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM accounts WHERE account_id = $1);`, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check account %d after deletion attempt: %w", id, err)
	}
	if !exists {
		return false, nil
	}
	return false, fmt.Errorf("%w: account %d", apperrors.ErrNonZeroBalance, id)
}

func (r *PgxAccountRepository) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	return r.queryAccounts(ctx, `SELECT `+accountColumns+` FROM accounts;`)
}

func (r *PgxAccountRepository) ListAccountsByUser(ctx context.Context, userID int64) ([]domain.Account, error) {
	return r.queryAccounts(ctx, `SELECT `+accountColumns+` FROM accounts WHERE user_id = $1;`, userID)
}

func (r *PgxAccountRepository) ListAccountsByType(ctx context.Context, accountType domain.AccountType) ([]domain.Account, error) {
	return r.queryAccounts(ctx, `SELECT `+accountColumns+` FROM accounts WHERE account_type = $1;`, string(accountType))
}

func (r *PgxAccountRepository) ListAccountsByUserAndType(ctx context.Context, userID int64, accountType domain.AccountType) ([]domain.Account, error) {
	return r.queryAccounts(ctx, `SELECT `+accountColumns+` FROM accounts WHERE user_id = $1 AND account_type = $2;`, userID, string(accountType))
}

func (r *PgxAccountRepository) CountAccounts(ctx context.Context) (int64, error) {
	var count int64
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM accounts;`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count accounts: %w", err)
	}
	return count, nil
}

func (r *PgxAccountRepository) CountAccountsByUser(ctx context.Context, userID int64) (int64, error) {
	var count int64
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM accounts WHERE user_id = $1;`, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count accounts for user %d: %w", userID, err)
	}
	return count, nil
}

func (r *PgxAccountRepository) SumBalanceByUser(ctx context.Context, userID int64) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.Pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(balance), 0) FROM accounts WHERE user_id = $1;`, userID).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum balances for user %d: %w", userID, err)
	}
	return total, nil
}

func (r *PgxAccountRepository) SumBalanceByUserAndType(ctx context.Context, userID int64, accountType domain.AccountType) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.Pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(balance), 0) FROM accounts WHERE user_id = $1 AND account_type = $2;`,
		userID, string(accountType)).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum %s balances for user %d: %w", accountType, userID, err)
	}
	return total, nil
}

func (r *PgxAccountRepository) ListByUserOrderedByBalance(ctx context.Context, userID int64) ([]domain.Account, error) {
	return r.queryAccounts(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE user_id = $1 ORDER BY balance DESC, account_id ASC;`, userID)
}

func (r *PgxAccountRepository) ListLowBalance(ctx context.Context, threshold decimal.Decimal) ([]domain.Account, error) {
	return r.queryAccounts(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE balance < $1 AND account_type != 'CREDIT_CARD';`, threshold)
}

func (r *PgxAccountRepository) ListCreatedSince(ctx context.Context, since time.Time) ([]domain.Account, error) {
	return r.queryAccounts(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE created_at >= $1;`, since)
}

func (r *PgxAccountRepository) ListUpdatedBefore(ctx context.Context, before time.Time) ([]domain.Account, error) {
	return r.queryAccounts(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE updated_at < $1;`, before)
}

func (r *PgxAccountRepository) SummarizeByUser(ctx context.Context, userID int64) (*domain.AccountSummary, error) {
	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM(balance), 0),
			COALESCE(ROUND(AVG(balance), 2), 0),
			COALESCE(MAX(balance), 0),
			COALESCE(MIN(balance), 0)
		FROM accounts
		WHERE user_id = $1;
	`
	var summary domain.AccountSummary
	err := r.Pool.QueryRow(ctx, query, userID).Scan(
		&summary.AccountCount,
		&summary.TotalBalance,
		&summary.AverageBalance,
		&summary.MaxBalance,
		&summary.MinBalance,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize accounts for user %d: %w", userID, err)
	}
	return &summary, nil
}

func (r *PgxAccountRepository) CountByType(ctx context.Context) (map[domain.AccountType]int64, error) {
	rows, err := r.Pool.Query(ctx, `SELECT account_type, COUNT(*) FROM accounts GROUP BY account_type;`)
	if err != nil {
		return nil, fmt.Errorf("failed to count accounts by type: %w", err)
	}
	defer rows.Close()

	counts := make(map[domain.AccountType]int64)
	for rows.Next() {
		var accountType string
		var count int64
		if err := rows.Scan(&accountType, &count); err != nil {
			return nil, fmt.Errorf("failed to scan account type count: %w", err)
		}
		counts[domain.AccountType(accountType)] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account type counts: %w", err)
	}
	return counts, nil
}

// queryAccounts runs a query yielding account rows and converts them.
func (r *PgxAccountRepository) queryAccounts(ctx context.Context, query string, args ...any) ([]domain.Account, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		modelAcc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, toDomainAccount(modelAcc))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return accounts, nil
}
