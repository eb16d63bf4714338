// Package seed loads a small development dataset so the API is explorable
// without manual setup. It is only invoked for non-production profiles.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/financeapp/personal_finance_api/internal/core/domain"
	portsrepo "github.com/financeapp/personal_finance_api/internal/core/ports/repositories"
	portssvc "github.com/financeapp/personal_finance_api/internal/core/ports/services"
	"github.com/financeapp/personal_finance_api/internal/dto"
	"github.com/shopspring/decimal"
)

type seedUser struct {
	firstName string
	lastName  string
	email     string
	phone     string
}

type seedAccount struct {
	name      string
	number    string
	accType   domain.AccountType
	balance   string
	userIndex int
}

var seedUsers = []seedUser{
	{firstName: "John", lastName: "Doe", email: "john.doe@example.com", phone: "555-0101"},
	{firstName: "Jane", lastName: "Smith", email: "jane.smith@example.com", phone: "555-0102"},
	{firstName: "Bob", lastName: "Johnson", email: "bob.johnson@example.com", phone: "555-0103"},
}

var seedAccounts = []seedAccount{
	{name: "Primary Checking", number: "CHK-001", accType: domain.Checking, balance: "2500.00", userIndex: 0},
	{name: "Emergency Savings", number: "SAV-001", accType: domain.Savings, balance: "10000.00", userIndex: 0},
	{name: "Travel Card", number: "CC-001", accType: domain.CreditCard, balance: "-1250.75", userIndex: 0},
	{name: "Household Checking", number: "CHK-002", accType: domain.Checking, balance: "3200.50", userIndex: 1},
	{name: "Index Portfolio", number: "INV-001", accType: domain.Investment, balance: "25000.00", userIndex: 1},
}

// Run inserts the development users and accounts. It is a no-op when the
// store already holds accounts, so restarting the service never duplicates
// seed rows.
func Run(ctx context.Context, logger *slog.Logger, repos portsrepo.RepositoryProvider, services *portssvc.ServiceContainer) error {
	count, err := services.Query.CountAccounts(ctx)
	if err != nil {
		return fmt.Errorf("failed to check existing accounts before seeding: %w", err)
	}
	if count > 0 {
		logger.Info("Skipping seed, store already has accounts", slog.Int64("account_count", count))
		return nil
	}

	now := time.Now().UTC()
	userIDs := make([]int64, 0, len(seedUsers))
	for _, su := range seedUsers {
		user := &domain.User{
			FirstName: su.firstName,
			LastName:  su.lastName,
			Email:     su.email,
			Phone:     su.phone,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := repos.UserRepo.SaveUser(ctx, user); err != nil {
			return fmt.Errorf("failed to seed user %s: %w", su.email, err)
		}
		userIDs = append(userIDs, user.ID)
	}

	for _, sa := range seedAccounts {
		balance, err := decimal.NewFromString(sa.balance)
		if err != nil {
			return fmt.Errorf("invalid seed balance %q: %w", sa.balance, err)
		}
		req := dto.CreateAccountRequest{
			AccountName:   sa.name,
			AccountNumber: sa.number,
			AccountType:   sa.accType,
			Balance:       &balance,
			UserID:        userIDs[sa.userIndex],
		}
		if _, err := services.Ledger.CreateAccount(ctx, req); err != nil {
			return fmt.Errorf("failed to seed account %s: %w", sa.number, err)
		}
	}

	logger.Info("Seed data loaded",
		slog.Int("users", len(seedUsers)),
		slog.Int("accounts", len(seedAccounts)))
	return nil
}
