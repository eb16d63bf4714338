package memory

import (
	portsrepo "github.com/financeapp/personal_finance_api/internal/core/ports/repositories"
)

// NewRepositoryProvider wires the in-memory stores. Used when no database
// URL is configured, and throughout the test suites.
func NewRepositoryProvider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo: NewAccountRepository(),
		UserRepo:    NewUserRepository(),
	}
}
