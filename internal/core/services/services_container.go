package services

import (
	portsrepo "github.com/financeapp/personal_finance_api/internal/core/ports/repositories"
	portssvc "github.com/financeapp/personal_finance_api/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The directory wraps the user repository; other subsystems own user CRUD.
	container.Users = NewUserDirectoryService(repos.UserRepo)

	container.Ledger = NewLedgerService(repos.AccountRepo, container.Users)
	container.Query = NewQueryService(repos.AccountRepo)

	return container
}
