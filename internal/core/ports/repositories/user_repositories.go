package repositories

import (
	"context"

	"github.com/financeapp/personal_finance_api/internal/core/domain"
)

// UserReader defines the read surface the ledger needs from the user
// subsystem: an existence check, nothing more.
type UserReader interface {
	// UserExists reports whether a user with the given id exists.
	UserExists(ctx context.Context, userID int64) (bool, error)
}

// UserWriter exists for bootstrap/seed data only; the ledger never creates users.
type UserWriter interface {
	// SaveUser persists a new user and assigns its ID from the store sequence.
	SaveUser(ctx context.Context, user *domain.User) error
}

// UserRepositoryFacade combines the user repository interfaces.
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}
