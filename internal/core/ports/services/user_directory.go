package services

import "context"

// UserDirectorySvc is the collaborator interface to the user-management
// subsystem. The ledger only ever needs an existence check.
type UserDirectorySvc interface {
	UserExists(ctx context.Context, userID int64) (bool, error)
}
