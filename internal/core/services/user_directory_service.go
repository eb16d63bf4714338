package services

import (
	"context"
	"fmt"
	"log/slog"

	portsrepo "github.com/financeapp/personal_finance_api/internal/core/ports/repositories"
	portssvc "github.com/financeapp/personal_finance_api/internal/core/ports/services"
)

// userDirectoryService adapts the user repository to the directory
// collaborator port. User management proper lives in another subsystem; the
// ledger only asks whether an owner exists.
type userDirectoryService struct {
	BaseService
	userRepo portsrepo.UserReader
}

// NewUserDirectoryService wraps a user repository as a UserDirectorySvc.
func NewUserDirectoryService(repo portsrepo.UserReader) portssvc.UserDirectorySvc {
	return &userDirectoryService{userRepo: repo}
}

var _ portssvc.UserDirectorySvc = (*userDirectoryService)(nil)

func (s *userDirectoryService) UserExists(ctx context.Context, userID int64) (bool, error) {
	exists, err := s.userRepo.UserExists(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to check user existence", slog.Int64("user_id", userID))
		return false, fmt.Errorf("failed to check user %d: %w", userID, err)
	}
	return exists, nil
}
