package memory

import (
	"context"
	"sync"

	"github.com/financeapp/personal_finance_api/internal/core/domain"
	portsrepo "github.com/financeapp/personal_finance_api/internal/core/ports/repositories"
)

// UserRepository is the in-memory user store backing the directory existence
// check and dev seeding.
type UserRepository struct {
	mu    sync.RWMutex
	users map[int64]*domain.User
	seq   int64
}

// NewUserRepository creates an empty in-memory user store.
func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[int64]*domain.User)}
}

var _ portsrepo.UserRepositoryFacade = (*UserRepository)(nil)

func (r *UserRepository) SaveUser(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	user.ID = r.seq

	stored := *user
	r.users[stored.ID] = &stored
	return nil
}

func (r *UserRepository) UserExists(_ context.Context, userID int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.users[userID]
	return ok, nil
}
