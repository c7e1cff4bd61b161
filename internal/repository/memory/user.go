package memory

import (
	"context"
	"sort"
	"time"

	"github.com/cmlabs-hris/certtracker/internal/domain/employee"
	"github.com/cmlabs-hris/certtracker/internal/domain/user"
)

type userRepositoryImpl struct {
	store *Store
}

func NewUserRepository(s *Store) user.UserRepository {
	return &userRepositoryImpl{store: s}
}

// GetByID implements user.UserRepository.
func (r *userRepositoryImpl) GetByID(ctx context.Context, id string) (user.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	u, ok := r.store.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

// GetByEmail implements user.UserRepository. Matching is exact.
func (r *userRepositoryImpl) GetByEmail(ctx context.Context, email string) (user.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, u := range r.store.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

// List implements user.UserRepository.
func (r *userRepositoryImpl) List(ctx context.Context) ([]user.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	users := make([]user.User, 0, len(r.store.users))
	for _, u := range r.store.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool {
		if users[i].CreatedAt.Equal(users[j].CreatedAt) {
			return users[i].ID < users[j].ID
		}
		return users[i].CreatedAt.Before(users[j].CreatedAt)
	})
	return users, nil
}

// Create implements user.UserRepository.
func (r *userRepositoryImpl) Create(ctx context.Context, newUser user.User) (user.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, u := range r.store.users {
		if u.Email == newUser.Email {
			return user.User{}, user.ErrDuplicateEmail
		}
	}

	if newUser.ID == "" {
		newUser.ID = employee.NewID()
	}
	if newUser.CreatedAt.IsZero() {
		newUser.CreatedAt = time.Now().UTC()
	}
	r.store.users[newUser.ID] = newUser
	id := newUser.ID
	r.store.recordUndo(ctx, func() { delete(r.store.users, id) })
	return newUser, nil
}

// UpdateRole implements user.UserRepository.
func (r *userRepositoryImpl) UpdateRole(ctx context.Context, id string, role user.Role, managerCode *string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	u, ok := r.store.users[id]
	if !ok {
		return user.ErrUserNotFound
	}
	prev := u
	u.Role = role
	u.ManagerCode = managerCode
	r.store.users[id] = u
	r.store.recordUndo(ctx, func() { r.store.users[id] = prev })
	return nil
}
