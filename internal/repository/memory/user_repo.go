// Package memory is a map-backed UserRepository. The server uses it when
// STORAGE=memory and the HTTP tests use it to run without a database.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vedran77/roster/internal/domain"
	"github.com/vedran77/roster/internal/repository"
)

type entry struct {
	user domain.User
	seq  uint64
}

type UserRepo struct {
	mu    sync.RWMutex
	users map[uuid.UUID]*entry
	seq   uint64
	now   func() time.Time
}

func NewUserRepo() *UserRepo {
	return &UserRepo{
		users: make(map[uuid.UUID]*entry),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (r *UserRepo) FindAll(_ context.Context) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]*entry, 0, len(r.users))
	for _, e := range r.users {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if !a.user.CreatedAt.Equal(b.user.CreatedAt) {
			return a.user.CreatedAt.After(b.user.CreatedAt)
		}
		return a.seq > b.seq
	})

	users := make([]domain.User, 0, len(entries))
	for _, e := range entries {
		users = append(users, e.user)
	}
	return users, nil
}

func (r *UserRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	u := e.user
	return &u, nil
}

func (r *UserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, e := range r.users {
		if e.user.Email == email {
			u := e.user
			return &u, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) Create(_ context.Context, user *domain.User) error {
	const op = "memory.UserRepo.Create"

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.emailTaken(user.Email, uuid.Nil) {
		return fmt.Errorf("%s: %w", op, repository.ErrDuplicateEmail)
	}

	now := r.now()
	user.ID = uuid.New()
	user.CreatedAt = now
	user.UpdatedAt = now

	r.seq++
	r.users[user.ID] = &entry{user: *user, seq: r.seq}
	return nil
}

func (r *UserRepo) Update(_ context.Context, id uuid.UUID, patch domain.UserPatch) (*domain.User, error) {
	const op = "memory.UserRepo.Update"

	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, repository.ErrNotFound)
	}
	if patch.Email != nil && r.emailTaken(*patch.Email, id) {
		return nil, fmt.Errorf("%s: %w", op, repository.ErrDuplicateEmail)
	}

	u := e.user
	if patch.Name != nil {
		u.Name = *patch.Name
	}
	if patch.Email != nil {
		u.Email = *patch.Email
	}
	if patch.SkillLevel != nil {
		u.SkillLevel = *patch.SkillLevel
	}
	if patch.PasswordHash != nil {
		u.PasswordHash = *patch.PasswordHash
	}
	if now := r.now(); now.After(u.UpdatedAt) {
		u.UpdatedAt = now
	}

	e.user = u
	return &u, nil
}

func (r *UserRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return fmt.Errorf("memory.UserRepo.Delete: %w", repository.ErrNotFound)
	}
	delete(r.users, id)
	return nil
}

func (r *UserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.emailTaken(email, uuid.Nil), nil
}

func (r *UserRepo) ExistsByEmailExcludeID(_ context.Context, email string, excludeID uuid.UUID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.emailTaken(email, excludeID), nil
}

// emailTaken must be called with mu held.
func (r *UserRepo) emailTaken(email string, excludeID uuid.UUID) bool {
	for id, e := range r.users {
		if id != excludeID && e.user.Email == email {
			return true
		}
	}
	return false
}
