package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/vedran77/roster/internal/domain"
)

//go:generate mockgen -destination=mocks/user_repository.go -package=mocks github.com/vedran77/roster/internal/repository UserRepository

var (
	ErrNotFound       = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already exists")
)

// UserRepository persists users.
//
// FindByID and FindByEmail return (nil, nil) when no row matches.
// Update and Delete return ErrNotFound for an unknown id. Create and Update
// return ErrDuplicateEmail when the email unique constraint fires.
type UserRepository interface {
	FindAll(ctx context.Context) ([]domain.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, id uuid.UUID, patch domain.UserPatch) (*domain.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByEmailExcludeID(ctx context.Context, email string, excludeID uuid.UUID) (bool, error)
}
