package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/vedran77/roster/internal/apperr"
	"github.com/vedran77/roster/internal/domain"
	"github.com/vedran77/roster/internal/logctx"
	"github.com/vedran77/roster/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserNotFound = apperr.NotFound("User not found")
	ErrEmailInUse   = apperr.Conflict("Email already in use")
)

// bcrypt ignores everything past 72 bytes and x/crypto refuses longer input.
const bcryptMaxInput = 72

// Notifier broadcasts user changes to connected clients.
type Notifier interface {
	NotifyUserCreated(user domain.UserResponse)
	NotifyUserUpdated(user domain.UserResponse)
	NotifyUserDeleted(id uuid.UUID)
}

type UserService struct {
	userRepo   repository.UserRepository
	bcryptCost int
	notifier   Notifier
}

func NewUserService(userRepo repository.UserRepository, bcryptCost int) *UserService {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &UserService{
		userRepo:   userRepo,
		bcryptCost: bcryptCost,
	}
}

// SetNotifier sets the real-time notifier (optional dependency).
func (s *UserService) SetNotifier(n Notifier) {
	s.notifier = n
}

func (s *UserService) GetAllUsers(ctx context.Context) ([]domain.UserResponse, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}

	out := make([]domain.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, users[i].ToResponse())
	}
	return out, nil
}

func (s *UserService) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	resp := user.ToResponse()
	return &resp, nil
}

// CreateUser expects input that already passed validation.
func (s *UserService) CreateUser(ctx context.Context, input domain.CreateUserInput) (*domain.UserResponse, error) {
	taken, err := s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, fmt.Errorf("checking email: %w", err)
	}
	if taken {
		return nil, ErrEmailInUse
	}

	hash, err := s.hashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		SkillLevel:   domain.SkillLevel(input.SkillLevel),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, fmt.Errorf("creating user: %w: %w", ErrEmailInUse, err)
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}

	resp := user.ToResponse()
	logctx.From(ctx).Info("user created", "user_id", resp.ID)
	if s.notifier != nil {
		s.notifier.NotifyUserCreated(resp)
	}

	return &resp, nil
}

// UpdateUser applies only the fields present in input.
func (s *UserService) UpdateUser(ctx context.Context, id uuid.UUID, input domain.UpdateUserInput) (*domain.UserResponse, error) {
	existing, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting user: %w", err)
	}
	if existing == nil {
		return nil, ErrUserNotFound
	}

	if input.Email != nil {
		taken, err := s.userRepo.ExistsByEmailExcludeID(ctx, *input.Email, id)
		if err != nil {
			return nil, fmt.Errorf("checking email: %w", err)
		}
		if taken {
			return nil, ErrEmailInUse
		}
	}

	patch := domain.UserPatch{
		Name:  input.Name,
		Email: input.Email,
	}
	if input.SkillLevel != nil {
		level := domain.SkillLevel(*input.SkillLevel)
		patch.SkillLevel = &level
	}
	if input.Password != nil {
		hash, err := s.hashPassword(*input.Password)
		if err != nil {
			return nil, fmt.Errorf("hashing password: %w", err)
		}
		patch.PasswordHash = &hash
	}

	if patch.IsEmpty() {
		logctx.From(ctx).Debug("empty user update", "user_id", id)
	}

	updated, err := s.userRepo.Update(ctx, id, patch)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, fmt.Errorf("updating user: %w: %w", ErrUserNotFound, err)
		case errors.Is(err, repository.ErrDuplicateEmail):
			return nil, fmt.Errorf("updating user: %w: %w", ErrEmailInUse, err)
		}
		return nil, fmt.Errorf("updating user: %w", err)
	}

	resp := updated.ToResponse()
	logctx.From(ctx).Info("user updated", "user_id", resp.ID, "password_changed", patch.PasswordHash != nil)
	if s.notifier != nil {
		s.notifier.NotifyUserUpdated(resp)
	}

	return &resp, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	existing, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("getting user: %w", err)
	}
	if existing == nil {
		return ErrUserNotFound
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("deleting user: %w: %w", ErrUserNotFound, err)
		}
		return fmt.Errorf("deleting user: %w", err)
	}

	logctx.From(ctx).Info("user deleted", "user_id", id)
	if s.notifier != nil {
		s.notifier.NotifyUserDeleted(id)
	}

	return nil
}

func (s *UserService) hashPassword(password string) (string, error) {
	b := []byte(password)
	if len(b) > bcryptMaxInput {
		b = b[:bcryptMaxInput]
	}

	hash, err := bcrypt.GenerateFromPassword(b, s.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
