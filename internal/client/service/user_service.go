// Package service sits between the view-models and the API client. It
// re-validates input and turns every failure into an *api.Error.
package service

import (
	"context"
	"errors"
	"net/http"

	"github.com/vedran77/roster/internal/client/api"
	"github.com/vedran77/roster/internal/domain"
	"github.com/vedran77/roster/pkg/validator"
)

// Gateway is the transport the service calls. *api.Client implements it.
type Gateway interface {
	GetAllUsers(ctx context.Context) ([]domain.UserResponse, error)
	GetUserByID(ctx context.Context, id string) (*domain.UserResponse, error)
	CreateUser(ctx context.Context, input domain.CreateUserInput) (*domain.UserResponse, error)
	UpdateUser(ctx context.Context, id string, input domain.UpdateUserInput) (*domain.UserResponse, error)
	DeleteUser(ctx context.Context, id string) error
}

var errMissingID = &api.Error{Status: http.StatusBadRequest, Message: "User ID is required"}

type UserService struct {
	gateway Gateway
}

func NewUserService(gateway Gateway) *UserService {
	return &UserService{gateway: gateway}
}

func (s *UserService) GetAllUsers(ctx context.Context) ([]domain.UserResponse, error) {
	users, err := s.gateway.GetAllUsers(ctx)
	if err != nil {
		return nil, normalize(err, "Failed to fetch users")
	}
	return users, nil
}

func (s *UserService) GetUserByID(ctx context.Context, id string) (*domain.UserResponse, error) {
	if id == "" {
		return nil, errMissingID
	}

	user, err := s.gateway.GetUserByID(ctx, id)
	if err != nil {
		return nil, normalize(err, "Failed to fetch user")
	}
	return user, nil
}

func (s *UserService) CreateUser(ctx context.Context, input domain.CreateUserInput) (*domain.UserResponse, error) {
	if errs := validator.ValidateCreateUser(input.Name, input.Email, input.Password, input.SkillLevel); errs.HasErrors() {
		return nil, validationError(errs)
	}

	user, err := s.gateway.CreateUser(ctx, input)
	if err != nil {
		return nil, normalize(err, "Failed to create user")
	}
	return user, nil
}

func (s *UserService) UpdateUser(ctx context.Context, id string, input domain.UpdateUserInput) (*domain.UserResponse, error) {
	if id == "" {
		return nil, errMissingID
	}
	if errs := validator.ValidateUpdateUser(input.Name, input.Email, input.Password, input.SkillLevel); errs.HasErrors() {
		return nil, validationError(errs)
	}

	user, err := s.gateway.UpdateUser(ctx, id, input)
	if err != nil {
		return nil, normalize(err, "Failed to update user")
	}
	return user, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	if id == "" {
		return errMissingID
	}

	if err := s.gateway.DeleteUser(ctx, id); err != nil {
		return normalize(err, "Failed to delete user")
	}
	return nil
}

func validationError(errs validator.ValidationErrors) *api.Error {
	return &api.Error{Status: http.StatusBadRequest, Message: "Validation failed", Details: errs}
}

// normalize passes *api.Error through and wraps anything else as a 500.
func normalize(err error, message string) *api.Error {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return &api.Error{Status: http.StatusInternalServerError, Message: message, Err: err}
}
