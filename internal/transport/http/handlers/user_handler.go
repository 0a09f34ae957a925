package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/vedran77/roster/internal/domain"
	"github.com/vedran77/roster/pkg/validator"
)

// UserService is the use-case the handler drives.
type UserService interface {
	GetAllUsers(ctx context.Context) ([]domain.UserResponse, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*domain.UserResponse, error)
	CreateUser(ctx context.Context, input domain.CreateUserInput) (*domain.UserResponse, error)
	UpdateUser(ctx context.Context, id uuid.UUID, input domain.UpdateUserInput) (*domain.UserResponse, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

type UserHandler struct {
	userService UserService
}

func NewUserHandler(userService UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Routes registers the user endpoints on r.
func (h *UserHandler) Routes(r chi.Router) {
	r.Get("/users", h.List)
	r.Post("/users", h.Create)
	r.Get("/users/{id}", h.Get)
	r.Put("/users/{id}", h.Update)
	r.Delete("/users/{id}", h.Delete)
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.GetAllUsers(r.Context())
	if err != nil {
		writeAppError(w, r, err, "Failed to fetch users")
		return
	}

	writeSuccess(w, http.StatusOK, users, "")
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	user, err := h.userService.GetUserByID(r.Context(), id)
	if err != nil {
		writeAppError(w, r, err, "Failed to fetch user")
		return
	}

	writeSuccess(w, http.StatusOK, user, "")
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input domain.CreateUserInput
	if err := decodeBody(w, r, &input); err != nil {
		writeValidationErrors(w, bodyError())
		return
	}

	if errs := validator.ValidateCreateUser(input.Name, input.Email, input.Password, input.SkillLevel); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	user, err := h.userService.CreateUser(r.Context(), input)
	if err != nil {
		writeAppError(w, r, err, "Failed to create user")
		return
	}

	writeSuccess(w, http.StatusCreated, user, "User created successfully")
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var input domain.UpdateUserInput
	if err := decodeBody(w, r, &input); err != nil {
		writeValidationErrors(w, bodyError())
		return
	}

	if errs := validator.ValidateUpdateUser(input.Name, input.Email, input.Password, input.SkillLevel); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	user, err := h.userService.UpdateUser(r.Context(), id, input)
	if err != nil {
		writeAppError(w, r, err, "Failed to update user")
		return
	}

	writeSuccess(w, http.StatusOK, user, "User updated successfully")
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.userService.DeleteUser(r.Context(), id); err != nil {
		writeAppError(w, r, err, "Failed to delete user")
		return
	}

	writeSuccess(w, http.StatusOK, nil, "User deleted successfully")
}

func parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, errs := validator.ValidateUserID(chi.URLParam(r, "id"))
	if errs.HasErrors() {
		writeValidationErrors(w, errs)
		return uuid.Nil, false
	}
	return id, true
}
