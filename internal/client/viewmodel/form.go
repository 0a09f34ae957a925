package viewmodel

import (
	"context"
	"errors"
	"fmt"

	"github.com/vedran77/roster/internal/client/api"
	"github.com/vedran77/roster/internal/domain"
	"github.com/vedran77/roster/pkg/validator"
)

const (
	FieldName       = "name"
	FieldEmail      = "email"
	FieldPassword   = "password"
	FieldSkillLevel = "skillLevel"
	// FieldGeneral holds errors that belong to no single input.
	FieldGeneral = "general"
)

type FormService interface {
	CreateUser(ctx context.Context, input domain.CreateUserInput) (*domain.UserResponse, error)
	UpdateUser(ctx context.Context, id string, input domain.UpdateUserInput) (*domain.UserResponse, error)
}

type FormData struct {
	Name       string
	Email      string
	Password   string
	SkillLevel domain.SkillLevel
}

type Form struct {
	svc     FormService
	editing *domain.UserResponse

	data    FormData
	errors  map[string]string
	loading bool
}

// NewForm builds a create form when user is nil and an edit form otherwise.
// The password always starts blank.
func NewForm(svc FormService, user *domain.UserResponse) *Form {
	f := &Form{svc: svc, errors: map[string]string{}}
	if user != nil {
		u := *user
		f.editing = &u
		f.data = FormData{Name: u.Name, Email: u.Email, SkillLevel: u.SkillLevel}
	} else {
		f.data = FormData{SkillLevel: domain.DefaultSkillLevel}
	}
	return f
}

func (f *Form) IsEditing() bool { return f.editing != nil }

func (f *Form) Data() FormData { return f.data }

func (f *Form) Loading() bool { return f.loading }

func (f *Form) Errors() map[string]string {
	out := make(map[string]string, len(f.errors))
	for k, v := range f.errors {
		out[k] = v
	}
	return out
}

// SetField updates one input and clears its error.
func (f *Form) SetField(field, value string) error {
	switch field {
	case FieldName:
		f.data.Name = value
	case FieldEmail:
		f.data.Email = value
	case FieldPassword:
		f.data.Password = value
	case FieldSkillLevel:
		f.data.SkillLevel = domain.SkillLevel(value)
	default:
		return fmt.Errorf("unknown form field %q", field)
	}
	delete(f.errors, field)
	return nil
}

// Validate checks the draft with the server's rules. On edit an empty
// password means "keep the current one".
func (f *Form) Validate() bool {
	name, email, skill := f.data.Name, f.data.Email, string(f.data.SkillLevel)

	var errs validator.ValidationErrors
	if f.IsEditing() {
		errs = validator.ValidateUpdateUser(&name, &email, f.passwordIfSet(), &skill)
	} else {
		errs = validator.ValidateCreateUser(name, email, f.data.Password, skill)
	}

	f.errors = errs.Fields()
	return !errs.HasErrors()
}

// Submit validates and sends the draft. It returns the saved user and true
// on success; otherwise the errors map explains what went wrong.
func (f *Form) Submit(ctx context.Context) (*domain.UserResponse, bool) {
	if !f.Validate() {
		return nil, false
	}

	f.loading = true
	f.errors = map[string]string{}
	defer func() { f.loading = false }()

	var (
		user *domain.UserResponse
		err  error
	)
	if f.IsEditing() {
		skill := string(f.data.SkillLevel)
		user, err = f.svc.UpdateUser(ctx, f.editing.ID.String(), domain.UpdateUserInput{
			Name:       &f.data.Name,
			Email:      &f.data.Email,
			Password:   f.passwordIfSet(),
			SkillLevel: &skill,
		})
	} else {
		user, err = f.svc.CreateUser(ctx, domain.CreateUserInput{
			Name:       f.data.Name,
			Email:      f.data.Email,
			Password:   f.data.Password,
			SkillLevel: string(f.data.SkillLevel),
		})
	}

	if err != nil {
		f.setSubmitError(err)
		return nil, false
	}
	return user, true
}

// Reset clears the draft back to an empty create form.
func (f *Form) Reset() {
	f.data = FormData{SkillLevel: domain.DefaultSkillLevel}
	f.errors = map[string]string{}
}

func (f *Form) passwordIfSet() *string {
	if f.data.Password == "" {
		return nil
	}
	pw := f.data.Password
	return &pw
}

func (f *Form) setSubmitError(err error) {
	var apiErr *api.Error
	switch {
	case errors.As(err, &apiErr) && apiErr.HasDetails():
		for _, d := range apiErr.Details {
			f.errors[d.Field] = d.Message
		}
	case apiErr != nil:
		f.errors[FieldGeneral] = apiErr.Message
	default:
		f.errors[FieldGeneral] = "An error occurred"
	}
}
