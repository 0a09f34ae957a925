package validator

import (
	"net/mail"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	maxNameLen     = 100
	maxEmailLen    = 255
	minPasswordLen = 8
	maxPasswordLen = 100
)

// FieldError describes one invalid input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors keeps field errors in the order they were found.
type ValidationErrors []FieldError

func (v ValidationErrors) HasErrors() bool {
	return len(v) > 0
}

func (v *ValidationErrors) Add(field, message string) {
	*v = append(*v, FieldError{Field: field, Message: message})
}

// Fields returns the first message reported for each field.
func (v ValidationErrors) Fields() map[string]string {
	out := make(map[string]string, len(v))
	for _, fe := range v {
		if _, ok := out[fe.Field]; !ok {
			out[fe.Field] = fe.Message
		}
	}
	return out
}

// emailShape rejects addresses without a dot in the domain, which
// net/mail accepts.
var emailShape = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var skillLevels = map[string]struct{}{
	"A": {}, "B": {}, "C": {}, "D": {}, "E": {}, "F": {},
}

func ValidateCreateUser(name, email, password, skillLevel string) ValidationErrors {
	var errs ValidationErrors

	validateName(name, &errs)
	validateEmail(email, &errs)
	if password == "" {
		errs.Add("password", "Password is required")
	} else {
		validatePassword(password, &errs)
	}
	validateSkillLevel(skillLevel, &errs)

	return errs
}

// ValidateUpdateUser checks only the fields that are present.
func ValidateUpdateUser(name, email, password, skillLevel *string) ValidationErrors {
	var errs ValidationErrors

	if name != nil {
		validateName(*name, &errs)
	}
	if email != nil {
		validateEmail(*email, &errs)
	}
	if password != nil {
		validatePassword(*password, &errs)
	}
	if skillLevel != nil {
		validateSkillLevel(*skillLevel, &errs)
	}

	return errs
}

func ValidateUserID(raw string) (uuid.UUID, ValidationErrors) {
	var errs ValidationErrors

	id, err := uuid.Parse(raw)
	if err != nil {
		errs.Add("id", "Invalid user ID format")
		return uuid.Nil, errs
	}

	return id, errs
}

// validateName measures the raw value since that is what gets stored.
func validateName(name string, errs *ValidationErrors) {
	if strings.TrimSpace(name) == "" {
		errs.Add("name", "Name is required")
	} else if utf8.RuneCountInString(name) > maxNameLen {
		errs.Add("name", "Name must be at most 100 characters")
	}
}

func validateEmail(email string, errs *ValidationErrors) {
	if strings.TrimSpace(email) == "" {
		errs.Add("email", "Email is required")
		return
	}
	if utf8.RuneCountInString(email) > maxEmailLen {
		errs.Add("email", "Email must be at most 255 characters")
		return
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || !emailShape.MatchString(email) {
		errs.Add("email", "Invalid email address")
	}
}

func validatePassword(password string, errs *ValidationErrors) {
	n := utf8.RuneCountInString(password)
	if n < minPasswordLen {
		errs.Add("password", "Password must be at least 8 characters")
	} else if n > maxPasswordLen {
		errs.Add("password", "Password must be at most 100 characters")
	}
}

func validateSkillLevel(level string, errs *ValidationErrors) {
	if level == "" {
		errs.Add("skillLevel", "Skill level is required")
		return
	}
	if _, ok := skillLevels[level]; !ok {
		errs.Add("skillLevel", "Skill level must be one of A, B, C, D, E, F")
	}
}
