package viewmodel

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/vedran77/roster/internal/client/api"
	"github.com/vedran77/roster/internal/domain"
)

type ListService interface {
	GetAllUsers(ctx context.Context) ([]domain.UserResponse, error)
	DeleteUser(ctx context.Context, id string) error
}

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(prompt string) bool
}

// Alerter shows a blocking message.
type Alerter interface {
	Alert(message string)
}

type ListState struct {
	Loading bool
	Error   string
	Users   []domain.UserResponse
}

type List struct {
	svc     ListService
	confirm Confirmer
	alert   Alerter

	state       ListState
	seenRefresh uint64
}

// NewList starts in the loading state; call Load to fetch.
func NewList(svc ListService, confirm Confirmer, alert Alerter) *List {
	return &List{
		svc:     svc,
		confirm: confirm,
		alert:   alert,
		state:   ListState{Loading: true},
	}
}

func (l *List) State() ListState {
	s := l.state
	s.Users = append([]domain.UserResponse(nil), l.state.Users...)
	return s
}

func (l *List) Load(ctx context.Context) {
	l.state.Loading = true
	l.state.Error = ""

	users, err := l.svc.GetAllUsers(ctx)
	l.state.Loading = false
	if err != nil {
		l.state.Error = errorMessage(err, "Failed to fetch users")
		return
	}
	l.state.Users = users
}

func (l *List) Retry(ctx context.Context) { l.Load(ctx) }

// SyncRefresh reloads when counter differs from the last one seen.
// It reports whether a reload happened.
func (l *List) SyncRefresh(ctx context.Context, counter uint64) bool {
	if counter == l.seenRefresh {
		return false
	}
	l.seenRefresh = counter
	l.Load(ctx)
	return true
}

// Delete asks for confirmation, deletes the user and drops it from the
// local list. Failures are reported through the Alerter.
func (l *List) Delete(ctx context.Context, user domain.UserResponse) bool {
	if !l.confirm.Confirm(fmt.Sprintf("Delete %s? This cannot be undone.", user.Name)) {
		return false
	}

	if err := l.svc.DeleteUser(ctx, user.ID.String()); err != nil {
		l.alert.Alert("Failed to delete: " + errorMessage(err, "Failed to delete"))
		return false
	}

	kept := l.state.Users[:0:0]
	for _, u := range l.state.Users {
		if u.ID != user.ID {
			kept = append(kept, u)
		}
	}
	l.state.Users = kept
	return true
}

// Find returns the listed user whose id starts with prefix, if exactly one does.
func (l *List) Find(prefix string) (domain.UserResponse, bool) {
	var (
		found domain.UserResponse
		n     int
	)
	for _, u := range l.state.Users {
		if prefix != "" && strings.HasPrefix(u.ID.String(), prefix) {
			found = u
			n++
		}
	}
	return found, n == 1
}

func errorMessage(err error, fallback string) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return fallback
}
