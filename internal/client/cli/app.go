// Package cli is the interactive terminal front end for user management.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/vedran77/roster/internal/client/api"
	"github.com/vedran77/roster/internal/client/view"
	"github.com/vedran77/roster/internal/client/viewmodel"
	"github.com/vedran77/roster/internal/domain"
)

type UserService interface {
	viewmodel.ListService
	viewmodel.FormService
	GetUserByID(ctx context.Context, id string) (*domain.UserResponse, error)
}

type App struct {
	svc    UserService
	nav    *viewmodel.Navigation
	list   *viewmodel.List
	reader *bufio.Reader
	out    io.Writer
}

func NewApp(svc UserService, nav *viewmodel.Navigation, in io.Reader, out io.Writer) *App {
	a := &App{
		svc:    svc,
		nav:    nav,
		reader: bufio.NewReader(in),
		out:    out,
	}
	a.list = viewmodel.NewList(svc, a, a)
	return a
}

// Run shows the user list and serves commands until the user leaves.
func (a *App) Run(ctx context.Context) {
	view.Header(a.out)
	a.list.Load(ctx)
	a.renderList()
	runREPL(ctx, a, a.reader)
}

func (a *App) Confirm(prompt string) bool {
	answer, err := GetSimpleText(a.reader, prompt+" [y/N]", a.out)
	if err != nil {
		return false
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true
	}
	return false
}

func (a *App) Alert(message string) {
	view.Alert(a.out, message)
}

func (a *App) Help() {
	view.Help(a.out)
}

// SyncList reloads and shows the list if the refresh counter moved.
func (a *App) SyncList(ctx context.Context) {
	if a.list.SyncRefresh(ctx, a.nav.RefreshCount()) {
		a.renderList()
	}
}

func (a *App) ShowList(ctx context.Context) {
	a.nav.ShowList()
	a.nav.Refresh()
	a.SyncList(ctx)
}

func (a *App) Retry(ctx context.Context) {
	a.list.Retry(ctx)
	a.renderList()
}

func (a *App) Create(ctx context.Context) {
	a.nav.ShowCreate()
	a.runForm(ctx, nil)
}

func (a *App) Edit(ctx context.Context, ref string) {
	user, ok := a.resolve(ctx, ref)
	if !ok {
		return
	}
	a.nav.ShowEdit(user)
	a.runForm(ctx, &user)
}

func (a *App) Delete(ctx context.Context, ref string) {
	user, ok := a.resolve(ctx, ref)
	if !ok {
		return
	}
	if a.list.Delete(ctx, user) {
		fmt.Fprintln(a.out, "User deleted successfully")
		a.nav.UserDeleted()
	}
}

func (a *App) renderList() {
	if err := view.UserList(a.out, a.list.State()); err != nil {
		fmt.Fprintln(a.out, err)
	}
}

// resolve finds a user by id prefix in the loaded list, then asks the
// server for an exact id.
func (a *App) resolve(ctx context.Context, ref string) (domain.UserResponse, bool) {
	if u, ok := a.list.Find(ref); ok {
		return u, true
	}

	u, err := a.svc.GetUserByID(ctx, ref)
	if err != nil {
		a.Alert(errorMessage(err))
		return domain.UserResponse{}, false
	}
	return *u, true
}

func (a *App) runForm(ctx context.Context, user *domain.UserResponse) {
	form := viewmodel.NewForm(a.svc, user)
	fmt.Fprintln(a.out, view.FormTitle(form.IsEditing()))

	for {
		if err := a.fillForm(form); err != nil {
			a.nav.ShowList()
			return
		}

		saved, ok := form.Submit(ctx)
		if ok {
			msg := "User created successfully"
			if form.IsEditing() {
				msg = "User updated successfully"
			}
			fmt.Fprintf(a.out, "%s: %s\n", msg, saved.Name)
			a.nav.FormSucceeded()
			return
		}

		view.Form(a.out, form.IsEditing(), form.Data(), form.Errors())
		if !a.Confirm("Fix and try again?") {
			a.nav.ShowList()
			return
		}
	}
}

// fillForm prompts for every input. A blank answer keeps the shown value,
// except for the password which is never shown.
func (a *App) fillForm(form *viewmodel.Form) error {
	data := form.Data()
	editing := form.IsEditing()

	inputs := []struct {
		field   string
		current string
	}{
		{viewmodel.FieldName, data.Name},
		{viewmodel.FieldEmail, data.Email},
		{viewmodel.FieldPassword, ""},
		{viewmodel.FieldSkillLevel, string(data.SkillLevel)},
	}

	for _, in := range inputs {
		prompt := view.FieldLabel(in.field, editing)
		if in.current != "" {
			prompt += " [" + in.current + "]"
		}

		var (
			value string
			err   error
		)
		switch in.field {
		case viewmodel.FieldPassword:
			value, err = GetPassword(a.reader, prompt, a.out)
		case viewmodel.FieldSkillLevel:
			view.SkillOptions(a.out)
			value, err = GetSimpleText(a.reader, prompt, a.out)
			value = strings.ToUpper(value)
		default:
			value, err = GetSimpleText(a.reader, prompt, a.out)
		}
		if err != nil {
			return err
		}

		if value == "" && in.field != viewmodel.FieldPassword {
			value = in.current
		}
		if err := form.SetField(in.field, value); err != nil {
			return err
		}
	}
	return nil
}

func errorMessage(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}
