// Package view renders client screens as plain text.
package view

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/vedran77/roster/internal/client/viewmodel"
	"github.com/vedran77/roster/internal/domain"
)

const (
	Title    = "User Management"
	Subtitle = "List, create, edit and delete users."
)

// shortID is how many leading id characters the table shows. Commands
// accept any unique prefix.
const shortID = 8

func Header(w io.Writer) {
	fmt.Fprintf(w, "%s\n%s\n\n", Title, Subtitle)
}

// UserList renders the list screen for state.
func UserList(w io.Writer, state viewmodel.ListState) error {
	switch {
	case state.Loading:
		_, err := fmt.Fprintln(w, "Loading...")
		return err
	case state.Error != "":
		_, err := fmt.Fprintf(w, "Error: %s\nType 'retry' to try again.\n", state.Error)
		return err
	case len(state.Users) == 0:
		_, err := fmt.Fprintln(w, "No users found")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tSKILL LEVEL")
	for _, u := range state.Users {
		id := u.ID.String()
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", id[:shortID], u.Name, u.Email, u.SkillLevel.Label())
	}
	return tw.Flush()
}

func FormTitle(editing bool) string {
	if editing {
		return "Edit User"
	}
	return "Create User"
}

// Form renders the form header, the general error banner and the current draft
// with any field errors under their inputs.
func Form(w io.Writer, editing bool, data viewmodel.FormData, errs map[string]string) {
	fmt.Fprintf(w, "%s\n", FormTitle(editing))
	if msg, ok := errs[viewmodel.FieldGeneral]; ok {
		fmt.Fprintf(w, "! %s\n", msg)
	}

	password := ""
	if data.Password != "" {
		password = "********"
	}

	rows := []struct{ field, label, value string }{
		{viewmodel.FieldName, FieldLabel(viewmodel.FieldName, editing), data.Name},
		{viewmodel.FieldEmail, FieldLabel(viewmodel.FieldEmail, editing), data.Email},
		{viewmodel.FieldPassword, FieldLabel(viewmodel.FieldPassword, editing), password},
		{viewmodel.FieldSkillLevel, FieldLabel(viewmodel.FieldSkillLevel, editing), data.SkillLevel.Label()},
	}
	for _, r := range rows {
		fmt.Fprintf(w, "  %s: %s\n", r.label, r.value)
		if msg, ok := errs[r.field]; ok {
			fmt.Fprintf(w, "    - %s\n", msg)
		}
	}

	// Errors the server reported for fields the form does not show.
	var extra []string
	for field := range errs {
		switch field {
		case viewmodel.FieldGeneral, viewmodel.FieldName, viewmodel.FieldEmail,
			viewmodel.FieldPassword, viewmodel.FieldSkillLevel:
		default:
			extra = append(extra, field)
		}
	}
	sort.Strings(extra)
	for _, field := range extra {
		fmt.Fprintf(w, "  %s: %s\n", field, errs[field])
	}
}

// FieldLabel is the prompt text for a form input. Required inputs are
// marked with an asterisk.
func FieldLabel(field string, editing bool) string {
	switch field {
	case viewmodel.FieldName:
		return "Name *"
	case viewmodel.FieldEmail:
		return "Email *"
	case viewmodel.FieldPassword:
		if editing {
			return "Password (leave blank to keep current)"
		}
		return "Password *"
	case viewmodel.FieldSkillLevel:
		return "Skill level *"
	}
	return field
}

// SkillOptions lists the selectable levels, one per line.
func SkillOptions(w io.Writer) {
	for _, s := range domain.SkillLevels() {
		fmt.Fprintf(w, "  %s\n", s.Label())
	}
}

func Alert(w io.Writer, message string) {
	fmt.Fprintf(w, "! %s\n", message)
}

func Help(w io.Writer) {
	fmt.Fprintln(w, "Commands: list, create, edit <id>, delete <id>, retry, help, exit")
}
