// Package viewmodel holds the screen state of the terminal client.
package viewmodel

import (
	"sync"

	"github.com/vedran77/roster/internal/domain"
)

type Mode int

const (
	ModeList Mode = iota
	ModeCreate
	ModeEdit
)

func (m Mode) String() string {
	switch m {
	case ModeCreate:
		return "create"
	case ModeEdit:
		return "edit"
	default:
		return "list"
	}
}

// Navigation tracks which screen is shown, the user being edited and a
// refresh counter the list compares against to know when to reload.
// It is safe for concurrent use; the event listener bumps the counter from
// its own goroutine.
type Navigation struct {
	mu       sync.Mutex
	mode     Mode
	selected *domain.UserResponse
	refresh  uint64
}

func NewNavigation() *Navigation {
	return &Navigation{mode: ModeList}
}

func (n *Navigation) Mode() Mode {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.mode
}

// Selected returns the user being edited, or nil outside edit mode.
func (n *Navigation) Selected() *domain.UserResponse {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.selected == nil {
		return nil
	}
	u := *n.selected
	return &u
}

func (n *Navigation) RefreshCount() uint64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.refresh
}

func (n *Navigation) ShowList() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.mode = ModeList
	n.selected = nil
}

func (n *Navigation) ShowCreate() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.mode = ModeCreate
	n.selected = nil
}

func (n *Navigation) ShowEdit(user domain.UserResponse) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.mode = ModeEdit
	n.selected = &user
}

// FormSucceeded returns to the list and asks it to reload.
func (n *Navigation) FormSucceeded() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.mode = ModeList
	n.selected = nil
	n.refresh++
}

func (n *Navigation) UserDeleted() { n.Refresh() }

func (n *Navigation) Refresh() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.refresh++
}
