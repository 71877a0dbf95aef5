package panel

import (
	"fmt"

	"github.com/thomas-vilte/branchmate/internal/models"
)

// View is the visible section of the panel.
type View int

const (
	ViewHome View = iota
	ViewSettings
)

func (v View) String() string {
	switch v {
	case ViewHome:
		return "home"
	case ViewSettings:
		return "settings"
	}
	return fmt.Sprintf("View(%d)", int(v))
}

// Panel is the display state: which view is selected, whether the body is
// collapsed, and the settings table as edited but not yet saved.
type Panel struct {
	view      View
	collapsed bool
	draft     [models.MaxExtraTagPairs]models.ExtraTagPair
	dirty     bool
}

// New returns a collapsed panel on the home view.
func New() *Panel {
	return &Panel{view: ViewHome, collapsed: true}
}

func (p *Panel) View() View {
	return p.view
}

func (p *Panel) Collapsed() bool {
	return p.collapsed
}

// Showing reports whether v is the expanded view.
func (p *Panel) Showing(v View) bool {
	return !p.collapsed && p.view == v
}

func (p *Panel) ShowHome() {
	p.view = ViewHome
	p.collapsed = false
}

func (p *Panel) ShowSettings() {
	p.view = ViewSettings
	p.collapsed = false
}

func (p *Panel) Toggle() {
	p.collapsed = !p.collapsed
}

// LoadDraft replaces the table with stored pairs and marks it clean.
func (p *Panel) LoadDraft(pairs []models.ExtraTagPair) {
	p.draft = [models.MaxExtraTagPairs]models.ExtraTagPair{}
	copy(p.draft[:], pairs)
	p.dirty = false
}

// SetRow edits row (1-based) of the table.
func (p *Panel) SetRow(row int, pair models.ExtraTagPair) error {
	if row < 1 || row > models.MaxExtraTagPairs {
		return fmt.Errorf("row %d out of range 1-%d", row, models.MaxExtraTagPairs)
	}
	if p.draft[row-1] != pair {
		p.draft[row-1] = pair
		p.dirty = true
	}
	return nil
}

// Draft returns all table rows, empty ones included.
func (p *Panel) Draft() []models.ExtraTagPair {
	rows := make([]models.ExtraTagPair, len(p.draft))
	copy(rows, p.draft[:])
	return rows
}

// Dirty reports unsaved table edits.
func (p *Panel) Dirty() bool {
	return p.dirty
}
