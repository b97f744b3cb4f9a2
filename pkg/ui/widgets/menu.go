package widgets

import (
	"github.com/odvcencio/termstack/pkg/ui/backend"
	"github.com/odvcencio/termstack/pkg/ui/terminal"
)

// Menu is a list view with a highlighted cursor row.
// The cursor is 1-based within the visible window; the window start is the
// list position. Confirming selects ListPos + Cursor - 1.
type Menu struct {
	ListView
	cursor   int
	selected int
}

// NewMenu creates a menu over values with the cursor on the first row.
func NewMenu(values []string) *Menu {
	return &Menu{
		ListView: ListView{values: values},
		cursor:   1,
		selected: -1,
	}
}

// Cursor returns the 1-based cursor row within the visible window.
func (m *Menu) Cursor() int {
	return m.cursor
}

// ListPos returns the index of the first visible value.
func (m *Menu) ListPos() int {
	return m.linePos
}

// Selected returns the confirmed index, if any.
func (m *Menu) Selected() (int, bool) {
	return m.selected, m.selected >= 0
}

// SelectedValue returns the confirmed value, if any.
func (m *Menu) SelectedValue() (string, bool) {
	if m.selected < 0 || m.selected >= len(m.values) {
		return "", false
	}
	return m.values[m.selected], true
}

// SetValues replaces the menu entries and resets the cursor and selection.
func (m *Menu) SetValues(values []string) {
	m.values = values
	m.linePos, m.cursor, m.selected = 0, 1, -1
	m.needsRender = true
}

// BindRegion binds the menu; the region needs at least one row.
func (m *Menu) BindRegion(region *backend.Region) error {
	if err := m.ListView.BindRegion(region); err != nil {
		return err
	}
	m.normalize()
	return nil
}

// HandleInput moves the cursor on Up/Down and records the selection on Enter.
func (m *Menu) HandleInput(ev terminal.KeyEvent) (Signal, error) {
	if err := m.checkBound("input"); err != nil {
		return SignalActive, err
	}
	m.logger.Log("menu handling key", terminal.KeyName(ev))

	switch ev.Key {
	case terminal.KeyDown:
		m.cursor++
	case terminal.KeyUp:
		m.cursor--
	case terminal.KeyEnter:
		if m.visible() == 0 {
			m.selected = -1
		} else {
			m.selected = m.linePos + m.cursor - 1
		}
		m.logger.Logf("menu selected %d", m.selected)
		return SignalFinalized, nil
	}
	m.normalize()
	m.needsRender = true
	return SignalActive, nil
}

// Draw renders the visible window with the cursor row in standout.
func (m *Menu) Draw() error {
	if err := m.checkBound("draw"); err != nil {
		return err
	}
	m.normalize()
	m.region.Erase()

	if _, cols := m.region.Size(); cols > 1 {
		for i := 0; i < m.visible(); i++ {
			attr := backend.AttrNone
			if i+1 == m.cursor {
				attr = backend.AttrStandout
			}
			if err := m.region.Print(i, 1, m.values[m.linePos+i], attr); err != nil {
				return err
			}
		}
	}
	m.needsRender = false
	return nil
}

// normalize pulls a cursor that left the window back to its edge, scrolling
// the window by one line, then caps the window at the end of the list.
func (m *Menu) normalize() {
	lines := m.visible()
	if lines == 0 {
		m.linePos, m.cursor = 0, 1
		return
	}

	switch {
	case m.cursor > lines:
		m.linePos++
		m.cursor = lines
	case m.cursor < 1:
		m.linePos = max(0, m.linePos-1)
		m.cursor = 1
	}
	if m.linePos+lines > len(m.values) {
		m.linePos = len(m.values) - lines
	}
}

var _ InputHandler = (*Menu)(nil)
