package widgets

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/odvcencio/termstack/pkg/ui/backend"
	"github.com/odvcencio/termstack/pkg/ui/terminal"
)

// ListView shows a scrolling window over a list of strings.
type ListView struct {
	Focusable
	values  []string
	linePos int
}

// NewListView creates a list view over values.
func NewListView(values []string) *ListView {
	return &ListView{values: values}
}

// Values returns the listed strings.
func (l *ListView) Values() []string {
	return l.values
}

// SetValues replaces the listed strings.
func (l *ListView) SetValues(values []string) {
	l.values = values
	l.clamp()
	l.needsRender = true
}

// LinePos returns the index of the first visible value.
func (l *ListView) LinePos() int {
	return l.linePos
}

// BindRegion binds the list; the region needs at least one row.
func (l *ListView) BindRegion(region *backend.Region) error {
	if region != nil {
		if rows, cols := region.Size(); rows <= 0 {
			return geometryError("list region has no rows", rows, cols)
		}
	}
	if err := l.Base.BindRegion(region); err != nil {
		return err
	}
	l.clamp()
	return nil
}

// Resize resizes the list; the region needs at least one row.
func (l *ListView) Resize(rows, cols int) error {
	if rows <= 0 {
		return geometryError("list region has no rows", rows, cols)
	}
	if err := l.Base.Resize(rows, cols); err != nil {
		return err
	}
	l.clamp()
	return nil
}

// HandleInput scrolls on Up/Down and finalizes on Enter.
func (l *ListView) HandleInput(ev terminal.KeyEvent) (Signal, error) {
	if err := l.checkBound("input"); err != nil {
		return SignalActive, err
	}
	l.logger.Log("list handling key", terminal.KeyName(ev))

	switch ev.Key {
	case terminal.KeyDown:
		l.linePos++
	case terminal.KeyUp:
		l.linePos--
	case terminal.KeyEnter:
		return SignalFinalized, nil
	}
	l.clamp()
	l.needsRender = true
	return SignalActive, nil
}

// Draw renders the visible window starting at column 1.
func (l *ListView) Draw() error {
	if err := l.checkBound("draw"); err != nil {
		return err
	}
	l.clamp()
	l.region.Erase()

	if _, cols := l.region.Size(); cols > 1 {
		for i := 0; i < l.visible(); i++ {
			if err := l.region.Print(i, 1, l.values[l.linePos+i], backend.AttrNone); err != nil {
				return err
			}
		}
	}
	l.needsRender = false
	return nil
}

// visible returns the number of lines shown: min(region rows, len(values)).
func (l *ListView) visible() int {
	if l.region == nil {
		return 0
	}
	rows, _ := l.region.Size()
	return max(0, min(rows, len(l.values)))
}

func (l *ListView) clamp() {
	l.linePos = max(0, min(l.linePos, len(l.values)-l.visible()))
}

// MultiColumnList is a list view over rows of cells. Rows are rendered into
// fixed-width lines once per BindRegion: each cell is truncated or padded to
// cols/ncols - 1 cells. Resize keeps the lines computed at bind time.
type MultiColumnList struct {
	ListView
	rows [][]string
}

// NewMultiColumnList creates a multi-column list over rows.
func NewMultiColumnList(rows [][]string) *MultiColumnList {
	return &MultiColumnList{rows: rows}
}

// Rows returns the raw cell rows.
func (m *MultiColumnList) Rows() [][]string {
	return m.rows
}

// BindRegion lays the rows out for the region width and binds the list.
func (m *MultiColumnList) BindRegion(region *backend.Region) error {
	if region == nil {
		return m.ListView.BindRegion(region)
	}
	rows, cols := region.Size()
	lines, err := columnize(m.rows, rows, cols)
	if err != nil {
		return err
	}
	m.values = lines
	return m.ListView.BindRegion(region)
}

// columnize joins each row's cells into one line of equal-width columns.
// Rows shorter than the widest row are padded with blank cells.
func columnize(rows [][]string, regionRows, regionCols int) ([]string, error) {
	ncols := 0
	for _, row := range rows {
		ncols = max(ncols, len(row))
	}
	if ncols == 0 {
		return nil, nil
	}

	width := regionCols/ncols - 1
	if width < 1 {
		return nil, geometryError("region too narrow for columns", regionRows, regionCols).
			WithContext("columns", ncols)
	}

	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		var sb strings.Builder
		for c := 0; c < ncols; c++ {
			cell := ""
			if c < len(row) {
				cell = row[c]
			}
			sb.WriteString(runewidth.FillRight(runewidth.Truncate(cell, width, ""), width))
		}
		lines = append(lines, sb.String())
	}
	return lines, nil
}

var (
	_ InputHandler = (*ListView)(nil)
	_ InputHandler = (*MultiColumnList)(nil)
)
