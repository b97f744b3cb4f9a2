package backend

import (
	"github.com/mattn/go-runewidth"

	"github.com/odvcencio/termstack/pkg/errors"
)

// Region is a rectangular, bounded area of a Surface.
// Coordinates passed to a region are relative to its own origin; the region
// is positioned relative to its parent, so moving a parent moves its children.
type Region struct {
	surface Surface
	parent  *Region

	y, x       int // offset within parent (absolute for a root region)
	rows, cols int

	style          Style
	curRow, curCol int
}

// NewRootRegion creates a region covering the whole surface.
func NewRootRegion(s Surface) *Region {
	w, h := s.Size()
	return &Region{
		surface: s,
		rows:    h,
		cols:    w,
		style:   DefaultStyle(),
	}
}

// NewRegion creates a parentless region at an absolute surface position.
func NewRegion(s Surface, y, x, rows, cols int) (*Region, error) {
	if rows < 0 || cols < 0 || y < 0 || x < 0 {
		return nil, errors.New(errors.ErrCodeBackendFailure, "region outside surface").
			WithContext("y", y).WithContext("x", x).
			WithContext("rows", rows).WithContext("cols", cols)
	}
	return &Region{surface: s, y: y, x: x, rows: rows, cols: cols, style: DefaultStyle()}, nil
}

// Derive creates a sub-region at (y, x) relative to r with the given size.
// The sub-region must lie entirely inside r. It inherits r's style.
func (r *Region) Derive(rows, cols, y, x int) (*Region, error) {
	if !r.fits(y, x, rows, cols) {
		return nil, errors.New(errors.ErrCodeBackendFailure, "sub-region outside parent").
			WithContext("y", y).WithContext("x", x).
			WithContext("rows", rows).WithContext("cols", cols).
			WithContext("parent", [2]int{r.rows, r.cols})
	}
	return &Region{
		surface: r.surface,
		parent:  r,
		y:       y,
		x:       x,
		rows:    rows,
		cols:    cols,
		style:   r.style,
	}, nil
}

func (r *Region) fits(y, x, rows, cols int) bool {
	return y >= 0 && x >= 0 && rows >= 0 && cols >= 0 &&
		y+rows <= r.rows && x+cols <= r.cols
}

// Move repositions the region within its parent.
func (r *Region) Move(y, x int) error {
	if r.parent != nil && !r.parent.fits(y, x, r.rows, r.cols) {
		return errors.New(errors.ErrCodeBackendFailure, "move outside parent").
			WithContext("y", y).WithContext("x", x)
	}
	r.y, r.x = y, x
	return nil
}

// Resize changes the region dimensions. A derived region must still fit its parent.
func (r *Region) Resize(rows, cols int) error {
	if rows < 0 || cols < 0 || (r.parent != nil && !r.parent.fits(r.y, r.x, rows, cols)) {
		return errors.New(errors.ErrCodeBackendFailure, "resize outside parent").
			WithContext("rows", rows).WithContext("cols", cols)
	}
	r.rows, r.cols = rows, cols
	if r.curRow >= rows || r.curCol >= cols {
		r.curRow, r.curCol = 0, 0
	}
	return nil
}

// Size returns the region dimensions.
func (r *Region) Size() (rows, cols int) {
	return r.rows, r.cols
}

// Offset returns the region position relative to its parent.
func (r *Region) Offset() (y, x int) {
	return r.y, r.x
}

// Origin returns the absolute surface position of the region's top-left cell.
func (r *Region) Origin() (y, x int) {
	y, x = r.y, r.x
	for p := r.parent; p != nil; p = p.parent {
		y += p.y
		x += p.x
	}
	return y, x
}

// Parent returns the region this one was derived from, or nil.
func (r *Region) Parent() *Region {
	return r.parent
}

// Style returns the region's base style.
func (r *Region) Style() Style {
	return r.style
}

// SetStyle sets the base style used for erasing and printing.
func (r *Region) SetStyle(s Style) {
	r.style = s
}

// SetBackground sets the base background color.
func (r *Region) SetBackground(c Color) {
	r.style = r.style.Background(c)
}

// Erase fills the region with blanks in its base style.
func (r *Region) Erase() {
	oy, ox := r.Origin()
	for row := 0; row < r.rows; row++ {
		for col := 0; col < r.cols; col++ {
			r.surface.SetContent(ox+col, oy+row, ' ', nil, r.style)
		}
	}
	r.curRow, r.curCol = 0, 0
}

// Print writes s starting at (row, col) with the base style plus attr.
// The start position must be inside the region; text is clipped at the
// right edge. The region cursor is left after the last cell written.
func (r *Region) Print(row, col int, s string, attr AttrMask) error {
	if row < 0 || row >= r.rows || col < 0 || col >= r.cols {
		return errors.New(errors.ErrCodeBackendFailure, "print outside region").
			WithContext("row", row).WithContext("col", col).
			WithContext("size", [2]int{r.rows, r.cols})
	}

	oy, ox := r.Origin()
	style := r.style.WithAttrs(attr)
	x := col
	for _, ch := range s {
		w := runewidth.RuneWidth(ch)
		if w == 0 {
			w = 1
		}
		if x+w > r.cols {
			break
		}
		r.surface.SetContent(ox+x, oy+row, ch, nil, style)
		x += w
	}
	r.curRow, r.curCol = row, min(x, r.cols-1)
	return nil
}

// Box draws a single-line border along the region edges.
func (r *Region) Box() error {
	if r.rows < 2 || r.cols < 2 {
		return errors.New(errors.ErrCodeBackendFailure, "region too small for a box").
			WithContext("size", [2]int{r.rows, r.cols})
	}

	oy, ox := r.Origin()
	s := r.style
	set := func(col, row int, ch rune) {
		r.surface.SetContent(ox+col, oy+row, ch, nil, s)
	}

	set(0, 0, '┌')
	set(r.cols-1, 0, '┐')
	set(0, r.rows-1, '└')
	set(r.cols-1, r.rows-1, '┘')

	for col := 1; col < r.cols-1; col++ {
		set(col, 0, '─')
		set(col, r.rows-1, '─')
	}
	for row := 1; row < r.rows-1; row++ {
		set(0, row, '│')
		set(r.cols-1, row, '│')
	}
	return nil
}

// MoveCursor places the region cursor and the terminal cursor at (row, col).
func (r *Region) MoveCursor(row, col int) error {
	if row < 0 || row >= r.rows || col < 0 || col >= r.cols {
		return errors.New(errors.ErrCodeBackendFailure, "cursor outside region").
			WithContext("row", row).WithContext("col", col)
	}
	r.curRow, r.curCol = row, col
	oy, ox := r.Origin()
	r.surface.SetCursorPos(ox+col, oy+row)
	return nil
}

// Cursor returns the region cursor position.
func (r *Region) Cursor() (row, col int) {
	return r.curRow, r.curCol
}

// Refresh flushes the surface to the physical display.
func (r *Region) Refresh() {
	r.surface.Show()
}
