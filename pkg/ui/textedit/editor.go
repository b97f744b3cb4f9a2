// Package textedit implements the line-editing primitive used by text fields.
//
// An Editor owns a fixed grid of cells the size of its region and applies
// one key command at a time, in the style of an emacs-like textpad:
//
//	Ctrl-A        start of line          Ctrl-E / End   end of line
//	Ctrl-B / Left back one cell          Ctrl-F / Right forward one cell
//	Ctrl-P / Up   previous line          Ctrl-N / Down  next line
//	Ctrl-D / Del  delete under cursor    Backspace      delete before cursor
//	Ctrl-K        kill to end of line    Ctrl-O         open a blank line
//	Ctrl-G        finish editing         Enter          next line, or finish on one-line editors
package textedit

import (
	"strings"

	"github.com/odvcencio/termstack/pkg/ui/backend"
	"github.com/odvcencio/termstack/pkg/ui/terminal"
)

// Editor edits text inside a region.
type Editor struct {
	region   *backend.Region
	lines    [][]rune
	row, col int

	insert bool
}

// New creates an editor bound to region, in insert mode.
func New(region *backend.Region) *Editor {
	e := &Editor{insert: true}
	e.Bind(region)
	return e
}

// Bind attaches the editor to a new region, keeping as much text as fits.
func (e *Editor) Bind(region *backend.Region) {
	e.region = region
	rows, cols := region.Size()

	lines := make([][]rune, rows)
	for y := range lines {
		lines[y] = blankLine(cols)
		if y < len(e.lines) {
			copy(lines[y], e.lines[y])
		}
	}
	e.lines = lines
	e.row = clampInt(e.row, 0, rows-1)
	e.col = clampInt(e.col, 0, cols-1)
}

// Region returns the bound region.
func (e *Editor) Region() *backend.Region {
	return e.region
}

// SetInsertMode toggles between inserting and overwriting printable keys.
func (e *Editor) SetInsertMode(on bool) {
	e.insert = on
}

// Cursor returns the edit cursor.
func (e *Editor) Cursor() (row, col int) {
	return e.row, e.col
}

// SetText replaces the buffer content; lines beyond the region are dropped.
// The cursor moves to the end of the text.
func (e *Editor) SetText(text string) {
	rows, cols := e.size()
	for y := range e.lines {
		e.lines[y] = blankLine(cols)
	}
	e.row, e.col = 0, 0
	for y, line := range strings.Split(text, "\n") {
		if y >= rows {
			break
		}
		n := copy(e.lines[y], []rune(line))
		e.row, e.col = y, min(n, cols-1)
	}
}

// Clear empties the buffer.
func (e *Editor) Clear() {
	e.SetText("")
}

// Gather returns the buffer text, trailing blanks stripped from each line
// and trailing empty lines dropped.
func (e *Editor) Gather() string {
	out := make([]string, len(e.lines))
	for y, line := range e.lines {
		out[y] = strings.TrimRight(string(line), " ")
	}
	return strings.TrimRight(strings.Join(out, "\n"), "\n")
}

// DoCommand applies one key. It returns false when editing is complete.
func (e *Editor) DoCommand(ev terminal.KeyEvent) bool {
	rows, cols := e.size()
	if rows == 0 || cols == 0 {
		return !ev.Is(terminal.KeyCtrlG) && !ev.Is(terminal.KeyEnter)
	}

	switch ev.Key {
	case terminal.KeyRune:
		e.putRune(ev.Rune)
	case terminal.KeyCtrlA, terminal.KeyHome:
		e.col = 0
	case terminal.KeyCtrlE, terminal.KeyEnd:
		e.col = min(e.lineEnd(e.row), cols-1)
	case terminal.KeyCtrlB, terminal.KeyLeft:
		e.back()
	case terminal.KeyCtrlF, terminal.KeyRight:
		e.forward()
	case terminal.KeyCtrlP, terminal.KeyUp:
		if e.row > 0 {
			e.row--
			e.col = min(e.col, e.lineEnd(e.row))
		}
	case terminal.KeyCtrlN, terminal.KeyDown:
		if e.row < rows-1 {
			e.row++
			e.col = min(e.col, e.lineEnd(e.row))
		}
	case terminal.KeyCtrlD, terminal.KeyDelete:
		e.deleteAt(e.row, e.col)
	case terminal.KeyBackspace:
		if e.row > 0 || e.col > 0 {
			e.back()
			e.deleteAt(e.row, e.col)
		}
	case terminal.KeyCtrlK:
		e.kill()
	case terminal.KeyCtrlO:
		e.openLine()
	case terminal.KeyCtrlG:
		return false
	case terminal.KeyEnter:
		if rows == 1 {
			return false
		}
		if e.row < rows-1 {
			e.row++
			e.col = 0
		}
	}
	return true
}

// Draw paints the buffer into the region and places the cursor.
func (e *Editor) Draw() error {
	rows, cols := e.size()
	if rows == 0 || cols == 0 {
		return nil
	}
	for y, line := range e.lines {
		if err := e.region.Print(y, 0, string(line), backend.AttrNone); err != nil {
			return err
		}
	}
	return e.region.MoveCursor(e.row, e.col)
}

func (e *Editor) size() (rows, cols int) {
	if e.region == nil {
		return 0, 0
	}
	return e.region.Size()
}

func (e *Editor) putRune(r rune) {
	rows, cols := e.size()
	line := e.lines[e.row]
	if e.insert {
		copy(line[e.col+1:], line[e.col:cols-1])
	}
	line[e.col] = r

	switch {
	case e.col < cols-1:
		e.col++
	case e.row < rows-1:
		e.row++
		e.col = 0
	}
}

func (e *Editor) back() {
	if e.col > 0 {
		e.col--
		return
	}
	if e.row > 0 {
		_, cols := e.size()
		e.row--
		e.col = min(e.lineEnd(e.row), cols-1)
	}
}

func (e *Editor) forward() {
	rows, cols := e.size()
	switch {
	case e.col < cols-1:
		e.col++
	case e.row < rows-1:
		e.row++
		e.col = 0
	}
}

func (e *Editor) deleteAt(row, col int) {
	line := e.lines[row]
	copy(line[col:], line[col+1:])
	line[len(line)-1] = ' '
}

// kill clears from the cursor to the end of the line, or removes the line
// when the cursor sits on an empty line.
func (e *Editor) kill() {
	_, cols := e.size()
	if e.col == 0 && e.lineEnd(e.row) == 0 {
		copy(e.lines[e.row:], e.lines[e.row+1:])
		e.lines[len(e.lines)-1] = blankLine(cols)
		return
	}
	line := e.lines[e.row]
	for x := e.col; x < len(line); x++ {
		line[x] = ' '
	}
}

func (e *Editor) openLine() {
	_, cols := e.size()
	copy(e.lines[e.row+1:], e.lines[e.row:len(e.lines)-1])
	e.lines[e.row] = blankLine(cols)
	e.col = 0
}

// lineEnd returns the index just past the last non-blank cell of a row.
func (e *Editor) lineEnd(row int) int {
	line := e.lines[row]
	end := len(line)
	for end > 0 && line[end-1] == ' ' {
		end--
	}
	return end
}

func blankLine(cols int) []rune {
	line := make([]rune, max(cols, 0))
	for i := range line {
		line[i] = ' '
	}
	return line
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return max(lo, min(v, hi))
}
