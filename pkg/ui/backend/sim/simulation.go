// Package sim provides a simulation backend for testing.
package sim

import (
	"strings"
	"sync"

	tcellv2 "github.com/gdamore/tcell/v2"

	"github.com/odvcencio/termstack/pkg/ui/backend"
	"github.com/odvcencio/termstack/pkg/ui/backend/tcell"
	"github.com/odvcencio/termstack/pkg/ui/terminal"
)

// Backend is a testable backend using tcell's simulation screen.
type Backend struct {
	*tcell.Backend
	screen tcellv2.SimulationScreen
	mu     sync.Mutex
}

// New creates a new simulation backend with the given dimensions.
// The backend is initialized; call Fini when done.
func New(width, height int) (*Backend, error) {
	screen := tcellv2.NewSimulationScreen("")
	b := &Backend{
		Backend: tcell.NewWithScreen(screen),
		screen:  screen,
	}
	if err := b.Init(); err != nil {
		return nil, err
	}
	screen.SetSize(width, height)
	return b, nil
}

// InjectKey injects a key event into the simulation.
func (s *Backend) InjectKey(key terminal.Key) {
	_ = s.PostEvent(terminal.KeyEvent{Key: key})
}

// InjectKeyRune injects a regular character keypress.
func (s *Backend) InjectKeyRune(r rune) {
	_ = s.PostEvent(terminal.KeyEvent{Key: terminal.KeyRune, Rune: r})
}

// InjectKeyString injects a string as a sequence of key events.
func (s *Backend) InjectKeyString(str string) {
	for _, r := range str {
		s.InjectKeyRune(r)
	}
}

// Capture captures the current screen content as a string.
// Only cells flushed by Show are visible.
func (s *Backend) Capture() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, h := s.screen.Size()
	return s.captureLocked(0, 0, w, h)
}

// CaptureRegion captures a rectangular region of the screen.
func (s *Backend) CaptureRegion(x, y, w, h int) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.captureLocked(x, y, w, h)
}

func (s *Backend) captureLocked(x, y, w, h int) string {
	cells, width, _ := s.screen.GetContents()
	lines := make([]string, 0, h)
	for row := y; row < y+h; row++ {
		var line strings.Builder
		for col := x; col < x+w; col++ {
			mainc := ' '
			if idx := row*width + col; idx >= 0 && idx < len(cells) && len(cells[idx].Runes) > 0 {
				mainc = cells[idx].Runes[0]
			}
			if mainc == 0 {
				mainc = ' '
			}
			line.WriteRune(mainc)
		}
		lines = append(lines, line.String())
	}
	return strings.Join(lines, "\n")
}

// CaptureCell returns the flushed content and style of a single cell.
func (s *Backend) CaptureCell(x, y int) (mainc rune, style backend.Style) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cells, width, _ := s.screen.GetContents()
	idx := y*width + x
	if idx < 0 || idx >= len(cells) {
		return ' ', backend.DefaultStyle()
	}
	cell := cells[idx]
	mainc = ' '
	if len(cell.Runes) > 0 {
		mainc = cell.Runes[0]
	}
	return mainc, convertTcellStyle(cell.Style)
}

// Cursor returns the flushed terminal cursor position and visibility.
func (s *Backend) Cursor() (x, y int, visible bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.screen.GetCursor()
}

// FindText searches for text on the screen and returns its position.
func (s *Backend) FindText(text string) (x, y int) {
	lines := strings.Split(s.Capture(), "\n")
	for row, line := range lines {
		if col := strings.Index(line, text); col >= 0 {
			return len([]rune(line[:col])), row
		}
	}
	return -1, -1
}

// ContainsText returns true if the text appears anywhere on screen.
func (s *Backend) ContainsText(text string) bool {
	x, y := s.FindText(text)
	return x >= 0 && y >= 0
}

// convertTcellStyle converts tcellv2.Style to backend.Style.
func convertTcellStyle(ts tcellv2.Style) backend.Style {
	fg, bg, attrs := ts.Decompose()
	style := backend.DefaultStyle().
		Foreground(convertTcellColor(fg)).
		Background(convertTcellColor(bg))

	if attrs&tcellv2.AttrBold != 0 {
		style = style.Bold(true)
	}
	if attrs&tcellv2.AttrUnderline != 0 {
		style = style.Underline(true)
	}
	if attrs&tcellv2.AttrDim != 0 {
		style = style.Dim(true)
	}
	if attrs&tcellv2.AttrReverse != 0 {
		style = style.Reverse(true)
	}

	return style
}

// convertTcellColor converts tcellv2.Color to backend.Color.
func convertTcellColor(tc tcellv2.Color) backend.Color {
	if tc == tcellv2.ColorDefault {
		return backend.ColorDefault
	}
	return backend.Color(tc & 0xFF)
}

// Ensure Backend implements backend.Backend
var _ backend.Backend = (*Backend)(nil)
