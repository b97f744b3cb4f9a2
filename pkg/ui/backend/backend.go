// Package backend defines the terminal backend interface for the widget
// framework. Widgets never talk to a backend directly: they draw through a
// Region, which translates and bounds-checks every write against a Surface.
package backend

import "github.com/odvcencio/termstack/pkg/ui/terminal"

// Surface is the drawing subset of a backend that regions write through.
//
//go:generate mockgen -package=widgets -destination=../widgets/mock_surface_test.go github.com/odvcencio/termstack/pkg/ui/backend Surface
type Surface interface {
	// Size returns the surface dimensions in cells.
	Size() (width, height int)

	// SetContent sets a cell at position (x, y) with the given rune and style.
	// The comb parameter contains combining characters (can be nil).
	SetContent(x, y int, mainc rune, comb []rune, style Style)

	// SetCursorPos moves the terminal cursor.
	SetCursorPos(x, y int)

	// Show synchronizes the internal buffer to the terminal.
	Show()
}

// Backend is the terminal abstraction layer.
// Implementations handle terminal I/O, input events, and screen rendering.
type Backend interface {
	Surface

	// Init initializes the backend (enters alt screen, raw mode, etc).
	Init() error

	// Fini cleans up the backend (restores terminal state).
	Fini()

	// Clear clears the screen.
	Clear()

	// HideCursor hides the terminal cursor.
	HideCursor()

	// PollEvent blocks until an event is available and returns it.
	// Returns nil if the backend is shutting down.
	PollEvent() terminal.Event

	// PostEvent injects an event into the event queue.
	PostEvent(ev terminal.Event) error

	// Beep emits an audible bell.
	Beep()

	// Sync forces a full redraw on next Show().
	Sync()
}
