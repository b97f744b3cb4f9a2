// Package display drives one root layout on a terminal backend.
package display

import (
	"fmt"

	"github.com/odvcencio/termstack/pkg/errors"
	"github.com/odvcencio/termstack/pkg/logging"
	"github.com/odvcencio/termstack/pkg/ui/backend"
	"github.com/odvcencio/termstack/pkg/ui/layout"
	"github.com/odvcencio/termstack/pkg/ui/terminal"
	"github.com/odvcencio/termstack/pkg/ui/widgets"
)

// DefaultConfirmKey ends WaitForEnter loops.
const DefaultConfirmKey = terminal.KeyEnter

// Option configures a Display.
type Option func(*Display)

// WithLogger sets the logger handed to the root layout.
func WithLogger(l *logging.Logger) Option {
	return func(d *Display) {
		d.logger = l
	}
}

// WithFocusKey sets the focus key for the display and its root layout.
func WithFocusKey(k terminal.Key) Option {
	return func(d *Display) {
		d.focusKey = k
	}
}

// WithConfirmKey sets the key that ends WaitForEnter loops.
func WithConfirmKey(k terminal.Key) Option {
	return func(d *Display) {
		d.confirmKey = k
	}
}

// Display owns the backend and one root layout.
type Display struct {
	backend backend.Backend
	layout  *layout.Layout
	logger  *logging.Logger

	focusKey   terminal.Key
	confirmKey terminal.Key
}

// New creates a display on an initialized backend.
func New(b backend.Backend, opts ...Option) *Display {
	d := &Display{
		backend:    b,
		focusKey:   layout.DefaultFocusKey,
		confirmKey: DefaultConfirmKey,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Layout returns the root layout, or nil.
func (d *Display) Layout() *layout.Layout {
	return d.layout
}

// Logger returns the display logger, which may be nil.
func (d *Display) Logger() *logging.Logger {
	return d.logger
}

// SetLayout binds l to the full surface and makes it the root.
// The layout inherits the display's logger and focus key.
func (d *Display) SetLayout(l *layout.Layout) error {
	if l == nil {
		return errors.New(errors.ErrCodeInvalidInput, "nil layout")
	}
	l.SetLogger(d.logger)
	l.SetFocusKey(d.focusKey)
	root := backend.NewRootRegion(d.backend)
	if err := l.BindRegion(root); err != nil {
		return err
	}
	d.layout = l
	rows, cols := root.Size()
	d.logger.Log("layout set", fmt.Sprintf("%dx%d", rows, cols))
	return nil
}

// DrawScreen draws the root layout and flushes the surface once.
func (d *Display) DrawScreen() error {
	if d.layout == nil {
		return errors.New(errors.ErrCodeStaleReference, "display has no layout")
	}
	d.logger.Log("drawing screen")
	if err := d.layout.Draw(); err != nil {
		return err
	}
	d.backend.Show()
	return nil
}

// ClearLayout removes every widget from the root layout and clears the screen.
func (d *Display) ClearLayout() {
	if d.layout != nil {
		d.layout.ClearWidgets()
	}
	d.backend.Clear()
}

// HandleInput routes one key. When ev is nil a key is read from the backend.
// The focus key advances focus on the root layout; other keys go to it.
func (d *Display) HandleInput(ev *terminal.KeyEvent) (widgets.Signal, error) {
	if d.layout == nil {
		return widgets.SignalActive, errors.New(errors.ErrCodeStaleReference, "display has no layout")
	}
	if ev == nil {
		k, err := d.readKey()
		if err != nil {
			return widgets.SignalActive, err
		}
		ev = &k
	}
	d.logger.Log("handling input", terminal.KeyName(*ev))

	if ev.Is(d.focusKey) {
		d.layout.ChangeActive()
		return widgets.SignalActive, nil
	}
	return d.layout.Input(*ev)
}

// WaitForEnter reads one key. It returns false for the confirm key and
// otherwise routes the key and returns true.
func (d *Display) WaitForEnter() (bool, error) {
	ev, err := d.readKey()
	if err != nil {
		return false, err
	}
	if ev.Is(d.confirmKey) {
		return false, nil
	}
	if _, err := d.HandleInput(&ev); err != nil {
		return false, err
	}
	return true, nil
}

// Run draws the screen, then routes keys and redraws until the confirm key.
func (d *Display) Run() error {
	if err := d.DrawScreen(); err != nil {
		return err
	}
	for {
		more, err := d.WaitForEnter()
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
		if err := d.DrawScreen(); err != nil {
			return err
		}
	}
}

// Close restores the terminal.
func (d *Display) Close() {
	d.backend.Fini()
}

// readKey blocks for the next key event. Resize events are ignored.
func (d *Display) readKey() (terminal.KeyEvent, error) {
	for {
		switch ev := d.backend.PollEvent().(type) {
		case nil:
			return terminal.KeyEvent{}, errors.New(errors.ErrCodeBackendFailure, "backend closed while reading input")
		case terminal.KeyEvent:
			return ev, nil
		case terminal.ResizeEvent:
			d.logger.Log("ignoring resize", fmt.Sprintf("%dx%d", ev.Width, ev.Height))
		}
	}
}
