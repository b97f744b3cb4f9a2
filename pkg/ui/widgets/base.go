// Package widgets provides the widgets composed by layouts.
package widgets

import (
	"fmt"

	"github.com/odvcencio/termstack/pkg/errors"
	"github.com/odvcencio/termstack/pkg/logging"
	"github.com/odvcencio/termstack/pkg/ui/backend"
	"github.com/odvcencio/termstack/pkg/ui/terminal"
)

// Signal is the outcome of handling one key.
type Signal int

const (
	// SignalActive means the key was consumed and the widget is still editing.
	SignalActive Signal = iota
	// SignalFinalized means the key completed a selection or edit.
	SignalFinalized
)

func (s Signal) String() string {
	switch s {
	case SignalActive:
		return "active"
	case SignalFinalized:
		return "finalized"
	default:
		return fmt.Sprintf("Signal(%d)", int(s))
	}
}

// Widget is the unit of display managed by a layout.
type Widget interface {
	// BindRegion associates the widget with a region owned by its parent.
	// It must be called before Draw or HandleInput.
	BindRegion(region *backend.Region) error

	// Draw renders current state into the bound region. It never flushes
	// the surface; the owning layout does that.
	Draw() error

	// Resize changes the region dimensions and forces a full repaint.
	Resize(rows, cols int) error

	// AcceptsInput reports whether the widget may take focus.
	AcceptsInput() bool

	Region() *backend.Region
	Invalidate()
	SetLogger(logger *logging.Logger)
}

// InputHandler is a widget that consumes keys while focused.
type InputHandler interface {
	Widget
	HandleInput(ev terminal.KeyEvent) (Signal, error)
}

// CursorPlacer is implemented by widgets that own an edit cursor. Layouts
// call it when the widget gains focus; other widgets get the cursor at their
// region origin.
type CursorPlacer interface {
	PlaceCursor() error
}

// Base is the drawable-region trait: a bound region plus a dirty flag.
// Embed it in widget structs to get default implementations.
type Base struct {
	region      *backend.Region
	needsRender bool
	logger      *logging.Logger
}

// BindRegion stores the region and marks the widget dirty.
func (b *Base) BindRegion(region *backend.Region) error {
	if region == nil {
		return errors.New(errors.ErrCodeInvalidInput, "nil region")
	}
	b.region = region
	b.needsRender = true
	rows, cols := region.Size()
	b.logger.Logf("widget bound to %dx%d region", rows, cols)
	return nil
}

// Region returns the bound region, or nil before BindRegion.
func (b *Base) Region() *backend.Region {
	return b.region
}

// Resize resizes the bound region and marks the widget dirty.
func (b *Base) Resize(rows, cols int) error {
	if err := b.checkBound("resize"); err != nil {
		return err
	}
	b.logger.Log("resizing", fmt.Sprintf("%dx%d", rows, cols))
	if err := b.region.Resize(rows, cols); err != nil {
		return err
	}
	b.needsRender = true
	return nil
}

// AcceptsInput returns false by default.
func (b *Base) AcceptsInput() bool {
	return false
}

// Invalidate marks the widget as needing a full repaint.
func (b *Base) Invalidate() {
	b.needsRender = true
}

// NeedsRender reports whether the widget needs to repaint.
func (b *Base) NeedsRender() bool {
	return b.needsRender
}

// ClearInvalidation clears the dirty flag.
func (b *Base) ClearInvalidation() {
	b.needsRender = false
}

// SetLogger sets the diagnostic logger. A nil logger disables logging.
func (b *Base) SetLogger(logger *logging.Logger) {
	b.logger = logger
}

// Logger returns the diagnostic logger, which may be nil.
func (b *Base) Logger() *logging.Logger {
	return b.logger
}

func (b *Base) checkBound(op string) error {
	if b.region == nil {
		return errors.New(errors.ErrCodeStaleReference, "widget used before BindRegion").
			WithContext("op", op)
	}
	return nil
}

// Focusable is the focusable trait. Input is accepted unless disabled.
type Focusable struct {
	Base
	disabled bool
}

// AcceptsInput reports whether the widget currently takes focus.
func (f *Focusable) AcceptsInput() bool {
	return !f.disabled
}

// SetAcceptsInput enables or disables focus for the widget.
func (f *Focusable) SetAcceptsInput(on bool) {
	f.disabled = !on
}

func geometryError(msg string, rows, cols int) *errors.Error {
	return errors.New(errors.ErrCodeGeometryRange, msg).
		WithContext("rows", rows).WithContext("cols", cols)
}
