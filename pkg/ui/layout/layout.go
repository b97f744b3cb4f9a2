// Package layout arranges widgets inside a region and routes keys to the
// focused one.
package layout

import (
	"fmt"
	"slices"
	"strings"

	"github.com/odvcencio/termstack/pkg/errors"
	"github.com/odvcencio/termstack/pkg/logging"
	"github.com/odvcencio/termstack/pkg/ui/backend"
	"github.com/odvcencio/termstack/pkg/ui/terminal"
	"github.com/odvcencio/termstack/pkg/ui/widgets"
)

// FocusPolicy decides where focus goes when the focus key is pressed.
type FocusPolicy int

const (
	// FocusStep tries only the next child; focus stays put when that child
	// does not accept input.
	FocusStep FocusPolicy = iota
	// FocusScan moves to the next child that accepts input, wrapping around.
	FocusScan
)

func (p FocusPolicy) String() string {
	switch p {
	case FocusStep:
		return "step"
	case FocusScan:
		return "scan"
	default:
		return fmt.Sprintf("FocusPolicy(%d)", int(p))
	}
}

// ParseFocusPolicy resolves "step" or "scan".
func ParseFocusPolicy(s string) (FocusPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "step", "":
		return FocusStep, nil
	case "scan":
		return FocusScan, nil
	default:
		return FocusStep, errors.Newf(errors.ErrCodeInvalidInput, "unknown focus policy %q", s)
	}
}

// DefaultFocusKey switches focus between children.
const DefaultFocusKey = terminal.KeyTab

// Option configures a Layout.
type Option func(*Layout)

// WithFocusKey sets the key that advances focus.
func WithFocusKey(k terminal.Key) Option {
	return func(l *Layout) {
		l.focusKey = k
	}
}

// WithFocusPolicy sets how focus advances.
func WithFocusPolicy(p FocusPolicy) Option {
	return func(l *Layout) {
		l.policy = p
	}
}

// Layout is a container widget. Children are laid out in insertion order,
// which is also the focus order, and each gets a palette background.
type Layout struct {
	widgets.Base

	orientation Orientation
	children    []widgets.Widget
	active      int
	screens     [][]widgets.Widget

	focusKey terminal.Key
	policy   FocusPolicy
}

// New creates an empty layout.
func New(o Orientation, opts ...Option) *Layout {
	l := &Layout{
		orientation: o,
		active:      -1,
		focusKey:    DefaultFocusKey,
		policy:      FocusStep,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// NewVertical creates a layout that stacks children top to bottom.
func NewVertical(opts ...Option) *Layout {
	return New(Vertical, opts...)
}

// NewHorizontal creates a layout that places children left to right.
func NewHorizontal(opts ...Option) *Layout {
	return New(Horizontal, opts...)
}

// Orientation returns the split direction.
func (l *Layout) Orientation() Orientation {
	return l.orientation
}

// FocusKey returns the key that advances focus.
func (l *Layout) FocusKey() terminal.Key {
	return l.focusKey
}

// SetFocusKey changes the key that advances focus.
func (l *Layout) SetFocusKey(k terminal.Key) {
	l.focusKey = k
}

// Policy returns the focus policy.
func (l *Layout) Policy() FocusPolicy {
	return l.policy
}

// BindRegion binds the layout and lays out any existing children.
func (l *Layout) BindRegion(region *backend.Region) error {
	if err := l.Base.BindRegion(region); err != nil {
		return err
	}
	return l.partition()
}

// Resize resizes the layout region and lays the children out again. When a
// child cannot be placed at the new size the previous size is restored.
func (l *Layout) Resize(rows, cols int) error {
	var prevRows, prevCols int
	if r := l.Region(); r != nil {
		prevRows, prevCols = r.Size()
	}
	if err := l.Base.Resize(rows, cols); err != nil {
		return err
	}
	if err := l.partition(); err != nil {
		if rerr := l.Base.Resize(prevRows, prevCols); rerr != nil {
			l.Logger().Log("restoring layout size failed", rerr.Error())
		} else if perr := l.partition(); perr != nil {
			l.Logger().Log("restoring layout failed", perr.Error())
		}
		return err
	}
	return nil
}

// SetLogger sets the logger for the layout and its children.
func (l *Layout) SetLogger(logger *logging.Logger) {
	l.Base.SetLogger(logger)
	for _, w := range l.children {
		w.SetLogger(logger)
	}
}

// Invalidate forces the layout and all children to repaint.
func (l *Layout) Invalidate() {
	l.Base.Invalidate()
	for _, w := range l.children {
		w.Invalidate()
	}
}

// AddWidget appends a child and lays out all children again. A child that
// cannot be placed is not added.
func (l *Layout) AddWidget(w widgets.Widget) (widgets.Widget, error) {
	if w == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "nil widget")
	}
	if len(l.children) >= MaxChildren {
		return nil, errors.New(errors.ErrCodeGeometryRange, "layout is full").
			WithContext("max", MaxChildren)
	}

	w.SetLogger(l.Logger())
	l.children = append(l.children, w)
	if err := l.partition(); err != nil {
		l.children = l.children[:len(l.children)-1]
		if rerr := l.partition(); rerr != nil {
			l.Logger().Log("restoring layout failed", rerr.Error())
		}
		return nil, err
	}

	if l.active < 0 {
		l.active = l.firstInteractive()
	}
	l.Logger().Log("widget added", fmt.Sprintf("%T", w), fmt.Sprintf("children=%d active=%d", len(l.children), l.active))
	return w, nil
}

// partition clears the layout region, then assigns every child its slot,
// color and region. Cells outside every slot keep the layout background.
func (l *Layout) partition() error {
	region := l.Region()
	if region == nil || len(l.children) == 0 {
		return nil
	}

	region.Erase()
	rows, cols := region.Size()
	slots := Partition(l.orientation, rows, cols, len(l.children))
	for i, slot := range slots {
		l.Logger().Log("making window", fmt.Sprintf("%d: %dx%d at (%d,%d)", i, slot.Rows, slot.Cols, slot.Y, slot.X))
		sub, err := region.Derive(slot.Rows, slot.Cols, slot.Y, slot.X)
		if err != nil {
			return err
		}
		sub.SetStyle(childStyle(i))
		sub.Erase()
		if err := l.children[i].BindRegion(sub); err != nil {
			return err
		}
	}
	return nil
}

// Draw draws every child and places the cursor on the focused child.
// It does not flush the surface.
func (l *Layout) Draw() error {
	if l.Region() == nil {
		return errors.New(errors.ErrCodeStaleReference, "layout used before BindRegion").
			WithContext("op", "draw")
	}
	for _, w := range l.children {
		if err := w.Draw(); err != nil {
			return err
		}
	}
	l.ClearInvalidation()
	return l.PlaceCursor()
}

// AcceptsInput reports whether any child can take focus.
func (l *Layout) AcceptsInput() bool {
	return l.active >= 0
}

// HandleInput lets a layout nest inside another layout.
func (l *Layout) HandleInput(ev terminal.KeyEvent) (widgets.Signal, error) {
	return l.Input(ev)
}

// Input routes one key: the focus key advances focus, anything else goes to
// the focused child. Keys are dropped when no child has focus.
func (l *Layout) Input(ev terminal.KeyEvent) (widgets.Signal, error) {
	if ev.Is(l.focusKey) {
		l.ChangeActive()
		return widgets.SignalActive, nil
	}

	w := l.ActiveWidget()
	if w == nil || !w.AcceptsInput() {
		return widgets.SignalActive, nil
	}
	h, ok := w.(widgets.InputHandler)
	if !ok {
		return widgets.SignalActive, nil
	}
	return h.HandleInput(ev)
}

// ChangeActive advances focus according to the layout's policy. When no
// eligible child is found the focus does not move.
func (l *Layout) ChangeActive() {
	n := len(l.children)
	if n == 0 {
		return
	}

	next := -1
	switch l.policy {
	case FocusScan:
		for i := 1; i <= n; i++ {
			idx := (l.active + i) % n
			if l.children[idx].AcceptsInput() {
				next = idx
				break
			}
		}
	default:
		idx := (l.active + 1) % n
		if l.children[idx].AcceptsInput() {
			next = idx
		}
	}

	if next < 0 {
		l.Logger().Log("focus unchanged", fmt.Sprintf("active=%d", l.active))
		return
	}
	l.active = next
	l.Logger().Log("focus changed", fmt.Sprintf("active=%d", l.active))
	if err := l.PlaceCursor(); err != nil {
		l.Logger().Log("placing cursor failed", err.Error())
	}
}

// PlaceCursor moves the terminal cursor to the focused child: to its edit
// position when it has one, else to its region origin.
func (l *Layout) PlaceCursor() error {
	w := l.ActiveWidget()
	if w == nil || w.Region() == nil {
		return nil
	}
	if p, ok := w.(widgets.CursorPlacer); ok {
		return p.PlaceCursor()
	}
	if rows, cols := w.Region().Size(); rows == 0 || cols == 0 {
		return nil
	}
	return w.Region().MoveCursor(0, 0)
}

// Active returns the focused child index, or -1.
func (l *Layout) Active() int {
	return l.active
}

// ActiveWidget returns the focused child, or nil.
func (l *Layout) ActiveWidget() widgets.Widget {
	if l.active < 0 || l.active >= len(l.children) {
		return nil
	}
	return l.children[l.active]
}

// Widget returns the child at index i.
func (l *Layout) Widget(i int) (widgets.Widget, error) {
	if i < 0 || i >= len(l.children) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no widget at index").
			WithContext("index", i).WithContext("len", len(l.children))
	}
	return l.children[i], nil
}

// Children returns a copy of the children in layout order.
func (l *Layout) Children() []widgets.Widget {
	return slices.Clone(l.children)
}

// Len returns the number of children.
func (l *Layout) Len() int {
	return len(l.children)
}

// ClearWidgets drops every child and erases the region.
func (l *Layout) ClearWidgets() {
	l.children = nil
	l.active = -1
	if r := l.Region(); r != nil {
		r.Erase()
	}
	l.Logger().Log("widgets cleared")
}

// SaveScreen records the current children and returns the entry index.
func (l *Layout) SaveScreen() int {
	l.screens = append(l.screens, slices.Clone(l.children))
	l.Logger().Log("screen saved", fmt.Sprintf("index=%d children=%d", len(l.screens)-1, len(l.children)))
	return len(l.screens) - 1
}

// LoadScreen replaces the children with a saved entry, erases the region and
// repaints every restored child.
func (l *Layout) LoadScreen(i int) error {
	if i < 0 || i >= len(l.screens) {
		return errors.New(errors.ErrCodeScreenNotFound, "no saved screen").
			WithContext("index", i).WithContext("saved", len(l.screens))
	}
	l.children = slices.Clone(l.screens[i])
	l.active = l.firstInteractive()
	l.Logger().Log("screen loaded", fmt.Sprintf("index=%d children=%d", i, len(l.children)))

	region := l.Region()
	if region == nil {
		return nil
	}
	if err := l.partition(); err != nil {
		return err
	}
	l.Invalidate()
	if err := l.Draw(); err != nil {
		return err
	}
	region.Refresh()
	return nil
}

// ScreenCount returns the number of saved screens.
func (l *Layout) ScreenCount() int {
	return len(l.screens)
}

func (l *Layout) firstInteractive() int {
	for i, w := range l.children {
		if w.AcceptsInput() {
			return i
		}
	}
	return -1
}

var _ widgets.InputHandler = (*Layout)(nil)
