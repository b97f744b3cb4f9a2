package widgets

import (
	"github.com/mattn/go-runewidth"

	"github.com/odvcencio/termstack/pkg/ui/backend"
)

// text is the shared string-value trait of titles and labels.
// It repaints only when the value changed since the last draw.
type text struct {
	Base
	value string
	attr  backend.AttrMask
}

// Value returns the displayed string.
func (t *text) Value() string {
	return t.value
}

// ChangeValue replaces the displayed string. When bound it draws right away
// instead of waiting for the owning layout's Draw; it never flushes.
func (t *text) ChangeValue(value string) error {
	t.logger.Log("label value changed", value)
	t.value = value
	t.needsRender = true
	if t.region == nil {
		return nil
	}
	return t.Draw()
}

// Draw writes the value on the first row, padded to the region width.
// It performs no writes when nothing changed since the last draw.
func (t *text) Draw() error {
	if err := t.checkBound("draw"); err != nil {
		return err
	}
	if !t.needsRender {
		return nil
	}

	rows, cols := t.region.Size()
	if rows > 0 && cols > 0 {
		line := runewidth.FillRight(runewidth.Truncate(t.value, cols, ""), cols)
		if err := t.region.Print(0, 0, line, t.attr); err != nil {
			return err
		}
	}
	t.needsRender = false
	return nil
}

// Title is a bold line of text.
type Title struct {
	text
}

// NewTitle creates a title.
func NewTitle(value string) *Title {
	return &Title{text{value: value, attr: backend.AttrBold}}
}

// Label is a plain line of text. ChangeValue on a bound label writes the
// new value to the surface at once, outside any layout or display draw;
// the cells reach the terminal on the next flush.
type Label struct {
	text
}

// NewLabel creates a label.
func NewLabel(value string) *Label {
	return &Label{text{value: value}}
}

var (
	_ Widget = (*Title)(nil)
	_ Widget = (*Label)(nil)
)
