package layout

import (
	"fmt"

	"github.com/odvcencio/termstack/pkg/ui/backend"
)

// Orientation selects how a layout splits its region among children.
type Orientation int

const (
	// Vertical stacks children top to bottom.
	Vertical Orientation = iota
	// Horizontal places children left to right.
	Horizontal
)

func (o Orientation) String() string {
	switch o {
	case Vertical:
		return "vertical"
	case Horizontal:
		return "horizontal"
	default:
		return fmt.Sprintf("Orientation(%d)", int(o))
	}
}

// Rect is a child slot relative to the layout region.
type Rect struct {
	Y, X       int
	Rows, Cols int
}

// Partition splits a rows x cols region into n equal slots.
// Horizontal slots are rows tall and cols/n wide at x = (cols/n)*i;
// vertical slots are cols wide and rows/n tall at y = (rows/n)*i.
// The division remainder is left unused.
func Partition(o Orientation, rows, cols, n int) []Rect {
	if n <= 0 {
		return nil
	}
	slots := make([]Rect, n)
	switch o {
	case Horizontal:
		w := cols / n
		for i := range slots {
			slots[i] = Rect{Y: 0, X: w * i, Rows: rows, Cols: w}
		}
	default:
		h := rows / n
		for i := range slots {
			slots[i] = Rect{Y: h * i, X: 0, Rows: h, Cols: cols}
		}
	}
	return slots
}

// Palette holds the child background colors, assigned by child index.
var Palette = [...]backend.Color{
	backend.ColorRed,
	backend.ColorGreen,
	backend.ColorYellow,
	backend.ColorBlue,
	backend.ColorCyan,
	backend.ColorMagenta,
	backend.ColorBlack,
	backend.ColorWhite,
}

// MaxChildren is the number of children a layout can color distinctly.
const MaxChildren = len(Palette)

// childStyle returns the style for the child at index i.
func childStyle(i int) backend.Style {
	return backend.DefaultStyle().
		Foreground(backend.ColorWhite).
		Background(Palette[i])
}
