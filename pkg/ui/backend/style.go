package backend

// Color represents a terminal palette color.
type Color int32

// The eight base colors, in curses order.
const (
	ColorDefault Color = -1
	ColorBlack   Color = 0
	ColorRed     Color = 1
	ColorGreen   Color = 2
	ColorYellow  Color = 3
	ColorBlue    Color = 4
	ColorMagenta Color = 5
	ColorCyan    Color = 6
	ColorWhite   Color = 7
)

var colorNames = [...]string{"black", "red", "green", "yellow", "blue", "magenta", "cyan", "white"}

// String returns the color name.
func (c Color) String() string {
	if c >= 0 && int(c) < len(colorNames) {
		return colorNames[c]
	}
	return "default"
}

// AttrMask represents text attributes.
type AttrMask uint32

// Attribute flags
const (
	AttrBold AttrMask = 1 << iota
	AttrReverse
	AttrUnderline
	AttrDim

	AttrNone AttrMask = 0

	// AttrStandout is the curses highlight, rendered as reverse video.
	AttrStandout = AttrReverse
)

// Style combines foreground, background colors and attributes.
type Style struct {
	fg    Color
	bg    Color
	attrs AttrMask
}

// DefaultStyle returns the default style (default colors, no attributes).
func DefaultStyle() Style {
	return Style{fg: ColorDefault, bg: ColorDefault}
}

// Foreground sets the foreground color.
func (s Style) Foreground(c Color) Style {
	s.fg = c
	return s
}

// Background sets the background color.
func (s Style) Background(c Color) Style {
	s.bg = c
	return s
}

// WithAttrs adds attributes to the style.
func (s Style) WithAttrs(a AttrMask) Style {
	s.attrs |= a
	return s
}

// Bold enables or disables bold.
func (s Style) Bold(on bool) Style {
	return s.toggle(AttrBold, on)
}

// Reverse enables or disables reverse video.
func (s Style) Reverse(on bool) Style {
	return s.toggle(AttrReverse, on)
}

// Underline enables or disables underline.
func (s Style) Underline(on bool) Style {
	return s.toggle(AttrUnderline, on)
}

// Dim enables or disables dim.
func (s Style) Dim(on bool) Style {
	return s.toggle(AttrDim, on)
}

func (s Style) toggle(a AttrMask, on bool) Style {
	if on {
		s.attrs |= a
	} else {
		s.attrs &^= a
	}
	return s
}

// Attributes returns all attributes.
func (s Style) Attributes() AttrMask {
	return s.attrs
}

// FG returns the foreground color.
func (s Style) FG() Color {
	return s.fg
}

// BG returns the background color.
func (s Style) BG() Color {
	return s.bg
}

// Decompose returns the foreground, background, and attributes.
func (s Style) Decompose() (fg, bg Color, attrs AttrMask) {
	return s.fg, s.bg, s.attrs
}
