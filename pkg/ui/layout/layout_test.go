package layout

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odvcencio/termstack/pkg/errors"
	"github.com/odvcencio/termstack/pkg/logging"
	"github.com/odvcencio/termstack/pkg/ui/backend"
	"github.com/odvcencio/termstack/pkg/ui/backend/sim"
	"github.com/odvcencio/termstack/pkg/ui/terminal"
	"github.com/odvcencio/termstack/pkg/ui/widgets"
)

func newScreen(t *testing.T, w, h int) (*sim.Backend, *backend.Region) {
	t.Helper()
	s, err := sim.New(w, h)
	require.NoError(t, err)
	t.Cleanup(s.Fini)
	return s, backend.NewRootRegion(s)
}

func bound(t *testing.T, o Orientation, region *backend.Region, opts ...Option) *Layout {
	t.Helper()
	l := New(o, opts...)
	require.NoError(t, l.BindRegion(region))
	return l
}

func add(t *testing.T, l *Layout, ws ...widgets.Widget) {
	t.Helper()
	for _, w := range ws {
		_, err := l.AddWidget(w)
		require.NoError(t, err)
	}
}

func key(k terminal.Key) terminal.KeyEvent {
	return terminal.KeyEvent{Key: k}
}

func TestPartition_Formulas(t *testing.T) {
	tests := []struct {
		name       string
		o          Orientation
		rows, cols int
		n          int
	}{
		{"vertical even", Vertical, 30, 10, 3},
		{"vertical remainder", Vertical, 24, 80, 5},
		{"horizontal even", Horizontal, 10, 40, 4},
		{"horizontal remainder", Horizontal, 24, 80, 3},
		{"single", Horizontal, 5, 7, 1},
		{"full palette", Vertical, 40, 10, MaxChildren},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots := Partition(tt.o, tt.rows, tt.cols, tt.n)
			require.Len(t, slots, tt.n)

			for i, s := range slots {
				if tt.o == Horizontal {
					assert.Equal(t, tt.cols/tt.n, s.Cols, "slot %d width", i)
					assert.Equal(t, tt.rows, s.Rows, "slot %d height", i)
					assert.Equal(t, (tt.cols/tt.n)*i, s.X, "slot %d x", i)
					assert.Zero(t, s.Y)
				} else {
					assert.Equal(t, tt.rows/tt.n, s.Rows, "slot %d height", i)
					assert.Equal(t, tt.cols, s.Cols, "slot %d width", i)
					assert.Equal(t, (tt.rows/tt.n)*i, s.Y, "slot %d y", i)
					assert.Zero(t, s.X)
				}
			}

			for i := range slots {
				for j := i + 1; j < len(slots); j++ {
					assert.False(t, overlaps(slots[i], slots[j]), "slots %d and %d overlap", i, j)
				}
			}
		})
	}

	assert.Nil(t, Partition(Vertical, 10, 10, 0))
}

func overlaps(a, b Rect) bool {
	return a.X < b.X+b.Cols && b.X < a.X+a.Cols &&
		a.Y < b.Y+b.Rows && b.Y < a.Y+a.Rows
}

func TestVerticalLayout_ThreeLabels(t *testing.T) {
	_, root := newScreen(t, 10, 30)
	l := bound(t, Vertical, root)

	labels := []widgets.Widget{
		widgets.NewLabel("test1"),
		widgets.NewLabel("test2"),
		widgets.NewLabel("test3"),
	}
	add(t, l, labels...)

	for i, w := range labels {
		rows, cols := w.Region().Size()
		y, x := w.Region().Offset()
		assert.Equal(t, 10, rows, "child %d rows", i)
		assert.Equal(t, 10, cols, "child %d cols", i)
		assert.Equal(t, 10*i, y, "child %d y", i)
		assert.Equal(t, 0, x, "child %d x", i)
	}
}

func TestHorizontalLayout_RemainderUnused(t *testing.T) {
	screen, root := newScreen(t, 30, 4)
	l := bound(t, Horizontal, root)

	var ws []widgets.Widget
	for _, v := range []string{"a", "b", "c", "d"} {
		ws = append(ws, widgets.NewLabel(v))
	}
	add(t, l, ws...)

	for i, w := range ws {
		_, cols := w.Region().Size()
		_, x := w.Region().Offset()
		assert.Equal(t, 7, cols)
		assert.Equal(t, 7*i, x)
	}

	require.NoError(t, l.Draw())
	screen.Show()
	assert.Equal(t, "a      b      c      d        ", screen.CaptureRegion(0, 0, 30, 1))

	_, style := screen.CaptureCell(29, 0)
	assert.Equal(t, backend.ColorDefault, style.BG(), "remainder column keeps the layout background")
}

func TestLayout_PaletteColors(t *testing.T) {
	screen, root := newScreen(t, 8, 16)
	l := bound(t, Vertical, root)

	for range MaxChildren {
		add(t, l, widgets.NewLabel(""))
	}
	screen.Show()

	for i, w := range l.Children() {
		style := w.Region().Style()
		assert.Equal(t, Palette[i], style.BG(), "child %d background", i)
		assert.Equal(t, backend.ColorWhite, style.FG(), "child %d foreground", i)

		y, _ := w.Region().Origin()
		_, cell := screen.CaptureCell(0, y)
		assert.Equal(t, Palette[i], cell.BG(), "child %d erased with its color", i)
	}
}

func TestLayout_NinthChildRejected(t *testing.T) {
	_, root := newScreen(t, 10, 40)
	l := bound(t, Vertical, root)
	for range MaxChildren {
		add(t, l, widgets.NewLabel("x"))
	}

	ninth := widgets.NewLabel("ninth")
	_, err := l.AddWidget(ninth)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeGeometryRange))
	assert.Equal(t, MaxChildren, l.Len())
	assert.Nil(t, ninth.Region())
}

func TestLayout_UnplaceableChildRolledBack(t *testing.T) {
	_, root := newScreen(t, 10, 2)
	l := bound(t, Vertical, root)

	first := widgets.NewListView([]string{"a"})
	second := widgets.NewListView([]string{"b"})
	add(t, l, first, second)

	_, err := l.AddWidget(widgets.NewListView([]string{"c"}))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeGeometryRange))
	assert.Equal(t, 2, l.Len())

	rows, _ := second.Region().Size()
	y, _ := second.Region().Offset()
	assert.Equal(t, 1, rows)
	assert.Equal(t, 1, y)
}

func TestLayout_AddNil(t *testing.T) {
	l := NewVertical()
	_, err := l.AddWidget(nil)
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidInput))
}

func TestLayout_InitialActive(t *testing.T) {
	_, root := newScreen(t, 20, 30)
	l := bound(t, Vertical, root)
	assert.Equal(t, -1, l.Active())

	add(t, l, widgets.NewTitle("t"))
	assert.Equal(t, -1, l.Active(), "no interactive child yet")

	menu := widgets.NewMenu([]string{"a"})
	add(t, l, menu)
	assert.Equal(t, 1, l.Active())

	add(t, l, widgets.NewTextBox())
	assert.Equal(t, 1, l.Active(), "adding does not steal focus")
	assert.Same(t, menu, l.ActiveWidget())
}

func TestChangeActive_StepPolicy(t *testing.T) {
	_, root := newScreen(t, 20, 40)
	l := bound(t, Vertical, root)
	add(t, l,
		widgets.NewLabel("0"),
		widgets.NewMenu([]string{"a"}),
		widgets.NewLabel("2"),
		widgets.NewTextBox(),
	)
	require.Equal(t, 1, l.Active())

	l.ChangeActive()
	assert.Equal(t, 1, l.Active(), "next child is a label, focus stays")

	l2 := bound(t, Vertical, root)
	add(t, l2, widgets.NewMenu([]string{"a"}), widgets.NewTextBox())
	require.Equal(t, 0, l2.Active())
	l2.ChangeActive()
	assert.Equal(t, 1, l2.Active())
	l2.ChangeActive()
	assert.Equal(t, 0, l2.Active(), "wraps around")
}

func TestChangeActive_ScanPolicy(t *testing.T) {
	_, root := newScreen(t, 20, 40)
	l := bound(t, Vertical, root, WithFocusPolicy(FocusScan))
	add(t, l,
		widgets.NewLabel("0"),
		widgets.NewMenu([]string{"a"}),
		widgets.NewLabel("2"),
		widgets.NewTextBox(),
	)
	require.Equal(t, FocusScan, l.Policy())
	require.Equal(t, 1, l.Active())

	l.ChangeActive()
	assert.Equal(t, 3, l.Active(), "skips the label")
	l.ChangeActive()
	assert.Equal(t, 1, l.Active(), "wraps past the leading label")
}

func TestChangeActive_NoInteractiveChild(t *testing.T) {
	for _, p := range []FocusPolicy{FocusStep, FocusScan} {
		t.Run(p.String(), func(t *testing.T) {
			_, root := newScreen(t, 10, 10)
			l := bound(t, Vertical, root, WithFocusPolicy(p))

			assert.NotPanics(t, l.ChangeActive, "empty layout")

			add(t, l, widgets.NewLabel("a"), widgets.NewTitle("b"))
			l.ChangeActive()
			assert.Equal(t, -1, l.Active())
		})
	}
}

func TestChangeActive_StepFromUnset(t *testing.T) {
	_, root := newScreen(t, 10, 10)
	l := bound(t, Vertical, root)
	menu := widgets.NewMenu([]string{"a"})
	menu.SetAcceptsInput(false)
	add(t, l, menu)
	require.Equal(t, -1, l.Active())

	menu.SetAcceptsInput(true)
	l.ChangeActive()
	assert.Equal(t, 0, l.Active())
}

func TestChangeActive_MovesCursor(t *testing.T) {
	screen, root := newScreen(t, 20, 20)
	l := bound(t, Vertical, root)
	add(t, l, widgets.NewMenu([]string{"a"}), widgets.NewMenu([]string{"b"}))

	l.ChangeActive()
	screen.Show()
	x, y, visible := screen.Cursor()
	assert.True(t, visible)
	assert.Equal(t, 0, x)
	assert.Equal(t, 10, y)

	l3 := bound(t, Vertical, root)
	add(t, l3, widgets.NewMenu([]string{"a"}), widgets.NewTextBox())
	l3.ChangeActive()
	screen.Show()
	x, y, _ = screen.Cursor()
	assert.Equal(t, 1, x, "text box cursor sits inside the border")
	assert.Equal(t, 11, y)
}

func TestLayout_InputRouting(t *testing.T) {
	_, root := newScreen(t, 20, 20)
	l := bound(t, Vertical, root)
	menu := widgets.NewMenu([]string{"a", "b", "c"})
	box := widgets.NewTextBox()
	add(t, l, menu, box)

	sig, err := l.Input(key(terminal.KeyDown))
	require.NoError(t, err)
	assert.Equal(t, widgets.SignalActive, sig)
	assert.Equal(t, 2, menu.Cursor())

	sig, err = l.Input(key(terminal.KeyEnter))
	require.NoError(t, err)
	assert.Equal(t, widgets.SignalFinalized, sig)
	idx, ok := menu.Selected()
	assert.True(t, ok)
	assert.Equal(t, 1, idx)

	_, err = l.Input(key(terminal.KeyTab))
	require.NoError(t, err)
	assert.Equal(t, 1, l.Active())

	for _, r := range "ok" {
		_, err := l.Input(terminal.KeyEvent{Key: terminal.KeyRune, Rune: r})
		require.NoError(t, err)
	}
	sig, err = l.HandleInput(key(terminal.KeyCtrlG))
	require.NoError(t, err)
	assert.Equal(t, widgets.SignalFinalized, sig)
	assert.Equal(t, "ok", box.Value())
	assert.Equal(t, 2, menu.Cursor(), "menu untouched while unfocused")
}

func TestLayout_InputDroppedWithoutFocus(t *testing.T) {
	_, root := newScreen(t, 10, 10)
	l := bound(t, Vertical, root)
	add(t, l, widgets.NewLabel("a"))

	sig, err := l.Input(key(terminal.KeyDown))
	require.NoError(t, err)
	assert.Equal(t, widgets.SignalActive, sig)

	menu := widgets.NewMenu([]string{"a", "b"})
	add(t, l, menu)
	menu.SetAcceptsInput(false)
	_, err = l.Input(key(terminal.KeyDown))
	require.NoError(t, err)
	assert.Equal(t, 1, menu.Cursor(), "disabled widget receives no keys")
}

func TestLayout_CustomFocusKey(t *testing.T) {
	_, root := newScreen(t, 10, 10)
	l := bound(t, Vertical, root, WithFocusKey(terminal.KeyF2))
	menu := widgets.NewMenu([]string{"a"})
	box := widgets.NewTextBox()
	add(t, l, menu, box)

	_, err := l.Input(key(terminal.KeyTab))
	require.NoError(t, err)
	assert.Equal(t, 0, l.Active(), "tab is an ordinary key now")

	_, err = l.Input(key(terminal.KeyF2))
	require.NoError(t, err)
	assert.Equal(t, 1, l.Active())
}

func TestLayout_SaveLoadRoundTrip(t *testing.T) {
	_, root := newScreen(t, 10, 30)
	l := bound(t, Vertical, root)
	add(t, l, widgets.NewLabel("test1"), widgets.NewMenu([]string{"a"}), widgets.NewLabel("test3"))
	before := l.Children()

	idx := l.SaveScreen()
	assert.Equal(t, 0, idx)
	require.NoError(t, l.LoadScreen(idx))

	after := l.Children()
	require.Len(t, after, len(before))
	for i := range before {
		assert.Same(t, before[i], after[i], "child %d", i)
	}
	assert.Equal(t, 1, l.Active())
}

func TestLayout_LoadScreenReplacesChildren(t *testing.T) {
	screen, root := newScreen(t, 10, 30)
	l := bound(t, Vertical, root)
	add(t, l, widgets.NewLabel("test1"), widgets.NewLabel("test2"), widgets.NewLabel("test3"))
	require.NoError(t, l.Draw())
	saved := l.SaveScreen()

	add(t, l, widgets.NewLabel("extra"))
	assert.Equal(t, 1, l.ScreenCount())

	l.ClearWidgets()
	assert.Zero(t, l.Len())
	assert.Equal(t, -1, l.Active())

	add(t, l, widgets.NewMenu([]string{"other"}))
	require.NoError(t, l.Draw())
	screen.Show()
	require.True(t, screen.ContainsText("other"))

	require.NoError(t, l.LoadScreen(saved))
	assert.Equal(t, 3, l.Len(), "saved entry is a snapshot")
	assert.Equal(t, -1, l.Active())
	assert.False(t, screen.ContainsText("other"))
	for _, want := range []string{"test1", "test2", "test3"} {
		assert.True(t, screen.ContainsText(want), "%s restored", want)
	}
	_, y := screen.FindText("test2")
	assert.Equal(t, 10, y)
}

func TestLayout_LoadScreenUnknownIndex(t *testing.T) {
	l := NewVertical()
	l.SaveScreen()
	for _, idx := range []int{-1, 1, 5} {
		err := l.LoadScreen(idx)
		assert.True(t, errors.IsCode(err, errors.ErrCodeScreenNotFound), "index %d", idx)
	}
}

func TestLayout_DrawBeforeBind(t *testing.T) {
	l := NewHorizontal()
	err := l.Draw()
	assert.True(t, errors.IsCode(err, errors.ErrCodeStaleReference))
}

func TestLayout_AddBeforeBind(t *testing.T) {
	l := NewVertical()
	label := widgets.NewLabel("a")
	add(t, l, label, widgets.NewMenu([]string{"x"}))
	assert.Nil(t, label.Region())
	assert.Equal(t, 1, l.Active())

	_, root := newScreen(t, 10, 10)
	require.NoError(t, l.BindRegion(root))
	require.NotNil(t, label.Region())
	rows, _ := label.Region().Size()
	assert.Equal(t, 5, rows)
}

func TestLayout_Resize(t *testing.T) {
	_, root := newScreen(t, 10, 30)
	l := bound(t, Vertical, root)
	a, b := widgets.NewLabel("a"), widgets.NewLabel("b")
	add(t, l, a, b)

	require.NoError(t, l.Resize(20, 10))
	rows, _ := b.Region().Size()
	y, _ := b.Region().Offset()
	assert.Equal(t, 10, rows)
	assert.Equal(t, 10, y)
}

func TestLayout_ResizeRolledBackWhenChildrenDoNotFit(t *testing.T) {
	screen, root := newScreen(t, 10, 30)
	l := bound(t, Vertical, root)
	a, b := widgets.NewListView([]string{"a1"}), widgets.NewListView([]string{"b1"})
	add(t, l, a, b)

	err := l.Resize(1, 10)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeGeometryRange))

	rows, cols := l.Region().Size()
	assert.Equal(t, 30, rows)
	assert.Equal(t, 10, cols)
	rows, _ = b.Region().Size()
	y, _ := b.Region().Offset()
	assert.Equal(t, 15, rows)
	assert.Equal(t, 15, y)

	require.NoError(t, l.Draw())
	screen.Show()
	assert.Equal(t, " a1", screen.CaptureRegion(0, 0, 3, 1))
	assert.Equal(t, " b1", screen.CaptureRegion(0, 15, 3, 1))
}

func TestLayout_RepartitionClearsStaleSlots(t *testing.T) {
	screen, root := newScreen(t, 30, 4)
	l := bound(t, Horizontal, root)
	add(t, l, widgets.NewLabel("a"), widgets.NewLabel("b"), widgets.NewLabel("c"))
	screen.Show()
	_, style := screen.CaptureCell(29, 0)
	require.Equal(t, Palette[2], style.BG())

	add(t, l, widgets.NewLabel("d"))
	screen.Show()
	for _, x := range []int{28, 29} {
		_, style = screen.CaptureCell(x, 3)
		assert.Equal(t, backend.ColorDefault, style.BG(), "column %d is outside every slot", x)
	}
}

func TestLayout_Nested(t *testing.T) {
	screen, root := newScreen(t, 20, 10)

	inner := NewHorizontal()
	menu := widgets.NewMenu([]string{"a", "b"})
	add(t, inner, menu, widgets.NewLabel("side"))

	outer := bound(t, Vertical, root)
	add(t, outer, widgets.NewTitle("top"), inner)
	assert.Equal(t, 1, outer.Active())
	assert.True(t, inner.AcceptsInput())

	_, err := outer.Input(key(terminal.KeyDown))
	require.NoError(t, err)
	assert.Equal(t, 2, menu.Cursor())

	y, x := menu.Region().Origin()
	assert.Equal(t, 5, y)
	assert.Equal(t, 0, x)

	require.NoError(t, outer.Draw())
	screen.Show()
	cx, cy, _ := screen.Cursor()
	assert.Equal(t, 0, cx)
	assert.Equal(t, 5, cy)
}

func TestLayout_LoggerPropagates(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWriterLogger(&buf, logging.LevelDetail)

	_, root := newScreen(t, 10, 10)
	l := New(Vertical)
	l.SetLogger(logger)
	require.NoError(t, l.BindRegion(root))

	label := widgets.NewLabel("a")
	add(t, l, label)
	assert.Same(t, logger, label.Logger())
	assert.Contains(t, buf.String(), "widget added")
	assert.Contains(t, buf.String(), "making window")

	other := logging.NewWriterLogger(&buf, logging.LevelInfo)
	l.SetLogger(other)
	assert.Same(t, other, label.Logger())
}

func TestParseFocusPolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    FocusPolicy
		wantErr bool
	}{
		{"step", FocusStep, false},
		{"", FocusStep, false},
		{" SCAN ", FocusScan, false},
		{"skip", FocusStep, true},
	}
	for _, tt := range tests {
		got, err := ParseFocusPolicy(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
	assert.Equal(t, "scan", FocusScan.String())
	assert.Equal(t, "horizontal", Horizontal.String())
}
