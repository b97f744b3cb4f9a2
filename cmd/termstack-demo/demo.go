package main

import (
	"fmt"
	"strings"

	"github.com/odvcencio/termstack/pkg/config"
	"github.com/odvcencio/termstack/pkg/logging"
	"github.com/odvcencio/termstack/pkg/ui/backend"
	"github.com/odvcencio/termstack/pkg/ui/display"
	"github.com/odvcencio/termstack/pkg/ui/layout"
	"github.com/odvcencio/termstack/pkg/ui/widgets"
)

var tableRows = [][]string{
	{"test0", "test0b", "test0c"},
	{"test1", "test1b", "test1c"},
	{"test2", "test2b"},
}

func menuLines() []string {
	lines := make([]string, 19)
	for i := range lines {
		lines[i] = strings.Repeat(fmt.Sprintf("Line %d ", i), 3)
	}
	return lines
}

// demo holds the main screen's widgets so the summary screen can read them.
type demo struct {
	display    *display.Display
	root       *layout.Layout
	menu       *widgets.Menu
	input      *widgets.TextInput
	mainScreen int
}

func newDemo(b backend.Backend, cfg *config.Config, logger *logging.Logger) (*demo, error) {
	d := &demo{
		display: display.New(b,
			display.WithLogger(logger),
			display.WithFocusKey(cfg.FocusKey()),
			display.WithConfirmKey(cfg.ConfirmKey()),
		),
		root:  layout.New(cfg.Orientation(), layout.WithFocusPolicy(cfg.FocusPolicy())),
		menu:  widgets.NewMenu(menuLines()),
		input: widgets.NewTextInput(),
	}
	if err := d.display.SetLayout(d.root); err != nil {
		return nil, err
	}

	for _, w := range []widgets.Widget{
		widgets.NewTitle("termstack demo"),
		d.menu,
		widgets.NewMultiColumnList(tableRows),
		d.input,
	} {
		if _, err := d.root.AddWidget(w); err != nil {
			return nil, err
		}
	}
	d.mainScreen = d.root.SaveScreen()
	return d, nil
}

// run shows the main screen, a summary of what was picked, then the main
// screen again. Each phase ends on the confirm key.
func (d *demo) run() error {
	if err := d.display.Run(); err != nil {
		return err
	}
	if err := d.showSummary(); err != nil {
		return err
	}
	if err := d.display.Run(); err != nil {
		return err
	}
	if err := d.root.LoadScreen(d.mainScreen); err != nil {
		return err
	}
	return d.display.Run()
}

// showSummary replaces the main screen with the highlighted menu line and
// the typed text.
func (d *demo) showSummary() error {
	d.display.ClearLayout()
	for _, w := range []widgets.Widget{
		widgets.NewTitle("Summary"),
		widgets.NewLabel("Menu: " + strings.TrimSpace(d.highlighted())),
		widgets.NewLabel("Input: " + d.input.Text()),
	} {
		if _, err := d.root.AddWidget(w); err != nil {
			return err
		}
	}
	return nil
}

func (d *demo) highlighted() string {
	values := d.menu.Values()
	i := d.menu.ListPos() + d.menu.Cursor() - 1
	if i < 0 || i >= len(values) {
		return ""
	}
	return values[i]
}

func (d *demo) close() {
	d.display.Close()
}
