package widgets

import (
	"github.com/odvcencio/termstack/pkg/ui/backend"
	"github.com/odvcencio/termstack/pkg/ui/terminal"
	"github.com/odvcencio/termstack/pkg/ui/textedit"
)

// TextBox is a bordered text field. Editing happens in the interior region,
// one cell inside the border.
type TextBox struct {
	Focusable
	inner     *backend.Region
	editor    *textedit.Editor
	value     string
	overwrite bool
}

// NewTextBox creates an empty text box.
func NewTextBox() *TextBox {
	return &TextBox{}
}

// Value returns the text gathered when editing last completed.
func (t *TextBox) Value() string {
	return t.value
}

// SetValue replaces the field content.
func (t *TextBox) SetValue(value string) {
	t.value = value
	if t.editor != nil {
		t.editor.SetText(value)
	}
	t.needsRender = true
}

// SetInsertMode chooses between inserting typed characters (the default)
// and overwriting the character under the cursor.
func (t *TextBox) SetInsertMode(on bool) {
	t.overwrite = !on
	if t.editor != nil {
		t.editor.SetInsertMode(on)
	}
}

// Text returns the text currently in the editor, which may be unconfirmed.
func (t *TextBox) Text() string {
	if t.editor == nil {
		return t.value
	}
	return t.editor.Gather()
}

// BindRegion binds the field and derives its editing interior.
// The region must be at least 3x3.
func (t *TextBox) BindRegion(region *backend.Region) error {
	if region == nil {
		return t.Base.BindRegion(region)
	}
	rows, cols := region.Size()
	if rows < 3 || cols < 3 {
		return geometryError("text box needs at least 3x3", rows, cols)
	}
	inner, err := region.Derive(rows-2, cols-2, 1, 1)
	if err != nil {
		return err
	}
	if err := t.Base.BindRegion(region); err != nil {
		return err
	}
	t.bindEditor(inner)
	return nil
}

func (t *TextBox) bindEditor(inner *backend.Region) {
	t.inner = inner
	if t.editor == nil {
		t.editor = textedit.New(inner)
		t.editor.SetInsertMode(!t.overwrite)
		t.editor.SetText(t.value)
		return
	}
	t.editor.Bind(inner)
}

// Resize resizes the field and its interior.
func (t *TextBox) Resize(rows, cols int) error {
	if rows < 3 || cols < 3 {
		return geometryError("text box needs at least 3x3", rows, cols)
	}
	if err := t.Base.Resize(rows, cols); err != nil {
		return err
	}
	if err := t.inner.Resize(rows-2, cols-2); err != nil {
		return err
	}
	t.editor.Bind(t.inner)
	return nil
}

// HandleInput passes the key to the editor. When the editor reports
// completion the gathered text becomes the value.
func (t *TextBox) HandleInput(ev terminal.KeyEvent) (Signal, error) {
	if err := t.checkBound("input"); err != nil {
		return SignalActive, err
	}
	t.logger.Log("text box handling key", terminal.KeyName(ev))

	if !t.editor.DoCommand(ev) {
		t.value = t.editor.Gather()
		t.logger.Log("text box finalized", t.value)
		return SignalFinalized, nil
	}
	return SignalActive, nil
}

// Draw draws the border when dirty and always repaints the interior.
func (t *TextBox) Draw() error {
	if err := t.checkBound("draw"); err != nil {
		return err
	}
	if t.needsRender {
		if err := t.region.Box(); err != nil {
			return err
		}
		t.needsRender = false
	}
	return t.editor.Draw()
}

// PlaceCursor moves the terminal cursor to the edit position.
func (t *TextBox) PlaceCursor() error {
	if err := t.checkBound("cursor"); err != nil {
		return err
	}
	row, col := t.editor.Cursor()
	return t.inner.MoveCursor(row, col)
}

// TextInput is a one-line text box. Its region is cut to three rows so the
// interior is a single line, and Enter completes the edit.
type TextInput struct {
	TextBox
}

// NewTextInput creates an empty text input.
func NewTextInput() *TextInput {
	return &TextInput{}
}

// BindRegion cuts the region to three rows and binds it.
func (t *TextInput) BindRegion(region *backend.Region) error {
	if region == nil {
		return t.TextBox.BindRegion(region)
	}
	rows, cols := region.Size()
	if rows < 3 || cols < 3 {
		return geometryError("text input needs 3 rows and 3 columns", rows, cols)
	}
	if err := region.Resize(3, cols); err != nil {
		return err
	}
	return t.TextBox.BindRegion(region)
}

// Resize keeps the field at three rows.
func (t *TextInput) Resize(_, cols int) error {
	return t.TextBox.Resize(3, cols)
}

var (
	_ InputHandler = (*TextBox)(nil)
	_ InputHandler = (*TextInput)(nil)
	_ CursorPlacer = (*TextBox)(nil)
)
