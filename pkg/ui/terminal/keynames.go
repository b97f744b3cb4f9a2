package terminal

import (
	"fmt"
	"strings"
)

var keyNames = map[Key]string{
	KeyNone:      "None",
	KeyEnter:     "Enter",
	KeyBackspace: "Backspace",
	KeyTab:       "Tab",
	KeyEscape:    "Esc",
	KeyUp:        "Up",
	KeyDown:      "Down",
	KeyLeft:      "Left",
	KeyRight:     "Right",
	KeyHome:      "Home",
	KeyEnd:       "End",
	KeyPageUp:    "PgUp",
	KeyPageDown:  "PgDn",
	KeyDelete:    "Delete",
	KeyInsert:    "Insert",
	KeyF1:        "F1",
	KeyF2:        "F2",
	KeyF3:        "F3",
	KeyF4:        "F4",
	KeyF5:        "F5",
	KeyF6:        "F6",
	KeyF7:        "F7",
	KeyF8:        "F8",
	KeyF9:        "F9",
	KeyF10:       "F10",
	KeyF11:       "F11",
	KeyF12:       "F12",
	KeyCtrlA:     "Ctrl-A",
	KeyCtrlB:     "Ctrl-B",
	KeyCtrlC:     "Ctrl-C",
	KeyCtrlD:     "Ctrl-D",
	KeyCtrlE:     "Ctrl-E",
	KeyCtrlF:     "Ctrl-F",
	KeyCtrlG:     "Ctrl-G",
	KeyCtrlK:     "Ctrl-K",
	KeyCtrlL:     "Ctrl-L",
	KeyCtrlN:     "Ctrl-N",
	KeyCtrlO:     "Ctrl-O",
	KeyCtrlP:     "Ctrl-P",
	KeyCtrlZ:     "Ctrl-Z",
}

// Aliases accepted by ParseKey in addition to the canonical names.
// The caret forms follow curses keyname output.
var keyAliases = map[string]Key{
	"return":    KeyEnter,
	"^j":        KeyEnter,
	"^m":        KeyEnter,
	"^i":        KeyTab,
	"escape":    KeyEscape,
	"^[":        KeyEscape,
	"^h":        KeyBackspace,
	"pageup":    KeyPageUp,
	"pagedown":  KeyPageDown,
	"key_up":    KeyUp,
	"key_down":  KeyDown,
	"key_left":  KeyLeft,
	"key_right": KeyRight,
	"key_home":  KeyHome,
	"key_end":   KeyEnd,
	"key_ppage": KeyPageUp,
	"key_npage": KeyPageDown,
	"key_dc":    KeyDelete,
	"key_ic":    KeyInsert,
}

var keysByName map[string]Key

func init() {
	keysByName = make(map[string]Key, len(keyNames)*2+len(keyAliases))
	for k, name := range keyNames {
		lower := strings.ToLower(name)
		keysByName[lower] = k
		if rest, ok := strings.CutPrefix(lower, "ctrl-"); ok {
			keysByName["^"+rest] = k
		}
	}
	for alias, k := range keyAliases {
		keysByName[alias] = k
	}
}

// String returns the canonical name of the key.
func (k Key) String() string {
	if k == KeyRune {
		return "Rune"
	}
	if name, ok := keyNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Key(%d)", int(k))
}

// KeyName translates a key event to its symbolic name.
// Rune events resolve to the character itself.
func KeyName(ev KeyEvent) string {
	if ev.Key == KeyRune {
		return string(ev.Rune)
	}
	return ev.Key.String()
}

// ParseKey resolves a symbolic key name to a Key.
// Matching is case-insensitive and accepts curses-style names such as
// "KEY_DOWN" and "^J".
func ParseKey(name string) (Key, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return KeyNone, fmt.Errorf("empty key name")
	}
	if k, ok := keysByName[name]; ok && k != KeyNone {
		return k, nil
	}
	return KeyNone, fmt.Errorf("unknown key name %q", name)
}
