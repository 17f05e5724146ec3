package tui

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"charm.land/bubbles/v2/key"
)

// keyMap represents key map data used by this package.
type keyMap struct {
	quit          key.Binding
	reload        key.Binding
	toggleHelp    key.Binding
	moveLeft      key.Binding
	moveRight     key.Binding
	moveUp        key.Binding
	moveDown      key.Binding
	addTask       key.Binding
	editTask      key.Binding
	grabTask      key.Binding
	duplicateTask key.Binding
	deleteTask    key.Binding
	toggleTask    key.Binding
	yankTask      key.Binding
	moveTaskLeft  key.Binding
	moveTaskRight key.Binding
}

// KeyOverrides rebinds the single-key actions that the config file may
// customize. Empty fields keep the defaults.
type KeyOverrides struct {
	AddTask   string
	Grab      string
	Duplicate string
	Delete    string
	Toggle    string
	Yank      string
}

// newKeyMap constructs key map.
func newKeyMap() keyMap {
	return keyMap{
		quit:          key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		reload:        key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		toggleHelp:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
		moveLeft:      key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h/←", "column left")),
		moveRight:     key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("l/→", "column right")),
		moveUp:        key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "task up")),
		moveDown:      key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "task down")),
		addTask:       key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "new task")),
		editTask:      key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e/enter", "edit task")),
		grabTask:      key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "grab task")),
		duplicateTask: key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "duplicate")),
		deleteTask:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
		toggleTask:    key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "toggle done")),
		yankTask:      key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy summary")),
		moveTaskLeft:  key.NewBinding(key.WithKeys("["), key.WithHelp("[", "move task left")),
		moveTaskRight: key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "move task right")),
	}
}

// parseBindingKeys expands a configured key string into the matcher keys
// and the help label shown for it. Space and uppercase runes get the
// aliases the terminal actually reports.
func parseBindingKeys(raw, fallback string) ([]string, string) {
	if raw == "" {
		return []string{fallback}, fallback
	}
	if raw == " " || strings.EqualFold(raw, "space") {
		return []string{" ", "space"}, "space"
	}
	if r, size := utf8.DecodeRuneInString(raw); size == len(raw) {
		if unicode.IsUpper(r) {
			return []string{raw, "shift+" + string(unicode.ToLower(r))}, raw
		}
		return []string{raw}, raw
	}
	return []string{strings.ToLower(raw)}, raw
}

// configureBinding rebinds a single action if an override is set.
func configureBinding(b *key.Binding, raw, fallback, desc string) {
	if raw == "" {
		return
	}
	keys, label := parseBindingKeys(raw, fallback)
	*b = key.NewBinding(key.WithKeys(keys...), key.WithHelp(label, desc))
}

// apply rebinds the customizable actions in place.
func (k *keyMap) apply(o KeyOverrides) {
	configureBinding(&k.addTask, o.AddTask, "a", "new task")
	configureBinding(&k.grabTask, o.Grab, "g", "grab task")
	configureBinding(&k.duplicateTask, o.Duplicate, "y", "duplicate")
	configureBinding(&k.deleteTask, o.Delete, "x", "delete")
	configureBinding(&k.toggleTask, o.Toggle, " ", "toggle done")
	configureBinding(&k.yankTask, o.Yank, "c", "copy summary")
}

// ShortHelp handles short help.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.addTask, k.editTask, k.grabTask, k.toggleTask, k.deleteTask, k.quit,
	}
}

// FullHelp handles full help.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.addTask, k.editTask, k.duplicateTask, k.toggleTask, k.yankTask, k.toggleHelp, k.reload, k.quit},
		{k.moveLeft, k.moveRight, k.moveUp, k.moveDown, k.moveTaskLeft, k.moveTaskRight},
		{k.grabTask, k.deleteTask},
	}
}
