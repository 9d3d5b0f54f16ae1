package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/rs/zerolog/log"
)

// keyMap defines keybindings for the grid
type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Search   key.Binding
	Sort     key.Binding
	Reset    key.Binding
	Load     key.Binding
	Help     key.Binding
	Quit     key.Binding
	Confirm  key.Binding
	Cancel   key.Binding
}

func getDefaultHotkeys() map[string][]string {
	return map[string][]string{
		"Up":       {"up", "k"},
		"Down":     {"down", "j"},
		"Left":     {"left", "h"},
		"Right":    {"right", "l"},
		"PageUp":   {"pgup"},
		"PageDown": {"pgdown"},
		"Search":   {"/"},
		"Sort":     {"s"},
		"Reset":    {"="},
		"Load":     {"L", "ctrl+o"},
		"Help":     {"?"},
		"Quit":     {"q", "ctrl+c"},
		"Confirm":  {"enter"},
		"Cancel":   {"esc"},
	}
}

// applyConfigHotkeys overlays configured bindings on the defaults. Unknown
// action names are ignored.
func applyConfigHotkeys(config map[string][]string, defaults map[string][]string) map[string][]string {
	hotkeys := make(map[string][]string, len(defaults))

	// Copy defaults
	for k, v := range defaults {
		hotkeys[k] = make([]string, len(v))
		copy(hotkeys[k], v)
	}

	for action, keys := range config {
		if _, ok := hotkeys[action]; !ok {
			log.Warn().Str("action", action).Msg("ignoring hotkey for unknown action")
			continue
		}
		if len(keys) > 0 {
			hotkeys[action] = keys
		}
	}

	return hotkeys
}

func binding(keys []string, desc string) key.Binding {
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(strings.Join(keys, "/"), desc),
	)
}

func createKeyMapFromConfig(hotkeys map[string][]string) keyMap {
	return keyMap{
		Up:       binding(hotkeys["Up"], "row up"),
		Down:     binding(hotkeys["Down"], "row down"),
		Left:     binding(hotkeys["Left"], "column left"),
		Right:    binding(hotkeys["Right"], "column right"),
		PageUp:   binding(hotkeys["PageUp"], "page up"),
		PageDown: binding(hotkeys["PageDown"], "page down"),
		Search:   binding(hotkeys["Search"], "filter column"),
		Sort:     binding(hotkeys["Sort"], "sort column"),
		Reset:    binding(hotkeys["Reset"], "reset view"),
		Load:     binding(hotkeys["Load"], "load data"),
		Help:     binding(hotkeys["Help"], "toggle help"),
		Quit:     binding(hotkeys["Quit"], "exit"),
		Confirm:  binding(hotkeys["Confirm"], "close filter"),
		Cancel:   binding(hotkeys["Cancel"], "cancel"),
	}
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Load, k.Search, k.Sort, k.Help, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right}, // Navigation
		{k.PageUp, k.PageDown},          // Paging
		{k.Search, k.Sort, k.Reset},     // View actions
		{k.Confirm, k.Cancel},           // Filter box
		{k.Load, k.Help, k.Quit},        // General
	}
}
