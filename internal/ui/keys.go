package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Refresh    key.Binding
	Pair       key.Binding
	Offline    key.Binding

	// Navigation
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding

	// Brightness
	Dimmer       key.Binding
	Brighter     key.Binding
	DimmerFast   key.Binding
	BrighterFast key.Binding
	Off          key.Binding
	Full         key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("h", "?"),
			key.WithHelp("h/?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Refresh lights"),
		),
		Pair: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "Pair with bridge"),
		),
		Offline: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "Show/hide unreachable"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom"),
		),

		Dimmer: key.NewBinding(
			key.WithKeys("left", "-"),
			key.WithHelp("left/-", "Dimmer"),
		),
		Brighter: key.NewBinding(
			key.WithKeys("right", "+", "="),
			key.WithHelp("right/+", "Brighter"),
		),
		DimmerFast: key.NewBinding(
			key.WithKeys("shift+left"),
			key.WithHelp("shift+left", "Dimmer (x5)"),
		),
		BrighterFast: key.NewBinding(
			key.WithKeys("shift+right"),
			key.WithHelp("shift+right", "Brighter (x5)"),
		),
		Off: key.NewBinding(
			key.WithKeys("0"),
			key.WithHelp("0", "Turn off"),
		),
		Full: key.NewBinding(
			key.WithKeys("9"),
			key.WithHelp("9", "Full brightness"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Dimmer, k.Brighter, k.Refresh, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom},
		{k.Dimmer, k.Brighter, k.DimmerFast, k.BrighterFast, k.Off, k.Full},
		{k.Refresh, k.Pair, k.Offline},
		{k.CycleTheme, k.Help, k.Quit},
	}
}
