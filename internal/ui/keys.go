package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the keyboard bindings for the console.
type keyMap struct {
	// Global
	Quit       key.Binding
	CycleTheme key.Binding
	Escape     key.Binding
	Logout     key.Binding

	// View switching
	ViewDashboard key.Binding
	ViewAnimals   key.Binding
	ViewAdopters  key.Binding
	ViewUsers     key.Binding

	// Navigation
	Up      key.Binding
	Down    key.Binding
	NextTab key.Binding
	PrevTab key.Binding

	// List actions
	Open     key.Binding
	Refresh  key.Binding
	Filter   key.Binding
	NextPage key.Binding
	PrevPage key.Binding
	Export   key.Binding
	New      key.Binding

	// Detail actions
	EditChip key.Binding

	// Users actions
	ToggleRole key.Binding

	Confirm key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Back"),
		),
		Logout: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "Logout"),
		),

		ViewDashboard: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "Dashboard"),
		),
		ViewAnimals: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "Animals"),
		),
		ViewAdopters: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "Adopters"),
		),
		ViewUsers: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "Users"),
		),

		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "Up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "Down"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Next view"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "Previous view"),
		),

		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Open"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Refresh"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "Filter"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→", "Next page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←", "Previous page"),
		),
		Export: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "Export CSV"),
		),
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "New"),
		),

		EditChip: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "Edit chip code"),
		),

		ToggleRole: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "Toggle superuser"),
		),

		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Confirm"),
		),
	}
}
