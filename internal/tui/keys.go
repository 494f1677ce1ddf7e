package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/handiism/deanon/internal/model"
)

// KeyMap defines the key bindings of the review screen.
type KeyMap struct {
	Person       key.Binding
	Date         key.Binding
	Organisation key.Binding
	Location     key.Binding
	Remove       key.Binding
	Custom       key.Binding
	Export       key.Binding
	Quit         key.Binding

	// Custom label input
	Submit key.Binding
	Cancel key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Person:       key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "person")),
		Date:         key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "date")),
		Organisation: key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "organisation")),
		Location:     key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "location")),
		Remove:       key.NewBinding(key.WithKeys("5"), key.WithHelp("5", "remove")),
		Custom:       key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "custom")),
		Export:       key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export")),
		Quit:         key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Submit:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "apply")),
		Cancel:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

// labelBindings pairs each fixed label with its binding, in display order.
func (k KeyMap) labelBindings() []struct {
	Binding key.Binding
	Label   model.Label
} {
	return []struct {
		Binding key.Binding
		Label   model.Label
	}{
		{k.Person, model.LabelPerson},
		{k.Date, model.LabelDate},
		{k.Organisation, model.LabelOrganisation},
		{k.Location, model.LabelLocation},
		{k.Remove, model.LabelRemove},
	}
}

func (k KeyMap) reviewHelp() []key.Binding {
	return []key.Binding{k.Person, k.Date, k.Organisation, k.Location, k.Remove, k.Custom, k.Export, k.Quit}
}

func (k KeyMap) customHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Cancel}
}

func (k KeyMap) exhaustedHelp() []key.Binding {
	return []key.Binding{k.Export, k.Quit}
}
