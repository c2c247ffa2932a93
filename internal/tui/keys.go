package tui

import "github.com/charmbracelet/bubbles/key"

// stepperKeys drive the step list and the detail pane.
type stepperKeys struct {
	Next      key.Binding
	Back      key.Binding
	Up        key.Binding
	Down      key.Binding
	Expand    key.Binding
	Assignee  key.Binding
	Manager   key.Binding
	Signature key.Binding
	Download  key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func newStepperKeys() stepperKeys {
	return stepperKeys{
		Next:      key.NewBinding(key.WithKeys("n", "right", "l"), key.WithHelp("n/→", "next")),
		Back:      key.NewBinding(key.WithKeys("b", "left", "h"), key.WithHelp("b/←", "back")),
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Expand:    key.NewBinding(key.WithKeys(" ", "space", "e"), key.WithHelp("space", "expand")),
		Assignee:  key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "assignee")),
		Manager:   key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "manager")),
		Signature: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "e-signature")),
		Download:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "download")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k stepperKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Back, k.Assignee, k.Manager, k.Signature, k.Help, k.Quit}
}

func (k stepperKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Back, k.Up, k.Down},
		{k.Expand, k.Assignee, k.Manager},
		{k.Signature, k.Download, k.Help, k.Quit},
	}
}

// padKeys are active while the signature modal is open.
type padKeys struct {
	Clear  key.Binding
	Submit key.Binding
	Cancel key.Binding
	Quit   key.Binding
}

func newPadKeys() padKeys {
	return padKeys{
		Clear:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear")),
		Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Quit:   key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (k padKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Clear, k.Submit, k.Cancel}
}

func (k padKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
