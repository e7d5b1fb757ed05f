package components

import (
	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
)

// TextArea wraps bubbles/textarea for multi-line response entry.
type TextArea struct {
	Model textarea.Model
}

// NewTextArea creates a new styled textarea.
func NewTextArea(placeholder string, charLimit, width, height int) TextArea {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.Focus()
	ta.ShowLineNumbers = false

	if charLimit > 0 {
		ta.CharLimit = charLimit
	}
	if width > 0 {
		ta.SetWidth(width)
	}
	if height > 0 {
		ta.SetHeight(height)
	}

	return TextArea{Model: ta}
}

// Init returns the initial command.
func (t TextArea) Init() tea.Cmd {
	return t.Model.Focus()
}

// Update handles messages.
func (t TextArea) Update(msg tea.Msg) (TextArea, tea.Cmd) {
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the textarea.
func (t TextArea) View() string {
	return t.Model.View()
}

// Value returns the current textarea contents.
func (t TextArea) Value() string {
	return t.Model.Value()
}

// SetWidth resizes the textarea.
func (t *TextArea) SetWidth(width int) {
	t.Model.SetWidth(width)
}
