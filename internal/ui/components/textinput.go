package components

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

// NoteInput is a single-line, focused text input for free-form notes.
type NoteInput struct {
	Model textinput.Model
}

// NewNoteInput creates a focused input limited to limit characters
// (0 means unlimited).
func NewNoteInput(placeholder string, limit int) NoteInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "› "
	ti.CharLimit = limit
	ti.Focus()
	return NoteInput{Model: ti}
}

// Init starts the cursor.
func (n NoteInput) Init() tea.Cmd {
	return n.Model.Focus()
}

// Update forwards msg to the input.
func (n NoteInput) Update(msg tea.Msg) (NoteInput, tea.Cmd) {
	var cmd tea.Cmd
	n.Model, cmd = n.Model.Update(msg)
	return n, cmd
}

func (n NoteInput) View() string {
	return n.Model.View()
}

// Value returns the input with surrounding space trimmed.
func (n NoteInput) Value() string {
	return strings.TrimSpace(n.Model.Value())
}

// Reset replaces the input text and moves the cursor to its end.
func (n *NoteInput) Reset(text string) {
	n.Model.SetValue(text)
	n.Model.CursorEnd()
}

// SetWidth sets the visible width of the input.
func (n *NoteInput) SetWidth(w int) {
	n.Model.SetWidth(w)
}
