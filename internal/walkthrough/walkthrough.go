// Package walkthrough is the terminal UI an interviewer uses to step through
// an assembled set and jot notes against each question.
package walkthrough

import (
	"context"
	"fmt"
	"maps"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/saturogrp-blip/Grand/internal/interview"
	"github.com/saturogrp-blip/Grand/internal/ui/components"
	"github.com/saturogrp-blip/Grand/internal/ui/layout"
	"github.com/saturogrp-blip/Grand/internal/ui/theme"
)

const noteLimit = 500

var hints = []layout.KeyHint{
	{Key: "Enter", Description: "Save & next"},
	{Key: "PgUp/PgDn", Description: "Move"},
	{Key: "Esc", Description: "Finish"},
}

// Model walks through the questions of one set.
type Model struct {
	set    interview.Set
	index  int
	notes  map[int]string
	input  components.NoteInput
	width  int
	height int
	done   bool
}

// New starts at the first question. notes pre-fills earlier notes and is
// not modified.
func New(set interview.Set, notes map[int]string) Model {
	m := Model{
		set:   set,
		notes: maps.Clone(notes),
		input: components.NewNoteInput("Notes on the applicant's answer…", noteLimit),
	}
	if m.notes == nil {
		m.notes = map[int]string{}
	}
	m.input.Reset(m.notes[0])
	return m
}

func (m Model) Init() tea.Cmd {
	return m.input.Init()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.input.SetWidth(max(msg.Width-8, 10))
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.save()
			m.done = true
			return m, tea.Quit
		case "enter":
			m.save()
			if m.index == len(m.set.Questions)-1 {
				m.done = true
				return m, tea.Quit
			}
			m.move(1)
			return m, nil
		case "ctrl+n", "pgdown":
			m.save()
			m.move(1)
			return m, nil
		case "ctrl+p", "pgup":
			m.save()
			m.move(-1)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// save stores the current input against the current question. An empty
// input clears the note.
func (m *Model) save() {
	if len(m.set.Questions) == 0 {
		return
	}
	if v := m.input.Value(); v != "" {
		m.notes[m.index] = v
	} else {
		delete(m.notes, m.index)
	}
}

func (m *Model) move(delta int) {
	next := min(max(m.index+delta, 0), max(len(m.set.Questions)-1, 0))
	if next == m.index {
		return
	}
	m.index = next
	m.input.Reset(m.notes[next])
}

// Notes returns the captured notes keyed by question index.
func (m Model) Notes() map[int]string { return maps.Clone(m.notes) }

// Index is the current question, 0-based.
func (m Model) Index() int { return m.index }

// Done reports whether the walkthrough was finished.
func (m Model) Done() bool { return m.done }

func (m Model) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if content := m.render(); content != "" {
		v.SetContent(content)
	}
	return v
}

// render draws the full frame, or nothing before the first window size.
func (m Model) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	title := fmt.Sprintf("%s interview", m.set.Organization)
	status := fmt.Sprintf("%d notes", len(m.notes))
	header := layout.RenderHeader(title, status, m.width)
	footer := layout.RenderFooter(hints, m.width)

	return layout.RenderFrame(header, m.body(len(m.set.Questions)), footer, m.width, m.height)
}

func (m Model) body(total int) string {
	if total == 0 {
		return theme.Hint.Render("\n  This set has no questions.")
	}
	q := m.set.Questions[m.index]
	cardWidth := max(m.width-4, 20)

	label := theme.Hint.Render(fmt.Sprintf("Question %d of %d", m.index+1, total))
	if q.Mandatory {
		label += "  " + theme.Badge.Render("MANDATORY")
	}

	card := theme.Card.Width(cardWidth).Render(theme.Body.Render(q.Text))
	progress := components.ProgressBar{Current: m.index + 1, Total: total, Width: cardWidth}

	return lipgloss.JoinVertical(lipgloss.Left,
		"",
		" "+label,
		card,
		" "+progress.View(),
		"",
		" "+theme.Title.Render("Notes"),
		" "+m.input.View(),
	)
}

// Run shows the walkthrough until the interviewer finishes and returns the
// notes.
func Run(ctx context.Context, set interview.Set, notes map[int]string) (map[int]string, error) {
	p := tea.NewProgram(New(set, notes), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("run walkthrough: %w", err)
	}
	return final.(Model).Notes(), nil
}
