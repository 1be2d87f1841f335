package walkthrough

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/saturogrp-blip/Grand/internal/interview"
)

func testSet() interview.Set {
	return interview.Set{
		ID:           "set-1",
		Organization: "EMS",
		Strategy:     interview.Prepend,
		Questions: []interview.Question{
			{Text: "State your name.", Mandatory: true},
			{Text: "What is triage?"},
			{Text: "Describe CPR."},
		},
	}
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func ctrl(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Mod: tea.ModCtrl}
}

func update(t *testing.T, m Model, msgs ...tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(Model)
	}
	return m, cmd
}

func typeText(s string) []tea.Msg {
	var msgs []tea.Msg
	for _, r := range s {
		msgs = append(msgs, keyPress(r))
	}
	return msgs
}

func TestEnterSavesNoteAndAdvances(t *testing.T) {
	m := New(testSet(), nil)

	m, _ = update(t, m, typeText("Jane")...)
	m, cmd := update(t, m, specialKey(tea.KeyEnter))

	if m.Index() != 1 {
		t.Fatalf("index = %d, want 1", m.Index())
	}
	if cmd != nil {
		t.Error("expected no quit command before the last question")
	}
	if got := m.Notes()[0]; got != "Jane" {
		t.Errorf("note[0] = %q, want %q", got, "Jane")
	}
	if m.input.Value() != "" {
		t.Errorf("input = %q, want empty for the next question", m.input.Value())
	}
}

func TestEnterOnLastQuestionFinishes(t *testing.T) {
	m := New(testSet(), nil)

	m, _ = update(t, m, specialKey(tea.KeyEnter), specialKey(tea.KeyEnter))
	m, cmd := update(t, m, specialKey(tea.KeyEnter))

	if !m.Done() {
		t.Fatal("expected walkthrough to be done")
	}
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("cmd() = %T, want tea.QuitMsg", cmd())
	}
	if len(m.Notes()) != 0 {
		t.Errorf("notes = %v, want none", m.Notes())
	}
}

func TestNavigationKeepsNotes(t *testing.T) {
	m := New(testSet(), map[int]string{2: "knew the ratio"})

	m, _ = update(t, m, specialKey(tea.KeyPgDown))
	m, _ = update(t, m, typeText("solid")...)
	m, _ = update(t, m, ctrl('n'))
	if m.Index() != 2 {
		t.Fatalf("index = %d, want 2", m.Index())
	}
	if m.input.Value() != "knew the ratio" {
		t.Errorf("input = %q, want the earlier note", m.input.Value())
	}

	// Clamped at the end.
	m, _ = update(t, m, specialKey(tea.KeyPgDown))
	if m.Index() != 2 {
		t.Errorf("index = %d, want 2 after moving past the end", m.Index())
	}

	m, _ = update(t, m, ctrl('p'), specialKey(tea.KeyPgUp), specialKey(tea.KeyPgUp))
	if m.Index() != 0 {
		t.Errorf("index = %d, want 0", m.Index())
	}

	notes := m.Notes()
	if notes[1] != "solid" || notes[2] != "knew the ratio" {
		t.Errorf("notes = %v", notes)
	}
}

func TestClearingNoteRemovesIt(t *testing.T) {
	m := New(testSet(), map[int]string{0: "x"})

	m, _ = update(t, m, specialKey(tea.KeyBackspace), specialKey(tea.KeyEnter))

	if _, ok := m.Notes()[0]; ok {
		t.Errorf("notes = %v, want note 0 removed", m.Notes())
	}
}

func TestEscapeSavesAndQuits(t *testing.T) {
	m := New(testSet(), nil)

	m, _ = update(t, m, typeText("calm")...)
	m, cmd := update(t, m, specialKey(tea.KeyEscape))

	if !m.Done() || cmd == nil {
		t.Fatal("expected done with quit command")
	}
	if m.Notes()[0] != "calm" {
		t.Errorf("notes = %v", m.Notes())
	}
}

func TestNewDoesNotModifyNotes(t *testing.T) {
	prior := map[int]string{0: "before"}
	m := New(testSet(), prior)

	m, _ = update(t, m, specialKey(tea.KeyBackspace), specialKey(tea.KeyEnter))

	if prior[0] != "before" {
		t.Errorf("prior notes modified: %v", prior)
	}
	if m.Notes()[0] != "befor" {
		t.Errorf("note = %q, want %q", m.Notes()[0], "befor")
	}
}

func TestView(t *testing.T) {
	m := New(testSet(), nil)

	if got := m.render(); got != "" {
		t.Errorf("view before size = %q, want empty", got)
	}
	if !m.View().AltScreen {
		t.Error("expected alt screen")
	}

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	content := m.render()
	for _, want := range []string{"EMS interview", "Question 1 of 3", "MANDATORY", "State your name.", "1/3"} {
		if !strings.Contains(content, want) {
			t.Errorf("view missing %q", want)
		}
	}

	m, _ = update(t, m, specialKey(tea.KeyPgDown))
	if strings.Contains(m.render(), "MANDATORY") {
		t.Error("non-mandatory question shows the mandatory badge")
	}

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 40, Height: 10})
	if !strings.Contains(m.render(), "Terminal too small") {
		t.Error("expected too-small message")
	}
}

func TestEmptySet(t *testing.T) {
	m := New(interview.Set{Organization: "NG"}, nil)

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24}, specialKey(tea.KeyPgDown))

	if m.Index() != 0 {
		t.Errorf("index = %d, want 0", m.Index())
	}
	if !strings.Contains(m.render(), "no questions") {
		t.Error("expected empty-set message")
	}
}
