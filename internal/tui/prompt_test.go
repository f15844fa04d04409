package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/whenq/whenq/internal/suggest"
)

var promptRef = time.Date(2024, 1, 17, 12, 0, 0, 0, time.UTC)

func newTestModel(t *testing.T, opts ...PromptOption) promptModel {
	t.Helper()
	t.Setenv("NO_COLOR", "1")
	all := append([]PromptOption{WithClock(func() time.Time { return promptRef })}, opts...)
	return newPromptModel(all...)
}

func typeString(m promptModel, s string) promptModel {
	for _, r := range s {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(promptModel)
	}
	return m
}

func TestPromptModel_TypeUpdatesSuggestions(t *testing.T) {
	m := newTestModel(t)

	m = typeString(m, "3pm")
	if len(m.items) != 1 {
		t.Fatalf("items = %d, want 1", len(m.items))
	}
	if m.items[0].Natural != "today, 3 pm" {
		t.Errorf("Natural = %q, want %q", m.items[0].Natural, "today, 3 pm")
	}

	// Narrowing input reshapes the list
	m = typeString(m, "x")
	if len(m.items) != 0 {
		t.Errorf("items after garbage = %d, want 0", len(m.items))
	}
}

func TestPromptModel_EnterSelects(t *testing.T) {
	m := newTestModel(t)
	m = typeString(m, "t")

	if len(m.items) < 3 {
		t.Fatalf("items = %d, want several for %q", len(m.items), "t")
	}

	// Move down one and select
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(promptModel)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(promptModel)

	if cmd == nil {
		t.Fatal("enter should quit the program")
	}
	if m.selected == nil {
		t.Fatal("enter should select the item under the cursor")
	}
	if m.selected.Natural != m.items[1].Natural {
		t.Errorf("selected = %q, want %q", m.selected.Natural, m.items[1].Natural)
	}
	if m.phrase != "t" {
		t.Errorf("phrase = %q, want %q", m.phrase, "t")
	}
}

func TestPromptModel_TabSelectsFirst(t *testing.T) {
	m := newTestModel(t)
	m = typeString(m, "fri")

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(promptModel)

	if m.selected == nil {
		t.Fatal("tab should select the first item")
	}
	if m.selected.Natural != "on Friday at 8 am" {
		t.Errorf("selected = %q, want %q", m.selected.Natural, "on Friday at 8 am")
	}
}

func TestPromptModel_EscCancels(t *testing.T) {
	m := newTestModel(t)
	m = typeString(m, "3pm")

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(promptModel)

	if !m.quitting {
		t.Error("esc should mark the model as quitting")
	}
	if m.selected != nil {
		t.Error("esc should not select anything")
	}
}

func TestPromptModel_CursorBounds(t *testing.T) {
	m := newTestModel(t)
	m = typeString(m, "t")
	n := len(m.items)

	// Up at the top stays at the top
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = next.(promptModel)
	if m.cursor != 0 {
		t.Errorf("cursor = %d, want 0", m.cursor)
	}

	// Down never passes the last item
	for i := 0; i < n+3; i++ {
		next, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
		m = next.(promptModel)
	}
	if m.cursor != n-1 {
		t.Errorf("cursor = %d, want %d", m.cursor, n-1)
	}
}

func TestPromptModel_LimitCapsItems(t *testing.T) {
	m := newTestModel(t, WithLimit(2))
	m = typeString(m, "t")

	if len(m.items) != 2 {
		t.Errorf("items = %d, want 2 with limit", len(m.items))
	}
}

func TestPromptModel_View(t *testing.T) {
	m := newTestModel(t, WithPromptTitle("Pick a time"), WithRecents([]string{"3pm", "next tue"}))

	view := m.View()
	if !strings.Contains(view, "Pick a time") {
		t.Errorf("view missing title:\n%s", view)
	}
	if !strings.Contains(view, "Recent:") || !strings.Contains(view, "next tue") {
		t.Errorf("view missing recents while input is empty:\n%s", view)
	}

	m = typeString(m, "fri")
	view = m.View()
	if !strings.Contains(view, "on Friday at 8 am") {
		t.Errorf("view missing suggestion:\n%s", view)
	}
	if strings.Contains(view, "Recent:") {
		t.Errorf("view should hide recents once items exist:\n%s", view)
	}

	m = typeString(m, "zzz")
	view = m.View()
	if !strings.Contains(view, "No matches yet") {
		t.Errorf("view missing empty-state hint:\n%s", view)
	}
}

func TestPromptModel_EvaluateUsesClock(t *testing.T) {
	evening := time.Date(2024, 1, 17, 16, 0, 0, 0, time.UTC)
	m := newTestModel(t, WithClock(func() time.Time { return evening }))

	m = typeString(m, "3pm")
	if len(m.items) != 1 {
		t.Fatalf("items = %d, want 1", len(m.items))
	}
	if m.items[0].Natural != "tomorrow, 3 pm" {
		t.Errorf("Natural = %q, want %q (3 pm already passed)", m.items[0].Natural, "tomorrow, 3 pm")
	}
}

func TestPromptModel_GeneratorOption(t *testing.T) {
	m := newTestModel(t, WithGenerator(suggest.NewGenerator()))
	m = typeString(m, "tonight")
	if len(m.items) != 1 || m.items[0].Natural != "tonight at 6 pm" {
		t.Errorf("items = %+v, want tonight at 6 pm", m.items)
	}
}
