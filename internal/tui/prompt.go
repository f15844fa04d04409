package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/whenq/whenq/internal/suggest"
)

// promptModel is the bubbletea model for the live suggestion prompt.
// Every keystroke re-runs the suggestion rules against the current input, so
// the candidate list narrows and reshapes as the user types.
type promptModel struct {
	input      textinput.Model
	gen        suggest.Generator
	now        func() time.Time
	limit      int
	items      []suggest.Suggestion
	cursor     int
	selected   *suggest.Suggestion
	phrase     string
	quitting   bool
	styles     *Styles
	title      string
	maxVisible int
	recents    []string
	showHelp   bool
}

// PromptOption configures a prompt.
type PromptOption func(*promptModel)

// WithPromptTitle sets the prompt title.
func WithPromptTitle(title string) PromptOption {
	return func(m *promptModel) { m.title = title }
}

// WithMaxVisible sets the maximum number of visible suggestions.
func WithMaxVisible(n int) PromptOption {
	return func(m *promptModel) { m.maxVisible = n }
}

// WithRecents shows recently accepted phrases while the input is empty.
func WithRecents(phrases []string) PromptOption {
	return func(m *promptModel) { m.recents = phrases }
}

// WithClock sets the reference-time source. Defaults to time.Now.
func WithClock(now func() time.Time) PromptOption {
	return func(m *promptModel) { m.now = now }
}

// WithGenerator sets the suggestion generator.
func WithGenerator(gen suggest.Generator) PromptOption {
	return func(m *promptModel) { m.gen = gen }
}

// WithLimit caps the number of suggestions computed per keystroke (0 = all).
func WithLimit(n int) PromptOption {
	return func(m *promptModel) { m.limit = n }
}

func newPromptModel(opts ...PromptOption) promptModel {
	ti := textinput.New()
	ti.Placeholder = `Try "3pm", "next tue", "march 3", "in 5 days"...`
	ti.Width = 40
	ti.Focus()

	m := promptModel{
		input:      ti,
		gen:        suggest.NewGenerator(),
		now:        time.Now,
		styles:     NewStyles(),
		title:      "When?",
		maxVisible: 8,
		showHelp:   true,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

func (m promptModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch keyMsg.String() {
	case "ctrl+c", "esc":
		m.quitting = true
		return m, tea.Quit
	case "enter":
		if len(m.items) > 0 && m.cursor < len(m.items) {
			chosen := m.items[m.cursor]
			m.selected = &chosen
			m.phrase = m.input.Value()
		}
		return m, tea.Quit
	case "up", "ctrl+p":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "ctrl+n":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case "tab":
		if len(m.items) > 0 {
			chosen := m.items[0]
			m.selected = &chosen
			m.phrase = m.input.Value()
		}
		return m, tea.Quit
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		m.items = m.evaluate(m.input.Value())
		m.cursor = 0
		return m, cmd
	}

	return m, nil
}

// evaluate runs the suggestion rules for the current input.
func (m promptModel) evaluate(value string) []suggest.Suggestion {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	items := m.gen.SuggestFrom(value, m.now())
	if m.limit > 0 && len(items) > m.limit {
		items = items[:m.limit]
	}
	return items
}

func (m promptModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render(m.title) + "\n\n")
	b.WriteString(m.input.View() + "\n\n")

	switch {
	case len(m.items) > 0:
		visible := m.items
		if len(visible) > m.maxVisible {
			visible = visible[:m.maxVisible]
		}
		for i, item := range visible {
			cursor := "  "
			style := m.styles.Body
			if i == m.cursor {
				cursor = m.styles.Cursor.Render("> ")
				style = m.styles.Selected
			}
			line := cursor + style.Render(item.Natural)
			line += m.styles.Muted.Render(" - " + item.Precise)
			b.WriteString(line + "\n")
		}
	case strings.TrimSpace(m.input.Value()) != "":
		b.WriteString(m.styles.Muted.Render("No matches yet, keep typing") + "\n")
	case len(m.recents) > 0:
		b.WriteString(m.styles.Muted.Render("Recent:") + "\n")
		for _, phrase := range m.recents {
			b.WriteString("  " + m.styles.Muted.Render(phrase) + "\n")
		}
	}

	if m.showHelp {
		b.WriteString("\n" + m.styles.Muted.Render("↑↓ navigate • enter select • tab first • esc cancel"))
	}
	return b.String()
}

// Prompt shows a live autocomplete prompt for fuzzy time phrases.
type Prompt struct {
	opts []PromptOption
}

// NewPrompt creates a new prompt.
func NewPrompt(opts ...PromptOption) *Prompt {
	return &Prompt{opts: opts}
}

// Run shows the prompt and returns the selected suggestion and the phrase
// that produced it. Returns (nil, "", nil) if the user canceled.
func (p *Prompt) Run() (*suggest.Suggestion, string, error) {
	m := newPromptModel(p.opts...)

	finalModel, err := tea.NewProgram(m).Run()
	if err != nil {
		return nil, "", err
	}

	final := finalModel.(promptModel) //nolint:errcheck // type assertion always succeeds here
	if final.quitting {
		return nil, "", nil
	}
	return final.selected, final.phrase, nil
}
