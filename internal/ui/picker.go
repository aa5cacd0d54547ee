package ui

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Aman-CERP/appdex/internal/app"
	"github.com/Aman-CERP/appdex/internal/index"
)

// resultsMsg carries a service event into the picker's update loop.
type resultsMsg app.Event

// SearchFunc submits a query for asynchronous evaluation.
type SearchFunc func(query string)

// pickerModel is the bubbletea model for the interactive search picker.
// Every keystroke resubmits the query; the service debounces and pushes
// results back as events, so typing never blocks on scoring.
type pickerModel struct {
	search SearchFunc
	input  textinput.Model
	styles Styles

	results  []index.Entry
	cursor   int
	offset   int
	loading  bool
	quitting bool
	choice   *index.Entry

	width      int
	maxVisible int
}

// newPickerModel creates a picker bound to a search function.
func newPickerModel(search SearchFunc, styles Styles) *pickerModel {
	ti := textinput.New()
	ti.Placeholder = "Type to search applications"
	ti.Prompt = "> "
	ti.PromptStyle = styles.Prompt
	ti.Focus()

	return &pickerModel{
		search:     search,
		input:      ti,
		styles:     styles,
		width:      80,
		maxVisible: 10,
	}
}

// Init implements tea.Model. The initial empty query populates the list
// with the full index.
func (m *pickerModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, func() tea.Msg {
		if m.search != nil {
			m.search("")
		}
		return nil
	})
}

// Update implements tea.Model.
func (m *pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit

		case "up", "ctrl+p":
			m.moveCursor(-1)
			return m, nil

		case "down", "ctrl+n":
			m.moveCursor(1)
			return m, nil

		case "enter":
			if m.cursor < len(m.results) {
				choice := m.results[m.cursor]
				m.choice = &choice
				return m, tea.Quit
			}
			return m, nil
		}

		before := m.input.Value()
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		if after := m.input.Value(); after != before && m.search != nil {
			m.search(after)
		}
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.maxVisible = msg.Height - 5
		if m.maxVisible < 3 {
			m.maxVisible = 3
		}
		m.clampScroll()
		return m, nil

	case resultsMsg:
		m.loading = msg.Loading
		if !msg.Loading {
			m.results = msg.Results
			if m.cursor >= len(m.results) {
				m.cursor = 0
				m.offset = 0
			}
			m.clampScroll()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// moveCursor shifts the selection, keeping it inside the result list and
// the visible window.
func (m *pickerModel) moveCursor(delta int) {
	if len(m.results) == 0 {
		return
	}
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(m.results) {
		m.cursor = len(m.results) - 1
	}
	m.clampScroll()
}

// clampScroll keeps the cursor within the visible window.
func (m *pickerModel) clampScroll() {
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.maxVisible {
		m.offset = m.cursor - m.maxVisible + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// View implements tea.Model.
func (m *pickerModel) View() string {
	if m.quitting || m.choice != nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	switch {
	case m.loading:
		b.WriteString(m.styles.Loading.Render("Scanning..."))
		b.WriteString("\n")
	case len(m.results) == 0:
		b.WriteString(m.styles.Loading.Render("No matches."))
		b.WriteString("\n")
	default:
		end := m.offset + m.maxVisible
		if end > len(m.results) {
			end = len(m.results)
		}
		for i := m.offset; i < end; i++ {
			entry := m.results[i]
			if i == m.cursor {
				b.WriteString(m.styles.Selected.Render("> " + entry.Name))
			} else {
				b.WriteString(m.styles.Normal.Render("  " + entry.Name))
			}
			b.WriteString("  ")
			b.WriteString(m.styles.Path.Render(entry.Path))
			b.WriteString("\n")
		}
		if len(m.results) > m.maxVisible {
			b.WriteString(m.styles.Count.Render(
				fmt.Sprintf("%d of %d", m.cursor+1, len(m.results))))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render("enter launch • ↑/↓ move • esc quit"))
	b.WriteString("\n")
	return b.String()
}

// RunPicker runs the interactive search picker against the service and
// returns the chosen entry. ok is false when the user quit without
// selecting.
func RunPicker(ctx context.Context, svc *app.Service, cfg Config) (index.Entry, bool, error) {
	styles := GetStyles(cfg.NoColor || DetectNoColor())
	model := newPickerModel(svc.Search, styles)

	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if f, ok := cfg.Output.(*os.File); ok {
		opts = append(opts, tea.WithOutput(f))
	}

	program := tea.NewProgram(model, opts...)
	svc.Subscribe(func(ev app.Event) {
		program.Send(resultsMsg(ev))
	})

	final, err := program.Run()
	if err != nil {
		return index.Entry{}, false, err
	}

	if m, ok := final.(*pickerModel); ok && m.choice != nil {
		return *m.choice, true, nil
	}
	return index.Entry{}, false, nil
}
