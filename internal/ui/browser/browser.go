// Package browser implements the interactive code browser: a filter input
// over all extracted code locations, a navigable result list, and a
// syntax-highlighted code pane for the selected location.
package browser

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nxlens/nxlens/internal/extract"
	"github.com/nxlens/nxlens/internal/index"
	"github.com/nxlens/nxlens/internal/script"
	"github.com/nxlens/nxlens/internal/theme"
)

const listWidth = 44

// Model is the code browser.
type Model struct {
	locations []extract.Location
	filtered  []extract.Location

	input    textinput.Model
	code     viewport.Model
	th       *theme.Theme
	cursor   int
	offset   int
	width    int
	height   int
	onList   bool // focus: false = filter input, true = list
	quitting bool
}

// New creates a browser over the given locations.
func New(locations []extract.Location, th *theme.Theme) Model {
	input := textinput.New()
	input.Placeholder = "filter locations"
	input.Focus()

	m := Model{
		locations: locations,
		input:     input,
		code:      viewport.New(0, 0),
		th:        th,
	}
	m.refresh()
	return m
}

// Init starts the filter input cursor blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles browser messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.code.Width = max(m.width-listWidth-4, 10)
		m.code.Height = max(m.height-5, 3)
		m.setCode()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "tab":
			m.onList = !m.onList
			if m.onList {
				m.input.Blur()
			} else {
				m.input.Focus()
			}
			return m, nil
		}

		if m.onList {
			switch msg.String() {
			case "q":
				m.quitting = true
				return m, tea.Quit
			case "up", "k":
				if m.cursor > 0 {
					m.cursor--
					m.ensureVisible()
					m.setCode()
				}
			case "down", "j":
				if m.cursor < len(m.filtered)-1 {
					m.cursor++
					m.ensureVisible()
					m.setCode()
				}
			case "home", "g":
				m.cursor, m.offset = 0, 0
				m.setCode()
			case "end", "G":
				m.cursor = len(m.filtered) - 1
				m.ensureVisible()
				m.setCode()
			default:
				var cmd tea.Cmd
				m.code, cmd = m.code.Update(msg)
				return m, cmd
			}
			return m, nil
		}

		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		m.refresh()
		return m, cmd
	}

	return m, nil
}

// refresh recomputes the filtered list from the current query.
func (m *Model) refresh() {
	query := m.input.Value()
	if query == "" {
		m.filtered = m.locations
	} else {
		m.filtered = index.FuzzySearch(m.locations, query, 0)
	}
	if m.cursor >= len(m.filtered) {
		m.cursor = max(len(m.filtered)-1, 0)
	}
	m.offset = 0
	m.setCode()
}

// setCode fills the code pane with the highlighted selection.
func (m *Model) setCode() {
	if len(m.filtered) == 0 {
		m.code.SetContent(m.th.MutedText.Render("no matching code"))
		return
	}
	loc := &m.filtered[m.cursor]
	m.code.SetContent(script.Terminal(loc.Code, m.th))
}

func (m *Model) ensureVisible() {
	visible := m.listHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+visible {
		m.offset = m.cursor - visible + 1
	}
}

func (m Model) listHeight() int {
	return max(m.height-5, 3)
}

// View renders the browser.
func (m Model) View() string {
	if m.quitting || m.width == 0 || m.height == 0 {
		return ""
	}

	title := m.th.BrowserTitle.Render(" Code Browser ")
	filter := "  " + m.input.View()

	list := m.renderList()
	code := m.th.BrowserBorder.Render(m.code.View())
	body := lipgloss.JoinHorizontal(lipgloss.Top, list, code)

	status := m.th.StatusBar.Width(max(m.width, 0)).Render(
		fmt.Sprintf(" %d/%d locations  tab: switch focus  esc: quit ",
			len(m.filtered), len(m.locations)))

	return strings.Join([]string{title, filter, body, status}, "\n")
}

func (m Model) renderList() string {
	height := m.listHeight()
	var b strings.Builder

	endIdx := min(m.offset+height, len(m.filtered))
	for i := m.offset; i < endIdx; i++ {
		loc := &m.filtered[i]
		line := truncate(loc.ShortPath(), listWidth-4)
		if i == m.cursor {
			line = m.th.BrowserSelected.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		if i < endIdx-1 {
			b.WriteByte('\n')
		}
	}
	if len(m.filtered) == 0 {
		b.WriteString(m.th.MutedText.Render("  no matches"))
	}

	return m.th.BrowserBorder.Width(listWidth).Height(height).Render(b.String())
}

func truncate(s string, w int) string {
	if w > 3 && len(s) > w {
		return s[:w-3] + "..."
	}
	return s
}
