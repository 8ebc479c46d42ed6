package logform

import (
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"logbook/internal/modules/worklog/domain"
	worklogdto "logbook/internal/modules/worklog/dto"
	"logbook/internal/ui/theme"
)

// ─── messages ────────────────────────────────────────────────────────────────

// SubmitMsg asks the shell to submit the entry. The form does no network work.
type SubmitMsg struct {
	Input worklogdto.EntryInput
}

// ─── fields ──────────────────────────────────────────────────────────────────

type field int

const (
	fieldStatus field = iota
	fieldStack
	fieldTask
	fieldProgress
	fieldBlockers
	fieldCount
)

var fieldLabels = [fieldCount]string{"Status", "Stack", "Task", "Progress", "Blockers"}

type stackItem string

func (i stackItem) Title() string       { return string(i) }
func (i stackItem) Description() string { return "" }
func (i stackItem) FilterValue() string { return string(i) }

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	statuses []domain.Status
	status   int
	stacks   list.Model
	stack    string
	task     textarea.Model
	progress textarea.Model
	blockers textarea.Model
	focus    field
	busy     bool
	err      string
	width    int
	height   int
}

func New(stacks []string) Model {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetSpacing(0)
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)

	items := make([]list.Item, len(stacks))
	for i, s := range stacks {
		items[i] = stackItem(s)
	}
	l := list.New(items, delegate, 0, 0)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)

	m := Model{
		statuses: domain.Statuses,
		stacks:   l,
		task:     newArea("What did you work on today?"),
		progress: newArea("Progress and challenges (optional)"),
		blockers: newArea("Blockers or plans for tomorrow (optional)"),
	}
	m.resize()
	return m
}

func newArea(placeholder string) textarea.Model {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.ShowLineNumbers = false
	ta.CharLimit = 2000
	ta.SetHeight(3)
	return ta
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}
		switch msg.String() {
		case "tab":
			return m, m.moveFocus(1)
		case "shift+tab":
			return m, m.moveFocus(-1)
		case "ctrl+s":
			m.err = ""
			input := m.Input()
			return m, func() tea.Msg { return SubmitMsg{Input: input} }
		}
		switch m.focus {
		case fieldStatus:
			switch msg.String() {
			case "left", "h":
				m.setStatus(m.status - 1)
			case "right", "l", " ":
				m.setStatus(m.status + 1)
			case "enter":
				return m, m.moveFocus(1)
			}
			return m, nil
		case fieldStack:
			if msg.String() == "enter" || msg.String() == " " {
				if it, ok := m.stacks.SelectedItem().(stackItem); ok {
					m.stack = string(it)
				}
				return m, m.moveFocus(1)
			}
		}
	}

	var cmd tea.Cmd
	switch m.focus {
	case fieldStack:
		m.stacks, cmd = m.stacks.Update(msg)
	case fieldTask:
		m.task, cmd = m.task.Update(msg)
	case fieldProgress:
		m.progress, cmd = m.progress.Update(msg)
	case fieldBlockers:
		m.blockers, cmd = m.blockers.Update(msg)
	}
	return m, cmd
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Daily Activity Log") + "\n\n")

	sb.WriteString(m.label(fieldStatus))
	for i, s := range m.statuses {
		style := theme.Choice
		if i == m.status {
			style = theme.ChoiceActive
		}
		sb.WriteString(style.Render(s.Label()) + " ")
	}
	sb.WriteString("\n\n")

	chosen := theme.Muted.Render("(none selected)")
	if m.stack != "" {
		chosen = theme.Hot.Render(m.stack)
	}
	sb.WriteString(m.label(fieldStack) + chosen + "\n")
	if m.focus == fieldStack {
		sb.WriteString(m.stacks.View() + "\n")
	}
	sb.WriteString("\n")

	if !m.onLeave() {
		sb.WriteString(m.label(fieldTask) + "\n" + m.task.View() + "\n\n")
	}
	sb.WriteString(m.label(fieldProgress) + "\n" + m.progress.View() + "\n\n")
	sb.WriteString(m.label(fieldBlockers) + "\n" + m.blockers.View() + "\n\n")

	switch {
	case m.busy:
		sb.WriteString(theme.Muted.Render("Submitting…"))
	case m.err != "":
		sb.WriteString(theme.Err.Render(m.err))
	default:
		sb.WriteString(theme.Muted.Render("tab/shift+tab move • ←/→ status • enter pick stack • ctrl+s submit"))
	}

	pane := theme.PaneActive
	if m.width > 4 {
		pane = pane.Width(m.width - 4)
	}
	return pane.Render(sb.String())
}

func (m Model) label(f field) string {
	style := theme.Muted
	if f == m.focus {
		style = theme.Title
	}
	return style.Render(lipgloss.NewStyle().Width(10).Render(fieldLabels[f]))
}

// ─── state ───────────────────────────────────────────────────────────────────

// Input returns the form contents as they would be submitted. The task text
// is dropped while the leave status hides it.
func (m Model) Input() worklogdto.EntryInput {
	in := worklogdto.EntryInput{
		Status:   string(m.statuses[m.status]),
		Stack:    m.stack,
		Progress: m.progress.Value(),
		Blockers: m.blockers.Value(),
	}
	if !m.onLeave() {
		in.Task = m.task.Value()
	}
	return in
}

// Typing reports whether a text field holds focus, so single-key shortcuts
// must reach the field instead of the shell.
func (m Model) Typing() bool {
	switch m.focus {
	case fieldTask, fieldProgress, fieldBlockers:
		return true
	}
	return false
}

func (m *Model) SetBusy(busy bool) { m.busy = busy }

func (m *Model) SetError(msg string) { m.err = msg }

// Reset clears every field for the next entry.
func (m *Model) Reset() {
	m.status = 0
	m.stack = ""
	m.stacks.Select(0)
	m.task.Reset()
	m.progress.Reset()
	m.blockers.Reset()
	m.err = ""
	m.busy = false
	m.focusField(fieldStatus)
}

func (m Model) onLeave() bool {
	return m.statuses[m.status] == domain.StatusLeave
}

func (m *Model) setStatus(i int) {
	n := len(m.statuses)
	m.status = (i + n) % n
}

func (m *Model) moveFocus(delta int) tea.Cmd {
	next := m.focus
	for {
		next = (next + field(delta) + fieldCount) % fieldCount
		if next != fieldTask || !m.onLeave() {
			break
		}
	}
	return m.focusField(next)
}

func (m *Model) focusField(f field) tea.Cmd {
	m.focus = f
	m.task.Blur()
	m.progress.Blur()
	m.blockers.Blur()
	switch f {
	case fieldTask:
		return m.task.Focus()
	case fieldProgress:
		return m.progress.Focus()
	case fieldBlockers:
		return m.blockers.Focus()
	}
	return nil
}

func (m *Model) resize() {
	w := m.width - 20
	if w < 30 {
		w = 60
	}
	m.task.SetWidth(w)
	m.progress.SetWidth(w)
	m.blockers.SetWidth(w)
	m.stacks.SetSize(w, 6)
}
