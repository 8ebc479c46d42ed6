package login

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"logbook/internal/ui/theme"
)

// ─── messages ────────────────────────────────────────────────────────────────

// OpenLoginMsg asks the shell to send the user to the LogBook login page.
type OpenLoginMsg struct{}

// SaveTokenMsg carries a token pasted into the view.
type SaveTokenMsg struct{ Token string }

// RecheckMsg asks the shell to re-evaluate the stored credentials.
type RecheckMsg struct{}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	token  textinput.Model
	notice string
	err    string
	width  int
}

func New() Model {
	ti := textinput.New()
	ti.Placeholder = "paste a token, or leave empty to open the login page"
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '•'
	ti.CharLimit = 8192
	return Model{token: ti}
}

func (m Model) Init() tea.Cmd { return nil }

// Focus prepares the view each time the shell falls back to it.
func (m *Model) Focus(notice string) tea.Cmd {
	m.notice = notice
	m.err = ""
	m.token.SetValue("")
	return m.token.Focus()
}

func (m *Model) SetError(msg string) { m.err = msg }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.token.Width = max(m.width-12, 20)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			token := strings.TrimSpace(m.token.Value())
			m.err = ""
			if token == "" {
				return m, func() tea.Msg { return OpenLoginMsg{} }
			}
			return m, func() tea.Msg { return SaveTokenMsg{Token: token} }
		case "ctrl+r":
			m.err = ""
			return m, func() tea.Msg { return RecheckMsg{} }
		}
	}
	var cmd tea.Cmd
	m.token, cmd = m.token.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("🔐 Authentication Required") + "\n\n")
	sb.WriteString("Please log in through the LogBook system to access the Daily Activity Log.\n\n")
	if m.notice != "" {
		sb.WriteString(theme.Warn.Render(m.notice) + "\n\n")
	}
	sb.WriteString(m.token.View() + "\n\n")
	if m.err != "" {
		sb.WriteString(theme.Err.Render(m.err) + "\n\n")
	}
	sb.WriteString(theme.Muted.Render("enter go to login / save token • ctrl+r check again • ctrl+c quit"))

	pane := theme.PaneActive
	if m.width > 4 {
		pane = pane.Width(m.width - 4)
	}
	return pane.Render(sb.String())
}
