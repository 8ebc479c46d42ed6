package history

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	worklogdto "logbook/internal/modules/worklog/dto"
	"logbook/internal/ui/theme"
)

const pageSize = 50

// ─── port ────────────────────────────────────────────────────────────────────

type Port interface {
	ListSessions(ctx context.Context, limit, skip int) ([]worklogdto.SessionSummaryOutput, error)
	GetSession(ctx context.Context, id string) (worklogdto.SessionDetailOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

// SessionsLoadedMsg carries one page of sessions starting at Skip.
type SessionsLoadedMsg struct {
	Skip     int
	Sessions []worklogdto.SessionSummaryOutput
	Err      error
}

type DetailLoadedMsg struct {
	Detail worklogdto.SessionDetailOutput
	Err    error
}

// ─── list item ───────────────────────────────────────────────────────────────

type sessionItem struct {
	session worklogdto.SessionSummaryOutput
}

func (i sessionItem) Title() string {
	if i.session.SessionDate != "" {
		return i.session.SessionDate
	}
	return i.session.ID
}

func (i sessionItem) Description() string {
	return fmt.Sprintf("%s  %d/%d answered", theme.SessionStatus(i.session.Status), i.session.AnsweredCount, i.session.QuestionCount)
}

func (i sessionItem) FilterValue() string { return i.Title() + " " + i.session.Status }

// ─── model ───────────────────────────────────────────────────────────────────

// Model browses follow-up sessions a page at a time: a list on the left and
// the selected session's questions and answers on the right.
type Model struct {
	port     Port
	sessions list.Model
	detail   viewport.Model
	spinner  spinner.Model
	renderer *glamour.TermRenderer

	skip    int
	hasMore bool
	current string
	loading bool
	err     string
	width   int
	height  int
}

func New(port Port) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Follow-up history"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().Background(theme.Mantle).Foreground(theme.Text)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{port: port, sessions: l, detail: vp, spinner: sp}
}

func (m Model) Init() tea.Cmd { return nil }

// Refresh reloads from the first page.
func (m *Model) Refresh() tea.Cmd {
	return m.load(0)
}

// Filtering reports whether the list's search filter is currently active.
func (m Model) Filtering() bool {
	return m.sessions.FilterState() == list.Filtering
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case tea.KeyMsg:
		if !m.loading && !m.Filtering() {
			switch msg.String() {
			case "]":
				if m.hasMore {
					return m, m.load(m.skip + pageSize)
				}
				return m, nil
			case "[":
				if m.skip > 0 {
					return m, m.load(max(m.skip-pageSize, 0))
				}
				return m, nil
			}
		}

	case SessionsLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err.Error()
			return m, nil
		}
		m.skip = msg.Skip
		m.hasMore = len(msg.Sessions) == pageSize
		items := make([]list.Item, len(msg.Sessions))
		for i, s := range msg.Sessions {
			items[i] = sessionItem{session: s}
		}
		cmds = append(cmds, m.sessions.SetItems(items))
		m.sessions.Title = m.pageTitle(len(msg.Sessions))
		m.current = ""
		m.showDetail(worklogdto.SessionDetailOutput{})
		if len(msg.Sessions) > 0 {
			cmds = append(cmds, m.selectCmd(msg.Sessions[0].ID))
		}
		return m, tea.Batch(cmds...)

	case DetailLoadedMsg:
		if msg.Err != nil {
			m.err = msg.Err.Error()
			return m, nil
		}
		// A slower load for an earlier selection must not replace the current one.
		if msg.Detail.ID == m.current {
			m.showDetail(msg.Detail)
		}
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.loading {
		return m, nil
	}
	prev := m.sessions.Index()
	var cmd tea.Cmd
	m.sessions, cmd = m.sessions.Update(msg)
	cmds = append(cmds, cmd)
	if m.sessions.Index() != prev {
		if item, ok := m.sessions.SelectedItem().(sessionItem); ok {
			cmds = append(cmds, m.selectCmd(item.session.ID))
		}
	}
	m.detail, cmd = m.detail.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading sessions…")
	}
	if m.err != "" && len(m.sessions.Items()) == 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			theme.Err.Render(m.err)+"\n\n"+theme.Muted.Render("r: retry"))
	}

	listW, detailW := m.split()
	left := lipgloss.NewStyle().Width(listW).Height(m.height-1).Render(m.sessions.View()) +
		"\n" + theme.Muted.Render(m.pagerHint())
	right := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Surface1).
		Background(theme.Mantle).
		Width(detailW - 2).
		Height(m.height - 2).
		Render(m.detail.View())
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) load(skip int) tea.Cmd {
	if m.port == nil {
		return nil
	}
	m.loading = true
	m.err = ""
	port := m.port
	return tea.Batch(func() tea.Msg {
		sessions, err := port.ListSessions(context.Background(), pageSize, skip)
		return SessionsLoadedMsg{Skip: skip, Sessions: sessions, Err: err}
	}, m.spinner.Tick)
}

func (m *Model) selectCmd(id string) tea.Cmd {
	m.current = id
	port := m.port
	return func() tea.Msg {
		detail, err := port.GetSession(context.Background(), id)
		return DetailLoadedMsg{Detail: detail, Err: err}
	}
}

func (m Model) split() (int, int) {
	listW := m.width * 4 / 10
	return listW, m.width - listW
}

func (m *Model) resize() {
	listW, detailW := m.split()
	m.sessions.SetSize(listW, m.height-1)
	m.detail.Width = detailW - 4
	m.detail.Height = m.height - 4
	if r, err := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(max(m.detail.Width-2, 20)),
	); err == nil {
		m.renderer = r
	}
}

func (m Model) pageTitle(n int) string {
	if n == 0 {
		return "Follow-up history"
	}
	return fmt.Sprintf("Follow-up history %d–%d", m.skip+1, m.skip+n)
}

func (m Model) pagerHint() string {
	var parts []string
	if m.skip > 0 {
		parts = append(parts, "[ newer")
	}
	if m.hasMore {
		parts = append(parts, "] older")
	}
	parts = append(parts, "/ filter")
	return strings.Join(parts, " • ")
}

func (m *Model) showDetail(d worklogdto.SessionDetailOutput) {
	if d.ID == "" {
		m.detail.SetContent(theme.Muted.Render("Select a session to see its questions"))
		return
	}
	var meta strings.Builder
	meta.WriteString(theme.Title.Render("Session "+d.ID) + "\n")
	meta.WriteString(theme.Muted.Render("status:  ") + theme.SessionStatus(d.Status) + "\n")
	if d.SessionDate != "" {
		meta.WriteString(theme.Muted.Render("date:    ") + d.SessionDate + "\n")
	}
	if d.WorkUpdateID != "" {
		meta.WriteString(theme.Muted.Render("update:  ") + d.WorkUpdateID + "\n")
	}
	if !d.CreatedAt.IsZero() {
		meta.WriteString(theme.Muted.Render("created: ") + d.CreatedAt.Local().Format(time.DateTime) + "\n")
	}
	if !d.CompletedAt.IsZero() {
		meta.WriteString(theme.Muted.Render("done:    ") + d.CompletedAt.Local().Format(time.DateTime) + "\n")
	}
	m.detail.SetContent(meta.String() + m.markdown(transcript(d)))
	m.detail.GotoTop()
}

// transcript renders the questions and answers as markdown.
func transcript(d worklogdto.SessionDetailOutput) string {
	var sb strings.Builder
	for i, q := range d.Questions {
		fmt.Fprintf(&sb, "### %d. %s\n\n", i+1, q)
		if i < len(d.Answers) && strings.TrimSpace(d.Answers[i]) != "" {
			sb.WriteString("> " + strings.ReplaceAll(strings.TrimSpace(d.Answers[i]), "\n", "\n> ") + "\n\n")
		} else {
			sb.WriteString("_no answer_\n\n")
		}
	}
	return sb.String()
}

func (m Model) markdown(src string) string {
	if m.renderer == nil {
		return "\n" + src
	}
	out, err := m.renderer.Render(src)
	if err != nil {
		return "\n" + src
	}
	return out
}
