package app

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	authdto "logbook/internal/modules/auth/dto"
	"logbook/internal/modules/worklog/domain"
	worklogdto "logbook/internal/modules/worklog/dto"
	apperrors "logbook/internal/platform/errors"
	"logbook/internal/ui/components"
	"logbook/internal/ui/theme"
	followupview "logbook/internal/ui/views/followup"
	historyview "logbook/internal/ui/views/history"
	"logbook/internal/ui/views/logform"
	loginview "logbook/internal/ui/views/login"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// Each port is the minimal interface that this orchestration layer requires.
// Sub-view ports are defined in their own packages and narrowed further.

type authPort interface {
	Status(ctx context.Context) authdto.StatusOutput
	RedirectToLogin(ctx context.Context) error
	Logout(ctx context.Context) error
	SaveToken(ctx context.Context, token string) (authdto.StatusOutput, error)
}

type worklogPort interface {
	Stacks() []string
	SubmitEntry(ctx context.Context, input worklogdto.EntryInput) (worklogdto.EntryOutput, error)
	StartFollowup(ctx context.Context, tempID string) (worklogdto.SessionOutput, error)
	CompleteFollowup(ctx context.Context, sessionID string, answers []string) (worklogdto.CompletionOutput, error)
	ListSessions(ctx context.Context, limit, skip int) ([]worklogdto.SessionSummaryOutput, error)
	GetSession(ctx context.Context, id string) (worklogdto.SessionDetailOutput, error)
	Health(ctx context.Context) (worklogdto.HealthOutput, error)
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabLog tabID = iota
	tabHistory
	tabCount
)

var tabLabels = [tabCount]string{"Log", "History"}

// ─── messages ────────────────────────────────────────────────────────────────

// RecheckMsg asks the shell to re-evaluate authentication. The periodic
// re-check sends it from outside the program.
type RecheckMsg struct{}

type authCheckedMsg struct {
	status   authdto.StatusOutput
	announce bool
}

type entrySubmittedMsg struct {
	ticket domain.Ticket
	out    worklogdto.EntryOutput
	err    error
}

type followupStartedMsg struct {
	ticket  domain.Ticket
	session worklogdto.SessionOutput
	err     error
}

type followupCompletedMsg struct {
	ticket domain.Ticket
	out    worklogdto.CompletionOutput
	err    error
}

// autoCloseMsg ends a Complete screen. It only applies to the flow instance
// that armed it.
type autoCloseMsg struct{ ticket domain.Ticket }

type loginOpenedMsg struct{ err error }

type tokenSavedMsg struct {
	status authdto.StatusOutput
	err    error
}

type loggedOutMsg struct{ err error }

type healthMsg struct {
	out worklogdto.HealthOutput
	err error
}

// ─── keys ────────────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
	Submit  key.Binding
	Fields  key.Binding
	Cancel  key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "switch tab")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":", "ctrl+p"), key.WithHelp(":/ctrl+p", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Submit:  key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "submit")),
		Fields:  key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab/shift+tab", "next/previous field or question")),
		Cancel:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel follow-up")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Palette, k.Help, k.Quit},
		{k.Fields, k.Submit, k.Cancel},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It gates everything behind the auth
// session and owns the follow-up flow; sub-views only report intents.
type Model struct {
	auth    authPort
	worklog worklogPort
	delay   time.Duration

	flow *domain.Flow
	// armed is set once the auto-close tick for the current Complete is out.
	armed bool

	form     logform.Model
	followup followupview.Model
	history  historyview.Model
	login    loginview.Model

	authed    bool
	checked   bool
	identity  string
	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	spinner   spinner.Model
	status    string
	width     int
	height    int
}

// ─── constructor ─────────────────────────────────────────────────────────────

// NewModel builds the shell. completeDelay is how long the success screen
// stays up before the flow returns to Idle.
func NewModel(auth authPort, worklog worklogPort, completeDelay time.Duration) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{
		auth:      auth,
		worklog:   worklog,
		delay:     completeDelay,
		flow:      domain.NewFlow(),
		form:      logform.New(worklog.Stacks()),
		followup:  followupview.New(),
		history:   historyview.New(historyPortBridge{p: worklog}),
		login:     loginview.New(),
		activeTab: tabLog,
		keys:      defaultKeys(),
		help:      help.New(),
		palette:   components.NewPalette(),
		spinner:   sp,
		status:    "checking credentials…",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.form.Init(),
		m.authCheckCmd(false),
	)
}

// ─── update ──────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// The palette intercepts all input while open.
	if m.palette.Visible() {
		if _, ok := msg.(tea.KeyMsg); ok {
			var cmd tea.Cmd
			m.palette, cmd = m.palette.Update(msg)
			return m, cmd
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	case RecheckMsg, loginview.RecheckMsg:
		return m, m.authCheckCmd(false)

	case authCheckedMsg:
		return m, m.applyAuth(msg.status, msg.announce)

	case spinner.TickMsg:
		if m.busy() {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
		var cmd tea.Cmd
		m.history, cmd = m.history.Update(msg)
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)

	// ─── follow-up flow ──────────────────────────────────────────────────────

	case logform.SubmitMsg:
		return m, m.beginEntry(msg.Input)

	case entrySubmittedMsg:
		err := m.flow.FinishEntry(msg.ticket, domain.EntryResult{
			Message:            msg.out.Message,
			OnLeave:            msg.out.OnLeave,
			TempID:             msg.out.TempID,
			RedirectToFollowup: msg.out.RedirectToFollowup,
			RecordID:           msg.out.RecordID,
			IsOverride:         msg.out.IsOverride,
		}, msg.err)
		return m, m.applyFlow(err)

	case followupview.StartMsg:
		return m, m.beginStart()

	case followupStartedMsg:
		err := m.flow.FinishStart(msg.ticket, domain.Session{ID: msg.session.ID, Questions: msg.session.Questions}, msg.err)
		return m, m.applyFlow(err)

	case followupview.NavigateMsg:
		err := m.flow.SetAnswer(msg.Index, msg.Answer)
		if err == nil {
			if msg.Delta > 0 {
				err = m.flow.Next()
			} else {
				err = m.flow.Previous()
			}
		}
		return m, m.applyFlow(err)

	case followupview.SubmitMsg:
		if err := m.flow.SetAnswer(msg.Index, msg.Answer); err != nil {
			return m, m.applyFlow(err)
		}
		return m, m.beginSubmit()

	case followupCompletedMsg:
		err := m.flow.FinishSubmit(msg.ticket, domain.Completion{
			Message:             msg.out.Message,
			SessionID:           msg.out.SessionID,
			DailyRecordID:       msg.out.DailyRecordID,
			WorkUpdateCompleted: msg.out.WorkUpdateCompleted,
		}, msg.err)
		return m, m.applyFlow(err)

	case followupview.CancelMsg:
		err := m.flow.Cancel()
		if err == nil {
			m.status = "follow-up cancelled"
		}
		return m, m.applyFlow(err)

	case followupview.CloseMsg:
		return m, m.applyFlow(m.flow.Close())

	case autoCloseMsg:
		return m, m.applyFlow(m.flow.Expire(msg.ticket))

	// ─── auth ────────────────────────────────────────────────────────────────

	case loginview.OpenLoginMsg:
		m.status = "opening login page…"
		return m, m.openLoginCmd()

	case loginOpenedMsg:
		if msg.err != nil {
			m.status = "login redirect failed: " + msg.err.Error()
			m.login.SetError(m.status)
		} else {
			m.status = "complete the login in your browser, then press ctrl+r"
		}
		return m, nil

	case loginview.SaveTokenMsg:
		return m, m.saveTokenCmd(msg.Token)

	case tokenSavedMsg:
		if msg.err != nil {
			m.login.SetError(apperrors.UserMessage(msg.err))
			return m, nil
		}
		if !msg.status.Authenticated {
			m.login.SetError(describeAuth(msg.status))
		}
		return m, m.applyAuth(msg.status, true)

	case loggedOutMsg:
		if msg.err != nil {
			m.status = "logout: " + msg.err.Error()
			return m, nil
		}
		return m, m.signOut("You have been logged out.")

	case healthMsg:
		if msg.err != nil {
			m.status = "health: " + apperrors.UserMessage(msg.err)
		} else {
			m.status = describeHealth(msg.out)
		}
		return m, nil

	// History results bubble up so an expired session lands on the login
	// view whichever tab is showing.
	case historyview.SessionsLoadedMsg:
		if apperrors.Classify(msg.Err) == apperrors.KindAuth {
			return m, m.signOut("Your session has expired. Please log in again.")
		}
		var cmd tea.Cmd
		m.history, cmd = m.history.Update(msg)
		return m, cmd

	case historyview.DetailLoadedMsg:
		if apperrors.Classify(msg.Err) == apperrors.KindAuth {
			return m, m.signOut("Your session has expired. Please log in again.")
		}
		var cmd tea.Cmd
		m.history, cmd = m.history.Update(msg)
		return m, cmd

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}

		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "ctrl+p":
			return m, m.palette.Open()
		case "ctrl+n":
			if m.authed {
				m.activeTab = (m.activeTab + 1) % tabCount
				return m, nil
			}
		}

		// Single-key shortcuts yield to text fields and list filters.
		if !m.typing() {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "?":
				m.showHelp = true
				return m, nil
			case ":":
				return m, m.palette.Open()
			case "r":
				if m.authed && m.activeTab == tabHistory {
					return m, m.history.Refresh()
				}
			}
		}
	}

	// Everything else goes to the view on screen.
	var cmd tea.Cmd
	switch {
	case !m.authed:
		m.login, cmd = m.login.Update(msg)
	case m.activeTab == tabHistory:
		m.history, cmd = m.history.Update(msg)
	case m.followup.Active():
		m.followup, cmd = m.followup.Update(msg)
	default:
		m.form, cmd = m.form.Update(msg)
	}
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// ─── flow driving ────────────────────────────────────────────────────────────
// Begin* runs here on the Update goroutine, the backend call runs in a
// tea.Cmd, and the result comes back with the ticket it was issued under.

func (m *Model) beginEntry(input worklogdto.EntryInput) tea.Cmd {
	status, err := domain.ParseStatus(input.Status)
	if err != nil {
		return m.applyFlow(err)
	}
	entry, ticket, err := m.flow.BeginEntry(domain.ActivityEntry{
		Status:   status,
		Stack:    input.Stack,
		Task:     input.Task,
		Progress: input.Progress,
		Blockers: input.Blockers,
	})
	if err != nil {
		return m.applyFlow(err)
	}
	m.status = "submitting entry…"
	port := m.worklog
	normalized := worklogdto.EntryInput{
		Status:   string(entry.Status),
		Stack:    entry.Stack,
		Task:     entry.Task,
		Progress: entry.Progress,
		Blockers: entry.Blockers,
	}
	return tea.Batch(m.applyFlow(nil), m.spinner.Tick, func() tea.Msg {
		out, err := port.SubmitEntry(context.Background(), normalized)
		return entrySubmittedMsg{ticket: ticket, out: out, err: err}
	})
}

func (m *Model) beginStart() tea.Cmd {
	tempID, ticket, err := m.flow.BeginStart()
	if err != nil {
		return m.applyFlow(err)
	}
	m.status = "starting AI follow-up…"
	port := m.worklog
	return tea.Batch(m.applyFlow(nil), m.spinner.Tick, func() tea.Msg {
		session, err := port.StartFollowup(context.Background(), tempID)
		return followupStartedMsg{ticket: ticket, session: session, err: err}
	})
}

func (m *Model) beginSubmit() tea.Cmd {
	sessionID, answers, ticket, err := m.flow.BeginSubmit()
	if err != nil {
		return m.applyFlow(err)
	}
	m.status = "submitting answers…"
	port := m.worklog
	return tea.Batch(m.applyFlow(nil), m.spinner.Tick, func() tea.Msg {
		out, err := port.CompleteFollowup(context.Background(), sessionID, answers)
		return followupCompletedMsg{ticket: ticket, out: out, err: err}
	})
}

// applyFlow pushes the flow state into the views after a transition attempt
// and reports err. Stale results are dropped silently.
func (m *Model) applyFlow(err error) tea.Cmd {
	if errors.Is(err, apperrors.ErrStaleResult) {
		return nil
	}
	state := m.flow.State()
	cmds := []tea.Cmd{m.followup.SetState(state)}
	idle, _ := state.(domain.Idle)
	m.form.SetBusy(idle.Pending)

	if err != nil {
		if errors.Is(err, apperrors.ErrReauthRequired) {
			return m.signOut("Your session has expired. Please log in again.")
		}
		notice := apperrors.UserMessage(err)
		m.status = notice
		if _, ok := state.(domain.Idle); ok {
			m.form.SetError(notice)
		} else {
			m.followup.SetError(notice)
		}
		return tea.Batch(cmds...)
	}

	m.followup.SetError("")
	switch s := state.(type) {
	case domain.AwaitingFollowupStart:
		if !s.Pending {
			m.status = "work update saved, AI follow-up required"
		}
	case domain.QuestionnaireOpen:
		if !s.Pending {
			m.status = fmt.Sprintf("question %d of %d", s.Index+1, len(s.Session.Questions))
		}
	case domain.Complete:
		if !m.armed {
			m.armed = true
			m.status = "successfully submitted"
			m.form.Reset()
			ticket := m.flow.Ticket()
			cmds = append(cmds, tea.Tick(m.delay, func(time.Time) tea.Msg {
				return autoCloseMsg{ticket: ticket}
			}))
		}
	case domain.Idle:
		if m.armed {
			m.status = "ready"
		}
	}
	if _, done := state.(domain.Complete); !done {
		m.armed = false
	}
	return tea.Batch(cmds...)
}

// ─── auth gating ─────────────────────────────────────────────────────────────

func (m *Model) applyAuth(status authdto.StatusOutput, announce bool) tea.Cmd {
	m.identity = status.Email
	if m.identity == "" {
		m.identity = status.Subject
	}
	if announce {
		m.status = describeAuth(status)
	}
	first := !m.checked
	m.checked = true
	switch {
	case status.Authenticated && !m.authed:
		m.authed = true
		if !announce {
			m.status = describeAuth(status)
		}
		return m.history.Refresh()
	case !status.Authenticated && first:
		m.authed = false
		return m.login.Focus("")
	case !status.Authenticated && m.authed:
		return m.signOut("Your session has expired. Please log in again.")
	}
	return nil
}

// signOut abandons any flow in progress and shows the login view.
func (m *Model) signOut(notice string) tea.Cmd {
	m.authed = false
	m.armed = false
	m.flow.Reset()
	m.followup.SetState(m.flow.State())
	m.form.SetBusy(false)
	m.status = notice
	return m.login.Focus(notice)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	tabBarH := lipgloss.Height(tabBar)
	statusBarH := lipgloss.Height(statusBar)

	contentH := m.height - tabBarH - statusBarH
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = theme.App.Width(m.width).Height(contentH).
			Render(theme.Title.Render("Keys") + "\n\n" + m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.activeView()
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

// activeView renders exactly one screen per flow state.
func (m Model) activeView() string {
	switch {
	case !m.checked:
		return theme.Muted.Render("Checking authentication…")
	case !m.authed:
		return m.login.View()
	case m.activeTab == tabHistory:
		return m.history.View()
	case m.followup.Active():
		return m.followup.View()
	default:
		return m.form.View()
	}
}

func (m Model) renderTabBar() string {
	var bar string
	if m.authed {
		parts := make([]string, tabCount)
		for i := tabID(0); i < tabCount; i++ {
			label := tabLabels[i]
			if i == m.activeTab {
				parts[i] = theme.Hot.Render(" " + label + " ")
			} else {
				parts[i] = theme.Muted.Render(" " + label + " ")
			}
		}
		bar = "logbook  " + strings.Join(parts, theme.Muted.Render(" │ "))
	} else {
		bar = "logbook  " + theme.Hot.Render(" Sign in ")
	}
	if m.authed && m.identity != "" {
		right := theme.Muted.Render(m.identity)
		gap := m.width - lipgloss.Width(bar) - lipgloss.Width(right)
		if gap > 0 {
			bar += strings.Repeat(" ", gap) + right
		}
	}
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if m.busy() {
		left = m.spinner.View() + " " + left
	}
	right := theme.Muted.Render("?:help  ctrl+n:switch  ctrl+p:palette  ctrl+c:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ───────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(input) == "" {
		return m, nil
	}
	parts := strings.Fields(input)

	switch parts[0] {
	case "entry:new":
		m.activeTab = tabLog
		if _, done := m.flow.State().(domain.Complete); done {
			return m, m.applyFlow(m.flow.Close())
		}
		return m, nil

	case "entry:cancel":
		err := m.flow.Cancel()
		if err == nil {
			m.status = "follow-up cancelled"
		}
		return m, m.applyFlow(err)

	case "entry:close":
		return m, m.applyFlow(m.flow.Close())

	case "auth:status":
		return m, m.authCheckCmd(true)

	case "auth:recheck":
		return m, m.authCheckCmd(false)

	case "auth:login":
		return m, m.openLoginCmd()

	case "auth:logout":
		return m, m.logoutCmd()

	case "sessions:refresh":
		if !m.authed {
			m.status = "log in to see sessions"
			return m, nil
		}
		m.activeTab = tabHistory
		return m, m.history.Refresh()

	case "health":
		return m, m.healthCmd()

	case "quit":
		return m, tea.Quit

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

// typing reports whether the screen on show is taking free text, in which
// case single-key bindings must reach it.
func (m Model) typing() bool {
	switch {
	case !m.authed:
		return true
	case m.activeTab == tabHistory:
		return m.history.Filtering()
	case m.followup.Active():
		return m.followup.Typing()
	default:
		return m.form.Typing()
	}
}

func (m Model) busy() bool {
	switch s := m.flow.State().(type) {
	case domain.Idle:
		return s.Pending
	case domain.AwaitingFollowupStart:
		return s.Pending
	case domain.QuestionnaireOpen:
		return s.Pending
	}
	return false
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.form, _ = m.form.Update(sz)
	m.followup, _ = m.followup.Update(sz)
	m.history, _ = m.history.Update(sz)
	m.login, _ = m.login.Update(sz)
}

func describeAuth(s authdto.StatusOutput) string {
	switch {
	case s.Bypass:
		return "authentication bypass enabled"
	case s.Authenticated && s.Email != "":
		return fmt.Sprintf("signed in as %s until %s", s.Email, s.ExpiresAt.Local().Format(time.Kitchen))
	case s.Authenticated:
		return "signed in until " + s.ExpiresAt.Local().Format(time.Kitchen)
	case s.HasToken:
		return "stored token is expired or unreadable"
	default:
		return "not signed in"
	}
}

func describeHealth(h worklogdto.HealthOutput) string {
	out := "backend " + h.Status
	if h.Database != "" {
		out += ", database " + h.Database
	}
	keys := make([]string, 0, len(h.Detail))
	for k := range h.Detail {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		out += ", " + k + " " + h.Detail[k]
	}
	return out
}

// ─── async commands ──────────────────────────────────────────────────────────

func (m Model) authCheckCmd(announce bool) tea.Cmd {
	port := m.auth
	return func() tea.Msg {
		return authCheckedMsg{status: port.Status(context.Background()), announce: announce}
	}
}

func (m Model) openLoginCmd() tea.Cmd {
	port := m.auth
	return func() tea.Msg {
		return loginOpenedMsg{err: port.RedirectToLogin(context.Background())}
	}
}

func (m Model) saveTokenCmd(token string) tea.Cmd {
	port := m.auth
	return func() tea.Msg {
		status, err := port.SaveToken(context.Background(), token)
		return tokenSavedMsg{status: status, err: err}
	}
}

func (m Model) logoutCmd() tea.Cmd {
	port := m.auth
	return func() tea.Msg {
		return loggedOutMsg{err: port.Logout(context.Background())}
	}
}

func (m Model) healthCmd() tea.Cmd {
	port := m.worklog
	return func() tea.Msg {
		out, err := port.Health(context.Background())
		return healthMsg{out: out, err: err}
	}
}

// ─── port bridges ────────────────────────────────────────────────────────────

type historyPortBridge struct{ p worklogPort }

func (b historyPortBridge) ListSessions(ctx context.Context, limit, skip int) ([]worklogdto.SessionSummaryOutput, error) {
	return b.p.ListSessions(ctx, limit, skip)
}
func (b historyPortBridge) GetSession(ctx context.Context, id string) (worklogdto.SessionDetailOutput, error) {
	return b.p.GetSession(ctx, id)
}
