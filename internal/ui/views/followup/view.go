package followup

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"logbook/internal/modules/worklog/domain"
	"logbook/internal/ui/theme"
)

// MinDetailedAnswer is the answer length below which the questionnaire nudges
// for more detail. It is a hint only.
const MinDetailedAnswer = 20

// ─── messages ────────────────────────────────────────────────────────────────
// The view never touches the flow. It reports intents and the shell applies
// them, then hands the new state back through SetState.

type StartMsg struct{}

type CancelMsg struct{}

type CloseMsg struct{}

// NavigateMsg moves Delta questions after storing Answer at Index.
type NavigateMsg struct {
	Index  int
	Answer string
	Delta  int
}

// SubmitMsg stores Answer at Index and submits the whole answer set.
type SubmitMsg struct {
	Index  int
	Answer string
}

const redirectMarkdown = `# AI Follow-up Required

Your work update needs AI validation before being saved to LogBook.
This will only take a few minutes.

**What happens next:**

- AI generates personalized questions
- Answer based on your work today
- Your update gets saved to LogBook
`

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	state    domain.State
	answer   textarea.Model
	bar      progress.Model
	renderer *glamour.TermRenderer
	// shown identifies the question loaded into the answer box.
	shown  string
	err    string
	width  int
	height int
}

func New() Model {
	ta := textarea.New()
	ta.Placeholder = "Type your answer…"
	ta.ShowLineNumbers = false
	ta.CharLimit = 4000
	ta.SetHeight(5)

	r, _ := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(0),
	)

	return Model{
		state:    domain.Idle{},
		answer:   ta,
		bar:      progress.New(progress.WithSolidFill(string(theme.Lavender)), progress.WithoutPercentage()),
		renderer: r,
	}
}

func (m Model) Init() tea.Cmd { return nil }

// SetState replaces the rendered flow state. The answer box is reloaded only
// when a different question comes into view, so typing is never clobbered.
func (m *Model) SetState(s domain.State) tea.Cmd {
	m.state = s
	q, ok := s.(domain.QuestionnaireOpen)
	if !ok {
		m.shown = ""
		m.answer.Blur()
		m.answer.Reset()
		return nil
	}
	key := fmt.Sprintf("%s/%d", q.Session.ID, q.Index)
	if key == m.shown {
		return nil
	}
	m.shown = key
	_, current := q.Current()
	m.answer.SetValue(current)
	return m.answer.Focus()
}

// SetError shows the last call failure under the active screen.
func (m *Model) SetError(msg string) { m.err = msg }

// Active reports whether the flow has left Idle, in which case this view
// takes over from the entry form.
func (m Model) Active() bool {
	_, idle := m.state.(domain.Idle)
	return !idle
}

func (m Model) Typing() bool {
	_, ok := m.state.(domain.QuestionnaireOpen)
	return ok
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		switch s := m.state.(type) {
		case domain.AwaitingFollowupStart:
			if s.Pending {
				return m, nil
			}
			switch msg.String() {
			case "enter":
				m.err = ""
				return m, emit(StartMsg{})
			case "esc":
				return m, emit(CancelMsg{})
			}
			return m, nil

		case domain.QuestionnaireOpen:
			if msg.String() == "esc" {
				return m, emit(CancelMsg{})
			}
			if s.Pending {
				return m, nil
			}
			switch msg.String() {
			case "tab", "pgdown":
				return m, emit(NavigateMsg{Index: s.Index, Answer: m.answer.Value(), Delta: 1})
			case "shift+tab", "pgup":
				return m, emit(NavigateMsg{Index: s.Index, Answer: m.answer.Value(), Delta: -1})
			case "ctrl+s":
				m.err = ""
				return m, emit(SubmitMsg{Index: s.Index, Answer: m.answer.Value()})
			}
			var cmd tea.Cmd
			m.answer, cmd = m.answer.Update(msg)
			return m, cmd

		case domain.Complete:
			switch msg.String() {
			case "enter", "esc", " ":
				return m, emit(CloseMsg{})
			}
		}
	}
	return m, nil
}

func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	var body string
	switch s := m.state.(type) {
	case domain.AwaitingFollowupStart:
		body = m.viewRedirect(s)
	case domain.QuestionnaireOpen:
		body = m.viewQuestionnaire(s)
	case domain.Complete:
		body = m.viewComplete(s)
	default:
		return ""
	}
	if m.err != "" {
		body += "\n\n" + theme.Err.Render(m.err)
	}
	pane := theme.PaneActive
	if m.width > 4 {
		pane = pane.Width(m.width - 4)
	}
	return pane.Render(body)
}

func (m Model) viewRedirect(s domain.AwaitingFollowupStart) string {
	var sb strings.Builder
	sb.WriteString(m.markdown(redirectMarkdown))
	if s.Message != "" {
		sb.WriteString(theme.Muted.Render(s.Message) + "\n\n")
	}
	if s.Pending {
		sb.WriteString(theme.Hot.Render("Starting AI…"))
	} else {
		sb.WriteString(theme.Muted.Render("enter start follow-up • esc cancel"))
	}
	return sb.String()
}

func (m Model) viewQuestionnaire(s domain.QuestionnaireOpen) string {
	total := len(s.Session.Questions)
	answers := append([]string(nil), s.Answers...)
	answers[s.Index] = m.answer.Value()
	live := domain.QuestionnaireOpen{Answers: answers}
	answered := live.AnsweredCount()

	var sb strings.Builder
	sb.WriteString(theme.Title.Render("🤖 AI Follow-up Questions") + "\n\n")
	sb.WriteString(m.bar.ViewAs(float64(s.Index+1)/float64(total)) + "\n")
	sb.WriteString(theme.Muted.Render(fmt.Sprintf("Question %d of %d • %d answered", s.Index+1, total, answered)) + "\n\n")

	question, _ := s.Current()
	sb.WriteString(theme.Hot.Render(question) + "\n\n")
	sb.WriteString(m.answer.View() + "\n")

	n := len([]rune(m.answer.Value()))
	count := fmt.Sprintf("%d characters", n)
	if n < MinDetailedAnswer {
		sb.WriteString(theme.Warn.Render(count+" (aim for detailed responses)") + "\n\n")
	} else {
		sb.WriteString(theme.Ok.Render(count) + "\n\n")
	}

	switch {
	case s.Pending:
		sb.WriteString(theme.Hot.Render("Submitting…"))
	case s.IsLast():
		sb.WriteString(theme.Muted.Render(fmt.Sprintf("shift+tab previous • ctrl+s submit all (%d/%d) • esc cancel", answered, total)))
	default:
		sb.WriteString(theme.Muted.Render(fmt.Sprintf("tab next • shift+tab previous • ctrl+s submit all (%d/%d) • esc cancel", answered, total)))
	}
	return sb.String()
}

func (m Model) viewComplete(s domain.Complete) string {
	var md strings.Builder
	md.WriteString("# ✓ Successfully Submitted!\n\n")
	if s.Leave {
		md.WriteString("Your leave status has been saved to LogBook.\n")
		if s.IsOverride {
			md.WriteString("\nAn existing entry for today was replaced.\n")
		}
		if s.RecordID != "" {
			md.WriteString(fmt.Sprintf("\nRecord `%s`\n", s.RecordID))
		}
	} else {
		md.WriteString("Your work update has been saved to LogBook.\n")
		if s.Completion.DailyRecordID != "" {
			md.WriteString(fmt.Sprintf("\nDaily record `%s`\n", s.Completion.DailyRecordID))
		}
	}
	if s.Message != "" {
		md.WriteString("\n> " + s.Message + "\n")
	}
	return m.markdown(md.String()) + theme.Muted.Render("enter close")
}

func (m Model) markdown(src string) string {
	if m.renderer == nil {
		return src + "\n"
	}
	out, err := m.renderer.Render(src)
	if err != nil {
		return src + "\n"
	}
	return out
}

func (m *Model) resize() {
	w := m.width - 8
	if w < 20 {
		w = 60
	}
	m.answer.SetWidth(w)
	m.bar.Width = w
	if r, err := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(w),
	); err == nil {
		m.renderer = r
	}
}
