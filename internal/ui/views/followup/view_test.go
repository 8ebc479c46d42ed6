package followup

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"logbook/internal/modules/worklog/domain"
)

func questionnaire(index int, answers ...string) domain.QuestionnaireOpen {
	return domain.QuestionnaireOpen{
		Session: domain.Session{ID: "intern_1", Questions: []string{"What broke?", "How was it fixed?", "What is next?"}},
		Answers: answers,
		Index:   index,
	}
}

func TestQuestionnaireReportsIntentsWithCurrentAnswer(t *testing.T) {
	m := New()
	m.SetState(questionnaire(0, "", "", ""))
	require.True(t, m.Active())
	require.True(t, m.Typing())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("the cache")})
	view := m.View()
	assert.Contains(t, view, "Question 1 of 3 • 1 answered")
	assert.Contains(t, view, "9 characters (aim for detailed responses)")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	require.NotNil(t, cmd)
	assert.Equal(t, NavigateMsg{Index: 0, Answer: "the cache", Delta: 1}, cmd())

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	require.NotNil(t, cmd)
	assert.Equal(t, SubmitMsg{Index: 0, Answer: "the cache"}, cmd())

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, CancelMsg{}, cmd())
}

func TestSetStateKeepsTypingOnSameQuestion(t *testing.T) {
	m := New()
	m.SetState(questionnaire(1, "a", "stored", ""))
	assert.Equal(t, "stored", m.answer.Value())

	m.answer.SetValue("edited")
	m.SetState(questionnaire(1, "a", "stored", ""))
	assert.Equal(t, "edited", m.answer.Value())

	m.SetState(questionnaire(2, "a", "edited", "third"))
	assert.Equal(t, "third", m.answer.Value())
}

func TestPendingQuestionnaireOnlyAllowsCancel(t *testing.T) {
	m := New()
	q := questionnaire(0, "x", "y", "z")
	q.Pending = true
	m.SetState(q)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Nil(t, cmd)
	assert.Contains(t, m.View(), "Submitting…")

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, CancelMsg{}, cmd())
}

func TestRedirectAndCompleteKeys(t *testing.T) {
	m := New()
	m.SetState(domain.AwaitingFollowupStart{TempID: "t"})
	assert.False(t, m.Typing())
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, StartMsg{}, cmd())

	m.SetState(domain.AwaitingFollowupStart{TempID: "t", Pending: true})
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)

	m.SetState(domain.Complete{Leave: true})
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, CloseMsg{}, cmd())

	m.SetState(domain.Idle{})
	assert.False(t, m.Active())
	assert.Empty(t, m.View())
}
