package login

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func send(t *testing.T, m Model, key tea.KeyMsg) (Model, tea.Msg) {
	t.Helper()
	m, cmd := m.Update(key)
	if cmd == nil {
		return m, nil
	}
	return m, cmd()
}

func TestEnterWithoutTokenOpensLogin(t *testing.T) {
	m := New()
	m.Focus("")
	_, msg := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, OpenLoginMsg{}, msg)
}

func TestEnterWithTokenSavesTrimmed(t *testing.T) {
	m := New()
	m.Focus("")
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(" abc.def.ghi ")})
	assert.NotContains(t, m.View(), "abc.def.ghi")

	_, msg := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.IsType(t, SaveTokenMsg{}, msg)
	assert.Equal(t, "abc.def.ghi", msg.(SaveTokenMsg).Token)
}

func TestFocusShowsNoticeAndClearsError(t *testing.T) {
	m := New()
	m.SetError("token rejected")
	assert.Contains(t, m.View(), "token rejected")

	m.Focus("Your session has expired. Please log in again.")
	view := m.View()
	assert.Contains(t, view, "Your session has expired")
	assert.NotContains(t, view, "token rejected")

	_, msg := send(t, m, tea.KeyMsg{Type: tea.KeyCtrlR})
	assert.Equal(t, RecheckMsg{}, msg)
}
