package ui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hermadata/console/internal/hermadata"
)

type loginState struct {
	inputs  [2]textinput.Model
	focus   int
	pending bool
}

func newLoginState() loginState {
	var s loginState

	username := textinput.New()
	username.Placeholder = "username"
	username.CharLimit = 64
	username.Focus()
	s.inputs[0] = username

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 64
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '*'
	s.inputs[1] = password

	return s
}

func (m Model) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.login.pending {
		return m, nil
	}

	switch msg.String() {
	case "tab", "shift+tab", "up", "down":
		m.login.inputs[m.login.focus].Blur()
		m.login.focus = 1 - m.login.focus
		m.login.inputs[m.login.focus].Focus()
		return m, nil

	case "enter":
		username := strings.TrimSpace(m.login.inputs[0].Value())
		password := m.login.inputs[1].Value()
		if username == "" || password == "" {
			m.setError("username and password are required")
			return m, nil
		}
		m.login.pending = true
		m.setStatus("logging in...")
		return m, m.loginCmd(username, password)
	}

	var cmd tea.Cmd
	m.login.inputs[m.login.focus], cmd = m.login.inputs[m.login.focus].Update(msg)
	return m, cmd
}

func (m Model) handleLoginResult(msg loginResultMsg) (tea.Model, tea.Cmd) {
	m.login.pending = false
	if msg.err != nil {
		// Deliberately vague: bad credentials and a dead backend read the
		// same here.
		if errors.Is(msg.err, hermadata.ErrLoginFailed) {
			m.setError("login failed")
		} else {
			m.setError(errorLine(msg.err))
		}
		m.login.inputs[1].SetValue("")
		return m, nil
	}
	m.loggedIn = true
	return m.switchView(ViewDashboard)
}

func (m Model) loginCmd(username, password string) tea.Cmd {
	return func() tea.Msg {
		err := m.gate.Login(m.ctx, username, password)
		return loginResultMsg{err: err}
	}
}

func (m Model) renderLogin() string {
	st := m.theme.Styles()
	var b strings.Builder
	b.WriteString(st.AccentText.Render("Hermadata"))
	b.WriteString("\n")
	b.WriteString(st.MutedText.Render("shelter console"))
	b.WriteString("\n\n")
	b.WriteString("  " + m.login.inputs[0].View() + "\n")
	b.WriteString("  " + m.login.inputs[1].View() + "\n\n")
	b.WriteString(st.MutedText.Render("enter to log in, tab to switch fields"))
	return st.Panel.Render(b.String())
}
