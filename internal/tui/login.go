package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"taskwave/internal/auth"
	"taskwave/internal/service"
	"taskwave/internal/session"
)

// authDoneMsg carries the result of a login or register submission.
type authDoneMsg struct {
	route Route
	sess  session.Session
	err   error
}

const (
	loginEmail = iota
	loginPassword
)

type loginScreen struct {
	form form
}

func newLoginScreen() loginScreen {
	password := newInput("password", 128)
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	return loginScreen{form: newForm(
		[]string{"Email", "Password"},
		[]textinput.Model{newInput("you@example.com", 254), password},
	)}
}

func (s loginScreen) credentials() service.Credentials {
	return service.Credentials{
		Email:    s.form.value(loginEmail),
		Password: s.form.value(loginPassword),
	}
}

func (m model) updateLogin(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		m.login.form.next()
		return m, nil
	case "shift+tab", "up":
		m.login.form.prev()
		return m, nil
	case "ctrl+r":
		return m.navigate(RouteRegister)
	case "enter":
		return m, loginCmd(m.ctx, m.auth, m.login.credentials())
	}
	return m, m.login.form.update(msg)
}

func loginCmd(ctx context.Context, flow *auth.Flow, creds service.Credentials) tea.Cmd {
	return func() tea.Msg {
		sess, err := flow.Login(ctx, creds)
		return authDoneMsg{route: RouteLogin, sess: sess, err: err}
	}
}

func (s loginScreen) view() string {
	body := styleTitle.Render("Log in to TaskWave") + "\n\n" + s.form.view() +
		styleMuted.Render("enter: log in   tab: next field   ctrl+r: create an account   esc: quit")
	return styleForm.Render(lipgloss.NewStyle().Width(48).Render(body))
}
