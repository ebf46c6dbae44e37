package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"taskwave/internal/auth"
	"taskwave/internal/service"
)

const (
	regFirstName = iota
	regLastName
	regEmail
	regMobile
	regPassword
)

type registerScreen struct {
	form form
}

func newRegisterScreen() registerScreen {
	password := newInput("password", 128)
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	return registerScreen{form: newForm(
		[]string{"First Name", "Last Name", "Email", "Mobile Number", "Password"},
		[]textinput.Model{
			newInput("", 64),
			newInput("", 64),
			newInput("you@example.com", 254),
			newInput("", 32),
			password,
		},
	)}
}

func (s registerScreen) registration() service.Registration {
	return service.Registration{
		FirstName:    s.form.value(regFirstName),
		LastName:     s.form.value(regLastName),
		Email:        s.form.value(regEmail),
		MobileNumber: s.form.value(regMobile),
		Password:     s.form.value(regPassword),
	}
}

func (m model) updateRegister(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		m.register.form.next()
		return m, nil
	case "shift+tab", "up":
		m.register.form.prev()
		return m, nil
	case "ctrl+l":
		return m.navigate(RouteLogin)
	case "enter":
		return m, registerCmd(m.ctx, m.auth, m.register.registration())
	}
	return m, m.register.form.update(msg)
}

func registerCmd(ctx context.Context, flow *auth.Flow, reg service.Registration) tea.Cmd {
	return func() tea.Msg {
		sess, err := flow.Register(ctx, reg)
		return authDoneMsg{route: RouteRegister, sess: sess, err: err}
	}
}

func (s registerScreen) view() string {
	body := styleTitle.Render("Create a TaskWave account") + "\n\n" + s.form.view() +
		styleMuted.Render("enter: register   tab: next field   ctrl+l: back to login   esc: quit")
	return styleForm.Render(lipgloss.NewStyle().Width(48).Render(body))
}
