// Package tui is the interactive terminal client: a login screen, a register
// screen and the task list, routed by path like the web client they replace.
package tui

import (
	"context"
	"errors"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"taskwave/internal/auth"
	"taskwave/internal/logging"
	"taskwave/internal/service"
	"taskwave/internal/session"
	"taskwave/internal/tasklist"
)

// Options configures Run.
type Options struct {
	Service  service.Service
	Sessions *session.Manager

	// Route is the first screen; empty picks /tasks when logged in,
	// /login otherwise.
	Route string

	// Output is the terminal to draw on; nil means stdout.
	Output io.Writer
}

// Run shows the UI until the user quits or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	m := newModel(ctx, opts)
	progOpts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if opts.Output != nil {
		progOpts = append(progOpts, tea.WithOutput(opts.Output))
	}
	_, err := tea.NewProgram(m, progOpts...).Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

type model struct {
	ctx      context.Context
	sessions *session.Manager
	auth     *auth.Flow
	view     *tasklist.Controller
	notices  *tasklist.Queue
	log      *logrus.Entry

	route  Route
	width  int
	height int

	login    loginScreen
	register registerScreen
	tasks    tasksScreen
	toast    toast
}

func newModel(ctx context.Context, opts Options) model {
	notices := &tasklist.Queue{}
	route := StartRoute(opts.Sessions)
	if opts.Route != "" {
		route = Resolve(opts.Route)
	}
	return model{
		ctx:      ctx,
		sessions: opts.Sessions,
		auth:     auth.New(opts.Service, opts.Sessions),
		view:     tasklist.New(opts.Service, opts.Sessions, notices),
		notices:  notices,
		log:      logging.Component("tui"),
		route:    route,
		login:    newLoginScreen(),
		register: newRegisterScreen(),
		tasks:    newTasksScreen(),
	}
}

func (m model) Init() tea.Cmd {
	if m.route == RouteTasks {
		return m.fetch()
	}
	return nil
}

// navigate switches screens. Mounting the task screen fetches.
func (m model) navigate(to Route) (model, tea.Cmd) {
	to = Resolve(string(to))
	m.log.WithField("route", to).Debug("navigate")
	m.route = to
	switch to {
	case RouteLogin:
		m.login.form.reset()
	case RouteRegister:
		m.register.form.reset()
	case RouteTasks:
		m.tasks.closeDialog()
		return m, m.fetch()
	}
	return m, nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.tasks.resize(msg.Width, msg.Height)
		return m, nil

	case toastExpiredMsg:
		m.toast.expire(msg)
		return m, nil

	case authDoneMsg:
		if msg.err != nil {
			cmd := m.toast.show(tasklist.Notice{Level: tasklist.LevelError, Text: msg.err.Error()})
			return m, cmd
		}
		var cmds []tea.Cmd
		if msg.route == RouteRegister {
			cmds = append(cmds, m.toast.show(tasklist.Notice{Level: tasklist.LevelSuccess, Text: auth.MsgRegistered}))
		}
		next, cmd := m.navigate(RouteTasks)
		return next, tea.Batch(append(cmds, cmd)...)

	case opDoneMsg:
		if msg.err != nil {
			m.log.WithError(msg.err).WithField("op", msg.op).Debug("operation failed")
		}
		m.syncTasks()
		cmd := m.showNotices()
		return m, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.route {
		case RouteLogin:
			if msg.String() == "esc" {
				return m, tea.Quit
			}
			return m.updateLogin(msg)
		case RouteRegister:
			if msg.String() == "esc" {
				return m, tea.Quit
			}
			return m.updateRegister(msg)
		default:
			return m.updateTasks(msg)
		}
	}
	return m, nil
}

// showNotices moves queued controller notices to the toast. The newest one
// stays visible.
func (m *model) showNotices() tea.Cmd {
	var cmd tea.Cmd
	for _, n := range m.notices.Drain() {
		cmd = m.toast.show(n)
	}
	return cmd
}

func (m model) View() string {
	var body string
	switch m.route {
	case RouteLogin:
		body = m.login.view()
	case RouteRegister:
		body = m.register.view()
	default:
		body = m.tasksView()
	}
	if t := m.toast.view(); t != "" {
		body = lipgloss.JoinVertical(lipgloss.Left, body, "", t)
	}
	return lipgloss.NewStyle().Margin(1, 2).Render(body)
}
