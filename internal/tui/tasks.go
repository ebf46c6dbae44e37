package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"taskwave/internal/output"
	"taskwave/internal/service"
	"taskwave/internal/tasklist"
)

// opDoneMsg is sent when a task list operation finishes, successfully or not.
type opDoneMsg struct {
	op  string
	err error
}

type dialogKind int

const (
	dialogNone dialogKind = iota
	dialogCreate
	dialogUpdate
)

const (
	fieldTitle = iota
	fieldDescription
)

type tasksScreen struct {
	table   table.Model
	visible []service.Task

	dialog      dialogKind
	field       int
	title       textinput.Model
	description textarea.Model
}

func newTasksScreen() tasksScreen {
	t := table.New(
		table.WithColumns(taskColumns(100)),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	desc := textarea.New()
	desc.Placeholder = "Description (optional)"
	desc.CharLimit = 0
	desc.ShowLineNumbers = false
	desc.SetWidth(48)
	desc.SetHeight(4)
	_ = desc.Cursor.SetMode(cursor.CursorStatic)

	return tasksScreen{
		table:       t,
		title:       newInput("Title", 0),
		description: desc,
	}
}

func taskColumns(width int) []table.Column {
	fixed := 5 + 6 + 16 + 16 + 16
	flex := width - fixed - 14
	if flex < 30 {
		flex = 30
	}
	return []table.Column{
		{Title: "#", Width: 5},
		{Title: "Title", Width: flex * 2 / 5},
		{Title: "Description", Width: flex - flex*2/5},
		{Title: "Done", Width: 6},
		{Title: "Owner", Width: 16},
		{Title: "Created", Width: 16},
		{Title: "Modified", Width: 16},
	}
}

func (s *tasksScreen) resize(width, height int) {
	s.table.SetColumns(taskColumns(width))
	h := height - 10
	if h < 3 {
		h = 3
	}
	s.table.SetHeight(h)
}

// setTasks shows tasks, keeping the cursor in range.
func (s *tasksScreen) setTasks(tasks []service.Task) {
	s.visible = tasks
	rows := make([]table.Row, len(tasks))
	for i, t := range tasks {
		done := ""
		if t.Completed {
			done = "✓"
		}
		modified := "-"
		if t.ModifiedAt != nil {
			modified = output.FormatTime(*t.ModifiedAt)
		}
		rows[i] = table.Row{
			fmt.Sprintf("#%d", t.ID),
			oneLine(t.Title),
			oneLine(t.Description),
			done,
			t.User.FullName(),
			output.FormatTime(t.CreatedAt),
			modified,
		}
	}
	s.table.SetRows(rows)
	switch c := s.table.Cursor(); {
	case c < 0:
		s.table.SetCursor(0)
	case c >= len(rows):
		s.table.SetCursor(len(rows) - 1)
	}
}

func (s tasksScreen) selected() (service.Task, bool) {
	i := s.table.Cursor()
	if i < 0 || i >= len(s.visible) {
		return service.Task{}, false
	}
	return s.visible[i], true
}

func (s *tasksScreen) openDialog(kind dialogKind, title, description string) {
	s.dialog = kind
	s.title.SetValue(title)
	s.description.SetValue(description)
	s.focusField(fieldTitle)
}

func (s *tasksScreen) closeDialog() {
	s.dialog = dialogNone
	s.title.Reset()
	s.description.Reset()
	s.title.Blur()
	s.description.Blur()
	s.table.Focus()
}

func (s *tasksScreen) focusField(f int) {
	s.field = f
	s.table.Blur()
	if f == fieldTitle {
		_ = s.title.Focus()
		s.description.Blur()
	} else {
		s.title.Blur()
		_ = s.description.Focus()
	}
}

func (m model) updateTasks(msg tea.KeyMsg) (model, tea.Cmd) {
	if m.tasks.dialog != dialogNone {
		return m.updateDialog(msg)
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "a":
		m.view.OpenCreate()
		m.tasks.openDialog(dialogCreate, "", "")
		return m, nil
	case "e":
		if t, ok := m.tasks.selected(); ok {
			m.view.OpenUpdate(t)
			d := m.view.UpdateDialog()
			m.tasks.openDialog(dialogUpdate, d.Title, d.Description)
		}
		return m, nil
	case "c":
		// Completed tasks have no complete action.
		if t, ok := m.tasks.selected(); ok && !t.Completed {
			return m, m.run("complete", func(ctx context.Context) error { return m.view.Complete(ctx, t) })
		}
		return m, nil
	case "d":
		if t, ok := m.tasks.selected(); ok {
			return m, m.run("delete", func(ctx context.Context) error { return m.view.Delete(ctx, t.ID) })
		}
		return m, nil
	case "f":
		m.view.SetFilter(m.view.Filter().Next())
		m.tasks.setTasks(m.view.Visible())
		return m, nil
	case "s":
		m.view.SetOrder(m.view.Order().Toggle())
		m.tasks.setTasks(m.view.Visible())
		return m, nil
	case "r":
		return m, m.fetch()
	case "L":
		if err := m.auth.Logout(); err != nil {
			cmd := m.toast.show(tasklist.Notice{Level: tasklist.LevelError, Text: err.Error()})
			return m, cmd
		}
		return m.navigate(RouteLogin)
	}

	var cmd tea.Cmd
	m.tasks.table, cmd = m.tasks.table.Update(msg)
	return m, cmd
}

func (m model) updateDialog(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if m.tasks.dialog == dialogCreate {
			m.view.CancelCreate()
		} else {
			m.view.CancelUpdate()
		}
		m.tasks.closeDialog()
		return m, nil
	case "tab", "shift+tab":
		m.tasks.focusField(1 - m.tasks.field)
		return m, nil
	case "ctrl+s":
		title, desc := m.tasks.title.Value(), m.tasks.description.Value()
		if m.tasks.dialog == dialogCreate {
			return m, m.run("create", func(ctx context.Context) error { return m.view.Create(ctx, title, desc) })
		}
		return m, m.run("update", func(ctx context.Context) error { return m.view.Update(ctx, title, desc) })
	}

	var cmd tea.Cmd
	if m.tasks.field == fieldTitle {
		m.tasks.title, cmd = m.tasks.title.Update(msg)
	} else {
		m.tasks.description, cmd = m.tasks.description.Update(msg)
	}
	return m, cmd
}

// run executes a controller operation off the UI goroutine.
func (m model) run(op string, fn func(ctx context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return opDoneMsg{op: op, err: fn(ctx)}
	}
}

func (m model) fetch() tea.Cmd {
	return m.run("fetch", m.view.Fetch)
}

// syncTasks copies controller state into the screen after an operation.
// A dialog closes once the controller has closed it, which it does only on
// success.
func (m *model) syncTasks() {
	m.tasks.setTasks(m.view.Visible())
	switch m.tasks.dialog {
	case dialogCreate:
		if !m.view.CreateDialog().Open {
			m.tasks.closeDialog()
		}
	case dialogUpdate:
		if !m.view.UpdateDialog().Open {
			m.tasks.closeDialog()
		}
	}
}

func (m model) tasksView() string {
	user, ok := m.sessions.Active()
	name := "Unknown User"
	if ok && strings.TrimSpace(user.DisplayName) != "" {
		name = user.DisplayName
	}

	status := fmt.Sprintf("Filter: %s   Sort: %s", m.view.Filter().Label(), m.view.Order().Label())
	if m.view.State() == tasklist.Loading {
		status += "   loading..."
	}

	var b strings.Builder
	b.WriteString(styleTitle.Render("TaskWave") + "  " + styleMuted.Render(name))
	b.WriteString("\n")
	b.WriteString(styleMuted.Render(status))
	b.WriteString("\n\n")
	if len(m.tasks.visible) == 0 {
		b.WriteString(styleMuted.Render("No tasks."))
		b.WriteString("\n")
	} else {
		b.WriteString(m.tasks.table.View())
		b.WriteString("\n")
	}

	if m.tasks.dialog != dialogNone {
		b.WriteString("\n")
		b.WriteString(m.dialogView())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	help := "a: add   e: edit   c: complete   d: delete   f: filter   s: sort   r: refresh   L: logout   q: quit"
	if m.tasks.dialog != dialogNone {
		help = "tab: switch field   ctrl+s: save   esc: cancel"
	}
	b.WriteString(styleMuted.Render(help))
	return b.String()
}

func (m model) dialogView() string {
	heading := "Add Task"
	if m.tasks.dialog == dialogUpdate {
		heading = "Update Task"
	}
	titleLabel, descLabel := styleLabel.Render("Title"), styleLabel.Render("Description")
	if m.tasks.field == fieldTitle {
		titleLabel = styleFocused.Render("› Title")
	} else {
		descLabel = styleFocused.Render("› Description")
	}
	body := lipgloss.JoinVertical(lipgloss.Left,
		styleTitle.Render(heading),
		"",
		titleLabel,
		m.tasks.title.View(),
		"",
		descLabel,
		m.tasks.description.View(),
	)
	return styleDialog.Render(body)
}

func oneLine(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.ReplaceAll(s, "\n", " ")
}
