// Package tasklist holds the task list view state shared by the CLI and the
// terminal UI: the cached list from the last fetch, the filter and sort
// applied to it, the create/update dialogs, and the mutations that always end
// in a full refetch.
package tasklist

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"taskwave/internal/logging"
	"taskwave/internal/service"
	"taskwave/internal/session"
	"taskwave/internal/validate"
)

// LoadState is the progress of the last fetch.
type LoadState int

const (
	Idle LoadState = iota
	Loading
	Loaded
	Errored
)

func (s LoadState) String() string {
	switch s {
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Errored:
		return "errored"
	default:
		return "idle"
	}
}

// ErrNotLoggedIn matches every missing-session failure of the controller.
var ErrNotLoggedIn = session.ErrNoSession

// ErrNoTaskSelected is returned by Update when the update dialog is closed.
var ErrNoTaskSelected = errors.New("no task selected")

// LoginRequiredError is reported when an operation needs a session and
// there is none. No request is sent.
type LoginRequiredError struct {
	Message string
}

func (e *LoginRequiredError) Error() string { return e.Message }

func (e *LoginRequiredError) Unwrap() error { return ErrNotLoggedIn }

// Notices shown to the user.
const (
	msgFetchNeedsLogin    = "You must be logged in to view tasks."
	msgCreateNeedsLogin   = "You must be logged in to add a task"
	msgUpdateNeedsLogin   = "You must be logged in to update a task"
	msgCompleteNeedsLogin = "You must be logged in to complete a task"
	msgDeleteNeedsLogin   = "You must be logged in to delete a task"

	msgFetchFailed    = "Failed to fetch tasks"
	msgCreateFailed   = "Failed to add task"
	msgUpdateFailed   = "Failed to update task"
	msgCompleteFailed = "Failed to complete task"
	msgDeleteFailed   = "Failed to delete task"

	msgCreated   = "Task added successfully"
	msgUpdated   = "Task updated successfully"
	msgCompleted = "Task marked as completed"
	msgDeleted   = "Task deleted successfully"
)

// CreateDialog is the state of the create form.
type CreateDialog struct {
	Open        bool
	Title       string
	Description string
}

// UpdateDialog is the state of the update form. Editing is the task as it
// was when the dialog opened.
type UpdateDialog struct {
	Open        bool
	Editing     *service.Task
	Title       string
	Description string
}

// Controller is the task list view. It is safe for concurrent use; when
// operations overlap, the last fetch to finish wins.
type Controller struct {
	svc      service.Service
	sessions *session.Manager
	notify   Notifier
	log      *logrus.Entry

	mu     sync.Mutex
	state  LoadState
	tasks  []service.Task
	filter Filter
	order  SortOrder
	create CreateDialog
	update UpdateDialog
}

// New returns a controller in the Idle state, showing all tasks newest first.
// A nil notifier discards notices.
func New(svc service.Service, sessions *session.Manager, notify Notifier) *Controller {
	if notify == nil {
		notify = NotifierFunc(func(Notice) {})
	}
	return &Controller{
		svc:      svc,
		sessions: sessions,
		notify:   notify,
		log:      logging.Component("tasklist"),
		filter:   FilterAll,
		order:    SortDesc,
	}
}

// State returns the load state.
func (c *Controller) State() LoadState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Tasks returns a copy of the cached list, in API order.
func (c *Controller) Tasks() []service.Task {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]service.Task, len(c.tasks))
	copy(out, c.tasks)
	return out
}

// Visible returns the cached list filtered and sorted for display.
func (c *Controller) Visible() []service.Task {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Apply(c.tasks, c.filter, c.order)
}

// Find returns the cached task with the given id.
func (c *Controller) Find(id int) (service.Task, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, t := range c.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return service.Task{}, false
}

// Filter returns the active filter.
func (c *Controller) Filter() Filter {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filter
}

// SetFilter changes the filter.
func (c *Controller) SetFilter(f Filter) {
	c.mu.Lock()
	c.filter = f
	c.mu.Unlock()
}

// Order returns the active sort order.
func (c *Controller) Order() SortOrder {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order
}

// SetOrder changes the sort order.
func (c *Controller) SetOrder(o SortOrder) {
	c.mu.Lock()
	c.order = o
	c.mu.Unlock()
}

// CreateDialog returns the create form state.
func (c *Controller) CreateDialog() CreateDialog {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.create
}

// OpenCreate opens an empty create form.
func (c *Controller) OpenCreate() {
	c.mu.Lock()
	c.create = CreateDialog{Open: true}
	c.mu.Unlock()
}

// CancelCreate closes and clears the create form.
func (c *Controller) CancelCreate() {
	c.mu.Lock()
	c.create = CreateDialog{}
	c.mu.Unlock()
}

// UpdateDialog returns the update form state.
func (c *Controller) UpdateDialog() UpdateDialog {
	c.mu.Lock()
	defer c.mu.Unlock()
	d := c.update
	if d.Editing != nil {
		t := *d.Editing
		d.Editing = &t
	}
	return d
}

// OpenUpdate opens the update form prefilled from task.
func (c *Controller) OpenUpdate(task service.Task) {
	c.mu.Lock()
	c.update = UpdateDialog{
		Open:        true,
		Editing:     &task,
		Title:       task.Title,
		Description: task.Description,
	}
	c.mu.Unlock()
}

// CancelUpdate closes the update form.
func (c *Controller) CancelUpdate() {
	c.mu.Lock()
	c.update = UpdateDialog{}
	c.mu.Unlock()
}

// Fetch replaces the cached list with the API's. On failure the cached list
// is kept and the state becomes Errored.
func (c *Controller) Fetch(ctx context.Context) error {
	if err := c.requireSession(msgFetchNeedsLogin); err != nil {
		return err
	}

	c.mu.Lock()
	c.state = Loading
	c.mu.Unlock()

	tasks, err := c.svc.ListTasks(ctx)

	c.mu.Lock()
	if err != nil {
		c.state = Errored
		c.mu.Unlock()
		return c.failed(msgFetchFailed, err)
	}
	c.tasks = tasks
	c.state = Loaded
	c.mu.Unlock()

	c.log.WithField("count", len(tasks)).Debug("fetched tasks")
	return nil
}

// Create validates and sends a new task, then refetches. On success the
// create form is cleared and closed.
func (c *Controller) Create(ctx context.Context, title, description string) error {
	c.mu.Lock()
	if c.create.Open {
		c.create.Title, c.create.Description = title, description
	}
	c.mu.Unlock()

	in := service.TaskInput{Title: title, Description: description}
	if err := validate.Struct(in); err != nil {
		return c.invalid(err)
	}
	if err := c.requireSession(msgCreateNeedsLogin); err != nil {
		return err
	}

	task, err := c.svc.CreateTask(ctx, in)
	if err != nil {
		return c.failed(msgCreateFailed, err)
	}
	c.log.WithField("id", task.ID).Debug("created task")

	c.mu.Lock()
	c.create = CreateDialog{}
	c.mu.Unlock()

	c.notify.Notify(success(msgCreated))
	return c.Fetch(ctx)
}

// Update sends the task being edited with a new title and description, then
// refetches. On success the update form closes.
func (c *Controller) Update(ctx context.Context, title, description string) error {
	c.mu.Lock()
	if !c.update.Open || c.update.Editing == nil {
		c.mu.Unlock()
		return ErrNoTaskSelected
	}
	c.update.Title, c.update.Description = title, description
	task := *c.update.Editing
	c.mu.Unlock()

	if err := validate.Struct(service.TaskInput{Title: title, Description: description}); err != nil {
		return c.invalid(err)
	}
	if err := c.requireSession(msgUpdateNeedsLogin); err != nil {
		return err
	}

	task.Title = title
	task.Description = description
	if _, err := c.svc.UpdateTask(ctx, task); err != nil {
		return c.failed(msgUpdateFailed, err)
	}
	c.log.WithField("id", task.ID).Debug("updated task")

	c.mu.Lock()
	c.update = UpdateDialog{}
	c.mu.Unlock()

	c.notify.Notify(success(msgUpdated))
	return c.Fetch(ctx)
}

// Complete sends task with Completed set, then refetches.
func (c *Controller) Complete(ctx context.Context, task service.Task) error {
	if err := c.requireSession(msgCompleteNeedsLogin); err != nil {
		return err
	}

	task.Completed = true
	if _, err := c.svc.UpdateTask(ctx, task); err != nil {
		return c.failed(msgCompleteFailed, err)
	}
	c.log.WithField("id", task.ID).Debug("completed task")

	c.notify.Notify(success(msgCompleted))
	return c.Fetch(ctx)
}

// Delete deletes the task with the given id, then refetches.
func (c *Controller) Delete(ctx context.Context, id int) error {
	if err := c.requireSession(msgDeleteNeedsLogin); err != nil {
		return err
	}

	if err := c.svc.DeleteTask(ctx, id); err != nil {
		return c.failed(msgDeleteFailed, err)
	}
	c.log.WithField("id", id).Debug("deleted task")

	c.notify.Notify(success(msgDeleted))
	return c.Fetch(ctx)
}

func (c *Controller) invalid(err error) error {
	c.notify.Notify(failure(err.Error()))
	return err
}

// CheckComplete reports the failure Complete would give for a missing
// session, so callers can stop before looking the task up.
func (c *Controller) CheckComplete() error {
	return c.requireSession(msgCompleteNeedsLogin)
}

// CheckUpdate is CheckComplete for Update.
func (c *Controller) CheckUpdate() error {
	return c.requireSession(msgUpdateNeedsLogin)
}

func (c *Controller) requireSession(msg string) error {
	if _, err := c.sessions.Require(); err != nil {
		return c.needLogin(msg)
	}
	return nil
}

func (c *Controller) needLogin(msg string) error {
	c.notify.Notify(failure(msg))
	return &LoginRequiredError{Message: msg}
}

func (c *Controller) failed(msg string, err error) error {
	c.log.WithError(err).Warn(msg)
	c.notify.Notify(failure(msg))
	return fmt.Errorf("%s: %w", msg, err)
}
