package tasklist_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskwave/internal/service"
	"taskwave/internal/session"
	"taskwave/internal/tasklist"
	"taskwave/internal/testutil"
	"taskwave/internal/validate"
)

var base = time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)

func loggedIn(t *testing.T) *session.Manager {
	t.Helper()
	m := session.NewManager(nil)
	_, err := m.Start("T1", "A B")
	require.NoError(t, err)
	return m
}

func setup(t *testing.T) (*tasklist.Controller, *testutil.FakeService, *tasklist.Queue) {
	t.Helper()
	svc := testutil.NewFakeService()
	q := &tasklist.Queue{}
	return tasklist.New(svc, loggedIn(t), q), svc, q
}

func texts(notices []tasklist.Notice) []string {
	var out []string
	for _, n := range notices {
		out = append(out, n.Text)
	}
	return out
}

func TestFetch_ReplacesList(t *testing.T) {
	c, svc, _ := setup(t)
	ctx := context.Background()
	assert.Equal(t, tasklist.Idle, c.State())

	svc.AddTask("one", "", false, base)
	require.NoError(t, c.Fetch(ctx))
	assert.Equal(t, tasklist.Loaded, c.State())
	assert.Len(t, c.Tasks(), 1)

	svc.AddTask("two", "", false, base.Add(time.Hour))
	require.NoError(t, c.Fetch(ctx))
	assert.Len(t, c.Tasks(), 2)
}

func TestFetch_FailureKeepsCachedList(t *testing.T) {
	c, svc, q := setup(t)
	ctx := context.Background()
	svc.AddTask("one", "", false, base)
	require.NoError(t, c.Fetch(ctx))
	q.Drain()

	svc.ListErr = &service.APIError{Status: 500, Message: "boom"}
	svc.AddTask("two", "", false, base)
	err := c.Fetch(ctx)

	var apiErr *service.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 500, apiErr.Status)
	assert.Equal(t, tasklist.Errored, c.State())
	assert.Len(t, c.Tasks(), 1)
	assert.Equal(t, []string{"Failed to fetch tasks"}, texts(q.Drain()))
}

func TestNoSession_NoCallsAndLoginRequired(t *testing.T) {
	svc := testutil.NewFakeService()
	q := &tasklist.Queue{}
	c := tasklist.New(svc, session.NewManager(nil), q)
	ctx := context.Background()
	task := service.Task{ID: 1, Title: "Existing"}

	c.OpenUpdate(task)
	ops := map[string]func() error{
		"fetch":    func() error { return c.Fetch(ctx) },
		"create":   func() error { return c.Create(ctx, "Buy milk", "") },
		"update":   func() error { return c.Update(ctx, "Buy bread", "") },
		"complete": func() error { return c.Complete(ctx, task) },
		"delete":   func() error { return c.Delete(ctx, 1) },
	}
	for name, op := range ops {
		err := op()
		assert.ErrorIs(t, err, tasklist.ErrNotLoggedIn, name)
		assert.Contains(t, err.Error(), "must be logged in", name)
	}
	assert.Zero(t, svc.TotalCalls())
	for _, n := range q.Drain() {
		assert.Equal(t, tasklist.LevelError, n.Level)
		assert.Contains(t, n.Text, "must be logged in")
	}
}

func TestNoSession_NilManager(t *testing.T) {
	svc := testutil.NewFakeService()
	c := tasklist.New(svc, nil, nil)
	assert.ErrorIs(t, c.Fetch(context.Background()), tasklist.ErrNotLoggedIn)
	assert.Zero(t, svc.TotalCalls())
}

func TestCheckBeforeLookup(t *testing.T) {
	c := tasklist.New(testutil.NewFakeService(), session.NewManager(nil), nil)

	err := c.CheckComplete()
	assert.ErrorIs(t, err, tasklist.ErrNotLoggedIn)
	assert.EqualError(t, err, "You must be logged in to complete a task")
	assert.EqualError(t, c.CheckUpdate(), "You must be logged in to update a task")

	c, _, q := setup(t)
	assert.NoError(t, c.CheckComplete())
	assert.NoError(t, c.CheckUpdate())
	assert.Empty(t, q.Drain())
}

func TestCreate_RejectedLocally(t *testing.T) {
	tests := []struct {
		name        string
		title       string
		description string
		want        string
	}{
		{"two char title", "Hi", "", "Title must be at least 3 characters"},
		{"empty title", "", "", "Title must be at least 3 characters"},
		{"blank title", "     ", "", "Title must be at least 3 characters"},
		{"long description", "Buy milk", strings.Repeat("x", 501), "Description is too long"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, svc, q := setup(t)
			err := c.Create(context.Background(), tt.title, tt.description)
			assert.True(t, validate.IsValidation(err))
			assert.EqualError(t, err, tt.want)
			assert.Zero(t, svc.TotalCalls())
			assert.Equal(t, []string{tt.want}, texts(q.Drain()))
		})
	}
}

func TestUpdate_RejectedLocally(t *testing.T) {
	c, svc, _ := setup(t)
	c.OpenUpdate(service.Task{ID: 3, Title: "Existing"})

	err := c.Update(context.Background(), "Hi", "")
	assert.EqualError(t, err, "Title must be at least 3 characters")
	err = c.Update(context.Background(), "Fine title", strings.Repeat("é", 501))
	assert.EqualError(t, err, "Description is too long")
	assert.Zero(t, svc.TotalCalls())

	d := c.UpdateDialog()
	assert.True(t, d.Open, "dialog stays open after a rejection")
	assert.Equal(t, "Fine title", d.Title)
}

func TestCreate_RefetchesAndClearsDialog(t *testing.T) {
	c, svc, q := setup(t)
	ctx := context.Background()

	c.OpenCreate()
	require.NoError(t, c.Create(ctx, "Buy milk", "2 litres"))

	assert.Equal(t, 1, svc.Calls("CreateTask"))
	assert.Equal(t, 1, svc.Calls("ListTasks"))
	assert.Equal(t, svc.Tasks(), c.Tasks())
	assert.Equal(t, tasklist.CreateDialog{}, c.CreateDialog())
	assert.Equal(t, []string{"Task added successfully"}, texts(q.Drain()))
}

func TestCreate_FailureKeepsDialogAndList(t *testing.T) {
	c, svc, q := setup(t)
	ctx := context.Background()
	svc.AddTask("one", "", false, base)
	require.NoError(t, c.Fetch(ctx))
	q.Drain()

	svc.CreateErr = &service.APIError{Status: 400, Message: "Title is required"}
	c.OpenCreate()
	err := c.Create(ctx, "Buy milk", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Failed to add task")

	d := c.CreateDialog()
	assert.True(t, d.Open)
	assert.Equal(t, "Buy milk", d.Title)
	assert.Len(t, c.Tasks(), 1)
	assert.Equal(t, 1, svc.Calls("ListTasks"), "no refetch after a failed mutation")
	assert.Equal(t, []string{"Failed to add task"}, texts(q.Drain()))
}

func TestUpdate_SendsFullObject(t *testing.T) {
	c, svc, q := setup(t)
	ctx := context.Background()
	id := svc.AddTask("Old", "old desc", false, base)
	require.NoError(t, c.Fetch(ctx))
	task, ok := c.Find(id)
	require.True(t, ok)

	c.OpenUpdate(task)
	d := c.UpdateDialog()
	assert.Equal(t, "Old", d.Title)
	assert.Equal(t, "old desc", d.Description)

	require.NoError(t, c.Update(ctx, "New title", "new desc"))
	assert.False(t, c.UpdateDialog().Open)

	stored := svc.Tasks()[0]
	assert.Equal(t, "New title", stored.Title)
	assert.Equal(t, "new desc", stored.Description)
	assert.True(t, stored.CreatedAt.Equal(base))
	assert.Equal(t, task.User, stored.User)
	assert.Equal(t, svc.Tasks(), c.Tasks())
	assert.Equal(t, []string{"Task updated successfully"}, texts(q.Drain()))
}

func TestUpdate_WithoutDialog(t *testing.T) {
	c, svc, _ := setup(t)
	assert.ErrorIs(t, c.Update(context.Background(), "New title", ""), tasklist.ErrNoTaskSelected)
	assert.Zero(t, svc.TotalCalls())
}

func TestCancelUpdate(t *testing.T) {
	c, _, _ := setup(t)
	c.OpenUpdate(service.Task{ID: 1, Title: "x"})
	c.CancelUpdate()
	assert.Equal(t, tasklist.UpdateDialog{}, c.UpdateDialog())
}

func TestComplete_ForcesCompleted(t *testing.T) {
	c, svc, q := setup(t)
	ctx := context.Background()
	id := svc.AddTask("Write report", "", false, base)
	require.NoError(t, c.Fetch(ctx))
	task, _ := c.Find(id)

	require.NoError(t, c.Complete(ctx, task))
	assert.True(t, svc.Tasks()[0].Completed)
	got, _ := c.Find(id)
	assert.True(t, got.Completed)
	assert.Equal(t, []string{"Task marked as completed"}, texts(q.Drain()))
}

func TestComplete_Failure(t *testing.T) {
	c, svc, q := setup(t)
	id := svc.AddTask("Write report", "", false, base)
	svc.UpdateErr = errors.New("connection refused")

	err := c.Complete(context.Background(), service.Task{ID: id})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
	assert.False(t, svc.Tasks()[0].Completed)
	assert.Equal(t, []string{"Failed to complete task"}, texts(q.Drain()))
}

func TestDelete_Refetches(t *testing.T) {
	c, svc, q := setup(t)
	ctx := context.Background()
	id := svc.AddTask("one", "", false, base)
	svc.AddTask("two", "", false, base)
	require.NoError(t, c.Fetch(ctx))

	require.NoError(t, c.Delete(ctx, id))
	assert.Equal(t, svc.Tasks(), c.Tasks())
	assert.Len(t, c.Tasks(), 1)

	err := c.Delete(ctx, 999)
	var apiErr *service.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 404, apiErr.Status)
	assert.Equal(t, []string{"Task deleted successfully", "Failed to delete task"}, texts(q.Drain()))
}

func TestMutation_RefetchFailureIsReported(t *testing.T) {
	c, svc, q := setup(t)
	svc.ListErr = errors.New("list down")

	err := c.Create(context.Background(), "Buy milk", "")
	require.Error(t, err)
	assert.Len(t, svc.Tasks(), 1, "create itself succeeded")
	assert.Equal(t, tasklist.Errored, c.State())
	assert.Equal(t, []string{"Task added successfully", "Failed to fetch tasks"}, texts(q.Drain()))
}

func TestVisible_UsesFilterAndOrder(t *testing.T) {
	c, svc, _ := setup(t)
	svc.AddTask("old", "", true, base)
	svc.AddTask("new", "", false, base.Add(time.Hour))
	require.NoError(t, c.Fetch(context.Background()))

	assert.Equal(t, tasklist.FilterAll, c.Filter())
	assert.Equal(t, tasklist.SortDesc, c.Order())
	assert.Equal(t, "new", c.Visible()[0].Title)

	c.SetOrder(tasklist.SortAsc)
	assert.Equal(t, "old", c.Visible()[0].Title)

	c.SetFilter(tasklist.FilterNotCompleted)
	require.Len(t, c.Visible(), 1)
	assert.Equal(t, "new", c.Visible()[0].Title)
	assert.Len(t, c.Tasks(), 2, "filtering never touches the cache")
}
