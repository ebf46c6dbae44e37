// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"sync"
	"time"

	"taskwave/internal/service"
)

// ErrNotFound is returned when a task does not exist.
var ErrNotFound = &service.APIError{Status: 404, Message: "Task not found"}

// ErrUnauthorized is returned by login for wrong credentials.
var ErrUnauthorized = &service.APIError{Status: 401, Message: "Invalid email or password"}

// FakeService is an in-memory implementation of service.Service for testing.
type FakeService struct {
	mu     sync.RWMutex
	tasks  []service.Task
	users  map[string]service.Registration // email -> registration
	nextID int
	clock  time.Time
	owner  service.Owner

	calls map[string]int

	// Error injection for testing
	LoginErr    error
	RegisterErr error
	ListErr     error
	CreateErr   error
	UpdateErr   error
	DeleteErr   error

	// Token is returned by Login and Register.
	Token string
}

// NewFakeService creates a FakeService with one known user, a@b.com / x,
// whose display name is "A B".
func NewFakeService() *FakeService {
	f := &FakeService{
		users:  make(map[string]service.Registration),
		calls:  make(map[string]int),
		nextID: 1,
		clock:  time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
		owner:  service.Owner{ID: 1, Email: "a@b.com", FirstName: "A", LastName: "B"},
		Token:  "T1",
	}
	f.users["a@b.com"] = service.Registration{FirstName: "A", LastName: "B", Email: "a@b.com", Password: "x"}
	return f
}

// AddTask adds a task created at the given time and returns its ID.
func (f *FakeService) AddTask(title, description string, completed bool, createdAt time.Time) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.nextID
	f.nextID++
	f.tasks = append(f.tasks, service.Task{
		ID:          id,
		Title:       title,
		Description: description,
		Completed:   completed,
		CreatedAt:   service.NewTimestamp(createdAt),
		UserID:      f.owner.ID,
		User:        f.owner,
	})
	return id
}

// Tasks returns a copy of the stored tasks.
func (f *FakeService) Tasks() []service.Task {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]service.Task, len(f.tasks))
	copy(out, f.tasks)
	return out
}

// Calls returns how often the named method was called.
func (f *FakeService) Calls(method string) int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.calls[method]
}

// TotalCalls returns the number of calls across all methods.
func (f *FakeService) TotalCalls() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

func (f *FakeService) record(method string) {
	f.calls[method]++
}

func (f *FakeService) tick() time.Time {
	f.clock = f.clock.Add(time.Minute)
	return f.clock
}

// Login implements service.Service.
func (f *FakeService) Login(ctx context.Context, creds service.Credentials) (service.AuthResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("Login")
	if f.LoginErr != nil {
		return service.AuthResult{}, f.LoginErr
	}
	u, ok := f.users[creds.Email]
	if !ok || u.Password != creds.Password {
		return service.AuthResult{}, ErrUnauthorized
	}
	return service.AuthResult{Token: f.Token, UserName: u.FirstName + " " + u.LastName}, nil
}

// Register implements service.Service.
func (f *FakeService) Register(ctx context.Context, reg service.Registration) (service.AuthResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("Register")
	if f.RegisterErr != nil {
		return service.AuthResult{}, f.RegisterErr
	}
	if _, exists := f.users[reg.Email]; exists {
		return service.AuthResult{}, &service.APIError{Status: 400, Message: "User already exists"}
	}
	f.users[reg.Email] = reg
	return service.AuthResult{Token: f.Token, UserName: reg.FirstName + " " + reg.LastName}, nil
}

// ListTasks implements service.Service.
func (f *FakeService) ListTasks(ctx context.Context) ([]service.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("ListTasks")
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	out := make([]service.Task, len(f.tasks))
	copy(out, f.tasks)
	return out, nil
}

// CreateTask implements service.Service.
func (f *FakeService) CreateTask(ctx context.Context, in service.TaskInput) (service.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("CreateTask")
	if f.CreateErr != nil {
		return service.Task{}, f.CreateErr
	}
	task := service.Task{
		ID:          f.nextID,
		Title:       in.Title,
		Description: in.Description,
		CreatedAt:   service.NewTimestamp(f.tick()),
		UserID:      f.owner.ID,
		User:        f.owner,
	}
	f.nextID++
	f.tasks = append(f.tasks, task)
	return task, nil
}

// UpdateTask implements service.Service.
func (f *FakeService) UpdateTask(ctx context.Context, task service.Task) (service.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("UpdateTask")
	if f.UpdateErr != nil {
		return service.Task{}, f.UpdateErr
	}
	for i, t := range f.tasks {
		if t.ID == task.ID {
			modified := service.NewTimestamp(f.tick())
			task.ModifiedAt = &modified
			f.tasks[i] = task
			return task, nil
		}
	}
	return service.Task{}, ErrNotFound
}

// DeleteTask implements service.Service.
func (f *FakeService) DeleteTask(ctx context.Context, id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("DeleteTask")
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
