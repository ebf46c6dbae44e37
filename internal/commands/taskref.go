package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"taskwave/internal/service"
	"taskwave/internal/tasklist"
)

// ErrTaskRefRequired indicates no task reference was provided.
var ErrTaskRefRequired = errors.New("task reference required")

// errTaskNotFound is returned when the referenced id is not in the fetched list.
type errTaskNotFound struct{ id int }

func (e errTaskNotFound) Error() string { return fmt.Sprintf("task not found: %d", e.id) }

// ParseTaskRef parses a task reference: the server id, optionally prefixed
// with '#' as the list shows it ("12" or "#12"). Extra arguments are rejected.
func ParseTaskRef(args []string) (int, error) {
	if len(args) == 0 {
		return 0, ErrTaskRefRequired
	}
	if len(args) > 1 {
		return 0, fmt.Errorf("unexpected argument: %s", args[1])
	}
	raw := strings.TrimPrefix(args[0], "#")
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 || strings.HasPrefix(raw, "+") {
		return 0, fmt.Errorf("invalid task reference: %s", args[0])
	}
	return id, nil
}

// findTask fetches the list and returns the task with the given id.
func findTask(ctx context.Context, view *tasklist.Controller, id int) (service.Task, error) {
	if err := view.Fetch(ctx); err != nil {
		return service.Task{}, err
	}
	task, ok := view.Find(id)
	if !ok {
		return service.Task{}, errTaskNotFound{id: id}
	}
	return task, nil
}
