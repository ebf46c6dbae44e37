package commands

import (
	"context"
	"fmt"
	"io"

	"taskwave/internal/config"
	"taskwave/internal/exitcode"
	"taskwave/internal/service"
	"taskwave/internal/session"
	"taskwave/internal/tasklist"
)

func init() {
	Register(&DoneCmd{})
}

// DoneCmd implements the done command.
type DoneCmd struct{}

func (c *DoneCmd) Name() string       { return "done" }
func (c *DoneCmd) Aliases() []string  { return []string{"complete"} }
func (c *DoneCmd) Synopsis() string   { return "Mark a task completed" }
func (c *DoneCmd) Usage() string      { return "taskwave done <id>" }
func (c *DoneCmd) NeedsService() bool { return true }

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, sess *session.Manager, svc service.Service, args []string, out, errOut io.Writer) int {
	id, err := ParseTaskRef(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	view := tasklist.New(svc, sess, printer(cfg, out))
	if err := view.CheckComplete(); err != nil {
		return report(errOut, err)
	}
	task, err := findTask(ctx, view, id)
	if err != nil {
		return report(errOut, err)
	}
	// Completed tasks have no complete action.
	if task.Completed {
		fmt.Fprintf(errOut, "error: task already completed: %d\n", id)
		return exitcode.UserError
	}

	if err := view.Complete(ctx, task); err != nil {
		return report(errOut, err)
	}
	return exitcode.Success
}
