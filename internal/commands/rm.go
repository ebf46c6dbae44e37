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
	Register(&RmCmd{})
}

// RmCmd implements the rm command.
type RmCmd struct{}

func (c *RmCmd) Name() string       { return "rm" }
func (c *RmCmd) Aliases() []string  { return []string{"delete"} }
func (c *RmCmd) Synopsis() string   { return "Delete a task" }
func (c *RmCmd) Usage() string      { return "taskwave rm <id>" }
func (c *RmCmd) NeedsService() bool { return true }

func (c *RmCmd) Run(ctx context.Context, cfg *config.Config, sess *session.Manager, svc service.Service, args []string, out, errOut io.Writer) int {
	id, err := ParseTaskRef(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	// The id goes straight to the API; a missing task is the server's 404.
	view := tasklist.New(svc, sess, printer(cfg, out))
	if err := view.Delete(ctx, id); err != nil {
		return report(errOut, err)
	}
	return exitcode.Success
}
