package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskwave/internal/config"
	"taskwave/internal/exitcode"
	"taskwave/internal/output"
	"taskwave/internal/service"
	"taskwave/internal/session"
	"taskwave/internal/tasklist"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `taskwave` (no args) and `taskwave list`.
type ListCmd struct {
	filter string
	order  string
	long   bool
}

// SetFilter sets the filter and sort order (for testing).
func (c *ListCmd) SetFilter(filter, order string, long bool) {
	c.filter, c.order, c.long = filter, order, long
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks" }
func (c *ListCmd) Usage() string {
	return "taskwave list [--filter all|completed|notCompleted] [--sort asc|desc] [--long]"
}
func (c *ListCmd) NeedsService() bool { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.filter, "filter", "all", "")
	fs.StringVar(&c.order, "sort", "desc", "")
	fs.BoolVar(&c.long, "long", false, "")
	fs.BoolVar(&c.long, "l", false, "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, sess *session.Manager, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}
	filter, err := tasklist.ParseFilter(c.filter)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	order, err := tasklist.ParseSortOrder(c.order)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	view := tasklist.New(svc, sess, nil)
	view.SetFilter(filter)
	view.SetOrder(order)
	if err := view.Fetch(ctx); err != nil {
		return report(errOut, err)
	}

	tasks := view.Visible()
	if !cfg.Quiet {
		active, _ := sess.Active()
		output.FormatListHeader(out, active.DisplayName, filter.Label(), order.Label())
	}
	for _, task := range tasks {
		output.FormatTask(out, task)
		if c.long {
			output.FormatTaskDetails(out, task)
		}
	}
	if len(tasks) == 0 && !cfg.Quiet {
		fmt.Fprintln(out, "no tasks found")
	}
	return exitcode.Success
}
