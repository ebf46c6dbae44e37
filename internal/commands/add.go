package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskwave/internal/config"
	"taskwave/internal/exitcode"
	"taskwave/internal/service"
	"taskwave/internal/session"
	"taskwave/internal/tasklist"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	description string
}

// SetDescription sets the description (for testing).
func (c *AddCmd) SetDescription(d string) {
	c.description = d
}

func (c *AddCmd) Name() string       { return "add" }
func (c *AddCmd) Aliases() []string  { return []string{"create"} }
func (c *AddCmd) Synopsis() string   { return "Create a task" }
func (c *AddCmd) Usage() string      { return "taskwave add [--description <text>] <title...>" }
func (c *AddCmd) NeedsService() bool { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.description, "description", "", "")
	fs.StringVar(&c.description, "d", "", "")
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, sess *session.Manager, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "error: title required")
		return exitcode.UserError
	}
	title := strings.Join(args, " ")

	view := tasklist.New(svc, sess, printer(cfg, out))
	view.OpenCreate()
	if err := view.Create(ctx, title, c.description); err != nil {
		return report(errOut, err)
	}
	return exitcode.Success
}
