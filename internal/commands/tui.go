package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskwave/internal/config"
	"taskwave/internal/exitcode"
	"taskwave/internal/logging"
	"taskwave/internal/service"
	"taskwave/internal/session"
	"taskwave/internal/tui"
)

func init() {
	Register(&TUICmd{})
}

// TUICmd starts the interactive terminal UI.
type TUICmd struct {
	route string
}

func (c *TUICmd) Name() string       { return "tui" }
func (c *TUICmd) Aliases() []string  { return []string{"ui"} }
func (c *TUICmd) Synopsis() string   { return "Open the interactive task list" }
func (c *TUICmd) Usage() string      { return "taskwave tui [--route /login|/register|/tasks]" }
func (c *TUICmd) NeedsService() bool { return true }

func (c *TUICmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.route, "route", "", "")
}

func (c *TUICmd) Run(ctx context.Context, cfg *config.Config, sess *session.Manager, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	// The screen belongs to the UI; logs go to a file.
	if err := cfg.EnsureDir(); err != nil {
		fmt.Fprintf(errOut, "error: failed to create config directory: %v\n", err)
		return exitcode.UserError
	}
	logging.Setup(logging.Options{Debug: cfg.Debug, File: cfg.LogPath()})

	err := tui.Run(ctx, tui.Options{
		Service:  svc,
		Sessions: sess,
		Route:    c.route,
		Output:   out,
	})
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	}
	return exitcode.Success
}
