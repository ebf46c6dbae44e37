package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskwave/internal/auth"
	"taskwave/internal/config"
	"taskwave/internal/exitcode"
	"taskwave/internal/service"
	"taskwave/internal/session"
)

func init() {
	Register(&RegisterCmd{})
}

// RegisterCmd implements the register command.
type RegisterCmd struct {
	reg service.Registration
}

// SetRegistration sets the flag values (for testing).
func (c *RegisterCmd) SetRegistration(reg service.Registration) {
	c.reg = reg
}

func (c *RegisterCmd) Name() string      { return "register" }
func (c *RegisterCmd) Aliases() []string { return []string{"signup"} }
func (c *RegisterCmd) Synopsis() string  { return "Create an account and log in" }
func (c *RegisterCmd) Usage() string {
	return "taskwave register --first-name <name> --last-name <name> --email <email> --mobile <number> --password <password>"
}
func (c *RegisterCmd) NeedsService() bool { return true }

func (c *RegisterCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.reg.FirstName, "first-name", "", "")
	fs.StringVar(&c.reg.LastName, "last-name", "", "")
	fs.StringVar(&c.reg.Email, "email", "", "")
	fs.StringVar(&c.reg.MobileNumber, "mobile", "", "")
	fs.StringVar(&c.reg.Password, "password", "", "")
}

func (c *RegisterCmd) Run(ctx context.Context, cfg *config.Config, sess *session.Manager, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}
	if _, err := auth.New(svc, sess).Register(ctx, c.reg); err != nil {
		return report(errOut, err)
	}
	if !cfg.Quiet {
		fmt.Fprintln(out, auth.MsgRegistered)
	}
	return exitcode.Success
}
