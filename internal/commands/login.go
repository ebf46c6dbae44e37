package commands

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"taskwave/internal/auth"
	"taskwave/internal/config"
	"taskwave/internal/exitcode"
	"taskwave/internal/service"
	"taskwave/internal/session"
)

func init() {
	Register(&LoginCmd{})
}

// LoginCmd implements the login command.
type LoginCmd struct {
	email         string
	password      string
	passwordStdin bool
	stdin         io.Reader
}

// SetCredentials sets the flag values (for testing).
func (c *LoginCmd) SetCredentials(email, password string) {
	c.email, c.password = email, password
}

// SetStdin replaces the reader used by --password-stdin (for testing).
func (c *LoginCmd) SetStdin(r io.Reader) {
	c.stdin = r
}

func (c *LoginCmd) Name() string      { return "login" }
func (c *LoginCmd) Aliases() []string { return nil }
func (c *LoginCmd) Synopsis() string  { return "Log in and store the session" }
func (c *LoginCmd) Usage() string {
	return "taskwave login --email <email> (--password <password> | --password-stdin)"
}
func (c *LoginCmd) NeedsService() bool { return true }

func (c *LoginCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.email, "email", "", "")
	fs.StringVar(&c.email, "e", "", "")
	fs.StringVar(&c.password, "password", "", "")
	fs.StringVar(&c.password, "p", "", "")
	fs.BoolVar(&c.passwordStdin, "password-stdin", false, "")
}

func (c *LoginCmd) Run(ctx context.Context, cfg *config.Config, sess *session.Manager, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}
	password := c.password
	if c.passwordStdin {
		p, err := readLine(c.stdin)
		if err != nil {
			fmt.Fprintf(errOut, "error: reading password: %v\n", err)
			return exitcode.UserError
		}
		password = p
	}

	s, err := auth.New(svc, sess).Login(ctx, service.Credentials{Email: c.email, Password: password})
	if err != nil {
		return report(errOut, err)
	}
	if !cfg.Quiet {
		fmt.Fprintf(out, "Logged in as %s\n", s.DisplayName)
	}
	return exitcode.Success
}

// readLine reads one line from r (os.Stdin when nil) without the newline.
func readLine(r io.Reader) (string, error) {
	if r == nil {
		r = os.Stdin
	}
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
