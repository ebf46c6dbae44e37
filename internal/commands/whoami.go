package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	"taskwave/internal/config"
	"taskwave/internal/exitcode"
	"taskwave/internal/service"
	"taskwave/internal/session"
)

func init() {
	Register(&WhoamiCmd{})
}

// WhoamiCmd prints the stored session. Nothing is sent to the API: the
// token is only decoded, not verified.
type WhoamiCmd struct {
	now func() time.Time
}

// SetClock replaces time.Now (for testing).
func (c *WhoamiCmd) SetClock(now func() time.Time) {
	c.now = now
}

func (c *WhoamiCmd) Name() string       { return "whoami" }
func (c *WhoamiCmd) Aliases() []string  { return nil }
func (c *WhoamiCmd) Synopsis() string   { return "Show the logged-in user" }
func (c *WhoamiCmd) Usage() string      { return "taskwave whoami" }
func (c *WhoamiCmd) NeedsService() bool { return false }

func (c *WhoamiCmd) Run(ctx context.Context, cfg *config.Config, sess *session.Manager, svc service.Service, args []string, out, errOut io.Writer) int {
	active, err := sess.Require()
	if err != nil {
		fmt.Fprintf(errOut, "error: %v (run: taskwave login)\n", err)
		return exitcode.AuthError
	}

	name := active.DisplayName
	if name == "" {
		name = "Unknown User"
	}
	fmt.Fprintln(out, name)

	claims, ok := active.Claims()
	if !ok {
		return exitcode.Success
	}
	if claims.Email != "" {
		fmt.Fprintf(out, "email:   %s\n", claims.Email)
	}
	if !claims.ExpiresAt.IsZero() {
		now := time.Now
		if c.now != nil {
			now = c.now
		}
		state := "valid"
		if !claims.ExpiresAt.After(now()) {
			state = "expired"
		}
		fmt.Fprintf(out, "expires: %s (%s)\n", claims.ExpiresAt.UTC().Format(time.RFC3339), state)
	}
	return exitcode.Success
}
