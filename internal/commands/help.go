package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"taskwave/internal/config"
	"taskwave/internal/exitcode"
	"taskwave/internal/service"
	"taskwave/internal/session"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command. It lists the commands of its
// registry, DefaultRegistry unless set.
type HelpCmd struct {
	registry *Registry
}

// SetRegistry sets the registry to describe (for testing).
func (c *HelpCmd) SetRegistry(r *Registry) {
	c.registry = r
}

func (c *HelpCmd) Name() string       { return "help" }
func (c *HelpCmd) Aliases() []string  { return nil }
func (c *HelpCmd) Synopsis() string   { return "Print usage" }
func (c *HelpCmd) Usage() string      { return "taskwave help" }
func (c *HelpCmd) NeedsService() bool { return false }

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, sess *session.Manager, svc service.Service, args []string, out, errOut io.Writer) int {
	registry := c.registry
	if registry == nil {
		registry = DefaultRegistry
	}

	fmt.Fprintln(out, "Usage:")
	fmt.Fprintln(out, "  taskwave")
	fmt.Fprintln(out, "        List tasks, newest first")
	for _, cmd := range registry.All() {
		fmt.Fprintf(out, "  %s\n", cmd.Usage())
		synopsis := cmd.Synopsis()
		if aliases := cmd.Aliases(); len(aliases) > 0 {
			synopsis += " (alias: " + strings.Join(aliases, ", ") + ")"
		}
		fmt.Fprintf(out, "        %s\n", synopsis)
	}
	fmt.Fprint(out, commonFlagsText)
	return exitcode.Success
}

const commonFlagsText = `
Common flags:
  --config <dir>   Override config directory
  --api <url>      API base URL (default: $TASKWAVE_API_URL or http://localhost:5000)
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`
