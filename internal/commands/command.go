// Package commands holds the CLI commands. Each file registers one command
// with DefaultRegistry from init.
package commands

import (
	"context"
	"flag"
	"io"

	"taskwave/internal/config"
	"taskwave/internal/service"
	"taskwave/internal/session"
)

// Command is one CLI verb.
type Command interface {
	Name() string
	Aliases() []string

	// Synopsis and Usage are shown by help.
	Synopsis() string
	Usage() string

	// NeedsService reports whether Run talks to the API. When false, Run
	// gets a nil svc.
	NeedsService() bool

	// Run executes the command with the positional args left after flag
	// parsing and returns the exit code. sess is never nil but may hold no
	// session.
	Run(ctx context.Context, cfg *config.Config, sess *session.Manager, svc service.Service, args []string, out, errOut io.Writer) int
}

// FlagRegistrar is implemented by commands with their own flags.
// RegisterFlags is called once per dispatch and must reset previous values.
type FlagRegistrar interface {
	RegisterFlags(fs *flag.FlagSet)
}
