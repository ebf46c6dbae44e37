package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskwave/internal/commands"
	"taskwave/internal/config"
	"taskwave/internal/exitcode"
	"taskwave/internal/logging"
	"taskwave/internal/service"
	"taskwave/internal/session"
)

// ServiceFactory creates a Service from config and the live session.
// Used to inject the backend during dispatch.
type ServiceFactory func(ctx context.Context, cfg *config.Config, sess *session.Manager) (service.Service, error)

// Dispatcher handles command-line parsing and dispatch.
type Dispatcher struct {
	registry *commands.Registry
	factory  ServiceFactory
}

// NewDispatcher creates a new dispatcher with the given registry and service factory.
func NewDispatcher(registry *commands.Registry, factory ServiceFactory) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		factory:  factory,
	}
}

// Run parses args, dispatches to the named command and returns its exit
// code. No args runs list.
func (d *Dispatcher) Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		return d.dispatch(ctx, "list", nil, out, errOut)
	}
	// Common flags come after the command name.
	if strings.HasPrefix(args[0], "-") {
		return d.unknown(args[0], errOut)
	}
	return d.dispatch(ctx, args[0], args[1:], out, errOut)
}

func (d *Dispatcher) dispatch(ctx context.Context, name string, args []string, out, errOut io.Writer) int {
	cmd, ok := d.registry.Find(name)
	if !ok {
		return d.unknown(name, errOut)
	}
	return d.dispatchCommand(ctx, cmd, args, out, errOut)
}

func (d *Dispatcher) unknown(name string, errOut io.Writer) int {
	if s := d.registry.Suggest(strings.TrimLeft(name, "-")); s != "" && !strings.HasPrefix(name, "-") {
		fmt.Fprintf(errOut, "error: unknown command: %s (did you mean %s?)\n", name, s)
	} else {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", name)
	}
	return exitcode.UserError
}

func (d *Dispatcher) dispatchCommand(ctx context.Context, cmd commands.Command, args []string, out, errOut io.Writer) int {
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		configDir string
		apiURL    string
		quiet     bool
		debug     bool
	)
	fs.StringVar(&configDir, "config", "", "")
	fs.StringVar(&apiURL, "api", "", "")
	fs.BoolVar(&quiet, "quiet", false, "")
	fs.BoolVar(&debug, "debug", false, "")

	if f, ok := cmd.(commands.FlagRegistrar); ok {
		f.RegisterFlags(fs)
	}

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(errOut, "error: %s\n", flagError(err))
		return exitcode.UserError
	}

	// A flag after the first positional argument is not parsed by fs.
	positionalArgs := fs.Args()
	if len(positionalArgs) > 0 && strings.HasPrefix(positionalArgs[0], "-") && !isTaskID(positionalArgs[0]) {
		fmt.Fprintf(errOut, "error: unknown flag: %s\n", positionalArgs[0])
		return exitcode.UserError
	}

	cfg, err := config.New(configDir)
	if err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.UserError
	}
	cfg.SetAPIURL(apiURL)
	cfg.Quiet = quiet
	cfg.Debug = debug

	logging.Setup(logging.Options{Debug: debug})
	log := logging.Component("cli").WithField("command", cmd.Name())
	log.WithField("api", cfg.APIURL).Debug("dispatch")

	sess, err := session.Load(session.NewStore(cfg.SessionPath()))
	if err != nil {
		fmt.Fprintf(errOut, "error: auth error: %s (run: taskwave logout)\n", err)
		return exitcode.AuthError
	}

	var svc service.Service
	if cmd.NeedsService() {
		if d.factory == nil {
			fmt.Fprintln(errOut, "error: backend error: no backend configured")
			return exitcode.BackendError
		}
		svc, err = d.factory(ctx, cfg, sess)
		if err != nil {
			fmt.Fprintf(errOut, "error: backend error: %s\n", err)
			return exitcode.BackendError
		}
	}

	code := cmd.Run(ctx, cfg, sess, svc, positionalArgs, out, errOut)
	log.WithField("exit", exitcode.Name(code)).Debug("done")
	return code
}

// flagError turns a flag package error into the message shown to the user.
func flagError(err error) string {
	msg := err.Error()
	if rest, ok := strings.CutPrefix(msg, "flag provided but not defined:"); ok {
		return "unknown flag: " + strings.TrimSpace(rest)
	}
	if rest, ok := strings.CutPrefix(msg, "flag needs an argument:"); ok {
		return "flag needs an argument: " + strings.TrimSpace(rest)
	}
	return msg
}

// isTaskID reports whether s looks like a (negative) number; ParseTaskRef
// rejects it with a clearer message than "unknown flag".
func isTaskID(s string) bool {
	s = strings.TrimPrefix(s, "-")
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
