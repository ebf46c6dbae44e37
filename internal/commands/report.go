package commands

import (
	"errors"
	"fmt"
	"io"

	"taskwave/internal/auth"
	"taskwave/internal/config"
	"taskwave/internal/exitcode"
	"taskwave/internal/service"
	"taskwave/internal/tasklist"
	"taskwave/internal/validate"
)

// report prints err the way every command does and returns its exit code.
func report(errOut io.Writer, err error) int {
	var (
		loginErr *tasklist.LoginRequiredError
		authErr  *auth.Error
		notFound errTaskNotFound
	)
	switch {
	case validate.IsValidation(err):
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	case errors.As(err, &notFound):
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	case errors.As(err, &loginErr):
		fmt.Fprintf(errOut, "error: %s (run: taskwave login)\n", loginErr.Message)
		return exitcode.AuthError
	case errors.As(err, &authErr):
		fmt.Fprintf(errOut, "error: %s\n", authErr.Message)
		return exitcode.AuthError
	case service.IsUnauthorized(err):
		fmt.Fprintf(errOut, "error: auth error: %v (run: taskwave login)\n", err)
		return exitcode.AuthError
	default:
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}
}

// printer shows success notices on out unless quiet. Failures are reported
// from the returned error instead.
func printer(cfg *config.Config, out io.Writer) tasklist.Notifier {
	return tasklist.NotifierFunc(func(n tasklist.Notice) {
		if n.Level == tasklist.LevelSuccess && !cfg.Quiet {
			fmt.Fprintln(out, n.Text)
		}
	})
}
