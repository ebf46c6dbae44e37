// Package exitcode defines the process exit codes. Scripts rely on them, so
// the values never change.
package exitcode

const (
	Success      = 0 // the command did what was asked
	UserError    = 1 // bad arguments, rejected form input, unknown task
	AuthError    = 2 // no session, rejected credentials or token
	BackendError = 3 // the API failed or could not be reached
)

// Name returns a short label for code, used in logs.
func Name(code int) string {
	switch code {
	case Success:
		return "success"
	case UserError:
		return "user_error"
	case AuthError:
		return "auth_error"
	case BackendError:
		return "backend_error"
	default:
		return "unknown"
	}
}
