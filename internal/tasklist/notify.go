package tasklist

import "sync"

// Level is the kind of a notice.
type Level int

const (
	LevelSuccess Level = iota
	LevelError
)

// Notice is one transient user-facing message.
type Notice struct {
	Level Level
	Text  string
}

// Notifier shows transient notices (toasts, CLI status lines).
type Notifier interface {
	Notify(n Notice)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(n Notice)

// Notify implements Notifier.
func (f NotifierFunc) Notify(n Notice) { f(n) }

// Queue collects notices until drained. Safe for concurrent use.
type Queue struct {
	mu      sync.Mutex
	notices []Notice
}

// Notify implements Notifier.
func (q *Queue) Notify(n Notice) {
	q.mu.Lock()
	q.notices = append(q.notices, n)
	q.mu.Unlock()
}

// Drain returns and forgets the queued notices.
func (q *Queue) Drain() []Notice {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.notices
	q.notices = nil
	return out
}

func success(text string) Notice { return Notice{Level: LevelSuccess, Text: text} }
func failure(text string) Notice { return Notice{Level: LevelError, Text: text} }
