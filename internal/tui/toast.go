package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"taskwave/internal/tasklist"
)

// toastAutoClearAfter is how long a notice stays on screen.
const toastAutoClearAfter = 3 * time.Second

type toastExpiredMsg struct{ seq int }

type toast struct {
	text  string
	level tasklist.Level
	seq   int
	ttl   time.Duration
}

// show replaces the current notice and schedules its removal. A later
// notice gets a new seq, so the earlier timer does not clear it.
func (t *toast) show(n tasklist.Notice) tea.Cmd {
	t.text = n.Text
	t.level = n.Level
	t.seq++
	seq := t.seq
	ttl := t.ttl
	if ttl <= 0 {
		ttl = toastAutoClearAfter
	}
	return tea.Tick(ttl, func(time.Time) tea.Msg { return toastExpiredMsg{seq: seq} })
}

func (t *toast) expire(msg toastExpiredMsg) {
	if msg.seq == t.seq {
		t.text = ""
	}
}

func (t toast) view() string {
	if t.text == "" {
		return ""
	}
	if t.level == tasklist.LevelError {
		return styleToastErr.Render("✗ " + t.text)
	}
	return styleToastOK.Render("✓ " + t.text)
}
