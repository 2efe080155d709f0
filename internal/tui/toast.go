package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// toastTTL is how long a notification stays in the chrome before fading.
const toastTTL = 4 * time.Second

type toastLevel int

const (
	toastSuccess toastLevel = iota
	toastError
)

// toastShowMsg surfaces a transient notification. Any view may emit one;
// the root model owns rendering and expiry.
type toastShowMsg struct {
	level toastLevel
	text  string
}

// toastExpireMsg clears the toast it was scheduled for. The sequence number
// keeps an old expiry from wiping a newer toast.
type toastExpireMsg struct {
	seq int
}

// successToast returns a command that shows a success notification.
func successToast(text string) tea.Cmd {
	return func() tea.Msg { return toastShowMsg{level: toastSuccess, text: text} }
}

// errorToast returns a command that shows an error notification.
func errorToast(text string) tea.Cmd {
	return func() tea.Msg { return toastShowMsg{level: toastError, text: text} }
}

// toast is the root model's notification slot: at most one visible at a time,
// newest wins.
type toast struct {
	seq   int
	level toastLevel
	text  string
}

// show replaces the current toast and schedules its expiry.
func (t *toast) show(msg toastShowMsg) tea.Cmd {
	t.seq++
	t.level = msg.level
	t.text = msg.text
	seq := t.seq
	return tea.Tick(toastTTL, func(time.Time) tea.Msg {
		return toastExpireMsg{seq: seq}
	})
}

// expire clears the toast if the expiry belongs to it.
func (t *toast) expire(msg toastExpireMsg) {
	if msg.seq == t.seq {
		t.text = ""
	}
}

// View renders the single chrome line reserved for notifications.
func (t toast) View() string {
	if t.text == "" {
		return ""
	}
	if t.level == toastError {
		return " " + errorStyle.Render("✗ "+t.text)
	}
	return " " + successStyle.Render("✓ "+t.text)
}
