package tui

import (
	"unicode/utf8"

	"github.com/buildakash/taskdeck/pkg/domain"
)

// maxFieldLen is the character limit applied to all form inputs.
const maxFieldLen = 500

// formatDue renders a due date for list rows, e.g. "Jan 02, 2006".
func formatDue(d domain.Date) string {
	if d.IsZero() {
		return "—"
	}
	return d.Format("Jan 02, 2006")
}

// truncStr truncates a string to maxLen runes, appending an ellipsis if needed.
func truncStr(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLen-1]) + "…"
}

// truncateToHeight limits output to maxLines newline-delimited lines.
// Returns the original string if it fits or maxLines is <= 0.
func truncateToHeight(s string, maxLines int) string {
	if maxLines <= 0 {
		return s
	}
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			n++
			if n >= maxLines {
				return s[:i+1]
			}
		}
	}
	return s
}
