package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/buildakash/taskdeck/pkg/domain"
)

// webAppURL is the companion browser client sharing the same backend.
const webAppURL = "https://taskdeck.app"

var (
	// Base styles — neutral slate palette
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e4e4ec")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c0c4d0"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	// Accent / action styles
	accentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#34d474"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ade80"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e06060"))

	// Help bar
	helpKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	helpLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	// Form inputs
	inputPromptStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#34d474")).
				Bold(true)

	sectionHeaderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#606878"))

	// Logo wordmark — alternating emerald tones
	logoBrightStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ade80")).
			Bold(true)

	logoDeepStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#34d474")).
			Bold(true)

	// Dashboard counters — one color per stat, matching the status palette
	statInProgressStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#60a0e0")).
				Bold(true)

	statOverdueStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#e06060")).
				Bold(true)

	statDoneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ade80")).
			Bold(true)

	statCardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#1e1e2a")).
			Padding(0, 2)

	// Status badge colors keyed by the three-value enum
	statusColors = map[domain.Status]lipgloss.Color{
		domain.StatusTodo:       lipgloss.Color("#8890a0"),
		domain.StatusInProgress: lipgloss.Color("#60a0e0"),
		domain.StatusDone:       lipgloss.Color("#4ade80"),
	}
)

// StatusStyle returns a bold style colored for the given task status.
func StatusStyle(s domain.Status) lipgloss.Style {
	if c, ok := statusColors[s]; ok {
		return lipgloss.NewStyle().Foreground(c).Bold(true)
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("#606878")).Bold(true)
}

// statusBadge renders a status as a colored "[label]" chip for list rows.
func statusBadge(s domain.Status) string {
	return StatusStyle(s).Render("[" + string(s) + "]")
}

// renderLogo renders the spaced TASKDECK wordmark in alternating emerald.
func renderLogo() string {
	const text = "TASKDECK"
	var out string
	for i, ch := range text {
		if i%2 == 0 {
			out += logoBrightStyle.Render(string(ch))
		} else {
			out += logoDeepStyle.Render(string(ch))
		}
		if i < len(text)-1 {
			out += " "
		}
	}
	return out
}

// helpEntry renders a single "key label" pair for help bars.
func helpEntry(key, label string) string {
	return helpKeyStyle.Render(key) + " " + helpLabelStyle.Render(label)
}

// Command is one entry in the CLI command table. The table is shared
// between the `taskdeck help` output and the in-app help overlay so the
// two never drift apart.
type Command struct {
	Name string
	Desc string
}

// Commands lists every CLI verb in the order help screens print them.
var Commands = []Command{
	{"taskdeck", "Open the dashboard (interactive TUI)"},
	{"taskdeck tasks", "Jump straight to the task list"},
	{"taskdeck new", "Jump straight to the new-task form"},
	{"taskdeck login", "Sign in or create an account"},
	{"taskdeck logout", "Clear your session"},
	{"taskdeck whoami", "Show the signed-in user"},
	{"taskdeck --version", "Show version"},
	{"taskdeck help", "Show this help"},
}

// helpItem is a selectable link in the help overlay.
type helpItem struct {
	label string
	desc  string
	url   string
}

var helpItems = []helpItem{
	{"Web app", "taskdeck.app", webAppURL},
	{"Dashboard", "taskdeck.app/dashboard", webAppURL + "/dashboard"},
	{"Tasks", "taskdeck.app/tasks", webAppURL + "/tasks"},
}

// helpView renders the interactive help overlay with a cursor.
func helpView(cursor int) string {
	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#4ade80")).
		Bold(true).
		Render("T A S K D E C K")

	cmdStyle := lipgloss.NewStyle().Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	sectionStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true)
	cursorStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4ade80"))
	linkDescStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true)

	var b strings.Builder
	fmt.Fprintf(&b, "\n  %s\n\n", title)

	fmt.Fprintf(&b, "  %s\n", sectionStyle.Render("Commands"))
	for _, c := range Commands {
		fmt.Fprintf(&b, "    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-20s", c.Name)), descStyle.Render(c.Desc))
	}

	fmt.Fprintf(&b, "\n  %s\n", sectionStyle.Render("Links (enter to open)"))
	for i, item := range helpItems {
		label := cmdStyle.Render(fmt.Sprintf("%-20s", item.label))
		prefix := "    "
		if i == cursor {
			label = cursorStyle.Render(fmt.Sprintf("%-20s", item.label))
			prefix = "  > "
		}
		fmt.Fprintf(&b, "%s%s  %s\n", prefix, label, linkDescStyle.Render(item.desc))
	}
	return b.String()
}
