package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/buildakash/taskdeck/internal/browser"
	"github.com/buildakash/taskdeck/pkg/client"
	"github.com/buildakash/taskdeck/pkg/domain"
)

// -- messages --

type tasksLoadedMsg struct {
	tasks []domain.Task
	err   error
}

type taskDeletedMsg struct {
	id  string
	err error
}

type copyResultMsg struct{ err error }

// openFormMsg asks the root model to show the task form: empty id for
// create, a task id for edit.
type openFormMsg struct {
	id string
}

// listState is the state machine for the delete confirmation.
type listState int

const (
	lsNormal listState = iota
	lsConfirmDelete
)

// -- model --

type tasksModel struct {
	client  *client.Client
	webURL  string // companion web app base, for "o"
	tasks   []domain.Task
	cursor  int
	state   listState
	loading bool
	spin    spinner.Model
	width   int
	height  int
}

func newTasksModel(c *client.Client, webURL string) tasksModel {
	sp := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(accentStyle))
	return tasksModel{client: c, webURL: webURL, spin: sp, loading: true}
}

func (m tasksModel) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.load())
}

func (m tasksModel) load() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		tasks, err := c.ListTasks(context.Background())
		return tasksLoadedMsg{tasks: tasks, err: err}
	}
}

func (m tasksModel) Update(msg tea.Msg) (tasksModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tasksLoadedMsg:
		m.loading = false
		if msg.err != nil {
			return m, errorToast("failed to fetch tasks")
		}
		m.tasks = msg.tasks
		if m.cursor >= len(m.tasks) {
			m.cursor = 0
		}
		return m, nil

	case taskDeletedMsg:
		m.state = lsNormal
		if msg.err != nil {
			// List untouched on failure.
			return m, errorToast(client.Message(msg.err, "failed to delete task"))
		}
		for i, task := range m.tasks {
			if task.ID == msg.id {
				m.tasks = append(m.tasks[:i], m.tasks[i+1:]...)
				break
			}
		}
		if m.cursor >= len(m.tasks) && m.cursor > 0 {
			m.cursor = len(m.tasks) - 1
		}
		return m, successToast("task deleted successfully")

	case copyResultMsg:
		if msg.err != nil {
			return m, errorToast("failed to copy to clipboard")
		}
		return m, successToast("title copied")

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m tasksModel) handleKey(msg tea.KeyMsg) (tasksModel, tea.Cmd) {
	if m.state == lsConfirmDelete {
		switch msg.String() {
		case "y", "Y":
			m.state = lsNormal
			if m.cursor < len(m.tasks) {
				id := m.tasks[m.cursor].ID
				c := m.client
				return m, func() tea.Msg {
					err := c.DeleteTask(context.Background(), id)
					return taskDeletedMsg{id: id, err: err}
				}
			}
		case "n", "N", "esc":
			m.state = lsNormal
		}
		return m, nil
	}

	switch msg.String() {
	case "j", "down":
		if m.cursor < len(m.tasks)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "e", "enter":
		if m.cursor < len(m.tasks) {
			id := m.tasks[m.cursor].ID
			return m, func() tea.Msg { return openFormMsg{id: id} }
		}
	case "n":
		return m, func() tea.Msg { return openFormMsg{} }
	case "d":
		if m.cursor < len(m.tasks) {
			m.state = lsConfirmDelete
		}
	case "c":
		if m.cursor < len(m.tasks) {
			title := m.tasks[m.cursor].Title
			return m, func() tea.Msg {
				return copyResultMsg{err: clipboard.WriteAll(title)}
			}
		}
	case "o":
		if m.cursor < len(m.tasks) && m.webURL != "" {
			url := m.webURL + "/tasks/" + m.tasks[m.cursor].ID + "/edit"
			browser.Open(url) //nolint:errcheck // best-effort browser open
		}
	case "r":
		m.loading = true
		return m, tea.Batch(m.spin.Tick, m.load())
	}
	return m, nil
}

func (m tasksModel) View() string {
	var b strings.Builder

	b.WriteString("\n " + sectionHeaderStyle.Render(fmt.Sprintf("── TASKS %d ──", len(m.tasks))) + "\n\n")

	if m.loading && len(m.tasks) == 0 {
		b.WriteString(" " + m.spin.View() + dimStyle.Render(" loading tasks...") + "\n")
		return b.String()
	}
	if len(m.tasks) == 0 {
		b.WriteString(" " + dimStyle.Render("no tasks found — press n to create your first task") + "\n")
		return b.String()
	}

	titleWidth := m.width - 42
	if titleWidth < 16 {
		titleWidth = 16
	}

	header := fmt.Sprintf("   %-*s  %-13s  %s", titleWidth, "TITLE", "STATUS", "DUE")
	b.WriteString(" " + metaStyle.Render(header) + "\n")

	for i, task := range m.tasks {
		isActive := i == m.cursor

		cursor := " "
		if isActive {
			cursor = accentStyle.Render("▸")
		}

		title := truncStr(task.Title, titleWidth)
		titleStr := normalStyle.Render(fmt.Sprintf("%-*s", titleWidth, title))
		if isActive {
			titleStr = selectedStyle.Render(fmt.Sprintf("%-*s", titleWidth, title))
		}

		badge := statusBadge(task.Status)
		// Badge padding is positional: lipgloss width != len(string).
		badgePad := 13 - len(task.Status) - 2
		if badgePad < 0 {
			badgePad = 0
		}

		due := dimStyle.Render(formatDue(task.DueDate))

		fmt.Fprintf(&b, " %s %s  %s%s  %s\n", cursor, titleStr, badge, strings.Repeat(" ", badgePad), due)

		if isActive && m.state == lsConfirmDelete {
			b.WriteString("   " + errorStyle.Render("delete this task? ") +
				accentStyle.Render("y") + dimStyle.Render("/") + dimStyle.Render("n") + "\n")
		}
	}

	return b.String()
}

func (m tasksModel) helpKeys() string {
	if m.state == lsConfirmDelete {
		return helpEntry("y", "confirm") + "  " + helpEntry("n", "cancel")
	}
	return helpEntry("j/k", "nav") + "  " + helpEntry("e", "edit") + "  " + helpEntry("n", "new") + "  " + helpEntry("d", "delete") + "  " + helpEntry("c", "copy") + "  " + helpEntry("o", "open web") + "  " + helpEntry("r", "refresh") + "  " + helpEntry("q", "quit")
}
