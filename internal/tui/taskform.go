package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/buildakash/taskdeck/pkg/client"
	"github.com/buildakash/taskdeck/pkg/domain"
)

// -- messages --

type taskFetchedMsg struct {
	task *domain.Task
	err  error
}

type taskSavedMsg struct {
	created bool
	err     error
}

// backToTasksMsg asks the root model to return to the task list.
type backToTasksMsg struct {
	refresh bool
}

type formField int

const (
	fieldTitle formField = iota
	fieldDescription
	fieldStatus
	fieldDue
	numFormFields
)

// -- model --

type taskFormModel struct {
	client *client.Client

	// taskID is empty in create mode. In edit mode baseline holds the
	// fetched task for diffing on submit.
	taskID   string
	baseline *domain.Task

	title      textinput.Model
	desc       textinput.Model
	due        textinput.Model
	status     domain.Status
	focus      formField
	fetching   bool
	submitting bool
	spin       spinner.Model
	width      int
	height     int
}

func newTaskFormModel(c *client.Client, taskID string) taskFormModel {
	title := textinput.New()
	title.Placeholder = "what needs doing?"
	title.CharLimit = maxFieldLen
	title.PromptStyle = inputPromptStyle
	title.Focus()

	desc := textinput.New()
	desc.Placeholder = "optional details"
	desc.CharLimit = maxFieldLen
	desc.PromptStyle = inputPromptStyle

	due := textinput.New()
	due.Placeholder = "YYYY-MM-DD"
	due.CharLimit = 10
	due.PromptStyle = inputPromptStyle

	sp := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(accentStyle))

	m := taskFormModel{
		client: c,
		taskID: taskID,
		title:  title,
		desc:   desc,
		due:    due,
		status: domain.StatusTodo,
		spin:   sp,
	}
	if taskID == "" {
		m.due.SetValue(domain.Today().String())
	} else {
		m.fetching = true
	}
	return m
}

func (m taskFormModel) Init() tea.Cmd {
	if m.taskID == "" {
		return textinput.Blink
	}
	return tea.Batch(m.spin.Tick, m.fetch())
}

func (m taskFormModel) fetch() tea.Cmd {
	c, id := m.client, m.taskID
	return func() tea.Msg {
		task, err := c.GetTask(context.Background(), id)
		return taskFetchedMsg{task: task, err: err}
	}
}

func (m taskFormModel) editing() bool { return m.taskID != "" }

func (m taskFormModel) Update(msg tea.Msg) (taskFormModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case taskFetchedMsg:
		m.fetching = false
		if msg.err != nil {
			return m, tea.Batch(
				errorToast("failed to fetch task"),
				func() tea.Msg { return backToTasksMsg{} },
			)
		}
		m.baseline = msg.task
		m.title.SetValue(msg.task.Title)
		m.desc.SetValue(msg.task.Description)
		m.status = msg.task.Status
		if !msg.task.DueDate.IsZero() {
			m.due.SetValue(msg.task.DueDate.String())
		}
		return m, textinput.Blink

	case taskSavedMsg:
		if msg.err != nil {
			m.submitting = false
			return m, errorToast(client.Message(msg.err, "failed to save task"))
		}
		text := "task updated successfully"
		if msg.created {
			text = "task created successfully"
		}
		return m, tea.Batch(
			successToast(text),
			func() tea.Msg { return backToTasksMsg{refresh: true} },
		)

	case spinner.TickMsg:
		if !m.fetching {
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

func (m taskFormModel) handleKey(msg tea.KeyMsg) (taskFormModel, tea.Cmd) {
	if m.fetching || m.submitting {
		return m, nil
	}

	switch msg.String() {
	case "tab", "down", "enter":
		m.setFocus((m.focus + 1) % numFormFields)
		return m, nil
	case "shift+tab", "up":
		m.setFocus((m.focus + numFormFields - 1) % numFormFields)
		return m, nil
	case "ctrl+s":
		return m.submit()
	}

	if m.focus == fieldStatus {
		switch msg.String() {
		case "l", "right", " ":
			m.status = nextStatus(m.status, 1)
			return m, nil
		case "h", "left":
			m.status = nextStatus(m.status, -1)
			return m, nil
		}
		return m, nil
	}

	var cmd tea.Cmd
	switch m.focus {
	case fieldTitle:
		m.title, cmd = m.title.Update(msg)
	case fieldDescription:
		m.desc, cmd = m.desc.Update(msg)
	case fieldDue:
		m.due, cmd = m.due.Update(msg)
	}
	return m, cmd
}

func (m *taskFormModel) setFocus(f formField) {
	m.focus = f
	m.title.Blur()
	m.desc.Blur()
	m.due.Blur()
	switch f {
	case fieldTitle:
		m.title.Focus()
	case fieldDescription:
		m.desc.Focus()
	case fieldDue:
		m.due.Focus()
	}
}

// nextStatus cycles through ValidStatuses in either direction.
func nextStatus(s domain.Status, dir int) domain.Status {
	n := len(domain.ValidStatuses)
	for i, v := range domain.ValidStatuses {
		if v == s {
			return domain.ValidStatuses[(i+dir+n)%n]
		}
	}
	return domain.ValidStatuses[0]
}

func (m taskFormModel) submit() (taskFormModel, tea.Cmd) {
	title := strings.TrimSpace(m.title.Value())
	if title == "" {
		return m, errorToast("title is required")
	}

	raw := strings.TrimSpace(m.due.Value())
	if raw == "" {
		return m, errorToast("due date is required")
	}
	due, err := domain.ParseDate(raw)
	if err != nil {
		return m, errorToast("due date must be YYYY-MM-DD")
	}
	desc := strings.TrimSpace(m.desc.Value())

	m.submitting = true
	c := m.client

	if !m.editing() {
		req := client.CreateTaskRequest{
			Title:       title,
			Description: desc,
			Status:      m.status,
			DueDate:     due,
		}
		return m, func() tea.Msg {
			_, err := c.CreateTask(context.Background(), req)
			return taskSavedMsg{created: true, err: err}
		}
	}

	// Only changed fields go on the wire.
	var req client.UpdateTaskRequest
	if m.baseline == nil || title != m.baseline.Title {
		req.Title = &title
	}
	if m.baseline == nil || desc != m.baseline.Description {
		req.Description = &desc
	}
	if m.baseline == nil || m.status != m.baseline.Status {
		s := m.status
		req.Status = &s
	}
	if m.baseline == nil || !due.Equal(m.baseline.DueDate) {
		d := due
		req.DueDate = &d
	}

	if req.Empty() {
		return m, tea.Batch(
			successToast("no changes to save"),
			func() tea.Msg { return backToTasksMsg{} },
		)
	}

	id := m.taskID
	return m, func() tea.Msg {
		_, err := c.UpdateTask(context.Background(), id, req)
		return taskSavedMsg{err: err}
	}
}

func (m taskFormModel) View() string {
	var b strings.Builder

	header := "── NEW TASK ──"
	if m.editing() {
		header = "── EDIT TASK ──"
	}
	b.WriteString("\n " + sectionHeaderStyle.Render(header) + "\n\n")

	if m.fetching {
		b.WriteString(" " + m.spin.View() + dimStyle.Render(" loading task...") + "\n")
		return b.String()
	}

	b.WriteString(" " + m.fieldLabel("Title", fieldTitle) + "\n")
	b.WriteString(" " + m.title.View() + "\n\n")

	b.WriteString(" " + m.fieldLabel("Description", fieldDescription) + "\n")
	b.WriteString(" " + m.desc.View() + "\n\n")

	b.WriteString(" " + m.fieldLabel("Status", fieldStatus) + "\n")
	b.WriteString("   " + m.statusPicker() + "\n\n")

	b.WriteString(" " + m.fieldLabel("Due date", fieldDue) + "\n")
	b.WriteString(" " + m.due.View() + "\n")

	if m.submitting {
		b.WriteString("\n " + dimStyle.Render("saving...") + "\n")
	}

	return b.String()
}

func (m taskFormModel) fieldLabel(label string, f formField) string {
	if m.focus == f {
		return accentStyle.Render(label)
	}
	return metaStyle.Render(label)
}

func (m taskFormModel) statusPicker() string {
	parts := make([]string, 0, len(domain.ValidStatuses))
	for _, s := range domain.ValidStatuses {
		if s == m.status {
			parts = append(parts, StatusStyle(s).Render("● "+s.Label()))
		} else {
			parts = append(parts, dimStyle.Render("○ "+s.Label()))
		}
	}
	return strings.Join(parts, "   ")
}

func (m taskFormModel) helpKeys() string {
	return helpEntry("tab", "next field") + "  " + helpEntry("h/l", "status") + "  " + helpEntry("ctrl+s", "save") + "  " + helpEntry("esc", "cancel")
}
