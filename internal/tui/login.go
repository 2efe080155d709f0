package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/buildakash/taskdeck/pkg/client"
)

// -- messages --

// authSuccessMsg is emitted by the login and register views once the backend
// has issued a session. The root model persists it and routes onward.
type authSuccessMsg struct {
	resp *client.AuthResponse
}

// showRegisterMsg and showLoginMsg switch between the two public views.
type showRegisterMsg struct{}
type showLoginMsg struct{}

type loginResultMsg struct {
	resp *client.AuthResponse
	err  error
}

// -- model --

type loginModel struct {
	client     *client.Client
	email      textinput.Model
	password   textinput.Model
	focus      int // 0=email, 1=password
	submitting bool
	width      int
	height     int
}

func newLoginModel(c *client.Client) loginModel {
	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.Prompt = ""
	email.CharLimit = maxFieldLen
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.Prompt = ""
	password.CharLimit = maxFieldLen
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	return loginModel{client: c, email: email, password: password}
}

func (m loginModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m loginModel) Update(msg tea.Msg) (loginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case loginResultMsg:
		m.submitting = false
		if msg.err != nil {
			return m, errorToast(client.Message(msg.err, "failed to sign in"))
		}
		resp := msg.resp
		return m, func() tea.Msg { return authSuccessMsg{resp: resp} }

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateInputs(msg)
}

func (m loginModel) handleKey(msg tea.KeyMsg) (loginModel, tea.Cmd) {
	switch msg.String() {
	case "tab", "shift+tab", "up", "down":
		m.focus = 1 - m.focus
		m.setFocus()
		return m, textinput.Blink

	case "enter":
		if m.focus == 0 {
			m.focus = 1
			m.setFocus()
			return m, textinput.Blink
		}
		return m.submit()

	case "ctrl+r":
		return m, func() tea.Msg { return showRegisterMsg{} }
	}

	return m.updateInputs(msg)
}

func (m *loginModel) setFocus() {
	m.email.Blur()
	m.password.Blur()
	if m.focus == 0 {
		m.email.Focus()
	} else {
		m.password.Focus()
	}
}

func (m loginModel) updateInputs(msg tea.Msg) (loginModel, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.email, cmd = m.email.Update(msg)
	cmds = append(cmds, cmd)
	m.password, cmd = m.password.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m loginModel) submit() (loginModel, tea.Cmd) {
	if m.submitting {
		return m, nil
	}
	email := strings.TrimSpace(m.email.Value())
	password := m.password.Value()
	if email == "" || password == "" {
		return m, errorToast("email and password are required")
	}

	m.submitting = true
	c := m.client
	return m, func() tea.Msg {
		resp, err := c.Login(context.Background(), email, password)
		return loginResultMsg{resp: resp, err: err}
	}
}

func (m loginModel) View() string {
	var b strings.Builder

	b.WriteString("\n " + sectionHeaderStyle.Render("── SIGN IN ──") + "\n\n")

	emailCursor, passwordCursor := " ", " "
	emailLabel, passwordLabel := metaStyle, metaStyle
	if m.focus == 0 {
		emailCursor = accentStyle.Render(">")
		emailLabel = inputPromptStyle
	} else {
		passwordCursor = accentStyle.Render(">")
		passwordLabel = inputPromptStyle
	}

	b.WriteString(" " + emailCursor + " " + emailLabel.Render("email:") + "    " + m.email.View() + "\n")
	b.WriteString(" " + passwordCursor + " " + passwordLabel.Render("password:") + " " + m.password.View() + "\n\n")

	if m.submitting {
		b.WriteString(" " + dimStyle.Render("signing in...") + "\n")
	} else {
		b.WriteString(" " + dimStyle.Render("no account yet? ctrl+r to register") + "\n")
	}

	return b.String()
}

func (m loginModel) helpKeys() string {
	return helpEntry("tab", "next") + "  " + helpEntry("enter", "sign in") + "  " + helpEntry("ctrl+r", "register") + "  " + helpEntry("ctrl+c", "quit")
}
