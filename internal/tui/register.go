package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/buildakash/taskdeck/pkg/client"
)

type registerResultMsg struct {
	resp *client.AuthResponse
	err  error
}

type registerField int

const (
	regFieldUsername registerField = iota
	regFieldEmail
	regFieldPassword
	numRegFields
)

type registerModel struct {
	client     *client.Client
	inputs     [numRegFields]textinput.Model
	focus      registerField
	submitting bool
	width      int
	height     int
}

func newRegisterModel(c *client.Client) registerModel {
	username := textinput.New()
	username.Placeholder = "username"
	username.Prompt = ""
	username.CharLimit = maxFieldLen
	username.Focus()

	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.Prompt = ""
	email.CharLimit = maxFieldLen

	password := textinput.New()
	password.Placeholder = "password"
	password.Prompt = ""
	password.CharLimit = maxFieldLen
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	m := registerModel{client: c}
	m.inputs[regFieldUsername] = username
	m.inputs[regFieldEmail] = email
	m.inputs[regFieldPassword] = password
	return m
}

func (m registerModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m registerModel) Update(msg tea.Msg) (registerModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case registerResultMsg:
		m.submitting = false
		if msg.err != nil {
			return m, errorToast(client.Message(msg.err, "failed to create account"))
		}
		resp := msg.resp
		return m, func() tea.Msg { return authSuccessMsg{resp: resp} }

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateInputs(msg)
}

func (m registerModel) handleKey(msg tea.KeyMsg) (registerModel, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		m.focus = (m.focus + 1) % numRegFields
		m.setFocus()
		return m, textinput.Blink

	case "shift+tab", "up":
		m.focus = (m.focus - 1 + numRegFields) % numRegFields
		m.setFocus()
		return m, textinput.Blink

	case "enter":
		if m.focus < numRegFields-1 {
			m.focus++
			m.setFocus()
			return m, textinput.Blink
		}
		return m.submit()

	case "ctrl+r":
		return m, func() tea.Msg { return showLoginMsg{} }
	}

	return m.updateInputs(msg)
}

func (m *registerModel) setFocus() {
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	m.inputs[m.focus].Focus()
}

func (m registerModel) updateInputs(msg tea.Msg) (registerModel, tea.Cmd) {
	var cmds []tea.Cmd
	for i := range m.inputs {
		var cmd tea.Cmd
		m.inputs[i], cmd = m.inputs[i].Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m registerModel) submit() (registerModel, tea.Cmd) {
	if m.submitting {
		return m, nil
	}
	username := strings.TrimSpace(m.inputs[regFieldUsername].Value())
	email := strings.TrimSpace(m.inputs[regFieldEmail].Value())
	password := m.inputs[regFieldPassword].Value()
	if username == "" || email == "" || password == "" {
		return m, errorToast("username, email and password are required")
	}

	m.submitting = true
	c := m.client
	return m, func() tea.Msg {
		resp, err := c.Register(context.Background(), username, email, password)
		return registerResultMsg{resp: resp, err: err}
	}
}

func (m registerModel) View() string {
	var b strings.Builder

	b.WriteString("\n " + sectionHeaderStyle.Render("── CREATE ACCOUNT ──") + "\n\n")

	labels := [numRegFields]string{"username:", "email:   ", "password:"}
	for i := registerField(0); i < numRegFields; i++ {
		cursor := " "
		label := metaStyle
		if i == m.focus {
			cursor = accentStyle.Render(">")
			label = inputPromptStyle
		}
		b.WriteString(" " + cursor + " " + label.Render(labels[i]) + " " + m.inputs[i].View() + "\n")
	}
	b.WriteString("\n")

	if m.submitting {
		b.WriteString(" " + dimStyle.Render("creating account...") + "\n")
	} else {
		b.WriteString(" " + dimStyle.Render("already registered? ctrl+r to sign in") + "\n")
	}

	return b.String()
}

func (m registerModel) helpKeys() string {
	return helpEntry("tab", "next") + "  " + helpEntry("enter", "register") + "  " + helpEntry("ctrl+r", "sign in") + "  " + helpEntry("ctrl+c", "quit")
}
