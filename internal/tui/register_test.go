package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/buildakash/taskdeck/pkg/client"
	"github.com/buildakash/taskdeck/pkg/domain"
)

func newTestRegisterModel() registerModel {
	m := newRegisterModel(client.New("http://example.invalid", ""))
	m.width = 80
	m.height = 30
	return m
}

func TestRegisterFocusCycles(t *testing.T) {
	m := newTestRegisterModel()

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.focus != 0 {
		t.Errorf("expected focus wrapped to username, got %d", m.focus)
	}
}

func TestRegisterRequiresAllFields(t *testing.T) {
	m := newTestRegisterModel()
	m.inputs[0].SetValue("akash")
	m.inputs[1].SetValue("a@example.com")
	// Password empty.
	m.focus = numRegFields - 1

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.submitting {
		t.Error("expected submitting=false when a field is empty")
	}
	if cmd == nil {
		t.Fatal("expected an error toast command")
	}
	if msg, ok := cmd().(toastShowMsg); !ok || msg.level != toastError {
		t.Errorf("expected error toast, got %#v", cmd())
	}
}

func TestRegisterFailureResetsSubmitting(t *testing.T) {
	m := newTestRegisterModel()
	m.submitting = true

	m, cmd := m.Update(registerResultMsg{err: errors.New("409")})
	if m.submitting {
		t.Error("expected submitting=false after failed registration")
	}
	if cmd == nil {
		t.Error("expected an error toast command")
	}
}

func TestRegisterSuccessEmitsAuthSuccess(t *testing.T) {
	m := newTestRegisterModel()
	m.submitting = true

	resp := &client.AuthResponse{
		Token: "tok",
		User:  domain.User{ID: "u1", Username: "akash"},
	}
	_, cmd := m.Update(registerResultMsg{resp: resp})
	if cmd == nil {
		t.Fatal("expected a command after successful registration")
	}
	if _, ok := cmd().(authSuccessMsg); !ok {
		t.Errorf("expected authSuccessMsg, got %T", cmd())
	}
}

func TestRegisterCtrlRSwitchesToLogin(t *testing.T) {
	m := newTestRegisterModel()
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	if cmd == nil {
		t.Fatal("expected a command from ctrl+r")
	}
	if _, ok := cmd().(showLoginMsg); !ok {
		t.Errorf("expected showLoginMsg, got %T", cmd())
	}
}

func TestRegisterView(t *testing.T) {
	m := newTestRegisterModel()
	if !strings.Contains(m.View(), "CREATE ACCOUNT") {
		t.Errorf("expected CREATE ACCOUNT header, got:\n%s", m.View())
	}
}
