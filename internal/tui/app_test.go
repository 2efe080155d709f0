package tui

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/buildakash/taskdeck/internal/session"
	"github.com/buildakash/taskdeck/pkg/client"
	"github.com/buildakash/taskdeck/pkg/domain"
)

func newTestStore(t *testing.T) *session.Store {
	t.Helper()
	t.Setenv(session.EnvToken, "")
	store, err := session.NewStore(filepath.Join(t.TempDir(), "token"))
	if err != nil {
		t.Fatal(err)
	}
	return store
}

func newTestApp(t *testing.T, start StartView) App {
	t.Helper()
	a := NewApp(client.New("http://example.invalid", ""), newTestStore(t), start)
	a.width = 80
	a.height = 30
	return a
}

// signIn puts the app in the authenticated state without a network trip.
func signIn(a App) App {
	a.sess = session.Session{
		Token: "tok-test",
		User:  &domain.User{ID: "u1", Username: "akash", Email: "akash@example.com"},
	}
	return a
}

func TestAppBootsAnonymousToLogin(t *testing.T) {
	a := newTestApp(t, StartDashboard)
	if a.checking || a.authenticated() {
		t.Fatalf("expected anonymous boot with no stored token, got checking=%v sess=%+v", a.checking, a.sess)
	}
	if a.view != viewLogin {
		t.Errorf("expected viewLogin, got %d", a.view)
	}
}

func TestAppBootsCheckingWithStoredToken(t *testing.T) {
	store := newTestStore(t)
	if err := store.Save("tok-123"); err != nil {
		t.Fatal(err)
	}
	a := NewApp(client.New("http://example.invalid", ""), store, StartDashboard)
	if !a.checking {
		t.Error("expected session check with a stored token")
	}
	if a.authenticated() {
		t.Error("a token alone must not count as authenticated before the check")
	}
}

func TestAppStartLoginWithoutTokenShowsLogin(t *testing.T) {
	a := newTestApp(t, StartLogin)
	if a.view != viewLogin {
		t.Errorf("expected viewLogin with StartLogin and no token, got %d", a.view)
	}
}

func TestAppStartLoginWhileAuthenticatedLandsOnDashboard(t *testing.T) {
	store := newTestStore(t)
	if err := store.Save("tok-123"); err != nil {
		t.Fatal(err)
	}
	a := NewApp(client.New("http://example.invalid", ""), store, StartLogin)
	if !a.checking {
		t.Fatal("expected session check with a stored token")
	}

	user := &domain.User{ID: "u1", Username: "akash", Email: "akash@example.com"}
	model, _ := a.Update(sessionCheckedMsg{user: user})
	a = model.(App)
	if a.view != viewDashboard {
		t.Errorf("authenticated login start should land on dashboard, got %d", a.view)
	}
}

func TestAppGuardReturnsToRequestedView(t *testing.T) {
	a := newTestApp(t, StartTasks)
	if a.view != viewLogin {
		t.Fatalf("anonymous start should land on login, got %d", a.view)
	}

	resp := &client.AuthResponse{
		Token: "tok-456",
		User:  domain.User{ID: "u1", Username: "akash", Email: "akash@example.com"},
	}
	model, _ := a.Update(authSuccessMsg{resp: resp})
	a = model.(App)

	if !a.authenticated() {
		t.Fatal("expected an authenticated session after authSuccessMsg")
	}
	if a.view != viewTasks {
		t.Errorf("expected viewTasks after sign-in with StartTasks, got %d", a.view)
	}
	if a.sess.User == nil || a.sess.User.Username != "akash" {
		t.Errorf("expected session user from auth response, got %+v", a.sess.User)
	}

	if token := a.store.Load(); token != "tok-456" {
		t.Errorf("expected token persisted to store, got %q", token)
	}
}

func TestAppSignInSurvivesTokenSaveFailure(t *testing.T) {
	t.Setenv(session.EnvToken, "")
	// A regular file where the token directory should be makes Save fail.
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}
	store, err := session.NewStore(filepath.Join(blocker, "token"))
	if err != nil {
		t.Fatal(err)
	}
	a := NewApp(client.New("http://example.invalid", ""), store, StartTasks)
	a.width = 80
	a.height = 30

	resp := &client.AuthResponse{
		Token: "tok-456",
		User:  domain.User{ID: "u1", Username: "akash", Email: "akash@example.com"},
	}
	model, cmd := a.Update(authSuccessMsg{resp: resp})
	a = model.(App)

	if !a.authenticated() {
		t.Fatal("a failed token write must not block the in-memory session")
	}
	if a.view != viewTasks {
		t.Errorf("expected viewTasks despite the save failure, got %d", a.view)
	}

	warned := false
	for _, msg := range collectMsgs(cmd) {
		if show, ok := msg.(toastShowMsg); ok && show.level == toastError &&
			strings.Contains(show.text, "won't persist") {
			warned = true
		}
	}
	if !warned {
		t.Error("expected a persistence warning toast after the save failure")
	}
}

func TestAppStaleSessionFallsBackToLogin(t *testing.T) {
	store := newTestStore(t)
	if err := store.Save("stale"); err != nil {
		t.Fatal(err)
	}
	a := NewApp(client.New("http://example.invalid", ""), store, StartDashboard)
	a.width = 80
	a.height = 30

	model, _ := a.Update(sessionCheckedMsg{err: errors.New("401")})
	a = model.(App)

	if a.checking || a.authenticated() {
		t.Errorf("expected anonymous state after failed session check, got checking=%v sess=%+v", a.checking, a.sess)
	}
	if a.view != viewLogin {
		t.Errorf("expected viewLogin after failed session check, got %d", a.view)
	}
	if token := store.Load(); token != "" {
		t.Errorf("expected stored token cleared, got %q", token)
	}
}

func TestAppValidSessionLandsOnStartView(t *testing.T) {
	a := newTestApp(t, StartDashboard)
	a.checking = true

	user := &domain.User{ID: "u1", Username: "akash", Email: "akash@example.com"}
	model, _ := a.Update(sessionCheckedMsg{user: user})
	a = model.(App)

	if !a.authenticated() {
		t.Fatal("expected an authenticated session after a valid check")
	}
	if a.view != viewDashboard {
		t.Errorf("expected viewDashboard, got %d", a.view)
	}
}

func TestAppLogoutClearsEverything(t *testing.T) {
	a := newTestApp(t, StartDashboard)
	if err := a.store.Save("tok-789"); err != nil {
		t.Fatal(err)
	}
	a = signIn(a)
	a.view = viewDashboard

	model, _ := a.Update(tea.KeyMsg{Type: tea.KeyCtrlL})
	a = model.(App)

	if a.authenticated() {
		t.Error("expected session dropped after logout")
	}
	if a.sess.User != nil || a.sess.Token != "" {
		t.Errorf("expected session cleared after logout, got %+v", a.sess)
	}
	if a.view != viewLogin {
		t.Errorf("expected viewLogin after logout, got %d", a.view)
	}
	if token := a.store.Load(); token != "" {
		t.Errorf("expected stored token removed, got %q", token)
	}
}

func TestAppTabSwitching(t *testing.T) {
	a := newTestApp(t, StartDashboard)
	a = signIn(a)
	a.view = viewDashboard

	model, _ := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("2")})
	a = model.(App)
	if a.view != viewTasks {
		t.Fatalf("expected viewTasks after '2', got %d", a.view)
	}
	a.tasks.loading = false

	model, _ = a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("1")})
	a = model.(App)
	if a.view != viewDashboard {
		t.Errorf("expected viewDashboard after '1', got %d", a.view)
	}
}

func TestAppTabsRequireAuth(t *testing.T) {
	a := newTestApp(t, StartDashboard)
	if a.view != viewLogin {
		t.Fatal("precondition: anonymous app starts at login")
	}

	model, _ := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("2")})
	a = model.(App)
	if a.view != viewLogin {
		t.Errorf("anonymous '2' should stay on login, got view %d", a.view)
	}
}

func TestAppNewTaskFromDashboard(t *testing.T) {
	a := newTestApp(t, StartDashboard)
	a = signIn(a)
	a.view = viewDashboard

	model, _ := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	a = model.(App)
	if a.view != viewForm {
		t.Fatalf("expected viewForm after 'n', got %d", a.view)
	}
	if a.form.editing() {
		t.Error("expected create-mode form from dashboard 'n'")
	}
}

func TestAppOpenFormForEdit(t *testing.T) {
	a := newTestApp(t, StartDashboard)
	a = signIn(a)
	a.view = viewTasks

	model, _ := a.Update(openFormMsg{id: "t1"})
	a = model.(App)
	if a.view != viewForm {
		t.Fatalf("expected viewForm after openFormMsg, got %d", a.view)
	}
	if !a.form.editing() {
		t.Error("expected edit-mode form for a non-empty id")
	}
}

func TestAppEscFromFormReturnsToTasks(t *testing.T) {
	a := newTestApp(t, StartDashboard)
	a = signIn(a)
	a.view = viewForm
	a.form = newTaskFormModel(a.client, "")

	model, cmd := a.Update(tea.KeyMsg{Type: tea.KeyEsc})
	a = model.(App)
	if cmd == nil {
		t.Fatal("expected a command carrying backToTasksMsg")
	}
	msg := cmd()
	model, _ = a.Update(msg)
	a = model.(App)
	if a.view != viewTasks {
		t.Errorf("expected viewTasks after esc from form, got %d", a.view)
	}
}

func TestAppGlobalQuitOnQ(t *testing.T) {
	a := newTestApp(t, StartDashboard)
	a = signIn(a)
	a.view = viewDashboard

	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("expected quit command on 'q', got nil")
	}
}

func TestAppQNotFiredWhenEditing(t *testing.T) {
	a := newTestApp(t, StartDashboard)
	if a.view != viewLogin {
		t.Fatal("precondition: anonymous app starts at login")
	}

	model, _ := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	a = model.(App)
	if a.login.email.Value() != "q" {
		t.Errorf("expected 'q' typed into the email field, got %q", a.login.email.Value())
	}
}

func TestAppIsEditing(t *testing.T) {
	a := newTestApp(t, StartDashboard)

	a.view = viewLogin
	if !a.isEditing() {
		t.Error("login view should be editing")
	}
	a.view = viewForm
	if !a.isEditing() {
		t.Error("form view should be editing")
	}
	a.view = viewDashboard
	if a.isEditing() {
		t.Error("dashboard should not be editing")
	}
	a.view = viewTasks
	a.tasks.state = lsConfirmDelete
	if !a.isEditing() {
		t.Error("delete confirmation should be editing")
	}
	a.tasks.state = lsNormal
	if a.isEditing() {
		t.Error("task list in normal state should not be editing")
	}
}

func TestAppHelpOverlay(t *testing.T) {
	a := newTestApp(t, StartDashboard)
	a = signIn(a)
	a.view = viewDashboard

	model, _ := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")})
	a = model.(App)
	if !a.helpOpen {
		t.Fatal("expected help overlay open after '?'")
	}

	view := a.View()
	if !strings.Contains(view, "taskdeck login") {
		t.Errorf("expected command list in help overlay, got:\n%s", view)
	}

	model, _ = a.Update(tea.KeyMsg{Type: tea.KeyEsc})
	a = model.(App)
	if a.helpOpen {
		t.Error("expected help overlay closed after esc")
	}
}

func TestAppViewRendersTabBar(t *testing.T) {
	a := newTestApp(t, StartDashboard)
	a = signIn(a)
	a.view = viewDashboard
	model, _ := a.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	a = model.(App)

	view := a.View()
	if !strings.Contains(view, "Dashboard") {
		t.Errorf("expected 'Dashboard' tab in app view, got:\n%s", view)
	}
	if !strings.Contains(view, "Tasks") {
		t.Errorf("expected 'Tasks' tab in app view, got:\n%s", view)
	}
	if !strings.Contains(view, "akash") {
		t.Errorf("expected signed-in username in header, got:\n%s", view)
	}
}

func TestAppViewSwitchKeepsTerminalSize(t *testing.T) {
	a := newTestApp(t, StartDashboard)
	a = signIn(a)
	a.view = viewDashboard
	model, _ := a.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	a = model.(App)

	model, _ = a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("2")})
	a = model.(App)
	if a.tasks.width != 120 {
		t.Fatalf("tasks model width after switch = %d, want 120", a.tasks.width)
	}

	longTitle := strings.Repeat("x", 60)
	a.tasks.loading = false
	a.tasks.tasks = []domain.Task{{ID: "t1", Title: longTitle, Status: domain.StatusTodo}}
	if !strings.Contains(a.tasks.View(), longTitle) {
		t.Error("expected a 60-char title untruncated on a 120-wide terminal")
	}

	model, _ = a.Update(openFormMsg{id: "t1"})
	a = model.(App)
	if a.form.width != 120 {
		t.Errorf("form model width after openFormMsg = %d, want 120", a.form.width)
	}
}

func TestAppNoTabBarForAnonymous(t *testing.T) {
	a := newTestApp(t, StartDashboard)
	model, _ := a.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	a = model.(App)

	view := a.View()
	if strings.Contains(view, "Dashboard") {
		t.Errorf("expected no tab bar on login view, got:\n%s", view)
	}
}

func TestAppToastRouting(t *testing.T) {
	a := newTestApp(t, StartDashboard)
	a = signIn(a)
	a.view = viewDashboard

	model, _ := a.Update(toastShowMsg{level: toastSuccess, text: "saved"})
	a = model.(App)
	if !strings.Contains(a.View(), "saved") {
		t.Error("expected toast text in app view")
	}

	seq := a.toast.seq
	model, _ = a.Update(toastExpireMsg{seq: seq})
	a = model.(App)
	if strings.Contains(a.View(), "saved") {
		t.Error("expected toast cleared after expiry")
	}
}
