package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/buildakash/taskdeck/internal/browser"
	"github.com/buildakash/taskdeck/internal/session"
	"github.com/buildakash/taskdeck/pkg/client"
	"github.com/buildakash/taskdeck/pkg/domain"
)

type view int

const (
	viewLogin view = iota
	viewRegister
	viewDashboard
	viewTasks
	viewForm
)

// StartView selects which screen the TUI lands on once the session is
// resolved. Anonymous users are routed through login first and then
// arrive at the requested screen.
type StartView int

const (
	StartDashboard StartView = iota
	StartTasks
	StartNew
	StartLogin
)

// sessionCheckedMsg carries the result of validating a stored token
// against the profile endpoint.
type sessionCheckedMsg struct {
	user *domain.User
	err  error
}

// App is the root Bubbletea model.
type App struct {
	client *client.Client
	store  *session.Store

	// checking is true while a stored token is being validated against
	// the backend; sess holds the resolved session once it succeeds.
	checking bool
	sess     session.Session

	view     view
	returnTo view // where to land after a successful sign-in

	login     loginModel
	register  registerModel
	dashboard dashboardModel
	tasks     tasksModel
	form      taskFormModel

	toast      toast
	spin       spinner.Model
	helpOpen   bool
	helpCursor int
	width      int
	height     int
}

// NewApp creates the root TUI model. The session store decides whether
// the app boots into the session check or straight to the login view.
func NewApp(c *client.Client, store *session.Store, start StartView) App {
	a := App{
		client:    c,
		store:     store,
		login:     newLoginModel(c),
		register:  newRegisterModel(c),
		dashboard: newDashboardModel(c),
		tasks:     newTasksModel(c, webAppURL),
		spin:      spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(accentStyle)),
	}

	switch start {
	case StartTasks:
		a.returnTo = viewTasks
	case StartNew:
		a.returnTo = viewForm
	default:
		a.returnTo = viewDashboard
	}

	token := store.Load()
	if token == "" {
		a.view = viewLogin
		return a
	}

	c.SetToken(token)
	a.sess.Token = token
	a.checking = true
	return a
}

// authenticated reports whether the app holds a verified session.
func (a App) authenticated() bool {
	return a.sess.Authenticated()
}

func (a App) Init() tea.Cmd {
	if a.checking {
		return tea.Batch(a.spin.Tick, a.checkSession())
	}
	return a.login.Init()
}

func (a App) checkSession() tea.Cmd {
	c := a.client
	return func() tea.Msg {
		user, err := c.Profile(context.Background())
		return sessionCheckedMsg{user: user, err: err}
	}
}

// bodySize is the terminal size minus the app chrome, replayed into any
// sub-model constructed after the initial WindowSizeMsg.
func (a *App) bodySize() tea.WindowSizeMsg {
	return tea.WindowSizeMsg{Width: a.width, Height: a.height - 5}
}

// enter switches the active view and returns its Init command.
func (a *App) enter(v view) tea.Cmd {
	a.view = v
	size := a.bodySize()
	switch v {
	case viewLogin:
		a.login = newLoginModel(a.client)
		a.login, _ = a.login.Update(size)
		return a.login.Init()
	case viewRegister:
		a.register = newRegisterModel(a.client)
		a.register, _ = a.register.Update(size)
		return a.register.Init()
	case viewDashboard:
		a.dashboard = newDashboardModel(a.client)
		a.dashboard, _ = a.dashboard.Update(size)
		return a.dashboard.Init()
	case viewTasks:
		a.tasks = newTasksModel(a.client, webAppURL)
		a.tasks, _ = a.tasks.Update(size)
		return a.tasks.Init()
	case viewForm:
		a.form = newTaskFormModel(a.client, "")
		a.form, _ = a.form.Update(size)
		return a.form.Init()
	}
	return nil
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Chrome: header(2) + tabs(1) + toast(1) + help(1) = 5 lines
		bodyMsg := tea.WindowSizeMsg{Width: msg.Width, Height: msg.Height - 5}
		a.login, _ = a.login.Update(bodyMsg)
		a.register, _ = a.register.Update(bodyMsg)
		a.dashboard, _ = a.dashboard.Update(bodyMsg)
		a.tasks, _ = a.tasks.Update(bodyMsg)
		a.form, _ = a.form.Update(bodyMsg)
		return a, nil

	case sessionCheckedMsg:
		a.checking = false
		if msg.err != nil || msg.user == nil {
			// Stored token is stale. Drop it and fall back to login.
			a.store.Clear() //nolint:errcheck // a stale file only repeats this path
			a.client.SetToken("")
			a.sess = session.Session{}
			return a, a.enter(viewLogin)
		}
		a.sess.User = msg.user
		return a, a.enter(a.returnTo)

	case authSuccessMsg:
		a.client.SetToken(msg.resp.Token)
		user := msg.resp.User
		a.sess = session.Session{Token: msg.resp.Token, User: &user}
		greet := successToast(fmt.Sprintf("signed in as %s", user.Username))
		if err := a.store.Save(msg.resp.Token); err != nil {
			// The backend session is live even when the token file is not
			// writable. Carry on in memory and warn about the next launch.
			greet = errorToast("signed in, but the session won't persist: " + err.Error())
		}
		return a, tea.Batch(greet, a.enter(a.returnTo))

	case showRegisterMsg:
		return a, a.enter(viewRegister)

	case showLoginMsg:
		return a, a.enter(viewLogin)

	case openFormMsg:
		a.form = newTaskFormModel(a.client, msg.id)
		a.form, _ = a.form.Update(a.bodySize())
		a.view = viewForm
		return a, a.form.Init()

	case backToTasksMsg:
		a.view = viewTasks
		if msg.refresh {
			a.tasks.loading = true
			return a, tea.Batch(a.tasks.spin.Tick, a.tasks.load())
		}
		return a, nil

	case toastShowMsg:
		return a, a.toast.show(msg)

	case toastExpireMsg:
		a.toast.expire(msg)
		return a, nil

	case spinner.TickMsg:
		if a.checking {
			var cmd tea.Cmd
			a.spin, cmd = a.spin.Update(msg)
			return a, cmd
		}

	case tea.KeyMsg:
		if newA, cmd, handled := a.handleGlobalKey(msg); handled {
			return newA, cmd
		}
	}

	return a.route(msg)
}

func (a App) handleGlobalKey(msg tea.KeyMsg) (App, tea.Cmd, bool) {
	if msg.String() == "ctrl+c" {
		return a, tea.Quit, true
	}

	if a.helpOpen {
		switch msg.String() {
		case "?", "esc", "q":
			a.helpOpen = false
		case "j", "down":
			if a.helpCursor < len(helpItems)-1 {
				a.helpCursor++
			}
		case "k", "up":
			if a.helpCursor > 0 {
				a.helpCursor--
			}
		case "enter":
			item := helpItems[a.helpCursor]
			if item.url != "" {
				browser.Open(item.url) //nolint:errcheck // best-effort browser open
			}
		}
		return a, nil, true
	}

	if a.authenticated() && msg.String() == "ctrl+l" {
		a.store.Clear() //nolint:errcheck // worst case the next boot re-checks
		a.client.SetToken("")
		a.sess = session.Session{}
		a.returnTo = viewDashboard
		return a, tea.Batch(successToast("signed out"), a.enter(viewLogin)), true
	}

	if a.isEditing() {
		if msg.String() == "esc" && a.view == viewForm {
			return a, func() tea.Msg { return backToTasksMsg{} }, true
		}
		return a, nil, false
	}

	switch msg.String() {
	case "?":
		a.helpOpen = true
		a.helpCursor = 0
		return a, nil, true
	case "q":
		return a, tea.Quit, true
	case "1":
		if a.authenticated() && a.view != viewDashboard {
			return a, a.enter(viewDashboard), true
		}
	case "2":
		if a.authenticated() && a.view != viewTasks {
			return a, a.enter(viewTasks), true
		}
	case "n":
		if a.authenticated() && a.view == viewDashboard {
			return a, a.enter(viewForm), true
		}
	}
	return a, nil, false
}

// isEditing reports whether the active view owns the keyboard, which
// suppresses single-letter global bindings.
func (a App) isEditing() bool {
	switch a.view {
	case viewLogin, viewRegister, viewForm:
		return true
	case viewTasks:
		return a.tasks.state == lsConfirmDelete
	}
	return false
}

// route forwards a message to the active view's Update.
func (a App) route(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.checking {
		return a, nil
	}

	var cmd tea.Cmd
	switch a.view {
	case viewLogin:
		a.login, cmd = a.login.Update(msg)
	case viewRegister:
		a.register, cmd = a.register.Update(msg)
	case viewDashboard:
		a.dashboard, cmd = a.dashboard.Update(msg)
	case viewTasks:
		a.tasks, cmd = a.tasks.Update(msg)
	case viewForm:
		a.form, cmd = a.form.Update(msg)
	}
	return a, cmd
}

func (a App) View() string {
	logo := renderLogo()
	logoPad := (a.width - lipgloss.Width(logo)) / 2
	if logoPad < 0 {
		logoPad = 0
	}
	header := strings.Repeat(" ", logoPad) + logo

	userLine := ""
	if u := a.sess.User; u != nil {
		userLine = metaStyle.Render(u.Username + " · " + u.Email)
	}
	if userLine != "" {
		pad := (a.width - lipgloss.Width(userLine)) / 2
		if pad < 0 {
			pad = 0
		}
		header += "\n" + strings.Repeat(" ", pad) + userLine
	} else {
		header += "\n"
	}

	tabBar := a.renderTabs()

	var body, help string
	switch {
	case a.checking:
		body = "\n " + a.spin.View() + dimStyle.Render(" checking session...")
		help = ""
	case a.view == viewLogin:
		body = a.login.View()
		help = " " + a.login.helpKeys()
	case a.view == viewRegister:
		body = a.register.View()
		help = " " + a.register.helpKeys()
	case a.view == viewDashboard:
		body = a.dashboard.View()
		help = " " + helpEntry("1/2", "tabs") + "  " + a.dashboard.helpKeys()
	case a.view == viewTasks:
		body = a.tasks.View()
		help = " " + helpEntry("1/2", "tabs") + "  " + a.tasks.helpKeys()
	case a.view == viewForm:
		body = a.form.View()
		help = " " + a.form.helpKeys()
	}

	if a.helpOpen {
		body = helpView(a.helpCursor)
		help = " " + helpEntry("j/k", "nav") + "  " + helpEntry("enter", "open") + "  " + helpEntry("esc", "close")
	}

	toastLine := " " + a.toast.View()

	chrome := 5
	body = strings.TrimRight(truncateToHeight(body, a.height-chrome), "\n")

	return fmt.Sprintf("%s\n%s\n%s\n%s\n%s", header, tabBar, body, toastLine, help)
}

func (a App) renderTabs() string {
	if !a.authenticated() || a.view == viewLogin || a.view == viewRegister {
		return ""
	}

	type tabEntry struct {
		key  string
		name string
		v    view
	}
	tabs := []tabEntry{
		{"1", "Dashboard", viewDashboard},
		{"2", "Tasks", viewTasks},
	}

	colWidth := a.width / len(tabs)
	var bar strings.Builder
	for _, t := range tabs {
		var label string
		active := t.v == a.view || (a.view == viewForm && t.v == viewTasks)
		if active {
			label = accentStyle.Render(t.key) + " " + selectedStyle.Underline(true).Render(t.name)
		} else {
			label = metaStyle.Render(t.key) + " " + dimStyle.Render(t.name)
		}
		labelWidth := lipgloss.Width(label)
		leftPad := (colWidth - labelWidth) / 2
		if leftPad < 0 {
			leftPad = 0
		}
		rightPad := colWidth - labelWidth - leftPad
		if rightPad < 0 {
			rightPad = 0
		}
		bar.WriteString(strings.Repeat(" ", leftPad) + label + strings.Repeat(" ", rightPad))
	}
	return bar.String()
}
