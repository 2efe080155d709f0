package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/buildakash/taskdeck/internal/config"
	"github.com/buildakash/taskdeck/internal/session"
	"github.com/buildakash/taskdeck/internal/tui"
	"github.com/buildakash/taskdeck/pkg/client"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	store, err := session.NewStore("")
	if err != nil {
		return err
	}
	c := client.NewWithTimeout(cfg.APIURL, "", cfg.Timeout)

	verb := ""
	if len(os.Args) > 1 {
		verb = os.Args[1]
	}

	switch verb {
	case "--version", "version", "-v":
		fmt.Println("taskdeck " + version)
		return nil
	case "help", "--help", "-h":
		printHelp()
		return nil
	case "logout":
		return runLogout(store)
	case "whoami":
		return runWhoami(c, store)
	}

	start, ok := resolveStart(verb)
	if !ok {
		printHelp()
		return fmt.Errorf("unknown command %q", verb)
	}
	return launchTUI(c, store, start)
}

// resolveStart maps a CLI verb to the screen the TUI opens on.
func resolveStart(verb string) (tui.StartView, bool) {
	switch verb {
	case "", "dashboard":
		return tui.StartDashboard, true
	case "tasks":
		return tui.StartTasks, true
	case "new":
		return tui.StartNew, true
	case "login":
		return tui.StartLogin, true
	}
	return tui.StartDashboard, false
}

func launchTUI(c *client.Client, store *session.Store, start tui.StartView) error {
	app := tui.NewApp(c, store, start)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

func runLogout(store *session.Store) error {
	if _, err := os.Stat(store.Path()); os.IsNotExist(err) {
		fmt.Println("Already logged out.")
		return nil
	}
	if err := store.Clear(); err != nil {
		return err
	}
	fmt.Println("Logged out.")
	return nil
}

func runWhoami(c *client.Client, store *session.Store) error {
	token := store.Load()
	if token == "" {
		fmt.Println("Not signed in. Run 'taskdeck login'.")
		return nil
	}
	c.SetToken(token)
	user, err := c.Profile(context.Background())
	if err != nil {
		if client.IsStatus(err, 401) {
			fmt.Println("Session expired. Run 'taskdeck login'.")
			return nil
		}
		return fmt.Errorf("fetch profile: %w", err)
	}
	fmt.Printf("%s <%s>\n", user.Username, user.Email)
	return nil
}
