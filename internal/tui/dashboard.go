package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/buildakash/taskdeck/pkg/client"
	"github.com/buildakash/taskdeck/pkg/domain"
)

type statsLoadedMsg struct {
	stats *domain.TaskStats
	err   error
}

type dashboardModel struct {
	client  *client.Client
	stats   domain.TaskStats // zero counts until a fetch succeeds
	loading bool
	spin    spinner.Model
	width   int
	height  int
}

func newDashboardModel(c *client.Client) dashboardModel {
	sp := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(accentStyle))
	return dashboardModel{client: c, spin: sp, loading: true}
}

func (m dashboardModel) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.load())
}

func (m dashboardModel) load() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		stats, err := c.TaskStats(context.Background())
		return statsLoadedMsg{stats: stats, err: err}
	}
}

func (m dashboardModel) Update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case statsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			// Counters stay at zero; no retry.
			return m, errorToast("failed to fetch task statistics")
		}
		m.stats = *msg.stats
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if msg.String() == "r" {
			m.loading = true
			return m, tea.Batch(m.spin.Tick, m.load())
		}
	}
	return m, nil
}

func (m dashboardModel) View() string {
	var b strings.Builder

	b.WriteString("\n " + sectionHeaderStyle.Render("── DASHBOARD ──") + "\n\n")

	if m.loading {
		b.WriteString(" " + m.spin.View() + dimStyle.Render(" loading stats...") + "\n")
		return b.String()
	}

	cards := []string{
		statCard("In Progress", m.stats.InProgress, statInProgressStyle),
		statCard("Overdue", m.stats.Overdue, statOverdueStyle),
		statCard("Done", m.stats.Done, statDoneStyle),
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, cards...)
	b.WriteString(lipgloss.NewStyle().MarginLeft(1).Render(row) + "\n")

	return b.String()
}

// statCard renders one bordered counter block.
func statCard(label string, count int, style lipgloss.Style) string {
	body := style.Render(fmt.Sprintf("%d", count)) + "\n" + dimStyle.Render(label)
	return statCardStyle.Render(lipgloss.NewStyle().Width(14).Align(lipgloss.Center).Render(body))
}

func (m dashboardModel) helpKeys() string {
	return helpEntry("r", "refresh") + "  " + helpEntry("2", "tasks") + "  " + helpEntry("n", "new task") + "  " + helpEntry("?", "help") + "  " + helpEntry("q", "quit")
}
