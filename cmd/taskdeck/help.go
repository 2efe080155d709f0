package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/buildakash/taskdeck/internal/tui"
)

func printHelp() {
	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#4ade80")).
		Bold(true).
		Render("T A S K D E C K")

	tagline := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Italic(true).
		Render("Your tasks, in the terminal.")

	cmdStyle := lipgloss.NewStyle().Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	fmt.Printf("\n  %s\n\n  %s\n\n  Commands:\n", title, tagline)
	for _, c := range tui.Commands {
		fmt.Printf("    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-20s", c.Name)), descStyle.Render(c.Desc))
	}
	url := lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Render("https://taskdeck.app")
	fmt.Printf("\n  %s\n\n", url)
}
