// Package ui holds the terminal styles shared by the CLI help and the setup
// wizard. ANSI colors are used so the user's theme decides the exact shade.
package ui

import "github.com/charmbracelet/lipgloss"

var (
	// TitleStyle marks section headings.
	TitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true).MarginBottom(1)

	UsageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))

	// DescStyle dims descriptions and hints.
	DescStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	FlagStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))

	// SelectedStyle highlights the active menu entry.
	SelectedStyle = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("5"))

	ItemStyle = lipgloss.NewStyle().PaddingLeft(2)

	ErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
)
