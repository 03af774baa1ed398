package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/adtyap26/ddsgen/internal/config"
)

// Package tui contains the Bubble Tea wizard that collects deployment
// parameters, previews the resulting cluster and writes the node files.

// --- Styles ---

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	FocusedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	BlurredStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	CursorStyle  = FocusedStyle
	NoStyle      = lipgloss.NewStyle()

	HelpStyle = BlurredStyle

	// Role colors
	leaderColor  = lipgloss.Color("#00FF00") // Green
	replicaColor = lipgloss.Color("#FFFF00") // Yellow
	clientColor  = lipgloss.Color("#00AFFF") // Blue

	LeaderStyle  = lipgloss.NewStyle().Foreground(leaderColor)
	ReplicaStyle = lipgloss.NewStyle().Foreground(replicaColor)
	ClientStyle  = lipgloss.NewStyle().Foreground(clientColor)

	ErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5555"))
	SuccessStyle = lipgloss.NewStyle().Foreground(leaderColor)
	HeaderStyle  = lipgloss.NewStyle().Bold(true)

	NodeBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")). // Purple border
			Padding(0, 1).
			MarginRight(2).
			MarginBottom(1)
)

// RoleStyle returns the color used for a role everywhere it is shown.
func RoleStyle(role config.Role) lipgloss.Style {
	switch role {
	case config.Leader:
		return LeaderStyle
	case config.Replica:
		return ReplicaStyle
	default:
		return ClientStyle
	}
}
