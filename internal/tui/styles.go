package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary = lipgloss.Color("62")  // Purple
	colorMuted   = lipgloss.Color("241") // Gray
	colorAccent  = lipgloss.Color("212") // Pink
	colorWarn    = lipgloss.Color("214") // Amber
	colorError   = lipgloss.Color("203") // Red
)

var titleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255")).
	Background(colorPrimary).
	Padding(0, 1)

var subtitleStyle = lipgloss.NewStyle().
	Foreground(colorAccent).
	MarginBottom(1)

var sidebarStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorMuted).
	Padding(0, 1).
	MarginRight(1)

var sidebarTitleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(colorAccent)

var buttonStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Background(lipgloss.Color("236")).
	Padding(0, 1)

var headingStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(colorAccent).
	MarginTop(1)

var warnStyle = lipgloss.NewStyle().
	Foreground(colorWarn).
	Bold(true)

var errorStyle = lipgloss.NewStyle().
	Foreground(colorError)

var helpStyle = lipgloss.NewStyle().
	Foreground(colorMuted)
