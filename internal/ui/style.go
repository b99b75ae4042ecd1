package ui

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	primaryColor   = lipgloss.Color("#7D56F4") // Purple
	secondaryColor = lipgloss.Color("#04B575") // Green
	subtleColor    = lipgloss.Color("#6B6B6B") // Grey
	errorColor     = lipgloss.Color("#FF3333") // Red
	warnColor      = lipgloss.Color("#FFB000") // Amber

	// Text Styles
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginBottom(0)

	SubtitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(secondaryColor)

	InfoStyle = lipgloss.NewStyle().
			Foreground(secondaryColor).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(secondaryColor)

	HelpPanelStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(subtleColor)

	DescriptionStyle = lipgloss.NewStyle().
				Foreground(subtleColor).
				Italic(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(warnColor)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)

	// List Styles
	SelectedItemStyle = lipgloss.NewStyle().
				PaddingLeft(2).
				Foreground(lipgloss.Color("205")).
				Bold(true)

	ItemStyle = lipgloss.NewStyle().
			PaddingLeft(2)

	// Focus frame around the active form section
	FocusedStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(primaryColor).
			PaddingLeft(1)

	BlurredStyle = lipgloss.NewStyle().
			PaddingLeft(2)
)
