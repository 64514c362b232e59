package tui

import "github.com/charmbracelet/lipgloss"

// Colors
var (
	ColorPrimary = lipgloss.Color("#FF9933")
	ColorAccent  = lipgloss.Color("#138808")
	ColorSuccess = lipgloss.Color("#2ECC71")
	ColorDanger  = lipgloss.Color("#E74C3C")
	ColorInfo    = lipgloss.Color("#3498DB")
	ColorMuted   = lipgloss.Color("#7F8C8D")
	ColorBorder  = lipgloss.Color("#44475A")
)

// Base styles
var (
	TitleStyle        = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)
	SubtitleStyle     = lipgloss.NewStyle().Foreground(ColorMuted).Italic(true)
	StatusBarStyle    = lipgloss.NewStyle().Foreground(ColorMuted).PaddingTop(1)
	StatusKeyStyle    = lipgloss.NewStyle().Foreground(ColorInfo).Bold(true)
	BorderStyle       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(ColorBorder).Padding(0, 1)
	ActiveBorderStyle = BorderStyle.BorderForeground(ColorAccent)
	ErrorStyle        = lipgloss.NewStyle().Foreground(ColorDanger).Bold(true)
)

// Form and table styles
var (
	LabelStyle        = lipgloss.NewStyle().Width(24).Foreground(ColorMuted)
	FocusedLabelStyle = LabelStyle.Foreground(ColorPrimary).Bold(true)
	ValueStyle        = lipgloss.NewStyle().Width(16).Align(lipgloss.Right)
	TableHeaderStyle  = lipgloss.NewStyle().Bold(true).Foreground(ColorInfo)
	PositiveStyle     = lipgloss.NewStyle().Foreground(ColorSuccess)
	RecommendStyle    = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)
)
