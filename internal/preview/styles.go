package preview

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	colorWhite     = lipgloss.Color("#FFFFFF")
	colorLightGray = lipgloss.Color("#CCCCCC")
	colorGray      = lipgloss.Color("#888888")
	colorDarkGray  = lipgloss.Color("#444444")
	colorGold      = lipgloss.Color("#C9A227")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorGold).
			MarginTop(1).
			MarginBottom(1)

	dayStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWhite)

	lockedDayStyle = lipgloss.NewStyle().
			Foreground(colorDarkGray).
			PaddingLeft(2)

	infoStyle = lipgloss.NewStyle().
			Foreground(colorGray).
			Italic(true)

	paywallStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(colorGold).
			Foreground(colorLightGray).
			Padding(0, 1).
			MarginTop(1)
)

const lockBadge = "[🔒 LOCKED]"
