package tui

import "github.com/charmbracelet/lipgloss"

const (
	greyMid   = lipgloss.Color("#1b5d50")
	greyLight = lipgloss.Color("#1d6d60")
	white     = lipgloss.Color("#f1f1f1")
	black1    = lipgloss.Color("#050505")
	black2    = lipgloss.Color("#111111")
	redLight  = lipgloss.Color("#f52d37")
	redDark   = lipgloss.Color("#771e16")
	yellow    = lipgloss.Color("#ffd43b")
)

var (
	title   = lipgloss.NewStyle().Foreground(white).Bold(true)
	dim     = lipgloss.NewStyle().Foreground(greyLight)
	dimmer  = lipgloss.NewStyle().Foreground(greyMid)
	alert   = lipgloss.NewStyle().Foreground(redLight).Bold(true)
	success = lipgloss.NewStyle().Foreground(yellow).Bold(true)
	hint    = lipgloss.NewStyle().Foreground(white)
	struck  = lipgloss.NewStyle().Foreground(greyMid).Strikethrough(true)

	tileDark  = lipgloss.NewStyle().Background(black1)
	tileLight = lipgloss.NewStyle().Background(black2)
	tileHover = lipgloss.NewStyle().Background(redDark)
)
