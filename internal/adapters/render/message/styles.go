package message

import (
	"github.com/Dylan-B-D/vps-manager-bot/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	title      lipgloss.Style
	body       lipgloss.Style
	strong     lipgloss.Style
	code       lipgloss.Style
	fieldName  lipgloss.Style
	fieldValue lipgloss.Style
	section    lipgloss.Style
	header     lipgloss.Style
	key        lipgloss.Style
	empty      lipgloss.Style
	warning    lipgloss.Style
	barBracket lipgloss.Style
	barFill    lipgloss.Style
	barEmpty   lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:      lipgloss.NewStyle().Bold(true),
		body:       lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		strong:     lipgloss.NewStyle().Bold(true),
		code:       lipgloss.NewStyle().Foreground(lipgloss.Color("159")),
		fieldName:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("250")),
		fieldValue: lipgloss.NewStyle().Foreground(lipgloss.Color("252")).PaddingLeft(2),
		section:    lipgloss.NewStyle().MarginTop(1),
		header:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		key:        lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		empty:      lipgloss.NewStyle().Faint(true),
		warning:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		barBracket: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		barFill:    lipgloss.NewStyle().Foreground(lipgloss.Color("159")),
		barEmpty:   lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	}
}

func accent(color domain.Color) lipgloss.Color {
	switch color {
	case domain.ColorGreen:
		return lipgloss.Color("42")
	case domain.ColorRed:
		return lipgloss.Color("203")
	default:
		return lipgloss.Color("39")
	}
}
