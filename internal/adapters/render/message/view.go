package message

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/Dylan-B-D/vps-manager-bot/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

const codeFence = "```"

// Render formats a presentation message for a terminal.
func Render(msg domain.Message) (string, error) {
	return run(func(s styles) string {
		return renderMessage(msg, s)
	})
}

type SessionsOptions struct {
	Now time.Time
	TTL time.Duration
}

// RenderSessions lists bindings with the share of their TTL still left.
func RenderSessions(records []domain.SessionRecord, opts SessionsOptions) (string, error) {
	return run(func(s styles) string {
		return renderSessions(records, opts, s)
	})
}

// RenderTargets lists configured hosts. Passwords are never printed; only
// where each one comes from.
func RenderTargets(targets []domain.Target) (string, error) {
	return run(func(s styles) string {
		return renderTargets(targets, s)
	})
}

func renderMessage(msg domain.Message, s styles) string {
	lines := make([]string, 0, 2+len(msg.Fields))
	if title := strings.TrimSpace(msg.Title); title != "" {
		lines = append(lines, s.title.Foreground(accent(msg.Color)).Render(title))
	}
	if msg.Description != "" {
		lines = append(lines, renderMarkup(msg.Description, s))
	}

	for _, field := range msg.Fields {
		block := lipgloss.JoinVertical(
			lipgloss.Left,
			s.fieldName.Render(field.Name),
			s.fieldValue.Render(strings.TrimRight(field.Value, "\n")),
		)
		lines = append(lines, s.section.Render(block))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// renderMarkup styles the small markdown subset used in descriptions: code
// fences and **bold** spans. Everything else is printed as is.
func renderMarkup(text string, s styles) string {
	var out []string
	inCode := false
	for _, line := range strings.Split(text, "\n") {
		for strings.Contains(line, codeFence) {
			before, after, _ := strings.Cut(line, codeFence)
			if before != "" {
				out = append(out, styleLine(before, inCode, s))
			}
			inCode = !inCode
			line = after
		}
		if line != "" || inCode {
			out = append(out, styleLine(line, inCode, s))
		}
	}

	return strings.Join(out, "\n")
}

func styleLine(line string, code bool, s styles) string {
	if code {
		return s.code.Render(line)
	}

	parts := strings.Split(line, "**")
	var b strings.Builder
	for i, part := range parts {
		if i%2 == 1 && i < len(parts)-1 {
			b.WriteString(s.strong.Render(part))
			continue
		}
		if i%2 == 1 {
			b.WriteString("**")
		}
		b.WriteString(s.body.Render(part))
	}

	return b.String()
}

func renderSessions(records []domain.SessionRecord, opts SessionsOptions, s styles) string {
	lines := []string{
		s.title.Render("Active sessions"),
		s.header.Render(fmt.Sprintf("sessions: %d", len(records))),
	}
	if len(records) == 0 {
		lines = append(lines, s.empty.Render("No VPS is logged in for any channel."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, record := range records {
		lines = append(lines, sessionLine(record, opts, s))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderTargets(targets []domain.Target, s styles) string {
	lines := []string{
		s.title.Render("Targets"),
		s.header.Render(fmt.Sprintf("targets: %d", len(targets))),
	}
	if len(targets) == 0 {
		lines = append(lines, s.empty.Render("No targets configured."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	nameWidth, addrWidth := 0, 0
	for _, target := range targets {
		nameWidth = max(nameWidth, lipgloss.Width(target.Name))
		addrWidth = max(addrWidth, lipgloss.Width(targetAddress(target)))
	}

	for _, target := range targets {
		lines = append(lines, lipgloss.JoinHorizontal(
			lipgloss.Top,
			s.key.Width(nameWidth+2).Render(target.Name),
			s.body.Width(addrWidth+2).Render(targetAddress(target)),
			s.header.Render(passwordSource(target)),
		))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func targetAddress(target domain.Target) string {
	return target.Username + "@" + target.Address()
}

func passwordSource(target domain.Target) string {
	switch {
	case target.Password != "":
		return "password: inline"
	case target.PasswordRef != "":
		return "password: " + target.PasswordRef
	default:
		return "password: none"
	}
}

func sessionLine(record domain.SessionRecord, opts SessionsOptions, s styles) string {
	label := s.key.Render(record.Key.String())
	target := s.body.Render(record.TargetName)
	if opts.Now.IsZero() || opts.TTL <= 0 {
		return lipgloss.JoinHorizontal(lipgloss.Top, label, " ", target)
	}

	left := opts.TTL - record.Age(opts.Now)
	leftPercent := clampPercent(100 * left.Seconds() / opts.TTL.Seconds())
	meta := lipgloss.NewStyle().Foreground(interpolateColor(leftPercent, 0, 100)).Render(formatRemaining(left))

	line := lipgloss.JoinHorizontal(lipgloss.Top, label, " ", target, " ", renderProgressBar(leftPercent, 20, s), " ", meta)
	if record.Expired(opts.Now, opts.TTL) {
		line += " " + s.warning.Render("[expired]")
	}

	return line
}

func formatRemaining(left time.Duration) string {
	if left <= 0 {
		return "expires at next sweep"
	}

	minutes := int(math.Ceil(left.Minutes()))
	suffix := "minutes"
	if minutes == 1 {
		suffix = "minute"
	}

	return fmt.Sprintf("%d %s left", minutes, suffix)
}

func renderProgressBar(fillPercent float64, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	filled := int(math.Round(float64(width) * clampPercent(fillPercent) / 100))
	if filled > width {
		filled = width
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		s.barFill.Render(strings.Repeat("=", filled)),
		s.barEmpty.Render(strings.Repeat("-", width-filled)),
		s.barBracket.Render("]"),
	)
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// interpolateColor maps value onto the 240..255 greyscale ramp.
func interpolateColor(value, min, max float64) lipgloss.Color {
	if max == min {
		return lipgloss.Color("255")
	}

	normalized := (value - min) / (max - min)
	if normalized < 0 {
		normalized = 0
	}
	if normalized > 1 {
		normalized = 1
	}

	return lipgloss.Color(fmt.Sprintf("%d", int(240+15*normalized)))
}
