// Package ui renders statusctl output with lipgloss.
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/MrSnakeDoc/statuspage/internal/domain"
)

// Badge colors per status. Unknown values fall back to gray.
var statusColors = map[domain.Status]string{
	domain.StatusOperational:         "#22c55e",
	domain.StatusDegradedPerformance: "#eab308",
	domain.StatusPartialOutage:       "#f97316",
	domain.StatusMajorOutage:         "#ef4444",
}

const fallbackColor = "#6b7280"

var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#DC2626")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#CA8A04"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#16A34A"))
	hintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280")).Italic(true)
	boldStyle    = lipgloss.NewStyle().Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF"))
	titleStyle   = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	badgeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Bold(true).Padding(0, 1)
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#374151"))
)

// BadgeColor returns the hex color used for status.
func BadgeColor(status domain.Status) string {
	if c, ok := statusColors[status]; ok {
		return c
	}
	return fallbackColor
}

// StatusBadge renders status as a colored pill.
func StatusBadge(status domain.Status) string {
	return badgeStyle.Background(lipgloss.Color(BadgeColor(status))).Render(status.String())
}

// StatusPage renders the public view. A fetch error is shown inline and is
// never confused with an empty list.
func StatusPage(services []domain.Service, fetchErr error) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Service Status"))
	b.WriteString("\n")

	switch {
	case fetchErr != nil:
		b.WriteString(errorStyle.Render(fetchErr.Error()))
		b.WriteString("\n")
	case len(services) == 0:
		b.WriteString(dimStyle.Render("No services found."))
		b.WriteString("\n")
	default:
		width := 0
		for _, s := range services {
			width = max(width, lipgloss.Width(s.Name))
		}
		for _, s := range services {
			b.WriteString(fmt.Sprintf("%s  %s\n", boldStyle.Render(pad(s.Name, width)), StatusBadge(s.Status)))
			if s.Description != "" {
				b.WriteString("  " + dimStyle.Render(s.Description) + "\n")
			}
		}
	}
	return b.String()
}

// ServiceTable renders the admin list with ids so they can be passed to
// edit and delete.
func ServiceTable(services []domain.Service) string {
	if len(services) == 0 {
		return dimStyle.Render("No services found.") + "\n"
	}

	rows := [][]string{{"ID", "NAME", "DESCRIPTION", "STATUS"}}
	for _, s := range services {
		rows = append(rows, []string{s.ID, s.Name, s.Description, ""})
	}

	widths := make([]int, 3)
	for _, r := range rows {
		for i := 0; i < 3; i++ {
			widths[i] = max(widths[i], lipgloss.Width(r[i]))
		}
	}

	var b strings.Builder
	for i, r := range rows {
		cells := []string{pad(r[0], widths[0]), pad(r[1], widths[1]), pad(r[2], widths[2])}
		if i == 0 {
			b.WriteString(headerStyle.Render(strings.Join(append(cells, r[3]), "  ")) + "\n")
			continue
		}
		b.WriteString(strings.Join(append(cells, StatusBadge(services[i-1].Status)), "  ") + "\n")
	}
	return b.String()
}

// ServiceDetail renders one service.
func ServiceDetail(s *domain.Service) string {
	var b strings.Builder
	b.WriteString(boldStyle.Render(s.Name) + "  " + StatusBadge(s.Status) + "\n")
	if s.Description != "" {
		b.WriteString(s.Description + "\n")
	}
	b.WriteString(dimStyle.Render(fmt.Sprintf("id %s, created %s", s.ID, s.CreatedAt.Format("2006-01-02 15:04 MST"))) + "\n")
	return b.String()
}

// FormatError returns a styled multi-line error message.
func FormatError(title, detail, suggestion string) string {
	out := errorStyle.Render("Error: "+title) + "\n"
	if detail != "" {
		out += "  " + detail + "\n"
	}
	if suggestion != "" {
		out += "  " + hintStyle.Render("Hint: "+suggestion) + "\n"
	}
	return out
}

// Success prints a green success message.
func Success(w io.Writer, msg string) {
	fmt.Fprintln(w, successStyle.Render(msg))
}

// Warn prints a yellow warning message.
func Warn(w io.Writer, msg string) {
	fmt.Fprintln(w, warnStyle.Render("Warning: "+msg))
}

// Hint renders text in dim italic.
func Hint(s string) string {
	return hintStyle.Render(s)
}

func pad(s string, width int) string {
	if gap := width - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}
