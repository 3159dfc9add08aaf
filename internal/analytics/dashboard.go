package analytics

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	dashTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#15202b")).
			Background(lipgloss.Color("#7aa2f7")).
			Padding(0, 1)

	dashHeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7aa2f7"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#56FF4E")).
			Render

	failureStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f23a74")).
			Render

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#6c6f85", Dark: "#565f89"}).
			Render
)

// RenderDashboard formats a report as a terminal dashboard.
func RenderDashboard(report *Report) string {
	var b strings.Builder

	b.WriteString(dashTitleStyle.Render(fmt.Sprintf("OAuth Analytics (%s)", report.Period)))
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("Events: %d   %s   %s\n\n",
		report.Total,
		successStyle(fmt.Sprintf("ok %d", report.Successes)),
		failureStyle(fmt.Sprintf("failed %d", report.Failures))))

	if len(report.Providers) > 0 {
		b.WriteString(dashHeaderStyle.Render("By provider"))
		b.WriteString("\n")
		for _, stats := range report.Providers {
			b.WriteString(fmt.Sprintf("  %-12s %4d events  %5.1f%% ok  avg %s\n",
				stats.Provider,
				stats.Total,
				stats.SuccessRate()*100,
				formatDuration(stats.AvgDuration)))
		}
		b.WriteString("\n")
	}

	if len(report.TopFailures) > 0 {
		b.WriteString(dashHeaderStyle.Render("Top failures"))
		b.WriteString("\n")
		for _, failure := range report.TopFailures {
			b.WriteString(fmt.Sprintf("  %3dx %s\n", failure.Count, failure.Error))
		}
		b.WriteString("\n")
	}

	b.WriteString(dimStyle("generated " + report.GeneratedAt.Format(time.RFC1123)))
	b.WriteString("\n")
	return b.String()
}

func formatDuration(d time.Duration) string {
	if d == 0 {
		return "-"
	}
	return d.Round(time.Millisecond).String()
}
