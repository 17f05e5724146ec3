package tui

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/ebenmoss/remedy/internal/metrics"
)

// completionRamp colors the completion gauge from cold to done.
var completionRamp = []string{"#5A56E0", "#7D79F0", "#2BD671"}

// costRamp colors the completed-cost gauge.
var costRamp = []string{"#8A6FDF", "#C96FC1", "#F2A65A"}

// renderMetricsHeader renders the aggregate board figures as one header
// block: counts, completion and cost gauges, rating impact, overdue.
func (m Model) renderMetricsHeader(summary metrics.Summary, accent, muted, dim color.Color, width int) string {
	if width < 40 {
		width = 40
	}
	labelStyle := lipgloss.NewStyle().Foreground(muted)
	valueStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
	alertStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203"))

	counts := fmt.Sprintf("%s %d  %s %d  %s %d",
		labelStyle.Render("active"), summary.Active,
		labelStyle.Render("waiting"), summary.Waiting,
		labelStyle.Render("done"), summary.Completed,
	)
	overdue := labelStyle.Render("overdue") + " " + valueStyle.Render(fmt.Sprintf("%d", summary.Overdue))
	if summary.Overdue > 0 {
		overdue = labelStyle.Render("overdue") + " " + alertStyle.Render(fmt.Sprintf("%d", summary.Overdue))
	}

	gaugeWidth := clamp((width-28)/2, 10, 32)
	dialStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(gradientColorAt(completionRamp, summary.CompletionRate)))
	completion := fmt.Sprintf("%s %s %s %s",
		labelStyle.Render("done"),
		dialStyle.Render(completionDial(summary.CompletionRate)),
		gauge(summary.CompletionRate, gaugeWidth, completionRamp),
		valueStyle.Render(fmt.Sprintf("%3.0f%%", summary.CompletionRate*100)),
	)
	costShare := 0.0
	if summary.TotalCost > 0 {
		costShare = summary.CompletedCost / summary.TotalCost
	}
	cost := fmt.Sprintf("%s %s %s",
		labelStyle.Render("cost"),
		gauge(costShare, gaugeWidth, costRamp),
		valueStyle.Render(fmt.Sprintf("%.0f/%.0f", summary.CompletedCost, summary.TotalCost)),
	)
	rating := labelStyle.Render("rating impact") + " " + valueStyle.Render(fmt.Sprintf("+%.2f", summary.RatingBump))

	line1 := counts + "    " + overdue
	line2 := completion + "   " + cost + "   " + rating
	return line1 + "\n" + lipgloss.NewStyle().Foreground(dim).Render("") + line2
}

// completionDial maps a ratio to a quarter-step circle glyph.
func completionDial(ratio float64) string {
	switch {
	case ratio >= 1:
		return "●"
	case ratio >= 0.75:
		return "◕"
	case ratio >= 0.5:
		return "◑"
	case ratio >= 0.25:
		return "◔"
	default:
		return "○"
	}
}

// gauge renders a filled ratio bar with a gradient ramp over the filled
// portion and dim cells for the rest.
func gauge(ratio float64, width int, ramp []string) string {
	if width <= 0 {
		return ""
	}
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	filled := int(math.Round(ratio * float64(width)))
	var b strings.Builder
	emptyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	for col := 0; col < width; col++ {
		if col < filled {
			t := 0.0
			if width > 1 {
				t = float64(col) / float64(width-1)
			}
			b.WriteString(
				lipgloss.NewStyle().
					Foreground(lipgloss.Color(gradientColorAt(ramp, t))).
					Render("█"),
			)
			continue
		}
		b.WriteString(emptyStyle.Render("░"))
	}
	return b.String()
}

// gradientColorAt returns one interpolated hex color at t in [0,1] across the given stops.
func gradientColorAt(stops []string, t float64) string {
	if len(stops) == 0 {
		return "#000000"
	}
	if len(stops) == 1 {
		return normalizeHex(stops[0])
	}
	if t <= 0 {
		return normalizeHex(stops[0])
	}
	if t >= 1 {
		return normalizeHex(stops[len(stops)-1])
	}
	segments := len(stops) - 1
	position := t * float64(segments)
	index := int(math.Floor(position))
	localT := position - float64(index)
	if index >= segments {
		return normalizeHex(stops[len(stops)-1])
	}
	r1, g1, b1 := parseHexColor(stops[index])
	r2, g2, b2 := parseHexColor(stops[index+1])
	r := int(math.Round(float64(r1) + (float64(r2-r1) * localT)))
	g := int(math.Round(float64(g1) + (float64(g2-g1) * localT)))
	b := int(math.Round(float64(b1) + (float64(b2-b1) * localT)))
	return fmt.Sprintf("#%02X%02X%02X", clamp(r, 0, 255), clamp(g, 0, 255), clamp(b, 0, 255))
}

// normalizeHex returns one normalized #RRGGBB value for the provided color string.
func normalizeHex(hex string) string {
	r, g, b := parseHexColor(hex)
	return fmt.Sprintf("#%02X%02X%02X", r, g, b)
}

// parseHexColor parses #RRGGBB (or RRGGBB) to RGB ints and falls back to gray on invalid input.
func parseHexColor(hex string) (int, int, int) {
	s := strings.TrimSpace(strings.TrimPrefix(hex, "#"))
	if len(s) != 6 {
		return 128, 128, 128
	}
	var r, g, b int
	if _, err := fmt.Sscanf(strings.ToUpper(s), "%02X%02X%02X", &r, &g, &b); err != nil {
		return 128, 128, 128
	}
	return clamp(r, 0, 255), clamp(g, 0, 255), clamp(b, 0, 255)
}
