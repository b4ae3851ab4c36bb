package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/lumen/internal/hue"
	"github.com/five82/lumen/internal/state"
)

const (
	barWidth     = 20
	minNameWidth = 12
	maxNameWidth = 32
)

// renderMain renders the header, the light list and the footer.
func (m Model) renderMain() string {
	snap := m.store.Snapshot()

	header := m.renderHeader(snap)
	footer := m.renderFooter()

	bodyHeight := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	body := lipgloss.NewStyle().
		Width(m.width).
		Height(bodyHeight).
		Padding(1, 2, 0, 2).
		Render(m.renderBody(snap, bodyHeight-1))

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

// renderHeader renders the top bar: logo, bridge host and pairing state.
func (m Model) renderHeader(snap state.Snapshot) string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.Surface)

	parts := []string{bg.Render("lumen", styles.Logo)}
	if m.host != "" {
		parts = append(parts, bg.Render(m.host, styles.MutedText))
	}

	switch {
	case m.pairing:
		parts = append(parts, bg.Render(m.spinner.View()+" pairing", styles.WarningText))
	case m.bridge.Paired():
		parts = append(parts, bg.Render("paired", styles.SuccessText))
	default:
		parts = append(parts, bg.Render("not paired", styles.DangerText))
	}

	if snap.IsOffline() {
		parts = append(parts, bg.Render("OFFLINE", styles.DangerText))
	} else if !snap.LastUpdated.IsZero() {
		parts = append(parts, bg.Render("updated "+snap.LastUpdated.Format("15:04:05"), styles.FaintText))
	}

	return styles.Header.Width(m.width).Render(bg.Join(parts, "  "))
}

// renderBody renders the state-dependent center of the screen.
func (m Model) renderBody(snap state.Snapshot, height int) string {
	styles := m.theme.Styles()

	switch {
	case snap.Loading && len(snap.Lights) == 0:
		return styles.MutedText.Render(m.spinner.View() + " Loading lights…")

	case snap.LastError != nil && len(snap.Lights) == 0:
		lines := []string{
			styles.DangerText.Render("Could not load lights"),
			styles.FaintText.Render(truncate(snap.LastError.Error(), max(m.width-6, 20))),
			"",
			styles.MutedText.Render("Press r to retry"),
		}
		return strings.Join(lines, "\n")

	case !m.bridge.Paired():
		return styles.MutedText.Render("Press p, then the link button on the bridge, to pair.")
	}

	lights := snap.Visible(m.prefs.ShowOffline)
	if len(lights) == 0 {
		msg := "No lights found"
		if hidden := len(snap.Lights); hidden > 0 {
			msg = fmt.Sprintf("No reachable lights (%d hidden, press o to show)", hidden)
		}
		return styles.MutedText.Render(msg)
	}

	nameWidth := minNameWidth
	for _, l := range lights {
		nameWidth = max(nameWidth, lipgloss.Width(l.Name))
	}
	nameWidth = min(nameWidth, maxNameWidth)

	// Keep the selected row on screen.
	start := 0
	if height > 0 && m.selectedRow >= height {
		start = m.selectedRow - height + 1
	}
	end := len(lights)
	if height > 0 {
		end = min(end, start+height)
	}

	rows := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		rows = append(rows, m.renderRow(lights[i], nameWidth, i == m.selectedRow))
	}
	return strings.Join(rows, "\n")
}

// renderRow renders one light: cursor, name, brightness bar and percentage.
func (m Model) renderRow(l hue.Light, nameWidth int, selected bool) string {
	styles := m.theme.Styles()

	cursor := "  "
	if selected {
		cursor = styles.AccentText.Render("▸ ")
	}

	nameStyle := styles.Text
	if !l.Reachable {
		nameStyle = styles.FaintText
	}
	if selected {
		nameStyle = styles.Selected.Bold(true)
	}
	name := nameStyle.Width(nameWidth).Render(truncate(l.Name, nameWidth))

	level := l.Brightness
	if !l.On {
		level = 0
	}

	var suffix string
	switch {
	case !l.Reachable:
		suffix = styles.FaintText.Render("unreachable")
	case !l.On || level == 0:
		suffix = styles.MutedText.Render("off")
	default:
		suffix = styles.Text.Render(fmt.Sprintf("%3d%%", percent(level)))
	}

	return cursor + name + "  " + m.renderBar(level, l.Reachable) + "  " + suffix
}

// renderBar draws a fixed-width brightness bar.
func (m Model) renderBar(level int, reachable bool) string {
	styles := m.theme.Styles()
	filled := barCells(level)

	fill := styles.BarFill
	if !reachable {
		fill = styles.BarEmpty
	}
	return fill.Render(strings.Repeat("█", filled)) +
		styles.BarEmpty.Render(strings.Repeat("░", barWidth-filled))
}

// renderFooter renders the status line over the short key help.
func (m Model) renderFooter() string {
	styles := m.theme.Styles()

	var status string
	if m.status != "" {
		style := styles.MutedText
		if m.statusError {
			style = styles.WarningText
		}
		status = style.Render(truncate(m.status, max(m.width-2, 10)))
	}

	bindings := m.keys.ShortHelp()
	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, styles.AccentText.Render(h.Key)+" "+styles.FaintText.Render(h.Desc))
	}

	return styles.Footer.Width(m.width).Render(status + "\n" + strings.Join(hints, "  "))
}

func percent(level int) int {
	level = hue.ClampBrightness(level)
	return (level*100 + hue.MaxBrightness/2) / hue.MaxBrightness
}

func barCells(level int) int {
	level = hue.ClampBrightness(level)
	cells := (level*barWidth + hue.MaxBrightness/2) / hue.MaxBrightness
	if level > 0 && cells == 0 {
		cells = 1
	}
	return cells
}
