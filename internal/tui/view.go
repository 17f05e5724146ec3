package tui

import (
	"fmt"
	"image/color"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/ebenmoss/remedy/internal/board"
	"github.com/ebenmoss/remedy/internal/domain"
	"github.com/ebenmoss/remedy/internal/metrics"
)

// detailPanelWidth is the rendered width of the detail editor panel.
const detailPanelWidth = 44

// columnTitles maps statuses to their board headings.
var columnTitles = map[domain.Status]string{
	domain.StatusActive:    "Active",
	domain.StatusWaiting:   "Waiting",
	domain.StatusCompleted: "Completed",
}

// View handles view.
func (m Model) View() tea.View {
	if m.err != nil {
		v := tea.NewView("error: " + m.err.Error() + "\n\npress r to retry • q quit\n")
		v.MouseMode = tea.MouseModeCellMotion
		v.AltScreen = true
		return v
	}
	if !m.ready {
		v := tea.NewView("loading...")
		v.MouseMode = tea.MouseModeCellMotion
		v.AltScreen = true
		return v
	}

	accent := lipgloss.Color("62")
	muted := lipgloss.Color("241")
	dim := lipgloss.Color("239")
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
	statusStyle := lipgloss.NewStyle().Foreground(dim)

	header := titleStyle.Render("remedy") + statusStyle.Render("  ["+m.modeLabel()+"]")
	if m.drag.Active() {
		if task, ok := m.taskByID(m.drag.DraggedTaskID); ok {
			header += statusStyle.Render("  moving: " + truncate(task.Title, 32))
		}
	}
	summary := metrics.Compute(m.tasks, time.Now())
	metricsBlock := m.renderMetricsHeader(summary, accent, muted, dim, m.width)

	boardWidth := m.width
	if m.mode == modeEditTask {
		boardWidth = max(40, m.width-detailPanelWidth-2)
	}
	body := m.renderBoard(accent, muted, dim, boardWidth)
	if m.mode == modeEditTask {
		panel := m.renderDetailPanel(accent, muted, dim)
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, panel)
	}

	sections := []string{header, metricsBlock, "", body}
	if strings.TrimSpace(m.status) != "" && m.status != "ready" {
		sections = append(sections, statusStyle.Render(m.status))
	}
	content := strings.Join(sections, "\n")

	helpBubble := m.help
	helpBubble.ShowAll = false
	helpBubble.SetWidth(max(0, m.width-2))
	helpLine := lipgloss.NewStyle().
		Foreground(muted).
		BorderTop(true).
		BorderForeground(dim).
		Padding(0, 1).
		Width(max(0, m.width)).
		Render(helpBubble.View(m.keys))

	contentHeight := lipgloss.Height(content)
	if m.height > 0 {
		helpHeight := lipgloss.Height(helpLine)
		contentHeight = max(0, m.height-helpHeight)
		content = fitLines(content, contentHeight)
	}

	fullContent := content + "\n" + helpLine
	overlay := m.renderModeOverlay(accent, muted, dim, m.width-8)
	if m.help.ShowAll {
		overlay = m.renderHelpOverlay(accent, muted, dim, m.width-8)
	}
	if overlay != "" {
		overlayHeight := lipgloss.Height(fullContent)
		if m.height > 0 {
			overlayHeight = m.height
		}
		fullContent = overlayOnContent(fullContent, overlay, max(1, m.width), max(1, overlayHeight))
	}

	view := tea.NewView(fullContent)
	view.MouseMode = tea.MouseModeCellMotion
	view.AltScreen = true
	return view
}

// renderBoard renders the three status columns side by side.
func (m Model) renderBoard(accent, muted, dim color.Color, boardWidth int) string {
	colWidth := m.columnWidthFor(boardWidth)
	colHeight := m.columnHeight()

	baseColStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(dim).
		Padding(1, 2).
		MarginRight(1).
		Width(colWidth)
	selColStyle := baseColStyle.BorderForeground(accent)
	hoverColStyle := baseColStyle.BorderForeground(lipgloss.Color("42"))
	colTitle := lipgloss.NewStyle().Bold(true).Foreground(accent)
	emptyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	selectedCardStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	metaStyle := lipgloss.NewStyle().Foreground(muted)
	overdueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	doneStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("243")).Strikethrough(true)
	markerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))

	now := time.Now()
	columnViews := make([]string, 0, len(domain.StatusOrder))
	for colIdx, status := range domain.StatusOrder {
		colTasks := board.Column(m.tasks, status)
		if m.drag.Active() {
			kept := make([]domain.Task, 0, len(colTasks))
			for _, task := range colTasks {
				if task.ID != m.drag.DraggedTaskID {
					kept = append(kept, task)
				}
			}
			colTasks = kept
		}

		headerLine := colTitle.Render(fmt.Sprintf("%s (%d)", columnTitles[status], len(colTasks)))

		marker := -1
		if m.drag.Active() && m.drag.HoveredStatus == status && m.drag.HoveredIndex != board.NoIndex {
			marker = clamp(m.drag.HoveredIndex, 0, len(colTasks))
		}

		taskLines := make([]string, 0, max(1, len(colTasks)*3))
		selectedStart := -1
		selectedEnd := -1
		appendMarker := func() {
			taskLines = append(taskLines, markerStyle.Render("▸"+strings.Repeat("─", max(1, colWidth-6))+"◂"))
		}
		if len(colTasks) == 0 {
			if marker == 0 {
				appendMarker()
			} else {
				taskLines = append(taskLines, emptyStyle.Render("(empty)"))
			}
		} else {
			for taskIdx, task := range colTasks {
				if marker == taskIdx {
					appendMarker()
				}
				selected := !m.drag.Active() && colIdx == m.selectedColumn && taskIdx == m.selectedTask

				checkbox := "[ ] "
				if task.Status == domain.StatusCompleted {
					checkbox = "[x] "
				}
				prefix := "  "
				if selected {
					prefix = "│ "
				}
				title := prefix + checkbox + truncate(task.Title, max(1, colWidth-12))
				switch {
				case selected:
					title = selectedCardStyle.Render(title)
				case task.Status == domain.StatusCompleted:
					title = doneStyle.Render(title)
				}

				rowStart := len(taskLines)
				taskLines = append(taskLines, title)
				if meta := m.cardMeta(task); meta != "" {
					styled := metaStyle.Render(truncate(meta, max(1, colWidth-12)))
					if overdueAt(task, now) {
						styled = overdueStyle.Render(truncate(meta+" • overdue", max(1, colWidth-12)))
					}
					taskLines = append(taskLines, prefix+"    "+styled)
				}
				if taskIdx < len(colTasks)-1 {
					taskLines = append(taskLines, "")
				}
				if selected {
					selectedStart = rowStart
					selectedEnd = len(taskLines) - 1
				}
			}
			if marker == len(colTasks) {
				appendMarker()
			}
		}

		innerHeight := max(1, colHeight-4)
		windowHeight := max(1, innerHeight-1)
		scrollTop := 0
		if colIdx == m.selectedColumn && selectedStart >= 0 {
			if selectedEnd >= scrollTop+windowHeight {
				scrollTop = selectedEnd - windowHeight + 1
			}
			if selectedStart < scrollTop {
				scrollTop = selectedStart
			}
		}
		scrollTop = clamp(scrollTop, 0, max(0, len(taskLines)-windowHeight))
		if len(taskLines) > windowHeight {
			taskLines = taskLines[scrollTop : scrollTop+windowHeight]
		}

		lines := append([]string{headerLine}, taskLines...)
		content := fitLines(strings.Join(lines, "\n"), innerHeight)
		style := baseColStyle
		switch {
		case m.drag.Active() && m.drag.HoveredStatus == status:
			style = hoverColStyle
		case !m.drag.Active() && colIdx == m.selectedColumn:
			style = selColStyle
		}
		columnViews = append(columnViews, style.Render(content))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, columnViews...)
}

// cardMeta builds the one-line card summary under the title.
func (m Model) cardMeta(task domain.Task) string {
	parts := make([]string, 0, 5)
	if m.cardFields.ShowOwner {
		parts = append(parts, task.Owner)
	}
	if m.cardFields.ShowPriority {
		parts = append(parts, string(task.Priority))
	}
	if m.cardFields.ShowDueDate {
		parts = append(parts, task.DueDateString())
	}
	if m.cardFields.ShowCost && task.Cost > 0 {
		parts = append(parts, formatFloat(task.Cost)+"h")
	}
	if m.cardFields.ShowRatingBump && task.RatingBump > 0 {
		parts = append(parts, "+"+formatFloat(task.RatingBump)+"★")
	}
	if m.cardFields.ShowMentions && task.Provenance.Mentions > 0 {
		parts = append(parts, fmt.Sprintf("%d mentions", task.Provenance.Mentions))
	}
	return strings.Join(parts, " • ")
}

// formFieldLabels lists the visible task-form labels in field order.
var formFieldLabels = []string{"title", "owner", "priority", "due", "cost", "bump"}

// renderTaskForm renders the shared task form body.
func (m Model) renderTaskForm(accent, muted color.Color) string {
	labelStyle := lipgloss.NewStyle().Foreground(muted).Width(9)
	focusStyle := lipgloss.NewStyle().Bold(true).Foreground(accent).Width(9)
	lines := make([]string, 0, len(m.formInputs)+2)
	for idx := range m.formInputs {
		label := labelStyle.Render(formFieldLabels[idx])
		if idx == m.formFocus {
			label = focusStyle.Render(formFieldLabels[idx])
		}
		value := m.formInputs[idx].View()
		if idx == taskFieldPriority || idx == taskFieldOwner {
			value = "◂ " + m.formInputs[idx].Value() + " ▸"
		}
		lines = append(lines, label+" "+value)
	}
	return strings.Join(lines, "\n")
}

// renderDetailPanel renders the detail editor beside the board.
func (m Model) renderDetailPanel(accent, muted, dim color.Color) string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(accent)
	hintStyle := lipgloss.NewStyle().Foreground(muted)
	dirtyStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))

	lines := []string{titleStyle.Render("Task Details"), ""}
	lines = append(lines, m.renderTaskForm(accent, muted))
	lines = append(lines, "")
	if m.taskFormDirty() {
		lines = append(lines, dirtyStyle.Render("● unsaved changes"))
	} else {
		lines = append(lines, hintStyle.Render("no changes"))
	}
	lines = append(lines, hintStyle.Render("enter/ctrl+s save • tab next • ctrl+d delete • esc close"))

	if task, ok := m.taskByID(m.editingTaskID); ok {
		if md := provenanceMarkdown(task.Provenance); md != "" {
			lines = append(lines, "", titleStyle.Render("Source"),
				m.md.render(md, detailPanelWidth-6))
		}
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Padding(1, 2).
		Width(detailPanelWidth).
		Render(strings.Join(lines, "\n"))
}

// renderModeOverlay renders the centered modal for the current mode.
func (m Model) renderModeOverlay(accent, muted, dim color.Color, maxWidth int) string {
	switch m.mode {
	case modeAddTask:
		titleStyle := lipgloss.NewStyle().Bold(true).Foreground(accent)
		hintStyle := lipgloss.NewStyle().Foreground(muted)
		lines := []string{
			titleStyle.Render("New Task"),
			"",
			m.renderTaskForm(accent, muted),
			"",
			hintStyle.Render("enter save • tab next field • esc cancel"),
		}
		width := clamp(maxWidth, 40, 64)
		return lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(dim).
			Padding(0, 1).
			Width(width).
			Render(strings.Join(lines, "\n"))

	case modeConfirmDelete:
		titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203"))
		choiceStyle := lipgloss.NewStyle().Foreground(muted)
		activeStyle := lipgloss.NewStyle().Bold(true).Foreground(accent)
		yes := choiceStyle.Render("[ delete ]")
		no := activeStyle.Render("[ keep ]")
		if m.confirmChoice == 0 {
			yes = activeStyle.Render("[ delete ]")
			no = choiceStyle.Render("[ keep ]")
		}
		lines := []string{
			titleStyle.Render("Delete task?"),
			"",
			truncate(m.pendingDelete.Title, 48),
			"",
			yes + "  " + no,
			"",
			choiceStyle.Render("y confirm • n/esc cancel"),
		}
		return lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("203")).
			Padding(0, 1).
			Render(strings.Join(lines, "\n"))

	default:
		return ""
	}
}

// renderHelpOverlay renders output for the current model state.
func (m Model) renderHelpOverlay(accent, muted, dim color.Color, maxWidth int) string {
	width := clamp(maxWidth, 56, 100)
	if width <= 0 {
		width = 72
	}
	hb := m.help
	hb.ShowAll = true
	hb.SetWidth(width - 4)

	title := lipgloss.NewStyle().Bold(true).Foreground(accent).Render("Remedy Help")
	workflow := []string{
		lipgloss.NewStyle().Bold(true).Foreground(accent).Render("Workflows"),
		"1. a add task  •  e/enter edit task  •  space toggle done",
		"2. g grab a card, arrows place it, enter drop, esc cancel",
		"3. drag cards with the mouse between and within columns",
		"4. [ ] move task across columns  •  y duplicate  •  x delete",
		"5. c copies a card summary with its source quote",
	}
	lines := []string{
		title,
		"",
		hb.View(m.keys),
		"",
		lipgloss.NewStyle().Foreground(muted).Render(strings.Join(workflow, "\n")),
		lipgloss.NewStyle().Foreground(muted).Render("press ? or esc to close"),
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(dim).
		Padding(0, 1).
		Width(width).
		Render(strings.Join(lines, "\n"))
}

// modeLabel returns the short status-line label for the current mode.
func (m Model) modeLabel() string {
	switch {
	case m.drag.Active():
		return "move"
	case m.mode == modeAddTask:
		return "new"
	case m.mode == modeEditTask:
		return "edit"
	case m.mode == modeConfirmDelete:
		return "confirm"
	default:
		return "board"
	}
}

// columnWidth returns column width.
func (m Model) columnWidth() int {
	return m.columnWidthFor(m.width)
}

// columnWidthFor returns column width for.
func (m Model) columnWidthFor(boardWidth int) int {
	w := 28
	if boardWidth > 0 {
		// Per-column overhead: left/right border (2), horizontal padding (4), margin-right (1)
		const colOverhead = 7
		usable := boardWidth - len(domain.StatusOrder)*colOverhead
		candidate := usable / len(domain.StatusOrder)
		if candidate > 0 {
			w = candidate
		}
	}
	if w < 24 {
		return 24
	}
	if w > 42 {
		return 42
	}
	return w
}

// columnHeight returns column height.
func (m Model) columnHeight() int {
	headerLines := 4
	footerLines := 4
	h := m.height - headerLines - footerLines
	if h < 14 {
		return 14
	}
	return h
}

// boardTop handles board top.
func (m Model) boardTop() int {
	// mouse coordinates from tea are 1-based
	// title + metrics block + spacer
	return 5
}

// clamp clamps the requested operation.
func clamp(v, minV, maxV int) int {
	if maxV < minV {
		return minV
	}
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}

// max returns the larger of the provided values.
func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// min returns the smaller of the provided values.
func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// fitLines fits lines.
func fitLines(content string, maxLines int) string {
	if maxLines <= 0 {
		return ""
	}
	lines := strings.Split(content, "\n")
	switch {
	case len(lines) > maxLines:
		if maxLines == 1 {
			lines = []string{"…"}
		} else {
			lines = append(lines[:maxLines-1], "…")
		}
	case len(lines) < maxLines:
		padding := make([]string, maxLines-len(lines))
		lines = append(lines, padding...)
	}
	return strings.Join(lines, "\n")
}

// overlayOnContent overlays on content.
func overlayOnContent(base, overlay string, width, height int) string {
	if width <= 0 || height <= 0 {
		if strings.TrimSpace(overlay) == "" {
			return base
		}
		return overlay + "\n\n" + base
	}

	base = fitLines(base, height)
	canvas := lipgloss.NewCanvas(width, height)
	baseLayer := lipgloss.NewLayer(base).X(0).Y(0).Z(0)
	centeredOverlay := lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		overlay,
	)
	overlayLayer := lipgloss.NewLayer(centeredOverlay).X(0).Y(0).Z(10)

	canvas.Compose(baseLayer)
	canvas.Compose(overlayLayer)
	return canvas.Render()
}

// truncate truncates the requested operation.
func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	rs := []rune(s)
	if len(rs) <= max {
		return s
	}
	if max <= 1 {
		return string(rs[:max])
	}
	return string(rs[:max-1]) + "…"
}
