package tui

import (
	"fmt"
	"strings"

	"lanes/internal/board"
	"lanes/internal/model"

	"github.com/charmbracelet/lipgloss"
)

const (
	columnGap    = 2
	minColumnW   = 12
	detailMinW   = 30
	defaultWidth = 100
)

func (m boardModel) View() string {
	width, height := m.width, m.height
	if width <= 0 {
		width = defaultWidth
	}

	header := m.renderHeader(width)
	footer := m.renderFooter(width)
	bodyH := 0
	if height > 0 {
		bodyH = max(1, height-lipgloss.Height(header)-lipgloss.Height(footer))
	}

	boardW := width
	var detail string
	if m.showDetail {
		detailW := max(detailMinW, width/3)
		if detailW < width-minColumnW {
			boardW = width - detailW - columnGap
			detail = m.renderDetail(detailW, bodyH)
		}
	}

	body := renderColumns(m.cols, m.sel, m.drag.ItemID(), boardW, bodyH)
	if detail != "" {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, strings.Repeat(" ", columnGap), detail)
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (m boardModel) renderHeader(width int) string {
	left := titleBarStyle.Render(m.title)
	if m.drag.State() == board.Dragging {
		left += "  " + styleMuted().Render("[moving]")
	}
	return normalizePane(left, width, 1)
}

func (m boardModel) renderFooter(width int) string {
	status := m.status
	if m.statusErr {
		status = statusErrStyle.Render(status)
	} else {
		status = styleMuted().Render(status)
	}
	return normalizePane(status, width, 1) + "\n" + m.help.View(m.keys)
}

func (m boardModel) renderDetail(width, height int) string {
	it, ok := m.focused()
	inner := max(10, width-4) // border + padding
	var content string
	if !ok {
		content = styleMuted().Render("(no card)")
	} else {
		parts := []string{lipgloss.NewStyle().Bold(true).Render(truncate(it.Title, inner))}
		meta := []string{it.ID, it.ColumnID}
		if it.ProjectID != "" {
			meta = append(meta, it.ProjectID)
		}
		parts = append(parts, styleMuted().Render(truncate(strings.Join(meta, " · "), inner)), "")
		if md := renderMarkdown(it.Description, inner); md != "" {
			parts = append(parts, md)
		} else {
			parts = append(parts, styleMuted().Render("(no description)"))
		}
		content = strings.Join(parts, "\n")
	}
	h := 0
	if height > 2 {
		h = height - 2
	}
	return detailStyle.Render(normalizePane(content, inner, h))
}

// renderColumns lays the columns out side by side. dragged marks the picked-up card.
func renderColumns(cols []board.Column, sel selection, dragged string, width, height int) string {
	n := len(cols)
	if n == 0 {
		return normalizePane(styleMuted().Render("(no columns; add one with `lanes columns add <id>`)"), width, height)
	}
	colW := max(minColumnW, (width-columnGap*(n-1))/n)

	rendered := make([]string, 0, n*2)
	for i, c := range cols {
		if i > 0 {
			rendered = append(rendered, strings.Repeat(" ", columnGap))
		}
		rendered = append(rendered, renderColumn(c, i == sel.Col, sel, dragged, colW, height))
	}
	return normalizePane(lipgloss.JoinHorizontal(lipgloss.Top, rendered...), width, height)
}

func renderColumn(c board.Column, focused bool, sel selection, dragged string, width, height int) string {
	label := strings.TrimSpace(c.Def.Label)
	if label == "" {
		label = c.Def.ID
	}
	hs := headerStyle
	if focused {
		hs = headerSelectedStyle
	}
	lines := []string{hs.Width(width).Render(truncate(fmt.Sprintf("%s (%d)", label, len(c.Items)), width))}

	if len(c.Items) == 0 {
		lines = append(lines, styleMuted().Render("(empty)"))
		return normalizePane(strings.Join(lines, "\n"), width, height)
	}
	lines = append(lines, "")
	for i, it := range c.Items {
		selected := focused && i == sel.Item
		lines = append(lines, strings.Split(renderCard(it, selected, it.ID == dragged, width), "\n")...)
		if i < len(c.Items)-1 {
			lines = append(lines, styleMuted().Render(" "+strings.Repeat("─", max(0, width-2))+" "))
		}
	}
	return normalizePane(strings.Join(lines, "\n"), width, height)
}

func renderCard(it model.Item, selected, dragged bool, width int) string {
	title := strings.TrimSpace(it.Title)
	if title == "" {
		title = "(untitled)"
	}
	inner := max(1, width-2)
	prefix := "  "
	if dragged {
		prefix = "» "
	}
	wrapped := wrapWords(title, max(1, inner-len(prefix)))
	for i := range wrapped {
		if i == 0 {
			wrapped[i] = prefix + wrapped[i]
		} else {
			wrapped[i] = "  " + wrapped[i]
		}
	}

	st := cardStyle
	switch {
	case dragged:
		st = cardDraggedStyle
	case selected:
		st = cardSelectedStyle
	}
	return st.Width(width).Render(normalizePane(strings.Join(wrapped, "\n"), inner, 0))
}
