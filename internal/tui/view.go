package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

const (
	headerHeight = 1
	footerHeight = 2
	// border row plus the panel title
	panelTop = 2
)

var (
	textCol   = lipgloss.Color("#E6E6E6")
	mutedCol  = lipgloss.Color("#6B7280")
	focusCol  = lipgloss.Color("#7C3AED")
	alertCol  = lipgloss.Color("#EF4444")
	borderCol = lipgloss.Color("#243141")

	screenStyle  = lipgloss.NewStyle().Foreground(textCol)
	panelStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(borderCol).Padding(0, 1)
	focusedPanel = panelStyle.BorderForeground(focusCol)
	dialogStyle  = focusedPanel
	headingStyle = lipgloss.NewStyle().Foreground(focusCol).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(mutedCol)
	alertStyle   = lipgloss.NewStyle().Foreground(alertCol)
)

type rect struct{ x, y, w, h int }

func (r rect) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

type layout struct {
	cards, canvas, form rect
}

// layout splits the body into cards | map | form. View and the mouse handler share it.
func (m Model) layout() layout {
	bodyH := max(6, m.height-headerHeight-footerHeight)
	width := max(40, m.width)
	cardsW := min(32, max(18, width/4))
	formW := min(46, max(26, width/3))
	mapW := max(10, width-cardsW-formW)
	return layout{
		cards:  rect{0, headerHeight, cardsW, bodyH},
		canvas: rect{cardsW, headerHeight, mapW, bodyH},
		form:   rect{cardsW + mapW, headerHeight, formW, bodyH},
	}
}

func (m Model) panel(title, body string, r rect, active bool) string {
	st := panelStyle
	if active {
		st = focusedPanel
	}
	content := lipgloss.JoinVertical(lipgloss.Left, headingStyle.Render(title), body)
	return st.Width(r.w - 2).Height(r.h - 2).MaxHeight(r.h).Render(content)
}

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	lay := m.layout()
	contentWidth := max(40, m.width)

	// Header
	count := fmt.Sprintf(" %d plots ", len(m.ctrl.Plots()))
	if p := m.ctrl.Selected(); p != nil {
		count += fmt.Sprintf("· %s (%s) ", p.Name, m.ctrl.EditState())
	}
	header := headingStyle.Render(" ploteditor ─ land plot editor ") + mutedStyle.Render(count)
	header = lipgloss.NewStyle().Width(contentWidth).MaxHeight(headerHeight).Render(header)

	// Side panels
	inner := lay.cards.h - panelTop - 1
	cardsView := m.panel("Plots", m.cards.View(lay.cards.w-4, inner), lay.cards, m.focus == paneCards)
	formView := m.panel("Plot", m.form.View(lay.form.w-4), lay.form, m.focus == paneForm)

	// Map area, or whichever modal currently owns it
	var canvas string
	switch {
	case m.confirmDelete:
		name := ""
		if p := m.ctrl.Selected(); p != nil {
			name = p.Name
		}
		box := dialogStyle.Render(fmt.Sprintf("Delete %s?\n\n", name) + mutedStyle.Render("y delete · n cancel"))
		canvas = lipgloss.Place(lay.canvas.w, lay.canvas.h, lipgloss.Center, lipgloss.Center, box)
	case m.showTable:
		colW := 0
		for _, c := range m.tbl.Columns() {
			colW += c.Width + 2
		}
		maxW := min(lay.canvas.w, max(32, colW+4))
		m.tbl.SetWidth(maxW - 4)
		m.tbl.SetHeight(min(lay.canvas.h-4, 20))
		box := panelStyle.Width(maxW - 2).Render(m.tbl.View())
		canvas = lipgloss.Place(lay.canvas.w, lay.canvas.h, lipgloss.Center, lipgloss.Center, box)
	case m.showPicker:
		m.l.SetSize(lay.canvas.w-4, lay.canvas.h-2)
		canvas = panelStyle.Width(lay.canvas.w - 2).Height(lay.canvas.h - 2).Render(m.l.View())
	case m.pasteMode:
		m.ta.SetWidth(lay.canvas.w)
		m.ta.SetHeight(min(lay.canvas.h, 12))
		canvas = m.ta.View()
	default:
		// plain map canvas: no border
		canvas = m.mv.Render()
	}
	canvas = lipgloss.NewStyle().Width(lay.canvas.w).Height(lay.canvas.h).MaxHeight(lay.canvas.h).Render(canvas)

	body := lipgloss.JoinHorizontal(lipgloss.Top, cardsView, canvas, formView)

	// Footer: status line, then help
	st := mutedStyle
	if m.statusErr {
		st = alertStyle
	}
	status := st.Render(" " + m.status + " ")
	coords := ""
	if m.hoverHasGeo {
		hint := ""
		if s := m.mv.ShapeAt(m.hoverLat, m.hoverLon); s != nil && s.Hint != "" {
			hint = s.Hint + "  "
		}
		coords = mutedStyle.Render(fmt.Sprintf("  %slat=%.6f lon=%.6f  z=%.1f ", hint, m.hoverLat, m.hoverLon, m.mv.Zoom()))
	}
	spacerW := max(0, contentWidth-lipgloss.Width(status)-lipgloss.Width(coords))
	right := lipgloss.Place(spacerW+lipgloss.Width(coords), 1, lipgloss.Right, lipgloss.Center, coords)
	statusLine := lipgloss.NewStyle().Width(contentWidth).MaxHeight(1).Render(lipgloss.JoinHorizontal(lipgloss.Bottom, status, right))

	m.help.Width = contentWidth
	helpLine := " " + m.help.View(m.keys)
	if m.help.ShowAll {
		// full help replaces the body bottom rows
		body = lipgloss.NewStyle().MaxHeight(max(1, lay.canvas.h-lipgloss.Height(helpLine)+1)).Render(body)
	}

	ui := lipgloss.JoinVertical(lipgloss.Left, header, body, statusLine, helpLine)
	return screenStyle.Width(contentWidth).Height(m.height).MaxHeight(m.height).Render(ui)
}
