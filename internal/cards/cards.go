// Package cards renders the plot summary list shown next to the map.
package cards

import (
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"ploteditor/internal/plot"
	"ploteditor/internal/style"
)

// each card is two text rows plus a spacer
const cardHeight = 3

var (
	nameStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#E6E6E6")).Bold(true)
	metaStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	selectedStyle = lipgloss.NewStyle().Border(lipgloss.ThickBorder(), false, false, false, true).BorderForeground(lipgloss.Color("#7C3AED"))
	cursorStyle   = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("#243141"))
	plainStyle    = lipgloss.NewStyle().PaddingLeft(1)

	pillStyles = map[string]lipgloss.Style{
		"status-municipal": pill("#2563EB"),
		"status-sold":      pill("#B91C1C"),
		"status-reserved":  pill("#CA8A04"),
		"status-free":      pill("#16A34A"),
	}
	dotColors = map[string]lipgloss.Color{
		"dot-municipal": "#60A5FA",
		"dot-sold":      "#EF4444",
		"dot-reserved":  "#FACC15",
		"dot-free":      "#22C55E",
	}
)

func pill(bg string) lipgloss.Style {
	return lipgloss.NewStyle().Background(lipgloss.Color(bg)).Foreground(lipgloss.Color("#FFFFFF")).Padding(0, 1)
}

// Order sorts plots by the leading integer of their id. Ids without one go last and keep
// their relative order.
func Order(plots []*plot.Plot) []*plot.Plot {
	out := append([]*plot.Plot(nil), plots...)
	sort.SliceStable(out, func(i, j int) bool {
		a, aok := plot.NumericID(out[i].ID)
		b, bok := plot.NumericID(out[j].ID)
		switch {
		case aok && bok:
			return a < b
		case aok != bok:
			return aok
		}
		return false
	})
	return out
}

// List is the scrollable card column. The cursor follows keyboard navigation; the selected
// card is the plot being edited.
type List struct {
	cards    []*plot.Plot
	selected *plot.Plot
	cursor   int
	offset   int
}

func New() *List { return &List{} }

// Render rebuilds the cards from plots.
func (l *List) Render(plots []*plot.Plot, selected *plot.Plot) {
	l.cards = Order(plots)
	l.Highlight(selected)
	l.clamp()
}

// Highlight marks p as selected and moves the cursor onto it.
func (l *List) Highlight(p *plot.Plot) {
	l.selected = p
	if i := l.index(p); i >= 0 {
		l.cursor = i
	}
}

func (l *List) index(p *plot.Plot) int {
	if p == nil {
		return -1
	}
	for i, q := range l.cards {
		if q == p {
			return i
		}
	}
	return -1
}

func (l *List) clamp() {
	if l.cursor >= len(l.cards) {
		l.cursor = len(l.cards) - 1
	}
	if l.cursor < 0 {
		l.cursor = 0
	}
}

// Plots returns the cards in display order.
func (l *List) Plots() []*plot.Plot { return append([]*plot.Plot(nil), l.cards...) }

func (l *List) Selected() *plot.Plot { return l.selected }

// Cursor returns the plot under the cursor, or nil on an empty list.
func (l *List) Cursor() *plot.Plot {
	if len(l.cards) == 0 {
		return nil
	}
	return l.cards[l.cursor]
}

func (l *List) MoveCursor(delta int) {
	l.cursor += delta
	l.clamp()
}

// At maps a row of the last View to its card.
func (l *List) At(row int) *plot.Plot {
	if row < 0 {
		return nil
	}
	i := l.offset + row/cardHeight
	if i >= len(l.cards) {
		return nil
	}
	return l.cards[i]
}

// View renders as many cards as fit in height rows, scrolled so the cursor is visible.
func (l *List) View(width, height int) string {
	if len(l.cards) == 0 {
		return metaStyle.Render(" no plots yet, press n")
	}
	visible := max(1, height/cardHeight)
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+visible {
		l.offset = l.cursor - visible + 1
	}
	end := min(len(l.cards), l.offset+visible)

	var b strings.Builder
	for i := l.offset; i < end; i++ {
		if i > l.offset {
			b.WriteString("\n")
		}
		b.WriteString(l.card(l.cards[i], width, i))
	}
	return b.String()
}

func (l *List) card(p *plot.Plot, width, i int) string {
	cls := style.ClassesFor(p.Status)
	inner := max(4, width-1)

	status := p.Status
	if status == "" {
		status = "-"
	}
	pl := pillStyles[cls.Pill].Render(status)
	name := nameStyle.MaxWidth(max(1, inner-lipgloss.Width(pl)-1)).Render(p.Name)
	gap := max(1, inner-lipgloss.Width(name)-lipgloss.Width(pl))
	top := name + strings.Repeat(" ", gap) + pl

	dot := lipgloss.NewStyle().Foreground(dotColors[cls.Dot]).Render("●")
	meta := []string{dash(p.Area), dash(p.Price)}
	if p.VRI != "" {
		meta = append(meta, p.VRI)
	}
	bottom := dot + " " + metaStyle.MaxWidth(max(1, inner-2)).Render(strings.Join(meta, ", "))

	box := plainStyle
	switch {
	case p == l.selected:
		box = selectedStyle
	case i == l.cursor:
		box = cursorStyle
	}
	return box.Width(inner).Render(top+"\n"+bottom) + "\n"
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
