package tui

import (
	"strconv"

	table "github.com/charmbracelet/bubbles/table"

	"ploteditor/internal/cards"
	"ploteditor/internal/plot"
)

func tableColumns() []table.Column {
	return []table.Column{
		{Title: "id", Width: 5},
		{Title: "name", Width: 18},
		{Title: "status", Width: 14},
		{Title: "area", Width: 10},
		{Title: "area value", Width: 10},
		{Title: "price", Width: 12},
		{Title: "price value", Width: 12},
		{Title: "vri", Width: 10},
		{Title: "zone", Width: 6},
		{Title: "points", Width: 6},
	}
}

func formatValue(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// refreshTable rebuilds the plots table in card order and puts the cursor on the selected plot.
func (m *Model) refreshTable() {
	m.tblPlots = cards.Order(m.ctrl.Plots())
	rows := make([]table.Row, 0, len(m.tblPlots))
	cursor := 0
	for i, p := range m.tblPlots {
		if p == m.ctrl.Selected() {
			cursor = i
		}
		rows = append(rows, table.Row{
			p.ID,
			p.Name,
			p.Status,
			p.Area,
			formatValue(p.AreaValue),
			p.Price,
			formatValue(p.PriceValue),
			p.VRI,
			p.Zone,
			strconv.Itoa(len(p.Coords)),
		})
	}
	// clear rows first so the cursor never points past the new row set
	m.tbl.SetRows(nil)
	m.tbl.SetRows(rows)
	m.tbl.SetCursor(cursor)
}

// tablePlot returns the plot under the table cursor.
func (m *Model) tablePlot() *plot.Plot {
	i := m.tbl.Cursor()
	if i < 0 || i >= len(m.tblPlots) {
		return nil
	}
	return m.tblPlots[i]
}
