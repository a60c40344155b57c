// Package style maps a free-text plot status to its visual treatment.
package style

import "strings"

type Category int

const (
	Free Category = iota
	Reserved
	Sold
	Municipal
)

// DefaultStatus is the status given to new plots and to blank form fields.
const DefaultStatus = "Свободен"

func (c Category) String() string {
	switch c {
	case Municipal:
		return "municipal"
	case Sold:
		return "sold"
	case Reserved:
		return "reserved"
	}
	return "free"
}

// Style is a fill/stroke pair; colors are #RRGGBB or #RRGGBBAA.
type Style struct {
	FillColor   string
	StrokeColor string
}

// Classes are the pill and dot class names shown on a card.
type Classes struct {
	Pill string
	Dot  string
}

// match order is the priority order
var keywords = []struct {
	cat   Category
	words []string
}{
	{Municipal, []string{"municipal", "муниц"}},
	{Sold, []string{"sold", "прод"}},
	{Reserved, []string{"reserved", "резерв"}},
}

var (
	normal = map[Category]Style{
		Municipal: {FillColor: "#60A5FA55", StrokeColor: "#2563EB"},
		Sold:      {FillColor: "#EF444455", StrokeColor: "#B91C1C"},
		Reserved:  {FillColor: "#FACC1555", StrokeColor: "#CA8A04"},
		Free:      {FillColor: "#22C55E55", StrokeColor: "#16A34A"},
	}
	selected = map[Category]Style{
		Municipal: {FillColor: "#3B82F670", StrokeColor: "#1D4ED8"},
		Sold:      {FillColor: "#EF444470", StrokeColor: "#B91C1C"},
		Reserved:  {FillColor: "#FACC1570", StrokeColor: "#CA8A04"},
		Free:      {FillColor: "#4ADE8070", StrokeColor: "#22C55E"},
	}
)

// Resolve classifies a status string. Empty or unknown statuses are Free.
func Resolve(status string) Category {
	s := strings.ToLower(status)
	for _, k := range keywords {
		for _, w := range k.words {
			if strings.Contains(s, w) {
				return k.cat
			}
		}
	}
	return Free
}

func Colors(status string) Style         { return normal[Resolve(status)] }
func SelectedColors(status string) Style { return selected[Resolve(status)] }

func ClassesFor(status string) Classes {
	c := Resolve(status).String()
	return Classes{Pill: "status-" + c, Dot: "dot-" + c}
}

// Options lists the status choices offered by the form, one per category.
func Options() []string {
	return []string{DefaultStatus, "Резерв", "Продан", "Муниципальный"}
}

// RGB drops a trailing alpha byte so the color can be used by a terminal renderer.
func RGB(hex string) string {
	if len(hex) == 9 && hex[0] == '#' {
		return hex[:7]
	}
	return hex
}
