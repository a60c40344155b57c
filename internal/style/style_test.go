package style

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	cases := map[string]Category{
		"":                     Free,
		"Свободен":             Free,
		"available":            Free,
		"Резерв":               Reserved,
		"RESERVED until May":   Reserved,
		"Продан":               Sold,
		"sold":                 Sold,
		"Муниципальный":        Municipal,
		"municipal, sold":      Municipal,
		"sold / reserved":      Sold,
		"Зарезервирован":       Reserved,
	}
	for in, want := range cases {
		assert.Equal(t, want, Resolve(in), in)
	}
}

func TestColorsStablePerCategory(t *testing.T) {
	assert.Equal(t, Colors("Продан"), Colors("sold"))
	assert.Equal(t, Colors(""), Colors("whatever"))
	assert.Equal(t, Style{FillColor: "#22C55E55", StrokeColor: "#16A34A"}, Colors(DefaultStatus))
	assert.NotEqual(t, Colors("sold"), SelectedColors("sold"))
	assert.Equal(t, SelectedColors("Резерв"), SelectedColors("reserved"))

	seen := map[Style]Category{}
	for _, c := range []Category{Free, Reserved, Sold, Municipal} {
		s := normal[c]
		_, dup := seen[s]
		assert.False(t, dup, c.String())
		seen[s] = c
	}
}

func TestClassesFor(t *testing.T) {
	assert.Equal(t, Classes{Pill: "status-municipal", Dot: "dot-municipal"}, ClassesFor("Муниципальный"))
	assert.Equal(t, Classes{Pill: "status-free", Dot: "dot-free"}, ClassesFor(""))
}

func TestOptionsCoverEveryCategory(t *testing.T) {
	got := map[Category]bool{}
	for _, o := range Options() {
		got[Resolve(o)] = true
	}
	assert.Len(t, got, 4)
	assert.Equal(t, DefaultStatus, Options()[0])
}

func TestRGB(t *testing.T) {
	assert.Equal(t, "#22C55E", RGB("#22C55E55"))
	assert.Equal(t, "#16A34A", RGB("#16A34A"))
}
