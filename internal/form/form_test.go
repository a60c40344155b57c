package form

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ploteditor/internal/plot"
	"ploteditor/internal/style"
)

func num(f float64) *float64 { return &f }

func TestFillRead(t *testing.T) {
	f := New("")
	src := &plot.Plot{
		ID: "7", Name: "Участок №7", Status: "Резерв", Area: "6 соток", AreaValue: num(6),
		Price: "1 200 000", PriceValue: num(1200000), VRI: "ИЖС", Purpose: "дом",
		ProjectDescription: "проект", Comment: "угловой", Zone: "Ж1",
	}
	f.Fill(src)
	assert.Equal(t, "1200000", f.Value(PriceValue))

	dst := &plot.Plot{}
	f.Read(dst)
	assert.Equal(t, *src, *dst)
}

func TestFillDefaults(t *testing.T) {
	f := New("")
	f.Fill(&plot.Plot{ID: "1"})
	assert.Equal(t, style.DefaultStatus, f.Value(Status))
	assert.Equal(t, "", f.Value(AreaValue))
	assert.Equal(t, "", f.Value(Name))
}

func TestReadTrimsAndParses(t *testing.T) {
	f := New("")
	f.SetValue(Name, "  Участок  ")
	f.SetValue(AreaValue, " 12.5 ")
	f.SetValue(PriceValue, "дорого")

	p := &plot.Plot{AreaValue: num(1), PriceValue: num(2)}
	require.NotPanics(t, func() { f.Read(p) })
	assert.Equal(t, "Участок", p.Name)
	require.NotNil(t, p.AreaValue)
	assert.Equal(t, 12.5, *p.AreaValue)
	assert.Nil(t, p.PriceValue)

	f.SetValue(AreaValue, "   ")
	f.Read(p)
	assert.Nil(t, p.AreaValue)
}

func TestUnknownStatusRoundTrips(t *testing.T) {
	f := New("")
	f.Fill(&plot.Plot{Status: "На согласовании"})
	assert.Contains(t, f.Options(), "На согласовании")

	p := &plot.Plot{}
	f.Read(p)
	assert.Equal(t, "На согласовании", p.Status)

	f.Reset()
	assert.NotContains(t, f.Options(), "На согласовании")
	assert.Equal(t, style.DefaultStatus, f.Value(Status))
}

func TestStatusCycling(t *testing.T) {
	f := New("")
	opts := f.Options()
	f.CycleStatus(1)
	assert.Equal(t, opts[1], f.Value(Status))
	f.CycleStatus(-2)
	assert.Equal(t, opts[len(opts)-1], f.Value(Status))
}

func TestKeyboardNavigation(t *testing.T) {
	f := New("")
	assert.Nil(t, f.Update(tea.KeyMsg{Type: tea.KeyDown}))
	assert.Equal(t, ID, f.Current())

	f.Focus()
	f.Update(tea.KeyMsg{Type: tea.KeyDown})
	f.Update(tea.KeyMsg{Type: tea.KeyDown})
	require.Equal(t, Status, f.Current())

	before := f.Value(Status)
	f.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.NotEqual(t, before, f.Value(Status))

	f.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, Name, f.Current())
	f.SetValue(Name, "")
	f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("Дом")})
	assert.Equal(t, "Дом", f.Value(Name))

	f.Prev()
	f.Prev()
	assert.Equal(t, Zone, f.Current())
	f.Blur()
	assert.False(t, f.Focused())
}

func TestView(t *testing.T) {
	f := New("")
	f.Fill(&plot.Plot{ID: "3", Name: "C", Status: "Продан"})
	out := f.View(40)
	assert.Contains(t, out, "price value")
	assert.Contains(t, out, "Продан")
}
