package cards

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ploteditor/internal/plot"
)

func ids(plots []*plot.Plot) []string {
	out := make([]string, len(plots))
	for i, p := range plots {
		out[i] = p.ID
	}
	return out
}

func plots(ids ...string) []*plot.Plot {
	out := make([]*plot.Plot, len(ids))
	for i, id := range ids {
		out[i] = plot.Blank(id, nil)
	}
	return out
}

func TestOrderNumeric(t *testing.T) {
	assert.Equal(t, []string{"2", "10"}, ids(Order(plots("10", "2"))))
}

func TestOrderNonNumericLast(t *testing.T) {
	got := ids(Order(plots("b", "10", "a", "2", "3x")))
	assert.Equal(t, []string{"2", "3x", "10", "b", "a"}, got)
}

func TestOrderDoesNotMutateInput(t *testing.T) {
	in := plots("3", "1")
	Order(in)
	assert.Equal(t, []string{"3", "1"}, ids(in))
}

func TestHighlightAndCursor(t *testing.T) {
	ps := plots("3", "1", "2")
	l := New()
	l.Render(ps, ps[0])
	assert.Same(t, ps[0], l.Selected())
	assert.Same(t, ps[0], l.Cursor())

	l.MoveCursor(-10)
	assert.Equal(t, "1", l.Cursor().ID)
	l.MoveCursor(10)
	assert.Equal(t, "3", l.Cursor().ID)

	l.Highlight(ps[2])
	assert.Equal(t, "2", l.Cursor().ID)
	l.Highlight(nil)
	assert.Nil(t, l.Selected())
}

func TestAtAndScrolling(t *testing.T) {
	ps := plots("1", "2", "3", "4", "5")
	l := New()
	l.Render(ps, nil)

	l.View(30, 6)
	assert.Equal(t, "1", l.At(0).ID)
	assert.Equal(t, "2", l.At(3).ID)
	assert.Nil(t, l.At(-1))

	l.MoveCursor(4)
	l.View(30, 6)
	assert.Equal(t, "4", l.At(0).ID)
	assert.Equal(t, "5", l.At(5).ID)
	assert.Nil(t, l.At(6))
}

func TestViewContent(t *testing.T) {
	p := &plot.Plot{ID: "1", Name: "Участок №1", Status: "Продан", Area: "6 соток", Price: "1 000 000", VRI: "ИЖС"}
	l := New()
	l.Render([]*plot.Plot{p}, p)
	out := l.View(40, 10)
	require.NotEmpty(t, out)
	for _, s := range []string{"Участок №1", "Продан", "6 соток", "1 000 000", "ИЖС", "●"} {
		assert.Contains(t, out, s)
	}

	l.Render(nil, nil)
	assert.Nil(t, l.Cursor())
	assert.True(t, strings.Contains(l.View(40, 10), "no plots"))
}
