package plot

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func num(f float64) *float64 { return &f }

func withIDs(ids ...string) *Store {
	s := NewStore()
	var recs []*Plot
	for _, id := range ids {
		recs = append(recs, &Plot{ID: id})
	}
	s.Load(recs)
	return s
}

func TestNumericID(t *testing.T) {
	cases := []struct {
		in string
		n  int
		ok bool
	}{
		{"5", 5, true},
		{" 12abc", 12, true},
		{"-3", -3, true},
		{"abc", 0, false},
		{"", 0, false},
		{"+", 0, false},
	}
	for _, c := range cases {
		n, ok := NumericID(c.in)
		assert.Equal(t, c.ok, ok, c.in)
		assert.Equal(t, c.n, n, c.in)
	}
}

func TestAddAssignsNextID(t *testing.T) {
	s := withIDs("1", "3", "5")
	p := s.Add(&Plot{})
	assert.Equal(t, "6", p.ID)
	assert.Equal(t, 4, s.Len())

	assert.Equal(t, "1", NewStore().NextID())
}

func TestNextIDNonNumeric(t *testing.T) {
	assert.Equal(t, "1", withIDs("a", "b").NextID())
	assert.Equal(t, "3", withIDs("x", "2").NextID())
	assert.Equal(t, "1", withIDs("-4").NextID())
}

func TestNextIDUsesLeadingInteger(t *testing.T) {
	assert.Equal(t, "13", withIDs("12a", "2").NextID())
}

func TestRemoveByIdentity(t *testing.T) {
	a, b := &Plot{ID: "1"}, &Plot{ID: "1"}
	s := NewStore()
	s.Load([]*Plot{a, b})
	snap := s.All()

	assert.True(t, s.Remove(b))
	assert.False(t, s.Remove(b))
	assert.Equal(t, []*Plot{a}, s.All())
	assert.Len(t, snap, 2)
	assert.True(t, s.Contains(a))
	assert.False(t, s.Contains(b))
}

func TestLoadDiscardsPrevious(t *testing.T) {
	var dropped []*Plot
	s := NewStore(WithDiscard(func(p *Plot) { dropped = append(dropped, p) }))
	a := &Plot{ID: "1"}
	s.Load([]*Plot{a})
	assert.Empty(t, dropped)

	s.Load([]*Plot{{ID: "9"}})
	assert.Equal(t, []*Plot{a}, dropped)
	assert.Equal(t, "9", s.All()[0].ID)
}

func TestBlank(t *testing.T) {
	p := Blank("4", nil)
	assert.Equal(t, "Участок №4", p.Name)
	assert.Equal(t, "Свободен", p.Status)
	assert.False(t, p.Drawable())
}

func TestParseNumber(t *testing.T) {
	assert.Nil(t, ParseNumber(""))
	assert.Nil(t, ParseNumber("  "))
	assert.Nil(t, ParseNumber("abc"))
	assert.Nil(t, ParseNumber("NaN"))
	assert.Nil(t, ParseNumber("Inf"))
	assert.Equal(t, 12.5, *ParseNumber(" 12.5 "))
	assert.Equal(t, 0.0, *ParseNumber("0"))
}

func TestDecodeLenient(t *testing.T) {
	in := `[
	  {"id": 3, "name": "Участок №3", "status": "Продан", "areaValue": "12.5", "priceValue": null,
	   "coords": [[44.99, 43.17], [44.991, 43.17, 12], [44.991, 43.171]]},
	  {"id": "4", "areaValue": "", "priceValue": 100}
	]`
	plots, err := Decode([]byte(in))
	require.NoError(t, err)
	require.Len(t, plots, 2)

	assert.Equal(t, "3", plots[0].ID)
	assert.Equal(t, 12.5, *plots[0].AreaValue)
	assert.Nil(t, plots[0].PriceValue)
	assert.Equal(t, []Coord{{44.99, 43.17}, {44.991, 43.17}, {44.991, 43.171}}, plots[0].Coords)

	assert.Nil(t, plots[1].AreaValue)
	assert.Equal(t, 100.0, *plots[1].PriceValue)
	assert.Empty(t, plots[1].Coords)
}

func TestDecodeRejectsMalformed(t *testing.T) {
	for _, in := range []string{
		`{`,
		`{"id": "1"}`,
		`[{"coords": [[1]]}]`,
		`[{"coords": "x"}]`,
		`[{"name": true}]`,
		`[{"areaValue": {}}]`,
		`null`,
		`[null]`,
		`[{"id": "1"}, null]`,
		`"plots"`,
	} {
		_, err := Decode([]byte(in))
		assert.Error(t, err, in)
	}
}

func TestEncodeFormat(t *testing.T) {
	out, err := Encode([]*Plot{{ID: "1", Name: "a&b", AreaValue: num(10)}})
	require.NoError(t, err)
	s := string(out)
	assert.True(t, strings.HasPrefix(s, "[\n  {\n    \"id\": \"1\""), s)
	assert.Contains(t, s, `"name": "a&b"`)
	assert.Contains(t, s, `"areaValue": 10`)
	assert.Contains(t, s, `"priceValue": null`)
	assert.Contains(t, s, `"coords": []`)
	assert.Contains(t, s, `"zone": ""`)

	var generic []map[string]any
	require.NoError(t, json.Unmarshal(out, &generic))
	assert.NotContains(t, generic[0], "polygon")
}

func TestEncodeRejectsNonFinite(t *testing.T) {
	_, err := Encode([]*Plot{{ID: "1", Coords: []Coord{{math.Inf(1), 0}}}})
	assert.Error(t, err)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	src := []*Plot{
		{
			ID: "1", Name: "Участок №1", Status: "Резерв", Area: "10 сот.", AreaValue: num(10),
			Price: "1 000 000", PriceValue: num(1000000), VRI: "ИЖС", Purpose: "дом",
			ProjectDescription: "проект", Comment: "угловой", Zone: "A",
			Coords: []Coord{{44.99, 43.17}, {44.991, 43.17}, {44.991, 43.171}},
		},
		{ID: "2", Name: "empty"},
	}
	out, err := Encode(src)
	require.NoError(t, err)
	back, err := Decode(out)
	require.NoError(t, err)

	src[1].Coords = nil
	assert.Equal(t, src, back)
}

func TestGeoJSONRoundTrip(t *testing.T) {
	src := []*Plot{
		{ID: "1", Name: "a", Status: "Продан", PriceValue: num(5), Zone: "B",
			Coords: []Coord{{0, 0}, {1, 0}, {1, 1}}},
		{ID: "2", Name: "no geometry"},
	}
	out, err := EncodeGeoJSON(src)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"FeatureCollection"`)

	back, err := DecodeGeoJSON(out)
	require.NoError(t, err)
	assert.Equal(t, src, back)
}

func TestDecodeEmptyArray(t *testing.T) {
	plots, err := Decode([]byte(`[]`))
	require.NoError(t, err)
	assert.Empty(t, plots)

	plots, err = DecodeGeoJSON([]byte(`{"type":"FeatureCollection","features":[]}`))
	require.NoError(t, err)
	assert.Empty(t, plots)
}

func TestDecodeGeoJSONRejectsNullFeatures(t *testing.T) {
	_, err := DecodeGeoJSON([]byte(`{"type":"FeatureCollection","features":null}`))
	assert.Error(t, err)
	_, err = DecodeGeoJSON([]byte(`{"type":"FeatureCollection"}`))
	assert.Error(t, err)
}

func TestDecodeGeoJSONNullProperties(t *testing.T) {
	plots, err := DecodeGeoJSON([]byte(`{"type":"FeatureCollection","features":[
		{"type":"Feature","properties":null,
		 "geometry":{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,0]]]}}]}`))
	require.NoError(t, err)
	require.Len(t, plots, 1)
	assert.Equal(t, "", plots[0].ID)
	assert.Len(t, plots[0].Coords, 3)
}
