package plot

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// record is the wire shape of one plot in plotsData.json.
type record struct {
	ID                 flexString  `json:"id"`
	Name               flexString  `json:"name"`
	Status             flexString  `json:"status"`
	Area               flexString  `json:"area"`
	AreaValue          flexNumber  `json:"areaValue"`
	Price              flexString  `json:"price"`
	PriceValue         flexNumber  `json:"priceValue"`
	VRI                flexString  `json:"vri"`
	Purpose            flexString  `json:"purpose"`
	ProjectDescription flexString  `json:"projectDescription"`
	Comment            flexString  `json:"comment"`
	Zone               flexString  `json:"zone"`
	Coords             []flexCoord `json:"coords"`
}

// flexString accepts strings, numbers and null.
type flexString string

func (s *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*s = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = flexString(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", b)
	}
	*s = flexString(n.String())
	return nil
}

// flexNumber accepts numbers, numeric strings, "" and null.
type flexNumber struct{ v *float64 }

func (n *flexNumber) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		n.v = nil
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		n.v = ParseNumber(s)
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return fmt.Errorf("expected number, got %s", b)
	}
	n.v = &f
	return nil
}

func (n flexNumber) MarshalJSON() ([]byte, error) {
	if n.v == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*n.v)
}

type flexCoord Coord

func (c *flexCoord) UnmarshalJSON(b []byte) error {
	var vals []float64
	if err := json.Unmarshal(b, &vals); err != nil {
		return fmt.Errorf("coordinate must be a [lon, lat] array: %w", err)
	}
	if len(vals) < 2 {
		return fmt.Errorf("coordinate needs 2 values, got %d", len(vals))
	}
	*c = flexCoord{vals[0], vals[1]}
	return nil
}

// ParseNumber trims s and parses it as a float; blank or non-numeric input gives nil.
func ParseNumber(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// Decode parses a JSON array of plots. It reports an error rather than returning a partial
// result, so callers can validate before touching any state.
func Decode(data []byte) ([]*Plot, error) {
	var recs []*record
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, fmt.Errorf("decode plots: %w", err)
	}
	// null decodes to a nil slice; [] does not
	if recs == nil {
		return nil, errors.New("decode plots: expected a JSON array")
	}
	out := make([]*Plot, 0, len(recs))
	for i, r := range recs {
		if r == nil {
			return nil, fmt.Errorf("decode plots: element %d is null", i)
		}
		p := &Plot{
			ID:                 string(r.ID),
			Name:               string(r.Name),
			Status:             string(r.Status),
			Area:               string(r.Area),
			AreaValue:          r.AreaValue.v,
			Price:              string(r.Price),
			PriceValue:         r.PriceValue.v,
			VRI:                string(r.VRI),
			Purpose:            string(r.Purpose),
			ProjectDescription: string(r.ProjectDescription),
			Comment:            string(r.Comment),
			Zone:               string(r.Zone),
		}
		for _, c := range r.Coords {
			p.Coords = append(p.Coords, Coord(c))
		}
		out = append(out, p)
	}
	return out, nil
}

type wireRecord struct {
	ID                 string     `json:"id"`
	Name               string     `json:"name"`
	Status             string     `json:"status"`
	Area               string     `json:"area"`
	AreaValue          flexNumber `json:"areaValue"`
	Price              string     `json:"price"`
	PriceValue         flexNumber `json:"priceValue"`
	VRI                string     `json:"vri"`
	Purpose            string     `json:"purpose"`
	ProjectDescription string     `json:"projectDescription"`
	Comment            string     `json:"comment"`
	Zone               string     `json:"zone"`
	Coords             []Coord    `json:"coords"`
}

// Encode writes plots as pretty-printed JSON with 2-space indentation.
func Encode(plots []*Plot) ([]byte, error) {
	recs := make([]wireRecord, 0, len(plots))
	for _, p := range plots {
		coords := p.Coords
		if coords == nil {
			coords = []Coord{}
		}
		recs = append(recs, wireRecord{
			ID:                 p.ID,
			Name:               p.Name,
			Status:             p.Status,
			Area:               p.Area,
			AreaValue:          flexNumber{p.AreaValue},
			Price:              p.Price,
			PriceValue:         flexNumber{p.PriceValue},
			VRI:                p.VRI,
			Purpose:            p.Purpose,
			ProjectDescription: p.ProjectDescription,
			Comment:            p.Comment,
			Zone:               p.Zone,
			Coords:             coords,
		})
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(recs); err != nil {
		return nil, fmt.Errorf("encode plots: %w", err)
	}
	return buf.Bytes(), nil
}
