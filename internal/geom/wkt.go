package geom

import (
	"errors"
	"strconv"
	"strings"
)

// ParsePolygon reads the outer ring of a WKT POLYGON (x y order). Holes are ignored and a
// closing point equal to the first one is dropped.
func ParsePolygon(wkt string) (Ring, error) {
	s := strings.TrimSpace(wkt)
	if s == "" {
		return nil, errors.New("empty wkt")
	}
	if !strings.HasPrefix(strings.ToUpper(s), "POLYGON") {
		return nil, errors.New("unsupported wkt type")
	}
	i := strings.Index(s, "((")
	j := strings.LastIndex(s, "))")
	if i < 0 || j <= i {
		return nil, errors.New("wkt polygon: invalid")
	}
	// outer ring ends at the first ring separator
	block := s[i+2 : j]
	if k := strings.Index(block, ")"); k >= 0 {
		block = block[:k]
	}
	r, err := parseTuples(block)
	if err != nil {
		return nil, err
	}
	if len(r) > 1 && r[0] == r[len(r)-1] {
		r = r[:len(r)-1]
	}
	if len(r) < 3 {
		return nil, errors.New("wkt polygon: fewer than 3 points")
	}
	return r, nil
}

func parseTuples(block string) (Ring, error) {
	var out Ring
	for _, tup := range strings.Split(block, ",") {
		parts := strings.Fields(strings.TrimSpace(tup))
		if len(parts) < 2 {
			return nil, errors.New("wkt: malformed coordinate " + strconv.Quote(strings.TrimSpace(tup)))
		}
		x, e1 := strconv.ParseFloat(parts[0], 64)
		y, e2 := strconv.ParseFloat(parts[1], 64)
		if e1 != nil || e2 != nil {
			return nil, errors.New("wkt: malformed coordinate " + strconv.Quote(strings.TrimSpace(tup)))
		}
		out = append(out, [2]float64{x, y})
	}
	return out, nil
}

// FormatPolygon writes the ring as a closed WKT POLYGON.
func FormatPolygon(r Ring) string {
	var b strings.Builder
	b.WriteString("POLYGON((")
	for i, p := range r {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.FormatFloat(p[0], 'f', -1, 64))
		b.WriteByte(' ')
		b.WriteString(strconv.FormatFloat(p[1], 'f', -1, 64))
	}
	if len(r) > 0 {
		b.WriteString(", ")
		b.WriteString(strconv.FormatFloat(r[0][0], 'f', -1, 64))
		b.WriteByte(' ')
		b.WriteString(strconv.FormatFloat(r[0][1], 'f', -1, 64))
	}
	b.WriteString("))")
	return b.String()
}
