package plot

import (
	"bytes"
	"encoding/json"
	"fmt"

	"ploteditor/internal/geom"
)

// ToFeatureCollection maps drawable plots to Polygon features. Plots with fewer than three
// points have no valid GeoJSON geometry and are written with a null geometry.
func ToFeatureCollection(plots []*Plot) (geom.FeatureCollection, error) {
	fc := geom.FeatureCollection{Type: "FeatureCollection", Features: make([]geom.Feature, 0, len(plots))}
	for _, p := range plots {
		props := map[string]any{
			"id":                 p.ID,
			"name":               p.Name,
			"status":             p.Status,
			"area":               p.Area,
			"areaValue":          p.AreaValue,
			"price":              p.Price,
			"priceValue":         p.PriceValue,
			"vri":                p.VRI,
			"purpose":            p.Purpose,
			"projectDescription": p.ProjectDescription,
			"comment":            p.Comment,
			"zone":               p.Zone,
		}
		if !p.Drawable() {
			fc.Features = append(fc.Features, geom.Feature{Type: "Feature", Properties: props})
			continue
		}
		f, err := geom.PolygonFeature(p.Ring(), props)
		if err != nil {
			return geom.FeatureCollection{}, fmt.Errorf("plot %s: %w", p.ID, err)
		}
		fc.Features = append(fc.Features, f)
	}
	return fc, nil
}

// EncodeGeoJSON writes plots as an indented FeatureCollection.
func EncodeGeoJSON(plots []*Plot) ([]byte, error) {
	fc, err := ToFeatureCollection(plots)
	if err != nil {
		return nil, err
	}
	b, err := json.MarshalIndent(fc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode geojson: %w", err)
	}
	return append(b, '\n'), nil
}

// DecodeGeoJSON reads plots back from a FeatureCollection. Feature properties use the same
// keys and leniency as plotsData.json; features without a polygon keep empty coords.
func DecodeGeoJSON(data []byte) ([]*Plot, error) {
	fc, err := geom.DecodeFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("decode geojson: %w", err)
	}
	out := make([]*Plot, 0, len(fc.Features))
	for i, f := range fc.Features {
		props := []byte("{}")
		if f.Properties != nil {
			if props, err = json.Marshal(f.Properties); err != nil {
				return nil, fmt.Errorf("feature %d: %w", i, err)
			}
		}
		recs, err := Decode(bytes.Join([][]byte{[]byte("["), props, []byte("]")}, nil))
		if err != nil {
			return nil, fmt.Errorf("feature %d: %w", i, err)
		}
		p := recs[0]
		p.Coords = nil
		if f.Geometry != nil {
			ring, err := f.OuterRing()
			if err != nil {
				return nil, fmt.Errorf("feature %d: %w", i, err)
			}
			for _, c := range ring {
				p.Coords = append(p.Coords, c)
			}
		}
		out = append(out, p)
	}
	return out, nil
}
