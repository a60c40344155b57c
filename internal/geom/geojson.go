package geom

import (
	"encoding/json"
	"errors"
	"fmt"
)

// FeatureCollection is the subset of GeoJSON used for plot exchange.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

type Feature struct {
	Type       string         `json:"type"`
	Properties map[string]any `json:"properties"`
	Geometry   *Geometry      `json:"geometry"`
}

// Geometry keeps coordinates raw so Polygon and MultiPolygon can share one struct.
type Geometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

// PolygonFeature builds a Polygon feature with a closed outer ring in x/y order.
func PolygonFeature(r Ring, props map[string]any) (Feature, error) {
	ring := make([][2]float64, 0, len(r)+1)
	ring = append(ring, r...)
	if len(r) > 0 && r[0] != r[len(r)-1] {
		ring = append(ring, r[0])
	}
	raw, err := json.Marshal([][][2]float64{ring})
	if err != nil {
		return Feature{}, err
	}
	if props == nil {
		props = map[string]any{}
	}
	return Feature{
		Type:       "Feature",
		Properties: props,
		Geometry:   &Geometry{Type: "Polygon", Coordinates: raw},
	}, nil
}

// OuterRing returns the first outer ring of a Polygon or MultiPolygon feature, without the
// closing point. Features with other geometry types yield an error.
func (f Feature) OuterRing() (Ring, error) {
	if f.Geometry == nil {
		return nil, errors.New("feature has no geometry")
	}
	var ring Ring
	switch f.Geometry.Type {
	case "Polygon":
		var poly []Ring
		if err := json.Unmarshal(f.Geometry.Coordinates, &poly); err != nil {
			return nil, fmt.Errorf("polygon coordinates: %w", err)
		}
		if len(poly) > 0 {
			ring = poly[0]
		}
	case "MultiPolygon":
		var mp [][]Ring
		if err := json.Unmarshal(f.Geometry.Coordinates, &mp); err != nil {
			return nil, fmt.Errorf("multipolygon coordinates: %w", err)
		}
		if len(mp) > 0 && len(mp[0]) > 0 {
			ring = mp[0][0]
		}
	default:
		return nil, fmt.Errorf("unsupported geometry %q", f.Geometry.Type)
	}
	if len(ring) > 1 && ring[0] == ring[len(ring)-1] {
		ring = ring[:len(ring)-1]
	}
	return ring, nil
}

// DecodeFeatureCollection accepts a FeatureCollection or a single Feature.
func DecodeFeatureCollection(data []byte) (FeatureCollection, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return FeatureCollection{}, err
	}
	switch head.Type {
	case "FeatureCollection":
		var fc FeatureCollection
		if err := json.Unmarshal(data, &fc); err != nil {
			return FeatureCollection{}, err
		}
		if fc.Features == nil {
			return FeatureCollection{}, errors.New("feature collection has no features array")
		}
		return fc, nil
	case "Feature":
		var f Feature
		if err := json.Unmarshal(data, &f); err != nil {
			return FeatureCollection{}, err
		}
		return FeatureCollection{Type: "FeatureCollection", Features: []Feature{f}}, nil
	}
	return FeatureCollection{}, fmt.Errorf("unsupported geojson type %q", head.Type)
}
