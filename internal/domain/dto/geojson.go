package dto

import (
	"encoding/json"

	"github.com/zakatkuy/amil/internal/domain"
)

const (
	PropertyEffectiveness = "efektivitas"
	PropertyCode          = "code"
	PropertyRatio         = "rasio"
	PropertyStatus        = "status"
	PropertyFill          = "fill"
)

type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

type Feature struct {
	Type       string                 `json:"type"`
	Properties map[string]interface{} `json:"properties"`
	Geometry   json.RawMessage        `json:"geometry"`
}

// NewMapFeatureCollection renders map rows as GeoJSON. Zakat properties are null for
// provinces without a record, and label properties are null for unrated rows.
func NewMapFeatureCollection(rows []domain.MapRow) FeatureCollection {
	fc := FeatureCollection{Type: "FeatureCollection", Features: make([]Feature, 0, len(rows))}

	for _, row := range rows {
		props := make(map[string]interface{}, len(row.Boundary.Properties)+7)
		for k, v := range row.Boundary.Properties {
			props[k] = v
		}

		props[domain.ColumnCollected] = nil
		props[domain.ColumnDistributed] = nil
		props[PropertyEffectiveness] = nil
		props[PropertyCode] = nil
		props[PropertyRatio] = nil

		if row.Record != nil {
			props[domain.ColumnCollected] = row.Record.Collected
			props[domain.ColumnDistributed] = row.Record.Distributed
		}
		if label, ok := row.Rating.Label(); ok {
			props[PropertyEffectiveness] = label.String()
			props[PropertyCode] = label.Code()
		}
		if ratio, ok := row.Rating.Ratio(); ok {
			props[PropertyRatio] = ratio
		}

		props[PropertyStatus] = row.Status()
		props[PropertyFill] = row.Rating.Color()

		geometry := row.Boundary.Geometry
		if len(geometry) == 0 {
			geometry = json.RawMessage("null")
		}

		fc.Features = append(fc.Features, Feature{
			Type:       "Feature",
			Properties: props,
			Geometry:   geometry,
		})
	}

	return fc
}
