package boundary

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/zakatkuy/amil/internal/domain"
	"github.com/zakatkuy/amil/internal/pkg/constants"
	"github.com/zakatkuy/amil/internal/pkg/fetch"
)

// PropertyProvince is the feature property holding the province name.
const PropertyProvince = "Propinsi"

type featureCollection struct {
	Type     string    `json:"type"`
	Features []feature `json:"features"`
}

type feature struct {
	Properties map[string]interface{} `json:"properties"`
	Geometry   json.RawMessage        `json:"geometry"`
}

// Source fetches province shapes from a remote GeoJSON document on every call.
type Source struct {
	client *fetch.Client
	url    string
}

func NewSource(client *fetch.Client, url string) *Source {
	return &Source{client: client, url: url}
}

func (s *Source) Fetch(ctx context.Context) ([]domain.Boundary, error) {
	body, err := s.client.Get(ctx, s.url)
	if err != nil {
		return nil, fmt.Errorf("client.Get: %w", err)
	}

	boundaries, err := Parse(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %s", constants.ErrNetworkFetch, s.url, err.Error())
	}

	return boundaries, nil
}

// Parse decodes a FeatureCollection and applies the province name corrections.
func Parse(body []byte) ([]domain.Boundary, error) {
	var fc featureCollection
	if err := sonic.Unmarshal(body, &fc); err != nil {
		return nil, fmt.Errorf("sonic.Unmarshal: %w", err)
	}
	if fc.Type != "FeatureCollection" {
		return nil, fmt.Errorf("unexpected geojson type %q", fc.Type)
	}

	boundaries := make([]domain.Boundary, 0, len(fc.Features))
	for i, f := range fc.Features {
		name, ok := f.Properties[PropertyProvince].(string)
		if !ok {
			return nil, fmt.Errorf("feature %d: missing %s property", i, PropertyProvince)
		}

		province := domain.CanonicalProvince(name)
		props := make(map[string]interface{}, len(f.Properties))
		for k, v := range f.Properties {
			props[k] = v
		}
		props[PropertyProvince] = province

		boundaries = append(boundaries, domain.Boundary{
			Province:   province,
			Properties: props,
			Geometry:   f.Geometry,
		})
	}

	return boundaries, nil
}
