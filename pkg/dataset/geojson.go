package dataset

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/omerdikyol/rayda/pkg/transit"
)

type geoJSONFeatureCollection struct {
	Type     string           `json:"type"`
	Features []geoJSONFeature `json:"features"`
}

type geoJSONFeature struct {
	Type       string            `json:"type"`
	ID         string            `json:"id"`
	Properties map[string]string `json:"properties"`
	Geometry   geoJSONGeometry   `json:"geometry"`
}

type geoJSONGeometry struct {
	Type        string      `json:"type"`
	Coordinates [][]float64 `json:"coordinates"`
}

// ParseTrackGeometry decodes the prepared track geometry file. Only
// LineString features are kept; anything else in the dataset is ignored with
// no complaint since the offline preparation step is allowed to be messy.
func ParseTrackGeometry(data []byte) ([]transit.TrackPolyline, error) {
	var collection geoJSONFeatureCollection
	if err := json.Unmarshal(data, &collection); err != nil {
		return nil, fmt.Errorf("parsing track geometry: %w", err)
	}

	var polylines []transit.TrackPolyline
	for _, feature := range collection.Features {
		if feature.Geometry.Type != "LineString" {
			continue
		}

		coordinates := make([]transit.Location, 0, len(feature.Geometry.Coordinates))
		for _, pair := range feature.Geometry.Coordinates {
			if len(pair) < 2 {
				continue
			}
			coordinates = append(coordinates, transit.NewLocation(pair[0], pair[1]))
		}

		id := feature.ID
		if id == "" {
			id = feature.Properties["@id"]
		}

		polylines = append(polylines, transit.TrackPolyline{
			PrimaryIdentifier: id,
			Name:              feature.Properties["name"],
			Coordinates:       coordinates,
			Attributes:        parseTrackAttributes(feature.Properties),
		})
	}

	return polylines, nil
}

func parseTrackAttributes(properties map[string]string) transit.TrackAttributes {
	gauge, _ := strconv.Atoi(properties["gauge"])

	return transit.TrackAttributes{
		Electrified: properties["electrified"] != "" && properties["electrified"] != "no",
		Usage:       properties["usage"],
		Service:     properties["service"],
		Tunnel:      properties["tunnel"] == "yes",
		Bridge:      properties["bridge"] == "yes",
		GaugeMM:     gauge,
	}
}
