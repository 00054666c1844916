package dataset

import (
	"github.com/omerdikyol/rayda/pkg/transit"
)

// StationRecord is a row of stations.csv
type StationRecord struct {
	ID                   string  `csv:"id"`
	Name                 string  `csv:"name"`
	Longitude            float64 `csv:"lon"`
	Latitude             float64 `csv:"lat"`
	DistanceFromOriginKM float64 `csv:"distance_km"`
}

// TravelTimeRecord is a row of travel_times.csv
type TravelTimeRecord struct {
	FromStationID string `csv:"from"`
	ToStationID   string `csv:"to"`
	Seconds       int    `csv:"seconds"`
}

// TrackFilterRule is a named predicate over track attributes; a polyline must
// pass every rule to be retained. The expression language is expr.
type TrackFilterRule struct {
	Name       string `yaml:"name" validate:"required"`
	Expression string `yaml:"rule" validate:"required"`
}

// BoundingBox limits track matching to the line's service area
type BoundingBox struct {
	MinLon float64 `yaml:"min_lon"`
	MinLat float64 `yaml:"min_lat"`
	MaxLon float64 `yaml:"max_lon"`
	MaxLat float64 `yaml:"max_lat"`
}

func (b BoundingBox) Contains(location transit.Location) bool {
	return location.Lon() >= b.MinLon && location.Lon() <= b.MaxLon &&
		location.Lat() >= b.MinLat && location.Lat() <= b.MaxLat
}

func (b BoundingBox) IsZero() bool {
	return b == BoundingBox{}
}

// RoutesFile is the parsed routes.yaml
type RoutesFile struct {
	Routes []*transit.Route `yaml:"routes" validate:"required,min=1,dive"`

	// Polyline ids/names known to be wrong matches (sidings, freight spurs,
	// foreign lines)
	Exclusions []string `yaml:"exclusions"`

	TrackFilters []TrackFilterRule `yaml:"track_filters" validate:"dive"`

	Bounds BoundingBox `yaml:"bounds"`
}

// Dataset is everything the simulator needs, loaded once at startup.
type Dataset struct {
	Stations map[string]*transit.Station
	Routes   []*transit.Route

	TravelTimes transit.TravelTimes

	Polylines []transit.TrackPolyline

	Exclusions   []string
	TrackFilters []TrackFilterRule
	Bounds       BoundingBox

	// Set when the track geometry file could not be loaded and the mapper
	// should expect straight-line fallbacks everywhere
	DegradedGeometry bool
}

func (d *Dataset) Station(id string) *transit.Station {
	return d.Stations[id]
}

func (d *Dataset) Route(id string) *transit.Route {
	for _, route := range d.Routes {
		if route.PrimaryIdentifier == id {
			return route
		}
	}
	return nil
}

// RouteServing returns the first route whose ordered station list contains
// both stations. Multi-route transfers are not modelled.
func (d *Dataset) RouteServing(fromID string, toID string) *transit.Route {
	for _, route := range d.Routes {
		if route.ServesStation(fromID) && route.ServesStation(toID) {
			return route
		}
	}
	return nil
}
