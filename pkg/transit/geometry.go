package transit

import "time"

// Segment is the mapped geometry between two consecutive stations of a route.
type Segment struct {
	FromStationID string `groups:"basic"`
	ToStationID   string `groups:"basic"`

	Path []Location `groups:"basic"`

	DistanceMeters    float64 `groups:"basic"`
	TravelTimeSeconds int     `groups:"basic"`

	// True when no physical polyline matched confidently and the path is a
	// straight two-point line between the stations
	StraightLineFallback bool `groups:"detailed"`
}

// RouteGeometry is the mapped path of a whole route in its canonical forward
// direction. Segment count is always len(route.StationIDs) - 1.
type RouteGeometry struct {
	RouteID  string    `groups:"basic"`
	Segments []Segment `groups:"basic"`

	reversed *RouteGeometry
}

// PrecomputeReversed builds and stores the backward orientation so position
// resolution does not rebuild it for every backward train on every tick.
func (g *RouteGeometry) PrecomputeReversed() {
	reversed := ReverseRouteGeometry(*g)
	g.reversed = &reversed
}

// Directed returns the geometry oriented for a direction of travel. Ad-hoc
// geometries without a precomputed reverse fall back to reversing on demand.
func (g *RouteGeometry) Directed(direction Direction) *RouteGeometry {
	if direction == DirectionForward {
		return g
	}
	if g.reversed == nil {
		reversed := ReverseRouteGeometry(*g)
		return &reversed
	}
	return g.reversed
}

func (g *RouteGeometry) TotalDistanceMeters() float64 {
	var total float64
	for _, segment := range g.Segments {
		total += segment.DistanceMeters
	}
	return total
}

func (g *RouteGeometry) TotalTravelTime() time.Duration {
	var totalSeconds int
	for _, segment := range g.Segments {
		totalSeconds += segment.TravelTimeSeconds
	}
	return time.Duration(totalSeconds) * time.Second
}

// ReverseRouteGeometry flips a geometry for backward travel. Both the segment
// order and each segment's internal point order are reversed, so the
// direction of travel along every path matches the train's heading.
func ReverseRouteGeometry(geometry RouteGeometry) RouteGeometry {
	reversed := RouteGeometry{
		RouteID:  geometry.RouteID,
		Segments: make([]Segment, len(geometry.Segments)),
	}

	for i, segment := range geometry.Segments {
		path := make([]Location, len(segment.Path))
		for j, point := range segment.Path {
			path[len(segment.Path)-1-j] = point
		}

		reversed.Segments[len(geometry.Segments)-1-i] = Segment{
			FromStationID:        segment.ToStationID,
			ToStationID:          segment.FromStationID,
			Path:                 path,
			DistanceMeters:       segment.DistanceMeters,
			TravelTimeSeconds:    segment.TravelTimeSeconds,
			StraightLineFallback: segment.StraightLineFallback,
		}
	}

	return reversed
}
