// Package trackmap aligns schedule-level station pairs onto physical track
// polylines, producing the per-route geometry every position calculation
// runs on.
package trackmap

import (
	"sync"

	"github.com/omerdikyol/rayda/pkg/dataset"
	"github.com/omerdikyol/rayda/pkg/transit"
	"github.com/omerdikyol/rayda/pkg/util"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
)

// matchConfidenceThreshold is the minimum endpoint-proximity score for a
// polyline to be trusted as a segment's path. Score is 1/(1+dStart+dEnd)
// with distances in kilometers, so 0.4 means both endpoints together sit
// within 1.5km of the stations.
const matchConfidenceThreshold = 0.4

type geometryCacheKey struct {
	RouteID string
}

type Mapper struct {
	mutex sync.RWMutex

	stations    map[string]*transit.Station
	routes      []*transit.Route
	travelTimes transit.TravelTimes

	allPolylines []transit.TrackPolyline
	retained     []transit.TrackPolyline

	predicates []filterPredicate
	bounds     dataset.BoundingBox

	exclusions map[string]bool

	cache map[geometryCacheKey]*transit.RouteGeometry
}

func NewMapper(data *dataset.Dataset) (*Mapper, error) {
	predicates, err := compileFilters(data.TrackFilters)
	if err != nil {
		return nil, err
	}

	mapper := &Mapper{
		stations:     data.Stations,
		routes:       data.Routes,
		travelTimes:  data.TravelTimes,
		allPolylines: data.Polylines,
		predicates:   predicates,
		bounds:       data.Bounds,
		exclusions:   map[string]bool{},
		cache:        map[geometryCacheKey]*transit.RouteGeometry{},
	}

	for _, exclusion := range data.Exclusions {
		mapper.exclusions[exclusion] = true
	}

	mapper.refilter()

	return mapper, nil
}

// refilter rebuilds the retained polyline set from scratch. Caller holds the
// write lock or has exclusive access.
func (m *Mapper) refilter() {
	retained := make([]transit.TrackPolyline, len(m.allPolylines))
	copy(retained, m.allPolylines)

	droppedByRule := map[string]int{}

	util.InPlaceFilter(&retained, func(polyline transit.TrackPolyline) bool {
		if m.exclusions[polyline.PrimaryIdentifier] || m.exclusions[polyline.Name] {
			droppedByRule["excluded"]++
			return false
		}

		passed, failedRule := evaluate(m.predicates, filterEnvFor(polyline, m.bounds))
		if !passed {
			droppedByRule[failedRule]++
		}
		return passed
	})

	m.retained = retained

	log.Info().
		Int("total", len(m.allPolylines)).
		Int("retained", len(m.retained)).
		Interface("dropped", droppedByRule).
		Msg("Filtered track polylines")
}

// MapRoute returns the route's geometry, building and caching it on first
// use. It never fails: station pairs with no confident polyline match fall
// back to a straight two-point line.
func (m *Mapper) MapRoute(route *transit.Route) *transit.RouteGeometry {
	key := geometryCacheKey{RouteID: route.PrimaryIdentifier}

	m.mutex.RLock()
	cached := m.cache[key]
	m.mutex.RUnlock()
	if cached != nil {
		return cached
	}

	geometry := m.buildRouteGeometry(route)

	m.mutex.Lock()
	m.cache[key] = geometry
	m.mutex.Unlock()

	return geometry
}

func (m *Mapper) buildRouteGeometry(route *transit.Route) *transit.RouteGeometry {
	geometry := &transit.RouteGeometry{
		RouteID:  route.PrimaryIdentifier,
		Segments: make([]transit.Segment, 0, len(route.StationIDs)-1),
	}

	for i := 1; i < len(route.StationIDs); i++ {
		fromStation := m.stations[route.StationIDs[i-1]]
		toStation := m.stations[route.StationIDs[i]]

		path, matched := m.bestMatchingPath(fromStation, toStation)
		if !matched {
			log.Warn().
				Str("route", route.PrimaryIdentifier).
				Str("from", fromStation.PrimaryIdentifier).
				Str("to", toStation.PrimaryIdentifier).
				Msg("No confident track match - using straight line")

			path = []transit.Location{*fromStation.Location, *toStation.Location}
		}

		travelTime, published := m.travelTimes.Get(fromStation.PrimaryIdentifier, toStation.PrimaryIdentifier)
		if !published {
			log.Warn().
				Str("from", fromStation.PrimaryIdentifier).
				Str("to", toStation.PrimaryIdentifier).
				Int("fallback", travelTime).
				Msg("No published travel time for segment")
		}

		geometry.Segments = append(geometry.Segments, transit.Segment{
			FromStationID:        fromStation.PrimaryIdentifier,
			ToStationID:          toStation.PrimaryIdentifier,
			Path:                 path,
			DistanceMeters:       transit.PathLength(path),
			TravelTimeSeconds:    travelTime,
			StraightLineFallback: !matched,
		})
	}

	geometry.PrecomputeReversed()

	return geometry
}

// bestMatchingPath scores every retained polyline, in both orientations, by
// how close its endpoints sit to the two stations.
func (m *Mapper) bestMatchingPath(from *transit.Station, to *transit.Station) ([]transit.Location, bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	var bestScore float64
	var bestPath []transit.Location

	for _, polyline := range m.retained {
		if len(polyline.Coordinates) < 2 {
			continue
		}

		first := polyline.Coordinates[0]
		last := polyline.Coordinates[len(polyline.Coordinates)-1]

		forwardScore := endpointScore(from.Location.DistanceTo(first), to.Location.DistanceTo(last))
		if forwardScore > bestScore {
			bestScore = forwardScore
			bestPath = polyline.Coordinates
		}

		// The polyline may have been digitised running the other way
		reverseScore := endpointScore(from.Location.DistanceTo(last), to.Location.DistanceTo(first))
		if reverseScore > bestScore {
			bestScore = reverseScore
			reversed := polyline.Reversed()
			bestPath = reversed.Coordinates
		}
	}

	if bestScore < matchConfidenceThreshold {
		return nil, false
	}

	return bestPath, true
}

func endpointScore(startMeters float64, endMeters float64) float64 {
	return 1 / (1 + startMeters/1000 + endMeters/1000)
}

// MapAll maps every route in parallel and returns geometries keyed by route
// id. Used during the startup initialization phase.
func (m *Mapper) MapAll() map[string]*transit.RouteGeometry {
	p := pool.NewWithResults[*transit.RouteGeometry]()

	for _, route := range m.routes {
		route := route
		p.Go(func() *transit.RouteGeometry {
			return m.MapRoute(route)
		})
	}

	geometries := map[string]*transit.RouteGeometry{}
	for _, geometry := range p.Wait() {
		geometries[geometry.RouteID] = geometry
	}

	return geometries
}

// Exclude adds polyline ids/names to the exclusion set and synchronously
// refilters and remaps every route, so the next tick never sees stale
// geometry. This is the debug path used to repair bad track matches.
func (m *Mapper) Exclude(idsOrNames ...string) map[string]*transit.RouteGeometry {
	m.mutex.Lock()
	for _, idOrName := range idsOrNames {
		m.exclusions[idOrName] = true
	}
	m.cache = map[geometryCacheKey]*transit.RouteGeometry{}
	m.refilter()
	m.mutex.Unlock()

	log.Info().Strs("added", idsOrNames).Msg("Extended track exclusion set - remapping routes")

	return m.MapAll()
}

// Exclusions returns the current excluded ids/names.
func (m *Mapper) Exclusions() []string {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	exclusions := make([]string, 0, len(m.exclusions))
	for idOrName := range m.exclusions {
		exclusions = append(exclusions, idOrName)
	}
	return exclusions
}
