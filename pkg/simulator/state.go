package simulator

import (
	"sync"
	"time"

	"github.com/omerdikyol/rayda/pkg/dataset"
	"github.com/omerdikyol/rayda/pkg/trackmap"
	"github.com/omerdikyol/rayda/pkg/transit"
	"github.com/rs/zerolog/log"
)

// State is the explicit, passable simulation state. Everything that mutates
// over time lives here; there are no hidden singletons, so tests can drive
// the whole engine with a fixed clock.
type State struct {
	Dataset *dataset.Dataset
	Mapper  *trackmap.Mapper

	geometryMutex sync.RWMutex
	geometries    map[string]*transit.RouteGeometry

	Trains []transit.TrainInstance

	previousSnapshot *Snapshot
	sequence         uint64
}

// Snapshot is the copy-on-publish output of one tick. Consumers only ever
// see complete snapshots; a snapshot is never mutated after publication.
type Snapshot struct {
	Sequence    uint64                  `groups:"basic"`
	GeneratedAt time.Time               `groups:"basic"`
	Positions   []transit.TrainPosition `groups:"basic"`
}

// NewState runs the initialization phase: map every route's geometry up
// front so the first tick has everything it needs. With a degraded dataset
// this still succeeds, producing straight-line geometry throughout.
func NewState(data *dataset.Dataset, mapper *trackmap.Mapper) *State {
	state := &State{
		Dataset:    data,
		Mapper:     mapper,
		geometries: mapper.MapAll(),
	}

	for routeID, geometry := range state.geometries {
		log.Debug().
			Str("route", routeID).
			Int("segments", len(geometry.Segments)).
			Float64("meters", geometry.TotalDistanceMeters()).
			Msg("Mapped route geometry")
	}

	return state
}

func (s *State) Geometry(routeID string) *transit.RouteGeometry {
	s.geometryMutex.RLock()
	defer s.geometryMutex.RUnlock()
	return s.geometries[routeID]
}

// ReplaceGeometries swaps in freshly mapped geometry after an exclusion-set
// change.
func (s *State) ReplaceGeometries(geometries map[string]*transit.RouteGeometry) {
	s.geometryMutex.Lock()
	s.geometries = geometries
	s.geometryMutex.Unlock()
}

// SweepExpired garbage-collects instances past the max journey ceiling.
// Fleet regeneration already filters these, but a long-running process
// should not depend on the next regeneration happening.
func (s *State) SweepExpired(now time.Time) int {
	before := len(s.Trains)

	kept := s.Trains[:0]
	for _, train := range s.Trains {
		if now.Sub(train.DepartureTime) < MaxJourneyCeiling {
			kept = append(kept, train)
		}
	}
	s.Trains = kept

	return before - len(s.Trains)
}
