package simulator

import (
	"math"
	"time"

	"github.com/omerdikyol/rayda/pkg/transit"
	"github.com/rs/zerolog/log"
)

// Tick advances the simulation to now: regenerate every route's fleet,
// resolve each live instance to a position, and publish a fresh snapshot.
// The fleet is replaced, never appended to, so reruns are idempotent.
func Tick(state *State, now time.Time) *Snapshot {
	var trains []transit.TrainInstance
	for _, route := range state.Dataset.Routes {
		trains = append(trains, GenerateFleet(route, now)...)
	}
	state.Trains = trains

	positions := make([]transit.TrainPosition, 0, len(trains))
	for _, train := range trains {
		geometry := state.Geometry(train.RouteID)
		if geometry == nil {
			continue
		}

		if position, live := ResolvePosition(train, geometry, now); live {
			positions = append(positions, position)
		}
	}

	applyPresentationOffsets(positions)

	state.sequence++
	snapshot := &Snapshot{
		Sequence:    state.sequence,
		GeneratedAt: now,
		Positions:   positions,
	}
	state.previousSnapshot = snapshot

	return snapshot
}

// SafeTick wraps Tick so an unexpected panic during a tick cannot kill the
// timer loop; the previous snapshot is retained instead of publishing a
// partial one.
func SafeTick(state *State, now time.Time) (snapshot *Snapshot) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("Tick failed - keeping previous snapshot")
			snapshot = state.previousSnapshot
		}
	}()

	return Tick(state, now)
}

type positionBucket struct {
	FromStationID string
	ToStationID   string
	Decile        int
}

// applyPresentationOffsets nudges trains that land in the same
// segment-and-decile bucket radially apart so markers don't fully overlap.
// Purely cosmetic: it adjusts the published coordinates only and never feeds
// back into stored state.
func applyPresentationOffsets(positions []transit.TrainPosition) {
	const offsetMeters = 12.0

	buckets := map[positionBucket][]int{}
	for i, position := range positions {
		bucket := positionBucket{
			FromStationID: position.SegmentFromStationID,
			ToStationID:   position.SegmentToStationID,
			Decile:        int(math.Floor(position.SegmentProgress * 10)),
		}
		buckets[bucket] = append(buckets[bucket], i)
	}

	for _, indexes := range buckets {
		if len(indexes) < 2 {
			continue
		}

		for n, index := range indexes[1:] {
			angle := float64(n+1) * 2 * math.Pi / float64(len(indexes))
			position := &positions[index]

			// Roughly offsetMeters in degrees at these latitudes
			deltaLat := (offsetMeters / 111320.0) * math.Cos(angle)
			deltaLon := (offsetMeters / (111320.0 * math.Cos(position.Location.Lat()*math.Pi/180))) * math.Sin(angle)

			position.Location = transit.NewLocation(
				position.Location.Lon()+deltaLon,
				position.Location.Lat()+deltaLat,
			)
		}
	}
}
