// Package departures answers "when does the next train reach this station"
// by inverting the position model over the current fleet snapshot.
package departures

import (
	"math"
	"sort"
	"time"

	"github.com/omerdikyol/rayda/pkg/simulator"
	"github.com/omerdikyol/rayda/pkg/transit"
	"github.com/sourcegraph/conc/pool"
	"golang.org/x/exp/slices"
)

// PredictionHorizon discards arrivals further out than this; compounding
// schedule uncertainty makes them unreliable.
const PredictionHorizon = 45 * time.Minute

const (
	baseConfidence     = 0.9
	confidenceDecay    = 0.95
	DefaultMaxArrivals = 5
)

type Predictor struct {
	State *simulator.State
}

// PredictArrivals computes, per live train approaching the station, the
// remaining time to arrival, sorted soonest first and truncated to
// maxResults. Trains moving away or already past never appear.
func (p *Predictor) PredictArrivals(stationID string, snapshot *simulator.Snapshot, now time.Time, maxResults int) []transit.ArrivalPrediction {
	return p.predict(stationID, snapshot, now, maxResults, nil)
}

// PredictArrivalsForLine restricts predictions to one route and direction
// before sorting and truncation, so nearer trains heading the other way
// cannot crowd a qualifying train out of the result set.
func (p *Predictor) PredictArrivalsForLine(stationID string, routeID string, direction transit.Direction, snapshot *simulator.Snapshot, now time.Time, maxResults int) []transit.ArrivalPrediction {
	return p.predict(stationID, snapshot, now, maxResults, func(position transit.TrainPosition) bool {
		return position.RouteID == routeID && position.Direction == direction
	})
}

func (p *Predictor) predict(stationID string, snapshot *simulator.Snapshot, now time.Time, maxResults int, match func(transit.TrainPosition) bool) []transit.ArrivalPrediction {
	if snapshot == nil || p.State.Dataset.Station(stationID) == nil {
		return nil
	}
	if maxResults <= 0 {
		maxResults = DefaultMaxArrivals
	}

	workers := pool.NewWithResults[*transit.ArrivalPrediction]()

	for _, position := range snapshot.Positions {
		if match != nil && !match(position) {
			continue
		}

		position := position
		workers.Go(func() *transit.ArrivalPrediction {
			return p.predictForTrain(stationID, position, now)
		})
	}

	var predictions []transit.ArrivalPrediction
	for _, prediction := range workers.Wait() {
		if prediction != nil {
			predictions = append(predictions, *prediction)
		}
	}

	sort.Slice(predictions, func(i, j int) bool {
		return predictions[i].ArrivalTime.Before(predictions[j].ArrivalTime)
	})

	if len(predictions) > maxResults {
		predictions = predictions[:maxResults]
	}

	return predictions
}

func (p *Predictor) predictForTrain(stationID string, position transit.TrainPosition, now time.Time) *transit.ArrivalPrediction {
	route := p.State.Dataset.Route(position.RouteID)
	if route == nil || !route.ServesStation(stationID) {
		return nil
	}

	// Work in the train's direction of travel so "ahead" is simply a larger
	// index
	ordered := route.OrderedStationIDs(position.Direction)

	targetIndex := slices.Index(ordered, stationID)
	nextIndex := slices.Index(ordered, position.SegmentToStationID)
	if targetIndex == -1 || nextIndex == -1 {
		return nil
	}

	// Moving away from, or already past, the target
	if targetIndex < nextIndex {
		return nil
	}

	remaining := p.remainingTime(position, ordered, nextIndex, targetIndex)
	if remaining > PredictionHorizon {
		return nil
	}

	wholeSegments := targetIndex - nextIndex
	confidence := baseConfidence * math.Pow(confidenceDecay, float64(wholeSegments))

	arrivalTime := now.Add(remaining)

	return &transit.ArrivalPrediction{
		TrainID:                   position.TrainID,
		RouteID:                   position.RouteID,
		Direction:                 position.Direction,
		ArrivalTime:               arrivalTime,
		MinutesAway:               int(math.Round(remaining.Minutes())),
		FinalDestinationStationID: position.FinalDestinationStationID,
		Confidence:                confidence,
	}
}

// remainingTime is the unfinished part of the current segment plus the full
// travel time of every complete segment before the target.
func (p *Predictor) remainingTime(position transit.TrainPosition, ordered []string, nextIndex int, targetIndex int) time.Duration {
	travelTimes := p.State.Dataset.TravelTimes

	currentSegmentSeconds, _ := travelTimes.Get(position.SegmentFromStationID, position.SegmentToStationID)
	remainingSeconds := (1 - position.SegmentProgress) * float64(currentSegmentSeconds)

	for i := nextIndex; i < targetIndex; i++ {
		seconds, _ := travelTimes.Get(ordered[i], ordered[i+1])
		remainingSeconds += float64(seconds)
	}

	return time.Duration(remainingSeconds * float64(time.Second))
}
