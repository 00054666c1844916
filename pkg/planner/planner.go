// Package planner answers "what is the best way from A to B" on a
// single-line network. Transfers between routes are not modelled; the first
// route serving both stations wins.
package planner

import (
	"math"
	"time"

	"github.com/omerdikyol/rayda/pkg/departures"
	"github.com/omerdikyol/rayda/pkg/simulator"
	"github.com/omerdikyol/rayda/pkg/transit"
	"golang.org/x/exp/slices"
)

// PerStationOffset estimates how long after leaving the route's first
// station a train reaches a given stop, when projecting departures straight
// from the schedule frequency.
const PerStationOffset = 2 * time.Minute

const DefaultMaxWaitMinutes = 30

type Options struct {
	DepartureTime  time.Time
	MaxWaitMinutes int
}

type Planner struct {
	State     *simulator.State
	Predictor *departures.Predictor
}

// PlanJourney builds a journey plan between two stations, resolving the next
// viable departure from a live train when one qualifies and otherwise
// projecting one from the schedule. Returns false only when the stations are
// identical or no single route connects them.
func (p *Planner) PlanJourney(fromID string, toID string, snapshot *simulator.Snapshot, opts Options) (*transit.JourneyPlan, bool) {
	if fromID == toID {
		return nil, false
	}

	route := p.State.Dataset.RouteServing(fromID, toID)
	if route == nil {
		return nil, false
	}

	direction, err := route.DirectionBetween(fromID, toID)
	if err != nil {
		return nil, false
	}

	now := opts.DepartureTime
	if now.IsZero() {
		now = time.Now()
	}
	if opts.MaxWaitMinutes <= 0 {
		opts.MaxWaitMinutes = DefaultMaxWaitMinutes
	}

	stationIDs := stationSlice(route, fromID, toID, direction)

	fromStation := p.State.Dataset.Station(fromID)
	toStation := p.State.Dataset.Station(toID)

	plan := &transit.JourneyPlan{
		FromStationID:   fromID,
		ToStationID:     toID,
		RouteID:         route.PrimaryIdentifier,
		Direction:       direction,
		TotalTime:       p.State.Dataset.TravelTimes.SumAlong(stationIDs),
		TotalDistanceKM: math.Abs(fromStation.DistanceFromOriginKM - toStation.DistanceFromOriginKM),
		StationIDs:      stationIDs,
	}

	if departure := p.liveDeparture(route, direction, fromID, snapshot, now, opts.MaxWaitMinutes, plan.TotalTime); departure != nil {
		plan.NextDeparture = departure
	} else {
		plan.NextDeparture = p.scheduledDeparture(route, direction, fromID, now, plan.TotalTime)
	}

	return plan, true
}

// liveDeparture asks the arrival predictor for the soonest qualifying train
// heading the right way at the origin. The route/direction filter is applied
// inside the predictor, before its truncation, so traffic in the opposite
// direction cannot push the qualifying train out of the window.
func (p *Planner) liveDeparture(route *transit.Route, direction transit.Direction, fromID string, snapshot *simulator.Snapshot, now time.Time, maxWaitMinutes int, totalTime time.Duration) *transit.Departure {
	predictions := p.Predictor.PredictArrivalsForLine(fromID, route.PrimaryIdentifier, direction, snapshot, now, departures.DefaultMaxArrivals)

	for _, prediction := range predictions {
		wait := prediction.ArrivalTime.Sub(now)
		if wait.Minutes() > float64(maxWaitMinutes) {
			continue
		}

		return &transit.Departure{
			Source:        transit.DepartureSourceLive,
			DepartureTime: prediction.ArrivalTime,
			ArrivalTime:   prediction.ArrivalTime.Add(totalTime),
			WaitMinutes:   int(math.Round(wait.Minutes())),
		}
	}

	return nil
}

// scheduledDeparture projects the next frequency-aligned slot at the origin.
// Outside service hours the projection rolls forward to the next window's
// start instead.
func (p *Planner) scheduledDeparture(route *transit.Route, direction transit.Direction, fromID string, now time.Time, totalTime time.Duration) *transit.Departure {
	originOffset := p.originOffset(route, direction, fromID)
	frequency := time.Duration(route.FrequencyMinutes) * time.Minute

	var departureTime time.Time

	if serviceStart, active := route.ServiceWindow.ActiveStart(now); active {
		firstAtOrigin := serviceStart.Add(originOffset)

		departureTime = firstAtOrigin
		if now.After(firstAtOrigin) {
			slots := int(now.Sub(firstAtOrigin)/frequency) + 1
			departureTime = firstAtOrigin.Add(time.Duration(slots) * frequency)
		}
	} else {
		departureTime = route.ServiceWindow.NextStart(now).Add(originOffset)
	}

	return &transit.Departure{
		Source:        transit.DepartureSourceScheduled,
		DepartureTime: departureTime,
		ArrivalTime:   departureTime.Add(totalTime),
		WaitMinutes:   int(math.Round(departureTime.Sub(now).Minutes())),
	}
}

// originOffset estimates the run time from the direction's first station to
// the origin at PerStationOffset per stop.
func (p *Planner) originOffset(route *transit.Route, direction transit.Direction, fromID string) time.Duration {
	ordered := route.OrderedStationIDs(direction)
	for i, id := range ordered {
		if id == fromID {
			return time.Duration(i) * PerStationOffset
		}
	}
	return 0
}

// stationSlice is the inclusive origin-to-destination station sequence in
// travel order.
func stationSlice(route *transit.Route, fromID string, toID string, direction transit.Direction) []string {
	ordered := route.OrderedStationIDs(direction)

	fromIndex := slices.Index(ordered, fromID)
	toIndex := slices.Index(ordered, toID)

	slice := make([]string, 0, toIndex-fromIndex+1)
	slice = append(slice, ordered[fromIndex:toIndex+1]...)
	return slice
}
