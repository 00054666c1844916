package simulator

import (
	"time"

	"github.com/omerdikyol/rayda/pkg/transit"
)

// MaxJourneyCeiling bounds how long after departure an instance can still be
// considered live, whatever the route's nominal travel time says.
const MaxJourneyCeiling = 2 * time.Hour

// GenerateFleet synthesizes the train instances that should exist for a
// route at the given instant. The result is deterministic for a fixed
// (route, now), so callers can re-run it every tick and replace their fleet
// without accumulating duplicates.
//
// Backward-direction departures are phase-shifted by half the frequency so
// the two directions interleave on the map. That is a presentation policy,
// not a physical constraint.
func GenerateFleet(route *transit.Route, now time.Time) []transit.TrainInstance {
	serviceStart, active := route.ServiceWindow.ActiveStart(now)
	if !active {
		return nil
	}

	frequency := time.Duration(route.FrequencyMinutes) * time.Minute
	backwardShift := time.Duration(route.FrequencyMinutes/2) * time.Minute

	var instances []transit.TrainInstance
	instances = append(instances, generateDirection(route, transit.DirectionForward, serviceStart, frequency, now)...)
	instances = append(instances, generateDirection(route, transit.DirectionBackward, serviceStart.Add(backwardShift), frequency, now)...)

	return instances
}

func generateDirection(route *transit.Route, direction transit.Direction, firstDeparture time.Time, frequency time.Duration, now time.Time) []transit.TrainInstance {
	if now.Before(firstDeparture) {
		return nil
	}

	// Number of departures already dispatched, including one at the exact
	// window start
	dispatched := int(now.Sub(firstDeparture)/frequency) + 1

	instances := make([]transit.TrainInstance, 0, dispatched)
	for index := 0; index < dispatched; index++ {
		departureTime := firstDeparture.Add(time.Duration(index) * frequency)

		// Yet-to-depart trains are invisible
		if departureTime.After(now) {
			continue
		}

		// Bound memory growth on long-running processes
		if now.Sub(departureTime) >= MaxJourneyCeiling {
			continue
		}

		instances = append(instances, transit.NewTrainInstance(route.PrimaryIdentifier, direction, index, departureTime))
	}

	return instances
}
