package transit

import "time"

// DefaultSegmentSeconds is the documented fallback used when no travel time
// has been published for a station pair.
const DefaultSegmentSeconds = 120

type StationPair struct {
	From string
	To   string
}

// TravelTimes maps directional station pairs to their scheduled journey time
// in seconds. Forward and backward entries may differ but usually don't.
type TravelTimes map[StationPair]int

// Get returns the travel time for a pair, trying the opposite direction
// before falling back to DefaultSegmentSeconds. The fallback is policy, not
// an error.
func (t TravelTimes) Get(fromID string, toID string) (int, bool) {
	if seconds, exists := t[StationPair{From: fromID, To: toID}]; exists {
		return seconds, true
	}
	if seconds, exists := t[StationPair{From: toID, To: fromID}]; exists {
		return seconds, true
	}

	return DefaultSegmentSeconds, false
}

// SumAlong totals the travel time over consecutive pairs of an ordered
// station sequence.
func (t TravelTimes) SumAlong(stationIDs []string) time.Duration {
	var totalSeconds int
	for i := 1; i < len(stationIDs); i++ {
		seconds, _ := t.Get(stationIDs[i-1], stationIDs[i])
		totalSeconds += seconds
	}

	return time.Duration(totalSeconds) * time.Second
}
