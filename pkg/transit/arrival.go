package transit

import "time"

// ArrivalPrediction estimates when a live train reaches a station.
type ArrivalPrediction struct {
	TrainID string `groups:"basic"`

	RouteID   string    `groups:"basic"`
	Direction Direction `groups:"basic"`

	ArrivalTime time.Time `groups:"basic"`
	MinutesAway int       `groups:"basic"`

	FinalDestinationStationID string `groups:"basic"`

	// Heuristic 0-1 score decaying with prediction distance
	Confidence float64 `groups:"basic"`
}
