package transit

// TrainPosition is the per-tick derived location of a live train. Recomputed
// from scratch every tick and never stored beyond the current snapshot.
type TrainPosition struct {
	TrainID string `groups:"basic"`

	RouteID   string    `groups:"basic"`
	Direction Direction `groups:"basic"`

	Location       Location `groups:"basic"`
	BearingDegrees float64  `groups:"basic"`

	// 0-1 over the whole route in the direction of travel
	ProgressFraction float64 `groups:"basic"`

	SegmentFromStationID string `groups:"basic"`
	SegmentToStationID   string `groups:"basic"`

	// 0-1 within the current segment
	SegmentProgress float64 `groups:"detailed"`

	// What a destination sign would display
	FinalDestinationStationID string `groups:"basic"`
}
