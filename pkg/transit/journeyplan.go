package transit

import "time"

type DepartureSource string

const (
	DepartureSourceLive      DepartureSource = "live"
	DepartureSourceScheduled DepartureSource = "scheduled"
)

// Departure is the next viable boarding opportunity for a journey, either
// taken from a live train or projected from the schedule frequency.
type Departure struct {
	Source DepartureSource `groups:"basic"`

	DepartureTime time.Time `groups:"basic"`
	ArrivalTime   time.Time `groups:"basic"`

	WaitMinutes int `groups:"basic"`
}

type JourneyPlan struct {
	FromStationID string `groups:"basic"`
	ToStationID   string `groups:"basic"`

	RouteID   string    `groups:"basic"`
	Direction Direction `groups:"basic"`

	TotalTime       time.Duration `groups:"basic"`
	TotalDistanceKM float64       `groups:"basic"`

	// Inclusive station slice from origin to destination in travel order
	StationIDs []string `groups:"basic"`

	NextDeparture *Departure `groups:"basic"`
}
