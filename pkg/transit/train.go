package transit

import (
	"fmt"
	"time"
)

var TrainInstanceIDFormat = "TRAIN:%s:%s:%d"

// TrainInstance is one synthesized departure of a route. Instances are
// ephemeral and regenerated on every fleet refresh; the identifier is
// deterministic from (route, direction, departure index) so regeneration is
// idempotent.
type TrainInstance struct {
	PrimaryIdentifier string `groups:"basic"`

	RouteID   string    `groups:"basic"`
	Direction Direction `groups:"basic"`

	DepartureTime time.Time `groups:"basic"`
}

func NewTrainInstance(routeID string, direction Direction, departureIndex int, departureTime time.Time) TrainInstance {
	return TrainInstance{
		PrimaryIdentifier: fmt.Sprintf(TrainInstanceIDFormat, routeID, direction, departureIndex),
		RouteID:           routeID,
		Direction:         direction,
		DepartureTime:     departureTime,
	}
}
