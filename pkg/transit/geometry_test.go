package transit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGeometry() RouteGeometry {
	return RouteGeometry{
		RouteID: "m1",
		Segments: []Segment{
			{
				FromStationID:     "a",
				ToStationID:       "b",
				Path:              []Location{NewLocation(0, 0), NewLocation(0, 1)},
				DistanceMeters:    1000,
				TravelTimeSeconds: 90,
			},
			{
				FromStationID:     "b",
				ToStationID:       "c",
				Path:              []Location{NewLocation(0, 1), NewLocation(1, 1), NewLocation(2, 2)},
				DistanceMeters:    2500,
				TravelTimeSeconds: 120,
			},
		},
	}
}

func TestReverseRouteGeometry(t *testing.T) {
	forward := testGeometry()
	backward := ReverseRouteGeometry(forward)

	require.Len(t, backward.Segments, 2)

	// Segment order flips
	assert.Equal(t, "c", backward.Segments[0].FromStationID)
	assert.Equal(t, "b", backward.Segments[0].ToStationID)
	assert.Equal(t, "b", backward.Segments[1].FromStationID)
	assert.Equal(t, "a", backward.Segments[1].ToStationID)

	// Each segment's internal point order flips too
	assert.Equal(t, NewLocation(2, 2), backward.Segments[0].Path[0])
	assert.Equal(t, NewLocation(0, 1), backward.Segments[0].Path[2])

	// Totals are direction independent
	assert.Equal(t, forward.TotalDistanceMeters(), backward.TotalDistanceMeters())
	assert.Equal(t, forward.TotalTravelTime(), backward.TotalTravelTime())
}

func TestDirectedGeometry(t *testing.T) {
	forward := testGeometry()
	forward.PrecomputeReversed()

	assert.Same(t, &forward, forward.Directed(DirectionForward))

	// Backward orientation is built once and reused
	first := forward.Directed(DirectionBackward)
	second := forward.Directed(DirectionBackward)
	assert.Same(t, first, second)
	assert.Equal(t, "c", first.Segments[0].FromStationID)

	// Ad-hoc geometries still orient correctly, just without reuse
	adhoc := testGeometry()
	assert.Equal(t, "c", adhoc.Directed(DirectionBackward).Segments[0].FromStationID)
}

func TestReverseRouteGeometryRoundTrip(t *testing.T) {
	forward := testGeometry()

	roundTripped := ReverseRouteGeometry(ReverseRouteGeometry(forward))

	assert.Equal(t, forward, roundTripped)
}
