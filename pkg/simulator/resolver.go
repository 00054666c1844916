package simulator

import (
	"time"

	"github.com/omerdikyol/rayda/pkg/transit"
)

// ResolvePosition converts elapsed time since departure into a coordinate,
// bearing and progress metadata along the mapped route geometry. The second
// return is false when the train is not live: not yet departed, or its
// journey is complete (finished trains disappear, they are not looped).
func ResolvePosition(instance transit.TrainInstance, geometry *transit.RouteGeometry, now time.Time) (transit.TrainPosition, bool) {
	elapsed := now.Sub(instance.DepartureTime)
	if elapsed < 0 {
		return transit.TrainPosition{}, false
	}

	directed := geometry.Directed(instance.Direction)

	totalTime := directed.TotalTravelTime()
	if totalTime <= 0 || elapsed >= totalTime {
		return transit.TrainPosition{}, false
	}

	progress := elapsed.Seconds() / totalTime.Seconds()
	targetMeters := directed.TotalDistanceMeters() * progress

	segment, segmentStartMeters := locateSegment(directed, targetMeters)
	metersIntoSegment := targetMeters - segmentStartMeters

	segmentProgress := 0.0
	if segment.DistanceMeters > 0 {
		segmentProgress = metersIntoSegment / segment.DistanceMeters
	}

	position := transit.PointAlongPath(segment.Path, metersIntoSegment)

	return transit.TrainPosition{
		TrainID:                   instance.PrimaryIdentifier,
		RouteID:                   instance.RouteID,
		Direction:                 instance.Direction,
		Location:                  position,
		BearingDegrees:            bearingAlong(segment, position, metersIntoSegment),
		ProgressFraction:          progress,
		SegmentFromStationID:      segment.FromStationID,
		SegmentToStationID:        segment.ToStationID,
		SegmentProgress:           segmentProgress,
		FinalDestinationStationID: directed.Segments[len(directed.Segments)-1].ToStationID,
	}, true
}

// locateSegment walks the directed geometry accumulating distance until the
// target falls inside one segment.
func locateSegment(geometry *transit.RouteGeometry, targetMeters float64) (*transit.Segment, float64) {
	var travelled float64
	for i := range geometry.Segments {
		segment := &geometry.Segments[i]

		if travelled+segment.DistanceMeters >= targetMeters {
			return segment, travelled
		}
		travelled += segment.DistanceMeters
	}

	// Rounding pushed the target just past the end
	last := &geometry.Segments[len(geometry.Segments)-1]
	return last, travelled - last.DistanceMeters
}

// bearingAlong looks slightly further along the path (1% of the segment) so
// a train crossing many short, nearly straight polyline chunks still shows a
// continuously updated heading.
func bearingAlong(segment *transit.Segment, position transit.Location, metersIntoSegment float64) float64 {
	lookAhead := metersIntoSegment + segment.DistanceMeters*0.01
	if lookAhead > segment.DistanceMeters {
		lookAhead = segment.DistanceMeters
	}

	ahead := transit.PointAlongPath(segment.Path, lookAhead)
	if ahead.Lon() == position.Lon() && ahead.Lat() == position.Lat() {
		// At the very end of the segment; aim backwards instead and flip
		behind := transit.PointAlongPath(segment.Path, metersIntoSegment-segment.DistanceMeters*0.01)
		return behind.BearingTo(position)
	}

	return position.BearingTo(ahead)
}
