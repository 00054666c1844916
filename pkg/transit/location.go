package transit

import "math"

const earthRadiusMeters = 6371000

type Location struct {
	Type        string    `json:"-" groups:"basic"`
	Coordinates []float64 `json:"coordinates" groups:"basic"`
}

func NewLocation(lon float64, lat float64) Location {
	return Location{
		Type:        "Point",
		Coordinates: []float64{lon, lat},
	}
}

func (l *Location) Lon() float64 {
	return l.Coordinates[0]
}

func (l *Location) Lat() float64 {
	return l.Coordinates[1]
}

// DistanceTo returns the great-circle (Haversine) distance in meters
func (l *Location) DistanceTo(other Location) float64 {
	phi1 := l.Lat() * math.Pi / 180
	phi2 := other.Lat() * math.Pi / 180
	deltaPhi := (other.Lat() - l.Lat()) * math.Pi / 180
	deltaLambda := (other.Lon() - l.Lon()) * math.Pi / 180

	a := math.Sin(deltaPhi/2)*math.Sin(deltaPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(deltaLambda/2)*math.Sin(deltaLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

// BearingTo returns the forward azimuth from this point to other in degrees (0-360)
func (l *Location) BearingTo(other Location) float64 {
	phi1 := l.Lat() * math.Pi / 180
	phi2 := other.Lat() * math.Pi / 180
	deltaLambda := (other.Lon() - l.Lon()) * math.Pi / 180

	x := math.Sin(deltaLambda) * math.Cos(phi2)
	y := math.Cos(phi1)*math.Sin(phi2) - math.Sin(phi1)*math.Cos(phi2)*math.Cos(deltaLambda)

	bearing := math.Atan2(x, y) * 180 / math.Pi
	return math.Mod(bearing+360, 360)
}

// InterpolateTo linearly interpolates between this point and other.
// Good enough for the short inter-station hops we deal with.
func (l *Location) InterpolateTo(other Location, fraction float64) Location {
	return NewLocation(
		l.Lon()+(other.Lon()-l.Lon())*fraction,
		l.Lat()+(other.Lat()-l.Lat())*fraction,
	)
}

// PathLength returns the arc length of a polyline in meters
func PathLength(path []Location) float64 {
	var total float64
	for i := 1; i < len(path); i++ {
		total += path[i-1].DistanceTo(path[i])
	}
	return total
}

// PointAlongPath walks a polyline by arc length and returns the point at
// targetMeters from its start. Interpolation is by accumulated distance, not
// point index, so uneven point density doesn't distort apparent speed.
func PointAlongPath(path []Location, targetMeters float64) Location {
	if len(path) == 0 {
		return NewLocation(0, 0)
	}
	if targetMeters <= 0 {
		return path[0]
	}

	var travelled float64
	for i := 1; i < len(path); i++ {
		step := path[i-1].DistanceTo(path[i])

		if travelled+step >= targetMeters {
			if step == 0 {
				return path[i]
			}
			fraction := (targetMeters - travelled) / step
			return path[i-1].InterpolateTo(path[i], fraction)
		}

		travelled += step
	}

	return path[len(path)-1]
}
