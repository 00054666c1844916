package transit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceTo(t *testing.T) {
	konak := NewLocation(27.1280, 38.4190)
	halkapinar := NewLocation(27.1670, 38.4350)

	distance := konak.DistanceTo(halkapinar)

	// Roughly 3.8km apart across the bay side
	assert.InDelta(t, 3800, distance, 300)

	assert.Zero(t, konak.DistanceTo(konak))
}

func TestBearingTo(t *testing.T) {
	origin := NewLocation(27.0, 38.0)

	north := NewLocation(27.0, 38.5)
	assert.InDelta(t, 0, origin.BearingTo(north), 0.5)

	east := NewLocation(27.5, 38.0)
	assert.InDelta(t, 90, origin.BearingTo(east), 0.5)

	south := NewLocation(27.0, 37.5)
	assert.InDelta(t, 180, origin.BearingTo(south), 0.5)
}

func TestPointAlongPath(t *testing.T) {
	path := []Location{
		NewLocation(0, 0),
		NewLocation(0, 1),
		NewLocation(0, 3),
	}
	total := PathLength(path)

	halfway := PointAlongPath(path, total/2)
	assert.InDelta(t, 0, halfway.Lon(), 1e-9)
	assert.InDelta(t, 1.5, halfway.Lat(), 0.01)

	start := PointAlongPath(path, -5)
	assert.Equal(t, path[0], start)

	end := PointAlongPath(path, total*2)
	assert.Equal(t, path[2], end)
}

func TestPointAlongPathUnevenDensity(t *testing.T) {
	// Many points bunched at the start must not slow apparent movement
	dense := []Location{
		NewLocation(0, 0),
		NewLocation(0, 0.01),
		NewLocation(0, 0.02),
		NewLocation(0, 0.03),
		NewLocation(0, 2),
	}
	total := PathLength(dense)

	halfway := PointAlongPath(dense, total/2)
	assert.InDelta(t, 1.0, halfway.Lat(), 0.01)
}
