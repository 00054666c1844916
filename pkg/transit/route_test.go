package transit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRoute() *Route {
	return &Route{
		PrimaryIdentifier: "m1",
		Name:              "M1",
		StationIDs:        []string{"a", "b", "c", "d"},
		FrequencyMinutes:  10,
	}
}

func TestDirectionBetween(t *testing.T) {
	route := testRoute()

	direction, err := route.DirectionBetween("a", "c")
	require.NoError(t, err)
	assert.Equal(t, DirectionForward, direction)

	direction, err = route.DirectionBetween("d", "b")
	require.NoError(t, err)
	assert.Equal(t, DirectionBackward, direction)

	_, err = route.DirectionBetween("a", "a")
	assert.Error(t, err)

	_, err = route.DirectionBetween("a", "nowhere")
	assert.Error(t, err)
}

func TestOrderedStationIDs(t *testing.T) {
	route := testRoute()

	assert.Equal(t, []string{"a", "b", "c", "d"}, route.OrderedStationIDs(DirectionForward))
	assert.Equal(t, []string{"d", "c", "b", "a"}, route.OrderedStationIDs(DirectionBackward))
}

func TestParseClockTime(t *testing.T) {
	tests := []struct {
		input    string
		expected ClockTime
		wantErr  bool
	}{
		{input: "06:00", expected: ClockTime(360)},
		{input: "23:40", expected: ClockTime(1420)},
		{input: "00:00", expected: ClockTime(0)},
		{input: "24:00", wantErr: true},
		{input: "6am", wantErr: true},
		{input: "12:60", wantErr: true},
	}

	for _, test := range tests {
		parsed, err := ParseClockTime(test.input)
		if test.wantErr {
			assert.Error(t, err, test.input)
			continue
		}
		require.NoError(t, err, test.input)
		assert.Equal(t, test.expected, parsed, test.input)
	}
}

func TestServiceWindowActiveStart(t *testing.T) {
	day := func(hour, minute int) time.Time {
		return time.Date(2024, 5, 14, hour, minute, 0, 0, time.UTC)
	}

	window := ServiceWindow{Start: ClockTime(6 * 60), End: ClockTime(23*60 + 40)}

	start, active := window.ActiveStart(day(6, 47))
	require.True(t, active)
	assert.Equal(t, day(6, 0), start)

	_, active = window.ActiveStart(day(5, 30))
	assert.False(t, active)

	_, active = window.ActiveStart(day(23, 50))
	assert.False(t, active)
}

func TestServiceWindowOverMidnight(t *testing.T) {
	day := func(hour, minute int) time.Time {
		return time.Date(2024, 5, 14, hour, minute, 0, 0, time.UTC)
	}

	window := ServiceWindow{Start: ClockTime(23*60 + 40), End: ClockTime(1*60 + 30)}

	// Late evening, window started today
	start, active := window.ActiveStart(day(23, 55))
	require.True(t, active)
	assert.Equal(t, day(23, 40), start)

	// Early morning tail, window started yesterday
	start, active = window.ActiveStart(day(0, 45))
	require.True(t, active)
	assert.Equal(t, day(23, 40).AddDate(0, 0, -1), start)

	_, active = window.ActiveStart(day(12, 0))
	assert.False(t, active)
}

func TestServiceWindowNextStart(t *testing.T) {
	day := func(hour, minute int) time.Time {
		return time.Date(2024, 5, 14, hour, minute, 0, 0, time.UTC)
	}

	window := ServiceWindow{Start: ClockTime(6 * 60), End: ClockTime(23 * 60)}

	assert.Equal(t, day(6, 0), window.NextStart(day(3, 0)))
	assert.Equal(t, day(6, 0).AddDate(0, 0, 1), window.NextStart(day(12, 0)))
}

func TestTravelTimesFallback(t *testing.T) {
	travelTimes := TravelTimes{
		{From: "a", To: "b"}: 90,
	}

	seconds, published := travelTimes.Get("a", "b")
	assert.True(t, published)
	assert.Equal(t, 90, seconds)

	// Reverse direction falls back to the forward entry
	seconds, published = travelTimes.Get("b", "a")
	assert.True(t, published)
	assert.Equal(t, 90, seconds)

	// Missing pairs use the documented default, not an error
	seconds, published = travelTimes.Get("x", "y")
	assert.False(t, published)
	assert.Equal(t, DefaultSegmentSeconds, seconds)

	assert.Equal(t, 90*time.Second+DefaultSegmentSeconds*time.Second, travelTimes.SumAlong([]string{"a", "b", "z"}))
}
