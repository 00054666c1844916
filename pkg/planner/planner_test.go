package planner

import (
	"strconv"
	"testing"
	"time"

	"github.com/omerdikyol/rayda/pkg/dataset"
	"github.com/omerdikyol/rayda/pkg/departures"
	"github.com/omerdikyol/rayda/pkg/simulator"
	"github.com/omerdikyol/rayda/pkg/transit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plannerTestSetup() *Planner {
	location := transit.NewLocation(27.0, 38.4)

	state := &simulator.State{
		Dataset: &dataset.Dataset{
			Stations: map[string]*transit.Station{
				"a": {PrimaryIdentifier: "a", Name: "A", Location: &location},
				"b": {PrimaryIdentifier: "b", Name: "B", Location: &location, DistanceFromOriginKM: 2.0},
				"c": {PrimaryIdentifier: "c", Name: "C", Location: &location, DistanceFromOriginKM: 4.1},
				"d": {PrimaryIdentifier: "d", Name: "D", Location: &location, DistanceFromOriginKM: 6.0},
			},
			Routes: []*transit.Route{
				{
					PrimaryIdentifier: "m1",
					Name:              "M1",
					StationIDs:        []string{"a", "b", "c", "d"},
					FrequencyMinutes:  10,
					ServiceWindow: transit.ServiceWindow{
						Start: transit.ClockTime(6 * 60),
						End:   transit.ClockTime(23 * 60),
					},
				},
			},
			TravelTimes: transit.TravelTimes{
				{From: "a", To: "b"}: 120,
				{From: "b", To: "c"}: 120,
				{From: "c", To: "d"}: 180,
			},
		},
	}

	return &Planner{
		State:     state,
		Predictor: &departures.Predictor{State: state},
	}
}

func TestPlanJourneyForward(t *testing.T) {
	planner := plannerTestSetup()
	now := time.Date(2024, 5, 14, 9, 0, 0, 0, time.UTC)

	plan, found := planner.PlanJourney("a", "d", nil, Options{DepartureTime: now})
	require.True(t, found)

	assert.Equal(t, "m1", plan.RouteID)
	assert.Equal(t, transit.DirectionForward, plan.Direction)
	assert.Equal(t, []string{"a", "b", "c", "d"}, plan.StationIDs)
	assert.Equal(t, 420*time.Second, plan.TotalTime)
	assert.InDelta(t, 6.0, plan.TotalDistanceKM, 1e-9)
	require.NotNil(t, plan.NextDeparture)
}

func TestPlanJourneyDirectionSymmetry(t *testing.T) {
	planner := plannerTestSetup()
	now := time.Date(2024, 5, 14, 9, 0, 0, 0, time.UTC)

	forward, found := planner.PlanJourney("b", "d", nil, Options{DepartureTime: now})
	require.True(t, found)
	backward, found := planner.PlanJourney("d", "b", nil, Options{DepartureTime: now})
	require.True(t, found)

	assert.Equal(t, transit.DirectionForward, forward.Direction)
	assert.Equal(t, transit.DirectionBackward, backward.Direction)

	// Time and distance don't care which way you ride
	assert.Equal(t, forward.TotalTime, backward.TotalTime)
	assert.InDelta(t, forward.TotalDistanceKM, backward.TotalDistanceKM, 1e-9)

	assert.Equal(t, []string{"b", "c", "d"}, forward.StationIDs)
	assert.Equal(t, []string{"d", "c", "b"}, backward.StationIDs)
}

func TestPlanJourneyRejections(t *testing.T) {
	planner := plannerTestSetup()

	_, found := planner.PlanJourney("a", "a", nil, Options{})
	assert.False(t, found)

	_, found = planner.PlanJourney("a", "nowhere", nil, Options{})
	assert.False(t, found)
}

func TestPlanJourneyScheduledDuringService(t *testing.T) {
	planner := plannerTestSetup()
	now := time.Date(2024, 5, 14, 8, 1, 0, 0, time.UTC)

	plan, found := planner.PlanJourney("a", "c", nil, Options{DepartureTime: now})
	require.True(t, found)

	departure := plan.NextDeparture
	require.NotNil(t, departure)
	assert.Equal(t, transit.DepartureSourceScheduled, departure.Source)

	// Origin slots run on the raw frequency from 06:00; next after 08:01 is
	// 08:10
	assert.Equal(t, time.Date(2024, 5, 14, 8, 10, 0, 0, time.UTC), departure.DepartureTime)
	assert.Equal(t, 9, departure.WaitMinutes)
	assert.Equal(t, departure.DepartureTime.Add(plan.TotalTime), departure.ArrivalTime)
}

func TestPlanJourneyScheduledOutsideService(t *testing.T) {
	planner := plannerTestSetup()
	now := time.Date(2024, 5, 14, 3, 0, 0, 0, time.UTC)

	plan, found := planner.PlanJourney("b", "d", nil, Options{DepartureTime: now})
	require.True(t, found)

	departure := plan.NextDeparture
	require.NotNil(t, departure)
	assert.Equal(t, transit.DepartureSourceScheduled, departure.Source)

	// Window opens 06:00, b is one stop down the line
	assert.Equal(t, time.Date(2024, 5, 14, 6, 2, 0, 0, time.UTC), departure.DepartureTime)
	assert.Equal(t, 182, departure.WaitMinutes)
}

func TestPlanJourneyLiveDeparture(t *testing.T) {
	planner := plannerTestSetup()
	now := time.Date(2024, 5, 14, 9, 0, 0, 0, time.UTC)

	snapshot := &simulator.Snapshot{
		Sequence:    1,
		GeneratedAt: now,
		Positions: []transit.TrainPosition{
			{
				TrainID:              "TRAIN:m1:forward:18",
				RouteID:              "m1",
				Direction:            transit.DirectionForward,
				SegmentFromStationID: "a",
				SegmentToStationID:   "b",
				SegmentProgress:      0.5,
			},
		},
	}

	plan, found := planner.PlanJourney("b", "d", snapshot, Options{DepartureTime: now})
	require.True(t, found)

	departure := plan.NextDeparture
	require.NotNil(t, departure)
	assert.Equal(t, transit.DepartureSourceLive, departure.Source)
	assert.Equal(t, now.Add(60*time.Second), departure.DepartureTime)
	assert.Equal(t, 1, departure.WaitMinutes)
	assert.Equal(t, departure.DepartureTime.Add(plan.TotalTime), departure.ArrivalTime)
}

func TestPlanJourneyLiveDepartureNotCrowdedOut(t *testing.T) {
	planner := plannerTestSetup()
	now := time.Date(2024, 5, 14, 9, 0, 0, 0, time.UTC)

	// Five backward trains all reach b sooner than the one qualifying
	// forward train; the plan must still pick up the forward one
	positions := []transit.TrainPosition{
		{
			TrainID:              "TRAIN:m1:forward:18",
			RouteID:              "m1",
			Direction:            transit.DirectionForward,
			SegmentFromStationID: "a",
			SegmentToStationID:   "b",
			SegmentProgress:      0,
		},
	}
	for i := 0; i < 5; i++ {
		positions = append(positions, transit.TrainPosition{
			TrainID:              "TRAIN:m1:backward:" + strconv.Itoa(i),
			RouteID:              "m1",
			Direction:            transit.DirectionBackward,
			SegmentFromStationID: "c",
			SegmentToStationID:   "b",
			SegmentProgress:      0.95 - float64(i)*0.05,
		})
	}

	snapshot := &simulator.Snapshot{Sequence: 1, GeneratedAt: now, Positions: positions}

	plan, found := planner.PlanJourney("b", "d", snapshot, Options{DepartureTime: now})
	require.True(t, found)

	departure := plan.NextDeparture
	require.NotNil(t, departure)
	assert.Equal(t, transit.DepartureSourceLive, departure.Source)
	assert.Equal(t, now.Add(120*time.Second), departure.DepartureTime)
}

func TestPlanJourneyLiveTooFarFallsBackToSchedule(t *testing.T) {
	planner := plannerTestSetup()
	now := time.Date(2024, 5, 14, 9, 0, 0, 0, time.UTC)

	snapshot := &simulator.Snapshot{
		Sequence:    1,
		GeneratedAt: now,
		Positions: []transit.TrainPosition{
			{
				TrainID:              "TRAIN:m1:forward:18",
				RouteID:              "m1",
				Direction:            transit.DirectionForward,
				SegmentFromStationID: "a",
				SegmentToStationID:   "b",
				SegmentProgress:      0.5,
			},
		},
	}

	plan, found := planner.PlanJourney("b", "d", snapshot, Options{DepartureTime: now, MaxWaitMinutes: -1})
	require.True(t, found)
	assert.Equal(t, transit.DepartureSourceLive, plan.NextDeparture.Source)

	// A one-minute cap is stricter than the train can satisfy only if we
	// shrink it below the predicted wait
	snapshot.Positions[0].SegmentProgress = 0
	plan, found = planner.PlanJourney("b", "d", snapshot, Options{DepartureTime: now, MaxWaitMinutes: 1})
	require.True(t, found)
	assert.Equal(t, transit.DepartureSourceScheduled, plan.NextDeparture.Source)
}
