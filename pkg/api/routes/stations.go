package routes

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"
	"github.com/omerdikyol/rayda/pkg/departures"
	"github.com/omerdikyol/rayda/pkg/transit"

	iso8601 "github.com/senseyeio/duration"
)

func (s *Stack) StationsRouter(router fiber.Router) {
	router.Get("/", s.listStations)
	router.Get("/:identifier", s.getStation)
	router.Get("/:identifier/arrivals", s.getStationArrivals)
}

func (s *Stack) listStations(c *fiber.Ctx) error {
	stations := make([]*transit.Station, 0, len(s.State.Dataset.Stations))
	for _, station := range s.State.Dataset.Stations {
		stations = append(stations, station)
	}

	stationsReduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: []string{"basic", "detailed"},
	}, stations)
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Sherrif could not reduce Stations",
		})
	}

	return c.JSON(stationsReduced)
}

func (s *Stack) getStation(c *fiber.Ctx) error {
	station := s.State.Dataset.Station(c.Params("identifier"))
	if station == nil {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"error": "Could not find Station matching Station Identifier",
		})
	}

	stationReduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: []string{"basic", "detailed"},
	}, station)
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Sherrif could not reduce Station",
		})
	}

	return c.JSON(stationReduced)
}

// getStationArrivals returns the top-N upcoming arrivals at a station. An
// optional ISO8601 horizon query (eg. PT20M) narrows the prediction window
// below the built-in sanity limit.
func (s *Stack) getStationArrivals(c *fiber.Ctx) error {
	stationID := c.Params("identifier")

	if s.State.Dataset.Station(stationID) == nil {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"error": "Could not find Station matching Station Identifier",
		})
	}

	maxResults, err := strconv.Atoi(c.Query("max", "5"))
	if err != nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Parameter max should be an integer",
		})
	}

	now := time.Now()
	horizonCutoff := now.Add(departures.PredictionHorizon)

	if horizonQuery := c.Query("horizon"); horizonQuery != "" {
		horizonDuration, err := iso8601.ParseISO8601(horizonQuery)
		if err != nil {
			c.SendStatus(fiber.StatusBadRequest)
			return c.JSON(fiber.Map{
				"error": "Parameter horizon should be an ISO8601 duration",
			})
		}
		horizonCutoff = horizonDuration.Shift(now)
	}

	predictions := s.Predictor.PredictArrivals(stationID, s.Engine.Latest(), now, maxResults)

	filtered := predictions[:0]
	for _, prediction := range predictions {
		if prediction.ArrivalTime.Before(horizonCutoff) {
			filtered = append(filtered, prediction)
		}
	}

	// Absence of arrivals is a normal, displayable state
	if len(filtered) == 0 {
		return c.JSON([]transit.ArrivalPrediction{})
	}

	predictionsReduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: []string{"basic"},
	}, filtered)
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Sherrif could not reduce Arrival Predictions",
		})
	}

	return c.JSON(predictionsReduced)
}
