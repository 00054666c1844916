package routes

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"
	"github.com/omerdikyol/rayda/pkg/planner"
)

func (s *Stack) PlannerRouter(router fiber.Router) {
	router.Get("/:origin/:destination", s.getPlanBetweenStations)
}

func (s *Stack) getPlanBetweenStations(c *fiber.Ctx) error {
	originIdentifier := c.Params("origin")
	destinationIdentifier := c.Params("destination")

	maxWait, err := strconv.Atoi(c.Query("maxwait", "30"))
	if err != nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Parameter maxwait should be an integer",
		})
	}

	var departureTime time.Time
	if datetimeQuery := c.Query("datetime"); datetimeQuery != "" {
		departureTime, err = time.Parse(time.RFC3339, datetimeQuery)
		if err != nil {
			c.SendStatus(fiber.StatusBadRequest)
			return c.JSON(fiber.Map{
				"error": "Parameter datetime should be an RFC3339/ISO8601 datetime",
			})
		}
	}

	plan, found := s.Planner.PlanJourney(originIdentifier, destinationIdentifier, s.Engine.Latest(), planner.Options{
		DepartureTime:  departureTime,
		MaxWaitMinutes: maxWait,
	})
	if !found {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"error": "No route connects the two stations",
		})
	}

	planReduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: []string{"basic"},
	}, plan)
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Sherrif could not reduce Journey Plan",
		})
	}

	return c.JSON(planReduced)
}
