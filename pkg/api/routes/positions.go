package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"
)

func (s *Stack) PositionsRouter(router fiber.Router) {
	router.Get("/", s.getPositions)
}

// getPositions publishes the latest tick's snapshot: one record per live
// train with coordinate, bearing, segment and progress metadata. This is
// the contract the map layer renders from.
func (s *Stack) getPositions(c *fiber.Ctx) error {
	snapshot := s.Engine.Latest()
	if snapshot == nil {
		c.SendStatus(fiber.StatusServiceUnavailable)
		return c.JSON(fiber.Map{
			"error": "Simulation has not produced a snapshot yet",
		})
	}

	groups := []string{"basic"}
	if c.QueryBool("detailed", false) {
		groups = append(groups, "detailed")
	}

	snapshotReduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: groups,
	}, snapshot)
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Sherrif could not reduce Snapshot",
		})
	}

	return c.JSON(snapshotReduced)
}
