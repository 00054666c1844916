package routes

import (
	"github.com/gofiber/fiber/v2"
)

func (s *Stack) TrackmapRouter(router fiber.Router) {
	router.Get("/exclusions", s.getExclusions)
	router.Post("/exclusions", s.addExclusions)
}

// Administrative interface for repairing bad track matches; not part of the
// steady-state contract.

func (s *Stack) getExclusions(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"exclusions": s.State.Mapper.Exclusions(),
	})
}

type addExclusionsRequest struct {
	IDs []string `json:"ids"`
}

// addExclusions marks polylines as wrong matches and synchronously remaps
// every route, so the next tick already runs on repaired geometry.
func (s *Stack) addExclusions(c *fiber.Ctx) error {
	var request addExclusionsRequest
	if err := c.BodyParser(&request); err != nil || len(request.IDs) == 0 {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Body should contain a non-empty ids array",
		})
	}

	s.State.ReplaceGeometries(s.State.Mapper.Exclude(request.IDs...))

	return c.JSON(fiber.Map{
		"exclusions": s.State.Mapper.Exclusions(),
	})
}
