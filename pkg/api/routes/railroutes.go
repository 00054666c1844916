package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"
)

func (s *Stack) RoutesRouter(router fiber.Router) {
	router.Get("/", s.listRoutes)
	router.Get("/:identifier", s.getRoute)
	router.Get("/:identifier/geometry", s.getRouteGeometry)
}

// listRoutes exposes each route's frequency and service window so consumers
// can render timetable hints.
func (s *Stack) listRoutes(c *fiber.Ctx) error {
	routesReduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: []string{"basic"},
	}, s.State.Dataset.Routes)
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Sherrif could not reduce Routes",
		})
	}

	return c.JSON(routesReduced)
}

func (s *Stack) getRoute(c *fiber.Ctx) error {
	route := s.State.Dataset.Route(c.Params("identifier"))
	if route == nil {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"error": "Could not find Route matching Route Identifier",
		})
	}

	routeReduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: []string{"basic"},
	}, route)
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Sherrif could not reduce Route",
		})
	}

	return c.JSON(routeReduced)
}

func (s *Stack) getRouteGeometry(c *fiber.Ctx) error {
	geometry := s.State.Geometry(c.Params("identifier"))
	if geometry == nil {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"error": "Could not find Geometry matching Route Identifier",
		})
	}

	groups := []string{"basic"}
	if c.QueryBool("detailed", false) {
		groups = append(groups, "detailed")
	}

	geometryReduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: groups,
	}, geometry)
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Sherrif could not reduce Route Geometry",
		})
	}

	return c.JSON(geometryReduced)
}
