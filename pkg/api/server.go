package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/omerdikyol/rayda/pkg/api/routes"
)

func SetupServer(listen string, stack *routes.Stack) error {
	webApp := fiber.New()
	webApp.Use(NewLogger())

	group := webApp.Group("/core")

	group.Get("version", routes.APIVersion)

	stack.PositionsRouter(group.Group("/positions"))

	stack.StationsRouter(group.Group("/stations"))

	stack.RoutesRouter(group.Group("/routes"))

	stack.PlannerRouter(group.Group("/planner"))

	stack.TrackmapRouter(group.Group("/trackmap"))

	return webApp.Listen(listen)
}
