package api

import (
	"time"

	"github.com/omerdikyol/rayda/pkg/api/routes"
	"github.com/omerdikyol/rayda/pkg/dataset"
	"github.com/omerdikyol/rayda/pkg/departures"
	"github.com/omerdikyol/rayda/pkg/planner"
	"github.com/omerdikyol/rayda/pkg/simulator"
	"github.com/omerdikyol/rayda/pkg/trackmap"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "simulator",
		Usage: "Runs the position simulation and its web API",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run the tick loop and serve positions, arrivals and journey plans",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "listen",
						Value: ":8080",
						Usage: "listen target for the web server",
					},
					&cli.StringFlag{
						Name:  "dataset",
						Value: "./data",
						Usage: "directory containing the static dataset",
					},
					&cli.DurationFlag{
						Name:  "tick",
						Value: 1 * time.Second,
						Usage: "simulation tick interval",
					},
				},
				Action: func(c *cli.Context) error {
					loaded, err := dataset.Load(c.String("dataset"))
					if err != nil {
						return err
					}

					mapper, err := trackmap.NewMapper(loaded)
					if err != nil {
						return err
					}

					state := simulator.NewState(loaded, mapper)
					engine := simulator.NewEngine(state, c.Duration("tick"))
					go engine.Run()
					defer engine.Stop()

					predictor := &departures.Predictor{State: state}

					return SetupServer(c.String("listen"), &routes.Stack{
						Engine:    engine,
						State:     state,
						Predictor: predictor,
						Planner:   &planner.Planner{State: state, Predictor: predictor},
					})
				},
			},
		},
	}
}
