package dataset

import (
	"fmt"

	"github.com/kr/pretty"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "dataset",
		Usage: "Static schedule & geometry dataset tools",
		Subcommands: []*cli.Command{
			{
				Name:  "inspect",
				Usage: "parse the dataset and dump what was understood",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "dataset",
						Value: "./data",
						Usage: "directory containing the dataset files",
					},
				},
				Action: func(c *cli.Context) error {
					loaded, err := Load(c.String("dataset"))
					if err != nil {
						return err
					}

					for _, route := range loaded.Routes {
						pretty.Println(route)
					}
					for _, station := range loaded.Stations {
						pretty.Println(station)
					}

					fmt.Printf("%d polylines, %d travel time entries, degraded=%v\n",
						len(loaded.Polylines), len(loaded.TravelTimes), loaded.DegradedGeometry)

					return nil
				},
			},
		},
	}
}
