package main

import (
	"log"
	"os"

	"github.com/b1naryth1ef/strata"
	"github.com/b1naryth1ef/strata/run"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:        "strata",
		Description: "procedural terrain chunk streamer",
		Commands: []*cli.Command{
			{
				Name:   "run",
				Action: commandRun,
				Flags: []cli.Flag{
					&cli.PathFlag{
						Name:  "config",
						Usage: "path to the configuration file",
						Value: "config.hcl",
					},
					&cli.IntFlag{
						Name:  "ticks",
						Usage: "cap the number of frames processed",
						Value: 0,
					},
					&cli.BoolFlag{
						Name:  "clean",
						Usage: "remove previously painted tiles before the session",
						Value: false,
					},
				},
			},
			{
				Name:   "chunk",
				Action: commandChunk,
				Flags: []cli.Flag{
					&cli.PathFlag{
						Name:  "config",
						Usage: "path to the configuration file",
						Value: "config.hcl",
					},
					&cli.IntFlag{
						Name:     "x",
						Usage:    "chunk x origin",
						Required: true,
					},
					&cli.IntFlag{
						Name:     "y",
						Usage:    "chunk y origin",
						Required: true,
					},
					&cli.PathFlag{
						Name:  "out",
						Usage: "directory to write the tile image to",
						Value: "out",
					},
				},
			},
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal(err)
	}
}

func commandRun(ctx *cli.Context) error {
	config, err := strata.LoadConfig(ctx.Path("config"))
	if err != nil {
		return err
	}

	return run.Run(config, run.RunOpts{
		Ticks:      ctx.Int("ticks"),
		ForceClean: ctx.Bool("clean"),
	})
}

func commandChunk(ctx *cli.Context) error {
	config, err := strata.LoadConfig(ctx.Path("config"))
	if err != nil {
		return err
	}

	coord := strata.Coord{X: ctx.Int("x"), Y: ctx.Int("y")}
	return run.Chunk(config, coord, ctx.Path("out"))
}
