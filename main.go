package main

import (
	"os"

	"github.com/auriga-render/auriga/cmd"
	"github.com/urfave/cli"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "auriga"
	app.Usage = "render scenes using path tracing"
	app.Version = "0.0.1"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a builtin scene to a png file",
			Description: `
Compile the named builtin scene into the flat buffer layout used by the
tracer, render it with the cpu tracer pool and write the tonemapped frame
to a png file.`,
			ArgsUsage: "scene_name",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "width",
					Value: 512,
					Usage: "frame width",
				},
				cli.IntFlag{
					Name:  "height",
					Value: 512,
					Usage: "frame height",
				},
				cli.IntFlag{
					Name:  "spp",
					Value: 16,
					Usage: "samples per pixel",
				},
				cli.IntFlag{
					Name:  "num-bounces",
					Value: 5,
					Usage: "number of indirect ray bounces",
				},
				cli.IntFlag{
					Name:  "frames",
					Value: 1,
					Usage: "number of accumulated frames to render",
				},
				cli.Float64Flag{
					Name:  "exposure",
					Value: 1.0,
					Usage: "camera exposure for tone-mapping",
				},
				cli.IntFlag{
					Name:  "seed",
					Usage: "extra seed folded into the per-pixel random streams",
				},
				cli.IntFlag{
					Name:  "workers",
					Usage: "number of render workers; defaults to the number of cpus",
				},
				cli.IntFlag{
					Name:  "tracers",
					Value: 1,
					Usage: "number of cpu tracers sharing the frame",
				},
				cli.StringFlag{
					Name:  "scheduler",
					Value: "naive",
					Usage: "block scheduler dividing rows across the tracer pool (naive or perfect)",
				},
				cli.BoolFlag{
					Name:  "no-sky",
					Usage: "do not add the sky gradient to rays that leave the scene",
				},
				cli.BoolFlag{
					Name:  "cull-backfaces",
					Usage: "reject triangles facing away from the ray",
				},
				cli.StringFlag{
					Name:  "out, o",
					Value: "frame.png",
					Usage: "image filename for the rendered frame",
				},
			},
			Action: cmd.RenderFrame,
		},
		{
			Name:      "info",
			Usage:     "compile a builtin scene and show its buffer statistics",
			ArgsUsage: "scene_name",
			Action:    cmd.SceneInfo,
		},
		{
			Name:   "scenes",
			Usage:  "list the builtin scenes",
			Action: cmd.ListScenes,
		},
	}

	app.Run(os.Args)
}
