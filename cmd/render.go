package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"image/png"
	"os"
	"time"

	"github.com/auriga-render/auriga/asset/compiler"
	"github.com/auriga-render/auriga/asset/scene"
	"github.com/auriga-render/auriga/renderer"
	"github.com/auriga-render/auriga/tracer"
	"github.com/auriga-render/auriga/tracer/cpu"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// Render a still frame of a builtin scene and export it as a PNG.
func RenderFrame(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 1 {
		return errors.New("missing scene name argument")
	}

	sc, err := compileScene(ctx.Args().First())
	if err != nil {
		return err
	}

	opts := renderer.Options{
		FrameW:          uint32(ctx.Int("width")),
		FrameH:          uint32(ctx.Int("height")),
		SamplesPerPixel: uint32(ctx.Int("spp")),
		NumBounces:      uint32(ctx.Int("num-bounces")),
		Exposure:        float32(ctx.Float64("exposure")),
		Seed:            uint32(ctx.Int("seed")),
	}

	trOpts := cpu.DefaultOptions()
	trOpts.SkyOnMiss = !ctx.Bool("no-sky")
	trOpts.CullBackFaces = ctx.Bool("cull-backfaces")
	if workers := ctx.Int("workers"); workers > 0 {
		trOpts.NumWorkers = workers
	}

	numTracers := ctx.Int("tracers")
	if numTracers <= 0 {
		numTracers = 1
	}
	tracers := make([]tracer.Tracer, numTracers)
	for idx := range tracers {
		tracers[idx] = cpu.NewTracer(fmt.Sprintf("cpu-%d", idx), trOpts)
	}

	scheduler, err := selectScheduler(ctx.String("scheduler"))
	if err != nil {
		return err
	}

	r, err := renderer.NewDefault(sc, scheduler, tracers, opts)
	if err != nil {
		return err
	}
	defer r.Close()

	numFrames := uint32(ctx.Int("frames"))
	if numFrames == 0 {
		numFrames = 1
	}

	start := time.Now()
	for frame := uint32(0); frame < numFrames; frame++ {
		if err = r.Render(); err != nil {
			return err
		}
	}
	logger.Noticef(
		"rendered %d frame(s) at %d spp in %d ms",
		numFrames, opts.SamplesPerPixel, time.Since(start).Nanoseconds()/1e6,
	)

	if err = exportPng(r, ctx.String("out")); err != nil {
		return err
	}

	displayFrameStats(r.Stats())
	return nil
}

// Compile a builtin scene and display its buffer statistics.
func SceneInfo(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 1 {
		return errors.New("missing scene name argument")
	}

	sc, err := compileScene(ctx.Args().First())
	if err != nil {
		return err
	}

	logger.Noticef("scene statistics\n%s", sc.Stats())
	return nil
}

func selectScheduler(name string) (tracer.BlockScheduler, error) {
	switch name {
	case "", "naive":
		return tracer.NewNaiveScheduler(), nil
	case "perfect":
		return tracer.NewPerfectScheduler(), nil
	}
	return nil, fmt.Errorf("unknown scheduler %q; supported schedulers: naive, perfect", name)
}

func compileScene(name string) (*scene.Scene, error) {
	raw, err := buildScene(name)
	if err != nil {
		return nil, err
	}
	return compiler.Compile(raw)
}

func exportPng(r renderer.Renderer, imgFile string) error {
	f, err := os.Create(imgFile)
	if err != nil {
		return err
	}
	defer f.Close()

	start := time.Now()
	if err = png.Encode(f, r.Frame()); err != nil {
		return err
	}
	logger.Noticef("wrote frame to %s in %d ms", imgFile, time.Since(start).Nanoseconds()/1e6)
	return nil
}

func displayFrameStats(stats renderer.FrameStats) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Tracer", "Primary", "Rows", "% of frame", "Render time"})
	for _, stat := range stats.Tracers {
		table.Append([]string{
			stat.Id,
			fmt.Sprintf("%t", stat.IsPrimary),
			fmt.Sprintf("%d", stat.Rows),
			fmt.Sprintf("%02.1f %%", 100*stat.FrameShare),
			fmt.Sprintf("%s", stat.RenderTime),
		})
	}
	table.SetFooter([]string{"", "", "", "TOTAL", fmt.Sprintf("%s", stats.RenderTime)})

	table.Render()
	logger.Noticef("frame statistics\n%s", buf.String())
}
