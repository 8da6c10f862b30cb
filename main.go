package main

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"os"

	"github.com/df07/go-pathtracer/pkg/log"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
	"github.com/fogleman/gg"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

var logger = log.New("pathtracer")

func main() {
	if err := newApp().Run(os.Args); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	// -v is taken by verbose logging
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "go-pathtracer"
	app.Usage = "render sphere scenes to plain PPM images using path tracing"
	app.Version = "0.1.0"
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
			Usage: "render a scene",
			Description: `
Render a built-in scene or a JSON scene file and write it as a plain (P3) PPM
image. Use "-" as the output file to stream the image to stdout; progress is
logged to stderr.`,
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "scene, s",
					Value: "default",
					Usage: "built-in scene name (see the scenes command)",
				},
				cli.StringFlag{
					Name:  "file, f",
					Usage: "JSON scene file, used instead of --scene",
				},
				cli.IntFlag{
					Name:  "width",
					Usage: "image width in pixels (defaults to the scene's)",
				},
				cli.IntFlag{
					Name:  "spp",
					Usage: "samples per pixel (defaults to the scene's)",
				},
				cli.IntFlag{
					Name:  "depth",
					Usage: "maximum number of bounces (defaults to the scene's)",
				},
				cli.Int64Flag{
					Name:  "seed",
					Usage: "base random seed (defaults to the scene's)",
				},
				cli.IntFlag{
					Name:  "workers",
					Value: 1,
					Usage: "rows rendered concurrently, 0 for one per CPU",
				},
				cli.BoolFlag{
					Name:  "no-gamma",
					Usage: "write linear values without gamma correction",
				},
				cli.StringFlag{
					Name:  "out, o",
					Value: "image.ppm",
					Usage: `PPM output file, "-" for stdout`,
				},
				cli.StringFlag{
					Name:  "png",
					Usage: "also save the frame as a PNG file",
				},
			},
			Action: renderFrame,
		},
		{
			Name:  "scenes",
			Usage: "list available scenes",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "dir",
					Value: "scenes",
					Usage: "directory searched for JSON scene files",
				},
			},
			Action: listScenes,
		},
	}

	return app
}

func setupLogging(ctx *cli.Context) {
	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}
}

// loadScene resolves the scene selected on the command line and applies flag overrides
func loadScene(ctx *cli.Context) (*scene.Scene, error) {
	cameraOverride := renderer.CameraConfig{Width: ctx.Int("width")}

	var s *scene.Scene
	var err error
	if file := ctx.String("file"); file != "" {
		s, err = scene.NewFileScene(file, cameraOverride)
	} else {
		s, err = scene.Lookup(ctx.String("scene"), cameraOverride)
	}
	if err != nil {
		return nil, err
	}

	if ctx.IsSet("spp") {
		s.SamplingConfig.SamplesPerPixel = ctx.Int("spp")
	}
	if ctx.IsSet("depth") {
		s.SamplingConfig.MaxDepth = ctx.Int("depth")
	}
	if ctx.IsSet("seed") {
		s.SamplingConfig.Seed = ctx.Int64("seed")
	}
	s.SamplingConfig.Workers = ctx.Int("workers")
	s.SamplingConfig.DisableGamma = ctx.Bool("no-gamma")

	return s, nil
}

// Render a still frame.
func renderFrame(ctx *cli.Context) error {
	setupLogging(ctx)

	s, err := loadScene(ctx)
	if err != nil {
		return err
	}

	rt, err := s.NewRaytracer()
	if err != nil {
		return err
	}
	logger.Infof("rendering scene %q with %d primitives", s.Name, s.GetPrimitiveCount())

	out, err := openOutput(ctx)
	if err != nil {
		return err
	}

	img, stats, err := writeFrame(rt, out)
	if err != nil {
		return err
	}

	if path := ctx.String("png"); path != "" {
		if err := gg.SavePNG(path, img); err != nil {
			return fmt.Errorf("saving png: %w", err)
		}
		logger.Infof("wrote frame to %s", path)
	}

	displayRenderStats(s, stats, renderer.CalculateAverageLuminance(img))
	return nil
}

// openOutput returns the PPM sink selected with --out. Stdout is never closed.
func openOutput(ctx *cli.Context) (io.WriteCloser, error) {
	path := ctx.String("out")
	if path == "-" {
		return nopCloser{ctx.App.Writer}, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating output file: %w", err)
	}
	return f, nil
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

// writeFrame renders into out and closes it. A failed close fails the render.
func writeFrame(rt *renderer.Raytracer, out io.WriteCloser) (*image.RGBA, renderer.RenderStats, error) {
	img, stats, err := rt.Render(out)
	if err != nil {
		out.Close()
		return nil, stats, err
	}
	if err := out.Close(); err != nil {
		return nil, stats, fmt.Errorf("closing output: %w", err)
	}
	return img, stats, nil
}

func displayRenderStats(s *scene.Scene, stats renderer.RenderStats, luminance float64) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Scene", "Resolution", "Samples/pixel", "Max depth", "Workers", "Avg luminance", "Render time"})
	table.Append([]string{
		s.Name,
		fmt.Sprintf("%dx%d", stats.Width, stats.Height),
		fmt.Sprintf("%d", stats.SamplesPerPixel),
		fmt.Sprintf("%d", stats.MaxDepth),
		fmt.Sprintf("%d", stats.Workers),
		fmt.Sprintf("%.3f", luminance),
		stats.RenderTime.String(),
	})
	table.SetFooter([]string{"", "", "", "", "", "SAMPLES/S", fmt.Sprintf("%.0f", stats.SamplesPerSecond())})

	table.Render()
	logger.Noticef("frame statistics\n%s", buf.String())
}

// List built-in scenes and any scene files found in --dir.
func listScenes(ctx *cli.Context) error {
	setupLogging(ctx)

	fileScenes, err := scene.ListFileScenes(ctx.String("dir"))
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(ctx.App.Writer)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeader([]string{"Name", "Type", "Description"})
	for _, info := range append(scene.ListBuiltinScenes(), fileScenes...) {
		name := info.ID
		if info.Type == "file" {
			name = info.FilePath
		}
		table.Append([]string{name, info.Type, info.Description})
	}
	table.Render()

	return nil
}
