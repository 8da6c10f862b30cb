package renderer

import (
	"bufio"
	"fmt"
	"image"
	"io"
	"math"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/log"
)

// shadowAcneBias is the smallest t accepted for a hit, so bounced rays do not re-hit their origin
const shadowAcneBias = 0.001

var (
	white   = core.NewVec3(1.0, 1.0, 1.0)
	skyBlue = core.NewVec3(0.5, 0.7, 1.0)
)

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	SamplesPerPixel int   // Number of rays per pixel
	MaxDepth        int   // Maximum ray bounce depth
	Seed            int64 // Base seed for the per-row random generators
	Workers         int   // Number of rows rendered concurrently
	DisableGamma    bool  // Write linear values instead of gamma 2 corrected ones
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		SamplesPerPixel: 100,
		MaxDepth:        50,
		Seed:            42,
		Workers:         1,
	}
}

// Validate reports configuration values the raytracer cannot work with
func (c SamplingConfig) Validate() error {
	if c.SamplesPerPixel <= 0 {
		return ErrInvalidSamples
	}
	if c.MaxDepth < 0 {
		return ErrInvalidDepth
	}
	return nil
}

// Raytracer handles the rendering process
type Raytracer struct {
	world  geometry.Shape
	camera *Camera
	config SamplingConfig
	logger log.Logger

	// samplerForRow supplies the random source used for one image row
	samplerForRow func(row int) core.Sampler
}

// NewRaytracer creates a new raytracer
func NewRaytracer(world geometry.Shape, camera *Camera, config SamplingConfig) *Raytracer {
	rt := &Raytracer{
		world:  world,
		camera: camera,
		config: config,
		logger: log.New("renderer"),
	}
	rt.samplerForRow = func(row int) core.Sampler {
		return core.NewSeededSampler(rowSeed(rt.config.Seed, row))
	}
	return rt
}

// SetLogger replaces the logger used for progress output
func (rt *Raytracer) SetLogger(logger log.Logger) {
	rt.logger = logger
}

// Camera returns the camera used by the raytracer
func (rt *Raytracer) Camera() *Camera {
	return rt.camera
}

// rowSeed derives an independent seed for each row so the image does not depend on scheduling
func rowSeed(seed int64, row int) int64 {
	return int64(uint64(seed) ^ (uint64(row+1) * 0x9E3779B97F4A7C15))
}

// backgroundGradient returns a white to sky-blue gradient based on ray direction
func backgroundGradient(r core.Ray) core.Vec3 {
	unitDirection := r.Direction.Normalize()

	// Map y from [-1,1] to [0,1]
	a := 0.5 * (unitDirection.Y + 1.0)

	return white.Multiply(1.0 - a).Add(skyBlue.Multiply(a))
}

// RayColor returns the radiance carried back along r after at most depth bounces
func (rt *Raytracer) RayColor(r core.Ray, depth int, sampler core.Sampler) core.Vec3 {
	// If we've exceeded the ray bounce limit, no more light is gathered
	if depth <= 0 {
		return core.Vec3{}
	}

	hit, isHit := rt.world.Hit(r, core.NewInterval(shadowAcneBias, math.Inf(1)))
	if !isHit {
		return backgroundGradient(r)
	}

	scatter, didScatter := hit.Material.Scatter(r, *hit, sampler)
	if !didScatter {
		return core.Vec3{}
	}

	return scatter.Attenuation.MultiplyVec(rt.RayColor(scatter.Scattered, depth-1, sampler))
}

// PixelColor averages SamplesPerPixel jittered samples of pixel (i, j)
func (rt *Raytracer) PixelColor(i, j int, sampler core.Sampler) core.Vec3 {
	var colorAccum core.Vec3
	for sample := 0; sample < rt.config.SamplesPerPixel; sample++ {
		ray := rt.camera.GetRay(i, j, sampler)
		colorAccum.AddInPlace(rt.RayColor(ray, rt.config.MaxDepth, sampler))
	}
	return colorAccum.Multiply(1.0 / float64(rt.config.SamplesPerPixel))
}

// renderRow computes the averaged colors of one image row
func (rt *Raytracer) renderRow(row int) []core.Vec3 {
	sampler := rt.samplerForRow(row)
	colors := make([]core.Vec3, rt.camera.Width())
	for i := range colors {
		colors[i] = rt.PixelColor(i, row, sampler)
	}
	return colors
}

// Render traces the whole image and streams it to w as a plain PPM.
// Rows may be computed concurrently but are written strictly top to bottom.
// The returned image holds the same quantized pixels.
func (rt *Raytracer) Render(w io.Writer) (*image.RGBA, RenderStats, error) {
	startTime := time.Now()
	width, height := rt.camera.Width(), rt.camera.Height()
	gamma := !rt.config.DisableGamma

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	stats := newRenderStats(width, height, rt.config)

	out := bufio.NewWriter(w)
	if err := WritePPMHeader(out, width, height); err != nil {
		return nil, stats, fmt.Errorf("renderer: writing header: %w", err)
	}

	pool := NewWorkerPool(rt, rt.config.Workers, height)
	stats.Workers = pool.GetNumWorkers()
	pool.Start()
	for row := 0; row < height; row++ {
		pool.SubmitTask(RowTask{Row: row})
	}

	pending := make(map[int]RowResult)
	nextRow := 0
	for nextRow < height {
		result := pool.GetResult()
		pending[result.Row] = result

		for ready, ok := pending[nextRow]; ok; ready, ok = pending[nextRow] {
			delete(pending, nextRow)
			rt.logger.Infof("scan lines remaining: %d", height-nextRow)

			for i, c := range ready.Colors {
				pixel := QuantizeColor(c, gamma)
				img.SetRGBA(i, nextRow, pixel)
				if err := WritePixel(out, pixel); err != nil {
					pool.Abort()
					return nil, stats, fmt.Errorf("renderer: writing row %d: %w", nextRow, err)
				}
			}
			stats.addRow(len(ready.Colors))
			nextRow++
		}
	}
	pool.Stop()

	if err := out.Flush(); err != nil {
		return nil, stats, fmt.Errorf("renderer: flushing output: %w", err)
	}

	stats.RenderTime = time.Since(startTime)
	rt.logger.Noticef("rendered %dx%d image in %s", width, height, stats.RenderTime)
	return img, stats, nil
}
