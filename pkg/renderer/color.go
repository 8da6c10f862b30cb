package renderer

import (
	"fmt"
	"image/color"
	"io"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// intensity is the range linear channels are clamped to before quantization
var intensity = core.NewInterval(0.000, 0.999)

// linearToGamma applies a gamma of 2
func linearToGamma(linear float64) float64 {
	if linear > 0 {
		return math.Sqrt(linear)
	}
	return 0
}

// quantizeChannel maps a linear channel onto [0, 255]
func quantizeChannel(linear float64, gamma bool) uint8 {
	if math.IsNaN(linear) {
		linear = 0
	}
	value := intensity.Clamp(linear)
	if gamma {
		value = linearToGamma(value)
	}
	return uint8(256 * value)
}

// QuantizeColor converts a linear color to 8-bit channels
func QuantizeColor(c core.Vec3, gamma bool) color.RGBA {
	return color.RGBA{
		R: quantizeChannel(c.X, gamma),
		G: quantizeChannel(c.Y, gamma),
		B: quantizeChannel(c.Z, gamma),
		A: 255,
	}
}

// WritePPMHeader writes the plain PPM header for a width x height image
func WritePPMHeader(w io.Writer, width, height int) error {
	_, err := fmt.Fprintf(w, "P3\n%d %d\n255\n", width, height)
	return err
}

// WritePixel writes one "r g b" line
func WritePixel(w io.Writer, c color.RGBA) error {
	_, err := fmt.Fprintf(w, "%d %d %d\n", c.R, c.G, c.B)
	return err
}
