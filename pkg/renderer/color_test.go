package renderer

import (
	"bytes"
	"image/color"
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestQuantizeChannel(t *testing.T) {
	tests := []struct {
		name     string
		linear   float64
		gamma    bool
		expected uint8
	}{
		{"black", 0, true, 0},
		{"negative clamps to black", -3, true, 0},
		{"NaN is black", math.NaN(), true, 0},
		{"white", 1, true, 255},
		{"overexposed clamps", 12, true, 255},
		{"quarter with gamma", 0.25, true, 128},
		{"quarter linear", 0.25, false, 64},
		{"half linear", 0.5, false, 128},
		{"just below clamp", 0.999, false, 255},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := quantizeChannel(tt.linear, tt.gamma); got != tt.expected {
				t.Errorf("quantizeChannel(%v, %v) = %d, expected %d", tt.linear, tt.gamma, got, tt.expected)
			}
		})
	}
}

func TestQuantizeColor(t *testing.T) {
	got := QuantizeColor(core.NewVec3(1, 0.25, 0), true)
	expected := color.RGBA{R: 255, G: 128, B: 0, A: 255}
	if got != expected {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

func TestWritePPM(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePPMHeader(&buf, 3, 2); err != nil {
		t.Fatalf("WritePPMHeader failed: %v", err)
	}
	if err := WritePixel(&buf, color.RGBA{R: 255, G: 7, B: 0, A: 255}); err != nil {
		t.Fatalf("WritePixel failed: %v", err)
	}

	expected := "P3\n3 2\n255\n255 7 0\n"
	if buf.String() != expected {
		t.Errorf("Expected %q, got %q", expected, buf.String())
	}
}
