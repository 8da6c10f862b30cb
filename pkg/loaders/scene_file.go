package loaders

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

var (
	ErrUnknownMaterial     = errors.New("loaders: sphere references an undefined material")
	ErrUnknownMaterialType = errors.New("loaders: unknown material type")
	ErrInvalidPath         = errors.New("loaders: invalid scene file path")
)

// Vec3 is a JSON triple such as [0.8, 0.6, 0.2]
type Vec3 [3]float64

// ToVec3 converts the triple to a core vector
func (v Vec3) ToVec3() core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

// CameraCfg holds camera settings. Omitted fields keep the built-in defaults.
type CameraCfg struct {
	AspectRatio   float64 `json:"aspectRatio,omitempty"`
	Width         int     `json:"width,omitempty"`
	VFov          float64 `json:"vfov,omitempty"`
	LookFrom      *Vec3   `json:"lookFrom,omitempty"`
	LookAt        *Vec3   `json:"lookAt,omitempty"`
	Up            *Vec3   `json:"up,omitempty"`
	FocusDistance float64 `json:"focusDistance,omitempty"`
	DefocusAngle  float64 `json:"defocusAngle,omitempty"`
}

// SamplingCfg holds sampling settings. Omitted fields keep the built-in defaults.
type SamplingCfg struct {
	SamplesPerPixel int    `json:"samplesPerPixel,omitempty"`
	MaxDepth        *int   `json:"maxDepth,omitempty"`
	Seed            *int64 `json:"seed,omitempty"`
}

// MaterialCfg describes one named material
type MaterialCfg struct {
	Type            string  `json:"type"` // "lambertian", "metal" or "dielectric"
	Albedo          Vec3    `json:"albedo"`
	Fuzz            float64 `json:"fuzz,omitempty"`
	RefractionIndex float64 `json:"refractionIndex,omitempty"`
}

// SphereCfg places a sphere using a material by name
type SphereCfg struct {
	Center   Vec3    `json:"center"`
	Radius   float64 `json:"radius"`
	Material string  `json:"material"`
}

// SceneFile contains all parsed scene file data
type SceneFile struct {
	Name        string                 `json:"name,omitempty"`
	Description string                 `json:"description,omitempty"`
	Camera      CameraCfg              `json:"camera"`
	Sampling    SamplingCfg            `json:"sampling"`
	Materials   map[string]MaterialCfg `json:"materials"`
	Spheres     []SphereCfg            `json:"spheres"`
}

// Build constructs the runtime material
func (m MaterialCfg) Build() (material.Material, error) {
	switch strings.ToLower(m.Type) {
	case "lambertian":
		return material.NewLambertian(m.Albedo.ToVec3()), nil
	case "metal":
		return material.NewMetal(m.Albedo.ToVec3(), m.Fuzz), nil
	case "dielectric":
		if m.RefractionIndex <= 0 {
			return nil, fmt.Errorf("loaders: dielectric refraction index must be positive, got %g", m.RefractionIndex)
		}
		return material.NewDielectric(m.RefractionIndex), nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownMaterialType, m.Type)
	}
}

// BuildMaterials constructs every named material once.
// Spheres that share a name share the returned instance.
func (f *SceneFile) BuildMaterials() (map[string]material.Material, error) {
	materials := make(map[string]material.Material, len(f.Materials))
	for name, cfg := range f.Materials {
		m, err := cfg.Build()
		if err != nil {
			return nil, fmt.Errorf("material %q: %w", name, err)
		}
		materials[name] = m
	}
	return materials, nil
}

// validate checks that every sphere refers to a defined material
func (f *SceneFile) validate() error {
	for i, sphere := range f.Spheres {
		if _, ok := f.Materials[sphere.Material]; !ok {
			return fmt.Errorf("sphere %d: %w %q", i, ErrUnknownMaterial, sphere.Material)
		}
	}
	return nil
}

// ParseSceneFile decodes a JSON scene description
func ParseSceneFile(reader io.Reader) (*SceneFile, error) {
	decoder := json.NewDecoder(reader)
	decoder.DisallowUnknownFields()

	var file SceneFile
	if err := decoder.Decode(&file); err != nil {
		return nil, fmt.Errorf("loaders: decoding scene file: %w", err)
	}
	if err := file.validate(); err != nil {
		return nil, err
	}
	return &file, nil
}

// LoadSceneFile loads and parses a JSON scene file
func LoadSceneFile(filename string) (*SceneFile, error) {
	if err := validateFilePath(filename); err != nil {
		return nil, err
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("loaders: opening scene file: %w", err)
	}
	defer file.Close()

	sceneFile, err := ParseSceneFile(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	if sceneFile.Name == "" {
		sceneFile.Name = strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	}
	return sceneFile, nil
}

func validateFilePath(filename string) error {
	if filename == "" {
		return fmt.Errorf("%w: filename cannot be empty", ErrInvalidPath)
	}

	// Check for null bytes (could indicate path manipulation)
	if strings.Contains(filename, "\x00") {
		return fmt.Errorf("%w: null bytes not allowed", ErrInvalidPath)
	}

	if !strings.HasSuffix(strings.ToLower(filepath.Clean(filename)), ".json") {
		return fmt.Errorf("%w: only .json files are allowed", ErrInvalidPath)
	}

	return nil
}
