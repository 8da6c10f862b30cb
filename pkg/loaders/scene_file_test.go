package loaders

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

const testSceneJSON = `{
	"description": "two spheres sharing a material",
	"camera": {"width": 64, "vfov": 40, "lookFrom": [0, 1, 3], "lookAt": [0, 0, -1]},
	"sampling": {"samplesPerPixel": 8, "maxDepth": 0, "seed": 7},
	"materials": {
		"red": {"type": "lambertian", "albedo": [0.7, 0.1, 0.1]},
		"mirror": {"type": "Metal", "albedo": [0.9, 0.9, 0.9], "fuzz": 3},
		"glass": {"type": "dielectric", "refractionIndex": 1.5}
	},
	"spheres": [
		{"center": [0, -100.5, -1], "radius": 100, "material": "red"},
		{"center": [0, 0, -1], "radius": 0.5, "material": "red"},
		{"center": [1, 0, -1], "radius": 0.5, "material": "mirror"},
		{"center": [-1, 0, -1], "radius": 0.5, "material": "glass"}
	]
}`

func TestParseSceneFile(t *testing.T) {
	file, err := ParseSceneFile(strings.NewReader(testSceneJSON))
	if err != nil {
		t.Fatalf("ParseSceneFile failed: %v", err)
	}

	if file.Camera.Width != 64 || file.Camera.VFov != 40 {
		t.Errorf("Unexpected camera %+v", file.Camera)
	}
	if file.Camera.LookFrom == nil || file.Camera.LookFrom.ToVec3() != core.NewVec3(0, 1, 3) {
		t.Errorf("Expected lookFrom (0,1,3), got %v", file.Camera.LookFrom)
	}
	if file.Camera.Up != nil {
		t.Errorf("Expected omitted up vector to stay nil, got %v", file.Camera.Up)
	}

	// An explicit zero depth is distinguishable from an omitted one
	if file.Sampling.MaxDepth == nil || *file.Sampling.MaxDepth != 0 {
		t.Errorf("Expected explicit max depth 0, got %v", file.Sampling.MaxDepth)
	}
	if file.Sampling.Seed == nil || *file.Sampling.Seed != 7 {
		t.Errorf("Expected seed 7, got %v", file.Sampling.Seed)
	}
	if len(file.Spheres) != 4 {
		t.Errorf("Expected 4 spheres, got %d", len(file.Spheres))
	}
}

func TestSceneFile_BuildMaterials(t *testing.T) {
	file, err := ParseSceneFile(strings.NewReader(testSceneJSON))
	if err != nil {
		t.Fatalf("ParseSceneFile failed: %v", err)
	}

	materials, err := file.BuildMaterials()
	if err != nil {
		t.Fatalf("BuildMaterials failed: %v", err)
	}
	if len(materials) != 3 {
		t.Fatalf("Expected 3 materials, got %d", len(materials))
	}

	if _, ok := materials["red"].(*material.Lambertian); !ok {
		t.Errorf("Expected red to be *Lambertian, got %T", materials["red"])
	}
	mirror, ok := materials["mirror"].(*material.Metal)
	if !ok {
		t.Fatalf("Expected mirror to be *Metal, got %T", materials["mirror"])
	}
	if mirror.Fuzz != 1.0 {
		t.Errorf("Expected fuzz clamped to 1, got %f", mirror.Fuzz)
	}
	if glass, ok := materials["glass"].(*material.Dielectric); !ok || glass.RefractionIndex != 1.5 {
		t.Errorf("Expected glass dielectric with index 1.5, got %#v", materials["glass"])
	}
}

func TestParseSceneFile_Errors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected error
	}{
		{
			name:     "undefined material",
			input:    `{"materials": {}, "spheres": [{"center": [0, 0, 0], "radius": 1, "material": "gold"}]}`,
			expected: ErrUnknownMaterial,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSceneFile(strings.NewReader(tt.input))
			if !errors.Is(err, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, err)
			}
		})
	}

	malformed := []struct {
		name  string
		input string
	}{
		{"truncated", `{"spheres": [`},
		{"unknown field", `{"lights": []}`},
		{"wrong type", `{"spheres": [{"radius": "big"}]}`},
	}
	for _, tt := range malformed {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseSceneFile(strings.NewReader(tt.input)); err == nil {
				t.Error("Expected a decoding error")
			}
		})
	}
}

func TestMaterialCfg_Build(t *testing.T) {
	tests := []struct {
		name    string
		cfg     MaterialCfg
		wantErr bool
	}{
		{"lambertian", MaterialCfg{Type: "lambertian", Albedo: Vec3{0.5, 0.5, 0.5}}, false},
		{"metal", MaterialCfg{Type: "metal", Albedo: Vec3{0.5, 0.5, 0.5}, Fuzz: 0.2}, false},
		{"dielectric", MaterialCfg{Type: "dielectric", RefractionIndex: 1.33}, false},
		{"dielectric without index", MaterialCfg{Type: "dielectric"}, true},
		{"emissive", MaterialCfg{Type: "emissive"}, true},
		{"missing type", MaterialCfg{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := tt.cfg.Build()
			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected an error, got material %T", m)
				}
				return
			}
			if err != nil || m == nil {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}

	if _, err := (MaterialCfg{Type: "plastic"}).Build(); !errors.Is(err, ErrUnknownMaterialType) {
		t.Errorf("Expected ErrUnknownMaterialType, got %v", err)
	}
}

func TestLoadSceneFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "three-spheres.json")
	if err := os.WriteFile(path, []byte(testSceneJSON), 0o644); err != nil {
		t.Fatalf("Failed to write scene file: %v", err)
	}

	file, err := LoadSceneFile(path)
	if err != nil {
		t.Fatalf("LoadSceneFile failed: %v", err)
	}
	if file.Name != "three-spheres" {
		t.Errorf("Expected name from file name, got %q", file.Name)
	}
	if file.Description != "two spheres sharing a material" {
		t.Errorf("Unexpected description %q", file.Description)
	}

	if _, err := LoadSceneFile(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("Expected an error for a missing file")
	}
}

func TestValidateFilePath(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		wantErr  bool
	}{
		{"json file", "scenes/cover.json", false},
		{"upper case extension", "SCENE.JSON", false},
		{"empty", "", true},
		{"wrong extension", "scenes/cornell.pbrt", true},
		{"null byte", "scene\x00.json", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateFilePath(tt.filename)
			if tt.wantErr != (err != nil) {
				t.Errorf("validateFilePath(%q) error = %v, wantErr %v", tt.filename, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidPath) {
				t.Errorf("Expected ErrInvalidPath, got %v", err)
			}
		})
	}
}
