package scene

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/log"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

var logger = log.New("scene")

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string // Name used to select the scene
	DisplayName string // Human readable name
	Description string // Optional description
	Type        string // "builtin" or "file"
	FilePath    string // Path to the scene file (file type only)
}

type builtinScene struct {
	info  SceneInfo
	build func(cameraOverrides ...renderer.CameraConfig) *Scene
}

var builtinScenes = []builtinScene{
	{SceneInfo{ID: "default", DisplayName: "Default Scene", Description: "Diffuse sphere between two metal spheres"}, NewDefaultScene},
	{SceneInfo{ID: "materials", DisplayName: "Materials", Description: "Hollow glass, diffuse and fuzzy metal spheres"}, NewMaterialsScene},
	{SceneInfo{ID: "defocus", DisplayName: "Depth of Field", Description: "Materials scene through a wide aperture"}, NewDefocusScene},
	{SceneInfo{ID: "cover", DisplayName: "Random Spheres", Description: "Field of random small spheres around three large ones"}, NewCoverScene},
	{SceneInfo{ID: "empty", DisplayName: "Empty", Description: "Sky gradient only"}, NewEmptyScene},
}

// ListBuiltinScenes returns the built-in scenes in display order
func ListBuiltinScenes() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(builtinScenes))
	for _, b := range builtinScenes {
		info := b.info
		info.Type = "builtin"
		scenes = append(scenes, info)
	}
	return scenes
}

// ListFileScenes scans dir for JSON scene files. A missing directory yields no scenes.
func ListFileScenes(dir string) ([]SceneInfo, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	var scenes []SceneInfo
	for _, filePath := range files {
		sceneFile, err := loaders.LoadSceneFile(filePath)
		if err != nil {
			// Log warning but continue processing other files
			logger.Warningf("skipping %s: %v", filePath, err)
			continue
		}
		scenes = append(scenes, SceneInfo{
			ID:          sceneFile.Name,
			DisplayName: titleCase(sceneFile.Name),
			Description: sceneFile.Description,
			Type:        "file",
			FilePath:    filePath,
		})
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})
	return scenes, nil
}

// Lookup builds the built-in scene with the given name
func Lookup(name string, cameraOverrides ...renderer.CameraConfig) (*Scene, error) {
	for _, b := range builtinScenes {
		if b.info.ID == name {
			return b.build(cameraOverrides...), nil
		}
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownScene, name)
}

// NewFileScene builds a scene from a JSON scene file
func NewFileScene(filePath string, cameraOverrides ...renderer.CameraConfig) (*Scene, error) {
	sceneFile, err := loaders.LoadSceneFile(filePath)
	if err != nil {
		return nil, err
	}
	return newSceneFromFile(sceneFile, cameraOverrides...)
}

func newSceneFromFile(sceneFile *loaders.SceneFile, cameraOverrides ...renderer.CameraConfig) (*Scene, error) {
	cam := sceneFile.Camera
	cameraConfig := renderer.MergeCameraConfig(renderer.DefaultCameraConfig(), renderer.CameraConfig{
		AspectRatio:   cam.AspectRatio,
		Width:         cam.Width,
		VFov:          cam.VFov,
		FocusDistance: cam.FocusDistance,
		DefocusAngle:  cam.DefocusAngle,
	})

	// Vectors are set directly so that an explicit origin is kept
	if cam.LookFrom != nil {
		cameraConfig.LookFrom = cam.LookFrom.ToVec3()
	}
	if cam.LookAt != nil {
		cameraConfig.LookAt = cam.LookAt.ToVec3()
	}
	if cam.Up != nil {
		cameraConfig.Up = cam.Up.ToVec3()
	}

	s := newScene(sceneFile.Name, cameraConfig, cameraOverrides)

	sampling := sceneFile.Sampling
	if sampling.SamplesPerPixel != 0 {
		s.SamplingConfig.SamplesPerPixel = sampling.SamplesPerPixel
	}
	if sampling.MaxDepth != nil {
		s.SamplingConfig.MaxDepth = *sampling.MaxDepth
	}
	if sampling.Seed != nil {
		s.SamplingConfig.Seed = *sampling.Seed
	}

	materials, err := sceneFile.BuildMaterials()
	if err != nil {
		return nil, err
	}
	for _, sphere := range sceneFile.Spheres {
		s.World.Add(geometry.NewSphere(sphere.Center.ToVec3(), sphere.Radius, materials[sphere.Material]))
	}

	logger.Debugf("loaded scene %q: %d spheres, %d materials", s.Name, s.GetPrimitiveCount(), len(materials))
	return s, nil
}

// titleCase converts a filename-style string to title case
// e.g., "three-spheres" -> "Three Spheres"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		r, size := utf8.DecodeRuneInString(word)
		words[i] = string(unicode.ToUpper(r)) + strings.ToLower(word[size:])
	}

	return strings.Join(words, " ")
}
