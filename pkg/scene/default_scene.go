package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// NewDefaultScene creates a diffuse sphere between two metal spheres on a large ground sphere
func NewDefaultScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	s := newScene("default", renderer.DefaultCameraConfig(), cameraOverrides)

	materialGround := material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0))
	materialCenter := material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))
	materialLeft := material.NewMetal(core.NewVec3(0.8, 0.8, 0.8), 0.3)
	materialRight := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 1.0)

	s.World.Add(geometry.NewSphere(core.NewVec3(0.0, -100.5, -1.0), 100.0, materialGround))
	s.World.Add(geometry.NewSphere(core.NewVec3(0.0, 0.0, -1.2), 0.5, materialCenter))
	s.World.Add(geometry.NewSphere(core.NewVec3(-1.0, 0.0, -1.0), 0.5, materialLeft))
	s.World.Add(geometry.NewSphere(core.NewVec3(1.0, 0.0, -1.0), 0.5, materialRight))

	return s
}

// NewEmptyScene creates a scene with no objects, showing only the sky gradient
func NewEmptyScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	return newScene("empty", renderer.DefaultCameraConfig(), cameraOverrides)
}
