package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// addMaterialSpheres adds a glass sphere with an air bubble, a diffuse sphere and a fuzzy metal sphere
func addMaterialSpheres(s *Scene) {
	materialGround := material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0))
	materialCenter := material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))
	materialLeft := material.NewDielectric(1.50)
	materialBubble := material.NewDielectric(1.00 / 1.50)
	materialRight := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 1.0)

	s.World.Add(geometry.NewSphere(core.NewVec3(0.0, -100.5, -1.0), 100.0, materialGround))
	s.World.Add(geometry.NewSphere(core.NewVec3(0.0, 0.0, -1.2), 0.5, materialCenter))
	s.World.Add(geometry.NewSphere(core.NewVec3(-1.0, 0.0, -1.0), 0.5, materialLeft))
	s.World.Add(geometry.NewSphere(core.NewVec3(-1.0, 0.0, -1.0), 0.4, materialBubble))
	s.World.Add(geometry.NewSphere(core.NewVec3(1.0, 0.0, -1.0), 0.5, materialRight))
}

// NewMaterialsScene shows every material side by side from the default viewpoint
func NewMaterialsScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	s := newScene("materials", renderer.DefaultCameraConfig(), cameraOverrides)
	addMaterialSpheres(s)
	return s
}

// NewDefocusScene views the materials scene from above with a wide aperture focused on the centre sphere
func NewDefocusScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	cameraConfig := renderer.MergeCameraConfig(renderer.DefaultCameraConfig(), renderer.CameraConfig{
		VFov:          20,
		LookFrom:      core.NewVec3(-2, 2, 1),
		LookAt:        core.NewVec3(0, 0, -1),
		FocusDistance: 3.4,
		DefocusAngle:  10.0,
	})

	s := newScene("defocus", cameraConfig, cameraOverrides)
	addMaterialSpheres(s)
	return s
}
