package scene

import (
	"fmt"

	"github.com/df07/go-shadow-raytracer/pkg/core"
	"github.com/df07/go-shadow-raytracer/pkg/geometry"
	"github.com/df07/go-shadow-raytracer/pkg/lights"
	"github.com/df07/go-shadow-raytracer/pkg/material"
	"github.com/df07/go-shadow-raytracer/pkg/objects"
	"github.com/df07/go-shadow-raytracer/pkg/renderer"
)

// Checker colors shared by the built-in floors
var (
	checkerLight = core.NewRGB(0.9, 0.9, 0.9)
	checkerDark  = core.NewRGB(0.2, 0.2, 0.2)
)

// Sky colors shared by the built-in scenes
var (
	skyTop    = core.NewRGB(0.5, 0.7, 1.0) // blue sky
	skyBottom = core.NewRGB(1.0, 1.0, 1.0) // white horizon
)

// NewDefaultScene creates a unit sphere resting on a 2x2 checkerboard,
// lit by one point light and one directional light
func NewDefaultScene(cameraOverrides ...renderer.CameraConfig) (*Scene, error) {
	s := New()
	if len(cameraOverrides) > 0 {
		s.CameraConfig = renderer.MergeCameraConfig(s.CameraConfig, cameraOverrides[0])
	}

	sphere := objects.NewNormalSphere(geometry.NewSphere(core.NewVec3(0, 0, 0), 1))

	// Floor at y = -1 spanning x and z in (-1, 1), 10 checks per unit
	floor, err := NewCheckerFloor(core.NewVec3(-1, -1, -1), 2, 10)
	if err != nil {
		return nil, fmt.Errorf("default scene floor: %w", err)
	}

	s.AddObject(sphere)
	s.AddObject(floor)

	s.AddPointLight(lights.NewPointLight(core.NewVec3(-2, 2, -3), core.NewRGB(1, 1, 1)))
	s.AddDirectionalLight(lights.NewUniformLight(core.NewVec3(1, -1, 1), core.NewRGB(0.3, 0.3, 0.3)))

	s.SetSkybox(GradientSky(skyTop, skyBottom))

	return s, nil
}

// NewCheckerFloor creates a horizontal square checkerboard facing up whose
// minimum corner is at corner
func NewCheckerFloor(corner core.Vec3, size, cellsPerUnit float64) (*objects.ColoredPlane, error) {
	plane := geometry.NewPlane(corner, core.NewVec3(0, 1, 0))
	segment, err := geometry.NewPlaneSegment(plane, core.NewVec3(1, 0, 0), core.NewVec3(0, 0, 1), size, size)
	if err != nil {
		return nil, err
	}
	return objects.NewColoredPlane(segment, material.NewCheckerboard(cellsPerUnit, checkerLight, checkerDark)), nil
}
