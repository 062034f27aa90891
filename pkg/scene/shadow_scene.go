package scene

import (
	"fmt"

	"github.com/df07/go-shadow-raytracer/pkg/core"
	"github.com/df07/go-shadow-raytracer/pkg/geometry"
	"github.com/df07/go-shadow-raytracer/pkg/lights"
	"github.com/df07/go-shadow-raytracer/pkg/objects"
	"github.com/df07/go-shadow-raytracer/pkg/renderer"
)

// NewShadowScene creates three spheres of different sizes on a wide floor,
// lit from several directions so their shadows overlap
func NewShadowScene(cameraOverrides ...renderer.CameraConfig) (*Scene, error) {
	s := New()
	s.CameraConfig = renderer.MergeCameraConfig(s.CameraConfig, renderer.CameraConfig{
		Origin: core.NewVec3(0, 1, -4),
		Width:  480,
		Height: 320,
		XMin:   -3,
		XMax:   3,
		YMin:   -1.5,
		YMax:   2.5,
	})
	if len(cameraOverrides) > 0 {
		s.CameraConfig = renderer.MergeCameraConfig(s.CameraConfig, cameraOverrides[0])
	}

	spheres := []geometry.Sphere{
		geometry.NewSphere(core.NewVec3(-1.6, -0.5, 1), 0.5),
		geometry.NewSphere(core.NewVec3(0, 0, 1.5), 1),
		geometry.NewSphere(core.NewVec3(1.4, -0.75, 0.5), 0.25),
	}
	for _, sphere := range spheres {
		s.AddObject(objects.NewNormalSphere(sphere))
	}

	floor, err := NewCheckerFloor(core.NewVec3(-4, -1, -2), 8, 2)
	if err != nil {
		return nil, fmt.Errorf("shadow scene floor: %w", err)
	}
	s.AddObject(floor)

	s.AddPointLight(lights.NewPointLight(core.NewVec3(-3, 3, -1), core.NewRGB(0.8, 0.6, 0.6)))
	s.AddPointLight(lights.NewPointLight(core.NewVec3(3, 2, -2), core.NewRGB(0.4, 0.5, 0.8)))
	s.AddDirectionalLight(lights.NewUniformLight(core.NewVec3(-0.5, -0.4, 1), core.NewRGB(0.25, 0.25, 0.2)))

	s.SetSkybox(GradientSky(skyTop, skyBottom))

	return s, nil
}
