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

// NewUVDebugScene creates a single wall facing the camera textured with its
// own UV coordinates, for checking plane segment orientation
func NewUVDebugScene(cameraOverrides ...renderer.CameraConfig) (*Scene, error) {
	s := New()
	if len(cameraOverrides) > 0 {
		s.CameraConfig = renderer.MergeCameraConfig(s.CameraConfig, cameraOverrides[0])
	}

	// Wall at z = 1 facing the camera; u runs right, v runs up
	plane := geometry.NewPlane(core.NewVec3(-1.5, -1.5, 1), core.NewVec3(0, 0, -1))
	segment, err := geometry.NewPlaneSegment(plane, core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0), 3, 3)
	if err != nil {
		return nil, fmt.Errorf("uv debug wall: %w", err)
	}
	s.AddObject(objects.NewColoredPlane(segment, material.NewUVDebug(3, 3)))

	// Light straight from the camera so the wall shows true UV colors
	s.AddDirectionalLight(lights.NewUniformLight(core.NewVec3(0, 0, 1), core.NewRGB(0.9, 0.9, 0.9)))
	s.SetSkybox(SolidSky(core.NewRGB(0, 0, 0)))

	return s, nil
}
