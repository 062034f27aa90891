package scene

import (
	"math"

	"github.com/df07/go-shadow-raytracer/pkg/core"
	"github.com/df07/go-shadow-raytracer/pkg/lights"
	"github.com/df07/go-shadow-raytracer/pkg/renderer"
)

// ambientFactor is the fraction of the material color visible with no light at all
const ambientFactor = 0.1

// Scene holds the drawable objects and lights and shades rays against them.
// Build it completely before rendering; after that it is only read and is
// safe for concurrent use.
type Scene struct {
	CameraConfig renderer.CameraConfig // How the scene is meant to be viewed

	objects           []core.Drawable
	pointLights       []lights.PointLight
	directionalLights []lights.UniformLight
	skybox            SkyFunc
}

// Hit is the nearest intersection found by CastRay
type Hit struct {
	T      float64       // Ray parameter of the hit, always >= 0
	Object core.Drawable // Object that was hit
	Index  int           // Position of Object in insertion order
}

// New creates an empty scene with a transparent black sky
func New() *Scene {
	return &Scene{
		CameraConfig: renderer.DefaultCameraConfig(),
		skybox:       SolidSky(core.Color{}),
	}
}

// AddObject adds a drawable object to the scene
func (s *Scene) AddObject(object core.Drawable) {
	s.objects = append(s.objects, object)
}

// AddPointLight adds a point light to the scene
func (s *Scene) AddPointLight(light lights.PointLight) {
	s.pointLights = append(s.pointLights, light)
}

// AddDirectionalLight adds a directional light to the scene
func (s *Scene) AddDirectionalLight(light lights.UniformLight) {
	s.directionalLights = append(s.directionalLights, light)
}

// SetSkybox sets the color returned for rays that hit nothing
func (s *Scene) SetSkybox(sky SkyFunc) {
	s.skybox = sky
}

// Objects returns the scene objects in insertion order
func (s *Scene) Objects() []core.Drawable {
	return s.objects
}

// PointLights returns the point lights in insertion order
func (s *Scene) PointLights() []lights.PointLight {
	return s.pointLights
}

// DirectionalLights returns the directional lights in insertion order
func (s *Scene) DirectionalLights() []lights.UniformLight {
	return s.directionalLights
}

// CastRay finds the nearest non-negative intersection across all objects.
// On equal t the object added first wins.
func (s *Scene) CastRay(ray core.Ray) (Hit, bool) {
	var closest Hit
	hitAnything := false

	for i, object := range s.objects {
		minT := math.Inf(1)
		for _, t := range object.Intersect(ray) {
			if t >= 0 && t < minT {
				minT = t
			}
		}
		if math.IsInf(minT, 1) {
			continue
		}

		if !hitAnything || minT < closest.T {
			closest = Hit{T: minT, Object: object, Index: i}
			hitAnything = true
		}
	}

	return closest, hitAnything
}

// GetColor returns the color seen along ray
func (s *Scene) GetColor(ray core.Ray) core.Color {
	hit, isHit := s.CastRay(ray)
	if !isHit {
		return s.skybox(ray)
	}

	point := ray.At(hit.T)
	materialColor := hit.Object.MaterialColor(ray, point)
	normal := hit.Object.Normal(point)

	return s.shade(point, normal, materialColor)
}

// shade sums the ambient term and the diffuse term of every unoccluded light.
// Directional lights are summed before point lights.
func (s *Scene) shade(point, normal core.Vec3, material core.Color) core.Color {
	result := core.Color{
		R: material.R * ambientFactor,
		G: material.G * ambientFactor,
		B: material.B * ambientFactor,
		A: 1.0,
	}

	for _, light := range s.directionalLights {
		s.addDiffuse(&result, light, point, normal, material)
	}
	for _, light := range s.pointLights {
		s.addDiffuse(&result, light, point, normal, material)
	}

	return result
}

// addDiffuse adds one light's Lambertian contribution unless something blocks it
func (s *Scene) addDiffuse(result *core.Color, light lights.Light, point, normal core.Vec3, material core.Color) {
	c := s.evaluateLight(light, point, normal)
	if c.Occluded {
		return
	}

	result.R += c.Diffuse * c.Color.R * material.R
	result.G += c.Diffuse * c.Color.G * material.G
	result.B += c.Diffuse * c.Color.B * material.B
}

// LightContribution describes one light as seen from a surface point
type LightContribution struct {
	Light    lights.Light
	Color    core.Color
	Occluded bool
	Diffuse  float64 // max(0, n·L); zero when occluded
}

// Illumination evaluates every light at point, in the order they are shaded
func (s *Scene) Illumination(point, normal core.Vec3) []LightContribution {
	result := make([]LightContribution, 0, len(s.directionalLights)+len(s.pointLights))
	for _, light := range s.directionalLights {
		result = append(result, s.evaluateLight(light, point, normal))
	}
	for _, light := range s.pointLights {
		result = append(result, s.evaluateLight(light, point, normal))
	}
	return result
}

func (s *Scene) evaluateLight(light lights.Light, point, normal core.Vec3) LightContribution {
	sample := light.Sample(point)
	if _, occluded := s.CastRay(sample.ShadowRay); occluded {
		return LightContribution{Light: light, Color: sample.Color, Occluded: true}
	}
	return LightContribution{
		Light:   light,
		Color:   sample.Color,
		Diffuse: math.Max(0.0, normal.Dot(sample.Direction)),
	}
}
