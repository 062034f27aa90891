package geometry

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/df07/go-shadow-raytracer/pkg/core"
)

func TestPlane_Intersect_BasicIntersection(t *testing.T) {
	// Create a horizontal plane at y=0
	plane := NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))

	// Ray shooting down from above
	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))

	roots := plane.Intersect(ray)
	if len(roots) != 1 {
		t.Fatalf("Expected one root, got %v", roots)
	}
	if math.Abs(roots[0]-1.0) > 1e-9 {
		t.Errorf("Expected t=1, got t=%f", roots[0])
	}
}

func TestPlane_Intersect_BehindOrigin(t *testing.T) {
	plane := NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))

	// Below the plane and moving away from it, but still facing the front side
	ray := core.NewRay(core.NewVec3(0, -1, 0), core.NewVec3(0, -1, 0))

	roots := plane.Intersect(ray)
	if len(roots) != 1 || roots[0] != -1 {
		t.Errorf("Expected the negative root [-1], got %v", roots)
	}
}

func TestPlane_Intersect_OneSided(t *testing.T) {
	plane := NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))

	origins := []core.Vec3{
		core.NewVec3(0, -1, 0),
		core.NewVec3(0, 1, 0),
		core.NewVec3(5, -100, 3),
	}
	directions := []core.Vec3{
		core.NewVec3(0, 1, 0),
		core.NewVec3(0.3, 0.2, -0.9).Normalize(),
		core.NewVec3(-1, 1e-6, 0),
	}

	for _, origin := range origins {
		for _, direction := range directions {
			ray := core.NewRay(origin, direction)
			if roots := plane.Intersect(ray); len(roots) != 0 {
				t.Errorf("Ray %v -> %v hit the back of the plane at %v", origin, direction, roots)
			}
		}
	}
}

func TestPlane_Intersect_ParallelAndDeadZone(t *testing.T) {
	plane := NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))

	tests := []struct {
		name      string
		direction core.Vec3
		expectHit bool
	}{
		{"parallel", core.NewVec3(1, 0, 0), false},
		{"inside dead zone", core.NewVec3(1, -1e-11, 0), false},
		{"at dead zone edge", core.NewVec3(1, -1e-10, 0), false},
		{"just past dead zone", core.NewVec3(1, -1e-9, 0), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(core.NewVec3(0, 1, 0), tt.direction)
			roots := plane.Intersect(ray)
			if hit := len(roots) == 1; hit != tt.expectHit {
				t.Errorf("Expected hit=%v, got roots %v", tt.expectHit, roots)
			}
		})
	}
}

func newTestSegment(t *testing.T) PlaneSegment {
	t.Helper()
	plane := NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))
	segment, err := NewPlaneSegment(plane, core.NewVec3(1, 0, 0), core.NewVec3(0, 0, 1), 2, 1)
	if err != nil {
		t.Fatalf("Unexpected error building segment: %v", err)
	}
	return segment
}

func TestPlaneSegment_Intersect_Bounds(t *testing.T) {
	segment := newTestSegment(t)

	tests := []struct {
		u, v      float64
		expectHit bool
	}{
		{1, 0.5, true},
		{0.001, 0.001, true},
		{1.999, 0.999, true},
		{0, 0, false},
		{0, 0.5, false},
		{1, 0, false},
		{2, 0.5, false},
		{1, 1, false},
		{-0.1, 0.5, false},
		{1, 1.1, false},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("u=%g,v=%g", tt.u, tt.v), func(t *testing.T) {
			// Straight down onto (u, 0, v); the hit point is exact
			ray := core.NewRay(core.NewVec3(tt.u, 1, tt.v), core.NewVec3(0, -1, 0))
			roots := segment.Intersect(ray)
			if hit := len(roots) == 1; hit != tt.expectHit {
				t.Errorf("Expected hit=%v, got roots %v", tt.expectHit, roots)
			}
		})
	}
}

func TestPlaneSegment_Intersect_BackFace(t *testing.T) {
	segment := newTestSegment(t)

	ray := core.NewRay(core.NewVec3(1, -1, 0.5), core.NewVec3(0, 1, 0))
	if roots := segment.Intersect(ray); len(roots) != 0 {
		t.Errorf("Expected miss from behind, got %v", roots)
	}
}

func TestPlaneSegment_UV(t *testing.T) {
	plane := NewPlane(core.NewVec3(1, 2, 3), core.NewVec3(0, 0, 1))
	segment, err := NewPlaneSegment(plane, core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0), 4, 4)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	u, v := segment.UV(core.NewVec3(2.5, 2.25, 3))
	if math.Abs(u-1.5) > 1e-9 || math.Abs(v-0.25) > 1e-9 {
		t.Errorf("Expected uv (1.5, 0.25), got (%f, %f)", u, v)
	}
}

func TestNewPlaneSegment_ProjectsBasisIntoPlane(t *testing.T) {
	plane := NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))

	segment, err := NewPlaneSegment(plane, core.NewVec3(2, 3, 0), core.NewVec3(0, -1, 0.5), 1, 1)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	tolerance := 1e-9
	for name, basis := range map[string]core.Vec3{"u": segment.U, "v": segment.V} {
		if math.Abs(basis.Length()-1) > tolerance {
			t.Errorf("%s vector %v is not unit length", name, basis)
		}
		if math.Abs(basis.Dot(plane.Normal)) > tolerance {
			t.Errorf("%s vector %v is not in the plane", name, basis)
		}
	}
	if segment.U.Subtract(core.NewVec3(1, 0, 0)).Length() > tolerance {
		t.Errorf("Expected u = (1,0,0), got %v", segment.U)
	}
	if segment.V.Subtract(core.NewVec3(0, 0, 1)).Length() > tolerance {
		t.Errorf("Expected v = (0,0,1), got %v", segment.V)
	}
}

func TestNewPlaneSegment_DegenerateBasis(t *testing.T) {
	plane := NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))

	tests := []struct {
		name string
		u, v core.Vec3
	}{
		{"u along normal", core.NewVec3(0, 2, 0), core.NewVec3(0, 0, 1)},
		{"v against normal", core.NewVec3(1, 0, 0), core.NewVec3(0, -1, 0)},
		{"u zero", core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPlaneSegment(plane, tt.u, tt.v, 1, 1)
			if !errors.Is(err, ErrDegenerateBasis) {
				t.Errorf("Expected ErrDegenerateBasis, got %v", err)
			}
		})
	}
}
