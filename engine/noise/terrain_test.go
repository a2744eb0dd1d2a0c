package noise

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestTerrainIsDeterministic(t *testing.T) {
	a := NewTerrain(1234, 0.05)
	b := NewTerrain(1234, 0.05)
	for _, pos := range []mgl32.Vec3{{0, 0, 0}, {17.5, -3, 42}, {-100, 8, 0.25}} {
		va, err := a.Sample(pos)
		if err != nil {
			t.Fatal(err)
		}
		vb, _ := b.Sample(pos)
		if va != vb {
			t.Errorf("same seed diverged at %v: %v vs %v", pos, va, vb)
		}
	}
}

func TestTerrainDensitySign(t *testing.T) {
	tr := NewTerrain(7, 0.05)
	deep, err := tr.Sample(mgl32.Vec3{3, -100, 3})
	if err != nil {
		t.Fatal(err)
	}
	if deep.Density <= 0 {
		t.Errorf("far below the surface should be solid, got %f", deep.Density)
	}
	high, _ := tr.Sample(mgl32.Vec3{3, 100, 3})
	if high.Density >= 0 {
		t.Errorf("far above the surface should be air, got %f", high.Density)
	}
}

func TestTerrainBlendRange(t *testing.T) {
	tr := NewTerrain(99, 0.1)
	for x := float32(-8); x <= 8; x += 2 {
		v, _ := tr.Sample(mgl32.Vec3{x, 0, -x})
		if v.Blend < 0 || v.Blend > 1 {
			t.Fatalf("blend %f at x=%f outside [0, 1]", v.Blend, x)
		}
	}
}

func TestSphereSample(t *testing.T) {
	s := Sphere{Center: mgl32.Vec3{1, 2, 3}, Radius: 4}
	center, _ := s.Sample(mgl32.Vec3{1, 2, 3})
	if center.Density != 4 {
		t.Errorf("density at center = %f, want 4", center.Density)
	}
	outside, _ := s.Sample(mgl32.Vec3{1, 2, 13})
	if outside.Density != -6 {
		t.Errorf("density 10 units out = %f, want -6", outside.Density)
	}
}
