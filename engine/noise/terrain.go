package noise

import (
	"github.com/go-gl/mathgl/mgl32"
	opensimplex "github.com/ojrac/opensimplex-go"

	"terravox/engine/voxel"
)

// Terrain is the default density function: signed distance to a rolling
// heightfield, positive below the surface. Sampling keys on world
// coordinates only, so chunk seams stay consistent no matter in which
// order chunks generate.
type Terrain struct {
	noise     opensimplex.Noise
	frequency float64
	amplitude float32
	surfaceY  float32
}

func NewTerrain(seed int64, frequency float64) *Terrain {
	if frequency <= 0 {
		frequency = 0.05
	}
	return &Terrain{
		noise:     opensimplex.New(seed),
		frequency: frequency,
		amplitude: 6,
		surfaceY:  0,
	}
}

// Sample implements voxel.Sampler. The blend attribute is a second, lower
// frequency noise octave in [0, 1], usable as a material weight.
func (t *Terrain) Sample(pos mgl32.Vec3) (voxel.Voxel, error) {
	x := float64(pos.X()) * t.frequency
	y := float64(pos.Y()) * t.frequency
	z := float64(pos.Z()) * t.frequency

	height := t.amplitude * float32(t.noise.Eval2(x, z))
	density := (t.surfaceY + height) - pos.Y()

	blend := float32(t.noise.Eval3(x*0.5, y*0.5, z*0.5))*0.5 + 0.5
	return voxel.Voxel{Density: density, Blend: blend}, nil
}

// Sphere is a fixed solid ball, handy for tests and quick visual checks.
type Sphere struct {
	Center mgl32.Vec3
	Radius float32
}

func (s Sphere) Sample(pos mgl32.Vec3) (voxel.Voxel, error) {
	return voxel.Voxel{Density: s.Radius - pos.Sub(s.Center).Len()}, nil
}
