package voxel

import (
	"fmt"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"

	"terravox/engine/util"
)

// Voxel is one scalar density sample. Density > 0 means inside the solid,
// density < 0 outside; the isosurface sits at density == 0. Blend is an
// optional per-deployment attribute (eg. a material blend weight) that is
// carried through untouched and never affects triangulation.
type Voxel struct {
	Density float32
	Blend   float32
}

// Sampler fills a voxel from a world-space position. It must be pure and
// safe to call from many goroutines at once.
type Sampler func(pos mgl32.Vec3) (Voxel, error)

// DensityField is one chunk's grid of samples. It stores cellSize+1 samples
// per axis: every cell needs all 8 corner samples and the last cell row
// shares its far corners with the neighboring chunk. Stored index equals
// cell-space coordinate (no read offset); the shared boundary voxel is
// index 0 of chunk c and index cellSize of chunk c-1.
type DensityField struct {
	cellSize Int3
	dim      Int3 // cellSize + 1 per axis
	data     []Voxel
}

func NewDensityField(cellSize Int3) *DensityField {
	if cellSize.X < 1 || cellSize.Y < 1 || cellSize.Z < 1 {
		panic(fmt.Sprintf("density field needs at least one cell per axis, got %s", cellSize.ToString()))
	}
	dim := cellSize.Add(Int3{1, 1, 1})
	return &DensityField{
		cellSize: cellSize,
		dim:      dim,
		data:     make([]Voxel, dim.X*dim.Y*dim.Z),
	}
}

func (f *DensityField) CellSize() Int3 {
	return f.cellSize
}

func (f *DensityField) sampleIndex(grid Int3) int32 {
	if grid.X < 0 || grid.X >= f.dim.X || grid.Y < 0 || grid.Y >= f.dim.Y || grid.Z < 0 || grid.Z >= f.dim.Z {
		panic(fmt.Sprintf("density field access out of range: %s, dimensions %s", grid.ToString(), f.dim.ToString()))
	}
	return grid.X + grid.Y*f.dim.X + grid.Z*f.dim.X*f.dim.Y
}

func (f *DensityField) Get(grid Int3) Voxel {
	return f.data[f.sampleIndex(grid)]
}

func (f *DensityField) Set(grid Int3, v Voxel) {
	f.data[f.sampleIndex(grid)] = v
}

func (f *DensityField) SetDensity(grid Int3, density float32) {
	f.data[f.sampleIndex(grid)].Density = density
}

// AddDensity adds delta to the sample's density and leaves Blend as it is.
func (f *DensityField) AddDensity(grid Int3, delta float32) {
	f.data[f.sampleIndex(grid)].Density += delta
}

// Fill assigns every sample the value of sampler at the sample's world
// position, where originGrid is the grid coordinate of sample (0,0,0).
// Samples are evaluated in parallel; if the sampler fails, the first error
// is returned and the field contents must be considered invalid.
func (f *DensityField) Fill(originGrid Int3, scale mgl32.Vec3, sampler Sampler) error {
	var mu sync.Mutex
	var firstErr error

	util.ParallelFor(len(f.data), func(i int) {
		x := int32(i) % f.dim.X
		y := (int32(i) / f.dim.X) % f.dim.Y
		z := int32(i) / (f.dim.X * f.dim.Y)
		pos := GridToWorld(originGrid.Add(Int3{x, y, z}), scale)
		v, err := sampler(pos)
		if err != nil {
			mu.Lock()
			if firstErr == nil {
				firstErr = errors.Wrapf(err, "sampling %s", Int3{x, y, z}.ToString())
			}
			mu.Unlock()
			return
		}
		f.data[i] = v
	})
	return firstErr
}
