package voxel

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"

	"terravox/engine/util"
)

// Chunk owns one density field and the mesh generated from it. dirty marks
// a mesh that no longer reflects the field; updating marks a chunk that is
// already sitting in the store's update queue.
type Chunk struct {
	coord    Int3
	cellSize Int3
	field    *DensityField
	mesh     Mesh
	tri      *Triangulator
	dirty    bool
	updating bool
}

func NewChunk(coord Int3, cellSize Int3) *Chunk {
	return &Chunk{
		coord:    coord,
		cellSize: cellSize,
		field:    NewDensityField(cellSize),
		tri:      NewTriangulator(),
	}
}

func (c *Chunk) Coord() Int3 {
	return c.coord
}

func (c *Chunk) Field() *DensityField {
	return c.field
}

func (c *Chunk) Mesh() *Mesh {
	return &c.mesh
}

func (c *Chunk) Dirty() bool {
	return c.dirty
}

func (c *Chunk) SetDirty() {
	c.dirty = true
}

// Generate fills the chunk's field from the sampler and marks it dirty.
// Calling it again fully overwrites the previous contents. On a sampler
// failure the error is returned and the chunk must not be treated as
// generated.
func (c *Chunk) Generate(scale mgl32.Vec3, sampler Sampler) error {
	originGrid := ChunkToGrid(c.coord, c.cellSize)
	if err := c.field.Fill(originGrid, scale, sampler); err != nil {
		return errors.Wrapf(err, "generating chunk %s", c.coord.ToString())
	}
	c.dirty = true
	return nil
}

// Remesh triangulates the field into the chunk's mesh buffers and clears
// dirty. Safe to call on a clean chunk; the caller decides whether to skip.
func (c *Chunk) Remesh(scale mgl32.Vec3, mode MeshMode, parallel bool) {
	c.updating = true
	if parallel {
		c.tri.TriangulateParallel(c.field, scale, mode, &c.mesh)
	} else {
		c.tri.Triangulate(c.field, scale, mode, &c.mesh)
	}
	c.dirty = false
	c.updating = false
	util.LogMeshDebug(fmt.Sprintf("[Chunk] %s meshed into %d triangles, %d vertices",
		c.coord.ToString(), c.mesh.TriangleCount(), c.mesh.VertexCount()))
}

// localGrid converts a world-grid coordinate into this chunk's field
// coordinates. ok is false when the voxel belongs to a different chunk;
// routing it there is the store's job, not ours.
func (c *Chunk) localGrid(worldGrid Int3) (Int3, bool) {
	local := worldGrid.Sub(ChunkToGrid(c.coord, c.cellSize))
	if local.X < 0 || local.Y < 0 || local.Z < 0 {
		return local, false
	}
	if local.X > c.cellSize.X || local.Y > c.cellSize.Y || local.Z > c.cellSize.Z {
		return local, false
	}
	return local, true
}

// SetVoxel writes an absolute density at a world-grid coordinate. A no-op
// returning false when the coordinate is outside this chunk's field.
func (c *Chunk) SetVoxel(worldGrid Int3, density float32) bool {
	local, ok := c.localGrid(worldGrid)
	if !ok {
		return false
	}
	c.field.SetDensity(local, density)
	c.dirty = true
	return true
}

// AddVoxel adds a density delta at a world-grid coordinate. Same routing
// rules as SetVoxel.
func (c *Chunk) AddVoxel(worldGrid Int3, delta float32) bool {
	local, ok := c.localGrid(worldGrid)
	if !ok {
		return false
	}
	c.field.AddDensity(local, delta)
	c.dirty = true
	return true
}

// GetVoxel reads a sample by local field coordinate.
func (c *Chunk) GetVoxel(local Int3) Voxel {
	return c.field.Get(local)
}
