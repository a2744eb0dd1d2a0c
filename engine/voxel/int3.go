package voxel

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"terravox/engine/util"
)

type Int3 struct {
	X, Y, Z int32
}

func (i Int3) Add(other Int3) Int3 {
	return Int3{i.X + other.X, i.Y + other.Y, i.Z + other.Z}
}

func (i Int3) Sub(other Int3) Int3 {
	return Int3{i.X - other.X, i.Y - other.Y, i.Z - other.Z}
}

func (i Int3) Mul(factor int32) Int3 {
	i.X *= factor
	i.Y *= factor
	i.Z *= factor
	return i
}

// MulEach multiplies component-wise, eg. grid coordinate by cell size.
func (i Int3) MulEach(other Int3) Int3 {
	return Int3{i.X * other.X, i.Y * other.Y, i.Z * other.Z}
}

func (i Int3) ToVec3() mgl32.Vec3 {
	return mgl32.Vec3{float32(i.X), float32(i.Y), float32(i.Z)}
}

// Less orders lexicographically by X, then Y, then Z.
func (i Int3) Less(other Int3) bool {
	if i.X != other.X {
		return i.X < other.X
	}
	if i.Y != other.Y {
		return i.Y < other.Y
	}
	return i.Z < other.Z
}

func (i Int3) ToString() string {
	return fmt.Sprintf("(%d, %d, %d)", i.X, i.Y, i.Z)
}

func ManhattanDistance3(a, b Int3) int32 {
	return util.Abs(a.X-b.X) + util.Abs(a.Y-b.Y) + util.Abs(a.Z-b.Z)
}

// WorldToGrid maps a world-space position to the integer voxel grid,
// flooring per axis after dividing out the world scale.
func WorldToGrid(pos mgl32.Vec3, scale mgl32.Vec3) Int3 {
	return Int3{
		int32(math.Floor(float64(pos.X() / scale.X()))),
		int32(math.Floor(float64(pos.Y() / scale.Y()))),
		int32(math.Floor(float64(pos.Z() / scale.Z()))),
	}
}

// GridToWorld maps an integer voxel grid coordinate back to world space.
func GridToWorld(grid Int3, scale mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{
		float32(grid.X) * scale.X(),
		float32(grid.Y) * scale.Y(),
		float32(grid.Z) * scale.Z(),
	}
}

// GridToChunk maps a voxel grid coordinate to the coordinate of the chunk
// that owns it. Floor division, so negative coordinates land in negative
// chunks instead of all sharing chunk zero.
func GridToChunk(grid Int3, cellSize Int3) Int3 {
	return Int3{
		util.FloorDiv(grid.X, cellSize.X),
		util.FloorDiv(grid.Y, cellSize.Y),
		util.FloorDiv(grid.Z, cellSize.Z),
	}
}

// ChunkToGrid returns the grid coordinate of a chunk's minimum corner.
func ChunkToGrid(chunk Int3, cellSize Int3) Int3 {
	return chunk.MulEach(cellSize)
}

func WorldToChunk(pos mgl32.Vec3, scale mgl32.Vec3, cellSize Int3) Int3 {
	return GridToChunk(WorldToGrid(pos, scale), cellSize)
}

// ChunkToWorld returns the world-space position of a chunk's minimum corner.
func ChunkToWorld(chunk Int3, scale mgl32.Vec3, cellSize Int3) mgl32.Vec3 {
	return GridToWorld(ChunkToGrid(chunk, cellSize), scale)
}
