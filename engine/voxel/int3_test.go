package voxel

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestGridToChunkFloorsNegatives(t *testing.T) {
	cellSize := Int3{16, 16, 16}
	cases := []struct {
		grid Int3
		want Int3
	}{
		{Int3{0, 0, 0}, Int3{0, 0, 0}},
		{Int3{15, 15, 15}, Int3{0, 0, 0}},
		{Int3{16, 0, 0}, Int3{1, 0, 0}},
		{Int3{-1, 0, 0}, Int3{-1, 0, 0}},
		{Int3{-16, -17, 31}, Int3{-1, -2, 1}},
	}
	for _, c := range cases {
		if got := GridToChunk(c.grid, cellSize); got != c.want {
			t.Errorf("GridToChunk(%s) = %s, want %s", c.grid.ToString(), got.ToString(), c.want.ToString())
		}
	}
}

func TestChunkWorldRoundTrip(t *testing.T) {
	scale := mgl32.Vec3{0.5, 1, 2}
	cellSize := Int3{8, 8, 8}
	positions := []mgl32.Vec3{
		{0, 0, 0},
		{3.7, 9.2, -0.1},
		{-12.5, 100, -64},
		{1e4, -1e4, 0.25},
	}
	for _, pos := range positions {
		chunk := WorldToChunk(pos, scale, cellSize)
		// the chunk's min corner lies in the same chunk again
		corner := ChunkToWorld(chunk, scale, cellSize)
		if again := WorldToChunk(corner, scale, cellSize); again != chunk {
			t.Errorf("position %v: chunk %s, corner %v maps to %s", pos, chunk.ToString(), corner, again.ToString())
		}
	}
}

func TestWorldGridTransforms(t *testing.T) {
	scale := mgl32.Vec3{2, 2, 2}
	if got := WorldToGrid(mgl32.Vec3{-0.5, 3.9, 4}, scale); got != (Int3{-1, 1, 2}) {
		t.Errorf("WorldToGrid = %s", got.ToString())
	}
	if got := GridToWorld(Int3{-1, 1, 2}, scale); got != (mgl32.Vec3{-2, 2, 4}) {
		t.Errorf("GridToWorld = %v", got)
	}
}

func TestInt3Less(t *testing.T) {
	ordered := []Int3{
		{-1, 5, 5},
		{0, -3, 9},
		{0, 0, -1},
		{0, 0, 0},
		{0, 0, 1},
		{2, 0, 0},
	}
	for i := 0; i < len(ordered)-1; i++ {
		if !ordered[i].Less(ordered[i+1]) {
			t.Errorf("%s should order before %s", ordered[i].ToString(), ordered[i+1].ToString())
		}
		if ordered[i+1].Less(ordered[i]) {
			t.Errorf("%s should not order before %s", ordered[i+1].ToString(), ordered[i].ToString())
		}
	}
	if (Int3{1, 2, 3}).Less(Int3{1, 2, 3}) {
		t.Error("Less must be strict")
	}
}
