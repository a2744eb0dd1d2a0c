package voxel

import (
	"fmt"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

var unitScale = mgl32.Vec3{1, 1, 1}

// singleCellField builds a 1x1x1-cell field with corner densities taken
// from the bits of mask: +1 for a set bit (inside), -1 otherwise.
func singleCellField(mask int) *DensityField {
	field := NewDensityField(Int3{1, 1, 1})
	for i, offset := range CornerOffsets {
		density := float32(-1)
		if mask&(1<<uint(i)) != 0 {
			density = 1
		}
		field.Set(offset, Voxel{Density: density})
	}
	return field
}

func TestSingleCellAllMasks(t *testing.T) {
	for mask := 0; mask < 256; mask++ {
		mesh := Triangulate(singleCellField(mask), unitScale, Flat)
		if len(mesh.Vertices)%3 != 0 {
			t.Errorf("mask %d: %d vertices, not a whole number of triangles", mask, len(mesh.Vertices))
		}
		if len(mesh.Vertices) > 3*maxTrianglesPerCell {
			t.Errorf("mask %d: %d vertices exceeds the worst case", mask, len(mesh.Vertices))
		}
		emitted := mesh.TriangleCount() > 0
		if crossed := EdgeTable[mask] != 0; crossed != emitted {
			t.Errorf("mask %d: edge table crossed=%v but triangles emitted=%v", mask, crossed, emitted)
		}
	}
}

func TestUniformFieldsEmitNothing(t *testing.T) {
	for _, density := range []float32{-3, 3} {
		field := NewDensityField(Int3{4, 4, 4})
		err := field.Fill(Int3{}, unitScale, func(pos mgl32.Vec3) (Voxel, error) {
			return Voxel{Density: density}, nil
		})
		if err != nil {
			t.Fatal(err)
		}
		if mesh := Triangulate(field, unitScale, Flat); mesh.TriangleCount() != 0 {
			t.Errorf("uniform density %v produced %d triangles", density, mesh.TriangleCount())
		}
	}
}

// A density of -worldY+5 is a flat slab with its surface exactly at world
// y=5. A chunk filled for world y 4..8 must produce one horizontal quad per
// XZ cell column with every vertex exactly on the surface, which sits at
// y == 1 in the field's own coordinates.
func TestHorizontalSlab(t *testing.T) {
	field := NewDensityField(Int3{4, 4, 4})
	err := field.Fill(Int3{0, 4, 0}, unitScale, func(pos mgl32.Vec3) (Voxel, error) {
		return Voxel{Density: -pos.Y() + 5}, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	mesh := Triangulate(field, unitScale, Flat)

	wantTriangles := 4 * 4 * 2
	if mesh.TriangleCount() != wantTriangles {
		t.Errorf("got %d triangles, want %d", mesh.TriangleCount(), wantTriangles)
	}
	for i, v := range mesh.Vertices {
		if v.Y() != 1.0 {
			t.Fatalf("vertex %d has y=%v, want exactly 1", i, v.Y())
		}
	}
	// solid below, air above: every triangle must face up
	for i := 0; i < len(mesh.Vertices); i += 3 {
		a, b, c := mesh.Vertices[i], mesh.Vertices[i+1], mesh.Vertices[i+2]
		normal := b.Sub(a).Cross(c.Sub(a))
		if normal.Y() <= 0 {
			t.Fatalf("triangle %d (%v %v %v) has normal %v, must face +Y", i/3, a, b, c, normal)
		}
	}
}

func TestSphereNormalsFaceOutward(t *testing.T) {
	center := mgl32.Vec3{3, 3, 3}
	field := NewDensityField(Int3{6, 6, 6})
	err := field.Fill(Int3{}, unitScale, func(pos mgl32.Vec3) (Voxel, error) {
		return Voxel{Density: 2.5 - pos.Sub(center).Len()}, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	mesh := Triangulate(field, unitScale, Flat)
	if mesh.TriangleCount() == 0 {
		t.Fatal("expected a non-empty mesh")
	}
	for i := 0; i < len(mesh.Vertices); i += 3 {
		a, b, c := mesh.Vertices[i], mesh.Vertices[i+1], mesh.Vertices[i+2]
		normal := b.Sub(a).Cross(c.Sub(a))
		centroid := a.Add(b).Add(c).Mul(1.0 / 3.0)
		if normal.Dot(centroid.Sub(center)) <= 0 {
			t.Fatalf("triangle %d at %v points into the solid, normal %v", i/3, centroid, normal)
		}
	}
}

func rollingField(cellSize Int3) *DensityField {
	field := NewDensityField(cellSize)
	field.Fill(Int3{}, unitScale, func(pos mgl32.Vec3) (Voxel, error) {
		// cheap deterministic bumps, crosses zero all over the field
		return Voxel{Density: pos.Y() - 2 + 1.5*float32(mgl32.Vec2{pos.X(), pos.Z()}.Len())*0.3, Blend: pos.X()}, nil
	})
	return field
}

func TestIndexedIdempotence(t *testing.T) {
	field := rollingField(Int3{6, 6, 6})
	first := Triangulate(field, unitScale, Indexed)
	second := Triangulate(field, unitScale, Indexed)

	if len(first.Vertices) != len(second.Vertices) || len(first.Indices) != len(second.Indices) {
		t.Fatalf("buffer sizes differ: %d/%d vertices, %d/%d indices",
			len(first.Vertices), len(second.Vertices), len(first.Indices), len(second.Indices))
	}
	for i := range first.Vertices {
		if first.Vertices[i] != second.Vertices[i] {
			t.Fatalf("vertex %d differs: %v vs %v", i, first.Vertices[i], second.Vertices[i])
		}
	}
	for i := range first.Indices {
		if first.Indices[i] != second.Indices[i] {
			t.Fatalf("index %d differs: %d vs %d", i, first.Indices[i], second.Indices[i])
		}
	}
}

func TestIndexedMeshHasNoDuplicatePositions(t *testing.T) {
	mesh := Triangulate(rollingField(Int3{6, 6, 6}), unitScale, Indexed)
	if mesh.TriangleCount() == 0 {
		t.Fatal("expected a non-empty mesh")
	}
	seen := make(map[mgl32.Vec3]int, len(mesh.Vertices))
	for i, v := range mesh.Vertices {
		if prev, dup := seen[v]; dup {
			t.Fatalf("vertices %d and %d share position %v", prev, i, v)
		}
		seen[v] = i
	}
}

// Two adjacent cells interpolate their shared edge from identical inputs,
// so the crossing position is bit-for-bit equal and the weld merges it.
func TestWeldingAcrossAdjacentCells(t *testing.T) {
	field := NewDensityField(Int3{2, 1, 1})
	field.Fill(Int3{}, unitScale, func(pos mgl32.Vec3) (Voxel, error) {
		return Voxel{Density: 0.5 - pos.Y()}, nil
	})
	mesh := Triangulate(field, unitScale, Indexed)
	if mesh.TriangleCount() == 0 {
		t.Fatal("expected a non-empty mesh")
	}

	// the vertical edge at x=1 is shared by both cells; its crossing must
	// appear exactly once per z position
	for _, want := range []mgl32.Vec3{{1, 0.5, 0}, {1, 0.5, 1}} {
		count := 0
		for _, v := range mesh.Vertices {
			if v == want {
				count++
			}
		}
		if count != 1 {
			t.Errorf("shared crossing %v appears %d times, want 1", want, count)
		}
	}
}

// The bottom edge at the shared face runs -z in one cell and +z in the
// other. With a crossing parameter that is not exactly representable the
// two interpolations would differ by an ulp unless the direction is
// canonicalized, and the exact-equality weld would split the edge.
func TestWeldingAcrossOppositeEdgeDirections(t *testing.T) {
	field := NewDensityField(Int3{2, 1, 1})
	for z := int32(0); z <= 1; z++ {
		for y := int32(0); y <= 1; y++ {
			for x := int32(0); x <= 2; x++ {
				// crosses zero at z = 0.25/0.7, not a power-of-two fraction
				field.Set(Int3{x, y, z}, Voxel{Density: 0.25 - 0.7*float32(z)})
			}
		}
	}
	mesh := Triangulate(field, unitScale, Indexed)
	if mesh.TriangleCount() == 0 {
		t.Fatal("expected a non-empty mesh")
	}

	// one crossing per grid line running in z: x 0..2 times y 0..1
	if mesh.VertexCount() != 6 {
		t.Fatalf("welded mesh has %d vertices, want 6", mesh.VertexCount())
	}
	seen := make(map[mgl32.Vec3]int)
	shared := 0
	for i, v := range mesh.Vertices {
		if prev, dup := seen[v]; dup {
			t.Fatalf("vertices %d and %d share position %v, weld split the edge", prev, i, v)
		}
		seen[v] = i
		if v.X() == 1 {
			shared++
		}
	}
	if shared != 2 {
		t.Errorf("%d crossings on the shared face, want 2", shared)
	}
}

func triangleSet(t *testing.T, mesh *Mesh) map[string]int {
	t.Helper()
	if len(mesh.Vertices)%3 != 0 {
		t.Fatalf("flat mesh with %d vertices", len(mesh.Vertices))
	}
	set := make(map[string]int)
	for i := 0; i < len(mesh.Vertices); i += 3 {
		key := fmt.Sprintf("%x/%x/%x", mesh.Vertices[i], mesh.Vertices[i+1], mesh.Vertices[i+2])
		set[key]++
	}
	return set
}

func TestParallelMatchesSequential(t *testing.T) {
	field := rollingField(Int3{6, 6, 6})
	tri := NewTriangulator()

	var sequential, parallel Mesh
	tri.Triangulate(field, unitScale, Flat, &sequential)
	tri.TriangulateParallel(field, unitScale, Flat, &parallel)

	// parallel emission order follows completion, so compare as sets
	seq := triangleSet(t, &sequential)
	par := triangleSet(t, &parallel)
	if len(seq) != len(par) {
		t.Fatalf("distinct triangle counts differ: %d vs %d", len(seq), len(par))
	}
	for key, n := range seq {
		if par[key] != n {
			t.Errorf("triangle %s: sequential emits %d, parallel %d", key, n, par[key])
		}
	}
}

func TestScaleAppliesPerAxis(t *testing.T) {
	field := NewDensityField(Int3{2, 2, 2})
	field.Fill(Int3{}, unitScale, func(pos mgl32.Vec3) (Voxel, error) {
		return Voxel{Density: 1 - pos.Y()}, nil
	})
	mesh := Triangulate(field, mgl32.Vec3{2, 3, 4}, Flat)
	if mesh.TriangleCount() == 0 {
		t.Fatal("expected a non-empty mesh")
	}
	for _, v := range mesh.Vertices {
		if v.Y() != 3 {
			t.Fatalf("surface sits at grid y=1, scaled vertex y=%v, want 3", v.Y())
		}
	}
}

func BenchmarkTriangulate(b *testing.B) {
	field := rollingField(Int3{16, 16, 16})
	tri := NewTriangulator()
	var mesh Mesh
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tri.Triangulate(field, unitScale, Flat, &mesh)
	}
}

func BenchmarkTriangulateParallel(b *testing.B) {
	field := rollingField(Int3{16, 16, 16})
	tri := NewTriangulator()
	var mesh Mesh
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tri.TriangulateParallel(field, unitScale, Flat, &mesh)
	}
}
