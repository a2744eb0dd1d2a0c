package voxel

import (
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl32"

	"terravox/engine/util"
)

// surfaceEpsilon guards the edge interpolation against division by ~0 when
// a corner sits (almost) exactly on the isosurface.
const surfaceEpsilon = 1e-5

// maxTrianglesPerCell is the marching-cubes worst case.
const maxTrianglesPerCell = 5

// Triangulator converts a DensityField into a triangle mesh. It carries no
// state besides scratch buffers for the parallel path, so one instance per
// chunk is enough and calls on it stay cheap across remeshes.
type Triangulator struct {
	scratchVerts  []mgl32.Vec3
	scratchBlends []float32
}

func NewTriangulator() *Triangulator {
	return &Triangulator{}
}

// Triangulate walks every cell in order and appends its triangles to mesh,
// welding inline when mode is Indexed. Cells range over [0, cellSize) per
// axis; the +1 sample border guarantees each of them has all 8 corners.
func (tr *Triangulator) Triangulate(field *DensityField, scale mgl32.Vec3, mode MeshMode, mesh *Mesh) {
	mesh.Reset()
	w := newMeshWriter(mesh, mode == Indexed)
	emit := func(v [3]mgl32.Vec3, b [3]float32) {
		w.addVertex(scaleVec(v[0], scale), b[0])
		w.addVertex(scaleVec(v[1], scale), b[1])
		w.addVertex(scaleVec(v[2], scale), b[2])
	}
	cs := field.CellSize()
	for z := int32(0); z < cs.Z; z++ {
		for y := int32(0); y < cs.Y; y++ {
			for x := int32(0); x < cs.X; x++ {
				marchCell(field, Int3{x, y, z}, emit)
			}
		}
	}
}

// TriangulateParallel spreads the cells over all CPUs. Workers reserve
// space per emitted triangle through an atomically advanced cursor into a
// worst-case sized scratch buffer; welding is inherently sequential, so the
// compaction into mesh happens after the join. Triangle order follows
// completion order, not cell order.
func (tr *Triangulator) TriangulateParallel(field *DensityField, scale mgl32.Vec3, mode MeshMode, mesh *Mesh) {
	cs := field.CellSize()
	cells := int(cs.X) * int(cs.Y) * int(cs.Z)
	worst := cells * maxTrianglesPerCell * 3
	if cap(tr.scratchVerts) < worst {
		tr.scratchVerts = make([]mgl32.Vec3, worst)
		tr.scratchBlends = make([]float32, worst)
	}
	verts := tr.scratchVerts[:worst]
	blends := tr.scratchBlends[:worst]

	var triangles int64
	util.ParallelFor(cells, func(i int) {
		cell := Int3{
			int32(i) % cs.X,
			(int32(i) / cs.X) % cs.Y,
			int32(i) / (cs.X * cs.Y),
		}
		marchCell(field, cell, func(v [3]mgl32.Vec3, b [3]float32) {
			at := (atomic.AddInt64(&triangles, 1) - 1) * 3
			for k := 0; k < 3; k++ {
				verts[at+int64(k)] = scaleVec(v[k], scale)
				blends[at+int64(k)] = b[k]
			}
		})
	})

	mesh.Reset()
	w := newMeshWriter(mesh, mode == Indexed)
	for i := 0; i < int(triangles)*3; i++ {
		w.addVertex(verts[i], blends[i])
	}
}

// Triangulate is the convenience one-shot form of Triangulator.Triangulate.
func Triangulate(field *DensityField, scale mgl32.Vec3, mode MeshMode) *Mesh {
	mesh := &Mesh{}
	NewTriangulator().Triangulate(field, scale, mode, mesh)
	return mesh
}

// marchCell triangulates the single cell whose minimum corner is cell and
// hands every triangle to emit, in grid space (unscaled). The vertex order
// (p[e2], p[e1], p[e0]) reverses the table's emission order; with the
// density > 0 inside convention this yields outward-facing windings.
func marchCell(field *DensityField, cell Int3, emit func(v [3]mgl32.Vec3, b [3]float32)) {
	var density [8]float32
	var blend [8]float32
	mask := 0
	for i, offset := range CornerOffsets {
		sample := field.Get(cell.Add(offset))
		density[i] = sample.Density
		blend[i] = sample.Blend
		if sample.Density > 0 {
			mask |= 1 << i
		}
	}

	edgeMask := EdgeTable[mask]
	if edgeMask == 0 {
		return
	}

	var points [12]mgl32.Vec3
	var blends [12]float32
	for e := 0; e < 12; e++ {
		if edgeMask&(1<<e) == 0 {
			continue
		}
		c0, c1 := EdgeCorners[e][0], EdgeCorners[e][1]
		g0, g1 := cell.Add(CornerOffsets[c0]), cell.Add(CornerOffsets[c1])
		// neighboring cells walk a shared edge from opposite ends; fixing
		// the interpolation direction makes the crossing bit-identical on
		// both sides, which the exact-equality weld depends on
		if g1.Less(g0) {
			g0, g1 = g1, g0
			c0, c1 = c1, c0
		}
		points[e], blends[e] = interpolateEdge(
			g0.ToVec3(), g1.ToVec3(),
			density[c0], density[c1],
			blend[c0], blend[c1],
		)
	}

	row := &TriTable[mask]
	for t := 0; t < len(row); t += 3 {
		if row[t] < 0 {
			break
		}
		e0, e1, e2 := row[t], row[t+1], row[t+2]
		emit(
			[3]mgl32.Vec3{points[e2], points[e1], points[e0]},
			[3]float32{blends[e2], blends[e1], blends[e0]},
		)
	}
}

// interpolateEdge finds where the zero level set crosses the edge p0-p1.
// The blend attribute is not interpolated; the nearer corner's value is
// carried through unchanged.
func interpolateEdge(p0, p1 mgl32.Vec3, v0, v1, b0, b1 float32) (mgl32.Vec3, float32) {
	if abs32(v0) < surfaceEpsilon {
		return p0, b0
	}
	if abs32(v1) < surfaceEpsilon {
		return p1, b1
	}
	if abs32(v0-v1) < surfaceEpsilon {
		return p0, b0
	}
	t := (0 - v0) / (v1 - v0)
	blend := b0
	if t >= 0.5 {
		blend = b1
	}
	return p0.Add(p1.Sub(p0).Mul(t)), blend
}

func scaleVec(v mgl32.Vec3, scale mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{v.X() * scale.X(), v.Y() * scale.Y(), v.Z() * scale.Z()}
}

func abs32(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}
