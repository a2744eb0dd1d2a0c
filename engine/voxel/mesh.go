package voxel

import (
	"github.com/go-gl/mathgl/mgl32"
)

type MeshMode int

const (
	Flat MeshMode = iota
	Indexed
)

// Mesh is the triangulated output of one chunk. In Flat mode Indices stays
// empty and every 3 consecutive vertices form a triangle; in Indexed mode
// positions are welded and Indices references them. Blends carries the
// optional per-vertex secondary attribute, parallel to Vertices.
type Mesh struct {
	Vertices []mgl32.Vec3
	Indices  []uint32
	Blends   []float32
}

func (m *Mesh) TriangleCount() int {
	if len(m.Indices) > 0 {
		return len(m.Indices) / 3
	}
	return len(m.Vertices) / 3
}

func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// Reset empties the mesh but keeps the allocated capacity, so remeshing a
// chunk reuses its buffers instead of churning allocations every tick.
func (m *Mesh) Reset() {
	m.Vertices = m.Vertices[:0]
	m.Indices = m.Indices[:0]
	m.Blends = m.Blends[:0]
}

// meshWriter appends triangles to a Mesh, welding vertices when indexed.
// Welding keys on the exact floating-point position: positions that are
// mathematically equal but differ by rounding are not merged.
type meshWriter struct {
	mesh    *Mesh
	indexed bool
	weld    map[mgl32.Vec3]uint32
}

func newMeshWriter(mesh *Mesh, indexed bool) *meshWriter {
	w := &meshWriter{mesh: mesh, indexed: indexed}
	if indexed {
		w.weld = make(map[mgl32.Vec3]uint32)
	}
	return w
}

func (w *meshWriter) addVertex(pos mgl32.Vec3, blend float32) {
	if !w.indexed {
		w.mesh.Vertices = append(w.mesh.Vertices, pos)
		w.mesh.Blends = append(w.mesh.Blends, blend)
		return
	}
	index, seen := w.weld[pos]
	if !seen {
		index = uint32(len(w.mesh.Vertices))
		w.weld[pos] = index
		w.mesh.Vertices = append(w.mesh.Vertices, pos)
		w.mesh.Blends = append(w.mesh.Blends, blend)
	}
	w.mesh.Indices = append(w.mesh.Indices, index)
}
