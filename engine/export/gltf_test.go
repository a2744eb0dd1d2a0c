package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"terravox/engine/voxel"
)

func testMesh() *voxel.Mesh {
	return &voxel.Mesh{
		Vertices: []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		Blends:   []float32{0, 0.5, 1},
		Indices:  []uint32{0, 1, 2},
	}
}

func TestAddMeshSkipsEmpty(t *testing.T) {
	g := NewGLTF()
	g.AddMesh(voxel.Int3{}, &voxel.Mesh{})
	if g.MeshCount() != 0 {
		t.Errorf("empty mesh produced %d document meshes", g.MeshCount())
	}
}

func TestSaveRoundTrip(t *testing.T) {
	g := NewGLTF()
	g.AddMesh(voxel.Int3{X: 1, Y: -2, Z: 3}, testMesh())
	g.AddMesh(voxel.Int3{X: 0, Y: 0, Z: 0}, testMesh())
	if g.MeshCount() != 2 {
		t.Fatalf("mesh count %d, want 2", g.MeshCount())
	}

	path := filepath.Join(t.TempDir(), "world.gltf")
	if err := g.Save(path); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Error("saved document is empty")
	}
}
