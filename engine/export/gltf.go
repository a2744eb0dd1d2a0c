package export

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"terravox/engine/util"
	"terravox/engine/voxel"
)

// BlendAttribute is the accessor name for the optional per-vertex
// secondary attribute carried through from the density samples.
const BlendAttribute = "_BLEND"

// GLTF accumulates chunk meshes into one glTF document, one node per
// chunk. Positions are already in world space, so nodes carry no
// transform.
type GLTF struct {
	doc *gltf.Document
}

func NewGLTF() *GLTF {
	return &GLTF{doc: gltf.NewDocument()}
}

// AddMesh appends one chunk mesh to the document. Empty meshes are
// skipped; a fully inside or fully outside chunk has nothing to show.
func (g *GLTF) AddMesh(coord voxel.Int3, mesh *voxel.Mesh) {
	if mesh.TriangleCount() == 0 {
		return
	}

	positions := make([][3]float32, len(mesh.Vertices))
	for i, v := range mesh.Vertices {
		positions[i] = [3]float32{v.X(), v.Y(), v.Z()}
	}

	attributes := map[string]uint32{
		gltf.POSITION: modeler.WritePosition(g.doc, positions),
	}
	if len(mesh.Blends) == len(mesh.Vertices) && len(mesh.Blends) > 0 {
		attributes[BlendAttribute] = modeler.WriteAccessor(g.doc, gltf.TargetArrayBuffer, mesh.Blends)
	}

	primitive := &gltf.Primitive{Attributes: attributes}
	if len(mesh.Indices) > 0 {
		indices := make([]uint32, len(mesh.Indices))
		copy(indices, mesh.Indices)
		primitive.Indices = gltf.Index(modeler.WriteIndices(g.doc, indices))
	}

	name := fmt.Sprintf("chunk_%d_%d_%d", coord.X, coord.Y, coord.Z)
	g.doc.Meshes = append(g.doc.Meshes, &gltf.Mesh{
		Name:       name,
		Primitives: []*gltf.Primitive{primitive},
	})
	meshIndex := uint32(len(g.doc.Meshes) - 1)
	g.doc.Nodes = append(g.doc.Nodes, &gltf.Node{Name: name, Mesh: gltf.Index(meshIndex)})
	nodeIndex := uint32(len(g.doc.Nodes) - 1)
	g.doc.Scenes[0].Nodes = append(g.doc.Scenes[0].Nodes, nodeIndex)
}

func (g *GLTF) MeshCount() int {
	return len(g.doc.Meshes)
}

func (g *GLTF) Save(path string) error {
	if err := gltf.Save(g.doc, path); err != nil {
		return errors.Wrapf(err, "saving %s", path)
	}
	util.LogIOInfo(fmt.Sprintf("[Export] Wrote %d chunk meshes to %s", len(g.doc.Meshes), path))
	return nil
}
