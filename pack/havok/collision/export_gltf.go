package collision

import (
	"io"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/wiiskii/tank_havok_browser/utils"
)

// ExportGLTF builds a document with one mesh+node per geometry. Collision
// meshes carry positions and indices only.
func ExportGLTF(geoms []*Geometry, swapAxes bool) (*gltf.Document, error) {
	doc := gltf.NewDocument()

	doc.Materials = append(doc.Materials, &gltf.Material{
		Name:        "collision",
		DoubleSided: true,
	})

	for _, g := range geoms {
		positions := make([][3]float32, len(g.Verts))
		for iVertex, vert := range g.Verts {
			if swapAxes {
				vert = utils.SwapAxesYZ(vert)
			}
			positions[iVertex] = [3]float32{vert[0], vert[1], vert[2]}
		}
		positionAccessor := modeler.WritePosition(doc, positions)

		tris := g.Tris()
		indices := make([]uint32, len(tris)*3)
		for iTri, tri := range tris {
			indices[iTri*3+0] = uint32(tri[0])
			indices[iTri*3+1] = uint32(tri[1])
			indices[iTri*3+2] = uint32(tri[2])
		}
		indicesAccessor := modeler.WriteIndices(doc, indices)

		gltfMesh := &gltf.Mesh{
			Name: g.Name,
			Primitives: []*gltf.Primitive{
				&gltf.Primitive{
					Indices: &indicesAccessor,
					Attributes: map[string]uint32{
						"POSITION": positionAccessor,
					},
					Material: gltf.Index(0),
				},
			},
		}
		doc.Meshes = append(doc.Meshes, gltfMesh)

		doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, uint32(len(doc.Nodes)))
		doc.Nodes = append(doc.Nodes, &gltf.Node{
			Name: g.Name,
			Mesh: gltf.Index(uint32(len(doc.Meshes) - 1)),
		})
	}

	return doc, nil
}

// ExportGLB encodes the geometries as binary gltf.
func ExportGLB(w io.Writer, geoms []*Geometry, swapAxes bool) error {
	doc, err := ExportGLTF(geoms, swapAxes)
	if err != nil {
		return err
	}

	encoder := gltf.NewEncoder(w)
	encoder.AsBinary = true
	return encoder.Encode(doc)
}
