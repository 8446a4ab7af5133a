package collision

import (
	"io"

	"github.com/mogaika/fbx/builders/bfbx73"

	"github.com/wiiskii/tank_havok_browser/utils"
	"github.com/wiiskii/tank_havok_browser/utils/fbxbuilder"
)

// exportGeometryFbx adds one Geometry+Model object pair for a collision
// mesh and connects the model to the scene root.
func exportGeometryFbx(f *fbxbuilder.FBXBuilder, g *Geometry, swapAxes bool) {
	flat := make([]float32, 0, len(g.Verts)*3)
	for _, vert := range g.Verts {
		if swapAxes {
			vert = utils.SwapAxesYZ(vert)
		}
		flat = append(flat, vert[0], vert[1], vert[2])
	}
	vertices := utils.FloatArray32to64(flat)

	// last corner of every polygon is stored negated minus one
	indexes := make([]int32, 0, len(g.Tris())*3)
	for _, tri := range g.Tris() {
		indexes = append(indexes, int32(tri[0]), int32(tri[1]), -(int32(tri[2]) + 1))
	}

	geometryId := f.GenerateId()
	geometry := bfbx73.Geometry(geometryId, "\x00\x01Geometry", "Mesh").AddNodes(
		bfbx73.Properties70().AddNodes(
			bfbx73.P("Color", "ColorRGB", "Color", "", float64(1), float64(1), float64(1)),
		),
		bfbx73.GeometryVersion(124),
		bfbx73.Vertices(vertices),
		bfbx73.PolygonVertexIndex(indexes),
		bfbx73.Layer(0).AddNodes(
			bfbx73.Version(100),
		),
	)

	modelId := f.GenerateId()
	model := bfbx73.Model(modelId, g.Name+"\x00\x01Model", "Mesh").AddNodes(
		bfbx73.Version(232),
		bfbx73.Properties70().AddNodes(
			bfbx73.P("InheritType", "enum", "", "", int32(1)),
			bfbx73.P("DefaultAttributeIndex", "int", "Integer", "", int32(0)),
			bfbx73.P("Lcl Translation", "Lcl Translation", "", "A", float64(0), float64(0), float64(0)),
			bfbx73.P("Lcl Rotation", "Lcl Rotation", "", "A", float64(0), float64(0), float64(0)),
			bfbx73.P("Lcl Scaling", "Lcl Scaling", "", "A", float64(1), float64(1), float64(1)),
		),
		bfbx73.Shading(true),
		bfbx73.Culling("CullingOff"),
	)

	f.AddObjects(model, geometry)
	f.AddConnections(
		bfbx73.C("OO", geometryId, modelId),
		bfbx73.C("OO", modelId, 0),
	)
}

// ExportFbx writes the geometries as a binary fbx scene.
func ExportFbx(w io.Writer, name string, geoms []*Geometry, swapAxes bool) error {
	f := fbxbuilder.NewFBXBuilder(name)

	for _, g := range geoms {
		exportGeometryFbx(f, g, swapAxes)
	}

	return f.Write(w)
}
