package collision

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"

	"github.com/wiiskii/tank_havok_browser/pack/tag"
)

// ErrCorruptGeometry marks geometry whose index rewrite produced an
// out-of-range reference: either the source file is broken or the section
// range invariant is violated. Such geometry is rejected whole instead of
// being silently clamped.
var ErrCorruptGeometry = errors.New("corrupt geometry")

// Quad is a 4-corner primitive. Before index resolution its corners are
// in the owning section's mixed local space; after NewGeometryFromTag
// returns they reference the unified vertex array.
type Quad [4]int

type Triangle [3]int

// Geometry is one reconstructed collision mesh. Verts holds decoded
// packed vertices in [0, len(PackedVertices)) and decoded shared vertices
// after them; Primitives reference that unified space. Immutable after
// construction.
type Geometry struct {
	Name      string
	DomainMin mgl32.Vec3
	DomainMax mgl32.Vec3

	Primitives          []Quad
	SharedVertices      []uint64
	SharedVerticesIndex []uint32
	PackedVertices      []uint32
	Sections            []*Section

	Verts []mgl32.Vec3

	tris []Triangle
}

// Tris is the triangulated, degenerate-filtered view of Primitives.
func (g *Geometry) Tris() []Triangle {
	return g.tris
}

func NewGeometryFromTag(name string, meshTree *tag.Node) (*Geometry, error) {
	g := &Geometry{Name: name}

	var err error
	if g.DomainMin, g.DomainMax, err = readDomain(meshTree); err != nil {
		return nil, err
	}
	if g.Primitives, err = readPrimitives(meshTree); err != nil {
		return nil, err
	}
	if g.SharedVerticesIndex, err = readUint32Array(meshTree, "sharedVerticesIndex"); err != nil {
		return nil, err
	}
	if g.Sections, err = readSections(meshTree); err != nil {
		return nil, err
	}
	if g.SharedVertices, err = readUint64Array(meshTree, "sharedVertices"); err != nil {
		return nil, err
	}
	if g.PackedVertices, err = readUint32Array(meshTree, "packedVertices"); err != nil {
		return nil, err
	}

	if err := validateSections(g.Sections, len(g.PackedVertices), len(g.Primitives)); err != nil {
		return nil, err
	}

	g.Verts = make([]mgl32.Vec3, len(g.PackedVertices)+len(g.SharedVertices))
	unpackSharedVertices(g.Verts[len(g.PackedVertices):], g.SharedVertices, g.DomainMin, g.DomainMax)

	for _, sec := range g.Sections {
		if sec.NumPackedVertices > 0 {
			first, num := sec.FirstPackedVertexIndex, sec.NumPackedVertices
			unpackPackedVertices(g.Verts[first:first+num],
				g.PackedVertices[first:first+num],
				sec.Codec, sec.DomainMin, sec.DomainMax)
		}

		if err := g.resolveSectionIndices(sec); err != nil {
			return nil, err
		}
	}

	g.tris = TriangulateQuads(g.Primitives)

	return g, nil
}

// resolveSectionIndices rewrites the section's primitive slice from mixed
// local space to the unified vertex space. A corner below the section's
// packed count addresses its own packed vertices; anything above goes
// through the shared indirection table. The section ranges were validated
// disjoint, so each quad is rewritten exactly once.
func (g *Geometry) resolveSectionIndices(sec *Section) error {
	numVerts := len(g.Verts)
	for qi := sec.FirstPrimitiveIndex; qi < sec.FirstPrimitiveIndex+sec.NumPrimitives; qi++ {
		quad := &g.Primitives[qi]
		for c := 0; c < 4; c++ {
			v := quad[c]
			if v < 0 {
				return errors.Wrapf(ErrCorruptGeometry, "primitive %d corner %d: negative index %d", qi, c, v)
			}
			if v < sec.NumPackedVertices {
				quad[c] = sec.FirstPackedVertexIndex + v
			} else {
				ref := sec.FirstSharedVertexIndex + (v - sec.NumPackedVertices)
				if ref < 0 || ref >= len(g.SharedVerticesIndex) {
					return errors.Wrapf(ErrCorruptGeometry,
						"primitive %d corner %d: shared reference %d outside indirection table of %d",
						qi, c, ref, len(g.SharedVerticesIndex))
				}
				quad[c] = len(g.PackedVertices) + int(g.SharedVerticesIndex[ref])
			}
			if quad[c] >= numVerts {
				return errors.Wrapf(ErrCorruptGeometry,
					"primitive %d corner %d: resolved index %d outside vertex array of %d",
					qi, c, quad[c], numVerts)
			}
		}
	}
	return nil
}

func readDomain(meshTree *tag.Node) (mgl32.Vec3, mgl32.Vec3, error) {
	var min, max mgl32.Vec3
	minNode, err := meshTree.At("domain", "min")
	if err != nil {
		return min, max, err
	}
	if min, err = tagVec3(minNode); err != nil {
		return min, max, errors.Wrapf(err, "domain.min")
	}
	maxNode, err := meshTree.At("domain", "max")
	if err != nil {
		return min, max, err
	}
	if max, err = tagVec3(maxNode); err != nil {
		return min, max, errors.Wrapf(err, "domain.max")
	}
	return min, max, nil
}

// readPrimitives copies the quads into a fresh array. The later index
// rewrite mutates this copy, never a view into source data.
func readPrimitives(meshTree *tag.Node) ([]Quad, error) {
	node, err := meshTree.Field("primitives")
	if err != nil {
		return nil, err
	}
	items, err := node.Sequence()
	if err != nil {
		return nil, errors.Wrapf(err, "primitives")
	}

	quads := make([]Quad, len(items))
	for i, item := range items {
		idxNode, err := item.Field("indices")
		if err != nil {
			return nil, errors.Wrapf(err, "primitives[%d]", i)
		}
		indices, err := idxNode.Sequence()
		if err != nil {
			return nil, errors.Wrapf(err, "primitives[%d].indices", i)
		}
		if len(indices) < 4 {
			return nil, errors.Wrapf(tag.ErrMalformedTag, "primitives[%d] has %d indices, need 4", i, len(indices))
		}
		for c := 0; c < 4; c++ {
			v, err := indices[c].Int()
			if err != nil {
				return nil, errors.Wrapf(err, "primitives[%d].indices[%d]", i, c)
			}
			quads[i][c] = int(v)
		}
	}
	return quads, nil
}

func readSections(meshTree *tag.Node) ([]*Section, error) {
	node, err := meshTree.Field("sections")
	if err != nil {
		return nil, err
	}
	items, err := node.Sequence()
	if err != nil {
		return nil, errors.Wrapf(err, "sections")
	}
	sections := make([]*Section, len(items))
	for i, item := range items {
		if sections[i], err = NewSectionFromTag(item); err != nil {
			return nil, errors.Wrapf(err, "sections[%d]", i)
		}
	}
	return sections, nil
}

func readUint32Array(meshTree *tag.Node, key string) ([]uint32, error) {
	node, err := meshTree.Field(key)
	if err != nil {
		return nil, err
	}
	items, err := node.Sequence()
	if err != nil {
		return nil, errors.Wrapf(err, "%s", key)
	}
	out := make([]uint32, len(items))
	for i, item := range items {
		v, err := item.Uint()
		if err != nil {
			return nil, errors.Wrapf(err, "%s[%d]", key, i)
		}
		if v > math.MaxUint32 {
			return nil, errors.Wrapf(tag.ErrMalformedTag, "%s[%d]: value %d overflows uint32", key, i, v)
		}
		out[i] = uint32(v)
	}
	return out, nil
}

func readUint64Array(meshTree *tag.Node, key string) ([]uint64, error) {
	node, err := meshTree.Field(key)
	if err != nil {
		return nil, err
	}
	items, err := node.Sequence()
	if err != nil {
		return nil, errors.Wrapf(err, "%s", key)
	}
	out := make([]uint64, len(items))
	for i, item := range items {
		if out[i], err = item.Uint(); err != nil {
			return nil, errors.Wrapf(err, "%s[%d]", key, i)
		}
	}
	return out, nil
}
