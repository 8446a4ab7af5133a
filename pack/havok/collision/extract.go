package collision

import (
	"github.com/pkg/errors"

	"github.com/wiiskii/tank_havok_browser/pack/tag"
	"github.com/wiiskii/tank_havok_browser/utils"
)

// CollisionResourceName is the literal resource handle name carrying
// collision mesh data; every other resource kind is ignored.
const CollisionResourceName = "Collision Physics Data"

// BodyFailure records one body whose geometry could not be reconstructed.
// Failures never abort extraction of the remaining bodies.
type BodyFailure struct {
	BodyIndex int
	BodyName  string
	Err       error
}

// Result is the outcome of extracting one tag tree. Skipped counts bodies
// without shape data (non-mesh collision primitives); it is informational
// and matches the source format's expected layout, not an error.
type Result struct {
	Geometries []*Geometry
	Skipped    int
	Failures   []BodyFailure
}

// Extract walks the tag tree, filters resource handles named
// CollisionResourceName and reconstructs a Geometry per body that carries
// shape data. A tree with no matching resources yields an empty Result.
func Extract(root *tag.Node) (*Result, error) {
	variantsNode, err := root.Field("namedVariants")
	if err != nil {
		return nil, err
	}
	variants, err := variantsNode.Sequence()
	if err != nil {
		return nil, errors.Wrapf(err, "namedVariants")
	}
	if len(variants) != 1 {
		return nil, errors.Wrapf(tag.ErrMalformedTag, "expected 1 named variant, got %d", len(variants))
	}

	handlesNode, err := variants[0].At("variant", "resourceHandles")
	if err != nil {
		return nil, err
	}
	handles, err := handlesNode.Sequence()
	if err != nil {
		return nil, errors.Wrapf(err, "resourceHandles")
	}

	res := &Result{}
	var nameGen utils.RandomNameGenerator

	for hi, handle := range handles {
		nameNode, err := handle.Field("name")
		if err != nil {
			return nil, errors.Wrapf(err, "resourceHandles[%d]", hi)
		}
		resName, err := nameNode.Text()
		if err != nil {
			return nil, errors.Wrapf(err, "resourceHandles[%d].name", hi)
		}
		if resName != CollisionResourceName {
			continue
		}

		sub, err := handle.Field("variant")
		if err != nil {
			return nil, errors.Wrapf(err, "resourceHandles[%d]", hi)
		}
		if !sub.Has("bodyCinfos") {
			continue
		}
		bodiesNode, _ := sub.Field("bodyCinfos")
		bodies, err := bodiesNode.Sequence()
		if err != nil {
			return nil, errors.Wrapf(err, "resourceHandles[%d].bodyCinfos", hi)
		}

		for bi, body := range bodies {
			geom, skipped, err := extractBody(body, &nameGen)
			if err != nil {
				res.Failures = append(res.Failures, BodyFailure{
					BodyIndex: bi,
					BodyName:  bodyNameForDiagnostics(body),
					Err:       err,
				})
				continue
			}
			if skipped {
				res.Skipped++
				continue
			}
			res.Geometries = append(res.Geometries, geom)
		}
	}

	return res, nil
}

func extractBody(body *tag.Node, nameGen *utils.RandomNameGenerator) (*Geometry, bool, error) {
	shape, err := body.Field("shape")
	if err != nil {
		return nil, false, err
	}
	if !shape.Has("data") {
		// bodies built from primitive shapes carry no mesh tree
		return nil, true, nil
	}

	name := bodyNameForDiagnostics(body)
	if name == "" {
		name = nameGen.RandomName()
	}

	meshTree, err := shape.At("data", "meshTree")
	if err != nil {
		return nil, false, err
	}

	geom, err := NewGeometryFromTag(name, meshTree)
	if err != nil {
		return nil, false, err
	}
	return geom, false, nil
}

func bodyNameForDiagnostics(body *tag.Node) string {
	nameNode, err := body.Field("name")
	if err != nil {
		return ""
	}
	name, err := nameNode.Text()
	if err != nil {
		return ""
	}
	return name
}
