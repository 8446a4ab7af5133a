package collision

import (
	"sort"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"

	"github.com/wiiskii/tank_havok_browser/pack/tag"
)

// Section is a contiguous partition of one geometry's packed-vertex and
// primitive arrays sharing a single quantization codec and local domain.
// The data-run fields are carried through untouched; nothing in geometry
// reconstruction consumes them.
type Section struct {
	DomainMin mgl32.Vec3
	DomainMax mgl32.Vec3
	Codec     CodecParams

	FirstPackedVertexIndex int
	NumPackedVertices      int
	FirstSharedVertexIndex int
	FirstPrimitiveIndex    int
	NumPrimitives          int
	FirstDataRunIndex      int
	NumDataRuns            int
}

// tagVec3 reads the first three floats of a sequence node (the source
// stores 4-wide vectors, the w component is padding).
func tagVec3(n *tag.Node) (mgl32.Vec3, error) {
	var v mgl32.Vec3
	items, err := n.Sequence()
	if err != nil {
		return v, err
	}
	if len(items) < 3 {
		return v, errors.Wrapf(tag.ErrMalformedTag, "vector has %d components, need 3", len(items))
	}
	for i := 0; i < 3; i++ {
		f, err := items[i].Float()
		if err != nil {
			return v, err
		}
		v[i] = float32(f)
	}
	return v, nil
}

func tagInt(n *tag.Node, key string) (int, error) {
	f, err := n.Field(key)
	if err != nil {
		return 0, err
	}
	v, err := f.Int()
	if err != nil {
		return 0, errors.Wrapf(err, "field %q", key)
	}
	return int(v), nil
}

func NewSectionFromTag(n *tag.Node) (*Section, error) {
	sec := &Section{}

	domMin, err := n.At("domain", "min")
	if err != nil {
		return nil, err
	}
	if sec.DomainMin, err = tagVec3(domMin); err != nil {
		return nil, errors.Wrapf(err, "domain.min")
	}
	domMax, err := n.At("domain", "max")
	if err != nil {
		return nil, err
	}
	if sec.DomainMax, err = tagVec3(domMax); err != nil {
		return nil, errors.Wrapf(err, "domain.max")
	}

	codecNode, err := n.Field("codecParms")
	if err != nil {
		return nil, err
	}
	codecItems, err := codecNode.Sequence()
	if err != nil {
		return nil, errors.Wrapf(err, "codecParms")
	}
	if len(codecItems) < 6 {
		return nil, errors.Wrapf(tag.ErrMalformedTag, "codecParms has %d values, need 6", len(codecItems))
	}
	for i := 0; i < 6; i++ {
		f, err := codecItems[i].Float()
		if err != nil {
			return nil, errors.Wrapf(err, "codecParms[%d]", i)
		}
		if i < 3 {
			sec.Codec.MinXYZ[i] = float32(f)
		} else {
			sec.Codec.ScaleXYZ[i-3] = float32(f)
		}
	}

	for _, field := range []struct {
		key string
		dst *int
	}{
		{"firstPackedVertexIndex", &sec.FirstPackedVertexIndex},
		{"numPackedVertices", &sec.NumPackedVertices},
		{"firstSharedVertexIndex", &sec.FirstSharedVertexIndex},
		{"firstPrimitiveIndex", &sec.FirstPrimitiveIndex},
		{"numPrimitives", &sec.NumPrimitives},
		{"firstDataRunIndex", &sec.FirstDataRunIndex},
		{"numDataRuns", &sec.NumDataRuns},
	} {
		if *field.dst, err = tagInt(n, field.key); err != nil {
			return nil, err
		}
	}

	return sec, nil
}

// validateSections checks the load-bearing invariant behind the in-order
// index rewrite: packed-vertex ranges of all sections must tile
// [0, numPacked) exactly, and primitive ranges must tile [0, numPrims).
// Overlap would make the rewrite pass corrupt already-rewritten indices.
func validateSections(sections []*Section, numPacked, numPrims int) error {
	if err := validateRanges(sections, numPacked,
		func(s *Section) (int, int) { return s.FirstPackedVertexIndex, s.NumPackedVertices }); err != nil {
		return errors.Wrapf(err, "packed vertex ranges")
	}
	if err := validateRanges(sections, numPrims,
		func(s *Section) (int, int) { return s.FirstPrimitiveIndex, s.NumPrimitives }); err != nil {
		return errors.Wrapf(err, "primitive ranges")
	}
	return nil
}

func validateRanges(sections []*Section, total int, rangeOf func(*Section) (int, int)) error {
	type span struct{ first, num int }
	spans := make([]span, 0, len(sections))
	for _, s := range sections {
		first, num := rangeOf(s)
		if num < 0 || first < 0 {
			return errors.Wrapf(ErrCorruptGeometry, "negative range [%d,%d)", first, first+num)
		}
		if num == 0 {
			continue
		}
		spans = append(spans, span{first, num})
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].first < spans[j].first })

	cursor := 0
	for _, sp := range spans {
		if sp.first != cursor {
			return errors.Wrapf(ErrCorruptGeometry, "ranges not contiguous at %d (next starts at %d)", cursor, sp.first)
		}
		cursor += sp.num
	}
	if cursor != total {
		return errors.Wrapf(ErrCorruptGeometry, "ranges cover %d of %d entries", cursor, total)
	}
	return nil
}
