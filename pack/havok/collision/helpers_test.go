package collision

import (
	"github.com/wiiskii/tank_havok_browser/pack/tag"
)

func tagMap(fields map[string]*tag.Node) *tag.Node { return tag.NewMapping(fields) }
func tagSeq(items ...*tag.Node) *tag.Node          { return tag.NewSequence(items...) }
func tagI(v int64) *tag.Node                       { return tag.NewInt(v) }
func tagU(v uint64) *tag.Node                      { return tag.NewUint(v) }
func tagF(v float64) *tag.Node                     { return tag.NewFloat(v) }
func tagS(v string) *tag.Node                      { return tag.NewString(v) }

// 4-wide vector as stored in the source, w is padding
func vecNode(x, y, z float64) *tag.Node {
	return tagSeq(tagF(x), tagF(y), tagF(z), tagF(0))
}

func domainNode(min, max [3]float64) *tag.Node {
	return tagMap(map[string]*tag.Node{
		"min": vecNode(min[0], min[1], min[2]),
		"max": vecNode(max[0], max[1], max[2]),
	})
}

func codecNode(min, scale [3]float64) *tag.Node {
	return tagSeq(
		tagF(min[0]), tagF(min[1]), tagF(min[2]),
		tagF(scale[0]), tagF(scale[1]), tagF(scale[2]),
	)
}

func sectionNode(domMin, domMax, codecMin, codecScale [3]float64, offsets map[string]int64) *tag.Node {
	fields := map[string]*tag.Node{
		"domain":     domainNode(domMin, domMax),
		"codecParms": codecNode(codecMin, codecScale),
	}
	for _, key := range []string{
		"firstPackedVertexIndex", "numPackedVertices", "firstSharedVertexIndex",
		"firstPrimitiveIndex", "numPrimitives", "firstDataRunIndex", "numDataRuns",
	} {
		fields[key] = tagI(offsets[key])
	}
	return tagMap(fields)
}

func quadNode(a, b, c, d int64) *tag.Node {
	return tagMap(map[string]*tag.Node{
		"indices": tagSeq(tagI(a), tagI(b), tagI(c), tagI(d)),
	})
}

func uintSeq(vs ...uint64) *tag.Node {
	items := make([]*tag.Node, len(vs))
	for i, v := range vs {
		items[i] = tagU(v)
	}
	return tagSeq(items...)
}

// meshTreeFixture is the smallest useful geometry: one section owning two
// packed vertices and one quad that reaches into the shared pool through
// indirection table entry 5.
func meshTreeFixture() *tag.Node {
	return meshTreeFixtureWith(nil)
}

func meshTreeFixtureWith(mutate func(fields map[string]*tag.Node)) *tag.Node {
	fields := map[string]*tag.Node{
		"domain":              domainNode([3]float64{0, 0, 0}, [3]float64{1, 1, 1}),
		"primitives":          tagSeq(quadNode(0, 1, 2, 2)),
		"sharedVerticesIndex": uintSeq(5),
		"sharedVertices":      uintSeq(0, 0, 0, 0, 0, 0),
		"packedVertices":      uintSeq(0, 0x7FF),
		"sections": tagSeq(sectionNode(
			[3]float64{0, 0, 0}, [3]float64{3000, 3000, 3000},
			[3]float64{0, 0, 0}, [3]float64{1, 1, 1},
			map[string]int64{
				"numPackedVertices": 2,
				"numPrimitives":     1,
			})),
	}
	if mutate != nil {
		mutate(fields)
	}
	return tagMap(fields)
}
