package collision

// TriangulateQuads fan-splits every quad (a,b,c,d) into (a,b,c) and
// (a,c,d), dropping candidates that repeat an index. Quads encoding a
// triangle by doubling a corner survive as the one real triangle. Quad
// order and the in-quad candidate order are preserved.
func TriangulateQuads(quads []Quad) []Triangle {
	tris := make([]Triangle, 0, len(quads)*2)
	for _, q := range quads {
		for _, t := range [2]Triangle{{q[0], q[1], q[2]}, {q[0], q[2], q[3]}} {
			if t[0] == t[1] || t[1] == t[2] || t[0] == t[2] {
				continue
			}
			tris = append(tris, t)
		}
	}
	return tris
}
