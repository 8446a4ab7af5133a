package collision

import (
	"fmt"
	"io"

	"github.com/wiiskii/tank_havok_browser/utils"
)

// ExportObj writes the geometries as one wavefront obj object per body.
// Face indices are 1-based and offset by the vertices of preceding
// geometries.
func ExportObj(_w io.Writer, geoms []*Geometry, swapAxes bool) error {
	w := func(format string, args ...interface{}) {
		_w.Write(([]byte)(fmt.Sprintf(format+"\n", args...)))
	}

	iV := 1
	for _, g := range geoms {
		w("o %s", g.Name)

		for _, vert := range g.Verts {
			if swapAxes {
				vert = utils.SwapAxesYZ(vert)
			}
			w("v %f %f %f", vert[0], vert[1], vert[2])
		}

		for _, tri := range g.Tris() {
			w("f %v %v %v", iV+tri[0], iV+tri[1], iV+tri[2])
		}

		iV += len(g.Verts)
	}

	return nil
}
