package collision

import (
	"bytes"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestExportObj(t *testing.T) {
	geoms := []*Geometry{
		{
			Name:  "hull",
			Verts: []mgl32.Vec3{{0, 1, 2}, {1, 0, 0}, {0, 1, 0}},
			tris:  []Triangle{{0, 1, 2}},
		},
		{
			Name:  "turret",
			Verts: []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 0, 1}},
			tris:  []Triangle{{0, 1, 2}},
		},
	}

	var buf bytes.Buffer
	if err := ExportObj(&buf, geoms, false); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")

	expected := []string{
		"o hull",
		"v 0.000000 1.000000 2.000000",
		"v 1.000000 0.000000 0.000000",
		"v 0.000000 1.000000 0.000000",
		"f 1 2 3",
		"o turret",
		"v 0.000000 0.000000 0.000000",
		"v 1.000000 0.000000 0.000000",
		"v 0.000000 0.000000 1.000000",
		"f 4 5 6",
	}
	if len(lines) != len(expected) {
		t.Fatalf("got %d lines, expected %d:\n%s", len(lines), len(expected), buf.String())
	}
	for i, want := range expected {
		if lines[i] != want {
			t.Errorf("line %d = %q; expected %q", i, lines[i], want)
		}
	}
}

func TestExportObjSwapAxes(t *testing.T) {
	geoms := []*Geometry{{
		Name:  "hull",
		Verts: []mgl32.Vec3{{1, 2, 3}},
	}}

	var buf bytes.Buffer
	if err := ExportObj(&buf, geoms, true); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "v 1.000000 3.000000 2.000000") {
		t.Errorf("y/z not swapped:\n%s", buf.String())
	}
}
