package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/wiiskii/tank_havok_browser/config"
	"github.com/wiiskii/tank_havok_browser/pack/havok/collision"
	"github.com/wiiskii/tank_havok_browser/pack/tag"
	"github.com/wiiskii/tank_havok_browser/utils"
)

func main() {
	var in, out, format, encoding string
	var swapAxes, verbose bool
	flag.StringVar(&in, "in", "", "Input havok tag dump (yaml)")
	flag.StringVar(&out, "o", "", "Output file (default: input with format extension)")
	flag.StringVar(&format, "format", "obj", "Export format: obj, gltf, fbx")
	flag.StringVar(&encoding, "encoding", "", "Name encoding override")
	flag.BoolVar(&swapAxes, "swapaxes", true, "Swap y/z axes on export")
	flag.BoolVar(&verbose, "v", false, "Dump geometry structures")
	flag.Parse()

	if in == "" {
		flag.PrintDefaults()
		return
	}

	if encoding != "" {
		if err := config.SetEncoding(encoding); err != nil {
			log.Fatal(err)
		}
	}

	root, err := tag.FromYAMLFile(in)
	if err != nil {
		log.Fatal(err)
	}

	res, err := collision.Extract(root)
	if err != nil {
		log.Fatal(err)
	}

	for i, g := range res.Geometries {
		fmt.Printf("geometry %d %q: %d verts (%d packed + %d shared), %d quads, %d tris, %d sections\n",
			i, g.Name, len(g.Verts), len(g.PackedVertices), len(g.SharedVertices),
			len(g.Primitives), len(g.Tris()), len(g.Sections))
		if verbose {
			utils.Dump(g.Sections)
		}
	}
	fmt.Printf("%d bodies skipped (no shape data)\n", res.Skipped)
	for _, f := range res.Failures {
		fmt.Printf("body %d (%q) failed: %v\n", f.BodyIndex, f.BodyName, f.Err)
	}

	if len(res.Geometries) == 0 {
		return
	}

	ext := "." + format
	if out == "" {
		out = strings.TrimSuffix(in, filepath.Ext(in)) + ext
	}

	f, err := os.Create(out)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	switch format {
	case "obj":
		err = collision.ExportObj(f, res.Geometries, swapAxes)
	case "gltf":
		err = collision.ExportGLB(f, res.Geometries, swapAxes)
	case "fbx":
		err = collision.ExportFbx(f, filepath.Base(out), res.Geometries, swapAxes)
	default:
		err = fmt.Errorf("unknown format %q", format)
	}
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("Exported %d geometries to %q", len(res.Geometries), out)
}
