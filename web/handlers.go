package web

import (
	"bytes"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/wiiskii/tank_havok_browser/config"
	"github.com/wiiskii/tank_havok_browser/pack/havok/collision"
	"github.com/wiiskii/tank_havok_browser/pack/tag"
	"github.com/wiiskii/tank_havok_browser/status"
	"github.com/wiiskii/tank_havok_browser/webutils"
)

func HandlerListDumps(w http.ResponseWriter, r *http.Request) {
	entries, err := os.ReadDir(serverDataDir)
	if err != nil {
		webutils.WriteError(w, err)
		return
	}

	files := make([]string, 0)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".yaml", ".yml":
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	webutils.WriteJson(w, files)
}

// extractDump loads one tag dump from the data directory and runs
// collision extraction, pushing progress to status subscribers.
func extractDump(file string) (*collision.Result, error) {
	// flatten the name so requests can't walk out of the data dir
	file = filepath.Base(file)

	status.Info(file, "Loading tag dump")
	root, err := tag.FromYAMLFile(filepath.Join(serverDataDir, file))
	if err != nil {
		status.Error(file, "Load failed: %v", err)
		return nil, err
	}

	status.Progress(file, 0.5, "Extracting collision geometry")
	res, err := collision.Extract(root)
	if err != nil {
		status.Error(file, "Extraction failed: %v", err)
		return nil, err
	}

	status.Progress(file, 1.0, "Extracted %d geometries (%d bodies skipped, %d failed)",
		len(res.Geometries), res.Skipped, len(res.Failures))
	return res, nil
}

type geometryInfo struct {
	ObjectName string
	Name       string
	Verts      int
	Tris       int
	Sections   int
}

type dumpInfo struct {
	Geometries []geometryInfo
	Skipped    int
	Failures   []string
}

func HandlerDumpGeometries(w http.ResponseWriter, r *http.Request) {
	file := mux.Vars(r)["file"]
	res, err := extractDump(file)
	if err != nil {
		log.Errorf("Failed to extract %q: %v", file, err)
		webutils.WriteError(w, err)
		return
	}

	info := &dumpInfo{
		Geometries: make([]geometryInfo, len(res.Geometries)),
		Skipped:    res.Skipped,
	}
	base := strings.ReplaceAll(filepath.Base(file), ".", "_")
	for i, g := range res.Geometries {
		info.Geometries[i] = geometryInfo{
			ObjectName: fmt.Sprintf("%s_%s_%d", base, g.Name, i),
			Name:       g.Name,
			Verts:      len(g.Verts),
			Tris:       len(g.Tris()),
			Sections:   len(g.Sections),
		}
	}
	for _, f := range res.Failures {
		log.Warnf("Body %d (%q) of %q failed: %v", f.BodyIndex, f.BodyName, file, f.Err)
		info.Failures = append(info.Failures, fmt.Sprintf("body %d (%q): %v", f.BodyIndex, f.BodyName, f.Err))
	}

	webutils.WriteJson(w, info)
}

func handlerDownload(w http.ResponseWriter, r *http.Request,
	ext string, export func(buf *bytes.Buffer, name string, geoms []*collision.Geometry) error) {
	file := mux.Vars(r)["file"]
	res, err := extractDump(file)
	if err != nil {
		log.Errorf("Failed to extract %q: %v", file, err)
		webutils.WriteError(w, err)
		return
	}

	name := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file)) + ext

	var buf bytes.Buffer
	if err := export(&buf, name, res.Geometries); err != nil {
		log.Errorf("Failed to export %q: %v", file, err)
		webutils.WriteError(w, err)
		return
	}
	webutils.WriteFile(w, &buf, name)
}

func HandlerDownloadGLB(w http.ResponseWriter, r *http.Request) {
	handlerDownload(w, r, ".glb", func(buf *bytes.Buffer, name string, geoms []*collision.Geometry) error {
		return collision.ExportGLB(buf, geoms, config.GetSwapAxes())
	})
}

func HandlerDownloadObj(w http.ResponseWriter, r *http.Request) {
	handlerDownload(w, r, ".obj", func(buf *bytes.Buffer, name string, geoms []*collision.Geometry) error {
		return collision.ExportObj(buf, geoms, config.GetSwapAxes())
	})
}

func HandlerDownloadFbx(w http.ResponseWriter, r *http.Request) {
	handlerDownload(w, r, ".fbx", func(buf *bytes.Buffer, name string, geoms []*collision.Geometry) error {
		return collision.ExportFbx(buf, name, geoms, config.GetSwapAxes())
	})
}

var statusUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

func HandlerStatusWebsocket(w http.ResponseWriter, r *http.Request) {
	conn, err := statusUpgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Errorf("Websocket upgrade failed: %v", err)
		return
	}
	status.NewClient(conn)
}
