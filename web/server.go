package web

import (
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

var serverDataDir string
var log *zap.SugaredLogger

func StartServer(addr string, dataDir string, zl *zap.Logger) error {
	serverDataDir = dataDir
	log = zl.Sugar().Named("web")

	r := mux.NewRouter()
	r.HandleFunc("/json/havok", HandlerListDumps)
	r.HandleFunc("/json/havok/{file}", HandlerDumpGeometries)
	r.HandleFunc("/dump/havok/{file}/gltf", HandlerDownloadGLB)
	r.HandleFunc("/dump/havok/{file}/obj", HandlerDownloadObj)
	r.HandleFunc("/dump/havok/{file}/fbx", HandlerDownloadFbx)
	r.HandleFunc("/ws/status", HandlerStatusWebsocket)

	h := handlers.RecoveryHandler()(r)
	h = handlers.LoggingHandler(os.Stdout, h)

	log.Infof("Starting server %v", addr)

	return http.ListenAndServe(addr, h)
}
