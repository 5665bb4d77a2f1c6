// Package debugserver exposes a read-only HTTP introspection API over
// a runengine.Engine: the run list, one run's detail, and a per-agent
// filter, for operators and the demo UI to poll. It never mutates the
// engine — starting and resuming runs stays a library-level operation.
package debugserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"agentverse/log"
	"agentverse/runengine"
)

// Server wraps an http.Server pre-wired with the debug routes.
type Server struct {
	engine *runengine.Engine
	http   *http.Server
	router *mux.Router
}

// New builds a Server listening on addr. Call ListenAndServe to run
// it, or use Handler for embedding in another mux.
func New(engine *runengine.Engine, addr string) *Server {
	s := &Server{engine: engine, router: mux.NewRouter()}
	s.routes()

	handler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
	}).Handler(s.router)

	s.http = &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
	return s
}

// Handler returns the CORS-wrapped router, for tests or for mounting
// under another server.
func (s *Server) Handler() http.Handler { return s.http.Handler }

func (s *Server) routes() {
	s.router.HandleFunc("/healthz", s.handleHealthz).Methods(http.MethodGet)
	s.router.HandleFunc("/runs", s.handleListRuns).Methods(http.MethodGet)
	s.router.HandleFunc("/runs/{id}", s.handleGetRun).Methods(http.MethodGet)
	s.router.HandleFunc("/agents/{agentID}/runs", s.handleRunsByAgent).Methods(http.MethodGet)
}

// ListenAndServe blocks serving the debug API until the listener
// errors. The Server has no shutdown method; it stops when the
// process exits.
func (s *Server) ListenAndServe() error {
	log.Infof("debugserver: listening on %s", s.http.Addr)
	return s.http.ListenAndServe()
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.GetAllRuns())
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	run, ok := s.engine.GetRun(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "run not found"})
		return
	}
	writeJSON(w, http.StatusOK, run)
}

func (s *Server) handleRunsByAgent(w http.ResponseWriter, r *http.Request) {
	agentID := mux.Vars(r)["agentID"]
	writeJSON(w, http.StatusOK, s.engine.GetRunsByAgent(agentID))
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Errorf("debugserver: encode response: %v", err)
	}
}
