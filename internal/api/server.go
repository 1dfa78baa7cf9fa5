package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"sceneforge/internal/config"
	"sceneforge/internal/logging"
	"sceneforge/internal/store"
)

// JobSubmitter starts background render jobs. Submission errors that are
// precondition failures carry their own status semantics; anything else is
// an internal fault.
type JobSubmitter interface {
	SubmitSceneRender(ctx context.Context, sceneID string) (*store.Job, error)
	SubmitExport(ctx context.Context, projectID string) (*store.Job, error)
	SubmitRenderAll(ctx context.Context, projectID string) (*store.Job, error)
}

// CodeGenerator turns a prompt into validated scene code.
type CodeGenerator interface {
	GenerateScene(ctx context.Context, prompt string) (string, error)
}

// Server wires the HTTP routes to the store, orchestrator, and generator.
type Server struct {
	cfg       *config.Config
	store     *store.Store
	jobs      JobSubmitter
	generator CodeGenerator
	logger    *slog.Logger
	router    *mux.Router
}

// New builds the server and registers all routes.
func New(cfg *config.Config, st *store.Store, jobs JobSubmitter, generator CodeGenerator, logger *slog.Logger) *Server {
	if logger == nil {
		logger = logging.NewNop()
	}
	s := &Server{
		cfg:       cfg,
		store:     st,
		jobs:      jobs,
		generator: generator,
		logger:    logging.WithComponent(logger, "api"),
		router:    mux.NewRouter(),
	}
	s.routes()
	return s
}

// Handler returns the root http.Handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() {
	s.router.HandleFunc("/", s.handleRoot).Methods(http.MethodGet)
	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	api := s.router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/projects", s.handleCreateProject).Methods(http.MethodPost)
	api.HandleFunc("/projects", s.handleListProjects).Methods(http.MethodGet)
	api.HandleFunc("/projects/{id}", s.handleGetProject).Methods(http.MethodGet)
	api.HandleFunc("/projects/{id}", s.handleUpdateProject).Methods(http.MethodPut)
	api.HandleFunc("/projects/{id}", s.handleDeleteProject).Methods(http.MethodDelete)

	api.HandleFunc("/scenes", s.handleCreateScene).Methods(http.MethodPost)
	api.HandleFunc("/scenes/multi", s.handleCreateMultiScenes).Methods(http.MethodPost)
	api.HandleFunc("/scenes/project/{projectID}", s.handleListScenes).Methods(http.MethodGet)
	api.HandleFunc("/scenes/{id}", s.handleGetScene).Methods(http.MethodGet)
	api.HandleFunc("/scenes/{id}", s.handleUpdateScene).Methods(http.MethodPut)
	api.HandleFunc("/scenes/{id}", s.handleDeleteScene).Methods(http.MethodDelete)
	api.HandleFunc("/scenes/{id}/regenerate", s.handleRegenerateScene).Methods(http.MethodPost)

	api.HandleFunc("/render/scene/{id}", s.handleRenderScene).Methods(http.MethodPost)
	api.HandleFunc("/render/job/{id}", s.handleRenderJobStatus).Methods(http.MethodGet)
	api.HandleFunc("/render/export/{projectID}", s.handleExportProject).Methods(http.MethodPost)
	api.HandleFunc("/render/render-all/{projectID}", s.handleRenderAll).Methods(http.MethodPost)

	api.HandleFunc("/audio/upload/{projectID}", s.handleUploadAudio).Methods(http.MethodPost)
	api.HandleFunc("/audio/tts", s.handleTTS).Methods(http.MethodPost)
	api.HandleFunc("/audio/{projectID}", s.handleDeleteAudio).Methods(http.MethodDelete)

	s.router.PathPrefix("/outputs/").Handler(
		http.StripPrefix("/outputs/", http.FileServer(http.Dir(s.cfg.Paths.OutputDir))))
	s.router.PathPrefix("/uploads/").Handler(
		http.StripPrefix("/uploads/", http.FileServer(http.Dir(s.cfg.Paths.UploadDir))))
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	s.respondData(w, http.StatusOK, map[string]string{"status": "running"}, "sceneforge API")
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.respondData(w, http.StatusOK, map[string]string{"status": "healthy"}, "")
}

// respondStoreError maps a store lookup failure onto 404 or 500.
func (s *Server) respondStoreError(w http.ResponseWriter, err error, notFoundMessage string) {
	if errors.Is(err, store.ErrNotFound) {
		s.respondError(w, http.StatusNotFound, notFoundMessage)
		return
	}
	s.logger.Error("store operation failed", logging.Error(err))
	s.respondError(w, http.StatusInternalServerError, "internal error")
}
