package api

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"sceneforge/internal/logging"
	"sceneforge/internal/orchestrator"
)

func (s *Server) handleRenderScene(w http.ResponseWriter, r *http.Request) {
	job, err := s.jobs.SubmitSceneRender(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.respondSubmitError(w, err)
		return
	}
	s.respondData(w, http.StatusAccepted, viewJob(job), "Render job started")
}

func (s *Server) handleRenderJobStatus(w http.ResponseWriter, r *http.Request) {
	job, err := s.store.GetJob(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.respondStoreError(w, err, "render job not found")
		return
	}
	s.respondData(w, http.StatusOK, viewJob(job), "")
}

func (s *Server) handleExportProject(w http.ResponseWriter, r *http.Request) {
	job, err := s.jobs.SubmitExport(r.Context(), mux.Vars(r)["projectID"])
	if err != nil {
		s.respondSubmitError(w, err)
		return
	}
	s.respondData(w, http.StatusAccepted, viewJob(job), "Export job started")
}

func (s *Server) handleRenderAll(w http.ResponseWriter, r *http.Request) {
	projectID := mux.Vars(r)["projectID"]
	job, err := s.jobs.SubmitRenderAll(r.Context(), projectID)
	if err != nil {
		s.respondSubmitError(w, err)
		return
	}

	sceneCount := 0
	if scenes, serr := s.store.ScenesByProject(r.Context(), projectID); serr == nil {
		sceneCount = len(scenes)
	}
	s.respondData(w, http.StatusAccepted, viewJob(job),
		fmt.Sprintf("Started rendering %d scenes", sceneCount))
}

// respondSubmitError maps job submission failures onto HTTP statuses: a
// missing target is 404, a precondition violation 400, anything else 500.
func (s *Server) respondSubmitError(w http.ResponseWriter, err error) {
	if perr, ok := orchestrator.AsPrecondition(err); ok {
		status := http.StatusBadRequest
		if perr.NotFound() {
			status = http.StatusNotFound
		}
		s.respondError(w, status, perr.Error())
		return
	}
	s.logger.Error("job submission failed", logging.Error(err))
	s.respondError(w, http.StatusInternalServerError, "internal error")
}
