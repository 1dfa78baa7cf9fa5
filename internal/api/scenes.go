package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"sceneforge/internal/logging"
	"sceneforge/internal/services/llm"
	"sceneforge/internal/store"
)

type sceneCreateRequest struct {
	ProjectID string `json:"project_id"`
	Prompt    string `json:"prompt"`
}

type sceneUpdateRequest struct {
	Prompt *string `json:"prompt"`
	Code   *string `json:"code"`
}

type regenerateRequest struct {
	Prompt string `json:"prompt"`
}

type multiSceneRequest struct {
	ProjectID string `json:"project_id"`
	Prompt    string `json:"prompt"`
	NumScenes int    `json:"num_scenes"`
}

// handleCreateScene creates a scene and synchronously generates its code.
// Generation failure is recorded on the scene, not surfaced as an HTTP
// error; the caller sees the failed scene in the response body.
func (s *Server) handleCreateScene(w http.ResponseWriter, r *http.Request) {
	var req sceneCreateRequest
	if err := decodeBody(r, &req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		s.respondError(w, http.StatusBadRequest, "prompt is required")
		return
	}

	ctx := r.Context()
	scene, err := s.store.CreateScene(ctx, req.ProjectID, req.Prompt)
	if err != nil {
		s.respondStoreError(w, err, "project not found")
		return
	}

	scene = s.generateInto(ctx, scene, req.Prompt)
	s.respondData(w, http.StatusCreated, viewScene(scene), "Scene created successfully")
}

func (s *Server) handleListScenes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	projectID := mux.Vars(r)["projectID"]
	if _, err := s.store.GetProject(ctx, projectID); err != nil {
		s.respondStoreError(w, err, "project not found")
		return
	}
	scenes, err := s.store.ScenesByProject(ctx, projectID)
	if err != nil {
		s.respondStoreError(w, err, "project not found")
		return
	}
	s.respondData(w, http.StatusOK, viewScenes(scenes), "")
}

func (s *Server) handleGetScene(w http.ResponseWriter, r *http.Request) {
	scene, err := s.store.GetScene(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.respondStoreError(w, err, "scene not found")
		return
	}
	s.respondData(w, http.StatusOK, viewScene(scene), "")
}

func (s *Server) handleUpdateScene(w http.ResponseWriter, r *http.Request) {
	var req sceneUpdateRequest
	if err := decodeBody(r, &req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx := r.Context()
	scene, err := s.store.GetScene(ctx, mux.Vars(r)["id"])
	if err != nil {
		s.respondStoreError(w, err, "scene not found")
		return
	}
	if req.Prompt != nil {
		scene.Prompt = *req.Prompt
	}
	if req.Code != nil {
		scene.Code = *req.Code
	}
	if err := s.store.UpdateScene(ctx, scene); err != nil {
		s.respondStoreError(w, err, "scene not found")
		return
	}
	s.respondData(w, http.StatusOK, viewScene(scene), "Scene updated successfully")
}

func (s *Server) handleDeleteScene(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteScene(r.Context(), mux.Vars(r)["id"]); err != nil {
		s.respondStoreError(w, err, "scene not found")
		return
	}
	s.respondMessage(w, "Scene deleted successfully")
}

// handleRegenerateScene reruns generation, with the request prompt when one
// is supplied and the stored prompt otherwise. Previous artifacts are
// discarded so the scene must be rendered again.
func (s *Server) handleRegenerateScene(w http.ResponseWriter, r *http.Request) {
	var req regenerateRequest
	// The body is optional; regenerating with the stored prompt needs none.
	_ = decodeBody(r, &req)

	ctx := r.Context()
	scene, err := s.store.GetScene(ctx, mux.Vars(r)["id"])
	if err != nil {
		s.respondStoreError(w, err, "scene not found")
		return
	}
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		prompt = scene.Prompt
	}

	scene = s.generateInto(ctx, scene, prompt)
	s.respondData(w, http.StatusOK, viewScene(scene), "Scene regenerated successfully")
}

// handleCreateMultiScenes plans a short storyboard from one prompt and
// creates a scene per part, each with template code ready to render.
func (s *Server) handleCreateMultiScenes(w http.ResponseWriter, r *http.Request) {
	var req multiSceneRequest
	if err := decodeBody(r, &req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		s.respondError(w, http.StatusBadRequest, "prompt is required")
		return
	}

	ctx := r.Context()
	if _, err := s.store.GetProject(ctx, req.ProjectID); err != nil {
		s.respondStoreError(w, err, "project not found")
		return
	}

	planned := llm.Storyboard(req.Prompt, req.NumScenes)
	created := make([]sceneView, 0, len(planned))
	for _, part := range planned {
		scene, err := s.store.CreateScene(ctx, req.ProjectID, part.Title)
		if err != nil {
			s.respondStoreError(w, err, "project not found")
			return
		}
		scene.Code = part.Code
		scene.Status = store.ScenePending
		if err := s.store.UpdateScene(ctx, scene); err != nil {
			s.respondStoreError(w, err, "scene not found")
			return
		}
		created = append(created, viewScene(scene))
	}

	message := fmt.Sprintf("Created %d scenes. Render each one and then export to create your video.", len(created))
	s.respondData(w, http.StatusCreated, created, message)
}

// generateInto runs code generation for a scene and persists the outcome:
// pending with fresh code on success, failed with the generator's message
// otherwise. Returns the stored record either way.
func (s *Server) generateInto(ctx context.Context, scene *store.Scene, prompt string) *store.Scene {
	if err := s.store.SetSceneStatus(ctx, scene.ID, store.SceneGenerating); err != nil {
		s.logger.Error("set scene generating failed",
			logging.String(logging.FieldSceneID, scene.ID), logging.Error(err))
	}

	code, err := s.generator.GenerateScene(ctx, prompt)
	if err != nil {
		s.logger.Warn("scene generation failed",
			logging.String(logging.FieldSceneID, scene.ID), logging.Error(err))
		if ferr := s.store.FailScene(ctx, scene.ID, err.Error()); ferr != nil {
			s.logger.Error("fail scene failed",
				logging.String(logging.FieldSceneID, scene.ID), logging.Error(ferr))
		}
	} else {
		scene.Prompt = prompt
		scene.Code = code
		scene.VideoURL = ""
		scene.ThumbnailURL = ""
		scene.DurationSeconds = 0
		scene.Status = store.ScenePending
		scene.ErrorMessage = ""
		if uerr := s.store.UpdateScene(ctx, scene); uerr != nil {
			s.logger.Error("store generated code failed",
				logging.String(logging.FieldSceneID, scene.ID), logging.Error(uerr))
		}
	}

	stored, gerr := s.store.GetScene(ctx, scene.ID)
	if gerr != nil {
		return scene
	}
	return stored
}
