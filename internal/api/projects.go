package api

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
)

type projectCreateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type projectUpdateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	var req projectCreateRequest
	if err := decodeBody(r, &req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		s.respondError(w, http.StatusBadRequest, "project name is required")
		return
	}

	project, err := s.store.CreateProject(r.Context(), req.Name, req.Description)
	if err != nil {
		s.respondStoreError(w, err, "project not found")
		return
	}
	s.respondData(w, http.StatusCreated, viewProject(project), "Project created successfully")
}

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := s.store.ListProjects(r.Context())
	if err != nil {
		s.respondStoreError(w, err, "project not found")
		return
	}
	views := make([]projectView, 0, len(projects))
	for _, p := range projects {
		views = append(views, viewProject(p))
	}
	s.respondData(w, http.StatusOK, views, "")
}

func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	project, err := s.store.GetProject(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.respondStoreError(w, err, "project not found")
		return
	}
	s.respondData(w, http.StatusOK, viewProject(project), "")
}

func (s *Server) handleUpdateProject(w http.ResponseWriter, r *http.Request) {
	var req projectUpdateRequest
	if err := decodeBody(r, &req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx := r.Context()
	project, err := s.store.GetProject(ctx, mux.Vars(r)["id"])
	if err != nil {
		s.respondStoreError(w, err, "project not found")
		return
	}
	name := project.Name
	description := project.Description
	if req.Name != nil {
		name = *req.Name
	}
	if req.Description != nil {
		description = *req.Description
	}
	updated, err := s.store.UpdateProject(ctx, project.ID, name, description)
	if err != nil {
		s.respondStoreError(w, err, "project not found")
		return
	}
	s.respondData(w, http.StatusOK, viewProject(updated), "Project updated successfully")
}

func (s *Server) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteProject(r.Context(), mux.Vars(r)["id"]); err != nil {
		s.respondStoreError(w, err, "project not found")
		return
	}
	s.respondMessage(w, "Project deleted successfully")
}
