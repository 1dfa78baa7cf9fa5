package api

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"sceneforge/internal/logging"
)

// maxAudioUploadBytes caps the multipart form held in memory.
const maxAudioUploadBytes = 64 << 20

var allowedAudioExtensions = map[string]bool{
	".mp3": true,
	".wav": true,
}

// handleUploadAudio stores an uploaded track under the uploads directory
// with a generated name and attaches it to the project. A later upload
// replaces the project's track reference; the old file is left on disk for
// any export still reading it.
func (s *Server) handleUploadAudio(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	projectID := mux.Vars(r)["projectID"]
	if _, err := s.store.GetProject(ctx, projectID); err != nil {
		s.respondStoreError(w, err, "project not found")
		return
	}

	if err := r.ParseMultipartForm(maxAudioUploadBytes); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "audio file is required")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext == "" {
		ext = ".mp3"
	}
	if !allowedAudioExtensions[ext] {
		s.respondError(w, http.StatusBadRequest, "invalid file type, allowed: MP3, WAV")
		return
	}

	audioID := uuid.NewString()
	filename := audioID + ext
	path := filepath.Join(s.cfg.Paths.UploadDir, filename)
	out, err := os.Create(path)
	if err != nil {
		s.logger.Error("create upload file failed", logging.Error(err))
		s.respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if _, err := io.Copy(out, file); err != nil {
		out.Close()
		os.Remove(path)
		s.logger.Error("write upload file failed", logging.Error(err))
		s.respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if err := out.Close(); err != nil {
		os.Remove(path)
		s.logger.Error("close upload file failed", logging.Error(err))
		s.respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	audioURL := "/uploads/" + filename
	if err := s.store.SetProjectAudio(ctx, projectID, audioURL); err != nil {
		s.respondStoreError(w, err, "project not found")
		return
	}

	s.respondData(w, http.StatusCreated, audioView{
		ID:        audioID,
		ProjectID: projectID,
		Filename:  header.Filename,
		URL:       audioURL,
		CreatedAt: time.Now().UTC(),
	}, "Audio uploaded successfully")
}

// handleDeleteAudio removes the project's uploaded track file and clears
// the reference.
func (s *Server) handleDeleteAudio(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	projectID := mux.Vars(r)["projectID"]
	project, err := s.store.GetProject(ctx, projectID)
	if err != nil {
		s.respondStoreError(w, err, "project not found")
		return
	}

	if project.AudioURL != "" {
		path := filepath.Join(s.cfg.Paths.UploadDir, filepath.Base(project.AudioURL))
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			s.logger.Warn("remove audio file failed", logging.Error(err))
		}
	}
	if err := s.store.SetProjectAudio(ctx, projectID, ""); err != nil {
		s.respondStoreError(w, err, "project not found")
		return
	}
	s.respondMessage(w, "Audio removed successfully")
}

type ttsRequest struct {
	ProjectID string `json:"project_id"`
	Text      string `json:"text"`
	Voice     string `json:"voice"`
}

// handleTTS is a placeholder until a speech synthesis backend is chosen.
func (s *Server) handleTTS(w http.ResponseWriter, r *http.Request) {
	var req ttsRequest
	if err := decodeBody(r, &req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if _, err := s.store.GetProject(r.Context(), req.ProjectID); err != nil {
		s.respondStoreError(w, err, "project not found")
		return
	}
	s.respondError(w, http.StatusNotImplemented,
		"TTS feature coming soon, upload an audio file instead")
}
