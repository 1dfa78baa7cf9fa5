package api

import (
	"encoding/json"
	"net/http"

	"sceneforge/internal/logging"
)

// envelope is the response shape shared by every JSON endpoint.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("encode response failed", logging.Error(err))
	}
}

func (s *Server) respondData(w http.ResponseWriter, status int, data any, message string) {
	s.writeJSON(w, status, envelope{Success: true, Data: data, Message: message})
}

func (s *Server) respondMessage(w http.ResponseWriter, message string) {
	s.writeJSON(w, http.StatusOK, envelope{Success: true, Message: message})
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, envelope{Success: false, Message: message})
}

func decodeBody(r *http.Request, into any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(into)
}
