package api

import (
	"time"

	"sceneforge/internal/store"
)

// View structs mirror the persisted records with the JSON field names the
// frontend consumes. Empty optional fields are omitted rather than nulled.

type projectView struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	AudioURL    string    `json:"audio_url,omitempty"`
	SceneCount  int       `json:"scene_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type sceneView struct {
	ID              string    `json:"id"`
	ProjectID       string    `json:"project_id"`
	Prompt          string    `json:"prompt"`
	Code            string    `json:"code,omitempty"`
	VideoURL        string    `json:"video_url,omitempty"`
	ThumbnailURL    string    `json:"thumbnail_url,omitempty"`
	DurationSeconds float64   `json:"duration_seconds"`
	OrderIndex      int       `json:"order_index"`
	Status          string    `json:"status"`
	ErrorMessage    string    `json:"error_message,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type jobView struct {
	ID           string    `json:"id"`
	Kind         string    `json:"kind"`
	SceneID      string    `json:"scene_id,omitempty"`
	ProjectID    string    `json:"project_id,omitempty"`
	Status       string    `json:"status"`
	Phase        string    `json:"phase,omitempty"`
	Progress     int       `json:"progress"`
	OutputURL    string    `json:"output_url,omitempty"`
	ErrorMessage string    `json:"error_message,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type audioView struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id"`
	Filename  string    `json:"filename"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

func viewProject(p *store.Project) projectView {
	return projectView{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		AudioURL:    p.AudioURL,
		SceneCount:  p.SceneCount,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func viewScene(sc *store.Scene) sceneView {
	return sceneView{
		ID:              sc.ID,
		ProjectID:       sc.ProjectID,
		Prompt:          sc.Prompt,
		Code:            sc.Code,
		VideoURL:        sc.VideoURL,
		ThumbnailURL:    sc.ThumbnailURL,
		DurationSeconds: sc.DurationSeconds,
		OrderIndex:      sc.OrderIndex,
		Status:          string(sc.Status),
		ErrorMessage:    sc.ErrorMessage,
		CreatedAt:       sc.CreatedAt,
		UpdatedAt:       sc.UpdatedAt,
	}
}

func viewJob(j *store.Job) jobView {
	return jobView{
		ID:           j.ID,
		Kind:         string(j.Kind),
		SceneID:      j.SceneID,
		ProjectID:    j.ProjectID,
		Status:       string(j.Status),
		Phase:        j.Phase,
		Progress:     j.Progress,
		OutputURL:    j.OutputURL,
		ErrorMessage: j.ErrorMessage,
		CreatedAt:    j.CreatedAt,
	}
}

func viewScenes(scenes []*store.Scene) []sceneView {
	views := make([]sceneView, 0, len(scenes))
	for _, sc := range scenes {
		views = append(views, viewScene(sc))
	}
	return views
}
