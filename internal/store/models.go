package store

import (
	"strings"
	"time"
)

// SceneStatus represents the lifecycle of a scene.
type SceneStatus string

const (
	ScenePending    SceneStatus = "pending"
	SceneGenerating SceneStatus = "generating"
	SceneRendering  SceneStatus = "rendering"
	SceneCompleted  SceneStatus = "completed"
	SceneFailed     SceneStatus = "failed"
)

var sceneStatusSet = map[SceneStatus]struct{}{
	ScenePending:    {},
	SceneGenerating: {},
	SceneRendering:  {},
	SceneCompleted:  {},
	SceneFailed:     {},
}

// ParseSceneStatus converts a string into a known SceneStatus.
func ParseSceneStatus(value string) (SceneStatus, bool) {
	normalized := SceneStatus(strings.ToLower(strings.TrimSpace(value)))
	_, ok := sceneStatusSet[normalized]
	return normalized, ok
}

// JobStatus represents the lifecycle of a render job.
type JobStatus string

const (
	JobPending   JobStatus = "pending"
	JobRunning   JobStatus = "running"
	JobCompleted JobStatus = "completed"
	JobFailed    JobStatus = "failed"
)

// JobKind identifies which pipeline a job drives.
type JobKind string

const (
	KindSceneRender JobKind = "single_scene_render"
	KindExport      JobKind = "export_combine"
	KindRenderAll   JobKind = "render_all_and_combine"
)

// Project groups an ordered set of scenes plus an optional audio track.
type Project struct {
	ID          string
	Name        string
	Description string
	AudioURL    string
	SceneCount  int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Scene is one unit of generated code plus its rendered artifact and status.
type Scene struct {
	ID              string
	ProjectID       string
	Prompt          string
	Code            string
	VideoURL        string
	ThumbnailURL    string
	DurationSeconds float64
	OrderIndex      int
	Status          SceneStatus
	ErrorMessage    string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Job is one orchestrated pipeline invocation. Jobs are never reused; each
// submission creates a fresh record that clients poll by id.
type Job struct {
	ID           string
	Kind         JobKind
	SceneID      string
	ProjectID    string
	Status       JobStatus
	Phase        string
	Progress     int
	OutputURL    string
	ErrorMessage string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsTerminal reports whether the job has reached a final state.
func (j *Job) IsTerminal() bool {
	return j.Status == JobCompleted || j.Status == JobFailed
}

// HasArtifact reports whether the scene claims a rendered video.
func (s *Scene) HasArtifact() bool {
	return s.Status == SceneCompleted && s.VideoURL != ""
}
