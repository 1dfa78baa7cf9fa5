package orchestrator

import (
	"context"
	"fmt"

	"sceneforge/internal/logging"
	"sceneforge/internal/store"
)

const combineProgress = 85

// runSceneRender drives a single_scene_render job to a terminal state.
// Errors never escape; they land in the job and scene records.
func (o *Orchestrator) runSceneRender(ctx context.Context, jobID, sceneID string) {
	log := o.logger.With(
		logging.String(logging.FieldJobID, jobID),
		logging.String(logging.FieldSceneID, sceneID))

	scene, err := o.store.GetScene(ctx, sceneID)
	if err != nil {
		o.failJob(ctx, jobID, fmt.Sprintf("load scene: %v", err))
		return
	}

	if err := o.store.StartJob(ctx, jobID, "Rendering scene"); err != nil {
		log.Error("start job failed", logging.Error(err))
		return
	}
	o.setProgress(ctx, jobID, "Rendering scene", 10)
	o.setSceneStatus(ctx, sceneID, store.SceneRendering)

	result, err := o.renderer.Render(ctx, scene.Code, sceneID)
	if err != nil {
		log.Warn("scene render failed", logging.Error(err))
		o.failScene(ctx, sceneID, err.Error())
		o.failJob(ctx, jobID, err.Error())
		return
	}

	o.storeArtifact(ctx, sceneID, result.VideoURL, result.ThumbnailURL, result.DurationSeconds)
	o.completeJob(ctx, jobID, result.VideoURL)
	log.Info("scene render job completed")
}

// runExport drives an export_combine job to a terminal state.
func (o *Orchestrator) runExport(ctx context.Context, jobID, projectID string) {
	log := o.logger.With(
		logging.String(logging.FieldJobID, jobID),
		logging.String(logging.FieldProjectID, projectID))

	if err := o.store.StartJob(ctx, jobID, "Combining scenes"); err != nil {
		log.Error("start job failed", logging.Error(err))
		return
	}
	o.setProgress(ctx, jobID, "Combining scenes", 10)

	project, err := o.store.GetProject(ctx, projectID)
	if err != nil {
		o.failJob(ctx, jobID, fmt.Sprintf("load project: %v", err))
		return
	}
	scenes, err := o.store.ScenesByProject(ctx, projectID)
	if err != nil {
		o.failJob(ctx, jobID, fmt.Sprintf("load scenes: %v", err))
		return
	}

	result, err := o.combiner.Combine(ctx, scenes, projectID, project.AudioURL)
	if err != nil {
		log.Warn("combine failed", logging.Error(err))
		o.failJob(ctx, jobID, err.Error())
		return
	}

	o.completeJob(ctx, jobID, result.VideoURL)
	log.Info("export job completed")
}

// runRenderAll drives a render_all_and_combine job: render each scene in
// order, abort the whole job on the first scene failure, then combine. The
// render phase is apportioned across the configured progress budget; the
// combine phase starts at a fixed 85.
func (o *Orchestrator) runRenderAll(ctx context.Context, jobID, projectID string) {
	log := o.logger.With(
		logging.String(logging.FieldJobID, jobID),
		logging.String(logging.FieldProjectID, projectID))

	scenes, err := o.store.ScenesByProject(ctx, projectID)
	if err != nil {
		o.failJob(ctx, jobID, fmt.Sprintf("load scenes: %v", err))
		return
	}
	total := len(scenes)

	if err := o.store.StartJob(ctx, jobID, fmt.Sprintf("Rendering scene 1/%d", total)); err != nil {
		log.Error("start job failed", logging.Error(err))
		return
	}

	for i, scene := range scenes {
		phase := fmt.Sprintf("Rendering scene %d/%d", i+1, total)
		o.setProgress(ctx, jobID, phase, i*o.budget/total)

		if scene.HasArtifact() {
			continue
		}

		o.setSceneStatus(ctx, scene.ID, store.SceneRendering)
		result, err := o.renderer.Render(ctx, scene.Code, scene.ID)
		if err != nil {
			log.Warn("scene render failed",
				logging.String(logging.FieldSceneID, scene.ID),
				logging.Error(err))
			o.failScene(ctx, scene.ID, err.Error())
			o.failJob(ctx, jobID, fmt.Sprintf("failed to render scene %d: %v", i+1, err))
			return
		}
		o.storeArtifact(ctx, scene.ID, result.VideoURL, result.ThumbnailURL, result.DurationSeconds)
	}

	o.setProgress(ctx, jobID, "Combining scenes", combineProgress)

	project, err := o.store.GetProject(ctx, projectID)
	if err != nil {
		o.failJob(ctx, jobID, fmt.Sprintf("load project: %v", err))
		return
	}
	// Refetch so the combiner sees the video URLs written above.
	scenes, err = o.store.ScenesByProject(ctx, projectID)
	if err != nil {
		o.failJob(ctx, jobID, fmt.Sprintf("load scenes: %v", err))
		return
	}

	result, err := o.combiner.Combine(ctx, scenes, projectID, project.AudioURL)
	if err != nil {
		log.Warn("combine failed", logging.Error(err))
		o.failJob(ctx, jobID, err.Error())
		return
	}

	o.completeJob(ctx, jobID, result.VideoURL)
	log.Info("render-all job completed", logging.Int("scene_count", total))
}

// Store mutation helpers. Failures here are logged rather than propagated;
// the job task keeps driving toward a terminal state regardless.

func (o *Orchestrator) setProgress(ctx context.Context, jobID, phase string, progress int) {
	if err := o.store.SetJobProgress(ctx, jobID, phase, progress); err != nil {
		o.logger.Error("set job progress failed",
			logging.String(logging.FieldJobID, jobID),
			logging.Error(err))
	}
}

func (o *Orchestrator) setSceneStatus(ctx context.Context, sceneID string, status store.SceneStatus) {
	if err := o.store.SetSceneStatus(ctx, sceneID, status); err != nil {
		o.logger.Error("set scene status failed",
			logging.String(logging.FieldSceneID, sceneID),
			logging.Error(err))
	}
}

func (o *Orchestrator) storeArtifact(ctx context.Context, sceneID, videoURL, thumbnailURL string, duration float64) {
	if err := o.store.SetSceneArtifact(ctx, sceneID, videoURL, thumbnailURL, duration); err != nil {
		o.logger.Error("store scene artifact failed",
			logging.String(logging.FieldSceneID, sceneID),
			logging.Error(err))
	}
}

func (o *Orchestrator) failScene(ctx context.Context, sceneID, message string) {
	if err := o.store.FailScene(ctx, sceneID, message); err != nil {
		o.logger.Error("fail scene failed",
			logging.String(logging.FieldSceneID, sceneID),
			logging.Error(err))
	}
}

func (o *Orchestrator) failJob(ctx context.Context, jobID, message string) {
	if err := o.store.FailJob(ctx, jobID, message); err != nil {
		o.logger.Error("fail job failed",
			logging.String(logging.FieldJobID, jobID),
			logging.Error(err))
	}
}

func (o *Orchestrator) completeJob(ctx context.Context, jobID, outputURL string) {
	if err := o.store.CompleteJob(ctx, jobID, outputURL); err != nil {
		o.logger.Error("complete job failed",
			logging.String(logging.FieldJobID, jobID),
			logging.Error(err))
	}
}
