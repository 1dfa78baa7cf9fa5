package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"sceneforge/internal/combine"
	"sceneforge/internal/config"
	"sceneforge/internal/logging"
	"sceneforge/internal/render"
	"sceneforge/internal/store"
)

// Renderer executes one scene's code into a persistent video artifact.
type Renderer interface {
	Render(ctx context.Context, code, sceneID string) (*render.Result, error)
}

// Combiner stitches a project's rendered scenes into a final video.
type Combiner interface {
	Combine(ctx context.Context, scenes []*store.Scene, projectID, audioURL string) (*combine.Result, error)
}

// Orchestrator owns the job state machine. Submissions validate their
// preconditions synchronously, create a pending job record, and dispatch a
// background task per job. There is no concurrency limit on running jobs
// and no cancellation of a job once started; clients poll the job record
// to observe progress and outcome.
type Orchestrator struct {
	store    *store.Store
	renderer Renderer
	combiner Combiner
	budget   int
	logger   *slog.Logger

	// ctx bounds job task lifetimes. Cancellation is a seam for shutdown
	// hardening; running jobs currently drain rather than abort.
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New constructs an orchestrator. budget comes from the workflow config
// and caps the render phase's share of render-all job progress.
func New(cfg *config.Config, st *store.Store, renderer Renderer, combiner Combiner, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = logging.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	budget := cfg.Workflow.RenderProgressBudget
	if budget <= 0 || budget >= 100 {
		budget = 80
	}
	return &Orchestrator{
		store:    st,
		renderer: renderer,
		combiner: combiner,
		budget:   budget,
		logger:   logging.WithComponent(logger, "orchestrator"),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Wait blocks until all dispatched job tasks have finished.
func (o *Orchestrator) Wait() {
	o.wg.Wait()
}

// Close stops accepting new work implicitly by context and waits for
// in-flight jobs to drain.
func (o *Orchestrator) Close() {
	o.cancel()
	o.wg.Wait()
}

func (o *Orchestrator) launch(jobID string, task func(ctx context.Context)) {
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				o.logger.Error("job task panicked",
					logging.String(logging.FieldJobID, jobID),
					logging.Any("panic", r))
				_ = o.store.FailJob(context.Background(), jobID, fmt.Sprintf("internal error: %v", r))
			}
		}()
		task(o.ctx)
	}()
}

// SubmitSceneRender starts a job rendering one scene's existing code.
func (o *Orchestrator) SubmitSceneRender(ctx context.Context, sceneID string) (*store.Job, error) {
	scene, err := o.store.GetScene(ctx, sceneID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, notFound("scene not found")
	}
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(scene.Code) == "" {
		return nil, rejected("scene has no code to render")
	}

	job, err := o.store.CreateJob(ctx, store.KindSceneRender, scene.ID, scene.ProjectID)
	if err != nil {
		return nil, err
	}
	o.launch(job.ID, func(taskCtx context.Context) {
		o.runSceneRender(taskCtx, job.ID, scene.ID)
	})
	return job, nil
}

// SubmitExport starts a job combining a fully rendered project.
func (o *Orchestrator) SubmitExport(ctx context.Context, projectID string) (*store.Job, error) {
	scenes, err := o.projectScenes(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if len(scenes) == 0 {
		return nil, rejected("project has no scenes")
	}
	for _, scene := range scenes {
		if scene.Status != store.SceneCompleted {
			return nil, rejected(fmt.Sprintf("scene %s is not rendered yet", scene.ID))
		}
	}

	job, err := o.store.CreateJob(ctx, store.KindExport, "", projectID)
	if err != nil {
		return nil, err
	}
	o.launch(job.ID, func(taskCtx context.Context) {
		o.runExport(taskCtx, job.ID, projectID)
	})
	return job, nil
}

// SubmitRenderAll starts a job rendering every scene in a project and then
// combining them into one video.
func (o *Orchestrator) SubmitRenderAll(ctx context.Context, projectID string) (*store.Job, error) {
	scenes, err := o.projectScenes(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if len(scenes) == 0 {
		return nil, rejected("project has no scenes to render")
	}
	for _, scene := range scenes {
		if strings.TrimSpace(scene.Code) == "" {
			name := strings.TrimSpace(scene.Prompt)
			if name == "" {
				name = scene.ID
			}
			return nil, rejected(fmt.Sprintf("scene %q has no code", name))
		}
	}

	job, err := o.store.CreateJob(ctx, store.KindRenderAll, "", projectID)
	if err != nil {
		return nil, err
	}
	o.launch(job.ID, func(taskCtx context.Context) {
		o.runRenderAll(taskCtx, job.ID, projectID)
	})
	return job, nil
}

func (o *Orchestrator) projectScenes(ctx context.Context, projectID string) ([]*store.Scene, error) {
	if _, err := o.store.GetProject(ctx, projectID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, notFound("project not found")
		}
		return nil, err
	}
	return o.store.ScenesByProject(ctx, projectID)
}
