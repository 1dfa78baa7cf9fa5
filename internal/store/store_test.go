package store_test

import (
	"context"
	"errors"
	"testing"

	"sceneforge/internal/store"
	"sceneforge/internal/testsupport"
)

func TestOpenCreatesSchema(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	project, err := st.CreateProject(ctx, "Fourier Series", "animated walkthrough")
	if err != nil {
		t.Fatalf("CreateProject failed: %v", err)
	}
	if project.ID == "" {
		t.Fatal("expected project ID to be assigned")
	}

	fetched, err := st.GetProject(ctx, project.ID)
	if err != nil {
		t.Fatalf("GetProject failed: %v", err)
	}
	if fetched.Name != "Fourier Series" || fetched.SceneCount != 0 {
		t.Fatalf("unexpected fetched project: %#v", fetched)
	}
}

func TestGetProjectMissing(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	if _, err := st.GetProject(context.Background(), "nope"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateSceneAssignsOrderIndex(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	project := testsupport.NewProject(t, st, "ordering")

	ctx := context.Background()
	first := testsupport.NewScene(t, st, project.ID, "draw a circle")
	second := testsupport.NewScene(t, st, project.ID, "draw a square")

	if first.OrderIndex != 0 || second.OrderIndex != 1 {
		t.Fatalf("unexpected order indices: %d, %d", first.OrderIndex, second.OrderIndex)
	}
	if first.Status != store.ScenePending {
		t.Fatalf("expected pending status, got %q", first.Status)
	}

	scenes, err := st.ScenesByProject(ctx, project.ID)
	if err != nil {
		t.Fatalf("ScenesByProject failed: %v", err)
	}
	if len(scenes) != 2 || scenes[0].ID != first.ID || scenes[1].ID != second.ID {
		t.Fatalf("unexpected scene order: %#v", scenes)
	}

	fetched, err := st.GetProject(ctx, project.ID)
	if err != nil {
		t.Fatalf("GetProject failed: %v", err)
	}
	if fetched.SceneCount != 2 {
		t.Fatalf("expected scene count 2, got %d", fetched.SceneCount)
	}
}

func TestDeleteSceneCompactsOrder(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	project := testsupport.NewProject(t, st, "compaction")

	ctx := context.Background()
	testsupport.NewScene(t, st, project.ID, "one")
	middle := testsupport.NewScene(t, st, project.ID, "two")
	last := testsupport.NewScene(t, st, project.ID, "three")

	if err := st.DeleteScene(ctx, middle.ID); err != nil {
		t.Fatalf("DeleteScene failed: %v", err)
	}

	scenes, err := st.ScenesByProject(ctx, project.ID)
	if err != nil {
		t.Fatalf("ScenesByProject failed: %v", err)
	}
	if len(scenes) != 2 {
		t.Fatalf("expected 2 scenes, got %d", len(scenes))
	}
	if scenes[1].ID != last.ID || scenes[1].OrderIndex != 1 {
		t.Fatalf("expected trailing scene reindexed to 1, got %#v", scenes[1])
	}
}

func TestSetSceneArtifactMarksCompleted(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	project := testsupport.NewProject(t, st, "artifacts")
	scene := testsupport.NewScene(t, st, project.ID, "spin a triangle")

	ctx := context.Background()
	if err := st.SetSceneArtifact(ctx, scene.ID, "/outputs/s1.mp4", "/outputs/s1.jpg", 7.5); err != nil {
		t.Fatalf("SetSceneArtifact failed: %v", err)
	}

	fetched, err := st.GetScene(ctx, scene.ID)
	if err != nil {
		t.Fatalf("GetScene failed: %v", err)
	}
	if !fetched.HasArtifact() {
		t.Fatalf("expected completed scene with artifact, got %#v", fetched)
	}
	if fetched.DurationSeconds != 7.5 {
		t.Fatalf("unexpected duration %v", fetched.DurationSeconds)
	}
}

func TestFailSceneRecordsMessage(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	project := testsupport.NewProject(t, st, "failures")
	scene := testsupport.NewScene(t, st, project.ID, "bad code")

	ctx := context.Background()
	if err := st.FailScene(ctx, scene.ID, "render exited with status 1"); err != nil {
		t.Fatalf("FailScene failed: %v", err)
	}

	fetched, err := st.GetScene(ctx, scene.ID)
	if err != nil {
		t.Fatalf("GetScene failed: %v", err)
	}
	if fetched.Status != store.SceneFailed || fetched.ErrorMessage == "" {
		t.Fatalf("unexpected scene after failure: %#v", fetched)
	}
}

func TestJobLifecycle(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	job, err := st.CreateJob(ctx, store.KindRenderAll, "", "project-1")
	if err != nil {
		t.Fatalf("CreateJob failed: %v", err)
	}
	if job.Status != store.JobPending || job.Progress != 0 {
		t.Fatalf("unexpected new job: %#v", job)
	}

	if err := st.StartJob(ctx, job.ID, "Rendering scene 1/2"); err != nil {
		t.Fatalf("StartJob failed: %v", err)
	}
	if err := st.SetJobProgress(ctx, job.ID, "Rendering scene 2/2", 40); err != nil {
		t.Fatalf("SetJobProgress failed: %v", err)
	}
	if err := st.CompleteJob(ctx, job.ID, "/outputs/project-1_final.mp4"); err != nil {
		t.Fatalf("CompleteJob failed: %v", err)
	}

	fetched, err := st.GetJob(ctx, job.ID)
	if err != nil {
		t.Fatalf("GetJob failed: %v", err)
	}
	if fetched.Status != store.JobCompleted || fetched.Progress != 100 {
		t.Fatalf("unexpected completed job: %#v", fetched)
	}
	if fetched.OutputURL != "/outputs/project-1_final.mp4" {
		t.Fatalf("unexpected output URL %q", fetched.OutputURL)
	}
	if !fetched.IsTerminal() {
		t.Fatal("expected completed job to be terminal")
	}
}

func TestJobProgressNeverMovesBackward(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	job, err := st.CreateJob(ctx, store.KindExport, "", "project-2")
	if err != nil {
		t.Fatalf("CreateJob failed: %v", err)
	}
	if err := st.StartJob(ctx, job.ID, "Combining scenes"); err != nil {
		t.Fatalf("StartJob failed: %v", err)
	}
	if err := st.SetJobProgress(ctx, job.ID, "Combining scenes", 85); err != nil {
		t.Fatalf("SetJobProgress failed: %v", err)
	}
	if err := st.SetJobProgress(ctx, job.ID, "Combining scenes", 40); err != nil {
		t.Fatalf("SetJobProgress failed: %v", err)
	}

	fetched, err := st.GetJob(ctx, job.ID)
	if err != nil {
		t.Fatalf("GetJob failed: %v", err)
	}
	if fetched.Progress != 85 {
		t.Fatalf("expected progress held at 85, got %d", fetched.Progress)
	}
}

func TestTerminalJobsAreImmutable(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	job, err := st.CreateJob(ctx, store.KindSceneRender, "scene-1", "")
	if err != nil {
		t.Fatalf("CreateJob failed: %v", err)
	}
	if err := st.StartJob(ctx, job.ID, "Rendering scene 1/1"); err != nil {
		t.Fatalf("StartJob failed: %v", err)
	}
	if err := st.FailJob(ctx, job.ID, "scene 1 failed: engine exited"); err != nil {
		t.Fatalf("FailJob failed: %v", err)
	}

	if err := st.CompleteJob(ctx, job.ID, "/outputs/x.mp4"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected terminal job to reject completion, got %v", err)
	}
	if err := st.SetJobProgress(ctx, job.ID, "late", 99); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected terminal job to reject progress, got %v", err)
	}

	fetched, err := st.GetJob(ctx, job.ID)
	if err != nil {
		t.Fatalf("GetJob failed: %v", err)
	}
	if fetched.Status != store.JobFailed || fetched.ErrorMessage == "" {
		t.Fatalf("unexpected failed job: %#v", fetched)
	}
}

func TestProjectAudioRoundTrip(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	project := testsupport.NewProject(t, st, "audio")

	ctx := context.Background()
	if err := st.SetProjectAudio(ctx, project.ID, "/uploads/track.mp3"); err != nil {
		t.Fatalf("SetProjectAudio failed: %v", err)
	}
	fetched, err := st.GetProject(ctx, project.ID)
	if err != nil {
		t.Fatalf("GetProject failed: %v", err)
	}
	if fetched.AudioURL != "/uploads/track.mp3" {
		t.Fatalf("unexpected audio URL %q", fetched.AudioURL)
	}

	if err := st.SetProjectAudio(ctx, project.ID, ""); err != nil {
		t.Fatalf("clear audio failed: %v", err)
	}
	fetched, err = st.GetProject(ctx, project.ID)
	if err != nil {
		t.Fatalf("GetProject failed: %v", err)
	}
	if fetched.AudioURL != "" {
		t.Fatalf("expected cleared audio URL, got %q", fetched.AudioURL)
	}
}
