package daemon_test

import (
	"context"
	"net/http"
	"testing"

	"sceneforge/internal/api"
	"sceneforge/internal/combine"
	"sceneforge/internal/config"
	"sceneforge/internal/daemon"
	"sceneforge/internal/orchestrator"
	"sceneforge/internal/render"
	"sceneforge/internal/services/llm"
	"sceneforge/internal/store"
	"sceneforge/internal/testsupport"
)

type noopRenderer struct{}

func (noopRenderer) Render(_ context.Context, _ string, sceneID string) (*render.Result, error) {
	return &render.Result{VideoURL: "/outputs/" + sceneID + ".mp4"}, nil
}

type noopCombiner struct{}

func (noopCombiner) Combine(_ context.Context, _ []*store.Scene, projectID, _ string) (*combine.Result, error) {
	return &combine.Result{VideoURL: "/outputs/" + projectID + "_final.mp4"}, nil
}

func newDaemon(t *testing.T, cfg *config.Config) *daemon.Daemon {
	t.Helper()
	st := testsupport.MustOpenStore(t, cfg)
	orch := orchestrator.New(cfg, st, noopRenderer{}, noopCombiner{}, nil)
	generator := llm.NewGenerator(llm.Config{}, nil)
	server := api.New(cfg, st, orch, generator, nil)

	d, err := daemon.New(cfg, st, orch, server.Handler(), nil)
	if err != nil {
		t.Fatalf("daemon.New: %v", err)
	}
	return d
}

func TestDaemonServesHealthWhileRunning(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	d := newDaemon(t, cfg)

	if err := d.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer d.Stop()

	status := d.Status()
	if !status.Running || status.BindAddress == "" {
		t.Fatalf("unexpected status: %+v", status)
	}

	resp, err := http.Get("http://" + d.Addr() + "/health")
	if err != nil {
		t.Fatalf("health request: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 from /health, got %d", resp.StatusCode)
	}

	d.Stop()
	if d.Status().Running {
		t.Fatal("expected stopped daemon")
	}
}

func TestDaemonRejectsSecondInstance(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	first := newDaemon(t, cfg)
	if err := first.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer first.Stop()

	second := newDaemon(t, cfg)
	if err := second.Start(context.Background()); err == nil {
		second.Stop()
		t.Fatal("expected second instance to fail to start")
	}
}

func TestDaemonStartIsNotReentrant(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	d := newDaemon(t, cfg)
	if err := d.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer d.Stop()

	if err := d.Start(context.Background()); err == nil {
		t.Fatal("expected error starting a running daemon")
	}
}
