package testsupport

import (
	"context"
	"testing"

	"sceneforge/internal/config"
	"sceneforge/internal/store"
)

// MustOpenStore opens a store.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *store.Store {
	t.Helper()

	st, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() {
		st.Close()
	})
	return st
}

// NewProject creates a project for tests using the provided store.
func NewProject(t testing.TB, st *store.Store, name string) *store.Project {
	t.Helper()

	project, err := st.CreateProject(context.Background(), name, "")
	if err != nil {
		t.Fatalf("store.CreateProject: %v", err)
	}
	return project
}

// NewScene appends a scene to a project for tests using the provided store.
func NewScene(t testing.TB, st *store.Store, projectID, prompt string) *store.Scene {
	t.Helper()

	scene, err := st.CreateScene(context.Background(), projectID, prompt)
	if err != nil {
		t.Fatalf("store.CreateScene: %v", err)
	}
	return scene
}
