package deps_test

import (
	"testing"

	"sceneforge/internal/deps"
	"sceneforge/internal/testsupport"
)

func TestCheckBinariesReportsMissing(t *testing.T) {
	statuses := deps.CheckBinaries([]deps.Requirement{
		{Name: "Missing", Command: "definitely-not-a-real-binary-9138"},
		{Name: "Unconfigured", Command: "  "},
	})
	if len(statuses) != 2 {
		t.Fatalf("expected 2 statuses, got %d", len(statuses))
	}
	if statuses[0].Available || statuses[0].Detail == "" {
		t.Fatalf("expected unavailable with detail: %+v", statuses[0])
	}
	if statuses[1].Available || statuses[1].Detail != "command not configured" {
		t.Fatalf("expected unconfigured detail: %+v", statuses[1])
	}
}

func TestCheckBinariesFindsShell(t *testing.T) {
	statuses := deps.CheckBinaries([]deps.Requirement{
		{Name: "Shell", Command: "sh"},
	})
	if !statuses[0].Available {
		t.Fatalf("expected sh to be available: %+v", statuses[0])
	}
}

func TestToolchainCoversConfiguredBinaries(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	requirements := deps.Toolchain(cfg)
	if len(requirements) != 3 {
		t.Fatalf("expected 3 requirements, got %d", len(requirements))
	}
	for _, req := range requirements {
		if req.Command == "" {
			t.Fatalf("requirement %s has no command", req.Name)
		}
	}
}
