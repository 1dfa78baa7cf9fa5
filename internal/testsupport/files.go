package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteFile creates the target path (and parent directories) with the given
// contents. Tests use it to fabricate rendered artifacts and audio tracks.
func WriteFile(t testing.TB, path string, contents []byte) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if len(contents) == 0 {
		contents = []byte{0x42}
	}
	if err := os.WriteFile(path, contents, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
