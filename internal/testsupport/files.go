package testsupport

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// WriteFile writes content to path, creating parent directories.
func WriteFile(t testing.TB, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// WritePack creates a pack directory under parent. Keys of files are paths
// relative to the pack root using forward slashes, e.g.
// "assets/minecraft/textures/a.png" or "pack_anim0.properties".
func WritePack(t testing.TB, parent, name string, files map[string]string) string {
	t.Helper()
	root := filepath.Join(parent, name)
	if err := os.MkdirAll(root, 0o755); err != nil {
		t.Fatalf("mkdir pack %s: %v", root, err)
	}
	for rel, content := range files {
		WriteFile(t, filepath.Join(root, filepath.FromSlash(rel)), content)
	}
	return root
}

// Properties joins lines into a properties document.
func Properties(lines ...string) string {
	return strings.Join(lines, "\n")
}
