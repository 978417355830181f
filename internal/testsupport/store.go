package testsupport

import (
	"context"
	"testing"

	"propmeta/internal/config"
	"propmeta/internal/packindex"
)

// MustOpenIndex opens the pack catalog at cfg.Paths.IndexPath and registers
// cleanup.
func MustOpenIndex(t testing.TB, cfg *config.Config) *packindex.Index {
	t.Helper()
	ix, err := packindex.Open(context.Background(), cfg.Paths.IndexPath)
	if err != nil {
		t.Fatalf("open pack index: %v", err)
	}
	t.Cleanup(func() {
		_ = ix.Close()
	})
	return ix
}
