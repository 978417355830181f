package testsupport

import (
	"path/filepath"
	"testing"

	"propmeta/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// Pack directories start empty; add them with WithPackDirs.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.OutputDir = filepath.Join(base, "out")
	cfgVal.Paths.IndexPath = filepath.Join(base, "cache", "packindex.db")
	cfgVal.Paths.LogDir = ""

	builder := &configBuilder{t: t, baseDir: base, cfg: &cfgVal}
	for _, opt := range opts {
		opt(builder)
	}
	return builder.cfg
}

// WithPackDirs sets the pack stack, highest priority first.
func WithPackDirs(dirs ...string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Paths.PackDirs = append([]string(nil), dirs...)
	}
}

// WithoutIndex disables the SQLite pack catalog.
func WithoutIndex() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Paths.IndexPath = ""
	}
}

// WithOutputFormat selects json or yaml export.
func WithOutputFormat(format string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Output.Format = format
	}
}

// WithLogDir directs log output into a directory under the test's temp root.
func WithLogDir() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Paths.LogDir = filepath.Join(b.baseDir, "logs")
	}
}
