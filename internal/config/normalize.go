package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeResolve()
	c.normalizeSchemas()
	c.Output.Format = strings.ToLower(strings.TrimSpace(c.Output.Format))
	if c.Output.Format == "" {
		c.Output.Format = defaultOutputFormat
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	if value, ok := os.LookupEnv(PackDirsEnv); ok && strings.TrimSpace(value) != "" {
		c.Paths.PackDirs = filepath.SplitList(value)
	}
	dirs := make([]string, 0, len(c.Paths.PackDirs))
	seen := make(map[string]struct{}, len(c.Paths.PackDirs))
	for i, dir := range c.Paths.PackDirs {
		dir = strings.TrimSpace(dir)
		if dir == "" {
			continue
		}
		expanded, err := expandPath(dir)
		if err != nil {
			return fmt.Errorf("paths.pack_dirs[%d]: %w", i, err)
		}
		if _, dup := seen[expanded]; dup {
			continue
		}
		seen[expanded] = struct{}{}
		dirs = append(dirs, expanded)
	}
	c.Paths.PackDirs = dirs

	var err error
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		c.Paths.OutputDir = defaultOutputDir
	}
	if c.Paths.OutputDir, err = expandPath(strings.TrimSpace(c.Paths.OutputDir)); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if c.Paths.IndexPath, err = expandPath(strings.TrimSpace(c.Paths.IndexPath)); err != nil {
		return fmt.Errorf("paths.index_path: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeResolve() {
	c.Resolve.DefaultNamespace = strings.TrimSpace(c.Resolve.DefaultNamespace)
	if c.Resolve.DefaultNamespace == "" {
		c.Resolve.DefaultNamespace = defaultNamespace
	}
	c.Resolve.HomeDir = strings.Trim(strings.TrimSpace(c.Resolve.HomeDir), "/")
	if c.Resolve.HomeDir == "" {
		c.Resolve.HomeDir = defaultHomeDir
	}
}

func (c *Config) normalizeSchemas() {
	c.Schemas.EmissiveConfig = strings.TrimSpace(c.Schemas.EmissiveConfig)
	if c.Schemas.EmissiveConfig == "" {
		c.Schemas.EmissiveConfig = defaultEmissiveConfig
	}
	dir := strings.Trim(strings.TrimSpace(c.Schemas.AnimationDir), "/")
	if dir == "" {
		c.Schemas.AnimationDir = defaultAnimationDir
	} else {
		c.Schemas.AnimationDir = dir + "/"
	}
	c.Schemas.DefaultEmissiveSuffix = strings.TrimSpace(c.Schemas.DefaultEmissiveSuffix)
	if c.Schemas.DefaultEmissiveSuffix == "" {
		c.Schemas.DefaultEmissiveSuffix = defaultEmissiveSuffix
	}
	if c.Schemas.RootAnimationLimit == 0 {
		c.Schemas.RootAnimationLimit = defaultRootAnimationLimit
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
