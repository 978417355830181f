package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"propmeta/internal/resource"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateResolve(); err != nil {
		return err
	}
	if err := c.validateSchemas(); err != nil {
		return err
	}
	if err := c.validateOutput(); err != nil {
		return err
	}
	return c.validateLogging()
}

// ValidatePacks checks that every configured pack directory exists. Commands
// that read packs call it; config init and show do not.
func (c *Config) ValidatePacks() error {
	if len(c.Paths.PackDirs) == 0 {
		return fmt.Errorf("paths.pack_dirs is empty. Set %s or edit the config (create with 'propmeta config init')", PackDirsEnv)
	}
	for _, dir := range c.Paths.PackDirs {
		info, err := os.Stat(dir)
		if err != nil {
			return fmt.Errorf("paths.pack_dirs: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("paths.pack_dirs: %q is not a directory", dir)
		}
	}
	return nil
}

func (c *Config) validateResolve() error {
	if _, err := resource.New(c.Resolve.DefaultNamespace, c.Resolve.HomeDir); err != nil {
		return fmt.Errorf("resolve: %w", err)
	}
	return nil
}

func (c *Config) validateSchemas() error {
	if _, err := resource.Parse(c.Schemas.EmissiveConfig); err != nil {
		return fmt.Errorf("schemas.emissive_config: %w", err)
	}
	if _, err := resource.New(c.Resolve.DefaultNamespace, strings.TrimSuffix(c.Schemas.AnimationDir, "/")); err != nil {
		return fmt.Errorf("schemas.animation_dir: %w", err)
	}
	if strings.ContainsAny(c.Schemas.DefaultEmissiveSuffix, "/:") {
		return errors.New("schemas.default_emissive_suffix must not contain '/' or ':'")
	}
	if c.Schemas.RootAnimationLimit < 0 {
		return errors.New("schemas.root_animation_limit must be non-negative")
	}
	return nil
}

func (c *Config) validateOutput() error {
	switch c.Output.Format {
	case "json", "yaml":
		return nil
	default:
		return fmt.Errorf("output.format: unsupported value %q (want json or yaml)", c.Output.Format)
	}
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
