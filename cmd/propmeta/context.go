package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"propmeta/internal/config"
	"propmeta/internal/convert"
	"propmeta/internal/export"
	"propmeta/internal/logging"
	"propmeta/internal/packindex"
	"propmeta/internal/parser"
	"propmeta/internal/repository"
)

type globalFlags struct {
	config   string
	format   string
	logLevel string
}

type commandContext struct {
	flags *globalFlags

	configOnce sync.Once
	config     *config.Config
	configPath string
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(flags *globalFlags) *commandContext {
	return &commandContext{flags: flags}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, path, _, err := config.Load(strings.TrimSpace(c.flags.config))
		if err != nil {
			c.configErr = err
			return
		}
		if format := strings.TrimSpace(c.flags.format); format != "" {
			parsed, err := export.ParseFormat(format)
			if err != nil {
				c.configErr = fmt.Errorf("--format: %w", err)
				return
			}
			cfg.Output.Format = string(parsed)
		}
		if level := strings.TrimSpace(c.flags.logLevel); level != "" {
			cfg.Logging.Level = strings.ToLower(level)
			if err := cfg.Validate(); err != nil {
				c.configErr = fmt.Errorf("--log-level: %w", err)
				return
			}
		}
		c.config = cfg
		c.configPath = path
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger, c.loggerErr = logging.NewFromConfig(cfg)
	})
	return c.logger, c.loggerErr
}

// session bundles what a pack-reading command needs. close releases the
// catalog.
type session struct {
	cfg    *config.Config
	logger *slog.Logger
	index  *packindex.Index
	dirs   []*repository.DirPack
	stack  *repository.Stack
	parser *parser.Parser
	runner *convert.Runner
}

func (s *session) close() {
	if s.index != nil {
		_ = s.index.Close()
	}
}

// openSession validates pack directories, opens the catalog when one is
// configured, and builds the pack stack.
func (c *commandContext) openSession(ctx context.Context) (*session, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	if err := cfg.ValidatePacks(); err != nil {
		return nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}

	s := &session{cfg: cfg, logger: logger}
	if cfg.Paths.IndexPath != "" {
		ix, err := packindex.Open(ctx, cfg.Paths.IndexPath)
		if err != nil {
			return nil, fmt.Errorf("open pack index: %w", err)
		}
		s.index = ix
	}

	packs := make([]repository.Pack, 0, len(cfg.Paths.PackDirs))
	for _, dir := range cfg.Paths.PackDirs {
		pack, err := repository.NewDirPack(dir)
		if err != nil {
			s.close()
			return nil, err
		}
		s.dirs = append(s.dirs, pack)
		if s.index != nil {
			packs = append(packs, s.index.Wrap(ctx, pack))
		} else {
			packs = append(packs, pack)
		}
	}
	s.stack = repository.NewStack(logger, packs...)

	s.parser, err = parser.NewFromConfig(cfg, logger)
	if err != nil {
		s.close()
		return nil, err
	}
	s.runner, err = convert.New(convert.Options{Parser: s.parser, Repository: s.stack, Logger: logger})
	if err != nil {
		s.close()
		return nil, err
	}
	return s, nil
}

func (c *commandContext) encoder() (*export.Encoder, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	format, err := export.ParseFormat(cfg.Output.Format)
	if err != nil {
		return nil, err
	}
	return export.NewEncoder(format, nil), nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
