package parser

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"propmeta/internal/config"
	"propmeta/internal/logging"
	"propmeta/internal/metaerr"
	"propmeta/internal/pathexpand"
	"propmeta/internal/properties"
	"propmeta/internal/repository"
	"propmeta/internal/resource"
	"propmeta/internal/view"
)

// Section and key names shared with the combiner and exporters.
const (
	SectionAnimation = "animation"
	SectionOverlay   = "overlay"
	KeyParts         = "parts"
	KeyTexture       = "texture"
	KeyFrames        = "frames"
	KeyEmissive      = "emissive"
)

// Options configures a Parser. Zero values fall back to the defaults used by
// config.Default.
type Options struct {
	Resolver              pathexpand.Resolver
	EmissiveConfig        resource.Location
	AnimationDir          string
	DefaultEmissiveSuffix string
	RootAnimationLimit    int
	Logger                *slog.Logger
}

// Parser classifies and parses metadata files. It holds no mutable state.
type Parser struct {
	resolver       pathexpand.Resolver
	emissiveConfig resource.Location
	animationDir   string
	emissiveSuffix string
	rootLimit      int
	logger         *slog.Logger
}

// New constructs a parser.
func New(opts Options) *Parser {
	defaults := config.Default()
	p := &Parser{
		resolver:       opts.Resolver,
		emissiveConfig: opts.EmissiveConfig,
		animationDir:   opts.AnimationDir,
		emissiveSuffix: opts.DefaultEmissiveSuffix,
		rootLimit:      opts.RootAnimationLimit,
		logger:         logging.NewComponentLogger(opts.Logger, "parser"),
	}
	if p.resolver == (pathexpand.Resolver{}) {
		p.resolver = pathexpand.New(defaults.Resolve.DefaultNamespace, defaults.Resolve.HomeDir)
	}
	if p.emissiveConfig.IsZero() {
		p.emissiveConfig = resource.MustNew(defaults.Resolve.DefaultNamespace, defaults.Schemas.EmissiveConfig)
	}
	if p.animationDir == "" {
		p.animationDir = defaults.Schemas.AnimationDir
	}
	if p.emissiveSuffix == "" {
		p.emissiveSuffix = defaults.Schemas.DefaultEmissiveSuffix
	}
	if p.rootLimit <= 0 {
		p.rootLimit = defaults.Schemas.RootAnimationLimit
	}
	return p
}

// NewFromConfig builds a parser from the [resolve] and [schemas] sections.
func NewFromConfig(cfg *config.Config, logger *slog.Logger) (*Parser, error) {
	if cfg == nil {
		return New(Options{Logger: logger}), nil
	}
	emissive, err := resource.Parse(cfg.Schemas.EmissiveConfig)
	if err != nil {
		return nil, fmt.Errorf("schemas.emissive_config: %w", err)
	}
	if !strings.Contains(cfg.Schemas.EmissiveConfig, resource.Separator) {
		emissive.Namespace = cfg.Resolve.DefaultNamespace
	}
	return New(Options{
		Resolver:              pathexpand.New(cfg.Resolve.DefaultNamespace, cfg.Resolve.HomeDir),
		EmissiveConfig:        emissive,
		AnimationDir:          cfg.Schemas.AnimationDir,
		DefaultEmissiveSuffix: cfg.Schemas.DefaultEmissiveSuffix,
		RootAnimationLimit:    cfg.Schemas.RootAnimationLimit,
		Logger:                logger,
	}), nil
}

// Schema identifies which reader handles a file.
type Schema int

const (
	SchemaUnsupported Schema = iota
	SchemaEmissive
	SchemaAnimation
)

func (s Schema) String() string {
	switch s {
	case SchemaEmissive:
		return "emissive"
	case SchemaAnimation:
		return "animation"
	default:
		return "unsupported"
	}
}

// Classify reports the schema for a metadata file at loc.
func (p *Parser) Classify(loc resource.Location) Schema {
	switch {
	case loc == p.emissiveConfig:
		return SchemaEmissive
	case strings.HasPrefix(loc.Path, p.animationDir):
		return SchemaAnimation
	default:
		return SchemaUnsupported
	}
}

// Parse reads the metadata file at loc from r and returns one view per
// texture it describes.
func (p *Parser) Parse(ctx context.Context, loc resource.Location, r io.Reader, repo repository.Repository) (map[resource.Location]*view.View, error) {
	logger := logging.WithContext(ctx, p.logger).With(logging.String(logging.FieldFile, loc.String()))

	props, err := properties.Load(r)
	if err != nil {
		return nil, metaerr.Wrap(metaerr.ErrMalformedFile, loc.String(), "", "unable to load properties file", err)
	}

	switch schema := p.Classify(loc); schema {
	case SchemaEmissive:
		out, err := p.parseEmissive(loc, props, repo, logger)
		if err != nil {
			return nil, err
		}
		logger.Debug("emissive config parsed", logging.Int("textures", len(out)))
		return out, nil
	case SchemaAnimation:
		return p.parseAnimation(loc, props, repo)
	default:
		return nil, metaerr.Wrap(metaerr.ErrUnsupportedFormat, loc.String(), "",
			"support is not implemented for this properties file", nil)
	}
}

// copyProperties returns a builder holding every property as a string, in
// file order.
func copyProperties(props *properties.Properties) *view.Builder {
	b := view.NewBuilder()
	for _, key := range props.Keys() {
		value, _ := props.Get(key)
		b.SetString(key, value)
	}
	return b
}

func wrapSection(name string, section *view.View) *view.View {
	return view.NewBuilder().SetView(name, section).Build()
}
