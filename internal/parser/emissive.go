package parser

import (
	"io"
	"log/slog"
	"strings"

	"propmeta/internal/logging"
	"propmeta/internal/mcmetajson"
	"propmeta/internal/properties"
	"propmeta/internal/repository"
	"propmeta/internal/resource"
	"propmeta/internal/view"
)

// KeySuffix names the overlay file suffix in the emissive config.
const KeySuffix = "suffix.emissive"

const (
	pngExt    = ".png"
	mcmetaExt = ".mcmeta"
)

func (p *Parser) parseEmissive(loc resource.Location, props *properties.Properties, repo repository.Repository, logger *slog.Logger) (map[resource.Location]*view.View, error) {
	suffix := strings.TrimSpace(props.GetOrDefault(KeySuffix, p.emissiveSuffix))
	if suffix == "" {
		suffix = p.emissiveSuffix
	}
	overlaySuffix := suffix + pngExt

	out := map[resource.Location]*view.View{}
	for _, overlay := range repo.List(func(path string) bool { return strings.HasSuffix(path, overlaySuffix) }) {
		texture, err := resource.New(overlay.Namespace, strings.TrimSuffix(overlay.Path, overlaySuffix)+pngExt)
		if err != nil {
			continue
		}
		section := view.NewBuilder().
			SetString(KeyTexture, overlay.String()).
			SetString(KeyEmissive, "true").
			Build()
		out[texture] = p.withDefaultMetadata(texture, wrapSection(SectionOverlay, section), repo, logger)
	}
	return out, nil
}

// withDefaultMetadata layers the texture's .mcmeta under current when the
// file lives in the pack that supplies the texture or above it. Unreadable or
// invalid JSON is ignored.
func (p *Parser) withDefaultMetadata(texture resource.Location, current *view.View, repo repository.Repository, logger *slog.Logger) *view.View {
	mcmeta := resource.Location{Namespace: texture.Namespace, Path: texture.Path + mcmetaExt}
	pack, ok := repo.HighestPackWithFloor(mcmeta, texture)
	if !ok {
		return current
	}
	rc, ok := pack.Resource(mcmeta)
	if !ok {
		return current
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		logger.Debug("default metadata unreadable",
			logging.String(logging.FieldTexture, texture.String()),
			logging.String(logging.FieldPack, pack.Name()),
			logging.Error(err))
		return current
	}
	defaults, err := mcmetajson.Parse(mcmeta.String(), data)
	if err != nil {
		logger.Debug("default metadata ignored",
			logging.String(logging.FieldTexture, texture.String()),
			logging.String(logging.FieldPack, pack.Name()),
			logging.Error(err))
		return current
	}
	return view.Combined(current, defaults)
}
