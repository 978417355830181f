package parser

import (
	"fmt"

	"propmeta/internal/frames"
	"propmeta/internal/metaerr"
	"propmeta/internal/properties"
	"propmeta/internal/repository"
	"propmeta/internal/resource"
	"propmeta/internal/view"
)

// Animation keys read from a snippet.
const (
	KeyFrom = "from"
	KeyTo   = "to"
)

// renames maps shorthand keys to their output names. Explicit shorthand
// values replace any literal property with the output name.
var renames = []struct{ from, to string }{
	{"w", "width"},
	{"h", "height"},
	{"duration", "frameTime"},
}

func (p *Parser) parseAnimation(loc resource.Location, props *properties.Properties, repo repository.Repository) (map[resource.Location]*view.View, error) {
	toText, ok := props.Get(KeyTo)
	if !ok {
		return nil, metaerr.Wrap(metaerr.ErrMissingRequiredKey, loc.String(), KeyTo, "missing required key", nil)
	}
	to, err := p.resolver.Resolve(toText, loc)
	if err != nil {
		return nil, fmt.Errorf("key %s: %w", KeyTo, err)
	}

	part := copyProperties(props)
	if fromText, ok := props.Get(KeyFrom); ok {
		from, err := p.resolver.Resolve(fromText, loc)
		if err != nil {
			return nil, fmt.Errorf("key %s: %w", KeyFrom, err)
		}
		pack, ok := repo.HighestPackWith(from)
		if !ok {
			return nil, metaerr.Wrap(metaerr.ErrMissingResource, loc.String(), KeyFrom, "unable to find texture "+from.String(), nil)
		}
		rc, ok := pack.Resource(from)
		if !ok {
			return nil, metaerr.Wrap(metaerr.ErrMissingResource, loc.String(), KeyFrom,
				"unable to find texture that should exist in pack "+pack.Name()+": "+from.String(), nil)
		}
		part.SetBlob(KeyTexture, rc)
	}

	return map[resource.Location]*view.View{to: animationDocument(part, props)}, nil
}

// animationDocument applies renames and the frame list to part and wraps it
// as animation.parts."0".
func animationDocument(part *view.Builder, props *properties.Properties) *view.View {
	for _, r := range renames {
		if value, ok := props.Get(r.from); ok {
			part.SetString(r.to, value)
		}
	}
	if list, ok := frames.Build(props); ok {
		part.SetView(KeyFrames, list)
	}
	parts := view.NewBuilder().SetView("0", part.Build()).Build()
	return wrapSection(SectionAnimation, wrapSection(KeyParts, parts))
}
