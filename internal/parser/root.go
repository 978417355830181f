package parser

import (
	"context"
	"fmt"

	"propmeta/internal/logging"
	"propmeta/internal/properties"
	"propmeta/internal/repository"
	"propmeta/internal/view"
)

// RootTexture is the pack icon targeted by root animations.
const RootTexture = "pack.png"

// RootAnimationName returns the metadata file name for root animation n.
func RootAnimationName(n int) string {
	return fmt.Sprintf("pack_anim%d.properties", n)
}

// RootAnimationImage returns the image file paired with root animation n.
func RootAnimationImage(n int) string {
	return fmt.Sprintf("pack_anim%d.png", n)
}

// ParseRoot reads pack_anim0.properties, pack_anim1.properties, ... from the
// pack root. Numbering must be contiguous: enumeration stops at the first
// missing file, and at the first unreadable one, which is logged. Results
// are keyed by metadata file name and all target RootTexture.
func (p *Parser) ParseRoot(ctx context.Context, pack repository.Pack) map[string]*view.View {
	logger := logging.WithContext(ctx, p.logger).With(logging.String(logging.FieldPack, pack.Name()))
	out := map[string]*view.View{}
	for n := 0; n < p.rootLimit; n++ {
		name := RootAnimationName(n)
		rc, ok := pack.RootResource(name)
		if !ok {
			break
		}
		props, err := properties.Load(rc)
		_ = rc.Close()
		if err != nil {
			logging.ErrorWithContext(logger, "bad root animation file", "root_animation_invalid",
				logging.String(logging.FieldFile, name),
				logging.Error(err),
				logging.String(logging.FieldImpact, "later root animations in this pack are skipped"))
			break
		}

		part := copyProperties(props)
		if image, ok := pack.RootResource(RootAnimationImage(n)); ok {
			part.SetBlob(KeyTexture, image)
		}
		out[name] = animationDocument(part, props)
	}
	return out
}
