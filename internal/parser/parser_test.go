package parser_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"propmeta/internal/metaerr"
	"propmeta/internal/parser"
	"propmeta/internal/repository"
	"propmeta/internal/resource"
	"propmeta/internal/testsupport"
	"propmeta/internal/view"
)

var (
	emissiveFile = testsupport.Loc("optifine/emissive.properties")
	creeperEyes  = testsupport.Loc("optifine/anim/creepereyes.properties")
	creeper      = testsupport.Loc("textures/entity/creeper.png")
)

type errReader struct{}

func (errReader) Read([]byte) (int, error) { return 0, errors.New("stream closed") }

func newParser() *parser.Parser {
	return parser.New(parser.Options{})
}

func parse(t *testing.T, loc resource.Location, repo repository.Repository, lines ...string) map[resource.Location]*view.View {
	t.Helper()
	out, err := newParser().Parse(context.Background(), loc, testsupport.PropertiesReader(lines...), repo)
	if err != nil {
		t.Fatalf("parse %s: %v", loc, err)
	}
	return out
}

func parseErr(t *testing.T, loc resource.Location, repo repository.Repository, lines ...string) error {
	t.Helper()
	out, err := newParser().Parse(context.Background(), loc, testsupport.PropertiesReader(lines...), repo)
	if err == nil {
		t.Fatalf("expected error, got %d views", len(out))
	}
	return err
}

func animationPart(t *testing.T, views map[resource.Location]*view.View, texture resource.Location) *view.View {
	t.Helper()
	doc, ok := views[texture]
	if !ok {
		t.Fatalf("no view for %s", texture)
	}
	anim, ok := doc.SubView(parser.SectionAnimation)
	if !ok {
		t.Fatalf("%s: no animation section", texture)
	}
	parts, ok := anim.SubView(parser.KeyParts)
	if !ok || parts.Size() != 1 {
		t.Fatalf("%s: expected one part", texture)
	}
	part, _ := parts.SubViewAt(0)
	return part
}

func requireKind(t *testing.T, err, marker error) {
	t.Helper()
	if !errors.Is(err, marker) {
		t.Fatalf("expected %v, got %v", marker, err)
	}
}

func TestClassify(t *testing.T) {
	p := newParser()
	cases := map[string]parser.Schema{
		"optifine/emissive.properties":        parser.SchemaEmissive,
		"other:optifine/emissive.properties":  parser.SchemaUnsupported,
		"optifine/anim/a.properties":          parser.SchemaAnimation,
		"optifine/anim/nested/b.properties":   parser.SchemaAnimation,
		"optifine/other.properties":           parser.SchemaUnsupported,
		"optifine/animation/stray.properties": parser.SchemaUnsupported,
	}
	for value, want := range cases {
		if got := p.Classify(testsupport.Loc(value)); got != want {
			t.Fatalf("%s: expected %s, got %s", value, want, got)
		}
	}
}

func TestNewFromConfigHonoursSchemas(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Schemas.EmissiveConfig = "glow.properties"
	cfg.Schemas.AnimationDir = "moving/"
	cfg.Resolve.DefaultNamespace = "pack"

	p, err := parser.NewFromConfig(cfg, nil)
	if err != nil {
		t.Fatalf("new from config: %v", err)
	}
	if got := p.Classify(resource.MustNew("pack", "glow.properties")); got != parser.SchemaEmissive {
		t.Fatalf("expected emissive config in default namespace, got %s", got)
	}
	if got := p.Classify(testsupport.Loc("moving/a.properties")); got != parser.SchemaAnimation {
		t.Fatalf("expected animation dir override, got %s", got)
	}
}

func TestEmissiveOverlays(t *testing.T) {
	repo := testsupport.Stack(
		testsupport.MemPack("top",
			"textures/entity/zombie.png",
			"textures/entity/zombie_e.png",
			"textures/entity/witch_f.png",
			"textures/entity/dolphin_e.jpg",
			"textures/entity/bee_e.png",
		),
		testsupport.MemPack("base",
			"other:textures/block/lamp_e.png",
		),
	)

	views := parse(t, emissiveFile, repo, "suffix.emissive=_e")

	want := map[string]string{
		"minecraft:textures/entity/zombie.png": "minecraft:textures/entity/zombie_e.png",
		"minecraft:textures/entity/bee.png":    "minecraft:textures/entity/bee_e.png",
		"other:textures/block/lamp.png":        "other:textures/block/lamp_e.png",
	}
	if len(views) != len(want) {
		t.Fatalf("expected %d views, got %d", len(want), len(views))
	}
	for texture, overlay := range want {
		doc, ok := views[testsupport.Loc(texture)]
		if !ok {
			t.Fatalf("missing view for %s", texture)
		}
		section, ok := doc.SubView(parser.SectionOverlay)
		if !ok {
			t.Fatalf("%s: missing overlay section", texture)
		}
		if got, _ := section.StringValue(parser.KeyTexture); got != overlay {
			t.Fatalf("%s: expected overlay %s, got %s", texture, overlay, got)
		}
		if emissive, ok := section.BooleanValue(parser.KeyEmissive); !ok || !emissive {
			t.Fatalf("%s: expected emissive=true", texture)
		}
	}
}

func TestEmissiveSuffixIsTrimmed(t *testing.T) {
	repo := testsupport.Stack(testsupport.MemPack("top", "textures/a_glow.png"))
	views := parse(t, emissiveFile, repo, "suffix.emissive = \t_glow  ")
	if _, ok := views[testsupport.Loc("textures/a.png")]; !ok || len(views) != 1 {
		t.Fatalf("expected one view for textures/a.png, got %v", views)
	}
}

func TestEmissiveDefaultSuffix(t *testing.T) {
	repo := testsupport.Stack(testsupport.MemPack("top", "textures/a_e.png", "textures/b_glow.png"))
	views := parse(t, emissiveFile, repo)
	if _, ok := views[testsupport.Loc("textures/a.png")]; !ok || len(views) != 1 {
		t.Fatalf("expected default suffix _e, got %v", views)
	}
}

func TestEmissiveStripsOnlyTrailingSuffix(t *testing.T) {
	repo := testsupport.Stack(testsupport.MemPack("top", "textures/a_e.png_e.png"))
	views := parse(t, emissiveFile, repo, "suffix.emissive=_e")
	if _, ok := views[testsupport.Loc("textures/a_e.png.png")]; !ok {
		t.Fatalf("expected base texture with inner suffix kept, got %v", views)
	}
}

func TestEmissiveMergesDefaultMetadata(t *testing.T) {
	mcmeta := `{"animation":{"frametime":4,"interpolate":true}}`
	top := repository.NewMemPack("top").
		Add(testsupport.Loc("textures/a.png"), []byte("png")).
		Add(testsupport.Loc("textures/a_e.png"), []byte("png")).
		Add(testsupport.Loc("textures/a.png.mcmeta"), []byte(mcmeta))

	views := parse(t, emissiveFile, testsupport.Stack(top))
	doc := views[testsupport.Loc("textures/a.png")]
	if got := doc.Keys(); len(got) != 2 || got[0] != parser.SectionOverlay || got[1] != parser.SectionAnimation {
		t.Fatalf("expected overlay then animation, got %v", got)
	}
	anim, _ := doc.SubView(parser.SectionAnimation)
	if frametime, ok := anim.IntegerValue("frametime"); !ok || frametime != 4 {
		t.Fatalf("expected frametime 4, got %d %v", frametime, ok)
	}
}

func TestEmissiveIgnoresMetadataBelowTexture(t *testing.T) {
	top := repository.NewMemPack("top").
		Add(testsupport.Loc("textures/a.png"), []byte("png")).
		Add(testsupport.Loc("textures/a_e.png"), []byte("png"))
	base := repository.NewMemPack("base").
		Add(testsupport.Loc("textures/a.png.mcmeta"), []byte(`{"animation":{}}`))

	views := parse(t, emissiveFile, testsupport.Stack(top, base))
	doc := views[testsupport.Loc("textures/a.png")]
	if doc.HasKey(parser.SectionAnimation) {
		t.Fatalf("metadata from a lower pack should be ignored, got %v", doc.Keys())
	}
}

func TestEmissiveIgnoresInvalidMetadata(t *testing.T) {
	top := repository.NewMemPack("top").
		Add(testsupport.Loc("textures/a.png"), []byte("png")).
		Add(testsupport.Loc("textures/a_e.png"), []byte("png")).
		Add(testsupport.Loc("textures/a.png.mcmeta"), []byte(`{"animation":`))

	views := parse(t, emissiveFile, testsupport.Stack(top))
	doc := views[testsupport.Loc("textures/a.png")]
	if doc.Size() != 1 || !doc.HasKey(parser.SectionOverlay) {
		t.Fatalf("expected overlay only, got %v", doc.Keys())
	}
}

func TestAnimationAllProperties(t *testing.T) {
	repo := testsupport.Stack(testsupport.MemPack("top",
		"textures/entity/creeper.png",
		"optifine/anim/eyes.png",
		"optifine/anim/creepereyes.properties",
	))
	views := parse(t, creeperEyes, repo,
		"from=optifine/anim/eyes.png",
		"to=textures/entity/creeper.png",
		"y=20",
		"h=30",
		"x=0",
		"w=10",
		"tile.0=0",
		"tile.4=2",
		"tile.3=1",
		"tile.1=3",
		"tile.2=2",
		"duration.0=5",
		"duration.2=15",
		"duration.1=10",
		"duration.4=20",
		"duration.3=5",
		"skip=5",
		"interpolate=true",
		"smoothAlpha=true",
	)
	if len(views) != 1 {
		t.Fatalf("expected one view, got %d", len(views))
	}
	part := animationPart(t, views, creeper)

	blob, ok := part.BlobValue(parser.KeyTexture)
	if !ok {
		t.Fatal("expected texture blob")
	}
	data, err := io.ReadAll(blob)
	if err != nil {
		t.Fatalf("read blob: %v", err)
	}
	if string(data) != "minecraft:optifine/anim/eyes.png" {
		t.Fatalf("unexpected blob contents %q", data)
	}

	ints := map[string]int{"x": 0, "y": 20, "width": 10, "height": 30, "skip": 5}
	for key, want := range ints {
		if got, ok := part.IntegerValue(key); !ok || got != want {
			t.Fatalf("%s: expected %d, got %d %v", key, want, got, ok)
		}
	}
	for _, key := range []string{"interpolate", "smoothAlpha"} {
		if got, ok := part.BooleanValue(key); !ok || !got {
			t.Fatalf("%s: expected true", key)
		}
	}
	if to, _ := part.StringValue("to"); to != "textures/entity/creeper.png" {
		t.Fatalf("expected raw to property, got %q", to)
	}

	list, ok := part.SubView(parser.KeyFrames)
	if !ok || list.Size() != 5 {
		t.Fatalf("expected 5 frames")
	}
	wantIndex := []int{0, 3, 2, 1, 2}
	wantTime := []int{5, 10, 15, 5, 20}
	for i := range wantIndex {
		frame, _ := list.SubViewAt(i)
		if got, _ := frame.IntegerValue("index"); got != wantIndex[i] {
			t.Fatalf("frame %d: expected index %d, got %d", i, wantIndex[i], got)
		}
		if got, _ := frame.IntegerValue("time"); got != wantTime[i] {
			t.Fatalf("frame %d: expected time %d, got %d", i, wantTime[i], got)
		}
	}
}

func TestAnimationShorthandOverridesLiteral(t *testing.T) {
	views := parse(t, creeperEyes, testsupport.Stack(),
		"to=textures/entity/creeper.png",
		"w=10",
		"width=27",
		"duration=3",
		"frameTime=9",
	)
	part := animationPart(t, views, creeper)
	if got, _ := part.IntegerValue("width"); got != 10 {
		t.Fatalf("expected width 10, got %d", got)
	}
	if got, _ := part.IntegerValue("frameTime"); got != 3 {
		t.Fatalf("expected frameTime 3, got %d", got)
	}
	if got, _ := part.IntegerValue("w"); got != 10 {
		t.Fatalf("expected raw w kept, got %d", got)
	}
}

func TestAnimationOnlyTarget(t *testing.T) {
	views := parse(t, creeperEyes, testsupport.Stack(), "to=textures/entity/creeper.png")
	part := animationPart(t, views, creeper)
	if part.Size() != 1 || !part.HasKey("to") {
		t.Fatalf("expected only the to property, got %v", part.Keys())
	}
	if part.HasKey(parser.KeyFrames) || part.HasKey(parser.KeyTexture) {
		t.Fatalf("unexpected keys %v", part.Keys())
	}
}

func TestAnimationWhitespaceSeparators(t *testing.T) {
	views := parse(t, creeperEyes, testsupport.Stack(),
		"to textures/entity/creeper.png",
		"w : 8",
		"interpolate",
	)
	part := animationPart(t, views, creeper)
	if got, _ := part.IntegerValue("width"); got != 8 {
		t.Fatalf("expected width 8, got %d", got)
	}
	if got, ok := part.StringValue("interpolate"); !ok || got != "" {
		t.Fatalf("expected bare interpolate key with empty value, got %q (present=%v)", got, ok)
	}
}

func TestAnimationPathResolution(t *testing.T) {
	cases := []struct {
		to   string
		want string
	}{
		{"../textures/entity/creeper.png", "minecraft:optifine/textures/entity/creeper.png"},
		{"./eyes.png", "minecraft:optifine/anim/eyes.png"},
		{"~/anim/eyes.png", "minecraft:optifine/anim/eyes.png"},
		{"custom:textures/a.png", "custom:textures/a.png"},
		{":textures/b.png", "minecraft:textures/b.png"},
		{"textures/c.png", "minecraft:textures/c.png"},
	}
	for _, tc := range cases {
		views := parse(t, creeperEyes, testsupport.Stack(), "to="+tc.to)
		if _, ok := views[testsupport.Loc(tc.want)]; !ok || len(views) != 1 {
			t.Fatalf("to=%s: expected %s, got %v", tc.to, tc.want, views)
		}
	}
}

func TestAnimationEmptyFromPath(t *testing.T) {
	empty := resource.Location{Namespace: "minecraft", Path: ""}
	top := repository.NewMemPack("top").Add(empty, []byte("root"))
	views := parse(t, creeperEyes, testsupport.Stack(top), "from=:", "to=textures/entity/creeper.png")
	part := animationPart(t, views, creeper)
	if !part.HasKey(parser.KeyTexture) {
		t.Fatal("expected texture blob from empty path")
	}
}

func TestAnimationMissingTo(t *testing.T) {
	err := parseErr(t, creeperEyes, testsupport.Stack(), "from=optifine/anim/eyes.png", "x=0")
	requireKind(t, err, metaerr.ErrMissingRequiredKey)
}

func TestAnimationInvalidTo(t *testing.T) {
	err := parseErr(t, creeperEyes, testsupport.Stack(), `to=textures\\entity\\creeper.png`)
	requireKind(t, err, metaerr.ErrInvalidPath)
	if !strings.Contains(err.Error(), creeperEyes.String()) {
		t.Fatalf("expected declaring file in error, got %v", err)
	}
}

func TestAnimationEscapingPath(t *testing.T) {
	err := parseErr(t, creeperEyes, testsupport.Stack(), "to=../../../creeper.png")
	requireKind(t, err, metaerr.ErrInvalidPath)
}

func TestAnimationMissingFrom(t *testing.T) {
	repo := testsupport.Stack(testsupport.MemPack("top", "textures/entity/creeper.png"))
	err := parseErr(t, creeperEyes, repo, "from=optifine/anim/eyes.png", "to=textures/entity/creeper.png")
	requireKind(t, err, metaerr.ErrMissingResource)
}

func TestUnsupportedFile(t *testing.T) {
	err := parseErr(t, testsupport.Loc("optifine/other.properties"), testsupport.Stack(), "to=textures/a.png")
	requireKind(t, err, metaerr.ErrUnsupportedFormat)
}

func TestUnreadableStream(t *testing.T) {
	_, err := newParser().Parse(context.Background(), creeperEyes, errReader{}, testsupport.Stack())
	requireKind(t, err, metaerr.ErrMalformedFile)
}

func TestParseRootStopsAtFirstInvalidFile(t *testing.T) {
	pack := repository.NewMemPack("top").
		AddRoot(parser.RootAnimationName(0), []byte("from=ignored\nx=1\nduration.0=2")).
		AddRoot(parser.RootAnimationImage(0), []byte("image0")).
		AddRoot(parser.RootAnimationName(1), []byte("y=4")).
		AddRoot(parser.RootAnimationName(2), []byte(`x=\u00zz`)).
		AddRoot(parser.RootAnimationName(3), []byte("x=3"))

	views := newParser().ParseRoot(context.Background(), pack)
	if len(views) != 2 {
		t.Fatalf("expected 2 root animations, got %d", len(views))
	}

	first := animationPart(t, map[resource.Location]*view.View{creeper: views[parser.RootAnimationName(0)]}, creeper)
	blob, ok := first.BlobValue(parser.KeyTexture)
	if !ok {
		t.Fatal("expected image blob for pack_anim0")
	}
	if data, _ := io.ReadAll(blob); string(data) != "image0" {
		t.Fatalf("unexpected image %q", data)
	}
	if !first.HasKey(parser.KeyFrames) {
		t.Fatal("expected frames for pack_anim0")
	}

	second := animationPart(t, map[resource.Location]*view.View{creeper: views[parser.RootAnimationName(1)]}, creeper)
	if second.HasKey(parser.KeyTexture) {
		t.Fatal("pack_anim1 has no image")
	}
}

func TestParseRootEmptyPack(t *testing.T) {
	views := newParser().ParseRoot(context.Background(), repository.NewMemPack("empty"))
	if len(views) != 0 {
		t.Fatalf("expected no root animations, got %d", len(views))
	}
}
