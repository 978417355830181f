package convert_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"

	"propmeta/internal/convert"
	"propmeta/internal/export"
	"propmeta/internal/metaerr"
	"propmeta/internal/parser"
	"propmeta/internal/repository"
	"propmeta/internal/testsupport"
)

func fixedRunID() string { return "run-fixed" }

func newRunner(t *testing.T, packs ...repository.Pack) *convert.Runner {
	t.Helper()
	r, err := convert.New(convert.Options{
		Repository: testsupport.Stack(packs...),
		NewRunID:   fixedRunID,
	})
	if err != nil {
		t.Fatalf("new runner: %v", err)
	}
	return r
}

func fixturePack() *repository.MemPack {
	return repository.NewMemPack("Top Pack").
		Add(testsupport.Loc("optifine/emissive.properties"), []byte("suffix.emissive=_e")).
		Add(testsupport.Loc("textures/entity/creeper.png"), []byte("creeper")).
		Add(testsupport.Loc("textures/entity/creeper_e.png"), []byte("glow")).
		Add(testsupport.Loc("optifine/anim/eyes.png"), []byte("eyes")).
		Add(testsupport.Loc("optifine/anim/a.properties"), []byte("from=./eyes.png\nto=textures/entity/creeper.png\nw=8")).
		Add(testsupport.Loc("optifine/anim/b.properties"), []byte("to=textures/entity/creeper.png\nw=4")).
		Add(testsupport.Loc("optifine/anim/broken.properties"), []byte("x=1")).
		Add(testsupport.Loc("optifine/readme.properties"), []byte("x=1")).
		AddRoot(parser.RootAnimationName(0), []byte("x=0\nduration.0=3")).
		AddRoot(parser.RootAnimationImage(0), []byte("icon"))
}

func TestDiscoverFiltersUnsupportedFiles(t *testing.T) {
	files := newRunner(t, fixturePack()).Discover()
	var got []string
	for _, f := range files {
		got = append(got, f.String())
	}
	want := []string{
		"minecraft:optifine/anim/a.properties",
		"minecraft:optifine/anim/b.properties",
		"minecraft:optifine/anim/broken.properties",
		"minecraft:optifine/emissive.properties",
	}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestCollectCombinesPerTexture(t *testing.T) {
	pack := fixturePack()
	result, err := newRunner(t, pack).Collect(context.Background())
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if result.RunID != "run-fixed" {
		t.Fatalf("unexpected run id %q", result.RunID)
	}

	creeper, ok := result.Documents[testsupport.Loc("textures/entity/creeper.png")]
	if !ok {
		t.Fatalf("expected creeper document, got %v", result.Documents)
	}
	if keys := creeper.Keys(); len(keys) != 2 || keys[0] != parser.SectionAnimation || keys[1] != parser.SectionOverlay {
		t.Fatalf("unexpected sections %v", keys)
	}
	anim, _ := creeper.SubView(parser.SectionAnimation)
	parts, _ := anim.SubView(parser.KeyParts)
	if parts.Size() != 2 {
		t.Fatalf("expected two parts, got %d", parts.Size())
	}
	first, _ := parts.SubView("0")
	second, _ := parts.SubView("1")
	if w, _ := first.IntegerValue("width"); w != 8 {
		t.Fatalf("expected a.properties first, got width %d", w)
	}
	if w, _ := second.IntegerValue("width"); w != 4 {
		t.Fatalf("expected b.properties second, got width %d", w)
	}

	icon, ok := result.Documents[convert.RootLocation(pack, parser.RootTexture)]
	if !ok {
		t.Fatalf("expected root animation document")
	}
	if !icon.HasKey(parser.SectionAnimation) {
		t.Fatalf("root document missing animation: %v", icon.Keys())
	}
	if got := convert.RootLocation(pack, parser.RootTexture).String(); got != "root:top_pack/pack.png" {
		t.Fatalf("unexpected root location %s", got)
	}

	if len(result.Skipped) != 1 || result.Skipped[0].Subject != "minecraft:optifine/anim/broken.properties" {
		t.Fatalf("expected broken.properties skipped, got %+v", result.Skipped)
	}
	if !errors.Is(result.Failure("minecraft:optifine/anim/broken.properties"), metaerr.ErrMissingRequiredKey) {
		t.Fatalf("expected missing key failure, got %v", result.Failure("minecraft:optifine/anim/broken.properties"))
	}
	if result.Skipped[0].Kind != "missing_required_key" {
		t.Fatalf("unexpected skip kind %q", result.Skipped[0].Kind)
	}
}

func TestCollectGeneratesRunID(t *testing.T) {
	r, err := convert.New(convert.Options{Repository: testsupport.Stack(fixturePack())})
	if err != nil {
		t.Fatalf("new runner: %v", err)
	}
	result, err := r.Collect(context.Background())
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if _, err := uuid.Parse(result.RunID); err != nil {
		t.Fatalf("expected uuid run id, got %q", result.RunID)
	}
}

func TestTextureLooksUpOneDocument(t *testing.T) {
	pack := repository.NewMemPack("p").
		Add(testsupport.Loc("optifine/anim/a.properties"), []byte("to=textures/a.png")).
		Add(testsupport.Loc("optifine/emissive.properties"), []byte("")).
		Add(testsupport.Loc("textures/a_e.png"), []byte("glow")).
		Add(testsupport.Loc("textures/a.png.mcmeta"), []byte(`{"animation":{"frametime":2}}`)).
		Add(testsupport.Loc("textures/a.png"), []byte("png"))
	r := newRunner(t, pack)

	doc, _, err := r.Texture(context.Background(), testsupport.Loc("textures/a.png"))
	if err != nil {
		t.Fatalf("texture: %v", err)
	}
	if keys := doc.Keys(); len(keys) != 2 || keys[0] != parser.SectionAnimation || keys[1] != parser.SectionOverlay {
		t.Fatalf("unexpected sections %v", keys)
	}
	anim, _ := doc.SubView(parser.SectionAnimation)
	if !anim.HasKey(parser.KeyParts) || anim.HasKey("frametime") {
		t.Fatalf("expected the parts animation to win, got %v", anim.Keys())
	}

	if _, _, err := r.Texture(context.Background(), testsupport.Loc("textures/none.png")); !errors.Is(err, metaerr.ErrMissingResource) {
		t.Fatalf("expected missing resource, got %v", err)
	}
}

func TestCollectHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := newRunner(t, fixturePack()).Collect(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation, got %v", err)
	}
}

func TestRunWritesDirectoryPacks(t *testing.T) {
	packsDir := t.TempDir()
	root := testsupport.WritePack(t, packsDir, "vanilla", map[string]string{
		"assets/minecraft/optifine/anim/eyes.properties": testsupport.Properties("from=./eyes.png", "to=textures/entity/creeper.png", "tile.0=1", "tile.1=0"),
		"assets/minecraft/optifine/anim/eyes.png":        "eyes",
		"assets/minecraft/textures/entity/creeper.png":   "creeper",
	})
	pack, err := repository.NewDirPack(root)
	if err != nil {
		t.Fatalf("dir pack: %v", err)
	}

	cfg := testsupport.NewConfig(t, testsupport.WithPackDirs(root))
	w, err := export.NewWriterFromConfig(cfg, nil)
	if err != nil {
		t.Fatalf("writer: %v", err)
	}
	result, manifest, err := newRunner(t, pack).Run(context.Background(), w)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(result.Documents) != 1 || len(manifest.Entries) != 1 {
		t.Fatalf("expected one document, got %d/%d", len(result.Documents), len(manifest.Entries))
	}
	if manifest.RunID != "run-fixed" {
		t.Fatalf("expected manifest run id, got %q", manifest.RunID)
	}

	data, err := os.ReadFile(filepath.Join(cfg.Paths.OutputDir, "minecraft", "textures", "entity", "creeper.png.json"))
	if err != nil {
		t.Fatalf("read document: %v", err)
	}
	for _, want := range []string{`"frames"`, `"index": "1"`, `"texture": "vanilla/minecraft:optifine/anim/eyes.png"`} {
		if !strings.Contains(string(data), want) {
			t.Fatalf("document missing %s:\n%s", want, data)
		}
	}
}

func TestNewRequiresRepository(t *testing.T) {
	if _, err := convert.New(convert.Options{}); err == nil {
		t.Fatal("expected error without repository")
	}
}
