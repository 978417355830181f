package repository_test

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"propmeta/internal/repository"
	"propmeta/internal/resource"
)

func writePackFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", rel, err)
	}
}

func TestDirPackLookups(t *testing.T) {
	root := filepath.Join(t.TempDir(), "mypack")
	writePackFile(t, root, "assets/minecraft/textures/a.png", "png-a")
	writePackFile(t, root, "assets/minecraft/optifine/anim/x.properties", "to=a.png")
	writePackFile(t, root, "assets/other/b.png", "png-b")
	writePackFile(t, root, "assets/minecraft/Bad Name.png", "skip")
	writePackFile(t, root, "assets/stray.txt", "skip")
	writePackFile(t, root, "pack_anim0.properties", "to=pack.png")

	pack, err := repository.NewDirPack(root)
	if err != nil {
		t.Fatalf("NewDirPack: %v", err)
	}
	if pack.Name() != "mypack" {
		t.Fatalf("Name() = %q", pack.Name())
	}

	locs, err := pack.Locations()
	if err != nil {
		t.Fatalf("Locations: %v", err)
	}
	got := make([]string, 0, len(locs))
	for _, loc := range locs {
		got = append(got, loc.String())
	}
	want := "minecraft:optifine/anim/x.properties,minecraft:textures/a.png,other:b.png"
	if strings.Join(got, ",") != want {
		t.Fatalf("Locations = %v, want %s", got, want)
	}

	a := resource.MustNew("minecraft", "textures/a.png")
	if !pack.Has(a) || pack.Has(resource.MustNew("minecraft", "textures/missing.png")) {
		t.Fatal("Has returned wrong answer")
	}
	rc, ok := pack.Resource(a)
	if !ok {
		t.Fatal("expected resource")
	}
	if label := fmt.Sprint(rc); label != "mypack/minecraft:textures/a.png" {
		t.Fatalf("reader label = %q", label)
	}
	data, err := io.ReadAll(rc)
	if err != nil || string(data) != "png-a" {
		t.Fatalf("read = %q, %v", data, err)
	}
	if err := rc.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	root0, ok := pack.RootResource("pack_anim0.properties")
	if !ok {
		t.Fatal("expected root resource")
	}
	defer root0.Close()
	if data, _ := io.ReadAll(root0); string(data) != "to=pack.png" {
		t.Fatalf("root resource = %q", data)
	}
	if _, ok := pack.RootResource("../escape"); ok {
		t.Fatal("root resource names must not contain separators")
	}
	if _, ok := pack.RootResource("pack_anim1.properties"); ok {
		t.Fatal("missing root resource should be absent")
	}
}

func TestDirPackWithoutAssets(t *testing.T) {
	pack, err := repository.NewDirPack(t.TempDir())
	if err != nil {
		t.Fatalf("NewDirPack: %v", err)
	}
	locs, err := pack.Locations()
	if err != nil || len(locs) != 0 {
		t.Fatalf("Locations = %v, %v", locs, err)
	}
}

func TestNewDirPackRejectsFiles(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := repository.NewDirPack(file); err == nil {
		t.Fatal("expected error for non-directory pack")
	}
	if _, err := repository.NewDirPack(filepath.Join(file, "missing")); err == nil {
		t.Fatal("expected error for missing pack")
	}
}

func TestLazyReaderDefersOpen(t *testing.T) {
	root := t.TempDir()
	writePackFile(t, root, "assets/minecraft/a.png", "x")
	pack, err := repository.NewDirPack(root)
	if err != nil {
		t.Fatal(err)
	}
	rc, ok := pack.Resource(resource.MustNew("minecraft", "a.png"))
	if !ok {
		t.Fatal("expected resource")
	}
	if err := os.Remove(filepath.Join(root, "assets", "minecraft", "a.png")); err != nil {
		t.Fatal(err)
	}
	if _, err := io.ReadAll(rc); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error on first read, got %v", err)
	}
	if err := rc.Close(); err != nil {
		t.Fatalf("Close on unopened reader: %v", err)
	}
}

func TestStackPriority(t *testing.T) {
	tex := resource.MustNew("minecraft", "textures/a.png")
	meta := resource.MustNew("minecraft", "textures/a.png.mcmeta")
	top := repository.NewMemPack("top").Add(tex, []byte("top"))
	mid := repository.NewMemPack("mid").Add(meta, []byte("{}"))
	low := repository.NewMemPack("low").Add(tex, []byte("low")).Add(meta, []byte("{}"))

	stack := repository.NewStack(nil, top, mid, low)
	if pack, ok := stack.HighestPackWith(tex); !ok || pack.Name() != "top" {
		t.Fatalf("HighestPackWith(tex) = %v, %v", pack, ok)
	}
	if pack, ok := stack.HighestPackWith(meta); !ok || pack.Name() != "mid" {
		t.Fatalf("HighestPackWith(meta) = %v, %v", pack, ok)
	}
	if _, ok := stack.HighestPackWith(resource.MustNew("minecraft", "nope")); ok {
		t.Fatal("expected absent")
	}

	// The texture is overridden by top, which has no .mcmeta: lower metadata
	// must not leak through.
	if _, ok := stack.HighestPackWithFloor(meta, tex); ok {
		t.Fatal("floor should stop the search at top")
	}
	// Same pack holds both.
	sameStack := repository.NewStack(nil, low)
	if pack, ok := sameStack.HighestPackWithFloor(meta, tex); !ok || pack.Name() != "low" {
		t.Fatalf("HighestPackWithFloor same pack = %v, %v", pack, ok)
	}
	// Metadata above the texture is found.
	if pack, ok := repository.NewStack(nil, mid, low).HighestPackWithFloor(meta, tex); !ok || pack.Name() != "mid" {
		t.Fatalf("HighestPackWithFloor above = %v, %v", pack, ok)
	}
}

type brokenPack struct{ *repository.MemPack }

func (brokenPack) Locations() ([]resource.Location, error) { return nil, errors.New("unreadable") }

func TestStackListMergesAndFilters(t *testing.T) {
	a := resource.MustNew("minecraft", "optifine/anim/a.properties")
	b := resource.MustNew("minecraft", "optifine/anim/b.properties")
	other := resource.MustNew("minecraft", "textures/c.png")
	top := repository.NewMemPack("top").Add(b, nil).Add(other, nil)
	low := repository.NewMemPack("low").Add(a, nil).Add(b, nil)

	stack := repository.NewStack(nil, top, brokenPack{repository.NewMemPack("broken")}, low)
	got := stack.List(func(path string) bool {
		return strings.HasPrefix(path, "optifine/anim/") && strings.HasSuffix(path, ".properties")
	})
	if len(got) != 2 || got[0] != a || got[1] != b {
		t.Fatalf("List = %v", got)
	}
	if len(stack.Packs()) != 3 {
		t.Fatalf("Packs() = %d", len(stack.Packs()))
	}
}

func TestMemPackReaders(t *testing.T) {
	loc := resource.MustNew("minecraft", "a.png")
	pack := repository.NewMemPack("mem").Add(loc, []byte("data")).AddRoot("pack.png", []byte("root"))
	rc, ok := pack.Resource(loc)
	if !ok {
		t.Fatal("expected resource")
	}
	if fmt.Sprint(rc) != "mem/minecraft:a.png" {
		t.Fatalf("label = %q", fmt.Sprint(rc))
	}
	if data, _ := io.ReadAll(rc); string(data) != "data" {
		t.Fatalf("data = %q", data)
	}
	if _, ok := pack.RootResource("pack.png"); !ok {
		t.Fatal("expected root resource")
	}
	if _, ok := pack.Resource(resource.MustNew("minecraft", "b.png")); ok {
		t.Fatal("expected absent")
	}
}

func TestDirPackLocationOf(t *testing.T) {
	root := filepath.Join(t.TempDir(), "mypack")
	writePackFile(t, root, "assets/minecraft/optifine/anim/x.properties", "to=a.png")

	pack, err := repository.NewDirPack(root)
	if err != nil {
		t.Fatalf("NewDirPack: %v", err)
	}
	loc, ok := pack.LocationOf(filepath.Join(root, "assets", "minecraft", "optifine", "anim", "x.properties"))
	if !ok || loc.String() != "minecraft:optifine/anim/x.properties" {
		t.Fatalf("unexpected location %v %v", loc, ok)
	}
	for _, outside := range []string{
		filepath.Join(root, "pack_anim0.properties"),
		filepath.Join(root, "assets", "stray.txt"),
		filepath.Join(root, "assets", "minecraft", "Bad Name.png"),
		filepath.Join(t.TempDir(), "elsewhere.properties"),
	} {
		if loc, ok := pack.LocationOf(outside); ok {
			t.Fatalf("%s: expected no location, got %v", outside, loc)
		}
	}
}
