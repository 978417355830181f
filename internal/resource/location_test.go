package resource_test

import (
	"errors"
	"slices"
	"testing"

	"propmeta/internal/metaerr"
	"propmeta/internal/resource"
)

func TestParseDefaultsNamespace(t *testing.T) {
	loc, err := resource.Parse("textures/entity/creeper.png")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if loc.Namespace != resource.DefaultNamespace || loc.Path != "textures/entity/creeper.png" {
		t.Fatalf("unexpected location: %+v", loc)
	}
	if loc.String() != "minecraft:textures/entity/creeper.png" {
		t.Fatalf("unexpected string form: %q", loc.String())
	}
}

func TestParseSplitsAtFirstSeparator(t *testing.T) {
	loc, err := resource.Parse("moremcmeta:textures/dummy.png")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if loc.Namespace != "moremcmeta" || loc.Path != "textures/dummy.png" {
		t.Fatalf("unexpected location: %+v", loc)
	}

	if _, err := resource.Parse("a:b:c"); !errors.Is(err, metaerr.ErrInvalidPath) {
		t.Fatalf("expected second separator in path to be rejected, got %v", err)
	}
}

func TestNewRejectsInvalidCharacters(t *testing.T) {
	cases := []struct {
		namespace string
		path      string
	}{
		{"minecraft", `textures\entity\creeper.png`},
		{"minecraft", "optifine/anim/%eyes.png"},
		{"minecraft", "Textures/upper.png"},
		{"name space", "x.png"},
		{"ns/slash", "x.png"},
	}
	for _, tc := range cases {
		if _, err := resource.New(tc.namespace, tc.path); !errors.Is(err, metaerr.ErrInvalidPath) {
			t.Fatalf("New(%q, %q) expected ErrInvalidPath, got %v", tc.namespace, tc.path, err)
		}
	}
}

func TestNewAllowsEmptyPath(t *testing.T) {
	loc, err := resource.New("", "")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if loc.Namespace != resource.DefaultNamespace || loc.Path != "" {
		t.Fatalf("unexpected location: %+v", loc)
	}
}

func TestCompareOrdersByNamespaceThenPath(t *testing.T) {
	locs := []resource.Location{
		resource.MustNew("minecraft", "z2.png"),
		resource.MustNew("alpha", "z9.png"),
		resource.MustNew("minecraft", "z1.png"),
	}
	slices.SortFunc(locs, resource.Compare)
	want := []string{"alpha:z9.png", "minecraft:z1.png", "minecraft:z2.png"}
	for i, loc := range locs {
		if loc.String() != want[i] {
			t.Fatalf("position %d: got %s want %s", i, loc, want[i])
		}
	}
	if !resource.Less(locs[0], locs[1]) || resource.Less(locs[1], locs[1]) {
		t.Fatal("unexpected Less results")
	}
}

func TestMustNewPanicsOnInvalid(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	resource.MustNew("minecraft", "BAD")
}
