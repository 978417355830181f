package mcmetajson

import (
	"errors"
	"strings"
	"testing"

	"propmeta/internal/metaerr"
)

func TestParseSortsKeysAndKeepsText(t *testing.T) {
	doc := `{"animation": {"interpolate": true, "frametime": 2, "frames": [0, {"index": 1, "time": 5}], "unused": null}, "a": "x"}`
	v, err := Parse("a.png.mcmeta", []byte(doc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := strings.Join(v.Keys(), ","); got != "a,animation" {
		t.Fatalf("top-level keys = %s", got)
	}
	anim, ok := v.SubView("animation")
	if !ok {
		t.Fatal("expected animation sub-view")
	}
	if got := strings.Join(anim.Keys(), ","); got != "frames,frametime,interpolate" {
		t.Fatalf("animation keys = %s", got)
	}
	if ft, ok := anim.StringValue("frametime"); !ok || ft != "2" {
		t.Fatalf("frametime = %q, %v", ft, ok)
	}
	if interp, ok := anim.BooleanValue("interpolate"); !ok || !interp {
		t.Fatalf("interpolate = %v, %v", interp, ok)
	}
	frames, ok := anim.SubView("frames")
	if !ok || frames.Size() != 2 {
		t.Fatalf("frames = %v", frames)
	}
	if first, ok := frames.IntegerValueAt(0); !ok || first != 0 {
		t.Fatalf("frames[0] = %d, %v", first, ok)
	}
	second, ok := frames.SubViewAt(1)
	if !ok {
		t.Fatal("frames[1] should be a sub-view")
	}
	if tm, _ := second.IntegerValue("time"); tm != 5 {
		t.Fatalf("frames[1].time = %d", tm)
	}
}

func TestParseRejectsInvalidJSON(t *testing.T) {
	for _, doc := range []string{`{"animation":`, `[1,2]`, `"text"`, ``} {
		if _, err := Parse("x.mcmeta", []byte(doc)); !errors.Is(err, metaerr.ErrMalformedFile) {
			t.Fatalf("Parse(%q) error = %v, want ErrMalformedFile", doc, err)
		}
	}
}
