package export

import (
	"fmt"
	"strconv"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// ManifestName is the run summary written into the output directory.
const ManifestName = "manifest.json"

// Entry describes one written document.
type Entry struct {
	Texture  string
	File     string
	SHA256   string
	Sections []string
	Blobs    []string
}

// Skipped records a texture or file that produced no document.
type Skipped struct {
	Subject string
	Kind    string
	Reason  string
}

// Manifest summarizes a conversion run.
type Manifest struct {
	RunID       string
	GeneratedAt time.Time
	Format      Format
	Entries     []Entry
	Skipped     []Skipped
}

// Encode renders the manifest as indented JSON.
func (m Manifest) Encode() ([]byte, error) {
	data := []byte(`{}`)
	var err error
	set := func(path string, value any) {
		if err != nil {
			return
		}
		data, err = sjson.SetBytes(data, path, value)
	}

	set("run_id", m.RunID)
	set("generated_at", m.GeneratedAt.UTC().Format(time.RFC3339))
	set("format", string(m.Format))
	set("texture_count", len(m.Entries))
	set("textures", []any{})
	for i, entry := range m.Entries {
		prefix := "textures." + strconv.Itoa(i)
		set(prefix+".texture", entry.Texture)
		set(prefix+".file", entry.File)
		set(prefix+".sha256", entry.SHA256)
		set(prefix+".sections", entry.Sections)
		if len(entry.Blobs) > 0 {
			set(prefix+".blobs", entry.Blobs)
		}
	}
	set("skipped", []any{})
	for i, skip := range m.Skipped {
		prefix := "skipped." + strconv.Itoa(i)
		set(prefix+".subject", skip.Subject)
		set(prefix+".kind", skip.Kind)
		set(prefix+".reason", skip.Reason)
	}
	if err != nil {
		return nil, fmt.Errorf("build manifest: %w", err)
	}
	return []byte(gjson.GetBytes(data, "@pretty").Raw), nil
}

// ReadManifest extracts the texture list and run ID from an encoded manifest.
func ReadManifest(data []byte) (runID string, textures []string, err error) {
	if !gjson.ValidBytes(data) {
		return "", nil, fmt.Errorf("manifest is not valid JSON")
	}
	doc := gjson.ParseBytes(data)
	for _, item := range doc.Get("textures.#.texture").Array() {
		textures = append(textures, item.String())
	}
	return doc.Get("run_id").String(), textures, nil
}
