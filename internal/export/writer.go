package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"propmeta/internal/config"
	"propmeta/internal/fileutil"
	"propmeta/internal/logging"
	"propmeta/internal/resource"
	"propmeta/internal/view"
)

const (
	// LockName is the lock file held in the output directory during a run.
	LockName = ".propmeta.lock"
	// BlobDir holds copied blob bytes when CopyBlobs is set.
	BlobDir = "blobs"
	blobExt = ".png"
)

// ErrOutputLocked reports another run holding the output directory.
var ErrOutputLocked = errors.New("output directory is locked by another propmeta run")

// WriterOptions configures a Writer.
type WriterOptions struct {
	Dir       string
	Format    Format
	CopyBlobs bool
	Logger    *slog.Logger
	// Now stamps the manifest; defaults to time.Now.
	Now func() time.Time
}

// Writer writes a conversion run into a directory.
type Writer struct {
	dir       string
	format    Format
	copyBlobs bool
	logger    *slog.Logger
	now       func() time.Time
}

// NewWriter validates opts and returns a writer. The directory is created on
// first Write.
func NewWriter(opts WriterOptions) (*Writer, error) {
	if strings.TrimSpace(opts.Dir) == "" {
		return nil, errors.New("export: output directory is required")
	}
	format, err := ParseFormat(string(opts.Format))
	if err != nil {
		return nil, err
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Writer{
		dir:       opts.Dir,
		format:    format,
		copyBlobs: opts.CopyBlobs,
		logger:    logging.NewComponentLogger(opts.Logger, "export"),
		now:       now,
	}, nil
}

// NewWriterFromConfig builds a writer from the [paths] and [output] sections.
func NewWriterFromConfig(cfg *config.Config, logger *slog.Logger) (*Writer, error) {
	return NewWriter(WriterOptions{
		Dir:       cfg.Paths.OutputDir,
		Format:    Format(cfg.Output.Format),
		CopyBlobs: cfg.Output.CopyBlobs,
		Logger:    logger,
	})
}

// Dir returns the output directory.
func (w *Writer) Dir() string {
	return w.dir
}

// DocumentPath returns the file, relative to the output directory, that
// holds the document for texture.
func (w *Writer) DocumentPath(texture resource.Location) string {
	return filepath.Join(texture.Namespace, filepath.FromSlash(texture.Path)) + w.format.Extension()
}

// Write renders every document and the manifest. Textures are written in
// ascending order; skipped lists inputs that produced no document and is
// copied into the manifest.
func (w *Writer) Write(ctx context.Context, docs map[resource.Location]*view.View, skipped []Skipped) (Manifest, error) {
	logger := logging.WithContext(ctx, w.logger)
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return Manifest{}, fmt.Errorf("create output directory: %w", err)
	}

	lock := flock.New(filepath.Join(w.dir, LockName))
	ok, err := lock.TryLock()
	if err != nil {
		return Manifest{}, fmt.Errorf("acquire output lock: %w", err)
	}
	if !ok {
		return Manifest{}, fmt.Errorf("%w: %s", ErrOutputLocked, w.dir)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			logger.Warn("output lock release failed",
				logging.String(logging.FieldEventType, "output_unlock_failed"),
				logging.Error(err),
				logging.String(logging.FieldImpact, "stale lock file left in output directory"))
		}
	}()

	textures := make([]resource.Location, 0, len(docs))
	for texture := range docs {
		textures = append(textures, texture)
	}
	sort.Slice(textures, func(i, j int) bool { return resource.Less(textures[i], textures[j]) })

	runID, _ := logging.RunIDFromContext(ctx)
	manifest := Manifest{
		RunID:       runID,
		GeneratedAt: w.now(),
		Format:      w.format,
		Skipped:     append([]Skipped(nil), skipped...),
	}
	for _, texture := range textures {
		if err := ctx.Err(); err != nil {
			return manifest, err
		}
		entry, err := w.writeDocument(texture, docs[texture])
		if err != nil {
			return manifest, err
		}
		logger.Debug("document written",
			logging.String(logging.FieldTexture, texture.String()),
			logging.String("path", entry.File))
		manifest.Entries = append(manifest.Entries, entry)
	}

	data, err := manifest.Encode()
	if err != nil {
		return manifest, err
	}
	if err := fileutil.WriteFileAtomic(filepath.Join(w.dir, ManifestName), data, 0o644); err != nil {
		return manifest, fmt.Errorf("write manifest: %w", err)
	}
	logger.Info("export complete",
		logging.String(logging.FieldEventType, "export_complete"),
		logging.Int("documents", len(manifest.Entries)),
		logging.Int("skipped", len(manifest.Skipped)),
		logging.String("dir", w.dir))
	return manifest, nil
}

func (w *Writer) writeDocument(texture resource.Location, doc *view.View) (Entry, error) {
	rel := w.DocumentPath(texture)
	entry := Entry{Texture: texture.String(), File: filepath.ToSlash(rel), Sections: doc.Keys()}

	blob := BlobLabel
	if w.copyBlobs {
		blob = func(path []string, r io.Reader) (string, error) {
			if c, ok := r.(io.Closer); ok {
				defer c.Close()
			}
			name := w.blobPath(texture, path)
			if _, _, err := fileutil.CopyStreamVerified(r, filepath.Join(w.dir, name)); err != nil {
				return "", err
			}
			ref := filepath.ToSlash(name)
			entry.Blobs = append(entry.Blobs, ref)
			return ref, nil
		}
	}

	data, err := NewEncoder(w.format, blob).Encode(doc)
	if err != nil {
		return Entry{}, fmt.Errorf("encode %s: %w", texture, err)
	}
	if err := fileutil.WriteFileAtomic(filepath.Join(w.dir, rel), data, 0o644); err != nil {
		return Entry{}, fmt.Errorf("write %s: %w", texture, err)
	}
	entry.SHA256 = fileutil.SHA256(data)
	return entry, nil
}

// blobPath names the copied bytes for the blob at path inside the document
// for texture, e.g. blobs/minecraft/textures/a/animation.parts.0.texture.png.
func (w *Writer) blobPath(texture resource.Location, path []string) string {
	base := strings.TrimSuffix(texture.Path, filepath.Ext(texture.Path))
	return filepath.Join(BlobDir, texture.Namespace, filepath.FromSlash(base), strings.Join(path, ".")+blobExt)
}
