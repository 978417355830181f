package convert

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"propmeta/internal/combine"
	"propmeta/internal/export"
	"propmeta/internal/logging"
	"propmeta/internal/metaerr"
	"propmeta/internal/parser"
	"propmeta/internal/repository"
	"propmeta/internal/resource"
	"propmeta/internal/textutil"
	"propmeta/internal/view"
)

// RootNamespace holds documents for files at a pack root, one directory per
// pack: root:<pack-token>/pack.png.
const RootNamespace = "root"

const propertiesExt = ".properties"

// Repository is a pack stack that can enumerate its packs.
type Repository interface {
	repository.Repository
	Packs() []repository.Pack
}

// Options configures a Runner.
type Options struct {
	Parser     *parser.Parser
	Repository Repository
	Logger     *slog.Logger
	// NewRunID overrides run ID generation; defaults to uuid.NewString.
	NewRunID func() string
}

// Runner converts a pack stack.
type Runner struct {
	parser   *parser.Parser
	repo     Repository
	logger   *slog.Logger
	newRunID func() string
}

// Result is the outcome of a conversion run.
type Result struct {
	RunID     string
	Files     []resource.Location
	Documents map[resource.Location]*view.View
	Skipped   []export.Skipped
	Elapsed   time.Duration

	failures map[string]error
}

// New builds a runner.
func New(opts Options) (*Runner, error) {
	if opts.Repository == nil {
		return nil, errors.New("convert: repository is required")
	}
	p := opts.Parser
	if p == nil {
		p = parser.New(parser.Options{Logger: opts.Logger})
	}
	newRunID := opts.NewRunID
	if newRunID == nil {
		newRunID = uuid.NewString
	}
	return &Runner{
		parser:   p,
		repo:     opts.Repository,
		logger:   logging.NewComponentLogger(opts.Logger, "convert"),
		newRunID: newRunID,
	}, nil
}

// RootLocation returns the location of name inside pack's root directory in
// RootNamespace. RootLocation(pack, parser.RootTexture) is the pack icon.
func RootLocation(pack repository.Pack, name string) resource.Location {
	return resource.Location{Namespace: RootNamespace, Path: textutil.Token(pack.Name()) + "/" + name}
}

// Discover lists the metadata files the parser recognizes, sorted.
func (r *Runner) Discover() []resource.Location {
	candidates := r.repo.List(func(path string) bool { return strings.HasSuffix(path, propertiesExt) })
	out := candidates[:0]
	for _, loc := range candidates {
		if r.parser.Classify(loc) != parser.SchemaUnsupported {
			out = append(out, loc)
		}
	}
	return out
}

// Collect runs discovery, parsing, and combining, and returns the documents
// in memory. The returned error is non-nil only when ctx ends the run.
func (r *Runner) Collect(ctx context.Context) (*Result, error) {
	start := time.Now()
	runID := r.newRunID()
	ctx = logging.ContextWithRunID(ctx, runID)
	logger := logging.WithRunID(r.logger, runID)

	result := &Result{
		RunID:     runID,
		Files:     r.Discover(),
		Documents: map[resource.Location]*view.View{},
		failures:  map[string]error{},
	}
	logger.Info("conversion started",
		logging.String(logging.FieldEventType, "conversion_started"),
		logging.Int("files", len(result.Files)),
		logging.Int("packs", len(r.repo.Packs())))

	grouped := map[resource.Location]map[resource.Location]*view.View{}
	add := func(texture, file resource.Location, doc *view.View) {
		if grouped[texture] == nil {
			grouped[texture] = map[resource.Location]*view.View{}
		}
		grouped[texture][file] = doc
	}

	sampler := logging.NewProgressSampler(10)
	for i, file := range result.Files {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		views, err := r.parseFile(logging.ContextWithFile(ctx, file.String()), file)
		if err != nil {
			result.skip(file.String(), err)
			attrs := append([]logging.Attr{logging.String(logging.FieldFile, file.String())}, logging.Failure(err)...)
			logging.WarnWithContext(logger, "metadata file skipped", "metadata_file_skipped", attrs...)
		} else {
			for texture, doc := range views {
				add(texture, file, doc)
			}
		}
		if sampler.ShouldLog("parse", i+1, len(result.Files)) {
			logger.Info("parse progress",
				logging.Int("done", i+1),
				logging.Int("total", len(result.Files)))
		}
	}

	for _, pack := range r.repo.Packs() {
		texture := RootLocation(pack, parser.RootTexture)
		for name, doc := range r.parser.ParseRoot(ctx, pack) {
			add(texture, RootLocation(pack, name), doc)
		}
	}

	textures := make([]resource.Location, 0, len(grouped))
	for texture := range grouped {
		textures = append(textures, texture)
	}
	sort.Slice(textures, func(i, j int) bool { return resource.Less(textures[i], textures[j]) })
	for _, texture := range textures {
		doc, err := combine.Combine(texture, grouped[texture])
		if err != nil {
			result.skip(texture.String(), err)
			attrs := append([]logging.Attr{
				logging.String(logging.FieldTexture, texture.String()),
				logging.String(logging.FieldImpact, "texture skipped"),
			}, logging.Failure(err)...)
			logging.WarnWithContext(logger, "documents conflict", "texture_conflict", attrs...)
			continue
		}
		result.Documents[texture] = doc
	}

	result.Elapsed = time.Since(start)
	logger.Info("conversion finished",
		logging.String(logging.FieldEventType, "conversion_finished"),
		logging.Int("documents", len(result.Documents)),
		logging.Int("skipped", len(result.Skipped)),
		logging.Duration("elapsed", result.Elapsed))
	return result, nil
}

// Run collects the documents and writes them with w.
func (r *Runner) Run(ctx context.Context, w *export.Writer) (*Result, export.Manifest, error) {
	result, err := r.Collect(ctx)
	if err != nil {
		return result, export.Manifest{}, err
	}
	ctx = logging.ContextWithRunID(ctx, result.RunID)
	manifest, err := w.Write(ctx, result.Documents, result.Skipped)
	return result, manifest, err
}

// Texture returns the combined document for one texture.
func (r *Runner) Texture(ctx context.Context, texture resource.Location) (*view.View, *Result, error) {
	result, err := r.Collect(ctx)
	if err != nil {
		return nil, result, err
	}
	doc, ok := result.Documents[texture]
	if !ok {
		if err, failed := result.failures[texture.String()]; failed {
			return nil, result, err
		}
		return nil, result, metaerr.Wrap(metaerr.ErrMissingResource, texture.String(), "", "no metadata targets this texture", nil)
	}
	return doc, result, nil
}

// ParseFile parses one discovered file from the highest pack holding it.
func (r *Runner) ParseFile(ctx context.Context, file resource.Location) (map[resource.Location]*view.View, error) {
	return r.parseFile(ctx, file)
}

func (r *Runner) parseFile(ctx context.Context, file resource.Location) (map[resource.Location]*view.View, error) {
	pack, ok := r.repo.HighestPackWith(file)
	if !ok {
		return nil, metaerr.Wrap(metaerr.ErrMissingResource, file.String(), "", "no pack holds this file", nil)
	}
	rc, ok := pack.Resource(file)
	if !ok {
		return nil, metaerr.Wrap(metaerr.ErrMissingResource, file.String(), "", "pack "+pack.Name()+" lost the file", nil)
	}
	defer rc.Close()
	return r.parser.Parse(ctx, file, rc, r.repo)
}

func (r *Result) skip(subject string, err error) {
	r.Skipped = append(r.Skipped, export.Skipped{Subject: subject, Kind: metaerr.Kind(err), Reason: err.Error()})
	r.failures[subject] = err
}

// Failure returns the error that caused subject, a file or texture, to be
// skipped, or nil.
func (r *Result) Failure(subject string) error {
	return r.failures[subject]
}
