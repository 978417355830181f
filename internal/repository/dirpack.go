package repository

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"propmeta/internal/resource"
)

// AssetsDir is the pack subdirectory that holds namespaced resources.
const AssetsDir = "assets"

// DirPack serves a pack stored as a plain directory.
type DirPack struct {
	root string
	name string
}

// NewDirPack returns a pack rooted at dir. The directory must exist.
func NewDirPack(dir string) (*DirPack, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve pack dir %q: %w", dir, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("inspect pack dir %q: %w", abs, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("pack %q is not a directory", abs)
	}
	return &DirPack{root: abs, name: filepath.Base(abs)}, nil
}

// Name returns the pack directory's base name.
func (p *DirPack) Name() string {
	return p.name
}

// Root returns the absolute pack directory.
func (p *DirPack) Root() string {
	return p.root
}

// Locations walks assets/ and returns every file whose path forms a valid
// location. Files with invalid names are skipped.
func (p *DirPack) Locations() ([]resource.Location, error) {
	assets := filepath.Join(p.root, AssetsDir)
	var out []resource.Location
	err := filepath.WalkDir(assets, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && path == assets {
				return filepath.SkipDir
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(assets, path)
		if err != nil {
			return err
		}
		namespace, rest, found := strings.Cut(filepath.ToSlash(rel), "/")
		if !found {
			return nil
		}
		loc, err := resource.New(namespace, rest)
		if err != nil {
			return nil
		}
		out = append(out, loc)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk pack %s: %w", p.name, err)
	}
	sort.Slice(out, func(i, j int) bool { return resource.Less(out[i], out[j]) })
	return out, nil
}

// LocationOf maps a file under assets/<namespace>/ to its location. It
// reports false for files outside the pack's assets or with invalid names.
func (p *DirPack) LocationOf(file string) (resource.Location, bool) {
	abs, err := filepath.Abs(file)
	if err != nil {
		return resource.Location{}, false
	}
	rel, err := filepath.Rel(filepath.Join(p.root, AssetsDir), abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return resource.Location{}, false
	}
	namespace, path, found := strings.Cut(filepath.ToSlash(rel), "/")
	if !found {
		return resource.Location{}, false
	}
	loc, err := resource.New(namespace, path)
	if err != nil {
		return resource.Location{}, false
	}
	return loc, true
}

// Has reports whether the resource file exists.
func (p *DirPack) Has(loc resource.Location) bool {
	info, err := os.Stat(p.filePath(loc))
	return err == nil && !info.IsDir()
}

// Resource returns a lazily opened reader for loc.
func (p *DirPack) Resource(loc resource.Location) (io.ReadCloser, bool) {
	if !p.Has(loc) {
		return nil, false
	}
	return &lazyFile{path: p.filePath(loc), label: p.name + "/" + loc.String()}, true
}

// RootResource returns a lazily opened reader for a file at the pack root.
func (p *DirPack) RootResource(name string) (io.ReadCloser, bool) {
	if name == "" || strings.ContainsAny(name, `/\`) {
		return nil, false
	}
	path := filepath.Join(p.root, name)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return nil, false
	}
	return &lazyFile{path: path, label: p.name + "/" + name}, true
}

func (p *DirPack) filePath(loc resource.Location) string {
	return filepath.Join(p.root, AssetsDir, loc.Namespace, filepath.FromSlash(loc.Path))
}

// lazyFile opens its file on the first Read.
type lazyFile struct {
	path  string
	label string

	once sync.Once
	file *os.File
	err  error
}

func (f *lazyFile) Read(p []byte) (int, error) {
	f.once.Do(func() {
		f.file, f.err = os.Open(f.path)
	})
	if f.err != nil {
		return 0, f.err
	}
	return f.file.Read(p)
}

func (f *lazyFile) Close() error {
	if f.file == nil {
		return nil
	}
	return f.file.Close()
}

// String names the pack and resource behind the reader.
func (f *lazyFile) String() string {
	return f.label
}
