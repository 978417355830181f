package resource

import (
	"cmp"
	"fmt"
	"strings"

	"propmeta/internal/metaerr"
)

// DefaultNamespace is applied when an identifier does not name one.
const DefaultNamespace = "minecraft"

// Separator splits the namespace from the path in the string form.
const Separator = ":"

// Location identifies a resource by namespace and path.
type Location struct {
	Namespace string
	Path      string
}

// New validates namespace and path and returns the location. An empty
// namespace is replaced by DefaultNamespace.
func New(namespace, path string) (Location, error) {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	if !validNamespace(namespace) {
		return Location{}, metaerr.Wrap(metaerr.ErrInvalidPath, "", "",
			fmt.Sprintf("non [a-z0-9_.-] character in namespace of location: %s:%s", namespace, path), nil)
	}
	if !validPath(path) {
		return Location{}, metaerr.Wrap(metaerr.ErrInvalidPath, "", "",
			fmt.Sprintf("non [a-z0-9/._-] character in path of location: %s:%s", namespace, path), nil)
	}
	return Location{Namespace: namespace, Path: path}, nil
}

// MustNew is New for identifiers known to be valid at compile time. It panics
// on invalid input.
func MustNew(namespace, path string) Location {
	loc, err := New(namespace, path)
	if err != nil {
		panic(err)
	}
	return loc
}

// Parse reads the "namespace:path" form. Text without a separator is placed in
// the default namespace.
func Parse(value string) (Location, error) {
	namespace, path, found := strings.Cut(value, Separator)
	if !found {
		return New(DefaultNamespace, value)
	}
	return New(namespace, path)
}

// String renders the location as namespace:path.
func (l Location) String() string {
	return l.Namespace + Separator + l.Path
}

// IsZero reports whether l is the zero Location.
func (l Location) IsZero() bool {
	return l.Namespace == "" && l.Path == ""
}

// WithPath returns a location in the same namespace with a different path.
func (l Location) WithPath(path string) (Location, error) {
	return New(l.Namespace, path)
}

// Compare orders locations by namespace, then path.
func Compare(a, b Location) int {
	if c := cmp.Compare(a.Namespace, b.Namespace); c != 0 {
		return c
	}
	return cmp.Compare(a.Path, b.Path)
}

// Less reports whether a sorts before b.
func Less(a, b Location) bool {
	return Compare(a, b) < 0
}

func validNamespace(value string) bool {
	for i := 0; i < len(value); i++ {
		c := value[i]
		if !(c == '_' || c == '-' || c == '.' || (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9')) {
			return false
		}
	}
	return true
}

func validPath(value string) bool {
	for i := 0; i < len(value); i++ {
		c := value[i]
		if !(c == '_' || c == '-' || c == '.' || c == '/' || (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9')) {
			return false
		}
	}
	return true
}
