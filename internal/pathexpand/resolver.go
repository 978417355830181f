package pathexpand

import (
	"strings"

	"propmeta/internal/metaerr"
	"propmeta/internal/resource"
)

const (
	homeMarker    = "~"
	currentMarker = "./"
	parentMarker  = "../"
)

// DefaultHome is the directory substituted for the home marker.
const DefaultHome = "optifine"

// Resolver expands path tokens. The zero value uses resource.DefaultNamespace
// and DefaultHome.
type Resolver struct {
	DefaultNamespace string
	Home             string
}

// New returns a resolver with the given defaults; empty arguments fall back to
// the package defaults.
func New(defaultNamespace, home string) Resolver {
	return Resolver{DefaultNamespace: defaultNamespace, Home: home}
}

// Resolve expands token, which was read from the file at declaring.
func (r Resolver) Resolve(token string, declaring resource.Location) (resource.Location, error) {
	namespace := r.namespace()
	var path string

	switch {
	case strings.Contains(token, resource.Separator):
		var ns string
		ns, path, _ = strings.Cut(token, resource.Separator)
		if ns != "" {
			namespace = ns
		}
	case strings.HasPrefix(token, homeMarker):
		path = r.home() + strings.TrimPrefix(token, homeMarker)
	case strings.HasPrefix(token, currentMarker), strings.HasPrefix(token, parentMarker):
		namespace = declaring.Namespace
		path = parentDir(declaring.Path) + token
	default:
		path = token
	}

	collapsed, ok := collapse(path)
	if !ok {
		return resource.Location{}, metaerr.Wrap(metaerr.ErrInvalidPath, declaring.String(), "",
			"path "+token+" escapes the pack root", nil)
	}

	loc, err := resource.New(namespace, collapsed)
	if err != nil {
		return resource.Location{}, metaerr.Wrap(metaerr.ErrInvalidPath, declaring.String(), "", "resolve "+token, err)
	}
	return loc, nil
}

func (r Resolver) namespace() string {
	if r.DefaultNamespace == "" {
		return resource.DefaultNamespace
	}
	return r.DefaultNamespace
}

func (r Resolver) home() string {
	if r.Home == "" {
		return DefaultHome
	}
	return strings.TrimSuffix(r.Home, "/")
}

// parentDir returns the directory of path including its trailing slash, or ""
// for a file at the root.
func parentDir(path string) string {
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		return path[:i+1]
	}
	return ""
}

// collapse removes "." and ".." segments and empty segments. It reports false
// when ".." would climb above the first segment. A trailing slash is kept so
// directory tokens stay recognisable, and the empty path stays empty.
func collapse(path string) (string, bool) {
	if path == "" {
		return "", true
	}
	segments := strings.Split(path, "/")
	out := make([]string, 0, len(segments))
	for _, segment := range segments {
		switch segment {
		case "", ".":
			continue
		case "..":
			if len(out) == 0 {
				return "", false
			}
			out = out[:len(out)-1]
		default:
			out = append(out, segment)
		}
	}
	result := strings.Join(out, "/")
	if strings.HasSuffix(path, "/") && result != "" {
		result += "/"
	}
	return result, true
}
