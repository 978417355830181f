package testsupport

import (
	"strings"

	"propmeta/internal/repository"
	"propmeta/internal/resource"
)

// Loc parses "namespace:path" or a bare path in the default namespace and
// panics on invalid input.
func Loc(value string) resource.Location {
	loc, err := resource.Parse(value)
	if err != nil {
		panic(err)
	}
	return loc
}

// MemPack builds an in-memory pack holding the given locations. Contents are
// the location strings themselves.
func MemPack(name string, locations ...string) *repository.MemPack {
	pack := repository.NewMemPack(name)
	for _, value := range locations {
		loc := Loc(value)
		pack.Add(loc, []byte(loc.String()))
	}
	return pack
}

// Stack builds a repository from packs, highest priority first.
func Stack(packs ...repository.Pack) *repository.Stack {
	return repository.NewStack(nil, packs...)
}

// PropertiesReader returns a reader over the joined lines.
func PropertiesReader(lines ...string) *strings.Reader {
	return strings.NewReader(Properties(lines...))
}
