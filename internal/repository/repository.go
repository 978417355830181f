package repository

import (
	"io"

	"propmeta/internal/resource"
)

// Repository answers resource questions across every active pack.
type Repository interface {
	// List returns every resource, in any pack, whose path satisfies match.
	List(match func(path string) bool) []resource.Location
	// HighestPackWith returns the highest-priority pack containing loc.
	HighestPackWith(loc resource.Location) (Pack, bool)
	// HighestPackWithFloor is HighestPackWith, but gives up once it reaches a
	// pack that contains floor without containing loc.
	HighestPackWithFloor(loc, floor resource.Location) (Pack, bool)
}

// Pack is a single resource pack.
type Pack interface {
	Name() string
	// Locations enumerates every namespaced resource in the pack.
	Locations() ([]resource.Location, error)
	Has(loc resource.Location) bool
	// Resource opens loc. The returned reader defers opening until first read.
	Resource(loc resource.Location) (io.ReadCloser, bool)
	// RootResource opens a file stored at the pack root, outside any namespace.
	RootResource(name string) (io.ReadCloser, bool)
}
