// Package resource implements the two-part namespace:path identifier used to
// address textures and metadata files inside resource packs.
//
// Location values are comparable and can be used as map keys. New is the
// single authority on identifier validity; every other package constructs
// locations through it so invalid characters surface as ErrInvalidPath.
package resource
