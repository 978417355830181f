// Package combine merges the per-file documents produced for one texture
// into a single document.
//
// Animation parts from every file are concatenated under animation.parts in
// ascending file order; every other top-level section may be declared by at
// most one file.
package combine
