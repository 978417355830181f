// Package frames rebuilds the per-frame override list of an animation from
// sparse "duration.N" and "tile.N" properties.
//
// The list is dense: every position from 0 to the highest index mentioned is
// emitted, with defaults filling the gaps, so consumers can address frames by
// position without gaps shifting later entries.
package frames
