// Package parser turns properties metadata files into views keyed by the
// texture they describe.
//
// Two schemas are recognized by the declaring file's location: the emissive
// configuration (one overlay document per matching *_e.png texture) and
// animation snippets under the animation directory (one animation part for
// the texture named by "to"). ParseRoot reads the pack_animN.properties files
// stored at a pack root, which animate pack.png.
package parser
