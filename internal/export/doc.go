// Package export renders combined texture documents as JSON or YAML and
// writes a conversion run to an output directory.
//
// Documents keep their key order in both formats; every scalar is emitted as
// a string, matching the view model. Blob values are rendered by a BlobFunc:
// by default a label naming the source, or a path to a copied file when the
// writer runs with CopyBlobs. Each run writes manifest.json last and holds a
// file lock on the output directory while it works.
package export
