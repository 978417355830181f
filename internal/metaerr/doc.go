// Package metaerr defines the failure taxonomy shared by the metadata parser,
// path resolver, combiner, and document model.
//
// Every failure is tagged with one of the exported sentinel markers so callers
// can branch with errors.Is while still receiving a message that names the
// offending file and key. The batch driver uses the markers to decide whether
// to skip a file or abort a texture.
package metaerr
