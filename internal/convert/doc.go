// Package convert drives a batch conversion across a pack stack.
//
// A run discovers every metadata file the parser recognizes, parses each one,
// groups the resulting documents by texture, and combines each group. Root
// animations of every pack are added under the "root" namespace. Failures are
// isolated: a file that cannot be parsed, or a texture whose documents
// conflict, is logged and recorded as skipped while the run continues.
package convert
