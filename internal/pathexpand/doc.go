// Package pathexpand turns the shorthand texture paths written in OptiFine
// style properties files into fully qualified resource locations.
//
// Supported forms, checked in order: an explicit "namespace:path", a "~"
// prefix standing for the configured home directory, "./" and "../" relative
// to the directory of the declaring file, and a bare path in the default
// namespace. Resolution is pure; identifier validity is decided by
// resource.New.
package pathexpand
