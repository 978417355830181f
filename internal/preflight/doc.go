// Package preflight checks the filesystem paths a conversion depends on.
//
// "propmeta config validate" prints every Result. Pack directories must be
// readable; the output directory and the catalog's directory must be
// writable, or creatable under a writable ancestor.
package preflight
