// Package repository models the resource-lookup service the metadata parser
// queries: an ordered stack of resource packs, highest priority first, that
// can list resources by path, report which pack holds a resource, and open
// resources lazily.
//
// DirPack serves an unpacked pack directory (assets/<namespace>/<path> plus
// root files such as pack.png); MemPack serves in-memory fixtures. Stack
// combines packs and implements Repository.
package repository
