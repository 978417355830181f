// Package packindex keeps a SQLite catalog of the resources each pack holds.
//
// Walking a large pack directory on every run is slow, so the catalog stores
// one row per resource and Wrap returns a Pack whose Locations come from the
// catalog. Rebuild rescans a pack and replaces its rows in one transaction.
// The schema is applied through embedded, versioned migrations.
package packindex
