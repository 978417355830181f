// Package config loads, normalizes, and validates propmeta configuration.
//
// It supplies defaults, expands user paths (including tilde shortcuts), reads
// TOML files, and honours the PROPMETA_PACK_DIRS environment override. The
// Config type centralizes the pack stack, output location, resolver and
// schema settings, and logging choices so the CLI discovers everything in one
// pass.
package config
