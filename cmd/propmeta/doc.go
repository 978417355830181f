// Command propmeta converts OptiFine-style properties metadata in unpacked
// resource packs into structured texture documents.
//
// Subcommands:
//
//	parse <file>        parse one metadata file and print its documents
//	convert             convert every pack into output_dir with a manifest
//	inspect <texture>   show the combined document for one texture
//	packs               list configured packs and catalog state
//	index rebuild       rescan packs into the SQLite catalog
//	config init|show|validate
package main
