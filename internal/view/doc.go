// Package view implements the ordered, immutable document model handed to
// texture consumers.
//
// A View maps string keys to tagged Values (string, byte blob, or nested
// View). Entries keep their insertion order and can be addressed either by
// key or by 0-based position. Numeric and boolean projections are derived
// from the string variant on demand; nothing but the string itself is stored.
//
// Views are only constructed through Builder (or Combined) and never change
// afterwards, so they may be shared freely between goroutines. Blob values
// wrap single-pass readers: the View hands the same reader to every caller
// and does not guard against repeated reads.
package view
