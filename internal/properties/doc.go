// Package properties decodes line-oriented key=value files the way the
// texture packs that ship them expect: ISO-8859-1 bytes, "#" and "!" comment
// lines, backslash line continuations, and backslash escapes including
// \uXXXX.
//
// A key ends at its first unescaped '=', ':' or whitespace, so "to x.png",
// "to=x.png" and "to : x.png" are equivalent and a bare "interpolate" is a key
// with an empty value. The result is an insertion-ordered Properties value.
package properties
