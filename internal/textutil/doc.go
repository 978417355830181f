// Package textutil converts free-form names into tokens that are valid
// resource path segments.
package textutil
