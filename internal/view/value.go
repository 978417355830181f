package view

import "io"

// Kind discriminates the variant held by a Value.
type Kind uint8

const (
	KindString Kind = iota + 1
	KindBlob
	KindView
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindBlob:
		return "blob"
	case KindView:
		return "view"
	default:
		return "invalid"
	}
}

// Value holds exactly one of a string, a byte blob, or a nested View.
type Value struct {
	kind Kind
	str  string
	blob io.Reader
	sub  *View
}

// NewString wraps a string.
func NewString(s string) Value {
	return Value{kind: KindString, str: s}
}

// NewBlob wraps a readable byte source. It panics if r is nil.
func NewBlob(r io.Reader) Value {
	if r == nil {
		panic("view: blob value cannot be nil")
	}
	return Value{kind: KindBlob, blob: r}
}

// NewSubView wraps a nested view. It panics if v is nil.
func NewSubView(v *View) Value {
	if v == nil {
		panic("view: sub view cannot be nil")
	}
	return Value{kind: KindView, sub: v}
}

// Kind reports which variant is populated. The zero Value reports an invalid
// kind and is never stored in a View.
func (v Value) Kind() Kind {
	return v.kind
}

// Text returns the string variant.
func (v Value) Text() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.str, true
}

// Blob returns the blob variant.
func (v Value) Blob() (io.Reader, bool) {
	if v.kind != KindBlob {
		return nil, false
	}
	return v.blob, true
}

// View returns the nested view variant.
func (v Value) View() (*View, bool) {
	if v.kind != KindView {
		return nil, false
	}
	return v.sub, true
}
