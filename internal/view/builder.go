package view

import "io"

// Builder accumulates entries for a View. A Builder is not safe for
// concurrent use; the View it produces is.
type Builder struct {
	keys   []string
	values []Value
	index  map[string]int
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{index: map[string]int{}}
}

// Set stores value under key. Replacing an existing key keeps its position.
// It panics on a zero Value.
func (b *Builder) Set(key string, value Value) *Builder {
	if value.kind == 0 {
		panic("view: value for key " + key + " has no variant")
	}
	if i, ok := b.index[key]; ok {
		b.values[i] = value
		return b
	}
	b.index[key] = len(b.keys)
	b.keys = append(b.keys, key)
	b.values = append(b.values, value)
	return b
}

// SetString stores a string value.
func (b *Builder) SetString(key, value string) *Builder {
	return b.Set(key, NewString(value))
}

// SetBlob stores a byte source.
func (b *Builder) SetBlob(key string, r io.Reader) *Builder {
	return b.Set(key, NewBlob(r))
}

// SetView stores a nested view.
func (b *Builder) SetView(key string, v *View) *Builder {
	return b.Set(key, NewSubView(v))
}

// Has reports whether key has been set.
func (b *Builder) Has(key string) bool {
	_, ok := b.index[key]
	return ok
}

// Len returns the number of keys set so far.
func (b *Builder) Len() int {
	return len(b.keys)
}

// Build returns an immutable snapshot. The builder may keep being used.
func (b *Builder) Build() *View {
	v := &View{
		keys:   make([]string, len(b.keys)),
		values: make([]Value, len(b.values)),
		index:  make(map[string]int, len(b.index)),
	}
	copy(v.keys, b.keys)
	copy(v.values, b.values)
	for k, i := range b.index {
		v.index[k] = i
	}
	return v
}
