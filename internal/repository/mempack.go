package repository

import (
	"bytes"
	"io"
	"sort"

	"propmeta/internal/resource"
)

// MemPack is a pack held in memory.
type MemPack struct {
	name  string
	files map[resource.Location][]byte
	root  map[string][]byte
}

// NewMemPack returns an empty in-memory pack.
func NewMemPack(name string) *MemPack {
	return &MemPack{
		name:  name,
		files: map[resource.Location][]byte{},
		root:  map[string][]byte{},
	}
}

// Add stores data under loc and returns the pack for chaining.
func (p *MemPack) Add(loc resource.Location, data []byte) *MemPack {
	p.files[loc] = data
	return p
}

// AddRoot stores data at the pack root.
func (p *MemPack) AddRoot(name string, data []byte) *MemPack {
	p.root[name] = data
	return p
}

func (p *MemPack) Name() string { return p.name }

func (p *MemPack) Locations() ([]resource.Location, error) {
	out := make([]resource.Location, 0, len(p.files))
	for loc := range p.files {
		out = append(out, loc)
	}
	sort.Slice(out, func(i, j int) bool { return resource.Less(out[i], out[j]) })
	return out, nil
}

func (p *MemPack) Has(loc resource.Location) bool {
	_, ok := p.files[loc]
	return ok
}

func (p *MemPack) Resource(loc resource.Location) (io.ReadCloser, bool) {
	data, ok := p.files[loc]
	if !ok {
		return nil, false
	}
	return &memReader{Reader: bytes.NewReader(data), label: p.name + "/" + loc.String()}, true
}

func (p *MemPack) RootResource(name string) (io.ReadCloser, bool) {
	data, ok := p.root[name]
	if !ok {
		return nil, false
	}
	return &memReader{Reader: bytes.NewReader(data), label: p.name + "/" + name}, true
}

type memReader struct {
	*bytes.Reader
	label string
}

func (r *memReader) Close() error { return nil }

func (r *memReader) String() string { return r.label }
