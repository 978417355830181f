package main

import (
	"fmt"
	"io"
	"sort"

	"propmeta/internal/export"
	"propmeta/internal/resource"
	"propmeta/internal/view"
)

const (
	ansiReset  = "\x1b[0m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
)

// writeDocuments prints docs as one document keyed by texture, in texture
// order.
func writeDocuments(w io.Writer, enc *export.Encoder, docs map[resource.Location]*view.View) error {
	textures := make([]resource.Location, 0, len(docs))
	for texture := range docs {
		textures = append(textures, texture)
	}
	sort.Slice(textures, func(i, j int) bool { return resource.Less(textures[i], textures[j]) })

	b := view.NewBuilder()
	for _, texture := range textures {
		b.SetView(texture.String(), docs[texture])
	}
	data, err := enc.Encode(b.Build())
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func statusLine(w io.Writer, ok bool, format string, args ...any) {
	line := fmt.Sprintf(format, args...)
	if isTerminal(w) {
		color := ansiGreen
		if !ok {
			color = ansiYellow
		}
		line = color + line + ansiReset
	}
	fmt.Fprintln(w, line)
}
