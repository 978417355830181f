package combine

import (
	"sort"
	"strconv"

	"propmeta/internal/metaerr"
	"propmeta/internal/parser"
	"propmeta/internal/resource"
	"propmeta/internal/view"
)

// Combine merges byFile, the documents each metadata file produced for
// texture. It fails with metaerr.ErrConflictingKey when two files declare the
// same non-animation section.
func Combine(texture resource.Location, byFile map[resource.Location]*view.View) (*view.View, error) {
	files := make([]resource.Location, 0, len(byFile))
	for loc := range byFile {
		files = append(files, loc)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].String() < files[j].String() })

	owners := map[string]resource.Location{}
	parts := view.NewBuilder()
	ordered := make([]*view.View, 0, len(files)+1)

	for _, file := range files {
		doc := byFile[file]
		for _, section := range doc.Keys() {
			if section == parser.SectionAnimation {
				continue
			}
			if owner, ok := owners[section]; ok {
				return nil, metaerr.Wrap(metaerr.ErrConflictingKey, texture.String(), section,
					"declared by both "+owner.String()+" and "+file.String(), nil)
			}
			owners[section] = file
		}
		appendParts(parts, doc)
		ordered = append(ordered, doc)
	}

	if parts.Len() == 0 {
		return view.Combined(ordered...), nil
	}
	animation := view.NewBuilder().
		SetView(parser.SectionAnimation, view.NewBuilder().SetView(parser.KeyParts, parts.Build()).Build()).
		Build()
	return view.Combined(append([]*view.View{animation}, ordered...)...), nil
}

func appendParts(parts *view.Builder, doc *view.View) {
	anim, ok := doc.SubView(parser.SectionAnimation)
	if !ok {
		return
	}
	list, ok := anim.SubView(parser.KeyParts)
	if !ok {
		return
	}
	for i := 0; i < list.Size(); i++ {
		value, _ := list.ValueAt(i)
		parts.Set(strconv.Itoa(parts.Len()), value)
	}
}
