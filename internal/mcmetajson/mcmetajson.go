// Package mcmetajson converts .mcmeta JSON documents into views.
//
// Object keys are emitted in sorted order, arrays become sub-views keyed by
// position ("0", "1", ...), and scalars keep their JSON text. Nulls are
// dropped.
package mcmetajson

import (
	"sort"
	"strconv"

	"github.com/tidwall/gjson"

	"propmeta/internal/metaerr"
	"propmeta/internal/view"
)

// Parse converts a JSON object into a view. The file name is only used in
// error messages.
func Parse(file string, data []byte) (*view.View, error) {
	if !gjson.ValidBytes(data) {
		return nil, metaerr.Wrap(metaerr.ErrMalformedFile, file, "", "invalid JSON", nil)
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, metaerr.Wrap(metaerr.ErrMalformedFile, file, "", "top-level JSON value is not an object", nil)
	}
	return objectView(root), nil
}

func objectView(obj gjson.Result) *view.View {
	fields := map[string]gjson.Result{}
	obj.ForEach(func(key, value gjson.Result) bool {
		fields[key.String()] = value
		return true
	})
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	b := view.NewBuilder()
	for _, key := range keys {
		setValue(b, key, fields[key])
	}
	return b.Build()
}

func arrayView(arr gjson.Result) *view.View {
	b := view.NewBuilder()
	for i, item := range arr.Array() {
		setValue(b, strconv.Itoa(i), item)
	}
	return b.Build()
}

func setValue(b *view.Builder, key string, value gjson.Result) {
	switch {
	case value.IsObject():
		b.SetView(key, objectView(value))
	case value.IsArray():
		b.SetView(key, arrayView(value))
	case value.Type == gjson.Null:
	case value.Type == gjson.Number:
		b.SetString(key, value.Raw)
	default:
		b.SetString(key, value.String())
	}
}
