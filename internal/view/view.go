package view

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"propmeta/internal/metaerr"
)

// View is an ordered, read-only mapping from key to Value. The nil *View
// behaves as an empty view.
type View struct {
	keys   []string
	values []Value
	index  map[string]int
}

var empty = &View{index: map[string]int{}}

// Empty returns a view with no entries.
func Empty() *View {
	return empty
}

// Size returns the number of entries.
func (v *View) Size() int {
	if v == nil {
		return 0
	}
	return len(v.keys)
}

// Keys returns the keys in insertion order. The slice is a copy.
func (v *View) Keys() []string {
	if v == nil {
		return nil
	}
	out := make([]string, len(v.keys))
	copy(out, v.keys)
	return out
}

// HasKey reports whether key is present.
func (v *View) HasKey(key string) bool {
	if v == nil {
		return false
	}
	_, ok := v.index[key]
	return ok
}

// HasIndex reports whether position index holds an entry. A negative index is
// a caller bug: HasIndex panics with an error wrapping metaerr.ErrInvalidIndex.
// The positional accessors below treat the same input as absent instead.
func (v *View) HasIndex(index int) bool {
	if index < 0 {
		panic(fmt.Errorf("%w: negative key index %d", metaerr.ErrInvalidIndex, index))
	}
	return index < v.Size()
}

// Value returns the raw value stored under key.
func (v *View) Value(key string) (Value, bool) {
	if v == nil {
		return Value{}, false
	}
	i, ok := v.index[key]
	if !ok {
		return Value{}, false
	}
	return v.values[i], true
}

// ValueAt returns the raw value stored at position index.
func (v *View) ValueAt(index int) (Value, bool) {
	if index < 0 || index >= v.Size() {
		return Value{}, false
	}
	return v.values[index], true
}

// StringValue returns the string stored under key.
func (v *View) StringValue(key string) (string, bool) {
	value, _ := v.Value(key)
	return value.Text()
}

// StringValueAt returns the string stored at position index.
func (v *View) StringValueAt(index int) (string, bool) {
	value, _ := v.ValueAt(index)
	return value.Text()
}

// IntegerValue parses the string under key as a base-10, 32-bit integer.
func (v *View) IntegerValue(key string) (int, bool) {
	value, _ := v.Value(key)
	return parseInteger(value)
}

// IntegerValueAt parses the string at index as a base-10, 32-bit integer.
func (v *View) IntegerValueAt(index int) (int, bool) {
	value, _ := v.ValueAt(index)
	return parseInteger(value)
}

// LongValue parses the string under key as a base-10, 64-bit integer.
func (v *View) LongValue(key string) (int64, bool) {
	value, _ := v.Value(key)
	return parseLong(value)
}

// LongValueAt parses the string at index as a base-10, 64-bit integer.
func (v *View) LongValueAt(index int) (int64, bool) {
	value, _ := v.ValueAt(index)
	return parseLong(value)
}

// FloatValue parses the string under key as a finite 32-bit float.
func (v *View) FloatValue(key string) (float32, bool) {
	value, _ := v.Value(key)
	return parseFloat(value)
}

// FloatValueAt parses the string at index as a finite 32-bit float.
func (v *View) FloatValueAt(index int) (float32, bool) {
	value, _ := v.ValueAt(index)
	return parseFloat(value)
}

// DoubleValue parses the string under key as a finite 64-bit float.
func (v *View) DoubleValue(key string) (float64, bool) {
	value, _ := v.Value(key)
	return parseDouble(value)
}

// DoubleValueAt parses the string at index as a finite 64-bit float.
func (v *View) DoubleValueAt(index int) (float64, bool) {
	value, _ := v.ValueAt(index)
	return parseDouble(value)
}

// BooleanValue reports whether the string under key equals "true", ignoring case.
// Any other string yields false; only a missing or non-string value is absent.
func (v *View) BooleanValue(key string) (bool, bool) {
	value, _ := v.Value(key)
	return parseBoolean(value)
}

// BooleanValueAt is BooleanValue for position index.
func (v *View) BooleanValueAt(index int) (bool, bool) {
	value, _ := v.ValueAt(index)
	return parseBoolean(value)
}

// BlobValue returns the byte source stored under key.
func (v *View) BlobValue(key string) (io.Reader, bool) {
	value, _ := v.Value(key)
	return value.Blob()
}

// BlobValueAt returns the byte source stored at position index.
func (v *View) BlobValueAt(index int) (io.Reader, bool) {
	value, _ := v.ValueAt(index)
	return value.Blob()
}

// SubView returns the nested view stored under key.
func (v *View) SubView(key string) (*View, bool) {
	value, _ := v.Value(key)
	return value.View()
}

// SubViewAt returns the nested view stored at position index.
func (v *View) SubViewAt(index int) (*View, bool) {
	value, _ := v.ValueAt(index)
	return value.View()
}

// Combined layers views: the result holds every key of every input, in input
// order, and the first view that defines a key supplies its value.
func Combined(views ...*View) *View {
	b := NewBuilder()
	for _, v := range views {
		for i, key := range v.Keys() {
			if b.Has(key) {
				continue
			}
			b.Set(key, v.values[i])
		}
	}
	return b.Build()
}

func parseInteger(value Value) (int, bool) {
	s, ok := value.Text()
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, false
	}
	return int(n), true
}

func parseLong(value Value) (int64, bool) {
	s, ok := value.Text()
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func parseFloat(value Value) (float32, bool) {
	s, ok := value.Text()
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 32)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return float32(f), true
}

func parseDouble(value Value) (float64, bool) {
	s, ok := value.Text()
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

func parseBoolean(value Value) (bool, bool) {
	s, ok := value.Text()
	if !ok {
		return false, false
	}
	return strings.EqualFold(s, "true"), true
}
