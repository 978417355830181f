package frames

import (
	"regexp"
	"strconv"
	"strings"

	"propmeta/internal/properties"
	"propmeta/internal/view"
)

const (
	// KeyTime holds a frame duration in ticks.
	KeyTime = "time"
	// KeyIndex holds the sprite sheet tile shown by a frame.
	KeyIndex = "index"

	durationPrefix = "duration"
	tilePrefix     = "tile"
)

var indexedKey = regexp.MustCompile(`^(duration|tile)\.\d+$`)

// Frame is one entry of the rebuilt list.
type Frame struct {
	Index   string
	Time    string
	HasTime bool
}

// Build returns the frame list as a view keyed "0".."N", or false when the
// properties declare no per-frame keys.
func Build(props *properties.Properties) (*view.View, bool) {
	list, ok := List(props)
	if !ok {
		return nil, false
	}
	b := view.NewBuilder()
	for i, frame := range list {
		fb := view.NewBuilder()
		if frame.HasTime {
			fb.SetString(KeyTime, frame.Time)
		}
		fb.SetString(KeyIndex, frame.Index)
		b.SetView(strconv.Itoa(i), fb.Build())
	}
	return b.Build(), true
}

// List returns the dense frame sequence backing Build. Every matching key
// raises the frame count, but values are read from the canonical keys only:
// "duration.01" extends the list to frame 1 without setting its time.
func List(props *properties.Properties) ([]Frame, bool) {
	maxIndex := -1
	for _, key := range props.Keys() {
		if !indexedKey.MatchString(key) {
			continue
		}
		_, digits, _ := strings.Cut(key, ".")
		n, err := strconv.ParseInt(digits, 10, 32)
		if err != nil {
			continue
		}
		maxIndex = max(maxIndex, int(n))
	}
	if maxIndex < 0 {
		return nil, false
	}

	list := make([]Frame, 0, maxIndex+1)
	for i := 0; i <= maxIndex; i++ {
		suffix := "." + strconv.Itoa(i)
		frame := Frame{Index: strconv.Itoa(i)}
		if tile, ok := props.Get(tilePrefix + suffix); ok {
			frame.Index = tile
		}
		if duration, ok := props.Get(durationPrefix + suffix); ok {
			frame.Time = duration
			frame.HasTime = true
		}
		list = append(list, frame)
	}
	return list, true
}
