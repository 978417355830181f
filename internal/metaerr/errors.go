package metaerr

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMalformedFile      = errors.New("malformed metadata file")
	ErrUnsupportedFormat  = errors.New("unsupported metadata file")
	ErrMissingRequiredKey = errors.New("missing required key")
	ErrInvalidPath        = errors.New("invalid path")
	ErrMissingResource    = errors.New("missing resource")
	ErrConflictingKey     = errors.New("conflicting key")
	ErrInvalidIndex       = errors.New("invalid index")
)

// Wrap builds an error message that carries the file and key context while
// tagging it with marker. The marker should be one of the sentinels above; a
// nil marker falls back to ErrMalformedFile.
func Wrap(marker error, file, key, message string, err error) error {
	detail := buildDetail(file, key, message)
	if marker == nil {
		marker = ErrMalformedFile
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Kind returns a short, stable label for the marker carried by err, or
// "unknown" when err carries none of the sentinels.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMalformedFile):
		return "malformed_file"
	case errors.Is(err, ErrUnsupportedFormat):
		return "unsupported_format"
	case errors.Is(err, ErrMissingRequiredKey):
		return "missing_required_key"
	case errors.Is(err, ErrInvalidPath):
		return "invalid_path"
	case errors.Is(err, ErrMissingResource):
		return "missing_resource"
	case errors.Is(err, ErrConflictingKey):
		return "conflicting_key"
	case errors.Is(err, ErrInvalidIndex):
		return "invalid_index"
	default:
		return "unknown"
	}
}

func buildDetail(file, key, message string) string {
	parts := make([]string, 0, 3)
	if file = strings.TrimSpace(file); file != "" {
		parts = append(parts, file)
	}
	if key = strings.TrimSpace(key); key != "" {
		parts = append(parts, key)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "metadata failure"
	}
	return strings.Join(parts, ": ")
}
