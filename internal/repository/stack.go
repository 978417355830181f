package repository

import (
	"log/slog"
	"sort"

	"propmeta/internal/logging"
	"propmeta/internal/resource"
)

// Stack is an ordered list of packs, highest priority first.
type Stack struct {
	packs  []Pack
	logger *slog.Logger
}

// NewStack builds a stack. A nil logger discards pack listing failures.
func NewStack(logger *slog.Logger, packs ...Pack) *Stack {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Stack{
		packs:  append([]Pack(nil), packs...),
		logger: logging.NewComponentLogger(logger, "repository"),
	}
}

// Packs returns the packs in priority order.
func (s *Stack) Packs() []Pack {
	return append([]Pack(nil), s.packs...)
}

// List returns the sorted, de-duplicated set of matching resources across
// every pack. A pack that cannot be enumerated is logged and skipped.
func (s *Stack) List(match func(path string) bool) []resource.Location {
	seen := map[resource.Location]struct{}{}
	var out []resource.Location
	for _, pack := range s.packs {
		locs, err := pack.Locations()
		if err != nil {
			s.logger.Warn("pack listing failed",
				logging.String(logging.FieldEventType, "pack_list_failed"),
				logging.String(logging.FieldPack, pack.Name()),
				logging.Error(err),
				logging.String(logging.FieldImpact, "resources from this pack are not listed"))
			continue
		}
		for _, loc := range locs {
			if _, dup := seen[loc]; dup || !match(loc.Path) {
				continue
			}
			seen[loc] = struct{}{}
			out = append(out, loc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return resource.Less(out[i], out[j]) })
	return out
}

// HighestPackWith returns the first pack holding loc.
func (s *Stack) HighestPackWith(loc resource.Location) (Pack, bool) {
	for _, pack := range s.packs {
		if pack.Has(loc) {
			return pack, true
		}
	}
	return nil, false
}

// HighestPackWithFloor returns the first pack holding loc, unless a pack
// holding floor comes first.
func (s *Stack) HighestPackWithFloor(loc, floor resource.Location) (Pack, bool) {
	for _, pack := range s.packs {
		if pack.Has(loc) {
			return pack, true
		}
		if pack.Has(floor) {
			return nil, false
		}
	}
	return nil, false
}
