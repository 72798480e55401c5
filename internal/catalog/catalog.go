// Package catalog assigns pair keys to source units and derives the review unit.
package catalog

import (
	"sort"
	"strconv"
	"strings"

	"github.com/verte-zerg/wordmatch/internal/model"
)

// Ingest assigns 1-based local indexes and global keys to source units.
// The source slice is not modified.
func Ingest(src []model.SourceUnit) []model.Unit {
	units := make([]model.Unit, 0, len(src))
	for _, su := range src {
		pairs := make([]model.Pair, len(su.Pairs))
		for i, sp := range su.Pairs {
			pairs[i] = model.Pair{
				LocalIndex: i + 1,
				GlobalKey:  model.GlobalKey(su.ID, i+1),
				Source:     sp.DE,
				Target:     sp.EN,
			}
		}
		units = append(units, model.Unit{ID: su.ID, Name: su.Name, Pairs: pairs})
	}
	return units
}

// ParseGlobalKey splits a global key into unit id and local index.
func ParseGlobalKey(gk string) (string, int, bool) {
	sep := strings.LastIndexByte(gk, ':')
	if sep <= 0 || sep == len(gk)-1 {
		return "", 0, false
	}
	idx, err := strconv.Atoi(gk[sep+1:])
	if err != nil || idx < 1 {
		return "", 0, false
	}
	return gk[:sep], idx, true
}

// Derive builds the active unit list. When any mistake count is positive and
// resolves to a static pair, a review unit is prepended. Keys that no longer
// resolve are skipped.
func Derive(static []model.Unit, mistakes map[string]int) []model.Unit {
	type ref struct {
		unitPos int
		pair    model.Pair
	}
	byID := make(map[string]int, len(static))
	for i, u := range static {
		byID[u.ID] = i
	}

	var refs []ref
	for gk, count := range mistakes {
		if count <= 0 {
			continue
		}
		unitID, idx, ok := ParseGlobalKey(gk)
		if !ok {
			continue
		}
		pos, ok := byID[unitID]
		if !ok {
			continue
		}
		pair, ok := static[pos].Pair(idx)
		if !ok {
			continue
		}
		refs = append(refs, ref{unitPos: pos, pair: pair})
	}

	out := make([]model.Unit, 0, len(static)+1)
	if len(refs) > 0 {
		sort.Slice(refs, func(i, j int) bool {
			if refs[i].unitPos == refs[j].unitPos {
				return refs[i].pair.LocalIndex < refs[j].pair.LocalIndex
			}
			return refs[i].unitPos < refs[j].unitPos
		})
		pairs := make([]model.Pair, len(refs))
		for i, r := range refs {
			p := r.pair
			p.LocalIndex = i + 1
			pairs[i] = p
		}
		out = append(out, model.Unit{ID: model.ReviewUnitID, Name: model.ReviewUnitName, Pairs: pairs})
	}
	return append(out, static...)
}

// Find returns the unit with the given id.
func Find(units []model.Unit, id string) (model.Unit, bool) {
	for _, u := range units {
		if u.ID == id {
			return u, true
		}
	}
	return model.Unit{}, false
}

// Resolve returns the unit with the given id, falling back to the first unit.
// The second result reports whether the fallback was taken.
func Resolve(units []model.Unit, id string) (model.Unit, bool) {
	if u, ok := Find(units, id); ok {
		return u, false
	}
	if len(units) == 0 {
		return model.Unit{}, true
	}
	return units[0], true
}
