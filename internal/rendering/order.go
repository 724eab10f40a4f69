package rendering

import (
	"sort"

	"github.com/jonathan/resume-builder/internal/types"
)

// missingRank places sections without a sectionOrder entry last.
const missingRank = 999

var canonicalIndex = func() map[string]int {
	idx := make(map[string]int, len(types.CanonicalSectionOrder))
	for i, s := range types.CanonicalSectionOrder {
		idx[s] = i
	}
	return idx
}()

// sortSections orders sections by their sectionOrder rank. Sections without one use
// fallback[section], then missingRank. Ties keep the canonical section order.
func sortSections(sections []string, data *types.ResumeData, fallback map[string]int) []string {
	out := make([]string, len(sections))
	copy(out, sections)

	sort.SliceStable(out, func(i, j int) bool {
		return canonicalPosition(out[i]) < canonicalPosition(out[j])
	})

	rankOf := func(section string) int {
		if r, ok := data.Rank(section); ok {
			return r
		}
		if r, ok := fallback[section]; ok {
			return r
		}
		return missingRank
	}
	sort.SliceStable(out, func(i, j int) bool {
		return rankOf(out[i]) < rankOf(out[j])
	})
	return out
}

func canonicalPosition(section string) int {
	if i, ok := canonicalIndex[section]; ok {
		return i
	}
	return len(canonicalIndex)
}

// MoveSectionUp swaps the rank of section with the section ranked directly above it.
// The order is returned unchanged when section has no rank or no neighbour holds rank-1.
func MoveSectionUp(order map[string]int, section string) map[string]int {
	return swapRank(order, section, -1)
}

// MoveSectionDown swaps the rank of section with the section ranked directly below it.
func MoveSectionDown(order map[string]int, section string) map[string]int {
	return swapRank(order, section, 1)
}

func swapRank(order map[string]int, section string, delta int) map[string]int {
	out := make(map[string]int, len(order))
	for k, v := range order {
		out[k] = v
	}

	rank, ok := out[section]
	if !ok {
		return out
	}
	target := rank + delta
	for _, other := range types.CanonicalSectionOrder {
		if other != section && out[other] == target {
			if _, present := out[other]; present {
				out[other] = rank
				out[section] = target
				return out
			}
		}
	}
	for other, r := range out {
		if other != section && r == target {
			out[other] = rank
			out[section] = target
			return out
		}
	}
	return out
}
