package rules

import (
	"sort"

	"github.com/samber/lo"
)

// Priority computes a rule's sort weight (§4.3): state-bearing rules start
// from 1000 and virtual-key rules from 500, so with patterns shorter than
// those bases they outrank virtual-key and plain text rules in that order;
// within a class, longer patterns/combos win.
func Priority(stateCount, vkCount, charLen int) int {
	switch {
	case stateCount > 0:
		return 1000 + 100*stateCount + 10*vkCount + charLen
	case vkCount > 0:
		return 500 + 10*vkCount + charLen
	default:
		return charLen
	}
}

// SortByPriority stably sorts rules in place: all state-bearing rules
// strictly precede non-state rules, then by descending Priority, then by
// ascending OriginalIndex (§4.3, §8 property 7).
func SortByPriority(rs []Rule) {
	stateBearing := lo.Filter(rs, func(r Rule, _ int) bool { return len(r.StateIDs) > 0 })
	rest := lo.Filter(rs, func(r Rule, _ int) bool { return len(r.StateIDs) == 0 })
	sortClass(stateBearing)
	sortClass(rest)
	copy(rs, append(stateBearing, rest...))
}

func sortClass(rs []Rule) {
	sort.SliceStable(rs, func(i, j int) bool {
		if rs[i].Priority != rs[j].Priority {
			return rs[i].Priority > rs[j].Priority
		}
		return rs[i].OriginalIndex < rs[j].OriginalIndex
	})
}
