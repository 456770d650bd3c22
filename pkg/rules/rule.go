package rules

import (
	"github.com/keymagic-rt/engine/pkg/codec"
	"github.com/keymagic-rt/engine/pkg/keyboard"
)

// Rule is a processed (lhs_segments, rhs_segments) pair, stable-indexed by
// its position in the original keyboard file, carrying everything the
// matcher (C4) and output generator (C5) need (§3 "Processed rule").
type Rule struct {
	OriginalIndex int // stable tie-break

	LHSSegments []Segment
	RHSSegments []Segment

	StateIDs        []int // all SWITCH operands in LHS
	KeyCombo        []uint16
	StringPattern   codec.UTF16 // concatenated literal characters, metrics only
	PatternCharLen  int
	Priority        int
}

// Preprocess segments one raw (lhs, rhs) opcode pair and computes its
// priority-sort metadata. strings is the keyboard file's string table,
// needed to compute a Variable segment's contribution to
// pattern_char_length (§4.3).
func Preprocess(originalIndex int, raw keyboard.RawRule, strings []codec.UTF16) Rule {
	lhs := segment(LHS, raw.LHS)
	rhs := segment(RHS, raw.RHS)
	assignMatchIndexes(lhs)

	r := Rule{
		OriginalIndex: originalIndex,
		LHSSegments:   lhs,
		RHSSegments:   rhs,
	}

	for _, s := range lhs {
		switch s.Kind {
		case KindState:
			r.StateIDs = appendUnique(r.StateIDs, s.StateID)
		case KindVirtualKey:
			if r.KeyCombo == nil {
				r.KeyCombo = s.VKList
			}
		case KindString:
			r.StringPattern = codec.Append(r.StringPattern, s.Literal)
		}
		r.PatternCharLen += s.CalcLength(strings)
	}

	r.Priority = Priority(len(r.StateIDs), len(r.KeyCombo), r.PatternCharLen)
	return r
}

// assignMatchIndexes assigns each matchable LHS segment its 1-based
// position among matchable segments (§4.4).
func assignMatchIndexes(segs []Segment) {
	idx := 0
	for i := range segs {
		if segs[i].IsMatchable() {
			idx++
			segs[i].Index = idx
		}
	}
}

func appendUnique(s []int, v int) []int {
	for _, x := range s {
		if x == v {
			return s
		}
	}
	return append(s, v)
}

// PreprocessAll segments every rule in a loaded keyboard file and returns
// them in priority order (§4.3's sort), ready for the matcher to walk.
func PreprocessAll(f *keyboard.File) []Rule {
	out := make([]Rule, len(f.Rules))
	for i, raw := range f.Rules {
		out[i] = Preprocess(i, raw, f.Strings)
	}
	SortByPriority(out)
	return out
}
