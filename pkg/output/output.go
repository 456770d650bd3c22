// Package output implements the output generator (C5): it evaluates a
// matched rule's RHS segments into a UTF-16 fragment plus the set of
// states the rule activates.
package output

import (
	"github.com/keymagic-rt/engine/pkg/codec"
	"github.com/keymagic-rt/engine/pkg/matcher"
	"github.com/keymagic-rt/engine/pkg/rules"
)

// Result is one rule application's right-hand-side evaluation: the text
// fragment to splice in and the states the rule activates (§4.5).
type Result struct {
	Fragment  codec.UTF16
	NewStates []int
}

// Generate evaluates rule r's RHS segments against a successful match
// result, consulting the string table for Variable/Reference content.
// It never errors: a malformed reference or out-of-range index emits
// nothing for that segment and continues (§7's propagation policy).
func Generate(r rules.Rule, m matcher.Result, strings []codec.UTF16) Result {
	var out Result
	for _, seg := range r.RHSSegments {
		switch seg.Kind {
		case rules.KindString:
			out.Fragment = codec.Append(out.Fragment, seg.Literal)

		case rules.KindVariable:
			if seg.IndexRef == rules.NoIndexRef {
				out.Fragment = codec.Append(out.Fragment, rules.StringAt(strings, seg.VarIndex))
				continue
			}
			capt, ok := m.CaptureBySegmentIndex(seg.IndexRef)
			if !ok {
				continue
			}
			v := rules.StringAt(strings, seg.VarIndex)
			if capt.Position < 0 || capt.Position >= len(v) {
				continue
			}
			out.Fragment = append(out.Fragment, v[capt.Position])

		case rules.KindReference:
			capt, ok := m.CaptureBySegmentIndex(seg.RefIndex)
			if !ok {
				continue
			}
			out.Fragment = codec.Append(out.Fragment, capt.Value)

		case rules.KindState:
			out.NewStates = appendUniqueState(out.NewStates, seg.StateID)

		case rules.KindNull, rules.KindVirtualKey:
			// §4.5: a malformed PREDEFINED(v!=1) RHS segment is
			// recovered as KindVirtualKey but only value 1 (Null)
			// is legal, so it behaves exactly like Null.
			out.Fragment = nil
		}
	}
	return out
}

func appendUniqueState(s []int, v int) []int {
	for _, x := range s {
		if x == v {
			return s
		}
	}
	return append(s, v)
}
