package matcher

import (
	"github.com/keymagic-rt/engine/pkg/codec"
	"github.com/keymagic-rt/engine/pkg/rules"
	"github.com/keymagic-rt/engine/pkg/vkmap"
)

// Capture is one matched LHS segment's recorded value (§4.4): the
// captured code units and, for AnyOfVariable captures, the 0-based
// position within the referenced variable the matched character was
// found at (always 0 for String/Variable captures).
type Capture struct {
	SegmentIndex int
	Value        codec.UTF16
	Position     int
}

// Result is a successful match: the consumed composing-suffix length and
// the ordered captures the output generator (C5) will read by
// SegmentIndex.
type Result struct {
	MatchedLength int
	Captures      []Capture

	// ConsumedTypedChar reports whether the match was made against the
	// composing text with the live key event's character appended
	// (§4.4 step 3). The engine needs this to know which base text
	// matched_length trims from.
	ConsumedTypedChar bool
}

// CaptureBySegmentIndex finds a capture by its 1-based segment index, as
// Reference and indexed-Variable RHS segments require (§4.5).
func (r Result) CaptureBySegmentIndex(n int) (Capture, bool) {
	for _, c := range r.Captures {
		if c.SegmentIndex == n {
			return c, true
		}
	}
	return Capture{}, false
}

// Context is the state a rule is matched against: the composing buffer
// and the currently active states.
type Context struct {
	Composing     codec.UTF16
	ActiveStates  map[int]bool
}

func (c Context) hasState(id int) bool {
	return c.ActiveStates[id]
}

// Match attempts rule r against context ctx and key event k, consulting
// the keyboard's string table for Variable/AnyOfVariable/NotAnyOfVariable
// content. It returns (Result, true) on success, (Result{}, false)
// otherwise — the matcher never errors (§7's propagation policy).
func Match(r rules.Rule, ctx Context, k KeyEvent, strings []codec.UTF16) (Result, bool) {
	// Step 1: state gate.
	for _, sid := range r.StateIDs {
		if !ctx.hasState(sid) {
			return Result{}, false
		}
	}
	if len(r.StateIDs) > 0 && isStateOnly(r) {
		return Result{MatchedLength: 0}, true
	}

	// Step 2: virtual-key gate.
	if len(r.KeyCombo) > 0 {
		if !matchCombo(r.KeyCombo, k) {
			return Result{}, false
		}
		if !hasTextualSegment(r) {
			return Result{MatchedLength: 0}, true
		}
	}

	// Step 3: textual suffix match.
	return matchText(r, ctx, k, strings)
}

func isStateOnly(r rules.Rule) bool {
	for _, s := range r.LHSSegments {
		if s.Kind != rules.KindState {
			return false
		}
	}
	return true
}

func hasTextualSegment(r rules.Rule) bool {
	for _, s := range r.LHSSegments {
		if s.IsMatchable() {
			return true
		}
	}
	return false
}

func matchCombo(combo []uint16, k KeyEvent) bool {
	for _, want := range combo {
		vk := VK(want)
		if vkmap.IsModifier(vk) {
			if !k.Modifiers.satisfies(vk) {
				return false
			}
			continue
		}
		if k.VK != vk {
			return false
		}
	}
	return true
}

func matchText(r rules.Rule, ctx Context, k KeyEvent, strings []codec.UTF16) (Result, bool) {
	matchable := make([]rules.Segment, 0, len(r.LHSSegments))
	for _, s := range r.LHSSegments {
		if s.IsMatchable() {
			matchable = append(matchable, s)
		}
	}

	l := 0
	for _, s := range matchable {
		l += s.CalcLength(strings)
	}

	consumedTypedChar := k.Character != 0 && len(r.KeyCombo) == 0
	var trialChar codec.UTF16
	if consumedTypedChar {
		trialChar = codec.EncodeScalar(k.Character)
	}
	matchContext := codec.Append(ctx.Composing, trialChar)

	if len(matchContext) < l {
		return Result{}, false
	}
	suffix := matchContext[len(matchContext)-l:]

	p := 0
	captures := make([]Capture, 0, len(matchable))
	for _, seg := range matchable {
		switch seg.Kind {
		case rules.KindString:
			lit := seg.Literal
			if p+len(lit) > len(suffix) || !codec.Equal(suffix[p:p+len(lit)], lit) {
				return Result{}, false
			}
			captures = append(captures, Capture{SegmentIndex: seg.Index, Value: lit, Position: 0})
			p += len(lit)

		case rules.KindVariable:
			v := rules.StringAt(strings, seg.VarIndex)
			if p+len(v) > len(suffix) || !codec.Equal(suffix[p:p+len(v)], v) {
				return Result{}, false
			}
			captures = append(captures, Capture{SegmentIndex: seg.Index, Value: v, Position: 0})
			p += len(v)

		case rules.KindAnyOfVariable:
			if p >= len(suffix) {
				return Result{}, false
			}
			c := suffix[p]
			v := rules.StringAt(strings, seg.VarIndex)
			pos := indexOf(v, c)
			if pos < 0 {
				return Result{}, false
			}
			captures = append(captures, Capture{SegmentIndex: seg.Index, Value: codec.UTF16{c}, Position: pos})
			p++

		case rules.KindNotAnyOfVariable:
			if p >= len(suffix) {
				return Result{}, false
			}
			c := suffix[p]
			v := rules.StringAt(strings, seg.VarIndex)
			if indexOf(v, c) >= 0 {
				return Result{}, false
			}
			captures = append(captures, Capture{SegmentIndex: seg.Index, Value: codec.UTF16{c}, Position: 0})
			p++

		case rules.KindAny:
			if p >= len(suffix) {
				return Result{}, false
			}
			c := suffix[p]
			if !codec.IsAnyCharacter(rune(c)) {
				return Result{}, false
			}
			captures = append(captures, Capture{SegmentIndex: seg.Index, Value: codec.UTF16{c}, Position: 0})
			p++
		}
	}

	if p != l {
		return Result{}, false
	}
	return Result{MatchedLength: l, Captures: captures, ConsumedTypedChar: consumedTypedChar}, true
}

func indexOf(v codec.UTF16, c uint16) int {
	for i, u := range v {
		if u == c {
			return i
		}
	}
	return -1
}
