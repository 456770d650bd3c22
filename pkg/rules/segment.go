package rules

import "github.com/keymagic-rt/engine/pkg/codec"

// Kind is the tagged variant of a preprocessed LHS/RHS segment (§3
// "Segment kinds", §9 "tagged variants with the capability set
// {match_at, calc_length, emit_output} -- no OO hierarchy").
type Kind int

const (
	KindString Kind = iota
	KindVariable
	KindAnyOfVariable
	KindNotAnyOfVariable
	KindAny
	KindState
	KindVirtualKey
	KindReference
	KindNull
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "String"
	case KindVariable:
		return "Variable"
	case KindAnyOfVariable:
		return "AnyOfVariable"
	case KindNotAnyOfVariable:
		return "NotAnyOfVariable"
	case KindAny:
		return "Any"
	case KindState:
		return "State"
	case KindVirtualKey:
		return "VirtualKey"
	case KindReference:
		return "Reference"
	case KindNull:
		return "Null"
	default:
		return "Unknown"
	}
}

// NoIndexRef marks a Variable segment with no indexed-lookup modifier.
const NoIndexRef = -1

// Segment is one logical unit of a rule's LHS or RHS after segmentation.
type Segment struct {
	Kind Kind

	Literal  codec.UTF16 // KindString: the literal run
	VarIndex uint16      // KindVariable/AnyOfVariable/NotAnyOfVariable: 1-based string-table index
	IndexRef int         // KindVariable (RHS only): capture segment_index to index by, or NoIndexRef
	StateID  int         // KindState: the SWITCH operand
	VKList   []uint16    // KindVirtualKey: the AND group's PREDEFINED operands, in order
	RefIndex int         // KindReference: the REFERENCE operand (LHS segment_index)

	// Index is the 1-based position of a matchable LHS segment among all
	// matchable segments of its rule (§4.4's "each capture carries a
	// 1-based segment_index"). 0 for non-matchable segments and for RHS
	// segments, where it is meaningless.
	Index int
}

// IsMatchable reports whether a segment is consumed against the composing
// suffix during LHS matching (§4.4's segment table). State, VirtualKey,
// Reference and Null segments are gates or RHS-only constructs, not
// suffix-consuming segments.
func (s Segment) IsMatchable() bool {
	switch s.Kind {
	case KindString, KindVariable, KindAnyOfVariable, KindNotAnyOfVariable, KindAny:
		return true
	default:
		return false
	}
}

// CalcLength returns a segment's contribution to pattern_char_length
// (§4.3): String's literal length, 1 for AnyOfVariable/NotAnyOfVariable/Any,
// the variable's UTF-16 length for Variable, and 0 otherwise.
func (s Segment) CalcLength(strings []codec.UTF16) int {
	switch s.Kind {
	case KindString:
		return len(s.Literal)
	case KindAnyOfVariable, KindNotAnyOfVariable, KindAny:
		return 1
	case KindVariable:
		return len(stringAt(strings, s.VarIndex))
	default:
		return 0
	}
}

// stringAt resolves a 1-based string-table index. Out-of-range indices
// (which the loader's validator should have already rejected) resolve to
// an empty string defensively, per §7's "matcher and generator never
// surface errors" propagation policy.
func stringAt(strings []codec.UTF16, idx uint16) codec.UTF16 {
	i := int(idx) - 1
	if i < 0 || i >= len(strings) {
		return nil
	}
	return strings[i]
}

// StringAt resolves a 1-based string-table index, exported for use by the
// matcher and output generator which share the same table.
func StringAt(strings []codec.UTF16, idx uint16) codec.UTF16 {
	return stringAt(strings, idx)
}
