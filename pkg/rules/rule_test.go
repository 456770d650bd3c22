package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keymagic-rt/engine/pkg/codec"
	"github.com/keymagic-rt/engine/pkg/keyboard"
)

func TestSegmentString(t *testing.T) {
	ops := []uint16{uint16(OpString), 2, 'k', 'a'}
	segs := segment(LHS, ops)
	require.Len(t, segs, 1)
	assert.Equal(t, KindString, segs[0].Kind)
	assert.Equal(t, codec.UTF16{'k', 'a'}, segs[0].Literal)
}

func TestSegmentVariableWithAnyOfModifier(t *testing.T) {
	ops := []uint16{uint16(OpVariable), 3, uint16(OpModifier), uint16(OpFlagAnyOf)}
	segs := segment(LHS, ops)
	require.Len(t, segs, 1)
	assert.Equal(t, KindAnyOfVariable, segs[0].Kind)
	assert.EqualValues(t, 3, segs[0].VarIndex)
}

func TestSegmentVariableWithIndexModifierRHS(t *testing.T) {
	ops := []uint16{uint16(OpVariable), 1, uint16(OpModifier), 2}
	segs := segment(RHS, ops)
	require.Len(t, segs, 1)
	assert.Equal(t, KindVariable, segs[0].Kind)
	assert.Equal(t, 2, segs[0].IndexRef)
}

func TestSegmentVirtualKeyGroup(t *testing.T) {
	ops := []uint16{uint16(OpAnd), uint16(OpPredefined), 10, uint16(OpPredefined), 20}
	segs := segment(LHS, ops)
	require.Len(t, segs, 1)
	assert.Equal(t, KindVirtualKey, segs[0].Kind)
	assert.Equal(t, []uint16{10, 20}, segs[0].VKList)
}

func TestSegmentStandaloneNullRHS(t *testing.T) {
	ops := []uint16{uint16(OpPredefined), 1}
	segs := segment(RHS, ops)
	require.Len(t, segs, 1)
	assert.Equal(t, KindNull, segs[0].Kind)
}

func TestSegmentStandalonePredefinedRecoveredAsVK(t *testing.T) {
	ops := []uint16{uint16(OpPredefined), 42}
	segs := segment(LHS, ops)
	require.Len(t, segs, 1)
	assert.Equal(t, KindVirtualKey, segs[0].Kind)
	assert.Equal(t, []uint16{42}, segs[0].VKList)
}

func TestSegmentSwitchAndReference(t *testing.T) {
	lhs := segment(LHS, []uint16{uint16(OpSwitch), 5})
	require.Len(t, lhs, 1)
	assert.Equal(t, KindState, lhs[0].Kind)
	assert.Equal(t, 5, lhs[0].StateID)

	rhs := segment(RHS, []uint16{uint16(OpReference), 2})
	require.Len(t, rhs, 1)
	assert.Equal(t, KindReference, rhs[0].Kind)
	assert.Equal(t, 2, rhs[0].RefIndex)
}

func TestPreprocessPatternCharLenAndIndexes(t *testing.T) {
	strs := []codec.UTF16{{'a', 'b'}} // string-table entry 1 = "ab"
	lhsOps := []uint16{
		uint16(OpString), 1, 'x',
		uint16(OpVariable), 1,
		uint16(OpAny),
	}
	rhsOps := []uint16{uint16(OpString), 1, 'y'}
	raw := keyboard.RawRule{LHS: lhsOps, RHS: rhsOps}

	r := Preprocess(3, raw, strs)
	assert.Equal(t, 3, r.OriginalIndex)
	// 1 (String "x") + 2 (Variable "ab") + 1 (Any) = 4
	assert.Equal(t, 4, r.PatternCharLen)
	require.Len(t, r.LHSSegments, 3)
	assert.Equal(t, 1, r.LHSSegments[0].Index)
	assert.Equal(t, 2, r.LHSSegments[1].Index)
	assert.Equal(t, 3, r.LHSSegments[2].Index)
}

func TestPriorityOrdering(t *testing.T) {
	assert.Greater(t, Priority(1, 0, 0), Priority(0, 5, 100))
	assert.Greater(t, Priority(0, 1, 0), Priority(0, 0, 100))
}

func TestSortByPriorityStateBeforeNonState(t *testing.T) {
	strs := []codec.UTF16{}
	stateRule := Preprocess(0, keyboard.RawRule{
		LHS: []uint16{uint16(OpSwitch), 1, uint16(OpString), 1, 'a'},
		RHS: nil,
	}, strs)
	plainRule := Preprocess(1, keyboard.RawRule{
		LHS: []uint16{uint16(OpString), 3, 'x', 'y', 'z'},
		RHS: nil,
	}, strs)

	rs := []Rule{plainRule, stateRule}
	SortByPriority(rs)
	assert.Equal(t, 0, rs[0].OriginalIndex) // state-bearing first despite shorter pattern
	assert.Equal(t, 1, rs[1].OriginalIndex)
}

func TestSortByPriorityTieBreakByOriginalIndex(t *testing.T) {
	strs := []codec.UTF16{}
	a := Preprocess(5, keyboard.RawRule{LHS: []uint16{uint16(OpString), 1, 'a'}}, strs)
	b := Preprocess(2, keyboard.RawRule{LHS: []uint16{uint16(OpString), 1, 'b'}}, strs)

	rs := []Rule{a, b}
	SortByPriority(rs)
	assert.Equal(t, 2, rs[0].OriginalIndex)
	assert.Equal(t, 5, rs[1].OriginalIndex)
}
