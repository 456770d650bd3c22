package output

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keymagic-rt/engine/pkg/codec"
	"github.com/keymagic-rt/engine/pkg/keyboard"
	"github.com/keymagic-rt/engine/pkg/matcher"
	"github.com/keymagic-rt/engine/pkg/rules"
)

func TestGenerateStringLiteral(t *testing.T) {
	strs := []codec.UTF16{}
	r := rules.Preprocess(0, keyboard.RawRule{
		RHS: []uint16{uint16(rules.OpString), 2, 'h', 'i'},
	}, strs)
	out := Generate(r, matcher.Result{}, strs)
	assert.Equal(t, codec.UTF16{'h', 'i'}, out.Fragment)
}

func TestGenerateVariableWhole(t *testing.T) {
	strs := []codec.UTF16{{'a', 'b', 'c'}}
	r := rules.Preprocess(0, keyboard.RawRule{
		RHS: []uint16{uint16(rules.OpVariable), 1},
	}, strs)
	out := Generate(r, matcher.Result{}, strs)
	assert.Equal(t, codec.UTF16{'a', 'b', 'c'}, out.Fragment)
}

func TestGenerateIndexedVariableByCapturePosition(t *testing.T) {
	strs := []codec.UTF16{{'x', 'y', 'z'}}
	r := rules.Preprocess(0, keyboard.RawRule{
		RHS: []uint16{uint16(rules.OpVariable), 1, uint16(rules.OpModifier), 3},
	}, strs)
	m := matcher.Result{Captures: []matcher.Capture{{SegmentIndex: 3, Position: 2}}}
	out := Generate(r, m, strs)
	assert.Equal(t, codec.UTF16{'z'}, out.Fragment)
}

func TestGenerateReference(t *testing.T) {
	strs := []codec.UTF16{}
	r := rules.Preprocess(0, keyboard.RawRule{
		RHS: []uint16{uint16(rules.OpReference), 1},
	}, strs)
	m := matcher.Result{Captures: []matcher.Capture{{SegmentIndex: 1, Value: codec.UTF16{'q'}}}}
	out := Generate(r, m, strs)
	assert.Equal(t, codec.UTF16{'q'}, out.Fragment)
}

func TestGenerateReferenceMissingCaptureEmitsNothing(t *testing.T) {
	strs := []codec.UTF16{}
	r := rules.Preprocess(0, keyboard.RawRule{
		RHS: []uint16{uint16(rules.OpReference), 9},
	}, strs)
	out := Generate(r, matcher.Result{}, strs)
	assert.Empty(t, out.Fragment)
}

func TestGenerateStateEmitsNoText(t *testing.T) {
	strs := []codec.UTF16{}
	r := rules.Preprocess(0, keyboard.RawRule{
		RHS: []uint16{uint16(rules.OpSwitch), 4},
	}, strs)
	out := Generate(r, matcher.Result{}, strs)
	assert.Empty(t, out.Fragment)
	assert.Equal(t, []int{4}, out.NewStates)
}

func TestGenerateNullClearsAccumulatedOutput(t *testing.T) {
	strs := []codec.UTF16{}
	r := rules.Preprocess(0, keyboard.RawRule{
		RHS: []uint16{
			uint16(rules.OpString), 1, 'a',
			uint16(rules.OpPredefined), 1, // standalone PREDEFINED(1) on RHS -> Null
			uint16(rules.OpString), 1, 'b',
		},
	}, strs)
	require.Len(t, r.RHSSegments, 3)
	out := Generate(r, matcher.Result{}, strs)
	assert.Equal(t, codec.UTF16{'b'}, out.Fragment)
}
