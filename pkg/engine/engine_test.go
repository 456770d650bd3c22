package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keymagic-rt/engine/pkg/codec"
	"github.com/keymagic-rt/engine/pkg/keyboard"
	"github.com/keymagic-rt/engine/pkg/matcher"
)

// buildSimpleKeyboard constructs a minimal v1.5-shaped in-memory model
// without going through the binary loader, exercising only the engine.
func buildSimpleKeyboard(opts keyboard.Options, rules []keyboard.RawRule, strings []codec.UTF16) *keyboard.File {
	return &keyboard.File{
		MajorVersion: 1,
		MinorVersion: 5,
		Options:      opts,
		Strings:      strings,
		Info:         map[keyboard.InfoTag][]byte{},
		Rules:        rules,
	}
}

func opString(s string) []uint16 {
	out := []uint16{0xF0, uint16(len(s))}
	for _, r := range s {
		out = append(out, uint16(r))
	}
	return out
}

func TestEngineInsertsTypedCharacterWithNoMatchingRule(t *testing.T) {
	e := New()
	e.LoadKeyboard(buildSimpleKeyboard(keyboard.Options{}, nil, nil))

	act := e.ProcessKey(matcher.KeyEvent{Character: 'a'})
	assert.Equal(t, ActionInsert, act.Type)
	assert.Equal(t, "a", act.Insert)
	assert.Equal(t, "a", e.Composing())
}

func TestEngineAppliesMatchingTextRule(t *testing.T) {
	// rule: "a" -> "bb"
	r := keyboard.RawRule{LHS: opString("a"), RHS: opString("bb")}
	e := New()
	e.LoadKeyboard(buildSimpleKeyboard(keyboard.Options{}, []keyboard.RawRule{r}, nil))

	e.ProcessKey(matcher.KeyEvent{Character: 'a'})
	assert.Equal(t, "bb", e.Composing())
}

func TestEngineBackspaceSimpleDelete(t *testing.T) {
	e := New()
	e.LoadKeyboard(buildSimpleKeyboard(keyboard.Options{AutoBksp: false}, nil, nil))
	require.NoError(t, e.SetComposing("ab"))

	act := e.ProcessKey(matcher.KeyEvent{VK: matcher.VKBack})
	assert.Equal(t, ActionDelete, act.Type)
	assert.Equal(t, 1, act.DeleteCount)
	assert.Equal(t, "a", e.Composing())
}

func TestEngineBackspaceOnEmptyComposingIsNoop(t *testing.T) {
	e := New()
	e.LoadKeyboard(buildSimpleKeyboard(keyboard.Options{}, nil, nil))
	act := e.ProcessKey(matcher.KeyEvent{VK: matcher.VKBack})
	assert.Equal(t, ActionNone, act.Type)
}

func TestEngineSmartBackspaceRestoresSnapshot(t *testing.T) {
	e := New()
	e.LoadKeyboard(buildSimpleKeyboard(keyboard.Options{AutoBksp: true}, nil, nil))

	e.ProcessKey(matcher.KeyEvent{Character: 'a'})
	e.ProcessKey(matcher.KeyEvent{Character: 'b'})
	assert.Equal(t, "ab", e.Composing())

	act := e.ProcessKey(matcher.KeyEvent{VK: matcher.VKBack})
	assert.Equal(t, "a", e.Composing())
	assert.Contains(t, []ActionType{ActionDelete, ActionDeleteAndInsert}, act.Type)
}

func TestEngineEatFlagConsumesUnmatchedKeyWithoutCharacter(t *testing.T) {
	e := New()
	e.LoadKeyboard(buildSimpleKeyboard(keyboard.Options{Eat: true}, nil, nil))
	act := e.ProcessKey(matcher.KeyEvent{VK: 123})
	assert.Equal(t, ActionNone, act.Type)
	assert.Equal(t, "", e.Composing())
}

func TestTestProcessKeyDoesNotMutateEngine(t *testing.T) {
	e := New()
	e.LoadKeyboard(buildSimpleKeyboard(keyboard.Options{}, nil, nil))
	e.ProcessKey(matcher.KeyEvent{Character: 'x'})
	before := e.Composing()

	act := e.TestProcessKey(matcher.KeyEvent{Character: 'y'})
	assert.Equal(t, "xy", act.Composing)
	assert.Equal(t, before, e.Composing(), "test-mode must not mutate engine state")
}

func TestEngineRecursiveReMatch(t *testing.T) {
	// "a" -> "b" (text rule); the recursive pass stops at once because the
	// composing text "b" is a single ASCII-printable character
	r1 := keyboard.RawRule{LHS: opString("a"), RHS: opString("b")}
	e := New()
	e.LoadKeyboard(buildSimpleKeyboard(keyboard.Options{}, []keyboard.RawRule{r1}, nil))

	e.ProcessKey(matcher.KeyEvent{Character: 'a'})
	assert.Equal(t, "b", e.Composing())
}

func TestEngineStateActivationAndGate(t *testing.T) {
	strs := []codec.UTF16{}
	// rule 0: "a" -> activates state 1
	activate := keyboard.RawRule{LHS: opString("a"), RHS: []uint16{0xF9, 1}}
	// rule 1: state 1 + "b" -> "Z"
	gated := keyboard.RawRule{
		LHS: append([]uint16{0xF9, 1}, opString("b")...),
		RHS: opString("Z"),
	}
	e := New()
	e.LoadKeyboard(buildSimpleKeyboard(keyboard.Options{}, []keyboard.RawRule{activate, gated}, strs))

	e.ProcessKey(matcher.KeyEvent{Character: 'a'})
	act := e.ProcessKey(matcher.KeyEvent{Character: 'b'})
	assert.Equal(t, "Z", e.Composing())
	assert.Equal(t, ActionInsert, act.Type)
}
