package verify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keymagic-rt/engine/pkg/keyboard"
	"github.com/keymagic-rt/engine/pkg/matcher"
	"github.com/keymagic-rt/engine/pkg/rules"
)

func simpleKeyboard() *keyboard.File {
	lhs := []uint16{uint16(rules.OpString), 1, 'a'}
	rhs := []uint16{uint16(rules.OpString), 1, 'b'}
	return &keyboard.File{
		MajorVersion: 1, MinorVersion: 5,
		Options: keyboard.Options{AutoBksp: true},
		Info:    map[keyboard.InfoTag][]byte{},
		Rules:   []keyboard.RawRule{{LHS: lhs, RHS: rhs}},
	}
}

func TestWorkerPoolFindsNoViolationsOnWellBehavedScripts(t *testing.T) {
	kb := simpleKeyboard()
	scripts := []Script{
		{Keys: []matcher.KeyEvent{{Character: 'a'}, {Character: 'x'}, {VK: matcher.VKBack}}},
		{Keys: []matcher.KeyEvent{{Character: 'z'}, {VK: matcher.VKBack}, {VK: matcher.VKBack}}},
	}
	wp := NewWorkerPool(kb, 2)
	wp.Run(scripts, false)

	require.Empty(t, wp.Results.Violations())
	assert.Equal(t, int64(2), wp.Stats())
}

func TestWorkerPoolDefaultsWorkerCount(t *testing.T) {
	wp := NewWorkerPool(simpleKeyboard(), 0)
	assert.Greater(t, wp.NumWorkers, 0)
}

func TestWorkerPoolManyScriptsConcurrently(t *testing.T) {
	kb := simpleKeyboard()
	var scripts []Script
	for i := 0; i < 50; i++ {
		scripts = append(scripts, Script{Keys: []matcher.KeyEvent{
			{Character: 'a'}, {Character: 'b'}, {VK: matcher.VKBack}, {VK: matcher.VKBack},
		}})
	}
	wp := NewWorkerPool(kb, 4)
	wp.Run(scripts, false)
	assert.Equal(t, int64(50), wp.Stats())
	assert.Empty(t, wp.Results.Violations())
}
