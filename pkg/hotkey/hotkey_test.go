package hotkey

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keymagic-rt/engine/pkg/vkmap"
)

func TestParseCtrlShiftLetter(t *testing.T) {
	hk, err := Parse("Ctrl+Shift+U")
	require.NoError(t, err)
	assert.True(t, hk.Modifiers.Ctrl)
	assert.True(t, hk.Modifiers.Shift)
	assert.False(t, hk.Modifiers.Alt)
	assert.Equal(t, vkmap.VKKeyU, hk.Key)
}

func TestParseSpaceSeparatedAndAliases(t *testing.T) {
	hk, err := Parse("Option Space")
	require.NoError(t, err)
	assert.True(t, hk.Modifiers.Alt)
	assert.Equal(t, vkmap.VKSpace, hk.Key)
}

func TestParsePunctuationAndFunctionKey(t *testing.T) {
	hk, err := Parse("Ctrl+F5")
	require.NoError(t, err)
	assert.Equal(t, vkmap.VKF5, hk.Key)

	hk2, err := Parse("Shift+,")
	require.NoError(t, err)
	assert.Equal(t, vkmap.VKOEMComma, hk2.Key)
}

func TestParseNumpad(t *testing.T) {
	hk, err := Parse("Ctrl+Numpad7")
	require.NoError(t, err)
	assert.Equal(t, vkmap.VKNumpad7, hk.Key)
}

func TestParseFailsWithNoKey(t *testing.T) {
	_, err := Parse("Ctrl+Shift")
	assert.ErrorIs(t, err, ErrInvalidHotkey)
}

func TestParseFailsWithTwoKeys(t *testing.T) {
	_, err := Parse("Ctrl+A+B")
	assert.ErrorIs(t, err, ErrInvalidHotkey)
}

func TestParseFailsOnUnknownToken(t *testing.T) {
	_, err := Parse("Ctrl+Nonsense")
	assert.ErrorIs(t, err, ErrInvalidHotkey)
}

func TestFormatRoundTrip(t *testing.T) {
	hk, err := Parse("Ctrl+Alt+Delete")
	require.NoError(t, err)
	assert.Equal(t, "Ctrl+Alt+Delete", hk.Format())
}
