package vkmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromWindowsLetters(t *testing.T) {
	assert.Equal(t, VKKeyA, FromWindows('A'))
	assert.Equal(t, VKKeyZ, FromWindows('Z'))
}

func TestFromWindowsDigits(t *testing.T) {
	assert.Equal(t, VKKey0, FromWindows('0'))
	assert.Equal(t, VKKey9, FromWindows('9'))
}

func TestFromWindowsFunctionKeys(t *testing.T) {
	assert.Equal(t, VKF1, FromWindows(0x70))
	assert.Equal(t, VKF12, FromWindows(0x7B))
}

func TestFromWindowsNumpad(t *testing.T) {
	assert.Equal(t, VKNumpad0, FromWindows(0x60))
	assert.Equal(t, VKNumpad9, FromWindows(0x69))
}

func TestFromWindowsModifierSides(t *testing.T) {
	assert.Equal(t, VKLShift, FromWindows(0xA0))
	assert.Equal(t, VKRShift, FromWindows(0xA1))
	assert.Equal(t, VKLCtrl, FromWindows(0xA2))
	assert.Equal(t, VKRAlt, FromWindows(0xA5))
}

func TestFromWindowsUnknownMapsToNull(t *testing.T) {
	assert.Equal(t, VKNull, FromWindows(0xFFEE))
}

func TestIsModifier(t *testing.T) {
	assert.True(t, IsModifier(VKShift))
	assert.True(t, IsModifier(VKAltGr))
	assert.False(t, IsModifier(VKKeyA))
}

func TestNameKnownAndFallback(t *testing.T) {
	assert.Equal(t, "Ctrl", Name(VKCtrl))
	assert.Equal(t, "A", Name(VKKeyA))
	assert.Equal(t, "F5", Name(VKF5))
	assert.Equal(t, "Numpad3", Name(VKNumpad3))
	assert.Equal(t, "VK9999", Name(VK(9999)))
}
