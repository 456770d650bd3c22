// Package matcher implements the suffix matcher (C4): given a processed
// rule, a match context, and a key event, it decides whether the rule
// applies and, if so, what it captured.
package matcher

import "github.com/keymagic-rt/engine/pkg/vkmap"

// VK is an internal virtual-key code (pkg/vkmap's alphabet).
type VK = vkmap.VK

// Modifier-key identities re-exported for callers that only import
// pkg/matcher.
const (
	VKNull   = vkmap.VKNull
	VKShift  = vkmap.VKShift
	VKLShift = vkmap.VKLShift
	VKRShift = vkmap.VKRShift
	VKCtrl   = vkmap.VKCtrl
	VKLCtrl  = vkmap.VKLCtrl
	VKRCtrl  = vkmap.VKRCtrl
	VKAlt    = vkmap.VKAlt
	VKLAlt   = vkmap.VKLAlt
	VKRAlt   = vkmap.VKRAlt
	VKAltGr  = vkmap.VKAltGr
	VKBack   = vkmap.VKBack
)

// Modifiers is the live modifier-key state accompanying a key event.
type Modifiers struct {
	Shift bool
	Ctrl  bool
	Alt   bool
	Caps  bool
}

// satisfies reports whether the live modifier state satisfies a combo
// entry naming a generic modifier identity (§4.4 step 2's "the
// corresponding modifier flag in the input must be set").
func (m Modifiers) satisfies(vk VK) bool {
	switch vk {
	case VKShift, VKLShift, VKRShift:
		return m.Shift
	case VKCtrl, VKLCtrl, VKRCtrl:
		return m.Ctrl
	case VKAlt, VKLAlt, VKRAlt, VKAltGr:
		return m.Alt
	default:
		return false
	}
}

// KeyEvent is one physical key press as the matcher sees it: the internal
// virtual key, the character it produces (0 if none), and live modifiers.
type KeyEvent struct {
	VK        VK
	Character rune
	Modifiers Modifiers
}
