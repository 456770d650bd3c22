// Package vkmap defines the engine's internal virtual-key alphabet and
// the fixed Windows VK -> internal VK translation table hosts rely on
// (§6 "Windows VK -> internal VK mapping"). The mapping must be
// reproduced byte-for-byte to stay host-compatible, so the table below
// is exhaustive rather than derived.
package vkmap

// VK is an internal virtual-key code: the alphabet every rule's
// key_combo and every matched KeyEvent is expressed in.
type VK uint16

// The internal VK alphabet. Values are stable identifiers private to
// this engine. Digits, letters, numpad, function and OEM keys share the
// Windows VK values; the other keys do not (see the windowsToInternal
// table for that translation).
const (
	VKNull VK = 0

	VKBack      VK = 1
	VKTab       VK = 2
	VKReturn    VK = 3
	VKEscape    VK = 4
	VKSpace     VK = 5
	VKPrior     VK = 6 // Page Up
	VKNext      VK = 7 // Page Down
	VKEnd       VK = 8
	VKHome      VK = 9
	VKLeft      VK = 10
	VKUp        VK = 11
	VKRight     VK = 12
	VKDown      VK = 13
	VKInsert    VK = 14
	VKDelete    VK = 15
	VKCapital   VK = 16

	VKShift  VK = 20
	VKLShift VK = 21
	VKRShift VK = 22
	VKCtrl   VK = 23
	VKLCtrl  VK = 24
	VKRCtrl  VK = 25
	VKAlt    VK = 26
	VKLAlt   VK = 27
	VKRAlt   VK = 28
	VKAltGr  VK = 29

	VKKey0 VK = 48
	VKKey1 VK = 49
	VKKey2 VK = 50
	VKKey3 VK = 51
	VKKey4 VK = 52
	VKKey5 VK = 53
	VKKey6 VK = 54
	VKKey7 VK = 55
	VKKey8 VK = 56
	VKKey9 VK = 57

	VKKeyA VK = 65
	VKKeyB VK = 66
	VKKeyC VK = 67
	VKKeyD VK = 68
	VKKeyE VK = 69
	VKKeyF VK = 70
	VKKeyG VK = 71
	VKKeyH VK = 72
	VKKeyI VK = 73
	VKKeyJ VK = 74
	VKKeyK VK = 75
	VKKeyL VK = 76
	VKKeyM VK = 77
	VKKeyN VK = 78
	VKKeyO VK = 79
	VKKeyP VK = 80
	VKKeyQ VK = 81
	VKKeyR VK = 82
	VKKeyS VK = 83
	VKKeyT VK = 84
	VKKeyU VK = 85
	VKKeyV VK = 86
	VKKeyW VK = 87
	VKKeyX VK = 88
	VKKeyY VK = 89
	VKKeyZ VK = 90

	VKNumpad0 VK = 96
	VKNumpad1 VK = 97
	VKNumpad2 VK = 98
	VKNumpad3 VK = 99
	VKNumpad4 VK = 100
	VKNumpad5 VK = 101
	VKNumpad6 VK = 102
	VKNumpad7 VK = 103
	VKNumpad8 VK = 104
	VKNumpad9 VK = 105

	VKF1  VK = 112
	VKF2  VK = 113
	VKF3  VK = 114
	VKF4  VK = 115
	VKF5  VK = 116
	VKF6  VK = 117
	VKF7  VK = 118
	VKF8  VK = 119
	VKF9  VK = 120
	VKF10 VK = 121
	VKF11 VK = 122
	VKF12 VK = 123

	// OEM punctuation keys, named positionally per the US keyboard (§6's
	// punctuation map): ; = , - . / ` [ \ ] '
	VKOEM1     VK = 186 // ;
	VKOEMPlus  VK = 187 // =
	VKOEMComma VK = 188 // ,
	VKOEMMinus VK = 189 // -
	VKOEMPeriod VK = 190 // .
	VKOEM2     VK = 191 // /
	VKOEM3     VK = 192 // `
	VKOEM4     VK = 219 // [
	VKOEM5     VK = 220 // \
	VKOEM6     VK = 221 // ]
	VKOEM7     VK = 222 // '
)

// IsModifier reports whether vk names a modifier-key identity rather
// than a concrete key (§4.4 step 2's combo-matching distinction).
func IsModifier(vk VK) bool {
	switch vk {
	case VKShift, VKLShift, VKRShift,
		VKCtrl, VKLCtrl, VKRCtrl,
		VKAlt, VKLAlt, VKRAlt, VKAltGr:
		return true
	default:
		return false
	}
}
