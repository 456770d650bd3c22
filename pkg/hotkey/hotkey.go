// Package hotkey parses the textual hotkey grammar used by keyboard
// metadata and host registration (§6 "Hotkey text grammar").
package hotkey

import (
	"errors"
	"strings"

	"github.com/keymagic-rt/engine/pkg/vkmap"
)

// ErrInvalidHotkey is returned when the input names zero or more than one
// non-modifier key, or contains a token the grammar does not recognize.
var ErrInvalidHotkey = errors.New("hotkey: invalid hotkey text")

// Modifiers is the set of modifier keys a hotkey requires held.
type Modifiers struct {
	Ctrl  bool
	Alt   bool
	Shift bool
	Meta  bool
}

// Hotkey is a parsed modifier set plus exactly one non-modifier key.
type Hotkey struct {
	Modifiers Modifiers
	Key       vkmap.VK
}

var modifierNames = map[string]func(*Modifiers){
	"ctrl":    func(m *Modifiers) { m.Ctrl = true },
	"control": func(m *Modifiers) { m.Ctrl = true },
	"alt":     func(m *Modifiers) { m.Alt = true },
	"option":  func(m *Modifiers) { m.Alt = true },
	"shift":   func(m *Modifiers) { m.Shift = true },
	"meta":    func(m *Modifiers) { m.Meta = true },
	"cmd":     func(m *Modifiers) { m.Meta = true },
	"command": func(m *Modifiers) { m.Meta = true },
	"win":     func(m *Modifiers) { m.Meta = true },
	"super":   func(m *Modifiers) { m.Meta = true },
}

// namedKeys maps the grammar's punctuation tokens and named keys to
// internal VK codes (§6). Letters, digits, F1-F12 and Numpad0-Numpad9 are
// handled programmatically below rather than enumerated here.
var namedKeys = map[string]vkmap.VK{
	"=":  vkmap.VKOEMPlus,
	"-":  vkmap.VKOEMMinus,
	",":  vkmap.VKOEMComma,
	".":  vkmap.VKOEMPeriod,
	";":  vkmap.VKOEM1,
	"/":  vkmap.VKOEM2,
	"`":  vkmap.VKOEM3,
	"[":  vkmap.VKOEM4,
	"\\": vkmap.VKOEM5,
	"]":  vkmap.VKOEM6,
	"'":  vkmap.VKOEM7,

	"plus":         vkmap.VKOEMPlus,
	"minus":        vkmap.VKOEMMinus,
	"comma":        vkmap.VKOEMComma,
	"period":       vkmap.VKOEMPeriod,
	"semicolon":    vkmap.VKOEM1,
	"slash":        vkmap.VKOEM2,
	"grave":        vkmap.VKOEM3,
	"leftbracket":  vkmap.VKOEM4,
	"lbracket":     vkmap.VKOEM4,
	"backslash":    vkmap.VKOEM5,
	"rightbracket": vkmap.VKOEM6,
	"rbracket":     vkmap.VKOEM6,
	"quote":        vkmap.VKOEM7,
	"apostrophe":   vkmap.VKOEM7,

	"space":     vkmap.VKSpace,
	"enter":     vkmap.VKReturn,
	"return":    vkmap.VKReturn,
	"tab":       vkmap.VKTab,
	"backspace": vkmap.VKBack,
	"back":      vkmap.VKBack,
	"delete":    vkmap.VKDelete,
	"del":       vkmap.VKDelete,
	"escape":    vkmap.VKEscape,
	"esc":       vkmap.VKEscape,
	"capslock":  vkmap.VKCapital,
	"caps":      vkmap.VKCapital,
	"capital":   vkmap.VKCapital,
	"insert":    vkmap.VKInsert,
	"ins":       vkmap.VKInsert,
	"home":      vkmap.VKHome,
	"end":       vkmap.VKEnd,
	"pageup":    vkmap.VKPrior,
	"pgup":      vkmap.VKPrior,
	"prior":     vkmap.VKPrior,
	"pagedown":  vkmap.VKNext,
	"pgdn":      vkmap.VKNext,
	"next":      vkmap.VKNext,
	"left":      vkmap.VKLeft,
	"up":        vkmap.VKUp,
	"right":     vkmap.VKRight,
	"down":      vkmap.VKDown,
}

// Parse parses a hotkey string, e.g. "Ctrl+Shift+U" or "Alt Space".
func Parse(text string) (Hotkey, error) {
	fields := splitTokens(text)
	if len(fields) == 0 {
		return Hotkey{}, ErrInvalidHotkey
	}

	var hk Hotkey
	keyFound := false
	for _, tok := range fields {
		lower := strings.ToLower(tok)
		if set, ok := modifierNames[lower]; ok {
			set(&hk.Modifiers)
			continue
		}
		vk, ok := resolveKey(tok, lower)
		if !ok {
			return Hotkey{}, ErrInvalidHotkey
		}
		if keyFound {
			return Hotkey{}, ErrInvalidHotkey
		}
		hk.Key = vk
		keyFound = true
	}
	if !keyFound {
		return Hotkey{}, ErrInvalidHotkey
	}
	return hk, nil
}

// splitTokens breaks hotkey text on '+' or whitespace, dropping empties.
func splitTokens(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return r == '+' || r == ' ' || r == '\t'
	})
}

func resolveKey(tok, lower string) (vkmap.VK, bool) {
	if vk, ok := namedKeys[lower]; ok {
		return vk, true
	}
	if vk, ok := letterOrDigit(tok); ok {
		return vk, true
	}
	if vk, ok := functionKey(lower); ok {
		return vk, true
	}
	if vk, ok := numpadKey(lower); ok {
		return vk, true
	}
	return 0, false
}

func letterOrDigit(tok string) (vkmap.VK, bool) {
	if len(tok) != 1 {
		return 0, false
	}
	c := tok[0]
	switch {
	case c >= 'a' && c <= 'z':
		return vkmap.VKKeyA + vkmap.VK(c-'a'), true
	case c >= 'A' && c <= 'Z':
		return vkmap.VKKeyA + vkmap.VK(c-'A'), true
	case c >= '0' && c <= '9':
		return vkmap.VKKey0 + vkmap.VK(c-'0'), true
	default:
		return 0, false
	}
}

func functionKey(lower string) (vkmap.VK, bool) {
	if len(lower) < 2 || lower[0] != 'f' {
		return 0, false
	}
	n, ok := parseSmallInt(lower[1:])
	if !ok || n < 1 || n > 12 {
		return 0, false
	}
	return vkmap.VKF1 + vkmap.VK(n-1), true
}

func numpadKey(lower string) (vkmap.VK, bool) {
	const prefix = "numpad"
	if !strings.HasPrefix(lower, prefix) {
		return 0, false
	}
	n, ok := parseSmallInt(lower[len(prefix):])
	if !ok || n < 0 || n > 9 {
		return 0, false
	}
	return vkmap.VKNumpad0 + vkmap.VK(n), true
}

func parseSmallInt(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	return n, true
}

// Format renders a Hotkey back to its canonical textual form, modifiers
// in a fixed order (Ctrl, Alt, Shift, Meta) then the key name.
func (h Hotkey) Format() string {
	var parts []string
	if h.Modifiers.Ctrl {
		parts = append(parts, "Ctrl")
	}
	if h.Modifiers.Alt {
		parts = append(parts, "Alt")
	}
	if h.Modifiers.Shift {
		parts = append(parts, "Shift")
	}
	if h.Modifiers.Meta {
		parts = append(parts, "Meta")
	}
	parts = append(parts, vkmap.Name(h.Key))
	return strings.Join(parts, "+")
}
