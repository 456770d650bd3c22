package vkmap

import "fmt"

var vkNames = map[VK]string{
	VKBack: "Backspace", VKTab: "Tab", VKReturn: "Enter", VKEscape: "Escape",
	VKSpace: "Space", VKPrior: "PageUp", VKNext: "PageDown", VKEnd: "End",
	VKHome: "Home", VKLeft: "Left", VKUp: "Up", VKRight: "Right", VKDown: "Down",
	VKInsert: "Insert", VKDelete: "Delete", VKCapital: "CapsLock",
	VKShift: "Shift", VKLShift: "LShift", VKRShift: "RShift",
	VKCtrl: "Ctrl", VKLCtrl: "LCtrl", VKRCtrl: "RCtrl",
	VKAlt: "Alt", VKLAlt: "LAlt", VKRAlt: "RAlt", VKAltGr: "AltGr",
	VKOEM1: ";", VKOEMPlus: "=", VKOEMComma: ",", VKOEMMinus: "-",
	VKOEMPeriod: ".", VKOEM2: "/", VKOEM3: "`", VKOEM4: "[", VKOEM5: "\\",
	VKOEM6: "]", VKOEM7: "'",
}

// Name returns a human-readable name for vk, matching the hotkey
// grammar's own vocabulary where one exists, falling back to "VK<n>".
func Name(vk VK) string {
	if n, ok := vkNames[vk]; ok {
		return n
	}
	switch {
	case vk >= VKKeyA && vk <= VKKeyZ:
		return string(rune('A' + (vk - VKKeyA)))
	case vk >= VKKey0 && vk <= VKKey9:
		return string(rune('0' + (vk - VKKey0)))
	case vk >= VKNumpad0 && vk <= VKNumpad9:
		return fmt.Sprintf("Numpad%d", vk-VKNumpad0)
	case vk >= VKF1 && vk <= VKF12:
		return fmt.Sprintf("F%d", vk-VKF1+1)
	default:
		return fmt.Sprintf("VK%d", vk)
	}
}
