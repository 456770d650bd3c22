package vkmap

// Windows VK codes, as defined by the Win32 winuser.h constants this
// table translates from. Only the subset the internal alphabet has a
// home for is listed; every other code maps to VKNull.
const (
	winVKBack    = 0x08
	winVKTab     = 0x09
	winVKReturn  = 0x0D
	winVKShift   = 0x10
	winVKControl = 0x11
	winVKMenu    = 0x12 // Alt
	winVKCapital = 0x14
	winVKEscape  = 0x1B
	winVKSpace   = 0x20
	winVKPrior   = 0x21
	winVKNext    = 0x22
	winVKEnd     = 0x23
	winVKHome    = 0x24
	winVKLeft    = 0x25
	winVKUp      = 0x26
	winVKRight   = 0x27
	winVKDown    = 0x28
	winVKInsert  = 0x2D
	winVKDelete  = 0x2E

	winVKLShift   = 0xA0
	winVKRShift   = 0xA1
	winVKLControl = 0xA2
	winVKRControl = 0xA3
	winVKLMenu    = 0xA4
	winVKRMenu    = 0xA5

	winVKNumpad0 = 0x60
	winVKF1      = 0x70

	winVKOEM1     = 0xBA // ;
	winVKOEMPlus  = 0xBB // =
	winVKOEMComma = 0xBC // ,
	winVKOEMMinus = 0xBD // -
	winVKOEMPeriod = 0xBE // .
	winVKOEM2     = 0xBF // /
	winVKOEM3     = 0xC0 // `
	winVKOEM4     = 0xDB // [
	winVKOEM5     = 0xDC // \
	winVKOEM6     = 0xDD // ]
	winVKOEM7     = 0xDE // '
)

// windowsToInternal is the fixed 1:1 Windows VK -> internal VK table
// (§6). Built once at package init from contiguous runs (digits,
// letters, numpad, function keys) plus explicit entries for everything
// else, rather than a giant literal map, but the resulting table is the
// same lookup either way.
var windowsToInternal = buildWindowsTable()

func buildWindowsTable() map[uint16]VK {
	m := map[uint16]VK{
		winVKBack:    VKBack,
		winVKTab:     VKTab,
		winVKReturn:  VKReturn,
		winVKShift:   VKShift,
		winVKControl: VKCtrl,
		winVKMenu:    VKAlt,
		winVKCapital: VKCapital,
		winVKEscape:  VKEscape,
		winVKSpace:   VKSpace,
		winVKPrior:   VKPrior,
		winVKNext:    VKNext,
		winVKEnd:     VKEnd,
		winVKHome:    VKHome,
		winVKLeft:    VKLeft,
		winVKUp:      VKUp,
		winVKRight:   VKRight,
		winVKDown:    VKDown,
		winVKInsert:  VKInsert,
		winVKDelete:  VKDelete,

		winVKLShift:   VKLShift,
		winVKRShift:   VKRShift,
		winVKLControl: VKLCtrl,
		winVKRControl: VKRCtrl,
		winVKLMenu:    VKLAlt,
		winVKRMenu:    VKRAlt,

		winVKOEM1:      VKOEM1,
		winVKOEMPlus:   VKOEMPlus,
		winVKOEMComma:  VKOEMComma,
		winVKOEMMinus:  VKOEMMinus,
		winVKOEMPeriod: VKOEMPeriod,
		winVKOEM2:      VKOEM2,
		winVKOEM3:      VKOEM3,
		winVKOEM4:      VKOEM4,
		winVKOEM5:      VKOEM5,
		winVKOEM6:      VKOEM6,
		winVKOEM7:      VKOEM7,
	}
	for i := 0; i < 10; i++ {
		m[uint16('0')+uint16(i)] = VKKey0 + VK(i)
		m[uint16(winVKNumpad0)+uint16(i)] = VKNumpad0 + VK(i)
	}
	for i := 0; i < 26; i++ {
		m[uint16('A')+uint16(i)] = VKKeyA + VK(i)
	}
	for i := 0; i < 12; i++ {
		m[uint16(winVKF1)+uint16(i)] = VKF1 + VK(i)
	}
	return m
}

// FromWindows translates a Windows virtual-key code to the engine's
// internal VK alphabet. Unknown codes map to VKNull (§6).
func FromWindows(winVK uint16) VK {
	if vk, ok := windowsToInternal[winVK]; ok {
		return vk
	}
	return VKNull
}
