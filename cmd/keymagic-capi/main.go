// Command keymagic-capi is the stable C-callable facade (§6): built with
// `go build -buildmode=c-shared`, it exposes pkg/abi's Facade through
// cgo //export functions. This is the only package in the module that
// should ever import "C" -- everything else stays pure Go so it can be
// embedded, tested, and reused outside a C host (§9 "expose handles
// only at the C boundary").
package main

/*
#include <stdlib.h>

typedef struct {
	int action_type;
	char *text;
	int delete_count;
	char *composing_text;
	int is_processed;
} km_process_result;
*/
import "C"

import (
	"unsafe"

	"github.com/keymagic-rt/engine/pkg/abi"
	"github.com/keymagic-rt/engine/pkg/matcher"
	"github.com/keymagic-rt/engine/pkg/vkmap"
)

var facade = abi.NewFacade()

//export engine_new
func engine_new() C.ulonglong {
	return C.ulonglong(facade.EngineNew())
}

//export engine_free
func engine_free(h C.ulonglong) C.int {
	return C.int(facade.EngineFree(abi.Handle(h)))
}

//export engine_load_keyboard
func engine_load_keyboard(h C.ulonglong, path *C.char) C.int {
	return C.int(facade.EngineLoadKeyboardFromFile(abi.Handle(h), C.GoString(path)))
}

//export engine_load_keyboard_from_memory
func engine_load_keyboard_from_memory(h C.ulonglong, data *C.char, length C.int) C.int {
	bytes := C.GoBytes(unsafe.Pointer(data), length)
	return C.int(facade.EngineLoadKeyboardFromMemory(abi.Handle(h), bytes))
}

//export engine_reset
func engine_reset(h C.ulonglong) C.int {
	return C.int(facade.EngineReset(abi.Handle(h)))
}

//export engine_get_composition
func engine_get_composition(h C.ulonglong) *C.char {
	text, st := facade.EngineGetComposition(abi.Handle(h))
	if st != abi.Success {
		return nil
	}
	return C.CString(text)
}

//export engine_set_composition
func engine_set_composition(h C.ulonglong, text *C.char) C.int {
	return C.int(facade.EngineSetComposition(abi.Handle(h), C.GoString(text)))
}

//export engine_process_key
func engine_process_key(h C.ulonglong, vkInternal C.int, char C.int, shift, ctrl, alt, caps C.int, out *km_process_result) C.int {
	mods := matcher.Modifiers{Shift: shift != 0, Ctrl: ctrl != 0, Alt: alt != 0, Caps: caps != 0}
	k := matcher.KeyEvent{VK: vkmap.VK(vkInternal), Character: rune(char), Modifiers: mods}
	res, st := facade.EngineProcessKey(abi.Handle(h), k)
	fillResult(out, res)
	return C.int(st)
}

//export engine_process_key_win
func engine_process_key_win(h C.ulonglong, windowsVK C.int, char C.int, shift, ctrl, alt, caps C.int, out *km_process_result) C.int {
	mods := matcher.Modifiers{Shift: shift != 0, Ctrl: ctrl != 0, Alt: alt != 0, Caps: caps != 0}
	res, st := facade.EngineProcessKeyWindows(abi.Handle(h), uint16(windowsVK), rune(char), mods)
	fillResult(out, res)
	return C.int(st)
}

//export engine_process_key_test_win
func engine_process_key_test_win(h C.ulonglong, windowsVK C.int, char C.int, shift, ctrl, alt, caps C.int, out *km_process_result) C.int {
	mods := matcher.Modifiers{Shift: shift != 0, Ctrl: ctrl != 0, Alt: alt != 0, Caps: caps != 0}
	res, st := facade.EngineProcessKeyTestWindows(abi.Handle(h), uint16(windowsVK), rune(char), mods)
	fillResult(out, res)
	return C.int(st)
}

func fillResult(out *km_process_result, res abi.ProcessResult) {
	if out == nil {
		return
	}
	out.action_type = C.int(res.Action)
	out.text = C.CString(res.Text)
	out.delete_count = C.int(res.DeleteCount)
	out.composing_text = C.CString(res.Composing)
	if res.IsProcessed {
		out.is_processed = 1
	} else {
		out.is_processed = 0
	}
}

//export km_load
func km_load(path *C.char) C.ulonglong {
	h, st := facade.KeyboardLoad(C.GoString(path))
	if st != abi.Success {
		return 0
	}
	return C.ulonglong(h)
}

//export km_free
func km_free(h C.ulonglong) C.int {
	return C.int(facade.KeyboardFree(abi.Handle(h)))
}

//export km_get_name
func km_get_name(h C.ulonglong) *C.char {
	name, st := facade.KeyboardName(abi.Handle(h))
	if st != abi.Success {
		return nil
	}
	return C.CString(name)
}

//export km_get_description
func km_get_description(h C.ulonglong) *C.char {
	desc, st := facade.KeyboardDescription(abi.Handle(h))
	if st != abi.Success {
		return nil
	}
	return C.CString(desc)
}

//export km_get_hotkey
func km_get_hotkey(h C.ulonglong) *C.char {
	hk, st := facade.KeyboardHotkey(abi.Handle(h))
	if st != abi.Success {
		return nil
	}
	return C.CString(hk)
}

//export km_get_icon_data
func km_get_icon_data(h C.ulonglong, outLen *C.int) *C.char {
	data, st := facade.KeyboardIconData(abi.Handle(h))
	if st != abi.Success || len(data) == 0 {
		*outLen = 0
		return nil
	}
	*outLen = C.int(len(data))
	return (*C.char)(C.CBytes(data))
}

//export parse_hotkey
func parse_hotkey(text *C.char) C.int {
	_, ok := facade.ParseHotkey(C.GoString(text))
	if ok {
		return 1
	}
	return 0
}

//export vk_to_string
func vk_to_string(vk C.int) *C.char {
	return C.CString(facade.VKToString(vkmap.VK(vk)))
}

//export get_version
func get_version() *C.char {
	return C.CString(abi.Version)
}

//export free_string
func free_string(s *C.char) {
	C.free(unsafe.Pointer(s))
}

func main() {}
