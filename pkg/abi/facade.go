package abi

import (
	"sync"

	"github.com/keymagic-rt/engine/pkg/engine"
	"github.com/keymagic-rt/engine/pkg/hotkey"
	"github.com/keymagic-rt/engine/pkg/keyboard"
	"github.com/keymagic-rt/engine/pkg/matcher"
	"github.com/keymagic-rt/engine/pkg/vkmap"
)

// Version is the ABI's own version string, independent of any keyboard
// file version (§6 "get_version").
const Version = "1.0.0"

// ActionKind mirrors engine.ActionType in the ABI's own vocabulary so
// cgo callers never need to import the engine package directly.
type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionInsert
	ActionBackspaceDelete
	ActionBackspaceDeleteAndInsert
)

// ProcessResult is the struct process_key fills at the C boundary (§6).
type ProcessResult struct {
	Action      ActionKind
	Text        string
	DeleteCount int
	Composing   string
	IsProcessed bool
}

func fromEngineAction(a engine.Action) ProcessResult {
	res := ProcessResult{
		DeleteCount: a.DeleteCount,
		Composing:   a.Composing,
		IsProcessed: true,
	}
	switch a.Type {
	case engine.ActionNone:
		res.Action = ActionNone
		res.IsProcessed = false
	case engine.ActionInsert:
		res.Action = ActionInsert
		res.Text = a.Insert
	case engine.ActionDelete:
		res.Action = ActionBackspaceDelete
	case engine.ActionDeleteAndInsert:
		res.Action = ActionBackspaceDeleteAndInsert
		res.Text = a.Insert
	}
	return res
}

// engineEntry pairs an owned engine with the per-handle lock the ABI
// uses to serialize concurrent host access (§5 "the host ABI serializes
// accesses through a per-handle lock").
type engineEntry struct {
	mu  sync.Mutex
	eng *engine.Engine
}

// Facade is the process-wide handle registry the C boundary talks to.
// It holds no domain logic of its own beyond handle bookkeeping and
// type translation; every real operation delegates to pkg/engine,
// pkg/keyboard or pkg/hotkey.
type Facade struct {
	engines   *registry[*engineEntry]
	keyboards *registry[*keyboard.File]
}

// NewFacade returns an empty facade with no live engines or keyboards.
func NewFacade() *Facade {
	return &Facade{
		engines:   newRegistry[*engineEntry](),
		keyboards: newRegistry[*keyboard.File](),
	}
}

// EngineNew creates a fresh, keyboard-less engine and returns its handle.
func (f *Facade) EngineNew() Handle {
	return f.engines.insert(&engineEntry{eng: engine.New()})
}

// EngineFree releases an engine handle.
func (f *Facade) EngineFree(h Handle) Status {
	if !f.engines.remove(h) {
		return ErrorInvalidHandle
	}
	return Success
}

func (f *Facade) lockEngine(h Handle) (*engineEntry, Status) {
	e, ok := f.engines.get(h)
	if !ok {
		return nil, ErrorInvalidHandle
	}
	e.mu.Lock()
	return e, Success
}

// EngineLoadKeyboardFromMemory loads a keyboard file's bytes directly
// into engine h.
func (f *Facade) EngineLoadKeyboardFromMemory(h Handle, data []byte) Status {
	e, st := f.lockEngine(h)
	if st != Success {
		return st
	}
	defer e.mu.Unlock()

	kb, err := keyboard.LoadFromMemory(data)
	if err != nil {
		return ErrorEngineFailure
	}
	e.eng.LoadKeyboard(kb)
	return Success
}

// EngineLoadKeyboardFromFile loads a keyboard file from disk into engine h.
func (f *Facade) EngineLoadKeyboardFromFile(h Handle, path string) Status {
	e, st := f.lockEngine(h)
	if st != Success {
		return st
	}
	defer e.mu.Unlock()

	kb, err := keyboard.LoadFromFile(path)
	if err != nil {
		return ErrorEngineFailure
	}
	e.eng.LoadKeyboard(kb)
	return Success
}

// EngineReset clears engine h's composing text, active states and history.
func (f *Facade) EngineReset(h Handle) Status {
	e, st := f.lockEngine(h)
	if st != Success {
		return st
	}
	defer e.mu.Unlock()
	e.eng.Reset()
	return Success
}

// EngineGetComposition returns engine h's current composing text as UTF-8.
func (f *Facade) EngineGetComposition(h Handle) (string, Status) {
	e, st := f.lockEngine(h)
	if st != Success {
		return "", st
	}
	defer e.mu.Unlock()
	return e.eng.Composing(), Success
}

// EngineSetComposition overwrites engine h's composing text directly.
func (f *Facade) EngineSetComposition(h Handle, text string) Status {
	e, st := f.lockEngine(h)
	if st != Success {
		return st
	}
	defer e.mu.Unlock()
	if err := e.eng.SetComposing(text); err != nil {
		return ErrorInvalidParameter
	}
	return Success
}

// EngineProcessKey runs a key event (already in internal VK form)
// through engine h, mutating it.
func (f *Facade) EngineProcessKey(h Handle, k matcher.KeyEvent) (ProcessResult, Status) {
	return f.processKey(h, k, false)
}

// EngineProcessKeyWindows translates a Windows VK code before processing.
func (f *Facade) EngineProcessKeyWindows(h Handle, winVK uint16, char rune, mods matcher.Modifiers) (ProcessResult, Status) {
	k := matcher.KeyEvent{VK: vkmap.FromWindows(winVK), Character: char, Modifiers: mods}
	return f.processKey(h, k, false)
}

// EngineProcessKeyTestWindows is the non-mutating preview variant of
// EngineProcessKeyWindows (§6 "engine_process_key_test_win").
func (f *Facade) EngineProcessKeyTestWindows(h Handle, winVK uint16, char rune, mods matcher.Modifiers) (ProcessResult, Status) {
	k := matcher.KeyEvent{VK: vkmap.FromWindows(winVK), Character: char, Modifiers: mods}
	return f.processKey(h, k, true)
}

func (f *Facade) processKey(h Handle, k matcher.KeyEvent, testMode bool) (ProcessResult, Status) {
	e, st := f.lockEngine(h)
	if st != Success {
		return ProcessResult{}, st
	}
	defer e.mu.Unlock()

	if !e.eng.HasKeyboard() {
		return ProcessResult{}, ErrorNoKeyboard
	}

	var act engine.Action
	if testMode {
		act = e.eng.TestProcessKey(k)
	} else {
		act = e.eng.ProcessKey(k)
	}
	return fromEngineAction(act), Success
}

// KeyboardLoad loads a keyboard file's metadata (for hosts that only
// need name/description/hotkey/icon, not a full engine) as a separate
// handle (§6 "Metadata accessors on a separately-loaded keyboard file
// handle").
func (f *Facade) KeyboardLoad(path string) (Handle, Status) {
	kb, err := keyboard.LoadFromFile(path)
	if err != nil {
		return 0, ErrorEngineFailure
	}
	return f.keyboards.insert(kb), Success
}

// KeyboardFree releases a metadata-only keyboard handle.
func (f *Facade) KeyboardFree(h Handle) Status {
	if !f.keyboards.remove(h) {
		return ErrorInvalidHandle
	}
	return Success
}

func (f *Facade) keyboardMeta(h Handle, get func(*keyboard.File) string) (string, Status) {
	kb, ok := f.keyboards.get(h)
	if !ok {
		return "", ErrorInvalidHandle
	}
	return get(kb), Success
}

// KeyboardName returns a loaded keyboard's name tag.
func (f *Facade) KeyboardName(h Handle) (string, Status) {
	return f.keyboardMeta(h, (*keyboard.File).Name)
}

// KeyboardDescription returns a loaded keyboard's description tag.
func (f *Facade) KeyboardDescription(h Handle) (string, Status) {
	return f.keyboardMeta(h, (*keyboard.File).Description)
}

// KeyboardHotkey returns a loaded keyboard's textual hotkey tag.
func (f *Facade) KeyboardHotkey(h Handle) (string, Status) {
	return f.keyboardMeta(h, (*keyboard.File).Hotkey)
}

// KeyboardIconData returns a loaded keyboard's raw icon bytes.
func (f *Facade) KeyboardIconData(h Handle) ([]byte, Status) {
	kb, ok := f.keyboards.get(h)
	if !ok {
		return nil, ErrorInvalidHandle
	}
	return kb.IconData(), Success
}

// ParseHotkey parses hotkey text per §6's grammar.
func (f *Facade) ParseHotkey(text string) (hotkey.Hotkey, bool) {
	hk, err := hotkey.Parse(text)
	if err != nil {
		return hotkey.Hotkey{}, false
	}
	return hk, true
}

// VKToString renders an internal VK code as a human-readable name.
func (f *Facade) VKToString(vk vkmap.VK) string {
	return vkmap.Name(vk)
}
