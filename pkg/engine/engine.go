// Package engine implements the engine state machine (C6): it
// orchestrates per-key processing over a loaded keyboard's rule set,
// maintaining composing text, active states, and backspace history.
package engine

import (
	"github.com/keymagic-rt/engine/pkg/codec"
	"github.com/keymagic-rt/engine/pkg/keyboard"
	"github.com/keymagic-rt/engine/pkg/matcher"
	"github.com/keymagic-rt/engine/pkg/output"
	"github.com/keymagic-rt/engine/pkg/rules"
)

// maxRecursion bounds the recursive re-match loop (§3 "Recursion depth:
// ≤ 100"); it is a safety net, not an expected depth (§9 "a tail loop,
// not actual recursion").
const maxRecursion = 100

// Engine is one input-context's keystroke-to-text state machine. It is
// not safe for concurrent use by more than one goroutine at a time
// (§5 "owned by exactly one thread at a time").
type Engine struct {
	keyboard *keyboard.File
	rules    []rules.Rule

	composing codec.UTF16
	states    map[int]bool
	hist      history

	logger func(string)
}

// New returns an empty engine with no keyboard loaded.
func New() *Engine {
	return &Engine{states: map[int]bool{}}
}

// SetLogger installs a callback for engine-internal diagnostics (§7
// "engine-internal inconsistencies are logged (if a logger is
// supplied)"). A nil logger (the default) discards them.
func (e *Engine) SetLogger(fn func(string)) {
	e.logger = fn
}

func (e *Engine) logf(msg string) {
	if e.logger != nil {
		e.logger(msg)
	}
}

// LoadKeyboard installs kb as the engine's keyboard, resetting all
// mutable state (§3 "replacing it resets engine").
func (e *Engine) LoadKeyboard(kb *keyboard.File) {
	e.keyboard = kb
	e.rules = rules.PreprocessAll(kb)
	e.Reset()
}

// Reset clears composing text, active states, and history without
// unloading the keyboard.
func (e *Engine) Reset() {
	e.composing = nil
	e.states = map[int]bool{}
	e.hist = history{}
}

// HasKeyboard reports whether a keyboard is currently loaded.
func (e *Engine) HasKeyboard() bool {
	return e.keyboard != nil
}

// HistoryLen returns the current number of snapshots in the backspace
// history, for verification tooling and tests (§8 property 5).
func (e *Engine) HistoryLen() int {
	return e.hist.len()
}

// Composing returns the current composing text as UTF-8.
func (e *Engine) Composing() string {
	return codec.EncodeUTF8(e.composing)
}

// SetComposing overwrites the composing text directly, clearing history
// and active states (§6 "engine_set_composition ... clears history;
// clears active states").
func (e *Engine) SetComposing(text string) error {
	u, err := codec.DecodeUTF8(text)
	if err != nil {
		return err
	}
	e.composing = u
	e.states = map[int]bool{}
	e.hist = history{}
	return nil
}

// internalState is the mutable part of an engine's behavior a single
// process pass reads and writes; factored out so test-mode can run the
// exact same logic against a throwaway copy.
type internalState struct {
	composing codec.UTF16
	states    map[int]bool
	hist      history
}

func (e *Engine) snapshotState() internalState {
	return internalState{
		composing: append(codec.UTF16(nil), e.composing...),
		states:    cloneStates(e.states),
		hist:      *e.hist.clone(),
	}
}

func (e *Engine) adopt(s internalState) {
	e.composing = s.composing
	e.states = s.states
	e.hist = s.hist
}

// ProcessKey runs k through the engine, mutating its state, and returns
// the resulting edit action.
func (e *Engine) ProcessKey(k matcher.KeyEvent) Action {
	if !e.HasKeyboard() {
		return Action{Type: ActionNone, Composing: e.Composing()}
	}
	st := internalState{composing: e.composing, states: e.states, hist: e.hist}
	act, next := e.process(st, k)
	e.adopt(next)
	return act
}

// TestProcessKey previews the action k would produce without mutating
// the engine (§4.6 "Test mode").
func (e *Engine) TestProcessKey(k matcher.KeyEvent) Action {
	if !e.HasKeyboard() {
		return Action{Type: ActionNone, Composing: e.Composing()}
	}
	st := e.snapshotState()
	act, _ := e.process(st, k)
	return act
}

// process implements §4.6's state machine against an explicit state
// value, returning the emitted action and the state to adopt. It never
// mutates e directly -- all interaction with engine state goes through
// the st parameter and its return value, so ProcessKey and
// TestProcessKey can share it safely.
func (e *Engine) process(st internalState, k matcher.KeyEvent) (Action, internalState) {
	oldComposing := st.composing
	isBackspace := k.VK == matcher.VKBack

	if rule, res, ok := e.findMatch(st, k); ok {
		if !isBackspace {
			st.hist.push(snapshot{
				composing:    append([]uint16(nil), st.composing...),
				activeStates: cloneStates(st.states),
			})
		}

		out := output.Generate(rule, res, e.keyboard.Strings)

		base := st.composing
		if res.ConsumedTypedChar {
			base = codec.Append(st.composing, codec.EncodeScalar(k.Character))
		}
		prefix := base
		if res.MatchedLength > 0 {
			prefix = base[:len(base)-res.MatchedLength]
		}
		st.composing = codec.Append(prefix, out.Fragment)
		st.states = statesFrom(out.NewStates)

		st = e.recurse(st)

		act := diff(oldComposing, st.composing)
		return act, st
	}

	// No match.
	if isBackspace && len(st.composing) > 0 {
		return e.backspace(st, oldComposing)
	}
	if e.keyboard.Options.Eat {
		return Action{Type: ActionNone, Composing: codec.EncodeUTF8(st.composing)}, st
	}
	if k.Character != 0 {
		st.hist.push(snapshot{
			composing:    append([]uint16(nil), st.composing...),
			activeStates: cloneStates(st.states),
		})
		st.composing = codec.Append(st.composing, codec.EncodeScalar(k.Character))
		st.states = map[int]bool{}
		return diff(oldComposing, st.composing), st
	}
	st.states = map[int]bool{}
	return Action{Type: ActionNone, Composing: codec.EncodeUTF8(st.composing)}, st
}

func (e *Engine) backspace(st internalState, oldComposing codec.UTF16) (Action, internalState) {
	if e.keyboard.Options.AutoBksp && st.hist.len() > 0 {
		restored, _ := st.hist.pop()
		st.composing = restored.composing
		st.states = restored.activeStates
		return diff(oldComposing, st.composing), st
	}
	st.composing = codec.Sub(st.composing, 0, len(st.composing)-1)
	st.states = map[int]bool{}
	return Action{
		Type:        ActionDelete,
		DeleteCount: 1,
		Composing:   codec.EncodeUTF8(st.composing),
	}, st
}

// recurse applies §4.6 step 4.d: keep re-matching text-only rules
// against the updated composing text until a stop condition fires.
func (e *Engine) recurse(st internalState) internalState {
	for depth := 0; depth < maxRecursion; depth++ {
		if len(st.composing) == 0 || codec.IsSingleASCIIPrintable(st.composing) {
			break
		}
		rule, res, ok := e.findTextOnlyMatch(st)
		if !ok {
			break
		}
		out := output.Generate(rule, res, e.keyboard.Strings)
		prefix := st.composing
		if res.MatchedLength > 0 {
			prefix = st.composing[:len(st.composing)-res.MatchedLength]
		}
		next := codec.Append(prefix, out.Fragment)
		if codec.Equal(next, st.composing) {
			break
		}
		st.composing = next
		st.states = statesFrom(out.NewStates)
	}
	return st
}

func statesFrom(ids []int) map[int]bool {
	m := make(map[int]bool, len(ids))
	for _, id := range ids {
		m[id] = true
	}
	return m
}

// findMatch walks the preprocessed rules in priority order and returns
// the first one that matches the live key event.
func (e *Engine) findMatch(st internalState, k matcher.KeyEvent) (rules.Rule, matcher.Result, bool) {
	ctx := matcher.Context{Composing: st.composing, ActiveStates: st.states}
	for _, r := range e.rules {
		if res, ok := matcher.Match(r, ctx, k, e.keyboard.Strings); ok {
			return r, res, true
		}
	}
	return rules.Rule{}, matcher.Result{}, false
}

// findTextOnlyMatch is findMatch restricted to rules with no VK segment,
// used by the recursive re-match pass (§4.6 "using only text-only
// rules (skip any rule with a VK segment)").
func (e *Engine) findTextOnlyMatch(st internalState) (rules.Rule, matcher.Result, bool) {
	ctx := matcher.Context{Composing: st.composing, ActiveStates: st.states}
	for _, r := range e.rules {
		if len(r.KeyCombo) > 0 {
			continue
		}
		if res, ok := matcher.Match(r, ctx, matcher.KeyEvent{}, e.keyboard.Strings); ok {
			return r, res, true
		}
	}
	return rules.Rule{}, matcher.Result{}, false
}
