// Package verify adapts the teacher's worker-pool shape into a
// property-verification tool: it runs independent key scripts, each on
// its own engine over one shared loaded keyboard, in parallel and checks the testable
// properties of §8 that a single unit test can't exercise at scale --
// test-mode non-mutation and the history-never-grows-on-backspace
// invariant.
package verify

import (
	"fmt"
	"reflect"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/keymagic-rt/engine/pkg/engine"
	"github.com/keymagic-rt/engine/pkg/keyboard"
	"github.com/keymagic-rt/engine/pkg/matcher"
)

// Violation records one property failure found while running a script.
type Violation struct {
	ScriptIndex int
	StepIndex   int
	Property    string
	Detail      string
}

// Table collects violations found across all workers in a mutex-guarded
// slice.
type Table struct {
	mu         sync.Mutex
	violations []Violation
}

func newTable() *Table {
	return &Table{}
}

func (t *Table) add(v Violation) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.violations = append(t.violations, v)
}

// Violations returns a copy of every violation found so far.
func (t *Table) Violations() []Violation {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Violation, len(t.violations))
	copy(out, t.violations)
	return out
}

// Script is one sequence of key events to replay against a fresh engine.
type Script struct {
	Keys []matcher.KeyEvent
}

// WorkerPool runs scripts concurrently against one shared, already-loaded
// keyboard, which every script's engine reads without copying.
type WorkerPool struct {
	NumWorkers int
	Results    *Table

	kb      *keyboard.File
	checked atomic.Int64
}

// NewWorkerPool creates a pool with the given number of workers; a
// non-positive count defaults to GOMAXPROCS.
func NewWorkerPool(kb *keyboard.File, numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}
	return &WorkerPool{
		NumWorkers: numWorkers,
		Results:    newTable(),
		kb:         kb,
	}
}

// Stats returns the number of scripts checked so far.
func (wp *WorkerPool) Stats() int64 {
	return wp.checked.Load()
}

// Run distributes scripts across workers and blocks until all complete.
// Each script gets its own engine loaded from the pool's keyboard, so
// workers never share mutable engine state (§5's per-engine ownership
// rule applies here too, just with one engine per goroutine instead of
// per input context).
func (wp *WorkerPool) Run(scripts []Script, verbose bool) {
	ch := make(chan indexedScript, len(scripts))
	for i, s := range scripts {
		ch <- indexedScript{index: i, script: s}
	}
	close(ch)

	start := time.Now()
	var wg sync.WaitGroup
	for i := 0; i < wp.NumWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for task := range ch {
				wp.runScript(task.index, task.script)
				wp.checked.Add(1)
			}
		}()
	}
	wg.Wait()

	if verbose {
		fmt.Printf("verify: %d scripts checked in %s, %d violations\n",
			wp.checked.Load(), time.Since(start).Round(time.Millisecond), len(wp.Results.Violations()))
	}
}

type indexedScript struct {
	index  int
	script Script
}

func (wp *WorkerPool) runScript(scriptIdx int, s Script) {
	e := engine.New()
	e.LoadKeyboard(wp.kb)

	histLen := 0
	for step, key := range s.Keys {
		before := snapshotEngine(e)
		e.TestProcessKey(key)
		after := snapshotEngine(e)
		if !reflect.DeepEqual(before, after) {
			wp.Results.add(Violation{
				ScriptIndex: scriptIdx,
				StepIndex:   step,
				Property:    "test-mode-non-mutation",
				Detail:      "TestProcessKey changed engine state",
			})
		}

		isBackspace := key.VK == matcher.VKBack
		e.ProcessKey(key)
		newHistLen := e.HistoryLen()

		if isBackspace && newHistLen > histLen {
			wp.Results.add(Violation{
				ScriptIndex: scriptIdx,
				StepIndex:   step,
				Property:    "backspace-never-grows-history",
				Detail:      fmt.Sprintf("history grew %d -> %d on backspace", histLen, newHistLen),
			})
		}
		if newHistLen > 50 {
			wp.Results.add(Violation{
				ScriptIndex: scriptIdx,
				StepIndex:   step,
				Property:    "history-cap-50",
				Detail:      fmt.Sprintf("history length %d exceeds cap", newHistLen),
			})
		}
		histLen = newHistLen
	}
}

type engineSnapshot struct {
	composing string
}

func snapshotEngine(e *engine.Engine) engineSnapshot {
	return engineSnapshot{composing: e.Composing()}
}
