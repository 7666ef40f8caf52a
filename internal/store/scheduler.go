package store

import (
	"log"
	"sync"
	"time"
)

// flushDelay is the fixed gap between a mutation and the write that
// persists it. Playback heartbeats mutate the store several times a
// second; the scheduler collapses those bursts into one write per window.
const flushDelay = 1 * time.Second

// flushScheduler is a two-state (idle/scheduled) debouncer with a
// dirty-while-in-flight marker. Mutations call Request and return
// immediately - nothing here ever blocks a caller on disk I/O.
type flushScheduler struct {
	mu    sync.Mutex
	delay time.Duration
	flush func() error

	timer     *time.Timer
	scheduled bool
	running   bool // the flush callback is executing right now
	dirty     bool // a Request arrived while a flush was running
	inFlight  sync.WaitGroup

	stopped bool
}

func newFlushScheduler(delay time.Duration, flush func() error) *flushScheduler {
	return &flushScheduler{delay: delay, flush: flush}
}

// Request asks for a flush. With one already scheduled or in flight
// there is nothing to start: requests landing before the write begins
// are captured by its snapshot anyway, and requests landing during the
// write set the dirty marker so a trailing flush picks them up.
func (f *flushScheduler) Request() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.stopped {
		return
	}
	if f.scheduled {
		if f.running {
			f.dirty = true
		}
		return
	}

	f.scheduled = true
	f.inFlight.Add(1)
	f.timer = time.AfterFunc(f.delay, f.fire)
}

// fire runs on the timer goroutine. The flush snapshots everything that
// mutated up to this point, so only requests arriving while the write is
// underway can mark the state dirty again. On completion a dirty state
// reschedules instead of recursing, keeping the call stack bounded under
// sustained heartbeat load.
func (f *flushScheduler) fire() {
	defer f.inFlight.Done()

	f.mu.Lock()
	f.running = true
	f.dirty = false
	f.mu.Unlock()

	if err := f.flush(); err != nil {
		// in-memory state stays authoritative, the next mutation retries
		log.Printf("Warning: scheduled library flush failed: %v", err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.running = false
	f.scheduled = false
	if f.dirty && !f.stopped {
		f.dirty = false
		f.scheduled = true
		f.inFlight.Add(1)
		f.timer = time.AfterFunc(f.delay, f.fire)
	}
}

// Stop cancels any pending timer and waits out a flush that is already
// underway, so the store's final synchronous flush never races a
// scheduled one over the same file.
func (f *flushScheduler) Stop() {
	f.mu.Lock()
	f.stopped = true
	f.dirty = false
	if f.timer != nil && f.timer.Stop() {
		// the timer never fired, balance its pending fire
		f.inFlight.Done()
	}
	f.mu.Unlock()

	f.inFlight.Wait()
}
