// Package schedule runs delayed and repeating callbacks behind explicit
// cancellation handles so timers are released when their owner goes away.
package schedule

import (
	"sync"
	"time"
)

// Handle cancels a scheduled callback. Cancel is idempotent and safe to call
// from any goroutine, including from inside the callback.
type Handle interface {
	Cancel()
}

type Scheduler interface {
	// After runs fn once after d unless cancelled first.
	After(d time.Duration, fn func()) Handle
	// Every runs fn every d until cancelled.
	Every(d time.Duration, fn func()) Handle
}

type Real struct{}

func (Real) After(d time.Duration, fn func()) Handle {
	return timerHandle{t: time.AfterFunc(d, fn)}
}

func (Real) Every(d time.Duration, fn func()) Handle {
	h := &tickerHandle{ticker: time.NewTicker(d), done: make(chan struct{}), exited: make(chan struct{})}
	go h.loop(fn)
	return h
}

type timerHandle struct{ t *time.Timer }

func (h timerHandle) Cancel() { h.t.Stop() }

type tickerHandle struct {
	ticker *time.Ticker
	done   chan struct{}
	exited chan struct{}
	once   sync.Once
}

func (h *tickerHandle) loop(fn func()) {
	defer close(h.exited)
	for {
		select {
		case <-h.done:
			return
		case <-h.ticker.C:
			select {
			case <-h.done:
				return
			default:
			}
			fn()
		}
	}
}

// Cancel stops the ticker and signals the loop goroutine to exit.
func (h *tickerHandle) Cancel() {
	h.once.Do(func() {
		h.ticker.Stop()
		close(h.done)
	})
}

// Wait blocks until the loop goroutine has exited.
func (h *tickerHandle) Wait() { <-h.exited }

// Manual is a deterministic Scheduler driven by Advance.
type Manual struct {
	mu      sync.Mutex
	now     time.Duration
	entries []*manualEntry
}

type manualEntry struct {
	owner     *Manual
	due       time.Duration
	every     time.Duration
	fn        func()
	cancelled bool
}

func (e *manualEntry) Cancel() {
	e.owner.mu.Lock()
	defer e.owner.mu.Unlock()
	e.cancelled = true
}

func NewManual() *Manual { return &Manual{} }

func (m *Manual) After(d time.Duration, fn func()) Handle {
	return m.add(d, 0, fn)
}

func (m *Manual) Every(d time.Duration, fn func()) Handle {
	return m.add(d, d, fn)
}

func (m *Manual) add(d, every time.Duration, fn func()) Handle {
	m.mu.Lock()
	defer m.mu.Unlock()
	e := &manualEntry{owner: m, due: m.now + d, every: every, fn: fn}
	m.entries = append(m.entries, e)
	return e
}

// Advance moves the manual clock forward and fires everything that came due,
// in due order. Callbacks run without the lock held.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now + d
	m.mu.Unlock()
	for {
		m.mu.Lock()
		var next *manualEntry
		for _, e := range m.entries {
			if e.cancelled || e.due > target {
				continue
			}
			if next == nil || e.due < next.due {
				next = e
			}
		}
		if next == nil {
			m.now = target
			m.mu.Unlock()
			return
		}
		m.now = next.due
		if next.every > 0 {
			next.due += next.every
		} else {
			next.cancelled = true
		}
		fn := next.fn
		m.mu.Unlock()
		fn()
	}
}

// Pending reports how many live callbacks are scheduled.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range m.entries {
		if !e.cancelled {
			n++
		}
	}
	return n
}
