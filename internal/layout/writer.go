package layout

import (
	"context"
	"sync"

	"github.com/GregMSThompson/dashboard-backend/internal/models"
)

type writeJob struct {
	ctx   context.Context
	prefs *models.UserDashboardLayoutPreferences
}

// writer persists full layout snapshots on a single goroutine. A snapshot
// submitted while another is pending replaces it, so only the latest state is
// written and writes never land out of order.
type writer struct {
	persist    func(writeJob)
	superseded func()

	mu      sync.Mutex
	pending *writeJob
	busy    bool
	closed  bool
	waiters []chan struct{}

	wake     chan struct{}
	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

func newWriter(persist func(writeJob), superseded func()) *writer {
	w := &writer{
		persist:    persist,
		superseded: superseded,
		wake:       make(chan struct{}, 1),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
	go w.run()
	return w
}

func (w *writer) submit(j writeJob) {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	if w.pending != nil && w.superseded != nil {
		w.superseded()
	}
	w.pending = &j
	w.mu.Unlock()
	w.signal()
}

func (w *writer) signal() {
	select {
	case w.wake <- struct{}{}:
	default:
	}
}

func (w *writer) run() {
	defer close(w.done)
	for {
		select {
		case <-w.wake:
			w.drain()
		case <-w.stop:
			w.drain()
			return
		}
	}
}

func (w *writer) drain() {
	for {
		w.mu.Lock()
		j := w.pending
		w.pending = nil
		if j == nil {
			w.busy = false
			waiters := w.waiters
			w.waiters = nil
			w.mu.Unlock()
			for _, c := range waiters {
				close(c)
			}
			return
		}
		w.busy = true
		w.mu.Unlock()
		w.persist(*j)
	}
}

// flush blocks until every submitted snapshot has been written or ctx ends.
func (w *writer) flush(ctx context.Context) error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		<-w.done
		return nil
	}
	if w.pending == nil && !w.busy {
		w.mu.Unlock()
		return nil
	}
	c := make(chan struct{})
	w.waiters = append(w.waiters, c)
	w.mu.Unlock()
	w.signal()

	select {
	case <-c:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// close writes any pending snapshot and stops the goroutine. Later submits
// are dropped.
func (w *writer) close() {
	w.stopOnce.Do(func() {
		w.mu.Lock()
		w.closed = true
		w.mu.Unlock()
		close(w.stop)
		<-w.done
	})
}
