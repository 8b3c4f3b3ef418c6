// Package syncer debounces snapshot saves. Every ledger mutation schedules
// a save; only the trailing edge of a burst actually writes, and a failed
// write is logged and retried on the next change rather than rolled back.
package syncer

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/onetapday/otd/internal/common"
	"github.com/onetapday/otd/internal/model"
)

// DefaultQuietWindow is how long the ledger must stay unchanged before a
// scheduled save fires.
const DefaultQuietWindow = 500 * time.Millisecond

// SaveFunc persists one snapshot.
type SaveFunc func(ctx context.Context, snap model.Snapshot) error

// Debouncer coalesces bursts of changes into single saves.
type Debouncer struct {
	save     SaveFunc
	snapshot func() model.Snapshot
	window   time.Duration

	mu       sync.Mutex
	timer    *time.Timer
	inFlight atomic.Bool
	pending  atomic.Bool
}

// NewDebouncer wires a snapshot source to a save function. A window of 0
// uses DefaultQuietWindow.
func NewDebouncer(snapshot func() model.Snapshot, save SaveFunc, window time.Duration) *Debouncer {
	if window <= 0 {
		window = DefaultQuietWindow
	}
	return &Debouncer{save: save, snapshot: snapshot, window: window}
}

// Schedule requests a save after the quiet window. A later call supersedes
// an unfired one. Fire-and-forget: the caller never waits and never sees
// the save's error.
func (d *Debouncer) Schedule() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, d.fire)
}

func (d *Debouncer) fire() {
	// One writer at a time. A change arriving while a save runs is noted
	// and picked up right after it finishes, never cancelled mid-write.
	if !d.inFlight.CompareAndSwap(false, true) {
		d.pending.Store(true)
		return
	}
	defer func() {
		d.inFlight.Store(false)
		if d.pending.CompareAndSwap(true, false) {
			d.Schedule()
		}
	}()

	snap := d.snapshot()
	snap.SavedAt = time.Now().UnixMilli()
	if err := d.save(context.Background(), snap); err != nil {
		common.LogError(err, "snapshot save failed, will retry on next change", common.Fields{
			"transactions": len(snap.Transactions),
			"invoices":     len(snap.Invoices),
		})
	}
}

// Flush cancels any scheduled save and writes the current snapshot
// synchronously. Used on shutdown, where losing the last burst matters.
func (d *Debouncer) Flush(ctx context.Context) error {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.mu.Unlock()

	// Wait out an in-flight background save so we don't interleave writes.
	for !d.inFlight.CompareAndSwap(false, true) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(10 * time.Millisecond):
		}
	}
	defer d.inFlight.Store(false)

	snap := d.snapshot()
	snap.SavedAt = time.Now().UnixMilli()
	return d.save(ctx, snap)
}
