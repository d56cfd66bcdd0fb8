package view

import (
	"context"
	"sync"
)

// Ticket is one load attempt for a view
type Ticket struct {
	tracker *Tracker
	key     Key
	seq     uint64
	ctx     context.Context
	cancel  context.CancelFunc
}

// Context is cancelled when a newer load for the same view begins or the view is cancelled
func (t *Ticket) Context() context.Context {
	return t.ctx
}

// Done releases the ticket. A ticket that is still the newest for its key
// stops blocking later loads.
func (t *Ticket) Done() {
	t.cancel()

	t.tracker.mu.Lock()
	defer t.tracker.mu.Unlock()
	if cur, ok := t.tracker.current[t.key]; ok && cur.seq == t.seq {
		delete(t.tracker.current, t.key)
	}
}

// Tracker makes sure only the newest load of a view is applied
type Tracker struct {
	mu      sync.Mutex
	seq     uint64
	current map[Key]*Ticket
}

// NewTracker creates an empty tracker
func NewTracker() *Tracker {
	return &Tracker{current: make(map[Key]*Ticket)}
}

// Begin starts a load for key and aborts any older load of the same key.
func (t *Tracker) Begin(ctx context.Context, key Key) *Ticket {
	t.mu.Lock()
	defer t.mu.Unlock()

	if prev, ok := t.current[key]; ok {
		prev.cancel()
	}

	t.seq++
	loadCtx, cancel := context.WithCancel(ctx)
	ticket := &Ticket{tracker: t, key: key, seq: t.seq, ctx: loadCtx, cancel: cancel}
	t.current[key] = ticket
	return ticket
}

// Commit runs apply only if ticket is still the newest uncancelled load for
// its key. It reports whether apply ran.
func (t *Tracker) Commit(ticket *Ticket, apply func()) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	cur, ok := t.current[ticket.key]
	if !ok || cur.seq != ticket.seq || ticket.ctx.Err() != nil {
		return false
	}
	apply()
	delete(t.current, ticket.key)
	ticket.cancel()
	return true
}

// Cancel aborts the in-flight load for key, e.g. when the view goes away.
func (t *Tracker) Cancel(key Key) {
	t.CancelWhere(func(k Key) bool { return k == key })
}

// CancelWhere aborts every in-flight load whose key matches and returns the
// keys it cancelled
func (t *Tracker) CancelWhere(match func(Key) bool) []Key {
	t.mu.Lock()
	defer t.mu.Unlock()

	var cancelled []Key
	for k, cur := range t.current {
		if !match(k) {
			continue
		}
		cur.cancel()
		delete(t.current, k)
		cancelled = append(cancelled, k)
	}
	return cancelled
}
