// Package supersede cancels in-flight work when a newer request for the same key arrives,
// so a slow stale load can never overwrite the result of a newer one.
package supersede

import (
	"context"
	"sync"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
)

type entry struct {
	gen    uint64
	cancel context.CancelCauseFunc
}

// Group tracks the latest generation per key. The zero value is ready to use.
type Group struct {
	mu      sync.Mutex
	next    uint64
	entries map[string]*entry
}

// Ticket identifies one generation of work under a key.
type Ticket struct {
	g   *Group
	key string
	gen uint64
}

// Begin starts a new generation for key. Any earlier generation still running has its
// context cancelled with apperrors.ErrSuperseded as the cause. The caller must call Done.
func (g *Group) Begin(ctx context.Context, key string) (context.Context, Ticket) {
	ctx, cancel := context.WithCancelCause(ctx)

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.entries == nil {
		g.entries = make(map[string]*entry)
	}
	if prev, ok := g.entries[key]; ok {
		prev.cancel(apperrors.ErrSuperseded)
	}
	g.next++
	g.entries[key] = &entry{gen: g.next, cancel: cancel}
	return ctx, Ticket{g: g, key: key, gen: g.next}
}

// Current reports whether t is still the latest generation for its key.
func (t Ticket) Current() bool {
	t.g.mu.Lock()
	defer t.g.mu.Unlock()
	e, ok := t.g.entries[t.key]
	return ok && e.gen == t.gen
}

// Done releases the generation. A superseded ticket leaves the newer entry alone.
func (t Ticket) Done() {
	t.g.mu.Lock()
	defer t.g.mu.Unlock()
	if e, ok := t.g.entries[t.key]; ok && e.gen == t.gen {
		e.cancel(context.Canceled)
		delete(t.g.entries, t.key)
	}
}

// Do runs fn as the latest generation for key and discards its result if a newer call for
// the same key started before fn returned. Discarded calls return apperrors.ErrSuperseded.
func Do[T any](ctx context.Context, g *Group, key string, fn func(ctx context.Context) (T, error)) (T, error) {
	runCtx, ticket := g.Begin(ctx, key)

	result, err := fn(runCtx)
	stale := !ticket.Current()
	ticket.Done()

	var zero T
	if stale {
		return zero, apperrors.ErrSuperseded
	}
	if err != nil {
		return zero, err
	}
	return result, nil
}

// Len reports how many keys currently have work in flight.
func (g *Group) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.entries)
}
