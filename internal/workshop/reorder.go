package workshop

import (
	"context"
	"log/slog"
	"sync"
)

// ReorderFunc persists one full category order. CategoryService.Reorder
// satisfies it.
type ReorderFunc func(ctx context.Context, ids []string) error

// ReorderGate coalesces the stream of orders produced while the user drags
// categories around. At most one persistence call is in flight; submissions
// arriving meanwhile overwrite each other so only the newest sequence is
// written next. A submission superseded before or during its write is never
// reported - last writer wins.
type ReorderGate struct {
	reorder ReorderFunc
	logger  *slog.Logger

	// onResult, when set, receives the outcome of the newest submission
	// once its write finishes.
	onResult func(ids []string, err error)

	mu       sync.Mutex
	inflight bool
	pending  []string
	pendCtx  context.Context
	hasPend  bool
	wg       sync.WaitGroup
}

// NewReorderGate creates a gate around the given persistence function.
func NewReorderGate(reorder ReorderFunc, onResult func(ids []string, err error), logger *slog.Logger) *ReorderGate {
	return &ReorderGate{
		reorder:  reorder,
		onResult: onResult,
		logger:   logger,
	}
}

// Submit hands the gate a fully formed order. It returns immediately; the
// write happens in the background. Submitting again before the previous
// write completes supersedes it.
func (g *ReorderGate) Submit(ctx context.Context, ids []string) {
	order := make([]string, len(ids))
	copy(order, ids)

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.inflight {
		g.pending = order
		g.pendCtx = ctx
		g.hasPend = true
		return
	}

	g.inflight = true
	g.wg.Add(1)
	go g.run(ctx, order)
}

// run writes orders until none are pending. One goroutine at a time.
func (g *ReorderGate) run(ctx context.Context, order []string) {
	defer g.wg.Done()
	for {
		err := g.reorder(ctx, order)

		g.mu.Lock()
		if g.hasPend {
			// A newer order superseded this one; its outcome is the
			// one that counts.
			order = g.pending
			ctx = g.pendCtx
			g.pending = nil
			g.pendCtx = nil
			g.hasPend = false
			g.mu.Unlock()
			continue
		}
		g.inflight = false
		g.mu.Unlock()

		if err != nil {
			g.logger.Warn("category reorder failed", "error", err)
		}
		if g.onResult != nil {
			g.onResult(order, err)
		}
		return
	}
}

// Wait blocks until no write is in flight. Intended for shutdown and tests.
func (g *ReorderGate) Wait() {
	g.wg.Wait()
}
