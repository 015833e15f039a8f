package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/Taskkill/monolog/term"
)

// Stream is a pull-based answer iterator. Solve starts a producer
// goroutine at once; it searches until it has an answer or the search
// tree is exhausted, then blocks until Next takes that answer. After an
// answer is taken, the producer goes straight on searching for the
// following one without waiting for another call to Next, so the search
// runs up to one answer ahead of the consumer until Close stops it
// (spec.md §5, §4.4). It mirrors the shape of
// the teacher's Query interface (Next(ctx)/Current()/Close()/Err() in
// trealla/query.go), realized here as a goroutine producing on an
// unbuffered channel rather than a WASM subquery handle — spec.md §4.9's
// "generator-like coroutine" option.
type Stream struct {
	out      chan term.Substitution
	finished chan struct{}
	cancel   context.CancelFunc

	mu        sync.Mutex
	cur       term.Substitution
	done      bool
	err       error
	closeOnce sync.Once
}

// Solve starts a search for goal against the engine's current knowledge
// base and occurs-check setting, both captured at this call (spec.md
// §4.5: the resolver operates on a snapshot taken at query start; spec.md
// §4.2: the occurs-check flag is read at unify time for this query's
// duration, consistent with "toggle only between queries").
//
// goal is assumed to already be scope-0 (a fresh query, never a renamed
// clause body).
func (e *Engine) Solve(ctx context.Context, goal term.Term) *Stream {
	ctx, cancel := context.WithCancel(ctx)
	st := &Stream{
		out:      make(chan term.Substitution),
		finished: make(chan struct{}),
		cancel:   cancel,
	}

	snap := e.kb.Snapshot()
	occurs := e.OccursCheck()
	names := &nameSource{counter: &e.scopes}
	goal = freshenWildcards(goal, names)

	e.log.WithField("goal", goal.String()).Debug("query started")

	go func() {
		defer close(st.finished)
		defer close(st.out)
		defer func() {
			if r := recover(); r != nil {
				e.log.WithField("panic", r).Error("query aborted by panic")
				st.mu.Lock()
				st.err = fmt.Errorf("engine: query aborted: %v", r)
				st.mu.Unlock()
				cancel()
			}
		}()
		solveGoal(ctx, snap, occurs, &e.scopes, goal, term.Empty(), func(s term.Substitution) bool {
			select {
			case st.out <- s:
				return true
			case <-ctx.Done():
				return false
			}
		})
	}()

	return st
}

// Next computes the next solution, blocking until one is available, the
// search is exhausted, or ctx is done. It returns true iff Current now
// holds a new answer.
func (st *Stream) Next(ctx context.Context) bool {
	st.mu.Lock()
	if st.done || st.err != nil {
		st.mu.Unlock()
		return false
	}
	// The lock is not held while waiting: the producer's panic handler
	// takes it to record Err before the channel is closed.
	st.mu.Unlock()

	select {
	case s, ok := <-st.out:
		st.mu.Lock()
		defer st.mu.Unlock()
		if !ok {
			st.done = true
			return false
		}
		st.cur = s
		return true
	case <-ctx.Done():
		st.mu.Lock()
		defer st.mu.Unlock()
		st.err = ctx.Err()
		st.cancel()
		return false
	}
}

// Current returns the substitution produced by the most recent successful
// call to Next.
func (st *Stream) Current() term.Substitution {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.cur
}

// Close releases every pending choice point, corresponding to the REPL's
// ":d"/":done" signal (spec.md §5, §6). It blocks until the producer
// goroutine has actually unwound, so that by the time Close returns, no
// clause instance from this query is still alive. It is safe to call
// Close after Next has returned false (exhaustion); it is a no-op then.
func (st *Stream) Close() error {
	st.closeOnce.Do(func() {
		st.cancel()
		<-st.finished
	})
	return nil
}

// Err returns any error that stopped iteration early. A normal exhaustion
// (Next returning false because the search tree ran out) leaves Err nil:
// per spec.md §7, the resolver reports no errors to the consumer on its
// own, only a possibly-empty stream.
func (st *Stream) Err() error {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.err
}
