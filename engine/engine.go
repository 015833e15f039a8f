// Package engine implements the evaluation core of Monolog: the renamer,
// the SLD-resolution search with chronological backtracking, and the
// knowledge base, wired together behind a single Engine type. The term
// model lives in package term; unification lives in package unify.
package engine

import (
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/Taskkill/monolog/term"
)

// Engine owns a knowledge base, the process-wide occurs-check flag, and
// the monotonic scope-id counter shared by every query it runs. The zero
// value is not usable; construct with New.
type Engine struct {
	kb     *KB
	occurs int32 // atomic bool: 0 = off, 1 = on

	scopes scopeCounter

	log *logrus.Logger
}

// Option configures an Engine, following the functional-options pattern
// used throughout the teacher (trealla.Option, trealla.PoolOption).
type Option func(*Engine)

// WithLogger overrides the engine's logger (default: logrus.StandardLogger()).
func WithLogger(log *logrus.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// WithOccursCheck sets the initial occurs-check flag (default: off).
func WithOccursCheck(on bool) Option {
	return func(e *Engine) { e.SetOccursCheck(on) }
}

// New constructs an Engine with an empty knowledge base.
func New(opts ...Option) *Engine {
	e := &Engine{
		kb:  NewKB(),
		log: logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// KB returns the engine's knowledge base, for Assert/Clear/Render/Signatures.
func (e *Engine) KB() *KB { return e.kb }

// SetOccursCheck flips the process-wide occurs-check flag. Per spec.md
// §4.2 and the Open Question in §9, this must only be called between
// queries, never while a Stream from this engine is still being consumed;
// the engine does not enforce this (there is no cheap, race-free way to
// detect "stream still alive" without adding its own synchronization
// overhead to every unify call), so the REPL is responsible for rejecting
// ":occurs" while a query is in progress.
func (e *Engine) SetOccursCheck(on bool) {
	var v int32
	if on {
		v = 1
	}
	atomic.StoreInt32(&e.occurs, v)
	e.log.WithField("occurs_check", on).Debug("occurs check toggled")
}

// OccursCheck reports the current occurs-check setting.
func (e *Engine) OccursCheck() bool {
	return atomic.LoadInt32(&e.occurs) != 0
}

// Assert appends a clause to the knowledge base.
func (e *Engine) Assert(c term.Clause) {
	e.kb.Assert(c)
	e.log.WithField("clause", c.String()).Debug("asserted clause")
}

// Clear empties the knowledge base.
func (e *Engine) Clear() {
	e.kb.Clear()
	e.log.Debug("knowledge base cleared")
}

// Stats is a diagnostic snapshot, mirroring the teacher's Prolog.Stats().
type Stats struct {
	Clauses     int
	Predicates  int
	OccursCheck bool
}

// Stats returns a diagnostic snapshot of the engine's current state.
func (e *Engine) Stats() Stats {
	return Stats{
		Clauses:     e.kb.Len(),
		Predicates:  len(e.kb.Signatures()),
		OccursCheck: e.OccursCheck(),
	}
}

// scopeCounter is the monotonically increasing generator of scope-ids
// (one per clause instantiation) and of unique suffixes for renamed
// wildcards. The query itself always uses scope 0 (spec.md §3); this
// counter starts handing out values from 1, so renamed scopes never
// collide with the query's.
type scopeCounter struct{ n int64 }

func (c *scopeCounter) next() int64 { return atomic.AddInt64(&c.n, 1) }
