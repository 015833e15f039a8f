package engine

import (
	"sort"
	"strings"
	"sync"

	"golang.org/x/exp/maps"

	"github.com/Taskkill/monolog/term"
)

// KB is the knowledge base: an ordered, append-only (until Clear) sequence
// of clauses, with a secondary functor/arity index that preserves
// insertion order within each bucket (spec.md §3, §4.5).
//
// KB is safe for concurrent use; mutation (Assert, Clear) is expected to
// happen only between queries (spec.md §4.5, §5), but the mutex makes
// that a liveness property of the caller rather than a precondition for
// not crashing.
type KB struct {
	mu      sync.RWMutex
	clauses []term.Clause
	index   map[string][]int
}

// NewKB returns an empty knowledge base.
func NewKB() *KB {
	return &KB{index: make(map[string][]int)}
}

// Assert appends clause to the ordered sequence. No duplicate detection is
// performed, matching spec.md §4.5.
func (kb *KB) Assert(c term.Clause) {
	kb.mu.Lock()
	defer kb.mu.Unlock()
	idx := len(kb.clauses)
	kb.clauses = append(kb.clauses, c)
	key := c.Indicator()
	kb.index[key] = append(kb.index[key], idx)
}

// Clear empties the sequence.
func (kb *KB) Clear() {
	kb.mu.Lock()
	defer kb.mu.Unlock()
	kb.clauses = nil
	kb.index = make(map[string][]int)
}

// Len reports the number of stored clauses.
func (kb *KB) Len() int {
	kb.mu.RLock()
	defer kb.mu.RUnlock()
	return len(kb.clauses)
}

// Signatures returns every known functor/arity indicator, sorted, for
// introspection (the REPL's ":predicates" command and Stats). Uses
// golang.org/x/exp/maps for the keys, the same package the teacher uses
// for deterministic map iteration (trealla/prolog.go).
func (kb *KB) Signatures() []string {
	kb.mu.RLock()
	defer kb.mu.RUnlock()
	sigs := maps.Keys(kb.index)
	sort.Strings(sigs)
	return sigs
}

// Snapshot captures the current clauses and index for use by a single
// resolution. The resolver never reads the live KB directly; it always
// operates on a Snapshot taken at query start, so that asserting or
// clearing the KB while an older query's Stream is still alive (e.g. in a
// REPL that lets a user issue ":clear" without first exhausting the
// answer stream) cannot corrupt that query's view of the world (spec.md
// §4.5).
func (kb *KB) Snapshot() *Snapshot {
	kb.mu.RLock()
	defer kb.mu.RUnlock()
	clauses := make([]term.Clause, len(kb.clauses))
	copy(clauses, kb.clauses)
	index := make(map[string][]int, len(kb.index))
	for k, v := range kb.index {
		cp := make([]int, len(v))
		copy(cp, v)
		index[k] = cp
	}
	return &Snapshot{clauses: clauses, index: index}
}

// Render produces a textual listing of all clauses, one per line, in
// insertion order, for the REPL's ":show" command.
func (kb *KB) Render() string {
	kb.mu.RLock()
	defer kb.mu.RUnlock()
	var sb strings.Builder
	for _, c := range kb.clauses {
		sb.WriteString(c.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Snapshot is an immutable view of a KB as of the moment it was taken.
type Snapshot struct {
	clauses []term.Clause
	index   map[string][]int
}

// ClausesFor returns the clauses whose head matches indicator
// ("name/arity"), in insertion order.
func (s *Snapshot) ClausesFor(indicator string) []term.Clause {
	idxs := s.index[indicator]
	if len(idxs) == 0 {
		return nil
	}
	out := make([]term.Clause, len(idxs))
	for i, idx := range idxs {
		out[i] = s.clauses[idx]
	}
	return out
}
