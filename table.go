package symbol

import (
	"sync"
	"sync/atomic"
)

// ---------------------------------------------------------------------------
// Canonical allocation
// ---------------------------------------------------------------------------

// allocation is the canonical heap owner of one interned string's bytes.
// Every heap Symbol for the same content shares one allocation; the owner
// count tracks outstanding handles. The intern table references
// allocations without owning them (see entry).
type allocation struct {
	s    string
	refs atomic.Int64
}

// newAllocation creates an allocation owned by its first handle.
func newAllocation(s string) *allocation {
	a := &allocation{s: s}
	a.refs.Store(1)
	return a
}

// retain adds an owner. The caller must already hold one.
func (a *allocation) retain() {
	a.refs.Add(1)
}

// upgrade adds an owner to an allocation reached through the table. It
// fails once the count has hit zero: an expired record can never come back
// to life, only be replaced.
func (a *allocation) upgrade() bool {
	for {
		n := a.refs.Load()
		if n <= 0 {
			return false
		}
		if a.refs.CompareAndSwap(n, n+1) {
			return true
		}
	}
}

// release drops one owner and reports whether the count reached zero. The
// caller that sees true is destroying the allocation and must erase its
// table record while the content is still in hand.
func (a *allocation) release() bool {
	n := a.refs.Add(-1)
	if n < 0 {
		panic("symbol: Release of an already-released Symbol")
	}
	return n == 0
}

// ---------------------------------------------------------------------------
// Global intern table
// ---------------------------------------------------------------------------

// entry is one table record: either a non-owning reference to a heap
// allocation or a direct reference to process-lifetime memory. The table
// owns neither; it is purely an index.
type entry struct {
	alloc *allocation // heap record; nil for static records
	str   string      // static record text; unset for heap records
}

// table maps content hashes to records. At most one record per distinct
// content is reachable at any instant; an expired heap record may coexist
// with its replacement only inside a single exclusive critical section.
type table struct {
	mu      sync.RWMutex
	buckets map[uint64][]entry
}

// pool is the process-wide intern table. It has no teardown: static
// records and the bucket map itself live until process exit.
var pool = &table{buckets: make(map[uint64][]entry)}

// find probes one bucket for a live record with equal content. Heap record
// content stays readable even at owner count zero, so content is compared
// first and the count is upgraded only on a match; expired records are
// skipped without refcount traffic. The caller must hold the lock in
// either mode.
func (t *table) find(h uint64, eq func(string) bool) (Symbol, bool) {
	bucket := t.buckets[h]
	for i := range bucket {
		e := &bucket[i]
		if e.alloc == nil {
			if eq(e.str) {
				return Symbol{kind: kindStatic, str: e.str}, true
			}
			continue
		}
		if eq(e.alloc.s) && e.alloc.upgrade() {
			return Symbol{kind: kindHeap, alloc: e.alloc}, true
		}
	}
	return Symbol{}, false
}

// intern runs the lookup-or-insert protocol for content longer than
// SmallCap bytes. eq must report whether a stored string equals the
// candidate's text; materialize must produce the canonical copy of that
// text. materialize runs outside both locks and its result is discarded
// when the double-check finds the content already present.
func (t *table) intern(h uint64, eq func(string) bool, materialize func() string) Symbol {
	// Fast path: read-only probe, concurrent with other readers.
	t.mu.RLock()
	sym, ok := t.find(h, eq)
	t.mu.RUnlock()
	if ok {
		return sym
	}

	// Speculative: a racing interner may win, in which case this copy is
	// dropped and the winner's record is returned instead.
	s := materialize()

	t.mu.Lock()
	defer t.mu.Unlock()

	// Double-check after acquiring write lock: the content may have been
	// inserted, or its record may have expired and be awaiting reuse.
	bucket := t.buckets[h]
	for i := range bucket {
		e := &bucket[i]
		if e.alloc == nil {
			if e.str == s {
				return Symbol{kind: kindStatic, str: e.str}
			}
			continue
		}
		if e.alloc.s != s {
			continue
		}
		if e.alloc.upgrade() {
			return Symbol{kind: kindHeap, alloc: e.alloc}
		}
		// Expired record for the same content: replace it in place. The
		// pending erase for the old allocation matches on identity and
		// will leave the new record alone.
		a := newAllocation(s)
		e.alloc = a
		return Symbol{kind: kindHeap, alloc: a}
	}

	a := newAllocation(s)
	t.buckets[h] = append(bucket, entry{alloc: a})
	return Symbol{kind: kindHeap, alloc: a}
}

// registerStatic indexes process-lifetime text, deduplicating against any
// existing record. An equal heap record, live or expired, is overwritten:
// outstanding heap handles keep working, the table just stops pointing at
// their allocation. Static records are never removed.
func (t *table) registerStatic(h uint64, s string) Symbol {
	t.mu.Lock()
	defer t.mu.Unlock()

	bucket := t.buckets[h]
	for i := range bucket {
		e := &bucket[i]
		if e.alloc == nil {
			if e.str == s {
				return Symbol{kind: kindStatic, str: e.str}
			}
			continue
		}
		if e.alloc.s == s {
			*e = entry{str: s}
			return Symbol{kind: kindStatic, str: s}
		}
	}
	t.buckets[h] = append(bucket, entry{str: s})
	return Symbol{kind: kindStatic, str: s}
}

// eraseExpired removes the record of a dying allocation. The hash is
// recomputed from the content, which the dying handle still holds; no
// stored hash exists anywhere. Matching is by allocation identity, so a
// record that a concurrent interner has already replaced for the same
// content is never touched.
func (t *table) eraseExpired(a *allocation) {
	h := hashString(a.s)

	t.mu.Lock()
	defer t.mu.Unlock()

	bucket := t.buckets[h]
	for i := range bucket {
		if bucket[i].alloc != a {
			continue
		}
		last := len(bucket) - 1
		bucket[i] = bucket[last]
		bucket[last] = entry{}
		if last == 0 {
			delete(t.buckets, h)
		} else {
			t.buckets[h] = bucket[:last]
		}
		return
	}
}

// ---------------------------------------------------------------------------
// Diagnostics
// ---------------------------------------------------------------------------

// Stats is a point-in-time summary of the intern table. Dead counts
// records whose owners are gone but whose erase has not landed yet; it is
// nonzero only while a release is in flight.
type Stats struct {
	Shared  int // live heap records
	Static  int // static records
	Dead    int // expired heap records pending erase
	Buckets int // distinct content hashes
}

// TableStats scans the intern table under the shared lock.
// The scan is linear in table size; use for diagnostics and tests.
func TableStats() Stats {
	pool.mu.RLock()
	defer pool.mu.RUnlock()

	st := Stats{Buckets: len(pool.buckets)}
	for _, bucket := range pool.buckets {
		for i := range bucket {
			switch e := &bucket[i]; {
			case e.alloc == nil:
				st.Static++
			case e.alloc.refs.Load() > 0:
				st.Shared++
			default:
				st.Dead++
			}
		}
	}
	return st
}
