package symbol

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ---------------------------------------------------------------------------
// Symbol: interned string handle
// ---------------------------------------------------------------------------

// SmallCap is the inline capacity of a Symbol in bytes. Content at or
// under this length is stored in the handle itself and never reaches the
// intern table.
const SmallCap = 20

// kind selects a Symbol's representation.
type kind uint8

const (
	kindSmall  kind = iota // inline bytes, no shared state
	kindHeap               // shared canonical allocation, owner-counted
	kindStatic             // process-lifetime text, never evicted
)

// Symbol is a handle to interned text.
//
// A Symbol is backed by one of three representations:
//   - Small: content of at most SmallCap bytes lives inline in the handle.
//   - Heap: longer content shares a single canonical allocation per
//     distinct value, tracked by an owner count; the last Release erases
//     its table record.
//   - Static: process-lifetime text registered via InternStatic or wrapped
//     via FromStatic; deduplicated like heap content but never evicted.
//
// The zero value is the empty string.
//
// Heap ownership is explicit: every constructor-returned Symbol owns one
// reference, Retain adds one and Release drops one. Plain Go copies of a
// Symbol share that reference; they are views, not owners. After the
// Release that drops the last owner, the Symbol and all copies of it are
// dead and must not be used.
//
// Go == on Symbol is representation equality (same variant, same backing
// memory). Use Equal for content equality across representations.
type Symbol struct {
	kind  kind
	n     uint8           // inline length, small only
	small [SmallCap]byte  // inline bytes, small only; zero past n
	alloc *allocation     // shared allocation, heap only
	str   string          // process-lifetime text, static only
}

// newSmall copies content into an inline handle. Bytes past the content
// length stay zero, so equal content yields identical handle values.
func newSmall(b []byte) Symbol {
	var s Symbol
	s.n = uint8(copy(s.small[:], b))
	return s
}

// newSmallString is newSmall for string content.
func newSmallString(str string) Symbol {
	var s Symbol
	s.n = uint8(copy(s.small[:], str))
	return s
}

// ---------------------------------------------------------------------------
// Constructors
// ---------------------------------------------------------------------------

// Intern returns the canonical Symbol for s. Content at or under SmallCap
// bytes is stored inline without touching the intern table; longer content
// goes through the table and collapses to one shared allocation per
// distinct value. On a miss the stored text is cloned, so interning a
// substring never pins its larger backing buffer.
func Intern(s string) Symbol {
	if len(s) <= SmallCap {
		return newSmallString(s)
	}
	return pool.intern(
		hashString(s),
		func(stored string) bool { return stored == s },
		func() string { return strings.Clone(s) },
	)
}

// InternBytes interns b as text. It performs no encoding validation; use
// FromBytes for input that needs checking. The hit path is allocation
// free: b is aliased, not copied, for the probe, and cloned only when the
// content turns out to be new.
func InternBytes(b []byte) Symbol {
	if len(b) <= SmallCap {
		return newSmall(b)
	}
	view := bytesView(b)
	return pool.intern(
		hashBytes(b),
		func(stored string) bool { return stored == view },
		func() string { return strings.Clone(view) },
	)
}

// Internf formats once and interns the result without materializing the
// text unless it turns out to be new. The rendering streams through the
// content hasher while its first SmallCap bytes are mirrored inline: short
// results never touch the table, and probe equality re-renders against
// stored text instead of building a candidate string.
func Internf(format string, args ...any) Symbol {
	var d digester
	fmt.Fprintf(&d, format, args...)
	if small, ok := d.captured(); ok {
		return newSmall(small)
	}
	return pool.intern(
		d.sum(),
		func(stored string) bool {
			c := comparer{rest: stored}
			fmt.Fprintf(&c, format, args...)
			return c.matched()
		},
		func() string { return fmt.Sprintf(format, args...) },
	)
}

// FromBytes interns raw bytes that must be well-formed UTF-8. Invalid
// input fails with an *EncodingError carrying a copy of the offending
// bytes.
func FromBytes(b []byte) (Symbol, error) {
	if !utf8.Valid(b) {
		return Symbol{}, &EncodingError{Bytes: bytes.Clone(b)}
	}
	return InternBytes(b), nil
}

// FromStatic wraps text whose backing memory lives for the whole process,
// typically a compile-time constant. It never touches the intern table and
// therefore carries no dedup guarantee against existing records; use
// InternStatic for that. Content at or under SmallCap bytes is stored
// inline as usual.
func FromStatic(s string) Symbol {
	if len(s) <= SmallCap {
		return newSmallString(s)
	}
	return Symbol{kind: kindStatic, str: s}
}

// InternStatic registers process-lifetime text in the intern table and
// returns the canonical static Symbol for it. Repeated registration of
// equal content converges to the same backing memory, and the static
// record wins every future lookup: an equal heap record is overwritten in
// place while its outstanding handles keep working. Static records are
// never evicted.
func InternStatic(s string) Symbol {
	if len(s) <= SmallCap {
		return newSmallString(s)
	}
	return pool.registerStatic(hashString(s), s)
}

// ---------------------------------------------------------------------------
// Ownership
// ---------------------------------------------------------------------------

// Retain adds an owner to a heap-backed Symbol and returns it. Small and
// static Symbols have no shared state to own; Retain is a no-op for them.
func (s Symbol) Retain() Symbol {
	if s.kind == kindHeap {
		s.alloc.retain()
	}
	return s
}

// Release drops one owner. The release of the last owner destroys the
// shared allocation's table record synchronously: the content hash is
// recomputed and exactly that record is erased, never one a concurrent
// interner has replaced in the meantime. Release is a no-op for small and
// static Symbols. Releasing more owners than exist panics.
func (s Symbol) Release() {
	if s.kind != kindHeap {
		return
	}
	if s.alloc.release() {
		pool.eraseExpired(s.alloc)
	}
}

// ---------------------------------------------------------------------------
// Views
// ---------------------------------------------------------------------------

// String returns the decoded text. Heap and static Symbols return their
// backing string without copying; small Symbols copy their inline bytes.
func (s Symbol) String() string {
	switch s.kind {
	case kindHeap:
		return s.alloc.s
	case kindStatic:
		return s.str
	default:
		return string(s.small[:s.n])
	}
}

// Len returns the content length in bytes.
func (s Symbol) Len() int {
	switch s.kind {
	case kindHeap:
		return len(s.alloc.s)
	case kindStatic:
		return len(s.str)
	default:
		return int(s.n)
	}
}

// IsEmpty reports whether the content is the empty string.
func (s Symbol) IsEmpty() bool {
	return s.Len() == 0
}
