package symbol

import "strings"

// ---------------------------------------------------------------------------
// Comparison and hashing
// ---------------------------------------------------------------------------

// Equal reports content equality. Identity is checked first: two handles
// over the same allocation or the same static memory are equal without
// looking at bytes. Handles that never share identity, such as small ones
// or cross-representation pairs, fall back to byte comparison.
func (s Symbol) Equal(o Symbol) bool {
	if s.kind == o.kind {
		switch s.kind {
		case kindSmall:
			return s.n == o.n && s.small == o.small
		case kindHeap:
			return s.alloc == o.alloc || s.alloc.s == o.alloc.s
		case kindStatic:
			return s.str == o.str
		}
	}
	if s.Len() != o.Len() {
		return false
	}
	return s.String() == o.String()
}

// EqualString reports whether the content equals text, without interning.
func (s Symbol) EqualString(text string) bool {
	switch s.kind {
	case kindHeap:
		return s.alloc.s == text
	case kindStatic:
		return s.str == text
	default:
		return int(s.n) == len(text) && string(s.small[:s.n]) == text
	}
}

// Compare orders by content, byte-wise lexicographic: -1, 0 or 1 like
// strings.Compare. Identical handles short-circuit to 0. The order is
// total across all representations.
func (s Symbol) Compare(o Symbol) int {
	if s.Identical(o) {
		return 0
	}
	return strings.Compare(s.String(), o.String())
}

// Less reports Compare(o) < 0, for use with sort.Slice.
func (s Symbol) Less(o Symbol) bool {
	return s.Compare(o) < 0
}

// Hash64 returns the 64-bit content hash, the same function the intern
// table is keyed by. It hashes decoded text, never identity, so equal
// content hashes equally across representations. The hash is recomputed on
// every call and cached nowhere.
func (s Symbol) Hash64() uint64 {
	if s.kind == kindSmall {
		return hashBytes(s.small[:s.n])
	}
	return hashString(s.String())
}

// Identical reports identity equality: both handles are backed by the very
// same memory. For small Symbols identity and content coincide, since the
// content is the handle. Identical implies Equal.
func (s Symbol) Identical(o Symbol) bool {
	if s.kind != o.kind {
		return false
	}
	switch s.kind {
	case kindHeap:
		return s.alloc == o.alloc
	case kindStatic:
		return len(s.str) == len(o.str) && stringData(s.str) == stringData(o.str)
	default:
		return s.n == o.n && s.small == o.small
	}
}
