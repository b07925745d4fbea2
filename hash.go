package symbol

import (
	"errors"

	"github.com/zeebo/xxh3"
)

// ---------------------------------------------------------------------------
// Streaming hash and equality
// ---------------------------------------------------------------------------

// The intern table is keyed by a 64-bit xxh3 digest of the content. The
// digest is never stored: it is recomputed from content on every insert,
// lookup and erase.

// hashString returns the content hash for s.
func hashString(s string) uint64 {
	return xxh3.HashString(s)
}

// hashBytes returns the content hash for raw bytes.
func hashBytes(b []byte) uint64 {
	return xxh3.Hash(b)
}

// digester streams rendered text into the content hash while mirroring the
// first SmallCap bytes into an inline buffer. The mirror is abandoned the
// moment cumulative length exceeds SmallCap; hashing continues regardless.
// This lets format-and-intern decide between the inline and the shared
// representation without building a candidate string.
type digester struct {
	h     xxh3.Hasher
	small [SmallCap]byte
	n     int // bytes mirrored so far, -1 once overflowed
}

// Write implements io.Writer and never fails.
func (d *digester) Write(p []byte) (int, error) {
	d.h.Write(p)
	if d.n >= 0 {
		if d.n+len(p) <= SmallCap {
			copy(d.small[d.n:], p)
			d.n += len(p)
		} else {
			d.n = -1
		}
	}
	return len(p), nil
}

// sum returns the hash of everything written so far.
func (d *digester) sum() uint64 {
	return d.h.Sum64()
}

// captured returns the mirrored bytes, or false if the content overflowed
// the inline capacity.
func (d *digester) captured() ([]byte, bool) {
	if d.n < 0 {
		return nil, false
	}
	return d.small[:d.n], true
}

// errMismatch aborts rendering into a comparer once equality is impossible.
var errMismatch = errors.New("symbol: content mismatch")

// comparer streams rendered text against a target string, failing fast on
// the first length or byte mismatch. Write returns errMismatch after a
// failure so streaming writers can stop early. This verifies that a value
// renders to stored content without materializing the rendering.
type comparer struct {
	rest string // unconsumed remainder of the target
	bad  bool
}

// Write implements io.Writer.
func (c *comparer) Write(p []byte) (int, error) {
	if c.bad || len(p) > len(c.rest) || string(p) != c.rest[:len(p)] {
		c.bad = true
		return 0, errMismatch
	}
	c.rest = c.rest[len(p):]
	return len(p), nil
}

// matched reports whether the rendered text equaled the target exactly.
func (c *comparer) matched() bool {
	return !c.bad && len(c.rest) == 0
}
