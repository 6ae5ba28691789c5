// Package strstream implements the append-only string-stream builder
// spec.md §3.3 requires: an accumulator of borrowed input slices, literal
// replacement slices, and owned (callback-built) buffers, ejected once into
// a single concatenated byte slice.
//
// Keeping the "borrowed vs. owned" distinction explicit (rather than just
// copying every fragment into the builder immediately) is what lets the
// parser pass unmatched input straight through without allocating — the
// borrowed fragments are only copied once, at Eject time.
package strstream

// Builder accumulates fragments and produces one final byte slice.
type Builder struct {
	fragments []fragment
	total     int
}

type fragment struct {
	data  []byte
	owned bool
}

// New returns an empty builder.
func New() *Builder {
	return &Builder{}
}

// AppendBorrowed appends a slice the builder does not own. The slice must
// remain valid and unmodified until Eject is called.
func (b *Builder) AppendBorrowed(s []byte) {
	if len(s) == 0 {
		return
	}
	b.fragments = append(b.fragments, fragment{data: s, owned: false})
	b.total += len(s)
}

// AppendOwned appends a slice the builder takes ownership of. The caller
// must not mutate it afterwards.
func (b *Builder) AppendOwned(s []byte) {
	if len(s) == 0 {
		return
	}
	b.fragments = append(b.fragments, fragment{data: s, owned: true})
	b.total += len(s)
}

// Len reports the total number of bytes accumulated so far.
func (b *Builder) Len() int {
	return b.total
}

// Eject concatenates every fragment into one freshly owned byte slice and
// releases the builder's fragment list.
func (b *Builder) Eject() []byte {
	out := make([]byte, 0, b.total)
	for _, f := range b.fragments {
		out = append(out, f.data...)
	}
	b.fragments = nil
	b.total = 0
	return out
}
