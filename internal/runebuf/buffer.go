// Package runebuf implements the growable byte buffer the engine uses to
// hold rule literals and to carve borrowed sub-slices out of input text.
//
// The type intentionally knows nothing about runes, UTF-8 or encodings: the
// engine treats text as a flat byte window (offset, length), exactly as
// spec.md requires ("the core requires a contiguous character array bounded
// by an offset and length"). Capacity growth is at-least-doubling so that a
// sequence of Append calls stays amortized O(1), mirroring the guarantee Go
// slices already give through append — made explicit here because the
// growth strategy is a stated contract, not an implementation detail.
package runebuf

// Buffer is a growable, owned byte container.
type Buffer struct {
	data []byte
}

// New returns an empty buffer with no preallocated capacity.
func New() *Buffer {
	return &Buffer{}
}

// FromBytes copies b into a freshly owned buffer.
func FromBytes(b []byte) *Buffer {
	buf := &Buffer{}
	buf.AppendSlice(b)
	return buf
}

// Len reports the number of bytes currently held.
func (b *Buffer) Len() int {
	return len(b.data)
}

// Bytes exposes the held bytes. The caller must not retain the slice across
// a subsequent mutating call, since growth may relocate the backing array.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// Reserve ensures capacity for at least n bytes, preserving existing
// content. Growth is at-least-doubling once the buffer already holds data.
func (b *Buffer) Reserve(n int) {
	if cap(b.data) >= n {
		return
	}
	grown := cap(b.data) * 2
	if grown < n {
		grown = n
	}
	fresh := make([]byte, len(b.data), grown)
	copy(fresh, b.data)
	b.data = fresh
}

// Append appends a single byte.
func (b *Buffer) Append(c byte) {
	b.Reserve(len(b.data) + 1)
	b.data = append(b.data, c)
}

// AppendSlice appends every byte of s.
func (b *Buffer) AppendSlice(s []byte) {
	if len(s) == 0 {
		return
	}
	b.Reserve(len(b.data) + len(s))
	b.data = append(b.data, s...)
}

// AppendBuffer appends the contents of other, leaving other unmodified.
func (b *Buffer) AppendBuffer(other *Buffer) {
	if other == nil {
		return
	}
	b.AppendSlice(other.data)
}

// Equal reports whether b and other hold byte-identical content.
func (b *Buffer) Equal(other *Buffer) bool {
	if other == nil {
		return b.Len() == 0
	}
	if len(b.data) != len(other.data) {
		return false
	}
	for i := range b.data {
		if b.data[i] != other.data[i] {
			return false
		}
	}
	return true
}

// Part returns a fresh buffer holding a copy of text[offset:offset+length].
func (b *Buffer) Part(offset, length int) *Buffer {
	return FromBytes(b.data[offset : offset+length])
}

// SoftTrim strips leading and trailing ASCII whitespace from text by
// adjusting offset and length in place, without allocating.
func SoftTrim(text []byte, offset, length *int) {
	start := *offset
	end := *offset + *length
	for start < end && isASCIISpace(text[start]) {
		start++
	}
	for end > start && isASCIISpace(text[end-1]) {
		end--
	}
	*offset = start
	*length = end - start
}

// Trim returns a new buffer holding text with leading and trailing ASCII
// whitespace stripped.
func Trim(text []byte) *Buffer {
	offset, length := 0, len(text)
	SoftTrim(text, &offset, &length)
	return FromBytes(text[offset : offset+length])
}

func isASCIISpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	default:
		return false
	}
}
