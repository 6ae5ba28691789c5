package document

import (
	"strconv"

	qentem "github.com/lineCode/qentem"
	"github.com/lineCode/qentem/internal/numeric"
	"github.com/lineCode/qentem/internal/strstream"
)

// Document is a hierarchical value store: either an ordered array or a
// hash-indexed object (spec.md §6's "a value store the template layer
// consults for variable lookup"). Scalars are held as Value entries inside
// a Document, never as a Document of their own. A zero Document is an
// empty, unordered object ready for Set.
type Document struct {
	Ordered bool // true once built as, or explicitly made, an array

	keys   []string // insertion order, parallel to values for objects
	values []Value

	table      []bucket
	bucketBase uint64
}

// NewArray returns an empty ordered Document.
func NewArray() *Document {
	return &Document{Ordered: true}
}

// NewObject returns an empty keyed Document.
func NewObject() *Document {
	return &Document{}
}

func (d *Document) ensureTable() {
	if d.bucketBase == 0 {
		d.bucketBase = defaultBucketBase
	}
}

// Len reports the number of direct entries.
func (d *Document) Len() int {
	return len(d.values)
}

// Get looks up a keyed entry. It reports ok == false for an array
// Document, or a missing key, rather than erroring (spec.md §7's
// soft-failure philosophy extends to the collaborator packages).
func (d *Document) Get(key string) (Value, bool) {
	if d.Ordered || d.bucketBase == 0 {
		return Value{}, false
	}
	id, found := lookupIndex(hashKey(key), d.bucketBase, 0, d.table)
	if !found || id >= len(d.values) {
		return Value{}, false
	}
	return d.values[id], true
}

// At returns the i'th entry of an array Document (or the i'th inserted
// entry of an object, in insertion order), with ok == false out of range.
func (d *Document) At(i int) (Value, bool) {
	if i < 0 || i >= len(d.values) {
		return Value{}, false
	}
	return d.values[i], true
}

// Keys returns the object's keys in insertion order. Empty for an array.
func (d *Document) Keys() []string {
	return d.keys
}

// Set inserts or overwrites a keyed entry, switching the Document out of
// Ordered mode the first time it is called (mirrors the reference
// Document's "first Set demotes an Array into an Object" convention:
// original_source/Document.hpp never mixes numeric and string indices in
// one table).
func (d *Document) Set(key string, v Value) {
	d.Ordered = false
	d.ensureTable()
	h := hashKey(key)
	if id, found := lookupIndex(h, d.bucketBase, 0, d.table); found && id < len(d.values) {
		d.values[id] = v
		return
	}
	id := len(d.values)
	d.keys = append(d.keys, key)
	d.values = append(d.values, v)
	insertIndex(h, id, d.bucketBase, 0, &d.table)
}

// Append adds v as the next array element, switching the Document into
// Ordered mode if it was empty.
func (d *Document) Append(v Value) {
	if len(d.values) == 0 {
		d.Ordered = true
	}
	d.values = append(d.values, v)
}

// Parse decodes a JSON document out of text, never failing: malformed
// input degrades to as much structure as the rule graph and entry
// splitter could recover, down to an empty object for input with no
// recognizable top-level brace or bracket (spec.md §7).
func Parse(text []byte) *Document {
	g := buildJSONRules()
	matches := qentem.Match(g.topLevel, text, 0, len(text), qentem.DefaultConfig)
	for i := range matches {
		if d := buildFromMatch(g, text, &matches[i]); d != nil {
			return d
		}
	}
	return NewObject()
}

func buildFromMatch(g jsonRules, text []byte, m *qentem.MatchBit) *Document {
	if m.Rule == g.objectClose {
		return buildObject(g, text, m)
	}
	if m.Rule == g.arrayClose {
		return buildArray(g, text, m)
	}
	return nil
}

func buildObject(g jsonRules, text []byte, m *qentem.MatchBit) *Document {
	d := NewObject()
	for _, e := range splitBody(text, m.BodyOffset, m.BodyOffset+m.BodyLength, m.Children, true) {
		if !e.hasKey {
			continue
		}
		d.Set(e.key, valueFromEntry(g, text, e))
	}
	return d
}

func buildArray(g jsonRules, text []byte, m *qentem.MatchBit) *Document {
	d := NewArray()
	for _, e := range splitBody(text, m.BodyOffset, m.BodyOffset+m.BodyLength, m.Children, false) {
		d.Append(valueFromEntry(g, text, e))
	}
	return d
}

// valueFromEntry converts one splitBody entry into a typed Value: a
// nested object/array/string match recurses (or unquotes), and a bare
// span is classified as a JSON scalar literal (spec.md §6: number, true,
// false, null).
func valueFromEntry(g jsonRules, text []byte, e rawEntry) Value {
	if e.nested != nil {
		switch e.nested.Rule {
		case g.objectClose:
			return NestedValue(buildObject(g, text, e.nested))
		case g.arrayClose:
			return NestedValue(buildArray(g, text, e.nested))
		case g.stringClose:
			return StringValue(unescapeString(e.nested.Body(text)))
		}
	}
	return scalarValue(text[e.start:e.end])
}

func scalarValue(span []byte) Value {
	switch string(span) {
	case "":
		return Value{Kind: Undefined}
	case "true":
		return TrueValue
	case "false":
		return FalseValue
	case "null":
		return NullValue
	}
	var n float64
	if numeric.ToNumber(&n, span, 0, len(span)) {
		return NumberValue(n)
	}
	return StringValue(string(span))
}

// ToJSON renders d back into JSON text (original_source/Document.hpp's
// ToJSON()).
func (d *Document) ToJSON() string {
	b := strstream.New()
	d.writeJSON(b)
	return string(b.Eject())
}

func (d *Document) writeJSON(b *strstream.Builder) {
	if d.Ordered {
		b.AppendBorrowed([]byte("["))
		for i, v := range d.values {
			if i > 0 {
				b.AppendBorrowed([]byte(","))
			}
			writeValueJSON(b, v)
		}
		b.AppendBorrowed([]byte("]"))
		return
	}

	b.AppendBorrowed([]byte("{"))
	for i, k := range d.keys {
		if i > 0 {
			b.AppendBorrowed([]byte(","))
		}
		b.AppendOwned([]byte(strconv.Quote(k)))
		b.AppendBorrowed([]byte(":"))
		writeValueJSON(b, d.values[i])
	}
	b.AppendBorrowed([]byte("}"))
}

func writeValueJSON(b *strstream.Builder, v Value) {
	switch v.Kind {
	case Nested:
		v.Doc.writeJSON(b)
	case String:
		b.AppendOwned([]byte(strconv.Quote(v.Str)))
	case Number:
		b.AppendOwned([]byte(numeric.FromNumber(v.Num, 1, 0, 9)))
	case True:
		b.AppendBorrowed([]byte("true"))
	case False:
		b.AppendBorrowed([]byte("false"))
	case Null:
		b.AppendBorrowed([]byte("null"))
	default:
		b.AppendBorrowed([]byte("null"))
	}
}
