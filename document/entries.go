package document

import (
	qentem "github.com/lineCode/qentem"
	"github.com/lineCode/qentem/internal/runebuf"
)

// rawEntry is one object member or array element carved out of a body
// window, before its value text has been converted into a Value.
type rawEntry struct {
	key       string // object member key, unquoted; empty for array elements
	hasKey    bool
	start, end int // half-open span of the raw value text within the body
	nested    *qentem.MatchBit // the object/array/string match covering this value, if any
}

// splitBody walks m's Children (already carved into top-level
// string/object/array spans by the rule graph in rules.go) and the gaps
// between them, and produces one rawEntry per comma-separated member. For
// an object body each entry's key is read off the string immediately
// preceding its ':'; for an array body every entry is keyless.
//
// This exists because getJsonExpres()'s rule graph has no comma or colon
// rule objects at all: only the recognized string/object/array spans are
// real matches, so the separators between them have to be found by
// scanning whatever text falls in the gaps, which is exactly what a
// sibling span list (children, all non-overlapping and in order) is good
// for (spec.md §3.2's ordering invariant is what makes this scan correct).
func splitBody(text []byte, bodyStart, bodyEnd int, children []qentem.MatchBit, isObject bool) []rawEntry {
	var entries []rawEntry
	cur := bodyStart
	var pendingKey string
	var haveKey bool
	entryStart := bodyStart
	var entryNested *qentem.MatchBit

	flush := func(end int) {
		trimStart, trimLen := entryStart, end-entryStart
		runebuf.SoftTrim(text, &trimStart, &trimLen)
		if trimLen <= 0 && !haveKey && entryNested == nil {
			return
		}
		entries = append(entries, rawEntry{
			key: pendingKey, hasKey: haveKey,
			start: trimStart, end: trimStart + trimLen,
			nested: entryNested,
		})
		haveKey = false
		pendingKey = ""
		entryNested = nil
	}

	i := 0
	for i < len(children) {
		child := &children[i]
		// Scan the gap before this child for ':' (object key separator) and
		// ',' (member/element separator), both of which only count outside
		// any nested span.
		scanGap(text, cur, child.Offset, isObject, &pendingKey, &haveKey, &entryStart, &entryNested, flush)
		cur = child.End()
		entryNested = child
		i++
	}
	scanGap(text, cur, bodyEnd, isObject, &pendingKey, &haveKey, &entryStart, &entryNested, flush)
	flush(bodyEnd)

	return entries
}

// scanGap scans text[from:to), a region known to contain no nested
// string/object/array span, for ':' and ',' separators. A ':' only has
// meaning in an object body and only once per entry: the text before it
// becomes pendingKey once unquoted, and whatever child match had most
// recently been tracked as entryNested is cleared — it was the key's own
// string span, not the value that is yet to come.
func scanGap(text []byte, from, to int, isObject bool, pendingKey *string, haveKey *bool, entryStart *int, entryNested **qentem.MatchBit, flush func(int)) {
	for p := from; p < to; p++ {
		switch text[p] {
		case ',':
			flush(p)
			*entryStart = p + 1
		case ':':
			if isObject && !*haveKey {
				*pendingKey = unquoteKey(text[*entryStart:p])
				*haveKey = true
				*entryStart = p + 1
				*entryNested = nil
			}
		}
	}
}

// unquoteKey strips the surrounding double quotes (if present) and
// resolves \" and \\ escapes from a raw object-key span; getJsonExpres()
// recognizes the same two escapes inside any string, so a key is
// unescaped the identical way a string value is.
func unquoteKey(raw []byte) string {
	s := runebuf.Trim(raw).Bytes()
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	return unescapeString(s)
}

func unescapeString(s []byte) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) && (s[i+1] == '"' || s[i+1] == '\\') {
			out = append(out, s[i+1])
			i++
			continue
		}
		out = append(out, s[i])
	}
	return string(out)
}
