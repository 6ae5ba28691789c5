// Package headindex indexes a small set of literal byte strings (escape
// sequences, reserved punctuation, operator spellings) so a scanner can
// test "does any of these literals start at this position" without trying
// each candidate in turn.
//
// The structure is a byte-keyed trie: each node holds the children reached
// by the single next byte, and marks itself terminal if some indexed
// literal ends there. A query walks the trie one byte at a time straight
// from a caller-given (text, at) window position, remembering the deepest
// terminal node it passed through so the longest match wins — there is no
// separate "slice off N bytes, then look them up" step, since the engine
// never knows in advance how long a match might be before it finds one.
// This is the same "which of these fixed literals occurs here" concern
// hucsmn-peg's prefixTree (github.com/hucsmn/peg/prefixtree.go) serves for
// TS/TSI, built instead as a direct byte trie because match.go's scanLevel
// only ever asks the index about one absolute cursor position at a time,
// never a pre-sliced candidate string of known width.
package headindex

// Index answers membership queries against a fixed set of literal byte
// strings.
type Index struct {
	root *node
}

type node struct {
	terminal bool
	children map[byte]*node
}

// Build indexes literals. Empty entries are ignored; duplicates collapse
// naturally since inserting the same path twice is a no-op.
func Build(literals []string) *Index {
	root := &node{}
	for _, lit := range literals {
		if lit != "" {
			insert(root, lit)
		}
	}
	return &Index{root: root}
}

func insert(n *node, lit string) {
	for i := 0; i < len(lit); i++ {
		b := lit[i]
		if n.children == nil {
			n.children = make(map[byte]*node, 1)
		}
		child, ok := n.children[b]
		if !ok {
			child = &node{}
			n.children[b] = child
		}
		n = child
	}
	n.terminal = true
}

// MatchAt reports the length of the longest indexed literal that occurs at
// text[at:], and ok is false if no indexed literal starts there.
func (ix *Index) MatchAt(text []byte, at int) (length int, ok bool) {
	n := ix.root
	if n.terminal {
		length, ok = 0, true
	}
	for i := 0; n.children != nil && at+i < len(text); i++ {
		child, exists := n.children[text[at+i]]
		if !exists {
			break
		}
		n = child
		if n.terminal {
			length, ok = i+1, true
		}
	}
	return length, ok
}
