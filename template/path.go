package template

import (
	"strconv"
	"strings"

	"github.com/lineCode/qentem/document"
)

// lookupPath resolves a variable key such as "strings[0]" or "user.name"
// against root, returning ok == false for any missing key or out-of-range
// index rather than erroring — spec.md §7's "out-of-range indices leave
// the original key text in place" is implemented by the caller (renderVar)
// falling back to the raw key text when lookupPath reports ok == false.
func lookupPath(root *document.Document, key string) (document.Value, bool) {
	cur := document.NestedValue(root)
	for _, tok := range splitPath(key) {
		if cur.Kind != document.Nested || cur.Doc == nil {
			return document.Value{}, false
		}
		if tok.index {
			v, ok := cur.Doc.At(tok.n)
			if !ok {
				return document.Value{}, false
			}
			cur = v
			continue
		}
		v, ok := cur.Doc.Get(tok.name)
		if !ok {
			return document.Value{}, false
		}
		cur = v
	}
	return cur, true
}

type pathToken struct {
	name  string
	index bool
	n     int
}

// splitPath tokenizes "a.b[2].c" into [{a} {b} {index 2} {c}].
func splitPath(key string) []pathToken {
	var tokens []pathToken
	for _, dotPart := range strings.Split(key, ".") {
		for len(dotPart) > 0 {
			bracket := strings.IndexByte(dotPart, '[')
			if bracket < 0 {
				tokens = append(tokens, pathToken{name: dotPart})
				break
			}
			if bracket > 0 {
				tokens = append(tokens, pathToken{name: dotPart[:bracket]})
			}
			end := strings.IndexByte(dotPart[bracket:], ']')
			if end < 0 {
				tokens = append(tokens, pathToken{name: dotPart[bracket+1:]})
				break
			}
			end += bracket
			if n, err := strconv.Atoi(dotPart[bracket+1 : end]); err == nil {
				tokens = append(tokens, pathToken{index: true, n: n})
			} else {
				tokens = append(tokens, pathToken{name: dotPart[bracket+1 : end]})
			}
			dotPart = dotPart[end+1:]
		}
	}
	return tokens
}
