package document

import qentem "github.com/lineCode/qentem"

// jsonRules bundles one freshly built JSON rule graph together with the
// individual rule pointers callers need to tell, by identity, which kind of
// span a child MatchBit represents. Built fresh per Parse call rather than
// once in a package init() — spec.md §9's redesign flag re-expresses the
// reference's lazily-constructed static rule tables as caller-constructed,
// non-shared state, so a rule graph never doubles as hidden mutable global
// state (see DESIGN.md).
type jsonRules struct {
	objectOpen, objectClose *qentem.Rule
	arrayOpen, arrayClose   *qentem.Rule
	stringOpen, stringClose *qentem.Rule
	topLevel                qentem.RuleSet
}

// buildJSONRules constructs the graph grounded directly in the reference
// Document's getJsonExpres(): a quoted string (with backslash escapes
// recognized as inner nested rules so an escaped quote can't end the
// string early), and curly/square bracket pairs that may nest each other
// and strings. Commas and colons inside an object or array body are not
// part of this graph at all — they are found by scanning the body's gaps
// once the matcher has already carved out every nested string/object/array
// span (see entries.go).
func buildJSONRules() jsonRules {
	escBackslash := &qentem.Rule{Head: []byte(`\\`)}
	escQuote := &qentem.Rule{Head: []byte(`\"`)}

	stringOpen := &qentem.Rule{Head: []byte(`"`)}
	stringClose := &qentem.Rule{
		Head:        []byte(`"`),
		NestedRules: qentem.RuleSet{escBackslash, escQuote},
	}
	stringOpen.Connected = stringClose

	objectOpen := &qentem.Rule{Head: []byte("{")}
	objectClose := &qentem.Rule{Head: []byte("}")}
	objectOpen.Connected = objectClose

	arrayOpen := &qentem.Rule{Head: []byte("[")}
	arrayClose := &qentem.Rule{Head: []byte("]")}
	arrayOpen.Connected = arrayClose

	objectClose.NestedRules = qentem.RuleSet{objectOpen, stringOpen, arrayOpen}
	arrayClose.NestedRules = qentem.RuleSet{arrayOpen, stringOpen, objectOpen}

	return jsonRules{
		objectOpen:  objectOpen,
		objectClose: objectClose,
		arrayOpen:   arrayOpen,
		arrayClose:  arrayClose,
		stringOpen:  stringOpen,
		stringClose: stringClose,
		topLevel:    qentem.RuleSet{objectOpen, arrayOpen},
	}
}
