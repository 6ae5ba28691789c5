package qentem

// MatchBit records one successful recognition (spec.md §3.2). Children are
// strictly contained inside the parent's span, appear in increasing Offset
// order, and never overlap one another — the same invariants the top-level
// result of Match satisfies.
type MatchBit struct {
	// Offset and Length describe the half-open span [Offset, Offset+Length)
	// this match occupies in the input.
	Offset int
	Length int

	// Rule is the rule that produced this match. It is a non-owning
	// reference: it must not outlive the RuleSet that built it.
	Rule *Rule

	// Children holds nested matches produced by recursing into the owning
	// rule's NestedRules, or segment children synthesized by the splitter.
	Children []MatchBit

	// BodyOffset and BodyLength describe the sub-span Children were
	// matched over: for a delimited match this excludes the opening and
	// closing anchors; for any other match it equals Offset/Length. A
	// FlagBubble parse_callback recurses over exactly this window so that
	// text between the anchors and the first/last child still passes
	// through (spec.md §4.4).
	BodyOffset int
	BodyLength int
}

// End returns the exclusive end offset of the match's span.
func (m MatchBit) End() int {
	return m.Offset + m.Length
}

// Span returns the matched bytes out of text.
func (m MatchBit) Span(text []byte) []byte {
	return text[m.Offset:m.End()]
}

// Body returns the bytes within BodyOffset/BodyLength.
func (m MatchBit) Body(text []byte) []byte {
	return text[m.BodyOffset : m.BodyOffset+m.BodyLength]
}
