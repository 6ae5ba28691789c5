package qentem

import "github.com/lineCode/qentem/internal/strstream"

// Parse walks matches over text[offset:offset+length] and renders them
// into a single output string (spec.md §4.4). Text that falls between
// matches — before the first, after the last, or between any two — passes
// through untouched; this is what lets Match/Parse be used as a targeted
// find-and-replace over otherwise unremarkable input. ctx is passed
// through, unexamined, to every ParseCallback invoked along the way.
//
// Parse never errors: a rule with neither ParseCallback nor Replacement
// simply contributes nothing (spec.md §7's "missing callback and missing
// replacement" rule), so a caller can never construct an input that makes
// Parse fail.
func Parse(matches []MatchBit, text []byte, offset, length int, ctx any) string {
	b := strstream.New()
	renderWindow(b, matches, text, offset, offset+length, ctx)
	return string(b.Eject())
}

// renderWindow appends the rendering of matches, in order, to b, filling
// the untouched gaps between start and the first match, between
// consecutive matches, and between the last match and end.
func renderWindow(b *strstream.Builder, matches []MatchBit, text []byte, start, end int, ctx any) {
	cur := start
	for i := range matches {
		m := &matches[i]
		if m.Offset > cur {
			b.AppendBorrowed(text[cur:m.Offset])
		}
		renderOne(b, m, text, ctx)
		cur = m.End()
	}
	if cur < end {
		b.AppendBorrowed(text[cur:end])
	}
}

func renderOne(b *strstream.Builder, m *MatchBit, text []byte, ctx any) {
	rule := m.Rule
	if rule == nil {
		b.AppendBorrowed(m.Span(text))
		return
	}

	content := m.Span(text)
	if rule.Flags.Has(FlagBubble) {
		// Always reduce to exactly the body window (the span between the
		// opening and closing anchors), whether or not any child matches
		// were found inside it: with none, renderWindow's gap-filling
		// still reproduces the body verbatim, which is what a bubbling
		// callback expects in place of the full head-to-tail span.
		inner := strstream.New()
		renderWindow(inner, m.Children, text, m.BodyOffset, m.BodyOffset+m.BodyLength, ctx)
		content = inner.Eject()
	}

	switch {
	case rule.ParseCallback != nil:
		b.AppendOwned(rule.ParseCallback(content, m, text, ctx))
	case rule.Replacement != nil:
		b.AppendBorrowed(rule.Replacement)
	default:
		// spec.md §7: a match whose rule carries neither a callback nor a
		// literal replacement renders as nothing, not as its own span —
		// unlike the gaps between matches, which always pass through.
	}
}
