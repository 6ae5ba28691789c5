package qentem

import "github.com/lineCode/qentem/internal/runebuf"

// splitMatches rewrites a flat match list containing at least one
// FlagSplit match into grouped segments (spec.md §4.5). It is only called
// by matchLevel once it has observed splitCount > 0 for the level.
func splitMatches(rules RuleSet, flat []MatchBit, text []byte, start, end int, cfg MatchConfig, depth int) []MatchBit {
	var segments []MatchBit
	var pending []MatchBit
	var separator *Rule

	segStart := start
	for _, m := range flat {
		if !m.Rule.Flags.Has(FlagSplit) {
			pending = append(pending, m)
			continue
		}
		if separator == nil {
			separator = m.Rule
		}

		if seg, ok := closeSegment(m.Rule, text, segStart, m.Offset, pending); ok {
			segments = append(segments, seg)
		}
		pending = nil
		segStart = m.Offset + m.Length
	}

	if separator == nil {
		// No rule actually carried FlagSplit despite splitCount > 0 — this
		// should never happen for a well-formed rule graph; return flat
		// unchanged rather than losing matches.
		return flat
	}

	if seg, ok := closeSegment(separator, text, segStart, end, pending); ok {
		seg.Rule = nil
		segments = append(segments, seg)
	}

	for i := range segments {
		populateSegment(&segments[i], separator, text, cfg, depth)
	}

	if separator.Flags.Has(FlagGrouped) {
		return []MatchBit{{Offset: start, Length: end - start, Rule: separator, Children: segments, BodyOffset: start, BodyLength: end - start}}
	}
	return segments
}

// closeSegment builds one segment spanning [from, to), applying the
// separator's FlagTrim and FlagDropEmpty.
func closeSegment(separator *Rule, text []byte, from, to int, children []MatchBit) (MatchBit, bool) {
	offset, length := from, to-from
	if separator.Flags.Has(FlagTrim) {
		runebuf.SoftTrim(text, &offset, &length)
	}
	if separator.Flags.Has(FlagDropEmpty) && length == 0 {
		return MatchBit{}, false
	}
	return MatchBit{Offset: offset, Length: length, Rule: separator, Children: children, BodyOffset: offset, BodyLength: length}, true
}

// populateSegment fills in a segment's children by running the matcher
// over its own window against the enclosing rule's NestedRules, per
// spec.md §4.5's final paragraph. The segment's own closing rule is used
// when present (the common case); the trailing segment, which has no
// closing separator of its own, falls back to the tier's representative
// separator, since every rule sharing a tier carries the same NestedRules.
func populateSegment(seg *MatchBit, separator *Rule, text []byte, cfg MatchConfig, depth int) {
	nested := separator.NestedRules
	if seg.Rule != nil {
		nested = seg.Rule.NestedRules
	}
	if len(nested) == 0 {
		return
	}
	sub := matchLevel(nested, text, seg.Offset, seg.Offset+seg.Length, cfg, depth+1)
	seg.Children = append(append([]MatchBit{}, seg.Children...), sub...)
}
