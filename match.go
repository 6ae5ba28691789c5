package qentem

import (
	"bytes"

	"github.com/lineCode/qentem/internal/headindex"
	"github.com/lineCode/qentem/internal/runebuf"
)

// Match scans text[offset:offset+length] against rules and returns an
// ordered, non-overlapping list of top-level matches (spec.md §4.3).
//
// Match never errors: an unterminated delimiter, a recursion limit hit, or
// a rule graph that never matches anything all degrade to fewer matches,
// never a reported failure (spec.md §7).
func Match(rules RuleSet, text []byte, offset, length int, cfg MatchConfig) []MatchBit {
	if length <= 0 || len(rules) == 0 {
		return nil
	}
	end := offset + length
	if end > len(text) {
		end = len(text)
	}
	return matchLevel(rules, text, offset, end, cfg, 0)
}

// matchLevel runs the scanning loop described in spec.md §4.3 steps 1-7
// over exactly one window, then applies the POP fallback (step 8) and the
// splitter (step 9, see split.go) before returning.
func matchLevel(rules RuleSet, text []byte, start, end int, cfg MatchConfig, depth int) []MatchBit {
	matches, splitCount := scanLevel(rules, text, start, end, cfg, depth)

	if len(matches) == 0 && len(rules) > 0 && rules[0].Flags.Has(FlagPop) && len(rules[0].NestedRules) > 0 {
		return matchLevel(rules[0].NestedRules, text, start, end, cfg, depth)
	}

	if splitCount > 0 {
		matches = splitMatches(rules, matches, text, start, end, cfg, depth)
	}
	return matches
}

// scanLevel is the rotating-cursor outer loop: at each position i, every
// rule is tried in order (earlier rules win ties); if none match, i
// advances by exactly one byte. Once a rule matches, the cursor jumps past
// it and rotation restarts at rule zero.
func scanLevel(rules RuleSet, text []byte, start, end int, cfg MatchConfig, depth int) (matches []MatchBit, splitCount int) {
	onceUsed := make(map[*Rule]bool)
	ix, _ := headIndexFor(rules)
	i := start
	steps := 0
	for i < end {
		if cfg.MaxSteps > 0 {
			steps++
			if steps > cfg.MaxSteps {
				break
			}
		}

		if ix != nil {
			if _, ok := ix.MatchAt(text, i); !ok {
				i++
				continue
			}
		}

		entry, bit, newI, ok := tryRulesAt(rules, onceUsed, text, i, end, cfg, depth)
		if !ok {
			i++
			continue
		}

		// bit.Rule is the "effective" rule for this match: for a plain or
		// match_callback rule that's entry itself; for a connected pair
		// (spec.md §3.1) it's the rule bearing the tail anchor, which is
		// where flags, nested_rules and parse_callback actually live. Once
		// is tracked per list entry, since that's what the scan loop below
		// skips, but its flag is read from bit.Rule.
		if bit.Rule.Flags.Has(FlagOnce) {
			onceUsed[entry] = true
		}
		if bit.Rule.Flags.Has(FlagSplit) {
			splitCount++
		}
		if shouldRecord(bit.Rule, bit) {
			matches = append(matches, bit)
		}
		i = newI
	}
	return matches, splitCount
}

// headIndexFor builds a literal index over rules' head text, letting
// scanLevel reject a position with a single lookup instead of trying every
// rule in order when nothing can possibly match there. Built fresh per
// scanLevel call rather than cached on RuleSet, consistent with this
// module's per-call construction rather than hidden static state.
// hasCallbackRules disables the fast path entirely when any rule matches
// via MatchCallback instead of a literal Head, since those rules have no
// head text to index and must always be tried directly.
func headIndexFor(rules RuleSet) (ix *headindex.Index, hasCallbackRules bool) {
	literals := make([]string, 0, len(rules))
	for _, r := range rules {
		if r.MatchCallback != nil {
			hasCallbackRules = true
			continue
		}
		if len(r.Head) > 0 {
			literals = append(literals, string(r.Head))
		}
	}
	if hasCallbackRules || len(literals) == 0 {
		return nil, hasCallbackRules
	}
	return headindex.Build(literals), false
}

// shouldRecord applies the FlagIgnore and FlagDropEmpty policy from
// spec.md §4.2 to a single raw match.
func shouldRecord(rule *Rule, bit MatchBit) bool {
	if rule.Flags.Has(FlagIgnore) {
		return false
	}
	if rule.Flags.Has(FlagDropEmpty) && !rule.Flags.Has(FlagSplit) && rule.Tail != nil {
		payload := bit.Length - len(rule.Head) - len(rule.Tail)
		if payload <= 0 {
			return false
		}
	}
	return true
}

// tryRulesAt tries every rule in rules, in order, at the exact position i
// (no forward scanning). Rules already exhausted by FlagOnce are skipped.
// entry is the list element that matched (what onceUsed tracks); bit.Rule
// may differ from entry when entry is the opening half of a connected pair.
func tryRulesAt(rules RuleSet, onceUsed map[*Rule]bool, text []byte, i, end int, cfg MatchConfig, depth int) (entry *Rule, bit MatchBit, newI int, ok bool) {
	for _, r := range rules {
		if onceUsed[r] {
			continue
		}
		if b, n, ok2 := tryRule(r, text, i, end, cfg, depth); ok2 {
			return r, b, n, true
		}
	}
	return nil, MatchBit{}, i, false
}

// tryRule attempts a single rule at the exact position i.
func tryRule(rule *Rule, text []byte, i, end int, cfg MatchConfig, depth int) (MatchBit, int, bool) {
	if rule.MatchCallback != nil {
		bit, newOffset, ok := rule.MatchCallback(text, i)
		if !ok || newOffset < i || newOffset > end {
			return MatchBit{}, i, false
		}
		bit.Rule = rule
		bit.Offset = i
		bit.Length = newOffset - i
		bit.BodyOffset = i
		bit.BodyLength = newOffset - i
		return bit, newOffset, true
	}

	if len(rule.Head) == 0 || i+len(rule.Head) > end {
		return MatchBit{}, i, false
	}
	if !bytes.Equal(text[i:i+len(rule.Head)], rule.Head) {
		return MatchBit{}, i, false
	}
	cur := i + len(rule.Head)

	if !rule.hasClose() {
		return MatchBit{Offset: i, Length: cur - i, Rule: rule, BodyOffset: i, BodyLength: cur - i}, cur, true
	}

	// The rule bearing the tail anchor (spec.md §3.1's invariant) owns the
	// flags, nested_rules and parse_callback that govern this match; for a
	// plain head+tail rule that's rule itself, for a connected pair it's
	// rule.Connected.
	effective := rule
	if rule.Connected != nil {
		effective = rule.Connected
	}

	if cfg.MaxRecursionDepth > 0 && depth >= cfg.MaxRecursionDepth {
		// Unbalanced per the recursion budget: roll back as if the tail
		// was never found (spec.md §7).
		return MatchBit{}, i, false
	}

	closeEnd, bodyEnd, children, ok := findClose(rule, effective, text, cur, end, cfg, depth)
	if !ok {
		return MatchBit{}, i, false
	}
	bodyOffset, bodyLength := cur, bodyEnd-cur
	if effective.Flags.Has(FlagTrim) {
		runebuf.SoftTrim(text, &bodyOffset, &bodyLength)
	}
	return MatchBit{
		Offset: i, Length: closeEnd - i,
		Rule:       effective,
		Children:   children,
		BodyOffset: bodyOffset, BodyLength: bodyLength,
	}, closeEnd, true
}

// findClose locates where opener's match closes, starting the search at
// cur. opener is the rule whose head was just matched; effective is the
// rule bearing the tail anchor (opener itself for a plain head+tail rule,
// opener.Connected for a connected pair) and is what supplies NestedRules
// for both the depth-counting scan and the recursive child match. It is a
// two-phase search:
//
//  1. Scan forward counting balanced re-entries of opener's own opening
//     text (opener.Head), so that nested occurrences of the same delimiter
//     close their own pair before the outer one does. Any other
//     NestedRules encountered along the way are skipped over structurally
//     (their own tail, if any, is honored) without affecting the depth
//     counter — this is what lets an escape sequence inside a quoted
//     string, or an inner <if> block inside an outer one, pass through
//     without confusing the outer close search (spec.md §6's "shallow
//     opening" note for Template's </if>).
//  2. Once the balanced close position is found, run the ordinary matcher
//     recursively over [cur, closeOffset) using effective.NestedRules to
//     build the match's Children (spec.md §4.3 step 3).
func findClose(opener, effective *Rule, text []byte, cur, end int, cfg MatchConfig, depth int) (closeEnd, bodyEnd int, children []MatchBit, ok bool) {
	reentrant := selfReentrant(opener, effective)

	p := cur
	nestDepth := 0
	for p < end {
		if reentrant && i0Match(text, p, end, opener.Head) {
			nestDepth++
			p += len(opener.Head)
			continue
		}

		if closeLen, closeOK := matchClose(opener, text, p, end, cfg, depth); closeOK {
			if nestDepth == 0 {
				innerEnd := p
				childMatches := matchLevel(effective.NestedRules, text, cur, innerEnd, cfg, depth+1)
				return p + closeLen, innerEnd, childMatches, true
			}
			nestDepth--
			p += closeLen
			continue
		}

		if skipLen, skipped := skipOtherNested(opener, effective, text, p, end, cfg, depth); skipped {
			p += skipLen
			continue
		}

		p++
	}
	return 0, 0, nil, false
}

// selfReentrant reports whether opener may nest inside its own match:
// either it appears in effective's NestedRules, or (the Template "shallow
// opening" idiom) one of them shares opener's exact Head text.
func selfReentrant(opener, effective *Rule) bool {
	for _, nr := range effective.NestedRules {
		if nr == opener {
			return true
		}
		if len(nr.Head) > 0 && bytes.Equal(nr.Head, opener.Head) {
			return true
		}
	}
	return false
}

// matchClose tests whether opener's close (its Connected rule's match, or
// its own Tail literally) occurs at position p, returning how many bytes
// it occupies.
func matchClose(opener *Rule, text []byte, p, end int, cfg MatchConfig, depth int) (int, bool) {
	if opener.Connected != nil {
		if _, n, ok := tryRule(opener.Connected, text, p, end, cfg, depth+1); ok {
			return n - p, true
		}
		return 0, false
	}
	if opener.Tail != nil && i0Match(text, p, end, opener.Tail) {
		return len(opener.Tail), true
	}
	return 0, false
}

// skipOtherNested tries every rule in effective's NestedRules other than
// opener itself at position p, purely to determine how many bytes to skip
// over while searching for the close; the resulting MatchBit is discarded
// here since phase two (the recursive matchLevel call in findClose)
// re-derives the full child structure.
func skipOtherNested(opener, effective *Rule, text []byte, p, end int, cfg MatchConfig, depth int) (int, bool) {
	for _, nr := range effective.NestedRules {
		if nr == opener {
			continue
		}
		if _, n, ok := tryRule(nr, text, p, end, cfg, depth+1); ok {
			return n - p, true
		}
	}
	return 0, false
}

func i0Match(text []byte, p, end int, lit []byte) bool {
	if len(lit) == 0 || p+len(lit) > end {
		return false
	}
	return bytes.Equal(text[p:p+len(lit)], lit)
}
