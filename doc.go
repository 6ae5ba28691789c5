// Package qentem implements a rule-based text matching and transformation
// engine: a scanner that locates structured matches (delimited, nested,
// alternated, split) over a flat byte window, optionally delegating match
// detection to a caller-supplied callback, and a companion parser/renderer
// that walks the resulting match tree re-emitting the input with matched
// regions rewritten by caller callbacks.
//
// The engine is single-threaded and cooperative within one call: Match and
// Parse run to completion with no suspension points and no I/O. Multiple
// independent calls may run concurrently over distinct inputs as long as
// each has its own working state; a RuleSet is built once and treated as
// read-only afterwards (see Rule).
//
// # Overview
//
// A RuleSet describes what to look for. Match scans a text window against
// a RuleSet and returns an ordered, non-overlapping tree of MatchBit
// values. Parse walks that tree (or a tree returned by Match) and rebuilds
// an output string, consulting each matched rule's ParseCallback or
// Replacement for what to emit in place of the match, and copying
// unmatched spans through verbatim.
//
//	rules := qentem.RuleSet{{Head: []byte("-"), Replacement: []byte("*")}}
//	matches := qentem.Match(rules, text, 0, len(text), qentem.DefaultConfig)
//	out := qentem.Parse(matches, text, 0, len(text), nil)
//
// Delimited rules (Head and Tail both set) may nest: a rule may list
// itself among its own NestedRules to recognize balanced brackets, and
// SPLIT-flagged nested rules are regrouped into per-segment children by
// the splitter before Parse ever sees them. See Rule and Flag for the full
// option set.
package qentem
