package qentem

// MatchConfig bounds a single Match call. It is the re-expression of
// spec.md §9's instruction to avoid static mutable rule/config caches: a
// caller constructs (or reuses) a MatchConfig value explicitly and passes
// it to every call, the way hucsmn-peg threads its own Config value through
// Match/Parse rather than stashing it in a package global.
type MatchConfig struct {
	// MaxRecursionDepth bounds how deep nested-rule recursion (spec.md
	// §4.3 step 3) may go before an open attempt is treated as
	// unterminated and rolled back. Zero or negative means unlimited.
	MaxRecursionDepth int

	// MaxSteps bounds the number of outer-loop scan attempts each scanning
	// level may perform (the top-level window, and separately every nested
	// or split sub-window scanned during the same Match call), as a
	// defensive backstop against a
	// misconstructed rule graph. Zero or negative means unlimited; a
	// correctly constructed rule graph never needs this, since the
	// matcher already advances by at least one code unit per outer
	// iteration once every rule has failed (spec.md §5).
	MaxSteps int
}

// DefaultConfig places no bound on recursion depth or step count, mirroring
// the unbounded defaults spec.md's algorithm describes.
var DefaultConfig = MatchConfig{}
