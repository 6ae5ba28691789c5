package qentem

import "fmt"

// engineError is the sentinel error type for programmer-error conditions:
// a malformed rule graph or an out-of-contract call. Match and Parse
// themselves never return these — per spec.md §7 a text that fails to
// match degrades to an empty or pass-through result, not an error. The
// sentinels below exist for callers that want to errors.Is against a
// specific construction mistake, in the same spirit as hucsmn-peg's
// pegError/errorf pair.
type engineError struct {
	message string
}

func (e *engineError) Error() string {
	return "qentem: " + e.message
}

func errorf(format string, args ...interface{}) error {
	return &engineError{message: fmt.Sprintf(format, args...)}
}

var (
	// ErrNilRuleSet is returned by Compile when given an empty rule set,
	// since there is nothing to index.
	ErrNilRuleSet = errorf("rule set is empty")

	// ErrEmptyHead is returned by Compile when a rule without a
	// MatchCallback carries a zero-length Head, violating the invariant in
	// spec.md §3.1 ("head length > 0 for every rule whose match_callback
	// is not set").
	ErrEmptyHead = errorf("rule has an empty head and no match callback")
)
