package qentem

// Flag is the closed set of options a Rule may carry (spec.md §4.2). Flags
// compose by set union.
type Flag uint16

const (
	// FlagBubble makes the parse callback receive the inner text, first
	// recursively parsed through the match's children, rather than the raw
	// matched span.
	FlagBubble Flag = 1 << iota

	// FlagDropEmpty omits a split segment whose trimmed content is empty,
	// and omits a match whose payload (span minus head/tail lengths) is
	// empty.
	FlagDropEmpty

	// FlagGrouped wraps split segments as children of one synthetic parent
	// match instead of replacing the sibling list flat.
	FlagGrouped

	// FlagTrim strips ASCII whitespace at segment boundaries before
	// recording the segment.
	FlagTrim

	// FlagSplit marks a rule as a separator within its parent: finding it
	// does not record a payload match but signals the splitter.
	FlagSplit

	// FlagOnce stops scanning the window after the first successful match
	// of this rule.
	FlagOnce

	// FlagIgnore records the rule's matches only to prevent other rules
	// from overlapping them; they are never recorded in output.
	FlagIgnore

	// FlagPop re-scans the window using the rule's NestedRules as the rule
	// set if no match of this rule (or its subtree) was found.
	FlagPop
)

// Has reports whether f contains every bit of other.
func (f Flag) Has(other Flag) bool {
	return f&other == other
}

// MatchFunc is a custom match detector, used in place of literal
// head-matching (spec.md §4.3.1). Given text and the current offset, it
// either produces a MatchBit and the offset just past what it consumed
// (ok == true), or reports ok == false having consumed nothing.
type MatchFunc func(text []byte, offset int) (bit MatchBit, newOffset int, ok bool)

// ParseFunc transforms a matched region into its rendered replacement
// (spec.md §4.4). content is the raw matched span when the rule's
// FlagBubble is clear; when FlagBubble is set it is instead the body
// window (the span between the opening and closing anchors) with any
// child matches recursively rendered in place — this still equals the
// raw body text verbatim when the match has no children. m is the match
// being rendered, and text is the same buffer
// originally given to Match — m and every one of its descendants index
// into it with absolute offsets regardless of what content holds, which is
// what lets a callback re-run Parse or re-inspect individual children
// (e.g. an arithmetic callback reading each split segment's own span) even
// when content has been replaced by bubbled text. ctx is the opaque
// caller-provided context passed to the top-level Parse call.
//
// A callback must be pure with respect to text and must not retain content,
// text, or any slice derived from either beyond the call.
type ParseFunc func(content []byte, m *MatchBit, text []byte, ctx any) []byte

// Rule is a passive description of one pattern (spec.md §3.1). Rule graphs
// are built once by the caller and treated as read-only during matching;
// they may be self-referential or mutually recursive, so Rule values are
// always referenced through pointers and never copied.
type Rule struct {
	// Head is the opening anchor the scanner looks for. It must be
	// non-empty unless MatchCallback is set.
	Head []byte

	// Tail, when non-nil, is the closing anchor a delimited match must
	// find after Head. Rules without Tail and without Connected are
	// matched immediately after Head (spec.md §4.3 step 5).
	Tail []byte

	// Connected, when set, names the rule whose own match (found by
	// scanning forward from where Head ended) completes this rule's
	// match — the head→body→tail chaining spec.md §3.1 describes.
	// Connected takes precedence over Tail when both are set.
	Connected *Rule

	// NestedRules are the rules permitted to appear between Head and the
	// close; the matcher recurses into them to build Children and to
	// recognize balanced self-nesting. For a Tail rule they are read from
	// the rule itself, for a connected pair from the Connected (closing)
	// rule. They are also the rule set the splitter runs over each segment
	// closed by a FlagSplit rule, and the fallback rule set of FlagPop.
	NestedRules []*Rule

	// Replacement is the literal string emitted for a match of this rule
	// when ParseCallback is nil.
	Replacement []byte

	// ID is an opaque small integer a shared callback uses to distinguish
	// between sibling rules (e.g. '+' vs '-' in an arithmetic grammar).
	ID int

	// Flags is the set of options from Flag that apply to this rule.
	Flags Flag

	// MatchCallback, when set, replaces literal head-matching entirely
	// (spec.md §4.3.1).
	MatchCallback MatchFunc

	// ParseCallback, when set, computes this rule's rendered replacement
	// (spec.md §4.4).
	ParseCallback ParseFunc
}

// RuleSet is an ordered list of rules. Order matters: at a given scan
// position, rules earlier in the list win ties over rules later in the
// list (spec.md §4.3 "ordering guarantees").
type RuleSet []*Rule

// hasClose reports whether the rule has a Tail or a Connected rule, i.e.
// whether it is a delimited rule whose match continues past Head to a
// close.
func (r *Rule) hasClose() bool {
	return r.Tail != nil || r.Connected != nil
}

// Compile validates a caller-built RuleSet against spec.md §3.1's
// construction invariants before it is ever handed to Match: the set must
// not be empty, and every rule without a MatchCallback must carry a
// non-empty Head. It walks Connected rules and NestedRules too, since those
// are just as reachable during a real Match call, tracking visited rules by
// pointer so a self-referential or mutually recursive rule graph (ordinary
// and expected — see match.go's selfReentrant) is still checked exactly
// once rather than looping forever.
//
// Compile is a pre-flight check a caller may run once after building a rule
// graph (ale.buildRules, document.buildJSONRules and template.buildTagRules
// all assemble rule graphs by hand and never call it themselves, since
// their own literal construction is already known-good at compile time);
// it exists for callers assembling a custom RuleSet of their own.
func Compile(rules RuleSet) error {
	if len(rules) == 0 {
		return ErrNilRuleSet
	}
	return compileSet(rules, make(map[*Rule]bool))
}

func compileSet(rules RuleSet, visited map[*Rule]bool) error {
	for _, r := range rules {
		if err := compileRule(r, visited); err != nil {
			return err
		}
	}
	return nil
}

func compileRule(r *Rule, visited map[*Rule]bool) error {
	if visited[r] {
		return nil
	}
	visited[r] = true

	if r.MatchCallback == nil && len(r.Head) == 0 {
		return ErrEmptyHead
	}
	if r.Connected != nil {
		if err := compileRule(r.Connected, visited); err != nil {
			return err
		}
	}
	return compileSet(r.NestedRules, visited)
}
