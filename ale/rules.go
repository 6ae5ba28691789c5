// Package ale evaluates arithmetic and logic expressions over plain text —
// the ALE collaborator layer built on top of the core matcher. An
// expression like "(2 + 3) * 4 >= 18 && 1" is matched, then reduced tier by
// tier from parentheses down through multiplication, addition, relational
// comparison and finally boolean and/or, exactly mirroring the precedence
// ladder Qentem's original evaluator hard-codes as a chain of ParseCallback
// functions.
package ale

import qentem "github.com/lineCode/qentem"

// Operator IDs within each tier. These are not iota-generated: they mirror
// the literal small integers the reference evaluator's callbacks switch on,
// since both the rule's ID and the case labels in multiplicationCallback,
// additionCallback, equalCallback and logicCallback must agree.
const (
	idMul = 1
	idDiv = 2
	idExp = 3
	idRem = 4
)

const (
	idAdd = 1
	idSub = 2
)

const (
	idEqualEqual = 1
	idEqual      = 2
	idNotEqual   = 3
	idLessEqual  = 4
	idLess       = 5
	idGreatEqual = 6
	idGreat      = 7
)

const (
	idAnd = 1
	idOr  = 2
)

// tierLead carries every flag a tier's operator rules need plus the one
// that lets matchLevel fall through to the next tier when nothing at this
// tier matched. tierRest omits FlagPop: only the first rule in a tier's
// RuleSet is consulted for the fallback (spec.md §4.3 step 8), so every
// other sibling rule in the tier only needs the splitting flags.
const (
	tierRest = qentem.FlagSplit | qentem.FlagGrouped | qentem.FlagTrim
	tierLead = tierRest | qentem.FlagPop
)

// ruleGraph is one freshly built operator-tier cascade. Built per
// Evaluate/EvaluateBytes call rather than once in a package init() —
// spec.md §9's redesign flag re-expresses the reference's lazily
// constructed static rule tables as caller-constructed, non-shared state;
// it also happens to be exactly what's needed to let LoadOperators swap in
// an alternate token vocabulary per call, since a package-level singleton
// could never do that.
type ruleGraph struct {
	logic qentem.RuleSet
	paren qentem.RuleSet
}

// buildRules constructs the full tier cascade using ops' literal operator
// tokens in place of the hardcoded defaults.
func buildRules(ops OperatorTable) ruleGraph {
	mulRule := &qentem.Rule{Head: []byte(ops.Mul), ID: idMul, Flags: tierRest, ParseCallback: multiplicationCallback}
	divRule := &qentem.Rule{Head: []byte(ops.Div), ID: idDiv, Flags: tierRest, ParseCallback: multiplicationCallback}
	expRule := &qentem.Rule{Head: []byte(ops.Exp), ID: idExp, Flags: tierRest, ParseCallback: multiplicationCallback}
	remRule := &qentem.Rule{Head: []byte(ops.Rem), ID: idRem, Flags: tierRest, ParseCallback: multiplicationCallback}
	// Exponent and remainder are tried before division and multiplication
	// so that "^" and "%" are not mistaken for stray characters inside a
	// malformed "*"/"/" scan; order otherwise has no semantic effect since
	// the four operators don't share a prefix.
	mulTier := qentem.RuleSet{expRule, remRule, divRule, mulRule}

	addRule := &qentem.Rule{Head: []byte(ops.Add), ID: idAdd, Flags: tierLead, ParseCallback: additionCallback, NestedRules: mulTier}
	subRule := &qentem.Rule{Head: []byte(ops.Sub), ID: idSub, Flags: tierRest, ParseCallback: additionCallback, NestedRules: mulTier}
	addTier := qentem.RuleSet{addRule, subRule}

	eqEqRule := &qentem.Rule{Head: []byte("=="), ID: idEqualEqual, Flags: tierLead, ParseCallback: equalCallback, NestedRules: addTier}
	eqRule := &qentem.Rule{Head: []byte("="), ID: idEqual, Flags: tierRest, ParseCallback: equalCallback, NestedRules: addTier}
	notEqRule := &qentem.Rule{Head: []byte("!="), ID: idNotEqual, Flags: tierRest, ParseCallback: equalCallback, NestedRules: addTier}
	lessEqRule := &qentem.Rule{Head: []byte("<="), ID: idLessEqual, Flags: tierRest, ParseCallback: equalCallback, NestedRules: addTier}
	lessRule := &qentem.Rule{Head: []byte("<"), ID: idLess, Flags: tierRest, ParseCallback: equalCallback, NestedRules: addTier}
	greatEqRule := &qentem.Rule{Head: []byte(">="), ID: idGreatEqual, Flags: tierRest, ParseCallback: equalCallback, NestedRules: addTier}
	greatRule := &qentem.Rule{Head: []byte(">"), ID: idGreat, Flags: tierRest, ParseCallback: equalCallback, NestedRules: addTier}
	// Two-byte operators must precede their one-byte prefixes ("==" before
	// "=", "<=" before "<", ">=" before ">") since rules tie-break by list
	// order at a given scan position (spec.md §4.3's ordering guarantee).
	equalTier := qentem.RuleSet{eqEqRule, eqRule, notEqRule, lessEqRule, lessRule, greatEqRule, greatRule}

	andRule := &qentem.Rule{Head: []byte("&&"), ID: idAnd, Flags: tierLead, ParseCallback: logicCallback, NestedRules: equalTier}
	orRule := &qentem.Rule{Head: []byte("||"), ID: idOr, Flags: tierRest, ParseCallback: logicCallback, NestedRules: equalTier}
	logicRules := qentem.RuleSet{andRule, orRule}

	// parenOpen only anchors the opening "(": per spec.md §3.1's invariant,
	// flags, nested_rules and the parse callback live on parenClose, the
	// rule bearing the tail anchor.
	parenOpen := &qentem.Rule{Head: []byte("(")}
	parenClose := &qentem.Rule{
		Head:  []byte(")"),
		Flags: qentem.FlagBubble | qentem.FlagTrim,
	}
	// parenClose re-enters the logic cascade over its own bubbled content,
	// so its callback closes over this exact logicRules rather than a
	// package-level var — needed so a LoadOperators override inside a
	// parenthesised group stays consistent with the group's own tier rules.
	parenClose.ParseCallback = func(content []byte, m *qentem.MatchBit, text []byte, ctx any) []byte {
		return parenthesisCallback(logicRules, content, m, text, ctx)
	}
	parenOpen.Connected = parenClose
	parenClose.NestedRules = qentem.RuleSet{parenOpen}

	return ruleGraph{logic: logicRules, paren: qentem.RuleSet{parenOpen}}
}
