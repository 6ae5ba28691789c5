package ale

import (
	qentem "github.com/lineCode/qentem"
	"github.com/lineCode/qentem/internal/numeric"
)

// Evaluate reduces an arithmetic/logic expression to a float64. It never
// errors: a malformed or empty expression evaluates to 0, the same "soft
// failure" policy the underlying matcher follows (spec.md §7).
//
// Evaluation runs in two passes, exactly as the reference evaluator does:
// parenthesised groups are resolved first (each one recursively re-running
// this same cascade over its own inner text), then the remaining flat text
// is reduced through the multiplication, addition, comparison and boolean
// tiers in that order.
func Evaluate(expr string) float64 {
	return EvaluateBytes([]byte(expr))
}

// EvaluateBytes is Evaluate without the string/[]byte round trip.
func EvaluateBytes(expr []byte) float64 {
	return evaluateWithRules(buildRules(defaultOperators), expr)
}

// EvaluateWithOperators is Evaluate, but the literal operator tokens the
// multiplication/addition tiers match on come from ops instead of the
// built-in defaults (see LoadOperators).
func EvaluateWithOperators(expr string, ops OperatorTable) float64 {
	return evaluateWithRules(buildRules(ops), []byte(expr))
}

func evaluateWithRules(g ruleGraph, expr []byte) float64 {
	parenMatches := qentem.Match(g.paren, expr, 0, len(expr), qentem.DefaultConfig)
	reduced := qentem.Parse(parenMatches, expr, 0, len(expr), nil)
	if reduced == "" || reduced == "0" {
		return 0
	}

	reducedBytes := []byte(reduced)
	logicMatches := qentem.Match(g.logic, reducedBytes, 0, len(reducedBytes), qentem.DefaultConfig)
	final := qentem.Parse(logicMatches, reducedBytes, 0, len(reducedBytes), nil)

	var value float64
	if final == "" {
		return 0
	}
	if numeric.ToNumber(&value, []byte(final), 0, len(final)) {
		return value
	}
	return 0
}
