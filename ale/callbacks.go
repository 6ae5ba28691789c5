package ale

import (
	qentem "github.com/lineCode/qentem"
	"github.com/lineCode/qentem/internal/numeric"
)

// operandValue reads one split segment's numeric value: a leaf segment (no
// children) is parsed directly as a number; a segment with children — a
// nested arithmetic expression resolved by a lower tier, or a parenthesised
// group — is first rendered through Parse and the result re-parsed as a
// number, mirroring the reference evaluator's NestNumber helper.
func operandValue(seg *qentem.MatchBit, text []byte, ctx any) float64 {
	if len(seg.Children) == 0 {
		var v float64
		numeric.ToNumber(&v, text, seg.Offset, seg.Length)
		return v
	}
	rendered := qentem.Parse(seg.Children, text, seg.BodyOffset, seg.BodyLength, ctx)
	var v float64
	numeric.ToNumber(&v, []byte(rendered), 0, len(rendered))
	return v
}

func formatResult(v float64) []byte {
	return []byte(numeric.FromNumber(v, 1, 0, 3))
}

// multiplicationCallback resolves one "*","/","^","%" chain. Each segment's
// Rule field names the operator that follows it (nil on the trailing
// segment), so the loop always knows which operation joins the running
// total to the next operand.
func multiplicationCallback(content []byte, m *qentem.MatchBit, text []byte, ctx any) []byte {
	segs := m.Children
	if len(segs) == 0 {
		return []byte("0")
	}

	number1 := operandValue(&segs[0], text, ctx)
	opID := idFor(segs[0].Rule)

	for i := 1; i < len(segs); i++ {
		seg := &segs[i]
		if seg.Length == 0 {
			return []byte("0")
		}
		number2 := operandValue(seg, text, ctx)

		switch opID {
		case idMul:
			number1 *= number2
		case idDiv:
			if number2 == 0 {
				return []byte("0")
			}
			number1 /= number2
		case idExp:
			if number2 <= 0 {
				return []byte("0")
			}
			result := 1.0
			for k := int64(0); k < int64(number2); k++ {
				result *= number1
			}
			number1 = result
		case idRem:
			if int64(number2) == 0 {
				return []byte("0")
			}
			number1 = float64(int64(number1) % int64(number2))
		default:
			number1 = 0
		}

		opID = idFor(seg.Rule)
	}

	return formatResult(number1)
}

// additionCallback resolves one "+"/"-" chain. Two consecutive "-"
// segments collapse into a "+", matching the reference evaluator's
// double-negative handling.
func additionCallback(content []byte, m *qentem.MatchBit, text []byte, ctx any) []byte {
	segs := m.Children
	if len(segs) == 0 {
		return []byte("0")
	}

	number1 := operandValue(&segs[0], text, ctx)
	opID := idFor(segs[0].Rule)

	for i := 1; i < len(segs); i++ {
		seg := &segs[i]
		nextID := idFor(seg.Rule)

		if seg.Length == 0 {
			if opID == idSub && nextID == idSub {
				opID = idAdd
			} else {
				opID = nextID
			}
			continue
		}

		number2 := operandValue(seg, text, ctx)
		switch opID {
		case idAdd:
			number1 += number2
		case idSub:
			number1 -= number2
		default:
			number1 = 0
		}
		opID = nextID
	}

	return formatResult(number1)
}

// equalCallback resolves one relational/equality chain ("==", "=", "!=",
// "<=", "<", ">=", ">"). When the first operand is neither numeric nor a
// nested expression and exactly one comparison is present, the operands
// are compared as raw text instead of as numbers.
func equalCallback(content []byte, m *qentem.MatchBit, text []byte, ctx any) []byte {
	segs := m.Children
	if len(segs) == 0 {
		return []byte("0")
	}

	var number1 float64
	if len(segs[0].Children) != 0 {
		number1 = operandValue(&segs[0], text, ctx)
	} else if isNumericStart(text, segs[0].Offset, segs[0].Length) {
		numeric.ToNumber(&number1, text, segs[0].Offset, segs[0].Length)
	} else if len(segs) == 2 {
		equal := spanEqual(text, segs[0].Offset, segs[0].Length, segs[1].Offset, segs[1].Length)
		if idFor(segs[0].Rule) == idNotEqual {
			equal = !equal
		}
		if equal {
			return []byte("1")
		}
		return []byte("0")
	}

	opID := idFor(segs[0].Rule)
	for i := 1; i < len(segs); i++ {
		seg := &segs[i]
		if seg.Length == 0 {
			opID = idFor(seg.Rule)
			continue
		}
		number2 := operandValue(seg, text, ctx)

		switch opID {
		case idEqualEqual, idEqual:
			number1 = boolFloat(number1 == number2)
		case idNotEqual:
			number1 = boolFloat(number1 != number2)
		case idLessEqual:
			number1 = boolFloat(number1 <= number2)
		case idLess:
			number1 = boolFloat(number1 < number2)
		case idGreatEqual:
			number1 = boolFloat(number1 >= number2)
		case idGreat:
			number1 = boolFloat(number1 > number2)
		default:
			number1 = 0
		}
		opID = idFor(seg.Rule)
	}

	return formatResult(number1)
}

// logicCallback resolves one "&&"/"||" chain. Each operand is evaluated on
// the "greater than zero is true" convention the whole evaluator uses.
func logicCallback(content []byte, m *qentem.MatchBit, text []byte, ctx any) []byte {
	segs := m.Children
	if len(segs) == 0 {
		return []byte("0")
	}

	number1 := operandValue(&segs[0], text, ctx)
	opID := idFor(segs[0].Rule)

	for i := 1; i < len(segs); i++ {
		seg := &segs[i]
		if seg.Length == 0 {
			opID = idFor(seg.Rule)
			continue
		}
		number2 := operandValue(seg, text, ctx)

		switch opID {
		case idAnd:
			number1 = boolFloat(number1 > 0 && number2 > 0)
		case idOr:
			number1 = boolFloat(number1 > 0 || number2 > 0)
		default:
			number1 = 0
		}
		opID = idFor(seg.Rule)
	}

	return formatResult(number1)
}

// parenthesisCallback re-enters the full tier cascade over a
// parenthesised group's inner text: the bubbled content is already the
// recursively-rendered text of any nested groups, so it is simply
// re-matched and re-parsed against the operator tiers from scratch.
func parenthesisCallback(logicRules qentem.RuleSet, content []byte, m *qentem.MatchBit, text []byte, ctx any) []byte {
	matches := qentem.Match(logicRules, content, 0, len(content), qentem.DefaultConfig)
	return []byte(qentem.Parse(matches, content, 0, len(content), ctx))
}

func idFor(rule *qentem.Rule) int {
	if rule == nil {
		return 0
	}
	return rule.ID
}

func boolFloat(v bool) float64 {
	if v {
		return 1.0
	}
	return 0.0
}

func isNumericStart(text []byte, offset, length int) bool {
	if length == 0 {
		return false
	}
	c := text[offset]
	return (c >= '0' && c <= '9') || c == '+' || c == '-'
}

func spanEqual(text []byte, offA, lenA, offB, lenB int) bool {
	if lenA != lenB {
		return false
	}
	for i := 0; i < lenA; i++ {
		if text[offA+i] != text[offB+i] {
			return false
		}
	}
	return true
}
