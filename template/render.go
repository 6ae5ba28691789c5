// Package template implements Qentem's HTML-like template renderer:
// {v:...} variable substitution, {math:...} arithmetic (delegating to
// ale), {iif case= true= false=} inline-if, <if case=>...</if> blocks with
// <elseif>/<else> branches, and <loop set= value= key=>...</loop>
// iteration over a document.Document.
package template

import (
	"github.com/lineCode/qentem/ale"
	qentem "github.com/lineCode/qentem"
	"github.com/lineCode/qentem/document"
	"github.com/lineCode/qentem/internal/numeric"
	"github.com/lineCode/qentem/internal/strstream"
)

// numericText renders a float the way the reference formats both {v:...}
// numeric substitution and a loop's numeric value/key: one integer digit
// minimum, no forced fraction digits, rounded to three decimal places.
func numericText(n float64) string {
	return numeric.FromNumber(n, 1, 0, 3)
}

// Render expands every tag in text against data and returns the resulting
// string. Render never errors (spec.md §7): a tag with no matching
// variable, an unparsable condition, or a malformed attribute list
// degrades to an empty or pass-through substitution rather than aborting.
func Render(text []byte, data *document.Document) string {
	return renderWindow(text, 0, len(text), data)
}

// renderWindow is the engine entry point every tag callback re-enters to
// expand its own nested content, mirroring the reference's own
// Template::Render(block, offset, limit, other) helper. end is the
// window's absolute exclusive end offset, not its length.
func renderWindow(text []byte, offset, end int, data *document.Document) string {
	length := end - offset
	tags := buildTagRules()
	matches := qentem.Match(tags.all, text, offset, length, qentem.DefaultConfig)
	return qentem.Parse(matches, text, offset, length, data)
}

// renderVarOnly expands just {v:...} tags, the subset the reference uses
// when substituting variables into an attribute value (an <if> or <loop>
// header, an {iif} case) before it is evaluated or parsed further. end is
// the window's absolute exclusive end offset, not its length.
func renderVarOnly(text []byte, offset, end int, data *document.Document) string {
	length := end - offset
	tags := buildTagRules()
	matches := qentem.Match(tags.vars, text, offset, length, qentem.DefaultConfig)
	return qentem.Parse(matches, text, offset, length, data)
}

func ctxDoc(ctx any) *document.Document {
	d, _ := ctx.(*document.Document)
	return d
}

// renderVar implements {v:var_name} and {v:var_name[index]} (spec.md §6).
// A missing key or out-of-range index leaves the original key text in
// place rather than aborting the render (spec.md §7).
func renderVar(content []byte, m *qentem.MatchBit, text []byte, ctx any) []byte {
	key := string(m.Body(text))
	data := ctxDoc(ctx)
	if data == nil {
		return []byte(key)
	}
	v, ok := lookupPath(data, key)
	if !ok {
		return []byte(key)
	}
	return []byte(valueText(v))
}

func valueText(v document.Value) string {
	switch v.Kind {
	case document.String:
		return v.Str
	case document.Number:
		return numericText(v.Num)
	case document.True:
		return "true"
	case document.False:
		return "false"
	case document.Null:
		return "null"
	default:
		return ""
	}
}

// renderMath implements {math:expr} (spec.md §6). expr may itself contain
// {v:...} substitutions, already expanded into content since mathClose
// carries FlagBubble.
func renderMath(content []byte, m *qentem.MatchBit, text []byte, ctx any) []byte {
	return []byte(numericText(ale.EvaluateBytes(content)))
}

// renderIIF implements {iif case="..." true="..." false="..."} (spec.md
// §6). Attribute order is not significant, matching the reference.
func renderIIF(content []byte, m *qentem.MatchBit, text []byte, ctx any) []byte {
	attrs := parseAttrs(content)
	data := ctxDoc(ctx)

	caseExpr, hasCase := attrs["case"]
	if !hasCase {
		return nil
	}
	if evaluateCondition([]byte(caseExpr), data) {
		return []byte(attrs["true"])
	}
	return []byte(attrs["false"])
}

// evaluateCondition expands any {v:...} substitutions in a condition
// expression and reduces it through ale, truthy when the result is
// greater than zero (spec.md §6's ALE delegation).
func evaluateCondition(expr []byte, data *document.Document) bool {
	expanded := renderVarOnly(expr, 0, len(expr), data)
	return ale.Evaluate(expanded) > 0
}

// ifBranch is one <if>/<elseif>/<else> arm: cond == nil means
// unconditional (the arm after an <else/>). Without an <else/>, the last
// arm keeps the case of the <if> or <elseif> that opens it.
type ifBranch struct {
	cond       []byte
	start, end int
}

// renderIf implements <if case="...">...<elseif case="...">...<else/>...
// </if> (spec.md §6). Nothing inside a losing branch is rendered — the
// same "nothing processed before the condition is checked" contract the
// reference states for RenderIF.
func renderIf(ifClose *qentem.Rule, content []byte, m *qentem.MatchBit, text []byte, ctx any) []byte {
	data := ctxDoc(ctx)

	headerEnd := findHeaderEnd(text, m.BodyOffset, m.BodyOffset+m.BodyLength)
	header := text[m.BodyOffset:headerEnd]
	attrs := parseAttrs(header)

	var branches []ifBranch
	cond, _ := attrs["case"]
	condBytes := []byte(cond)
	bodyStart := headerEnd
	if bodyStart < len(text) && text[bodyStart] == '>' {
		bodyStart++
	}

	for i := range m.Children {
		child := &m.Children[i]
		if child.Rule == ifClose {
			continue // a nested <if>...</if> block, not a branch boundary
		}
		// child.Rule == elseifClose: one "<else.../>" or "<elseif.../>".
		branches = append(branches, ifBranch{cond: condBytes, start: bodyStart, end: child.Offset})
		childHeader := child.Span(text)
		childAttrs := parseAttrs(childHeader)
		if c, ok := childAttrs["case"]; ok {
			condBytes = []byte(c)
		} else {
			condBytes = nil
		}
		bodyStart = child.End()
	}
	branches = append(branches, ifBranch{cond: condBytes, start: bodyStart, end: m.BodyOffset + m.BodyLength})

	for _, b := range branches {
		if b.cond == nil || evaluateCondition(b.cond, data) {
			return []byte(renderWindow(text, b.start, b.end, data))
		}
	}
	return nil
}

// renderLoop implements <loop set="name" value="v" key="k">...</loop>
// (spec.md §6). Unlike {v:...}, the loop's value= and key= names are not
// document keys: they are literal tokens the reference matches directly
// in the body text via a pair of ad-hoc head-only rules whose Replacement
// is rewritten every iteration (ground: Template.hpp's Repeat(), which
// builds loop_exprs = [key_expr?, value_expr] from the raw attribute text
// and feeds them straight to Engine::Parse — not through any Document
// lookup). The per-iteration text is concatenated and, once every entry
// has rendered, the whole result gets one more pass through the full tag
// set using the original data, so any {v:...}/{math:...}/nested <loop>
// appearing literally in the body (rather than as the loop variable
// itself) still resolves against the outer context.
func renderLoop(content []byte, m *qentem.MatchBit, text []byte, ctx any) []byte {
	data := ctxDoc(ctx)
	if data == nil {
		return nil
	}

	headerEnd := findHeaderEnd(text, m.BodyOffset, m.BodyOffset+m.BodyLength)
	header := text[m.BodyOffset:headerEnd]
	attrs := parseAttrs(header)

	bodyStart := headerEnd
	if bodyStart < len(text) && text[bodyStart] == '>' {
		bodyStart++
	}
	bodyEnd := m.BodyOffset + m.BodyLength

	setName, hasSet := attrs["set"]
	valueName, hasValue := attrs["value"]
	if !hasSet || !hasValue {
		return nil
	}
	setVal, ok := lookupPath(data, setName)
	if !ok || setVal.Kind != document.Nested || setVal.Doc == nil {
		return nil
	}
	storage := setVal.Doc
	keyName, hasKey := attrs["key"]

	valueRule := &qentem.Rule{Head: []byte(valueName)}
	loopRules := qentem.RuleSet{}
	var keyRule *qentem.Rule
	if hasKey && keyName != "" {
		keyRule = &qentem.Rule{Head: []byte(keyName)}
		loopRules = append(loopRules, keyRule)
	}
	loopRules = append(loopRules, valueRule)

	rendered := strstream.New()
	for i := 0; i < storage.Len(); i++ {
		entry, _ := storage.At(i)
		valueRule.Replacement = []byte(valueText(entry))
		if keyRule != nil {
			if storage.Ordered {
				keyRule.Replacement = []byte(numericText(float64(i)))
			} else {
				keyRule.Replacement = []byte(storage.Keys()[i])
			}
		}
		matches := qentem.Match(loopRules, text, bodyStart, bodyEnd-bodyStart, qentem.DefaultConfig)
		rendered.AppendOwned([]byte(qentem.Parse(matches, text, bodyStart, bodyEnd-bodyStart, ctx)))
	}

	renderedBytes := rendered.Eject()
	return []byte(renderWindow(renderedBytes, 0, len(renderedBytes), data))
}
