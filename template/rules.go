package template

import qentem "github.com/lineCode/qentem"

// tagRules bundles one freshly built tag graph together with the
// individual rule pointers the callbacks need to recognize, by identity,
// which tag a child MatchBit belongs to. Built fresh per Render call —
// spec.md §9's redesign flag re-expresses the reference's lazily
// constructed static rule tables as caller-constructed, non-shared state
// (see DESIGN.md), the same choice document.buildJSONRules makes.
//
// Unlike the reference, a nested <if>/<loop> of the SAME tag is recognized
// by simply listing the tag's own opener in its own NestedRules — the
// two-phase close search (see match.go) already treats that as balanced
// self-nesting, so no separate "shallow" rule pair is needed to keep an
// inner </if> or </loop> from closing the outer one.
type tagRules struct {
	varOpen, varClose   *qentem.Rule
	mathOpen, mathClose *qentem.Rule
	iifOpen, iifClose   *qentem.Rule

	ifOpen, ifClose         *qentem.Rule
	elseifOpen, elseifClose *qentem.Rule

	loopOpen, loopClose *qentem.Rule

	vars qentem.RuleSet
	all  qentem.RuleSet
}

// buildTagRules constructs the rule graph grounded in the reference
// Template's getTagsAll(): variable substitution, math evaluation,
// inline-if, block if/elseif/else and loop, all as Connected head/close
// pairs recursing into each other.
func buildTagRules() tagRules {
	varOpen := &qentem.Rule{Head: []byte("{v:")}
	varClose := &qentem.Rule{Head: []byte("}"), Flags: qentem.FlagTrim, ParseCallback: renderVar}
	varOpen.Connected = varClose

	mathOpen := &qentem.Rule{Head: []byte("{math:")}
	mathClose := &qentem.Rule{
		Head:          []byte("}"),
		Flags:         qentem.FlagTrim | qentem.FlagBubble,
		ParseCallback: renderMath,
		NestedRules:   qentem.RuleSet{varOpen},
	}
	mathOpen.Connected = mathClose

	iifOpen := &qentem.Rule{Head: []byte("{iif")}
	iifClose := &qentem.Rule{
		Head:          []byte("}"),
		Flags:         qentem.FlagBubble,
		ParseCallback: renderIIF,
		NestedRules:   qentem.RuleSet{iifOpen, varOpen},
	}
	iifOpen.Connected = iifClose

	elseifOpen := &qentem.Rule{Head: []byte("<else")}
	elseifClose := &qentem.Rule{Head: []byte("/>")}
	elseifOpen.Connected = elseifClose

	ifOpen := &qentem.Rule{Head: []byte("<if")}
	ifClose := &qentem.Rule{
		Head:        []byte("</if>"),
		NestedRules: qentem.RuleSet{ifOpen, elseifOpen},
	}
	// ifClose's own callback needs to tell a nested <if>...</if> child
	// apart from an <elseif>/<else> branch separator by rule identity, so
	// it closes over this specific ifClose rather than a package-level var.
	ifClose.ParseCallback = func(content []byte, m *qentem.MatchBit, text []byte, ctx any) []byte {
		return renderIf(ifClose, content, m, text, ctx)
	}
	ifOpen.Connected = ifClose

	loopOpen := &qentem.Rule{Head: []byte("<loop")}
	loopClose := &qentem.Rule{
		Head:          []byte("</loop>"),
		ParseCallback: renderLoop,
		NestedRules:   qentem.RuleSet{loopOpen},
	}
	loopOpen.Connected = loopClose

	return tagRules{
		varOpen: varOpen, varClose: varClose,
		mathOpen: mathOpen, mathClose: mathClose,
		iifOpen: iifOpen, iifClose: iifClose,
		ifOpen: ifOpen, ifClose: ifClose,
		elseifOpen: elseifOpen, elseifClose: elseifClose,
		loopOpen: loopOpen, loopClose: loopClose,
		vars: qentem.RuleSet{varOpen},
		all:  qentem.RuleSet{varOpen, mathOpen, iifOpen, ifOpen, loopOpen},
	}
}
