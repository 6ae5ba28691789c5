package qentem

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func upper(b []byte) []byte {
	out := make([]byte, len(b))
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		out[i] = c
	}
	return out
}

func upperCallback(content []byte, m *MatchBit, text []byte, ctx any) []byte {
	return upper(content)
}

func TestMatchEmptyWindow(t *testing.T) {
	rules := RuleSet{{Head: []byte("x")}}
	assert.Nil(t, Match(rules, []byte("xxxx"), 0, 0, DefaultConfig))
}

func TestMatchNoRules(t *testing.T) {
	assert.Nil(t, Match(nil, []byte("xxxx"), 0, 4, DefaultConfig))
}

func TestMatchSingleCharWindow(t *testing.T) {
	rules := RuleSet{{Head: []byte("x"), ParseCallback: upperCallback}}
	matches := Match(rules, []byte("x"), 0, 1, DefaultConfig)
	assert.Len(t, matches, 1)
	assert.Equal(t, "X", Parse(matches, []byte("x"), 0, 1, nil))
}

func TestMatchExactlyOneMatch(t *testing.T) {
	rules := RuleSet{{Head: []byte("foo"), ParseCallback: upperCallback}}
	text := []byte("foo")
	matches := Match(rules, text, 0, len(text), DefaultConfig)
	assert.Len(t, matches, 1)
	assert.Equal(t, 0, matches[0].Offset)
	assert.Equal(t, 3, matches[0].Length)
}

func TestMatchPlainHeadReplacement(t *testing.T) {
	rules := RuleSet{{Head: []byte("-"), Replacement: []byte("*")}}
	text := []byte("a-b-c")
	matches := Match(rules, text, 0, len(text), DefaultConfig)
	assert.Equal(t, "a*b*c", Parse(matches, text, 0, len(text), nil))
}

func TestMatchDelimitedNesting(t *testing.T) {
	open := &Rule{Head: []byte("(")}
	var close_ *Rule
	close_ = &Rule{
		Head:          []byte(")"),
		NestedRules:   RuleSet{open},
		ParseCallback: upperCallback,
		Flags:         FlagBubble,
	}
	open.Connected = close_
	rules := RuleSet{open}

	text := []byte("a(b(c)d)e")
	matches := Match(rules, text, 0, len(text), DefaultConfig)
	assert.Len(t, matches, 1)
	// Inner "(c)" resolves as its own balanced child match before the
	// outer "(...)" closes, so both bubble through independently.
	assert.Equal(t, "aBCDe", Parse(matches, text, 0, len(text), nil))
}

func TestMatchUnterminatedDelimiterDegradesGracefully(t *testing.T) {
	open := &Rule{Head: []byte("(")}
	close_ := &Rule{Head: []byte(")")}
	open.Connected = close_
	rules := RuleSet{open}

	text := []byte("a(bcd")
	matches := Match(rules, text, 0, len(text), DefaultConfig)
	assert.Empty(t, matches)
	assert.Equal(t, "a(bcd", Parse(matches, text, 0, len(text), nil))
}

func TestSplitDropEmpty(t *testing.T) {
	sep := &Rule{Head: []byte(","), Flags: FlagSplit | FlagDropEmpty | FlagTrim}
	rules := RuleSet{sep}
	text := []byte(",,,")
	matches := Match(rules, text, 0, len(text), DefaultConfig)
	assert.Empty(t, matches)
}

func TestSplitBasic(t *testing.T) {
	sep := &Rule{Head: []byte(","), Flags: FlagSplit | FlagTrim}
	rules := RuleSet{sep}
	text := []byte("a, b ,c")
	matches := Match(rules, text, 0, len(text), DefaultConfig)
	assert.Len(t, matches, 3)
	assert.Equal(t, "a", string(matches[0].Span(text)))
	assert.Equal(t, "b", string(matches[1].Span(text)))
	assert.Equal(t, "c", string(matches[2].Span(text)))
}

func TestSplitGrouped(t *testing.T) {
	sep := &Rule{Head: []byte(","), Flags: FlagSplit | FlagGrouped | FlagTrim}
	rules := RuleSet{sep}
	text := []byte("a,b,c")
	matches := Match(rules, text, 0, len(text), DefaultConfig)
	assert.Len(t, matches, 1)
	assert.Len(t, matches[0].Children, 3)
}

func TestFlagOnceStopsAfterFirstMatch(t *testing.T) {
	rule := &Rule{Head: []byte("x"), Flags: FlagOnce, Replacement: []byte("X")}
	rules := RuleSet{rule}
	text := []byte("xxx")
	matches := Match(rules, text, 0, len(text), DefaultConfig)
	assert.Len(t, matches, 1)
	assert.Equal(t, "Xxx", Parse(matches, text, 0, len(text), nil))
}

func TestFlagIgnorePreventsOverlapButNotOutput(t *testing.T) {
	ignored := &Rule{Head: []byte("<!--"), Flags: FlagIgnore}
	rules := RuleSet{ignored, {Head: []byte("-"), Replacement: []byte("*")}}
	text := []byte("<!-- a - b -->")
	matches := Match(rules, text, 0, len(text), DefaultConfig)
	for _, m := range matches {
		assert.NotEqual(t, ignored, m.Rule)
	}
	// The dashes inside "<!--" stay untouched: the ignored match covers them.
	assert.Equal(t, "<!-- a * b **>", Parse(matches, text, 0, len(text), nil))
}

func TestFlagPopFallsBackToNestedRules(t *testing.T) {
	inner := &Rule{Head: []byte("y"), Replacement: []byte("Y")}
	outer := &Rule{Head: []byte("never-matches-anything-literally-long"), Flags: FlagPop, NestedRules: RuleSet{inner}}
	rules := RuleSet{outer}
	text := []byte("xyz")
	matches := Match(rules, text, 0, len(text), DefaultConfig)
	assert.Equal(t, "xYz", Parse(matches, text, 0, len(text), nil))
}

func TestParseMissingCallbackAndReplacementRendersEmpty(t *testing.T) {
	rule := &Rule{Head: []byte("x")}
	rules := RuleSet{rule}
	text := []byte("axb")
	matches := Match(rules, text, 0, len(text), DefaultConfig)
	assert.Equal(t, "ab", Parse(matches, text, 0, len(text), nil))
}

func TestRecursionLimitRollsBackRatherThanPanicking(t *testing.T) {
	open := &Rule{Head: []byte("(")}
	close_ := &Rule{Head: []byte(")")}
	open.Connected = close_
	close_.NestedRules = RuleSet{open}
	rules := RuleSet{open}

	text := []byte("((((x))))")
	cfg := MatchConfig{MaxRecursionDepth: 1}
	assert.NotPanics(t, func() {
		Match(rules, text, 0, len(text), cfg)
	})
}

func TestCompileRejectsEmptyRuleSet(t *testing.T) {
	assert.Equal(t, ErrNilRuleSet, Compile(nil))
	assert.Equal(t, ErrNilRuleSet, Compile(RuleSet{}))
}

func TestCompileRejectsEmptyHeadWithoutMatchCallback(t *testing.T) {
	rules := RuleSet{{Head: nil}}
	assert.Equal(t, ErrEmptyHead, Compile(rules))
}

func TestCompileAllowsEmptyHeadWithMatchCallback(t *testing.T) {
	rule := &Rule{MatchCallback: func(text []byte, offset int) (MatchBit, int, bool) {
		return MatchBit{}, offset, false
	}}
	assert.NoError(t, Compile(RuleSet{rule}))
}

func TestCompileChecksNestedAndConnectedRules(t *testing.T) {
	badNested := &Rule{Head: nil}
	open := &Rule{Head: []byte("(")}
	close_ := &Rule{Head: []byte(")"), NestedRules: RuleSet{badNested}}
	open.Connected = close_
	assert.Equal(t, ErrEmptyHead, Compile(RuleSet{open}))
}

func TestCompileToleratesSelfReferentialNesting(t *testing.T) {
	open := &Rule{Head: []byte("(")}
	close_ := &Rule{Head: []byte(")")}
	open.Connected = close_
	close_.NestedRules = RuleSet{open}

	assert.NotPanics(t, func() {
		assert.NoError(t, Compile(RuleSet{open}))
	})
}

func TestContextThreadedToCallback(t *testing.T) {
	rule := &Rule{Head: []byte("x"), ParseCallback: func(content []byte, m *MatchBit, text []byte, ctx any) []byte {
		return []byte(ctx.(string))
	}}
	rules := RuleSet{rule}
	text := []byte("x")
	matches := Match(rules, text, 0, len(text), DefaultConfig)
	assert.Equal(t, "hello", Parse(matches, text, 0, len(text), "hello"))
}
