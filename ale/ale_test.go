package ale

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluateArithmetic(t *testing.T) {
	cases := []struct {
		expr string
		want float64
	}{
		{"3 + 3 * 3 - 1 + 1 + 2", 14},
		{"3 + 9 - 1 - -1 + 2", 14},
		{"14", 14},
		{"(6 + 1 - 4) + (5 - 6 + 4) * (8 / 4 + 1) - (1) - (-1) + 2", 14},
		{"((2* (1 * 3)) + 1 - 4) + ((10 - 5) - 6 + ((1 + 1) + (1 + 1))) * (8 / 4 + 1) - (1) - (-1) + 2", 14},
		{"10 / 0", 0},
		{"2 ^ 0", 0},
		{"2 ^ 3", 8},
		{"7 % 2", 1},
		{"", 0},
		{"   ", 0},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, Evaluate(c.expr), "expr=%q", c.expr)
	}
}

func TestLoadOperatorsOverridesTokens(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/operators.toml"
	err := os.WriteFile(path, []byte(`mul = "times"`+"\n"), 0o644)
	assert.NoError(t, err)

	ops := LoadOperators(path)
	assert.Equal(t, "times", ops.Mul)
	assert.Equal(t, "/", ops.Div) // untouched fields keep the built-in default

	assert.Equal(t, float64(6), EvaluateWithOperators("2 times 3", ops))
}

func TestLoadOperatorsMissingFileFallsBackToDefaults(t *testing.T) {
	ops := LoadOperators("/nonexistent/operators.toml")
	assert.Equal(t, defaultOperators, ops)
}

func TestEvaluateLogic(t *testing.T) {
	cases := []struct {
		expr string
		want float64
	}{
		{"1 == 1", 1},
		{"1 == 2", 0},
		{"1 != 2", 1},
		{"3 >= 3", 1},
		{"2 > 3", 0},
		{"1 && 1", 1},
		{"0 && 1", 0},
		{"0 || 1", 1},
		{"(1 == 1) && (2 == 2)", 1},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, Evaluate(c.expr), "expr=%q", c.expr)
	}
}
