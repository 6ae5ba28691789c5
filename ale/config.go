package ale

import (
	"os"

	"github.com/pelletier/go-toml/v2"
)

// OperatorTable overrides the literal operator tokens the multiplication
// and addition tiers match on, letting a host swap in an alternate
// operator vocabulary without touching rules.go. Relational and boolean
// operators stay fixed ("==", "&&", ...), since the reference evaluator
// never varies them either.
type OperatorTable struct {
	Mul string `toml:"mul"`
	Div string `toml:"div"`
	Exp string `toml:"exp"`
	Rem string `toml:"rem"`
	Add string `toml:"add"`
	Sub string `toml:"sub"`
}

// defaultOperators mirrors the literal tokens the reference evaluator
// hardcodes.
var defaultOperators = OperatorTable{Mul: "*", Div: "/", Exp: "^", Rem: "%", Add: "+", Sub: "-"}

// LoadOperators reads an operator-token override table from a TOML file at
// path, falling back to the built-in tokens for any field the file leaves
// blank or for a file that fails to parse — consistent with spec.md §7's
// "malformed input degrades, it does not error" policy extended to this
// configuration surface.
func LoadOperators(path string) OperatorTable {
	table := defaultOperators

	data, err := os.ReadFile(path)
	if err != nil {
		return table
	}

	var overrides OperatorTable
	if err := toml.Unmarshal(data, &overrides); err != nil {
		return table
	}

	if overrides.Mul != "" {
		table.Mul = overrides.Mul
	}
	if overrides.Div != "" {
		table.Div = overrides.Div
	}
	if overrides.Exp != "" {
		table.Exp = overrides.Exp
	}
	if overrides.Rem != "" {
		table.Rem = overrides.Rem
	}
	if overrides.Add != "" {
		table.Add = overrides.Add
	}
	if overrides.Sub != "" {
		table.Sub = overrides.Sub
	}
	return table
}
