package refine

import (
	"fmt"

	"github.com/aretw0/pocl/internal/formula"
	"github.com/aretw0/pocl/internal/model"
)

// freshenEffectCondition renames a conditional/universal effect's own
// quantified Parameters to fresh variable names and returns its Condition
// rewritten under that substitution — core spec §4.4 make_link step 1 and
// §4.3 Separate's re-parameterization, factored out since both call
// sites need the identical freshening.
func freshenEffectCondition(e model.Effect) formula.Formula {
	if len(e.Parameters) == 0 {
		return e.Condition
	}
	sub := make(map[string]formula.Term, len(e.Parameters))
	for i, v := range e.Parameters {
		sub[v.Name] = formula.Var(fmt.Sprintf("%s$fresh%d", v.Name, i))
	}
	return formula.Substitute(e.Condition, sub)
}
