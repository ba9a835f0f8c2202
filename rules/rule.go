package rules

import (
	"github.com/expr-lang/expr/vm"

	"github.com/nstehr/goose/model"
)

// DecideFunc turns a matched rule into an action for env.Self. Returning
// false means the rule matched but found nothing to do (no step, no
// target), and evaluation continues with the next rule.
type DecideFunc func(env UnitEnv) (model.Action, bool)

// Rule is one step of the per-unit decision pipeline: a condition and the
// decision taken when it holds. The engine tries rules by priority and
// stops at the first one that yields an action.
type Rule struct {
	Name         string      // human-readable identifier
	Priority     int         // higher = evaluated first
	ConditionSrc string      // expr source (preserved for logging)
	program      *vm.Program // compiled bytecode
	Decide       DecideFunc
}
