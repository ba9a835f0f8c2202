package rules

import (
	"fmt"
	"sort"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/nstehr/goose/model"
)

// FallbackRule names the decision taken when no rule produces an action.
const FallbackRule = "guard"

// Engine holds a compiled rule set and the profile it was compiled from.
// It is immutable after construction and safe to share between
// connections.
type Engine struct {
	rules   []*Rule
	profile Profile
}

// NewEngine validates p, compiles the rule set for its mode and sorts it
// by priority.
func NewEngine(p Profile) (*Engine, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	var set []*Rule
	switch p.Mode {
	case ModeSolo:
		set = CompileSoloProfile(p)
	default:
		set = CompileProfile(p)
	}
	compiled, err := compileRules(set)
	if err != nil {
		return nil, err
	}
	return &Engine{rules: compiled, profile: p}, nil
}

// Profile returns the validated profile the engine was built from.
func (e *Engine) Profile() Profile { return e.profile }

// Rules returns the rule names in evaluation order.
func (e *Engine) Rules() []string {
	names := make([]string, len(e.rules))
	for i, r := range e.rules {
		names[i] = r.Name
	}
	return names
}

// Decide runs the rules against env in priority order and returns the
// first action produced together with the name of the rule that produced
// it. When nothing fires the unit guards.
func (e *Engine) Decide(env UnitEnv) (model.Action, string) {
	for _, r := range e.rules {
		result, err := vm.Run(r.program, env)
		if err != nil {
			env.Turn.Log.Warn("rule condition error", "turn", env.Turn.Board.Turn, "unit", env.Self.Location, "rule", r.Name, "error", err)
			continue
		}
		if match, ok := result.(bool); !ok || !match {
			continue
		}
		if action, ok := r.Decide(env); ok {
			return action, r.Name
		}
	}
	return model.GuardAction(), FallbackRule
}

func compileRules(rules []*Rule) ([]*Rule, error) {
	for _, r := range rules {
		prog, err := expr.Compile(r.ConditionSrc, expr.Env(UnitEnv{}), expr.AsBool())
		if err != nil {
			return nil, fmt.Errorf("compile rule %q: %w", r.Name, err)
		}
		r.program = prog
	}
	sort.SliceStable(rules, func(i, j int) bool {
		return rules[i].Priority > rules[j].Priority
	})
	return rules, nil
}
