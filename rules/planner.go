package rules

import (
	"log/slog"

	"github.com/nstehr/goose/model"
)

// Plan maps each friendly unit's location to its action for the turn.
type Plan map[model.Location]model.Action

// Planner computes one team's actions for one turn.
type Planner struct {
	engine *Engine
	grid   *model.Grid
	log    *slog.Logger
}

// NewPlanner returns a planner for grid. A nil logger discards output.
func NewPlanner(engine *Engine, grid *model.Grid, log *slog.Logger) *Planner {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Planner{engine: engine, grid: grid, log: log}
}

// Plan decides every unit of team on board. Units are visited in location
// order and each move reserves its cell before the next unit decides, so
// no two moves share a destination. This holds for the solo rule chain too.
//
// Every friendly unit gets exactly one action; the fallback is guard.
func (p *Planner) Plan(board *model.Board, team int) Plan {
	turn := NewTurn(p.grid, board, team, p.engine.Profile(), p.log)
	p.log.Debug("planning turn",
		"turn", board.Turn,
		"team", team,
		"friends", len(turn.Friends),
		"enemies", len(turn.Enemies),
		"doomed", len(turn.Doomed),
	)

	plan := make(Plan, len(turn.Friends))
	for _, u := range turn.Friends {
		plan[u.Location] = p.decide(turn, u)
	}
	return plan
}

// Decide runs the rules for a single unit against a fresh turn with no
// reservations. Solo agents answering one unit at a time use it; sibling
// units are not visible, so callers wanting a collision-free team answer
// use Plan.
func (p *Planner) Decide(board *model.Board, self model.Unit) model.Action {
	turn := NewTurn(p.grid, board, self.Team, p.engine.Profile(), p.log)
	return p.decide(turn, self)
}

func (p *Planner) decide(turn *Turn, u model.Unit) model.Action {
	action, rule := p.engine.Decide(UnitEnv{Self: u, Turn: turn})

	if action.Kind == model.Move {
		switch {
		case action.Target == u.Location:
			p.log.Warn("move onto own cell downgraded to guard", "turn", turn.Board.Turn, "unit", u.Location, "rule", rule)
			action, rule = model.GuardAction(), FallbackRule
		case turn.Nav.IsBlocked(action.Target):
			p.log.Warn("move onto blocked cell downgraded to guard", "turn", turn.Board.Turn, "unit", u.Location, "target", action.Target, "rule", rule)
			action, rule = model.GuardAction(), FallbackRule
		default:
			turn.Nav.Reserve(u.Location, action.Target)
		}
	}
	if action.Kind == model.Attack {
		turn.Nav.MarkAttacked(action.Target)
	}

	p.log.Debug("rule fired",
		"turn", turn.Board.Turn,
		"unit", u.Location,
		"hp", u.HP,
		"rule", rule,
		"action", action.String(),
	)
	return action
}
