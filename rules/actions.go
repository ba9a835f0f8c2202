package rules

import (
	"slices"

	"github.com/nstehr/goose/model"
)

// DecideSpawnSafety steps off a spawn cell before new units arrive. A unit
// that cannot get off explodes instead of being crushed by the spawn.
func DecideSpawnSafety(env UnitEnv) (model.Action, bool) {
	t, self := env.Turn, env.Self.Location
	offSpawn := func(l model.Location) bool { return !t.Grid.IsSpawn(l) }

	if step, ok := t.Nav.StepToward(self, t.Rally); ok && offSpawn(step) {
		return model.MoveAction(step), true
	}
	if esc, ok := t.Nav.FindEscape(self, offSpawn); ok {
		return model.MoveAction(esc), true
	}
	return model.SuicideAction(), true
}

// DecideAdjacentThreat settles fight-or-flee for a unit with enemies next
// to it. It reinforces a kill on a single doomed neighbour; otherwise it
// runs, and when it cannot run it explodes or attacks.
func DecideAdjacentThreat(env UnitEnv) (model.Action, bool) {
	t := env.Turn
	adjacent := env.AdjacentEnemies()
	if len(adjacent) == 0 {
		return model.Action{}, false
	}
	doomed := env.AdjacentDoomed()

	flee := len(doomed) == 0 || len(adjacent) > 1 || env.ExpectsEnemySuicide()
	if !flee {
		target, _ := t.Threat.ChooseTarget(doomed)
		return model.AttackAction(target.Location), true
	}

	if esc, ok := t.Nav.FindEscape(env.Self.Location, safeCell(t)); ok {
		return model.MoveAction(esc), true
	}

	if len(adjacent) > 1 && (env.SuicideKills() || env.AdjacentThreat() > env.HP()) {
		return model.SuicideAction(), true
	}
	target, _ := t.Threat.ChooseTarget(adjacent)
	return model.AttackAction(target.Location), true
}

// safeCell accepts cells with no enemy next to them that are not about
// to receive a spawn.
func safeCell(t *Turn) func(model.Location) bool {
	return func(l model.Location) bool {
		if t.SpawnUnsafe() && t.Grid.IsSpawn(l) {
			return false
		}
		return len(t.Threat.UnitsNear(l, false, 1)) == 0
	}
}

// DecideApproach steps toward the cheapest doomed enemy, scoring each by
// 2*distance + hp. Approach cells already next to more than one enemy are
// skipped.
func DecideApproach(env UnitEnv) (model.Action, bool) {
	t, self := env.Turn, env.Self.Location
	targets := slices.Clone(t.Doomed)
	cost := func(u model.Unit) int { return 2*model.WalkDist(u.Location, self) + u.HP }
	slices.SortStableFunc(targets, func(a, b model.Unit) int { return cost(a) - cost(b) })

	for _, target := range targets {
		step, ok := t.Nav.StepToward(self, target.Location)
		if !ok {
			continue
		}
		if len(t.Threat.UnitsNear(step, false, 1)) > 1 {
			continue
		}
		return model.MoveAction(step), true
	}
	return model.Action{}, false
}

// DecideChase steps toward the nearest enemy. The condition decides
// whether it is weak and close enough to be worth it.
func DecideChase(env UnitEnv) (model.Action, bool) {
	target, ok := env.nearestEnemy()
	if !ok {
		return model.Action{}, false
	}
	step, ok := env.Turn.Nav.StepToward(env.Self.Location, target.Location)
	if !ok {
		return model.Action{}, false
	}
	return model.MoveAction(step), true
}

// DecideDefensiveAttack attacks the cell an enemy two steps away would
// most likely step into, weakest enemy first.
func DecideDefensiveAttack(env UnitEnv) (model.Action, bool) {
	t, self := env.Turn, env.Self.Location
	candidates := env.EnemiesAt(2)
	for len(candidates) > 0 {
		target, _ := t.Threat.ChooseTarget(candidates)
		if cell, ok := t.Nav.StepToward(self, target.Location); ok {
			return model.AttackAction(cell), true
		}
		candidates = slices.DeleteFunc(candidates, func(u model.Unit) bool {
			return u.Location == target.Location
		})
	}
	return model.Action{}, false
}

// DecideRegroup moves to the free neighbouring cell with the best
// desirability, if it beats staying put.
func DecideRegroup(env UnitEnv) (model.Action, bool) {
	t, self := env.Turn, env.Self
	best, bestScore := self.Location, t.Threat.Desirability(self.Location)
	for _, l := range t.Grid.LocsAround(self.Location) {
		if t.Nav.IsBlocked(l) {
			continue
		}
		if t.SpawnUnsafe() && t.Grid.IsSpawn(l) {
			continue
		}
		if s := t.Threat.DesirabilityFor(l, self); s > bestScore {
			best, bestScore = l, s
		}
	}
	if best == self.Location {
		return model.Action{}, false
	}
	return model.MoveAction(best), true
}

// DecideSuicide explodes unconditionally; the condition carries the logic.
func DecideSuicide(UnitEnv) (model.Action, bool) {
	return model.SuicideAction(), true
}

// DecideFlee runs to any free cell that is not about to receive a spawn.
func DecideFlee(env UnitEnv) (model.Action, bool) {
	t := env.Turn
	esc, ok := t.Nav.FindEscape(env.Self.Location, func(l model.Location) bool {
		return !(t.SpawnUnsafe() && t.Grid.IsSpawn(l))
	})
	if !ok {
		return model.Action{}, false
	}
	return model.MoveAction(esc), true
}

// DecideAttackWeakest attacks the weakest adjacent enemy.
func DecideAttackWeakest(env UnitEnv) (model.Action, bool) {
	target, ok := env.Turn.Threat.ChooseTarget(env.AdjacentEnemies())
	if !ok {
		return model.Action{}, false
	}
	return model.AttackAction(target.Location), true
}

// DecideRally takes a greedy step toward the rally point.
func DecideRally(env UnitEnv) (model.Action, bool) {
	step, ok := env.Turn.Nav.StepToward(env.Self.Location, env.Turn.Rally)
	if !ok {
		return model.Action{}, false
	}
	return model.MoveAction(step), true
}
