package rules

import "github.com/nstehr/goose/model"

// ThreatModel answers questions about who can hit whom on one board.
// Everything it computes is a pure function of the board, so answers are
// cached for the rest of the turn.
type ThreatModel struct {
	grid    *model.Grid
	board   *model.Board
	profile Profile
	team    int
	rally   model.Location
	units   []model.Unit

	doomed       map[model.Location]bool
	desirability map[model.Location]cellScore
}

// NewThreatModel builds a threat model from team's point of view.
func NewThreatModel(grid *model.Grid, board *model.Board, team int, p Profile) *ThreatModel {
	return &ThreatModel{
		grid:         grid,
		board:        board,
		profile:      p,
		team:         team,
		rally:        p.RallyPoint(grid),
		units:        board.SortedUnits(),
		doomed:       make(map[model.Location]bool),
		desirability: make(map[model.Location]cellScore),
	}
}

// UnitsNear lists units of the requested side within radius steps of l,
// sorted by location. The unit standing on l is never counted: a unit is
// neither a threat to nor support for its own cell.
func (tm *ThreatModel) UnitsNear(l model.Location, allied bool, radius int) []model.Unit {
	var out []model.Unit
	for _, u := range tm.units {
		if u.Location == l {
			continue
		}
		if (u.Team == tm.team) != allied {
			continue
		}
		if model.WalkDist(u.Location, l) <= radius {
			out = append(out, u)
		}
	}
	return out
}

// IsLethallyThreatened reports whether enemy is expected to die this turn
// from the attacks of our units adjacent to it.
func (tm *ThreatModel) IsLethallyThreatened(enemy model.Unit) bool {
	if v, ok := tm.doomed[enemy.Location]; ok {
		return v
	}
	attackers := len(tm.UnitsNear(enemy.Location, true, 1))
	v := attackers*tm.profile.AvgDamage >= enemy.HP
	tm.doomed[enemy.Location] = v
	return v
}

// Doomed filters enemies down to the lethally threatened ones.
func (tm *ThreatModel) Doomed(enemies []model.Unit) []model.Unit {
	var out []model.Unit
	for _, e := range enemies {
		if tm.IsLethallyThreatened(e) {
			out = append(out, e)
		}
	}
	return out
}

// ExpectsEnemySuicide reports whether any of enemies is low enough that it
// is likely to self-destruct rather than take the next round of hits.
func (tm *ThreatModel) ExpectsEnemySuicide(enemies []model.Unit) bool {
	for _, e := range enemies {
		if e.HP <= tm.profile.EnemySuicideHP && tm.IsLethallyThreatened(e) {
			return true
		}
	}
	return false
}

// ChooseTarget picks the weakest candidate. Ties go to the lowest
// location, so the answer never depends on map iteration order.
func (tm *ThreatModel) ChooseTarget(candidates []model.Unit) (model.Unit, bool) {
	var best model.Unit
	found := false
	for _, c := range candidates {
		if !found || c.HP < best.HP || (c.HP == best.HP && c.Location.Less(best.Location)) {
			best = c
			found = true
		}
	}
	return best, found
}

// cellScore keeps the parts of a desirability score separate so the
// contribution of a moving unit can be taken back out.
type cellScore struct {
	fixed   float64 // attack bonus, danger, rally pull, penalties
	support float64 // hp-weighted allies within the score radius
	allies  int     // allies adjacent to the cell
}

// Desirability scores how good it is to stand on l this turn. Higher is
// better. It adds up an attack bonus for weak or doomed enemies in reach,
// an hp pressure field from nearby units, a pull toward the rally point
// and a penalty for cells a unit cannot occupy.
func (tm *ThreatModel) Desirability(l model.Location) float64 {
	cs := tm.score(l)
	return tm.compose(cs.fixed, cs.support, cs.allies)
}

// DesirabilityFor is Desirability(l) as seen by mover, which does not
// count as its own support once it has left its cell.
func (tm *ThreatModel) DesirabilityFor(l model.Location, mover model.Unit) float64 {
	cs := tm.score(l)
	support, allies := cs.support, cs.allies
	if mover.Team == tm.team && mover.Location != l {
		d := model.WalkDist(mover.Location, l)
		if d <= tm.profile.ScoreRadius {
			support -= float64(mover.HP) / float64(max(1, d))
		}
		if d == 1 {
			allies--
		}
	}
	return tm.compose(cs.fixed, support, allies)
}

func (tm *ThreatModel) compose(fixed, support float64, allies int) float64 {
	// Overstacked cells count allies against the score.
	if allies > tm.profile.OverstackAllies {
		support = -support
	}
	return fixed + support
}

func (tm *ThreatModel) score(l model.Location) cellScore {
	if cs, ok := tm.desirability[l]; ok {
		return cs
	}
	p := tm.profile
	var cs cellScore

	for _, e := range tm.UnitsNear(l, false, 1) {
		if e.HP <= 2*p.AvgDamage || tm.IsLethallyThreatened(e) {
			cs.fixed += p.AttackBonus
			break
		}
	}

	for _, u := range tm.units {
		if u.Location == l {
			continue
		}
		d := model.WalkDist(u.Location, l)
		if d > p.ScoreRadius {
			continue
		}
		w := float64(u.HP) / float64(max(1, d))
		if u.Team == tm.team {
			cs.support += w
			if d == 1 {
				cs.allies++
			}
		} else {
			cs.fixed -= w
		}
	}

	cs.fixed -= p.RallyWeight * float64(model.WalkDist(l, tm.rally))

	if !tm.grid.Kind(l).Passable() {
		cs.fixed -= p.UnreachablePenalty
	} else if u, ok := tm.board.At(l); ok && u.Team != tm.team {
		cs.fixed -= p.UnreachablePenalty
	}

	tm.desirability[l] = cs
	return cs
}
