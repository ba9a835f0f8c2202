package rules

import (
	"log/slog"

	"github.com/nstehr/goose/model"
)

// Turn is the state shared by every decision in one planning pass. It is
// built fresh each turn; nothing in it outlives the pass.
type Turn struct {
	Grid    *model.Grid
	Board   *model.Board
	Team    int
	Profile Profile
	Rally   model.Location

	Nav    *Navigator
	Threat *ThreatModel

	Friends []model.Unit
	Enemies []model.Unit
	// Doomed is the lethally threatened subset of Enemies, classified once
	// per pass.
	Doomed []model.Unit

	Log *slog.Logger
}

// NewTurn partitions the board for team and classifies doomed enemies.
// A nil logger discards output.
func NewTurn(grid *model.Grid, board *model.Board, team int, p Profile, log *slog.Logger) *Turn {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	t := &Turn{
		Grid:    grid,
		Board:   board,
		Team:    team,
		Profile: p,
		Rally:   p.RallyPoint(grid),
		Nav:     NewNavigator(grid, board),
		Threat:  NewThreatModel(grid, board, team, p),
		Friends: board.Team(team),
		Enemies: board.Opponents(team),
		Log:     log,
	}
	t.Doomed = t.Threat.Doomed(t.Enemies)
	return t
}

// SpawnUnsafe reports whether new units arrive on spawn cells this turn.
func (t *Turn) SpawnUnsafe() bool {
	return t.Board.Turn%t.Profile.SpawnCadence == 0
}

// UnitEnv is what rule conditions see: one friendly unit and the turn it
// is deciding in. Its methods are callable from expr expressions.
type UnitEnv struct {
	Self model.Unit
	Turn *Turn
}

func (e UnitEnv) HP() int         { return e.Self.HP }
func (e UnitEnv) TurnNumber() int { return e.Turn.Board.Turn }
func (e UnitEnv) EnemyCount() int { return len(e.Turn.Enemies) }
func (e UnitEnv) OnSpawn() bool   { return e.Turn.Grid.IsSpawn(e.Self.Location) }
func (e UnitEnv) SpawnUnsafe() bool {
	return e.Turn.SpawnUnsafe()
}

// OnUnsafeSpawn is true when standing here risks a spawn collision this turn.
func (e UnitEnv) OnUnsafeSpawn() bool { return e.OnSpawn() && e.SpawnUnsafe() }

func (e UnitEnv) AtRally() bool { return e.Self.Location == e.Turn.Rally }

// AdjacentEnemies lists enemies one step away.
func (e UnitEnv) AdjacentEnemies() []model.Unit {
	return e.Turn.Threat.UnitsNear(e.Self.Location, false, 1)
}

// AdjacentAllies lists friendly units one step away.
func (e UnitEnv) AdjacentAllies() []model.Unit {
	return e.Turn.Threat.UnitsNear(e.Self.Location, true, 1)
}

// AdjacentDoomed lists adjacent enemies already expected to die this turn.
func (e UnitEnv) AdjacentDoomed() []model.Unit {
	return e.Turn.Threat.Doomed(e.AdjacentEnemies())
}

// DoomedEnemies lists every enemy on the board expected to die this turn.
func (e UnitEnv) DoomedEnemies() []model.Unit { return e.Turn.Doomed }

func (e UnitEnv) ExpectsEnemySuicide() bool {
	return e.Turn.Threat.ExpectsEnemySuicide(e.AdjacentEnemies())
}

// AdjacentThreat is the damage the adjacent enemies are expected to deal.
func (e UnitEnv) AdjacentThreat() int {
	return len(e.AdjacentEnemies()) * e.Turn.Profile.AvgDamage
}

// SuicideKills reports whether exploding here would finish an adjacent enemy.
func (e UnitEnv) SuicideKills() bool {
	for _, en := range e.AdjacentEnemies() {
		if en.HP <= e.Turn.Profile.SuicideDamage {
			return true
		}
	}
	return false
}

// EnemiesAt lists enemies exactly d steps away.
func (e UnitEnv) EnemiesAt(d int) []model.Unit {
	var out []model.Unit
	for _, en := range e.Turn.Enemies {
		if model.WalkDist(en.Location, e.Self.Location) == d {
			out = append(out, en)
		}
	}
	return out
}

// nearestEnemy returns the closest enemy; ties go to the lowest location.
func (e UnitEnv) nearestEnemy() (model.Unit, bool) {
	var nearest model.Unit
	best := -1
	for _, en := range e.Turn.Enemies {
		d := model.WalkDist(en.Location, e.Self.Location)
		if best == -1 || d < best {
			best = d
			nearest = en
		}
	}
	return nearest, best >= 0
}

// NearestEnemyDistance is -1 when there are no enemies.
func (e UnitEnv) NearestEnemyDistance() int {
	en, ok := e.nearestEnemy()
	if !ok {
		return -1
	}
	return model.WalkDist(en.Location, e.Self.Location)
}

// NearestEnemyHP is 0 when there are no enemies.
func (e UnitEnv) NearestEnemyHP() int {
	en, _ := e.nearestEnemy()
	return en.HP
}
