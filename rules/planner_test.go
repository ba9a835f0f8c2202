package rules

import (
	"reflect"
	"testing"

	"github.com/nstehr/goose/model"
)

func planFor(t *testing.T, g *model.Grid, p Profile, turn int, units ...model.Unit) Plan {
	t.Helper()
	return testPlanner(t, g, p).Plan(model.NewBoard(turn, units), us)
}

func wantAction(t *testing.T, plan Plan, at model.Location, want model.Action) {
	t.Helper()
	got, ok := plan[at]
	if !ok {
		t.Fatalf("no action for unit at %v", at)
	}
	if got != want {
		t.Errorf("action for %v = %v, want %v", at, got, want)
	}
}

func TestSpawnSafety(t *testing.T) {
	t.Run("steps off when it can", func(t *testing.T) {
		g := gridFrom(
			"###",
			"#S#",
			"#.#",
		)
		plan := planFor(t, g, DefaultProfile(), 10, friend(1, 1, 50))
		wantAction(t, plan, model.Loc(1, 1), model.MoveAction(model.Loc(1, 2)))
	})

	t.Run("explodes when boxed in", func(t *testing.T) {
		g := gridFrom(
			"###",
			"#S#",
			"###",
		)
		plan := planFor(t, g, DefaultProfile(), 10, friend(1, 1, 50))
		wantAction(t, plan, model.Loc(1, 1), model.SuicideAction())
	})

	t.Run("safe turn", func(t *testing.T) {
		g := gridFrom(
			"###",
			"#S#",
			"###",
		)
		plan := planFor(t, g, DefaultProfile(), 11, friend(1, 1, 50))
		wantAction(t, plan, model.Loc(1, 1), model.GuardAction())
	})

	t.Run("does not step onto another spawn", func(t *testing.T) {
		g := gridFrom(
			"#####",
			"#SS.#",
			"#####",
		)
		plan := planFor(t, g, DefaultProfile(), 20, friend(1, 1, 50))
		wantAction(t, plan, model.Loc(1, 1), model.SuicideAction())
	})
}

func TestAdjacentThreat(t *testing.T) {
	g := openGrid(7, 7)

	t.Run("reinforces a doomed enemy", func(t *testing.T) {
		plan := planFor(t, g, DefaultProfile(), 1, friend(3, 3, 50), enemy(4, 3, 9))
		wantAction(t, plan, model.Loc(3, 3), model.AttackAction(model.Loc(4, 3)))
	})

	t.Run("flees an enemy about to explode", func(t *testing.T) {
		plan := planFor(t, g, DefaultProfile(), 1, friend(3, 3, 50), enemy(4, 3, 8))
		got := plan[model.Loc(3, 3)]
		if got.Kind != model.Move {
			t.Fatalf("action = %v, want a move away", got)
		}
		if model.WalkDist(got.Target, model.Loc(4, 3)) < 2 {
			t.Errorf("fled to %v, still next to the enemy", got.Target)
		}
	})

	t.Run("flees a healthy enemy", func(t *testing.T) {
		plan := planFor(t, g, DefaultProfile(), 1, friend(3, 3, 50), enemy(4, 3, 50))
		if got := plan[model.Loc(3, 3)]; got.Kind != model.Move {
			t.Errorf("action = %v, want a move away", got)
		}
	})

	t.Run("two doomed neighbours and nowhere safe", func(t *testing.T) {
		// Every free cell around (3,3) touches one of the enemies, and
		// exploding finishes both.
		plan := planFor(t, g, DefaultProfile(), 1,
			friend(3, 3, 50), friend(3, 4, 50),
			enemy(4, 3, 9), enemy(2, 3, 9),
		)
		wantAction(t, plan, model.Loc(3, 3), model.SuicideAction())
	})

	t.Run("cornered by one enemy attacks anyway", func(t *testing.T) {
		corner := gridFrom(
			"..",
			"##",
		)
		plan := planFor(t, corner, DefaultProfile(), 1, friend(0, 0, 50), enemy(1, 0, 50))
		wantAction(t, plan, model.Loc(0, 0), model.AttackAction(model.Loc(1, 0)))
	})
}

func TestFullyEncircled(t *testing.T) {
	g := openGrid(3, 3)
	units := []model.Unit{friend(1, 1, 50)}
	for _, l := range g.LocsAround(model.Loc(1, 1)) {
		units = append(units, enemy(l.X, l.Y, 50))
	}

	t.Run("outnumbered explodes", func(t *testing.T) {
		plan := planFor(t, g, DefaultProfile(), 1, units...)
		wantAction(t, plan, model.Loc(1, 1), model.SuicideAction())
	})

	t.Run("two weak neighbours worth a suicide", func(t *testing.T) {
		plan := planFor(t, g, DefaultProfile(), 1,
			friend(1, 1, 50),
			enemy(0, 1, 12), enemy(2, 1, 40),
			friend(0, 0, 50), friend(1, 0, 50), friend(2, 0, 50),
			friend(0, 2, 50), friend(1, 2, 50), friend(2, 2, 50),
		)
		wantAction(t, plan, model.Loc(1, 1), model.SuicideAction())
	})

	t.Run("two strong neighbours get attacked", func(t *testing.T) {
		plan := planFor(t, g, DefaultProfile(), 1,
			friend(1, 1, 50),
			enemy(0, 1, 40), enemy(2, 1, 30),
			friend(0, 0, 50), friend(1, 0, 50), friend(2, 0, 50),
			friend(0, 2, 50), friend(1, 2, 50), friend(2, 2, 50),
		)
		wantAction(t, plan, model.Loc(1, 1), model.AttackAction(model.Loc(2, 1)))
	})
}

func TestApproachDoomed(t *testing.T) {
	g := openGrid(9, 9)
	plan := planFor(t, g, DefaultProfile(), 1,
		friend(1, 4, 50),
		friend(6, 4, 50),
		enemy(7, 4, 9), // doomed by (6,4)
	)
	wantAction(t, plan, model.Loc(1, 4), model.MoveAction(model.Loc(2, 4)))
	wantAction(t, plan, model.Loc(6, 4), model.AttackAction(model.Loc(7, 4)))
}

func TestApproachSkipsCrossfire(t *testing.T) {
	g := openGrid(9, 9)
	plan := planFor(t, g, DefaultProfile(), 1,
		friend(2, 4, 50),
		friend(6, 4, 50),
		enemy(5, 4, 9),  // doomed by (6,4)
		enemy(4, 3, 50), // the step to (3,4) lands next to both of these
		enemy(4, 5, 50),
	)
	got := plan[model.Loc(2, 4)]
	if got == model.MoveAction(model.Loc(3, 4)) {
		t.Errorf("approached into crossfire: %v", got)
	}
}

func TestDefensiveAttack(t *testing.T) {
	p := DefaultProfile()
	p.ChaseDistance = 0
	plan := planFor(t, openGrid(9, 9), p, 1, friend(4, 4, 50), enemy(6, 4, 50))
	wantAction(t, plan, model.Loc(4, 4), model.AttackAction(model.Loc(5, 4)))
}

func TestChaseWeak(t *testing.T) {
	plan := planFor(t, openGrid(9, 9), DefaultProfile(), 1, friend(4, 4, 50), enemy(7, 4, 15))
	wantAction(t, plan, model.Loc(4, 4), model.MoveAction(model.Loc(5, 4)))
}

func TestEmptyAndLoneBoards(t *testing.T) {
	g := model.StandardArena()

	if plan := planFor(t, g, DefaultProfile(), 1); len(plan) != 0 {
		t.Errorf("empty board plan = %v, want empty", plan)
	}

	plan := planFor(t, g, DefaultProfile(), 1, friend(9, 9, 50))
	wantAction(t, plan, model.Loc(9, 9), model.GuardAction())

	plan = planFor(t, g, DefaultProfile(), 1, enemy(9, 9, 50))
	if len(plan) != 0 {
		t.Errorf("plan with no friends = %v, want empty", plan)
	}
}

func TestReservationSharedCell(t *testing.T) {
	// Both units would like (2,0), the rally point; only one may have it.
	g := gridFrom(
		"...",
		"##.",
	)
	p := DefaultProfile()
	rally := model.Loc(2, 0)
	p.Rally = &rally

	plan := planFor(t, g, p, 1, friend(1, 0, 50), friend(2, 1, 50))

	wantAction(t, plan, model.Loc(1, 0), model.MoveAction(rally))
	if got := plan[model.Loc(2, 1)]; got == model.MoveAction(rally) {
		t.Errorf("second unit also moves to %v", rally)
	}
}

func TestTrailingUnitTakesVacatedCell(t *testing.T) {
	// A one-wide corridor toward the rally point: each unit steps into the
	// cell the unit ahead just left.
	g := gridFrom(".....")
	p := DefaultProfile()
	rally := model.Loc(0, 0)
	p.Rally = &rally
	p.RallyWeight = 100

	plan := planFor(t, g, p, 1, friend(1, 0, 50), friend(2, 0, 50), friend(3, 0, 50))
	wantAction(t, plan, model.Loc(1, 0), model.MoveAction(model.Loc(0, 0)))
	wantAction(t, plan, model.Loc(2, 0), model.MoveAction(model.Loc(1, 0)))
	wantAction(t, plan, model.Loc(3, 0), model.MoveAction(model.Loc(2, 0)))
}

func TestSelfMoveDowngradedToGuard(t *testing.T) {
	engine := &Engine{profile: DefaultProfile()}
	rules, err := compileRules([]*Rule{{
		Name:         "stay",
		Priority:     1,
		ConditionSrc: `true`,
		Decide: func(env UnitEnv) (model.Action, bool) {
			return model.MoveAction(env.Self.Location), true
		},
	}})
	if err != nil {
		t.Fatal(err)
	}
	engine.rules = rules

	plan := NewPlanner(engine, openGrid(3, 3), nil).Plan(model.NewBoard(1, []model.Unit{friend(1, 1, 50)}), us)
	wantAction(t, plan, model.Loc(1, 1), model.GuardAction())
}

func TestMoveIntoAttackedCellDowngraded(t *testing.T) {
	engine := &Engine{profile: DefaultProfile()}
	rules, err := compileRules([]*Rule{{
		Name:         "converge",
		Priority:     1,
		ConditionSrc: `true`,
		Decide: func(env UnitEnv) (model.Action, bool) {
			if env.Self.Location == model.Loc(0, 0) {
				return model.AttackAction(model.Loc(1, 0)), true
			}
			return model.MoveAction(model.Loc(1, 0)), true
		},
	}})
	if err != nil {
		t.Fatal(err)
	}
	engine.rules = rules

	board := model.NewBoard(1, []model.Unit{friend(0, 0, 50), friend(2, 0, 50)})
	plan := NewPlanner(engine, openGrid(3, 1), nil).Plan(board, us)
	wantAction(t, plan, model.Loc(0, 0), model.AttackAction(model.Loc(1, 0)))
	wantAction(t, plan, model.Loc(2, 0), model.GuardAction())
}

func TestPlanIsIdempotent(t *testing.T) {
	g := model.StandardArena()
	units := []model.Unit{
		friend(9, 9, 50), friend(9, 10, 30), friend(8, 9, 12),
		enemy(10, 9, 9), enemy(11, 11, 40), enemy(6, 9, 50),
		friend(3, 5, 50), enemy(4, 4, 20),
	}
	planner := testPlanner(t, g, DefaultProfile())
	first := planner.Plan(model.NewBoard(7, units), us)
	second := planner.Plan(model.NewBoard(7, units), us)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("plans differ:\n%v\n%v", first, second)
	}
}

func TestSoloMode(t *testing.T) {
	g := openGrid(7, 7)

	t.Run("pre-emptive suicide", func(t *testing.T) {
		plan := planFor(t, g, FryProfile(), 1,
			friend(3, 3, 15), enemy(2, 3, 50), enemy(4, 3, 50),
		)
		wantAction(t, plan, model.Loc(3, 3), model.SuicideAction())
	})

	t.Run("attacks the weakest neighbour", func(t *testing.T) {
		plan := planFor(t, g, FryProfile(), 1,
			friend(3, 3, 50), enemy(4, 3, 30),
		)
		wantAction(t, plan, model.Loc(3, 3), model.AttackAction(model.Loc(4, 3)))
	})

	t.Run("heads to the rally point", func(t *testing.T) {
		plan := planFor(t, g, FryProfile(), 1, friend(0, 3, 50))
		wantAction(t, plan, model.Loc(0, 3), model.MoveAction(model.Loc(1, 3)))
	})

	t.Run("one pass shares reservations", func(t *testing.T) {
		// Both units want (3,3); the first in location order gets it.
		plan := planFor(t, g, FryProfile(), 1, friend(2, 3, 50), friend(4, 3, 50))
		wantAction(t, plan, model.Loc(2, 3), model.MoveAction(model.Loc(3, 3)))
		wantAction(t, plan, model.Loc(4, 3), model.GuardAction())
	})

	t.Run("low-hp suicide before the turn limit", func(t *testing.T) {
		p := FryProfile()
		p.AvgDamage = 2
		plan := planFor(t, g, p, 10, friend(3, 3, 5), enemy(2, 3, 50), enemy(4, 3, 50))
		wantAction(t, plan, model.Loc(3, 3), model.SuicideAction())
	})

	t.Run("no low-hp suicide after the turn limit", func(t *testing.T) {
		p := FryProfile()
		p.AvgDamage = 2
		plan := planFor(t, g, p, 95, friend(3, 3, 5), enemy(2, 3, 50), enemy(4, 3, 50))
		wantAction(t, plan, model.Loc(3, 3), model.MoveAction(model.Loc(2, 2)))
	})
}
