package rules

import (
	"testing"

	"github.com/nstehr/goose/model"
)

const (
	us   = 0
	them = 1
)

func friend(x, y, hp int) model.Unit { return model.Unit{Location: model.Loc(x, y), HP: hp, Team: us} }
func enemy(x, y, hp int) model.Unit  { return model.Unit{Location: model.Loc(x, y), HP: hp, Team: them} }

// openGrid returns a w x h grid of open cells.
func openGrid(w, h int) *model.Grid { return model.NewGrid(w, h) }

// gridFrom builds a grid from rows of '.', '#', 'S' and ' ' (invalid).
func gridFrom(rows ...string) *model.Grid {
	g := model.NewGrid(len(rows[0]), len(rows))
	for y, row := range rows {
		for x, c := range row {
			switch c {
			case '#':
				g.Set(model.Loc(x, y), model.Obstacle)
			case 'S':
				g.Set(model.Loc(x, y), model.Spawn)
			case ' ':
				g.Set(model.Loc(x, y), model.Invalid)
			}
		}
	}
	return g
}

func testTurn(t *testing.T, g *model.Grid, turn int, units ...model.Unit) *Turn {
	t.Helper()
	p := DefaultProfile()
	if err := p.Validate(); err != nil {
		t.Fatal(err)
	}
	return NewTurn(g, model.NewBoard(turn, units), us, p, nil)
}

func testPlanner(t *testing.T, g *model.Grid, p Profile) *Planner {
	t.Helper()
	engine, err := NewEngine(p)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return NewPlanner(engine, g, nil)
}
