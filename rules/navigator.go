package rules

import "github.com/nstehr/goose/model"

// Navigator computes single greedy steps for one planning pass. It knows
// which cells earlier units in the pass have claimed as destinations and
// which they are leaving, so two units planned in the same pass never
// pick the same cell.
//
// There is no search: a unit facing a concave obstacle may get no step
// at all, and callers fall back to something else.
type Navigator struct {
	grid      *model.Grid
	board     *model.Board
	claimed   map[model.Location]bool
	departing map[model.Location]bool
	attacked  map[model.Location]bool
}

// NewNavigator returns a navigator with empty reservations. One is built
// per turn; reservations never carry over.
func NewNavigator(grid *model.Grid, board *model.Board) *Navigator {
	return &Navigator{
		grid:      grid,
		board:     board,
		claimed:   make(map[model.Location]bool),
		departing: make(map[model.Location]bool),
		attacked:  make(map[model.Location]bool),
	}
}

// IsBlocked reports whether no unit may step onto l this pass: it is not
// walkable, it is held by a unit that is not leaving, another unit has
// already claimed it, or a friend is attacking it.
func (n *Navigator) IsBlocked(l model.Location) bool {
	if !n.grid.Kind(l).Passable() {
		return true
	}
	if n.claimed[l] || n.attacked[l] {
		return true
	}
	return n.board.Occupied(l) && !n.departing[l]
}

// Reserve records a planned move: departure becomes enterable by later
// units and destination becomes unavailable to them.
func (n *Navigator) Reserve(departure, destination model.Location) {
	n.departing[departure] = true
	n.claimed[destination] = true
}

// Claimed reports whether l is already some unit's destination this pass.
func (n *Navigator) Claimed(l model.Location) bool { return n.claimed[l] }

// MarkAttacked records that a unit attacks l this pass. Later units will
// not step into their own side's fire.
func (n *Navigator) MarkAttacked(l model.Location) { n.attacked[l] = true }

// Attacked reports whether a unit attacks l this pass.
func (n *Navigator) Attacked(l model.Location) bool { return n.attacked[l] }

// StepToward returns the best unblocked orthogonal step from from toward
// to. The axis with the larger gap is preferred; on a tie the x axis wins.
func (n *Navigator) StepToward(from, to model.Location) (model.Location, bool) {
	xDiff, yDiff := to.X-from.X, to.Y-from.Y
	dx, dy := model.Abs(xDiff), model.Abs(yDiff)

	forwardX := from.Add(model.Sign(xDiff), 0)
	forwardY := from.Add(0, model.Sign(yDiff))

	canX := dx > 0 && !n.IsBlocked(forwardX)
	canY := dy > 0 && !n.IsBlocked(forwardY)

	switch {
	case canX && canY:
		if dy > dx {
			return forwardY, true
		}
		return forwardX, true
	case canX:
		return forwardX, true
	case canY:
		return forwardY, true
	}
	return model.Location{}, false
}

// FindEscape returns the first unblocked cell around from, scanning in
// LocsAround order, that also satisfies ok. A nil ok accepts any cell.
func (n *Navigator) FindEscape(from model.Location, ok func(model.Location) bool) (model.Location, bool) {
	for _, l := range n.grid.LocsAround(from) {
		if n.IsBlocked(l) {
			continue
		}
		if ok != nil && !ok(l) {
			continue
		}
		return l, true
	}
	return model.Location{}, false
}
