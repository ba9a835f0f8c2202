package model

import "slices"

// CellKind classifies a board cell. Spawn cells are walkable; the turn
// number decides when standing on one is unsafe.
type CellKind byte

const (
	Open     CellKind = 0 // walkable
	Obstacle CellKind = 1 // impassable terrain inside the board
	Invalid  CellKind = 2 // off-board or outside the arena
	Spawn    CellKind = 3 // walkable, new units may appear here
)

func (k CellKind) String() string {
	switch k {
	case Open:
		return "open"
	case Obstacle:
		return "obstacle"
	case Invalid:
		return "invalid"
	case Spawn:
		return "spawn"
	}
	return "unknown"
}

// Passable reports whether a unit may stand on a cell of this kind.
func (k CellKind) Passable() bool { return k == Open || k == Spawn }

// Grid is the static board. Cells are stored row-major: Cells[y*Width + x].
type Grid struct {
	Width  int
	Height int
	Cells  []CellKind
}

// NewGrid returns a width x height grid of open cells.
func NewGrid(width, height int) *Grid {
	return &Grid{Width: width, Height: height, Cells: make([]CellKind, width*height)}
}

// StandardArenaSize is the side length of the standard arena.
const StandardArenaSize = 19

// StandardArena builds the 19x19 circular arena. Cells outside the circle
// are invalid; the outermost walkable ring is spawn ground.
func StandardArena() *Grid {
	g := NewGrid(StandardArenaSize, StandardArenaSize)
	c := StandardArenaSize / 2
	r2 := (c - 1) * (c - 1)
	inside := func(x, y int) bool {
		dx, dy := x-c, y-c
		return dx*dx+dy*dy <= r2+c-1
	}
	for y := range g.Height {
		for x := range g.Width {
			if !inside(x, y) {
				g.Set(Loc(x, y), Invalid)
			}
		}
	}
	// A walkable cell touching the outside of the circle is a spawn point.
	for y := range g.Height {
		for x := range g.Width {
			l := Loc(x, y)
			if g.Kind(l) != Open {
				continue
			}
			for _, d := range adjacent {
				n := l.Add(d.X, d.Y)
				if !g.InBounds(n) || !inside(n.X, n.Y) {
					g.Set(l, Spawn)
					break
				}
			}
		}
	}
	return g
}

// Center returns the middle cell of the grid, the default rally point.
func (g *Grid) Center() Location { return Loc(g.Width/2, g.Height/2) }

// InBounds reports whether l lies within the grid rectangle.
func (g *Grid) InBounds(l Location) bool {
	return l.X >= 0 && l.X < g.Width && l.Y >= 0 && l.Y < g.Height
}

// Kind returns the classification of l. Off-board locations are Invalid.
func (g *Grid) Kind(l Location) CellKind {
	if !g.InBounds(l) {
		return Invalid
	}
	return g.Cells[l.Y*g.Width+l.X]
}

// Set overrides the classification of an in-bounds cell.
func (g *Grid) Set(l Location, k CellKind) {
	if g.InBounds(l) {
		g.Cells[l.Y*g.Width+l.X] = k
	}
}

func (g *Grid) IsSpawn(l Location) bool { return g.Kind(l) == Spawn }

// Locations lists every passable cell in deterministic order.
func (g *Grid) Locations() []Location {
	var out []Location
	for x := range g.Width {
		for y := range g.Height {
			if l := Loc(x, y); g.Kind(l).Passable() {
				out = append(out, l)
			}
		}
	}
	return out
}

// adjacent holds the eight Chebyshev offsets in scan order.
var adjacent = []Location{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// LocsAround returns the passable cells adjacent to l, excluding l, in a
// fixed order (by X then Y).
func (g *Grid) LocsAround(l Location) []Location {
	out := make([]Location, 0, len(adjacent))
	for _, d := range adjacent {
		n := l.Add(d.X, d.Y)
		if g.Kind(n).Passable() {
			out = append(out, n)
		}
	}
	return out
}

// Neighbors returns every passable cell reachable within radius steps,
// sorted by X then Y. For radius 1 that is LocsAround(l). Larger radii
// accumulate the neighbourhoods of the ring before, so l itself shows
// up again once radius reaches 2 and l is passable.
func (g *Grid) Neighbors(l Location, radius int) []Location {
	if radius < 1 {
		return nil
	}
	seen := make(map[Location]bool)
	frontier := []Location{l}
	for range radius {
		var next []Location
		for _, f := range frontier {
			for _, n := range g.LocsAround(f) {
				if !seen[n] {
					seen[n] = true
					next = append(next, n)
				}
			}
		}
		frontier = next
	}
	out := make([]Location, 0, len(seen))
	for n := range seen {
		out = append(out, n)
	}
	slices.SortFunc(out, compareLocations)
	return out
}

func compareLocations(a, b Location) int {
	switch {
	case a.Less(b):
		return -1
	case b.Less(a):
		return 1
	}
	return 0
}

// SortLocations sorts ls in place by X then Y.
func SortLocations(ls []Location) { slices.SortFunc(ls, compareLocations) }
