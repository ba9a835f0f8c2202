package model

// Unit is one robot as seen this turn.
type Unit struct {
	Location Location `json:"location"`
	HP       int      `json:"hp"`
	Team     int      `json:"player_id"`
}

// Board is the per-turn snapshot supplied by the engine. It is never
// mutated while a turn is being planned.
type Board struct {
	Turn  int
	Units map[Location]Unit
}

// NewBoard indexes units by location. A later unit on the same cell
// replaces an earlier one.
func NewBoard(turn int, units []Unit) *Board {
	b := &Board{Turn: turn, Units: make(map[Location]Unit, len(units))}
	for _, u := range units {
		b.Units[u.Location] = u
	}
	return b
}

// At returns the unit standing on l, if any.
func (b *Board) At(l Location) (Unit, bool) {
	u, ok := b.Units[l]
	return u, ok
}

func (b *Board) Occupied(l Location) bool {
	_, ok := b.Units[l]
	return ok
}

// Team returns the units belonging to team, sorted by location.
func (b *Board) Team(team int) []Unit {
	return b.filter(func(u Unit) bool { return u.Team == team })
}

// Opponents returns the units not belonging to team, sorted by location.
func (b *Board) Opponents(team int) []Unit {
	return b.filter(func(u Unit) bool { return u.Team != team })
}

// SortedUnits returns every unit on the board sorted by location.
func (b *Board) SortedUnits() []Unit {
	return b.filter(func(Unit) bool { return true })
}

func (b *Board) filter(keep func(Unit) bool) []Unit {
	locs := make([]Location, 0, len(b.Units))
	for l, u := range b.Units {
		if keep(u) {
			locs = append(locs, l)
		}
	}
	SortLocations(locs)
	out := make([]Unit, len(locs))
	for i, l := range locs {
		out[i] = b.Units[l]
	}
	return out
}
