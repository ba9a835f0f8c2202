package ipc

import (
	"fmt"

	"github.com/nstehr/goose/model"
)

// Message types exchanged with the game engine.
const (
	TypeHello  = "hello"
	TypeAck    = "ack"
	TypeAct    = "act"
	TypeAction = "action"
	TypePlan   = "plan"
	TypeError  = "error"
)

// HelloMessage opens a session. Profile optionally names a built-in
// profile; Terrain is optional and defaults to the standard arena.
type HelloMessage struct {
	PlayerID int          `json:"player_id"`
	Profile  string       `json:"profile,omitempty"`
	Terrain  *TerrainData `json:"terrain,omitempty"`
}

// TerrainData carries the arena as a row-major list of cell kinds.
type TerrainData struct {
	Width  int   `json:"width"`
	Height int   `json:"height"`
	Cells  []int `json:"cells"`
}

// Grid converts the terrain into a model grid.
func (t TerrainData) Grid() (*model.Grid, error) {
	if t.Width <= 0 || t.Height <= 0 {
		return nil, fmt.Errorf("terrain: bad size %dx%d", t.Width, t.Height)
	}
	if len(t.Cells) != t.Width*t.Height {
		return nil, fmt.Errorf("terrain: %d cells for %dx%d", len(t.Cells), t.Width, t.Height)
	}
	g := model.NewGrid(t.Width, t.Height)
	for i, c := range t.Cells {
		if c < int(model.Open) || c > int(model.Spawn) {
			return nil, fmt.Errorf("terrain: unknown cell kind %d at index %d", c, i)
		}
		g.Cells[i] = model.CellKind(c)
	}
	return g, nil
}

type AckMessage struct {
	Status string `json:"status"`
}

// ActMessage is one turn's board. Self is set when the engine asks for a
// single unit's action and omitted when it asks for the whole plan.
type ActMessage struct {
	Turn   int             `json:"turn"`
	Robots []model.Unit    `json:"robots"`
	Self   *model.Location `json:"self,omitempty"`
}

func (m ActMessage) Board() *model.Board { return model.NewBoard(m.Turn, m.Robots) }

type ActionMessage struct {
	Location model.Location `json:"location"`
	Action   model.Action   `json:"action"`
}

type PlanMessage struct {
	Turn    int             `json:"turn"`
	Actions []ActionMessage `json:"actions"`
}

// NewPlanMessage lists actions sorted by unit location.
func NewPlanMessage(turn int, actions map[model.Location]model.Action) PlanMessage {
	locs := make([]model.Location, 0, len(actions))
	for l := range actions {
		locs = append(locs, l)
	}
	model.SortLocations(locs)
	msg := PlanMessage{Turn: turn, Actions: make([]ActionMessage, 0, len(locs))}
	for _, l := range locs {
		msg.Actions = append(msg.Actions, ActionMessage{Location: l, Action: actions[l]})
	}
	return msg
}

type ErrorMessage struct {
	Message string `json:"message"`
}
