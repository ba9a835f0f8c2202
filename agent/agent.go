package agent

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/nstehr/goose/ipc"
	"github.com/nstehr/goose/model"
	"github.com/nstehr/goose/rules"
)

var (
	// ErrNoHello is returned for turns that arrive before the handshake.
	ErrNoHello = errors.New("no hello received")
	// ErrNotPlanned means the plan for a turn has no entry for the unit.
	ErrNotPlanned = errors.New("unit not in plan")
	// ErrUnknownProfile is returned when hello names a profile we don't have.
	ErrUnknownProfile = errors.New("unknown profile")
)

// Agent owns the decision-making for a single player session. It plans a
// turn once and answers every unit of that turn from the stored plan.
type Agent struct {
	engine  *rules.Engine
	planner *rules.Planner
	grid    *model.Grid
	team    int
	ready   bool
	log     *slog.Logger

	lastTurn int
	plan     rules.Plan
}

func New(engine *rules.Engine, log *slog.Logger) *Agent {
	if log == nil {
		log = slog.Default()
	}
	return &Agent{engine: engine, log: log}
}

// Hello identifies the player and sets up the arena. A nil grid means the
// standard arena; an empty profile keeps the agent's engine.
func (a *Agent) Hello(team int, profile string, grid *model.Grid) error {
	if profile != "" && profile != a.engine.Profile().Name {
		p, ok := rules.Profiles()[profile]
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownProfile, profile)
		}
		engine, err := rules.NewEngine(p)
		if err != nil {
			return fmt.Errorf("build engine for %q: %w", profile, err)
		}
		a.engine = engine
	}
	if grid == nil {
		grid = model.StandardArena()
	}

	a.grid = grid
	a.team = team
	a.planner = rules.NewPlanner(a.engine, grid, a.log)
	a.ready = true
	a.plan = nil

	a.log.Info("player identified",
		"player", team,
		"profile", a.engine.Profile().Name,
		"mode", a.engine.Profile().Mode,
		"arena", fmt.Sprintf("%dx%d", grid.Width, grid.Height),
	)
	return nil
}

// Plan returns the actions of every friendly unit for board's turn. The
// plan is computed once per turn number.
func (a *Agent) Plan(board *model.Board) (rules.Plan, error) {
	if !a.ready {
		return nil, ErrNoHello
	}
	if a.plan != nil && a.lastTurn == board.Turn {
		return a.plan, nil
	}
	a.plan = a.planner.Plan(board, a.team)
	a.lastTurn = board.Turn
	return a.plan, nil
}

// Act returns the action for the friendly unit standing on self.
func (a *Agent) Act(board *model.Board, self model.Location) (model.Action, error) {
	if !a.ready {
		return model.Action{}, ErrNoHello
	}
	if a.engine.Profile().Mode == rules.ModeSolo {
		u, ok := board.At(self)
		if !ok || u.Team != a.team {
			return model.Action{}, fmt.Errorf("%w: %v on turn %d", ErrNotPlanned, self, board.Turn)
		}
		return a.planner.Decide(board, u), nil
	}

	plan, err := a.Plan(board)
	if err != nil {
		return model.Action{}, err
	}
	action, ok := plan[self]
	if !ok {
		return model.Action{}, fmt.Errorf("%w: %v on turn %d", ErrNotPlanned, self, board.Turn)
	}
	return action, nil
}

// HandleHello completes the handshake so the engine knows the bot is ready.
func (a *Agent) HandleHello(env ipc.Envelope) (*ipc.Envelope, error) {
	var hello ipc.HelloMessage
	if err := json.Unmarshal(env.Data, &hello); err != nil {
		return nil, fmt.Errorf("unmarshal hello: %w", err)
	}

	var grid *model.Grid
	if hello.Terrain != nil {
		g, err := hello.Terrain.Grid()
		if err != nil {
			return nil, err
		}
		grid = g
	}
	if err := a.Hello(hello.PlayerID, hello.Profile, grid); err != nil {
		return nil, err
	}

	ack, err := ipc.NewEnvelope(ipc.TypeAck, ipc.AckMessage{Status: "ok"})
	if err != nil {
		return nil, err
	}
	return &ack, nil
}

func (a *Agent) HandleAct(env ipc.Envelope) (*ipc.Envelope, error) {
	var msg ipc.ActMessage
	if err := json.Unmarshal(env.Data, &msg); err != nil {
		return nil, fmt.Errorf("unmarshal act: %w", err)
	}
	if msg.Self == nil {
		return nil, errors.New("act: missing self")
	}

	action, err := a.Act(msg.Board(), *msg.Self)
	if err != nil {
		return nil, err
	}

	reply, err := ipc.NewEnvelope(ipc.TypeAction, ipc.ActionMessage{Location: *msg.Self, Action: action})
	if err != nil {
		return nil, err
	}
	return &reply, nil
}

func (a *Agent) HandlePlan(env ipc.Envelope) (*ipc.Envelope, error) {
	var msg ipc.ActMessage
	if err := json.Unmarshal(env.Data, &msg); err != nil {
		return nil, fmt.Errorf("unmarshal plan: %w", err)
	}

	plan, err := a.Plan(msg.Board())
	if err != nil {
		return nil, err
	}

	reply, err := ipc.NewEnvelope(ipc.TypePlan, ipc.NewPlanMessage(msg.Turn, plan))
	if err != nil {
		return nil, err
	}
	return &reply, nil
}
