package model

import (
	"encoding/json"
	"fmt"
)

// ActionKind tags an Action.
type ActionKind string

const (
	Guard   ActionKind = "guard"
	Move    ActionKind = "move"
	Attack  ActionKind = "attack"
	Suicide ActionKind = "suicide"
)

// Action is the single decision a unit hands back to the engine each turn.
// Target is meaningful only for Move and Attack.
type Action struct {
	Kind   ActionKind
	Target Location
}

func GuardAction() Action                 { return Action{Kind: Guard} }
func SuicideAction() Action               { return Action{Kind: Suicide} }
func MoveAction(dest Location) Action     { return Action{Kind: Move, Target: dest} }
func AttackAction(target Location) Action { return Action{Kind: Attack, Target: target} }

func (a Action) String() string {
	switch a.Kind {
	case Move, Attack:
		return fmt.Sprintf("%s %s", a.Kind, a.Target)
	}
	return string(a.Kind)
}

// MarshalJSON encodes the engine's list form: ["guard"], ["suicide"],
// ["move", [x, y]] or ["attack", [x, y]].
func (a Action) MarshalJSON() ([]byte, error) {
	switch a.Kind {
	case Guard, Suicide:
		return json.Marshal([]any{a.Kind})
	case Move, Attack:
		return json.Marshal([]any{a.Kind, a.Target})
	}
	return nil, fmt.Errorf("marshal action: unknown kind %q", a.Kind)
}

func (a *Action) UnmarshalJSON(b []byte) error {
	var parts []json.RawMessage
	if err := json.Unmarshal(b, &parts); err != nil {
		return fmt.Errorf("unmarshal action: %w", err)
	}
	if len(parts) == 0 {
		return fmt.Errorf("unmarshal action: empty")
	}
	var kind ActionKind
	if err := json.Unmarshal(parts[0], &kind); err != nil {
		return fmt.Errorf("unmarshal action kind: %w", err)
	}
	switch kind {
	case Guard, Suicide:
		*a = Action{Kind: kind}
		return nil
	case Move, Attack:
		if len(parts) != 2 {
			return fmt.Errorf("unmarshal action: %s needs a target", kind)
		}
		var target Location
		if err := json.Unmarshal(parts[1], &target); err != nil {
			return fmt.Errorf("unmarshal action target: %w", err)
		}
		*a = Action{Kind: kind, Target: target}
		return nil
	}
	return fmt.Errorf("unmarshal action: unknown kind %q", kind)
}
