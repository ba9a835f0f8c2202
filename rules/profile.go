package rules

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/nstehr/goose/model"
)

// Planning modes. Team mode plans every friendly unit in one pass with
// shared reservations; solo mode decides each unit on its own.
const (
	ModeTeam = "team"
	ModeSolo = "solo"
)

var ErrUnknownMode = errors.New("unknown planning mode")

// Profile holds every tunable constant the rules read. Profiles are
// compiled into a rule set by CompileProfile; the engine never reads
// them again during a turn.
type Profile struct {
	Name string `yaml:"name" json:"name"`
	Mode string `yaml:"mode" json:"mode"`

	MaxHP     int `yaml:"max_hp" json:"max_hp"`
	AvgDamage int `yaml:"avg_damage" json:"avg_damage"`

	// SuicideDamage is what a self-destruct deals to every adjacent unit.
	SuicideDamage int `yaml:"suicide_damage" json:"suicide_damage"`
	// SuicideHP is the hp below which exploding costs us nothing worth keeping.
	SuicideHP int `yaml:"suicide_hp" json:"suicide_hp"`
	// EnemySuicideHP is the hp at or below which an adjacent enemy is
	// expected to self-destruct.
	EnemySuicideHP int `yaml:"enemy_suicide_hp" json:"enemy_suicide_hp"`
	// SuicideTurnLimit stops low-hp suicides in the solo chain from this
	// turn on. Zero means no limit.
	SuicideTurnLimit int `yaml:"suicide_turn_limit" json:"suicide_turn_limit"`

	SpawnCadence  int `yaml:"spawn_cadence" json:"spawn_cadence"`
	ChaseDistance int `yaml:"chase_distance" json:"chase_distance"`

	ScoreRadius        int     `yaml:"score_radius" json:"score_radius"`
	OverstackAllies    int     `yaml:"overstack_allies" json:"overstack_allies"`
	AttackBonus        float64 `yaml:"attack_bonus" json:"attack_bonus"`
	UnreachablePenalty float64 `yaml:"unreachable_penalty" json:"unreachable_penalty"`
	RallyWeight        float64 `yaml:"rally_weight" json:"rally_weight"`

	// Rally is the gathering point. nil means the centre of the grid.
	Rally *model.Location `yaml:"-" json:"-"`
	// RallyXY is the YAML form of Rally.
	RallyXY []int `yaml:"rally,omitempty" json:"rally,omitempty"`
}

// DefaultProfile is the goose tuning: team planning around the arena centre.
func DefaultProfile() Profile {
	return Profile{
		Name:               "goose",
		Mode:               ModeTeam,
		MaxHP:              50,
		AvgDamage:          9,
		SuicideDamage:      15,
		SuicideHP:          7,
		EnemySuicideHP:     8,
		SpawnCadence:       10,
		ChaseDistance:      5,
		ScoreRadius:        4,
		OverstackAllies:    4,
		AttackBonus:        100,
		UnreachablePenalty: 1000,
		RallyWeight:        2,
	}
}

// FryProfile is the older single-unit bot: the solo rule chain, no
// overstack discount, and no low-hp suicides late in the game.
func FryProfile() Profile {
	p := DefaultProfile()
	p.Name = "fry"
	p.Mode = ModeSolo
	p.OverstackAllies = 8
	p.SuicideTurnLimit = 90
	return p
}

// Profiles lists the built-in profiles by name.
func Profiles() map[string]Profile {
	return map[string]Profile{
		"goose": DefaultProfile(),
		"fry":   FryProfile(),
	}
}

// Validate clamps every value into its working range. It fails only on
// an unknown mode.
func (p *Profile) Validate() error {
	if p.Mode == "" {
		p.Mode = ModeTeam
	}
	if p.Mode != ModeTeam && p.Mode != ModeSolo {
		return fmt.Errorf("%w: %q", ErrUnknownMode, p.Mode)
	}
	p.MaxHP = clampInt(p.MaxHP, 1, 1000)
	p.AvgDamage = clampInt(p.AvgDamage, 1, p.MaxHP)
	p.SuicideDamage = clampInt(p.SuicideDamage, 0, p.MaxHP)
	p.SuicideHP = clampInt(p.SuicideHP, 0, p.MaxHP)
	p.EnemySuicideHP = clampInt(p.EnemySuicideHP, 0, p.MaxHP)
	p.SuicideTurnLimit = clampInt(p.SuicideTurnLimit, 0, 1000)
	p.SpawnCadence = clampInt(p.SpawnCadence, 1, 1000)
	p.ChaseDistance = clampInt(p.ChaseDistance, 0, 50)
	p.ScoreRadius = clampInt(p.ScoreRadius, 1, 8)
	p.OverstackAllies = clampInt(p.OverstackAllies, 1, 8)
	p.AttackBonus = clamp(p.AttackBonus, 0, 1e6)
	p.UnreachablePenalty = clamp(p.UnreachablePenalty, 0, 1e6)
	p.RallyWeight = clamp(p.RallyWeight, 0, 1e3)
	if len(p.RallyXY) == 2 {
		l := model.Loc(p.RallyXY[0], p.RallyXY[1])
		p.Rally = &l
	}
	return nil
}

// RallyPoint resolves the gathering point against g.
func (p Profile) RallyPoint(g *model.Grid) model.Location {
	if p.Rally != nil {
		return *p.Rally
	}
	return g.Center()
}

// LoadProfile reads a YAML profile. Keys missing from the file keep the
// values of the built-in profile named by the file's "name" key, or of
// DefaultProfile.
func LoadProfile(path string) (Profile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("read profile: %w", err)
	}
	return ParseProfile(raw)
}

// ParseProfile is LoadProfile on an in-memory document.
func ParseProfile(raw []byte) (Profile, error) {
	var head struct {
		Name string `yaml:"name"`
	}
	if err := yaml.Unmarshal(raw, &head); err != nil {
		return Profile{}, fmt.Errorf("parse profile: %w", err)
	}
	p, ok := Profiles()[head.Name]
	if !ok {
		p = DefaultProfile()
	}
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return Profile{}, fmt.Errorf("parse profile: %w", err)
	}
	if err := p.Validate(); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// clampInt restricts v to [lo, hi].
func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// clamp restricts v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
