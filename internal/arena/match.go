package arena

import (
	"fmt"
	"math"
	"math/rand"
)

// Pilot turns one sensor snapshot into a raw control output. Evaluation
// must be read-only; matches share pilots across goroutines.
type Pilot interface {
	Decide(s Sensors) float64
}

// PilotFunc adapts a plain function to the Pilot interface.
type PilotFunc func(Sensors) float64

func (f PilotFunc) Decide(s Sensors) float64 { return f(s) }

// Outcome is a match result relative to fitness credit. A side wins only
// if it is alive and the opponent is dead at termination; mutual survival
// and simultaneous death are draws.
type Outcome int

const (
	Draw Outcome = iota
	WinA
	WinB
)

func (o Outcome) String() string {
	switch o {
	case WinA:
		return "win_a"
	case WinB:
		return "win_b"
	default:
		return "draw"
	}
}

// MatchConfig bounds one simulated duel.
type MatchConfig struct {
	Side        float64
	SpawnMargin float64
	MaxSteps    int
}

func (c MatchConfig) validate() error {
	if c.Side <= 0 {
		return fmt.Errorf("arena side must be > 0, got %v", c.Side)
	}
	if c.SpawnMargin < 0 || 2*c.SpawnMargin > c.Side {
		return fmt.Errorf("spawn margin must be in [0, side/2], got %v", c.SpawnMargin)
	}
	if c.MaxSteps < 0 {
		return fmt.Errorf("step budget must be >= 0, got %d", c.MaxSteps)
	}
	return nil
}

// RunMatch spawns both robots uniformly inside the margin with random
// headings, then ticks the duel for up to the step budget. Each tick both
// robots sense from pre-tick positions and decide independently; A acts
// before B, so B's shot can react to A's already-updated position within
// the same tick. The asymmetry is deliberate and load-bearing for
// reproducing results. The match ends early once either health reaches
// zero. A zero step budget is a draw by construction.
func RunMatch(rng *rand.Rand, a, b Pilot, cfg MatchConfig) (Outcome, error) {
	if rng == nil {
		return Draw, fmt.Errorf("random source is required")
	}
	if a == nil || b == nil {
		return Draw, fmt.Errorf("both pilots are required")
	}
	if err := cfg.validate(); err != nil {
		return Draw, err
	}

	robotA := spawn(rng, cfg)
	robotB := spawn(rng, cfg)

	for step := 0; step < cfg.MaxSteps; step++ {
		robotA.Sense(robotB, cfg.Side)
		robotB.Sense(robotA, cfg.Side)

		outA := a.Decide(robotA.Sensors)
		outB := b.Decide(robotB.Sensors)

		robotA.Apply(ActionFor(outA), robotB, cfg.Side)
		robotB.Apply(ActionFor(outB), robotA, cfg.Side)

		if robotA.Health <= 0 || robotB.Health <= 0 {
			break
		}
	}

	switch {
	case robotA.Health > 0 && robotB.Health <= 0:
		return WinA, nil
	case robotB.Health > 0 && robotA.Health <= 0:
		return WinB, nil
	default:
		return Draw, nil
	}
}

func spawn(rng *rand.Rand, cfg MatchConfig) *Robot {
	lo := cfg.SpawnMargin
	span := cfg.Side - 2*cfg.SpawnMargin
	x := lo + rng.Float64()*span
	y := lo + rng.Float64()*span
	return NewRobot(x, y, rng.Float64()*2*math.Pi)
}
