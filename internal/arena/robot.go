package arena

import "math"

// Sensor names bound to expression-tree input terminals.
const (
	SensorEnemyDistance  = "enemy_distance"
	SensorEnemyDirection = "enemy_direction"
	SensorHealth         = "health"
	SensorAmmo           = "ammo"
	SensorWallDistance   = "wall_distance"
)

// SensorNames lists the five sensors in binding order.
func SensorNames() []string {
	return []string{
		SensorEnemyDistance,
		SensorEnemyDirection,
		SensorHealth,
		SensorAmmo,
		SensorWallDistance,
	}
}

const (
	StartHealth  = 100
	MaxAmmo      = 50
	ReloadAmount = 10
	ShotDamage   = 20
	ShotRange    = 50.0
	ShotSpread   = math.Pi / 8
	MoveStep     = 5.0
	TurnStep     = math.Pi / 8
)

// Action is one of the six discrete robot behaviors. The order fixes the
// output-to-action mapping.
type Action int

const (
	MoveForward Action = iota
	TurnLeft
	TurnRight
	Shoot
	Reload
	DoNothing
)

// NoAction marks a robot that has not acted yet.
const NoAction Action = -1

func (a Action) String() string {
	switch a {
	case MoveForward:
		return "move_forward"
	case TurnLeft:
		return "turn_left"
	case TurnRight:
		return "turn_right"
	case Shoot:
		return "shoot"
	case Reload:
		return "reload"
	case DoNothing:
		return "do_nothing"
	default:
		return "none"
	}
}

// ActionFor maps a raw decision output to an action: floor(|out|) mod 6.
// Non-finite outputs, reachable through evolved arithmetic overflow, fall
// through to DoNothing so the mapping stays total.
func ActionFor(out float64) Action {
	if math.IsNaN(out) || math.IsInf(out, 0) {
		return DoNothing
	}
	return Action(int(math.Mod(math.Floor(math.Abs(out)), 6)))
}

// Sensors is one robot's view of the world at the top of a tick.
type Sensors struct {
	EnemyDistance  float64
	EnemyDirection float64
	Health         float64
	Ammo           float64
	WallDistance   float64
}

// Inputs binds the sensor values by name for tree evaluation.
func (s Sensors) Inputs() map[string]float64 {
	return map[string]float64{
		SensorEnemyDistance:  s.EnemyDistance,
		SensorEnemyDirection: s.EnemyDirection,
		SensorHealth:         s.Health,
		SensorAmmo:           s.Ammo,
		SensorWallDistance:   s.WallDistance,
	}
}

// Robot is one combatant. Health starts at 100 and has no upper cap; it
// may go negative, meaning dead. Ammo stays in [0, 50]. Heading is kept
// wrapped to [0, 2π).
type Robot struct {
	X, Y       float64
	Heading    float64
	Health     int
	Ammo       int
	LastAction Action
	Sensors    Sensors
}

func NewRobot(x, y, heading float64) *Robot {
	return &Robot{
		X:          x,
		Y:          y,
		Heading:    wrapAngle(heading),
		Health:     StartHealth,
		Ammo:       MaxAmmo,
		LastAction: NoAction,
	}
}

// Sense refreshes the sensor snapshot from the current positions of both
// robots: Euclidean distance and heading-relative direction to the
// opponent, own health and ammo, and the distance to the nearest of the
// four arena edges.
func (r *Robot) Sense(opponent *Robot, side float64) {
	dx := opponent.X - r.X
	dy := opponent.Y - r.Y
	r.Sensors = Sensors{
		EnemyDistance:  math.Hypot(dx, dy),
		EnemyDirection: wrapAngle(math.Atan2(dy, dx) - r.Heading),
		Health:         float64(r.Health),
		Ammo:           float64(r.Ammo),
		WallDistance:   min(r.X, side-r.X, r.Y, side-r.Y),
	}
}

// Apply executes one action against the opponent inside a square arena of
// the given side length.
func (r *Robot) Apply(action Action, opponent *Robot, side float64) {
	r.LastAction = action

	switch action {
	case MoveForward:
		// Moves that would leave the arena are rejected outright, not
		// clamped.
		newX := r.X + MoveStep*math.Cos(r.Heading)
		newY := r.Y + MoveStep*math.Sin(r.Heading)
		if newX >= 0 && newX <= side && newY >= 0 && newY <= side {
			r.X = newX
			r.Y = newY
		}

	case TurnLeft:
		r.Heading = wrapAngle(r.Heading - TurnStep)

	case TurnRight:
		r.Heading = wrapAngle(r.Heading + TurnStep)

	case Shoot:
		if r.Ammo <= 0 {
			return
		}
		r.Ammo--
		dx := opponent.X - r.X
		dy := opponent.Y - r.Y
		angleDiff := wrapAngle(math.Atan2(dy, dx) - r.Heading)
		if angleDiff < ShotSpread && math.Hypot(dx, dy) < ShotRange {
			opponent.Health -= ShotDamage
		}

	case Reload:
		r.Ammo = min(MaxAmmo, r.Ammo+ReloadAmount)

	case DoNothing:
	}
}

// wrapAngle normalizes an angle to [0, 2π).
func wrapAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}
