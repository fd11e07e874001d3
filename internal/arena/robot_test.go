package arena

import (
	"math"
	"testing"
)

func TestActionForMappingIsTotal(t *testing.T) {
	cases := []struct {
		name string
		out  float64
		want Action
	}{
		{"zero", 0, MoveForward},
		{"fraction truncates", 0.9, MoveForward},
		{"positive", 3.2, Shoot},
		{"negative magnitude", -6.0, MoveForward},
		{"wraps", 7.9, TurnLeft},
		{"large", 6e9 + 4, Reload},
		{"nan", math.NaN(), DoNothing},
		{"positive inf", math.Inf(1), DoNothing},
		{"negative inf", math.Inf(-1), DoNothing},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ActionFor(tc.out); got != tc.want {
				t.Fatalf("ActionFor(%v): got=%s want=%s", tc.out, got, tc.want)
			}
		})
	}
}

func TestActionForAlwaysInRange(t *testing.T) {
	for out := -30.0; out < 30; out += 0.37 {
		a := ActionFor(out)
		if a < MoveForward || a > DoNothing {
			t.Fatalf("ActionFor(%v) out of range: %d", out, a)
		}
	}
}

func TestAmmoNeverLeavesBounds(t *testing.T) {
	r := NewRobot(100, 100, 0)
	other := NewRobot(150, 150, 0)

	// Empty the magazine and keep pulling the trigger.
	for i := 0; i < MaxAmmo+10; i++ {
		r.Apply(Shoot, other, 200)
		if r.Ammo < 0 || r.Ammo > MaxAmmo {
			t.Fatalf("ammo out of bounds after shoot %d: %d", i, r.Ammo)
		}
	}
	if r.Ammo != 0 {
		t.Fatalf("ammo after emptying: got=%d want=0", r.Ammo)
	}

	// Reload past the cap.
	for i := 0; i < 10; i++ {
		r.Apply(Reload, other, 200)
		if r.Ammo < 0 || r.Ammo > MaxAmmo {
			t.Fatalf("ammo out of bounds after reload %d: %d", i, r.Ammo)
		}
	}
	if r.Ammo != MaxAmmo {
		t.Fatalf("ammo after full reload: got=%d want=%d", r.Ammo, MaxAmmo)
	}
}

func TestMoveForwardRejectsArenaExit(t *testing.T) {
	other := NewRobot(100, 100, 0)

	// Heading 0 walks along +x; from x=198 the step to 203 leaves the
	// arena and the whole move is rejected.
	r := NewRobot(198, 100, 0)
	r.Apply(MoveForward, other, 200)
	if r.X != 198 || r.Y != 100 {
		t.Fatalf("boundary move applied: got=(%v,%v) want=(198,100)", r.X, r.Y)
	}

	r = NewRobot(190, 100, 0)
	r.Apply(MoveForward, other, 200)
	if r.X != 195 || r.Y != 100 {
		t.Fatalf("legal move: got=(%v,%v) want=(195,100)", r.X, r.Y)
	}
}

func TestTurnWrapsHeading(t *testing.T) {
	other := NewRobot(100, 100, 0)

	r := NewRobot(100, 100, 0)
	r.Apply(TurnLeft, other, 200)
	want := 2*math.Pi - TurnStep
	if math.Abs(r.Heading-want) > 1e-12 {
		t.Fatalf("turn left wrap: got=%v want=%v", r.Heading, want)
	}

	r = NewRobot(100, 100, 2*math.Pi-TurnStep/2)
	r.Apply(TurnRight, other, 200)
	want = TurnStep / 2
	if math.Abs(r.Heading-want) > 1e-12 {
		t.Fatalf("turn right wrap: got=%v want=%v", r.Heading, want)
	}
}

func TestShootHitFragment(t *testing.T) {
	// A at (60,100) heading 0, B at (100,100): distance 40 < 50 and
	// angular difference 0 < π/8, so one shot lands for 20 damage and
	// one round of ammo.
	a := NewRobot(60, 100, 0)
	b := NewRobot(100, 100, 0)

	a.Apply(Shoot, b, 200)

	if b.Health != StartHealth-ShotDamage {
		t.Fatalf("target health: got=%d want=%d", b.Health, StartHealth-ShotDamage)
	}
	if a.Ammo != MaxAmmo-1 {
		t.Fatalf("shooter ammo: got=%d want=%d", a.Ammo, MaxAmmo-1)
	}
}

func TestShootMisses(t *testing.T) {
	cases := []struct {
		name    string
		shooter *Robot
		target  *Robot
	}{
		{"out of range", NewRobot(60, 100, 0), NewRobot(140, 100, 0)},
		{"outside spread", NewRobot(60, 100, math.Pi / 2), NewRobot(100, 100, 0)},
		{"behind shooter", NewRobot(60, 100, math.Pi), NewRobot(100, 100, 0)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.shooter.Apply(Shoot, tc.target, 200)
			if tc.target.Health != StartHealth {
				t.Fatalf("unexpected damage: health=%d", tc.target.Health)
			}
			if tc.shooter.Ammo != MaxAmmo-1 {
				t.Fatalf("miss still consumes ammo: got=%d want=%d", tc.shooter.Ammo, MaxAmmo-1)
			}
		})
	}
}

func TestShootWithoutAmmoIsNoop(t *testing.T) {
	a := NewRobot(60, 100, 0)
	b := NewRobot(100, 100, 0)
	a.Ammo = 0

	a.Apply(Shoot, b, 200)

	if b.Health != StartHealth {
		t.Fatalf("dry fire dealt damage: health=%d", b.Health)
	}
	if a.Ammo != 0 {
		t.Fatalf("dry fire changed ammo: %d", a.Ammo)
	}
}

func TestSenseSnapshot(t *testing.T) {
	r := NewRobot(30, 80, math.Pi/2)
	opponent := NewRobot(30, 120, 0)

	r.Sense(opponent, 200)
	s := r.Sensors

	if s.EnemyDistance != 40 {
		t.Fatalf("enemy distance: got=%v want=40", s.EnemyDistance)
	}
	// Opponent sits straight up (+y); relative to a π/2 heading that is 0.
	if math.Abs(s.EnemyDirection) > 1e-12 {
		t.Fatalf("enemy direction: got=%v want=0", s.EnemyDirection)
	}
	if s.Health != StartHealth {
		t.Fatalf("health sensor: got=%v want=%d", s.Health, StartHealth)
	}
	if s.Ammo != MaxAmmo {
		t.Fatalf("ammo sensor: got=%v want=%d", s.Ammo, MaxAmmo)
	}
	// Nearest wall is the left edge at x=30.
	if s.WallDistance != 30 {
		t.Fatalf("wall distance: got=%v want=30", s.WallDistance)
	}
}

func TestSenseDirectionWraps(t *testing.T) {
	// Opponent along +x, robot heading just past +x on the left side:
	// the relative direction wraps to just below 2π instead of going
	// negative.
	r := NewRobot(50, 100, TurnStep)
	opponent := NewRobot(100, 100, 0)

	r.Sense(opponent, 200)
	want := 2*math.Pi - TurnStep
	if math.Abs(r.Sensors.EnemyDirection-want) > 1e-12 {
		t.Fatalf("wrapped direction: got=%v want=%v", r.Sensors.EnemyDirection, want)
	}
}

func TestInputsBinding(t *testing.T) {
	s := Sensors{EnemyDistance: 1, EnemyDirection: 2, Health: 3, Ammo: 4, WallDistance: 5}
	in := s.Inputs()

	want := map[string]float64{
		SensorEnemyDistance:  1,
		SensorEnemyDirection: 2,
		SensorHealth:         3,
		SensorAmmo:           4,
		SensorWallDistance:   5,
	}
	for name, value := range want {
		if in[name] != value {
			t.Fatalf("input %s: got=%v want=%v", name, in[name], value)
		}
	}
	if len(in) != len(SensorNames()) {
		t.Fatalf("input count: got=%d want=%d", len(in), len(SensorNames()))
	}
}
