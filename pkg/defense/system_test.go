// pkg/defense/system_test.go
package defense

import (
	"testing"

	"github.com/opd-ai/go-starship/pkg/config"
)

func testDefenseConfig() config.DefenseConfig {
	return config.DefenseConfig{
		ShieldRechargeRate: 8,
		ShieldHitCooldown:  4.0,
		ShieldCritical:     25,
		ShieldLow:          60,
		HullCritical:       50,
		GreenHysteresis:    10,
		CollisionDamage:    15,
		CollisionCooldown:  1.0,
	}
}

func TestSystem_StartsFull(t *testing.T) {
	s := NewSystem(testDefenseConfig())

	state := s.Snapshot()
	for q, v := range state.Shields {
		if v != 100 {
			t.Errorf("shield %d = %v, want 100", q, v)
		}
	}
	if state.Hull != 100 {
		t.Errorf("hull = %v, want 100", state.Hull)
	}
	if state.Alert != AlertGreen {
		t.Errorf("alert = %v, want green", state.Alert)
	}
}

func TestSystem_DamageAbsorbedByQuadrant(t *testing.T) {
	s := NewSystem(testDefenseConfig())

	overflow := s.ApplyDamage(QuadrantFore, 30, 1)
	if overflow != 0 {
		t.Errorf("overflow = %v, want 0", overflow)
	}
	if got := s.Shield(QuadrantFore); got != 70 {
		t.Errorf("fore shield = %v, want 70", got)
	}
	// Other quadrants untouched
	for _, q := range []Quadrant{QuadrantAft, QuadrantPort, QuadrantStarboard} {
		if got := s.Shield(q); got != 100 {
			t.Errorf("%v shield = %v, want 100", q, got)
		}
	}
	if s.Hull() != 100 {
		t.Errorf("hull = %v, want untouched", s.Hull())
	}
}

func TestSystem_OverflowReachesHull(t *testing.T) {
	s := NewSystem(testDefenseConfig())

	s.ApplyDamage(QuadrantPort, 90, 1)
	overflow := s.ApplyDamage(QuadrantPort, 40, 2)

	if overflow != 30 {
		t.Errorf("overflow = %v, want 30", overflow)
	}
	if got := s.Shield(QuadrantPort); got != 0 {
		t.Errorf("port shield = %v, want 0", got)
	}
	if s.Hull() != 70 {
		t.Errorf("hull = %v, want 70", s.Hull())
	}
}

func TestSystem_HullClampedAtZero(t *testing.T) {
	s := NewSystem(testDefenseConfig())

	s.ApplyDamage(QuadrantAft, 100, 1)
	s.ApplyDamage(QuadrantAft, 500, 2)

	if s.Hull() != 0 {
		t.Errorf("hull = %v, want clamped at 0", s.Hull())
	}
}

func TestSystem_NegativeDamageClamped(t *testing.T) {
	s := NewSystem(testDefenseConfig())

	if overflow := s.ApplyDamage(QuadrantFore, -20, 1); overflow != 0 {
		t.Errorf("overflow = %v, want 0", overflow)
	}
	if got := s.Shield(QuadrantFore); got != 100 {
		t.Errorf("fore shield = %v after negative damage, want 100", got)
	}
}

func TestSystem_InvalidQuadrantRoutedToFore(t *testing.T) {
	s := NewSystem(testDefenseConfig())

	s.ApplyDamage(Quadrant(17), 10, 1)
	if got := s.Shield(QuadrantFore); got != 90 {
		t.Errorf("fore shield = %v, want 90 after out-of-range quadrant", got)
	}
}

func TestSystem_RechargeGatedByHitCooldown(t *testing.T) {
	s := NewSystem(testDefenseConfig())
	s.ApplyDamage(QuadrantFore, 50, 10)

	// Inside the 4 second window: no recharge
	s.Update(1.0, 11)
	if got := s.Shield(QuadrantFore); got != 50 {
		t.Errorf("fore shield = %v during cooldown, want 50", got)
	}

	// A fresh hit restarts the window
	s.ApplyDamage(QuadrantFore, 10, 13)
	s.Update(1.0, 14)
	if got := s.Shield(QuadrantFore); got != 40 {
		t.Errorf("fore shield = %v after re-hit, want 40", got)
	}

	// Past the window: 8 points per second
	s.Update(1.0, 17.5)
	if got := s.Shield(QuadrantFore); got != 48 {
		t.Errorf("fore shield = %v after cooldown, want 48", got)
	}
}

func TestSystem_RechargeClampedAtMax(t *testing.T) {
	s := NewSystem(testDefenseConfig())
	s.ApplyDamage(QuadrantStarboard, 5, 0)

	for i := 0; i < 100; i++ {
		s.Update(1.0, 10+float64(i))
	}
	if got := s.Shield(QuadrantStarboard); got != 100 {
		t.Errorf("starboard shield = %v, want clamped at 100", got)
	}
}

func TestSystem_AlertRedOnCriticalShield(t *testing.T) {
	s := NewSystem(testDefenseConfig())

	s.ApplyDamage(QuadrantFore, 80, 1)
	s.Update(0.1, 1.1)

	if s.Alert() != AlertRed {
		t.Errorf("alert = %v with a quadrant at 20, want red", s.Alert())
	}
}

func TestSystem_AlertRedOnCriticalHull(t *testing.T) {
	s := NewSystem(testDefenseConfig())

	// Drain one quadrant then overflow into the hull below 50. The
	// drained quadrant recharges before assertion so only hull drives red.
	s.ApplyDamage(QuadrantAft, 100, 0)
	s.ApplyDamage(QuadrantAft, 55, 1)
	for i := 0; i < 20; i++ {
		s.Update(1.0, 10+float64(i))
	}
	if s.Hull() != 45 {
		t.Fatalf("hull = %v, want 45", s.Hull())
	}
	if s.Alert() != AlertRed {
		t.Errorf("alert = %v with hull at 45, want red", s.Alert())
	}
}

func TestSystem_AlertYellowOnCombat(t *testing.T) {
	s := NewSystem(testDefenseConfig())

	s.SetCombat(true)
	s.Update(0.1, 1)
	if s.Alert() != AlertYellow {
		t.Errorf("alert = %v in combat, want yellow", s.Alert())
	}

	s.SetCombat(false)
	s.Update(0.1, 2)
	if s.Alert() != AlertGreen {
		t.Errorf("alert = %v after combat with full shields, want green", s.Alert())
	}
}

func TestSystem_GreenRequiresHysteresisMargin(t *testing.T) {
	s := NewSystem(testDefenseConfig())

	// Push one quadrant below the low threshold: yellow
	s.ApplyDamage(QuadrantPort, 45, 0)
	s.Update(0.1, 0.1)
	if s.Alert() != AlertYellow {
		t.Fatalf("alert = %v with a quadrant at 55, want yellow", s.Alert())
	}

	// Recharge to just above the threshold but inside the hysteresis
	// band: stays yellow
	for s.Shield(QuadrantPort) < 62 {
		s.Update(0.1, 10+s.Shield(QuadrantPort))
	}
	if s.Alert() != AlertYellow {
		t.Errorf("alert = %v inside hysteresis band, want yellow", s.Alert())
	}

	// Clear the band: green
	for s.Shield(QuadrantPort) < 75 {
		s.Update(0.1, 100+s.Shield(QuadrantPort))
	}
	if s.Alert() != AlertGreen {
		t.Errorf("alert = %v past hysteresis band, want green", s.Alert())
	}
}

func TestSystem_AlertDoesNotFlickerAtBoundary(t *testing.T) {
	s := NewSystem(testDefenseConfig())

	// Land a quadrant just under the low threshold
	s.ApplyDamage(QuadrantFore, 41, 0)
	s.Update(0.1, 0.1)
	if s.Alert() != AlertYellow {
		t.Fatalf("alert = %v with a quadrant at 59, want yellow", s.Alert())
	}

	// Oscillating a fraction around the threshold must not toggle the
	// level back and forth: once yellow, green needs the full margin
	transitions := 0
	prev := s.Alert()
	now := 10.0
	for i := 0; i < 50; i++ {
		now += 0.1
		s.Update(0.1, now)
		if s.Alert() != prev {
			transitions++
			prev = s.Alert()
		}
	}
	if transitions > 1 {
		t.Errorf("alert changed %d times during steady recharge, want at most 1", transitions)
	}
}
