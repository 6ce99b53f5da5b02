// Package defense implements the ship's four shield quadrants, hull
// integrity, and the derived alert level. Damage is absorbed by the hit
// quadrant first; anything beyond its remaining capacity overflows to
// the hull. The alert level is recomputed from combined system state
// every tick, never stored-and-mutated ad hoc.
package defense

import (
	"math"

	"github.com/opd-ai/go-starship/pkg/config"
	"github.com/opd-ai/go-starship/pkg/physics"
)

// Quadrant identifies one shield facing
type Quadrant int

const (
	QuadrantFore Quadrant = iota
	QuadrantAft
	QuadrantPort
	QuadrantStarboard

	quadrantCount
)

// String returns the lowercase quadrant name
func (q Quadrant) String() string {
	switch q {
	case QuadrantFore:
		return "fore"
	case QuadrantAft:
		return "aft"
	case QuadrantPort:
		return "port"
	case QuadrantStarboard:
		return "starboard"
	default:
		return "unknown"
	}
}

// Alert is the derived combat-readiness level
type Alert int

const (
	AlertGreen Alert = iota
	AlertYellow
	AlertRed
)

// String returns the lowercase alert name used in snapshots and logs
func (a Alert) String() string {
	switch a {
	case AlertGreen:
		return "green"
	case AlertYellow:
		return "yellow"
	case AlertRed:
		return "red"
	default:
		return "unknown"
	}
}

const maxShield = 100.0

// State is the per-tick defense snapshot
type State struct {
	Shields [4]float64
	Hull    float64
	Alert   Alert
}

// System is the ship defense subsystem
type System struct {
	cfg config.DefenseConfig

	shields [quadrantCount]float64
	lastHit [quadrantCount]float64
	hull    float64
	alert   Alert

	// an active weapons/combat condition holds the alert at yellow or
	// above; set by the host each tick
	combat bool
}

// NewSystem creates a defense system at full shields and hull
func NewSystem(cfg config.DefenseConfig) *System {
	s := &System{
		cfg:  cfg,
		hull: 100,
	}
	for i := range s.shields {
		s.shields[i] = maxShield
		s.lastHit[i] = math.Inf(-1)
	}
	return s
}

// SetCombat records whether a weapons/combat condition is active this
// tick; it feeds the alert derivation
func (s *System) SetCombat(active bool) {
	s.combat = active
}

// ApplyDamage routes a damage packet through the given quadrant at
// simulation time now. The quadrant absorbs what it can (clamped at
// zero); the remainder overflows to hull integrity. Out-of-range damage
// amounts are clamped, never propagated. Returns the overflow that
// reached the hull.
func (s *System) ApplyDamage(q Quadrant, amount, now float64) float64 {
	if q < 0 || q >= quadrantCount {
		q = QuadrantFore
	}
	if amount < 0 {
		amount = 0
	}

	s.lastHit[q] = now

	absorbed := math.Min(s.shields[q], amount)
	s.shields[q] -= absorbed
	overflow := amount - absorbed
	if overflow > 0 {
		s.hull = physics.Clamp(s.hull-overflow, 0, 100)
	}
	return overflow
}

// Update recharges shields and re-derives the alert level. A quadrant
// recharges only after the hit cooldown window has passed.
func (s *System) Update(dt, now float64) {
	for i := range s.shields {
		if now-s.lastHit[i] >= s.cfg.ShieldHitCooldown {
			s.shields[i] = physics.Clamp(s.shields[i]+s.cfg.ShieldRechargeRate*dt, 0, maxShield)
		}
	}
	s.alert = s.deriveAlert()
}

// deriveAlert computes the alert from the worst contributing condition.
// Red and yellow assert immediately; returning to green requires every
// value to clear its threshold by the hysteresis margin, so the level
// cannot flicker at the boundary.
func (s *System) deriveAlert() Alert {
	if s.minShield() < s.cfg.ShieldCritical || s.hull < s.cfg.HullCritical {
		return AlertRed
	}
	if s.combat || s.minShield() < s.cfg.ShieldLow {
		return AlertYellow
	}
	if s.alert == AlertGreen {
		return AlertGreen
	}
	if s.minShield() >= s.cfg.ShieldLow+s.cfg.GreenHysteresis &&
		s.hull >= s.cfg.HullCritical+s.cfg.GreenHysteresis &&
		!s.combat {
		return AlertGreen
	}
	return AlertYellow
}

func (s *System) minShield() float64 {
	min := s.shields[0]
	for _, v := range s.shields[1:] {
		if v < min {
			min = v
		}
	}
	return min
}

// Alert returns the current derived alert level
func (s *System) Alert() Alert {
	return s.alert
}

// Hull returns current hull integrity in [0,100]
func (s *System) Hull() float64 {
	return s.hull
}

// Shield returns the current level of one quadrant
func (s *System) Shield(q Quadrant) float64 {
	if q < 0 || q >= quadrantCount {
		return 0
	}
	return s.shields[q]
}

// Snapshot returns the per-tick read-only defense state
func (s *System) Snapshot() State {
	state := State{
		Hull:  s.hull,
		Alert: s.alert,
	}
	copy(state.Shields[:], s.shields[:])
	return state
}
