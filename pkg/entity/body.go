// pkg/entity/body.go
package entity

import (
	"github.com/opd-ai/go-starship/pkg/config"
	"github.com/opd-ai/go-starship/pkg/physics"
)

// DamageState classifies a body's condition. Healthy, Damaged and
// Critical are pure functions of health percentage; Exploding, Debris and
// Respawning form the timed destruction timeline.
type DamageState int

const (
	StateHealthy DamageState = iota
	StateDamaged
	StateCritical
	StateExploding
	StateDebris
	StateRespawning
)

// String returns the lowercase name used in snapshots and logs
func (s DamageState) String() string {
	switch s {
	case StateHealthy:
		return "healthy"
	case StateDamaged:
		return "damaged"
	case StateCritical:
		return "critical"
	case StateExploding:
		return "exploding"
	case StateDebris:
		return "debris"
	case StateRespawning:
		return "respawning"
	default:
		return "unknown"
	}
}

// Damage-state boundaries as health percentages
const (
	damagedBelow  = 70.0
	criticalBelow = 30.0
)

// Body represents a destructible navigable body: a planet, moon or
// station that can take damage, explode, linger as debris and respawn.
// All timestamps are accumulated simulation seconds, never wall clock.
type Body struct {
	ID       ID
	Name     string
	Position physics.Vector3
	Radius   float64

	MaxHealth float64
	Health    float64
	State     DamageState

	DestroyedAt float64
	RespawnAt   float64

	ExplosionProgress float64
	RespawnProgress   float64

	timeline config.LifecycleConfig
}

// NewBody creates a body at full health
func NewBody(name string, position physics.Vector3, radius, maxHealth float64, timeline config.LifecycleConfig) *Body {
	return &Body{
		Name:      name,
		Position:  position,
		Radius:    radius,
		MaxHealth: maxHealth,
		Health:    maxHealth,
		State:     StateHealthy,
		timeline:  timeline,
	}
}

// CanTarget reports whether the body is a valid new target lock. Bodies
// in the destruction timeline are never targetable and never expose
// positive health.
func (b *Body) CanTarget() bool {
	return b.State == StateHealthy || b.State == StateDamaged || b.State == StateCritical
}

// HealthPercent returns health as a percentage of max
func (b *Body) HealthPercent() float64 {
	if b.MaxHealth <= 0 {
		return 0
	}
	return physics.Clamp(b.Health/b.MaxHealth*100, 0, 100)
}

// Collider returns the body's spherical collision shape
func (b *Body) Collider() physics.Sphere {
	return physics.Sphere{Center: b.Position, Radius: b.Radius}
}

// ApplyDamage applies a damage amount at simulation time now and returns
// whether this call destroyed the body. Damage is rejected once the body
// has entered the destruction timeline. Out-of-range amounts are clamped
// rather than propagated.
func (b *Body) ApplyDamage(amount, now float64) bool {
	if !b.CanTarget() {
		return false
	}
	if amount < 0 {
		amount = 0
	}

	b.Health = physics.Clamp(b.Health-amount, 0, b.MaxHealth)
	if b.Health > 0 {
		b.reclassify()
		return false
	}

	// One-time transition: record the timeline and start exploding.
	b.State = StateExploding
	b.DestroyedAt = now
	b.RespawnAt = now + b.timeline.ExplosionDuration + b.timeline.DebrisDuration
	b.ExplosionProgress = 0
	b.RespawnProgress = 0
	return true
}

// Advance moves the destruction timeline forward by dt at simulation time
// now and returns whether the body finished respawning this tick. The
// caller publishes the respawn notification exactly once per cycle.
func (b *Body) Advance(dt, now float64) bool {
	switch b.State {
	case StateExploding:
		b.ExplosionProgress += dt / b.timeline.ExplosionDuration
		if b.ExplosionProgress >= 1 {
			b.ExplosionProgress = 1
			b.State = StateDebris
		}
	case StateDebris:
		if now >= b.RespawnAt {
			b.State = StateRespawning
			b.RespawnProgress = 0
		}
	case StateRespawning:
		b.RespawnProgress += dt / b.timeline.RespawnDuration
		if b.RespawnProgress >= 1 {
			b.reset()
			return true
		}
	}
	return false
}

// reset restores the body to full health and clears the timeline
func (b *Body) reset() {
	b.Health = b.MaxHealth
	b.State = StateHealthy
	b.DestroyedAt = 0
	b.RespawnAt = 0
	b.ExplosionProgress = 0
	b.RespawnProgress = 0
}

// reclassify recomputes the health-bucket state. No hysteresis: the
// classification is purely a function of current health percentage.
func (b *Body) reclassify() {
	pct := b.HealthPercent()
	switch {
	case pct > damagedBelow:
		b.State = StateHealthy
	case pct > criticalBelow:
		b.State = StateDamaged
	default:
		b.State = StateCritical
	}
}
