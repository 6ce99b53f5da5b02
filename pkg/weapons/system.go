// Package weapons implements target selection, the phaser bank with its
// heat model, and the torpedo launcher with finite ammo and reload
// timers. Damage flows from here to destructible bodies; destruction
// notifications are published exactly once per destruction.
package weapons

import (
	"sort"

	"github.com/opd-ai/go-starship/pkg/config"
	"github.com/opd-ai/go-starship/pkg/entity"
	"github.com/opd-ai/go-starship/pkg/event"
	"github.com/opd-ai/go-starship/pkg/physics"
)

// ShipPosition provides the firing ship's current position
type ShipPosition interface {
	Position() physics.Vector3
}

// TargetLock is the current weapons lock: an ID resolved against the
// body registry each tick, plus the distance and world position cached
// at the last refresh.
type TargetLock struct {
	ID       entity.ID
	Name     string
	Distance float64
	Position physics.Vector3
}

// LockInfo is the read-only lock snapshot exposed to collaborators
type LockInfo struct {
	ID       entity.ID
	Name     string
	Distance float64
}

// ProjectileInfo is the read-only projectile snapshot
type ProjectileInfo struct {
	ID       uint64
	Position physics.Vector3
}

// State is the per-tick weapons snapshot
type State struct {
	Heat        float64
	Overheated  bool
	Firing      bool
	Ammo        int
	Reloading   bool
	Target      *LockInfo
	Projectiles []ProjectileInfo
}

const maxHeat = 100.0

// System is the targeting and weapons subsystem
type System struct {
	cfg      config.WeaponsConfig
	ship     ShipPosition
	registry *entity.Registry
	bus      *event.Bus

	lock *TargetLock

	heat       float64
	overheated bool
	firing     bool

	ammo       int
	reloading  bool
	reloadLeft float64

	projectiles []*Projectile
	nextShotID  uint64

	// set while warp is in any non-idle phase; every operation and the
	// per-tick update are no-ops for the duration
	lockout bool
}

// NewSystem creates a weapons system at full ammo
func NewSystem(cfg config.WeaponsConfig, ship ShipPosition, registry *entity.Registry, bus *event.Bus) *System {
	ammo := cfg.StartingTorpedoes
	if ammo > cfg.MaxTorpedoes {
		ammo = cfg.MaxTorpedoes
	}
	return &System{
		cfg:        cfg,
		ship:       ship,
		registry:   registry,
		bus:        bus,
		ammo:       ammo,
		nextShotID: 1,
	}
}

// SetLockout engages or releases the warp weapons lockout. Engaging it
// force-stops the phaser beam.
func (s *System) SetLockout(active bool) {
	if active && !s.lockout {
		s.firing = false
	}
	s.lockout = active
}

// CycleTarget selects the next valid body by distance from the ship:
// with no lock it picks the nearest, otherwise the next-farthest,
// wrapping back to the nearest after the farthest. A no-op with no valid
// bodies or while locked out.
func (s *System) CycleTarget() {
	if s.lockout {
		return
	}
	candidates := s.registry.Targetable()
	if len(candidates) == 0 {
		return
	}

	origin := s.ship.Position()
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Position.Distance(origin) < candidates[j].Position.Distance(origin)
	})

	next := candidates[0]
	if s.lock != nil {
		for i, body := range candidates {
			if body.ID == s.lock.ID {
				next = candidates[(i+1)%len(candidates)]
				break
			}
		}
	}
	s.setLock(next, origin)
}

// StartPhasers begins continuous phaser fire. It reports whether the
// beam is live: locked out, overheated, or no valid target are rejected.
func (s *System) StartPhasers() bool {
	if s.lockout || s.overheated || s.lock == nil {
		return false
	}
	s.firing = true
	return true
}

// StopPhasers ends phaser fire. Idempotent: stopping an idle beam
// changes nothing.
func (s *System) StopPhasers() {
	if s.lockout {
		return
	}
	s.firing = false
}

// FireTorpedo launches one torpedo at the locked target and reports
// whether the shot was accepted. Zero ammo, a reload in progress, no
// target lock, or the warp lockout all reject the shot.
func (s *System) FireTorpedo() bool {
	if s.lockout || s.lock == nil || s.ammo <= 0 || s.reloading {
		return false
	}

	s.ammo--
	s.reloading = true
	s.reloadLeft = s.cfg.TorpedoReloadTime

	shot := &Projectile{
		ID:       s.nextShotID,
		TargetID: s.lock.ID,
		Position: s.ship.Position(),
		Aim:      s.lock.Position, // captured at launch, never re-homed
		Speed:    s.cfg.TorpedoSpeed,
	}
	s.nextShotID++
	s.projectiles = append(s.projectiles, shot)

	s.bus.Publish(&event.BaseEvent{EventType: event.TorpedoFired, Source: shot})
	return true
}

// Update advances heat, reload timers and in-flight torpedoes by dt at
// simulation time now. Frozen entirely while the warp lockout is active,
// so warp travel leaves the weapons snapshot untouched.
func (s *System) Update(dt, now float64) {
	if s.lockout {
		return
	}

	s.refreshLock()
	s.updatePhasers(dt, now)
	s.updateReload(dt)
	s.updateProjectiles(dt, now)
}

// refreshLock re-resolves the lock against the registry. A destroyed or
// out-of-range body degrades to "no target" rather than erroring.
func (s *System) refreshLock() {
	if s.lock == nil {
		return
	}
	body := s.registry.Get(s.lock.ID)
	if body == nil || !body.CanTarget() {
		s.dropLock()
		return
	}
	origin := s.ship.Position()
	distance := body.Position.Distance(origin)
	if distance > s.cfg.MaxLockRange {
		s.dropLock()
		return
	}
	s.lock.Distance = distance
	s.lock.Position = body.Position
}

// updatePhasers accumulates heat and dispatches continuous damage while
// the beam is live, and cools the bank otherwise
func (s *System) updatePhasers(dt, now float64) {
	if s.firing && s.lock != nil && !s.overheated {
		s.heat += s.cfg.PhaserHeatRate * dt
		s.applyDamage(s.lock.ID, s.cfg.PhaserDamageRate*dt, now)

		if s.heat >= maxHeat {
			s.heat = maxHeat
			s.overheated = true
			s.firing = false
		}
		return
	}

	s.heat = physics.Clamp(s.heat-s.cfg.PhaserCoolRate*dt, 0, maxHeat)
	if s.overheated && s.heat <= s.cfg.PhaserRestartHeat {
		s.overheated = false
	}
}

// updateReload counts the reload timer down and replenishes one unit on
// completion, capped at the magazine size
func (s *System) updateReload(dt float64) {
	if !s.reloading {
		return
	}
	s.reloadLeft -= dt
	if s.reloadLeft > 0 {
		return
	}
	s.reloading = false
	s.reloadLeft = 0
	if s.ammo < s.cfg.MaxTorpedoes {
		s.ammo++
	}
}

// updateProjectiles advances in-flight torpedoes toward their captured
// aim points. A torpedo is removed on impact, dispatching its damage, or
// on target loss without damage.
func (s *System) updateProjectiles(dt, now float64) {
	kept := s.projectiles[:0]
	for _, shot := range s.projectiles {
		body := s.registry.Get(shot.TargetID)
		if body == nil || !body.CanTarget() {
			continue // target loss
		}
		if shot.advance(dt) {
			s.applyDamage(shot.TargetID, s.cfg.TorpedoDamage, now)
			continue
		}
		kept = append(kept, shot)
	}
	s.projectiles = kept
}

// applyDamage routes a damage amount to a body and publishes the
// one-time destruction notification when this hit destroys it
func (s *System) applyDamage(id entity.ID, amount, now float64) {
	body := s.registry.Get(id)
	if body == nil {
		return
	}
	if body.ApplyDamage(amount, now) {
		s.bus.Publish(event.NewBodyEvent(event.BodyDestroyed, s, uint64(id), body.Name))
	}
}

// setLock establishes a lock on a body
func (s *System) setLock(body *entity.Body, origin physics.Vector3) {
	s.lock = &TargetLock{
		ID:       body.ID,
		Name:     body.Name,
		Distance: body.Position.Distance(origin),
		Position: body.Position,
	}
}

// dropLock clears the lock and stops the beam; a beam with no target
// has nothing to dispatch damage to
func (s *System) dropLock() {
	s.lock = nil
	s.firing = false
}

// Firing reports whether the phaser beam is live
func (s *System) Firing() bool {
	return s.firing
}

// InFlight returns the number of torpedoes currently in flight
func (s *System) InFlight() int {
	return len(s.projectiles)
}

// Snapshot returns the per-tick read-only weapons state
func (s *System) Snapshot() State {
	state := State{
		Heat:       s.heat,
		Overheated: s.overheated,
		Firing:     s.firing,
		Ammo:       s.ammo,
		Reloading:  s.reloading,
	}
	if s.lock != nil {
		state.Target = &LockInfo{ID: s.lock.ID, Name: s.lock.Name, Distance: s.lock.Distance}
	}
	if len(s.projectiles) > 0 {
		state.Projectiles = make([]ProjectileInfo, 0, len(s.projectiles))
		for _, shot := range s.projectiles {
			state.Projectiles = append(state.Projectiles, ProjectileInfo{ID: shot.ID, Position: shot.Position})
		}
	}
	return state
}
