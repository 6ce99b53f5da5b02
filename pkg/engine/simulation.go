// pkg/engine/simulation.go
package engine

import (
	"math"
	"time"

	"github.com/opd-ai/go-starship/pkg/config"
	"github.com/opd-ai/go-starship/pkg/defense"
	"github.com/opd-ai/go-starship/pkg/entity"
	"github.com/opd-ai/go-starship/pkg/event"
	"github.com/opd-ai/go-starship/pkg/flight"
	"github.com/opd-ai/go-starship/pkg/input"
	"github.com/opd-ai/go-starship/pkg/physics"
	"github.com/opd-ai/go-starship/pkg/warp"
	"github.com/opd-ai/go-starship/pkg/weapons"
)

// maxDeltaTime caps dt before any integration, preventing instability
// when the host stalls or is backgrounded
const maxDeltaTime = 0.1

// Simulation is the frame-synchronous core. The host calls Update once
// per tick with an immutable input snapshot; subsystems run fully, in
// fixed dependency order, with no concurrent mutation. All timed
// behavior compares against accumulated simulation seconds — the core
// never reads the wall clock inside a tick.
type Simulation struct {
	Config   *config.SimConfig
	EventBus *event.Bus

	registry *entity.Registry
	flight   *flight.Controller
	drive    *warp.Drive
	weapons  *weapons.System
	defense  *defense.System

	tracker input.Tracker

	elapsed     float64
	currentTick uint64
	lastUpdate  time.Time

	lastCollision map[entity.ID]float64
}

// NewSimulation builds a simulation from configuration: one destructible
// body per galaxy entry, a ship at the origin, full shields and ammo.
func NewSimulation(cfg *config.SimConfig) *Simulation {
	bus := event.NewBus()
	registry := entity.NewRegistry()
	for _, bc := range cfg.Galaxy {
		registry.Add(entity.NewBody(
			bc.Name,
			physics.Vector3{X: bc.X, Y: bc.Y, Z: bc.Z},
			bc.Radius,
			bc.MaxHealth,
			cfg.Lifecycle,
		))
	}

	controller := flight.NewController(cfg.Ship)
	return &Simulation{
		Config:        cfg,
		EventBus:      bus,
		registry:      registry,
		flight:        controller,
		drive:         warp.NewDrive(cfg.Warp, controller),
		weapons:       weapons.NewSystem(cfg.Weapons, controller, registry, bus),
		defense:       defense.NewSystem(cfg.Defense),
		lastUpdate:    time.Now(),
		lastCollision: make(map[entity.ID]float64),
	}
}

// Registry exposes the authoritative body table
func (s *Simulation) Registry() *entity.Registry {
	return s.registry
}

// SetDestination selects a body as the warp destination, capturing its
// current position and radius the way a navigation UI would. An unknown
// ID clears the selection.
func (s *Simulation) SetDestination(id entity.ID) bool {
	body := s.registry.Get(id)
	if body == nil {
		s.drive.SetDestination(nil)
		return false
	}
	s.drive.SetDestination(&warp.Destination{
		ID:       body.ID,
		Name:     body.Name,
		Position: body.Position,
		Radius:   body.Radius,
	})
	return true
}

// SetWarpLevel sets the warp level, clamped to [1,9]
func (s *Simulation) SetWarpLevel(level int) {
	s.drive.SetLevel(level)
}

// Step advances the simulation using wall-clock time since the previous
// step, capped at maxDeltaTime. Hosts with their own frame clock should
// call Update directly.
func (s *Simulation) Step(snapshot input.Snapshot) {
	now := time.Now()
	dt := now.Sub(s.lastUpdate).Seconds()
	s.lastUpdate = now
	s.Update(dt, snapshot)
}

// Update advances the whole core by one tick: flight, warp, weapons,
// destructible entities, then defense, in that fixed order.
func (s *Simulation) Update(dt float64, snapshot input.Snapshot) {
	if dt < 0 || math.IsNaN(dt) {
		dt = 0
	}
	if dt > maxDeltaTime {
		dt = maxDeltaTime
	}
	s.elapsed += dt

	frame := s.tracker.Frame(snapshot)

	s.flight.Update(dt, frame)
	s.updateWarp(dt, frame)
	s.updateWeapons(dt, frame)
	s.updateBodies(dt)
	s.updateDefense(dt)

	s.currentTick++
}

// updateWarp forwards edge-triggered travel intents and runs the state
// machine
func (s *Simulation) updateWarp(dt float64, frame input.Frame) {
	if s.flight.ConsumeWarpRequest() {
		if s.drive.Engage() {
			s.publishWarpEvent(event.WarpEngaged)
		}
	}
	if frame.EmergencyStopPressed {
		if s.drive.EmergencyStop() {
			s.publishWarpEvent(event.WarpAborted)
		}
	}
	if frame.SkipWarpPressed {
		s.drive.SkipToArrival()
	}

	if s.drive.Update(dt) {
		s.publishWarpEvent(event.WarpArrived)
	}
}

// updateWeapons applies the warp lockout, then forwards firing and
// targeting intents
func (s *Simulation) updateWeapons(dt float64, frame input.Frame) {
	s.weapons.SetLockout(s.drive.Phase() != warp.PhaseIdle)

	if frame.CycleTargetPressed {
		s.weapons.CycleTarget()
	}
	if frame.FirePhasers {
		s.weapons.StartPhasers()
	} else {
		s.weapons.StopPhasers()
	}
	if frame.FireTorpedoPressed {
		s.weapons.FireTorpedo()
	}

	s.weapons.Update(dt, s.elapsed)
}

// updateBodies advances every destructible body's timeline
func (s *Simulation) updateBodies(dt float64) {
	for _, body := range s.registry.All() {
		if body.Advance(dt, s.elapsed) {
			s.EventBus.Publish(event.NewBodyEvent(event.BodyRespawned, s, uint64(body.ID), body.Name))
		}
	}
}

// updateDefense applies proximity collisions, feeds the combat condition,
// recharges shields and publishes alert transitions
func (s *Simulation) updateDefense(dt float64) {
	s.applyCollisions()
	s.defense.SetCombat(s.weapons.Firing() || s.weapons.InFlight() > 0)

	before := s.defense.Alert()
	s.defense.Update(dt, s.elapsed)
	after := s.defense.Alert()
	if before != after {
		s.EventBus.Publish(event.NewAlertEvent(s, before.String(), after.String()))
	}
}

// applyCollisions checks sphere proximity between the hull and every
// solid body, routing a fixed damage packet through the facing shield
// quadrant. A per-body cooldown keeps a sustained overlap from draining
// the shields every tick.
func (s *Simulation) applyCollisions() {
	kin := s.flight.Kinematics()
	hull := physics.Sphere{Center: kin.Position, Radius: s.Config.Ship.CollisionRadius}

	for _, body := range s.registry.All() {
		if !bodySolid(body) {
			continue
		}
		result := physics.CheckProximity(hull, body.Collider())
		if !result.Collided {
			continue
		}
		if last, ok := s.lastCollision[body.ID]; ok && s.elapsed-last < s.Config.Defense.CollisionCooldown {
			continue
		}
		s.lastCollision[body.ID] = s.elapsed

		quadrant := s.impactQuadrant(kin, body.Position)
		s.defense.ApplyDamage(quadrant, s.Config.Defense.CollisionDamage, s.elapsed)
		s.EventBus.Publish(event.NewCollisionEvent(s, uint64(body.ID), s.Config.Defense.CollisionDamage))
	}
}

// bodySolid reports whether a body presents a collision surface: live
// bodies and lingering debris do, an explosion or respawn shimmer does
// not
func bodySolid(body *entity.Body) bool {
	return body.CanTarget() || body.State == entity.StateDebris
}

// impactQuadrant picks the shield facing struck by a contact at the
// given world position, from the dominant axis of the ship-local offset
func (s *Simulation) impactQuadrant(kin flight.Kinematics, at physics.Vector3) defense.Quadrant {
	local := kin.Orientation.Conjugate().Rotate(at.Sub(kin.Position))
	if math.Abs(local.X) > math.Abs(local.Z) {
		if local.X > 0 {
			return defense.QuadrantStarboard
		}
		return defense.QuadrantPort
	}
	if local.Z >= 0 {
		return defense.QuadrantFore
	}
	return defense.QuadrantAft
}

func (s *Simulation) publishWarpEvent(t event.Type) {
	var destID uint64
	if dest := s.drive.Destination(); dest != nil {
		destID = uint64(dest.ID)
	}
	s.EventBus.Publish(event.NewWarpEvent(t, s, destID, s.drive.Level()))
}

// Elapsed returns accumulated simulation seconds
func (s *Simulation) Elapsed() float64 {
	return s.elapsed
}

// Tick returns the number of completed update ticks
func (s *Simulation) Tick() uint64 {
	return s.currentTick
}
