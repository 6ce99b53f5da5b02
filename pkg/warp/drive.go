// Package warp implements the multi-phase warp travel state machine.
// Transitions are pure functions of accumulated per-tick time evaluated
// every update — no timers, no callbacks — so a travel is fully
// replayable from a sequence of (dt, input) pairs.
package warp

import (
	"github.com/opd-ai/go-starship/pkg/config"
	"github.com/opd-ai/go-starship/pkg/entity"
	"github.com/opd-ai/go-starship/pkg/physics"
)

// Phase is one state in the warp travel cycle. Transitions are
// total-ordered along the declared cycle; no phase is ever skipped.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseCharging
	PhaseAccelerating
	PhaseCruising
	PhaseDecelerating
	PhaseArriving
)

// String returns the lowercase phase name used in snapshots and logs
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseCharging:
		return "charging"
	case PhaseAccelerating:
		return "accelerating"
	case PhaseCruising:
		return "cruising"
	case PhaseDecelerating:
		return "decelerating"
	case PhaseArriving:
		return "arriving"
	default:
		return "unknown"
	}
}

// Destination is the nav selection warp travels toward: a body reference
// plus the position and radius captured when the UI selected it.
type Destination struct {
	ID       entity.ID
	Name     string
	Position physics.Vector3
	Radius   float64
}

// ShipControl is the slice of the flight controller the drive needs:
// position/orientation ownership during travel and the handback hooks.
type ShipControl interface {
	Position() physics.Vector3
	SetPosition(physics.Vector3)
	Orientation() physics.Quaternion
	SetOrientation(physics.Quaternion)
	SetAttitude(yaw, pitch float64)
	SetTravelOverride(active bool)
	ZeroThrottle()
}

// Drive is the warp travel state machine
type Drive struct {
	cfg  config.WarpConfig
	ship ShipControl

	phase   Phase
	level   int
	dest    *Destination
	elapsed float64 // seconds in the current phase

	// travel snapshot, captured at engage and reset on return to idle
	departure      physics.Vector3
	arrivalPoint   physics.Vector3
	alignTarget    physics.Quaternion
	cruiseDuration float64
	cruiseElapsed  float64
}

// NewDrive creates an idle warp drive bound to a ship
func NewDrive(cfg config.WarpConfig, ship ShipControl) *Drive {
	return &Drive{
		cfg:   cfg,
		ship:  ship,
		phase: PhaseIdle,
		level: cfg.DefaultWarpLevel,
	}
}

// Phase returns the current travel phase
func (d *Drive) Phase() Phase {
	return d.phase
}

// Level returns the current warp level
func (d *Drive) Level() int {
	return d.level
}

// SetLevel sets the warp level, clamped to [1,9]. Level changes do not
// affect a travel already in progress; the cruise speed is captured at
// engage.
func (d *Drive) SetLevel(level int) {
	if level < 1 {
		level = 1
	}
	if level > 9 {
		level = 9
	}
	d.level = level
}

// SetDestination records the nav UI's selected destination. A nil
// destination clears the selection.
func (d *Drive) SetDestination(dest *Destination) {
	d.dest = dest
}

// Destination returns the current nav selection, or nil
func (d *Drive) Destination() *Destination {
	return d.dest
}

// Engage starts a warp travel toward the selected destination. It
// reports whether the engage was accepted: no destination, a travel
// already in progress, or a destination coincident with the ship are all
// rejected no-ops.
func (d *Drive) Engage() bool {
	if d.phase != PhaseIdle || d.dest == nil {
		return false
	}

	departure := d.ship.Position()
	offset := d.dest.Position.Sub(departure)
	distance := offset.Length()
	stopShort := d.dest.Radius + d.cfg.ArrivalBuffer
	if distance <= stopShort {
		// Already inside the arrival buffer (or exactly coincident);
		// never normalize a zero-length direction.
		return false
	}

	direction := offset.Scale(1 / distance)
	target, ok := physics.LookRotation(direction)
	if !ok {
		return false
	}

	d.departure = departure
	d.arrivalPoint = d.dest.Position.Sub(direction.Scale(stopShort))
	d.alignTarget = target
	d.cruiseDuration = departure.Distance(d.arrivalPoint) / (d.cfg.SpeedPerLevel * float64(d.level))
	d.cruiseElapsed = 0
	d.elapsed = 0
	d.phase = PhaseCharging

	d.ship.SetTravelOverride(true)
	d.ship.ZeroThrottle()
	return true
}

// EmergencyStop aborts a travel in any non-idle phase, leaving the ship
// at its current interpolated position. This is a deliberate interruption
// path, not a normal arrival; it reports whether anything was aborted.
func (d *Drive) EmergencyStop() bool {
	if d.phase == PhaseIdle {
		return false
	}
	d.finish()
	return true
}

// SkipToArrival force-advances cruise elapsed time to the deceleration
// boundary. Only meaningful mid-cruise; a no-op otherwise.
func (d *Drive) SkipToArrival() {
	if d.phase != PhaseCruising {
		return
	}
	boundary := d.cruiseDuration - d.cfg.DecelLeadTime
	if d.cruiseElapsed < boundary {
		d.cruiseElapsed = boundary
	}
}

// Update advances the state machine by dt seconds. Each call moves at
// most one phase forward, so every phase is observable from per-tick
// snapshots. Returns true on the tick the travel completes normally.
func (d *Drive) Update(dt float64) bool {
	if d.phase == PhaseIdle {
		return false
	}
	d.elapsed += dt

	switch d.phase {
	case PhaseCharging:
		d.updateCharging(dt)
	case PhaseAccelerating:
		d.updateAccelerating()
	case PhaseCruising:
		d.updateTravel(dt)
		if d.cruiseDuration-d.cruiseElapsed <= d.cfg.DecelLeadTime {
			d.advance(PhaseDecelerating)
		}
	case PhaseDecelerating:
		d.updateTravel(dt)
		if d.cruiseElapsed >= d.cruiseDuration {
			d.ship.SetPosition(d.arrivalPoint)
			d.advance(PhaseArriving)
		}
	case PhaseArriving:
		if d.elapsed >= d.cfg.ArrivalDuration {
			d.finish()
			return true
		}
	}
	return false
}

// updateCharging rotates the ship toward the target alignment and
// advances once both alignment and the minimum charge time are met
func (d *Drive) updateCharging(dt float64) {
	t := physics.Clamp(d.cfg.AlignRate*dt, 0, 1)
	q := d.ship.Orientation().Slerp(d.alignTarget, t)
	d.ship.SetOrientation(q)

	aligned := q.Dot(d.alignTarget) >= d.cfg.AlignThreshold ||
		-q.Dot(d.alignTarget) >= d.cfg.AlignThreshold
	if aligned && d.elapsed >= d.cfg.MinChargeTime {
		d.ship.SetOrientation(d.alignTarget)
		d.advance(PhaseAccelerating)
	}
}

// updateAccelerating pins orientation during the ramp-up
func (d *Drive) updateAccelerating() {
	d.ship.SetOrientation(d.alignTarget)
	if d.elapsed >= d.cfg.AccelDuration {
		d.advance(PhaseCruising)
	}
}

// updateTravel interpolates position between departure and arrival by
// the elapsed-time ratio. Orientation stays pinned to the alignment.
// A destination destroyed mid-travel does not reroute the interpolation;
// the ship continues to the captured coordinates.
func (d *Drive) updateTravel(dt float64) {
	d.cruiseElapsed += dt
	frac := physics.Clamp(d.cruiseElapsed/d.cruiseDuration, 0, 1)
	d.ship.SetPosition(d.departure.Lerp(d.arrivalPoint, frac))
	d.ship.SetOrientation(d.alignTarget)
}

// advance moves to the next phase and restarts the per-phase clock
func (d *Drive) advance(next Phase) {
	d.phase = next
	d.elapsed = 0
}

// finish resets travel state to idle and hands position and attitude
// back to the flight controller from wherever the ship is now
func (d *Drive) finish() {
	yaw, pitch := physics.EulerFromDirection(d.ship.Orientation().Forward())
	d.ship.SetAttitude(yaw, pitch)
	d.ship.SetTravelOverride(false)

	d.phase = PhaseIdle
	d.elapsed = 0
	d.cruiseElapsed = 0
	d.cruiseDuration = 0
	d.departure = physics.Vector3{}
	d.arrivalPoint = physics.Vector3{}
	d.alignTarget = physics.QuaternionIdentity()
}

// TravelFraction returns how far along the departure→arrival
// interpolation the travel is, in [0,1]. Zero when idle or charging.
func (d *Drive) TravelFraction() float64 {
	if d.cruiseDuration <= 0 {
		return 0
	}
	return physics.Clamp(d.cruiseElapsed/d.cruiseDuration, 0, 1)
}
