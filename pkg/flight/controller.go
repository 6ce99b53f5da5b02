// Package flight integrates pilot input into the ship's kinematic state:
// orientation from yaw/pitch/roll rates, a first-order throttle filter,
// and position advance along the nose vector. It owns ShipKinematics
// exclusively; every other subsystem reads it through snapshots.
package flight

import (
	"math"

	"github.com/opd-ai/go-starship/pkg/config"
	"github.com/opd-ai/go-starship/pkg/input"
	"github.com/opd-ai/go-starship/pkg/physics"
)

// Kinematics is the ship's read-only kinematic snapshot
type Kinematics struct {
	Position        physics.Vector3
	Orientation     physics.Quaternion
	Velocity        physics.Vector3
	ThrottlePercent float64
	TargetThrottle  float64
}

// targetThrottle values below this snap to zero to avoid infinite
// exponential creep
const throttleSnapEpsilon = 0.5

// Controller integrates input into ship kinematics once per tick
type Controller struct {
	cfg config.ShipConfig

	position physics.Vector3
	velocity physics.Vector3

	yaw   float64
	pitch float64
	roll  float64

	orientation physics.Quaternion

	throttle       float64
	targetThrottle float64

	// warp owns position while the override is set; orientation stays
	// externally drivable for alignment
	travelOverride bool

	warpRequested bool
}

// NewController creates a flight controller at the origin, facing +Z
func NewController(cfg config.ShipConfig) *Controller {
	return &Controller{
		cfg:         cfg,
		orientation: physics.QuaternionIdentity(),
	}
}

// Update advances the kinematic state by dt seconds under the given
// input frame
func (c *Controller) Update(dt float64, frame input.Frame) {
	if frame.EngageWarpPressed {
		c.warpRequested = true
	}

	c.updateAttitude(dt, frame)
	c.updateThrottle(dt, frame)

	if c.travelOverride {
		// Warp owns position and velocity for the full travel
		c.velocity = physics.Vector3{}
		return
	}

	c.orientation = physics.QuaternionFromEuler(c.yaw, c.pitch, c.roll)

	speed := c.throttle / 100 * c.cfg.MaxImpulseSpeed
	c.velocity = c.orientation.Forward().Scale(speed)
	c.position = c.position.Add(c.velocity.Scale(dt))
}

// updateAttitude integrates yaw, pitch and roll from the input axes
func (c *Controller) updateAttitude(dt float64, frame input.Frame) {
	yawInput := frame.YawAxis()
	pitchInput := frame.PitchAxis()
	rollInput := frame.RollAxis()

	c.yaw += yawInput * c.cfg.YawRate * dt
	c.pitch += pitchInput * c.cfg.PitchRate * dt

	// Yaw induces bank; explicit roll input overrides the coupling
	if rollInput != 0 {
		c.roll += rollInput * c.cfg.RollRate * dt
	} else {
		c.roll += yawInput * c.cfg.BankRate * dt
		if yawInput == 0 {
			// Auto-level toward zero at a fixed damping rate
			step := c.cfg.LevelRate * dt
			if math.Abs(c.roll) <= step {
				c.roll = 0
			} else if c.roll > 0 {
				c.roll -= step
			} else {
				c.roll += step
			}
		}
	}

	c.roll = physics.Clamp(c.roll, -c.cfg.MaxBankAngle, c.cfg.MaxBankAngle)
}

// updateThrottle runs the first-order throttle filter
func (c *Controller) updateThrottle(dt float64, frame input.Frame) {
	if frame.FullStopPressed {
		c.throttle = 0
		c.targetThrottle = 0
		return
	}

	switch {
	case frame.Forward && !frame.Backward:
		c.targetThrottle += c.cfg.ThrottleAccel * dt
	case frame.Backward && !frame.Forward:
		c.targetThrottle -= c.cfg.ThrottleDecel * dt
	default:
		// Multiplicative damping with a snap-to-zero floor
		c.targetThrottle *= math.Exp(-c.cfg.ThrottleDamping * dt)
		if c.targetThrottle < throttleSnapEpsilon {
			c.targetThrottle = 0
		}
	}
	c.targetThrottle = physics.Clamp(c.targetThrottle, 0, 100)

	// Actual throttle chases the target at the same rates, producing
	// smooth spool-up and spool-down
	if c.throttle < c.targetThrottle {
		c.throttle = math.Min(c.targetThrottle, c.throttle+c.cfg.ThrottleAccel*dt)
	} else if c.throttle > c.targetThrottle {
		c.throttle = math.Max(c.targetThrottle, c.throttle-c.cfg.ThrottleDecel*dt)
	}
	c.throttle = physics.Clamp(c.throttle, 0, 100)
}

// ConsumeWarpRequest returns whether an engage-warp press occurred since
// the last call, and clears it. The signal fires once per press, not per
// frame.
func (c *Controller) ConsumeWarpRequest() bool {
	requested := c.warpRequested
	c.warpRequested = false
	return requested
}

// Kinematics returns the current kinematic snapshot
func (c *Controller) Kinematics() Kinematics {
	return Kinematics{
		Position:        c.position,
		Orientation:     c.orientation,
		Velocity:        c.velocity,
		ThrottlePercent: c.throttle,
		TargetThrottle:  c.targetThrottle,
	}
}

// Position returns the current ship position
func (c *Controller) Position() physics.Vector3 {
	return c.position
}

// SetPosition moves the ship. Used by warp travel, which owns position
// while a travel override is active.
func (c *Controller) SetPosition(p physics.Vector3) {
	c.position = p
}

// Orientation returns the current orientation
func (c *Controller) Orientation() physics.Quaternion {
	return c.orientation
}

// SetOrientation overrides the orientation directly. Warp alignment
// drives this during charging and cruise.
func (c *Controller) SetOrientation(q physics.Quaternion) {
	c.orientation = q
}

// SetAttitude resynchronizes the integrated Euler state, with roll
// leveled. Warp calls this when handing control back so the next impulse
// tick continues from the travel heading.
func (c *Controller) SetAttitude(yaw, pitch float64) {
	c.yaw = yaw
	c.pitch = pitch
	c.roll = 0
	c.orientation = physics.QuaternionFromEuler(yaw, pitch, 0)
}

// SetTravelOverride suspends (true) or resumes (false) impulse position
// integration
func (c *Controller) SetTravelOverride(active bool) {
	c.travelOverride = active
}

// ZeroThrottle drops throttle and target to zero, as on warp entry
func (c *Controller) ZeroThrottle() {
	c.throttle = 0
	c.targetThrottle = 0
}
