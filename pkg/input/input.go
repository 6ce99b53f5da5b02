// Package input defines the immutable per-tick control snapshot consumed
// by the simulation core. The host samples its real input devices once per
// frame, fills a Snapshot, and hands it to the engine; the core never
// touches a keyboard API directly.
package input

// Snapshot carries the pilot's intent for a single simulation tick.
// All fields are level state ("the key is down right now"); edge
// detection against the previous tick happens in Tracker.
type Snapshot struct {
	Forward  bool
	Backward bool
	FullStop bool

	YawLeft   bool
	YawRight  bool
	PitchUp   bool
	PitchDown bool
	RollLeft  bool
	RollRight bool

	FirePhasers bool
	FireTorpedo bool
	CycleTarget bool

	EngageWarp    bool
	SkipWarp      bool
	EmergencyStop bool
}

// Frame is a Snapshot augmented with the edge transitions for actions
// that must fire once per key press rather than once per tick.
type Frame struct {
	Snapshot

	FullStopPressed      bool
	FireTorpedoPressed   bool
	CycleTargetPressed   bool
	EngageWarpPressed    bool
	SkipWarpPressed      bool
	EmergencyStopPressed bool
}

// Tracker derives per-press edges by comparing each snapshot against the
// previous tick's snapshot. The zero value is ready to use.
type Tracker struct {
	prev Snapshot
}

// Frame consumes a snapshot and returns it with edge flags set for any
// action that is down now but was up on the previous tick.
func (t *Tracker) Frame(s Snapshot) Frame {
	frame := Frame{
		Snapshot:             s,
		FullStopPressed:      s.FullStop && !t.prev.FullStop,
		FireTorpedoPressed:   s.FireTorpedo && !t.prev.FireTorpedo,
		CycleTargetPressed:   s.CycleTarget && !t.prev.CycleTarget,
		EngageWarpPressed:    s.EngageWarp && !t.prev.EngageWarp,
		SkipWarpPressed:      s.SkipWarp && !t.prev.SkipWarp,
		EmergencyStopPressed: s.EmergencyStop && !t.prev.EmergencyStop,
	}
	t.prev = s
	return frame
}

// Reset clears the remembered snapshot so the next frame treats every
// held key as a fresh press.
func (t *Tracker) Reset() {
	t.prev = Snapshot{}
}

// YawAxis returns the yaw intent as -1 (left), 0 or +1 (right)
func (s Snapshot) YawAxis() float64 {
	return axis(s.YawRight, s.YawLeft)
}

// PitchAxis returns the pitch intent as -1 (down), 0 or +1 (up)
func (s Snapshot) PitchAxis() float64 {
	return axis(s.PitchUp, s.PitchDown)
}

// RollAxis returns the roll intent as -1 (left), 0 or +1 (right)
func (s Snapshot) RollAxis() float64 {
	return axis(s.RollRight, s.RollLeft)
}

func axis(positive, negative bool) float64 {
	switch {
	case positive && !negative:
		return 1
	case negative && !positive:
		return -1
	default:
		return 0
	}
}
