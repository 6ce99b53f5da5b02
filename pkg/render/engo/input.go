// pkg/render/engo/input.go
package engo

import (
	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-starship/pkg/input"
)

// Button names registered with Engo. The simulation layer only ever
// sees input.Snapshot values, so key bindings live entirely here.
const (
	buttonForward       = "forward"
	buttonBackward      = "backward"
	buttonFullStop      = "fullStop"
	buttonYawLeft       = "yawLeft"
	buttonYawRight      = "yawRight"
	buttonPitchUp       = "pitchUp"
	buttonPitchDown     = "pitchDown"
	buttonRollLeft      = "rollLeft"
	buttonRollRight     = "rollRight"
	buttonFirePhasers   = "firePhasers"
	buttonFireTorpedo   = "fireTorpedo"
	buttonCycleTarget   = "cycleTarget"
	buttonEngageWarp    = "engageWarp"
	buttonSkipWarp      = "skipWarp"
	buttonEmergencyStop = "emergencyStop"
)

// RegisterButtons binds the default keyboard layout. Call once during
// scene setup, before the first frame.
func RegisterButtons() {
	engo.Input.RegisterButton(buttonForward, engo.KeyW)
	engo.Input.RegisterButton(buttonBackward, engo.KeyS)
	engo.Input.RegisterButton(buttonFullStop, engo.KeyX)
	engo.Input.RegisterButton(buttonYawLeft, engo.KeyA)
	engo.Input.RegisterButton(buttonYawRight, engo.KeyD)
	engo.Input.RegisterButton(buttonPitchUp, engo.KeyArrowUp)
	engo.Input.RegisterButton(buttonPitchDown, engo.KeyArrowDown)
	engo.Input.RegisterButton(buttonRollLeft, engo.KeyQ)
	engo.Input.RegisterButton(buttonRollRight, engo.KeyE)
	engo.Input.RegisterButton(buttonFirePhasers, engo.KeySpace)
	engo.Input.RegisterButton(buttonFireTorpedo, engo.KeyF)
	engo.Input.RegisterButton(buttonCycleTarget, engo.KeyT)
	engo.Input.RegisterButton(buttonEngageWarp, engo.KeyJ)
	engo.Input.RegisterButton(buttonSkipWarp, engo.KeyK)
	engo.Input.RegisterButton(buttonEmergencyStop, engo.KeyEscape)

	engo.Input.RegisterButton("zoomIn", engo.KeyNumAdd)
	engo.Input.RegisterButton("zoomOut", engo.KeyNumSubtract)
	engo.Input.RegisterButton("resetZoom", engo.KeyZero)
}

// InputSystem samples Engo button state into an input.Snapshot each
// frame. Edge detection is left to the simulation's own tracker.
type InputSystem struct {
	snapshot input.Snapshot
}

// NewInputSystem creates an input system
func NewInputSystem() *InputSystem {
	return &InputSystem{}
}

// Add satisfies the ecs.System interface
func (is *InputSystem) Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent) {
	// Not used for input system
}

// Remove satisfies the ecs.System interface
func (is *InputSystem) Remove(basic ecs.BasicEntity) {
	// Not used for input system
}

// Update samples the current keyboard state
func (is *InputSystem) Update(dt float32) {
	is.snapshot = input.Snapshot{
		Forward:       engo.Input.Button(buttonForward).Down(),
		Backward:      engo.Input.Button(buttonBackward).Down(),
		FullStop:      engo.Input.Button(buttonFullStop).Down(),
		YawLeft:       engo.Input.Button(buttonYawLeft).Down(),
		YawRight:      engo.Input.Button(buttonYawRight).Down(),
		PitchUp:       engo.Input.Button(buttonPitchUp).Down(),
		PitchDown:     engo.Input.Button(buttonPitchDown).Down(),
		RollLeft:      engo.Input.Button(buttonRollLeft).Down(),
		RollRight:     engo.Input.Button(buttonRollRight).Down(),
		FirePhasers:   engo.Input.Button(buttonFirePhasers).Down(),
		FireTorpedo:   engo.Input.Button(buttonFireTorpedo).Down(),
		CycleTarget:   engo.Input.Button(buttonCycleTarget).Down(),
		EngageWarp:    engo.Input.Button(buttonEngageWarp).Down(),
		SkipWarp:      engo.Input.Button(buttonSkipWarp).Down(),
		EmergencyStop: engo.Input.Button(buttonEmergencyStop).Down(),
	}
}

// Snapshot returns the most recently sampled input state
func (is *InputSystem) Snapshot() input.Snapshot {
	return is.snapshot
}
