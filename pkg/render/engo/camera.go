// pkg/render/engo/camera.go
package engo

import (
	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"
)

// CameraSystem keeps the viewport centered on the player ship with
// smooth follow and keyboard/scroll zoom.
type CameraSystem struct {
	target    engo.Point
	targetSet bool

	zoom    float32
	minZoom float32
	maxZoom float32

	followSpeed float32
	smoothing   bool

	currentPos engo.Point
}

// NewCameraSystem creates a camera with default follow settings
func NewCameraSystem() *CameraSystem {
	return &CameraSystem{
		zoom:        1.0,
		minZoom:     0.1,
		maxZoom:     3.0,
		followSpeed: 2.0,
		smoothing:   true,
	}
}

// Add satisfies the ecs.System interface
func (cs *CameraSystem) Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent) {
	// Not used for camera system
}

// Remove satisfies the ecs.System interface
func (cs *CameraSystem) Remove(basic ecs.BasicEntity) {
	// Not used for camera system
}

// Update moves the camera toward its target and applies zoom input
func (cs *CameraSystem) Update(dt float32) {
	cs.handleZoomInput()

	if cs.targetSet {
		cs.updateCameraPosition(dt)
		cs.applyCameraTransform()
	}
}

// handleZoomInput processes zoom-related input
func (cs *CameraSystem) handleZoomInput() {
	scrollY := engo.Input.Mouse.ScrollY
	if scrollY != 0 {
		cs.SetZoom(cs.zoom * float32(1.0+scrollY*0.1))
	}

	if engo.Input.Button("zoomIn").Down() {
		cs.SetZoom(cs.zoom * 1.02)
	}
	if engo.Input.Button("zoomOut").Down() {
		cs.SetZoom(cs.zoom * 0.98)
	}
	if engo.Input.Button("resetZoom").JustPressed() {
		cs.SetZoom(1.0)
	}
}

// updateCameraPosition smoothly moves the camera toward the target
func (cs *CameraSystem) updateCameraPosition(dt float32) {
	if cs.smoothing {
		cs.currentPos.X += (cs.target.X - cs.currentPos.X) * cs.followSpeed * dt
		cs.currentPos.Y += (cs.target.Y - cs.currentPos.Y) * cs.followSpeed * dt
	} else {
		cs.currentPos = cs.target
	}
}

// applyCameraTransform centers the viewport on the current position
func (cs *CameraSystem) applyCameraTransform() {
	engo.Mailbox.Dispatch(common.CameraMessage{
		Axis:        common.XAxis,
		Value:       cs.currentPos.X,
		Incremental: false,
	})
	engo.Mailbox.Dispatch(common.CameraMessage{
		Axis:        common.YAxis,
		Value:       cs.currentPos.Y,
		Incremental: false,
	})
	engo.Mailbox.Dispatch(common.CameraMessage{
		Axis:        common.ZAxis,
		Value:       cs.zoom,
		Incremental: false,
	})
}

// SetTarget sets the point the camera follows
func (cs *CameraSystem) SetTarget(target engo.Point) {
	// Jump straight to the first target instead of panning in from origin
	if !cs.targetSet {
		cs.currentPos = target
	}
	cs.target = target
	cs.targetSet = true
}

// ClearTarget stops camera following
func (cs *CameraSystem) ClearTarget() {
	cs.targetSet = false
}

// SetZoom sets the camera zoom level, clamped to bounds
func (cs *CameraSystem) SetZoom(zoom float32) {
	if zoom < cs.minZoom {
		zoom = cs.minZoom
	}
	if zoom > cs.maxZoom {
		zoom = cs.maxZoom
	}
	cs.zoom = zoom
}

// GetZoom returns the current zoom level
func (cs *CameraSystem) GetZoom() float32 {
	return cs.zoom
}
