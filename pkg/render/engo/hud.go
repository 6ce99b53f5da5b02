// pkg/render/engo/hud.go
package engo

import (
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-starship/pkg/defense"
	"github.com/opd-ai/go-starship/pkg/engine"
)

// HUDSystem draws the status overlay: shield bars per quadrant, hull,
// phaser heat, torpedo ammunition and the alert indicator. Everything
// is rebuilt from the latest snapshot each frame using flat rectangles,
// so no font assets are required.
type HUDSystem struct {
	renderSystem *common.RenderSystem
	hudEntities  []*ecs.BasicEntity

	state    engine.GameState
	hasState bool

	barWidth  float32
	barHeight float32
}

// NewHUDSystem creates a HUD bound to the given render system
func NewHUDSystem(renderSystem *common.RenderSystem) *HUDSystem {
	return &HUDSystem{
		renderSystem: renderSystem,
		barWidth:     120,
		barHeight:    10,
	}
}

// Add satisfies the ecs.System interface
func (hud *HUDSystem) Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent) {
	// Not used for HUD system
}

// Remove satisfies the ecs.System interface
func (hud *HUDSystem) Remove(basic ecs.BasicEntity) {
	// Not used for HUD system
}

// UpdateGameState stores the snapshot the next Update will draw
func (hud *HUDSystem) UpdateGameState(state engine.GameState) {
	hud.state = state
	hud.hasState = true
}

// Update rebuilds the overlay from the stored snapshot
func (hud *HUDSystem) Update(dt float32) {
	hud.clearHUDEntities()
	if !hud.hasState {
		return
	}

	hud.renderShieldBars()
	hud.renderHullBar()
	hud.renderWeaponStatus()
	hud.renderAlertIndicator()
	hud.renderWarpStatus()
}

// clearHUDEntities removes the previous frame's overlay entities
func (hud *HUDSystem) clearHUDEntities() {
	for _, basic := range hud.hudEntities {
		hud.renderSystem.Remove(*basic)
	}
	hud.hudEntities = hud.hudEntities[:0]
}

// renderShieldBars draws one bar per shield quadrant at the top left
func (hud *HUDSystem) renderShieldBars() {
	quadrants := []defense.Quadrant{
		defense.QuadrantFore,
		defense.QuadrantAft,
		defense.QuadrantPort,
		defense.QuadrantStarboard,
	}

	y := float32(10)
	for _, q := range quadrants {
		strength := hud.state.Defense.Shields[q]
		hud.renderBar(10, y, float32(strength)/100, color.RGBA{80, 160, 255, 255})
		y += hud.barHeight + 4
	}
}

// renderHullBar draws hull integrity below the shield bars
func (hud *HUDSystem) renderHullBar() {
	hull := float32(hud.state.Defense.Hull) / 100
	c := color.RGBA{120, 220, 120, 255}
	if hud.state.Defense.Hull < 50 {
		c = color.RGBA{240, 90, 60, 255}
	}
	hud.renderBar(10, 10+4*(hud.barHeight+4)+6, hull, c)
}

// renderWeaponStatus draws phaser heat and torpedo ammo bottom left
func (hud *HUDSystem) renderWeaponStatus() {
	baseY := float32(engo.GameHeight()) - 40

	heat := float32(hud.state.Weapons.Heat) / 100
	heatColor := color.RGBA{230, 210, 90, 255}
	if hud.state.Weapons.Overheated {
		heatColor = color.RGBA{255, 60, 40, 255}
	}
	hud.renderBar(10, baseY, heat, heatColor)

	// One pip per remaining torpedo
	x := float32(10)
	for i := 0; i < hud.state.Weapons.Ammo; i++ {
		hud.renderRect(x, baseY+hud.barHeight+6, 8, 8, color.RGBA{255, 255, 0, 255})
		x += 12
	}
}

// renderAlertIndicator draws the alert condition square top right
func (hud *HUDSystem) renderAlertIndicator() {
	var c color.RGBA
	switch hud.state.Defense.Alert {
	case defense.AlertRed:
		c = color.RGBA{255, 40, 40, 255}
	case defense.AlertYellow:
		c = color.RGBA{230, 210, 60, 255}
	default:
		c = color.RGBA{60, 220, 60, 255}
	}
	hud.renderRect(float32(engo.GameWidth())-34, 10, 24, 24, c)
}

// renderWarpStatus draws travel progress while the drive is active
func (hud *HUDSystem) renderWarpStatus() {
	if hud.state.Ship.WarpPhase == "idle" {
		return
	}
	hud.renderBar(
		float32(engo.GameWidth())/2-hud.barWidth/2,
		float32(engo.GameHeight())-20,
		float32(hud.state.Ship.TravelFraction),
		color.RGBA{80, 120, 255, 255},
	)
}

// renderBar draws a background track plus a filled fraction
func (hud *HUDSystem) renderBar(x, y, fraction float32, c color.Color) {
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	hud.renderRect(x, y, hud.barWidth, hud.barHeight, color.RGBA{40, 40, 40, 200})
	if fraction > 0 {
		hud.renderRect(x, y, hud.barWidth*fraction, hud.barHeight, c)
	}
}

// renderRect adds a screen-space filled rectangle for this frame
func (hud *HUDSystem) renderRect(x, y, width, height float32, rectColor color.Color) {
	basic := ecs.NewBasic()

	rc := &common.RenderComponent{
		Drawable: common.Rectangle{},
		Color:    rectColor,
	}
	rc.SetShader(common.HUDShader)
	rc.SetZIndex(100)

	space := &common.SpaceComponent{
		Position: engo.Point{X: x, Y: y},
		Width:    width,
		Height:   height,
	}

	hud.renderSystem.Add(&basic, rc, space)
	hud.hudEntities = append(hud.hudEntities, &basic)
}
