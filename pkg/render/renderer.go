// pkg/render/renderer.go
package render

import (
	"context"

	"github.com/opd-ai/go-starship/pkg/engine"
	"github.com/opd-ai/go-starship/pkg/logging"
	"github.com/opd-ai/go-starship/pkg/weapons"
)

// Renderer consumes per-tick simulation snapshots. The core never calls
// a renderer; the host forwards snapshots after each update.
type Renderer interface {
	Clear()
	RenderShip(ship engine.ShipState)
	RenderBody(body engine.BodyState)
	RenderProjectile(shot weapons.ProjectileInfo)
	RenderHUD(state engine.GameState)
	Present()
}

// Draw pushes one complete snapshot through a renderer
func Draw(r Renderer, state engine.GameState) {
	r.Clear()
	for _, body := range state.Bodies {
		r.RenderBody(body)
	}
	for _, shot := range state.Weapons.Projectiles {
		r.RenderProjectile(shot)
	}
	r.RenderShip(state.Ship)
	r.RenderHUD(state)
	r.Present()
}

// NullRenderer is a Renderer that only logs at debug level; useful for
// headless runs and tests.
type NullRenderer struct {
	logger *logging.Logger
}

// NewNullRenderer creates a new NullRenderer with structured logging
func NewNullRenderer() *NullRenderer {
	return &NullRenderer{logger: logging.NewLogger()}
}

// Clear implements Renderer.
func (d *NullRenderer) Clear() {}

// RenderShip implements Renderer.
func (d *NullRenderer) RenderShip(ship engine.ShipState) {
	d.logger.Debug(context.Background(), "RenderShip called",
		"throttle", ship.ThrottlePercent,
		"warp_phase", ship.WarpPhase,
	)
}

// RenderBody implements Renderer.
func (d *NullRenderer) RenderBody(body engine.BodyState) {
	d.logger.Debug(context.Background(), "RenderBody called",
		"body_id", body.ID,
		"body_name", body.Name,
		"state", body.State,
	)
}

// RenderProjectile implements Renderer.
func (d *NullRenderer) RenderProjectile(shot weapons.ProjectileInfo) {
	d.logger.Debug(context.Background(), "RenderProjectile called",
		"projectile_id", shot.ID,
	)
}

// RenderHUD implements Renderer.
func (d *NullRenderer) RenderHUD(state engine.GameState) {
	d.logger.Debug(context.Background(), "RenderHUD called",
		"tick", state.Tick,
		"alert", state.Defense.Alert.String(),
	)
}

// Present implements Renderer.
func (d *NullRenderer) Present() {}
