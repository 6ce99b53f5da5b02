// pkg/render/engo/renderer.go
package engo

import (
	"image/color"
	"math"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-starship/pkg/engine"
	"github.com/opd-ai/go-starship/pkg/entity"
	"github.com/opd-ai/go-starship/pkg/physics"
	"github.com/opd-ai/go-starship/pkg/weapons"
)

// SceneRenderer draws simulation snapshots with the Engo render system.
// It owns one ECS entity for the ship plus one per body and projectile,
// created lazily and removed when the snapshot stops mentioning them.
type SceneRenderer struct {
	world        *ecs.World
	renderSystem *common.RenderSystem

	shipEntity         *ecs.BasicEntity
	bodyEntities       map[entity.ID]*ecs.BasicEntity
	projectileEntities map[uint64]*ecs.BasicEntity

	// Components addressed by basic entity ID, since RenderSystem does
	// not hand components back
	spaceComponents  map[uint64]*common.SpaceComponent
	renderComponents map[uint64]*common.RenderComponent

	// IDs seen in the current frame, used to drop stale entities
	seenBodies      map[entity.ID]bool
	seenProjectiles map[uint64]bool

	assets *AssetManager
}

// NewSceneRenderer creates a renderer bound to the given ECS world
func NewSceneRenderer(world *ecs.World) *SceneRenderer {
	return &SceneRenderer{
		world:              world,
		bodyEntities:       make(map[entity.ID]*ecs.BasicEntity),
		projectileEntities: make(map[uint64]*ecs.BasicEntity),
		spaceComponents:    make(map[uint64]*common.SpaceComponent),
		renderComponents:   make(map[uint64]*common.RenderComponent),
		seenBodies:         make(map[entity.ID]bool),
		seenProjectiles:    make(map[uint64]bool),
		assets:             NewAssetManager(),
	}
}

// Initialize registers the render system and builds sprites
func (r *SceneRenderer) Initialize() error {
	r.renderSystem = &common.RenderSystem{}
	r.world.AddSystem(r.renderSystem)
	return r.assets.LoadAssets()
}

// RenderSystem exposes the underlying render system for overlay
// systems that register their own entities
func (r *SceneRenderer) RenderSystem() *common.RenderSystem {
	return r.renderSystem
}

// Clear begins a frame, resetting the seen sets
func (r *SceneRenderer) Clear() {
	r.seenBodies = make(map[entity.ID]bool)
	r.seenProjectiles = make(map[uint64]bool)
}

// RenderShip updates the player ship entity from the snapshot
func (r *SceneRenderer) RenderShip(ship engine.ShipState) {
	if r.shipEntity == nil {
		basic := ecs.NewBasic()
		r.shipEntity = &basic
		r.addRenderable(&basic, r.assets.GetShipSprite(), 16, 16, color.RGBA{255, 255, 255, 255})
	}

	if space := r.spaceComponents[r.shipEntity.ID()]; space != nil {
		pos := r.worldToScreen(ship.Position)
		space.Position = engo.Point{X: pos.X, Y: pos.Y}
		space.Rotation = headingDegrees(ship.Orientation)
	}
	if rc := r.renderComponents[r.shipEntity.ID()]; rc != nil {
		rc.Color = shipColor(ship.WarpPhase)
	}
}

// RenderBody updates a destructible body entity from the snapshot
func (r *SceneRenderer) RenderBody(body engine.BodyState) {
	r.seenBodies[body.ID] = true

	basic, exists := r.bodyEntities[body.ID]
	if !exists {
		b := ecs.NewBasic()
		basic = &b
		r.bodyEntities[body.ID] = basic
		size := float32(math.Max(body.Radius, 12))
		r.addRenderable(basic, r.assets.GetBodySprite(body.State), size, size, color.RGBA{255, 255, 255, 255})
	}

	if space := r.spaceComponents[basic.ID()]; space != nil {
		pos := r.worldToScreen(body.Position)
		space.Position = engo.Point{X: pos.X, Y: pos.Y}
	}
	if rc := r.renderComponents[basic.ID()]; rc != nil {
		rc.Drawable = r.assets.GetBodySprite(body.State)
		rc.Color = bodyColor(body)
	}
}

// RenderProjectile updates a torpedo entity from the snapshot
func (r *SceneRenderer) RenderProjectile(p weapons.ProjectileInfo) {
	r.seenProjectiles[p.ID] = true

	basic, exists := r.projectileEntities[p.ID]
	if !exists {
		b := ecs.NewBasic()
		basic = &b
		r.projectileEntities[p.ID] = basic
		r.addRenderable(basic, r.assets.GetTorpedoSprite(), 4, 4, color.RGBA{255, 255, 0, 255})
	}

	if space := r.spaceComponents[basic.ID()]; space != nil {
		pos := r.worldToScreen(p.Position)
		space.Position = engo.Point{X: pos.X, Y: pos.Y}
	}
}

// Present ends a frame, removing entities the snapshot no longer holds
func (r *SceneRenderer) Present() {
	for id, basic := range r.bodyEntities {
		if !r.seenBodies[id] {
			r.removeRenderable(basic)
			delete(r.bodyEntities, id)
		}
	}
	for id, basic := range r.projectileEntities {
		if !r.seenProjectiles[id] {
			r.removeRenderable(basic)
			delete(r.projectileEntities, id)
		}
	}
}

// addRenderable registers a new entity with the render system
func (r *SceneRenderer) addRenderable(basic *ecs.BasicEntity, drawable common.Drawable, width, height float32, c color.Color) {
	rc := &common.RenderComponent{
		Drawable: drawable,
		Color:    c,
	}
	space := &common.SpaceComponent{
		Position: engo.Point{X: 0, Y: 0},
		Width:    width,
		Height:   height,
	}
	r.renderSystem.Add(basic, rc, space)
	r.renderComponents[basic.ID()] = rc
	r.spaceComponents[basic.ID()] = space
}

// removeRenderable drops an entity from the render system and caches
func (r *SceneRenderer) removeRenderable(basic *ecs.BasicEntity) {
	r.renderSystem.Remove(*basic)
	delete(r.renderComponents, basic.ID())
	delete(r.spaceComponents, basic.ID())
}

// worldToScreen projects a world position onto the horizontal plane.
// World X maps to screen X; world Z maps up the screen, so screen Y is
// negated. Camera translation is applied by the camera system.
func (r *SceneRenderer) worldToScreen(pos physics.Vector3) engo.Point {
	return engo.Point{
		X: float32(pos.X),
		Y: float32(-pos.Z),
	}
}

// headingDegrees extracts the yaw of the ship's forward vector as a
// screen rotation in degrees
func headingDegrees(orientation physics.Quaternion) float32 {
	fwd := orientation.Forward()
	yaw := math.Atan2(fwd.X, fwd.Z)
	return float32(yaw * 180 / math.Pi)
}

// shipColor tints the ship by warp phase
func shipColor(phase string) color.Color {
	switch phase {
	case "idle":
		return color.RGBA{255, 255, 255, 255}
	case "charging":
		return color.RGBA{120, 180, 255, 255}
	default:
		return color.RGBA{80, 120, 255, 255}
	}
}

// bodyColor tints a body by damage state
func bodyColor(body engine.BodyState) color.Color {
	switch body.State {
	case "healthy":
		return color.RGBA{120, 220, 120, 255}
	case "damaged":
		return color.RGBA{230, 210, 90, 255}
	case "critical":
		return color.RGBA{240, 130, 60, 255}
	case "exploding":
		return color.RGBA{255, 60, 40, 255}
	case "debris":
		return color.RGBA{130, 130, 130, 255}
	case "respawning":
		return color.RGBA{90, 200, 230, 255}
	default:
		return color.RGBA{255, 255, 255, 255}
	}
}
