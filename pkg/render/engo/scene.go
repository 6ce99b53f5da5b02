// pkg/render/engo/scene.go
package engo

import (
	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-starship/pkg/engine"
)

// GameScene runs the simulation inside an Engo window. Each frame it
// samples input, advances the simulation by the frame delta and feeds
// the resulting snapshot to the renderer and HUD.
type GameScene struct {
	world *ecs.World

	sim *engine.Simulation

	renderer *SceneRenderer
	camera   *CameraSystem
	input    *InputSystem
	hud      *HUDSystem
}

// NewGameScene creates a scene around an existing simulation
func NewGameScene(sim *engine.Simulation) *GameScene {
	return &GameScene{
		sim:   sim,
		world: &ecs.World{},
	}
}

// Type returns the scene type (required by Engo)
func (scene *GameScene) Type() string {
	return "GameScene"
}

// Preload is called before the scene starts (required by Engo)
func (scene *GameScene) Preload() {
	// Sprites are generated procedurally in Setup
}

// Setup is called when the scene starts (required by Engo)
func (scene *GameScene) Setup(u engo.Updater) {
	scene.world = &ecs.World{}

	RegisterButtons()

	scene.world.AddSystem(&common.MouseSystem{})

	scene.input = NewInputSystem()
	scene.world.AddSystem(scene.input)

	scene.renderer = NewSceneRenderer(scene.world)
	if err := scene.renderer.Initialize(); err != nil {
		panic("failed to initialize renderer: " + err.Error())
	}

	scene.world.AddSystem(&simDriver{scene: scene})

	scene.camera = NewCameraSystem()
	scene.world.AddSystem(scene.camera)

	scene.hud = NewHUDSystem(scene.renderer.RenderSystem())
	scene.world.AddSystem(scene.hud)
}

// advance steps the simulation and pushes the snapshot to rendering
func (scene *GameScene) advance(dt float32) {
	scene.sim.Update(float64(dt), scene.input.Snapshot())

	state := scene.sim.GameState()

	scene.renderer.Clear()
	scene.renderer.RenderShip(state.Ship)
	for _, body := range state.Bodies {
		scene.renderer.RenderBody(body)
	}
	for _, p := range state.Weapons.Projectiles {
		scene.renderer.RenderProjectile(p)
	}
	scene.renderer.Present()

	scene.camera.SetTarget(scene.renderer.worldToScreen(state.Ship.Position))
	scene.hud.UpdateGameState(state)
}

// simDriver is the ECS system that ticks the simulation once per frame
type simDriver struct {
	scene *GameScene
}

// Add satisfies the ecs.System interface
func (d *simDriver) Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent) {
	// Not used for simulation driver
}

// Remove satisfies the ecs.System interface
func (d *simDriver) Remove(basic ecs.BasicEntity) {
	// Not used for simulation driver
}

// Update advances the simulation by the frame delta
func (d *simDriver) Update(dt float32) {
	d.scene.advance(dt)
}

// Run opens the window and hands control to Engo. Blocks until the
// window closes.
func Run(title string, width, height int, sim *engine.Simulation) {
	opts := engo.RunOptions{
		Title:  title,
		Width:  width,
		Height: height,
	}
	engo.Run(opts, NewGameScene(sim))
}
