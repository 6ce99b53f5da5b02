// pkg/engine/simulation_test.go
package engine

import (
	"math"
	"testing"

	"github.com/opd-ai/go-starship/pkg/config"
	"github.com/opd-ai/go-starship/pkg/defense"
	"github.com/opd-ai/go-starship/pkg/entity"
	"github.com/opd-ai/go-starship/pkg/event"
	"github.com/opd-ai/go-starship/pkg/input"
)

// testConfig returns defaults with a controlled two-body galaxy: a
// nearby target and a distant warp destination, both dead ahead.
func testConfig() *config.SimConfig {
	cfg := config.DefaultConfig()
	cfg.Galaxy = []config.BodyConfig{
		{Name: "Target", Z: 500, Radius: 20, MaxHealth: 100},
		{Name: "Destination", Z: 5000, Radius: 60, MaxHealth: 140},
	}
	return cfg
}

// press runs one tick with the given snapshot followed by one neutral
// tick, so held keys release cleanly
func press(s *Simulation, snapshot input.Snapshot) {
	s.Update(0.05, snapshot)
	s.Update(0.05, input.Snapshot{})
}

// runTicks advances n neutral ticks of dt
func runTicks(s *Simulation, n int, dt float64) {
	for i := 0; i < n; i++ {
		s.Update(dt, input.Snapshot{})
	}
}

func TestSimulation_TickAndElapsed(t *testing.T) {
	sim := NewSimulation(testConfig())

	runTicks(sim, 10, 0.05)
	if sim.Tick() != 10 {
		t.Errorf("Tick() = %v, want 10", sim.Tick())
	}
	if math.Abs(sim.Elapsed()-0.5) > 1e-9 {
		t.Errorf("Elapsed() = %v, want 0.5", sim.Elapsed())
	}
}

func TestSimulation_DeltaTimeGuards(t *testing.T) {
	sim := NewSimulation(testConfig())

	sim.Update(-1, input.Snapshot{})
	if sim.Elapsed() != 0 {
		t.Errorf("negative dt advanced time to %v", sim.Elapsed())
	}

	sim.Update(math.NaN(), input.Snapshot{})
	if sim.Elapsed() != 0 {
		t.Errorf("NaN dt advanced time to %v", sim.Elapsed())
	}

	sim.Update(5.0, input.Snapshot{})
	if sim.Elapsed() != 0.1 {
		t.Errorf("oversized dt advanced time by %v, want capped at 0.1", sim.Elapsed())
	}
}

func TestSimulation_SetDestination(t *testing.T) {
	sim := NewSimulation(testConfig())

	if !sim.SetDestination(2) {
		t.Error("SetDestination(2) rejected a known body")
	}
	if sim.SetDestination(99) {
		t.Error("SetDestination(99) accepted an unknown body")
	}
}

func TestSimulation_WarpRoundTrip(t *testing.T) {
	sim := NewSimulation(testConfig())

	var engaged, arrived, aborted int
	sim.EventBus.Subscribe(event.WarpEngaged, func(e event.Event) { engaged++ })
	sim.EventBus.Subscribe(event.WarpArrived, func(e event.Event) { arrived++ })
	sim.EventBus.Subscribe(event.WarpAborted, func(e event.Event) { aborted++ })

	sim.SetDestination(2)
	press(sim, input.Snapshot{EngageWarp: true})

	if engaged != 1 {
		t.Fatalf("warp_engaged published %d times, want 1", engaged)
	}
	if sim.ShipState().WarpPhase == "idle" {
		t.Fatal("drive still idle after engage")
	}

	for i := 0; i < 2000 && arrived == 0; i++ {
		sim.Update(0.05, input.Snapshot{})
	}
	if arrived != 1 {
		t.Fatalf("warp_arrived published %d times, want 1", arrived)
	}
	if aborted != 0 {
		t.Errorf("warp_aborted published %d times, want 0", aborted)
	}

	ship := sim.ShipState()
	if ship.WarpPhase != "idle" {
		t.Errorf("phase after arrival = %q, want idle", ship.WarpPhase)
	}
	if ship.ThrottlePercent != 0 {
		t.Errorf("throttle after arrival = %v, want 0", ship.ThrottlePercent)
	}

	// Stopped short of the destination body, outside its radius
	dest := sim.Registry().Get(2)
	gap := ship.Position.Distance(dest.Position)
	wantGap := dest.Radius + sim.Config.Warp.ArrivalBuffer
	if math.Abs(gap-wantGap) > 1e-6 {
		t.Errorf("arrival gap = %v, want %v", gap, wantGap)
	}
}

func TestSimulation_EmergencyStopAbortsWarp(t *testing.T) {
	sim := NewSimulation(testConfig())

	var aborted int
	sim.EventBus.Subscribe(event.WarpAborted, func(e event.Event) { aborted++ })

	sim.SetDestination(2)
	press(sim, input.Snapshot{EngageWarp: true})
	runTicks(sim, 100, 0.05)

	press(sim, input.Snapshot{EmergencyStop: true})
	if aborted != 1 {
		t.Fatalf("warp_aborted published %d times, want 1", aborted)
	}
	if sim.ShipState().WarpPhase != "idle" {
		t.Errorf("phase after abort = %q, want idle", sim.ShipState().WarpPhase)
	}
}

func TestSimulation_WeaponsFrozenDuringWarp(t *testing.T) {
	sim := NewSimulation(testConfig())
	sim.SetDestination(2)

	// Lock the near body and put a torpedo in the air
	press(sim, input.Snapshot{CycleTarget: true})
	if sim.WeaponsState().Target == nil {
		t.Fatal("no lock before warp")
	}
	press(sim, input.Snapshot{FireTorpedo: true})
	if len(sim.WeaponsState().Projectiles) != 1 {
		t.Fatal("no torpedo in flight before warp")
	}

	press(sim, input.Snapshot{EngageWarp: true})
	if sim.ShipState().WarpPhase == "idle" {
		t.Fatal("warp did not engage")
	}

	before := sim.WeaponsState()

	// Hammer the weapons with input mid-travel; everything is locked out
	for i := 0; i < 40; i++ {
		sim.Update(0.05, input.Snapshot{
			FirePhasers: true,
			FireTorpedo: i%2 == 0,
			CycleTarget: i%3 == 0,
		})
		if sim.ShipState().WarpPhase == "idle" {
			t.Fatal("travel completed before the lockout window was observed")
		}
	}

	after := sim.WeaponsState()
	if after.Heat != before.Heat {
		t.Errorf("heat changed during warp: %v -> %v", before.Heat, after.Heat)
	}
	if after.Ammo != before.Ammo {
		t.Errorf("ammo changed during warp: %d -> %d", before.Ammo, after.Ammo)
	}
	if after.Firing {
		t.Error("beam live during warp")
	}
	if len(after.Projectiles) != len(before.Projectiles) {
		t.Fatalf("projectile count changed during warp: %d -> %d",
			len(before.Projectiles), len(after.Projectiles))
	}
	for i := range after.Projectiles {
		if after.Projectiles[i].Position != before.Projectiles[i].Position {
			t.Error("torpedo moved during warp")
		}
	}
}

func TestSimulation_WeaponsRecoverAfterWarp(t *testing.T) {
	sim := NewSimulation(testConfig())
	sim.SetDestination(2)

	press(sim, input.Snapshot{EngageWarp: true})

	var arrived int
	sim.EventBus.Subscribe(event.WarpArrived, func(e event.Event) { arrived++ })
	for i := 0; i < 2000 && arrived == 0; i++ {
		sim.Update(0.05, input.Snapshot{})
	}
	if arrived == 0 {
		t.Fatal("travel never completed")
	}

	press(sim, input.Snapshot{CycleTarget: true})
	if sim.WeaponsState().Target == nil {
		t.Error("targeting still locked out after arrival")
	}
}

func TestSimulation_CollisionRoutesToFacingShield(t *testing.T) {
	cfg := testConfig()
	cfg.Galaxy = []config.BodyConfig{
		{Name: "Close", Z: 10, Radius: 8, MaxHealth: 100},
	}
	sim := NewSimulation(cfg)

	var collisions int
	sim.EventBus.Subscribe(event.HullCollision, func(e event.Event) { collisions++ })

	sim.Update(0.05, input.Snapshot{})

	if collisions != 1 {
		t.Fatalf("hull_collision published %d times, want 1", collisions)
	}
	state := sim.DefenseState()
	want := 100 - cfg.Defense.CollisionDamage
	if state.Shields[defense.QuadrantFore] != want {
		t.Errorf("fore shield = %v, want %v", state.Shields[defense.QuadrantFore], want)
	}
	// Other facings untouched
	for _, q := range []defense.Quadrant{defense.QuadrantAft, defense.QuadrantPort, defense.QuadrantStarboard} {
		if state.Shields[q] != 100 {
			t.Errorf("%v shield = %v, want 100", q, state.Shields[q])
		}
	}
}

func TestSimulation_CollisionCooldownLimitsRate(t *testing.T) {
	cfg := testConfig()
	cfg.Galaxy = []config.BodyConfig{
		{Name: "Close", Z: 10, Radius: 8, MaxHealth: 100},
	}
	sim := NewSimulation(cfg)

	var collisions int
	sim.EventBus.Subscribe(event.HullCollision, func(e event.Event) { collisions++ })

	// Half a second of sustained overlap inside a 1 second cooldown
	runTicks(sim, 10, 0.05)
	if collisions != 1 {
		t.Errorf("hull_collision published %d times in cooldown window, want 1", collisions)
	}

	// Past the cooldown the contact registers again
	runTicks(sim, 12, 0.05)
	if collisions != 2 {
		t.Errorf("hull_collision published %d times after cooldown, want 2", collisions)
	}
}

func TestSimulation_AlertEventsOnCombatTransitions(t *testing.T) {
	sim := NewSimulation(testConfig())

	var changes []string
	sim.EventBus.Subscribe(event.AlertChanged, func(e event.Event) {
		if ae, ok := e.(*event.AlertEvent); ok {
			changes = append(changes, ae.Previous+"->"+ae.Current)
		}
	})

	press(sim, input.Snapshot{CycleTarget: true})

	// Holding the beam raises combat: green -> yellow
	sim.Update(0.05, input.Snapshot{FirePhasers: true})
	if len(changes) != 1 || changes[0] != "green->yellow" {
		t.Fatalf("alert changes = %v, want [green->yellow]", changes)
	}

	// Releasing with full shields settles back to green
	runTicks(sim, 5, 0.05)
	if len(changes) != 2 || changes[1] != "yellow->green" {
		t.Fatalf("alert changes = %v, want yellow->green next", changes)
	}
}

func TestSimulation_BodyRespawnLifecycle(t *testing.T) {
	sim := NewSimulation(testConfig())

	var destroyed, respawned int
	sim.EventBus.Subscribe(event.BodyDestroyed, func(e event.Event) { destroyed++ })
	sim.EventBus.Subscribe(event.BodyRespawned, func(e event.Event) { respawned++ })

	target := sim.Registry().Get(1)
	target.ApplyDamage(500, sim.Elapsed())
	if target.State != entity.StateExploding {
		t.Fatal("test body not destroyed")
	}

	// Explosion + debris + respawn at defaults is 28 seconds
	total := sim.Config.Lifecycle.ExplosionDuration +
		sim.Config.Lifecycle.DebrisDuration +
		sim.Config.Lifecycle.RespawnDuration
	ticks := int(total/0.1) + 20
	runTicks(sim, ticks, 0.1)

	if respawned != 1 {
		t.Errorf("body_respawned published %d times, want 1", respawned)
	}
	if target.State != entity.StateHealthy {
		t.Errorf("body state after cycle = %v, want healthy", target.State)
	}
	if target.Health != target.MaxHealth {
		t.Errorf("health after respawn = %v, want %v", target.Health, target.MaxHealth)
	}
}

func TestSimulation_GameStateSnapshot(t *testing.T) {
	sim := NewSimulation(testConfig())
	runTicks(sim, 3, 0.05)

	state := sim.GameState()
	if state.Tick != 3 {
		t.Errorf("Tick = %v, want 3", state.Tick)
	}
	if len(state.Bodies) != 2 {
		t.Fatalf("Bodies = %d entries, want 2", len(state.Bodies))
	}
	if state.Bodies[0].Name != "Target" || state.Bodies[1].Name != "Destination" {
		t.Errorf("body order = [%s, %s], want registry order",
			state.Bodies[0].Name, state.Bodies[1].Name)
	}
	if state.Bodies[0].HealthPercent != 100 {
		t.Errorf("HealthPercent = %v, want 100", state.Bodies[0].HealthPercent)
	}
	if state.Ship.WarpPhase != "idle" {
		t.Errorf("WarpPhase = %q, want idle", state.Ship.WarpPhase)
	}
	if state.Defense.Alert != defense.AlertGreen {
		t.Errorf("Alert = %v, want green", state.Defense.Alert)
	}
}
