// pkg/engine/state.go
package engine

import (
	"github.com/opd-ai/go-starship/pkg/defense"
	"github.com/opd-ai/go-starship/pkg/entity"
	"github.com/opd-ai/go-starship/pkg/physics"
	"github.com/opd-ai/go-starship/pkg/weapons"
)

// ShipState is the per-tick ship snapshot forwarded to rendering and UI
type ShipState struct {
	Position        physics.Vector3
	Orientation     physics.Quaternion
	Velocity        physics.Vector3
	ThrottlePercent float64
	WarpPhase       string
	WarpLevel       int
	TravelFraction  float64
}

// BodyState is the per-tick snapshot of one destructible body, consumed
// by rendering to drive destruction and respawn effects
type BodyState struct {
	ID                entity.ID
	Name              string
	Position          physics.Vector3
	Radius            float64
	HealthPercent     float64
	State             string
	ExplosionProgress float64
	RespawnProgress   float64
}

// GameState bundles every subsystem snapshot for one tick
type GameState struct {
	Tick    uint64
	Elapsed float64
	Ship    ShipState
	Weapons weapons.State
	Defense defense.State
	Bodies  []BodyState
}

// ShipState returns the ship snapshot for the current tick
func (s *Simulation) ShipState() ShipState {
	kin := s.flight.Kinematics()
	return ShipState{
		Position:        kin.Position,
		Orientation:     kin.Orientation,
		Velocity:        kin.Velocity,
		ThrottlePercent: kin.ThrottlePercent,
		WarpPhase:       s.drive.Phase().String(),
		WarpLevel:       s.drive.Level(),
		TravelFraction:  s.drive.TravelFraction(),
	}
}

// WeaponsState returns the weapons snapshot for the current tick
func (s *Simulation) WeaponsState() weapons.State {
	return s.weapons.Snapshot()
}

// DefenseState returns the defense snapshot for the current tick
func (s *Simulation) DefenseState() defense.State {
	return s.defense.Snapshot()
}

// BodyStates returns the destructible-body snapshots in registry order
func (s *Simulation) BodyStates() []BodyState {
	bodies := s.registry.All()
	states := make([]BodyState, 0, len(bodies))
	for _, body := range bodies {
		states = append(states, BodyState{
			ID:                body.ID,
			Name:              body.Name,
			Position:          body.Position,
			Radius:            body.Radius,
			HealthPercent:     body.HealthPercent(),
			State:             body.State.String(),
			ExplosionProgress: body.ExplosionProgress,
			RespawnProgress:   body.RespawnProgress,
		})
	}
	return states
}

// GameState returns the complete snapshot for the current tick
func (s *Simulation) GameState() GameState {
	return GameState{
		Tick:    s.currentTick,
		Elapsed: s.elapsed,
		Ship:    s.ShipState(),
		Weapons: s.WeaponsState(),
		Defense: s.DefenseState(),
		Bodies:  s.BodyStates(),
	}
}
