// pkg/weapons/projectile.go
package weapons

import (
	"github.com/opd-ai/go-starship/pkg/entity"
	"github.com/opd-ai/go-starship/pkg/physics"
)

// Projectile is an in-flight torpedo. It flies at fixed speed toward the
// aim point captured at launch; it is never re-homed to the target's
// current position.
type Projectile struct {
	ID       uint64
	TargetID entity.ID
	Position physics.Vector3
	Aim      physics.Vector3
	Speed    float64
}

// advance moves the projectile by dt seconds and reports whether it
// reached its aim point within this tick's travel distance
func (p *Projectile) advance(dt float64) bool {
	offset := p.Aim.Sub(p.Position)
	distance := offset.Length()
	step := p.Speed * dt

	if distance <= step {
		p.Position = p.Aim
		return true
	}
	// distance > step >= 0, so the direction is never zero-length here
	p.Position = p.Position.Add(offset.Scale(step / distance))
	return false
}
