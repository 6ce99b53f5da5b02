// pkg/entity/entity.go
package entity

import (
	"github.com/opd-ai/go-starship/pkg/physics"
)

// ID is a unique identifier for a destructible body
type ID uint64

// Registry is the authoritative table of destructible bodies. Target
// locks and in-flight torpedoes reference bodies by ID through the
// registry, never by live pointer, so a body's destruction/respawn cycle
// cannot leave a dangling reference.
type Registry struct {
	bodies map[ID]*Body
	order  []ID
	nextID ID
}

// NewRegistry creates an empty body registry
func NewRegistry() *Registry {
	return &Registry{
		bodies: make(map[ID]*Body),
		nextID: 1,
	}
}

// Add registers a body and assigns it the next sequential ID.
// Insertion order is preserved for deterministic target cycling.
func (r *Registry) Add(body *Body) ID {
	id := r.nextID
	r.nextID++
	body.ID = id
	r.bodies[id] = body
	r.order = append(r.order, id)
	return id
}

// Get returns the body with the given ID, or nil if none exists
func (r *Registry) Get(id ID) *Body {
	return r.bodies[id]
}

// All returns every body in insertion order
func (r *Registry) All() []*Body {
	bodies := make([]*Body, 0, len(r.order))
	for _, id := range r.order {
		bodies = append(bodies, r.bodies[id])
	}
	return bodies
}

// Targetable returns the bodies that are currently valid weapon targets,
// in insertion order
func (r *Registry) Targetable() []*Body {
	bodies := make([]*Body, 0, len(r.order))
	for _, id := range r.order {
		if body := r.bodies[id]; body.CanTarget() {
			bodies = append(bodies, body)
		}
	}
	return bodies
}

// Len returns the number of registered bodies
func (r *Registry) Len() int {
	return len(r.order)
}

// NearestTargetable returns the targetable body closest to position, or
// nil if none exists
func (r *Registry) NearestTargetable(position physics.Vector3) *Body {
	var nearest *Body
	best := 0.0
	for _, id := range r.order {
		body := r.bodies[id]
		if !body.CanTarget() {
			continue
		}
		d := body.Position.Distance(position)
		if nearest == nil || d < best {
			nearest = body
			best = d
		}
	}
	return nearest
}
