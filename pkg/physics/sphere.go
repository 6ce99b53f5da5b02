// pkg/physics/sphere.go
package physics

// Sphere represents a spherical collision shape
type Sphere struct {
	Center Vector3
	Radius float64
}

// Collides checks if two spheres overlap
func (s Sphere) Collides(other Sphere) bool {
	return s.Center.Distance(other.Center) < s.Radius+other.Radius
}

// Contains checks if a point lies inside the sphere
func (s Sphere) Contains(point Vector3) bool {
	return s.Center.Distance(point) < s.Radius
}

// ProximityResult contains information about a sphere proximity check
type ProximityResult struct {
	Collided    bool
	Normal      Vector3
	Penetration float64
}

// CheckProximity performs a detailed sphere-distance check between a and b.
// Coincident centers short-circuit with a zero normal rather than
// normalizing a zero-length vector.
func CheckProximity(a, b Sphere) ProximityResult {
	offset := b.Center.Sub(a.Center)
	distance := offset.Length()

	if distance >= a.Radius+b.Radius {
		return ProximityResult{}
	}

	result := ProximityResult{
		Collided:    true,
		Penetration: a.Radius + b.Radius - distance,
	}
	if distance > 0 {
		result.Normal = offset.Scale(1 / distance)
	}
	return result
}
