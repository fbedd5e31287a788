// Package particles simulates the ornamental background: a box of
// drifting points joined by edges when they come close.
package particles

import (
	"math"
	"math/rand/v2"
)

// Config controls the particle field.
type Config struct {
	Count        int     // number of bodies
	Bound        float64 // bodies live in [-Bound, Bound] on every axis
	MaxSpeed     float64 // per-axis velocity is drawn from [-MaxSpeed, MaxSpeed]
	LinkDistance float64 // pairs closer than this are joined
}

// DefaultConfig matches the dashboard background.
func DefaultConfig() Config {
	return Config{
		Count:        200,
		Bound:        10,
		MaxSpeed:     0.005,
		LinkDistance: 1.5,
	}
}

// Scene rotation applied per tick, in radians.
const (
	rotationStepX = 0.0001
	rotationStepY = 0.0002
)

// Vec3 is a point or velocity.
type Vec3 struct {
	X, Y, Z float64
}

// Dist returns the Euclidean distance between two points.
func (v Vec3) Dist(o Vec3) float64 {
	dx, dy, dz := v.X-o.X, v.Y-o.Y, v.Z-o.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Body is a single particle.
type Body struct {
	Pos Vec3
	Vel Vec3
}

// Edge joins two bodies by index.
type Edge struct {
	A, B    int
	Opacity float64
}

// Field is the particle simulation. It is not safe for concurrent use;
// each stream owns its own Field.
type Field struct {
	cfg       Config
	bodies    []Body
	rotationX float64
	rotationY float64
}

// NewField scatters cfg.Count bodies uniformly inside the bounds.
func NewField(cfg Config, rng *rand.Rand) *Field {
	spread := func(r float64) float64 { return (rng.Float64()*2 - 1) * r }

	bodies := make([]Body, cfg.Count)
	for i := range bodies {
		bodies[i] = Body{
			Pos: Vec3{spread(cfg.Bound), spread(cfg.Bound), spread(cfg.Bound)},
			Vel: Vec3{spread(cfg.MaxSpeed), spread(cfg.MaxSpeed), spread(cfg.MaxSpeed)},
		}
	}
	return &Field{cfg: cfg, bodies: bodies}
}

// NewFieldFromBodies builds a field with explicit bodies.
func NewFieldFromBodies(cfg Config, bodies []Body) *Field {
	b := make([]Body, len(bodies))
	copy(b, bodies)
	cfg.Count = len(b)
	return &Field{cfg: cfg, bodies: b}
}

// Bodies returns a copy of the current bodies.
func (f *Field) Bodies() []Body {
	b := make([]Body, len(f.bodies))
	copy(b, f.bodies)
	return b
}

// Step advances every body by its velocity. A velocity component is
// reversed once the body has crossed the bound on that axis.
func (f *Field) Step() {
	bound := f.cfg.Bound
	for i := range f.bodies {
		b := &f.bodies[i]
		b.Pos.X += b.Vel.X
		b.Pos.Y += b.Vel.Y
		b.Pos.Z += b.Vel.Z

		if b.Pos.X < -bound || b.Pos.X > bound {
			b.Vel.X = -b.Vel.X
		}
		if b.Pos.Y < -bound || b.Pos.Y > bound {
			b.Vel.Y = -b.Vel.Y
		}
		if b.Pos.Z < -bound || b.Pos.Z > bound {
			b.Vel.Z = -b.Vel.Z
		}
	}
	f.rotationX += rotationStepX
	f.rotationY += rotationStepY
}

// Edges returns every pair closer than LinkDistance. Opacity falls off
// linearly from 1 at distance 0 to 0 at LinkDistance.
func (f *Field) Edges() []Edge {
	var edges []Edge
	limit := f.cfg.LinkDistance
	for i := 0; i < len(f.bodies); i++ {
		for j := i + 1; j < len(f.bodies); j++ {
			d := f.bodies[i].Pos.Dist(f.bodies[j].Pos)
			if d < limit {
				edges = append(edges, Edge{A: i, B: j, Opacity: 1 - d/limit})
			}
		}
	}
	return edges
}
