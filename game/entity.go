package game

import "math"

// EntityType identifies the type of entity
type EntityType int

const (
	EntityTypePlayer EntityType = iota
	EntityTypeEnemy
	EntityTypeProjectile
	EntityTypeEnemyProjectile
	EntityTypeXP
	EntityTypeRelic
	EntityTypeDrone
)

// Rect is an axis-aligned bounding box in world coordinates.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

// Intersects reports whether two rectangles overlap.
func (r Rect) Intersects(o Rect) bool {
	return r.MinX < o.MaxX && r.MaxX > o.MinX && r.MinY < o.MaxY && r.MaxY > o.MinY
}

// Entity represents a game entity (the mech, an enemy, a projectile, an
// XP orb, a relic pickup or a drone)
type Entity struct {
	// Position in world coordinates
	X, Y float64

	// Velocity in pixels per second
	VX, VY float64

	// Health points (0 or less means dead)
	Health float64

	// Maximum health
	MaxHealth float64

	// Collision radius in pixels
	Radius float64

	// Entity type identifier
	Type EntityType

	// Enemy kind (only meaningful for EntityTypeEnemy)
	Kind EnemyKind

	// Projectile metadata, read by the collision translator
	Damage   float64
	Critical bool
	Weapon   string

	// Value carried by XP orbs
	Value float64

	// Current cell coordinates (for fast lookup)
	CellX, CellY int

	// Whether this entity is active (used for pooling)
	Active bool

	// Time since creation / since last reset
	Age float64

	// Lifetime in seconds; entities with Lifetime > 0 expire when Age passes it
	Lifetime float64
}

// NewEntity creates a new entity with the given parameters
func NewEntity(x, y, radius float64, entityType EntityType) *Entity {
	return &Entity{
		X:         x,
		Y:         y,
		Radius:    radius,
		Type:      entityType,
		MaxHealth: 1.0,
		Health:    1.0,
		Active:    true,
	}
}

// Update integrates velocity into position and advances age.
func (e *Entity) Update(deltaTime float64) {
	if !e.Active {
		return
	}
	e.Age += deltaTime
	e.X += e.VX * deltaTime
	e.Y += e.VY * deltaTime
}

// Expired reports whether the entity's lifetime has run out.
func (e *Entity) Expired() bool {
	return e.Lifetime > 0 && e.Age >= e.Lifetime
}

// DistanceTo calculates the distance to another entity
func (e *Entity) DistanceTo(other *Entity) float64 {
	dx := e.X - other.X
	dy := e.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// IsColliding checks if this entity is colliding with another entity
func (e *Entity) IsColliding(other *Entity) bool {
	return e.DistanceTo(other) < (e.Radius + other.Radius)
}

// Bounds returns the entity's axis-aligned bounding box.
func (e *Entity) Bounds() Rect {
	return Rect{
		MinX: e.X - e.Radius,
		MinY: e.Y - e.Radius,
		MaxX: e.X + e.Radius,
		MaxY: e.Y + e.Radius,
	}
}

// Reset resets the entity for reuse in pooling
func (e *Entity) Reset() {
	e.X = 0
	e.Y = 0
	e.VX = 0
	e.VY = 0
	e.Health = e.MaxHealth
	e.Active = false
	e.CellX = 0
	e.CellY = 0
	e.Age = 0.0
	e.Lifetime = 0.0
	e.Damage = 0.0
	e.Critical = false
	e.Weapon = ""
	e.Value = 0.0
}
