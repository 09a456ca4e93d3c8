package game

import "math"

// Weapon subsystem names, used as stats keys and in unlock topics.
const (
	WeaponCannon    = "cannon"
	WeaponDrones    = "drones"
	WeaponBlast     = "blast"
	WeaponAirstrike = "airstrike"
)

// ProjectileGroup is a pooled set of projectile entities with a shared
// lifetime. Spawning past the cap recycles the oldest projectile, so the
// group never grows unbounded.
type ProjectileGroup struct {
	world       *World
	projectiles []*Entity
	max         int
	entityType  EntityType
	maxRange    float64
}

// NewProjectileGroup creates a pooled projectile group. entityType
// distinguishes player projectiles from enemy projectiles for the
// collision translator.
func NewProjectileGroup(world *World, entityType EntityType, maxProjectiles int, maxRange float64) *ProjectileGroup {
	return &ProjectileGroup{
		world:       world,
		max:         maxProjectiles,
		entityType:  entityType,
		maxRange:    maxRange,
	}
}

// Spawn fires a projectile carrying damage metadata for the collision
// translator. Oldest-first recycling kicks in at the pool cap.
func (g *ProjectileGroup) Spawn(x, y, vx, vy, damage float64, critical bool, weapon string) *Entity {
	var projectile *Entity
	if len(g.projectiles) >= g.max {
		// Reuse oldest projectile
		projectile = g.projectiles[0]
		g.projectiles = g.projectiles[1:]
		g.world.UnregisterEntity(projectile)
		projectile.Reset()
	} else {
		projectile = NewEntity(0, 0, 3.0, g.entityType)
	}

	projectile.X = x
	projectile.Y = y
	projectile.VX = vx
	projectile.VY = vy
	projectile.Type = g.entityType
	projectile.Active = true
	projectile.Age = 0
	projectile.Damage = damage
	projectile.Critical = critical
	projectile.Weapon = weapon
	projectile.Health = 1.0
	projectile.MaxHealth = 1.0
	if speed := math.Hypot(vx, vy); speed > 0 && g.maxRange > 0 {
		projectile.Lifetime = g.maxRange / speed
	}

	g.world.RegisterEntity(projectile)
	g.projectiles = append(g.projectiles, projectile)
	return projectile
}

// Update integrates projectile movement and retires expired ones.
func (g *ProjectileGroup) Update(deltaTime float64) {
	if g.world.Suspended() {
		return
	}
	for _, p := range g.projectiles {
		if !p.Active {
			continue
		}
		p.Update(deltaTime)
		g.world.UpdateEntityCell(p)
		if p.Expired() {
			g.Deactivate(p)
		}
	}
}

// Deactivate returns a projectile to the pool. Calling it twice for the
// same projectile is harmless; the active flag gates the real work.
func (g *ProjectileGroup) Deactivate(p *Entity) {
	if !p.Active {
		return
	}
	p.Active = false
	g.world.UnregisterEntity(p)
}

// Active returns the currently live projectiles.
func (g *ProjectileGroup) Active() []*Entity {
	live := make([]*Entity, 0, len(g.projectiles))
	for _, p := range g.projectiles {
		if p.Active {
			live = append(live, p)
		}
	}
	return live
}

// ActiveCount returns the number of live projectiles.
func (g *ProjectileGroup) ActiveCount() int {
	n := 0
	for _, p := range g.projectiles {
		if p.Active {
			n++
		}
	}
	return n
}

// PredictiveAim calculates the predicted target position accounting for
// target velocity and projectile speed. Falls back to the target's
// current position when no intercept exists.
func PredictiveAim(shooterX, shooterY, targetX, targetY, targetVX, targetVY, projectileSpeed float64) (predictedX, predictedY float64) {
	rx := targetX - shooterX
	ry := targetY - shooterY

	// Solve |r + v*t| = s*t for the intercept time t.
	a := targetVX*targetVX + targetVY*targetVY - projectileSpeed*projectileSpeed
	b := 2 * (rx*targetVX + ry*targetVY)
	c := rx*rx + ry*ry

	var t float64
	if math.Abs(a) < 1e-9 {
		if math.Abs(b) < 1e-9 {
			return targetX, targetY
		}
		t = -c / b
	} else {
		disc := b*b - 4*a*c
		if disc < 0 {
			return targetX, targetY
		}
		sqrtDisc := math.Sqrt(disc)
		t1 := (-b - sqrtDisc) / (2 * a)
		t2 := (-b + sqrtDisc) / (2 * a)
		t = math.Min(t1, t2)
		if t < 0 {
			t = math.Max(t1, t2)
		}
	}
	if t < 0 {
		return targetX, targetY
	}

	return targetX + targetVX*t, targetY + targetVY*t
}
