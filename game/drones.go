package game

import "math"

// DroneSystem keeps a ring of drones orbiting the mech. A drone damages
// any enemy it touches, with a short per-drone cooldown so one pass
// doesn't melt a single target.
type DroneSystem struct {
	world      *World
	player     *Player
	translator *CollisionTranslator
	stats      *StatsTracker
	bus        *EventBus

	drones []*drone
	angle  float64
	active bool
}

type drone struct {
	ent      *Entity
	hitTimer float64
}

// NewDroneSystem creates the drone swarm subsystem.
func NewDroneSystem(world *World, player *Player, translator *CollisionTranslator, stats *StatsTracker, bus *EventBus) *DroneSystem {
	return &DroneSystem{
		world:      world,
		player:     player,
		translator: translator,
		stats:      stats,
		bus:        bus,
	}
}

// Name returns the drone swarm's stats key.
func (d *DroneSystem) Name() string { return WeaponDrones }

// Unlocked reports whether the drone swarm has been bought.
func (d *DroneSystem) Unlocked() bool { return d.player.HasDroneAbility() }

// IsActive reports whether the swarm has been activated.
func (d *DroneSystem) IsActive() bool { return d.active }

// UnlockAndActivate spawns the first drone and starts the stats clock.
func (d *DroneSystem) UnlockAndActivate() {
	if d.active {
		return
	}
	d.active = true
	d.stats.WeaponActivated(WeaponDrones, 1)
	d.bus.Publish(UnlockTopic(WeaponDrones), nil)
}

// Update keeps the swarm size in sync with the player's build, orbits
// the drones and applies contact damage.
func (d *DroneSystem) Update(_ float64, deltaTime float64) {
	if !d.active || d.world.Suspended() {
		return
	}

	for len(d.drones) < d.player.DroneCount() {
		ent := NewEntity(0, 0, 6.0, EntityTypeDrone)
		d.world.RegisterEntity(ent)
		d.drones = append(d.drones, &drone{ent: ent})
	}

	tuning := d.world.Config.Tuning
	playerEnt := d.player.Entity()
	d.angle += deltaTime * 2.2

	for i, dr := range d.drones {
		offset := d.angle + float64(i)*2*math.Pi/float64(len(d.drones))
		dr.ent.X = playerEnt.X + math.Cos(offset)*tuning.DroneOrbitRadius
		dr.ent.Y = playerEnt.Y + math.Sin(offset)*tuning.DroneOrbitRadius
		d.world.UpdateEntityCell(dr.ent)

		dr.hitTimer -= deltaTime
		if dr.hitTimer > 0 {
			continue
		}
		for _, enemy := range d.world.GetEntitiesInRadius(dr.ent.X, dr.ent.Y, dr.ent.Radius+20.0) {
			if enemy.Type != EntityTypeEnemy || !enemy.Active {
				continue
			}
			if dr.ent.IsColliding(enemy) {
				d.translator.ApplyWeaponDamage(WeaponDrones, enemy, tuning.DroneDamage, 10.0, false)
				dr.hitTimer = 0.4
				break
			}
		}
	}
}
