package game

import (
	"math"
	"math/rand"
)

// CannonSystem is the mech's primary weapon: an auto-aiming projectile
// cannon firing at the nearest enemy with predictive lead.
type CannonSystem struct {
	world      *World
	player     *Player
	shots      *ProjectileGroup
	stats      *StatsTracker
	bus        *EventBus
	rng        *rand.Rand
	fireTimer  float64
	active     bool
	shotSpeed  float64
}

// NewCannonSystem creates the cannon firing into the given group.
func NewCannonSystem(world *World, player *Player, shots *ProjectileGroup, stats *StatsTracker, bus *EventBus, rng *rand.Rand) *CannonSystem {
	return &CannonSystem{
		world:     world,
		player:    player,
		shots:     shots,
		stats:     stats,
		bus:       bus,
		rng:       rng,
		shotSpeed: 520.0,
	}
}

// Name returns the cannon's stats key.
func (c *CannonSystem) Name() string { return WeaponCannon }

// Unlocked reports whether the player holds the cannon.
func (c *CannonSystem) Unlocked() bool { return c.player.HasCannonAbility() }

// IsActive reports whether the cannon has been activated.
func (c *CannonSystem) IsActive() bool { return c.active }

// UnlockAndActivate starts the cannon's active-time clock and announces
// the unlock.
func (c *CannonSystem) UnlockAndActivate() {
	if c.active {
		return
	}
	c.active = true
	c.stats.WeaponActivated(WeaponCannon, 1)
	c.bus.Publish(UnlockTopic(WeaponCannon), nil)
}

// Update fires at the nearest enemy whenever the cooldown allows.
func (c *CannonSystem) Update(_ float64, deltaTime float64) {
	if !c.active || c.world.Suspended() {
		return
	}

	tuning := c.world.Config.Tuning
	c.fireTimer += deltaTime
	cooldown := tuning.CannonCooldown * c.player.CannonCooldownMult()
	if c.fireTimer < cooldown {
		return
	}

	playerEnt := c.player.Entity()
	target := nearestEnemy(c.world, playerEnt.X, playerEnt.Y, tuning.CannonRange)
	if target == nil {
		return
	}
	c.fireTimer = 0

	aimX, aimY := PredictiveAim(playerEnt.X, playerEnt.Y, target.X, target.Y, target.VX, target.VY, c.shotSpeed)
	dx := aimX - playerEnt.X
	dy := aimY - playerEnt.Y
	dist := math.Hypot(dx, dy)
	if dist == 0 {
		return
	}

	damage := tuning.CannonDamage * c.player.CannonDamageMult()
	critical := c.rng.Float64() < c.player.CritChance()
	c.shots.Spawn(playerEnt.X, playerEnt.Y, dx/dist*c.shotSpeed, dy/dist*c.shotSpeed, damage, critical, WeaponCannon)
}
