package game

import "math/rand"

// AirstrikeSystem periodically calls a strike onto a random live enemy's
// position. The impact is delayed through the scene timer lane, so a
// pause ordered between call-in and impact also delays the strike.
type AirstrikeSystem struct {
	world      *World
	player     *Player
	translator *CollisionTranslator
	stats      *StatsTracker
	bus        *EventBus
	timers     *Timers
	rng        *rand.Rand

	cooldownTimer float64
	active        bool

	// markers are the pending strike positions, kept for the renderer.
	markers []strikeMarker
}

type strikeMarker struct {
	X, Y   float64
	handle TimerHandle
}

// NewAirstrikeSystem creates the air strike subsystem.
func NewAirstrikeSystem(world *World, player *Player, translator *CollisionTranslator, stats *StatsTracker, bus *EventBus, timers *Timers, rng *rand.Rand) *AirstrikeSystem {
	return &AirstrikeSystem{
		world:      world,
		player:     player,
		translator: translator,
		stats:      stats,
		bus:        bus,
		timers:     timers,
		rng:        rng,
	}
}

// Name returns the air strike's stats key.
func (a *AirstrikeSystem) Name() string { return WeaponAirstrike }

// Unlocked reports whether air strikes have been bought.
func (a *AirstrikeSystem) Unlocked() bool { return a.player.HasAirstrikeAbility() }

// IsActive reports whether the subsystem has been activated.
func (a *AirstrikeSystem) IsActive() bool { return a.active }

// UnlockAndActivate starts the stats clock and announces the unlock.
func (a *AirstrikeSystem) UnlockAndActivate() {
	if a.active {
		return
	}
	a.active = true
	a.stats.WeaponActivated(WeaponAirstrike, 1)
	a.bus.Publish(UnlockTopic(WeaponAirstrike), nil)
}

// Update calls in a strike whenever the cooldown elapses and a target
// exists.
func (a *AirstrikeSystem) Update(_ float64, deltaTime float64) {
	if !a.active || a.world.Suspended() {
		return
	}

	tuning := a.world.Config.Tuning
	a.cooldownTimer += deltaTime
	if a.cooldownTimer < tuning.AirstrikeCooldown {
		return
	}

	target := a.pickTarget()
	if target == nil {
		return
	}
	a.cooldownTimer = 0

	x, y := target.X, target.Y
	marker := strikeMarker{X: x, Y: y}
	marker.handle = a.timers.After(tuning.AirstrikeDelay, func() {
		a.impact(x, y)
	})
	a.markers = append(a.markers, marker)
}

// pickTarget chooses a random live enemy near the player.
func (a *AirstrikeSystem) pickTarget() *Entity {
	playerEnt := a.player.Entity()
	candidates := make([]*Entity, 0, 32)
	for _, e := range a.world.GetEntitiesInRadius(playerEnt.X, playerEnt.Y, 600.0) {
		if e.Type == EntityTypeEnemy && e.Active {
			candidates = append(candidates, e)
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	return candidates[a.rng.Intn(len(candidates))]
}

// impact applies area damage at the strike point and retires its marker.
func (a *AirstrikeSystem) impact(x, y float64) {
	tuning := a.world.Config.Tuning

	targets := make([]*Entity, 0, 16)
	for _, enemy := range a.world.GetEntitiesInRadius(x, y, tuning.AirstrikeRadius) {
		if enemy.Type == EntityTypeEnemy && enemy.Active {
			targets = append(targets, enemy)
		}
	}
	for _, enemy := range targets {
		a.translator.ApplyWeaponDamage(WeaponAirstrike, enemy, tuning.AirstrikeDamage, 18.0, false)
	}

	for i, m := range a.markers {
		if m.X == x && m.Y == y {
			a.markers = append(a.markers[:i], a.markers[i+1:]...)
			break
		}
	}
}

// Markers returns the pending strike positions for rendering.
func (a *AirstrikeSystem) Markers() []strikeMarker {
	return a.markers
}
