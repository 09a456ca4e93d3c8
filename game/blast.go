package game

// BlastSystem fires a periodic radial pulse around the mech, damaging
// and knocking back every enemy caught in the radius.
type BlastSystem struct {
	world      *World
	player     *Player
	translator *CollisionTranslator
	stats      *StatsTracker
	bus        *EventBus

	cooldownTimer float64
	active        bool

	// lastRadius is kept for the renderer's pulse ring effect.
	lastRadius   float64
	pulseVisual  float64
}

// NewBlastSystem creates the area blast subsystem.
func NewBlastSystem(world *World, player *Player, translator *CollisionTranslator, stats *StatsTracker, bus *EventBus) *BlastSystem {
	return &BlastSystem{
		world:      world,
		player:     player,
		translator: translator,
		stats:      stats,
		bus:        bus,
	}
}

// Name returns the blast's stats key.
func (b *BlastSystem) Name() string { return WeaponBlast }

// Unlocked reports whether the blast has been bought.
func (b *BlastSystem) Unlocked() bool { return b.player.HasBlastAbility() }

// IsActive reports whether the blast has been activated.
func (b *BlastSystem) IsActive() bool { return b.active }

// UnlockAndActivate starts the stats clock and announces the unlock.
func (b *BlastSystem) UnlockAndActivate() {
	if b.active {
		return
	}
	b.active = true
	b.stats.WeaponActivated(WeaponBlast, 1)
	b.bus.Publish(UnlockTopic(WeaponBlast), nil)
}

// Update pulses when the cooldown elapses.
func (b *BlastSystem) Update(_ float64, deltaTime float64) {
	if !b.active || b.world.Suspended() {
		return
	}

	if b.pulseVisual > 0 {
		b.pulseVisual -= deltaTime
	}

	tuning := b.world.Config.Tuning
	b.cooldownTimer += deltaTime
	if b.cooldownTimer < tuning.BlastCooldown {
		return
	}
	b.cooldownTimer = 0

	playerEnt := b.player.Entity()
	radius := tuning.BlastRadius * b.player.BlastRadiusMult()
	b.lastRadius = radius
	b.pulseVisual = 0.3

	// Snapshot first: ApplyWeaponDamage mutates the grid on kills.
	targets := make([]*Entity, 0, 16)
	for _, enemy := range b.world.GetEntitiesInRadius(playerEnt.X, playerEnt.Y, radius) {
		if enemy.Type == EntityTypeEnemy && enemy.Active {
			targets = append(targets, enemy)
		}
	}
	for _, enemy := range targets {
		b.translator.ApplyWeaponDamage(WeaponBlast, enemy, tuning.BlastDamage, 24.0, false)
	}
}

// PulseVisual returns the remaining seconds of the pulse ring effect and
// the radius it should be drawn at.
func (b *BlastSystem) PulseVisual() (remaining, radius float64) {
	return b.pulseVisual, b.lastRadius
}
