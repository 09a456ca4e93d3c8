package game

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// MoveInput provides the mech's movement axis. The keyboard implements
// it for play; the headless simulator provides a scripted one.
type MoveInput interface {
	// Axis returns the desired movement direction, each component in [-1, 1].
	Axis() (x, y float64)
}

// KeyboardInput reads WASD / arrow keys.
type KeyboardInput struct{}

// NewKeyboardInput creates a keyboard movement provider.
func NewKeyboardInput() *KeyboardInput {
	return &KeyboardInput{}
}

// Axis returns the movement direction from the pressed keys.
func (k *KeyboardInput) Axis() (float64, float64) {
	var x, y float64
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA) {
		x -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD) {
		x += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyW) {
		y -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyS) {
		y += 1
	}
	return x, y
}

// Player is the player-controlled mech: position and health live on its
// entity, everything else is build state mutated by upgrades.
type Player struct {
	entity *Entity
	world  *World
	input  MoveInput

	moveSpeed    float64
	magnetRadius float64
	armor        float64
	critChance   float64

	// Per-weapon multipliers applied on top of the tuning base values.
	cannonDamageMult   float64
	cannonCooldownMult float64
	droneCount         int
	blastRadiusMult    float64

	hasCannon    bool
	hasDrones    bool
	hasBlast     bool
	hasAirstrike bool

	overlapping  bool
	contactTimer float64

	// selecting is set while the upgrade picker is open; movement stays
	// frozen until OnUpgradeSelected.
	selecting bool

	dead bool
}

// NewPlayer creates the mech at the center of the world and registers
// its entity. The cannon is held from the start; everything else is
// unlocked through upgrades.
func NewPlayer(world *World, input MoveInput) *Player {
	tuning := world.Config.Tuning
	entity := NewEntity(world.Config.WorldWidth/2, world.Config.WorldHeight/2, 14.0, EntityTypePlayer)
	entity.MaxHealth = tuning.PlayerHealth
	entity.Health = tuning.PlayerHealth
	world.RegisterEntity(entity)

	return &Player{
		entity:             entity,
		world:              world,
		input:              input,
		moveSpeed:          tuning.PlayerSpeed,
		magnetRadius:       tuning.PlayerMagnetRadius,
		critChance:         0.05,
		cannonDamageMult:   1.0,
		cannonCooldownMult: 1.0,
		blastRadiusMult:    1.0,
		hasCannon:          true,
	}
}

// Entity returns the player's world entity.
func (p *Player) Entity() *Entity {
	return p.entity
}

// Body returns the player's physics bounds, or nil if the entity is
// missing. Callers treat nil as "no overlap possible".
func (p *Player) Body() *Rect {
	if p.entity == nil {
		return nil
	}
	bounds := p.entity.Bounds()
	return &bounds
}

// Update applies movement input and contact damage while overlapping.
func (p *Player) Update(deltaTime float64) {
	if p.dead || p.world.Suspended() {
		return
	}

	if p.selecting {
		p.entity.VX = 0
		p.entity.VY = 0
	} else if p.input != nil {
		x, y := p.input.Axis()
		length := math.Hypot(x, y)
		if length > 1 {
			x /= length
			y /= length
		}
		p.entity.VX = x * p.moveSpeed
		p.entity.VY = y * p.moveSpeed
	}

	p.entity.Update(deltaTime)

	// Keep the mech inside the world.
	p.entity.X = math.Max(0, math.Min(p.entity.X, p.world.Config.WorldWidth))
	p.entity.Y = math.Max(0, math.Min(p.entity.Y, p.world.Config.WorldHeight))
	p.world.UpdateEntityCell(p.entity)

	// Contact damage ticks while touching at least one enemy.
	if p.overlapping {
		p.contactTimer += deltaTime
		if p.contactTimer >= 0.25 {
			p.contactTimer = 0
			p.TakeDamage(p.world.Config.Tuning.PlayerContactDPS * 0.25)
		}
	} else {
		p.contactTimer = 0
	}
}

// Health returns the mech's current health.
func (p *Player) Health() float64 {
	return p.entity.Health
}

// MaxHealth returns the mech's maximum health.
func (p *Player) MaxHealth() float64 {
	return p.entity.MaxHealth
}

// IsDead reports whether the mech has been destroyed.
func (p *Player) IsDead() bool {
	return p.dead
}

// TakeDamage applies damage after armor reduction and marks the mech
// dead at zero health.
func (p *Player) TakeDamage(amount float64) {
	if p.dead {
		return
	}
	amount -= p.armor
	if amount < 1 {
		amount = 1
	}
	p.entity.Health -= amount
	if p.entity.Health <= 0 {
		p.entity.Health = 0
		p.dead = true
	}
}

// Heal restores health up to the maximum.
func (p *Player) Heal(amount float64) {
	p.entity.Health = math.Min(p.entity.Health+amount, p.entity.MaxHealth)
}

// SetOverlapping records whether the mech currently touches an enemy.
func (p *Player) SetOverlapping(v bool) {
	p.overlapping = v
}

// Overlapping reports the last overlap value pushed by the orchestrator.
func (p *Player) Overlapping() bool {
	return p.overlapping
}

// BeginUpgradeSelection freezes movement while the picker is open.
func (p *Player) BeginUpgradeSelection() {
	p.selecting = true
}

// OnUpgradeSelected unblocks the mech after an upgrade choice resolves.
func (p *Player) OnUpgradeSelected() {
	p.selecting = false
}

// Selecting reports whether movement is frozen for upgrade selection.
func (p *Player) Selecting() bool {
	return p.selecting
}

// Ability queries, one per weapon subsystem.

// HasCannonAbility reports whether the cannon is held.
func (p *Player) HasCannonAbility() bool { return p.hasCannon }

// HasDroneAbility reports whether the drone swarm is unlocked.
func (p *Player) HasDroneAbility() bool { return p.hasDrones }

// HasBlastAbility reports whether the area blast is unlocked.
func (p *Player) HasBlastAbility() bool { return p.hasBlast }

// HasAirstrikeAbility reports whether air strikes are unlocked.
func (p *Player) HasAirstrikeAbility() bool { return p.hasAirstrike }

// Mutators invoked by upgrade effects.

// AddMaxHealth raises maximum health and heals by the same amount.
func (p *Player) AddMaxHealth(amount float64) {
	p.entity.MaxHealth += amount
	p.entity.Health += amount
}

// AddMoveSpeed raises movement speed.
func (p *Player) AddMoveSpeed(amount float64) {
	p.moveSpeed += amount
}

// AddArmor raises flat damage reduction.
func (p *Player) AddArmor(amount float64) {
	p.armor += amount
}

// AddCritChance raises the critical hit chance, capped at 60%.
func (p *Player) AddCritChance(amount float64) {
	p.critChance = math.Min(p.critChance+amount, 0.6)
}

// AddMagnetRadius widens the XP pickup radius.
func (p *Player) AddMagnetRadius(amount float64) {
	p.magnetRadius += amount
}

// BoostCannonDamage scales cannon damage multiplicatively.
func (p *Player) BoostCannonDamage(factor float64) {
	p.cannonDamageMult *= factor
}

// BoostCannonRate shortens the cannon cooldown multiplicatively.
func (p *Player) BoostCannonRate(factor float64) {
	p.cannonCooldownMult *= factor
}

// UnlockDrones enables the drone swarm and adds one drone.
func (p *Player) UnlockDrones() {
	p.hasDrones = true
	p.droneCount++
}

// AddDrone adds one drone to the swarm.
func (p *Player) AddDrone() {
	p.droneCount++
}

// UnlockBlast enables the area blast.
func (p *Player) UnlockBlast() {
	p.hasBlast = true
}

// BoostBlastRadius widens the blast multiplicatively.
func (p *Player) BoostBlastRadius(factor float64) {
	p.blastRadiusMult *= factor
}

// UnlockAirstrike enables air strikes.
func (p *Player) UnlockAirstrike() {
	p.hasAirstrike = true
}

// Build accessors used by the weapon subsystems.

// CannonDamageMult returns the cannon damage multiplier.
func (p *Player) CannonDamageMult() float64 { return p.cannonDamageMult }

// CannonCooldownMult returns the cannon cooldown multiplier.
func (p *Player) CannonCooldownMult() float64 { return p.cannonCooldownMult }

// DroneCount returns the number of drones in the swarm.
func (p *Player) DroneCount() int { return p.droneCount }

// BlastRadiusMult returns the blast radius multiplier.
func (p *Player) BlastRadiusMult() float64 { return p.blastRadiusMult }

// CritChance returns the critical hit chance.
func (p *Player) CritChance() float64 { return p.critChance }

// MagnetRadius returns the XP pickup radius.
func (p *Player) MagnetRadius() float64 { return p.magnetRadius }
