package game

import (
	"math"
	"math/rand"
)

// EnemyKind defines the enemy variants. The first three are ground
// units; the wasp is aerial and updated last each frame.
type EnemyKind int

const (
	EnemyGrunt EnemyKind = iota // slow chaser, the bulk of every wave
	EnemyBrute                  // tanky, high contact damage
	EnemySpitter                // keeps distance and fires shots
	EnemyWasp                   // aerial, fast, erratic approach
)

// String returns the enemy kind name used in events and logs.
func (k EnemyKind) String() string {
	switch k {
	case EnemyGrunt:
		return "grunt"
	case EnemyBrute:
		return "brute"
	case EnemySpitter:
		return "spitter"
	case EnemyWasp:
		return "wasp"
	default:
		return "unknown"
	}
}

// EnemyKindConfig holds configuration for each enemy kind
type EnemyKindConfig struct {
	Kind          EnemyKind
	Speed         float64
	Health        float64
	Radius        float64
	XPValue       float64
	Aerial        bool
	KeepDistance  float64 // spitter stand-off range, 0 for melee kinds
	ShootCooldown float64 // only used by the spitter
}

// GetEnemyKindConfig returns configuration for an enemy kind
func GetEnemyKindConfig(kind EnemyKind) EnemyKindConfig {
	switch kind {
	case EnemyGrunt:
		return EnemyKindConfig{
			Kind:    EnemyGrunt,
			Speed:   90.0,
			Health:  20.0,
			Radius:  10.0,
			XPValue: 4.0,
		}
	case EnemyBrute:
		return EnemyKindConfig{
			Kind:    EnemyBrute,
			Speed:   55.0,
			Health:  80.0,
			Radius:  16.0,
			XPValue: 12.0,
		}
	case EnemySpitter:
		return EnemyKindConfig{
			Kind:          EnemySpitter,
			Speed:         70.0,
			Health:        30.0,
			Radius:        11.0,
			XPValue:       8.0,
			KeepDistance:  260.0,
			ShootCooldown: 2.2,
		}
	case EnemyWasp:
		return EnemyKindConfig{
			Kind:    EnemyWasp,
			Speed:   160.0,
			Health:  14.0,
			Radius:  8.0,
			XPValue: 6.0,
			Aerial:  true,
		}
	default:
		return GetEnemyKindConfig(EnemyGrunt)
	}
}

// EnemySubsystem owns every live enemy of one kind: spawning, chase AI,
// shooting for the spitter, and damage application. One instance exists
// per kind and all instances update in a fixed order each frame.
type EnemySubsystem struct {
	kind   EnemyKind
	cfg    EnemyKindConfig
	world  *World
	player *Player
	rng    *rand.Rand

	enemies []*Entity
	pool    []*Entity

	spawnTimer    float64
	spawnInterval float64
	elapsed       float64

	// shots is the enemy projectile group; nil for kinds that don't shoot.
	shots *ProjectileGroup

	shootTimers map[*Entity]float64
	waspPhase   map[*Entity]float64
}

// NewEnemySubsystem creates the subsystem for one enemy kind.
func NewEnemySubsystem(kind EnemyKind, world *World, player *Player, shots *ProjectileGroup, rng *rand.Rand) *EnemySubsystem {
	return &EnemySubsystem{
		kind:          kind,
		cfg:           GetEnemyKindConfig(kind),
		world:         world,
		player:        player,
		rng:           rng,
		shots:         shots,
		spawnInterval: world.Config.Tuning.SpawnIntervalStart,
		shootTimers:   make(map[*Entity]float64),
		waspPhase:     make(map[*Entity]float64),
	}
}

// Kind returns the enemy kind this subsystem owns.
func (s *EnemySubsystem) Kind() EnemyKind {
	return s.kind
}

// EnemyGroup returns the live enemy list.
func (s *EnemySubsystem) EnemyGroup() []*Entity {
	return s.enemies
}

// EnemyCount returns the number of active enemies.
func (s *EnemySubsystem) EnemyCount() int {
	n := 0
	for _, e := range s.enemies {
		if e.Active {
			n++
		}
	}
	return n
}

// VisibleEnemies returns active enemies inside the camera viewport.
func (s *EnemySubsystem) VisibleEnemies(cam *Camera) []*Entity {
	visible := make([]*Entity, 0, len(s.enemies))
	for _, e := range s.enemies {
		if !e.Active {
			continue
		}
		sx, sy := cam.WorldToScreen(e.X, e.Y)
		if sx >= -e.Radius && sx <= cam.Width+e.Radius && sy >= -e.Radius && sy <= cam.Height+e.Radius {
			visible = append(visible, e)
		}
	}
	return visible
}

// UpdateSpawnRate tightens the spawn interval as the run progresses.
func (s *EnemySubsystem) UpdateSpawnRate() {
	tuning := s.world.Config.Tuning
	progress := math.Min(s.elapsed/tuning.SpawnRampSeconds, 1.0)
	s.spawnInterval = tuning.SpawnIntervalStart - (tuning.SpawnIntervalStart-tuning.SpawnIntervalMin)*progress
	// Less common kinds spawn slower than grunts.
	switch s.kind {
	case EnemyBrute:
		s.spawnInterval *= 4.0
	case EnemySpitter:
		s.spawnInterval *= 3.0
	case EnemyWasp:
		s.spawnInterval *= 2.0
	}
}

// Update advances spawning, AI and movement for every enemy of this kind.
func (s *EnemySubsystem) Update(_ float64, deltaTime float64) {
	if s.world.Suspended() {
		return
	}

	s.elapsed += deltaTime
	s.UpdateSpawnRate()

	s.spawnTimer += deltaTime
	if s.spawnTimer >= s.spawnInterval {
		s.spawnTimer = 0
		s.spawn()
	}

	playerEnt := s.player.Entity()
	for _, enemy := range s.enemies {
		if !enemy.Active {
			continue
		}
		s.steer(enemy, playerEnt, deltaTime)
		enemy.Update(deltaTime)
		s.world.UpdateEntityCell(enemy)

		if s.cfg.ShootCooldown > 0 && s.shots != nil {
			s.shootTimers[enemy] += deltaTime
			if s.shootTimers[enemy] >= s.cfg.ShootCooldown && enemy.DistanceTo(playerEnt) < s.cfg.KeepDistance*1.4 {
				s.shootTimers[enemy] = 0
				s.shootAt(enemy, playerEnt)
			}
		}
	}
}

// steer points the enemy's velocity at (or around) the player.
func (s *EnemySubsystem) steer(enemy, playerEnt *Entity, deltaTime float64) {
	dx := playerEnt.X - enemy.X
	dy := playerEnt.Y - enemy.Y
	dist := math.Hypot(dx, dy)
	if dist == 0 {
		return
	}
	dx /= dist
	dy /= dist

	speed := s.cfg.Speed
	switch {
	case s.cfg.KeepDistance > 0 && dist < s.cfg.KeepDistance:
		// Spitter backs off to its stand-off range.
		dx, dy = -dx, -dy
	case s.cfg.Aerial:
		// Wasps weave sideways while closing in.
		s.waspPhase[enemy] += deltaTime * 3.0
		swerve := math.Sin(s.waspPhase[enemy])
		dx, dy = dx-dy*swerve*0.6, dy+dx*swerve*0.6
		norm := math.Hypot(dx, dy)
		if norm > 0 {
			dx /= norm
			dy /= norm
		}
	}

	enemy.VX = dx * speed
	enemy.VY = dy * speed
}

// shootAt fires an enemy projectile at the player's current position.
func (s *EnemySubsystem) shootAt(enemy, playerEnt *Entity) {
	dx := playerEnt.X - enemy.X
	dy := playerEnt.Y - enemy.Y
	dist := math.Hypot(dx, dy)
	if dist == 0 {
		return
	}
	speed := 240.0
	s.shots.Spawn(enemy.X, enemy.Y, dx/dist*speed, dy/dist*speed, s.world.Config.Tuning.EnemyShotDamage, false, "spit")
}

// spawn places a new enemy on a ring around the player, clamped to the
// world bounds.
func (s *EnemySubsystem) spawn() {
	tuning := s.world.Config.Tuning
	playerEnt := s.player.Entity()

	distance := tuning.SpawnRingMin + s.rng.Float64()*(tuning.SpawnRingMax-tuning.SpawnRingMin)
	angle := s.rng.Float64() * 2 * math.Pi
	x := playerEnt.X + math.Cos(angle)*distance
	y := playerEnt.Y + math.Sin(angle)*distance
	x = math.Max(0, math.Min(x, s.world.Config.WorldWidth))
	y = math.Max(0, math.Min(y, s.world.Config.WorldHeight))

	enemy := s.takeFromPool()
	enemy.X = x
	enemy.Y = y
	enemy.Radius = s.cfg.Radius
	enemy.Type = EntityTypeEnemy
	enemy.Kind = s.kind
	enemy.MaxHealth = s.cfg.Health
	enemy.Health = s.cfg.Health
	enemy.Active = true
	enemy.Age = 0

	s.world.RegisterEntity(enemy)
	s.enemies = append(s.enemies, enemy)
}

// takeFromPool reuses a dead enemy entity or allocates a new one.
func (s *EnemySubsystem) takeFromPool() *Entity {
	if n := len(s.pool); n > 0 {
		enemy := s.pool[n-1]
		s.pool = s.pool[:n-1]
		enemy.Reset()
		return enemy
	}
	return NewEntity(0, 0, s.cfg.Radius, EntityTypeEnemy)
}

// DamageEnemy applies damage and knockback to one of this subsystem's
// enemies. It returns true when the hit was lethal. Inactive enemies
// never take damage; a second lethal hit in the same physics step is
// absorbed by the active-flag guard.
func (s *EnemySubsystem) DamageEnemy(enemy *Entity, amount, knockback float64, critical bool) bool {
	if enemy == nil || !enemy.Active {
		return false
	}
	if critical {
		amount *= s.world.Config.Tuning.CritMultiplier
	}
	enemy.Health -= amount

	if knockback > 0 {
		playerEnt := s.player.Entity()
		dx := enemy.X - playerEnt.X
		dy := enemy.Y - playerEnt.Y
		dist := math.Hypot(dx, dy)
		if dist > 0 {
			enemy.X += dx / dist * knockback
			enemy.Y += dy / dist * knockback
			s.world.UpdateEntityCell(enemy)
		}
	}

	if enemy.Health <= 0 {
		s.remove(enemy)
		return true
	}
	return false
}

// remove deactivates an enemy and returns it to the pool.
func (s *EnemySubsystem) remove(enemy *Entity) {
	enemy.Active = false
	s.world.UnregisterEntity(enemy)
	delete(s.shootTimers, enemy)
	delete(s.waspPhase, enemy)
	for i, e := range s.enemies {
		if e == enemy {
			s.enemies[i] = s.enemies[len(s.enemies)-1]
			s.enemies = s.enemies[:len(s.enemies)-1]
			break
		}
	}
	s.pool = append(s.pool, enemy)
}
