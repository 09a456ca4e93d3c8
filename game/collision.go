package game

import "log"

// CollisionTranslator converts low-level shape overlaps into gameplay
// effects: damage application, stats recording and event emission. Every
// handler is idempotent against repeated firing within one physics step;
// the projectile active flag is the guard.
type CollisionTranslator struct {
	world   *World
	bus     *EventBus
	stats   *StatsTracker
	session *Session
	player  *Player

	subsystems map[EnemyKind]*EnemySubsystem

	playerShots *ProjectileGroup
	enemyShots  *ProjectileGroup
}

// NewCollisionTranslator wires the translator to its collaborators. A
// nil projectile group is a setup error: it is logged and that collision
// category is never checked, but the rest of the wiring proceeds.
func NewCollisionTranslator(world *World, bus *EventBus, stats *StatsTracker, session *Session, player *Player, subsystems []*EnemySubsystem, playerShots, enemyShots *ProjectileGroup) *CollisionTranslator {
	byKind := make(map[EnemyKind]*EnemySubsystem, len(subsystems))
	for _, sub := range subsystems {
		byKind[sub.Kind()] = sub
	}

	if playerShots == nil {
		log.Printf("[Collision] player projectile group missing, projectile/enemy collisions not wired")
	}
	if enemyShots == nil {
		log.Printf("[Collision] enemy projectile group missing, enemy-shot/player collisions not wired")
	}

	return &CollisionTranslator{
		world:       world,
		bus:         bus,
		stats:       stats,
		session:     session,
		player:      player,
		subsystems:  byKind,
		playerShots: playerShots,
		enemyShots:  enemyShots,
	}
}

// ProcessFrame runs the broad collision pass for this physics step:
// player projectiles against enemies, enemy projectiles against the
// player, and the diagnostic player/enemy contact flag. It may report a
// given pair more than once per frame; the handlers absorb that.
func (t *CollisionTranslator) ProcessFrame() {
	if t.playerShots != nil {
		for _, shot := range t.playerShots.Active() {
			for _, other := range t.world.GetEntitiesInRadius(shot.X, shot.Y, shot.Radius+24.0) {
				if other.Type != EntityTypeEnemy || !other.Active {
					continue
				}
				if shot.IsColliding(other) {
					t.HandleProjectileEnemy(shot, other)
					if !shot.Active {
						break
					}
				}
			}
		}
	}

	playerEnt := t.player.Entity()
	if t.enemyShots != nil && playerEnt != nil {
		for _, shot := range t.enemyShots.Active() {
			if shot.IsColliding(playerEnt) {
				t.HandleEnemyProjectilePlayer(shot)
			}
		}
	}

	// Broad player/enemy contact flag. Diagnostic only; the precise
	// bounding-box pass in the orchestrator is authoritative.
	if playerEnt != nil {
		for _, other := range t.world.GetEntitiesInRadius(playerEnt.X, playerEnt.Y, playerEnt.Radius+32.0) {
			if other.Type == EntityTypeEnemy && other.Active && playerEnt.IsColliding(other) {
				t.session.MarkBroadOverlap()
				break
			}
		}
	}
}

// HandleProjectileEnemy converts a projectile/enemy overlap into damage.
// Both participants must still be active: pooled objects can be
// deactivated by an earlier callback in the same step, so the guard is
// re-evaluated here even though ProcessFrame already filtered on it.
func (t *CollisionTranslator) HandleProjectileEnemy(projectile, enemy *Entity) {
	if projectile == nil || enemy == nil || !projectile.Active || !enemy.Active {
		return
	}

	sub, ok := t.subsystems[enemy.Kind]
	if !ok {
		log.Printf("[Collision] no subsystem for enemy kind %s, hit dropped", enemy.Kind)
		return
	}

	damage := projectile.Damage
	critical := projectile.Critical

	t.bus.Publish(TopicProjectileHit, ProjectileHitEvent{X: enemy.X, Y: enemy.Y, Critical: critical})
	t.stats.RecordDamage(projectile.Weapon, damage)

	if sub.DamageEnemy(enemy, damage, 6.0, critical) {
		t.bus.Publish(TopicEnemyDeath, EnemyDeathEvent{X: enemy.X, Y: enemy.Y, Kind: enemy.Kind})
	}

	// Exactly once even if the overlap fires twice this step; the
	// active flag at the top enforces that.
	t.playerShots.Deactivate(projectile)
}

// HandleEnemyProjectilePlayer applies an enemy shot to the mech. The
// projectile is deactivated before damage so a re-entrant callback in
// the same step finds it inactive and does nothing.
func (t *CollisionTranslator) HandleEnemyProjectilePlayer(projectile *Entity) {
	if projectile == nil || !projectile.Active {
		return
	}
	t.enemyShots.Deactivate(projectile)

	t.player.TakeDamage(t.world.Config.Tuning.EnemyShotDamage)
	playerEnt := t.player.Entity()
	t.bus.Publish(TopicProjectileHit, ProjectileHitEvent{X: playerEnt.X, Y: playerEnt.Y, Critical: false})
}

// ApplyWeaponDamage is the shared damage path for non-projectile weapons
// (drones, blast, air strike). It keeps stats recording and death-event
// emission identical to the projectile path.
func (t *CollisionTranslator) ApplyWeaponDamage(weapon string, enemy *Entity, amount, knockback float64, critical bool) bool {
	if enemy == nil || !enemy.Active {
		return false
	}
	sub, ok := t.subsystems[enemy.Kind]
	if !ok {
		log.Printf("[Collision] no subsystem for enemy kind %s, damage dropped", enemy.Kind)
		return false
	}

	t.bus.Publish(TopicProjectileHit, ProjectileHitEvent{X: enemy.X, Y: enemy.Y, Critical: critical})
	t.stats.RecordDamage(weapon, amount)

	dead := sub.DamageEnemy(enemy, amount, knockback, critical)
	if dead {
		t.bus.Publish(TopicEnemyDeath, EnemyDeathEvent{X: enemy.X, Y: enemy.Y, Kind: enemy.Kind})
	}
	return dead
}
