package game

import (
	"math/rand"
	"testing"
)

type collisionFixture struct {
	world      *World
	bus        *EventBus
	stats      *StatsTracker
	session    *Session
	player     *Player
	grunts     *EnemySubsystem
	shots      *ProjectileGroup
	enemyShots *ProjectileGroup
	translator *CollisionTranslator
}

func newCollisionFixture() *collisionFixture {
	world := NewWorld(DefaultConfig())
	bus := NewEventBus()
	stats := NewStatsTracker()
	session := NewSession(world)
	player := NewPlayer(world, nil)
	shots := NewProjectileGroup(world, EntityTypeProjectile, 64, 500)
	enemyShots := NewProjectileGroup(world, EntityTypeEnemyProjectile, 64, 500)
	rng := rand.New(rand.NewSource(1))
	grunts := NewEnemySubsystem(EnemyGrunt, world, player, enemyShots, rng)

	translator := NewCollisionTranslator(world, bus, stats, session, player,
		[]*EnemySubsystem{grunts}, shots, enemyShots)

	return &collisionFixture{
		world:      world,
		bus:        bus,
		stats:      stats,
		session:    session,
		player:     player,
		grunts:     grunts,
		shots:      shots,
		enemyShots: enemyShots,
		translator: translator,
	}
}

// placeEnemy registers a grunt at a position with the given health.
func (f *collisionFixture) placeEnemy(x, y, health float64) *Entity {
	enemy := NewEntity(x, y, 10, EntityTypeEnemy)
	enemy.Kind = EnemyGrunt
	enemy.MaxHealth = health
	enemy.Health = health
	f.world.RegisterEntity(enemy)
	f.grunts.enemies = append(f.grunts.enemies, enemy)
	return enemy
}

func TestProjectileHitFiresExactlyOnce(t *testing.T) {
	f := newCollisionFixture()
	enemy := f.placeEnemy(100, 100, 50)
	shot := f.shots.Spawn(100, 100, 0, 0, 10, false, WeaponCannon)

	hits := 0
	f.bus.Subscribe(TopicProjectileHit, func(any) { hits++ })

	// The broad pass can report the same overlap twice in one step.
	f.translator.HandleProjectileEnemy(shot, enemy)
	f.translator.HandleProjectileEnemy(shot, enemy)

	if hits != 1 {
		t.Errorf("expected one hit event, got %d", hits)
	}
	if enemy.Health != 40 {
		t.Errorf("expected single damage application, health %.0f", enemy.Health)
	}
	if shot.Active {
		t.Error("projectile must be deactivated by its hit")
	}
	record, _ := f.stats.Weapon(WeaponCannon)
	if record.TotalDamage != 10 {
		t.Errorf("expected 10 damage recorded, got %.0f", record.TotalDamage)
	}
}

func TestLethalHitPublishesDeath(t *testing.T) {
	f := newCollisionFixture()
	enemy := f.placeEnemy(100, 100, 5)
	shot := f.shots.Spawn(100, 100, 0, 0, 10, false, WeaponCannon)

	deaths := 0
	f.bus.Subscribe(TopicEnemyDeath, func(event any) {
		deaths++
		death := event.(EnemyDeathEvent)
		if death.Kind != EnemyGrunt {
			t.Errorf("death event kind mismatch: %s", death.Kind)
		}
	})

	f.translator.HandleProjectileEnemy(shot, enemy)
	if deaths != 1 {
		t.Fatalf("expected one death event, got %d", deaths)
	}
	if enemy.Active {
		t.Error("lethal hit must deactivate the enemy")
	}

	// The dead enemy absorbs any further hit in the same step.
	second := f.shots.Spawn(100, 100, 0, 0, 10, false, WeaponCannon)
	f.translator.HandleProjectileEnemy(second, enemy)
	if deaths != 1 {
		t.Errorf("dead enemy produced another death event, total %d", deaths)
	}
}

func TestCriticalHitUsesMultiplier(t *testing.T) {
	f := newCollisionFixture()
	enemy := f.placeEnemy(100, 100, 50)
	shot := f.shots.Spawn(100, 100, 0, 0, 10, true, WeaponCannon)

	f.translator.HandleProjectileEnemy(shot, enemy)
	expected := 50 - 10*f.world.Config.Tuning.CritMultiplier
	if enemy.Health != expected {
		t.Errorf("expected health %.0f after crit, got %.0f", expected, enemy.Health)
	}
}

func TestEnemyShotDeactivatedBeforeDamage(t *testing.T) {
	f := newCollisionFixture()
	playerEnt := f.player.Entity()
	shot := f.enemyShots.Spawn(playerEnt.X, playerEnt.Y, 0, 0, 0, false, "spit")

	// A re-entrant handler in the same step must find the projectile
	// already inactive.
	f.bus.Subscribe(TopicProjectileHit, func(any) {
		f.translator.HandleEnemyProjectilePlayer(shot)
	})

	before := f.player.Health()
	f.translator.HandleEnemyProjectilePlayer(shot)

	damage := before - f.player.Health()
	expected := f.world.Config.Tuning.EnemyShotDamage
	if damage != expected {
		t.Errorf("expected exactly one application of %.0f damage, lost %.0f", expected, damage)
	}
	if shot.Active {
		t.Error("enemy shot must be deactivated")
	}
}

func TestBroadPassSetsDiagnosticFlagOnly(t *testing.T) {
	f := newCollisionFixture()
	playerEnt := f.player.Entity()
	f.placeEnemy(playerEnt.X+5, playerEnt.Y, 50)

	f.translator.ProcessFrame()
	if !f.session.BroadOverlap() {
		t.Error("broad pass should flag the touching enemy")
	}
	if f.session.Overlapping() {
		t.Error("broad pass must not write the authoritative overlap value")
	}
}

func TestApplyWeaponDamageSharesThePath(t *testing.T) {
	f := newCollisionFixture()
	enemy := f.placeEnemy(100, 100, 5)

	deaths := 0
	f.bus.Subscribe(TopicEnemyDeath, func(any) { deaths++ })

	if !f.translator.ApplyWeaponDamage(WeaponBlast, enemy, 10, 0, false) {
		t.Fatal("lethal blast damage should report the kill")
	}
	if deaths != 1 {
		t.Errorf("expected one death event, got %d", deaths)
	}
	record, _ := f.stats.Weapon(WeaponBlast)
	if record.TotalDamage != 10 {
		t.Errorf("blast damage not recorded, got %.0f", record.TotalDamage)
	}

	if f.translator.ApplyWeaponDamage(WeaponBlast, enemy, 10, 0, false) {
		t.Error("dead enemy must absorb further weapon damage")
	}
}

func TestNilBodiesNeverCollide(t *testing.T) {
	f := newCollisionFixture()

	// Handlers tolerate nil participants outright.
	f.translator.HandleProjectileEnemy(nil, nil)
	f.translator.HandleEnemyProjectilePlayer(nil)
	if f.translator.ApplyWeaponDamage(WeaponBlast, nil, 10, 0, false) {
		t.Error("nil enemy must not take damage")
	}
}
