package game

import (
	"math"
	"testing"
)

func TestPredictiveAimStationaryTarget(t *testing.T) {
	x, y := PredictiveAim(0, 0, 100, 50, 0, 0, 300)
	if x != 100 || y != 50 {
		t.Errorf("stationary target should be aimed at directly, got (%.1f, %.1f)", x, y)
	}
}

func TestPredictiveAimLeadsMovingTarget(t *testing.T) {
	const speed = 200.0
	// Target crossing left to right in front of the shooter.
	px, py := PredictiveAim(0, 0, 0, 100, 80, 0, speed)

	if px <= 0 {
		t.Fatalf("lead point should be ahead of the target, got x=%.1f", px)
	}

	// The intercept must be self-consistent: the projectile reaches the
	// predicted point in the same time the target does.
	tTarget := px / 80.0
	tShot := math.Hypot(px, py) / speed
	if math.Abs(tTarget-tShot) > 1e-6 {
		t.Errorf("intercept times differ: target %.4fs, shot %.4fs", tTarget, tShot)
	}
}

func TestPredictiveAimFallsBackWhenNoIntercept(t *testing.T) {
	// Target fleeing faster than the projectile flies.
	x, y := PredictiveAim(0, 0, 100, 0, 500, 0, 200)
	if x != 100 || y != 0 {
		t.Errorf("no intercept should fall back to the current position, got (%.1f, %.1f)", x, y)
	}
}

func TestProjectileGroupRecyclesOldestAtCap(t *testing.T) {
	world := NewWorld(DefaultConfig())
	group := NewProjectileGroup(world, EntityTypeProjectile, 3, 500)

	first := group.Spawn(10, 10, 100, 0, 5, false, WeaponCannon)
	group.Spawn(20, 20, 100, 0, 5, false, WeaponCannon)
	group.Spawn(30, 30, 100, 0, 5, false, WeaponCannon)
	recycled := group.Spawn(40, 40, 100, 0, 5, false, WeaponCannon)

	if group.ActiveCount() != 3 {
		t.Errorf("cap is 3, have %d active", group.ActiveCount())
	}
	if recycled != first {
		t.Error("spawning past the cap should reuse the oldest projectile")
	}
	if recycled.X != 40 || recycled.Damage != 5 || !recycled.Active {
		t.Error("recycled projectile not reinitialized")
	}
}

func TestProjectileExpiresAtMaxRange(t *testing.T) {
	world := NewWorld(DefaultConfig())
	group := NewProjectileGroup(world, EntityTypeProjectile, 8, 100)

	shot := group.Spawn(0, 0, 100, 0, 5, false, WeaponCannon)
	if shot.Lifetime != 1.0 {
		t.Fatalf("expected 1s lifetime for range 100 at speed 100, got %.2f", shot.Lifetime)
	}

	for i := 0; i < 66; i++ {
		group.Update(1.0 / 60.0)
	}
	if shot.Active {
		t.Error("projectile should expire past its range")
	}
}

func TestProjectileGroupFrozenWhileSuspended(t *testing.T) {
	world := NewWorld(DefaultConfig())
	group := NewProjectileGroup(world, EntityTypeProjectile, 8, 500)
	shot := group.Spawn(0, 0, 100, 0, 5, false, WeaponCannon)

	world.Suspend()
	group.Update(1.0)
	if shot.X != 0 {
		t.Error("projectiles must not move while the world is suspended")
	}
}

func TestDeactivateTwiceIsHarmless(t *testing.T) {
	world := NewWorld(DefaultConfig())
	group := NewProjectileGroup(world, EntityTypeProjectile, 8, 500)
	shot := group.Spawn(0, 0, 100, 0, 5, false, WeaponCannon)

	group.Deactivate(shot)
	group.Deactivate(shot)
	if group.ActiveCount() != 0 {
		t.Errorf("expected no active projectiles, got %d", group.ActiveCount())
	}
}
