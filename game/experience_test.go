package game

import "testing"

func newTestExperience() (*ExperienceSystem, *World, *Player, *EventBus) {
	world := NewWorld(DefaultConfig())
	player := NewPlayer(world, nil)
	bus := NewEventBus()
	return NewExperienceSystem(world, player, bus), world, player, bus
}

func TestEnemyDeathDropsOrb(t *testing.T) {
	exp, _, _, bus := newTestExperience()

	bus.Publish(TopicEnemyDeath, EnemyDeathEvent{X: 50, Y: 60, Kind: EnemyBrute})
	if exp.OrbCount() != 1 {
		t.Fatalf("expected one orb, got %d", exp.OrbCount())
	}
	orb := exp.Orbs()[0]
	if orb.X != 50 || orb.Y != 60 {
		t.Errorf("orb dropped at (%.0f, %.0f)", orb.X, orb.Y)
	}
	if orb.Value != GetEnemyKindConfig(EnemyBrute).XPValue {
		t.Errorf("orb carries %.0f XP, want the brute value", orb.Value)
	}
}

func TestLevelUpPublishesEffectAndPickerRequest(t *testing.T) {
	exp, _, _, bus := newTestExperience()

	levelUps, pickerRequests := 0, 0
	bus.Subscribe(TopicPlayerLevelUp, func(event any) {
		levelUps++
		if up := event.(PlayerLevelUpEvent); up.Level != 2 {
			t.Errorf("expected level 2 in the event, got %d", up.Level)
		}
	})
	bus.Subscribe(TopicShowUpgradeUI, func(any) { pickerRequests++ })

	_, threshold := exp.XP()
	exp.AddXP(threshold)

	if exp.Level() != 2 {
		t.Fatalf("expected level 2, got %d", exp.Level())
	}
	if levelUps != 1 || pickerRequests != 1 {
		t.Errorf("expected one of each event, got %d level-ups, %d picker requests", levelUps, pickerRequests)
	}

	// Threshold grows with each level.
	if _, next := exp.XP(); next <= threshold {
		t.Errorf("threshold should grow, %.0f -> %.0f", threshold, next)
	}
}

func TestBigXPGainCascadesLevels(t *testing.T) {
	exp, _, _, bus := newTestExperience()

	pickerRequests := 0
	bus.Subscribe(TopicShowUpgradeUI, func(any) { pickerRequests++ })

	exp.AddXP(1000)
	if exp.Level() < 3 {
		t.Fatalf("1000 XP should cascade past level 3, got %d", exp.Level())
	}
	if pickerRequests != exp.Level()-1 {
		t.Errorf("expected one picker request per level gained, got %d for level %d", pickerRequests, exp.Level())
	}
}

func TestMagnetPullsAndCollectsOrb(t *testing.T) {
	exp, _, player, bus := newTestExperience()
	playerEnt := player.Entity()

	// Drop an orb inside the magnet radius but outside touch range.
	bus.Publish(TopicEnemyDeath, EnemyDeathEvent{
		X:    playerEnt.X + player.MagnetRadius() - 5,
		Y:    playerEnt.Y,
		Kind: EnemyGrunt,
	})

	for i := 0; i < 60 && exp.OrbCount() > 0; i++ {
		exp.Update(0, 1.0/60.0)
	}
	if exp.OrbCount() != 0 {
		t.Fatal("orb inside the magnet radius was never collected")
	}
	if xp, _ := exp.XP(); xp != GetEnemyKindConfig(EnemyGrunt).XPValue {
		t.Errorf("collected XP not credited, have %.0f", xp)
	}
}

func TestUpdateFrozenWhileSuspended(t *testing.T) {
	exp, world, player, bus := newTestExperience()
	playerEnt := player.Entity()

	bus.Publish(TopicEnemyDeath, EnemyDeathEvent{X: playerEnt.X + 30, Y: playerEnt.Y, Kind: EnemyGrunt})

	world.Suspend()
	for i := 0; i < 60; i++ {
		exp.Update(0, 1.0/60.0)
	}
	if exp.OrbCount() != 1 {
		t.Error("orbs must not move or collect while suspended")
	}
}

func TestTeardownUnsubscribes(t *testing.T) {
	exp, _, _, bus := newTestExperience()

	exp.Teardown()
	bus.Publish(TopicEnemyDeath, EnemyDeathEvent{X: 1, Y: 1, Kind: EnemyGrunt})
	if exp.OrbCount() != 0 {
		t.Error("orb dropped after teardown")
	}
}
