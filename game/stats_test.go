package game

import (
	"testing"
	"time"
)

// fakeClock lets a test advance the tracker's wall clock by hand.
type fakeClock struct {
	current time.Time
}

func (c *fakeClock) advance(d time.Duration) {
	c.current = c.current.Add(d)
}

func newClockedTracker() (*StatsTracker, *fakeClock) {
	clock := &fakeClock{current: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	tracker := NewStatsTracker()
	tracker.now = func() time.Time { return clock.current }
	tracker.startedAt = clock.current
	return tracker, clock
}

func TestDPSDerivedFromDamageAndActiveTime(t *testing.T) {
	tracker, clock := newClockedTracker()

	tracker.WeaponActivated(WeaponCannon, 1)
	clock.advance(2 * time.Second)
	tracker.RecordDamage(WeaponCannon, 100)

	record, ok := tracker.Weapon(WeaponCannon)
	if !ok {
		t.Fatal("cannon record missing")
	}
	if record.ActiveTimeMs != 2000 {
		t.Fatalf("expected 2000ms active, got %.0f", record.ActiveTimeMs)
	}
	if record.DPS != 50 {
		t.Errorf("expected DPS 50, got %.2f", record.DPS)
	}
}

func TestZeroActiveTimeYieldsZeroDPS(t *testing.T) {
	tracker, _ := newClockedTracker()

	tracker.RecordDamage(WeaponBlast, 500)
	record, _ := tracker.Weapon(WeaponBlast)
	if record.DPS != 0 {
		t.Errorf("zero active time must yield zero DPS, got %.2f", record.DPS)
	}
}

func TestNegativeDamageIgnored(t *testing.T) {
	tracker, _ := newClockedTracker()

	tracker.RecordDamage(WeaponCannon, 40)
	tracker.RecordDamage(WeaponCannon, -10)

	record, _ := tracker.Weapon(WeaponCannon)
	if record.TotalDamage != 40 {
		t.Errorf("negative damage must be ignored, total is %.0f", record.TotalDamage)
	}
}

func TestFinalizeClosesOpenWindows(t *testing.T) {
	tracker, clock := newClockedTracker()

	tracker.WeaponActivated(WeaponCannon, 1)
	tracker.WeaponActivated(WeaponDrones, 1)
	clock.advance(4 * time.Second)
	tracker.RecordDamage(WeaponCannon, 200)
	tracker.AddKill()
	tracker.AddKill()

	summary := tracker.Finalize(7)
	if summary.SurvivalTimeMs != 4000 {
		t.Errorf("expected 4000ms survival, got %.0f", summary.SurvivalTimeMs)
	}
	if summary.LevelReached != 7 || summary.EnemiesDefeated != 2 {
		t.Errorf("summary mismatch: %+v", summary)
	}

	// Weapons come back sorted by name with their clocks closed.
	if len(summary.Weapons) != 2 {
		t.Fatalf("expected 2 weapon records, got %d", len(summary.Weapons))
	}
	if summary.Weapons[0].Name != WeaponCannon || summary.Weapons[1].Name != WeaponDrones {
		t.Errorf("weapon order wrong: %s, %s", summary.Weapons[0].Name, summary.Weapons[1].Name)
	}
	if summary.Weapons[0].ActiveTimeMs != 4000 {
		t.Errorf("finalize must fold the open window, got %.0f", summary.Weapons[0].ActiveTimeMs)
	}
	if summary.Weapons[0].DPS != 50 {
		t.Errorf("expected DPS 50, got %.2f", summary.Weapons[0].DPS)
	}

	// Finalizing again returns the same totals; every clock is closed.
	clock.advance(time.Minute)
	again := tracker.Finalize(7)
	if again.Weapons[0].ActiveTimeMs != 4000 || again.Weapons[0].DPS != 50 {
		t.Error("second finalize changed already-closed totals")
	}
}

func TestDeactivateAccumulatesAcrossWindows(t *testing.T) {
	tracker, clock := newClockedTracker()

	tracker.WeaponActivated(WeaponCannon, 1)
	clock.advance(time.Second)
	tracker.WeaponDeactivated(WeaponCannon)

	tracker.WeaponActivated(WeaponCannon, 1)
	clock.advance(3 * time.Second)
	tracker.WeaponDeactivated(WeaponCannon)

	record, _ := tracker.Weapon(WeaponCannon)
	if record.ActiveTimeMs != 4000 {
		t.Errorf("expected accumulated 4000ms, got %.0f", record.ActiveTimeMs)
	}
}

func TestAddRelicDeduplicates(t *testing.T) {
	tracker, _ := newClockedTracker()

	tracker.AddRelic("overclock-core")
	tracker.AddRelic("overclock-core")
	tracker.AddRelic("titan-plating")

	summary := tracker.Finalize(1)
	if len(summary.Relics) != 2 {
		t.Errorf("expected 2 distinct relics, got %v", summary.Relics)
	}
}
