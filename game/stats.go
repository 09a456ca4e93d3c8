package game

import (
	"log"
	"sort"
	"time"
)

// WeaponStatRecord is the per-weapon damage bookkeeping exposed on the
// results screen. DPS is always derived from the other two fields and
// recomputed after every mutation, never written directly.
type WeaponStatRecord struct {
	Name         string
	Level        int
	TotalDamage  float64
	ActiveTimeMs float64
	DPS          float64
}

// GameStats is the immutable summary produced once at death.
type GameStats struct {
	SurvivalTimeMs  float64
	LevelReached    int
	EnemiesDefeated int
	Weapons         []WeaponStatRecord
	Relics          []string
}

type weaponStat struct {
	record      WeaponStatRecord
	active      bool
	activatedAt time.Time
}

// StatsTracker accumulates per-weapon damage and active time, kill
// counts and the relic set over one playthrough, and produces the final
// summary snapshot exactly once.
type StatsTracker struct {
	weapons   map[string]*weaponStat
	kills     int
	relics    []string
	relicSeen map[string]bool
	startedAt time.Time
	finalized bool

	// now is swappable for tests; defaults to time.Now.
	now func() time.Time
}

// NewStatsTracker creates a tracker whose survival clock starts now.
func NewStatsTracker() *StatsTracker {
	tracker := &StatsTracker{
		weapons:   make(map[string]*weaponStat),
		relicSeen: make(map[string]bool),
		now:       time.Now,
	}
	tracker.startedAt = tracker.now()
	return tracker
}

// WeaponActivated starts (or restarts) the active-time clock for a
// weapon, creating its record on first activation.
func (t *StatsTracker) WeaponActivated(name string, level int) {
	stat := t.stat(name)
	stat.record.Level = level
	if stat.active {
		return
	}
	stat.active = true
	stat.activatedAt = t.now()
}

// WeaponDeactivated stops the active-time clock and folds the elapsed
// time into the record.
func (t *StatsTracker) WeaponDeactivated(name string) {
	stat, ok := t.weapons[name]
	if !ok || !stat.active {
		return
	}
	stat.record.ActiveTimeMs += float64(t.now().Sub(stat.activatedAt).Milliseconds())
	stat.active = false
	recomputeDPS(&stat.record)
}

// SetWeaponLevel updates the recorded level of a weapon.
func (t *StatsTracker) SetWeaponLevel(name string, level int) {
	t.stat(name).record.Level = level
}

// RecordDamage adds damage dealt to a weapon's running total.
func (t *StatsTracker) RecordDamage(name string, amount float64) {
	if amount < 0 {
		log.Printf("[Stats] negative damage %f for %s ignored", amount, name)
		return
	}
	stat := t.stat(name)
	stat.record.TotalDamage += amount
	recomputeDPS(&stat.record)
}

// AddKill increments the defeated-enemy counter.
func (t *StatsTracker) AddKill() {
	t.kills++
}

// Kills returns the defeated-enemy count so far.
func (t *StatsTracker) Kills() int {
	return t.kills
}

// AddRelic records a claimed relic. Duplicates are kept out of the set.
func (t *StatsTracker) AddRelic(id string) {
	if t.relicSeen[id] {
		return
	}
	t.relicSeen[id] = true
	t.relics = append(t.relics, id)
}

// Weapon returns a copy of the named weapon's record. The live record
// includes any still-open active-time window.
func (t *StatsTracker) Weapon(name string) (WeaponStatRecord, bool) {
	stat, ok := t.weapons[name]
	if !ok {
		return WeaponStatRecord{}, false
	}
	record := stat.record
	if stat.active {
		record.ActiveTimeMs += float64(t.now().Sub(stat.activatedAt).Milliseconds())
		recomputeDPS(&record)
	}
	return record, true
}

// Finalize closes every in-flight weapon timer and returns the summary
// snapshot. Calling it again returns the same totals (all clocks are
// already closed).
func (t *StatsTracker) Finalize(levelReached int) GameStats {
	for name, stat := range t.weapons {
		if stat.active {
			t.WeaponDeactivated(name)
		}
	}
	t.finalized = true

	names := make([]string, 0, len(t.weapons))
	for name := range t.weapons {
		names = append(names, name)
	}
	sort.Strings(names)

	weapons := make([]WeaponStatRecord, 0, len(names))
	for _, name := range names {
		weapons = append(weapons, t.weapons[name].record)
	}

	relics := make([]string, len(t.relics))
	copy(relics, t.relics)

	return GameStats{
		SurvivalTimeMs:  float64(t.now().Sub(t.startedAt).Milliseconds()),
		LevelReached:    levelReached,
		EnemiesDefeated: t.kills,
		Weapons:         weapons,
		Relics:          relics,
	}
}

func (t *StatsTracker) stat(name string) *weaponStat {
	stat, ok := t.weapons[name]
	if !ok {
		stat = &weaponStat{record: WeaponStatRecord{Name: name}}
		t.weapons[name] = stat
	}
	return stat
}

// recomputeDPS derives DPS from total damage and active time. Zero
// active time yields zero DPS rather than a division by zero.
func recomputeDPS(record *WeaponStatRecord) {
	if record.ActiveTimeMs <= 0 {
		record.DPS = 0
		return
	}
	record.DPS = record.TotalDamage / record.ActiveTimeMs * 1000.0
}
