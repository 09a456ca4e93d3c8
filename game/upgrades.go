package game

import (
	"log"
	"math/rand"
)

// UpgradeDescriptor is one entry of the fixed upgrade catalog. The
// catalog is built once per playthrough and never mutated; acquisition
// state lives in the ledger.
type UpgradeDescriptor struct {
	ID          string
	Name        string
	Description string
	Icon        string
	MaxLevel    int
	Relic       bool

	// Available gates the upgrade on the current build, e.g. "more
	// drones" requires drones to be unlocked first.
	Available func(p *Player) bool

	// Apply mutates the player's build by one level.
	Apply func(p *Player)
}

// UpgradeSystem holds the catalog and the acquired-level ledger and
// hands out randomized, eligibility-filtered offers. Relic-tagged
// entries never appear in offers; they share the ledger and Apply path
// but are granted through the relic pickup flow.
type UpgradeSystem struct {
	catalog []UpgradeDescriptor
	byID    map[string]*UpgradeDescriptor
	levels  map[string]int
	player  *Player
	stats   *StatsTracker
	rng     *rand.Rand
}

// NewUpgradeSystem builds the catalog for one playthrough.
func NewUpgradeSystem(player *Player, stats *StatsTracker, rng *rand.Rand) *UpgradeSystem {
	s := &UpgradeSystem{
		catalog: buildCatalog(),
		byID:    make(map[string]*UpgradeDescriptor),
		levels:  make(map[string]int),
		player:  player,
		stats:   stats,
		rng:     rng,
	}
	for i := range s.catalog {
		s.byID[s.catalog[i].ID] = &s.catalog[i]
	}
	return s
}

// Level returns the acquired level for an upgrade id; absent means 0.
func (s *UpgradeSystem) Level(id string) int {
	return s.levels[id]
}

// Catalog returns the full descriptor list.
func (s *UpgradeSystem) Catalog() []UpgradeDescriptor {
	return s.catalog
}

// Relics returns the relic-tagged descriptors not yet acquired.
func (s *UpgradeSystem) Relics() []UpgradeDescriptor {
	var relics []UpgradeDescriptor
	for _, d := range s.catalog {
		if d.Relic && s.levels[d.ID] < d.MaxLevel {
			relics = append(relics, d)
		}
	}
	return relics
}

// SelectOffer returns up to count random upgrades the player can take
// right now: not maxed, availability predicate true, and never a relic.
// An empty slice means nothing qualifies and the caller should skip the
// overlay.
func (s *UpgradeSystem) SelectOffer(count int) []UpgradeDescriptor {
	eligible := make([]UpgradeDescriptor, 0, len(s.catalog))
	for _, d := range s.catalog {
		if d.Relic {
			continue
		}
		if s.levels[d.ID] >= d.MaxLevel {
			continue
		}
		if d.Available != nil && !d.Available(s.player) {
			continue
		}
		eligible = append(eligible, d)
	}

	s.rng.Shuffle(len(eligible), func(i, j int) {
		eligible[i], eligible[j] = eligible[j], eligible[i]
	})

	if count > len(eligible) {
		count = len(eligible)
	}
	return eligible[:count]
}

// Apply takes one level of the given upgrade: it invokes the effect and
// increments the ledger by exactly one. Unknown ids and already-maxed
// upgrades are rejected with a warning and no effect.
func (s *UpgradeSystem) Apply(id string) bool {
	descriptor, ok := s.byID[id]
	if !ok {
		log.Printf("[Upgrades] unknown upgrade id %q rejected", id)
		return false
	}
	if s.levels[id] >= descriptor.MaxLevel {
		log.Printf("[Upgrades] %q already at max level %d, rejected", id, descriptor.MaxLevel)
		return false
	}

	descriptor.Apply(s.player)
	s.levels[id]++

	// Keep the stats record's level in sync for weapon-backed upgrades.
	if weapon := weaponForUpgrade(id); weapon != "" {
		s.stats.SetWeaponLevel(weapon, s.levels[id])
	}

	log.Printf("[Upgrades] applied %q, now level %d/%d", id, s.levels[id], descriptor.MaxLevel)
	return true
}

// weaponForUpgrade maps an upgrade id to the stats key it levels, if any.
func weaponForUpgrade(id string) string {
	switch id {
	case "cannon-damage", "cannon-rate":
		return WeaponCannon
	case "drone-bay", "drone-wing":
		return WeaponDrones
	case "shock-blast", "blast-radius":
		return WeaponBlast
	case "orbital-uplink":
		return WeaponAirstrike
	default:
		return ""
	}
}

// buildCatalog returns the fixed upgrade list for a playthrough.
func buildCatalog() []UpgradeDescriptor {
	always := func(*Player) bool { return true }
	return []UpgradeDescriptor{
		{
			ID: "cannon-damage", Name: "Shredder Rounds",
			Description: "Cannon damage +25%", Icon: "icon-cannon",
			MaxLevel: 5, Available: always,
			Apply: func(p *Player) { p.BoostCannonDamage(1.25) },
		},
		{
			ID: "cannon-rate", Name: "Autoloader",
			Description: "Cannon fires 15% faster", Icon: "icon-cannon",
			MaxLevel: 5, Available: always,
			Apply: func(p *Player) { p.BoostCannonRate(0.85) },
		},
		{
			ID: "drone-bay", Name: "Drone Bay",
			Description: "Deploy an attack drone", Icon: "icon-drone",
			MaxLevel: 1, Available: always,
			Apply: func(p *Player) { p.UnlockDrones() },
		},
		{
			ID: "drone-wing", Name: "Drone Wing",
			Description: "One more drone", Icon: "icon-drone",
			MaxLevel:  3,
			Available: func(p *Player) bool { return p.HasDroneAbility() },
			Apply:     func(p *Player) { p.AddDrone() },
		},
		{
			ID: "shock-blast", Name: "Shock Blast",
			Description: "Periodic radial shockwave", Icon: "icon-blast",
			MaxLevel: 1, Available: always,
			Apply: func(p *Player) { p.UnlockBlast() },
		},
		{
			ID: "blast-radius", Name: "Resonance Coils",
			Description: "Blast radius +20%", Icon: "icon-blast",
			MaxLevel:  4,
			Available: func(p *Player) bool { return p.HasBlastAbility() },
			Apply:     func(p *Player) { p.BoostBlastRadius(1.2) },
		},
		{
			ID: "orbital-uplink", Name: "Orbital Uplink",
			Description: "Call periodic air strikes", Icon: "icon-strike",
			MaxLevel: 1, Available: always,
			Apply: func(p *Player) { p.UnlockAirstrike() },
		},
		{
			ID: "plating", Name: "Reactive Plating",
			Description: "Max hull +20", Icon: "icon-hull",
			MaxLevel: 5, Available: always,
			Apply: func(p *Player) { p.AddMaxHealth(20) },
		},
		{
			ID: "servos", Name: "Overtuned Servos",
			Description: "Move speed +12%", Icon: "icon-speed",
			MaxLevel: 4, Available: always,
			Apply: func(p *Player) { p.AddMoveSpeed(p.moveSpeed * 0.12) },
		},
		{
			ID: "armor", Name: "Ablative Armor",
			Description: "Flat damage reduction +2", Icon: "icon-hull",
			MaxLevel: 3, Available: always,
			Apply: func(p *Player) { p.AddArmor(2) },
		},
		{
			ID: "targeting", Name: "Target Computer",
			Description: "Crit chance +5%", Icon: "icon-crit",
			MaxLevel: 5, Available: always,
			Apply: func(p *Player) { p.AddCritChance(0.05) },
		},
		{
			ID: "magnet", Name: "Salvage Magnet",
			Description: "XP pickup radius +40", Icon: "icon-magnet",
			MaxLevel: 3, Available: always,
			Apply: func(p *Player) { p.AddMagnetRadius(40) },
		},

		// Relics: never offered, granted through the pickup flow.
		{
			ID: "overclock-core", Name: "Overclock Core",
			Description: "All cannon boosts doubled once", Icon: "icon-relic",
			MaxLevel: 1, Relic: true, Available: always,
			Apply: func(p *Player) { p.BoostCannonDamage(1.5); p.BoostCannonRate(0.8) },
		},
		{
			ID: "titan-plating", Name: "Titan Plating",
			Description: "Max hull +60, armor +3", Icon: "icon-relic",
			MaxLevel: 1, Relic: true, Available: always,
			Apply: func(p *Player) { p.AddMaxHealth(60); p.AddArmor(3) },
		},
		{
			ID: "storm-caller", Name: "Storm Caller",
			Description: "Unlocks blast and widens it", Icon: "icon-relic",
			MaxLevel: 1, Relic: true, Available: always,
			Apply: func(p *Player) { p.UnlockBlast(); p.BoostBlastRadius(1.4) },
		},
	}
}
