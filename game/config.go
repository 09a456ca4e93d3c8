package game

import (
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds game configuration constants
type Config struct {
	// CellSize is the size of each spatial partition cell in pixels
	CellSize float64

	// WorldWidth is the total width of the game world in pixels
	WorldWidth float64

	// WorldHeight is the total height of the game world in pixels
	WorldHeight float64

	// ScreenWidth is the window width in pixels
	ScreenWidth int

	// ScreenHeight is the window height in pixels
	ScreenHeight int

	// ParallaxFactor scales camera position into background scroll offset
	ParallaxFactor float64

	// Tuning holds the balance numbers, overridable from a YAML file
	Tuning Tuning
}

// Tuning holds the balance numbers for a playthrough. The zero value is
// not usable; start from DefaultConfig and optionally overlay a YAML file.
type Tuning struct {
	// Player
	PlayerHealth       float64 `yaml:"player_health"`
	PlayerSpeed        float64 `yaml:"player_speed"`
	PlayerContactDPS   float64 `yaml:"player_contact_dps"`
	PlayerMagnetRadius float64 `yaml:"player_magnet_radius"`

	// Enemy spawning
	SpawnIntervalStart float64 `yaml:"spawn_interval_start"`
	SpawnIntervalMin   float64 `yaml:"spawn_interval_min"`
	SpawnRampSeconds   float64 `yaml:"spawn_ramp_seconds"`
	SpawnRingMin       float64 `yaml:"spawn_ring_min"`
	SpawnRingMax       float64 `yaml:"spawn_ring_max"`

	// Experience
	XPBaseThreshold float64 `yaml:"xp_base_threshold"`
	XPGrowth        float64 `yaml:"xp_growth"`

	// Weapons
	CannonDamage       float64 `yaml:"cannon_damage"`
	CannonCooldown     float64 `yaml:"cannon_cooldown"`
	CannonRange        float64 `yaml:"cannon_range"`
	EnemyShotDamage    float64 `yaml:"enemy_shot_damage"`
	DroneDamage        float64 `yaml:"drone_damage"`
	DroneOrbitRadius   float64 `yaml:"drone_orbit_radius"`
	BlastDamage        float64 `yaml:"blast_damage"`
	BlastRadius        float64 `yaml:"blast_radius"`
	BlastCooldown      float64 `yaml:"blast_cooldown"`
	AirstrikeDamage    float64 `yaml:"airstrike_damage"`
	AirstrikeRadius    float64 `yaml:"airstrike_radius"`
	AirstrikeCooldown  float64 `yaml:"airstrike_cooldown"`
	AirstrikeDelay     float64 `yaml:"airstrike_delay"`
	CritMultiplier     float64 `yaml:"crit_multiplier"`
	RelicSpawnInterval float64 `yaml:"relic_spawn_interval"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() Config {
	return Config{
		CellSize:       256.0,
		WorldWidth:     8192.0,
		WorldHeight:    8192.0,
		ScreenWidth:    1024,
		ScreenHeight:   768,
		ParallaxFactor: 0.4,
		Tuning: Tuning{
			PlayerHealth:       100.0,
			PlayerSpeed:        220.0,
			PlayerContactDPS:   20.0,
			PlayerMagnetRadius: 60.0,

			SpawnIntervalStart: 1.6,
			SpawnIntervalMin:   0.25,
			SpawnRampSeconds:   300.0,
			SpawnRingMin:       450.0,
			SpawnRingMax:       650.0,

			XPBaseThreshold: 20.0,
			XPGrowth:        1.35,

			CannonDamage:       10.0,
			CannonCooldown:     0.35,
			CannonRange:        520.0,
			EnemyShotDamage:    8.0,
			DroneDamage:        6.0,
			DroneOrbitRadius:   70.0,
			BlastDamage:        14.0,
			BlastRadius:        130.0,
			BlastCooldown:      3.0,
			AirstrikeDamage:    40.0,
			AirstrikeRadius:    110.0,
			AirstrikeCooldown:  8.0,
			AirstrikeDelay:     1.2,
			CritMultiplier:     2.0,
			RelicSpawnInterval: 45.0,
		},
	}
}

// LoadTuning overlays balance numbers from a YAML file onto the config.
// A missing file is not an error: the defaults stay in effect.
func (c *Config) LoadTuning(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("[Config] no tuning file at %s, using defaults", path)
			return nil
		}
		return fmt.Errorf("read tuning file: %w", err)
	}
	if err := yaml.Unmarshal(data, &c.Tuning); err != nil {
		return fmt.Errorf("parse tuning file %s: %w", path, err)
	}
	log.Printf("[Config] tuning loaded from %s", path)
	return nil
}

// CellCountX returns the number of cells in the X direction
func (c Config) CellCountX() int {
	return int(c.WorldWidth / c.CellSize)
}

// CellCountY returns the number of cells in the Y direction
func (c Config) CellCountY() int {
	return int(c.WorldHeight / c.CellSize)
}
