package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Simulation holds all configuration for the threat simulation server.
type Simulation struct {
	LogLevel string `yaml:"log_level"`

	// TickRate is simulation ticks per second.
	TickRate float64 `yaml:"tick_rate"`

	Zone     Zone     `yaml:"zone"`
	Wave     Wave     `yaml:"wave"`
	Behavior Behavior `yaml:"behavior"`

	// Database is the optional persistence/economy sink. Left disabled,
	// the simulation runs fully in memory.
	PersistResults bool           `yaml:"persist_results"`
	Database       DatabaseConfig `yaml:"database"`
}

// Zone describes the active play area and its defended coop sections.
type Zone struct {
	CenterX float64 `yaml:"center_x"`
	CenterY float64 `yaml:"center_y"`
	CenterZ float64 `yaml:"center_z"`
	SizeX   float64 `yaml:"size_x"`
	SizeZ   float64 `yaml:"size_z"`
	Margin  float64 `yaml:"margin"`

	Areas []Area `yaml:"areas"`
}

// Area is one defended coop section for the standalone server.
type Area struct {
	X           float64 `yaml:"x"`
	Y           float64 `yaml:"y"`
	Z           float64 `yaml:"z"`
	TargetCount int     `yaml:"target_count"`
}

// Wave holds spawn scheduling parameters.
type Wave struct {
	// BaseInterval/MinInterval in seconds.
	BaseInterval float64 `yaml:"base_interval"`
	MinInterval  float64 `yaml:"min_interval"`

	// MaxActive is the live-predator ceiling.
	MaxActive int `yaml:"max_active"`

	// AttacksPerPredator is how many successful strikes a predator lands
	// before it escapes with its prize.
	AttacksPerPredator int32 `yaml:"attacks_per_predator"`

	// DirectSpawnChance is the probability a new predator skips roaming
	// and heads straight for a coop.
	DirectSpawnChance float64 `yaml:"direct_spawn_chance"`

	// CleanupInterval in seconds between sweeps of resolved records.
	CleanupInterval float64 `yaml:"cleanup_interval"`
}

// Behavior holds tactical state machine timings and radii (seconds/studs).
type Behavior struct {
	RoamDuration     float64 `yaml:"roam_duration"`
	StalkDuration    float64 `yaml:"stalk_duration"`
	FleeDuration     float64 `yaml:"flee_duration"`
	CautiousDuration float64 `yaml:"cautious_duration"`

	ArrivalThreshold   float64 `yaml:"arrival_threshold"`
	WeaponDetectRadius float64 `yaml:"weapon_detect_radius"`
	FleeDistance       float64 `yaml:"flee_distance"`
	PatrolRadius       float64 `yaml:"patrol_radius"`
	PatrolCooldown     float64 `yaml:"patrol_cooldown"`

	// DespawnGrace is how long a predator lingers at an empty coop
	// before it gives up and leaves.
	DespawnGrace float64 `yaml:"despawn_grace"`

	// EngageWindow: damage within this many seconds counts as an active
	// engagement with a defender.
	EngageWindow float64 `yaml:"engage_window"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// DefaultSimulation returns Simulation config with sensible defaults.
func DefaultSimulation() Simulation {
	return Simulation{
		LogLevel: "info",
		TickRate: 10,
		Zone: Zone{
			CenterX: 0,
			CenterY: 0,
			CenterZ: 0,
			SizeX:   400,
			SizeZ:   400,
			Margin:  10,
			Areas: []Area{
				{X: -120, Y: 0, Z: -120, TargetCount: 6},
				{X: 120, Y: 0, Z: -120, TargetCount: 6},
				{X: 0, Y: 0, Z: 140, TargetCount: 6},
			},
		},
		Wave: Wave{
			BaseInterval:       45,
			MinInterval:        8,
			MaxActive:          12,
			AttacksPerPredator: 3,
			DirectSpawnChance:  0.25,
			CleanupInterval:    10,
		},
		Behavior: Behavior{
			RoamDuration:       6,
			StalkDuration:      2.5,
			FleeDuration:       5,
			CautiousDuration:   4,
			ArrivalThreshold:   2,
			WeaponDetectRadius: 25,
			FleeDistance:       40,
			PatrolRadius:       12,
			PatrolCooldown:     3,
			DespawnGrace:       20,
			EngageWindow:       5,
		},
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "chickenlittle",
			Password: "chickenlittle",
			DBName:   "chickenlittle",
			SSLMode:  "disable",
		},
	}
}

// LoadSimulation reads simulation config from a YAML file.
// A missing file returns defaults; missing keys keep their default values.
func LoadSimulation(path string) (Simulation, error) {
	cfg := DefaultSimulation()

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}
