// Package config provides configuration loading and access for the pet simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Pet       PetConfig       `yaml:"pet"`
	Mood      MoodConfig      `yaml:"mood"`
	Behavior  BehaviorConfig  `yaml:"behavior"`
	Food      FoodConfig      `yaml:"food"`
	Ball      BallConfig      `yaml:"ball"`
	Render    RenderConfig    `yaml:"render"`
	Audio     AudioConfig     `yaml:"audio"`
	Diffusion DiffusionConfig `yaml:"diffusion"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Caretaker CaretakerConfig `yaml:"caretaker"`
	Logging   LoggingConfig   `yaml:"logging"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings. The canvas is also the world.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// PhysicsConfig holds solver parameters.
type PhysicsConfig struct {
	Gravity              float64 `yaml:"gravity"`               // px/s^2, positive is down
	Substeps             int     `yaml:"substeps"`              // Physics steps per frame
	PositionIterations   int     `yaml:"position_iterations"`   // Contact position passes per step
	VelocityIterations   int     `yaml:"velocity_iterations"`   // Contact velocity passes per step
	ConstraintIterations int     `yaml:"constraint_iterations"` // Spring passes per step
	MaxFrameDT           float64 `yaml:"max_frame_dt"`          // Frame dt clamp in seconds
	RestingSpeed         float64 `yaml:"resting_speed"`         // Below this normal speed a contact does not bounce
	SpringDamping        float64 `yaml:"spring_damping"`        // Fraction of stretch speed removed per step
}

// PetConfig holds soft-body construction parameters.
type PetConfig struct {
	Particles       int     `yaml:"particles"`
	BaseDistance    float64 `yaml:"base_distance"`
	CenterRadius    float64 `yaml:"center_radius"`
	ParticleRadius  float64 `yaml:"particle_radius"`
	Density         float64 `yaml:"density"`
	Friction        float64 `yaml:"friction"`
	Restitution     float64 `yaml:"restitution"`
	FrictionAir     float64 `yaml:"friction_air"`
	RadialStiffness float64 `yaml:"radial_stiffness"`
	RingStiffness   float64 `yaml:"ring_stiffness"`
	MinScale        float64 `yaml:"min_scale"`
	MaxScale        float64 `yaml:"max_scale"`
	NoiseScale      float64 `yaml:"noise_scale"`
	ColorVariation  float64 `yaml:"color_variation"`
	BlinkInterval   float64 `yaml:"blink_interval"` // Seconds between blinks
	BlinkDuration   float64 `yaml:"blink_duration"`
	CollisionGroup  int     `yaml:"collision_group"`
}

// MoodConfig holds hunger/happiness dynamics.
type MoodConfig struct {
	Initial          float64 `yaml:"initial"`
	FullnessDecay    float64 `yaml:"fullness_decay"`  // Per second
	HappinessDecay   float64 `yaml:"happiness_decay"` // Per second, doubled at full starvation
	HungryBelow      float64 `yaml:"hungry_below"`
	EatFullness      float64 `yaml:"eat_fullness"`
	EatHappiness     float64 `yaml:"eat_happiness"`
	BallHappiness    float64 `yaml:"ball_happiness"` // Per ball collision
	PlayHappinessSec float64 `yaml:"play_happiness_sec"`
}

// BehaviorConfig holds movement and jump tuning.
type BehaviorConfig struct {
	JumpImpulse      float64    `yaml:"jump_impulse"`
	JumpSpread       float64    `yaml:"jump_spread"` // Radians of random deviation for idle jumps
	FoodJumpMin      float64    `yaml:"food_jump_min"`
	FoodJumpMax      float64    `yaml:"food_jump_max"`
	FoodJumpDistance float64    `yaml:"food_jump_distance"` // No jump when closer than this
	FoodTimerStep    float64    `yaml:"food_timer_step"`    // Fixed per-tick timer increment
	FoodSteerForce   float64    `yaml:"food_steer_force"`
	IdleJitterForce  float64    `yaml:"idle_jitter_force"`
	LegacyFoodDelta  bool       `yaml:"legacy_food_delta"` // dy uses the center's x coordinate
	ExcitedAbove     float64    `yaml:"excited_above"`     // Happiness above which ball jumps come faster
	BallFirstExcited [2]float64 `yaml:"ball_first_excited"`
	BallFirstCalm    [2]float64 `yaml:"ball_first_calm"`
	BallNextExcited  [2]float64 `yaml:"ball_next_excited"`
	BallNextCalm     [2]float64 `yaml:"ball_next_calm"`
}

// FoodConfig holds apple parameters.
type FoodConfig struct {
	Radius         float64 `yaml:"radius"`
	Restitution    float64 `yaml:"restitution"`
	Friction       float64 `yaml:"friction"`
	FrictionAir    float64 `yaml:"friction_air"`
	Density        float64 `yaml:"density"`
	SpawnY         float64 `yaml:"spawn_y"`
	SpawnSpeed     float64 `yaml:"spawn_speed"`
	ReadyDelay     float64 `yaml:"ready_delay"` // Seconds before food can be eaten
	BounceFactor   float64 `yaml:"bounce_factor"`
	NoiseScale     float64 `yaml:"noise_scale"`
	ColorVariation float64 `yaml:"color_variation"`
}

// BallConfig holds toy ball parameters.
type BallConfig struct {
	Radius         float64 `yaml:"radius"`
	Restitution    float64 `yaml:"restitution"`
	Friction       float64 `yaml:"friction"`
	FrictionAir    float64 `yaml:"friction_air"`
	Density        float64 `yaml:"density"`
	SpawnY         float64 `yaml:"spawn_y"`
	SpawnMargin    float64 `yaml:"spawn_margin"`
	SpawnSpreadVX  float64 `yaml:"spawn_spread_vx"`
	SpawnVY        float64 `yaml:"spawn_vy"`
	Lifetime       float64 `yaml:"lifetime"` // Seconds before the ball is removed
	KickImpulse    float64 `yaml:"kick_impulse"`
	NoiseScale     float64 `yaml:"noise_scale"`
	ColorVariation float64 `yaml:"color_variation"`
}

// RenderConfig holds drawing toggles.
type RenderConfig struct {
	BorderBlur   bool    `yaml:"border_blur"`
	UINoiseScale float64 `yaml:"ui_noise_scale"`
	BannerScale  float64 `yaml:"banner_scale"`
}

// AudioConfig holds sound settings.
type AudioConfig struct {
	Enabled      bool    `yaml:"enabled"`
	SampleRate   int     `yaml:"sample_rate"`
	MasterVolume float64 `yaml:"master_volume"`
	MusicVolume  float64 `yaml:"music_volume"`
}

// DiffusionConfig holds the image-generation service endpoints.
type DiffusionConfig struct {
	Enabled     bool    `yaml:"enabled"`
	PromptURL   string  `yaml:"prompt_url"`
	FrameURL    string  `yaml:"frame_url"`
	FrameRate   float64 `yaml:"frame_rate"` // Frames per second sent to the service
	QueueSize   int     `yaml:"queue_size"`
	Timeout     float64 `yaml:"timeout"` // Seconds per request
	JPEGQuality int     `yaml:"jpeg_quality"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// CaretakerConfig holds the automatic feeder used in headless runs.
type CaretakerConfig struct {
	Enabled   bool    `yaml:"enabled"`
	FeedBelow float64 `yaml:"feed_below"`
	PlayBelow float64 `yaml:"play_below"`
}

// LoggingConfig holds rotating log file settings.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ScreenW32  float32 // Screen.Width as float32
	ScreenH32  float32 // Screen.Height as float32
	FrameEvery float64 // Seconds between frame sink uploads
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// validate rejects values the simulation cannot run with.
func (c *Config) validate() error {
	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		return fmt.Errorf("screen size must be positive, got %dx%d", c.Screen.Width, c.Screen.Height)
	}
	if c.Physics.Substeps < 1 {
		return fmt.Errorf("physics.substeps must be at least 1, got %d", c.Physics.Substeps)
	}
	if c.Pet.Particles < 3 {
		return fmt.Errorf("pet.particles must be at least 3, got %d", c.Pet.Particles)
	}
	if c.Pet.MinScale > c.Pet.MaxScale {
		return fmt.Errorf("pet.min_scale %.2f exceeds pet.max_scale %.2f", c.Pet.MinScale, c.Pet.MaxScale)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
	if c.Diffusion.FrameRate > 0 {
		c.Derived.FrameEvery = 1 / c.Diffusion.FrameRate
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
