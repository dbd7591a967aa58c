package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/fieldboost/internal/input"
	"github.com/san-kum/fieldboost/internal/state"
	"github.com/san-kum/fieldboost/internal/vecmath"
)

const (
	DefaultDataDir    = ".fieldboost"
	DefaultTheme      = "cyberpunk"
	DefaultLogLevel   = "info"
	DefaultDebounceMS = 250
	DefaultSteps      = 60
	DefaultWorkers    = 4
	DefaultTolerance  = 1e-9
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	MaxSpeed   float64        `yaml:"max_speed"`
	MinMass    float64        `yaml:"min_mass"`
	DataDir    string         `yaml:"data_dir"`
	Theme      string         `yaml:"theme"`
	LogLevel   string         `yaml:"log_level"`
	DebounceMS int            `yaml:"debounce_ms"`
	Tolerance  float64        `yaml:"tolerance"`
	Preset     string         `yaml:"preset"`
	Scenario   ScenarioConfig `yaml:"scenario"`
	Sweep      SweepConfig    `yaml:"sweep"`
}

// ScenarioConfig is the start-up state. Angles are in degrees.
type ScenarioConfig struct {
	E        [3]float64     `yaml:"e"`
	B        [3]float64     `yaml:"b"`
	Boost    VelocityConfig `yaml:"boost"`
	Particle VelocityConfig `yaml:"particle"`
	Charge   float64        `yaml:"charge"`
	Mass     float64        `yaml:"mass"`
}

type VelocityConfig struct {
	R        float64 `yaml:"r"`
	PhiDeg   float64 `yaml:"phi_deg"`
	ThetaDeg float64 `yaml:"theta_deg"`
}

type SweepConfig struct {
	Steps   int `yaml:"steps"`
	Workers int `yaml:"workers"`
}

func DefaultConfig() *Config {
	return &Config{
		MaxSpeed:   state.DefaultMaxSpeed,
		MinMass:    state.DefaultMinMass,
		DataDir:    DefaultDataDir,
		Theme:      DefaultTheme,
		LogLevel:   DefaultLogLevel,
		DebounceMS: DefaultDebounceMS,
		Tolerance:  DefaultTolerance,
		Scenario:   ScenarioFromState(state.Default()),
		Sweep: SweepConfig{
			Steps:   DefaultSteps,
			Workers: DefaultWorkers,
		},
	}
}

// Load reads path over the defaults, so a file only needs the keys it changes.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if err := c.Policy().Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.DebounceMS < 0 {
		return fmt.Errorf("%w: debounce_ms %d is negative", ErrInvalidConfig, c.DebounceMS)
	}
	if c.Sweep.Steps < 2 {
		return fmt.Errorf("%w: sweep.steps must be at least 2", ErrInvalidConfig)
	}
	if c.Sweep.Workers < 1 {
		return fmt.Errorf("%w: sweep.workers must be at least 1", ErrInvalidConfig)
	}
	if c.Tolerance <= 0 {
		return fmt.Errorf("%w: tolerance must be positive", ErrInvalidConfig)
	}
	if c.Preset != "" {
		if _, ok := input.Presets[c.Preset]; !ok {
			return fmt.Errorf("%w: unknown preset %q", ErrInvalidConfig, c.Preset)
		}
	}
	return nil
}

func (c *Config) Policy() state.Policy {
	return state.Policy{MaxSpeed: c.MaxSpeed, MinMass: c.MinMass}
}

// InitialState builds the start-up state from the scenario, then applies
// the preset if one is named.
func (c *Config) InitialState() (state.State, error) {
	s := c.Scenario.State()
	if c.Preset == "" {
		return s, nil
	}
	return input.ApplyPreset(s, c.Preset)
}

// State converts the scenario into a state with every display toggle on.
func (sc ScenarioConfig) State() state.State {
	return state.State{
		Field: state.Field{
			E: vecmath.New(sc.E[0], sc.E[1], sc.E[2]),
			B: vecmath.New(sc.B[0], sc.B[1], sc.B[2]),
		},
		Boost: state.Boost{Velocity: sc.Boost.spherical()},
		Particle: state.Particle{
			Velocity: sc.Particle.spherical(),
			Charge:   sc.Charge,
			Mass:     sc.Mass,
		},
		Display: state.AllVisible(),
	}
}

// ScenarioFromState is the inverse of ScenarioConfig.State.
func ScenarioFromState(s state.State) ScenarioConfig {
	return ScenarioConfig{
		E:        s.Field.E.Array(),
		B:        s.Field.B.Array(),
		Boost:    velocityConfig(s.Boost.Velocity),
		Particle: velocityConfig(s.Particle.Velocity),
		Charge:   s.Particle.Charge,
		Mass:     s.Particle.Mass,
	}
}

func (v VelocityConfig) spherical() vecmath.Spherical {
	return vecmath.NewSpherical(v.R, input.Radians(v.PhiDeg), input.Radians(v.ThetaDeg))
}

func velocityConfig(s vecmath.Spherical) VelocityConfig {
	return VelocityConfig{R: s.R, PhiDeg: input.Degrees(s.Phi), ThetaDeg: input.Degrees(s.Theta)}
}
