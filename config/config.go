// Package config holds the recognized configuration surface for agents
// and motion controllers, with defaulting for omitted fields
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Looking-Fresh-Games/Freshynoid/parameter"
)

// AgentParameters describes the navigating agent's shape and abilities
type AgentParameters struct {
	Radius          float64            `yaml:"radius"`
	Height          float64            `yaml:"height"`
	CanJump         bool               `yaml:"canJump"`
	CanClimb        bool               `yaml:"canClimb"`
	WaypointSpacing float64            `yaml:"waypointSpacing"`
	Costs           map[string]float64 `yaml:"costs"` // per-label traversal costs
}

// RootSelector names the world-position source driving the controller
type RootSelector string

const (
	RootRigidBody  RootSelector = "RigidBody"
	RootAttachment RootSelector = "Attachment"
)

// MotionConfiguration tunes the motion controller
type MotionConfiguration struct {
	WalkSpeed      float64      `yaml:"walkSpeed"`
	WalkCycleSpeed float64      `yaml:"walkCycleSpeed"` // optional, 0 derives from WalkSpeed
	RootSelector   RootSelector `yaml:"rootSelector"`
	ArrivalEpsilon float64      `yaml:"arrivalEpsilon"`
	ArrivalRadius  float64      `yaml:"arrivalRadius"`
}

// Config is the full file-level configuration
type Config struct {
	Agent  AgentParameters     `yaml:"agent"`
	Motion MotionConfiguration `yaml:"motion"`
}

// DefaultAgentParameters returns the baseline agent shape
func DefaultAgentParameters() AgentParameters {
	return AgentParameters{
		Radius:          parameter.DefaultAgentRadius,
		Height:          parameter.DefaultAgentHeight,
		CanJump:         true,
		WaypointSpacing: parameter.DefaultWaypointSpacing,
		Costs:           map[string]float64{},
	}
}

// DefaultMotionConfiguration returns the baseline controller tuning
func DefaultMotionConfiguration() MotionConfiguration {
	return MotionConfiguration{
		WalkSpeed:      parameter.DefaultWalkSpeed,
		RootSelector:   RootRigidBody,
		ArrivalEpsilon: parameter.ArrivalEpsilon,
		ArrivalRadius:  parameter.ArrivalRadius,
	}
}

// Default returns the full default configuration
func Default() Config {
	return Config{
		Agent:  DefaultAgentParameters(),
		Motion: DefaultMotionConfiguration(),
	}
}

// ApplyDefaults fills zero-valued numeric fields in place
// Booleans decoded as false stay false; only quantities are defaulted
func (c *Config) ApplyDefaults() {
	d := Default()
	if c.Agent.Radius == 0 {
		c.Agent.Radius = d.Agent.Radius
	}
	if c.Agent.Height == 0 {
		c.Agent.Height = d.Agent.Height
	}
	if c.Agent.WaypointSpacing == 0 {
		c.Agent.WaypointSpacing = d.Agent.WaypointSpacing
	}
	if c.Agent.Costs == nil {
		c.Agent.Costs = map[string]float64{}
	}
	if c.Motion.WalkSpeed == 0 {
		c.Motion.WalkSpeed = d.Motion.WalkSpeed
	}
	if c.Motion.RootSelector == "" {
		c.Motion.RootSelector = d.Motion.RootSelector
	}
	if c.Motion.ArrivalEpsilon == 0 {
		c.Motion.ArrivalEpsilon = d.Motion.ArrivalEpsilon
	}
	if c.Motion.ArrivalRadius == 0 {
		c.Motion.ArrivalRadius = d.Motion.ArrivalRadius
	}
}

// Load reads a YAML configuration file, applying defaults for omitted fields
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML configuration bytes, applying defaults for omitted fields
func Parse(data []byte) (Config, error) {
	cfg := Config{Agent: AgentParameters{CanJump: true}}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	cfg.ApplyDefaults()
	return cfg, nil
}
