// Package config provides YAML-based simulation configuration loading and
// difficulty management.
package config

import (
	"errors"
	"fmt"
)

// FlappyConfig contains all configuration for the simulation and its agents.
type FlappyConfig struct {
	Screen     ScreenConfig     `yaml:"screen"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Obstacles  ObstacleConfig   `yaml:"obstacles"`
	Player     PlayerConfig     `yaml:"player"`
	Agent      AgentConfig      `yaml:"agent"`
	Network    NetworkConfig    `yaml:"network"`
	Training   TrainingConfig   `yaml:"training"`
	Genetic    GeneticConfig    `yaml:"genetic"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// ScreenConfig is the size of the simulated world in pixels.
type ScreenConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PhysicsConfig defines actor physics and scroll speed.
type PhysicsConfig struct {
	Gravity     float64 `yaml:"gravity"`      // Subtracted from velocity each tick
	JumpImpulse float64 `yaml:"jump_impulse"` // Velocity set by a jump (positive = up)
	BaseSpeed   float64 `yaml:"base_speed"`   // Obstacle speed at best score 0
	SpeedStep   int     `yaml:"speed_step"`   // Best-score points per +1 speed
}

// ObstacleConfig defines pipe geometry.
type ObstacleConfig struct {
	PipeWidth float64 `yaml:"pipe_width"`
	MinGap    int     `yaml:"min_gap"`
	MaxGap    int     `yaml:"max_gap"`
	TopMargin int     `yaml:"top_margin"` // Smallest allowed gap top
}

// PlayerConfig defines the actor's fixed column and spawn height.
type PlayerConfig struct {
	X      float64 `yaml:"x"`
	StartY float64 `yaml:"start_y"`
	Size   float64 `yaml:"size"`
}

// AgentConfig tunes learned controllers.
type AgentConfig struct {
	Threshold float64 `yaml:"threshold"` // Jump when prediction exceeds this
}

// NetworkConfig shapes and trains the predictor network.
type NetworkConfig struct {
	Hidden       int     `yaml:"hidden"`
	Epochs       int     `yaml:"epochs"`
	LearningRate float64 `yaml:"learning_rate"`
}

// TrainingConfig drives the online imitation recorder.
type TrainingConfig struct {
	SampleInterval int `yaml:"sample_interval"` // Ticks between "no jump" samples
	FreezeAfter    int `yaml:"freeze_after"`    // Obstacles passed before recording stops
}

// GeneticConfig drives the generational algorithm.
type GeneticConfig struct {
	Population     int     `yaml:"population"`
	Elite          int     `yaml:"elite"`           // Top individuals used as parents
	MutationRate   float64 `yaml:"mutation_rate"`   // Per-sample mutation probability
	InitialSamples int     `yaml:"initial_samples"` // Random pairs for generation 0
}

// Validate reports every invalid field at once.
func (c FlappyConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Screen.Width > 0 && c.Screen.Height > 0, "screen: size must be positive, got %vx%v", c.Screen.Width, c.Screen.Height)
	check(c.Physics.Gravity >= 0, "physics: gravity must not be negative, got %v", c.Physics.Gravity)
	check(c.Physics.BaseSpeed > 0, "physics: base_speed must be positive, got %v", c.Physics.BaseSpeed)
	check(c.Physics.SpeedStep > 0, "physics: speed_step must be positive, got %d", c.Physics.SpeedStep)
	check(c.Obstacles.PipeWidth > 0, "obstacles: pipe_width must be positive, got %v", c.Obstacles.PipeWidth)
	check(c.Obstacles.MinGap > 0 && c.Obstacles.MinGap <= c.Obstacles.MaxGap,
		"obstacles: need 0 < min_gap <= max_gap, got %d..%d", c.Obstacles.MinGap, c.Obstacles.MaxGap)
	check(c.Obstacles.TopMargin >= 0 && float64(c.Obstacles.TopMargin) <= c.Screen.Height-float64(c.Obstacles.MaxGap),
		"obstacles: top_margin %d leaves no room for a %d gap", c.Obstacles.TopMargin, c.Obstacles.MaxGap)
	check(c.Player.Size > 0, "player: size must be positive, got %v", c.Player.Size)
	check(c.Player.StartY > 0 && c.Player.StartY < c.Screen.Height, "player: start_y %v outside screen", c.Player.StartY)
	check(c.Network.Hidden > 0, "network: hidden must be positive, got %d", c.Network.Hidden)
	check(c.Training.SampleInterval > 0, "training: sample_interval must be positive, got %d", c.Training.SampleInterval)
	check(c.Genetic.Population > 0, "genetic: population must be positive, got %d", c.Genetic.Population)
	check(c.Genetic.Elite > 0 && c.Genetic.Elite <= c.Genetic.Population,
		"genetic: need 0 < elite <= population, got %d of %d", c.Genetic.Elite, c.Genetic.Population)
	check(c.Genetic.MutationRate >= 0 && c.Genetic.MutationRate <= 1, "genetic: mutation_rate must be in [0,1], got %v", c.Genetic.MutationRate)

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid: %w", errors.Join(errs...))
	}
	return nil
}
