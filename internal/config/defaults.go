package config

import (
	_ "embed"
)

//go:embed defaults/flappy.yaml
var defaultFlappyYAML []byte

// DefaultFlappyConfig returns the built-in configuration.
// It mirrors defaults/flappy.yaml and is used when the embedded file cannot be decoded.
func DefaultFlappyConfig() FlappyConfig {
	return FlappyConfig{
		Screen: ScreenConfig{
			Width:  640,
			Height: 480,
		},
		Physics: PhysicsConfig{
			Gravity:     0.98,
			JumpImpulse: 5,
			BaseSpeed:   3,
			SpeedStep:   5,
		},
		Obstacles: ObstacleConfig{
			PipeWidth: 100,
			MinGap:    100,
			MaxGap:    150,
			TopMargin: 50,
		},
		Player: PlayerConfig{
			X:      100,
			StartY: 50,
			Size:   40,
		},
		Agent: AgentConfig{
			Threshold: 0.55,
		},
		Network: NetworkConfig{
			Hidden:       10,
			Epochs:       100,
			LearningRate: 0.05,
		},
		Training: TrainingConfig{
			SampleInterval: 10,
			FreezeAfter:    5,
		},
		Genetic: GeneticConfig{
			Population:     10,
			Elite:          4,
			MutationRate:   0.05,
			InitialSamples: 10,
		},
		Difficulty: DifficultyConfig{
			Preset: DifficultyNormal,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultFlappyYAML
}
