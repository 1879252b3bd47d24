package config

// DifficultyConfig selects how the speed ramp and gaps are tuned.
type DifficultyConfig struct {
	Preset DifficultyPreset `yaml:"preset"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed" // No speed progression
)

// ParsePreset maps a CLI string to a preset. Unknown values yield "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
// Gap bounds are adjusted together so min_gap <= max_gap still holds.
func ApplyPreset(cfg *FlappyConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	cfg.Difficulty.Preset = preset

	switch preset {
	case DifficultyEasy:
		cfg.Physics.BaseSpeed = 2
		cfg.Obstacles.MinGap += 20
		cfg.Obstacles.MaxGap += 20
	case DifficultyHard:
		cfg.Physics.BaseSpeed = 4
		cfg.Obstacles.MinGap = max(cfg.Obstacles.MinGap-20, int(cfg.Player.Size)+10)
		cfg.Obstacles.MaxGap = max(cfg.Obstacles.MaxGap-20, cfg.Obstacles.MinGap)
	}
}

// SpeedRamp derives the global scroll speed from the best score.
type SpeedRamp struct {
	Base    float64
	Step    int
	Enabled bool
}

// NewSpeedRamp builds the ramp described by the config.
func NewSpeedRamp(cfg FlappyConfig) SpeedRamp {
	return SpeedRamp{
		Base:    cfg.Physics.BaseSpeed,
		Step:    cfg.Physics.SpeedStep,
		Enabled: cfg.Difficulty.Preset != DifficultyFixed,
	}
}

// Speed returns base + floor(best/step).
func (r SpeedRamp) Speed(best int) float64 {
	if !r.Enabled || r.Step <= 0 || best <= 0 {
		return r.Base
	}
	return r.Base + float64(best/r.Step)
}
