package predict

// Config controls the trajectory projection.
type Config struct {
	// Horizon is the number of future steps to project.
	Horizon int `yaml:"horizon"`

	// MinProbCorrect and MaxProbCorrect clamp the blended correctness
	// probability derived from mastery scores.
	MinProbCorrect float64 `yaml:"min_prob_correct"`
	MaxProbCorrect float64 `yaml:"max_prob_correct"`

	// DefaultProbCorrect is used when no mastery data exists yet.
	DefaultProbCorrect float64 `yaml:"default_prob_correct"`
}

// DefaultConfig returns the standard projection settings.
func DefaultConfig() Config {
	return Config{
		Horizon:            6,
		MinProbCorrect:     0.15,
		MaxProbCorrect:     0.9,
		DefaultProbCorrect: 0.55,
	}
}
