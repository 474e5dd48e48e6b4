package mastery

// Config holds the score-accumulation policy. The deltas and threshold are
// calibration choices inherited from the production tuning; override them
// through the engine config file rather than editing constants.
type Config struct {
	// CorrectDelta is added to the score on a correct answer.
	CorrectDelta float64 `yaml:"correct_delta"`

	// IncorrectDelta is subtracted from the score on an incorrect answer.
	IncorrectDelta float64 `yaml:"incorrect_delta"`

	// MasteredScore is the score at or above which a unit counts as
	// mastered and leaves the selection pool.
	MasteredScore float64 `yaml:"mastered_score"`
}

// DefaultConfig returns the standard scoring policy.
func DefaultConfig() Config {
	return Config{
		CorrectDelta:   0.2,
		IncorrectDelta: 0.12,
		MasteredScore:  0.85,
	}
}
