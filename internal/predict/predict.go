// Package predict projects the expected ability trajectory over a short
// horizon without further real responses. The projection is a deterministic
// expectation over the two answer branches, not a stochastic simulation:
// identical inputs always produce identical output.
package predict

import (
	"math"
	"time"

	"github.com/abhisek/adapt/internal/irt"
)

// Point is one projected step of the trajectory.
type Point struct {
	Step                  int     `json:"step"`
	ExpectedTheta         float64 `json:"expectedTheta"`
	ExpectedStandardError float64 `json:"expectedStandardError"`
	LowerTheta            float64 `json:"lowerTheta"`
	UpperTheta            float64 `json:"upperTheta"`
}

// Plot is the full projected trajectory.
type Plot struct {
	Horizon       int     `json:"horizon"`
	BaselineTheta float64 `json:"baselineTheta"`
	ProbCorrect   float64 `json:"probCorrect"`
	Points        []Point `json:"points"`
}

// Project simulates cfg.Horizon future ability updates from the given
// estimate. Each step branches the one-step estimator on assumed-correct and
// assumed-incorrect at the catalog's mean difficulty, then blends the
// branches by the overall correctness probability implied by the mastery
// scores. The band per point is one expected standard error around the
// expected theta.
func Project(theta float64, masteryScores []float64, meanDifficulty float64, cfg Config) Plot {
	horizon := cfg.Horizon
	if horizon <= 0 {
		horizon = DefaultConfig().Horizon
	}

	probCorrect := blendProbability(masteryScores, cfg)
	item := irt.NewItemParameter(meanDifficulty)

	plot := Plot{
		Horizon:       horizon,
		BaselineTheta: theta,
		ProbCorrect:   probCorrect,
		Points:        make([]Point, 0, horizon),
	}

	// The branch timestamps are irrelevant to the projection; a fixed
	// instant keeps the output fully deterministic.
	at := time.Time{}

	current := theta
	for step := 1; step <= horizon; step++ {
		correctBranch := irt.EstimateStep(current, item, true, at)
		incorrectBranch := irt.EstimateStep(current, item, false, at)

		expectedTheta := probCorrect*correctBranch.Theta + (1-probCorrect)*incorrectBranch.Theta
		expectedSE := probCorrect*correctBranch.StandardError + (1-probCorrect)*incorrectBranch.StandardError

		plot.Points = append(plot.Points, Point{
			Step:                  step,
			ExpectedTheta:         expectedTheta,
			ExpectedStandardError: expectedSE,
			LowerTheta:            expectedTheta - expectedSE,
			UpperTheta:            expectedTheta + expectedSE,
		})

		current = expectedTheta
	}

	return plot
}

// blendProbability estimates the learner's overall correctness probability
// from current mastery scores, clamped to the configured band. With no
// scores it falls back to the neutral default.
func blendProbability(scores []float64, cfg Config) float64 {
	if len(scores) == 0 {
		return cfg.DefaultProbCorrect
	}
	var sum float64
	for _, s := range scores {
		sum += s
	}
	mean := sum / float64(len(scores))
	return math.Max(cfg.MinProbCorrect, math.Min(cfg.MaxProbCorrect, mean))
}
