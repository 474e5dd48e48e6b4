// Package irt implements the item-response model used by the adaptive
// session engine: a three-parameter logistic curve, its Fisher information,
// and a single-step ability estimator.
package irt

import "math"

// Scaling and safety constants for the 3PL model.
const (
	// ScalingD is the logistic-to-normal-ogive scaling constant.
	ScalingD = 1.7

	// maxExponent caps the logistic exponent to avoid overflow in Exp.
	maxExponent = 35.0

	// minProbability floors probabilities before division.
	minProbability = 1e-9
)

// Default item parameters for synthetically derived units.
const (
	DefaultDiscrimination = 1.0
	DefaultGuessing       = 0.2
)

// ItemParameter holds the 3PL parameters for a single item.
// The zero value is not meaningful; construct via NewItemParameter.
type ItemParameter struct {
	Difficulty     float64
	Discrimination float64
	Guessing       float64
}

// NewItemParameter returns an ItemParameter at the given difficulty with
// default discrimination and guessing. Catalog units get their parameters
// this way; nothing is hand-authored.
func NewItemParameter(difficulty float64) ItemParameter {
	return ItemParameter{
		Difficulty:     difficulty,
		Discrimination: DefaultDiscrimination,
		Guessing:       DefaultGuessing,
	}
}

// ProbabilityCorrect returns P(correct | theta) under the 3PL model:
// guessing + (1-guessing) * sigmoid(D * a * (theta - b)).
func (p ItemParameter) ProbabilityCorrect(theta float64) float64 {
	exponent := -ScalingD * p.Discrimination * (theta - p.Difficulty)
	capped := math.Max(-maxExponent, math.Min(maxExponent, exponent))
	logistic := 1.0 / (1.0 + math.Exp(capped))
	return p.Guessing + (1-p.Guessing)*logistic
}

// FisherInformation returns the statistical information the item carries
// about theta. Always >= 0; maximized near theta == Difficulty.
func (p ItemParameter) FisherInformation(theta float64) float64 {
	oneMinusGuessing := 1.0 - p.Guessing
	if oneMinusGuessing <= 0 {
		return 0.0
	}

	prob := p.ProbabilityCorrect(theta)
	clampedP := math.Max(minProbability, math.Min(1.0-minProbability, prob))
	clampedQ := 1.0 - clampedP
	scaledSlope := ScalingD * p.Discrimination
	normalizedP := (clampedP - p.Guessing) / oneMinusGuessing
	return scaledSlope * scaledSlope * (clampedQ / clampedP) * normalizedP * normalizedP
}
