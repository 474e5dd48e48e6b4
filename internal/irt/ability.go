package irt

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// Estimator bounds and floors.
const (
	// ThetaMin and ThetaMax clamp the ability scale.
	ThetaMin = -3.0
	ThetaMax = 3.0

	// informationFloor prevents the Newton step from blowing up when an
	// item carries almost no information at the current theta.
	informationFloor = 1e-3
)

// Method tags how an ability estimate was produced.
type Method string

const (
	MethodPrior Method = "Prior"
	MethodMLE   Method = "MLE"
)

// AbilityEstimate is an immutable point estimate of learner ability.
type AbilityEstimate struct {
	ID            uuid.UUID
	Theta         float64
	StandardError float64
	Method        Method
	Timestamp     time.Time
}

// NewPrior constructs a prior ability estimate. The standard error must be
// positive; non-positive values fall back to 1.0.
func NewPrior(theta, standardError float64, now time.Time) AbilityEstimate {
	if standardError <= 0 {
		standardError = 1.0
	}
	return AbilityEstimate{
		ID:            uuid.New(),
		Theta:         ClampTheta(theta),
		StandardError: standardError,
		Method:        MethodPrior,
		Timestamp:     now,
	}
}

// Variance returns the squared standard error.
func (a AbilityEstimate) Variance() float64 {
	return a.StandardError * a.StandardError
}

// Information returns the reciprocal variance, or 0 for degenerate estimates.
func (a AbilityEstimate) Information() float64 {
	v := a.Variance()
	if v <= 0 {
		return 0.0
	}
	return 1.0 / v
}

// EstimateStep performs one Newton-Raphson update of theta from a single
// observed response. This is intentionally a single step, not a full MLE
// iteration: it is cheap enough for real-time use and approximates online
// MLE when item difficulty varies slowly between calls.
func EstimateStep(theta float64, item ItemParameter, correct bool, now time.Time) AbilityEstimate {
	probability := item.ProbabilityCorrect(theta)
	observed := 0.0
	if correct {
		observed = 1.0
	}

	info := math.Max(item.FisherInformation(theta), informationFloor)
	gradient := observed - probability
	step := gradient / info

	return AbilityEstimate{
		ID:            uuid.New(),
		Theta:         ClampTheta(theta + step),
		StandardError: 1.0 / math.Sqrt(info),
		Method:        MethodMLE,
		Timestamp:     now,
	}
}

// ClampTheta bounds theta to the supported ability scale.
func ClampTheta(theta float64) float64 {
	return math.Max(ThetaMin, math.Min(ThetaMax, theta))
}
