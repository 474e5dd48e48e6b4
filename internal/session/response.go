package session

import (
	"math"

	"github.com/abhisek/adapt/internal/catalog"
	"github.com/abhisek/adapt/internal/predict"
	"github.com/abhisek/adapt/internal/store"
)

// Result carries the grading outcome for the answered unit.
type Result struct {
	IsCorrect bool   `json:"isCorrect"`
	Feedback  string `json:"feedback"`
}

// Progress reports how far through the catalog the session is.
type Progress struct {
	Completed int     `json:"completed"`
	Total     int     `json:"total"`
	Percent   float64 `json:"percent"`
}

// Response is the per-turn output envelope.
type Response struct {
	SessionID      string             `json:"sessionId"`
	CurrentUnit    *catalog.Unit      `json:"currentUnit"`
	NextUnit       *catalog.Unit      `json:"nextUnit,omitempty"`
	Result         *Result            `json:"result,omitempty"`
	Progress       Progress           `json:"progress"`
	Ability        store.AbilityState `json:"ability"`
	MasteryLevels  map[string]int     `json:"masteryLevels"`
	PredictivePlot predict.Plot       `json:"predictivePlot"`
	IsComplete     bool               `json:"isComplete"`
}

// Feedback shown per grading outcome.
const (
	feedbackCorrect   = "Great job! Mastery is trending up."
	feedbackIncorrect = "Review the key points and try again."
)

// progressFor computes completion over the full catalog, percent rounded
// to one decimal.
func progressFor(completed, total int) Progress {
	divisor := total
	if divisor < 1 {
		divisor = 1
	}
	percent := math.Round(float64(completed)/float64(divisor)*1000) / 10
	return Progress{Completed: completed, Total: total, Percent: percent}
}
