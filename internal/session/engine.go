package session

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/abhisek/adapt/internal/catalog"
	"github.com/abhisek/adapt/internal/config"
	"github.com/abhisek/adapt/internal/irt"
	"github.com/abhisek/adapt/internal/journal"
	"github.com/abhisek/adapt/internal/predict"
	"github.com/abhisek/adapt/internal/schedule"
	"github.com/abhisek/adapt/internal/store"
)

// Engine orchestrates the per-turn adaptive protocol. It owns no state of
// its own: every turn is a lock-guarded read-modify-write of the session
// state through the injected repository.
type Engine struct {
	repo    store.SessionRepo
	units   []catalog.Unit
	byID    map[string]catalog.Unit
	cfg     config.Config
	journal *journal.Journal
	now     func() time.Time
}

// NewEngine creates an engine over the given catalog. The journal may be
// nil; journaling is best-effort either way.
func NewEngine(repo store.SessionRepo, units []catalog.Unit, cfg config.Config, j *journal.Journal) *Engine {
	return &Engine{
		repo:    repo,
		units:   units,
		byID:    catalog.ByID(units),
		cfg:     cfg,
		journal: j,
		now:     time.Now,
	}
}

// ProcessRequest runs one turn of the session protocol and returns the
// response envelope. The whole turn serializes through the data
// directory's lock; a *store.ErrLockTimeout from here is transient and
// safe to retry.
func (e *Engine) ProcessRequest(ctx context.Context, req *Request) (*Response, error) {
	if len(e.units) == 0 {
		return nil, ErrNoCatalog
	}

	var resp *Response
	err := e.repo.WithLock(ctx, func(ctx context.Context) error {
		state, err := e.repo.Load(ctx)
		if err != nil {
			return err
		}

		now := e.now()
		if state == nil || req.Reset {
			state = initializeState(e.units, e.cfg, now)
		}

		// An exhausted pool refills with the full catalog: sessions
		// span the learner's lifetime, not a single pass.
		if len(state.RemainingUnitIDs) == 0 {
			for _, u := range e.units {
				state.RemainingUnitIDs = append(state.RemainingUnitIDs, u.ID)
			}
		}

		state.RemainingUnitIDs = injectDueReviews(e.byID, state.RemainingUnitIDs, state.Mastery, now)

		var currentUnit *catalog.Unit
		currentID := req.UnitID
		if currentID == "" && state.ActiveUnitID != nil {
			currentID = *state.ActiveUnitID
		}
		if currentID != "" {
			if u, ok := e.byID[currentID]; ok {
				currentUnit = &u
			}
		}

		if req.Action == ActionStart || currentUnit == nil {
			resp, err = e.startTurn(ctx, state, now)
			return err
		}

		resp, err = e.answerTurn(ctx, state, *currentUnit, req, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// startTurn selects the first unit to present without grading anything.
func (e *Engine) startTurn(ctx context.Context, state *store.SessionState, now time.Time) (*Response, error) {
	unit := selectNextUnit(e.byID, state.RemainingUnitIDs, state.Mastery,
		state.UnitDifficulties, state.Ability.Theta, now, e.cfg.Selection)

	state.ActiveUnitID = nil
	if unit != nil {
		id := unit.ID
		state.ActiveUnitID = &id
	}
	state.UpdatedAt = now.UTC().Format(time.RFC3339)

	// The primary state file is the turn: a failed write means nothing
	// advanced, so the caller must see the error, not a success envelope.
	if err := e.repo.Save(ctx, state); err != nil {
		return nil, err
	}

	return &Response{
		SessionID:      state.SessionID,
		CurrentUnit:    unit,
		Progress:       progressFor(len(state.Responses), len(e.units)),
		Ability:        state.Ability,
		MasteryLevels:  masteryLevelCounts(state.Mastery),
		PredictivePlot: e.project(state),
		IsComplete:     unit == nil,
	}, nil
}

// answerTurn grades the active unit's answer and advances the session.
func (e *Engine) answerTurn(ctx context.Context, state *store.SessionState, unit catalog.Unit, req *Request, now time.Time) (*Response, error) {
	stamp := now.UTC().Format(time.RFC3339)
	isCorrect := evaluateAnswer(unit, req)

	previousTheta := state.Ability.Theta
	item := irt.NewItemParameter(state.UnitDifficulties[unit.ID])
	updated := irt.EstimateStep(previousTheta, item, isCorrect, now)
	state.Ability = store.AbilityState{
		Theta:         updated.Theta,
		StandardError: updated.StandardError,
	}

	state.Responses = append(state.Responses, store.ResponseRecord{
		UnitID:       unit.ID,
		IsCorrect:    isCorrect,
		Answer:       req.RawAnswer(),
		Timestamp:    stamp,
		AbilityAfter: state.Ability,
	})

	entry := state.Mastery[unit.ID].RecordAnswer(isCorrect, e.cfg.Mastery, now)
	entry = schedule.Reschedule(entry, isCorrect, now, e.cfg.Schedule)
	state.Mastery[unit.ID] = entry

	if entry.Mastered(e.cfg.Mastery) {
		state.RemainingUnitIDs = removeUnit(state.RemainingUnitIDs, unit.ID)
	}

	shift := updated.Theta - previousTheta
	if shift < 0 {
		shift = -shift
	}
	if shift < e.cfg.Termination.StallThetaDelta {
		state.StallCount++
	} else {
		state.StallCount = 0
	}

	isComplete := shouldTerminate(state, e.cfg.Termination)

	var nextUnit *catalog.Unit
	if !isComplete {
		nextUnit = selectNextUnit(e.byID, state.RemainingUnitIDs, state.Mastery,
			state.UnitDifficulties, state.Ability.Theta, now, e.cfg.Selection)
	}

	state.ActiveUnitID = nil
	if nextUnit != nil {
		id := nextUnit.ID
		state.ActiveUnitID = &id
	}
	state.UpdatedAt = stamp

	if err := e.repo.Save(ctx, state); err != nil {
		return nil, err
	}
	if err := e.repo.SaveStudentState(ctx, store.BuildStudentState(state, now)); err != nil {
		warn("save student state: %v", err)
	}
	e.journalAnswer(ctx, state, unit.ID, isCorrect, stamp)

	feedback := feedbackIncorrect
	if isCorrect {
		feedback = feedbackCorrect
	}

	return &Response{
		SessionID:      state.SessionID,
		CurrentUnit:    &unit,
		NextUnit:       nextUnit,
		Result:         &Result{IsCorrect: isCorrect, Feedback: feedback},
		Progress:       progressFor(len(state.Responses), len(e.units)),
		Ability:        state.Ability,
		MasteryLevels:  masteryLevelCounts(state.Mastery),
		PredictivePlot: e.project(state),
		IsComplete:     isComplete,
	}, nil
}

func (e *Engine) project(state *store.SessionState) predict.Plot {
	return predict.Project(
		state.Ability.Theta,
		masteryScores(state.Mastery),
		catalog.MeanDifficulty(state.UnitDifficulties),
		e.cfg.Predict,
	)
}

// journalAnswer appends the graded response to the analytics journal.
// Best effort: failure is a warning, never a turn failure.
func (e *Engine) journalAnswer(ctx context.Context, state *store.SessionState, unitID string, isCorrect bool, stamp string) {
	if e.journal == nil {
		return
	}
	err := e.journal.AppendAnswer(ctx, journal.AnswerEvent{
		SessionID:     state.SessionID,
		UnitID:        unitID,
		IsCorrect:     isCorrect,
		ThetaAfter:    state.Ability.Theta,
		StandardError: state.Ability.StandardError,
		CreatedAt:     stamp,
	})
	if err != nil {
		warn("journal answer event: %v", err)
	}
}

func warn(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "warning: "+format+"\n", args...)
}
