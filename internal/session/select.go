package session

import (
	"time"

	"github.com/abhisek/adapt/internal/catalog"
	"github.com/abhisek/adapt/internal/config"
	"github.com/abhisek/adapt/internal/irt"
	"github.com/abhisek/adapt/internal/mastery"
)

// candidate scores one remaining unit for selection.
type candidate struct {
	unit         catalog.Unit
	due          bool
	priority     float64
	lastAssessed string
}

// beats orders candidates by the (due, priority, lastAssessed) tuple.
// Due items always outrank non-due items; ties fall to higher priority,
// then to the greater lastAssessed string (RFC 3339 compares
// chronologically as text, empty sorts lowest).
func (c candidate) beats(other candidate) bool {
	if c.due != other.due {
		return c.due
	}
	if c.priority != other.priority {
		return c.priority > other.priority
	}
	return c.lastAssessed > other.lastAssessed
}

// selectNextUnit picks the next unit to present: the remaining unit with
// the highest information-weighted mastery gap, boosted when its review is
// due. Returns nil when no eligible candidates remain.
func selectNextUnit(
	unitsByID map[string]catalog.Unit,
	remaining []string,
	entries map[string]mastery.Entry,
	difficulties map[string]float64,
	theta float64,
	now time.Time,
	cfg config.SelectionConfig,
) *catalog.Unit {
	var best *candidate

	for _, unitID := range remaining {
		unit, ok := unitsByID[unitID]
		if !ok {
			continue
		}
		entry := entries[unitID]
		item := irt.NewItemParameter(difficulties[unitID])

		c := candidate{
			unit:         unit,
			due:          entry.Due(now),
			priority:     (1.0 - entry.Score) * (1.0 + item.FisherInformation(theta)),
			lastAssessed: entry.LastAssessed,
		}
		if c.due {
			c.priority *= cfg.DueBoost
		} else {
			c.priority *= cfg.NotDueFactor
		}

		if best == nil || c.beats(*best) {
			chosen := c
			best = &chosen
		}
	}

	if best == nil {
		return nil
	}
	unit := best.unit
	return &unit
}
