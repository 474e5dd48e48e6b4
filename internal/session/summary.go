package session

import (
	"sort"
	"time"

	"github.com/abhisek/adapt/internal/catalog"
	"github.com/abhisek/adapt/internal/mastery"
	"github.com/abhisek/adapt/internal/store"
)

// DefaultRecentTopics bounds the recent-topic list in summaries.
const DefaultRecentTopics = 6

// SpacedRepetitionSummary reports review pressure across all units.
type SpacedRepetitionSummary struct {
	DueCount     int     `json:"dueCount"`
	NextReviewAt *string `json:"nextReviewAt"`
}

// RecentTopic is one recently assessed unit.
type RecentTopic struct {
	Title        string `json:"title"`
	Level        string `json:"level"`
	LastAssessed string `json:"lastAssessed"`
}

// Summary condenses the exported student state for external display.
type Summary struct {
	SessionID        string                  `json:"sessionId"`
	MasteryLevels    map[string]int          `json:"masteryLevels"`
	SpacedRepetition SpacedRepetitionSummary `json:"spacedRepetition"`
	RecentTopics     []RecentTopic           `json:"recentTopics"`
	LastUpdated      string                  `json:"lastUpdated,omitempty"`
}

// EmptySummary is what a directory with no exported state summarizes to.
func EmptySummary() Summary {
	return Summary{
		MasteryLevels: emptyLevelCounts(),
		RecentTopics:  []RecentTopic{},
	}
}

// BuildSummary derives a Summary from the exported student state. A nil
// export yields the empty summary.
func BuildSummary(export *store.StudentState, units []catalog.Unit, now time.Time) Summary {
	if export == nil {
		return EmptySummary()
	}

	titles := make(map[string]string, len(units))
	for _, u := range units {
		titles[u.ID] = u.Topic
	}

	summary := Summary{
		SessionID:     export.SessionID,
		MasteryLevels: emptyLevelCounts(),
		RecentTopics:  []RecentTopic{},
		LastUpdated:   export.UpdatedAt,
	}

	var nextReview *time.Time
	var recent []RecentTopic

	for _, m := range export.KnowledgeMasteries {
		summary.MasteryLevels[m.Level.String()]++

		if m.NextReviewAt != "" {
			if at, err := time.Parse(time.RFC3339, m.NextReviewAt); err == nil {
				if !at.After(now) {
					summary.SpacedRepetition.DueCount++
				} else if nextReview == nil || at.Before(*nextReview) {
					t := at
					nextReview = &t
				}
			}
		}

		if m.LastAssessed == "" {
			continue
		}
		title := titles[m.DomainNodeID]
		if title == "" {
			title = "Untitled topic"
		}
		recent = append(recent, RecentTopic{
			Title:        title,
			Level:        m.Level.String(),
			LastAssessed: m.LastAssessed,
		})
	}

	if nextReview != nil {
		stamp := nextReview.UTC().Format(time.RFC3339)
		summary.SpacedRepetition.NextReviewAt = &stamp
	}

	// Most recently assessed first; RFC 3339 compares chronologically.
	sort.Slice(recent, func(i, j int) bool {
		return recent[i].LastAssessed > recent[j].LastAssessed
	})
	if len(recent) > DefaultRecentTopics {
		recent = recent[:DefaultRecentTopics]
	}
	summary.RecentTopics = append(summary.RecentTopics, recent...)

	return summary
}

func emptyLevelCounts() map[string]int {
	counts := make(map[string]int, len(mastery.Levels))
	for _, l := range mastery.Levels {
		counts[l.String()] = 0
	}
	return counts
}
