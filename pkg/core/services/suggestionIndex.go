package services

import (
	"context"
	"fmt"
	"time"

	"github.com/hfmateus/meetingplanner/pkg/core/suggest"
	"github.com/hfmateus/meetingplanner/pkg/db"
)

// IndexEntry is one participant's slice of the global suggestion index:
// the roster entry, its skills, and role-key recency map.
type IndexEntry struct {
	Participant db.Participant
	Skills      []db.Skill
	History     map[string]time.Time
}

// SuggestionIndexStore defines the reads the global index needs.
type SuggestionIndexStore interface {
	ListParticipants(ctx context.Context) ([]db.Participant, error)
	ListAssignmentHistory(ctx context.Context) ([]db.AssignmentRecord, error)
	ListWeeks(ctx context.Context) ([]db.Week, error)
}

// SuggestionIndex builds the roster-wide recency index in one pass:
// every non-declined assignment and every week-embedded role collapses
// into participant -> role key -> most recent date. The index is built
// fresh per call and discarded afterwards.
func SuggestionIndex(ctx context.Context, store SuggestionIndexStore) ([]IndexEntry, error) {
	participants, err := store.ListParticipants(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}

	records, err := store.ListAssignmentHistory(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignment history: %w", err)
	}

	weeks, err := store.ListWeeks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list weeks: %w", err)
	}

	var entries []suggest.Entry
	for _, rec := range records {
		entries = append(entries, suggest.EntriesFromAssignment(rec)...)
	}
	for _, w := range weeks {
		entries = append(entries, suggest.EntriesFromWeek(w)...)
	}
	index := suggest.BuildIndex(entries)

	result := make([]IndexEntry, 0, len(participants))
	for _, p := range participants {
		history := index[p.ID]
		if history == nil {
			history = map[string]time.Time{}
		}
		result = append(result, IndexEntry{
			Participant: p,
			Skills:      p.Skills,
			History:     history,
		})
	}
	return result, nil
}
