package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/hfmateus/meetingplanner/pkg/core/suggest"
	"github.com/hfmateus/meetingplanner/pkg/db"
)

const (
	// recentAssignmentLimit caps the per-participant history pulled
	// when ranking a slot.
	recentAssignmentLimit = 5

	// presidingHistoryLimit caps the roster-wide presiding history
	// pulled when ranking the presiding role.
	presidingHistoryLimit = 100
)

// SuggestStore defines the reads candidate suggestion needs.
type SuggestStore interface {
	GetWeek(ctx context.Context, id string) (*db.Week, error)
	GetWeekByDate(ctx context.Context, date time.Time) (*db.Week, error)
	GetSlotTemplate(ctx context.Context, id string) (*db.SlotTemplate, error)
	ListParticipants(ctx context.Context) ([]db.Participant, error)
	RecentAssignments(ctx context.Context, participantID, excludeWeekID string, limit int) ([]db.AssignmentRecord, error)
	RecentPresidingWeeks(ctx context.Context, limit int) ([]db.Week, error)
}

// SuggestCandidates ranks eligible participants for a slot of the
// given week. slotRef is a slot-template id, or one of the special
// role keys "president" and "prayer". The week identifier may be a
// week id or a raw date.
func SuggestCandidates(ctx context.Context, store SuggestStore, logger *zap.Logger, weekIdent, slotRef string) ([]suggest.Candidate, error) {
	if slotRef == "" {
		return nil, fmt.Errorf("%w: slot template id is required", db.ErrInvalidInput)
	}

	week, err := resolveWeek(ctx, store, weekIdent)
	if err != nil {
		return nil, err
	}

	roleKey, eligible, err := eligibilityFor(ctx, store, slotRef)
	if err != nil {
		return nil, err
	}

	participants, err := store.ListParticipants(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}

	// Presiding history lives on week rows, so it is pulled once for
	// the whole roster rather than per participant.
	var presidingEntries map[string][]suggest.Entry
	if roleKey == suggest.RoleKeyPresident {
		presidingEntries, err = loadPresidingHistory(ctx, store, week.ID)
		if err != nil {
			return nil, err
		}
	}

	var candidates []suggest.Candidate
	for _, p := range participants {
		if !p.CanBeAssigned || !eligible(p) {
			continue
		}

		records, err := store.RecentAssignments(ctx, p.ID, week.ID, recentAssignmentLimit)
		if err != nil {
			return nil, fmt.Errorf("failed to load history for participant %s: %w", p.ID, err)
		}

		var entries []suggest.Entry
		for _, rec := range records {
			for _, e := range suggest.EntriesFromAssignment(rec) {
				if e.ParticipantID == p.ID {
					entries = append(entries, e)
				}
			}
		}
		entries = append(entries, presidingEntries[p.ID]...)

		candidates = append(candidates, suggest.BuildCandidate(p, entries, roleKey))
	}

	suggest.Rank(candidates)

	logger.Debug("Candidates ranked",
		zap.String("week_id", week.ID),
		zap.String("slot", slotRef),
		zap.Int("count", len(candidates)))

	return candidates, nil
}

// resolveWeek loads the target week by id, or by date when the
// identifier parses as one.
func resolveWeek(ctx context.Context, store SuggestStore, ident string) (*db.Week, error) {
	var week *db.Week
	var err error
	if date, parseErr := time.Parse("2006-01-02", ident); parseErr == nil {
		week, err = store.GetWeekByDate(ctx, normalizeDate(date))
	} else {
		week, err = store.GetWeek(ctx, ident)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve week: %w", err)
	}
	if week == nil {
		return nil, fmt.Errorf("%w: week %s", db.ErrNotFound, ident)
	}
	return week, nil
}

// eligibilityFor maps a slot reference to its role key and filter:
// presiding is restricted to elders, the opening prayer to elders,
// ministerial servants and male publishers, and every other slot to
// participants holding a matching skill.
func eligibilityFor(ctx context.Context, store SuggestStore, slotRef string) (string, func(db.Participant) bool, error) {
	switch slotRef {
	case suggest.RoleKeyPresident:
		return suggest.RoleKeyPresident, suggest.EligibleForPresident, nil
	case suggest.RoleKeyPrayer:
		return suggest.RoleKeyPrayer, suggest.EligibleForPrayer, nil
	}

	tpl, err := store.GetSlotTemplate(ctx, slotRef)
	if err != nil {
		return "", nil, fmt.Errorf("failed to load slot template: %w", err)
	}
	if tpl == nil {
		return "", nil, fmt.Errorf("%w: slot template %s", db.ErrNotFound, slotRef)
	}
	return tpl.ID, func(p db.Participant) bool {
		return suggest.HasSkill(p, tpl.ID)
	}, nil
}

// loadPresidingHistory groups past presiding involvements by participant.
func loadPresidingHistory(ctx context.Context, store SuggestStore, excludeWeekID string) (map[string][]suggest.Entry, error) {
	weeks, err := store.RecentPresidingWeeks(ctx, presidingHistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load presiding history: %w", err)
	}

	grouped := make(map[string][]suggest.Entry)
	for _, w := range weeks {
		if w.ID == excludeWeekID {
			continue
		}
		for _, e := range suggest.EntriesFromWeek(w) {
			if e.RoleKey == suggest.RoleKeyPresident {
				grouped[e.ParticipantID] = append(grouped[e.ParticipantID], e)
			}
		}
	}
	return grouped, nil
}
