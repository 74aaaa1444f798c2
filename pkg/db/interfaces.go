package db

import (
	"context"
	"time"
)

// WeekStore defines week persistence operations.
type WeekStore interface {
	// GetWeek returns the week with its assignments ordered by position,
	// or (nil, nil) when the id is unknown.
	GetWeek(ctx context.Context, id string) (*Week, error)

	// GetWeekByDate returns the week whose start date equals date exactly,
	// or (nil, nil) when no such week exists.
	GetWeekByDate(ctx context.Context, date time.Time) (*Week, error)

	// ListWeeks returns all weeks chronologically, each with its
	// assignments ordered by position.
	ListWeeks(ctx context.Context) ([]Week, error)

	// ListWeeksFrom returns weeks starting on or after from, chronologically.
	ListWeeksFrom(ctx context.Context, from time.Time) ([]Week, error)

	// InsertWeek creates a week together with its assignments.
	// A start-date uniqueness violation is returned as ErrConflict.
	InsertWeek(ctx context.Context, week *Week) error

	// UpdateWeekFields writes the week-row fields present in patch.
	// The patch's assignment list is ignored here.
	UpdateWeekFields(ctx context.Context, id string, patch WeekPatch) error

	// RecentPresidingWeeks returns up to limit past weeks that have a
	// presiding participant whose status is not declined, newest first.
	RecentPresidingWeeks(ctx context.Context, limit int) ([]Week, error)
}

// AssignmentStore defines assignment persistence operations.
type AssignmentStore interface {
	// GetAssignment returns the assignment joined with its template
	// title, or (nil, nil) when the id is unknown.
	GetAssignment(ctx context.Context, id string) (*Assignment, error)

	// InsertAssignments bulk-creates assignments.
	InsertAssignments(ctx context.Context, assignments []Assignment) error

	// UpdateAssignment writes the fields present in input onto the
	// assignment row. Absent fields are left untouched.
	UpdateAssignment(ctx context.Context, id string, input AssignmentInput) error

	// DeleteAssignments removes every assignment in the id set.
	DeleteAssignments(ctx context.Context, ids []string) error

	// RecentAssignments returns up to limit assignments involving the
	// participant as holder or secondary, excluding the given week,
	// ordered by week start descending.
	RecentAssignments(ctx context.Context, participantID, excludeWeekID string, limit int) ([]AssignmentRecord, error)

	// ListAssignmentsForParticipant returns assignments involving the
	// participant in weeks starting on or after from, with names and
	// template flags joined, ordered by week start ascending.
	ListAssignmentsForParticipant(ctx context.Context, participantID string, from time.Time) ([]AssignmentRecord, error)

	// ListAssignmentHistory returns every non-declined assignment with
	// its week date joined, ordered by week start descending then id.
	ListAssignmentHistory(ctx context.Context) ([]AssignmentRecord, error)
}

// ParticipantStore defines roster read operations.
type ParticipantStore interface {
	// GetParticipant returns the participant with skills, or (nil, nil)
	// when the id is unknown.
	GetParticipant(ctx context.Context, id string) (*Participant, error)

	// ListParticipants returns the full roster with skills, ordered by name.
	ListParticipants(ctx context.Context) ([]Participant, error)
}

// SlotTemplateStore defines slot-template read operations.
type SlotTemplateStore interface {
	// ListSlotTemplates returns active templates ordered by position.
	ListSlotTemplates(ctx context.Context) ([]SlotTemplate, error)

	// GetSlotTemplate returns the template or (nil, nil) when unknown.
	GetSlotTemplate(ctx context.Context, id string) (*SlotTemplate, error)
}

// Store is the combined persistence surface the core operates on.
type Store interface {
	WeekStore
	AssignmentStore
	ParticipantStore
	SlotTemplateStore
}

// Database is the full persistence contract. InTx runs fn against a
// Store whose operations all execute inside a single transaction;
// if fn returns an error the transaction is rolled back and no
// statement takes effect.
type Database interface {
	Store
	InTx(ctx context.Context, fn func(s Store) error) error
}
