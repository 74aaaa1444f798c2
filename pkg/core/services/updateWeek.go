package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hfmateus/meetingplanner/pkg/core/assignmentid"
	"github.com/hfmateus/meetingplanner/pkg/core/suggest"
	"github.com/hfmateus/meetingplanner/pkg/db"
)

// UpdateWeek applies a full-week edit as one atomic operation: the
// week-row fields present in the patch, the prayer-status mirror onto
// the opening-prayer assignment, and a create/update/delete
// reconciliation of the client's assignment list against the persisted
// set. Either the whole patch commits or none of it does.
func UpdateWeek(ctx context.Context, database db.Database, logger *zap.Logger, weekID string, patch db.WeekPatch) (*db.Week, error) {
	if err := validatePatch(patch); err != nil {
		return nil, err
	}

	var result *db.Week
	err := database.InTx(ctx, func(s db.Store) error {
		week, err := s.GetWeek(ctx, weekID)
		if err != nil {
			return fmt.Errorf("failed to load week: %w", err)
		}
		if week == nil {
			return fmt.Errorf("%w: week %s", db.ErrNotFound, weekID)
		}

		if patch.HasWeekFields() {
			if err := s.UpdateWeekFields(ctx, weekID, patch); err != nil {
				return fmt.Errorf("failed to update week fields: %w", err)
			}
		}

		// The prayer status exists both on the week row and on the
		// opening-prayer assignment; keep the two in step.
		if patch.PrayerStatus.Valid {
			if err := mirrorPrayerStatus(ctx, s, week, patch.PrayerStatus.Value); err != nil {
				return err
			}
		}

		if patch.Assignments != nil {
			if err := syncAssignments(ctx, s, logger, week, *patch.Assignments); err != nil {
				return err
			}
		}

		updated, err := s.GetWeek(ctx, weekID)
		if err != nil {
			return fmt.Errorf("failed to re-read week: %w", err)
		}
		result = updated
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Week updated", zap.String("week_id", weekID))
	return result, nil
}

func validatePatch(patch db.WeekPatch) error {
	if patch.PresidingStatus.Valid && !patch.PresidingStatus.Value.Valid() {
		return fmt.Errorf("%w: presiding status %q", db.ErrInvalidInput, patch.PresidingStatus.Value)
	}
	if patch.PrayerStatus.Valid && !patch.PrayerStatus.Value.Valid() {
		return fmt.Errorf("%w: prayer status %q", db.ErrInvalidInput, patch.PrayerStatus.Value)
	}
	if patch.Assignments == nil {
		return nil
	}
	for _, in := range *patch.Assignments {
		if in.Status.Valid && !in.Status.Value.Valid() {
			return fmt.Errorf("%w: assignment status %q", db.ErrInvalidInput, in.Status.Value)
		}
		if in.SecondaryStatus.Valid && !in.SecondaryStatus.Value.Valid() {
			return fmt.Errorf("%w: secondary status %q", db.ErrInvalidInput, in.SecondaryStatus.Value)
		}
	}
	return nil
}

// mirrorPrayerStatus copies the week's prayer status onto the
// assignment whose slot is the canonical opening-prayer slot, when the
// week has one.
func mirrorPrayerStatus(ctx context.Context, s db.Store, week *db.Week, status db.Status) error {
	for _, a := range week.Assignments {
		if a.TemplateTitle == suggest.PrayerSlotTitle {
			input := db.AssignmentInput{Status: db.Set(status)}
			if err := s.UpdateAssignment(ctx, a.ID, input); err != nil {
				return fmt.Errorf("failed to mirror prayer status: %w", err)
			}
			return nil
		}
	}
	return nil
}

// syncAssignments reconciles the client's intended assignment list
// against the persisted set. Entries with placeholder ids or ids that
// match no persisted assignment are created; entries matching a
// persisted id are partially updated; persisted assignments absent
// from the list are deleted.
func syncAssignments(ctx context.Context, s db.Store, logger *zap.Logger, week *db.Week, incoming []db.AssignmentInput) error {
	persisted := make(map[string]bool, len(week.Assignments))
	for _, a := range week.Assignments {
		persisted[a.ID] = true
	}

	var creates []db.Assignment
	var updates []db.AssignmentInput
	keep := make(map[string]bool)

	for _, in := range incoming {
		id := assignmentid.Parse(in.ID)
		if _, _, ok := id.Virtual(); ok {
			// Week-embedded roles are not assignment rows; they are
			// edited through the week fields of the patch.
			continue
		}
		if id.IsPending() || !persisted[in.ID] {
			a, err := newAssignment(week.ID, in)
			if err != nil {
				return err
			}
			creates = append(creates, a)
			continue
		}
		keep[in.ID] = true
		updates = append(updates, in)
	}

	var toDelete []string
	for _, a := range week.Assignments {
		if !keep[a.ID] {
			toDelete = append(toDelete, a.ID)
		}
	}

	logger.Debug("Syncing assignments",
		zap.String("week_id", week.ID),
		zap.Int("create", len(creates)),
		zap.Int("update", len(updates)),
		zap.Int("delete", len(toDelete)))

	if len(toDelete) > 0 {
		if err := s.DeleteAssignments(ctx, toDelete); err != nil {
			return fmt.Errorf("failed to delete assignments: %w", err)
		}
	}
	for _, in := range updates {
		if err := s.UpdateAssignment(ctx, in.ID, in); err != nil {
			return fmt.Errorf("failed to update assignment %s: %w", in.ID, err)
		}
	}
	if len(creates) > 0 {
		if err := s.InsertAssignments(ctx, creates); err != nil {
			return fmt.Errorf("failed to create assignments: %w", err)
		}
	}
	return nil
}

// newAssignment materializes a client entry into an assignment row,
// filling engine-side defaults for absent optional fields.
func newAssignment(weekID string, in db.AssignmentInput) (db.Assignment, error) {
	if in.TemplateID == "" {
		return db.Assignment{}, fmt.Errorf("%w: new assignment %q has no slot template", db.ErrInvalidInput, in.ID)
	}

	a := db.Assignment{
		ID:              uuid.New().String(),
		WeekID:          weekID,
		TemplateID:      in.TemplateID,
		Status:          db.StatusPending,
		SecondaryStatus: db.StatusPending,
	}
	if in.HolderID.Valid {
		a.HolderID = in.HolderID.Value
	}
	if in.SecondaryID.Valid {
		a.SecondaryID = in.SecondaryID.Value
	}
	if in.Status.Valid {
		a.Status = in.Status.Value
	}
	if in.SecondaryStatus.Valid {
		a.SecondaryStatus = in.SecondaryStatus.Value
	}
	if in.Position.Valid {
		a.Position = in.Position.Value
	}
	if in.ThemeTitle.Valid {
		a.ThemeTitle = in.ThemeTitle.Value
	}
	if in.Observation.Valid {
		a.Observation = in.Observation.Value
	}
	if in.Duration.Valid {
		a.Duration = in.Duration.Value
	}
	return a, nil
}
