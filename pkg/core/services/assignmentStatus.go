package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/hfmateus/meetingplanner/pkg/core/assignmentid"
	"github.com/hfmateus/meetingplanner/pkg/core/suggest"
	"github.com/hfmateus/meetingplanner/pkg/db"
)

// AssignmentView is the uniform read model for ordinary assignments
// and the two week-embedded roles. Virtual views are synthesized from
// the week row and carry no secondary holder.
type AssignmentView struct {
	ID              string
	WeekID          string
	SlotTitle       string
	HolderID        *string
	SecondaryID     *string
	Status          db.Status
	SecondaryStatus *db.Status
	Duration        *int
	Virtual         bool
}

// AssignmentReadStore defines the lookups the assignment views need.
type AssignmentReadStore interface {
	GetWeek(ctx context.Context, id string) (*db.Week, error)
	GetAssignment(ctx context.Context, id string) (*db.Assignment, error)
}

// GetAssignment resolves an identifier to an assignment view. Virtual
// ids resolve against the week row and return (nil, nil) when the week
// is missing or the role's participant is unset; ordinary ids return
// (nil, nil) when no assignment row exists.
func GetAssignment(ctx context.Context, store AssignmentReadStore, rawID string) (*AssignmentView, error) {
	id := assignmentid.Parse(rawID)

	if weekID, role, ok := id.Virtual(); ok {
		week, err := store.GetWeek(ctx, weekID)
		if err != nil {
			return nil, fmt.Errorf("failed to load week: %w", err)
		}
		if week == nil {
			return nil, nil
		}
		return virtualView(rawID, week, role), nil
	}

	a, err := store.GetAssignment(ctx, rawID)
	if err != nil {
		return nil, fmt.Errorf("failed to load assignment: %w", err)
	}
	if a == nil {
		return nil, nil
	}
	return assignmentView(a), nil
}

// UpdateAssignmentStatus writes a confirmation status. Virtual ids
// mutate the corresponding status field on the week row and nothing
// else. For ordinary ids the acting participant decides the target
// field: the secondary status when the actor is the secondary holder,
// the primary status otherwise.
func UpdateAssignmentStatus(ctx context.Context, database db.Database, logger *zap.Logger, rawID string, status db.Status, actorID *string) (*AssignmentView, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: status %q", db.ErrInvalidInput, status)
	}

	id := assignmentid.Parse(rawID)

	if weekID, role, ok := id.Virtual(); ok {
		week, err := database.GetWeek(ctx, weekID)
		if err != nil {
			return nil, fmt.Errorf("failed to load week: %w", err)
		}
		if week == nil {
			return nil, fmt.Errorf("%w: week %s", db.ErrNotFound, weekID)
		}

		patch := db.WeekPatch{}
		if role == assignmentid.RolePresident {
			patch.PresidingStatus = db.Set(status)
			week.PresidingStatus = &status
		} else {
			patch.PrayerStatus = db.Set(status)
			week.PrayerStatus = &status
		}
		if err := database.UpdateWeekFields(ctx, weekID, patch); err != nil {
			return nil, fmt.Errorf("failed to update week role status: %w", err)
		}

		logger.Info("Special role status updated",
			zap.String("week_id", weekID),
			zap.String("role", string(role)),
			zap.String("status", string(status)))

		return virtualView(rawID, week, role), nil
	}

	a, err := database.GetAssignment(ctx, rawID)
	if err != nil {
		return nil, fmt.Errorf("failed to load assignment: %w", err)
	}
	if a == nil {
		return nil, fmt.Errorf("%w: assignment %s", db.ErrNotFound, rawID)
	}

	input := db.AssignmentInput{}
	if isSecondaryActor(a, actorID) {
		input.SecondaryStatus = db.Set(status)
		a.SecondaryStatus = status
	} else {
		if actorID != nil && !isPrimaryActor(a, actorID) {
			// Unknown actor ids fall through to the primary status.
			logger.Warn("Actor matches neither holder, updating primary status",
				zap.String("assignment_id", rawID),
				zap.String("actor_id", *actorID))
		}
		input.Status = db.Set(status)
		a.Status = status
	}

	if err := database.UpdateAssignment(ctx, rawID, input); err != nil {
		return nil, fmt.Errorf("failed to update assignment status: %w", err)
	}

	logger.Info("Assignment status updated",
		zap.String("assignment_id", rawID),
		zap.String("status", string(status)))

	return assignmentView(a), nil
}

func isSecondaryActor(a *db.Assignment, actorID *string) bool {
	return actorID != nil && a.SecondaryID != nil && *actorID == *a.SecondaryID
}

func isPrimaryActor(a *db.Assignment, actorID *string) bool {
	return actorID != nil && a.HolderID != nil && *actorID == *a.HolderID
}

// virtualView synthesizes an assignment-shaped view from a week's
// special role, or nil when the role's participant is unset.
func virtualView(rawID string, week *db.Week, role assignmentid.RoleKind) *AssignmentView {
	var participant *string
	var status *db.Status
	title := suggest.PresidentSlotTitle
	if role == assignmentid.RolePrayer {
		title = suggest.PrayerSlotTitle
		participant = week.PrayerID
		status = week.PrayerStatus
	} else {
		participant = week.PresidingID
		status = week.PresidingStatus
	}
	if participant == nil {
		return nil
	}

	resolved := db.StatusPending
	if status != nil {
		resolved = *status
	}
	return &AssignmentView{
		ID:        rawID,
		WeekID:    week.ID,
		SlotTitle: title,
		HolderID:  participant,
		Status:    resolved,
		Virtual:   true,
	}
}

func assignmentView(a *db.Assignment) *AssignmentView {
	secondary := a.SecondaryStatus
	return &AssignmentView{
		ID:              a.ID,
		WeekID:          a.WeekID,
		SlotTitle:       a.TemplateTitle,
		HolderID:        a.HolderID,
		SecondaryID:     a.SecondaryID,
		Status:          a.Status,
		SecondaryStatus: &secondary,
		Duration:        a.Duration,
	}
}
