package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/hfmateus/meetingplanner/pkg/core/assignmentid"
	"github.com/hfmateus/meetingplanner/pkg/core/suggest"
	"github.com/hfmateus/meetingplanner/pkg/db"
)

// AgendaItem is one upcoming involvement of a participant, normalized
// across ordinary assignments and week-embedded roles.
type AgendaItem struct {
	AssignmentID string
	Date         time.Time
	RoleLabel    string
	Title        string
	Status       db.Status
	PartnerName  *string
	PartnerRole  *string
	ShowDuration bool
	Duration     *int
}

// AgendaStore defines the reads a participant agenda needs.
type AgendaStore interface {
	GetParticipant(ctx context.Context, id string) (*db.Participant, error)
	ListAssignmentsForParticipant(ctx context.Context, participantID string, from time.Time) ([]db.AssignmentRecord, error)
	ListWeeksFrom(ctx context.Context, from time.Time) ([]db.Week, error)
}

// ParticipantAgenda merges a participant's ordinary assignments and
// week-embedded roles from the given date on, sorted by date
// ascending. Each item carries its role label, the partner's name and
// role when the slot has two holders, and whether a duration applies.
func ParticipantAgenda(ctx context.Context, store AgendaStore, participantID string, from time.Time) ([]AgendaItem, error) {
	participant, err := store.GetParticipant(ctx, participantID)
	if err != nil {
		return nil, fmt.Errorf("failed to load participant: %w", err)
	}
	if participant == nil {
		return nil, fmt.Errorf("%w: participant %s", db.ErrNotFound, participantID)
	}

	start := normalizeDate(from)

	records, err := store.ListAssignmentsForParticipant(ctx, participantID, start)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}

	var items []AgendaItem
	for _, rec := range records {
		items = append(items, agendaItem(rec, participantID))
	}

	weeks, err := store.ListWeeksFrom(ctx, start)
	if err != nil {
		return nil, fmt.Errorf("failed to list weeks: %w", err)
	}
	for _, w := range weeks {
		items = append(items, specialRoleItems(w, participantID)...)
	}

	sort.Slice(items, func(i, j int) bool {
		if !items[i].Date.Equal(items[j].Date) {
			return items[i].Date.Before(items[j].Date)
		}
		return items[i].AssignmentID < items[j].AssignmentID
	})

	return items, nil
}

// agendaItem renders one assignment record from the participant's
// perspective: as primary holder the partner is the assistant or
// reader, as secondary holder the labels flip.
func agendaItem(rec db.AssignmentRecord, participantID string) AgendaItem {
	title := rec.TemplateTitle
	if rec.ThemeTitle != nil && *rec.ThemeTitle != "" {
		title = *rec.ThemeTitle
	}

	item := AgendaItem{
		AssignmentID: rec.ID,
		Date:         rec.WeekStart,
		Title:        title,
		ShowDuration: rec.TemplateHasDuration,
		Duration:     rec.Duration,
	}

	secondaryLabel := rec.TemplateTitle + " (Assistant)"
	partnerRole := "Assistant"
	if rec.TemplateRequiresReader {
		secondaryLabel = rec.TemplateTitle + " (Reader)"
		partnerRole = "Reader"
	}

	if rec.HolderID != nil && *rec.HolderID == participantID {
		item.RoleLabel = rec.TemplateTitle
		item.Status = rec.Status
		if rec.SecondaryID != nil {
			item.PartnerName = rec.SecondaryName
			item.PartnerRole = &partnerRole
		}
	} else {
		item.RoleLabel = secondaryLabel
		item.Status = rec.SecondaryStatus
		if rec.HolderID != nil {
			role := rec.TemplateTitle
			item.PartnerName = rec.HolderName
			item.PartnerRole = &role
		}
	}
	return item
}

// specialRoleItems emits agenda items for the week-embedded roles the
// participant holds on this week.
func specialRoleItems(week db.Week, participantID string) []AgendaItem {
	var items []AgendaItem
	if week.PresidingID != nil && *week.PresidingID == participantID {
		items = append(items, AgendaItem{
			AssignmentID: assignmentid.VirtualID(week.ID, assignmentid.RolePresident),
			Date:         week.StartDate,
			RoleLabel:    suggest.PresidentSlotTitle,
			Title:        suggest.PresidentSlotTitle,
			Status:       statusOrPending(week.PresidingStatus),
		})
	}
	if week.PrayerID != nil && *week.PrayerID == participantID {
		items = append(items, AgendaItem{
			AssignmentID: assignmentid.VirtualID(week.ID, assignmentid.RolePrayer),
			Date:         week.StartDate,
			RoleLabel:    suggest.PrayerSlotTitle,
			Title:        suggest.PrayerSlotTitle,
			Status:       statusOrPending(week.PrayerStatus),
		})
	}
	return items
}

func statusOrPending(s *db.Status) db.Status {
	if s == nil {
		return db.StatusPending
	}
	return *s
}
