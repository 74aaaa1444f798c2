package services

import (
	"context"
	"sort"
	"time"

	"github.com/hfmateus/meetingplanner/pkg/db"
)

// mockDB implements db.Database over in-memory fixtures. Mutations are
// applied to the fixture data and recorded so tests can assert both
// the calls made and the resulting state.
type mockDB struct {
	weeks        []*db.Week
	templates    []db.SlotTemplate
	participants []db.Participant

	recentByParticipant map[string][]db.AssignmentRecord
	agendaByParticipant map[string][]db.AssignmentRecord
	historyRecords      []db.AssignmentRecord
	presidingWeeks      []db.Week

	insertedWeeks       []*db.Week
	insertedAssignments []db.Assignment
	updatedAssignments  map[string][]db.AssignmentInput
	deletedAssignments  []string
	weekFieldPatches    map[string][]db.WeekPatch

	txCount int

	insertWeekErr       error
	updateAssignmentErr error
	conflictOnInsert    bool
}

func newMockDB() *mockDB {
	return &mockDB{
		recentByParticipant: map[string][]db.AssignmentRecord{},
		agendaByParticipant: map[string][]db.AssignmentRecord{},
		updatedAssignments:  map[string][]db.AssignmentInput{},
		weekFieldPatches:    map[string][]db.WeekPatch{},
	}
}

func (m *mockDB) InTx(ctx context.Context, fn func(s db.Store) error) error {
	m.txCount++
	return fn(m)
}

func (m *mockDB) GetWeek(ctx context.Context, id string) (*db.Week, error) {
	for _, w := range m.weeks {
		if w.ID == id {
			copied := *w
			copied.Assignments = append([]db.Assignment(nil), w.Assignments...)
			sort.Slice(copied.Assignments, func(i, j int) bool {
				return copied.Assignments[i].Position < copied.Assignments[j].Position
			})
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *mockDB) GetWeekByDate(ctx context.Context, date time.Time) (*db.Week, error) {
	for _, w := range m.weeks {
		if w.StartDate.Equal(date) {
			return m.GetWeek(ctx, w.ID)
		}
	}
	return nil, nil
}

func (m *mockDB) ListWeeks(ctx context.Context) ([]db.Week, error) {
	weeks := make([]db.Week, 0, len(m.weeks))
	for _, w := range m.weeks {
		weeks = append(weeks, *w)
	}
	sort.Slice(weeks, func(i, j int) bool { return weeks[i].StartDate.Before(weeks[j].StartDate) })
	return weeks, nil
}

func (m *mockDB) ListWeeksFrom(ctx context.Context, from time.Time) ([]db.Week, error) {
	all, _ := m.ListWeeks(ctx)
	var weeks []db.Week
	for _, w := range all {
		if !w.StartDate.Before(from) {
			weeks = append(weeks, w)
		}
	}
	return weeks, nil
}

func (m *mockDB) InsertWeek(ctx context.Context, week *db.Week) error {
	if m.insertWeekErr != nil {
		return m.insertWeekErr
	}
	if m.conflictOnInsert {
		return db.ErrConflict
	}
	for _, w := range m.weeks {
		if w.StartDate.Equal(week.StartDate) {
			return db.ErrConflict
		}
	}
	m.weeks = append(m.weeks, week)
	m.insertedWeeks = append(m.insertedWeeks, week)
	return nil
}

func (m *mockDB) UpdateWeekFields(ctx context.Context, id string, patch db.WeekPatch) error {
	m.weekFieldPatches[id] = append(m.weekFieldPatches[id], patch)
	for _, w := range m.weeks {
		if w.ID != id {
			continue
		}
		if patch.PresidingID.Valid {
			w.PresidingID = patch.PresidingID.Value
		}
		if patch.PresidingStatus.Valid {
			s := patch.PresidingStatus.Value
			w.PresidingStatus = &s
		}
		if patch.PrayerStatus.Valid {
			s := patch.PrayerStatus.Value
			w.PrayerStatus = &s
		}
		if patch.Type.Valid {
			w.Type = patch.Type.Value
		}
		if patch.Label.Valid {
			w.Label = patch.Label.Value
		}
	}
	return nil
}

func (m *mockDB) RecentPresidingWeeks(ctx context.Context, limit int) ([]db.Week, error) {
	if len(m.presidingWeeks) > limit {
		return m.presidingWeeks[:limit], nil
	}
	return m.presidingWeeks, nil
}

func (m *mockDB) GetAssignment(ctx context.Context, id string) (*db.Assignment, error) {
	for _, w := range m.weeks {
		for i := range w.Assignments {
			if w.Assignments[i].ID == id {
				copied := w.Assignments[i]
				return &copied, nil
			}
		}
	}
	return nil, nil
}

func (m *mockDB) InsertAssignments(ctx context.Context, assignments []db.Assignment) error {
	m.insertedAssignments = append(m.insertedAssignments, assignments...)
	for _, a := range assignments {
		for _, w := range m.weeks {
			if w.ID == a.WeekID {
				w.Assignments = append(w.Assignments, a)
			}
		}
	}
	return nil
}

func (m *mockDB) UpdateAssignment(ctx context.Context, id string, input db.AssignmentInput) error {
	if m.updateAssignmentErr != nil {
		return m.updateAssignmentErr
	}
	m.updatedAssignments[id] = append(m.updatedAssignments[id], input)
	for _, w := range m.weeks {
		for i := range w.Assignments {
			if w.Assignments[i].ID != id {
				continue
			}
			a := &w.Assignments[i]
			if input.HolderID.Valid {
				a.HolderID = input.HolderID.Value
			}
			if input.SecondaryID.Valid {
				a.SecondaryID = input.SecondaryID.Value
			}
			if input.Status.Valid {
				a.Status = input.Status.Value
			}
			if input.SecondaryStatus.Valid {
				a.SecondaryStatus = input.SecondaryStatus.Value
			}
			if input.Position.Valid {
				a.Position = input.Position.Value
			}
			if input.ThemeTitle.Valid {
				a.ThemeTitle = input.ThemeTitle.Value
			}
			if input.Observation.Valid {
				a.Observation = input.Observation.Value
			}
			if input.Duration.Valid {
				a.Duration = input.Duration.Value
			}
		}
	}
	return nil
}

func (m *mockDB) DeleteAssignments(ctx context.Context, ids []string) error {
	m.deletedAssignments = append(m.deletedAssignments, ids...)
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	for _, w := range m.weeks {
		kept := w.Assignments[:0]
		for _, a := range w.Assignments {
			if !drop[a.ID] {
				kept = append(kept, a)
			}
		}
		w.Assignments = kept
	}
	return nil
}

func (m *mockDB) RecentAssignments(ctx context.Context, participantID, excludeWeekID string, limit int) ([]db.AssignmentRecord, error) {
	records := m.recentByParticipant[participantID]
	if len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

func (m *mockDB) ListAssignmentsForParticipant(ctx context.Context, participantID string, from time.Time) ([]db.AssignmentRecord, error) {
	var records []db.AssignmentRecord
	for _, rec := range m.agendaByParticipant[participantID] {
		if !rec.WeekStart.Before(from) {
			records = append(records, rec)
		}
	}
	return records, nil
}

func (m *mockDB) ListAssignmentHistory(ctx context.Context) ([]db.AssignmentRecord, error) {
	return m.historyRecords, nil
}

func (m *mockDB) GetParticipant(ctx context.Context, id string) (*db.Participant, error) {
	for i := range m.participants {
		if m.participants[i].ID == id {
			copied := m.participants[i]
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *mockDB) ListParticipants(ctx context.Context) ([]db.Participant, error) {
	return m.participants, nil
}

func (m *mockDB) ListSlotTemplates(ctx context.Context) ([]db.SlotTemplate, error) {
	var active []db.SlotTemplate
	for _, t := range m.templates {
		if t.Active {
			active = append(active, t)
		}
	}
	sort.Slice(active, func(i, j int) bool { return active[i].Position < active[j].Position })
	return active, nil
}

func (m *mockDB) GetSlotTemplate(ctx context.Context, id string) (*db.SlotTemplate, error) {
	for i := range m.templates {
		if m.templates[i].ID == id {
			copied := m.templates[i]
			return &copied, nil
		}
	}
	return nil, nil
}
